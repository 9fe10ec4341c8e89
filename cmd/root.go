package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "pollredis",
	Short: "A single-threaded key-value server driven by poll(2)",
	Long: "pollredis serves get/put/del over a length-prefixed binary protocol, " +
		"multiplexing every client on one event loop.",
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
