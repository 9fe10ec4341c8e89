package cmd

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"net"
	"os"
	"strings"

	"github.com/docker/go-units"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"pollredis/internal/common"
	"pollredis/pkg/protocol"
)

var (
	cliAddr         string
	maxResponseSize string
)

var cliCmd = &cobra.Command{
	Use:   "cli",
	Short: "Start a CLI client to connect to a pollredis server",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, err := units.RAMInBytes(maxResponseSize)
		if err != nil {
			return errors.Wrapf(err, "invalid max-response-size %q", maxResponseSize)
		}
		if limit <= 0 || limit > math.MaxInt32 {
			return errors.Errorf("max-response-size %q out of range", maxResponseSize)
		}
		return startCLI(cliAddr, int(limit))
	},
}

func init() {
	cliCmd.Flags().StringVar(&cliAddr, "addr", "127.0.0.1:1234", "server address to connect to")
	cliCmd.Flags().StringVar(&maxResponseSize, "max-response-size", "32MiB",
		"largest response payload accepted, raise it for keys on a big keyspace")
	rootCmd.AddCommand(cliCmd)
}

// startCLI 启动命令行客户端，每行一条命令，参数按空白切分
func startCLI(addr string, maxSize int) error {
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return errors.Wrapf(err, "connect to %s", addr)
	}
	defer conn.Close()

	fmt.Printf("Connected to pollredis at %s\n", addr)

	stdin := bufio.NewReader(os.Stdin)
	p := protocol.NewParserSize(conn, maxSize)

	for {
		fmt.Print("> ")
		line, err := stdin.ReadString('\n')
		if err != nil {
			fmt.Println("read input error:", err)
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			fmt.Println("bye")
			return nil
		}

		args := common.ToCmdLine(line)
		if _, err := conn.Write(protocol.EncodeRequest(args...)); err != nil {
			fmt.Println("write error:", err)
			return err
		}

		resp, err := p.ParseResponse()
		if err != nil {
			fmt.Println("read response error:", err)
			return err
		}

		printResponse(os.Stdout, string(args[0]), resp)
	}
}

func printResponse(w io.Writer, name string, resp *protocol.Response) {
	if protocol.IsErrorReply(resp) {
		fmt.Fprintln(w, "(error) unknown command or wrong number of arguments")
		return
	}

	switch resp.Status {
	case protocol.StatusNotFound:
		fmt.Fprintln(w, "(nil)")
	case protocol.StatusSuccess:
		if name == "keys" {
			keys, err := protocol.DecodeArgs(resp.Payload)
			if err != nil {
				fmt.Fprintln(w, "(error)", err)
				return
			}
			if len(keys) == 0 {
				fmt.Fprintln(w, "(empty)")
			}
			for i, k := range keys {
				fmt.Fprintf(w, "%d) %q\n", i+1, k)
			}
			return
		}
		if len(resp.Payload) == 0 && name != "get" {
			fmt.Fprintln(w, "OK")
			return
		}
		fmt.Fprintf(w, "%q\n", resp.Payload)
	default:
		fmt.Fprintln(w, resp.Status)
	}
}
