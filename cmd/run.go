package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/pingcap/log"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"pollredis/internal/config"
	"pollredis/internal/database"
	"pollredis/internal/server"
)

var (
	configPath  string
	addr        string
	metricsAddr string
	logLevel    string
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the key-value server",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}

		lg, props, err := log.InitLogger(&cfg.Log)
		if err != nil {
			return err
		}
		log.ReplaceGlobals(lg, props)
		defer log.Sync()

		if cfg.MetricsAddr != "" {
			go serveMetrics(cfg.MetricsAddr)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		srv := server.NewServer(cfg, database.MakeDB(), server.WithLogger(log.L()))
		if err := srv.ListenAndServe(ctx); err != nil {
			log.Error("server exited", zap.Error(err))
			return err
		}
		log.Info("server stopped")
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&configPath, "config", "", "path to a toml config file")
	runCmd.Flags().StringVar(&addr, "addr", ":1234", "server listen address")
	runCmd.Flags().StringVar(&metricsAddr, "metrics-addr", "", "expose prometheus metrics on this address")
	runCmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
}

// loadConfig 配置文件打底，显式传入的命令行参数覆盖文件中的值
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewDefaultConfig()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("addr") {
		cfg.Addr = addr
	}
	if flags.Changed("metrics-addr") {
		cfg.MetricsAddr = metricsAddr
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func serveMetrics(addr string) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	log.Info("metrics listening", zap.String("addr", addr))
	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error("metrics server exited", zap.Error(err))
		os.Exit(1)
	}
}
