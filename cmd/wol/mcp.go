package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/jwebster45206/world-of-london/internal/logger"
	"github.com/jwebster45206/world-of-london/internal/mcpserver"
	"github.com/jwebster45206/world-of-london/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
)

// NewMCPCmd creates the mcp subcommand.
func NewMCPCmd() *cobra.Command {
	var addr, path, token string
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Serve the game as an MCP tool over streamable HTTP",
		Long: `Serve one shared game through the MCP "command" tool. Prometheus
metrics are exposed next to it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("addr") {
				cfg.MCPAddr = addr
			}
			if flags.Changed("path") {
				cfg.MCPPath = path
			}
			if flags.Changed("token") {
				cfg.MCPToken = token
			}

			log := logger.Setup(cfg)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			pub, closePub := connectPublisher(ctx, cfg, log)
			defer closePub()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector())
			metrics.RegisterMetrics(reg)

			srv := mcpserver.New(mcpserver.Options{
				Seed:      cfg.Seed,
				TimeLimit: cfg.TimeLimit,
				Logger:    log,
				Publisher: pub,
			})
			h := srv.Handler(mcpserver.HTTPOptions{
				Path:        cfg.MCPPath,
				MetricsPath: cfg.MetricsPath,
				Origins:     cfg.MCPOrigins,
				Token:       cfg.MCPToken,
				Gatherer:    reg,
			})
			return mcpserver.ListenAndServe(ctx, cfg.MCPAddr, h, log)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", "127.0.0.1:8080", "listen address")
	cmd.Flags().StringVar(&path, "path", "/mcp", "MCP endpoint path")
	cmd.Flags().StringVar(&token, "token", "", "bearer token required on MCP requests")
	return cmd
}
