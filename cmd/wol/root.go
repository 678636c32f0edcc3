package main

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jwebster45206/world-of-london/internal/config"
	"github.com/jwebster45206/world-of-london/internal/services/events"
	"github.com/jwebster45206/world-of-london/internal/session"
	"github.com/spf13/cobra"
)

// Global flags available to all subcommands.
var (
	configFile string
	seed       int64
	timeLimit  int
)

// NewRootCmd creates the root command for the World of London CLI.
// Without a subcommand it plays a game.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "wol",
		Short: "World of London - a travel game",
		Long: `World of London is a turn-based travel game. Find your way through
foggy London to Trafalgar Square, or collect a full meal and eat it,
before time runs out.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd, false)
		},
	}

	cmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (INI)")
	cmd.PersistentFlags().Int64Var(&seed, "seed", -1, "random seed (negative seeds from the clock)")
	cmd.PersistentFlags().IntVar(&timeLimit, "time-limit", 12, "moves allowed before the game is lost")

	cmd.AddCommand(NewPlayCmd())
	cmd.AddCommand(NewMCPCmd())

	return cmd
}

// loadConfig reads the config and applies any flags set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	flags := cmd.Flags()
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("time-limit") {
		cfg.TimeLimit = timeLimit
	}
	return cfg, nil
}

// connectPublisher returns a Redis broadcaster when REDIS_URL is set. A
// failed connection is logged and play continues without one.
func connectPublisher(ctx context.Context, cfg *config.Config, log *slog.Logger) (session.Publisher, func()) {
	if cfg.RedisURL == "" {
		return nil, func() {}
	}
	b, err := events.Connect(ctx, cfg.RedisURL, log)
	if err != nil {
		log.Warn("Event broadcasting disabled", "error", err)
		return nil, func() {}
	}
	return b, func() {
		if err := b.Close(); err != nil {
			log.Warn("Failed to close redis client", "error", err)
		}
	}
}
