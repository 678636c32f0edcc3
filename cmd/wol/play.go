package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/jwebster45206/world-of-london/internal/logger"
	"github.com/jwebster45206/world-of-london/internal/session"
	"github.com/jwebster45206/world-of-london/pkg/state"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// NewPlayCmd creates the play subcommand.
func NewPlayCmd() *cobra.Command {
	var headless bool
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game in the terminal",
		Long: `Play a game in the terminal. The full-screen console is used when
stdin and stdout are terminals; otherwise, or with --headless, the game
reads commands line by line and prints plain text.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlay(cmd, headless)
		},
	}
	cmd.Flags().BoolVar(&headless, "headless", false, "read commands line by line instead of the full-screen console")
	return cmd
}

func runPlay(cmd *cobra.Command, headless bool) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	interactive := !headless &&
		term.IsTerminal(int(os.Stdin.Fd())) &&
		term.IsTerminal(int(os.Stdout.Fd()))

	// The console owns the screen, so it never logs to stdout.
	fallback := io.Writer(os.Stderr)
	if interactive {
		fallback = io.Discard
	}
	log := logger.SetupWriter(cfg, logger.Output(cfg, fallback))

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	pub, closePub := connectPublisher(ctx, cfg, log)
	defer closePub()

	g := state.New(
		state.WithSource(state.NewSource(cfg.Seed)),
		state.WithTimeLimit(cfg.TimeLimit),
	)
	s := session.New(g, log, pub)

	if !interactive {
		return runREPL(ctx, s, os.Stdin, os.Stdout)
	}

	p := tea.NewProgram(NewConsoleUI(ctx, s),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running console: %w", err)
	}
	return nil
}

// runREPL plays line by line until the game ends. End of input quits.
func runREPL(ctx context.Context, s *session.Session, in io.Reader, out io.Writer) error {
	w := bufio.NewWriter(out)
	defer w.Flush()

	fmt.Fprintln(w, s.Welcome(ctx))

	scanner := bufio.NewScanner(in)
	for !s.Finished() {
		fmt.Fprint(w, "> ")
		if err := w.Flush(); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read input: %w", err)
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, s.Handle(ctx, string(state.CmdQuit)))
			break
		}
		fmt.Fprintln(w, s.Handle(ctx, scanner.Text()))
	}
	return nil
}
