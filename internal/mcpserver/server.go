package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/jwebster45206/world-of-london/internal/session"
	"github.com/jwebster45206/world-of-london/pkg/state"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CommandInput struct {
	Command string `json:"command" jsonschema:"Game command to execute, e.g. 'go west' or 'take crisps'"`
	Reset   bool   `json:"reset,omitempty" jsonschema:"Start a new game before executing the command"`
	Seed    *int64 `json:"seed,omitempty" jsonschema:"Seed to use when resetting the game"`
}

// GameState mirrors state.Summary with schema-friendly field types.
type GameState struct {
	ID        string            `json:"id" jsonschema:"Session ID"`
	Room      string            `json:"room" jsonschema:"Key of the player's current room"`
	Turn      int               `json:"turn" jsonschema:"Moves made so far"`
	TimeLimit int               `json:"time_limit" jsonschema:"Moves allowed before the game is lost"`
	Finished  bool              `json:"finished" jsonschema:"Whether the game has ended"`
	Outcome   string            `json:"outcome" jsonschema:"playing, reached_goal, ate_meal, timed_out or quit"`
	Inventory []string          `json:"inventory" jsonschema:"Items the player carries"`
	Locations map[string]string `json:"locations" jsonschema:"Room key for every character"`
}

type CommandOutput struct {
	Output string    `json:"output" jsonschema:"Raw game output"`
	State  GameState `json:"state" jsonschema:"Summary of the current game state"`
}

// Options configures a Server.
type Options struct {
	Seed      int64 // default seed for new games; negative seeds from the clock
	TimeLimit int
	Logger    *slog.Logger
	Publisher session.Publisher // may be nil
}

// Server exposes one shared game as the MCP "command" tool.
type Server struct {
	mu      sync.Mutex
	opts    Options
	session *session.Session
}

func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}
	s := &Server{opts: opts}
	s.reset(context.Background(), opts.Seed)
	return s
}

// reset starts a fresh game and returns its welcome text. Callers hold mu
// unless the server is still being built.
func (s *Server) reset(ctx context.Context, seed int64) string {
	g := state.New(
		state.WithSource(state.NewSource(seed)),
		state.WithTimeLimit(s.opts.TimeLimit),
	)
	s.session = session.New(g, s.opts.Logger, s.opts.Publisher)
	return s.session.Welcome(ctx)
}

// HandleCommand runs one command. An empty command looks around.
func (s *Server) HandleCommand(ctx context.Context, _ *mcp.CallToolRequest, input *CommandInput) (*mcp.CallToolResult, *CommandOutput, error) {
	if input == nil {
		input = &CommandInput{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if input.Reset {
		seed := s.opts.Seed
		if input.Seed != nil {
			seed = *input.Seed
		}
		out := s.reset(ctx, seed)
		return nil, &CommandOutput{Output: out, State: summarize(s.session.Game())}, nil
	}

	line := strings.TrimSpace(input.Command)
	if line == "" {
		line = string(state.CmdLook)
	}
	out := s.session.Handle(ctx, line)
	return nil, &CommandOutput{Output: out, State: summarize(s.session.Game())}, nil
}

func summarize(g *state.Game) GameState {
	sum := g.Summary()
	return GameState{
		ID:        sum.ID.String(),
		Room:      sum.Room,
		Turn:      sum.Turn,
		TimeLimit: sum.TimeLimit,
		Finished:  sum.Finished,
		Outcome:   string(sum.Outcome),
		Inventory: sum.Inventory,
		Locations: sum.Locations,
	}
}

// HTTPOptions configures the HTTP surface.
type HTTPOptions struct {
	Path        string
	MetricsPath string // empty disables /metrics
	Origins     []string
	Token       string // empty disables bearer auth
	Gatherer    prometheus.Gatherer
}

// Handler returns the streamable MCP endpoint plus the metrics endpoint.
func (s *Server) Handler(opts HTTPOptions) http.Handler {
	mcpServer := mcp.NewServer(&mcp.Implementation{
		Name:    "world-of-london",
		Version: "v1.0.0",
	}, nil)

	mcp.AddTool(mcpServer, &mcp.Tool{
		Name:        "command",
		Description: "Send a command to the World of London game and return output plus state summary.",
	}, s.HandleCommand)

	path := opts.Path
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}

	handler := mcp.NewStreamableHTTPHandler(func(_ *http.Request) *mcp.Server {
		return mcpServer
	}, &mcp.StreamableHTTPOptions{
		Logger: s.opts.Logger,
	})

	mux := http.NewServeMux()
	mux.Handle(path, guard(handler, opts.Origins, opts.Token))
	if opts.MetricsPath != "" && opts.Gatherer != nil {
		mux.Handle(opts.MetricsPath, promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{}))
	}
	return mux
}

// guard rejects foreign origins and, when token is set, requests without
// the matching bearer token.
func guard(next http.Handler, origins []string, token string) http.Handler {
	allowed := map[string]struct{}{}
	for _, origin := range origins {
		allowed[origin] = struct{}{}
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if origin := r.Header.Get("Origin"); origin != "" {
			if _, ok := allowed[origin]; !ok {
				http.Error(w, "Forbidden origin", http.StatusForbidden)
				return
			}
		}
		if token != "" && r.Header.Get("Authorization") != "Bearer "+token {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// ListenAndServe serves h on addr until ctx is cancelled.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, logger *slog.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("MCP server listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("mcp server failed: %w", err)
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("Shutting down MCP server")
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("mcp server shutdown failed: %w", err)
		}
		return nil
	}
}
