package session

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/world-of-london/internal/logger"
	"github.com/jwebster45206/world-of-london/internal/metrics"
	"github.com/jwebster45206/world-of-london/pkg/state"
)

// Publisher receives drained engine events. *events.Broadcaster implements it.
type Publisher interface {
	PublishEvents(ctx context.Context, gameID uuid.UUID, events []state.Event) error
	PublishSummary(ctx context.Context, s state.Summary) error
}

// Session drives one game from text input and forwards what happened to the
// log, the metrics and an optional publisher.
type Session struct {
	game   *state.Game
	logger *slog.Logger
	pub    Publisher
}

// New wraps g. pub may be nil.
func New(g *state.Game, log *slog.Logger, pub Publisher) *Session {
	return &Session{
		game:   g,
		logger: logger.WithSession(log, g.ID),
		pub:    pub,
	}
}

func (s *Session) Game() *state.Game {
	return s.game
}

// Welcome returns the opening text followed by the help hint.
func (s *Session) Welcome(ctx context.Context) string {
	s.logger.Info("Game started", "room", s.game.CurrentRoom().Key, "time_limit", s.game.TimeLimit())
	s.publishSummary(ctx)
	return s.game.Welcome() + state.HelpHint()
}

// Handle parses and runs one line of input.
func (s *Session) Handle(ctx context.Context, line string) string {
	start := time.Now()
	cmd := state.ParseCommand(line)
	out := cmd.Execute(s.game)
	metrics.RecordCommand(cmd.Type, time.Since(start))

	s.logger.Debug("Command handled", "input", line, "command", cmd.String(), "turn", s.game.Turn())
	s.flush(ctx)
	return out
}

// Finished reports whether the game has ended.
func (s *Session) Finished() bool {
	return s.game.Finished()
}

func (s *Session) flush(ctx context.Context) {
	evs := s.game.Events()
	if len(evs) == 0 {
		return
	}
	metrics.RecordEvents(evs)

	for _, e := range evs {
		attrs := []any{"turn", e.Turn, "event_type", e.Type}
		if e.Character != "" {
			attrs = append(attrs, "character", e.Character)
		}
		if e.From != "" {
			attrs = append(attrs, "from", e.From)
		}
		if e.To != "" {
			attrs = append(attrs, "to", e.To)
		}
		if e.Item != "" {
			attrs = append(attrs, "item", e.Item, "affected", e.Affected)
		}
		if e.Type == state.EventGameEnded {
			s.logger.Info("Game ended", append(attrs, "outcome", e.Outcome)...)
			continue
		}
		s.logger.Debug("Game event", attrs...)
	}

	if s.pub == nil {
		return
	}
	if err := s.pub.PublishEvents(ctx, s.game.ID, evs); err != nil {
		s.logger.Warn("Failed to broadcast events", "error", err, "count", len(evs))
	}
	s.publishSummary(ctx)
}

func (s *Session) publishSummary(ctx context.Context) {
	if s.pub == nil {
		return
	}
	if err := s.pub.PublishSummary(ctx, s.game.Summary()); err != nil {
		s.logger.Warn("Failed to store summary", "error", err)
	}
}
