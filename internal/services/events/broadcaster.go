package events

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jwebster45206/world-of-london/pkg/state"
	"github.com/redis/go-redis/v9"
)

// SummaryTTL is how long a published session summary stays readable.
const SummaryTTL = time.Hour

// Event wraps one engine event for Pub/Sub subscribers.
type Event struct {
	Type   state.EventType `json:"type"`
	GameID string          `json:"game_id"`
	Data   state.Event     `json:"data"`
}

// Broadcaster publishes game events to Redis Pub/Sub so spectators can
// follow a session. It never reads game state back.
type Broadcaster struct {
	redisClient *redis.Client
	logger      *slog.Logger
}

// NewBroadcaster creates a new event broadcaster
func NewBroadcaster(redisClient *redis.Client, logger *slog.Logger) *Broadcaster {
	return &Broadcaster{
		redisClient: redisClient,
		logger:      logger,
	}
}

// Connect parses a redis:// URL, pings the server and returns a broadcaster.
func Connect(ctx context.Context, redisURL string, logger *slog.Logger) (*Broadcaster, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping failed: %w", err)
	}
	logger.Debug("Redis connected", "addr", opts.Addr)
	return NewBroadcaster(client, logger), nil
}

// Channel returns the Pub/Sub channel for a session.
func Channel(gameID uuid.UUID) string {
	return fmt.Sprintf("game-events:%s", gameID.String())
}

// SummaryKey returns the key holding a session's latest summary.
func SummaryKey(gameID uuid.UUID) string {
	return fmt.Sprintf("game-summary:%s", gameID.String())
}

// PublishEvents publishes each event in order. It stops at the first failure.
func (b *Broadcaster) PublishEvents(ctx context.Context, gameID uuid.UUID, events []state.Event) error {
	for _, e := range events {
		event := Event{
			Type:   e.Type,
			GameID: gameID.String(),
			Data:   e,
		}
		if err := b.publishToGame(ctx, gameID, event); err != nil {
			return err
		}
	}
	return nil
}

// PublishSummary stores the latest summary under SummaryKey with SummaryTTL.
func (b *Broadcaster) PublishSummary(ctx context.Context, s state.Summary) error {
	key := SummaryKey(s.ID)

	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}

	if err := b.redisClient.Set(ctx, key, data, SummaryTTL).Err(); err != nil {
		b.logger.Error("Redis SET failed", "key", key, "error", err)
		return fmt.Errorf("redis set failed: %w", err)
	}

	b.logger.Debug("Summary stored", "key", key, "turn", s.Turn)
	return nil
}

// Close releases the Redis connection.
func (b *Broadcaster) Close() error {
	return b.redisClient.Close()
}

// publishToGame publishes an event to the game-specific channel
func (b *Broadcaster) publishToGame(ctx context.Context, gameID uuid.UUID, event Event) error {
	channel := Channel(gameID)

	data, err := json.Marshal(event)
	if err != nil {
		b.logger.Error("Failed to marshal event", "error", err, "event", event)
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if err := b.redisClient.Publish(ctx, channel, data).Err(); err != nil {
		b.logger.Error("Failed to publish event", "error", err, "channel", channel)
		return fmt.Errorf("failed to publish event: %w", err)
	}

	b.logger.Debug("Event published",
		"channel", channel,
		"event_type", event.Type,
		"turn", event.Data.Turn,
	)
	return nil
}
