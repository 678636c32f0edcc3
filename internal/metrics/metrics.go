package metrics

import (
	"time"

	"github.com/jwebster45206/world-of-london/pkg/state"
	"github.com/prometheus/client_golang/prometheus"
)

// Commands counts parsed player commands by type.
// Use RegisterMetrics to register this with a Prometheus registry.
var Commands = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "wol_commands_total",
		Help: "Total number of player commands handled",
	},
	[]string{"command"},
)

// CommandDuration is the histogram for command handling time.
var CommandDuration = prometheus.NewHistogramVec(
	prometheus.HistogramOpts{
		Name:    "wol_command_duration_seconds",
		Help:    "Command handling duration in seconds",
		Buckets: prometheus.DefBuckets,
	},
	[]string{"command"},
)

// Events counts engine events by type.
var Events = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "wol_events_total",
		Help: "Total number of game events",
	},
	[]string{"type"},
)

// GamesEnded counts finished sessions by outcome.
var GamesEnded = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "wol_games_ended_total",
		Help: "Total number of finished games",
	},
	[]string{"outcome"},
)

// RegisterMetrics registers the game metrics with the given Prometheus registry.
// Panics if registration fails (following prometheus convention).
func RegisterMetrics(reg prometheus.Registerer) {
	reg.MustRegister(Commands)
	reg.MustRegister(CommandDuration)
	reg.MustRegister(Events)
	reg.MustRegister(GamesEnded)
}

// RecordCommand counts one command and how long it took.
func RecordCommand(cmd state.CommandType, duration time.Duration) {
	label := string(cmd)
	if cmd == state.CmdUnknown {
		label = "unknown"
	}
	Commands.WithLabelValues(label).Inc()
	CommandDuration.WithLabelValues(label).Observe(duration.Seconds())
}

// RecordEvents counts drained engine events.
func RecordEvents(events []state.Event) {
	for _, e := range events {
		Events.WithLabelValues(string(e.Type)).Inc()
		if e.Type == state.EventGameEnded {
			GamesEnded.WithLabelValues(string(e.Outcome)).Inc()
		}
	}
}
