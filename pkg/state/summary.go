package state

import (
	"github.com/google/uuid"
	"github.com/jwebster45206/world-of-london/pkg/actor"
)

// Summary is a read-only snapshot of a session, suitable for JSON.
type Summary struct {
	ID        uuid.UUID         `json:"id"`
	Room      string            `json:"room"`
	Turn      int               `json:"turn"`
	TimeLimit int               `json:"time_limit"`
	Finished  bool              `json:"finished"`
	Outcome   Outcome           `json:"outcome"`
	Inventory []string          `json:"inventory"`
	Locations map[string]string `json:"locations"` // character key -> room key
}

// Summary snapshots the session.
func (g *Game) Summary() Summary {
	items := g.Inventory()
	inv := make([]string, len(items))
	for i, it := range items {
		inv[i] = it.String()
	}

	locs := make(map[string]string, len(g.location))
	for _, id := range actor.IDs() {
		locs[id.String()] = g.location[id].Key
	}

	return Summary{
		ID:        g.ID,
		Room:      g.currentRoom.Key,
		Turn:      g.turn,
		TimeLimit: g.timeLimit,
		Finished:  g.finished,
		Outcome:   g.outcome,
		Inventory: inv,
		Locations: locs,
	}
}
