package state

// EventType names something that happened during an action.
type EventType string

const (
	EventNPCMoved        EventType = "npc.moved"
	EventRoomHarvested   EventType = "room.harvested"
	EventRoomDistributed EventType = "room.distributed"
	EventPlayerMoved     EventType = "player.moved"
	EventPlayerBlocked   EventType = "player.blocked"
	EventItemTaken       EventType = "item.taken"
	EventGameEnded       EventType = "game.ended"
)

// Event records one state change. Rooms are identified by their keys.
type Event struct {
	Type      EventType `json:"type"`
	Turn      int       `json:"turn"`
	Character string    `json:"character,omitempty"`
	From      string    `json:"from,omitempty"`
	To        string    `json:"to,omitempty"`
	Item      string    `json:"item,omitempty"`
	Affected  int       `json:"affected,omitempty"` // occupants changed by an enter-room effect
	Outcome   Outcome   `json:"outcome,omitempty"`
}

func (g *Game) record(e Event) {
	e.Turn = g.turn
	g.events = append(g.events, e)
}

// Events returns the events recorded since the previous call and clears them.
func (g *Game) Events() []Event {
	out := g.events
	g.events = nil
	return out
}
