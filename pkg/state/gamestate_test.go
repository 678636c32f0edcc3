package state

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jwebster45206/world-of-london/pkg/actor"
	"github.com/jwebster45206/world-of-london/pkg/scenario"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSource replays queued draws. Once a queue runs dry it returns
// 0.99 for rolls (only the certain movers wander) and 0 for exit picks.
type scriptedSource struct {
	rolls []float64
	picks []int
}

func (s *scriptedSource) Float64() float64 {
	if len(s.rolls) == 0 {
		return 0.99
	}
	v := s.rolls[0]
	s.rolls = s.rolls[1:]
	return v
}

func (s *scriptedSource) IntN(n int) int {
	if len(s.picks) == 0 {
		return 0
	}
	v := s.picks[0]
	s.picks = s.picks[1:]
	return v % n
}

func newTestGame(src *scriptedSource) *Game {
	return New(WithSource(src), WithID(uuid.MustParse("00000000-0000-0000-0000-000000000001")))
}

// assertConsistent checks that the location map and the rooms agree.
func assertConsistent(t *testing.T, g *Game) {
	t.Helper()
	total := 0
	for _, r := range g.world.Rooms {
		total += len(r.Characters())
	}
	assert.Equal(t, len(actor.IDs()), total, "each character is in exactly one room")
	for _, id := range actor.IDs() {
		room := g.LocationOf(id)
		require.NotNil(t, room, id.String())
		assert.True(t, room.HasCharacter(g.Character(id)), "%s not in %s", id, room.Key)
	}
	assert.Equal(t, g.LocationOf(actor.Player), g.CurrentRoom())
}

func TestNew(t *testing.T) {
	g := newTestGame(&scriptedSource{})

	assert.Equal(t, "st_pancras", g.CurrentRoom().Key)
	assert.Equal(t, "trafalgar_square", g.GoalRoom().Key)
	assert.Equal(t, 0, g.Turn())
	assert.Equal(t, DefaultTimeLimit, g.TimeLimit())
	assert.False(t, g.Finished())
	assert.True(t, g.InTime())
	assert.Equal(t, Playing, g.Outcome())
	assert.Empty(t, g.Inventory())
	assertConsistent(t, g)
}

func TestNew_GamesAreIndependent(t *testing.T) {
	a := newTestGame(&scriptedSource{})
	b := newTestGame(&scriptedSource{})

	a.Character(actor.Sally).Take(actor.Crisps)
	assert.True(t, b.Character(actor.Sally).Has(actor.Crisps))
	assert.NotSame(t, a.CurrentRoom(), b.CurrentRoom())
}

func TestWithTimeLimit(t *testing.T) {
	assert.Equal(t, 3, New(WithSource(&scriptedSource{}), WithTimeLimit(3)).TimeLimit())
	assert.Equal(t, DefaultTimeLimit, New(WithSource(&scriptedSource{}), WithTimeLimit(0)).TimeLimit())
}

func TestGame_Welcome(t *testing.T) {
	g := newTestGame(&scriptedSource{})

	want := "\nWelcome to the World of London!\nWorld of London is a new travel game.\n" +
		"You are in St Pancras.\nExits: east west\n" +
		"Characters: The player (Me); CookieMonster; CrispGiver; \n"
	assert.Equal(t, want, g.Welcome())
}

func TestGame_StaticText(t *testing.T) {
	g := newTestGame(&scriptedSource{})

	assert.Equal(t, "You are lost. You are alone. You wander around foggy London.\n", g.Help())
	assert.Equal(t, g.CurrentRoom().LongDescription(), g.Look())
	assert.Equal(t, 0, g.Turn())
	assert.Empty(t, g.Events())
}

func TestGame_PathToGoal(t *testing.T) {
	g := newTestGame(&scriptedSource{})
	path := []scenario.Direction{
		scenario.West, scenario.South, scenario.West, scenario.South,
		scenario.South, scenario.South, scenario.South,
	}

	var msg string
	for i, d := range path {
		require.False(t, g.Finished(), "finished early at step %d", i)
		msg = g.GoRoom(d, false)
		assertConsistent(t, g)
	}

	assert.True(t, g.Finished())
	assert.True(t, g.InTime())
	assert.Equal(t, ReachedGoal, g.Outcome())
	assert.Equal(t, len(path), g.Turn())
	assert.True(t, strings.HasPrefix(msg, "You are on Trafalgar Square.\n"))
	assert.True(t, strings.HasSuffix(msg,
		"\nCongratulations! You reached the goal of the game.\nThank you for playing.  Good bye."))
}

func TestGame_TimeLimit(t *testing.T) {
	g := newTestGame(&scriptedSource{})
	bounce := []scenario.Direction{scenario.East, scenario.West}

	for i := 0; i < DefaultTimeLimit; i++ {
		msg := g.GoRoom(bounce[i%2], false)
		require.NotEqual(t, msgNoExit, msg)
		require.False(t, g.Finished(), "finished after %d moves", i+1)
	}
	assert.True(t, g.InTime())

	msg := g.GoRoom(bounce[DefaultTimeLimit%2], false)

	assert.True(t, g.Finished())
	assert.False(t, g.InTime())
	assert.Equal(t, TimedOut, g.Outcome())
	assert.True(t, strings.HasSuffix(msg, "\nYou ran out of time. You have lost.\nThank you for playing.  Good bye."))
	assertConsistent(t, g)
}

func TestGame_GoalCheckedBeforeTimeout(t *testing.T) {
	g := New(WithSource(&scriptedSource{}), WithTimeLimit(6))
	path := []scenario.Direction{
		scenario.West, scenario.South, scenario.West, scenario.South,
		scenario.South, scenario.South, scenario.South,
	}

	for _, d := range path {
		g.GoRoom(d, false)
	}

	assert.True(t, g.Finished())
	assert.False(t, g.InTime())
	assert.Equal(t, ReachedGoal, g.Outcome())
}

func TestGame_NoExitStillTicks(t *testing.T) {
	g := newTestGame(&scriptedSource{rolls: []float64{0}})

	msg := g.GoRoom(scenario.North, false)

	assert.Equal(t, "There is no exit in that direction!", msg)
	assert.Equal(t, 1, g.Turn())
	assert.Equal(t, "st_pancras", g.CurrentRoom().Key)
	// A zero roll sends every other character through its first exit.
	assert.Equal(t, "kings_cross", g.LocationOf(actor.CookieMonster).Key)
	assert.Equal(t, "st_pancras", g.LocationOf(actor.Sally).Key)
	assert.Equal(t, "british_museum", g.LocationOf(actor.Laura).Key)
	assert.Equal(t, "chinatown", g.LocationOf(actor.Andy).Key)
	assert.Equal(t, "leicester_square", g.LocationOf(actor.Alex).Key)
	assertConsistent(t, g)

	events := g.Events()
	require.NotEmpty(t, events)
	last := events[len(events)-1]
	assert.Equal(t, EventPlayerBlocked, last.Type)
	assert.Equal(t, "st_pancras", last.From)
}

func TestGame_PlayerNeverWanders(t *testing.T) {
	g := newTestGame(&scriptedSource{rolls: []float64{0, 0, 0}})

	for range 3 {
		g.GoRoom(scenario.North, false)
	}
	assert.Equal(t, "st_pancras", g.CurrentRoom().Key)
	assertConsistent(t, g)
}

func TestGame_EnterRoomEffects(t *testing.T) {
	// Both crisp characters leave St Pancras west for the British Library.
	g := newTestGame(&scriptedSource{picks: []int{1, 1}})

	msg := g.GoRoom(scenario.West, false)
	require.True(t, strings.HasPrefix(msg, "You are in the British Library.\n"))

	events := g.Events()
	require.Len(t, events, 5)
	assert.Equal(t, EventNPCMoved, events[0].Type)
	assert.Equal(t, Event{Type: EventRoomHarvested, Turn: 1, Character: "cookie_monster", To: "british_library", Item: "crisps", Affected: 1}, events[1])
	assert.Equal(t, EventNPCMoved, events[2].Type)
	assert.Equal(t, Event{Type: EventRoomDistributed, Turn: 1, Character: "crisp_giver", To: "british_library", Item: "crisps", Affected: 2}, events[3])
	assert.Equal(t, Event{Type: EventPlayerMoved, Turn: 1, Character: "player", From: "st_pancras", To: "british_library"}, events[4])

	assert.True(t, g.Character(actor.Sally).Has(actor.Crisps), "handed back by the giver")
	assert.True(t, g.Character(actor.CookieMonster).Has(actor.Crisps))
	assert.False(t, g.Character(actor.CrispGiver).Has(actor.Crisps))
	assert.False(t, g.Character(actor.Player).Has(actor.Crisps), "the player arrived after the giver")

	assert.Equal(t, "Item taken.", g.Take(actor.Crisps))
	assert.False(t, g.Character(actor.Sally).Has(actor.Crisps), "first holder in roster order")
	assert.True(t, g.Character(actor.CookieMonster).Has(actor.Crisps))
	assert.Equal(t, []actor.Item{actor.Crisps}, g.Inventory())
	assert.Equal(t, 1, g.Turn(), "taking does not advance the clock")
	assertConsistent(t, g)
}

func TestGame_RandomExit(t *testing.T) {
	g := newTestGame(&scriptedSource{picks: []int{1, 1, 0}})

	msg := g.GoRoom(0, true)

	assert.True(t, strings.HasPrefix(msg, "You are in Kings Cross.\n"))
	assert.Equal(t, 1, g.Turn())
	assertConsistent(t, g)
}

func TestGame_GoRoomInvalidDirection(t *testing.T) {
	g := newTestGame(&scriptedSource{})

	assert.Panics(t, func() { g.GoRoom(scenario.Direction(42), false) })
	assert.NotPanics(t, func() { g.GoRoom(scenario.Direction(42), true) })
}

func TestGame_Take(t *testing.T) {
	g := newTestGame(&scriptedSource{})

	for range 5 {
		assert.Equal(t, "Item not in this room.", g.Take(actor.Sandwich))
	}
	assert.Equal(t, "You cannot eat yet.", g.Eat())
	assert.False(t, g.Finished())
	assert.Empty(t, g.Events())
}

func TestGame_Eat(t *testing.T) {
	tests := []struct {
		name  string
		items []actor.Item
		won   bool
	}{
		{name: "nothing", won: false},
		{name: "two of three", items: []actor.Item{actor.Sandwich, actor.Drink}, won: false},
		{name: "full meal", items: actor.Meal(), won: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGame(&scriptedSource{})
			for _, it := range tt.items {
				g.Character(actor.Player).Receive(it)
			}

			msg := g.Eat()

			assert.Equal(t, tt.won, g.Finished())
			if tt.won {
				assert.Equal(t, "Congratulations! You have won.\nThank you for playing.  Good bye.", msg)
				assert.Equal(t, AteMeal, g.Outcome())
				assert.Equal(t, actor.Meal(), g.Inventory(), "eating consumes nothing")
			} else {
				assert.Equal(t, "You cannot eat yet.", msg)
				assert.Equal(t, Playing, g.Outcome())
			}
		})
	}
}

func TestGame_QuitIsIdempotent(t *testing.T) {
	g := newTestGame(&scriptedSource{})

	assert.Equal(t, "Thank you for playing.  Good bye.", g.Quit())
	assert.Equal(t, "Thank you for playing.  Good bye.", g.Quit())
	assert.True(t, g.Finished())
	assert.Equal(t, Quit, g.Outcome())

	events := g.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventGameEnded, events[0].Type)
	assert.Equal(t, Quit, events[0].Outcome)
}

func TestGame_ActionsAfterEnd(t *testing.T) {
	g := newTestGame(&scriptedSource{})
	g.Quit()
	g.Events()

	assert.Equal(t, "The game is over.", g.GoRoom(scenario.West, false))
	assert.Equal(t, "The game is over.", g.GoRoom(0, true))
	assert.Equal(t, "The game is over.", g.Take(actor.Crisps))
	assert.Equal(t, 0, g.Turn())
	assert.Equal(t, "st_pancras", g.CurrentRoom().Key)
	assert.Equal(t, g.CurrentRoom().LongDescription(), g.Look())
	assert.Equal(t, Quit, g.Outcome())
	assert.Empty(t, g.Events())
}

func TestGame_Summary(t *testing.T) {
	g := newTestGame(&scriptedSource{})
	g.GoRoom(scenario.West, false)

	s := g.Summary()
	assert.Equal(t, "british_library", s.Room)
	assert.Equal(t, 1, s.Turn)
	assert.Equal(t, Playing, s.Outcome)
	assert.Equal(t, "british_library", s.Locations["player"])
	assert.Equal(t, "kings_cross", s.Locations["cookie_monster"])
	assert.Len(t, s.Locations, len(actor.IDs()))

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id":"00000000-0000-0000-0000-000000000001"`)
	assert.Contains(t, string(data), `"inventory":[]`)
}

func TestGame_EventsDrain(t *testing.T) {
	g := newTestGame(&scriptedSource{})
	g.GoRoom(scenario.East, false)

	first := g.Events()
	assert.NotEmpty(t, first)
	for _, e := range first {
		assert.Equal(t, 1, e.Turn)
	}
	assert.Empty(t, g.Events())
}

func TestNewSource(t *testing.T) {
	a := NewSource(7)
	b := NewSource(7)
	for range 10 {
		assert.Equal(t, a.Float64(), b.Float64())
		assert.Equal(t, a.IntN(4), b.IntN(4))
	}

	r := NewSource(-1).Float64()
	assert.GreaterOrEqual(t, r, 0.0)
	assert.Less(t, r, 1.0)
}
