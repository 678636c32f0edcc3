package state

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/jwebster45206/world-of-london/pkg/actor"
	"github.com/jwebster45206/world-of-london/pkg/scenario"
)

// DefaultTimeLimit is the number of moves a player may make before losing.
const DefaultTimeLimit = 12

const (
	msgHelp      = "You are lost. You are alone. You wander around foggy London.\n"
	msgNoExit    = "There is no exit in that direction!"
	msgGoal      = "\nCongratulations! You reached the goal of the game.\n"
	msgTimeout   = "\nYou ran out of time. You have lost.\n"
	msgFarewell  = "Thank you for playing.  Good bye."
	msgTaken     = "Item taken."
	msgNotHere   = "Item not in this room."
	msgAte       = "Congratulations! You have won.\n"
	msgNotYet    = "You cannot eat yet."
	msgGameOver  = "The game is over."
	msgWelcomeHd = "\nWelcome to the World of London!\nWorld of London is a new travel game.\n"
)

// Outcome is how a session ended, or Playing while it has not.
type Outcome string

const (
	Playing     Outcome = "playing"
	ReachedGoal Outcome = "reached_goal"
	AteMeal     Outcome = "ate_meal"
	TimedOut    Outcome = "timed_out"
	Quit        Outcome = "quit"
)

// Game is one World of London session. It owns the rooms, the roster and the
// location map; callers drive it one action at a time from a single goroutine.
type Game struct {
	ID uuid.UUID

	world       *scenario.World
	chars       map[actor.ID]*actor.Character
	location    map[actor.ID]*scenario.Room
	currentRoom *scenario.Room

	turn      int
	timeLimit int
	finished  bool
	outcome   Outcome

	rng    Source
	events []Event
}

// Option configures a Game.
type Option func(*Game)

// WithSource replaces the random source.
func WithSource(src Source) Option {
	return func(g *Game) {
		g.rng = src
	}
}

// WithTimeLimit overrides DefaultTimeLimit. Non-positive values are ignored.
func WithTimeLimit(limit int) Option {
	return func(g *Game) {
		if limit > 0 {
			g.timeLimit = limit
		}
	}
}

// WithID sets the session ID instead of generating one.
func WithID(id uuid.UUID) Option {
	return func(g *Game) {
		g.ID = id
	}
}

// New builds a fresh London with every character at its starting room.
func New(opts ...Option) *Game {
	g := &Game{
		ID:        uuid.New(),
		world:     scenario.London(),
		chars:     actor.NewRoster(),
		location:  make(map[actor.ID]*scenario.Room),
		timeLimit: DefaultTimeLimit,
		outcome:   Playing,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		g.rng = NewSource(-1)
	}

	for _, id := range actor.IDs() {
		room := g.world.Placements[id]
		room.AddCharacter(g.chars[id])
		g.location[id] = room
	}
	g.currentRoom = g.location[actor.Player]
	return g
}

// Welcome returns the greeting and the opening room.
func (g *Game) Welcome() string {
	return msgWelcomeHd + g.currentRoom.LongDescription() + "\n"
}

// Help returns the static help text.
func (g *Game) Help() string {
	return msgHelp
}

// Look describes the current room.
func (g *Game) Look() string {
	return g.currentRoom.LongDescription()
}

// Quit ends the session. Calling it again has no further effect.
func (g *Game) Quit() string {
	g.end(Quit)
	return msgFarewell
}

// Take moves it from someone in the current room to the player.
func (g *Game) Take(it actor.Item) string {
	if g.finished {
		return msgGameOver
	}
	if !g.currentRoom.Take(it) {
		return msgNotHere
	}
	g.chars[actor.Player].Receive(it)
	g.record(Event{
		Type:      EventItemTaken,
		Character: actor.Player.String(),
		To:        g.currentRoom.Key,
		Item:      it.String(),
	})
	return msgTaken
}

// Eat wins the game if the player carries a full meal. Nothing is consumed.
func (g *Game) Eat() string {
	if !g.chars[actor.Player].HasAll(actor.Meal()...) {
		return msgNotYet
	}
	g.end(AteMeal)
	return msgAte + g.Quit()
}

// GoRoom advances one turn: the clock ticks, the other characters wander,
// then the player walks through exit d (or a random exit). When there is no
// such exit the player stays put, but the tick has already happened.
//
// Passing an unknown direction with random unset panics.
func (g *Game) GoRoom(d scenario.Direction, random bool) string {
	if !random {
		if _, ok := scenario.ParseDirection(d.String()); !ok {
			panic(fmt.Sprintf("state.Game.GoRoom: invalid direction %d", int(d)))
		}
	}
	if g.finished {
		return msgGameOver
	}

	g.turn++
	g.moveCharacters()

	var next *scenario.Room
	if random {
		next = g.currentRoom.RandomExit(g.rng)
	} else {
		next = g.currentRoom.Exit(d)
	}
	if next == nil {
		g.record(Event{
			Type:      EventPlayerBlocked,
			Character: actor.Player.String(),
			From:      g.currentRoom.Key,
		})
		return msgNoExit
	}

	from := g.currentRoom
	g.relocate(g.chars[actor.Player], next)
	g.currentRoom = g.location[actor.Player]
	g.record(Event{
		Type:      EventPlayerMoved,
		Character: actor.Player.String(),
		From:      from.Key,
		To:        next.Key,
	})

	msg := g.Look()
	if g.currentRoom == g.world.Goal {
		g.end(ReachedGoal)
		msg += msgGoal + g.Quit()
	} else if !g.InTime() {
		g.end(TimedOut)
		msg += msgTimeout + g.Quit()
	}
	return msg
}

// Finished reports whether the session has ended.
func (g *Game) Finished() bool {
	return g.finished
}

// InTime reports whether the turn counter is still within the limit.
func (g *Game) InTime() bool {
	return g.turn >= 0 && g.turn <= g.timeLimit
}

// Turn returns the number of moves made so far.
func (g *Game) Turn() int {
	return g.turn
}

func (g *Game) TimeLimit() int {
	return g.timeLimit
}

// CurrentRoom returns the room the player is in.
func (g *Game) CurrentRoom() *scenario.Room {
	return g.currentRoom
}

func (g *Game) GoalRoom() *scenario.Room {
	return g.world.Goal
}

func (g *Game) Outcome() Outcome {
	return g.outcome
}

// Character returns the roster member with the given id.
func (g *Game) Character(id actor.ID) *actor.Character {
	return g.chars[id]
}

// LocationOf returns the room character id is in.
func (g *Game) LocationOf(id actor.ID) *scenario.Room {
	return g.location[id]
}

// Inventory returns the player's items.
func (g *Game) Inventory() []actor.Item {
	return g.chars[actor.Player].Items()
}

// moveCharacters runs the tick for everyone but the player. A single roll is
// shared by the whole tick.
func (g *Game) moveCharacters() {
	roll := g.rng.Float64()
	for _, id := range actor.IDs() {
		if id == actor.Player {
			continue
		}
		c := g.chars[id]
		if c.Automove(roll) {
			continue
		}
		from := g.location[id]
		to := from.RandomExit(g.rng)
		if to == nil {
			continue
		}
		affected := g.relocate(c, to)
		g.record(Event{
			Type:      EventNPCMoved,
			Character: id.String(),
			From:      from.Key,
			To:        to.Key,
		})
		switch c.Behavior.Kind {
		case actor.BehaviorHarvest:
			g.record(Event{Type: EventRoomHarvested, Character: id.String(), To: to.Key, Item: c.Behavior.Item.String(), Affected: affected})
		case actor.BehaviorDistribute:
			g.record(Event{Type: EventRoomDistributed, Character: id.String(), To: to.Key, Item: c.Behavior.Item.String(), Affected: affected})
		}
	}
}

// relocate is the only place a character changes rooms. The mover's effect
// runs against the destination's occupants before the mover joins them.
func (g *Game) relocate(c *actor.Character, to *scenario.Room) int {
	g.location[c.ID].RemoveCharacter(c)
	affected := c.EnterRoom(to.Characters())
	to.AddCharacter(c)
	g.location[c.ID] = to
	return affected
}

func (g *Game) end(o Outcome) {
	if g.finished {
		return
	}
	g.finished = true
	g.outcome = o
	g.record(Event{Type: EventGameEnded, Outcome: o, To: g.currentRoom.Key})
}
