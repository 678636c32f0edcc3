package scenario

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jwebster45206/world-of-london/pkg/actor"
	"github.com/zyedidia/generic/mapset"
)

// Rand picks an index in [0, n). *rand.Rand from math/rand/v2 satisfies it.
type Rand interface {
	IntN(n int) int
}

// Room is a node in the navigation graph. Its occupant set mirrors the
// engine's location map and must only be changed by the engine.
type Room struct {
	Key         string
	description string
	exits       map[Direction]*Room
	exitOrder   []Direction // registration order
	chars       mapset.Set[*actor.Character]
}

// NewRoom creates a room with no exits and no occupants.
// description reads naturally after "You are", e.g. "in Soho".
func NewRoom(key, description string) *Room {
	if description == "" {
		panic("scenario.NewRoom: empty description")
	}
	return &Room{
		Key:         key,
		description: description,
		exits:       make(map[Direction]*Room),
		chars:       mapset.New[*actor.Character](),
	}
}

// SetExit registers a one-way exit. Registering the same direction twice,
// an unknown direction or a nil neighbor panics.
func (r *Room) SetExit(d Direction, neighbor *Room) {
	if _, ok := ParseDirection(d.String()); !ok {
		panic(fmt.Sprintf("scenario.Room.SetExit: unknown direction %d", int(d)))
	}
	if neighbor == nil {
		panic("scenario.Room.SetExit: nil neighbor")
	}
	if _, exists := r.exits[d]; exists {
		panic(fmt.Sprintf("scenario.Room.SetExit: %q already has a %s exit", r.description, d))
	}
	r.exits[d] = neighbor
	r.exitOrder = append(r.exitOrder, d)
}

// Exit returns the neighbor in direction d, or nil.
func (r *Room) Exit(d Direction) *Room {
	return r.exits[d]
}

// Exits returns the registered directions in registration order.
func (r *Room) Exits() []Direction {
	return slices.Clone(r.exitOrder)
}

// RandomExit returns a uniformly chosen neighbor, or nil if the room has no exits.
func (r *Room) RandomExit(rng Rand) *Room {
	if len(r.exitOrder) == 0 {
		return nil
	}
	return r.exits[r.exitOrder[rng.IntN(len(r.exitOrder))]]
}

// AddCharacter places c in the room. Adding nil or a present character panics.
func (r *Room) AddCharacter(c *actor.Character) {
	if c == nil {
		panic("scenario.Room.AddCharacter: nil character")
	}
	if r.chars.Has(c) {
		panic(fmt.Sprintf("scenario.Room.AddCharacter: %s is already %s", c.Name, r.description))
	}
	r.chars.Put(c)
}

// RemoveCharacter removes c from the room; absent characters are ignored.
func (r *Room) RemoveCharacter(c *actor.Character) {
	r.chars.Remove(c)
}

// HasCharacter reports whether c is in the room.
func (r *Room) HasCharacter(c *actor.Character) bool {
	return r.chars.Has(c)
}

// Characters returns the occupants in roster order.
func (r *Room) Characters() []*actor.Character {
	out := make([]*actor.Character, 0, r.chars.Size())
	r.chars.Each(func(c *actor.Character) {
		out = append(out, c)
	})
	slices.SortFunc(out, func(a, b *actor.Character) int {
		return int(a.ID) - int(b.ID)
	})
	return out
}

// Take removes it from the first occupant carrying it.
func (r *Room) Take(it actor.Item) bool {
	for _, c := range r.Characters() {
		if c.Take(it) {
			return true
		}
	}
	return false
}

// ShortDescription returns the description the room was created with.
func (r *Room) ShortDescription() string {
	return r.description
}

// LongDescription describes the room, its exits and its occupants:
//
//	You are in Soho.
//	Exits: north south
//	Characters: Alex; Laura, having the item[s]: sandwich;
func (r *Room) LongDescription() string {
	var sb strings.Builder
	sb.WriteString("You are " + r.description + ".\n")
	sb.WriteString("Exits:")
	for _, d := range r.exitOrder {
		sb.WriteString(" " + d.String())
	}
	if r.chars.Size() > 0 {
		sb.WriteString("\nCharacters: ")
		for _, c := range r.Characters() {
			sb.WriteString(c.String() + "; ")
		}
	}
	return sb.String()
}
