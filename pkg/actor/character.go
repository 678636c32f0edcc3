package actor

import (
	"slices"
	"strings"

	"github.com/zyedidia/generic/mapset"
)

// ID identifies a member of the fixed character roster.
type ID int

const (
	Laura ID = iota
	Sally
	Andy
	Alex
	Player
	CookieMonster
	CrispGiver
)

// BehaviorKind selects what a character does to a room it walks into.
type BehaviorKind int

const (
	BehaviorNone BehaviorKind = iota
	BehaviorHarvest
	BehaviorDistribute
)

// Behavior is a character's enter-room effect.
type Behavior struct {
	Kind BehaviorKind
	Item Item
}

// Harvest takes it from everyone in the room entered.
func Harvest(it Item) Behavior {
	return Behavior{Kind: BehaviorHarvest, Item: it}
}

// Distribute gives it to everyone in the room entered.
func Distribute(it Item) Behavior {
	return Behavior{Kind: BehaviorDistribute, Item: it}
}

func (b Behavior) String() string {
	switch b.Kind {
	case BehaviorHarvest:
		return "harvest " + b.Item.String()
	case BehaviorDistribute:
		return "distribute " + b.Item.String()
	default:
		return "none"
	}
}

// Character is a roster member together with its inventory.
// Identity fields never change after construction.
type Character struct {
	ID              ID
	Name            string
	MoveProbability float64
	Behavior        Behavior

	inventory mapset.Set[Item]
}

// NewCharacter creates a character holding the given items.
func NewCharacter(id ID, name string, moveProbability float64, behavior Behavior, items ...Item) *Character {
	if name == "" {
		panic("actor.NewCharacter: empty name")
	}
	if moveProbability < 0 || moveProbability > 1 {
		panic("actor.NewCharacter: move probability outside [0,1]")
	}
	return &Character{
		ID:              id,
		Name:            name,
		MoveProbability: moveProbability,
		Behavior:        behavior,
		inventory:       mapset.Of(items...),
	}
}

// Take removes it from the inventory and reports whether it was held.
func (c *Character) Take(it Item) bool {
	if !c.inventory.Has(it) {
		return false
	}
	c.inventory.Remove(it)
	return true
}

// Receive adds it to the inventory. It returns false if it was already held.
func (c *Character) Receive(it Item) bool {
	if c.inventory.Has(it) {
		return false
	}
	c.inventory.Put(it)
	return true
}

// Has reports whether it is in the inventory.
func (c *Character) Has(it Item) bool {
	return c.inventory.Has(it)
}

// HasAll reports whether the inventory is a superset of items.
func (c *Character) HasAll(items ...Item) bool {
	for _, it := range items {
		if !c.inventory.Has(it) {
			return false
		}
	}
	return true
}

// Items returns the inventory in item declaration order.
func (c *Character) Items() []Item {
	items := make([]Item, 0, c.inventory.Size())
	c.inventory.Each(func(it Item) {
		items = append(items, it)
	})
	slices.Sort(items)
	return items
}

// Automove reports whether the movement probability is strictly less than roll.
func (c *Character) Automove(roll float64) bool {
	return c.MoveProbability < roll
}

// EnterRoom applies the character's behavior to the occupants of the room
// being entered and returns how many of them changed. Occupants that already
// hold (or lack) the item are skipped.
func (c *Character) EnterRoom(occupants []*Character) int {
	changed := 0
	switch c.Behavior.Kind {
	case BehaviorHarvest:
		for _, o := range occupants {
			if o.Take(c.Behavior.Item) {
				changed++
			}
		}
	case BehaviorDistribute:
		for _, o := range occupants {
			if o.Receive(c.Behavior.Item) {
				changed++
			}
		}
	}
	return changed
}

func (c *Character) String() string {
	items := c.Items()
	if len(items) == 0 {
		return c.Name
	}
	labels := make([]string, len(items))
	for i, it := range items {
		labels[i] = it.String()
	}
	return c.Name + ", having the item[s]: " + strings.Join(labels, ", ")
}
