package scenario

import (
	_ "embed"
	"fmt"

	"github.com/jwebster45206/world-of-london/pkg/actor"
	"gopkg.in/yaml.v3"
)

//go:embed london.yaml
var londonYAML []byte

// World is the built room graph together with where everyone starts.
type World struct {
	Name       string
	Rooms      map[string]*Room
	Start      *Room
	Goal       *Room
	Placements map[actor.ID]*Room
}

type worldDoc struct {
	Name  string `yaml:"name"`
	Start string `yaml:"start"`
	Goal  string `yaml:"goal"`
	Rooms []struct {
		Key         string `yaml:"key"`
		Description string `yaml:"description"`
	} `yaml:"rooms"`
	Exits []struct {
		From      string `yaml:"from"`
		Direction string `yaml:"direction"`
		To        string `yaml:"to"`
	} `yaml:"exits"`
	Characters map[string]string `yaml:"characters"`
}

// London builds the fixed World of London map. The rooms are new on every
// call; nothing is shared between worlds.
func London() *World {
	w, err := buildWorld(londonYAML)
	if err != nil {
		// The document is compiled in, so this is a programming error.
		panic(fmt.Sprintf("scenario.London: %v", err))
	}
	return w
}

func buildWorld(data []byte) (*World, error) {
	var doc worldDoc
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse world: %w", err)
	}

	w := &World{
		Name:       doc.Name,
		Rooms:      make(map[string]*Room, len(doc.Rooms)),
		Placements: make(map[actor.ID]*Room, len(doc.Characters)),
	}
	for _, r := range doc.Rooms {
		if _, dup := w.Rooms[r.Key]; dup {
			return nil, fmt.Errorf("duplicate room %q", r.Key)
		}
		if r.Description == "" {
			return nil, fmt.Errorf("room %q has no description", r.Key)
		}
		w.Rooms[r.Key] = NewRoom(r.Key, r.Description)
	}

	for _, e := range doc.Exits {
		from, ok := w.Rooms[e.From]
		if !ok {
			return nil, fmt.Errorf("exit from unknown room %q", e.From)
		}
		to, ok := w.Rooms[e.To]
		if !ok {
			return nil, fmt.Errorf("exit to unknown room %q", e.To)
		}
		d, ok := ParseDirection(e.Direction)
		if !ok {
			return nil, fmt.Errorf("exit from %q has unknown direction %q", e.From, e.Direction)
		}
		if from.Exit(d) != nil {
			return nil, fmt.Errorf("room %q has two %s exits", e.From, d)
		}
		from.SetExit(d, to)
	}

	for key, roomKey := range doc.Characters {
		id, ok := actor.ParseID(key)
		if !ok {
			return nil, fmt.Errorf("unknown character %q", key)
		}
		room, ok := w.Rooms[roomKey]
		if !ok {
			return nil, fmt.Errorf("character %q placed in unknown room %q", key, roomKey)
		}
		w.Placements[id] = room
	}
	for _, id := range actor.IDs() {
		if _, ok := w.Placements[id]; !ok {
			return nil, fmt.Errorf("character %q has no starting room", id)
		}
	}

	var ok bool
	if w.Start, ok = w.Rooms[doc.Start]; !ok {
		return nil, fmt.Errorf("unknown start room %q", doc.Start)
	}
	if w.Goal, ok = w.Rooms[doc.Goal]; !ok {
		return nil, fmt.Errorf("unknown goal room %q", doc.Goal)
	}
	if w.Placements[actor.Player] != w.Start {
		return nil, fmt.Errorf("player must start in %q", doc.Start)
	}
	return w, nil
}
