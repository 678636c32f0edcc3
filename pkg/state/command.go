package state

import (
	"strings"

	"github.com/jwebster45206/world-of-london/pkg/actor"
	"github.com/jwebster45206/world-of-london/pkg/scenario"
)

type CommandType string

const (
	CmdGo      CommandType = "go"
	CmdTake    CommandType = "take"
	CmdHelp    CommandType = "help"
	CmdQuit    CommandType = "quit"
	CmdLook    CommandType = "look"
	CmdEat     CommandType = "eat"
	CmdRandom  CommandType = "random"
	CmdUnknown CommandType = "" // anything not understood
)

const (
	UnknownCommand = "I do not understand this command."
	CommandList    = "Your commands are: go <direction>, look, take, eat, quit, help, random"
)

// HelpHint is shown beneath the welcome text.
func HelpHint() string {
	return "Type 'help' if you need help."
}

// Command is a parsed line of player input.
type Command struct {
	Type      CommandType
	Direction scenario.Direction // set for CmdGo
	Item      actor.Item         // set for CmdTake
}

var known = map[string]CommandType{
	"go":     CmdGo,
	"take":   CmdTake,
	"help":   CmdHelp,
	"quit":   CmdQuit,
	"look":   CmdLook,
	"eat":    CmdEat,
	"random": CmdRandom,
}

// ParseCommand reads the first two words of line. Matching is exact and
// case-sensitive; go and take need a valid second word, or the whole line is
// treated as unknown. Words past the second are ignored.
func ParseCommand(line string) Command {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Command{Type: CmdUnknown}
	}
	cmd, ok := known[fields[0]]
	if !ok {
		return Command{Type: CmdUnknown}
	}

	var arg string
	if len(fields) > 1 {
		arg = fields[1]
	}

	switch cmd {
	case CmdGo:
		d, ok := scenario.ParseDirection(arg)
		if !ok {
			return Command{Type: CmdUnknown}
		}
		return Command{Type: CmdGo, Direction: d}
	case CmdTake:
		it, ok := actor.ParseItem(arg)
		if !ok {
			return Command{Type: CmdUnknown}
		}
		return Command{Type: CmdTake, Item: it}
	default:
		return Command{Type: cmd}
	}
}

// Execute runs the command against g and returns the text to show.
func (c Command) Execute(g *Game) string {
	switch c.Type {
	case CmdGo:
		return g.GoRoom(c.Direction, false)
	case CmdRandom:
		return g.GoRoom(0, true)
	case CmdTake:
		return g.Take(c.Item)
	case CmdHelp:
		return g.Help() + CommandList
	case CmdQuit:
		return g.Quit()
	case CmdLook:
		return g.Look()
	case CmdEat:
		return g.Eat()
	default:
		return UnknownCommand
	}
}

func (c Command) String() string {
	switch c.Type {
	case CmdGo:
		return "go " + c.Direction.String()
	case CmdTake:
		return "take " + c.Item.String()
	case CmdUnknown:
		return "unknown"
	default:
		return string(c.Type)
	}
}
