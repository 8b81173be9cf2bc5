package controller

import (
	"strings"

	perrors "github.com/tessro/paradium/internal/errors"
)

// Command is a transport command accepted by Dispatch.
type Command string

const (
	CommandPlay     Command = "play"
	CommandPrev     Command = "prev"
	CommandNext     Command = "next"
	CommandStop     Command = "stop"
	CommandShutdown Command = "shutdown"
)

// Commands lists every accepted command in display order.
var Commands = []Command{CommandPlay, CommandPrev, CommandNext, CommandStop, CommandShutdown}

// ParseCommand maps a raw command string to a Command. Surrounding space and
// case are ignored; anything else is an *errors.UnknownCommandError naming the
// original value.
func ParseCommand(raw string) (Command, error) {
	cmd := Command(strings.ToLower(strings.TrimSpace(raw)))
	for _, c := range Commands {
		if c == cmd {
			return c, nil
		}
	}
	return "", &perrors.UnknownCommandError{Command: raw}
}
