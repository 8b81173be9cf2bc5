// Package power halts the host on request.
package power

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/tessro/paradium/internal/core"
)

// ErrDisabled is returned by a Disabled halter.
var ErrDisabled = errors.New("power control disabled")

// haltTimeout bounds the halt command once it no longer follows the caller.
const haltTimeout = time.Minute

// DefaultCommand halts the machine.
var DefaultCommand = []string{"/sbin/halt"}

// Command runs an external program to power off the host.
type Command struct {
	argv   []string
	logger zerolog.Logger
}

var _ core.Halter = (*Command)(nil)

// NewCommand creates a halter running argv. An empty argv uses DefaultCommand.
func NewCommand(argv []string, logger zerolog.Logger) *Command {
	if len(argv) == 0 {
		argv = DefaultCommand
	}
	return &Command{
		argv:   append([]string(nil), argv...),
		logger: logger.With().Str("component", "power").Logger(),
	}
}

// Halt runs the configured command and waits for it to exit.
// Cancelling ctx does not kill a halt that has started.
func (c *Command) Halt(ctx context.Context) error {
	c.logger.Warn().Strs("command", c.argv).Msg("halting host")

	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), haltTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, c.argv[0], c.argv[1:]...)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("halt: %w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Disabled is a halter that refuses to power off.
type Disabled struct{}

// Halt always returns ErrDisabled.
func (Disabled) Halt(context.Context) error { return ErrDisabled }

// New returns a Command halter when enabled, otherwise Disabled.
func New(enabled bool, argv []string, logger zerolog.Logger) core.Halter {
	if !enabled {
		return Disabled{}
	}
	return NewCommand(argv, logger)
}
