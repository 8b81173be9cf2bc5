package power

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
)

func TestCommandHaltRunsProgram(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "halted")
	h := NewCommand([]string{"touch", marker}, zerolog.Nop())

	if err := h.Halt(context.Background()); err != nil {
		t.Fatalf("Halt() error = %v", err)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Errorf("marker not created: %v", err)
	}
}

func TestCommandHaltOutlivesCanceledContext(t *testing.T) {
	marker := filepath.Join(t.TempDir(), "halted")
	h := NewCommand([]string{"sh", "-c", "sleep 0.2 && touch " + marker}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := h.Halt(ctx); err != nil {
		t.Fatalf("Halt() error = %v", err)
	}
	if _, err := os.Stat(marker); err != nil {
		t.Errorf("halt was killed with the request: %v", err)
	}
}

func TestCommandHaltFailure(t *testing.T) {
	h := NewCommand([]string{"false"}, zerolog.Nop())
	if err := h.Halt(context.Background()); err == nil {
		t.Error("Halt() error = nil, want failure")
	}
}

func TestNewCommandDefault(t *testing.T) {
	h := NewCommand(nil, zerolog.Nop())
	if len(h.argv) != 1 || h.argv[0] != "/sbin/halt" {
		t.Errorf("argv = %v, want [/sbin/halt]", h.argv)
	}
}

func TestDisabled(t *testing.T) {
	h := New(false, nil, zerolog.Nop())
	if err := h.Halt(context.Background()); !errors.Is(err, ErrDisabled) {
		t.Errorf("Halt() error = %v, want ErrDisabled", err)
	}
	if _, ok := New(true, []string{"true"}, zerolog.Nop()).(*Command); !ok {
		t.Error("New(true) should return *Command")
	}
}
