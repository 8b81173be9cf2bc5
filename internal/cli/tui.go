package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/paradium/internal/tui"
)

var tuiRefresh int

var tuiCmd = &cobra.Command{
	Use:     "ui",
	Aliases: []string{"tui"},
	Short:   "Launch the interactive remote control",
	Long: `Launch the interactive terminal remote control.

The dashboard shows:
  • Now Playing - station, title and dial position
  • Stations - the tuning list
  • History - titles heard since the dashboard started

Keyboard shortcuts:
  q, Ctrl+C    Quit
  ?            Help
  Space        Play/Stop
  n            Next station
  p            Previous station
  Enter        Tune to selected station
  y            Copy stream URL
  Tab          Switch panel`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func init() {
	tuiCmd.Flags().IntVar(&tuiRefresh, "refresh", 0, "refresh interval in milliseconds (default from [tui] refresh_interval)")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	c, err := newRemote()
	if err != nil {
		return err
	}

	refresh := tuiRefresh
	if refresh <= 0 {
		refresh = cfg.TUI.RefreshInterval
	}
	return tui.Run(c, time.Duration(refresh)*time.Millisecond)
}
