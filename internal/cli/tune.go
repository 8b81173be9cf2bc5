package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	perrors "github.com/tessro/paradium/internal/errors"
	"github.com/tessro/paradium/internal/wizard"
)

var tuneCmd = &cobra.Command{
	Use:     "tune",
	Aliases: []string{"pick"},
	Short:   "Pick a station interactively",
	Long: `Open a picker over the station list and tune to the chosen station.

Type to filter by name or id. Needs a terminal; use 'paradium play <id>'
from scripts.`,
	Args: cobra.NoArgs,
	RunE: runTune,
}

func init() {
	rootCmd.AddCommand(tuneCmd)
}

func runTune(cmd *cobra.Command, args []string) error {
	interactive := wizard.NewInteractive()
	if !interactive.CanInteract() {
		return fmt.Errorf("tune needs a terminal; use 'paradium play <station-id>'")
	}

	c, err := newRemote()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	resp, err := c.Stations(ctx)
	if err != nil {
		return fmt.Errorf("list stations: %w", err)
	}

	if len(resp.Stations) == 0 {
		return perrors.ErrNoStations
	}

	picked, err := interactive.PromptStation(resp.Stations, resp.Current)
	if err != nil {
		return err
	}
	if picked == nil {
		return nil
	}

	st, err := c.Select(ctx, picked.ID)
	if err != nil {
		return fmt.Errorf("tune: %w", err)
	}
	return printTransport(cmd, "▶ Playing", st)
}
