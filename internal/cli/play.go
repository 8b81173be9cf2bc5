package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tessro/paradium/internal/controller"
	"github.com/tessro/paradium/internal/core"
)

var playCmd = &cobra.Command{
	Use:   "play [station-id]",
	Short: "Start playing",
	Long: `Start playing the current station, or tune to a station first.

Examples:
  paradium play      # Play the current station
  paradium play 3    # Tune to station 3 and play it`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	rootCmd.AddCommand(playCmd)
}

func runPlay(cmd *cobra.Command, args []string) error {
	c, err := newRemote()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	var st *controller.Status
	if len(args) == 0 {
		st, err = c.Command(ctx, string(controller.CommandPlay))
	} else {
		id, perr := core.ParseStationID(args[0])
		if perr != nil {
			return perr
		}
		st, err = c.Select(ctx, id)
	}
	if err != nil {
		return fmt.Errorf("play: %w", err)
	}

	return printTransport(cmd, "▶ Playing", st)
}

// printTransport reports the station after a transport command.
func printTransport(cmd *cobra.Command, verb string, st *controller.Status) error {
	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, st)
	}
	if st == nil || !st.Station.Tuned {
		_, _ = fmt.Fprintln(out, verb)
		return nil
	}
	_, _ = fmt.Fprintf(out, "%s %s\n", verb, st.Station)
	return nil
}

// runCommand sends one transport command to the appliance.
func runCommand(ctx context.Context, name controller.Command) (*controller.Status, error) {
	c, err := newRemote()
	if err != nil {
		return nil, err
	}
	st, err := c.Command(ctx, string(name))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return st, nil
}
