package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tessro/paradium/internal/controller"
)

var shutdownYes bool

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Tune to the next station",
	Long:  `Tune to the next station in the list. After the last station comes the first.`,
	Args:  cobra.NoArgs,
	RunE:  transport(controller.CommandNext, "⏭ Tuned to"),
}

var prevCmd = &cobra.Command{
	Use:   "prev",
	Short: "Tune to the previous station",
	Long:  `Tune to the previous station in the list. Before the first station comes the last.`,
	Args:  cobra.NoArgs,
	RunE:  transport(controller.CommandPrev, "⏮ Tuned to"),
}

var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop playback",
	Long:  `Stop playback. The current station is kept.`,
	Args:  cobra.NoArgs,
	RunE:  transport(controller.CommandStop, "⏹ Stopped"),
}

var shutdownCmd = &cobra.Command{
	Use:   "shutdown",
	Short: "Power off the appliance",
	Long: `Stop playback and power off the machine running the appliance.

Asks for confirmation on a terminal unless --yes is given.`,
	Args: cobra.NoArgs,
	RunE: runShutdown,
}

func init() {
	shutdownCmd.Flags().BoolVarP(&shutdownYes, "yes", "y", false, "do not ask for confirmation")

	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(prevCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(shutdownCmd)
}

func transport(name controller.Command, verb string) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		st, err := runCommand(cmd.Context(), name)
		if err != nil {
			return err
		}
		return printTransport(cmd, verb, st)
	}
}

func runShutdown(cmd *cobra.Command, args []string) error {
	if !shutdownYes && isTerminal(os.Stdin) {
		confirmed := false
		err := huh.NewConfirm().
			Title("Power off the appliance?").
			Description("Playback stops and the machine halts.").
			Affirmative("Power off").
			Negative("Cancel").
			Value(&confirmed).
			Run()
		if err != nil && !errors.Is(err, huh.ErrUserAborted) {
			return err
		}
		if !confirmed {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
			return nil
		}
	}

	st, err := runCommand(cmd.Context(), controller.CommandShutdown)
	if err != nil {
		return err
	}
	return printTransport(cmd, "⏻ Shutting down", st)
}
