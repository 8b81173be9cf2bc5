package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var stationsCmd = &cobra.Command{
	Use:     "stations",
	Aliases: []string{"ls"},
	Short:   "List stations",
	Long:    `List the appliance's stations in tuning order. The current station is marked.`,
	Args:    cobra.NoArgs,
	RunE:    runStations,
}

func init() {
	rootCmd.AddCommand(stationsCmd)
}

func runStations(cmd *cobra.Command, args []string) error {
	c, err := newRemote()
	if err != nil {
		return err
	}

	resp, err := c.Stations(cmd.Context())
	if err != nil {
		return fmt.Errorf("list stations: %w", err)
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, resp)
	}

	if len(resp.Stations) == 0 {
		_, _ = fmt.Fprintln(out, "No stations")
		return nil
	}

	headers := []string{"", "ID", "NAME", "WEBSITE"}
	if Verbose() {
		headers = append(headers, "STREAMS")
	}
	t := NewTable(out, headers...)
	for _, s := range resp.Stations {
		row := []string{
			StatusIcon(s.ID == resp.Current),
			s.ID.String(),
			TruncateString(s.Name, 40),
			s.Website,
		}
		if Verbose() {
			row = append(row, strings.Join(s.URLs, " "))
		}
		t.Row(row...)
	}
	t.Flush()
	return nil
}
