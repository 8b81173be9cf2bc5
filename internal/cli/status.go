package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tessro/paradium/internal/controller"
	"github.com/tessro/paradium/internal/server"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current station and title",
	Long: `Show what the appliance is tuned to and what is on air.

With --verbose the appliance's version and uptime are shown too.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

type statusOutput struct {
	*controller.Status
	Health *server.HealthResponse `json:"health,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	c, err := newRemote()
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	st, err := c.Status(ctx)
	if err != nil {
		return fmt.Errorf("status: %w", err)
	}

	result := statusOutput{Status: st}
	if Verbose() {
		// Health is informational only
		if h, err := c.Health(ctx); err == nil {
			result.Health = h
		}
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, result)
	}
	printStatus(out, result, c.URL())
	return nil
}

func printStatus(out io.Writer, r statusOutput, url string) {
	st := r.Status

	t := NewTable(out)
	t.Row("Station:", st.Station.String())
	if st.Station.Tuned {
		t.Row("ID:", st.Station.ID.String())
		if st.Station.Website != "" {
			t.Row("Website:", st.Station.Website)
		}
	}
	title := st.Title
	if title == "" {
		title = controller.NothingPlaying
	}
	t.Row("Now playing:", title)
	t.Row("State:", fmt.Sprintf("%s %s", StateIcon(st.State), st.State))
	if st.EngineError != "" {
		t.Row("Engine:", "unavailable ("+st.EngineError+")")
	}
	t.Row("Stations:", humanize.Comma(int64(st.Stations)))

	if h := r.Health; h != nil {
		t.Row("Appliance:", url)
		if h.Version != "" {
			t.Row("Version:", h.Version)
		}
		t.Row("Up:", uptime(h.Uptime))
	}
	t.Flush()
}

// uptime renders a Go duration string as "3 hours".
func uptime(s string) string {
	d, err := time.ParseDuration(s)
	if err != nil {
		return s
	}
	now := time.Now()
	return strings.TrimSpace(humanize.RelTime(now.Add(-d), now, "", ""))
}
