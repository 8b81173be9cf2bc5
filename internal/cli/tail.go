package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/tessro/paradium/internal/tail"
)

var (
	tailNoEmoji   bool
	tailTimestamp bool
	tailFormat    string
	tailInterval  time.Duration
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow station and title changes in real time",
	Long: `Watch the appliance and print changes as they happen.

Events tracked:
  - Station changes
  - Title changes (with how long the previous title was on air)
  - Stop/Resume
  - Engine going down or coming back

--format takes a Go template over the event, for example:
  paradium tail -f '{{.Current.Station}}: {{.Current.Title}}'`,
	Args: cobra.NoArgs,
	RunE: runTail,
}

func init() {
	tailCmd.Flags().BoolVar(&tailNoEmoji, "no-emoji", false, "disable emoji output")
	tailCmd.Flags().BoolVarP(&tailTimestamp, "timestamp", "t", false, "show timestamps")
	tailCmd.Flags().StringVarP(&tailFormat, "format", "f", "", "custom format template")
	tailCmd.Flags().DurationVarP(&tailInterval, "interval", "i", 0, "poll interval (default from [tail] interval)")

	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	c, err := newRemote()
	if err != nil {
		return err
	}

	tmpl, err := tail.WithTemplate(tailFormat)
	if err != nil {
		return err
	}
	formatter := tail.NewFormatter(
		tail.WithEmoji(!tailNoEmoji && isTerminal(os.Stdout)),
		tail.WithTimestamp(tailTimestamp),
		tmpl,
	)

	interval := tailInterval
	if interval == 0 {
		interval = time.Duration(cfg.Tail.Interval) * time.Millisecond
	}

	// Handle Ctrl+C gracefully
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	watcher := tail.NewWatcher(c, interval)

	errCh := make(chan error, 1)
	go func() {
		errCh <- watcher.Start(ctx)
	}()

	out := cmd.OutOrStdout()
	for {
		select {
		case event, ok := <-watcher.Events():
			if !ok {
				return waitTail(errCh)
			}
			_, _ = fmt.Fprintln(out, formatter.Format(event))

		case err := <-errCh:
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		}
	}
}

func waitTail(errCh <-chan error) error {
	if err := <-errCh; err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
