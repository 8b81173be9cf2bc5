package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tessro/paradium/internal/config"
	perrors "github.com/tessro/paradium/internal/errors"
	"github.com/tessro/paradium/internal/logging"
	"github.com/tessro/paradium/internal/remote"
)

var (
	cfgFile   string
	serverURL string
	jsonOut   bool
	verbose   bool

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "paradium",
	Short: "Internet radio appliance",
	Long: `Paradium turns a small computer into an internet radio.

'paradium serve' runs the appliance: it keeps the station list, remembers the
current station across restarts and drives the playback engine. The other
commands talk to a running appliance over HTTP.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initConfig()
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default: first of "+config.DefaultPath()+", ~/.paradiumrc)")
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "appliance URL (default from [client] url)")
	rootCmd.PersistentFlags().BoolVarP(&jsonOut, "json", "j", false, "output as JSON")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

func initConfig() error {
	var err error
	if cfgFile != "" {
		cfg, err = config.LoadFrom(cfgFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", perrors.ErrInvalidConfig, err)
	}

	return nil
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, perrors.Format(err))
		os.Exit(1)
	}
}

// Config returns the loaded configuration.
func Config() *config.Config {
	return cfg
}

// JSONOutput returns true if JSON output is requested.
func JSONOutput() bool {
	return jsonOut
}

// Verbose returns true if verbose output is requested.
func Verbose() bool {
	return verbose
}

// newRemote returns a client for the appliance named by --server or the config.
func newRemote() (*remote.Client, error) {
	url := cfg.Client.URL
	if serverURL != "" {
		url = serverURL
	}
	return remote.New(url, time.Duration(cfg.Client.Timeout)*time.Second)
}

// newLogger builds the process logger. --verbose forces debug level.
func newLogger(console io.Writer) (zerolog.Logger, io.Closer, error) {
	opts := logging.FromConfig(cfg.Log)
	opts.Console = console
	if verbose {
		opts.Level = "debug"
	}
	return logging.New(opts)
}
