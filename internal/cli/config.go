package cli

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/tessro/paradium/internal/config"
	perrors "github.com/tessro/paradium/internal/errors"
)

var (
	configInitDefaults bool
	configInitForce    bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
	Long:  `Commands for viewing and editing paradium configuration.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init must work before any config file exists
		if cfgFile != "" {
			if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
				cfg = config.Default()
				cfg.ApplyDefaults()
				return nil
			}
		}
		return initConfig()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the effective configuration: file values, environment overrides and defaults.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Show the configuration file in use",
	Long:  `Print the configuration file that was loaded and every location that is searched.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigPath,
}

var configEditCmd = &cobra.Command{
	Use:   "edit",
	Short: "Edit configuration file",
	Long:  `Open the configuration file in your default editor.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigEdit,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize configuration",
	Long: `Create a new configuration file.

On a terminal a short form asks for the engine and paths. With --defaults, or
when not on a terminal, the defaults are written as is.`,
	Args: cobra.NoArgs,
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVar(&configInitDefaults, "defaults", false, "write defaults without asking")
	configInitCmd.Flags().BoolVarP(&configInitForce, "force", "f", false, "overwrite an existing file")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configPathCmd)
	configCmd.AddCommand(configEditCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, cfg)
	}

	// Pretty print as TOML
	encoder := toml.NewEncoder(out)
	encoder.Indent = "  "
	return encoder.Encode(cfg)
}

func runConfigPath(cmd *cobra.Command, args []string) error {
	loaded := cfgFile
	if loaded == "" {
		loaded = config.FindConfigFile()
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, map[string]any{
			"loaded":   loaded,
			"searched": config.SearchPaths(),
		})
	}

	if loaded == "" {
		_, _ = fmt.Fprintln(out, "No config file found; using defaults")
	} else {
		_, _ = fmt.Fprintln(out, loaded)
	}
	if Verbose() {
		_, _ = fmt.Fprintln(out, "\nSearched:")
		for _, p := range config.SearchPaths() {
			_, _ = fmt.Fprintf(out, "  %s %s\n", StatusIcon(p == loaded), p)
		}
	}
	return nil
}

func runConfigEdit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	// Check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return perrors.WithSuggestion(
			fmt.Errorf("%w at %s", perrors.ErrConfigNotFound, configPath),
			"Run 'paradium config init' first",
		)
	}

	// Find editor
	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = os.Getenv("VISUAL")
	}
	if editor == "" {
		// Try common editors
		for _, e := range []string{"nano", "vim", "vi"} {
			if _, err := exec.LookPath(e); err == nil {
				editor = e
				break
			}
		}
	}
	if editor == "" {
		return fmt.Errorf("no editor found. Set EDITOR environment variable")
	}

	editorCmd := exec.Command(editor, configPath)
	editorCmd.Stdin = os.Stdin
	editorCmd.Stdout = os.Stdout
	editorCmd.Stderr = os.Stderr

	return editorCmd.Run()
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	configPath := getConfigPath()

	if _, err := os.Stat(configPath); err == nil && !configInitForce {
		return perrors.WithSuggestion(
			fmt.Errorf("config file already exists at %s", configPath),
			"Use --force to overwrite it, or 'paradium config edit' to change it",
		)
	}

	newCfg := config.Default()
	newCfg.ApplyDefaults()
	if !configInitDefaults && isTerminal(os.Stdin) {
		if err := askConfig(newCfg); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				_, _ = fmt.Fprintln(cmd.OutOrStdout(), "Cancelled")
				return nil
			}
			return err
		}
	}

	if err := newCfg.Validate(); err != nil {
		return fmt.Errorf("%w: %w", perrors.ErrInvalidConfig, err)
	}
	if err := config.Write(configPath, newCfg); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if JSONOutput() {
		return writeJSON(out, map[string]string{
			"status": "created",
			"path":   configPath,
		})
	}

	_, _ = fmt.Fprintf(out, "Created config file: %s\n", configPath)
	_, _ = fmt.Fprintln(out, "\nNext steps:")
	_, _ = fmt.Fprintf(out, "  1. Put your stations in %s\n", newCfg.Paths.Stations)
	_, _ = fmt.Fprintln(out, "  2. Run 'paradium serve'")
	return nil
}

// askConfig fills the main settings of c from an interactive form.
func askConfig(c *config.Config) error {
	port := strconv.Itoa(c.MPD.Port)

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Install directory").
				Description("Holds htdocs/ and the stations file").
				Value(&c.Paths.Home),
			huh.NewInput().
				Title("Data directory").
				Description("The current station is remembered here").
				Value(&c.Paths.VHome),
			huh.NewInput().
				Title("Listen address").
				Value(&c.Server.Listen),
			huh.NewSelect[string]().
				Title("Playback engine").
				Options(
					huh.NewOption("Music Player Daemon", "mpd"),
					huh.NewOption("Sonos speaker", "sonos"),
				).
				Value(&c.Engine.Backend),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("MPD host").
				Value(&c.MPD.Host),
			huh.NewInput().
				Title("MPD port").
				Value(&port).
				Validate(validatePort),
		).WithHideFunc(func() bool { return c.Engine.Backend != "mpd" }),
		huh.NewGroup(
			huh.NewInput().
				Title("Sonos speaker address").
				Description("Host name or IP of the speaker to play on").
				Value(&c.Sonos.Host).
				Validate(func(s string) error {
					if s == "" {
						return errors.New("required")
					}
					return nil
				}),
		).WithHideFunc(func() bool { return c.Engine.Backend != "sonos" }),
	)

	if err := form.Run(); err != nil {
		return err
	}

	c.MPD.Port, _ = strconv.Atoi(port)
	// Re-derive file paths from the chosen directories
	c.Paths.Stations = ""
	c.Paths.State = ""
	c.Server.HTDocs = ""
	c.ApplyDefaults()
	return nil
}

func validatePort(s string) error {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 || n > 65535 {
		return errors.New("must be a port number")
	}
	return nil
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	if p := config.FindConfigFile(); p != "" {
		return p
	}
	return config.DefaultPath()
}
