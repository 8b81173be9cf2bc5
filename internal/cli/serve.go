package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/tessro/paradium/internal/catalog"
	"github.com/tessro/paradium/internal/config"
	"github.com/tessro/paradium/internal/controller"
	"github.com/tessro/paradium/internal/core"
	"github.com/tessro/paradium/internal/metrics"
	"github.com/tessro/paradium/internal/mpd"
	"github.com/tessro/paradium/internal/power"
	"github.com/tessro/paradium/internal/server"
	"github.com/tessro/paradium/internal/session"
	"github.com/tessro/paradium/internal/sonos"
)

var serveListen string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the appliance",
	Long: `Run the radio appliance in the foreground.

The station list is read from [paths] stations and the current station from
[paths] state. Either file may be missing or broken: the appliance still
starts, with no stations or on station 1.

Commands arrive at /paradium.html?command=play|prev|next|stop|shutdown and
through the JSON API under /api.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVarP(&serveListen, "listen", "l", "", "listen address (default from [server] listen)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	logger, closer, err := newLogger(os.Stderr)
	if err != nil {
		return err
	}
	defer func() { _ = closer.Close() }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := cfg.Server.Listen
	if serveListen != "" {
		addr = serveListen
	}

	logger.Info().
		Str("version", Version).
		Str("config", configSource()).
		Str("backend", cfg.Engine.Backend).
		Msg("starting paradium")

	m := metrics.New()

	cat, err := catalog.Load(cfg.Paths.Stations)
	if err != nil {
		logger.Warn().Err(err).Str("path", cfg.Paths.Stations).Int("stations", cat.Len()).Msg("stations file not fully loaded")
	}

	sess, res := session.Open(session.NewFileStore(cfg.Paths.State), logger)
	if !res.Loaded() {
		logger.Warn().Err(res.Err).Str("path", cfg.Paths.State).Stringer("result", res).Msg("session defaulted")
	}

	engine, closeEngine := buildEngine(ctx, cfg, logger)
	defer closeEngine()

	halter := power.New(cfg.Power.Enabled, cfg.Power.Command, logger)
	ctrl := controller.New(cat, sess, engine, halter, m, logger)
	defer func() {
		if err := ctrl.Close(); err != nil {
			logger.Error().Err(err).Msg("final session save failed")
		}
	}()

	if cfg.Catalog.Watch {
		w := catalog.NewWatcher(cfg.Paths.Stations, cat, func(c *core.Catalog) {
			ctrl.SetCatalog(c)
			m.CatalogReloaded()
		}, logger)
		go func() {
			if err := w.Run(ctx); err != nil && ctx.Err() == nil {
				logger.Error().Err(err).Msg("catalog watcher stopped")
			}
		}()
	}

	srv := server.New(ctrl, server.Options{
		HTDocs:  cfg.Server.HTDocs,
		Version: Version,
	}, m, logger)

	logger.Info().Str("addr", addr).Int("stations", cat.Len()).Int("current", int(sess.Current())).Msg("listening")
	if err := srv.ListenAndServe(ctx, addr); err != nil {
		return fmt.Errorf("serve: %w", err)
	}

	logger.Info().Msg("stopped")
	return nil
}

// buildEngine returns the configured playback engine and a func releasing it.
func buildEngine(ctx context.Context, c *config.Config, logger zerolog.Logger) (core.Engine, func()) {
	switch c.Engine.Backend {
	case "sonos":
		return sonos.NewRenderer(c.Sonos.Host, c.Sonos.Port, time.Duration(c.Sonos.Timeout)*time.Second, logger), func() {}
	default:
		e := mpd.New(mpd.Options{
			Host:      c.MPD.Host,
			Port:      c.MPD.Port,
			Socket:    c.MPD.Socket,
			Password:  c.MPD.Password,
			Keepalive: time.Duration(c.MPD.Keepalive) * time.Second,
		}, logger)
		go e.Run(ctx)
		return e, func() { _ = e.Close() }
	}
}

func configSource() string {
	if cfgFile != "" {
		return cfgFile
	}
	if p := config.FindConfigFile(); p != "" {
		return p
	}
	return "defaults"
}
