package main

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/llehouerou/saverino/internal/app"
	"github.com/llehouerou/saverino/internal/browse"
	"github.com/llehouerou/saverino/internal/catalog"
	"github.com/llehouerou/saverino/internal/config"
	"github.com/llehouerou/saverino/internal/errmsg"
	"github.com/llehouerou/saverino/internal/lastfm"
	"github.com/llehouerou/saverino/internal/logging"
	"github.com/llehouerou/saverino/internal/mpris"
	"github.com/llehouerou/saverino/internal/notify"
	"github.com/llehouerou/saverino/internal/playback"
	"github.com/llehouerou/saverino/internal/player"
	"github.com/llehouerou/saverino/internal/state"
	"github.com/llehouerou/saverino/internal/stderr"
)

func main() {
	if err := run(); err != nil {
		stderr.WriteOriginal(errmsg.Format(errmsg.OpInitialize, err) + "\n")
		os.Exit(1)
	}
}

func run() error {
	// A missing .env is the normal case.
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, err := logging.New(cfg.GetLogConfig())
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer func() { _ = log.Sync() }()
	if envErr != nil && !errors.Is(envErr, os.ErrNotExist) {
		log.Warn("load .env", zap.Error(envErr))
	}

	// Audio libraries write to stderr, which would corrupt the TUI.
	if err := stderr.Start(log); err != nil {
		log.Warn("capture stderr", zap.Error(err))
	}
	defer stderr.Stop()

	store, err := state.Open(state.Options{Path: cfg.State.DBPath, Logger: log})
	if err != nil {
		return fmt.Errorf("open state: %w", err)
	}
	defer func() {
		if err := store.Close(); err != nil {
			log.Warn("close state", zap.Error(err))
		}
	}()

	cc := cfg.GetCatalogConfig()
	client := catalog.NewClient(catalog.Options{
		BaseURL:  cc.BaseURL,
		PageSize: cc.PageSize,
		Timeout:  cc.Timeout,
		Logger:   log.Named("catalog"),
	})

	svc := playback.New(player.New(player.Options{Logger: log.Named("player")}), playback.Options{
		Quality: catalog.QualityTier(cfg.GetPlaybackConfig().Quality),
		Logger:  log.Named("playback"),
	})
	defer func() {
		if err := svc.Close(); err != nil {
			log.Warn("close playback", zap.Error(err))
		}
	}()

	browser := browse.New(client, svc, store, log.Named("browse"))

	stop := startIntegrations(cfg, svc, log)
	defer stop()

	p := tea.NewProgram(app.New(app.Deps{
		Service: svc,
		Browser: browser,
		Store:   store,
		Log:     log.Named("ui"),
	}), tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// startIntegrations wires the optional desktop and Last.fm integrations to
// the playback session. Failures are logged and the integration skipped.
// The returned func releases the MPRIS bus name.
func startIntegrations(cfg *config.Config, svc playback.Service, log *zap.Logger) func() {
	stop := func() {}
	if cfg.MPRISEnabled() {
		adapter, err := mpris.New(svc, log.Named("mpris"))
		if err != nil {
			log.Warn("start mpris", zap.Error(err))
		} else {
			stop = func() { _ = adapter.Close() }
		}
	}

	if cfg.NotificationsEnabled() {
		if n, err := notify.New(); err != nil {
			log.Warn("connect notifications", zap.Error(err))
		} else {
			covers, err := notify.NewCoverCache("", nil)
			if err != nil {
				log.Warn("cover cache", zap.Error(err))
			}
			go notify.NewAnnouncer(n, covers, log.Named("notify")).Run(svc.Subscribe())
		}
	}

	if cfg.HasLastfmConfig() {
		client := lastfm.New(cfg.Lastfm.APIKey, cfg.Lastfm.APISecret)
		client.SetSessionKey(cfg.Lastfm.SessionKey)
		go lastfm.NewScrobbler(client, log.Named("lastfm")).Run(svc.Subscribe())
	}
	return stop
}
