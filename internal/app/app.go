package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/wissel-coach/internal/config"
	"github.com/riskibarqy/wissel-coach/internal/domain/matchsetup"
	"github.com/riskibarqy/wissel-coach/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/wissel-coach/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/wissel-coach/internal/interfaces/httpapi"
	basecache "github.com/riskibarqy/wissel-coach/internal/platform/cache"
	idgen "github.com/riskibarqy/wissel-coach/internal/platform/id"
	"github.com/riskibarqy/wissel-coach/internal/platform/logging"
	"github.com/riskibarqy/wissel-coach/internal/usecase"
)

// App is the wired service: the HTTP server plus the resources it owns.
type App struct {
	Server  *http.Server
	Matches *usecase.MatchService
	stores  *stores
	logger  *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	st, err := openStores(cfg, logger)
	if err != nil {
		return nil, err
	}

	playerRepo := st.players
	if cfg.CacheEnabled {
		playerRepo = cache.NewPlayerRepository(playerRepo, basecache.NewStore(cfg.CacheTTL))
	}

	roster := usecase.NewRosterService(playerRepo, st.participation, idgen.NewUUIDGenerator(), logger)
	matches := usecase.NewMatchService(st.matches, st.participation, usecase.MatchServiceConfig{
		TickInterval:        cfg.MatchTickInterval,
		RecordParticipation: cfg.MatchRecordParticipation,
	}, logger)
	setup := usecase.NewSetupService(
		st.setup,
		playerRepo,
		matchsetup.NewWizard(matchsetup.DefaultRules(), nil),
		matches,
		idgen.NewUUIDGenerator(),
		logger,
	)

	app := &App{Matches: matches, stores: st, logger: logger}
	if err := seedRoster(ctx, cfg, roster, logger); err != nil {
		_ = app.Close()
		return nil, err
	}
	if err := matches.Resume(ctx); err != nil {
		_ = app.Close()
		return nil, fmt.Errorf("resume match: %w", err)
	}

	handler := httpapi.NewHandler(roster, setup, matches, logger)
	app.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return app, nil
}

// Close stops the match clock and releases storage.
func (a *App) Close() error {
	a.Matches.Close()
	if a.stores == nil || a.stores.close == nil {
		return nil
	}
	if err := a.stores.close(); err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}

func seedRoster(ctx context.Context, cfg config.Config, roster *usecase.RosterService, logger *logging.Logger) error {
	if cfg.RosterSeedFile == "" {
		return nil
	}

	entries, err := memory.LoadSeedFile(cfg.RosterSeedFile)
	if err != nil {
		return err
	}
	items := make([]usecase.CreatePlayerInput, 0, len(entries))
	for _, entry := range entries {
		items = append(items, usecase.CreatePlayerInput{
			Name:   entry.Name,
			Number: entry.Number,
			Active: entry.Active,
		})
	}

	created, err := roster.SeedIfEmpty(ctx, items)
	if err != nil {
		return fmt.Errorf("seed roster: %w", err)
	}
	logger.InfoContext(ctx, "roster seed applied", "file", cfg.RosterSeedFile, "created", created)
	return nil
}
