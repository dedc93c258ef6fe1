package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/scorefeed/scorefeed/external/apifootball"
	"github.com/scorefeed/scorefeed/internal/config"
	"github.com/scorefeed/scorefeed/internal/domain/league"
	"github.com/scorefeed/scorefeed/internal/domain/season"
	"github.com/scorefeed/scorefeed/internal/domain/team"
	cacherepo "github.com/scorefeed/scorefeed/internal/infrastructure/repository/cache"
	"github.com/scorefeed/scorefeed/internal/infrastructure/repository/postgres"
	"github.com/scorefeed/scorefeed/internal/interfaces/httpapi"
	"github.com/scorefeed/scorefeed/internal/platform/cache"
	"github.com/scorefeed/scorefeed/internal/platform/logging"
	"github.com/scorefeed/scorefeed/internal/platform/resilience"
	"github.com/scorefeed/scorefeed/internal/scheduler"
	"github.com/scorefeed/scorefeed/internal/usecase"
)

// App owns the HTTP server, the sync scheduler, and their shared
// dependencies. Construction wires everything; Run starts the moving
// parts and blocks until the context is cancelled.
type App struct {
	cfg    config.Config
	logger *logging.Logger

	db        *sqlx.DB
	server    *http.Server
	scheduler *scheduler.Scheduler
	bootstrap *scheduler.BootstrapState

	referenceSync *usecase.ReferenceSyncService
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	db, err := openDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sportRepo := postgres.NewSportRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	eventRepo := postgres.NewMatchEventRepository(db)
	rawDataRepo := postgres.NewRawDataRepository(db)

	var leagueRepo league.Repository = postgres.NewLeagueRepository(db)
	var seasonRepo season.Repository = postgres.NewSeasonRepository(db)
	var teamRepo team.Repository = postgres.NewTeamRepository(db)

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
		leagueRepo = cacherepo.NewLeagueRepository(leagueRepo, store)
		teamRepo = cacherepo.NewTeamRepository(teamRepo, store)
	}

	archiveSvc := usecase.NewArchiveService(rawDataRepo, logger)

	provider := apifootball.NewClient(apifootball.ClientConfig{
		BaseURL:    cfg.APIFootballBaseURL,
		APIKey:     providerKey(cfg),
		Timeout:    cfg.APIFootballTimeout,
		MaxRetries: cfg.APIFootballMaxRetries,
		Logger:     logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.APIFootballCircuitEnabled,
			FailureThreshold: cfg.APIFootballCircuitFailureCount,
			OpenTimeout:      cfg.APIFootballCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.APIFootballCircuitHalfOpenMaxReq,
		},
		Archiver: archiveSvc,
	})

	referenceSync := usecase.NewReferenceSyncService(provider, sportRepo, leagueRepo, seasonRepo, teamRepo, usecase.ReferenceSyncConfig{
		SeasonYear: cfg.SyncSeasonYear,
		BatchSize:  cfg.SyncBatchSize,
		BatchPause: cfg.SyncBatchPause,
	}, logger)
	fixtureSync := usecase.NewFixtureSyncService(provider, sportRepo, leagueRepo, seasonRepo, teamRepo, matchRepo, eventRepo, logger)
	liveSync := usecase.NewLiveSyncService(provider, matchRepo, fixtureSync, usecase.LiveSyncConfig{
		MaxTracked: cfg.LiveMaxTracked,
		StaleAfter: cfg.StaleThreshold,
	}, logger)
	backfillSvc := usecase.NewBackfillService(fixtureSync, logger)
	querySvc := usecase.NewMatchQueryService(matchRepo, eventRepo, leagueRepo, teamRepo, provider, store, logger)

	handler := httpapi.NewHandler(querySvc, referenceSync, fixtureSync, liveSync, backfillSvc, cfg.StaleThreshold, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	bootstrap := scheduler.NewBootstrapState()
	sched, err := buildScheduler(cfg, logger, bootstrap, referenceSync, fixtureSync, liveSync)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:           cfg,
		logger:        logger,
		db:            db,
		server:        server,
		scheduler:     sched,
		bootstrap:     bootstrap,
		referenceSync: referenceSync,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.server
}

// Run serves HTTP, runs the scheduler, and seeds reference data in the
// background. It returns once the context is cancelled and the server
// has shut down.
func (a *App) Run(ctx context.Context) error {
	go a.runBootstrap(ctx)
	go a.scheduler.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("http server starting", "addr", a.cfg.HTTPAddr)
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := a.server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	return a.db.Close()
}

// runBootstrap seeds the sport catalog and runs the first reference
// pass, retrying with backoff until it succeeds. Jobs gated on
// bootstrap stay idle until then.
func (a *App) runBootstrap(ctx context.Context) {
	backoff := 10 * time.Second
	for {
		err := a.bootstrapOnce(ctx)
		if err == nil {
			a.bootstrap.MarkDone(time.Now().UTC())
			a.logger.Info("bootstrap completed", "attempts", a.bootstrap.Attempts()+1)
			return
		}
		a.bootstrap.MarkFailed(err)
		a.logger.Warn("bootstrap failed", "attempt", a.bootstrap.Attempts(), "error", err)

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		if backoff < 5*time.Minute {
			backoff *= 2
		}
	}
}

func (a *App) bootstrapOnce(ctx context.Context) error {
	if _, err := a.referenceSync.SeedSports(ctx); err != nil {
		return fmt.Errorf("seed sports: %w", err)
	}
	if _, err := a.referenceSync.SyncLeagues(ctx); err != nil {
		return fmt.Errorf("sync leagues: %w", err)
	}

	return nil
}

func buildScheduler(
	cfg config.Config,
	logger *logging.Logger,
	bootstrap *scheduler.BootstrapState,
	referenceSync *usecase.ReferenceSyncService,
	fixtureSync *usecase.FixtureSyncService,
	liveSync *usecase.LiveSyncService,
) (*scheduler.Scheduler, error) {
	quiet := scheduler.QuietWindow{
		StartHour: cfg.QuietWindowStartHour,
		EndHour:   cfg.QuietWindowEndHour,
	}

	sched := scheduler.New(logger)
	jobs := []scheduler.Job{
		{
			Name:  "reference-sync",
			Every: cfg.JobReferenceInterval,
			Gate:  bootstrap.Gate(),
			Run: func(ctx context.Context) error {
				_, err := referenceSync.SyncLeagues(ctx)
				return err
			},
		},
		{
			Name:  "today-fixtures",
			Every: cfg.JobTodayInterval,
			Gate:  bootstrap.Gate(),
			Run: func(ctx context.Context) error {
				_, err := fixtureSync.SyncTodayMatches(ctx)
				return err
			},
		},
		{
			Name:  "live-refresh",
			Every: cfg.JobLiveInterval,
			Gate:  scheduler.AllOf(bootstrap.Gate(), quiet.Gate()),
			Run: func(ctx context.Context) error {
				_, err := liveSync.RefreshLiveMatches(ctx)
				return err
			},
		},
		{
			Name:  "stale-cleanup",
			Every: cfg.JobStaleCleanupInterval,
			Run: func(ctx context.Context) error {
				_, err := liveSync.CleanupStaleLive(ctx, cfg.StaleThreshold)
				return err
			},
		},
	}

	for _, job := range jobs {
		if err := sched.Register(job); err != nil {
			return nil, fmt.Errorf("register job %s: %w", job.Name, err)
		}
	}

	return sched, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithAttributes(
			attribute.String("db.system", "postgresql"),
		),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}

func providerKey(cfg config.Config) string {
	if !cfg.APIFootballEnabled {
		return ""
	}
	return cfg.APIFootballKey
}
