package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"github.com/valyala/fasthttp"
	semconv "go.opentelemetry.io/otel/semconv/v1.4.0"

	"github.com/nplfantasy/fantasy-cricket/internal/config"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/leaderboard"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/match"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/player"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/playerstats"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/roster"
	"github.com/nplfantasy/fantasy-cricket/internal/domain/team"
	"github.com/nplfantasy/fantasy-cricket/internal/infrastructure/account/identity"
	"github.com/nplfantasy/fantasy-cricket/internal/infrastructure/repository/memory"
	"github.com/nplfantasy/fantasy-cricket/internal/infrastructure/repository/postgres"
	"github.com/nplfantasy/fantasy-cricket/internal/interfaces/httpapi"
	"github.com/nplfantasy/fantasy-cricket/internal/platform/cache"
	idgen "github.com/nplfantasy/fantasy-cricket/internal/platform/id"
	"github.com/nplfantasy/fantasy-cricket/internal/platform/logging"
	"github.com/nplfantasy/fantasy-cricket/internal/platform/resilience"
	"github.com/nplfantasy/fantasy-cricket/internal/usecase"
)

type repositories struct {
	teams   team.Repository
	players player.Repository
	matches match.Repository
	stats   playerstats.Repository
	rosters roster.Repository
	boards  leaderboard.Repository
}

// Cleanup releases resources held by the app, currently the DB pool.
type Cleanup func() error

func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, Cleanup, error) {
	if logger == nil {
		logger = logging.Default()
	}

	repos, cleanup, err := buildRepositories(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	var store *cache.Store
	if cfg.CacheEnabled {
		store = cache.NewStore(cfg.CacheTTL)
	}

	boards := usecase.NewLeaderboardService(repos.rosters, repos.boards, repos.matches, store, logger)
	catalogSvc := usecase.NewCatalogService(repos.matches, repos.teams, repos.players, store)
	rosterSvc := usecase.NewRosterService(
		repos.matches,
		repos.players,
		repos.rosters,
		repos.stats,
		boards,
		roster.DefaultRules(),
		logger,
	)
	scoringSvc := usecase.NewScoringService(
		repos.matches,
		repos.players,
		repos.teams,
		repos.rosters,
		repos.stats,
		boards,
		logger,
	)
	ingestionSvc := usecase.NewIngestionService(
		repos.matches,
		repos.players,
		repos.stats,
		scoringSvc,
		boards,
		idgen.NewRandomGenerator(),
		logger,
	)
	recalcSvc := usecase.NewRecalcService(repos.matches, scoringSvc, boards, cfg.RecalcMaxWorkers, logger)

	identityClient := identity.NewClient(
		&fasthttp.Client{},
		identity.Config{
			BaseURL:        cfg.IdentityBaseURL,
			IntrospectPath: cfg.IdentityIntrospectPath,
			AdminKey:       cfg.IdentityAdminKey,
			RequestTimeout: cfg.IdentityTimeout,
			TokenCacheTTL:  cfg.IdentityTokenCacheTTL,
			Breaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.IdentityCircuitEnabled,
				FailureThreshold: cfg.IdentityCircuitFailureCount,
				OpenTimeout:      cfg.IdentityCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.IdentityCircuitHalfOpenMaxReq,
			},
		},
		logger,
	)

	handler := httpapi.NewHandler(catalogSvc, rosterSvc, scoringSvc, boards, ingestionSvc, recalcSvc, logger)
	router := httpapi.NewRouter(handler, identityClient, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func buildRepositories(cfg config.Config, logger *logging.Logger) (repositories, Cleanup, error) {
	noop := func() error { return nil }

	switch cfg.StorageDriver {
	case config.StoragePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return repositories{}, nil, err
		}

		seedCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if err := postgres.BootstrapSeed(seedCtx, db); err != nil {
			_ = db.Close()
			return repositories{}, nil, fmt.Errorf("bootstrap seed: %w", err)
		}

		logger.Info("storage ready",
			"driver", cfg.StorageDriver,
			"db_name", dbNameFromURL(cfg.DBURL),
		)

		return repositories{
			teams:   postgres.NewTeamRepository(db),
			players: postgres.NewPlayerRepository(db),
			matches: postgres.NewMatchRepository(db),
			stats:   postgres.NewPlayerStatsRepository(db),
			rosters: postgres.NewRosterRepository(db),
			boards:  postgres.NewLeaderboardRepository(db),
		}, db.Close, nil

	default:
		logger.Info("storage ready", "driver", cfg.StorageDriver)

		return repositories{
			teams:   memory.NewTeamRepository(memory.SeedTeams()),
			players: memory.NewPlayerRepository(memory.SeedPlayers()),
			matches: memory.NewMatchRepository(memory.SeedMatches()),
			stats:   memory.NewPlayerStatsRepository(nil),
			rosters: memory.NewRosterRepository(),
			boards:  memory.NewLeaderboardRepository(),
		}, noop, nil
	}
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dbURL := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dbURL,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
	)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	return db, nil
}
