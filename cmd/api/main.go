// Boostly credit ledger API server.
//
// Wires configuration, Postgres, the optional Redis leaderboard cache, and
// the HTTP interface, then serves until interrupted.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/boostly/boostly-ledger/config"
	"github.com/boostly/boostly-ledger/internal/application/command"
	"github.com/boostly/boostly-ledger/internal/application/query"
	"github.com/boostly/boostly-ledger/internal/domain/leaderboard"
	httpiface "github.com/boostly/boostly-ledger/internal/interface/http"
	"github.com/boostly/boostly-ledger/internal/infrastructure/persistence/postgres"
	"github.com/boostly/boostly-ledger/internal/infrastructure/persistence/redis"
	"github.com/boostly/boostly-ledger/pkg/logger"
)

func main() {
	// A missing .env is fine; the environment wins either way.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logger.Default().Fatal().Err(err).Msg("failed to load configuration")
	}

	log := logger.New(logger.Config{
		Level:  cfg.App.LogLevel,
		Pretty: cfg.App.LogPretty,
	}).With("app", cfg.App.Name)

	if err := run(cfg, log); err != nil {
		log.Fatal().Err(err).Msg("fatal error")
	}
}

func run(cfg *config.Config, log *logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ─────────────────────────────────────────────────────────────────────────
	// Postgres
	// ─────────────────────────────────────────────────────────────────────────
	conn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
	if err != nil {
		return err
	}
	defer conn.Close()

	if cfg.Database.MigrateOnStart {
		if err := postgres.NewMigrator(conn).Migrate(ctx); err != nil {
			return err
		}
		log.Info().Msg("database migrations applied")
	}

	studentRepo := postgres.NewStudentRepository(conn)
	recognitionRepo := postgres.NewRecognitionRepository(conn)
	redemptionRepo := postgres.NewRedemptionRepository(conn)

	// ─────────────────────────────────────────────────────────────────────────
	// Redis (optional leaderboard cache)
	// ─────────────────────────────────────────────────────────────────────────
	var leaderboardRepo leaderboard.Repository = postgres.NewLeaderboardRepository(conn)
	var invalidator command.LeaderboardInvalidator
	var redisHealth httpiface.HealthChecker

	if !cfg.Redis.Disabled {
		cache, err := redis.NewCache(redis.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     10,
			MinIdleConns: 2,
			DialTimeout:  redis.DefaultConfig().DialTimeout,
			ReadTimeout:  redis.DefaultConfig().ReadTimeout,
			WriteTimeout: redis.DefaultConfig().WriteTimeout,
		})
		if err != nil {
			return err
		}
		defer cache.Close()

		cached := redis.NewCachedLeaderboard(leaderboardRepo, cache)
		leaderboardRepo = cached
		invalidator = cached
		redisHealth = cache
		log.Info().Str("addr", cfg.Redis.Host).Msg("leaderboard cache enabled")
	}

	// ─────────────────────────────────────────────────────────────────────────
	// Application handlers
	// ─────────────────────────────────────────────────────────────────────────
	deps := httpiface.Dependencies{
		CreateStudent:     command.NewCreateStudentHandler(studentRepo),
		CreateRecognition: command.NewCreateRecognitionHandler(recognitionRepo, invalidator),
		CreateEndorsement: command.NewCreateEndorsementHandler(recognitionRepo, studentRepo, invalidator),
		CreateRedemption:  command.NewCreateRedemptionHandler(redemptionRepo),
		ResetCredits:      command.NewResetCreditsHandler(studentRepo),

		GetStudent:             query.NewGetStudentHandler(studentRepo),
		ListStudents:           query.NewListStudentsHandler(studentRepo),
		GetRecognition:         query.NewGetRecognitionHandler(recognitionRepo),
		ListRecognitions:       query.NewListRecognitionsHandler(recognitionRepo),
		GetEndorsement:         query.NewGetEndorsementHandler(recognitionRepo),
		GetRedemption:          query.NewGetRedemptionHandler(redemptionRepo),
		ListStudentRedemptions: query.NewListStudentRedemptionsHandler(redemptionRepo, studentRepo),
		GetLeaderboard:         query.NewGetLeaderboardHandler(leaderboardRepo),

		Postgres: conn,
		Redis:    redisHealth,
		Logger:   log,
	}

	// ─────────────────────────────────────────────────────────────────────────
	// HTTP server
	// ─────────────────────────────────────────────────────────────────────────
	server := httpiface.NewServer(httpiface.Config{
		Host:         cfg.HTTP.Host,
		Port:         cfg.HTTP.Port,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  cfg.HTTP.IdleTimeout,
	}, deps)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer cancel()

	return server.Shutdown(shutdownCtx)
}
