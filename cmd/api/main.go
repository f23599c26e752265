package main

import (
	"context"
	"database/sql"
	"log"
	"net/http"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/siyarawr/Edu-Wealth-sub000/internal/config"
	"github.com/siyarawr/Edu-Wealth-sub000/internal/db"
	apihttp "github.com/siyarawr/Edu-Wealth-sub000/internal/http"
	"github.com/siyarawr/Edu-Wealth-sub000/internal/repository"
	"github.com/siyarawr/Edu-Wealth-sub000/internal/service"
	"github.com/siyarawr/Edu-Wealth-sub000/migrations"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("warning: loading .env: %v", err)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		panic(err)
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	if err := runMigrations(cfg.DatabaseURL); err != nil {
		logger.Fatal("db migrate", zap.Error(err))
	}

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	userRepo := repository.NewPgUserRepository(pool)
	sessionRepo := repository.NewPgSessionRepository(pool)
	expenseRepo := repository.NewPgExpenseRepository(pool)
	scholarshipRepo := repository.NewPgScholarshipRepository(pool)
	internshipRepo := repository.NewPgInternshipRepository(pool)
	seminarRepo := repository.NewPgSeminarRepository(pool)
	noteRepo := repository.NewPgNoteRepository(pool)
	chatRepo := repository.NewPgChatRepository(pool)
	eventRepo := repository.NewPgEventRepository(pool)

	var loginLimiter service.LoginRateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
		} else {
			loginLimiter = service.NewRedisLoginRateLimiter(redisClient, 10*time.Minute, 10)
		}
		cancel()
	}

	userSvc := service.NewUserService(logger, userRepo, loginLimiter)
	sessionSvc := service.NewSessionService(logger, sessionRepo, userRepo)
	expenseSvc := service.NewExpenseService(logger, expenseRepo)
	estimator := service.NewAcceptanceEstimator()

	authHandler := apihttp.NewAuthHandler(logger, userSvc, sessionSvc, cfg.CookieSecure)
	expenseHandler := apihttp.NewExpenseHandler(logger, expenseSvc)
	listingHandler := apihttp.NewListingHandler(logger, scholarshipRepo, internshipRepo, estimator)
	seminarHandler := apihttp.NewSeminarHandler(logger, seminarRepo)
	noteHandler := apihttp.NewNoteHandler(logger, noteRepo)
	chatHandler := apihttp.NewChatHandler(logger, chatRepo, userRepo)
	eventHandler := apihttp.NewEventHandler(logger, eventRepo)

	router := apihttp.NewRouter(
		logger,
		sessionSvc,
		cfg.CookieSecure,
		authHandler,
		expenseHandler,
		listingHandler,
		seminarHandler,
		noteHandler,
		chatHandler,
		eventHandler,
	)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server", zap.String("port", cfg.HTTPPort))

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

// runMigrations abre una conexion database/sql solo para goose.
func runMigrations(dsn string) error {
	sqlDB, err := sql.Open("pgx", dsn)
	if err != nil {
		return err
	}
	defer sqlDB.Close()
	return migrations.Migrate(sqlDB)
}
