package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"skill-registry.backend/internal/config"
	"skill-registry.backend/internal/infrastructure/datasources/postgres"
	"skill-registry.backend/internal/infrastructure/datasources/sqlite"
	"skill-registry.backend/internal/infrastructure/migrations"
	"skill-registry.backend/internal/infrastructure/repositories"
	"skill-registry.backend/internal/interfaces/http/handlers"
	"skill-registry.backend/internal/interfaces/http/middleware"
	"skill-registry.backend/internal/usecases"
	"skill-registry.backend/pkg/logger"
	"skill-registry.backend/pkg/metrics"
	"skill-registry.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(cfg config.DatabaseConfig) (*gorm.DB, error) {
		if cfg.IsSQLite() {
			return sqlite.Open(cfg.SQLitePath)
		}
		return postgres.Open(cfg)
	}
	migrateDB = func(ctx context.Context, db *gorm.DB, sqlDB *sql.DB, cfg config.DatabaseConfig) error {
		if cfg.IsSQLite() {
			return sqlite.EnsureSchema(db)
		}
		return migrations.Run(ctx, sqlDB, "up")
	}
	runServer = func(srv *http.Server) error { return srv.ListenAndServe() }
	getStdDB  = func(db *gorm.DB) (*sql.DB, error) { return db.DB() }
)

func main() {
	if err := runMainProcess(); err != nil {
		log.Fatal(err)
	}
}

func runMainProcess() error {
	if err := loadDotenv(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := loadCfg()

	initLog(cfg.Server.Env)
	defer logger.Sync()
	ctx := context.Background()
	logger.Info(ctx, "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(ctx, "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	defer redis.Close()
	if redis.Enabled() {
		logger.Info(ctx, "Redis initialized, idempotency keys enabled")
	} else {
		logger.Info(ctx, "Redis not configured, idempotency keys disabled")
	}

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		// Reads degrade and writes fail with 503 until the store comes back.
		logger.Warn(ctx, "Database not available", zap.Error(err))
	} else {
		logger.Info(ctx, "Connected to database", zap.String("driver", cfg.Database.Driver))
		if cfg.Database.IsSQLite() || cfg.Database.AutoMigrate {
			if err := migrateDB(ctx, db, sqlDB, cfg.Database); err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
			logger.Info(ctx, "Database schema up to date")
		}
	}

	registry := metrics.NewRegistry()
	registryMetrics := metrics.NewRegistryMetrics(registry)

	// Repositories
	uow := repositories.NewUnitOfWork(db)
	memberRepo := repositories.NewMemberRepository(db)
	skillRepo := repositories.NewSkillRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	requirementRepo := repositories.NewRoleRequirementRepository(db)
	memberSkillRepo := repositories.NewMemberSkillRepository(db)
	auditRepo := repositories.NewAuditLogRepository(db)
	queryRepo := repositories.NewQueryRepository(db)

	// Usecases
	validator := usecases.NewValidator(cfg.Registry.EmailDomain)
	trail := usecases.NewAuditTrail(auditRepo, registryMetrics)
	eligibility := usecases.NewEligibilityChecker(roleRepo, requirementRepo, memberSkillRepo, registryMetrics)
	auditUsecase := usecases.NewAuditUsecase(auditRepo, cfg.Registry.AuditDefaultLimit, cfg.Registry.AuditMaxLimit)
	memberUsecase := usecases.NewMemberUsecase(uow, memberRepo, roleRepo, skillRepo, memberSkillRepo, trail, eligibility, validator, registryMetrics)
	memberSkillUsecase := usecases.NewMemberSkillUsecase(uow, memberRepo, skillRepo, memberSkillRepo, trail, validator, registryMetrics)
	skillUsecase := usecases.NewSkillUsecase(uow, skillRepo, roleRepo, requirementRepo, memberSkillRepo, trail, validator, registryMetrics)
	roleUsecase := usecases.NewRoleUsecase(uow, roleRepo, requirementRepo, skillRepo, memberRepo, trail, validator, registryMetrics)
	queryUsecase := usecases.NewQueryUsecase(queryRepo, memberRepo, eligibility, validator)
	reportUsecase := usecases.NewReportUsecase(memberRepo, roleRepo, skillRepo, memberSkillRepo, queryRepo, auditUsecase, cfg.Registry.RecentActivity, cfg.Registry.TopSkillsLimit)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware(registryMetrics))

	allowedOrigins = cfg.Server.CORSOrigins
	applyCORSMiddleware(r)
	registerHealthRoute(r, sqlDB.PingContext, redis.Ping)
	registerMetricsRoute(r, registry)
	registerAPIV1Routes(r, routeDeps{
		memberHandler: handlers.NewMemberHandler(memberUsecase, memberSkillUsecase),
		skillHandler:  handlers.NewSkillHandler(skillUsecase),
		roleHandler:   handlers.NewRoleHandler(roleUsecase),
		queryHandler:  handlers.NewQueryHandler(queryUsecase),
		auditHandler:  handlers.NewAuditHandler(auditUsecase),
		reportHandler: handlers.NewReportHandler(reportUsecase),
	})

	for _, route := range r.Routes() {
		logger.Debug(ctx, "Registered route", zap.String("method", route.Method), zap.String("path", route.Path))
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		logger.Info(ctx, "Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error(ctx, "Server shutdown failed", zap.Error(err))
		}
	}()

	logger.Info(ctx, "Skill registry backend starting",
		zap.String("port", cfg.Server.Port),
		zap.String("api", "/api/v1"),
		zap.String("health", "/health"),
	)

	if err := runServer(srv); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
