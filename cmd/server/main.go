package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"fingerpay.backend/internal/config"
	"fingerpay.backend/internal/infrastructure/advice"
	"fingerpay.backend/internal/infrastructure/repositories"
	"fingerpay.backend/internal/interfaces/http/handlers"
	"fingerpay.backend/internal/interfaces/http/middleware"
	"fingerpay.backend/internal/usecases"
	"fingerpay.backend/pkg/jwt"
	"fingerpay.backend/pkg/logger"
	"fingerpay.backend/pkg/redis"
)

var (
	loadDotenv = godotenv.Load
	loadCfg    = config.Load
	initLog    = logger.Init
	initRedis  = redis.Init
	openDB     = func(dsn string) (*gorm.DB, error) {
		return gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	}
	runServer = func(r *gin.Engine, port string) error { return r.Run(":" + port) }
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
	logger.Info(context.Background(), "Logger initialized", zap.String("env", cfg.Server.Env))

	if err := initRedis(cfg.Redis.URL, cfg.Redis.PASSWORD); err != nil {
		logger.Error(context.Background(), "Failed to initialize Redis", zap.Error(err))
		return fmt.Errorf("failed to initialize redis: %w", err)
	}
	logger.Info(context.Background(), "Redis initialized")

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	db, err := openDB(cfg.Database.URL())
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := getStdDB(db)
	if err != nil {
		return fmt.Errorf("failed to get generic database object: %w", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Printf("database not available: %v (endpoints will return errors)", err)
	} else {
		log.Println("connected to PostgreSQL")
	}

	jwtService := jwt.NewJWTService(
		cfg.JWT.Secret,
		cfg.JWT.AccessExpiry,
		cfg.JWT.RefreshExpiry,
	)

	// Repositories
	customerRepo := repositories.NewCustomerRepository(db)
	merchantRepo := repositories.NewMerchantRepository(db)
	agentRepo := repositories.NewAgentRepository(db)
	txnRepo := repositories.NewTransactionRepository(db)
	uow := repositories.NewUnitOfWork(db)

	// Usecases
	txnUsecase := usecases.NewTransactionUsecase(txnRepo, customerRepo, merchantRepo, agentRepo, uow, cfg.Fees.PercentageFee)
	customerUsecase := usecases.NewCustomerUsecase(customerRepo, agentRepo, txnUsecase, uow, jwtService)
	merchantUsecase := usecases.NewMerchantUsecase(merchantRepo, txnRepo, jwtService)
	agentUsecase := usecases.NewAgentUsecase(agentRepo, customerRepo, jwtService)
	adviceProvider := advice.NewProvider(cfg.Advice)
	adviceUsecase := usecases.NewAdviceUsecase(adviceProvider, customerRepo, merchantRepo, agentRepo, cfg.Advice.CacheTTL)

	// Handlers
	txnHandler := handlers.NewTransactionHandler(txnUsecase)
	customerHandler := handlers.NewCustomerHandler(customerUsecase)
	merchantHandler := handlers.NewMerchantHandler(merchantUsecase)
	agentHandler := handlers.NewAgentHandler(agentUsecase)
	adviceHandler := handlers.NewAdviceHandler(adviceUsecase)

	authMiddleware := middleware.AuthMiddleware(jwtService)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.MetricsMiddleware())

	applyCORSMiddleware(r)
	registerHealthRoute(r)
	registerMetricsRoute(r)
	registerAPIV1Routes(r, routeDeps{
		txnHandler:      txnHandler,
		customerHandler: customerHandler,
		merchantHandler: merchantHandler,
		agentHandler:    agentHandler,
		adviceHandler:   adviceHandler,
		authMiddleware:  authMiddleware,
	})

	log.Printf("FingerPay backend starting on port %s", cfg.Server.Port)
	if err := runServer(r, cfg.Server.Port); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}
	return nil
}
