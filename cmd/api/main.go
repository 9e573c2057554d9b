package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"twofa-api/internal/config"
	"twofa-api/internal/db"
	"twofa-api/internal/email"
	apihttp "twofa-api/internal/http"
	"twofa-api/internal/repository"
	"twofa-api/internal/service"
	"twofa-api/internal/store"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
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

	pool, err := db.NewPool(ctx, cfg)
	if err != nil {
		logger.Fatal("db connect", zap.Error(err))
	}
	defer pool.Close()

	if cfg.CreateTables {
		if err := db.EnsureSchema(ctx, pool); err != nil {
			logger.Fatal("ensure schema", zap.Error(err))
		}
	}

	var (
		kv          store.KeyValueStore
		redisClient *redis.Client
	)
	if cfg.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed", zap.Error(err))
			redisClient = nil
		} else {
			kv = store.NewRedisStore(redisClient)
		}
		cancel()
	}
	if kv == nil {
		logger.Warn("redis not configured, using in-memory otp store")
		kv = store.NewMemoryStore()
	}

	emailSender := email.NewDisabledSender("email sender not configured")
	if cfg.SMTPHost != "" {
		sender, err := email.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass, cfg.SMTPFrom, cfg.SMTPFromName, cfg.SMTPUseTLS)
		if err != nil {
			logger.Warn("smtp sender init failed", zap.Error(err))
		} else {
			emailSender = sender
		}
	}

	userRepo := repository.NewPgUserRepository(pool)
	otpStore := service.NewOTPStore(kv)
	tokenSvc := service.NewTokenService(
		cfg.JWTSecret,
		time.Duration(cfg.AccessTokenTTLMinutes)*time.Minute,
		time.Duration(cfg.LoginTokenTTLMinutes)*time.Minute,
	)
	authSvc := service.NewAuthService(
		logger,
		userRepo,
		otpStore,
		tokenSvc,
		emailSender,
		time.Duration(cfg.OTPTTLMinutes)*time.Minute,
	)
	userSvc := service.NewUserService(userRepo)

	authHandler := apihttp.NewAuthHandler(logger, authSvc)
	userHandler := apihttp.NewUserHandler(logger, userSvc)
	healthHandler := apihttp.NewHealthHandler(logger, pool, redisPinger(redisClient))
	router := apihttp.NewRouter(logger, authSvc, authHandler, userHandler, healthHandler, cfg.CORSAllowedOrigins)

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

type redisHealth struct {
	client *redis.Client
}

func (p redisHealth) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

func redisPinger(client *redis.Client) apihttp.Pinger {
	if client == nil {
		return nil
	}
	return redisHealth{client: client}
}
