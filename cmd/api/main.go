package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"talent-track/internal/config"
	"talent-track/internal/db"
	"talent-track/internal/email"
	apihttp "talent-track/internal/http"
	"talent-track/internal/llm"
	"talent-track/internal/repository"
	"talent-track/internal/service"

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

	if err := db.EnsureSchema(ctx, pool); err != nil {
		logger.Fatal("db schema", zap.Error(err))
	}

	questionnaireRepo := repository.NewPgQuestionnaireRepository(pool)
	resultRepo := repository.NewPgMonthlyResultRepository(pool)
	talentRepo := repository.NewPgTalentResultRepository(pool)
	userRepo := repository.NewPgUserRepository(pool)

	// Sin API key no hay capacidad de evaluacion: el scoring queda en
	// modo fallback deterministico sin intentar salir a la red.
	var llmClient llm.Client
	if cfg.LLMAPIKey != "" {
		llmClient = llm.NewHTTPClient(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel, zap.NewStdLog(logger))
	} else {
		logger.Warn("llm api key not configured, scoring uses deterministic fallbacks")
	}

	var evaluator service.Evaluator = service.NewContentEvaluator(llmClient, logger)
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, score cache disabled", zap.Error(err))
		} else {
			cache := service.NewRedisScoreCache(redisClient)
			ttl := time.Duration(cfg.ScoreCacheTTLMin) * time.Minute
			evaluator = service.NewCachedEvaluator(evaluator, cache, ttl)
		}
		cancel()
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

	composer := service.NewHumilityComposer(evaluator)
	resultSvc := service.NewMonthlyResultService(resultRepo, questionnaireRepo, userRepo, composer, emailSender, logger)
	adviceSvc := service.NewAdviceService(llmClient, logger)

	jwtSvc := service.NewJWTService(cfg.JWTSecret, 15*time.Minute)
	if cfg.JWTSecret == "" {
		logger.Warn("jwt secret not configured")
	}

	questionnaireHandler := apihttp.NewQuestionnaireHandler(logger, questionnaireRepo)
	resultHandler := apihttp.NewResultHandler(logger, resultRepo, resultSvc)
	adviceHandler := apihttp.NewAdviceHandler(logger, adviceSvc)
	talentHandler := apihttp.NewTalentHandler(logger, talentRepo)
	router := apihttp.NewRouter(logger, jwtSvc, questionnaireHandler, resultHandler, adviceHandler, talentHandler)

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
