package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/tuankiet247/OpenDayGame/internal/config"
	"github.com/tuankiet247/OpenDayGame/internal/db"
	"github.com/tuankiet247/OpenDayGame/internal/domain"
	apihttp "github.com/tuankiet247/OpenDayGame/internal/http"
	"github.com/tuankiet247/OpenDayGame/internal/llm"
	"github.com/tuankiet247/OpenDayGame/internal/repository"
	"github.com/tuankiet247/OpenDayGame/internal/service"
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
	// Un argumento ":8080" o "8080" pisa HTTP_PORT.
	if len(os.Args) > 1 {
		cfg.HTTPPort = strings.TrimPrefix(os.Args[1], ":")
	}

	logger, _ := zap.NewProduction()
	defer logger.Sync()

	bank := loadBank(ctx, cfg, logger)

	prompts, err := service.LoadPrompts(cfg.PromptDir)
	if err != nil {
		logger.Fatal("load prompts", zap.String("dir", cfg.PromptDir), zap.Error(err))
	}

	llmClient := llm.NewDisabledClient("llm api key not configured")
	if cfg.OracleEnabled() {
		client, err := llm.NewOpenAIClient(llm.ClientConfig{
			BaseURL:     cfg.LLMBaseURL,
			APIKey:      cfg.LLMAPIKey,
			Model:       cfg.LLMModel,
			Temperature: cfg.LLMTemperature,
			SiteURL:     cfg.SiteURL,
			AppName:     cfg.AppName,
		}, logger)
		if err != nil {
			logger.Warn("llm client init failed", zap.Error(err))
		} else {
			llmClient = client
		}
	} else {
		logger.Warn("llm api key not configured, serving fallback scores only")
	}

	var limiter service.RateLimiter
	if cfg.RedisAddr != "" {
		redisClient := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer redisClient.Close()
		ctxPing, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := redisClient.Ping(ctxPing).Err(); err != nil {
			logger.Warn("redis ping failed, rate limiting disabled", zap.Error(err))
		} else {
			limiter = service.NewRedisRateLimiter(redisClient, time.Minute, cfg.RateLimitPerMin)
		}
		cancel()
	}

	oracle := service.NewScoringOracle(llmClient, prompts, cfg.OracleTimeout, logger)
	questionSvc := service.NewQuestionService(bank, oracle, domain.DefaultCategories(), logger)
	resultSvc := service.NewResultService(oracle, logger)
	quizHandler := apihttp.NewQuizHandler(logger, questionSvc, resultSvc)
	router := apihttp.NewRouter(logger, quizHandler, limiter)

	server := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	logger.Info("starting server",
		zap.String("port", cfg.HTTPPort),
		zap.Int("questions", bank.Total()),
		zap.Bool("oracle_enabled", cfg.OracleEnabled()),
		zap.Duration("oracle_timeout", cfg.OracleTimeout),
	)

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatal("server error", zap.Error(err))
	}
}

// loadBank lee el banco desde Postgres si hay DATABASE_URL, si no desde el archivo JSON.
// Un fallo de carga no tumba el servicio: sigue con un banco vacio.
func loadBank(ctx context.Context, cfg *config.Config, logger *zap.Logger) *repository.QuestionBank {
	var src repository.QuestionSource = repository.NewJSONFileSource(cfg.QuestionBankPath)
	if cfg.DatabaseURL != "" {
		pool, err := db.NewPool(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("db connect, using empty question bank", zap.Error(err))
			return repository.EmptyBank()
		}
		defer pool.Close()
		src = repository.NewPgQuestionSource(pool)
	}

	bank, err := repository.LoadQuestionBank(ctx, src)
	if err != nil {
		logger.Error("load question bank, using empty bank", zap.String("source", src.Name()), zap.Error(err))
		return repository.EmptyBank()
	}
	logger.Info("question bank loaded", zap.String("source", src.Name()), zap.Int("questions", bank.Total()))
	return bank
}
