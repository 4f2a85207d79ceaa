package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/tuankiet247/OpenDayGame/internal/config"
	"github.com/tuankiet247/OpenDayGame/internal/domain"
	"github.com/tuankiet247/OpenDayGame/internal/llm"
	"github.com/tuankiet247/OpenDayGame/internal/repository"
	"github.com/tuankiet247/OpenDayGame/internal/service"
)

type analysisScenario struct {
	Name   string
	Totals domain.MajorScores
}

// oracle_check llama al oraculo real con la primera pregunta de cada categoria y con
// algunos totales de ejemplo, y revisa que las respuestas sean coherentes.
func main() {
	ctx := context.Background()
	_ = godotenv.Load()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	if !cfg.OracleEnabled() {
		log.Fatalf("LLM_API_KEY no configurada")
	}

	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	bank, err := repository.LoadQuestionBank(ctx, repository.NewJSONFileSource(cfg.QuestionBankPath))
	if err != nil {
		log.Fatalf("load bank: %v", err)
	}
	prompts, err := service.LoadPrompts(cfg.PromptDir)
	if err != nil {
		log.Fatalf("load prompts: %v", err)
	}
	client, err := llm.NewOpenAIClient(llm.ClientConfig{
		BaseURL:     cfg.LLMBaseURL,
		APIKey:      cfg.LLMAPIKey,
		Model:       cfg.LLMModel,
		Temperature: cfg.LLMTemperature,
		SiteURL:     cfg.SiteURL,
		AppName:     cfg.AppName,
	}, logger)
	if err != nil {
		log.Fatalf("llm client: %v", err)
	}
	oracle := service.NewScoringOracle(client, prompts, cfg.OracleTimeout, logger)

	passed, total := 0, 0

	for _, cat := range domain.DefaultCategories() {
		q, err := bank.Get(cat.ID, 0)
		if err != nil {
			fmt.Printf("⚠️  SKIP [%s] sin preguntas\n\n", cat.ID)
			continue
		}
		total++
		fmt.Printf("=== Scoring: %s #%d ===\n", cat.ID, q.ID)

		start := time.Now()
		outcome := oracle.Evaluate(ctx, q, cat)
		scores, ok := outcome.Get()
		if !ok {
			fmt.Printf("❌ FAIL [%s] %v (%s)\n\n", cat.ID, outcome.Reason(), time.Since(start))
			continue
		}
		for _, opt := range q.Options {
			fmt.Printf("  %s oracle=%v fallback=%v\n", opt.Label, scores[opt.Label].Normalize(), service.FallbackScores(q, cat)[opt.Label])
		}
		if issues := scoringIssues(q, cat, scores); len(issues) > 0 {
			fmt.Printf("❌ FAIL [%s] %v\n\n", cat.ID, issues)
			continue
		}
		fmt.Printf("✅ PASS [%s] (%s)\n\n", cat.ID, time.Since(start))
		passed++
	}

	scenarios := []analysisScenario{
		{Name: "Logica clara", Totals: domain.MajorScores{domain.MajorCNTT: 8, domain.MajorAI: 5, domain.MajorTKDH: 5, domain.MajorMKT: 2, domain.MajorNNA: 1}},
		{Name: "Creativo", Totals: domain.MajorScores{domain.MajorTKDH: 12, domain.MajorMKT: 6, domain.MajorNNA: 2}},
		{Name: "Idiomas", Totals: domain.MajorScores{domain.MajorNNA: 14, domain.MajorMKT: 7, domain.MajorAI: 1}},
	}
	for _, sc := range scenarios {
		total++
		fmt.Printf("=== Analisis: %s ===\n", sc.Name)

		outcome := oracle.Analyze(ctx, sc.Totals, domain.UserProfile{Name: "Tester"})
		result, ok := outcome.Get()
		if !ok {
			fmt.Printf("❌ FAIL [%s] %v\n\n", sc.Name, outcome.Reason())
			continue
		}
		fmt.Printf("  top=%s backups=%v badges=%v\n", result.TopMajor, result.BackupMajors, result.Badges)
		if issues := analysisIssues(sc.Totals, result); len(issues) > 0 {
			fmt.Printf("❌ FAIL [%s] %v\n\n", sc.Name, issues)
			continue
		}
		fmt.Printf("✅ PASS [%s]\n\n", sc.Name)
		passed++
	}

	fmt.Printf("Checks: %d/%d pasaron\n", passed, total)
	if passed != total {
		os.Exit(1)
	}
}
