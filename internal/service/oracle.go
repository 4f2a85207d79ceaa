package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/tuankiet247/OpenDayGame/internal/domain"
	"github.com/tuankiet247/OpenDayGame/internal/llm"
	"github.com/tuankiet247/OpenDayGame/internal/metrics"
)

const (
	ModeScoring    = "scoring"
	ModeGeneration = "generation"
	ModeAnalysis   = "analysis"

	defaultOracleTimeout = 10 * time.Second
)

// ScoringOracle adapts an LLMClient into the three oracle modes: scoring bank
// questions, generating open questions and analysing final totals. Every call is a
// single attempt bounded by timeout; any failure yields Unavailable.
type ScoringOracle struct {
	client  llm.LLMClient
	prompts *PromptSet
	timeout time.Duration
	logger  *zap.Logger
	nonceFn func() string
}

func NewScoringOracle(client llm.LLMClient, prompts *PromptSet, timeout time.Duration, logger *zap.Logger) *ScoringOracle {
	if prompts == nil {
		prompts = DefaultPrompts()
	}
	if timeout <= 0 || timeout > defaultOracleTimeout {
		timeout = defaultOracleTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ScoringOracle{
		client:  client,
		prompts: prompts,
		timeout: timeout,
		logger:  logger,
		nonceFn: uuid.NewString,
	}
}

type oracleOption struct {
	ID     string         `json:"id"`
	Text   string         `json:"text"`
	Scores map[string]int `json:"scores"`
}

type oracleScoresResponse struct {
	Options []oracleOption `json:"options"`
}

type oracleQuestionResponse struct {
	Question string         `json:"question"`
	Options  []oracleOption `json:"options"`
}

type oracleAnalysisResponse struct {
	TopMajor            string   `json:"top_major"`
	BackupMajors        []string `json:"backup_majors"`
	Reasoning           string   `json:"reasoning"`
	Roadmap             string   `json:"roadmap"`
	CareerOpportunities string   `json:"career_opportunities"`
	Badges              []string `json:"badges"`
}

// Evaluate asks the oracle for a 0-5 vector per option of q. The response must
// cover exactly the question's labels; anything else is Unavailable.
func (o *ScoringOracle) Evaluate(ctx context.Context, q domain.Question, cat domain.Category) Outcome[map[string]domain.MajorScores] {
	if o == nil || o.client == nil {
		return Unavailable[map[string]domain.MajorScores](errors.New("oracle not configured"))
	}
	start := time.Now()

	prompt, err := o.prompts.ScoringPrompt(o.nonceFn(), q, cat)
	if err != nil {
		return oracleFailure[map[string]domain.MajorScores](o, ModeScoring, start, err)
	}

	var resp oracleScoresResponse
	if err := o.call(ctx, prompt, optionScoresSchema, &resp); err != nil {
		return oracleFailure[map[string]domain.MajorScores](o, ModeScoring, start, err)
	}

	scores, err := matchOptionScores(q, resp.Options)
	if err != nil {
		return oracleFailure[map[string]domain.MajorScores](o, ModeScoring, start, err)
	}

	metrics.ObserveOracle(ModeScoring, true, time.Since(start))
	return Success(scores)
}

func matchOptionScores(q domain.Question, options []oracleOption) (map[string]domain.MajorScores, error) {
	expected := make(map[string]struct{}, len(q.Options))
	for _, opt := range q.Options {
		expected[opt.Label] = struct{}{}
	}

	scores := make(map[string]domain.MajorScores, len(options))
	for _, opt := range options {
		label := strings.ToUpper(strings.TrimSpace(opt.ID))
		if _, ok := expected[label]; !ok {
			return nil, fmt.Errorf("unexpected option label %q", opt.ID)
		}
		if _, dup := scores[label]; dup {
			return nil, fmt.Errorf("duplicate option label %q", label)
		}
		scores[label] = domain.MajorScoresFromMap(opt.Scores).Clamp(maxOracleOptionScore)
	}
	if len(scores) != len(expected) {
		return nil, fmt.Errorf("expected %d option scores, got %d", len(expected), len(scores))
	}
	return scores, nil
}

// FallbackScores is the deterministic substitute for Evaluate: each option gives
// its fallback weight to every major related to the category and 0 to the rest.
func FallbackScores(q domain.Question, cat domain.Category) map[string]domain.MajorScores {
	scores := make(map[string]domain.MajorScores, len(q.Options))
	for _, opt := range q.Options {
		vec := domain.NewMajorScores()
		weight := opt.FallbackWeight
		if weight < 0 {
			weight = 0
		}
		for _, m := range domain.AllMajors {
			if cat.Related(m) {
				vec[m] = weight
			}
		}
		scores[opt.Label] = vec
	}
	return scores
}

// Generate asks the oracle for a brand new question for cat. There is no fallback
// for this mode.
func (o *ScoringOracle) Generate(ctx context.Context, cat domain.Category) Outcome[domain.EvaluatedQuestion] {
	if o == nil || o.client == nil {
		return Unavailable[domain.EvaluatedQuestion](errors.New("oracle not configured"))
	}
	start := time.Now()

	prompt, err := o.prompts.GenerationPrompt(o.nonceFn(), cat)
	if err != nil {
		return oracleFailure[domain.EvaluatedQuestion](o, ModeGeneration, start, err)
	}

	var resp oracleQuestionResponse
	if err := o.call(ctx, prompt, generatedQuestionSchema, &resp); err != nil {
		return oracleFailure[domain.EvaluatedQuestion](o, ModeGeneration, start, err)
	}

	eq := domain.EvaluatedQuestion{
		CategoryID: cat.ID,
		Text:       strings.TrimSpace(resp.Question),
		Options:    make([]domain.EvaluatedOption, 0, len(resp.Options)),
		Source:     domain.SourceOracle,
	}
	seen := make(map[string]struct{}, len(resp.Options))
	for _, opt := range resp.Options {
		label := strings.ToUpper(strings.TrimSpace(opt.ID))
		if !domain.ValidOptionLabel(label) {
			return oracleFailure[domain.EvaluatedQuestion](o, ModeGeneration, start, fmt.Errorf("invalid option label %q", opt.ID))
		}
		if _, dup := seen[label]; dup {
			return oracleFailure[domain.EvaluatedQuestion](o, ModeGeneration, start, fmt.Errorf("duplicate option label %q", label))
		}
		seen[label] = struct{}{}
		eq.Options = append(eq.Options, domain.EvaluatedOption{
			Label:  label,
			Text:   strings.TrimSpace(opt.Text),
			Scores: domain.MajorScoresFromMap(opt.Scores),
		})
	}

	metrics.ObserveOracle(ModeGeneration, true, time.Since(start))
	return Success(eq)
}

// Analyze asks the oracle for the narrative recommendation of totals.
func (o *ScoringOracle) Analyze(ctx context.Context, totals domain.MajorScores, profile domain.UserProfile) Outcome[domain.AggregatedResult] {
	if o == nil || o.client == nil {
		return Unavailable[domain.AggregatedResult](errors.New("oracle not configured"))
	}
	start := time.Now()

	prompt, err := o.prompts.AnalysisPrompt(o.nonceFn(), totals, profile)
	if err != nil {
		return oracleFailure[domain.AggregatedResult](o, ModeAnalysis, start, err)
	}

	var resp oracleAnalysisResponse
	if err := o.call(ctx, prompt, analysisSchema, &resp); err != nil {
		return oracleFailure[domain.AggregatedResult](o, ModeAnalysis, start, err)
	}

	badges := resp.Badges
	if badges == nil {
		badges = []string{}
	}
	metrics.ObserveOracle(ModeAnalysis, true, time.Since(start))
	return Success(domain.AggregatedResult{
		TopMajor:            resp.TopMajor,
		BackupMajors:        resp.BackupMajors,
		Reasoning:           resp.Reasoning,
		Roadmap:             resp.Roadmap,
		CareerOpportunities: resp.CareerOpportunities,
		Badges:              badges,
		Source:              domain.SourceOracle,
	})
}

// call runs one bounded request, strips fences, validates against schema and decodes into out.
func (o *ScoringOracle) call(ctx context.Context, prompt string, schema *llm.Schema, out any) error {
	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	defer cancel()

	raw, err := o.client.Generate(callCtx, prompt)
	if err != nil {
		return fmt.Errorf("llm generate: %w", err)
	}

	payload := extractOracleJSON(raw)
	if payload == "" {
		return &llm.ErrInvalidResponse{Content: json.RawMessage(raw), Err: errors.New("no JSON object in response")}
	}
	if err := llm.ValidateJSON(schema, []byte(payload)); err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(payload), out); err != nil {
		return fmt.Errorf("parse llm response: %w", err)
	}
	return nil
}

func oracleFailure[T any](o *ScoringOracle, mode string, start time.Time, err error) Outcome[T] {
	metrics.ObserveOracle(mode, false, time.Since(start))
	o.logger.Warn("oracle unavailable", zap.String("mode", mode), zap.Error(err))
	return Unavailable[T](err)
}
