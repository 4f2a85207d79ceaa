package service

import (
	"context"
	"errors"
	"strings"

	"go.uber.org/zap"

	"github.com/tuankiet247/OpenDayGame/internal/domain"
	"github.com/tuankiet247/OpenDayGame/internal/metrics"
	"github.com/tuankiet247/OpenDayGame/internal/repository"
)

var (
	// ErrQuestionNotFound aliases the store error so callers only import service.
	ErrQuestionNotFound = repository.ErrQuestionNotFound
	ErrCategoryNotFound = errors.New("category not found")
)

// QuestionBank es la vista de solo lectura del banco que necesita el servicio.
type QuestionBank interface {
	Get(categoryID string, index int) (domain.Question, error)
	Count(categoryID string) int
	Total() int
}

// QuestionOracle scores bank questions and generates open ones.
type QuestionOracle interface {
	Evaluate(ctx context.Context, q domain.Question, cat domain.Category) Outcome[map[string]domain.MajorScores]
	Generate(ctx context.Context, cat domain.Category) Outcome[domain.EvaluatedQuestion]
}

// CategorySummary is a catalog entry plus how many bank questions it has.
type CategorySummary struct {
	domain.Category
	QuestionCount int `json:"question_count"`
}

// QuestionService selects questions by (category, index) and merges them with scores.
// It keeps no per-player state: the caller tracks its own progress.
type QuestionService struct {
	bank       QuestionBank
	oracle     QuestionOracle
	categories []domain.Category
	logger     *zap.Logger
}

func NewQuestionService(bank QuestionBank, oracle QuestionOracle, categories []domain.Category, logger *zap.Logger) *QuestionService {
	if bank == nil {
		bank = repository.EmptyBank()
	}
	if categories == nil {
		categories = domain.DefaultCategories()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuestionService{
		bank:       bank,
		oracle:     oracle,
		categories: categories,
		logger:     logger,
	}
}

// NextQuestion returns the question at index in categoryID with a five-major vector
// per option, from the oracle when available and from FallbackScores otherwise.
func (s *QuestionService) NextQuestion(ctx context.Context, categoryID string, index int) (domain.EvaluatedQuestion, error) {
	categoryID = strings.TrimSpace(categoryID)
	q, err := s.bank.Get(categoryID, index)
	if err != nil {
		return domain.EvaluatedQuestion{}, err
	}
	cat := s.category(categoryID)

	var outcome Outcome[map[string]domain.MajorScores]
	if s.oracle != nil {
		outcome = s.oracle.Evaluate(ctx, q, cat)
	} else {
		outcome = Unavailable[map[string]domain.MajorScores](errors.New("oracle not configured"))
	}

	if scores, ok := outcome.Get(); ok {
		return domain.NewEvaluatedQuestion(q, scores, domain.SourceOracle), nil
	}

	s.logger.Info("serving fallback scores",
		zap.String("category_id", categoryID),
		zap.Int("question_id", q.ID),
		zap.NamedError("reason", outcome.Reason()),
	)
	metrics.ObserveFallback("question")
	return domain.NewEvaluatedQuestion(q, FallbackScores(q, cat), domain.SourceFallback), nil
}

// GenerateOpenQuestion asks the oracle for a new question in categoryID. Without a
// bank there is no fallback, so Unavailable surfaces as ErrOracleUnavailable.
func (s *QuestionService) GenerateOpenQuestion(ctx context.Context, categoryID string) (domain.EvaluatedQuestion, error) {
	cat, ok := s.lookupCategory(strings.TrimSpace(categoryID))
	if !ok {
		return domain.EvaluatedQuestion{}, ErrCategoryNotFound
	}
	if s.oracle == nil {
		return domain.EvaluatedQuestion{}, ErrOracleUnavailable
	}

	outcome := s.oracle.Generate(ctx, cat)
	eq, ok := outcome.Get()
	if !ok {
		return domain.EvaluatedQuestion{}, outcome.Reason()
	}
	return eq, nil
}

// Categories lists the catalog in play order with bank question counts.
func (s *QuestionService) Categories() []CategorySummary {
	out := make([]CategorySummary, 0, len(s.categories))
	for _, c := range s.categories {
		out = append(out, CategorySummary{Category: c, QuestionCount: s.bank.Count(c.ID)})
	}
	return out
}

// TotalQuestions is the bank size, reported by the health endpoint.
func (s *QuestionService) TotalQuestions() int {
	return s.bank.Total()
}

func (s *QuestionService) lookupCategory(id string) (domain.Category, bool) {
	for _, c := range s.categories {
		if c.ID == id {
			return c, true
		}
	}
	return domain.Category{}, false
}

// category devuelve la categoria del catalogo o una sin carreras relacionadas
// si el banco trae una categoria que el catalogo no conoce.
func (s *QuestionService) category(id string) domain.Category {
	if c, ok := s.lookupCategory(id); ok {
		return c
	}
	return domain.Category{ID: id, Name: id}
}
