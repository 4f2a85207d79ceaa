package service

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/tuankiet247/OpenDayGame/internal/domain"
	"github.com/tuankiet247/OpenDayGame/internal/llm"
	"github.com/tuankiet247/OpenDayGame/internal/repository"
)

type stubQuestionOracle struct {
	scores    Outcome[map[string]domain.MajorScores]
	generated Outcome[domain.EvaluatedQuestion]
	calls     int
}

func (s *stubQuestionOracle) Evaluate(context.Context, domain.Question, domain.Category) Outcome[map[string]domain.MajorScores] {
	s.calls++
	return s.scores
}

func (s *stubQuestionOracle) Generate(context.Context, domain.Category) Outcome[domain.EvaluatedQuestion] {
	s.calls++
	return s.generated
}

func logicBank(t *testing.T) *repository.QuestionBank {
	t.Helper()
	opts := []repository.OptionRecord{{Label: "A", Text: "a", Score: 2}, {Label: "B", Text: "b", Score: 1}, {Label: "C", Text: "c", Score: 0}}
	bank, err := repository.NewQuestionBank([]repository.QuestionRecord{
		{ID: 3, CategoryID: "logic", QuestionText: "Q3", Options: opts},
		{ID: 1, CategoryID: "logic", QuestionText: "Q1", Options: opts},
		{ID: 2, CategoryID: "logic", QuestionText: "Q2", Options: opts},
		{ID: 1, CategoryID: "creative", QuestionText: "C1", Options: opts},
	})
	if err != nil {
		t.Fatalf("build bank: %v", err)
	}
	return bank
}

func TestNextQuestionReturnsFirstSortedQuestion(t *testing.T) {
	svc := NewQuestionService(logicBank(t), &stubQuestionOracle{scores: Unavailable[map[string]domain.MajorScores](nil)}, nil, zap.NewNop())
	eq, err := svc.NextQuestion(context.Background(), "logic", 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if eq.ID != 1 || eq.Text != "Q1" {
		t.Fatalf("expected question id 1, got %+v", eq)
	}
}

func TestNextQuestionFallbackWhenOracleUnavailable(t *testing.T) {
	oracle := &stubQuestionOracle{scores: Unavailable[map[string]domain.MajorScores](errors.New("timeout"))}
	svc := NewQuestionService(logicBank(t), oracle, nil, zap.NewNop())

	eq, err := svc.NextQuestion(context.Background(), "logic", 1)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if eq.Source != domain.SourceFallback {
		t.Fatalf("expected fallback source, got %q", eq.Source)
	}
	if oracle.calls != 1 {
		t.Fatalf("expected a single oracle attempt, got %d", oracle.calls)
	}
	a := eq.Options[0].Scores
	if a[domain.MajorCNTT] != 2 || a[domain.MajorAI] != 2 || a[domain.MajorTKDH] != 0 {
		t.Fatalf("unexpected fallback vector %v", a)
	}
	for _, opt := range eq.Options {
		assertFiveMajors(t, opt.Scores)
	}
}

func TestNextQuestionUsesOracleScores(t *testing.T) {
	oracle := &stubQuestionOracle{scores: Success(map[string]domain.MajorScores{
		"A": {domain.MajorTKDH: 4},
		"B": {domain.MajorNNA: 5},
		"C": {},
	})}
	svc := NewQuestionService(logicBank(t), oracle, nil, zap.NewNop())

	eq, err := svc.NextQuestion(context.Background(), "logic", 2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if eq.Source != domain.SourceOracle || eq.ID != 3 {
		t.Fatalf("unexpected question %+v", eq)
	}
	if eq.Options[0].Scores[domain.MajorTKDH] != 4 || eq.Options[1].Scores[domain.MajorNNA] != 5 {
		t.Fatalf("expected oracle scores, got %+v", eq.Options)
	}
	for _, opt := range eq.Options {
		assertFiveMajors(t, opt.Scores)
	}
}

func TestNextQuestionAllValidIndicesHaveFiveMajors(t *testing.T) {
	bank := logicBank(t)
	svc := NewQuestionService(bank, NewScoringOracle(&llm.MockClient{Err: errors.New("down")}, nil, 0, nil), nil, zap.NewNop())
	for _, cat := range bank.CategoryIDs() {
		for i := 0; i < bank.Count(cat); i++ {
			eq, err := svc.NextQuestion(context.Background(), cat, i)
			if err != nil {
				t.Fatalf("%s[%d]: unexpected error %v", cat, i, err)
			}
			for _, opt := range eq.Options {
				assertFiveMajors(t, opt.Scores)
			}
		}
	}
}

func TestNextQuestionNotFound(t *testing.T) {
	oracle := &stubQuestionOracle{}
	svc := NewQuestionService(logicBank(t), oracle, nil, zap.NewNop())
	cases := []struct {
		category string
		index    int
	}{
		{"unknown_cat", 0},
		{"logic", -1},
		{"logic", 3},
		{"creative", 1},
	}
	for _, tc := range cases {
		if _, err := svc.NextQuestion(context.Background(), tc.category, tc.index); !errors.Is(err, ErrQuestionNotFound) {
			t.Fatalf("%s[%d]: expected ErrQuestionNotFound, got %v", tc.category, tc.index, err)
		}
	}
	if oracle.calls != 0 {
		t.Fatalf("oracle must not be called for missing questions")
	}

	empty := NewQuestionService(nil, nil, nil, nil)
	if _, err := empty.NextQuestion(context.Background(), "logic", 0); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound from empty bank, got %v", err)
	}
}

func TestNextQuestionWithoutOracleFallsBack(t *testing.T) {
	svc := NewQuestionService(logicBank(t), nil, nil, zap.NewNop())
	eq, err := svc.NextQuestion(context.Background(), "creative", 0)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if eq.Source != domain.SourceFallback || eq.Options[0].Scores[domain.MajorTKDH] != 2 {
		t.Fatalf("unexpected fallback question %+v", eq)
	}
}

func TestGenerateOpenQuestion(t *testing.T) {
	generated := domain.EvaluatedQuestion{CategoryID: "logic", Text: "Q?", Source: domain.SourceOracle}

	t.Run("success", func(t *testing.T) {
		svc := NewQuestionService(nil, &stubQuestionOracle{generated: Success(generated)}, nil, zap.NewNop())
		eq, err := svc.GenerateOpenQuestion(context.Background(), "logic")
		if err != nil || eq.Text != "Q?" {
			t.Fatalf("expected generated question, got %+v err=%v", eq, err)
		}
	})

	t.Run("unknown category", func(t *testing.T) {
		svc := NewQuestionService(nil, &stubQuestionOracle{}, nil, zap.NewNop())
		if _, err := svc.GenerateOpenQuestion(context.Background(), "unknown_cat"); !errors.Is(err, ErrCategoryNotFound) {
			t.Fatalf("expected ErrCategoryNotFound, got %v", err)
		}
	})

	t.Run("unavailable propagates", func(t *testing.T) {
		svc := NewQuestionService(nil, &stubQuestionOracle{generated: Unavailable[domain.EvaluatedQuestion](errors.New("503"))}, nil, zap.NewNop())
		if _, err := svc.GenerateOpenQuestion(context.Background(), "logic"); !errors.Is(err, ErrOracleUnavailable) {
			t.Fatalf("expected ErrOracleUnavailable, got %v", err)
		}
	})

	t.Run("no oracle", func(t *testing.T) {
		svc := NewQuestionService(nil, nil, nil, zap.NewNop())
		if _, err := svc.GenerateOpenQuestion(context.Background(), "logic"); !errors.Is(err, ErrOracleUnavailable) {
			t.Fatalf("expected ErrOracleUnavailable, got %v", err)
		}
	})
}

func TestCategoriesIncludeCounts(t *testing.T) {
	svc := NewQuestionService(logicBank(t), nil, nil, zap.NewNop())
	cats := svc.Categories()
	if len(cats) != 4 {
		t.Fatalf("expected 4 catalog categories, got %d", len(cats))
	}
	counts := map[string]int{}
	for _, c := range cats {
		counts[c.ID] = c.QuestionCount
	}
	if counts["logic"] != 3 || counts["creative"] != 1 || counts["business"] != 0 {
		t.Fatalf("unexpected counts %v", counts)
	}
}

func TestTotalQuestions(t *testing.T) {
	if got := NewQuestionService(logicBank(t), nil, nil, nil).TotalQuestions(); got != 4 {
		t.Fatalf("expected 4 questions, got %d", got)
	}
	if got := NewQuestionService(nil, nil, nil, nil).TotalQuestions(); got != 0 {
		t.Fatalf("expected empty bank, got %d", got)
	}
}
