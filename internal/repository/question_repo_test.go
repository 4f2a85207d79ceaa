package repository

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeBank(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "questions.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write bank: %v", err)
	}
	return path
}

const unsortedLogicBank = `[
  {"id": 3, "category_id": "logic", "question_text": "Q3", "options": [{"label": "A", "text": "a", "score": 1}]},
  {"id": 1, "category_id": "logic", "question_text": "Q1", "options": [{"label": "A", "text": "a", "score": 2}, {"label": "b", "text": "b", "score": 0}]},
  {"id": 2, "category_id": "logic", "question_text": "Q2", "options": [{"label": "A", "text": "a", "score": 3}]},
  {"id": 1, "category_id": "creative", "question_text": "C1", "options": [{"label": "A", "text": "a", "score": 1}]}
]`

func TestLoadQuestionBankSortsByID(t *testing.T) {
	bank, err := LoadQuestionBank(context.Background(), NewJSONFileSource(writeBank(t, unsortedLogicBank)))
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if bank.Count("logic") != 3 || bank.Total() != 4 {
		t.Fatalf("unexpected counts logic=%d total=%d", bank.Count("logic"), bank.Total())
	}
	for i, wantID := range []int{1, 2, 3} {
		q, err := bank.Get("logic", i)
		if err != nil {
			t.Fatalf("get logic[%d]: %v", i, err)
		}
		if q.ID != wantID {
			t.Fatalf("logic[%d] expected id %d, got %d", i, wantID, q.ID)
		}
	}
	q, _ := bank.Get("logic", 0)
	if q.Options[1].Label != "B" || q.Options[0].FallbackWeight != 2 {
		t.Fatalf("expected normalized labels and weights, got %+v", q.Options)
	}
	if ids := bank.CategoryIDs(); len(ids) != 2 || ids[0] != "creative" || ids[1] != "logic" {
		t.Fatalf("unexpected category ids %v", ids)
	}
}

func TestQuestionBankGetNotFound(t *testing.T) {
	bank, err := NewQuestionBank([]QuestionRecord{
		{ID: 1, CategoryID: "logic", QuestionText: "Q1", Options: []OptionRecord{{Label: "A", Text: "a"}}},
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	cases := []struct {
		name     string
		category string
		index    int
	}{
		{"unknown category", "unknown_cat", 0},
		{"negative index", "logic", -1},
		{"index at len", "logic", 1},
		{"index beyond len", "logic", 42},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := bank.Get(tc.category, tc.index); !errors.Is(err, ErrQuestionNotFound) {
				t.Fatalf("expected ErrQuestionNotFound, got %v", err)
			}
		})
	}

	var nilBank *QuestionBank
	if _, err := nilBank.Get("logic", 0); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound from nil bank, got %v", err)
	}
	if _, err := EmptyBank().Get("logic", 0); !errors.Is(err, ErrQuestionNotFound) {
		t.Fatalf("expected ErrQuestionNotFound from empty bank, got %v", err)
	}
}

func TestQuestionBankGetReturnsCopy(t *testing.T) {
	bank, _ := NewQuestionBank([]QuestionRecord{
		{ID: 1, CategoryID: "logic", QuestionText: "Q1", Options: []OptionRecord{{Label: "A", Text: "a", Score: 1}}},
	})
	q, _ := bank.Get("logic", 0)
	q.Options[0].Text = "mutated"
	again, _ := bank.Get("logic", 0)
	if again.Options[0].Text != "a" {
		t.Fatalf("bank must not be mutated through returned questions")
	}
}

func TestLoadQuestionBankErrors(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"malformed json", `[{"id": 1,`},
		{"not an array", `{"id": 1}`},
		{"empty category", `[{"id": 1, "category_id": " ", "question_text": "Q", "options": [{"label": "A"}]}]`},
		{"empty text", `[{"id": 1, "category_id": "logic", "question_text": "", "options": [{"label": "A"}]}]`},
		{"no options", `[{"id": 1, "category_id": "logic", "question_text": "Q", "options": []}]`},
		{"bad label", `[{"id": 1, "category_id": "logic", "question_text": "Q", "options": [{"label": "Z"}]}]`},
		{"duplicate label", `[{"id": 1, "category_id": "logic", "question_text": "Q", "options": [{"label": "A"}, {"label": "a"}]}]`},
		{"negative score", `[{"id": 1, "category_id": "logic", "question_text": "Q", "options": [{"label": "A", "score": -1}]}]`},
		{"duplicate id", `[
			{"id": 1, "category_id": "logic", "question_text": "Q", "options": [{"label": "A"}]},
			{"id": 1, "category_id": "logic", "question_text": "Q bis", "options": [{"label": "A"}]}
		]`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadQuestionBank(context.Background(), NewJSONFileSource(writeBank(t, tc.content)))
			if !errors.Is(err, ErrLoad) {
				t.Fatalf("expected ErrLoad, got %v", err)
			}
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadQuestionBank(context.Background(), NewJSONFileSource(filepath.Join(t.TempDir(), "nope.json")))
		if !errors.Is(err, ErrLoad) {
			t.Fatalf("expected ErrLoad, got %v", err)
		}
	})

	t.Run("nil source", func(t *testing.T) {
		if _, err := LoadQuestionBank(context.Background(), nil); !errors.Is(err, ErrLoad) {
			t.Fatalf("expected ErrLoad, got %v", err)
		}
	})
}

type failingSource struct{}

func (failingSource) Name() string { return "failing" }

func (failingSource) LoadQuestions(context.Context) ([]QuestionRecord, error) {
	return nil, errors.New("connection refused")
}

func TestLoadQuestionBankWrapsSourceErrors(t *testing.T) {
	_, err := LoadQuestionBank(context.Background(), failingSource{})
	if !errors.Is(err, ErrLoad) {
		t.Fatalf("expected ErrLoad, got %v", err)
	}
}

func TestShippedQuestionBankLoads(t *testing.T) {
	bank, err := LoadQuestionBank(context.Background(), NewJSONFileSource(filepath.Join("..", "..", "data", "questions.json")))
	if err != nil {
		t.Fatalf("expected shipped bank to load, got %v", err)
	}
	for _, id := range []string{"logic", "creative", "business", "language"} {
		if bank.Count(id) == 0 {
			t.Fatalf("expected questions for category %q", id)
		}
	}
}
