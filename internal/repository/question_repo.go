package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tuankiet247/OpenDayGame/internal/domain"
)

var (
	// ErrLoad indica que el banco de preguntas no se pudo cargar o está mal formado.
	ErrLoad = errors.New("question bank load failed")
	// ErrQuestionNotFound se devuelve cuando la categoria no existe o el indice está fuera de rango.
	ErrQuestionNotFound = errors.New("question not found")
)

// QuestionRecord es el formato persistido de una pregunta del banco.
type QuestionRecord struct {
	ID           int            `json:"id"`
	CategoryID   string         `json:"category_id"`
	QuestionText string         `json:"question_text"`
	Options      []OptionRecord `json:"options"`
}

// OptionRecord es el formato persistido de una opcion.
type OptionRecord struct {
	Label string `json:"label"`
	Text  string `json:"text"`
	Score int    `json:"score"`
}

// QuestionSource define de donde se leen los registros del banco.
type QuestionSource interface {
	LoadQuestions(ctx context.Context) ([]QuestionRecord, error)
	Name() string
}

// QuestionBank es el indice inmutable categoria -> preguntas ordenadas por id.
// Se construye una vez al arrancar y se comparte por puntero entre requests.
type QuestionBank struct {
	byCategory map[string][]domain.Question
	total      int
}

// EmptyBank devuelve un banco sin preguntas; toda busqueda resulta en ErrQuestionNotFound.
func EmptyBank() *QuestionBank {
	return &QuestionBank{byCategory: map[string][]domain.Question{}}
}

// LoadQuestionBank reads every record from src and builds the bank.
func LoadQuestionBank(ctx context.Context, src QuestionSource) (*QuestionBank, error) {
	if src == nil {
		return nil, fmt.Errorf("%w: no source configured", ErrLoad)
	}
	records, err := src.LoadQuestions(ctx)
	if err != nil {
		if errors.Is(err, ErrLoad) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %s: %v", ErrLoad, src.Name(), err)
	}
	return NewQuestionBank(records)
}

// NewQuestionBank validates records and indexes them by category, sorted ascending by id.
func NewQuestionBank(records []QuestionRecord) (*QuestionBank, error) {
	bank := EmptyBank()
	seen := make(map[string]map[int]struct{})

	for i, rec := range records {
		q, err := toQuestion(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrLoad, i, err)
		}
		ids, ok := seen[q.CategoryID]
		if !ok {
			ids = make(map[int]struct{})
			seen[q.CategoryID] = ids
		}
		if _, dup := ids[q.ID]; dup {
			return nil, fmt.Errorf("%w: record %d: duplicate id %d in category %q", ErrLoad, i, q.ID, q.CategoryID)
		}
		ids[q.ID] = struct{}{}
		bank.byCategory[q.CategoryID] = append(bank.byCategory[q.CategoryID], q)
		bank.total++
	}

	for _, qs := range bank.byCategory {
		sort.Slice(qs, func(a, b int) bool { return qs[a].ID < qs[b].ID })
	}
	return bank, nil
}

func toQuestion(rec QuestionRecord) (domain.Question, error) {
	categoryID := strings.TrimSpace(rec.CategoryID)
	if categoryID == "" {
		return domain.Question{}, errors.New("empty category_id")
	}
	text := strings.TrimSpace(rec.QuestionText)
	if text == "" {
		return domain.Question{}, errors.New("empty question_text")
	}
	if len(rec.Options) == 0 {
		return domain.Question{}, errors.New("question without options")
	}

	q := domain.Question{
		ID:         rec.ID,
		CategoryID: categoryID,
		Text:       text,
		Options:    make([]domain.Option, 0, len(rec.Options)),
	}
	labels := make(map[string]struct{}, len(rec.Options))
	for _, o := range rec.Options {
		label := strings.ToUpper(strings.TrimSpace(o.Label))
		if !domain.ValidOptionLabel(label) {
			return domain.Question{}, fmt.Errorf("invalid option label %q", o.Label)
		}
		if _, dup := labels[label]; dup {
			return domain.Question{}, fmt.Errorf("duplicate option label %q", label)
		}
		labels[label] = struct{}{}
		if o.Score < 0 {
			return domain.Question{}, fmt.Errorf("negative score for option %q", label)
		}
		q.Options = append(q.Options, domain.Option{
			Label:          label,
			Text:           strings.TrimSpace(o.Text),
			FallbackWeight: o.Score,
		})
	}
	return q, nil
}

// Get devuelve la pregunta en la posicion index de la categoria.
func (b *QuestionBank) Get(categoryID string, index int) (domain.Question, error) {
	if b == nil {
		return domain.Question{}, ErrQuestionNotFound
	}
	qs, ok := b.byCategory[categoryID]
	if !ok || index < 0 || index >= len(qs) {
		return domain.Question{}, fmt.Errorf("%w: category=%q index=%d", ErrQuestionNotFound, categoryID, index)
	}
	q := qs[index]
	q.Options = append([]domain.Option(nil), q.Options...)
	return q, nil
}

// Count devuelve cuantas preguntas tiene la categoria.
func (b *QuestionBank) Count(categoryID string) int {
	if b == nil {
		return 0
	}
	return len(b.byCategory[categoryID])
}

// Total returns the number of questions across every category.
func (b *QuestionBank) Total() int {
	if b == nil {
		return 0
	}
	return b.total
}

// CategoryIDs returns the categories present in the bank, sorted.
func (b *QuestionBank) CategoryIDs() []string {
	if b == nil {
		return nil
	}
	ids := make([]string, 0, len(b.byCategory))
	for id := range b.byCategory {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// JSONFileSource lee el banco desde un archivo JSON con un arreglo de registros.
type JSONFileSource struct {
	Path string
}

func NewJSONFileSource(path string) *JSONFileSource {
	return &JSONFileSource{Path: path}
}

func (s *JSONFileSource) Name() string { return "file:" + s.Path }

func (s *JSONFileSource) LoadQuestions(_ context.Context) ([]QuestionRecord, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrLoad, s.Path, err)
	}
	var records []QuestionRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrLoad, s.Path, err)
	}
	return records, nil
}

// PgQuestionSource lee el banco desde Postgres usando pgxpool.
//
//	quiz_questions(category_id text, id int, question_text text, PRIMARY KEY (category_id, id))
//	quiz_options(category_id text, question_id int, label text, text text, score int, position int)
type PgQuestionSource struct {
	pool *pgxpool.Pool
}

func NewPgQuestionSource(pool *pgxpool.Pool) *PgQuestionSource {
	return &PgQuestionSource{pool: pool}
}

func (s *PgQuestionSource) Name() string { return "postgres" }

func (s *PgQuestionSource) LoadQuestions(ctx context.Context) ([]QuestionRecord, error) {
	const query = `
		SELECT q.category_id, q.id, q.question_text, o.label, o.text, o.score
		FROM quiz_questions q
		JOIN quiz_options o ON o.category_id = q.category_id AND o.question_id = q.id
		ORDER BY q.category_id, q.id, o.position, o.label
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []QuestionRecord
	index := make(map[string]int)
	for rows.Next() {
		var (
			categoryID, text string
			id               int
			opt              OptionRecord
		)
		if err := rows.Scan(&categoryID, &id, &text, &opt.Label, &opt.Text, &opt.Score); err != nil {
			return nil, err
		}
		key := fmt.Sprintf("%s/%d", categoryID, id)
		pos, ok := index[key]
		if !ok {
			records = append(records, QuestionRecord{ID: id, CategoryID: categoryID, QuestionText: text})
			pos = len(records) - 1
			index[key] = pos
		}
		records[pos].Options = append(records[pos].Options, opt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}
