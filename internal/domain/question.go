package domain

import "strings"

// Question es una pregunta del banco estatico. No se modifica despues de cargarse.
type Question struct {
	ID         int      `json:"id"`
	CategoryID string   `json:"category_id"`
	Text       string   `json:"question"`
	Options    []Option `json:"options"`
}

// Option es una alternativa de respuesta; FallbackWeight se usa cuando el oraculo no responde.
type Option struct {
	Label          string `json:"id"`
	Text           string `json:"text"`
	FallbackWeight int    `json:"-"`
}

// OptionLabels es el alfabeto permitido para las opciones.
const OptionLabels = "ABCDEF"

// ValidOptionLabel reports whether label is a single letter from OptionLabels.
func ValidOptionLabel(label string) bool {
	return len(label) == 1 && strings.Contains(OptionLabels, label)
}

// Labels returns the option labels in display order.
func (q Question) Labels() []string {
	labels := make([]string, len(q.Options))
	for i, o := range q.Options {
		labels[i] = o.Label
	}
	return labels
}

// ScoreSource indica de donde salieron los puntajes de una respuesta.
type ScoreSource string

const (
	SourceOracle   ScoreSource = "oracle"
	SourceFallback ScoreSource = "fallback"
)

// EvaluatedOption is an option merged with its major score vector.
type EvaluatedOption struct {
	Label  string      `json:"id"`
	Text   string      `json:"text"`
	Scores MajorScores `json:"scores"`
}

// EvaluatedQuestion es la unidad devuelta al cliente: pregunta + puntajes por opcion.
// Se construye por request y nunca se cachea.
type EvaluatedQuestion struct {
	ID         int               `json:"id"`
	CategoryID string            `json:"category_id"`
	Text       string            `json:"question"`
	Options    []EvaluatedOption `json:"options"`
	Source     ScoreSource       `json:"source"`
}

// NewEvaluatedQuestion merges q with per-label scores. Options without an entry
// get a zero vector so every option always carries the five majors.
func NewEvaluatedQuestion(q Question, scores map[string]MajorScores, source ScoreSource) EvaluatedQuestion {
	eq := EvaluatedQuestion{
		ID:         q.ID,
		CategoryID: q.CategoryID,
		Text:       q.Text,
		Options:    make([]EvaluatedOption, len(q.Options)),
		Source:     source,
	}
	for i, o := range q.Options {
		eq.Options[i] = EvaluatedOption{
			Label:  o.Label,
			Text:   o.Text,
			Scores: scores[o.Label].Normalize(),
		}
	}
	return eq
}
