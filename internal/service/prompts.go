package service

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"text/template"

	"github.com/tuankiet247/OpenDayGame/internal/domain"
)

//go:embed prompts/*.tmpl
var embeddedPrompts embed.FS

var requiredPrompts = []string{"game_context", "scoring", "generate", "analysis"}

// PromptSet holds the parsed prompt templates used by the oracle.
type PromptSet struct {
	tmpl *template.Template
}

// DefaultPrompts returns the templates shipped with the binary.
func DefaultPrompts() *PromptSet {
	sub, err := fs.Sub(embeddedPrompts, "prompts")
	if err != nil {
		panic(err)
	}
	ps, err := parsePrompts(sub)
	if err != nil {
		panic(err)
	}
	return ps
}

// LoadPrompts parses every *.tmpl in dir. An empty dir falls back to the embedded set.
func LoadPrompts(dir string) (*PromptSet, error) {
	if strings.TrimSpace(dir) == "" {
		return DefaultPrompts(), nil
	}
	return parsePrompts(os.DirFS(dir))
}

func parsePrompts(fsys fs.FS) (*PromptSet, error) {
	tmpl, err := template.New("prompts").Option("missingkey=error").ParseFS(fsys, "*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parse prompt templates: %w", err)
	}
	for _, name := range requiredPrompts {
		if tmpl.Lookup(name) == nil {
			return nil, fmt.Errorf("prompt template %q not defined", name)
		}
	}
	return &PromptSet{tmpl: tmpl}, nil
}

type scoringPromptData struct {
	Nonce               string
	CategoryName        string
	CategoryDescription string
	RelatedMajors       string
	Question            string
	Options             []domain.Option
	Labels              string
}

type generationPromptData struct {
	Nonce               string
	CategoryName        string
	CategoryDescription string
	RelatedMajors       string
}

type analysisPromptData struct {
	Nonce      string
	Name       string
	Extra      map[string]string
	ScoresJSON string
}

// ScoringPrompt renders the per-option scoring instruction for a bank question.
func (p *PromptSet) ScoringPrompt(nonce string, q domain.Question, cat domain.Category) (string, error) {
	return p.render("scoring", scoringPromptData{
		Nonce:               nonce,
		CategoryName:        cat.Name,
		CategoryDescription: cat.Description,
		RelatedMajors:       joinMajors(cat.Majors),
		Question:            q.Text,
		Options:             q.Options,
		Labels:              strings.Join(q.Labels(), ", "),
	})
}

// GenerationPrompt renders the open-ended question generation instruction.
func (p *PromptSet) GenerationPrompt(nonce string, cat domain.Category) (string, error) {
	return p.render("generate", generationPromptData{
		Nonce:               nonce,
		CategoryName:        cat.Name,
		CategoryDescription: cat.Description,
		RelatedMajors:       joinMajors(cat.Majors),
	})
}

// AnalysisPrompt renders the final recommendation instruction.
func (p *PromptSet) AnalysisPrompt(nonce string, totals domain.MajorScores, profile domain.UserProfile) (string, error) {
	return p.render("analysis", analysisPromptData{
		Nonce:      nonce,
		Name:       profile.DisplayName(),
		Extra:      profile.Extra,
		ScoresJSON: scoresJSON(totals),
	})
}

func (p *PromptSet) render(name string, data any) (string, error) {
	var buf bytes.Buffer
	if err := p.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render prompt %s: %w", name, err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func joinMajors(majors []domain.Major) string {
	parts := make([]string, len(majors))
	for i, m := range majors {
		parts[i] = string(m)
	}
	return strings.Join(parts, ", ")
}

// scoresJSON serializa los totales en orden de prioridad para que el prompt sea estable.
func scoresJSON(totals domain.MajorScores) string {
	normalized := totals.Normalize()
	var b strings.Builder
	b.WriteByte('{')
	for i, m := range domain.AllMajors {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%q: %d", string(m), normalized[m])
	}
	b.WriteByte('}')
	return b.String()
}
