package service

import (
	"github.com/tuankiet247/OpenDayGame/internal/domain"
	"github.com/tuankiet247/OpenDayGame/internal/llm"
)

const maxOracleOptionScore = 5

func majorVectorSchema(maximum int) map[string]any {
	props := make(map[string]any, len(domain.AllMajors))
	required := make([]any, 0, len(domain.AllMajors))
	for _, m := range domain.AllMajors {
		props[string(m)] = map[string]any{"type": "integer", "minimum": 0, "maximum": maximum}
		required = append(required, string(m))
	}
	return map[string]any{
		"type":                 "object",
		"properties":           props,
		"required":             required,
		"additionalProperties": false,
	}
}

// optionScoresSchema valida la respuesta del modo scoring: un vector 0-5 por opcion.
var optionScoresSchema = &llm.Schema{
	Name: "option-scores",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"options": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":     map[string]any{"type": "string", "minLength": 1},
						"scores": majorVectorSchema(maxOracleOptionScore),
					},
					"required": []any{"id", "scores"},
				},
			},
		},
		"required": []any{"options"},
	},
}

// generatedQuestionSchema valida una pregunta generada con el mismo vector 0-5 del modo scoring.
var generatedQuestionSchema = &llm.Schema{
	Name: "generated-question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{"type": "string", "minLength": 1},
			"options": map[string]any{
				"type":     "array",
				"minItems": 2,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"id":     map[string]any{"type": "string", "minLength": 1},
						"text":   map[string]any{"type": "string", "minLength": 1},
						"scores": majorVectorSchema(maxOracleOptionScore),
					},
					"required": []any{"id", "text", "scores"},
				},
			},
		},
		"required": []any{"question", "options"},
	},
}

var analysisSchema = &llm.Schema{
	Name: "career-analysis",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"top_major": map[string]any{"type": "string", "minLength": 1},
			"backup_majors": map[string]any{
				"type":     "array",
				"minItems": 2,
				"maxItems": 2,
				"items":    map[string]any{"type": "string", "minLength": 1},
			},
			"reasoning":            map[string]any{"type": "string"},
			"roadmap":              map[string]any{"type": "string"},
			"career_opportunities": map[string]any{"type": "string"},
			"badges": map[string]any{
				"type":  "array",
				"items": map[string]any{"type": "string"},
			},
		},
		"required": []any{"top_major", "backup_majors", "reasoning", "roadmap", "career_opportunities"},
	},
}
