package main

import (
	"fmt"

	"github.com/tuankiet247/OpenDayGame/internal/domain"
)

// scoringIssues revisa que los puntajes del oraculo tengan sentido para la categoria:
// una carrera relacionada debe llevarse el puntaje mas alto de la pregunta.
func scoringIssues(q domain.Question, cat domain.Category, scores map[string]domain.MajorScores) []string {
	var issues []string
	best, bestMajor := -1, domain.Major("")
	for _, opt := range q.Options {
		vec, ok := scores[opt.Label]
		if !ok {
			issues = append(issues, fmt.Sprintf("sin puntajes para la opcion %s", opt.Label))
			continue
		}
		for _, m := range domain.AllMajors {
			if vec[m] > best {
				best, bestMajor = vec[m], m
			}
		}
	}
	if len(cat.Majors) > 0 && bestMajor != "" && !cat.Related(bestMajor) {
		issues = append(issues, fmt.Sprintf("el puntaje maximo (%d) fue a %s, fuera de %v", best, bestMajor, cat.Majors))
	}
	return issues
}

// analysisIssues revisa que el analisis respete los totales: top_major debe ser un
// maximo y los respaldos, carreras validas distintas del top.
func analysisIssues(totals domain.MajorScores, result domain.AggregatedResult) []string {
	var issues []string
	normalized := totals.Normalize()

	top, ok := domain.ParseMajor(result.TopMajor)
	if !ok {
		return append(issues, fmt.Sprintf("top_major invalido %q", result.TopMajor))
	}
	for _, m := range domain.AllMajors {
		if normalized[m] > normalized[top] {
			issues = append(issues, fmt.Sprintf("top_major %s (%d) por debajo de %s (%d)", top, normalized[top], m, normalized[m]))
			break
		}
	}

	seen := map[domain.Major]bool{top: true}
	for _, b := range result.BackupMajors {
		m, ok := domain.ParseMajor(b)
		if !ok {
			issues = append(issues, fmt.Sprintf("backup invalido %q", b))
			continue
		}
		if seen[m] {
			issues = append(issues, fmt.Sprintf("backup repetido %s", m))
		}
		seen[m] = true
	}
	if result.Reasoning == "" || result.Roadmap == "" {
		issues = append(issues, "reasoning o roadmap vacio")
	}
	return issues
}
