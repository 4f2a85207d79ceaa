package domain

import "strings"

// Major identifica uno de los cinco grupos de carreras evaluados por el juego.
type Major string

const (
	MajorCNTT Major = "CNTT"
	MajorAI   Major = "AI"
	MajorTKDH Major = "TKDH"
	MajorMKT  Major = "MKT"
	MajorNNA  Major = "NNA"
)

// AllMajors lists every major in tie-break priority order.
var AllMajors = []Major{MajorCNTT, MajorAI, MajorTKDH, MajorMKT, MajorNNA}

// ParseMajor normaliza un codigo de carrera (trim + upper) y reporta si es conocido.
func ParseMajor(raw string) (Major, bool) {
	m := Major(strings.ToUpper(strings.TrimSpace(raw)))
	for _, known := range AllMajors {
		if m == known {
			return m, true
		}
	}
	return m, false
}

// Priority returns the tie-break rank of m (0 is highest). Unknown majors sort last.
func (m Major) Priority() int {
	for i, known := range AllMajors {
		if m == known {
			return i
		}
	}
	return len(AllMajors)
}

// MajorScores asigna un puntaje no negativo a cada carrera.
type MajorScores map[Major]int

// NewMajorScores devuelve un vector con las cinco carreras en cero.
func NewMajorScores() MajorScores {
	s := make(MajorScores, len(AllMajors))
	for _, m := range AllMajors {
		s[m] = 0
	}
	return s
}

// MajorScoresFromMap builds a vector from loosely keyed input. Keys are matched
// case-insensitively, unknown keys are dropped and negative values read as zero.
func MajorScoresFromMap(raw map[string]int) MajorScores {
	s := NewMajorScores()
	for k, v := range raw {
		m, ok := ParseMajor(k)
		if !ok {
			continue
		}
		if v < 0 {
			v = 0
		}
		s[m] += v
	}
	return s
}

// Normalize returns a copy holding exactly the five majors with non-negative values.
func (s MajorScores) Normalize() MajorScores {
	out := NewMajorScores()
	for k, v := range s {
		if _, ok := out[k]; !ok {
			continue
		}
		if v < 0 {
			v = 0
		}
		out[k] = v
	}
	return out
}

// Clamp limita cada valor al rango [0, max].
func (s MajorScores) Clamp(max int) MajorScores {
	out := s.Normalize()
	for k, v := range out {
		if v > max {
			out[k] = max
		}
	}
	return out
}

// Add acumula otro vector sobre una copia de s.
func (s MajorScores) Add(other MajorScores) MajorScores {
	out := s.Normalize()
	for k, v := range other.Normalize() {
		out[k] += v
	}
	return out
}
