package domain

import "strings"

// UserProfile son los datos del jugador enviados con el resultado. No se persiste.
type UserProfile struct {
	Name  string            `json:"name"`
	Extra map[string]string `json:"extra,omitempty"`
}

// UserProfileFromMap arma el perfil a partir del objeto libre que envia el front.
func UserProfileFromMap(raw map[string]string) UserProfile {
	p := UserProfile{}
	for k, v := range raw {
		if strings.EqualFold(k, "name") {
			p.Name = strings.TrimSpace(v)
			continue
		}
		if p.Extra == nil {
			p.Extra = make(map[string]string)
		}
		p.Extra[k] = v
	}
	return p
}

// DisplayName returns the player's name or a friendly default.
func (p UserProfile) DisplayName() string {
	if strings.TrimSpace(p.Name) == "" {
		return "Bạn"
	}
	return strings.TrimSpace(p.Name)
}

// AggregatedResult es la recomendacion final del quiz.
type AggregatedResult struct {
	TopMajor            string      `json:"top_major"`
	BackupMajors        []string    `json:"backup_majors"`
	Reasoning           string      `json:"reasoning"`
	Roadmap             string      `json:"roadmap"`
	CareerOpportunities string      `json:"career_opportunities"`
	Badges              []string    `json:"badges"`
	Source              ScoreSource `json:"source"`
}
