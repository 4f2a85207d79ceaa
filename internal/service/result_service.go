package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/tuankiet247/OpenDayGame/internal/domain"
	"github.com/tuankiet247/OpenDayGame/internal/metrics"
)

// ResultOracle produce el analisis narrativo de los totales.
type ResultOracle interface {
	Analyze(ctx context.Context, totals domain.MajorScores, profile domain.UserProfile) Outcome[domain.AggregatedResult]
}

// ResultService turns accumulated totals into a recommendation. It never fails:
// when the oracle is Unavailable it ranks majors and fills static templates.
type ResultService struct {
	oracle ResultOracle
	logger *zap.Logger
}

func NewResultService(oracle ResultOracle, logger *zap.Logger) *ResultService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResultService{oracle: oracle, logger: logger}
}

// Aggregate returns the oracle analysis verbatim on success, FallbackResult otherwise.
func (s *ResultService) Aggregate(ctx context.Context, totals domain.MajorScores, profile domain.UserProfile) domain.AggregatedResult {
	normalized := totals.Normalize()

	if s.oracle != nil {
		outcome := s.oracle.Analyze(ctx, normalized, profile)
		if result, ok := outcome.Get(); ok {
			return result
		}
		s.logger.Info("serving fallback result", zap.NamedError("reason", outcome.Reason()))
	}

	metrics.ObserveFallback("result")
	return FallbackResult(normalized, profile)
}

// RankMajors orders the five majors by total descending, breaking ties by the
// fixed priority CNTT > AI > TKDH > MKT > NNA.
func RankMajors(totals domain.MajorScores) []domain.Major {
	normalized := totals.Normalize()
	ranked := append([]domain.Major(nil), domain.AllMajors...)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if normalized[a] != normalized[b] {
			return normalized[a] > normalized[b]
		}
		return a.Priority() < b.Priority()
	})
	return ranked
}

// FallbackResult builds the deterministic recommendation for totals.
func FallbackResult(totals domain.MajorScores, profile domain.UserProfile) domain.AggregatedResult {
	ranked := RankMajors(totals)
	top := ranked[0]
	tmpl := templateFor(top)

	return domain.AggregatedResult{
		TopMajor:            string(top),
		BackupMajors:        []string{string(ranked[1]), string(ranked[2])},
		Reasoning:           fmt.Sprintf(tmpl.Reasoning, profile.DisplayName()),
		Roadmap:             tmpl.Roadmap,
		CareerOpportunities: tmpl.Careers,
		Badges:              append([]string(nil), tmpl.Badges...),
		Source:              domain.SourceFallback,
	}
}
