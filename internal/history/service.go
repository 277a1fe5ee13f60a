package history

import (
	"log/slog"
	"math"
)

// Stats aggregates the held analyses for the stats endpoint.
type Stats struct {
	TotalAnalyses     int     `json:"total_analyses"`
	ScamCount         int     `json:"scam_count"`
	LegitimateCount   int     `json:"legitimate_count"`
	AverageConfidence float64 `json:"average_confidence"`
	ScamPercentage    float64 `json:"scam_percentage"`
}

// Service records analyses into the ring and, when configured, into the
// sqlite repository. Repository failures are logged and swallowed: the
// request that produced the analysis already succeeded.
type Service struct {
	ring *Ring
	repo *Repository
}

// NewService builds a history service. repo may be nil for a purely
// in-memory history.
func NewService(ring *Ring, repo *Repository) *Service {
	return &Service{ring: ring, repo: repo}
}

// Restore refills the ring from the repository, oldest first. Nothing to
// do without a repository.
func (s *Service) Restore() error {
	if s.repo == nil {
		return nil
	}

	entries, err := s.repo.RecentEntries(s.ring.capacity)
	if err != nil {
		return err
	}
	for _, e := range entries {
		s.ring.Add(e)
	}
	if len(entries) > 0 {
		slog.Info("Restored analysis history", "entries", len(entries))
	}
	return nil
}

// Record stores one completed analysis.
func (s *Service) Record(e Entry) {
	s.ring.Add(e)

	if s.repo != nil {
		if err := s.repo.Insert(e); err != nil {
			slog.Error("Failed to persist analysis", "error", err, "id", e.ID)
		}
	}
}

// Recent returns up to n entries, oldest first.
func (s *Service) Recent(n int) []Entry {
	return s.ring.Recent(n)
}

// Total returns how many analyses are currently tracked.
func (s *Service) Total() int {
	return s.ring.Len()
}

// Stats computes aggregates over the held entries.
func (s *Service) Stats() Stats {
	entries := s.ring.Snapshot()

	stats := Stats{TotalAnalyses: len(entries)}
	if len(entries) == 0 {
		return stats
	}

	confidenceSum := 0.0
	for _, e := range entries {
		if e.Result.IsScam {
			stats.ScamCount++
		}
		confidenceSum += e.Result.Confidence
	}
	stats.LegitimateCount = stats.TotalAnalyses - stats.ScamCount
	stats.AverageConfidence = round2(confidenceSum / float64(stats.TotalAnalyses))
	stats.ScamPercentage = round2(float64(stats.ScamCount) / float64(stats.TotalAnalyses) * 100)

	return stats
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
