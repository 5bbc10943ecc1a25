package service

import (
	"context"
	"fmt"
	"math"

	"github.com/msomdec/dataproc/internal/domain"
)

// AnalyticsService computes aggregate statistics over all stored processed
// users. Every call recomputes from current store state; dataset sizes in
// scope are small enough that no incremental aggregate is kept.
type AnalyticsService struct {
	users domain.ProcessedUserRepository
	stats *Stats
}

// NewAnalyticsService creates a new AnalyticsService.
func NewAnalyticsService(users domain.ProcessedUserRepository, stats *Stats) *AnalyticsService {
	return &AnalyticsService{users: users, stats: stats}
}

// Summary returns the aggregate view over all stored records. An empty store
// yields zero counts and empty distributions.
func (s *AnalyticsService) Summary(ctx context.Context) (*domain.AnalyticsSummary, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list processed users: %w", err)
	}

	summary := &domain.AnalyticsSummary{
		TotalUsers:         len(users),
		AgeDistribution:    make(map[domain.AgeCategory]int),
		DomainDistribution: make(map[string]int),
		ProcessingStats:    s.stats.Snapshot(),
	}

	ageSum := 0
	for _, u := range users {
		ageSum += u.Age
		summary.AgeDistribution[u.AgeCategory]++
		if u.EmailDomain != "" {
			summary.DomainDistribution[u.EmailDomain]++
		}
	}

	if len(users) > 0 {
		avg := float64(ageSum) / float64(len(users))
		summary.AverageAge = math.Round(avg*100) / 100
	}

	return summary, nil
}
