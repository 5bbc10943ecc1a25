package service_test

import (
	"context"
	"testing"

	"github.com/msomdec/dataproc/internal/domain"
	"github.com/msomdec/dataproc/internal/repository/memory"
	"github.com/msomdec/dataproc/internal/service"
)

func newTestAnalytics(t *testing.T) (*service.ProcessorService, *service.AnalyticsService) {
	t.Helper()
	store := memory.NewProcessedUserStore()
	stats := service.NewStats()
	return service.NewProcessorService(store, stats), service.NewAnalyticsService(store, stats)
}

func TestAnalyticsService_EmptyStore(t *testing.T) {
	_, analytics := newTestAnalytics(t)

	summary, err := analytics.Summary(context.Background())
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if summary.TotalUsers != 0 {
		t.Fatalf("expected 0 users, got %d", summary.TotalUsers)
	}
	if summary.AverageAge != 0 {
		t.Fatalf("expected average age 0, got %v", summary.AverageAge)
	}
	if len(summary.AgeDistribution) != 0 {
		t.Fatalf("expected empty age distribution, got %v", summary.AgeDistribution)
	}
	if len(summary.DomainDistribution) != 0 {
		t.Fatalf("expected empty domain distribution, got %v", summary.DomainDistribution)
	}
}

func TestAnalyticsService_AgeBuckets(t *testing.T) {
	processor, analytics := newTestAnalytics(t)
	ctx := context.Background()

	for i, age := range []int{10, 25, 70} {
		raw := domain.RawUser{
			UserID: string(rune('a' + i)),
			Name:   "User",
			Email:  "user@example.com",
			Age:    age,
		}
		if _, err := processor.Process(ctx, raw); err != nil {
			t.Fatalf("Process age %d: %v", age, err)
		}
	}

	summary, err := analytics.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if summary.TotalUsers != 3 {
		t.Fatalf("expected 3 users, got %d", summary.TotalUsers)
	}
	if len(summary.AgeDistribution) != 3 {
		t.Fatalf("expected 3 age buckets, got %v", summary.AgeDistribution)
	}
	for _, cat := range []domain.AgeCategory{domain.AgeCategoryMinor, domain.AgeCategoryAdult, domain.AgeCategorySenior} {
		if summary.AgeDistribution[cat] != 1 {
			t.Fatalf("expected count 1 for %s, got %d", cat, summary.AgeDistribution[cat])
		}
	}

	// (10 + 25 + 70) / 3 = 35.
	if summary.AverageAge != 35 {
		t.Fatalf("expected average age 35, got %v", summary.AverageAge)
	}
}

func TestAnalyticsService_DomainDistribution(t *testing.T) {
	processor, analytics := newTestAnalytics(t)
	ctx := context.Background()

	raws := []domain.RawUser{
		{UserID: "u1", Name: "Ann", Email: "ann@example.com", Age: 30},
		{UserID: "u2", Name: "Bob", Email: "bob@example.com", Age: 40},
		{UserID: "u3", Name: "Cyd", Email: "cyd@other.org", Age: 50},
		{UserID: "u4", Name: "Dee", Email: "no-at-sign", Age: 20},
	}
	for _, raw := range raws {
		if _, err := processor.Process(ctx, raw); err != nil {
			t.Fatalf("Process %s: %v", raw.UserID, err)
		}
	}

	summary, err := analytics.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	if summary.DomainDistribution["example.com"] != 2 {
		t.Fatalf("expected 2 example.com users, got %d", summary.DomainDistribution["example.com"])
	}
	if summary.DomainDistribution["other.org"] != 1 {
		t.Fatalf("expected 1 other.org user, got %d", summary.DomainDistribution["other.org"])
	}
	// Records without a domain are excluded from the distribution.
	if len(summary.DomainDistribution) != 2 {
		t.Fatalf("expected 2 distinct domains, got %v", summary.DomainDistribution)
	}
}

func TestAnalyticsService_AverageAgeRounding(t *testing.T) {
	processor, analytics := newTestAnalytics(t)
	ctx := context.Background()

	for i, age := range []int{20, 21, 21} {
		raw := domain.RawUser{
			UserID: string(rune('a' + i)),
			Name:   "User",
			Email:  "user@example.com",
			Age:    age,
		}
		if _, err := processor.Process(ctx, raw); err != nil {
			t.Fatalf("Process: %v", err)
		}
	}

	summary, err := analytics.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}

	// 62 / 3 = 20.666... rounds to 20.67.
	if summary.AverageAge != 20.67 {
		t.Fatalf("expected average age 20.67, got %v", summary.AverageAge)
	}
}

func TestAnalyticsService_RecomputesAfterMutation(t *testing.T) {
	processor, analytics := newTestAnalytics(t)
	ctx := context.Background()

	if _, err := processor.Process(ctx, domain.RawUser{UserID: "u1", Name: "Ann", Email: "ann@example.com", Age: 30}); err != nil {
		t.Fatalf("Process: %v", err)
	}

	summary, err := analytics.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary: %v", err)
	}
	if summary.TotalUsers != 1 {
		t.Fatalf("expected 1 user, got %d", summary.TotalUsers)
	}

	if err := processor.Delete(ctx, "u1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	summary, err = analytics.Summary(ctx)
	if err != nil {
		t.Fatalf("Summary after delete: %v", err)
	}
	if summary.TotalUsers != 0 {
		t.Fatalf("expected 0 users after delete, got %d", summary.TotalUsers)
	}
	if summary.ProcessingStats.TotalProcessed != 1 || summary.ProcessingStats.TotalDeleted != 1 {
		t.Fatalf("expected cumulative stats 1/1, got %+v", summary.ProcessingStats)
	}
}
