package domain

import (
	"context"
	"time"
)

// AgeCategory is a fixed age band derived from a user's age.
type AgeCategory string

const (
	AgeCategoryMinor  AgeCategory = "minor"  // age < 18
	AgeCategoryAdult  AgeCategory = "adult"  // 18 <= age < 65
	AgeCategorySenior AgeCategory = "senior" // age >= 65
)

// CategorizeAge maps an age to its AgeCategory band.
func CategorizeAge(age int) AgeCategory {
	switch {
	case age < 18:
		return AgeCategoryMinor
	case age < 65:
		return AgeCategoryAdult
	default:
		return AgeCategorySenior
	}
}

// RawUser is an externally supplied user record before processing.
type RawUser struct {
	UserID string
	Name   string
	Email  string
	Age    int
}

// ProcessedUser is a stored user record augmented with derived fields.
type ProcessedUser struct {
	UserID      string
	Name        string
	Email       string
	Age         int
	NameLength  int
	EmailDomain string
	AgeCategory AgeCategory
	NameUpper   string
	EmailUpper  string
	AgeSquared  int
	IsAdult     bool
	ProcessedAt time.Time
}

// ProcessingStats tracks cumulative processing activity since startup.
type ProcessingStats struct {
	TotalProcessed      int64
	TotalDeleted        int64
	AvgProcessingTimeMs float64
}

// AnalyticsSummary is an aggregate view over all stored processed users.
// It is recomputed from current store state on every request.
type AnalyticsSummary struct {
	TotalUsers         int
	AverageAge         float64
	AgeDistribution    map[AgeCategory]int
	DomainDistribution map[string]int
	ProcessingStats    ProcessingStats
}

// BatchFailure reports a single rejected record from a batch.
type BatchFailure struct {
	Index  int
	UserID string
	Error  string
}

// BatchResult holds the per-item outcome of a batch processing run.
// A failed record never aborts the rest of the batch.
type BatchResult struct {
	Processed []ProcessedUser
	Failures  []BatchFailure
}

// ProcessedUserRepository defines persistence operations for processed users.
// List returns records in insertion order; re-processing an existing user_id
// replaces the record in place without changing its position.
type ProcessedUserRepository interface {
	Upsert(ctx context.Context, user *ProcessedUser) error
	Get(ctx context.Context, userID string) (*ProcessedUser, error)
	List(ctx context.Context) ([]ProcessedUser, error)
	Delete(ctx context.Context, userID string) error
	Count(ctx context.Context) (int, error)
}
