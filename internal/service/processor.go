package service

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/msomdec/dataproc/internal/domain"
)

// ProcessorService derives analytic fields from raw user records and owns
// all access to the processed-user store.
type ProcessorService struct {
	users domain.ProcessedUserRepository
	stats *Stats
}

// NewProcessorService creates a new ProcessorService.
func NewProcessorService(users domain.ProcessedUserRepository, stats *Stats) *ProcessorService {
	return &ProcessorService{users: users, stats: stats}
}

// Process validates the raw record, derives its analytic fields, and stores
// the result keyed by user_id. Re-processing an existing user_id replaces
// the prior record entirely.
func (s *ProcessorService) Process(ctx context.Context, raw domain.RawUser) (*domain.ProcessedUser, error) {
	if err := validateRawUser(raw); err != nil {
		return nil, err
	}

	start := time.Now()
	user := derive(raw, time.Now().UTC())

	if err := s.users.Upsert(ctx, user); err != nil {
		return nil, fmt.Errorf("store processed user: %w", err)
	}

	s.stats.RecordProcess(time.Since(start))
	return user, nil
}

// Get returns the processed record for the given user_id.
func (s *ProcessorService) Get(ctx context.Context, userID string) (*domain.ProcessedUser, error) {
	return s.users.Get(ctx, userID)
}

// List returns all processed records in insertion order.
func (s *ProcessorService) List(ctx context.Context) ([]domain.ProcessedUser, error) {
	return s.users.List(ctx)
}

// Delete removes the processed record for the given user_id.
func (s *ProcessorService) Delete(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.stats.RecordDelete()
	return nil
}

// Count returns the number of stored processed records.
func (s *ProcessorService) Count(ctx context.Context) (int, error) {
	return s.users.Count(ctx)
}

// BatchProcess applies Process to each input in order. A record that fails
// validation or storage is reported in the result and does not abort the
// rest of the batch.
func (s *ProcessorService) BatchProcess(ctx context.Context, raws []domain.RawUser) domain.BatchResult {
	var result domain.BatchResult
	for i, raw := range raws {
		user, err := s.Process(ctx, raw)
		if err != nil {
			result.Failures = append(result.Failures, domain.BatchFailure{
				Index:  i,
				UserID: raw.UserID,
				Error:  err.Error(),
			})
			continue
		}
		result.Processed = append(result.Processed, *user)
	}
	return result
}

func validateRawUser(raw domain.RawUser) error {
	if raw.UserID == "" {
		return fmt.Errorf("%w: user_id is required", domain.ErrInvalidInput)
	}
	if raw.Name == "" {
		return fmt.Errorf("%w: name is required", domain.ErrInvalidInput)
	}
	if raw.Email == "" {
		return fmt.Errorf("%w: email is required", domain.ErrInvalidInput)
	}
	if raw.Age < 0 {
		return fmt.Errorf("%w: age must be non-negative", domain.ErrInvalidInput)
	}
	return nil
}

// derive computes the stored record from a validated raw record.
// name_length counts characters, not bytes, so non-ASCII names measure the
// same as they would to a reader. The email domain is the text after the
// first '@', empty when absent.
func derive(raw domain.RawUser, now time.Time) *domain.ProcessedUser {
	emailDomain := ""
	if idx := strings.Index(raw.Email, "@"); idx >= 0 {
		emailDomain = raw.Email[idx+1:]
	}

	return &domain.ProcessedUser{
		UserID:      raw.UserID,
		Name:        raw.Name,
		Email:       raw.Email,
		Age:         raw.Age,
		NameLength:  utf8.RuneCountInString(raw.Name),
		EmailDomain: emailDomain,
		AgeCategory: domain.CategorizeAge(raw.Age),
		NameUpper:   strings.ToUpper(raw.Name),
		EmailUpper:  strings.ToUpper(raw.Email),
		AgeSquared:  raw.Age * raw.Age,
		IsAdult:     raw.Age >= 18,
		ProcessedAt: now,
	}
}
