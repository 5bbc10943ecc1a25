package handler

import (
	"time"

	"github.com/msomdec/dataproc/internal/domain"
)

type rawUserRequest struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Age    int    `json:"age"`
}

func (r rawUserRequest) toDomain() domain.RawUser {
	return domain.RawUser{
		UserID: r.UserID,
		Name:   r.Name,
		Email:  r.Email,
		Age:    r.Age,
	}
}

type processedUserResponse struct {
	UserID      string    `json:"user_id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Age         int       `json:"age"`
	NameLength  int       `json:"name_length"`
	EmailDomain string    `json:"email_domain"`
	AgeCategory string    `json:"age_category"`
	NameUpper   string    `json:"name_upper"`
	EmailUpper  string    `json:"email_upper"`
	AgeSquared  int       `json:"age_squared"`
	IsAdult     bool      `json:"is_adult"`
	ProcessedAt time.Time `json:"processed_at"`
}

func toProcessedUserResponse(u domain.ProcessedUser) processedUserResponse {
	return processedUserResponse{
		UserID:      u.UserID,
		Name:        u.Name,
		Email:       u.Email,
		Age:         u.Age,
		NameLength:  u.NameLength,
		EmailDomain: u.EmailDomain,
		AgeCategory: string(u.AgeCategory),
		NameUpper:   u.NameUpper,
		EmailUpper:  u.EmailUpper,
		AgeSquared:  u.AgeSquared,
		IsAdult:     u.IsAdult,
		ProcessedAt: u.ProcessedAt,
	}
}

func toProcessedUserResponses(users []domain.ProcessedUser) []processedUserResponse {
	out := make([]processedUserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, toProcessedUserResponse(u))
	}
	return out
}

type processingStatsResponse struct {
	TotalProcessed      int64   `json:"total_processed"`
	TotalDeleted        int64   `json:"total_deleted"`
	AvgProcessingTimeMs float64 `json:"avg_processing_time_ms"`
}

type analyticsResponse struct {
	TotalUsers         int                     `json:"total_users"`
	AverageAge         float64                 `json:"average_age"`
	AgeDistribution    map[string]int          `json:"age_distribution"`
	DomainDistribution map[string]int          `json:"domain_distribution"`
	ProcessingStats    processingStatsResponse `json:"processing_stats"`
}

func toAnalyticsResponse(s domain.AnalyticsSummary) analyticsResponse {
	ageDist := make(map[string]int, len(s.AgeDistribution))
	for cat, count := range s.AgeDistribution {
		ageDist[string(cat)] = count
	}
	domainDist := s.DomainDistribution
	if domainDist == nil {
		domainDist = map[string]int{}
	}
	return analyticsResponse{
		TotalUsers:         s.TotalUsers,
		AverageAge:         s.AverageAge,
		AgeDistribution:    ageDist,
		DomainDistribution: domainDist,
		ProcessingStats: processingStatsResponse{
			TotalProcessed:      s.ProcessingStats.TotalProcessed,
			TotalDeleted:        s.ProcessingStats.TotalDeleted,
			AvgProcessingTimeMs: s.ProcessingStats.AvgProcessingTimeMs,
		},
	}
}

type batchRequest struct {
	Users []rawUserRequest `json:"users"`
}

type batchFailureResponse struct {
	Index  int    `json:"index"`
	UserID string `json:"user_id,omitempty"`
	Error  string `json:"error"`
}

type batchResponse struct {
	Message        string                  `json:"message"`
	TotalUsers     int                     `json:"total_users"`
	ProcessedCount int                     `json:"processed_count"`
	Processed      []processedUserResponse `json:"processed"`
	Failures       []batchFailureResponse  `json:"failures"`
}

func toBatchResponse(total int, result domain.BatchResult) batchResponse {
	failures := make([]batchFailureResponse, 0, len(result.Failures))
	for _, f := range result.Failures {
		failures = append(failures, batchFailureResponse{
			Index:  f.Index,
			UserID: f.UserID,
			Error:  f.Error,
		})
	}
	return batchResponse{
		Message:        "batch processing completed",
		TotalUsers:     total,
		ProcessedCount: len(result.Processed),
		Processed:      toProcessedUserResponses(result.Processed),
		Failures:       failures,
	}
}
