package service

import (
	"math"
	"sync"
	"time"

	"github.com/msomdec/dataproc/internal/domain"
)

// Stats accumulates processing counters shared between the processor and
// analytics services. Counters cover the lifetime of the process.
type Stats struct {
	mu             sync.Mutex
	totalProcessed int64
	totalDeleted   int64
	totalDuration  time.Duration
}

// NewStats creates an empty counter set.
func NewStats() *Stats {
	return &Stats{}
}

// RecordProcess registers one completed process operation and its duration.
func (s *Stats) RecordProcess(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalProcessed++
	s.totalDuration += d
}

// RecordDelete registers one completed delete operation.
func (s *Stats) RecordDelete() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalDeleted++
}

// Snapshot returns the current counters as a domain value.
func (s *Stats) Snapshot() domain.ProcessingStats {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := domain.ProcessingStats{
		TotalProcessed: s.totalProcessed,
		TotalDeleted:   s.totalDeleted,
	}
	if s.totalProcessed > 0 {
		avg := float64(s.totalDuration.Microseconds()) / float64(s.totalProcessed) / 1000
		stats.AvgProcessingTimeMs = math.Round(avg*1000) / 1000
	}
	return stats
}
