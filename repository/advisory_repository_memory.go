package repository

import (
	"context"
	"sync"

	"refi-advisor/domain"
)

// AdvisoryRepositoryMemory is an in-memory implementation of AdvisoryRepository.
// It keeps only the newest capacity records; older ones are overwritten.
type AdvisoryRepositoryMemory struct {
	mu    sync.RWMutex
	data  []domain.AdvisoryRecord
	next  int // slot the next Save writes once data is full
	limit int
}

// NewAdvisoryRepositoryMemory creates a new in-memory advisory repository
// holding at most capacity records. A non-positive capacity keeps one.
func NewAdvisoryRepositoryMemory(capacity int) *AdvisoryRepositoryMemory {
	capacity = max(1, capacity)
	return &AdvisoryRepositoryMemory{
		data:  make([]domain.AdvisoryRecord, 0, capacity),
		limit: capacity,
	}
}

// Save stores the record in memory, evicting the oldest one when full.
func (r *AdvisoryRepositoryMemory) Save(_ context.Context, record domain.AdvisoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.data) < r.limit {
		r.data = append(r.data, record)
		return nil
	}
	r.data[r.next] = record
	r.next = (r.next + 1) % r.limit
	return nil
}

func (r *AdvisoryRepositoryMemory) Recent(_ context.Context, limit int) ([]domain.AdvisoryRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n := len(r.data)
	if limit <= 0 || limit > n {
		limit = n
	}
	out := make([]domain.AdvisoryRecord, 0, limit)
	// newest record sits just before next
	for i := 1; i <= limit; i++ {
		out = append(out, r.data[(r.next-i+n)%n])
	}
	return out, nil
}

// Len returns the number of records held.
func (r *AdvisoryRepositoryMemory) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.data)
}
