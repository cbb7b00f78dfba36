package repository

import (
	"context"

	"refi-advisor/domain"
)

// AdvisoryRepository keeps a log of refinance evaluations.
type AdvisoryRepository interface {
	Save(ctx context.Context, record domain.AdvisoryRecord) error
	// Recent returns up to limit records, newest first.
	Recent(ctx context.Context, limit int) ([]domain.AdvisoryRecord, error)
}
