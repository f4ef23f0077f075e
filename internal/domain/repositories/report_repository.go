package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"localtrade.backend/internal/domain/entities"
)

// ReportRepository defines report data operations
type ReportRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*entities.Report, error)
	List(ctx context.Context, filter entities.ReportFilter) ([]*entities.Report, error)
	Create(ctx context.Context, report *entities.Report) error
	// Advance moves a report forward. It returns ErrNotFound for an unknown id and
	// ErrInvalidTransition when the report cannot move to status.
	Advance(ctx context.Context, id uuid.UUID, status entities.ReportStatus, reviewerID uuid.UUID, at time.Time) (*entities.Report, error)
}
