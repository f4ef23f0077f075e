package repositories

import (
	"context"

	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"localtrade.backend/internal/domain/entities"
	"localtrade.backend/internal/infrastructure/models"
)

// StatsRepository implements dashboard aggregates
type StatsRepository struct {
	db *gorm.DB
}

// NewStatsRepository creates a new stats repository
func NewStatsRepository(db *gorm.DB) *StatsRepository {
	return &StatsRepository{db: db}
}

// GetStats runs the four counts concurrently. They are independent, so the
// result is a snapshot that may straddle concurrent writes.
func (r *StatsRepository) GetStats(ctx context.Context) (*entities.Stats, error) {
	stats := &entities.Stats{}
	g, gctx := errgroup.WithContext(ctx)

	count := func(dst *int64, model interface{}, query string, args ...interface{}) {
		g.Go(func() error {
			q := r.db.WithContext(gctx).Model(model)
			if query != "" {
				q = q.Where(query, args...)
			}
			return q.Count(dst).Error
		})
	}

	count(&stats.TotalUsers, &models.User{}, "")
	count(&stats.ActiveOffers, &models.Offer{}, "is_active = ?", true)
	count(&stats.CompletedDeals, &models.Deal{}, "status = ?", string(entities.DealStatusCompleted))
	count(&stats.PendingReports, &models.Report{}, "status = ?", string(entities.ReportStatusPending))

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stats, nil
}
