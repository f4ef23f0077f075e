package repositories

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"localtrade.backend/internal/domain/entities"
	domainerrors "localtrade.backend/internal/domain/errors"
	"localtrade.backend/internal/infrastructure/models"
	"localtrade.backend/pkg/utils"
)

// ReportRepository implements report data operations
type ReportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository
func NewReportRepository(db *gorm.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// GetByID gets a report with its reporter and offer
func (r *ReportRepository) GetByID(ctx context.Context, id uuid.UUID) (*entities.Report, error) {
	var m models.Report
	err := GetDB(ctx, r.db).
		Joins("Reporter").
		Joins("Offer").
		Where("reports.id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, translateError(err)
	}
	return reportToEntity(&m), nil
}

// List lists reports newest first
func (r *ReportRepository) List(ctx context.Context, filter entities.ReportFilter) ([]*entities.Report, error) {
	query := GetDB(ctx, r.db).Joins("Reporter").Joins("Offer")
	if filter.Status != nil {
		query = query.Where("reports.status = ?", string(*filter.Status))
	}

	var reportModels []models.Report
	if err := query.Order("reports.created_at DESC").Find(&reportModels).Error; err != nil {
		return nil, err
	}

	reports := make([]*entities.Report, 0, len(reportModels))
	for i := range reportModels {
		reports = append(reports, reportToEntity(&reportModels[i]))
	}
	return reports, nil
}

// Create inserts a pending report
func (r *ReportRepository) Create(ctx context.Context, report *entities.Report) error {
	if report.ID == uuid.Nil {
		report.ID = utils.GenerateUUIDv7()
	}
	if report.CreatedAt.IsZero() {
		report.CreatedAt = time.Now().UTC()
	}
	report.Status = entities.ReportStatusPending

	m := &models.Report{
		ID:          report.ID,
		ReporterID:  report.ReporterID,
		OfferID:     report.OfferID,
		UserID:      report.UserID,
		Reason:      report.Reason,
		Description: report.Description,
		Status:      string(report.Status),
		CreatedAt:   report.CreatedAt,
	}
	return translateError(GetDB(ctx, r.db).Omit(clause.Associations).Create(m).Error)
}

// Advance moves a report forward with a conditional update, so a concurrent
// regression cannot slip between a read and the write.
func (r *ReportRepository) Advance(ctx context.Context, id uuid.UUID, status entities.ReportStatus, reviewerID uuid.UUID, at time.Time) (*entities.Report, error) {
	from := status.AdvanceableFrom()
	if len(from) == 0 {
		return nil, domainerrors.ErrInvalidTransition
	}
	allowed := make([]string, 0, len(from))
	for _, s := range from {
		allowed = append(allowed, string(s))
	}

	db := GetDB(ctx, r.db)
	result := db.Model(&models.Report{}).
		Where("id = ? AND status IN ?", id, allowed).
		Updates(map[string]interface{}{
			"status":      string(status),
			"reviewed_by": reviewerID,
			"reviewed_at": at,
		})
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := db.Model(&models.Report{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, domainerrors.ErrNotFound
		}
		return nil, domainerrors.ErrInvalidTransition
	}
	return r.GetByID(ctx, id)
}
