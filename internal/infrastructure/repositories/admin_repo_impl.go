package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"localtrade.backend/internal/domain/entities"
	"localtrade.backend/internal/infrastructure/models"
	"localtrade.backend/pkg/utils"
)

// AdminRepository implements admin capability and audit trail operations
type AdminRepository struct {
	db *gorm.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *gorm.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// IsAdmin reports whether an admin row exists for userID
func (r *AdminRepository) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	var count int64
	if err := GetDB(ctx, r.db).Model(&models.AdminUser{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// Grant marks userID as admin. Granting twice returns the existing row.
func (r *AdminRepository) Grant(ctx context.Context, userID uuid.UUID, role string) (*entities.AdminUser, error) {
	db := GetDB(ctx, r.db)

	var existing models.AdminUser
	err := db.Where("user_id = ?", userID).First(&existing).Error
	if err == nil {
		return adminToEntity(&existing), nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	if role == "" {
		role = entities.AdminRoleDefault
	}
	m := &models.AdminUser{
		ID:        utils.GenerateUUIDv7(),
		UserID:    userID,
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}
	if err := db.Omit(clause.Associations).Create(m).Error; err != nil {
		return nil, translateError(err)
	}
	return adminToEntity(m), nil
}

// CreateAuditLog appends an audit row
func (r *AdminRepository) CreateAuditLog(ctx context.Context, log *entities.AuditLog) error {
	if log.ID == uuid.Nil {
		log.ID = utils.GenerateUUIDv7()
	}
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now().UTC()
	}
	m := &models.AuditLog{
		ID:         log.ID,
		AdminID:    log.AdminID,
		Action:     string(log.Action),
		TargetType: log.TargetType.Ptr(),
		TargetID:   log.TargetID.Ptr(),
		Details:    log.Details.Ptr(),
		CreatedAt:  log.CreatedAt,
	}
	return translateError(GetDB(ctx, r.db).Omit(clause.Associations).Create(m).Error)
}

// ListAuditLogs lists audit rows newest first. A non-positive limit returns all rows.
func (r *AdminRepository) ListAuditLogs(ctx context.Context, limit, offset int) ([]*entities.AuditLog, int64, error) {
	db := GetDB(ctx, r.db)

	var total int64
	if err := db.Model(&models.AuditLog{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := db.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var logModels []models.AuditLog
	if err := query.Find(&logModels).Error; err != nil {
		return nil, 0, err
	}

	logs := make([]*entities.AuditLog, 0, len(logModels))
	for i := range logModels {
		logs = append(logs, auditLogToEntity(&logModels[i]))
	}
	return logs, total, nil
}

func adminToEntity(m *models.AdminUser) *entities.AdminUser {
	return &entities.AdminUser{
		ID:        m.ID,
		UserID:    m.UserID,
		Role:      m.Role,
		CreatedAt: m.CreatedAt,
	}
}
