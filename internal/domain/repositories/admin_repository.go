package repositories

import (
	"context"

	"github.com/google/uuid"
	"localtrade.backend/internal/domain/entities"
)

// AdminRepository defines admin capability and audit trail operations
type AdminRepository interface {
	IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error)
	Grant(ctx context.Context, userID uuid.UUID, role string) (*entities.AdminUser, error)
	CreateAuditLog(ctx context.Context, log *entities.AuditLog) error
	ListAuditLogs(ctx context.Context, limit, offset int) ([]*entities.AuditLog, int64, error)
}

// StatsRepository defines dashboard aggregate queries
type StatsRepository interface {
	GetStats(ctx context.Context) (*entities.Stats, error)
}
