package usecases

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"localtrade.backend/internal/domain/entities"
	domainerrors "localtrade.backend/internal/domain/errors"
	"localtrade.backend/internal/domain/repositories"
	"localtrade.backend/pkg/logger"
	"localtrade.backend/pkg/redis"
	"localtrade.backend/pkg/utils"
)

// StatsCacheKey is the Redis key holding the cached dashboard stats
const StatsCacheKey = "admin:stats"

// AdminUsecase handles moderation, stats and the audit trail
type AdminUsecase struct {
	adminRepo  repositories.AdminRepository
	userRepo   repositories.UserRepository
	reportRepo repositories.ReportRepository
	statsRepo  repositories.StatsRepository
	uow        repositories.UnitOfWork
	statsTTL   time.Duration
	now        func() time.Time
}

// NewAdminUsecase creates a new admin usecase. A zero statsTTL disables caching.
func NewAdminUsecase(
	adminRepo repositories.AdminRepository,
	userRepo repositories.UserRepository,
	reportRepo repositories.ReportRepository,
	statsRepo repositories.StatsRepository,
	uow repositories.UnitOfWork,
	statsTTL time.Duration,
) *AdminUsecase {
	return &AdminUsecase{
		adminRepo:  adminRepo,
		userRepo:   userRepo,
		reportRepo: reportRepo,
		statsRepo:  statsRepo,
		uow:        uow,
		statsTTL:   statsTTL,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// IsAdmin reports whether userID holds the admin capability
func (u *AdminUsecase) IsAdmin(ctx context.Context, userID uuid.UUID) (bool, error) {
	return u.adminRepo.IsAdmin(ctx, userID)
}

// Grant gives userID the admin capability. Granting twice is a no-op.
func (u *AdminUsecase) Grant(ctx context.Context, userID uuid.UUID, role string) (*entities.AdminUser, error) {
	if _, err := u.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound("User not found")
		}
		return nil, err
	}
	return u.adminRepo.Grant(ctx, userID, role)
}

// Stats returns the dashboard counts, served from Redis while fresh
func (u *AdminUsecase) Stats(ctx context.Context) (*entities.Stats, error) {
	cacheable := u.statsTTL > 0 && redis.Enabled()
	if cacheable {
		var cached entities.Stats
		err := redis.GetJSON(ctx, StatsCacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, redis.Nil) {
			logger.Warn(ctx, "Stats cache read failed", zap.Error(err))
		}
	}

	stats, err := u.statsRepo.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	if cacheable {
		if err := redis.SetJSON(ctx, StatsCacheKey, stats, u.statsTTL); err != nil {
			logger.Warn(ctx, "Stats cache write failed", zap.Error(err))
		}
	}
	return stats, nil
}

// ListReports lists reports, optionally by status
func (u *AdminUsecase) ListReports(ctx context.Context, status *entities.ReportStatus) ([]*entities.Report, error) {
	if status != nil && !status.Valid() {
		return nil, domainerrors.BadRequest("Invalid report status")
	}
	return u.reportRepo.List(ctx, entities.ReportFilter{Status: status})
}

// GetReport returns a single report
func (u *AdminUsecase) GetReport(ctx context.Context, id uuid.UUID) (*entities.Report, error) {
	report, err := u.reportRepo.GetByID(ctx, id)
	if errors.Is(err, domainerrors.ErrNotFound) {
		return nil, domainerrors.NotFound("Report not found")
	}
	return report, err
}

// AdvanceReport moves a report forward and records the action in one transaction
func (u *AdminUsecase) AdvanceReport(ctx context.Context, adminID, reportID uuid.UUID, status entities.ReportStatus) (*entities.Report, error) {
	if status != entities.ReportStatusReviewed && status != entities.ReportStatusResolved {
		return nil, domainerrors.BadRequest("Reports can only be marked reviewed or resolved")
	}

	var report *entities.Report
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		report, err = u.reportRepo.Advance(txCtx, reportID, status, adminID, u.now())
		switch {
		case errors.Is(err, domainerrors.ErrNotFound):
			return domainerrors.NotFound("Report not found")
		case errors.Is(err, domainerrors.ErrInvalidTransition):
			return domainerrors.InvalidTransition(fmt.Sprintf("Report cannot be marked %s from its current status", status))
		case err != nil:
			return err
		}

		return u.adminRepo.CreateAuditLog(txCtx, &entities.AuditLog{
			AdminID:    adminID,
			Action:     entities.ReportAuditAction(status),
			TargetType: null.StringFrom(entities.AuditTargetReport),
			TargetID:   null.StringFrom(reportID.String()),
			Details:    null.StringFrom(fmt.Sprintf("Report marked as %s", status)),
		})
	})
	if err != nil {
		return nil, err
	}

	u.invalidateStats(ctx)
	return report, nil
}

// SetSuspended suspends or reinstates a user
func (u *AdminUsecase) SetSuspended(ctx context.Context, adminID, userID uuid.UUID, suspended bool) (*entities.User, error) {
	action, details := entities.AuditUserUnsuspended, "User unsuspended"
	if suspended {
		action, details = entities.AuditUserSuspended, "User suspended"
	}
	return u.moderateUser(ctx, adminID, userID, entities.UserUpdate{IsSuspended: &suspended}, action, details)
}

// SetVerified grants or revokes a user's verified badge
func (u *AdminUsecase) SetVerified(ctx context.Context, adminID, userID uuid.UUID, verified bool) (*entities.User, error) {
	action, details := entities.AuditUserUnverified, "User verification revoked"
	if verified {
		action, details = entities.AuditUserVerified, "User verification granted"
	}
	return u.moderateUser(ctx, adminID, userID, entities.UserUpdate{IsVerified: &verified}, action, details)
}

func (u *AdminUsecase) moderateUser(ctx context.Context, adminID, userID uuid.UUID, update entities.UserUpdate, action entities.AuditAction, details string) (*entities.User, error) {
	var user *entities.User
	err := u.uow.Do(ctx, func(txCtx context.Context) error {
		var err error
		user, err = u.userRepo.Update(txCtx, userID, update)
		if errors.Is(err, domainerrors.ErrNotFound) {
			return domainerrors.NotFound("User not found")
		}
		if err != nil {
			return err
		}

		return u.adminRepo.CreateAuditLog(txCtx, &entities.AuditLog{
			AdminID:    adminID,
			Action:     action,
			TargetType: null.StringFrom(entities.AuditTargetUser),
			TargetID:   null.StringFrom(userID.String()),
			Details:    null.StringFrom(details),
		})
	})
	if err != nil {
		return nil, err
	}

	logger.Info(ctx, "User moderated",
		zap.String("admin_id", adminID.String()),
		zap.String("user_id", userID.String()),
		zap.String("action", string(action)),
	)
	return user, nil
}

// ListUsers lists users, optionally matching search against address or name
func (u *AdminUsecase) ListUsers(ctx context.Context, search string) ([]*entities.User, error) {
	return u.userRepo.List(ctx, search)
}

// ListAuditLogs returns one page of the audit trail, newest first
func (u *AdminUsecase) ListAuditLogs(ctx context.Context, page, limit int) (*utils.Page[*entities.AuditLog], error) {
	params := utils.GetPaginationParams(page, limit)
	logs, total, err := u.adminRepo.ListAuditLogs(ctx, params.Limit, params.CalculateOffset())
	if err != nil {
		return nil, err
	}
	return &utils.Page[*entities.AuditLog]{
		Items: logs,
		Meta:  utils.CalculateMeta(total, params.Page, params.Limit),
	}, nil
}

func (u *AdminUsecase) invalidateStats(ctx context.Context) {
	if !redis.Enabled() {
		return
	}
	if err := redis.Del(ctx, StatsCacheKey); err != nil {
		logger.Warn(ctx, "Stats cache invalidation failed", zap.Error(err))
	}
}
