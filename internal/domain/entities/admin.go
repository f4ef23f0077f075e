package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// AdminRoleDefault is the role stored for granted admins
const AdminRoleDefault = "admin"

// AdminUser marks a user as holding the admin capability
type AdminUser struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"userId"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// AuditAction labels an admin mutation
type AuditAction string

const (
	AuditUserSuspended   AuditAction = "user_suspended"
	AuditUserUnsuspended AuditAction = "user_unsuspended"
	AuditUserVerified    AuditAction = "user_verified"
	AuditUserUnverified  AuditAction = "user_unverified"
)

// ReportAuditAction returns the audit label for moving a report to status
func ReportAuditAction(status ReportStatus) AuditAction {
	return AuditAction("report_" + string(status))
}

// Audit target types
const (
	AuditTargetUser   = "user"
	AuditTargetReport = "report"
)

// AuditLog is an immutable record of one admin action
type AuditLog struct {
	ID         uuid.UUID   `json:"id"`
	AdminID    uuid.UUID   `json:"adminId"`
	Action     AuditAction `json:"action"`
	TargetType null.String `json:"targetType"`
	TargetID   null.String `json:"targetId"`
	Details    null.String `json:"details"`
	CreatedAt  time.Time   `json:"createdAt"`
}

// Stats is the admin dashboard snapshot. Counts are taken independently.
type Stats struct {
	TotalUsers     int64 `json:"totalUsers"`
	ActiveOffers   int64 `json:"activeOffers"`
	CompletedDeals int64 `json:"completedDeals"`
	PendingReports int64 `json:"pendingReports"`
}

// SuspendUserInput represents an admin suspension toggle
type SuspendUserInput struct {
	IsSuspended *bool `json:"isSuspended" binding:"required"`
}

// VerifyUserInput represents an admin verification toggle
type VerifyUserInput struct {
	IsVerified *bool `json:"isVerified" binding:"required"`
}
