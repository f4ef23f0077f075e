package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// ReportStatus represents moderation progress of a report
type ReportStatus string

const (
	ReportStatusPending  ReportStatus = "pending"
	ReportStatusReviewed ReportStatus = "reviewed"
	ReportStatusResolved ReportStatus = "resolved"
)

// Valid reports whether s is a known report status
func (s ReportStatus) Valid() bool {
	switch s {
	case ReportStatusPending, ReportStatusReviewed, ReportStatusResolved:
		return true
	}
	return false
}

// AdvanceableFrom lists the statuses a report may hold to move to s.
// Status only moves forward, so pending has no predecessors.
func (s ReportStatus) AdvanceableFrom() []ReportStatus {
	switch s {
	case ReportStatusReviewed:
		return []ReportStatus{ReportStatusPending}
	case ReportStatusResolved:
		return []ReportStatus{ReportStatusPending, ReportStatusReviewed}
	}
	return nil
}

// Report represents a user-filed complaint against an offer and/or a user
type Report struct {
	ID          uuid.UUID    `json:"id"`
	ReporterID  uuid.UUID    `json:"reporterId"`
	OfferID     *uuid.UUID   `json:"offerId"`
	UserID      *uuid.UUID   `json:"userId"`
	Reason      string       `json:"reason"`
	Description string       `json:"description"`
	Status      ReportStatus `json:"status"`
	CreatedAt   time.Time    `json:"createdAt"`
	ReviewedAt  null.Time    `json:"reviewedAt"`
	ReviewedBy  *uuid.UUID   `json:"reviewedBy"`

	Reporter *UserSummary `json:"reporter,omitempty"`
	Offer    *Offer       `json:"offer,omitempty"`
}

// ReportFilter narrows report listings
type ReportFilter struct {
	Status *ReportStatus
}

// CreateReportInput represents input for filing a report
type CreateReportInput struct {
	OfferID     *string `json:"offerId" binding:"omitempty,uuid"`
	UserID      *string `json:"userId" binding:"omitempty,uuid"`
	Reason      string  `json:"reason" binding:"required,max=200"`
	Description string  `json:"description" binding:"required,max=2000"`
}

// AdvanceReportInput represents an admin status change on a report
type AdvanceReportInput struct {
	Status ReportStatus `json:"status" binding:"required,oneof=pending reviewed resolved"`
}
