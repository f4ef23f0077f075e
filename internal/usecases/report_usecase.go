package usecases

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"localtrade.backend/internal/domain/entities"
	domainerrors "localtrade.backend/internal/domain/errors"
	"localtrade.backend/internal/domain/repositories"
)

// ReportUsecase handles user-filed reports
type ReportUsecase struct {
	reportRepo repositories.ReportRepository
	offerRepo  repositories.OfferRepository
	userRepo   repositories.UserRepository
}

// NewReportUsecase creates a new report usecase
func NewReportUsecase(
	reportRepo repositories.ReportRepository,
	offerRepo repositories.OfferRepository,
	userRepo repositories.UserRepository,
) *ReportUsecase {
	return &ReportUsecase{
		reportRepo: reportRepo,
		offerRepo:  offerRepo,
		userRepo:   userRepo,
	}
}

// Create files a pending report by reporterID against an offer, a user, or both
func (u *ReportUsecase) Create(ctx context.Context, reporterID uuid.UUID, input *entities.CreateReportInput) (*entities.Report, error) {
	offerID, err := parseOptionalID(input.OfferID, "Invalid offer id")
	if err != nil {
		return nil, err
	}
	userID, err := parseOptionalID(input.UserID, "Invalid user id")
	if err != nil {
		return nil, err
	}
	if offerID == nil && userID == nil {
		return nil, domainerrors.BadRequest("Either offerId or userId is required")
	}

	reason := strings.TrimSpace(input.Reason)
	description := strings.TrimSpace(input.Description)
	if reason == "" || description == "" {
		return nil, domainerrors.BadRequest("Reason and description are required")
	}

	if offerID != nil {
		if _, err := u.offerRepo.GetByID(ctx, *offerID); err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.NotFound("Offer not found")
			}
			return nil, err
		}
	}
	if userID != nil {
		if _, err := u.userRepo.GetByID(ctx, *userID); err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.NotFound("User not found")
			}
			return nil, err
		}
	}

	report := &entities.Report{
		ReporterID:  reporterID,
		OfferID:     offerID,
		UserID:      userID,
		Reason:      reason,
		Description: description,
		Status:      entities.ReportStatusPending,
	}
	if err := u.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func parseOptionalID(raw *string, message string) (*uuid.UUID, error) {
	if raw == nil || strings.TrimSpace(*raw) == "" {
		return nil, nil
	}
	id, err := uuid.Parse(*raw)
	if err != nil {
		return nil, domainerrors.BadRequest(message)
	}
	return &id, nil
}
