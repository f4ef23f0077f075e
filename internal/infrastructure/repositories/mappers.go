package repositories

import (
	"errors"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
	"gorm.io/gorm"
	"localtrade.backend/internal/domain/entities"
	domainerrors "localtrade.backend/internal/domain/errors"
	"localtrade.backend/internal/infrastructure/models"
)

// translateError maps gorm sentinel errors onto domain errors; anything else
// is returned unmodified.
func translateError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return domainerrors.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return domainerrors.ErrAlreadyExists
	}
	return err
}

func userToEntity(m *models.User) *entities.User {
	if m == nil || m.ID == uuid.Nil {
		return nil
	}
	return &entities.User{
		ID:                   m.ID,
		WalletAddress:        m.WalletAddress,
		DisplayName:          null.StringFromPtr(m.DisplayName),
		Bio:                  null.StringFromPtr(m.Bio),
		AvatarURL:            null.StringFromPtr(m.AvatarURL),
		Location:             null.StringFromPtr(m.Location),
		PhoneNumber:          null.StringFromPtr(m.PhoneNumber),
		IsVerified:           m.IsVerified,
		IsSuspended:          m.IsSuspended,
		ShowWalletAddress:    m.ShowWalletAddress,
		NotificationsEnabled: m.NotificationsEnabled,
		OnChainSince:         null.TimeFromPtr(m.OnChainSince),
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func offerToEntity(m *models.Offer) *entities.Offer {
	if m == nil || m.ID == uuid.Nil {
		return nil
	}
	methods := []string(m.PaymentMethods)
	if methods == nil {
		methods = []string{}
	}
	return &entities.Offer{
		ID:              m.ID,
		UserID:          m.UserID,
		Type:            entities.OfferType(m.Type),
		Amount:          m.Amount,
		MinLimit:        m.MinLimit,
		MaxLimit:        m.MaxLimit,
		ExchangeRate:    m.ExchangeRate,
		Location:        m.Location,
		Latitude:        null.Float64FromPtr(m.Latitude),
		Longitude:       null.Float64FromPtr(m.Longitude),
		Description:     null.StringFromPtr(m.Description),
		PaymentMethods:  methods,
		IsActive:        m.IsActive,
		BaseChainTxHash: null.StringFromPtr(m.BaseChainTxHash),
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
		User:            userToEntity(m.User),
	}
}

func dealToEntity(m *models.Deal) *entities.Deal {
	return &entities.Deal{
		ID:              m.ID,
		OfferID:         m.OfferID,
		BuyerID:         m.BuyerID,
		SellerID:        m.SellerID,
		Amount:          m.Amount,
		Status:          entities.DealStatus(m.Status),
		BaseChainTxHash: null.StringFromPtr(m.BaseChainTxHash),
		Notes:           null.StringFromPtr(m.Notes),
		CreatedAt:       m.CreatedAt,
		CompletedAt:     null.TimeFromPtr(m.CompletedAt),
		CancelledAt:     null.TimeFromPtr(m.CancelledAt),
		Offer:           offerToEntity(m.Offer),
		Buyer:           userToEntity(m.Buyer).Summary(),
		Seller:          userToEntity(m.Seller).Summary(),
	}
}

func reportToEntity(m *models.Report) *entities.Report {
	return &entities.Report{
		ID:          m.ID,
		ReporterID:  m.ReporterID,
		OfferID:     m.OfferID,
		UserID:      m.UserID,
		Reason:      m.Reason,
		Description: m.Description,
		Status:      entities.ReportStatus(m.Status),
		CreatedAt:   m.CreatedAt,
		ReviewedAt:  null.TimeFromPtr(m.ReviewedAt),
		ReviewedBy:  m.ReviewedBy,
		Reporter:    userToEntity(m.Reporter).Summary(),
		Offer:       offerToEntity(m.Offer),
	}
}

func auditLogToEntity(m *models.AuditLog) *entities.AuditLog {
	return &entities.AuditLog{
		ID:         m.ID,
		AdminID:    m.AdminID,
		Action:     entities.AuditAction(m.Action),
		TargetType: null.StringFromPtr(m.TargetType),
		TargetID:   null.StringFromPtr(m.TargetID),
		Details:    null.StringFromPtr(m.Details),
		CreatedAt:  m.CreatedAt,
	}
}
