package models

import (
	"time"

	"github.com/google/uuid"
)

type Report struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ReporterID  uuid.UUID  `gorm:"type:uuid;index;not null"`
	OfferID     *uuid.UUID `gorm:"type:uuid;index"`
	UserID      *uuid.UUID `gorm:"type:uuid;index"`
	Reason      string     `gorm:"type:text;not null"`
	Description string     `gorm:"type:text;not null"`
	Status      string     `gorm:"type:varchar(16);index;not null"`
	CreatedAt   time.Time  `gorm:"index;not null"`
	ReviewedAt  *time.Time
	ReviewedBy  *uuid.UUID `gorm:"type:uuid"`

	Reporter     *User  `gorm:"foreignKey:ReporterID;constraint:OnDelete:CASCADE"`
	Offer        *Offer `gorm:"foreignKey:OfferID;constraint:OnDelete:CASCADE"`
	ReportedUser *User  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Reviewer     *User  `gorm:"foreignKey:ReviewedBy"`
}

// All lists every model in migration order
func All() []interface{} {
	return []interface{}{&User{}, &AdminUser{}, &AuditLog{}, &Offer{}, &Deal{}, &Report{}}
}
