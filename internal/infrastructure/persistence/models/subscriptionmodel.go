package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"boaz/internal/shared/constants"
)

// SubscriptionModel represents the database persistence model for subscriptions
// This is the anti-corruption layer between domain and database
type SubscriptionModel struct {
	ID        uint   `gorm:"primarykey"`
	Reference string `gorm:"uniqueIndex;not null;size:20"`

	// Tenant identity
	TenantLastName           string `gorm:"not null;size:100"`
	TenantFirstName          string `gorm:"not null;size:100"`
	TenantEmail              string `gorm:"not null;size:255;index:idx_tenant_email"`
	TenantBirthDate          *time.Time
	TenantBirthCity          string `gorm:"size:100"`
	TenantBirthCountry       string `gorm:"size:100"`
	TenantNationality        string `gorm:"size:100"`
	TenantDestinationCountry string `gorm:"size:100"`
	TenantArrivalDate        *time.Time

	// Academic enrolment
	School           string `gorm:"not null;size:255"`
	Program          string `gorm:"not null;size:255"`
	SchoolCountry    string `gorm:"size:100"`
	SchoolCity       string `gorm:"size:100"`
	SchoolPostalCode string `gorm:"size:20"`
	SchoolAddress    string `gorm:"size:500"`

	HousingUnitID    uint `gorm:"not null;index:idx_housing_unit"`
	MoveInDate       *time.Time
	DurationMonths   int            `gorm:"not null;default:12"`
	ServiceIDs       datatypes.JSON `gorm:"not null"`
	Status           string         `gorm:"not null;size:30;default:attente_paiement;index:idx_sub_status"`
	DeliveredAt      *time.Time
	ExpiresAt        *time.Time `gorm:"index:idx_expires_at"`
	PaymentProofPath *string    `gorm:"size:500"`
	CreatedByUserID  *uint      `gorm:"index:idx_created_by"`
	Version          int        `gorm:"not null;default:1"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// TableName specifies the table name for GORM
func (SubscriptionModel) TableName() string {
	return constants.TableSubscriptions
}

// BeforeCreate hook for GORM
func (m *SubscriptionModel) BeforeCreate(tx *gorm.DB) error {
	if m.Version == 0 {
		m.Version = 1
	}
	return nil
}
