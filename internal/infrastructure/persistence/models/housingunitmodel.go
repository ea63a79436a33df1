package models

import (
	"time"

	"gorm.io/gorm"

	"boaz/internal/shared/constants"
)

// HousingUnitModel represents the database persistence model for housing units
// This is the anti-corruption layer between domain and database
type HousingUnitModel struct {
	ID          uint    `gorm:"primarykey"`
	Title       string  `gorm:"not null;size:255"`
	Description string  `gorm:"type:text"`
	Address     string  `gorm:"not null;size:500;uniqueIndex:idx_location,priority:1"`
	City        string  `gorm:"not null;size:100;uniqueIndex:idx_location,priority:2;index:idx_city"`
	PostalCode  string  `gorm:"not null;size:20;uniqueIndex:idx_location,priority:3"`
	Country     string  `gorm:"not null;size:100;default:France"`
	Rent        float64 `gorm:"not null;type:decimal(10,2)"`
	Charges     float64 `gorm:"not null;type:decimal(10,2);default:0"`
	Total       float64 `gorm:"not null;type:decimal(10,2)"`
	Status      string  `gorm:"not null;size:20;default:available;index:idx_unit_status"`
	Version     int     `gorm:"not null;default:1"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for GORM
func (HousingUnitModel) TableName() string {
	return constants.TableHousingUnits
}

// BeforeCreate hook for GORM
func (m *HousingUnitModel) BeforeCreate(tx *gorm.DB) error {
	if m.Version == 0 {
		m.Version = 1
	}
	return nil
}
