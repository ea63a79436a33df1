// Package dto defines the transport representations of housing units.
package dto

import (
	"time"

	"boaz/internal/domain/housing"
)

type HousingUnitDTO struct {
	ID          uint      `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Address     string    `json:"address"`
	City        string    `json:"city"`
	PostalCode  string    `json:"postal_code"`
	Country     string    `json:"country"`
	Rent        float64   `json:"rent"`
	Charges     float64   `json:"charges"`
	Total       float64   `json:"total"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func FromEntity(unit *housing.HousingUnit) *HousingUnitDTO {
	if unit == nil {
		return nil
	}
	return &HousingUnitDTO{
		ID:          unit.ID(),
		Title:       unit.Title(),
		Description: unit.Description(),
		Address:     unit.Address(),
		City:        unit.City(),
		PostalCode:  unit.PostalCode(),
		Country:     unit.Country(),
		Rent:        unit.Rent(),
		Charges:     unit.Charges(),
		Total:       unit.Total(),
		Status:      unit.Status().String(),
		CreatedAt:   unit.CreatedAt(),
		UpdatedAt:   unit.UpdatedAt(),
	}
}

func FromEntities(units []*housing.HousingUnit) []*HousingUnitDTO {
	dtos := make([]*HousingUnitDTO, 0, len(units))
	for _, unit := range units {
		dtos = append(dtos, FromEntity(unit))
	}
	return dtos
}
