// Package dto defines the transport representations of subscriptions.
package dto

import (
	"time"

	"boaz/internal/domain/subscription"
)

type TenantDTO struct {
	LastName           string     `json:"last_name"`
	FirstName          string     `json:"first_name"`
	Email              string     `json:"email"`
	BirthDate          *time.Time `json:"birth_date,omitempty"`
	BirthCity          string     `json:"birth_city,omitempty"`
	BirthCountry       string     `json:"birth_country,omitempty"`
	Nationality        string     `json:"nationality,omitempty"`
	DestinationCountry string     `json:"destination_country,omitempty"`
	ArrivalDate        *time.Time `json:"arrival_date,omitempty"`
}

type AcademicDTO struct {
	School           string `json:"school"`
	Program          string `json:"program"`
	SchoolCountry    string `json:"school_country,omitempty"`
	SchoolCity       string `json:"school_city,omitempty"`
	SchoolPostalCode string `json:"school_postal_code,omitempty"`
	SchoolAddress    string `json:"school_address,omitempty"`
}

type SubscriptionDTO struct {
	ID               uint        `json:"id"`
	Reference        string      `json:"reference"`
	Tenant           TenantDTO   `json:"tenant"`
	Academic         AcademicDTO `json:"academic"`
	HousingUnitID    uint        `json:"housing_unit_id"`
	MoveInDate       *time.Time  `json:"move_in_date,omitempty"`
	DurationMonths   int         `json:"duration_months"`
	ServiceIDs       []int       `json:"service_ids"`
	Status           string      `json:"status"`
	DeliveredAt      *time.Time  `json:"delivered_at,omitempty"`
	ExpiresAt        *time.Time  `json:"expires_at,omitempty"`
	PaymentProofPath *string     `json:"payment_proof_path,omitempty"`
	CreatedByUserID  *uint       `json:"created_by_user_id,omitempty"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
}

func FromEntity(sub *subscription.Subscription) *SubscriptionDTO {
	if sub == nil {
		return nil
	}
	tenant := sub.Tenant()
	academic := sub.Academic()
	return &SubscriptionDTO{
		ID:        sub.ID(),
		Reference: sub.Reference(),
		Tenant: TenantDTO{
			LastName:           tenant.LastName,
			FirstName:          tenant.FirstName,
			Email:              tenant.Email,
			BirthDate:          tenant.BirthDate,
			BirthCity:          tenant.BirthCity,
			BirthCountry:       tenant.BirthCountry,
			Nationality:        tenant.Nationality,
			DestinationCountry: tenant.DestinationCountry,
			ArrivalDate:        tenant.ArrivalDate,
		},
		Academic: AcademicDTO{
			School:           academic.School,
			Program:          academic.Program,
			SchoolCountry:    academic.SchoolCountry,
			SchoolCity:       academic.SchoolCity,
			SchoolPostalCode: academic.SchoolPostalCode,
			SchoolAddress:    academic.SchoolAddress,
		},
		HousingUnitID:    sub.HousingUnitID(),
		MoveInDate:       sub.MoveInDate(),
		DurationMonths:   sub.DurationMonths(),
		ServiceIDs:       sub.ServiceIDs(),
		Status:           sub.Status().String(),
		DeliveredAt:      sub.DeliveredAt(),
		ExpiresAt:        sub.ExpiresAt(),
		PaymentProofPath: sub.PaymentProofPath(),
		CreatedByUserID:  sub.CreatedByUserID(),
		CreatedAt:        sub.CreatedAt(),
		UpdatedAt:        sub.UpdatedAt(),
	}
}

func FromEntities(subs []*subscription.Subscription) []*SubscriptionDTO {
	dtos := make([]*SubscriptionDTO, 0, len(subs))
	for _, sub := range subs {
		dtos = append(dtos, FromEntity(sub))
	}
	return dtos
}
