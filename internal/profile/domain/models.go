// Package domain contains the issuing business profile model.
package domain

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"

	invoicedomain "github.com/flowbooks/flowbooks/internal/invoice/domain"
)

var (
	ErrNotFound    = errors.New("business_profile_not_found")
	ErrInvalidName = errors.New("invalid_profile_name")
)

// BusinessProfile is the issuing party printed on invoices. The store
// keeps a single active profile; invoices embed the profile ID valid at
// creation time.
type BusinessProfile struct {
	ID    snowflake.ID `gorm:"primaryKey" json:"id"`
	Name  string       `gorm:"type:text;not null" json:"name"`
	Email *string      `gorm:"type:text" json:"email,omitempty"`
	Phone *string      `gorm:"type:text" json:"phone,omitempty"`

	AddressLine1      string  `gorm:"type:text;not null;default:''" json:"address_line1"`
	AddressLine2      *string `gorm:"type:text" json:"address_line2,omitempty"`
	AddressCity       string  `gorm:"type:text;not null;default:''" json:"address_city"`
	AddressState      *string `gorm:"type:text" json:"address_state,omitempty"`
	AddressPostalCode string  `gorm:"type:text;not null;default:''" json:"address_postal_code"`
	AddressCountry    string  `gorm:"type:text;not null;default:''" json:"address_country"`

	TaxID               *string                    `gorm:"type:text" json:"tax_id,omitempty"`
	DefaultCurrency     string                     `gorm:"type:text;not null;default:'USD'" json:"default_currency"`
	DefaultPaymentTerms invoicedomain.PaymentTerms `gorm:"type:text;not null;default:'net_30'" json:"default_payment_terms"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (BusinessProfile) TableName() string { return "business_profiles" }

type Repository interface {
	// GetActive returns the single active profile, or (nil, nil) when
	// none has been configured yet.
	GetActive(ctx context.Context) (*BusinessProfile, error)
	Upsert(ctx context.Context, profile *BusinessProfile) error
}

type UpsertProfileRequest struct {
	Name  string  `json:"name"`
	Email *string `json:"email,omitempty"`
	Phone *string `json:"phone,omitempty"`
	TaxID *string `json:"tax_id,omitempty"`

	AddressLine1      string  `json:"address_line1,omitempty"`
	AddressLine2      *string `json:"address_line2,omitempty"`
	AddressCity       string  `json:"address_city,omitempty"`
	AddressState      *string `json:"address_state,omitempty"`
	AddressPostalCode string  `json:"address_postal_code,omitempty"`
	AddressCountry    string  `json:"address_country,omitempty"`

	DefaultCurrency     string `json:"default_currency,omitempty"`
	DefaultPaymentTerms string `json:"default_payment_terms,omitempty"`
}

type Service interface {
	Get(ctx context.Context) (*BusinessProfile, error)
	Upsert(ctx context.Context, req UpsertProfileRequest) (*BusinessProfile, error)
}
