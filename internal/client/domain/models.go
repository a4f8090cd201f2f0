// Package domain contains the client (customer) reference data model.
package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

// Client is reference data consumed by the invoicing core. Invoices
// embed the client ID valid at creation time and never mutate it.
type Client struct {
	ID      snowflake.ID `gorm:"primaryKey" json:"id"`
	Name    string       `gorm:"type:text;not null" json:"name"`
	Email   *string      `gorm:"type:text" json:"email,omitempty"`
	Phone   *string      `gorm:"type:text" json:"phone,omitempty"`
	Company *string      `gorm:"type:text" json:"company,omitempty"`

	AddressLine1      string  `gorm:"type:text;not null;default:''" json:"address_line1"`
	AddressLine2      *string `gorm:"type:text" json:"address_line2,omitempty"`
	AddressCity       string  `gorm:"type:text;not null;default:''" json:"address_city"`
	AddressState      *string `gorm:"type:text" json:"address_state,omitempty"`
	AddressPostalCode string  `gorm:"type:text;not null;default:''" json:"address_postal_code"`
	AddressCountry    string  `gorm:"type:text;not null;default:''" json:"address_country"`

	Notes    *string           `gorm:"type:text" json:"notes,omitempty"`
	Metadata datatypes.JSONMap `gorm:"type:text" json:"metadata,omitempty"`

	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

// TableName sets the database table name.
func (Client) TableName() string { return "clients" }
