package domain

import "context"

type CreateClientRequest struct {
	Name    string  `json:"name"`
	Email   *string `json:"email,omitempty"`
	Phone   *string `json:"phone,omitempty"`
	Company *string `json:"company,omitempty"`

	AddressLine1      string  `json:"address_line1,omitempty"`
	AddressLine2      *string `json:"address_line2,omitempty"`
	AddressCity       string  `json:"address_city,omitempty"`
	AddressState      *string `json:"address_state,omitempty"`
	AddressPostalCode string  `json:"address_postal_code,omitempty"`
	AddressCountry    string  `json:"address_country,omitempty"`

	Notes *string `json:"notes,omitempty"`
}

type Service interface {
	Create(ctx context.Context, req CreateClientRequest) (*Client, error)
	GetByID(ctx context.Context, id string) (*Client, error)
	List(ctx context.Context) ([]*Client, error)
	Delete(ctx context.Context, id string) error
}
