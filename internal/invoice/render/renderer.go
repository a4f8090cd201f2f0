// Package render turns a persisted invoice into a printable HTML
// document.
package render

import (
	clientdomain "github.com/flowbooks/flowbooks/internal/client/domain"
	invoicedomain "github.com/flowbooks/flowbooks/internal/invoice/domain"
	profiledomain "github.com/flowbooks/flowbooks/internal/profile/domain"
)

// RenderInput bundles the invoice aggregate with the reference rows it
// points at. All amounts come from the stored snapshot; rendering never
// recomputes them.
type RenderInput struct {
	Invoice *invoicedomain.Invoice
	Client  *clientdomain.Client
	Profile *profiledomain.BusinessProfile
}

type Renderer interface {
	RenderHTML(input RenderInput) (string, error)
}
