// Package pdf renders invoices as PDF documents.
package pdf

import (
	"context"
	"io"

	"go.uber.org/fx"

	"github.com/flowbooks/flowbooks/internal/invoice/render"
)

// Provider produces a PDF from the same input the HTML renderer
// consumes, so both document forms always agree on content.
type Provider interface {
	GenerateInvoice(ctx context.Context, input render.RenderInput) (io.Reader, error)
}

var Module = fx.Module("pdf",
	fx.Provide(New),
)
