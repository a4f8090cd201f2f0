package pdf

import (
	"bytes"
	"context"
	"io"
	"strings"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	invoicedomain "github.com/flowbooks/flowbooks/internal/invoice/domain"
	"github.com/flowbooks/flowbooks/internal/invoice/render"
)

type MarotoProvider struct{}

func New() Provider {
	return &MarotoProvider{}
}

func (p *MarotoProvider) GenerateInvoice(ctx context.Context, input render.RenderInput) (io.Reader, error) {
	if input.Invoice == nil {
		return nil, invoicedomain.ErrNotFound
	}
	invoice := input.Invoice
	currency := invoice.Currency

	cfg := config.NewBuilder().
		WithPageNumber(props.PageNumber{
			Pattern: "Page {current} of {total}",
			Place:   props.RightBottom,
		}).
		Build()

	m := maroto.New(cfg)

	m.AddRow(12,
		text.NewCol(8, "Invoice", props.Text{
			Size:  20,
			Style: fontstyle.Bold,
			Align: align.Left,
		}),
		text.NewCol(4, strings.ToUpper(string(invoice.Status)), props.Text{
			Size:  10,
			Style: fontstyle.Bold,
			Align: align.Right,
			Top:   4,
		}),
	)

	m.AddRow(18,
		col.New(6).Add(
			text.New("Invoice number: "+invoice.Number, props.Text{Top: 0}),
			text.New("Date of issue: "+invoice.IssueDate.Format("2006-01-02"), props.Text{Top: 5}),
			text.New("Date due: "+invoice.DueDate.Format("2006-01-02"), props.Text{Top: 10}),
		),
		col.New(6),
	)

	m.AddRow(35,
		col.New(6).Add(profileLines(input)...),
		col.New(6).Add(clientLines(input)...),
	)

	m.AddRow(14,
		text.NewCol(12, render.FormatMoney(invoice.AmountDue, currency)+" due "+invoice.DueDate.Format("2006-01-02"), props.Text{
			Size:  14,
			Style: fontstyle.Bold,
			Top:   4,
		}),
	)

	m.AddRow(10,
		text.NewCol(6, "Description", props.Text{Style: fontstyle.Bold, Size: 9}),
		text.NewCol(2, "Qty", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Unit price", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
		text.NewCol(2, "Amount", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right}),
	)

	for _, item := range invoice.Items {
		m.AddRow(12,
			text.NewCol(6, item.Description, props.Text{Size: 9}),
			text.NewCol(2, item.Quantity.String(), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, render.FormatMoney(item.UnitPrice, currency), props.Text{Size: 9, Align: align.Right}),
			text.NewCol(2, render.FormatMoney(item.Amount, currency), props.Text{Size: 9, Align: align.Right}),
		)
	}

	totalRow := func(label, value string, bold bool) {
		style := fontstyle.Normal
		if bold {
			style = fontstyle.Bold
		}
		m.AddRow(8,
			col.New(7),
			text.NewCol(3, label, props.Text{Size: 9, Style: style}),
			text.NewCol(2, value, props.Text{Size: 9, Style: style, Align: align.Right}),
		)
	}

	totalRow("Subtotal", render.FormatMoney(invoice.Subtotal, currency), false)
	if !invoice.TaxTotal.IsZero() {
		totalRow("Tax", render.FormatMoney(invoice.TaxTotal, currency), false)
	}
	if !invoice.DiscountTotal.IsZero() {
		totalRow("Discount", "-"+render.FormatMoney(invoice.DiscountTotal, currency), false)
	}
	totalRow("Total", render.FormatMoney(invoice.Total, currency), true)
	if !invoice.AmountPaid.IsZero() {
		totalRow("Amount paid", "-"+render.FormatMoney(invoice.AmountPaid, currency), false)
	}
	totalRow("Amount due", render.FormatMoney(invoice.AmountDue, currency), true)

	if invoice.Notes != nil && strings.TrimSpace(*invoice.Notes) != "" {
		m.AddRow(20,
			text.NewCol(12, *invoice.Notes, props.Text{Size: 8, Top: 6}),
		)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}

// textBlock lays out a heading plus address-style lines at 5mm spacing.
func textBlock(title string, lines []string) []core.Component {
	comps := []core.Component{}
	top := 0.0
	if title != "" {
		comps = append(comps, text.New(title, props.Text{Style: fontstyle.Bold, Size: 9}))
		top = 5
	}
	for _, line := range lines {
		comps = append(comps, text.New(line, props.Text{Top: top, Size: 9}))
		top += 5
	}
	return comps
}

func profileLines(input render.RenderInput) []core.Component {
	lines := []string{}
	if input.Profile != nil {
		lines = append(lines, input.Profile.Name)
		if input.Profile.AddressLine1 != "" {
			lines = append(lines, input.Profile.AddressLine1)
		}
		if input.Profile.AddressCity != "" {
			lines = append(lines, strings.TrimSpace(input.Profile.AddressCity+" "+input.Profile.AddressPostalCode))
		}
		if input.Profile.Email != nil {
			lines = append(lines, *input.Profile.Email)
		}
	}
	return textBlock("", lines)
}

func clientLines(input render.RenderInput) []core.Component {
	lines := []string{}
	if input.Client != nil {
		lines = append(lines, input.Client.Name)
		if input.Client.AddressLine1 != "" {
			lines = append(lines, input.Client.AddressLine1)
		}
		if input.Client.AddressCity != "" {
			lines = append(lines, strings.TrimSpace(input.Client.AddressCity+" "+input.Client.AddressPostalCode))
		}
		if input.Client.Email != nil {
			lines = append(lines, *input.Client.Email)
		}
	}
	return textBlock("Bill to", lines)
}
