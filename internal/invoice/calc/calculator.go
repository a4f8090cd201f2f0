// Package calc computes invoice financial totals. Every function is
// pure and deterministic; all arithmetic is exact decimal with a single
// half-up rounding per computed quantity.
package calc

import (
	invoicedomain "github.com/flowbooks/flowbooks/internal/invoice/domain"
	"github.com/flowbooks/flowbooks/pkg/money"
)

// Subtotal sums quantity x unit price over all items in order. Empty
// input yields zero.
func Subtotal(items []invoicedomain.LineItem) money.Money {
	total := money.Zero()
	for _, item := range items {
		total = total.Add(money.LineAmount(item.Quantity, item.UnitPrice))
	}
	return total
}

// TaxTotal applies tax rates in list order. A compound rate taxes the
// running base and grows it by its own tax; a non-compound rate always
// taxes the original subtotal and leaves the base untouched. The base
// never shrinks and never resets within one call, so order matters in
// the compound case.
func TaxTotal(subtotal money.Money, taxRates []invoicedomain.TaxRate) money.Money {
	base := subtotal
	total := money.Zero()
	for _, rate := range taxRates {
		var tax money.Money
		if rate.Compound {
			tax = money.Percent(base, rate.Rate)
			base = base.Add(tax)
		} else {
			tax = money.Percent(subtotal, rate.Rate)
		}
		total = total.Add(tax)
	}
	return total
}

// DiscountTotal derives the discount amount from the pre-tax subtotal.
// Fixed discounts are taken literally, not clamped to the subtotal.
func DiscountTotal(subtotal money.Money, discount *invoicedomain.Discount) money.Money {
	if discount == nil {
		return money.Zero()
	}
	switch discount.Type {
	case invoicedomain.DiscountPercentage:
		return money.Percent(subtotal, discount.Value)
	case invoicedomain.DiscountFixed:
		return discount.Value
	default:
		return money.Zero()
	}
}

// GrandTotal composes the three calculations; total = subtotal + tax - discount.
// This is the single entry point used when building an invoice.
func GrandTotal(items []invoicedomain.LineItem, taxRates []invoicedomain.TaxRate, discount *invoicedomain.Discount) (subtotal, taxTotal, discountTotal, total money.Money) {
	subtotal = Subtotal(items)
	taxTotal = TaxTotal(subtotal, taxRates)
	discountTotal = DiscountTotal(subtotal, discount)
	total = subtotal.Add(taxTotal).Sub(discountTotal)
	return subtotal, taxTotal, discountTotal, total
}
