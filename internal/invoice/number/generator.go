// Package number produces human-readable sequential invoice numbers.
package number

import (
	"fmt"
	"strings"

	"github.com/flowbooks/flowbooks/internal/clock"
)

// DefaultPrefix is used when no prefix is configured.
const DefaultPrefix = "INV"

// sequence width in the rendered number, zero padded.
const seqWidth = 5

// Generator formats invoice numbers as "{prefix}-{year}-{seq}", where
// seq is the invoice count plus one, zero-padded to five digits.
//
// Next is a pure function of its input and the clock: it never touches
// storage. Two concurrent creators reading the same count will propose
// the same number, so the store treats the result as a proposal and
// enforces real uniqueness with a unique constraint; the service retries
// with a fresh count on conflict.
type Generator struct {
	prefix string
	clock  clock.Clock
}

func NewGenerator(prefix string, clk clock.Clock) *Generator {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Generator{prefix: prefix, clock: clk}
}

// Next returns the numbering proposal for the given count of invoices
// already created.
func (g *Generator) Next(currentCount int64) string {
	year := g.clock.Now().UTC().Format("2006")
	return fmt.Sprintf("%s-%s-%0*d", g.prefix, year, seqWidth, currentCount+1)
}
