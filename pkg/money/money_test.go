package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineAmountExact(t *testing.T) {
	amount := LineAmount(MustFromString("2"), MustFromString("50.00"))
	assert.True(t, amount.Equal(MustFromString("100.00")))
}

func TestLineAmountFractionalQuantity(t *testing.T) {
	// 1.5h x 33.33 = 49.995, rounds half-up once to 50.00
	amount := LineAmount(MustFromString("1.5"), MustFromString("33.33"))
	assert.Equal(t, "50", amount.String())
}

func TestPercentNoDrift(t *testing.T) {
	tax := Percent(MustFromString("200.00"), MustFromString("18"))
	assert.True(t, tax.Equal(MustFromString("36.00")))
}

func TestPercentNonTerminatingRoundsOnce(t *testing.T) {
	// 100.00 * 1/3 % = 0.3333... -> 0.33
	pct := Percent(MustFromString("100.00"), MustFromString("0.333333"))
	assert.Equal(t, "0.33", pct.StringFixed(Scale))
}

func TestAdditionIsExact(t *testing.T) {
	sum := Zero()
	for i := 0; i < 10; i++ {
		sum = sum.Add(MustFromString("0.10"))
	}
	assert.True(t, sum.Equal(MustFromString("1.00")))
}
