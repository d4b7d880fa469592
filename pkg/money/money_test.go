package money_test

import (
	"strings"
	"testing"

	"github.com/niksmo/storefront/pkg/money"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "₹0", money.Format(0))
	assert.Equal(t, "₹79", money.Format(79))
	assert.Equal(t, "₹1,299", money.Format(1299))
	assert.True(t, strings.HasPrefix(money.Format(-65), "-₹"))
}

func TestCode(t *testing.T) {
	assert.Equal(t, "INR 1,443", money.Code(1443))
}
