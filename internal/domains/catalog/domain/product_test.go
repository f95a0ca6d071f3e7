package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewProduct_Normalizes(t *testing.T) {
	p, err := NewProduct(1, "  Amazon Fire ", "tablet", decimal.RequireFromString("49.9"), "usd", 1, 2)
	require.NoError(t, err)
	require.Equal(t, "Amazon Fire", p.Name)
	require.Equal(t, "USD", p.Currency)
	require.Equal(t, "49.90 USD", p.Price())
}

func TestNewProduct_Invariants(t *testing.T) {
	_, err := NewProduct(1, " ", "", decimal.NewFromInt(1), "USD", 0, 0)
	require.ErrorIs(t, err, ErrEmptyName)

	_, err = NewProduct(1, "x", "", decimal.NewFromInt(-1), "USD", 0, 0)
	require.ErrorIs(t, err, ErrNegativePrice)

	_, err = NewProduct(1, "x", "", decimal.NewFromInt(1), "US", 0, 0)
	require.ErrorIs(t, err, ErrInvalidCurrency)

	_, err = NewProduct(1, "x", "", decimal.NewFromInt(1), "U$D", 0, 0)
	require.ErrorIs(t, err, ErrInvalidCurrency)
}

func TestNewCategoryAndSupplier_RequireName(t *testing.T) {
	_, err := NewCategory(1, "", "Hardware", "")
	require.ErrorIs(t, err, ErrEmptyName)
	_, err = NewSupplier(1, "", "")
	require.ErrorIs(t, err, ErrEmptyName)

	c, err := NewCategory(1, "Tablet", "Hardware", "A tablet computer")
	require.NoError(t, err)
	require.Equal(t, "Hardware", c.Department)
}
