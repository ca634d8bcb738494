package valueobject

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	t.Run("creates money with valid currency", func(t *testing.T) {
		m, err := NewMoney(decimal.NewFromFloat(10.50), USD)
		require.NoError(t, err)
		assert.True(t, m.Amount().Equal(decimal.NewFromFloat(10.50)))
		assert.Equal(t, USD, m.Currency())
	})

	t.Run("rejects empty currency", func(t *testing.T) {
		_, err := NewMoney(decimal.NewFromInt(1), "")
		assert.Error(t, err)
	})
}

func TestNewMoneyUSDFromString(t *testing.T) {
	t.Run("parses valid amount", func(t *testing.T) {
		m, err := NewMoneyUSDFromString("19.99")
		require.NoError(t, err)
		assert.Equal(t, "19.99 USD", m.String())
	})

	t.Run("rejects invalid amount", func(t *testing.T) {
		_, err := NewMoneyUSDFromString("not-a-number")
		assert.Error(t, err)
	})
}

func TestMoney_Add(t *testing.T) {
	t.Run("adds same currency", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(10.25)
		b := NewMoneyUSDFromFloat(5.75)

		sum, err := a.Add(b)
		require.NoError(t, err)
		assert.True(t, sum.Amount().Equal(decimal.NewFromInt(16)))
	})

	t.Run("rejects currency mismatch", func(t *testing.T) {
		a := NewMoneyUSDFromFloat(10)
		b, err := NewMoney(decimal.NewFromInt(10), EUR)
		require.NoError(t, err)

		_, err = a.Add(b)
		assert.Error(t, err)
	})
}

func TestMoney_Sub(t *testing.T) {
	a := NewMoneyUSDFromFloat(10)
	b := NewMoneyUSDFromFloat(4.50)

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.True(t, diff.Amount().Equal(decimal.NewFromFloat(5.50)))
}

func TestMoney_MulInt(t *testing.T) {
	unitPrice := NewMoneyUSDFromFloat(2.50)
	subtotal := unitPrice.MulInt(4)
	assert.True(t, subtotal.Amount().Equal(decimal.NewFromInt(10)))
}

func TestMoney_Round(t *testing.T) {
	m := NewMoneyUSDFromFloat(10.005)
	assert.Equal(t, "10.01 USD", m.Round().String())
}

func TestMoney_Predicates(t *testing.T) {
	assert.True(t, ZeroUSD().IsZero())
	assert.True(t, NewMoneyUSDFromFloat(1).IsPositive())
	assert.True(t, NewMoneyUSDFromFloat(-1).IsNegative())
	assert.True(t, NewMoneyUSDFromFloat(2).GreaterThan(NewMoneyUSDFromFloat(1)))
	assert.True(t, NewMoneyUSDFromFloat(1).LessThan(NewMoneyUSDFromFloat(2)))
	assert.True(t, NewMoneyUSDFromFloat(1.5).Equal(NewMoneyUSDFromFloat(1.5)))
}
