package trade

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
)

func TestNewSale(t *testing.T) {
	clientID := uuid.New()
	userID := uuid.New()

	t.Run("creates active sale with computed total", func(t *testing.T) {
		lines := []SaleLine{
			{ProductID: uuid.New(), Quantity: 2, UnitPrice: valueobject.NewMoneyUSDFromFloat(19.99)},
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: valueobject.NewMoneyUSDFromFloat(5.00)},
		}

		sale, err := NewSale(clientID, userID, time.Now(), "walk-in", lines)
		require.NoError(t, err)

		assert.Equal(t, SaleActive, sale.Status)
		assert.Len(t, sale.Details, 2)
		assert.True(t, sale.Total.Equal(decimal.NewFromFloat(44.98)),
			"expected 44.98, got %s", sale.Total)
		assert.Nil(t, sale.CancelledAt)
	})

	t.Run("rejects empty line set", func(t *testing.T) {
		_, err := NewSale(clientID, userID, time.Now(), "", nil)
		assert.Error(t, err)
	})

	t.Run("rejects duplicate product lines", func(t *testing.T) {
		productID := uuid.New()
		lines := []SaleLine{
			{ProductID: productID, Quantity: 1, UnitPrice: valueobject.NewMoneyUSDFromFloat(1)},
			{ProductID: productID, Quantity: 1, UnitPrice: valueobject.NewMoneyUSDFromFloat(1)},
		}

		_, err := NewSale(clientID, userID, time.Now(), "", lines)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "DUPLICATE_LINE", domainErr.Code)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		lines := []SaleLine{
			{ProductID: uuid.New(), Quantity: -3, UnitPrice: valueobject.NewMoneyUSDFromFloat(1)},
		}
		_, err := NewSale(clientID, userID, time.Now(), "", lines)
		assert.Error(t, err)
	})

	t.Run("accepts a backdated sale date", func(t *testing.T) {
		lastMonth := time.Now().AddDate(0, -1, 0)
		lines := []SaleLine{
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: valueobject.NewMoneyUSDFromFloat(1)},
		}

		sale, err := NewSale(clientID, userID, lastMonth, "", lines)
		require.NoError(t, err)
		assert.Equal(t, lastMonth, sale.SoldAt)
	})

	t.Run("rejects a future sale date", func(t *testing.T) {
		lines := []SaleLine{
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: valueobject.NewMoneyUSDFromFloat(1)},
		}

		_, err := NewSale(clientID, userID, time.Now().AddDate(0, 0, 1), "", lines)
		require.Error(t, err)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_DATE", domainErr.Code)
	})
}

func TestSale_Cancel(t *testing.T) {
	newActiveSale := func(t *testing.T) *Sale {
		t.Helper()
		sale, err := NewSale(uuid.New(), uuid.New(), time.Now(), "", []SaleLine{
			{ProductID: uuid.New(), Quantity: 1, UnitPrice: valueobject.NewMoneyUSDFromFloat(9.99)},
		})
		require.NoError(t, err)
		return sale
	}

	t.Run("cancels an active sale", func(t *testing.T) {
		sale := newActiveSale(t)

		require.NoError(t, sale.Cancel())
		assert.Equal(t, SaleCancelled, sale.Status)
		assert.NotNil(t, sale.CancelledAt)
	})

	t.Run("rejects cancelling twice", func(t *testing.T) {
		sale := newActiveSale(t)
		require.NoError(t, sale.Cancel())

		err := sale.Cancel()
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_STATE", domainErr.Code)
	})
}

func TestSaleDetail_SubtotalRounding(t *testing.T) {
	price, err := valueobject.NewMoneyUSDFromString("3.333")
	require.NoError(t, err)

	sale, err := NewSale(uuid.New(), uuid.New(), time.Now(), "", []SaleLine{
		{ProductID: uuid.New(), Quantity: 3, UnitPrice: price},
	})
	require.NoError(t, err)

	assert.True(t, sale.Details[0].UnitPrice.Equal(decimal.NewFromFloat(3.33)))
	assert.True(t, sale.Details[0].Subtotal.Equal(decimal.NewFromFloat(9.99)),
		"expected 9.99, got %s", sale.Details[0].Subtotal)
}
