package catalog

import (
	"testing"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createTestProduct(t *testing.T) *Product {
	t.Helper()
	product, err := NewProduct("Test Product", "A product for testing", valueobject.NewMoneyUSDFromFloat(9.99))
	require.NoError(t, err)
	return product
}

func TestNewProduct(t *testing.T) {
	t.Run("creates active product with zero stock", func(t *testing.T) {
		product := createTestProduct(t)

		assert.Equal(t, "Test Product", product.Name)
		assert.True(t, product.IsActive)
		assert.Equal(t, int64(0), product.Stock)
		assert.Equal(t, 1, product.Version)
		assert.True(t, product.UnitPrice.Equal(decimal.NewFromFloat(9.99)))
	})

	t.Run("rejects empty name", func(t *testing.T) {
		_, err := NewProduct("", "", valueobject.ZeroUSD())
		assert.Error(t, err)
	})

	t.Run("rejects name over 200 characters", func(t *testing.T) {
		name := make([]byte, 201)
		for i := range name {
			name[i] = 'x'
		}
		_, err := NewProduct(string(name), "", valueobject.ZeroUSD())
		assert.Error(t, err)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := NewProduct("Negative", "", valueobject.NewMoneyUSDFromFloat(-1))
		assert.Error(t, err)
	})

	t.Run("rounds price to two decimals", func(t *testing.T) {
		product, err := NewProduct("Rounded", "", valueobject.NewMoneyUSDFromFloat(10.005))
		require.NoError(t, err)
		assert.Equal(t, "10.01", product.UnitPrice.StringFixed(2))
	})
}

func TestProduct_IncreaseStock(t *testing.T) {
	t.Run("adds to stock", func(t *testing.T) {
		product := createTestProduct(t)

		require.NoError(t, product.IncreaseStock(10))
		assert.Equal(t, int64(10), product.Stock)

		require.NoError(t, product.IncreaseStock(5))
		assert.Equal(t, int64(15), product.Stock)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		product := createTestProduct(t)

		assert.Error(t, product.IncreaseStock(0))
		assert.Error(t, product.IncreaseStock(-3))
		assert.Equal(t, int64(0), product.Stock)
	})
}

func TestProduct_DecreaseStock(t *testing.T) {
	t.Run("subtracts from stock", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.IncreaseStock(5))

		require.NoError(t, product.DecreaseStock(3))
		assert.Equal(t, int64(2), product.Stock)
	})

	t.Run("refuses insufficient stock without partial decrement", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.IncreaseStock(5))

		err := product.DecreaseStock(6)
		assert.ErrorIs(t, err, shared.ErrInsufficientStock)
		assert.Equal(t, int64(5), product.Stock)
	})

	t.Run("allows decreasing to exactly zero", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.IncreaseStock(5))

		require.NoError(t, product.DecreaseStock(5))
		assert.Equal(t, int64(0), product.Stock)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		product := createTestProduct(t)
		require.NoError(t, product.IncreaseStock(5))

		assert.Error(t, product.DecreaseStock(0))
		assert.Error(t, product.DecreaseStock(-1))
		assert.Equal(t, int64(5), product.Stock)
	})
}

func TestProduct_StockPredicates(t *testing.T) {
	product := createTestProduct(t)

	assert.True(t, product.IsOutOfStock())
	assert.True(t, product.IsLowStock())
	assert.False(t, product.HasStock(1))

	require.NoError(t, product.IncreaseStock(5))
	assert.False(t, product.IsOutOfStock())
	assert.True(t, product.IsLowStock())
	assert.True(t, product.HasStock(5))
	assert.False(t, product.HasStock(6))

	require.NoError(t, product.IncreaseStock(5))
	assert.False(t, product.IsLowStock())
}

func TestProduct_InventoryValue(t *testing.T) {
	product, err := NewProduct("Valued", "", valueobject.NewMoneyUSDFromFloat(2.50))
	require.NoError(t, err)
	require.NoError(t, product.IncreaseStock(4))

	assert.True(t, product.InventoryValue().Equal(decimal.NewFromInt(10)))
}

func TestProduct_ActivateDeactivate(t *testing.T) {
	product := createTestProduct(t)

	assert.Error(t, product.Activate()) // already active

	require.NoError(t, product.Deactivate())
	assert.False(t, product.IsActive)
	assert.Error(t, product.Deactivate())

	require.NoError(t, product.Activate())
	assert.True(t, product.IsActive)

	product.ToggleActive()
	assert.False(t, product.IsActive)
	product.ToggleActive()
	assert.True(t, product.IsActive)
}

func TestProduct_Update(t *testing.T) {
	product := createTestProduct(t)
	version := product.Version

	require.NoError(t, product.Update("Renamed", "new description"))
	assert.Equal(t, "Renamed", product.Name)
	assert.Equal(t, "new description", product.Description)
	assert.Equal(t, version+1, product.Version)

	assert.Error(t, product.Update("", ""))
}

func TestProduct_SetUnitPrice(t *testing.T) {
	product := createTestProduct(t)

	require.NoError(t, product.SetUnitPrice(valueobject.NewMoneyUSDFromFloat(15.00)))
	assert.True(t, product.UnitPrice.Equal(decimal.NewFromInt(15)))

	assert.Error(t, product.SetUnitPrice(valueobject.NewMoneyUSDFromFloat(-0.01)))
}
