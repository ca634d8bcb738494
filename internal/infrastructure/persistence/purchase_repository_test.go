package persistence

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/backoffice/backend/internal/domain/shared"
	"github.com/backoffice/backend/internal/domain/trade"
)

func TestGormPurchaseRepository_UpdateStatus(t *testing.T) {
	t.Run("transitions while the expected status still holds", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPurchaseRepository(db)

		purchaseID := uuid.New()
		mock.ExpectExec(`UPDATE "purchases" SET .* WHERE id = \$\d+ AND status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), purchaseID,
			trade.PurchasePending, trade.PurchaseCompleted)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrInvalidState when the status moved on", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPurchaseRepository(db)

		purchaseID := uuid.New()
		mock.ExpectExec(`UPDATE "purchases" SET .* WHERE id = \$\d+ AND status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "purchases" WHERE id = \$1`).
			WithArgs(purchaseID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := repo.UpdateStatus(context.Background(), purchaseID,
			trade.PurchasePending, trade.PurchaseCancelled)

		assert.ErrorIs(t, err, shared.ErrInvalidState)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for an unknown purchase", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPurchaseRepository(db)

		purchaseID := uuid.New()
		mock.ExpectExec(`UPDATE "purchases" SET .* WHERE id = \$\d+ AND status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "purchases" WHERE id = \$1`).
			WithArgs(purchaseID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		err := repo.UpdateStatus(context.Background(), purchaseID,
			trade.PurchasePending, trade.PurchaseCompleted)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPurchaseRepository_ExistsForSupplier(t *testing.T) {
	t.Run("reports a referenced supplier", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormPurchaseRepository(db)

		supplierID := uuid.New()
		mock.ExpectQuery(`SELECT count\(\*\) FROM "purchases" WHERE supplier_id = \$1`).
			WithArgs(supplierID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

		exists, err := repo.ExistsForSupplier(context.Background(), supplierID)

		assert.NoError(t, err)
		assert.True(t, exists)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
