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

func TestGormSaleRepository_UpdateStatus(t *testing.T) {
	t.Run("cancels an active sale and stamps cancelled_at", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSaleRepository(db)

		saleID := uuid.New()
		mock.ExpectExec(`UPDATE "sales" SET "cancelled_at"=\$1,"status"=\$2,"updated_at"=\$3 WHERE id = \$4 AND status = \$5`).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.UpdateStatus(context.Background(), saleID,
			trade.SaleActive, trade.SaleCancelled)

		assert.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrInvalidState for an already cancelled sale", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSaleRepository(db)

		saleID := uuid.New()
		mock.ExpectExec(`UPDATE "sales" SET .* WHERE id = \$\d+ AND status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "sales" WHERE id = \$1`).
			WithArgs(saleID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

		err := repo.UpdateStatus(context.Background(), saleID,
			trade.SaleActive, trade.SaleCancelled)

		assert.ErrorIs(t, err, shared.ErrInvalidState)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns ErrNotFound for an unknown sale", func(t *testing.T) {
		db, mock, mockDB := newMockDB(t)
		defer mockDB.Close()
		repo := NewGormSaleRepository(db)

		saleID := uuid.New()
		mock.ExpectExec(`UPDATE "sales" SET .* WHERE id = \$\d+ AND status = \$\d+`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectQuery(`SELECT count\(\*\) FROM "sales" WHERE id = \$1`).
			WithArgs(saleID).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

		err := repo.UpdateStatus(context.Background(), saleID,
			trade.SaleActive, trade.SaleCancelled)

		assert.ErrorIs(t, err, shared.ErrNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
