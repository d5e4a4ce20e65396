package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	apperrors "github.com/santecare/pharmacare-backend/pkg/errors"
)

func testSale() *entities.Sale {
	now := time.Now()
	return &entities.Sale{
		ID:   "s-1",
		Date: now,
		Lines: []entities.SaleLine{
			{MedicineID: "1", Name: "Paracetamol 500mg", Quantity: 2, UnitPrice: 250},
		},
		Total:         500,
		PaymentMethod: entities.PaymentMethodCash,
		CashierID:     "3",
		CashierName:   "Marie Traore",
		CreatedAt:     now,
	}
}

func TestSaleAdapter_CreateWithStockDecrementCommits(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewSaleAdapter(client)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "sales"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "sale_lines"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "medicines" SET .*current_stock.*`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := adapter.CreateWithStockDecrement(context.Background(), testSale())
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleAdapter_UnknownMedicineRollsBack(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewSaleAdapter(client)

	mock.ExpectBegin()
	mock.ExpectExec(`INSERT INTO "sales"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "sale_lines"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "medicines" SET .*current_stock.*`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := adapter.CreateWithStockDecrement(context.Background(), testSale())
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSaleAdapter_GetByIDNotFound(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewSaleAdapter(client)

	mock.ExpectQuery(`SELECT .* FROM "sales" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := adapter.GetByID(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}
