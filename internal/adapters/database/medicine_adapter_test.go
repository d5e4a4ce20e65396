package database

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	"github.com/santecare/pharmacare-backend/internal/domain/repositories"
	"github.com/santecare/pharmacare-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/santecare/pharmacare-backend/pkg/errors"
)

func setupMockDB(t *testing.T) (*postgres.Client, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return postgres.NewClientFromDB(db), mock
}

func medicineRows(m *entities.Medicine) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "form", "dosage", "barcode", "current_stock", "min_stock",
		"price", "cost", "expiry_date", "supplier", "batch_number", "category",
		"created_at", "updated_at",
	}).AddRow(
		m.ID, m.Name, m.Form, m.Dosage, m.Barcode, m.CurrentStock, m.MinStock,
		m.Price, m.Cost, m.ExpiryDate, m.Supplier, m.BatchNumber, m.Category,
		m.CreatedAt, m.UpdatedAt,
	)
}

func TestMedicineAdapter_GetByID(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewMedicineAdapter(client)

	now := time.Now()
	m := &entities.Medicine{
		ID:           "1",
		Name:         "Paracetamol 500mg",
		Form:         "tablet",
		Dosage:       "500mg",
		CurrentStock: 150,
		MinStock:     20,
		Price:        250,
		Cost:         120,
		ExpiryDate:   now.AddDate(1, 0, 0),
		Category:     "analgesic",
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	mock.ExpectQuery(`SELECT .* FROM "medicines" WHERE`).WillReturnRows(medicineRows(m))

	got, err := adapter.GetByID(context.Background(), "1")
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol 500mg", got.Name)
	assert.Equal(t, 150, got.CurrentStock)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineAdapter_GetByIDNotFound(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewMedicineAdapter(client)

	mock.ExpectQuery(`SELECT .* FROM "medicines" WHERE`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := adapter.GetByID(context.Background(), "missing")
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineAdapter_UpdateNotFound(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewMedicineAdapter(client)

	mock.ExpectExec(`UPDATE "medicines" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := adapter.Update(context.Background(), &entities.Medicine{ID: "missing"})
	assert.True(t, apperrors.IsNotFound(err))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMedicineAdapter_ListLowStockFilter(t *testing.T) {
	client, mock := setupMockDB(t)
	adapter := NewMedicineAdapter(client)

	now := time.Now()
	low := &entities.Medicine{
		ID: "2", Name: "Ibuprofen", CurrentStock: 3, MinStock: 20,
		ExpiryDate: now, CreatedAt: now, UpdatedAt: now,
	}

	mock.ExpectQuery(`SELECT .* FROM "medicines" WHERE .*current_stock <= min_stock.*`).
		WillReturnRows(medicineRows(low))

	got, err := adapter.List(context.Background(), repositories.MedicineFilter{LowStock: true})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "2", got[0].ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
