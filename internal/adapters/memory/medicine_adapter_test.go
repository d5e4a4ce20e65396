package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	"github.com/santecare/pharmacare-backend/internal/domain/repositories"
	apperrors "github.com/santecare/pharmacare-backend/pkg/errors"
)

func testMedicine(id, name string, stock, minStock int) *entities.Medicine {
	now := time.Now()
	return &entities.Medicine{
		ID:           id,
		Name:         name,
		Form:         "tablet",
		Dosage:       "500mg",
		CurrentStock: stock,
		MinStock:     minStock,
		Price:        250,
		Cost:         120,
		Category:     "analgesic",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

func TestMedicineAdapter_CRUD(t *testing.T) {
	adapter := NewMedicineAdapter()
	ctx := context.Background()

	m := testMedicine("1", "Paracetamol 500mg", 150, 20)
	require.NoError(t, adapter.Create(ctx, m))

	got, err := adapter.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol 500mg", got.Name)
	assert.Equal(t, 150, got.CurrentStock)

	got.Name = "Mutated"
	unchanged, err := adapter.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol 500mg", unchanged.Name)

	m.Price = 300
	require.NoError(t, adapter.Update(ctx, m))
	got, err = adapter.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 300.0, got.Price)

	require.NoError(t, adapter.Delete(ctx, "1"))
	_, err = adapter.GetByID(ctx, "1")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMedicineAdapter_UnknownIDIsNotFound(t *testing.T) {
	adapter := NewMedicineAdapter()
	ctx := context.Background()

	_, err := adapter.GetByID(ctx, "missing")
	assert.True(t, apperrors.IsNotFound(err))

	err = adapter.Update(ctx, testMedicine("missing", "Ghost", 1, 1))
	assert.True(t, apperrors.IsNotFound(err))

	err = adapter.Delete(ctx, "missing")
	assert.True(t, apperrors.IsNotFound(err))
}

func TestMedicineAdapter_ListPreservesInsertionOrder(t *testing.T) {
	adapter := NewMedicineAdapter()
	ctx := context.Background()

	require.NoError(t, adapter.Create(ctx, testMedicine("1", "Paracetamol", 150, 20)))
	require.NoError(t, adapter.Create(ctx, testMedicine("2", "Ibuprofen", 5, 20)))
	require.NoError(t, adapter.Create(ctx, testMedicine("3", "Amoxicillin", 80, 10)))

	all, err := adapter.List(ctx, repositories.MedicineFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "1", all[0].ID)
	assert.Equal(t, "2", all[1].ID)
	assert.Equal(t, "3", all[2].ID)

	low, err := adapter.List(ctx, repositories.MedicineFilter{LowStock: true})
	require.NoError(t, err)
	require.Len(t, low, 1)
	assert.Equal(t, "2", low[0].ID)
}

func TestMedicineAdapter_DecrementStockBulk(t *testing.T) {
	adapter := NewMedicineAdapter()
	ctx := context.Background()

	require.NoError(t, adapter.Create(ctx, testMedicine("1", "Paracetamol", 150, 20)))
	require.NoError(t, adapter.Create(ctx, testMedicine("2", "Ibuprofen", 10, 5)))

	err := adapter.DecrementStockBulk(ctx, map[string]int{"1": 2, "2": 12})
	require.NoError(t, err)

	m1, err := adapter.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 148, m1.CurrentStock)

	// stock may go negative; the adapter does not clamp
	m2, err := adapter.GetByID(ctx, "2")
	require.NoError(t, err)
	assert.Equal(t, -2, m2.CurrentStock)
}

func TestMedicineAdapter_DecrementStockBulkUnknownMedicine(t *testing.T) {
	adapter := NewMedicineAdapter()
	ctx := context.Background()

	require.NoError(t, adapter.Create(ctx, testMedicine("1", "Paracetamol", 150, 20)))

	err := adapter.DecrementStockBulk(ctx, map[string]int{"1": 2, "missing": 1})
	assert.True(t, apperrors.IsNotFound(err))

	// nothing applied when any line is unknown
	m1, err := adapter.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 150, m1.CurrentStock)
}
