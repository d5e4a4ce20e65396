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

func TestSaleAdapter_CreateWithStockDecrement(t *testing.T) {
	medicines := NewMedicineAdapter()
	sales := NewSaleAdapter(medicines)
	ctx := context.Background()

	require.NoError(t, medicines.Create(ctx, testMedicine("1", "Paracetamol 500mg", 150, 20)))

	sale := &entities.Sale{
		ID:   "s-1",
		Date: time.Now(),
		Lines: []entities.SaleLine{
			{MedicineID: "1", Name: "Paracetamol 500mg", Quantity: 2, UnitPrice: 250},
		},
		Total:         500,
		PaymentMethod: entities.PaymentMethodCash,
		CashierID:     "3",
		CashierName:   "Marie Traore",
		CreatedAt:     time.Now(),
	}

	require.NoError(t, sales.CreateWithStockDecrement(ctx, sale))

	all, err := sales.List(ctx, repositories.SaleFilter{})
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, 500.0, all[0].Total)

	m, err := medicines.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 148, m.CurrentStock)
}

func TestSaleAdapter_UnknownMedicineLeavesStoreUnchanged(t *testing.T) {
	medicines := NewMedicineAdapter()
	sales := NewSaleAdapter(medicines)
	ctx := context.Background()

	sale := &entities.Sale{
		ID:    "s-1",
		Lines: []entities.SaleLine{{MedicineID: "missing", Quantity: 1, UnitPrice: 100}},
		Total: 100,
	}

	err := sales.CreateWithStockDecrement(ctx, sale)
	assert.True(t, apperrors.IsNotFound(err))

	all, err := sales.List(ctx, repositories.SaleFilter{})
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestSaleAdapter_DuplicateIDLeavesStockUnchanged(t *testing.T) {
	medicines := NewMedicineAdapter()
	sales := NewSaleAdapter(medicines)
	ctx := context.Background()

	require.NoError(t, medicines.Create(ctx, testMedicine("1", "Paracetamol 500mg", 150, 20)))

	first := &entities.Sale{
		ID:    "s-1",
		Lines: []entities.SaleLine{{MedicineID: "1", Quantity: 2, UnitPrice: 250}},
	}
	require.NoError(t, sales.CreateWithStockDecrement(ctx, first))

	duplicate := &entities.Sale{
		ID:    "s-1",
		Lines: []entities.SaleLine{{MedicineID: "1", Quantity: 5, UnitPrice: 250}},
	}
	err := sales.CreateWithStockDecrement(ctx, duplicate)
	assert.True(t, apperrors.IsConflict(err))

	m, err := medicines.GetByID(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, 148, m.CurrentStock, "a rejected sale must not decrement stock")

	all, err := sales.List(ctx, repositories.SaleFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestSaleAdapter_ListFiltersByCashier(t *testing.T) {
	medicines := NewMedicineAdapter()
	sales := NewSaleAdapter(medicines)
	ctx := context.Background()

	require.NoError(t, medicines.Create(ctx, testMedicine("1", "Paracetamol", 100, 10)))

	for _, s := range []*entities.Sale{
		{ID: "s-1", CashierID: "3", Lines: []entities.SaleLine{{MedicineID: "1", Quantity: 1}}},
		{ID: "s-2", CashierID: "4", Lines: []entities.SaleLine{{MedicineID: "1", Quantity: 1}}},
		{ID: "s-3", CashierID: "3", Lines: []entities.SaleLine{{MedicineID: "1", Quantity: 1}}},
	} {
		require.NoError(t, sales.CreateWithStockDecrement(ctx, s))
	}

	mine, err := sales.List(ctx, repositories.SaleFilter{CashierID: "3"})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "s-1", mine[0].ID)
	assert.Equal(t, "s-3", mine[1].ID)
}
