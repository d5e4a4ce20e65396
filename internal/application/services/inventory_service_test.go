package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santecare/pharmacare-backend/internal/adapters/database"
	"github.com/santecare/pharmacare-backend/internal/adapters/events"
	"github.com/santecare/pharmacare-backend/internal/adapters/memory"
	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	"github.com/santecare/pharmacare-backend/internal/domain/providers"
	"github.com/santecare/pharmacare-backend/internal/domain/repositories"
	apperrors "github.com/santecare/pharmacare-backend/pkg/errors"
)

func newInventoryFixture() (*InventoryService, *memory.MedicineAdapter) {
	medicines := memory.NewMedicineAdapter()
	sales := memory.NewSaleAdapter(medicines)
	return NewInventoryService(medicines, sales, nil, nil, nil, "ph-1"), medicines
}

func TestInventoryService_AddMedicine(t *testing.T) {
	ctx := context.Background()
	svc, _ := newInventoryFixture()

	medicine := &entities.Medicine{Name: "Doliprane 1000mg", CurrentStock: 150, MinStock: 20, Price: 2.18}
	require.NoError(t, svc.AddMedicine(ctx, medicine))
	assert.NotEmpty(t, medicine.ID)
	assert.False(t, medicine.CreatedAt.IsZero())

	got, err := svc.GetMedicine(ctx, medicine.ID)
	require.NoError(t, err)
	assert.Equal(t, "Doliprane 1000mg", got.Name)
}

func TestInventoryService_AddMedicine_RequiresName(t *testing.T) {
	svc, _ := newInventoryFixture()

	err := svc.AddMedicine(context.Background(), &entities.Medicine{CurrentStock: 10})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
}

func TestInventoryService_UpdateMedicine_Patch(t *testing.T) {
	ctx := context.Background()
	svc, _ := newInventoryFixture()

	medicine := &entities.Medicine{Name: "Spasfon", Price: 3.50, CurrentStock: 40}
	require.NoError(t, svc.AddMedicine(ctx, medicine))

	newPrice := 3.90
	updated, err := svc.UpdateMedicine(ctx, medicine.ID, &entities.MedicinePatch{Price: &newPrice})
	require.NoError(t, err)
	assert.Equal(t, 3.90, updated.Price)
	assert.Equal(t, "Spasfon", updated.Name, "fields absent from the patch stay untouched")
	assert.Equal(t, 40, updated.CurrentStock)
}

func TestInventoryService_UpdateMedicine_NotFound(t *testing.T) {
	svc, _ := newInventoryFixture()

	name := "x"
	_, err := svc.UpdateMedicine(context.Background(), "missing", &entities.MedicinePatch{Name: &name})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestInventoryService_RecordSale_DecrementsStock(t *testing.T) {
	ctx := context.Background()
	svc, _ := newInventoryFixture()

	medicine := &entities.Medicine{Name: "Doliprane 1000mg", CurrentStock: 150, MinStock: 20, Price: 2.18}
	require.NoError(t, svc.AddMedicine(ctx, medicine))

	sale := &entities.Sale{
		Lines: []entities.SaleLine{
			{MedicineID: medicine.ID, Name: medicine.Name, Quantity: 2, UnitPrice: 2.18},
		},
		Total:         4.36,
		PaymentMethod: entities.PaymentMethodCash,
		CashierID:     "3",
		CashierName:   "Marie Traore",
	}

	recorded, err := svc.RecordSale(ctx, sale)
	require.NoError(t, err)
	assert.NotEmpty(t, recorded.ID)

	got, err := svc.GetMedicine(ctx, medicine.ID)
	require.NoError(t, err)
	assert.Equal(t, 148, got.CurrentStock)

	sales, err := svc.ListSales(ctx, repositories.SaleFilter{CashierID: "3"})
	require.NoError(t, err)
	require.Len(t, sales, 1)
	assert.Equal(t, recorded.ID, sales[0].ID)
}

func TestInventoryService_RecordSale_DuplicateIDRejectedWithoutDecrement(t *testing.T) {
	ctx := context.Background()
	svc, _ := newInventoryFixture()

	medicine := &entities.Medicine{Name: "Doliprane 1000mg", CurrentStock: 150, MinStock: 20, Price: 2.18}
	require.NoError(t, svc.AddMedicine(ctx, medicine))

	// Clients may supply their own sale id; replays must not touch stock
	_, err := svc.RecordSale(ctx, &entities.Sale{
		ID:    "s1",
		Lines: []entities.SaleLine{{MedicineID: medicine.ID, Quantity: 2, UnitPrice: 2.18}},
	})
	require.NoError(t, err)

	_, err = svc.RecordSale(ctx, &entities.Sale{
		ID:    "s1",
		Lines: []entities.SaleLine{{MedicineID: medicine.ID, Quantity: 5, UnitPrice: 2.18}},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsConflict(err))

	got, err := svc.GetMedicine(ctx, medicine.ID)
	require.NoError(t, err)
	assert.Equal(t, 148, got.CurrentStock)
}

func TestInventoryService_RecordSale_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newInventoryFixture()

	_, err := svc.RecordSale(ctx, &entities.Sale{})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))

	_, err = svc.RecordSale(ctx, &entities.Sale{
		Lines: []entities.SaleLine{{MedicineID: "m1", Quantity: 0}},
	})
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrorTypeValidation, apperrors.TypeOf(err))
}

func TestInventoryService_RecordSale_UnknownMedicine(t *testing.T) {
	ctx := context.Background()
	svc, _ := newInventoryFixture()

	_, err := svc.RecordSale(ctx, &entities.Sale{
		Lines: []entities.SaleLine{{MedicineID: "missing", Quantity: 1}},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestInventoryService_RecordSale_NegativeStockAllowed(t *testing.T) {
	ctx := context.Background()
	bus := events.NewMemoryEventBus()
	defer bus.Close()

	medicines := memory.NewMedicineAdapter()
	sales := memory.NewSaleAdapter(medicines)
	svc := NewInventoryService(medicines, sales, nil, bus, nil, "ph-1")

	stockCh, err := bus.Subscribe(ctx, providers.EventChannelStock)
	require.NoError(t, err)

	medicine := &entities.Medicine{Name: "Smecta", CurrentStock: 1, MinStock: 5}
	require.NoError(t, svc.AddMedicine(ctx, medicine))

	_, err = svc.RecordSale(ctx, &entities.Sale{
		Lines: []entities.SaleLine{{MedicineID: medicine.ID, Quantity: 3}},
	})
	require.NoError(t, err, "overselling is reported, not rejected")

	got, err := svc.GetMedicine(ctx, medicine.ID)
	require.NoError(t, err)
	assert.Equal(t, -2, got.CurrentStock)

	select {
	case event := <-stockCh:
		assert.Equal(t, entities.PharmacyEventTypeStockLow, event.EventType)
		assert.Equal(t, "ph-1", event.PharmacyID)
		assert.Equal(t, float64(-2), toFloat(event.ChangedFields["current_stock"]))
	case <-time.After(time.Second):
		t.Fatal("expected a stock_low event")
	}
}

// stubCache is an in-process CacheProvider; the decorator caches
// asynchronously, so access is guarded.
type stubCache struct {
	mu      sync.Mutex
	entries map[string][]byte
}

func newStubCache() *stubCache {
	return &stubCache{entries: make(map[string][]byte)}
}

func (c *stubCache) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := c.entries[key]
	if !ok {
		return nil, fmt.Errorf("key not found: %s", key)
	}
	return value, nil
}

func (c *stubCache) Set(ctx context.Context, key string, value []byte, expirationSeconds int) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
	return nil
}

func (c *stubCache) Delete(ctx context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
	return nil
}

func (c *stubCache) Exists(ctx context.Context, key string) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.entries[key]
	return ok, nil
}

func (c *stubCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

func TestInventoryService_RecordSale_InvalidatesCachedMedicine(t *testing.T) {
	ctx := context.Background()

	// Wired as the server does: the cache decorator sits over the medicine
	// repository, while sale decrements write stock beneath it.
	medicines := memory.NewMedicineAdapter()
	cacheStub := newStubCache()
	cached := database.NewCachedMedicineAdapter(medicines, cacheStub)
	sales := memory.NewSaleAdapter(medicines)
	svc := NewInventoryService(cached, sales, nil, nil, nil, "ph-1")

	medicine := &entities.Medicine{Name: "Doliprane 1000mg", CurrentStock: 150, MinStock: 20, Price: 2.18}
	require.NoError(t, svc.AddMedicine(ctx, medicine))

	got, err := svc.GetMedicine(ctx, medicine.ID)
	require.NoError(t, err)
	require.Equal(t, 150, got.CurrentStock)
	require.Eventually(t, func() bool { return cacheStub.size() > 0 }, time.Second, 10*time.Millisecond,
		"the read should prime the cache")

	_, err = svc.RecordSale(ctx, &entities.Sale{
		Lines: []entities.SaleLine{{MedicineID: medicine.ID, Quantity: 2, UnitPrice: 2.18}},
	})
	require.NoError(t, err)

	got, err = svc.GetMedicine(ctx, medicine.ID)
	require.NoError(t, err)
	assert.Equal(t, 148, got.CurrentStock, "post-sale reads must not serve pre-sale stock from cache")
}

func TestInventoryService_SearchMedicines_Fallback(t *testing.T) {
	ctx := context.Background()
	svc, _ := newInventoryFixture()

	require.NoError(t, svc.AddMedicine(ctx, &entities.Medicine{Name: "Doliprane 1000mg", Category: "Antalgique"}))
	require.NoError(t, svc.AddMedicine(ctx, &entities.Medicine{Name: "Amoxicilline 500mg", Category: "Antibiotique"}))

	matched, err := svc.SearchMedicines(ctx, "doli", 10)
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Doliprane 1000mg", matched[0].Name)

	matched, err = svc.SearchMedicines(ctx, "antibio", 10)
	require.NoError(t, err)
	require.Len(t, matched, 1)
	assert.Equal(t, "Amoxicilline 500mg", matched[0].Name)
}

func TestInventoryService_DeleteMedicine_KeepsSaleLines(t *testing.T) {
	ctx := context.Background()
	svc, _ := newInventoryFixture()

	medicine := &entities.Medicine{Name: "Doliprane 1000mg", CurrentStock: 10}
	require.NoError(t, svc.AddMedicine(ctx, medicine))

	sale, err := svc.RecordSale(ctx, &entities.Sale{
		Lines: []entities.SaleLine{{MedicineID: medicine.ID, Name: medicine.Name, Quantity: 1, UnitPrice: 2.18}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteMedicine(ctx, medicine.ID))

	got, err := svc.GetSale(ctx, sale.ID)
	require.NoError(t, err)
	require.Len(t, got.Lines, 1)
	assert.Equal(t, "Doliprane 1000mg", got.Lines[0].Name, "captured line data survives deletion")
}

func toFloat(v interface{}) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case int:
		return float64(n)
	default:
		return 0
	}
}
