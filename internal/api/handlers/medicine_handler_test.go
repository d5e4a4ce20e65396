package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santecare/pharmacare-backend/internal/adapters/memory"
	"github.com/santecare/pharmacare-backend/internal/api/handlers"
	"github.com/santecare/pharmacare-backend/internal/application/services"
	"github.com/santecare/pharmacare-backend/internal/domain/entities"
)

func newInventoryHandlers() (*handlers.MedicineHandler, *handlers.SaleHandler, *services.InventoryService) {
	medicines := memory.NewMedicineAdapter()
	sales := memory.NewSaleAdapter(medicines)
	svc := services.NewInventoryService(medicines, sales, nil, nil, nil, "ph-1")
	return handlers.NewMedicineHandler(svc), handlers.NewSaleHandler(svc), svc
}

func createMedicineViaHandler(t *testing.T, handler *handlers.MedicineHandler, medicine entities.Medicine) entities.Medicine {
	t.Helper()

	body, _ := json.Marshal(medicine)
	req := httptest.NewRequest("POST", "/api/medicines", bytes.NewBuffer(body))
	w := httptest.NewRecorder()

	handler.CreateMedicine(w, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created entities.Medicine
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	return created
}

func TestMedicineHandler_CreateMedicine(t *testing.T) {
	t.Run("successfully creates medicine", func(t *testing.T) {
		handler, _, _ := newInventoryHandlers()

		created := createMedicineViaHandler(t, handler, entities.Medicine{
			Name:         "Doliprane 1000mg",
			CurrentStock: 150,
			MinStock:     20,
			Price:        2.18,
		})
		assert.NotEmpty(t, created.ID)
	})

	t.Run("returns bad request for missing name", func(t *testing.T) {
		handler, _, _ := newInventoryHandlers()

		body, _ := json.Marshal(entities.Medicine{CurrentStock: 10})
		req := httptest.NewRequest("POST", "/api/medicines", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.CreateMedicine(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestMedicineHandler_GetMedicine(t *testing.T) {
	t.Run("returns not found for unknown id", func(t *testing.T) {
		handler, _, _ := newInventoryHandlers()

		req := httptest.NewRequest("GET", "/api/medicines/missing", nil)
		req.SetPathValue("id", "missing")
		w := httptest.NewRecorder()

		handler.GetMedicine(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestMedicineHandler_UpdateMedicine(t *testing.T) {
	handler, _, _ := newInventoryHandlers()
	created := createMedicineViaHandler(t, handler, entities.Medicine{Name: "Spasfon", Price: 3.50})

	body, _ := json.Marshal(map[string]interface{}{"price": 3.90})
	req := httptest.NewRequest("PATCH", "/api/medicines/"+created.ID, bytes.NewBuffer(body))
	req.SetPathValue("id", created.ID)
	w := httptest.NewRecorder()

	handler.UpdateMedicine(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var updated entities.Medicine
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &updated))
	assert.Equal(t, 3.90, updated.Price)
	assert.Equal(t, "Spasfon", updated.Name)
}

func TestSaleHandler_RecordSale(t *testing.T) {
	t.Run("successfully records sale and decrements stock", func(t *testing.T) {
		medicineHandler, saleHandler, svc := newInventoryHandlers()
		created := createMedicineViaHandler(t, medicineHandler, entities.Medicine{
			Name:         "Doliprane 1000mg",
			CurrentStock: 150,
			MinStock:     20,
			Price:        2.18,
		})

		body, _ := json.Marshal(entities.Sale{
			Lines: []entities.SaleLine{
				{MedicineID: created.ID, Name: created.Name, Quantity: 2, UnitPrice: 2.18},
			},
			Total:         4.36,
			PaymentMethod: entities.PaymentMethodCash,
			CashierID:     "3",
		})
		req := httptest.NewRequest("POST", "/api/sales", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		saleHandler.RecordSale(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)

		medicine, err := svc.GetMedicine(req.Context(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, 148, medicine.CurrentStock)
	})

	t.Run("returns not found for unknown medicine", func(t *testing.T) {
		_, saleHandler, _ := newInventoryHandlers()

		body, _ := json.Marshal(entities.Sale{
			Lines: []entities.SaleLine{{MedicineID: "missing", Quantity: 1}},
		})
		req := httptest.NewRequest("POST", "/api/sales", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		saleHandler.RecordSale(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("returns bad request for empty sale", func(t *testing.T) {
		_, saleHandler, _ := newInventoryHandlers()

		body, _ := json.Marshal(entities.Sale{})
		req := httptest.NewRequest("POST", "/api/sales", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		saleHandler.RecordSale(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
