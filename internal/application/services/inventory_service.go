package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	"github.com/santecare/pharmacare-backend/internal/domain/providers"
	"github.com/santecare/pharmacare-backend/internal/domain/repositories"
	"github.com/santecare/pharmacare-backend/internal/infrastructure/observability"
	apperrors "github.com/santecare/pharmacare-backend/pkg/errors"
)

// InventoryService handles medicines and point-of-sale transactions
type InventoryService struct {
	medicines  repositories.MedicineRepository
	sales      repositories.SaleRepository
	search     repositories.MedicineSearchRepository
	bus        providers.EventBus
	metrics    *observability.Metrics
	pharmacyID string
}

// NewInventoryService creates a new inventory service. search, bus, and
// metrics may be nil; the corresponding side effects are skipped.
func NewInventoryService(
	medicines repositories.MedicineRepository,
	sales repositories.SaleRepository,
	search repositories.MedicineSearchRepository,
	bus providers.EventBus,
	metrics *observability.Metrics,
	pharmacyID string,
) *InventoryService {
	return &InventoryService{
		medicines:  medicines,
		sales:      sales,
		search:     search,
		bus:        bus,
		metrics:    metrics,
		pharmacyID: pharmacyID,
	}
}

// AddMedicine creates a medicine, generating an id when absent, and indexes it
func (s *InventoryService) AddMedicine(ctx context.Context, medicine *entities.Medicine) error {
	if medicine.Name == "" {
		return apperrors.NewValidationError("medicine name is required")
	}

	if medicine.ID == "" {
		medicine.ID = uuid.New().String()
	}
	now := time.Now()
	if medicine.CreatedAt.IsZero() {
		medicine.CreatedAt = now
	}
	medicine.UpdatedAt = now

	if err := s.medicines.Create(ctx, medicine); err != nil {
		return err
	}

	s.index(ctx, medicine)
	return nil
}

// UpdateMedicine merges the patch into the medicine. Unknown id is a
// not-found error.
func (s *InventoryService) UpdateMedicine(ctx context.Context, id string, patch *entities.MedicinePatch) (*entities.Medicine, error) {
	medicine, err := s.medicines.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patch.Apply(medicine)
	if err := s.medicines.Update(ctx, medicine); err != nil {
		return nil, err
	}

	s.index(ctx, medicine)
	return medicine, nil
}

// DeleteMedicine removes a medicine. Sales and prescriptions referencing it
// keep their captured line data.
func (s *InventoryService) DeleteMedicine(ctx context.Context, id string) error {
	if err := s.medicines.Delete(ctx, id); err != nil {
		return err
	}

	if s.search != nil {
		if err := s.search.Delete(ctx, id); err != nil {
			observability.LoggerFromContext(ctx).Warn().Err(err).
				Str("medicine_id", id).
				Msg("failed to remove medicine from search index")
		}
	}
	return nil
}

// GetMedicine retrieves a medicine by ID
func (s *InventoryService) GetMedicine(ctx context.Context, id string) (*entities.Medicine, error) {
	return s.medicines.GetByID(ctx, id)
}

// ListMedicines retrieves medicines
func (s *InventoryService) ListMedicines(ctx context.Context, filter repositories.MedicineFilter) ([]*entities.Medicine, error) {
	return s.medicines.List(ctx, filter)
}

// SearchMedicines queries the search index, falling back to a repository
// scan when no index is configured
func (s *InventoryService) SearchMedicines(ctx context.Context, query string, limit int) ([]*entities.Medicine, error) {
	if s.search != nil {
		return s.search.Search(ctx, query, limit)
	}

	all, err := s.medicines.List(ctx, repositories.MedicineFilter{})
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(query)
	matched := []*entities.Medicine{}
	for _, m := range all {
		if strings.Contains(strings.ToLower(m.Name), q) ||
			strings.Contains(strings.ToLower(m.Barcode), q) ||
			strings.Contains(strings.ToLower(m.Category), q) {
			matched = append(matched, m)
			if limit > 0 && len(matched) == limit {
				break
			}
		}
	}
	return matched, nil
}

// RecordSale appends the sale and decrements each referenced medicine's
// stock in the same logical operation. A sale is never recorded without its
// decrement. Stock may go negative; that is reported, not rejected.
func (s *InventoryService) RecordSale(ctx context.Context, sale *entities.Sale) (*entities.Sale, error) {
	if len(sale.Lines) == 0 {
		return nil, apperrors.NewValidationError("sale requires at least one line")
	}
	for _, line := range sale.Lines {
		if line.Quantity <= 0 {
			return nil, apperrors.NewValidationError("sale line quantity must be positive")
		}
	}

	if sale.ID == "" {
		sale.ID = uuid.New().String()
	}
	now := time.Now()
	if sale.Date.IsZero() {
		sale.Date = now
	}
	if sale.CreatedAt.IsZero() {
		sale.CreatedAt = now
	}

	if err := s.sales.CreateWithStockDecrement(ctx, sale); err != nil {
		return nil, err
	}

	s.invalidateSoldLines(ctx, sale)

	if s.metrics != nil {
		s.metrics.SalesRecorded.Add(ctx, 1)
	}
	s.publish(ctx, entities.NewPharmacyEvent(s.pharmacyID, entities.PharmacyEventTypeSaleRecorded, map[string]interface{}{
		"sale_id": sale.ID,
		"total":   sale.Total,
	}))

	s.reportStockLevels(ctx, sale)
	return sale, nil
}

// cacheInvalidator is implemented by caching repository decorators. Sale
// decrements write stock beneath the decorator, so sold entries must be
// dropped explicitly or reads serve pre-sale stock until the TTL expires.
type cacheInvalidator interface {
	Invalidate(ctx context.Context, id string)
}

// invalidateSoldLines drops cached entries for every medicine the sale touched
func (s *InventoryService) invalidateSoldLines(ctx context.Context, sale *entities.Sale) {
	invalidator, ok := s.medicines.(cacheInvalidator)
	if !ok {
		return
	}

	seen := make(map[string]struct{}, len(sale.Lines))
	for _, line := range sale.Lines {
		if _, dup := seen[line.MedicineID]; dup {
			continue
		}
		seen[line.MedicineID] = struct{}{}
		invalidator.Invalidate(ctx, line.MedicineID)
	}
}

// reportStockLevels checks post-sale levels and raises low-stock signals
func (s *InventoryService) reportStockLevels(ctx context.Context, sale *entities.Sale) {
	logger := observability.LoggerFromContext(ctx)

	seen := make(map[string]struct{}, len(sale.Lines))
	for _, line := range sale.Lines {
		if _, ok := seen[line.MedicineID]; ok {
			continue
		}
		seen[line.MedicineID] = struct{}{}

		medicine, err := s.medicines.GetByID(ctx, line.MedicineID)
		if err != nil {
			logger.Warn().Err(err).Str("medicine_id", line.MedicineID).Msg("failed to read post-sale stock")
			continue
		}

		s.index(ctx, medicine)

		if medicine.CurrentStock < 0 {
			logger.Warn().
				Str("medicine_id", medicine.ID).
				Int("current_stock", medicine.CurrentStock).
				Msg("stock went negative")
		}

		if medicine.BelowMinStock() {
			if s.metrics != nil {
				s.metrics.StockLowAlerts.Add(ctx, 1)
			}
			s.publish(ctx, entities.NewPharmacyEvent(s.pharmacyID, entities.PharmacyEventTypeStockLow, map[string]interface{}{
				"medicine_id":   medicine.ID,
				"current_stock": medicine.CurrentStock,
				"min_stock":     medicine.MinStock,
			}))
		}
	}
}

// GetSale retrieves a sale by ID
func (s *InventoryService) GetSale(ctx context.Context, id string) (*entities.Sale, error) {
	return s.sales.GetByID(ctx, id)
}

// ListSales retrieves sales
func (s *InventoryService) ListSales(ctx context.Context, filter repositories.SaleFilter) ([]*entities.Sale, error) {
	return s.sales.List(ctx, filter)
}

// index upserts a medicine into the search index, logging on failure.
// Indexing is eventually consistent; it never fails the write.
func (s *InventoryService) index(ctx context.Context, medicine *entities.Medicine) {
	if s.search == nil {
		return
	}
	if err := s.search.Index(ctx, medicine); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("medicine_id", medicine.ID).
			Msg("failed to index medicine")
	}
}

func (s *InventoryService) publish(ctx context.Context, event *entities.PharmacyEvent) {
	if s.bus == nil {
		return
	}

	channel := providers.EventChannelPharmacyUpdates
	switch event.EventType {
	case entities.PharmacyEventTypeStockLow:
		channel = providers.EventChannelStock
	case entities.PharmacyEventTypePatientWaiting,
		entities.PharmacyEventTypePrescriptionCreated,
		entities.PharmacyEventTypePrescriptionValidated,
		entities.PharmacyEventTypePrescriptionDispensed:
		channel = providers.EventChannelTelepharmacy
	}

	if err := s.bus.Publish(ctx, channel, event); err != nil {
		observability.LoggerFromContext(ctx).Warn().Err(err).
			Str("event_type", string(event.EventType)).
			Msg("failed to publish event")
	}
}
