package database

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	"github.com/santecare/pharmacare-backend/internal/domain/providers"
	"github.com/santecare/pharmacare-backend/internal/domain/repositories"
)

// CachedMedicineAdapter wraps a MedicineRepository with caching
type CachedMedicineAdapter struct {
	adapter repositories.MedicineRepository
	cache   providers.CacheProvider
}

// NewCachedMedicineAdapter creates a new cached medicine adapter
func NewCachedMedicineAdapter(adapter repositories.MedicineRepository, cache providers.CacheProvider) repositories.MedicineRepository {
	return &CachedMedicineAdapter{
		adapter: adapter,
		cache:   cache,
	}
}

// Cache TTLs (in seconds)
const (
	medicineByIDTTL  = 300 // 5 minutes for single medicine
	medicinesListTTL = 120 // 2 minutes for lists; stock moves often
)

func medicineCacheKey(id string) string {
	return fmt.Sprintf("medicine:%s", id)
}

func medicinesListCacheKey(filter repositories.MedicineFilter) string {
	return fmt.Sprintf("medicines:list:%s:%s:%t:%d:%d",
		filter.Category, filter.Supplier, filter.LowStock, filter.Limit, filter.Offset)
}

// Create creates a medicine and invalidates list caches
func (a *CachedMedicineAdapter) Create(ctx context.Context, medicine *entities.Medicine) error {
	if err := a.adapter.Create(ctx, medicine); err != nil {
		return err
	}
	a.Invalidate(ctx, medicine.ID)
	return nil
}

// GetByID retrieves a medicine by ID with caching
func (a *CachedMedicineAdapter) GetByID(ctx context.Context, id string) (*entities.Medicine, error) {
	cacheKey := medicineCacheKey(id)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var medicine entities.Medicine
		if err := json.Unmarshal(cached, &medicine); err == nil {
			return &medicine, nil
		}
		log.Printf("Failed to unmarshal cached medicine %s: %v", id, err)
	}

	medicine, err := a.adapter.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Update cache asynchronously to avoid blocking the response
	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(medicine); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, medicineByIDTTL); err != nil {
				log.Printf("Failed to cache medicine %s: %v", id, err)
			}
		}
	}()

	return medicine, nil
}

// Update replaces a medicine and invalidates its cache entry
func (a *CachedMedicineAdapter) Update(ctx context.Context, medicine *entities.Medicine) error {
	if err := a.adapter.Update(ctx, medicine); err != nil {
		return err
	}
	a.Invalidate(ctx, medicine.ID)
	return nil
}

// Delete removes a medicine and invalidates its cache entry
func (a *CachedMedicineAdapter) Delete(ctx context.Context, id string) error {
	if err := a.adapter.Delete(ctx, id); err != nil {
		return err
	}
	a.Invalidate(ctx, id)
	return nil
}

// List retrieves medicines with caching
func (a *CachedMedicineAdapter) List(ctx context.Context, filter repositories.MedicineFilter) ([]*entities.Medicine, error) {
	cacheKey := medicinesListCacheKey(filter)

	if cached, err := a.cache.Get(ctx, cacheKey); err == nil {
		var medicines []*entities.Medicine
		if err := json.Unmarshal(cached, &medicines); err == nil {
			return medicines, nil
		}
	}

	medicines, err := a.adapter.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	go func() {
		bgCtx := context.Background()
		if data, err := json.Marshal(medicines); err == nil {
			if err := a.cache.Set(bgCtx, cacheKey, data, medicinesListTTL); err != nil {
				log.Printf("Failed to cache medicine list: %v", err)
			}
		}
	}()

	return medicines, nil
}

// Invalidate drops the per-id entry. Exported because sale decrements
// bypass this decorator and write stock underneath it. List entries are
// left to their short TTL; enumerating every filter combination is not
// worth the bookkeeping.
func (a *CachedMedicineAdapter) Invalidate(ctx context.Context, id string) {
	if err := a.cache.Delete(ctx, medicineCacheKey(id)); err != nil {
		log.Printf("Failed to invalidate medicine cache %s: %v", id, err)
	}
}
