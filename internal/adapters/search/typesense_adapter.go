package search

import (
	"context"
	"fmt"
	"time"

	"github.com/typesense/typesense-go/v2/typesense/api"
	"github.com/typesense/typesense-go/v2/typesense/api/pointer"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	"github.com/santecare/pharmacare-backend/internal/domain/repositories"
	tsclient "github.com/santecare/pharmacare-backend/internal/infrastructure/clients/typesense"
)

// TypesenseAdapter implements medicine search using Typesense
type TypesenseAdapter struct {
	client *tsclient.Client
}

// Ensure TypesenseAdapter implements MedicineSearchRepository
var _ repositories.MedicineSearchRepository = (*TypesenseAdapter)(nil)

// NewTypesenseAdapter creates a new Typesense adapter
func NewTypesenseAdapter(client *tsclient.Client) *TypesenseAdapter {
	return &TypesenseAdapter{client: client}
}

// Index upserts a medicine document into the index
func (a *TypesenseAdapter) Index(ctx context.Context, medicine *entities.Medicine) error {
	document := map[string]interface{}{
		"id":            medicine.ID,
		"name":          medicine.Name,
		"barcode":       medicine.Barcode,
		"category":      medicine.Category,
		"supplier":      medicine.Supplier,
		"price":         medicine.Price,
		"current_stock": medicine.CurrentStock,
		"expiry_date":   medicine.ExpiryDate.Unix(),
		"created_at":    medicine.CreatedAt.Unix(),
	}

	_, err := a.client.Client().Collection(tsclient.MedicinesCollection).Documents().Upsert(ctx, document)
	if err != nil {
		return fmt.Errorf("failed to index medicine: %w", err)
	}

	return nil
}

// Delete removes a medicine from the index
func (a *TypesenseAdapter) Delete(ctx context.Context, id string) error {
	_, err := a.client.Client().Collection(tsclient.MedicinesCollection).Document(id).Delete(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete medicine from index: %w", err)
	}
	return nil
}

// Search queries the index by name, barcode, or category
func (a *TypesenseAdapter) Search(ctx context.Context, query string, limit int) ([]*entities.Medicine, error) {
	if limit <= 0 {
		limit = 20
	}

	searchParams := &api.SearchCollectionParams{
		Q:       pointer.String(query),
		QueryBy: pointer.String("name,barcode,category"),
		PerPage: pointer.Int(limit),
	}

	result, err := a.client.Client().Collection(tsclient.MedicinesCollection).Documents().Search(ctx, searchParams)
	if err != nil {
		return nil, fmt.Errorf("failed to search medicines: %w", err)
	}

	medicines := []*entities.Medicine{}
	if result.Hits == nil {
		return medicines, nil
	}

	for _, hit := range *result.Hits {
		doc := *hit.Document
		medicines = append(medicines, medicineFromDocument(doc))
	}

	return medicines, nil
}

// medicineFromDocument rebuilds the indexed subset of a medicine. Callers
// needing the full record fetch it from the repository by id.
func medicineFromDocument(doc map[string]interface{}) *entities.Medicine {
	m := &entities.Medicine{}

	if v, ok := doc["id"].(string); ok {
		m.ID = v
	}
	if v, ok := doc["name"].(string); ok {
		m.Name = v
	}
	if v, ok := doc["barcode"].(string); ok {
		m.Barcode = v
	}
	if v, ok := doc["category"].(string); ok {
		m.Category = v
	}
	if v, ok := doc["supplier"].(string); ok {
		m.Supplier = v
	}
	if v, ok := doc["price"].(float64); ok {
		m.Price = v
	}
	if v, ok := doc["current_stock"].(float64); ok {
		m.CurrentStock = int(v)
	}
	if v, ok := doc["expiry_date"].(float64); ok {
		m.ExpiryDate = time.Unix(int64(v), 0)
	}
	if v, ok := doc["created_at"].(float64); ok {
		m.CreatedAt = time.Unix(int64(v), 0)
	}

	return m
}
