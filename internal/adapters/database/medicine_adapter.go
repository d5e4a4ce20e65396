package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	"github.com/santecare/pharmacare-backend/internal/domain/repositories"
	"github.com/santecare/pharmacare-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/santecare/pharmacare-backend/pkg/errors"
)

var medicineColumns = []interface{}{
	"id", "name", "form", "dosage", "barcode", "current_stock", "min_stock",
	"price", "cost", "expiry_date", "supplier", "batch_number", "category",
	"created_at", "updated_at",
}

// MedicineAdapter implements MedicineRepository on PostgreSQL
type MedicineAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewMedicineAdapter creates a new medicine adapter
func NewMedicineAdapter(client *postgres.Client) repositories.MedicineRepository {
	return &MedicineAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func medicineRecord(m *entities.Medicine) goqu.Record {
	return goqu.Record{
		"id":            m.ID,
		"name":          m.Name,
		"form":          m.Form,
		"dosage":        m.Dosage,
		"barcode":       m.Barcode,
		"current_stock": m.CurrentStock,
		"min_stock":     m.MinStock,
		"price":         m.Price,
		"cost":          m.Cost,
		"expiry_date":   m.ExpiryDate,
		"supplier":      m.Supplier,
		"batch_number":  m.BatchNumber,
		"category":      m.Category,
		"created_at":    m.CreatedAt,
		"updated_at":    m.UpdatedAt,
	}
}

func scanMedicine(scanner interface {
	Scan(dest ...interface{}) error
}) (*entities.Medicine, error) {
	m := &entities.Medicine{}
	err := scanner.Scan(
		&m.ID,
		&m.Name,
		&m.Form,
		&m.Dosage,
		&m.Barcode,
		&m.CurrentStock,
		&m.MinStock,
		&m.Price,
		&m.Cost,
		&m.ExpiryDate,
		&m.Supplier,
		&m.BatchNumber,
		&m.Category,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	return m, err
}

// Create creates a new medicine
func (a *MedicineAdapter) Create(ctx context.Context, medicine *entities.Medicine) error {
	query, args, err := a.db.Insert("medicines").Rows(medicineRecord(medicine)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create medicine", err)
	}

	return nil
}

// GetByID retrieves a medicine by ID
func (a *MedicineAdapter) GetByID(ctx context.Context, id string) (*entities.Medicine, error) {
	query, args, err := a.db.Select(medicineColumns...).
		From("medicines").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	medicine, err := scanMedicine(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("medicine with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get medicine", err)
	}

	return medicine, nil
}

// Update replaces a medicine
func (a *MedicineAdapter) Update(ctx context.Context, medicine *entities.Medicine) error {
	medicine.UpdatedAt = time.Now()

	record := medicineRecord(medicine)
	delete(record, "id")
	delete(record, "created_at")

	query, args, err := a.db.Update("medicines").
		Set(record).
		Where(goqu.Ex{"id": medicine.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update medicine", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("medicine with id %s not found", medicine.ID))
	}

	return nil
}

// Delete removes a medicine
func (a *MedicineAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("medicines").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete medicine", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("medicine with id %s not found", id))
	}

	return nil
}

// List retrieves medicines in insertion order
func (a *MedicineAdapter) List(ctx context.Context, filter repositories.MedicineFilter) ([]*entities.Medicine, error) {
	ds := a.db.Select(medicineColumns...).
		From("medicines").
		Order(goqu.I("created_at").Asc())

	if filter.Category != "" {
		ds = ds.Where(goqu.Ex{"category": filter.Category})
	}
	if filter.Supplier != "" {
		ds = ds.Where(goqu.Ex{"supplier": filter.Supplier})
	}
	if filter.LowStock {
		ds = ds.Where(goqu.L("current_stock <= min_stock"))
	}
	if filter.Limit > 0 {
		ds = ds.Limit(uint(filter.Limit))
	}
	if filter.Offset > 0 {
		ds = ds.Offset(uint(filter.Offset))
	}

	query, args, err := ds.ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list medicines", err)
	}
	defer rows.Close()

	var medicines []*entities.Medicine
	for rows.Next() {
		medicine, err := scanMedicine(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan medicine", err)
		}
		medicines = append(medicines, medicine)
	}

	return medicines, nil
}
