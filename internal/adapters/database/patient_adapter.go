package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/lib/pq"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	"github.com/santecare/pharmacare-backend/internal/domain/repositories"
	"github.com/santecare/pharmacare-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/santecare/pharmacare-backend/pkg/errors"
)

// PatientAdapter implements PatientRepository on PostgreSQL
type PatientAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPatientAdapter creates a new patient adapter
func NewPatientAdapter(client *postgres.Client) repositories.PatientRepository {
	return &PatientAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

func patientRecord(p *entities.Patient) goqu.Record {
	return goqu.Record{
		"id":            p.ID,
		"name":          p.Name,
		"phone":         p.Phone,
		"email":         p.Email,
		"date_of_birth": p.DateOfBirth,
		"allergies":     pq.Array(p.Allergies),
		"notes":         sql.NullString{String: p.Notes, Valid: p.Notes != ""},
		"created_at":    p.CreatedAt,
		"updated_at":    p.UpdatedAt,
	}
}

func scanPatient(scanner interface {
	Scan(dest ...interface{}) error
}) (*entities.Patient, error) {
	p := &entities.Patient{}
	var notes sql.NullString

	err := scanner.Scan(
		&p.ID,
		&p.Name,
		&p.Phone,
		&p.Email,
		&p.DateOfBirth,
		pq.Array(&p.Allergies),
		&notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	p.Notes = notes.String
	return p, nil
}

// Create creates a new patient record
func (a *PatientAdapter) Create(ctx context.Context, patient *entities.Patient) error {
	query, args, err := a.db.Insert("patients").Rows(patientRecord(patient)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create patient", err)
	}

	return nil
}

// GetByID retrieves a patient by ID
func (a *PatientAdapter) GetByID(ctx context.Context, id string) (*entities.Patient, error) {
	query, args, err := a.db.Select(
		"id", "name", "phone", "email", "date_of_birth", "allergies",
		"notes", "created_at", "updated_at",
	).From("patients").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	patient, err := scanPatient(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("patient with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get patient", err)
	}

	return patient, nil
}

// Update replaces a patient record
func (a *PatientAdapter) Update(ctx context.Context, patient *entities.Patient) error {
	patient.UpdatedAt = time.Now()

	record := patientRecord(patient)
	delete(record, "id")
	delete(record, "created_at")

	query, args, err := a.db.Update("patients").
		Set(record).
		Where(goqu.Ex{"id": patient.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update patient", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("patient with id %s not found", patient.ID))
	}

	return nil
}

// Delete removes a patient record. Rows elsewhere that reference the
// patient keep their id as a soft reference.
func (a *PatientAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("patients").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete patient", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("patient with id %s not found", id))
	}

	return nil
}

// List retrieves patients in insertion order
func (a *PatientAdapter) List(ctx context.Context) ([]*entities.Patient, error) {
	query, args, err := a.db.Select(
		"id", "name", "phone", "email", "date_of_birth", "allergies",
		"notes", "created_at", "updated_at",
	).From("patients").
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list patients", err)
	}
	defer rows.Close()

	var patients []*entities.Patient
	for rows.Next() {
		patient, err := scanPatient(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan patient", err)
		}
		patients = append(patients, patient)
	}

	return patients, nil
}
