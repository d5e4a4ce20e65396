package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/doug-martin/goqu/v9"

	"github.com/santecare/pharmacare-backend/internal/domain/entities"
	"github.com/santecare/pharmacare-backend/internal/domain/repositories"
	"github.com/santecare/pharmacare-backend/internal/infrastructure/clients/postgres"
	apperrors "github.com/santecare/pharmacare-backend/pkg/errors"
)

// PharmacyAdapter implements PharmacyRepository on PostgreSQL
type PharmacyAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPharmacyAdapter creates a new pharmacy adapter
func NewPharmacyAdapter(client *postgres.Client) repositories.PharmacyRepository {
	return &PharmacyAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var pharmacyColumns = []interface{}{
	"id", "name", "owner", "email", "country", "region", "status",
	"subscription_type", "revenue", "user_count", "join_date", "last_activity",
}

func pharmacyRecord(p *entities.Pharmacy) goqu.Record {
	return goqu.Record{
		"id":                p.ID,
		"name":              p.Name,
		"owner":             p.Owner,
		"email":             p.Email,
		"country":           p.Country,
		"region":            p.Region,
		"status":            p.Status,
		"subscription_type": p.SubscriptionType,
		"revenue":           p.Revenue,
		"user_count":        p.UserCount,
		"join_date":         p.JoinDate,
		"last_activity":     p.LastActivity,
	}
}

func scanPharmacy(scanner interface {
	Scan(dest ...interface{}) error
}) (*entities.Pharmacy, error) {
	p := &entities.Pharmacy{}
	err := scanner.Scan(
		&p.ID,
		&p.Name,
		&p.Owner,
		&p.Email,
		&p.Country,
		&p.Region,
		&p.Status,
		&p.SubscriptionType,
		&p.Revenue,
		&p.UserCount,
		&p.JoinDate,
		&p.LastActivity,
	)
	return p, err
}

// Create creates a new pharmacy
func (a *PharmacyAdapter) Create(ctx context.Context, pharmacy *entities.Pharmacy) error {
	query, args, err := a.db.Insert("pharmacies").Rows(pharmacyRecord(pharmacy)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create pharmacy", err)
	}

	return nil
}

// GetByID retrieves a pharmacy by ID
func (a *PharmacyAdapter) GetByID(ctx context.Context, id string) (*entities.Pharmacy, error) {
	query, args, err := a.db.Select(pharmacyColumns...).
		From("pharmacies").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	pharmacy, err := scanPharmacy(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("pharmacy with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get pharmacy", err)
	}

	return pharmacy, nil
}

// Update replaces a pharmacy
func (a *PharmacyAdapter) Update(ctx context.Context, pharmacy *entities.Pharmacy) error {
	record := pharmacyRecord(pharmacy)
	delete(record, "id")
	delete(record, "join_date")

	query, args, err := a.db.Update("pharmacies").
		Set(record).
		Where(goqu.Ex{"id": pharmacy.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update pharmacy", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("pharmacy with id %s not found", pharmacy.ID))
	}

	return nil
}

// Delete removes a pharmacy
func (a *PharmacyAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("pharmacies").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete pharmacy", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("pharmacy with id %s not found", id))
	}

	return nil
}

// List retrieves pharmacies in join order
func (a *PharmacyAdapter) List(ctx context.Context, filter repositories.PharmacyFilter) ([]*entities.Pharmacy, error) {
	ds := a.db.Select(pharmacyColumns...).
		From("pharmacies").
		Order(goqu.I("join_date").Asc())

	if filter.Status != "" {
		ds = ds.Where(goqu.Ex{"status": filter.Status})
	}
	if filter.SubscriptionType != "" {
		ds = ds.Where(goqu.Ex{"subscription_type": filter.SubscriptionType})
	}
	if filter.Region != "" {
		ds = ds.Where(goqu.Ex{"region": filter.Region})
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
		return nil, apperrors.NewInternalError("failed to list pharmacies", err)
	}
	defer rows.Close()

	var pharmacies []*entities.Pharmacy
	for rows.Next() {
		pharmacy, err := scanPharmacy(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan pharmacy", err)
		}
		pharmacies = append(pharmacies, pharmacy)
	}

	return pharmacies, nil
}

// PharmacyRequestAdapter implements PharmacyRequestRepository on PostgreSQL
type PharmacyRequestAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewPharmacyRequestAdapter creates a new pharmacy request adapter
func NewPharmacyRequestAdapter(client *postgres.Client) repositories.PharmacyRequestRepository {
	return &PharmacyRequestAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var requestColumns = []interface{}{
	"id", "pharmacy_name", "owner", "email", "country", "requested_plan",
	"status", "submitted_at",
}

func requestRecord(r *entities.PharmacyRequest) goqu.Record {
	return goqu.Record{
		"id":             r.ID,
		"pharmacy_name":  r.PharmacyName,
		"owner":          r.Owner,
		"email":          r.Email,
		"country":        r.Country,
		"requested_plan": r.RequestedPlan,
		"status":         r.Status,
		"submitted_at":   r.SubmittedAt,
	}
}

func scanRequest(scanner interface {
	Scan(dest ...interface{}) error
}) (*entities.PharmacyRequest, error) {
	r := &entities.PharmacyRequest{}
	err := scanner.Scan(
		&r.ID,
		&r.PharmacyName,
		&r.Owner,
		&r.Email,
		&r.Country,
		&r.RequestedPlan,
		&r.Status,
		&r.SubmittedAt,
	)
	return r, err
}

// Create creates a new pharmacy request
func (a *PharmacyRequestAdapter) Create(ctx context.Context, request *entities.PharmacyRequest) error {
	query, args, err := a.db.Insert("pharmacy_requests").Rows(requestRecord(request)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create pharmacy request", err)
	}

	return nil
}

// GetByID retrieves a pharmacy request by ID
func (a *PharmacyRequestAdapter) GetByID(ctx context.Context, id string) (*entities.PharmacyRequest, error) {
	query, args, err := a.db.Select(requestColumns...).
		From("pharmacy_requests").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	request, err := scanRequest(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("pharmacy request with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get pharmacy request", err)
	}

	return request, nil
}

// Update replaces a pharmacy request
func (a *PharmacyRequestAdapter) Update(ctx context.Context, request *entities.PharmacyRequest) error {
	record := requestRecord(request)
	delete(record, "id")
	delete(record, "submitted_at")

	query, args, err := a.db.Update("pharmacy_requests").
		Set(record).
		Where(goqu.Ex{"id": request.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update pharmacy request", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("pharmacy request with id %s not found", request.ID))
	}

	return nil
}

// Delete removes a pharmacy request, used when approval consumes it
func (a *PharmacyRequestAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("pharmacy_requests").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete pharmacy request", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("pharmacy request with id %s not found", id))
	}

	return nil
}

// List retrieves pharmacy requests in submission order
func (a *PharmacyRequestAdapter) List(ctx context.Context) ([]*entities.PharmacyRequest, error) {
	query, args, err := a.db.Select(requestColumns...).
		From("pharmacy_requests").
		Order(goqu.I("submitted_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list pharmacy requests", err)
	}
	defer rows.Close()

	var requests []*entities.PharmacyRequest
	for rows.Next() {
		request, err := scanRequest(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan pharmacy request", err)
		}
		requests = append(requests, request)
	}

	return requests, nil
}

// SystemUserAdapter implements SystemUserRepository on PostgreSQL
type SystemUserAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSystemUserAdapter creates a new system user adapter
func NewSystemUserAdapter(client *postgres.Client) repositories.SystemUserRepository {
	return &SystemUserAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

var systemUserColumns = []interface{}{
	"id", "name", "email", "role", "pharmacy_id", "active", "created_at", "updated_at",
}

func systemUserRecord(u *entities.SystemUser) goqu.Record {
	return goqu.Record{
		"id":          u.ID,
		"name":        u.Name,
		"email":       u.Email,
		"role":        u.Role,
		"pharmacy_id": sql.NullString{String: u.PharmacyID, Valid: u.PharmacyID != ""},
		"active":      u.Active,
		"created_at":  u.CreatedAt,
		"updated_at":  u.UpdatedAt,
	}
}

func scanSystemUser(scanner interface {
	Scan(dest ...interface{}) error
}) (*entities.SystemUser, error) {
	u := &entities.SystemUser{}
	var pharmacyID sql.NullString

	err := scanner.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Role,
		&pharmacyID,
		&u.Active,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	u.PharmacyID = pharmacyID.String
	return u, nil
}

// Create creates a new system user
func (a *SystemUserAdapter) Create(ctx context.Context, user *entities.SystemUser) error {
	query, args, err := a.db.Insert("system_users").Rows(systemUserRecord(user)).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	_, err = a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to create system user", err)
	}

	return nil
}

// GetByID retrieves a system user by ID
func (a *SystemUserAdapter) GetByID(ctx context.Context, id string) (*entities.SystemUser, error) {
	query, args, err := a.db.Select(systemUserColumns...).
		From("system_users").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	user, err := scanSystemUser(a.client.DB().QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("system user with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get system user", err)
	}

	return user, nil
}

// Update replaces a system user
func (a *SystemUserAdapter) Update(ctx context.Context, user *entities.SystemUser) error {
	user.UpdatedAt = time.Now()

	record := systemUserRecord(user)
	delete(record, "id")
	delete(record, "created_at")

	query, args, err := a.db.Update("system_users").
		Set(record).
		Where(goqu.Ex{"id": user.ID}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build update query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to update system user", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("system user with id %s not found", user.ID))
	}

	return nil
}

// Delete removes a system user
func (a *SystemUserAdapter) Delete(ctx context.Context, id string) error {
	query, args, err := a.db.Delete("system_users").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build delete query", err)
	}

	result, err := a.client.DB().ExecContext(ctx, query, args...)
	if err != nil {
		return apperrors.NewInternalError("failed to delete system user", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return apperrors.NewInternalError("failed to get rows affected", err)
	}
	if rowsAffected == 0 {
		return apperrors.NewNotFoundError(fmt.Sprintf("system user with id %s not found", id))
	}

	return nil
}

// List retrieves system users in creation order
func (a *SystemUserAdapter) List(ctx context.Context) ([]*entities.SystemUser, error) {
	query, args, err := a.db.Select(systemUserColumns...).
		From("system_users").
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list system users", err)
	}
	defer rows.Close()

	var users []*entities.SystemUser
	for rows.Next() {
		user, err := scanSystemUser(rows)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan system user", err)
		}
		users = append(users, user)
	}

	return users, nil
}
