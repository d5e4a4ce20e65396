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

// SaleAdapter implements SaleRepository on PostgreSQL. The sale row, its
// lines, and the stock decrements commit in one transaction.
type SaleAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewSaleAdapter creates a new sale adapter
func NewSaleAdapter(client *postgres.Client) repositories.SaleRepository {
	return &SaleAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// CreateWithStockDecrement records the sale and decrements each referenced
// medicine's stock inside one transaction
func (a *SaleAdapter) CreateWithStockDecrement(ctx context.Context, sale *entities.Sale) error {
	tx, err := a.client.BeginTx(ctx)
	if err != nil {
		return apperrors.NewInternalError("failed to begin transaction", err)
	}
	defer tx.Rollback()

	saleRecord := goqu.Record{
		"id":              sale.ID,
		"date":            sale.Date,
		"total":           sale.Total,
		"payment_method":  sale.PaymentMethod,
		"cashier_id":      sale.CashierID,
		"cashier_name":    sale.CashierName,
		"prescription_id": sql.NullString{String: sale.PrescriptionID, Valid: sale.PrescriptionID != ""},
		"created_at":      sale.CreatedAt,
	}

	query, args, err := a.db.Insert("sales").Rows(saleRecord).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build sale insert", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to insert sale", err)
	}

	for i, line := range sale.Lines {
		lineRecord := goqu.Record{
			"sale_id":     sale.ID,
			"line_no":     i,
			"medicine_id": line.MedicineID,
			"name":        line.Name,
			"quantity":    line.Quantity,
			"unit_price":  line.UnitPrice,
		}

		query, args, err := a.db.Insert("sale_lines").Rows(lineRecord).ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build sale line insert", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return apperrors.NewInternalError("failed to insert sale line", err)
		}

		query, args, err = a.db.Update("medicines").
			Set(goqu.Record{
				"current_stock": goqu.L("current_stock - ?", line.Quantity),
				"updated_at":    time.Now(),
			}).
			Where(goqu.Ex{"id": line.MedicineID}).
			ToSQL()
		if err != nil {
			return apperrors.NewInternalError("failed to build stock decrement", err)
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			return apperrors.NewInternalError("failed to decrement stock", err)
		}

		rowsAffected, err := result.RowsAffected()
		if err != nil {
			return apperrors.NewInternalError("failed to get rows affected", err)
		}
		if rowsAffected == 0 {
			return apperrors.NewNotFoundError(fmt.Sprintf("medicine with id %s not found", line.MedicineID))
		}
	}

	if err := tx.Commit(); err != nil {
		return apperrors.NewInternalError("failed to commit sale", err)
	}

	return nil
}

// GetByID retrieves a sale with its lines
func (a *SaleAdapter) GetByID(ctx context.Context, id string) (*entities.Sale, error) {
	query, args, err := a.db.Select(
		"id", "date", "total", "payment_method", "cashier_id", "cashier_name",
		"prescription_id", "created_at",
	).From("sales").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	sale := &entities.Sale{}
	var prescriptionID sql.NullString

	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&sale.ID,
		&sale.Date,
		&sale.Total,
		&sale.PaymentMethod,
		&sale.CashierID,
		&sale.CashierName,
		&prescriptionID,
		&sale.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("sale with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get sale", err)
	}
	sale.PrescriptionID = prescriptionID.String

	lines, err := a.linesForSale(ctx, id)
	if err != nil {
		return nil, err
	}
	sale.Lines = lines

	return sale, nil
}

func (a *SaleAdapter) linesForSale(ctx context.Context, saleID string) ([]entities.SaleLine, error) {
	query, args, err := a.db.Select("medicine_id", "name", "quantity", "unit_price").
		From("sale_lines").
		Where(goqu.Ex{"sale_id": saleID}).
		Order(goqu.I("line_no").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build lines query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get sale lines", err)
	}
	defer rows.Close()

	var lines []entities.SaleLine
	for rows.Next() {
		var line entities.SaleLine
		if err := rows.Scan(&line.MedicineID, &line.Name, &line.Quantity, &line.UnitPrice); err != nil {
			return nil, apperrors.NewInternalError("failed to scan sale line", err)
		}
		lines = append(lines, line)
	}

	return lines, nil
}

// List retrieves sales in insertion order
func (a *SaleAdapter) List(ctx context.Context, filter repositories.SaleFilter) ([]*entities.Sale, error) {
	ds := a.db.Select(
		"id", "date", "total", "payment_method", "cashier_id", "cashier_name",
		"prescription_id", "created_at",
	).From("sales").
		Order(goqu.I("created_at").Asc())

	if filter.CashierID != "" {
		ds = ds.Where(goqu.Ex{"cashier_id": filter.CashierID})
	}
	if filter.From != nil {
		ds = ds.Where(goqu.C("date").Gte(*filter.From))
	}
	if filter.To != nil {
		ds = ds.Where(goqu.C("date").Lte(*filter.To))
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
		return nil, apperrors.NewInternalError("failed to list sales", err)
	}
	defer rows.Close()

	var sales []*entities.Sale
	for rows.Next() {
		sale := &entities.Sale{}
		var prescriptionID sql.NullString

		err := rows.Scan(
			&sale.ID,
			&sale.Date,
			&sale.Total,
			&sale.PaymentMethod,
			&sale.CashierID,
			&sale.CashierName,
			&prescriptionID,
			&sale.CreatedAt,
		)
		if err != nil {
			return nil, apperrors.NewInternalError("failed to scan sale", err)
		}
		sale.PrescriptionID = prescriptionID.String
		sales = append(sales, sale)
	}

	for _, sale := range sales {
		lines, err := a.linesForSale(ctx, sale.ID)
		if err != nil {
			return nil, err
		}
		sale.Lines = lines
	}

	return sales, nil
}
