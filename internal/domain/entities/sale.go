package entities

import (
	"time"
)

// PaymentMethod represents how a sale was settled
type PaymentMethod string

const (
	PaymentMethodCash        PaymentMethod = "cash"
	PaymentMethodCard        PaymentMethod = "card"
	PaymentMethodMobileMoney PaymentMethod = "mobile_money"
	PaymentMethodInsurance   PaymentMethod = "insurance"
)

// SaleLine is one line item of a sale. Name and UnitPrice are captured at
// sale time so the receipt survives later medicine edits or deletions.
type SaleLine struct {
	MedicineID string  `json:"medicine_id" db:"medicine_id"`
	Name       string  `json:"name" db:"name"`
	Quantity   int     `json:"quantity" db:"quantity"`
	UnitPrice  float64 `json:"unit_price" db:"unit_price"`
}

// Sale represents a completed point-of-sale transaction
type Sale struct {
	ID             string        `json:"id" db:"id"`
	Date           time.Time     `json:"date" db:"date"`
	Lines          []SaleLine    `json:"lines" db:"-"`
	Total          float64       `json:"total" db:"total"`
	PaymentMethod  PaymentMethod `json:"payment_method" db:"payment_method"`
	CashierID      string        `json:"cashier_id" db:"cashier_id"`
	CashierName    string        `json:"cashier_name" db:"cashier_name"`
	PrescriptionID string        `json:"prescription_id,omitempty" db:"prescription_id"`
	CreatedAt      time.Time     `json:"created_at" db:"created_at"`
}
