package logbook

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one vehicle log-book row. Kilometers is derived from the odometer
// readings and never taken from the caller.
type Entry struct {
	ID         string
	UserID     string
	Date       string
	FuelL      decimal.Decimal
	OilL       decimal.Decimal
	Departure  string
	Arrival    string
	FromPlace  string
	ToPlace    string
	OdoBefore  decimal.Decimal
	OdoAfter   decimal.Decimal
	Kilometers decimal.Decimal
	Purpose    string
	DriverName string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Input carries the caller-editable fields. Numeric values arrive as strings
// so validation can produce field-level messages.
type Input struct {
	Date       string
	Fuel       string
	Oil        string
	Departure  string
	Arrival    string
	FromPlace  string
	ToPlace    string
	OdoBefore  string
	OdoAfter   string
	Purpose    string
	DriverName string
}
