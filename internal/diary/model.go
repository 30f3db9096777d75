package diary

import (
	"time"

	"github.com/shopspring/decimal"
)

// Entry is one travel-diary row. Departure and arrival are 12-hour clock
// strings ("HH:MM AM"); Date is a YYYY-MM-DD string matching the wire format.
type Entry struct {
	ID         string
	UserID     string
	Date       string
	TravelFrom string
	TravelTo   string
	Departure  string
	Arrival    string
	DistanceKM decimal.Decimal
	VehicleNo  string
	Remark     string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// Input carries the caller-editable fields of an entry. Distance arrives as
// a string so validation can produce a field-level message for bad numbers.
type Input struct {
	Date       string
	TravelFrom string
	TravelTo   string
	Departure  string
	Arrival    string
	Distance   string
	VehicleNo  string
	Remark     string
}
