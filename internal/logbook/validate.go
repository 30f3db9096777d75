package logbook

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"records-backend/internal/timeutil"
)

// ValidationErrors maps field names to human-readable messages.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string { return "validation failed" }

// Validate checks an input and returns a field->message map, or nil when the
// input is acceptable.
func Validate(in Input) ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(in.Date) == "" {
		errs["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		errs["date"] = "date must be YYYY-MM-DD"
	}
	if strings.TrimSpace(in.FromPlace) == "" {
		errs["fromPlace"] = "starting place is required"
	}
	if strings.TrimSpace(in.ToPlace) == "" {
		errs["toPlace"] = "destination is required"
	}

	validateOptionalQuantity(errs, "fuel", in.Fuel)
	validateOptionalQuantity(errs, "oil", in.Oil)

	before, beforeOK := parseOdo(errs, "odoBefore", in.OdoBefore)
	after, afterOK := parseOdo(errs, "odoAfter", in.OdoAfter)
	if beforeOK && afterOK && after.LessThanOrEqual(before) {
		// The cross-field failure lands on the after reading.
		errs["odoAfter"] = "closing odometer must exceed the opening reading"
	}

	dep, depOK := timeutil.Parse(in.Departure)
	if !depOK {
		errs["departure"] = "departure time must be HH:MM AM/PM"
	}
	arr, arrOK := timeutil.Parse(in.Arrival)
	if !arrOK {
		errs["arrival"] = "arrival time must be HH:MM AM/PM"
	}
	if depOK && arrOK && timeutil.TripMinutes(dep, arr) <= 0 {
		errs["arrival"] = "arrival must be after departure"
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func validateOptionalQuantity(errs ValidationErrors, field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		errs[field] = field + " must be a number"
		return
	}
	if d.IsNegative() {
		errs[field] = field + " cannot be negative"
	}
}

func parseOdo(errs ValidationErrors, field, value string) (decimal.Decimal, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		errs[field] = "odometer reading is required"
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(value)
	if err != nil {
		errs[field] = "odometer reading must be a number"
		return decimal.Zero, false
	}
	if d.IsNegative() {
		errs[field] = "odometer reading cannot be negative"
		return decimal.Zero, false
	}
	return d, true
}

// parseQuantity reads an optional non-negative decimal, treating blanks and
// malformed values as zero. Validation has already rejected bad input on the
// write path.
func parseQuantity(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}
