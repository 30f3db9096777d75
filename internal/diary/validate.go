package diary

import (
	"regexp"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"records-backend/internal/timeutil"
)

// ValidationErrors maps field names to human-readable messages.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string { return "validation failed" }

// vehiclePattern matches an Indian vehicle registration after normalization:
// state code, district number, series letters, serial number.
var vehiclePattern = regexp.MustCompile(`^[A-Z]{2}\d{2}[A-Z]{1,2}\d{4}$`)

// NormalizePlate upper-cases a registration and strips all whitespace, so
// "mh 12 ab 1234" and "MH12AB1234" are the same plate.
func NormalizePlate(plate string) string {
	return strings.Join(strings.Fields(strings.ToUpper(plate)), "")
}

// ValidPlate reports whether the normalized registration is well-formed.
func ValidPlate(plate string) bool {
	return vehiclePattern.MatchString(plate)
}

// ParseDistance reads a decimal kilometre value, coercing malformed input to
// zero so historic rows with bad data still aggregate.
func ParseDistance(s string) decimal.Decimal {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Validate checks an input and returns a field->message map, or nil when the
// input is acceptable.
func Validate(in Input) ValidationErrors {
	errs := ValidationErrors{}

	if strings.TrimSpace(in.Date) == "" {
		errs["date"] = "date is required"
	} else if _, err := time.Parse("2006-01-02", in.Date); err != nil {
		errs["date"] = "date must be YYYY-MM-DD"
	}
	if strings.TrimSpace(in.TravelFrom) == "" {
		errs["travelFrom"] = "starting place is required"
	}
	if strings.TrimSpace(in.TravelTo) == "" {
		errs["travelTo"] = "destination is required"
	}

	if strings.TrimSpace(in.Distance) == "" {
		errs["distance"] = "distance is required"
	} else if d, err := decimal.NewFromString(strings.TrimSpace(in.Distance)); err != nil {
		errs["distance"] = "distance must be a number"
	} else if !d.IsPositive() {
		errs["distance"] = "distance must be greater than zero"
	}

	plate := NormalizePlate(in.VehicleNo)
	if plate == "" {
		errs["vehicleNo"] = "vehicle number is required"
	} else if !ValidPlate(plate) {
		errs["vehicleNo"] = "vehicle number must look like MH12AB1234"
	}

	dep, depOK := timeutil.Parse(in.Departure)
	if !depOK {
		errs["departure"] = "departure time must be HH:MM AM/PM"
	}
	arr, arrOK := timeutil.Parse(in.Arrival)
	if !arrOK {
		errs["arrival"] = "arrival time must be HH:MM AM/PM"
	}
	if depOK && arrOK {
		// An arrival at or before the departure rolls to the next day, so
		// trip minutes are always positive once both times parse.
		if timeutil.TripMinutes(dep, arr) <= 0 {
			errs["arrival"] = "arrival must be after departure"
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}
