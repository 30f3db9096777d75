package logbook

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ErrInvalidMonth marks a bad YYYY-MM month parameter.
var ErrInvalidMonth = fmt.Errorf("month must be YYYY-MM")

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

// Summary is the monthly rollup of a user's log book.
type Summary struct {
	Count           int
	TotalKilometers decimal.Decimal
	TotalFuel       decimal.Decimal
	TotalOil        decimal.Decimal
	Entries         []Entry
}

// Summarize rolls up a month's entries, preserving their incoming order.
func Summarize(entries []Entry) Summary {
	sum := Summary{Entries: entries, Count: len(entries)}
	sum.TotalKilometers = decimal.Zero
	sum.TotalFuel = decimal.Zero
	sum.TotalOil = decimal.Zero
	for _, e := range entries {
		sum.TotalKilometers = sum.TotalKilometers.Add(e.Kilometers)
		sum.TotalFuel = sum.TotalFuel.Add(e.FuelL)
		sum.TotalOil = sum.TotalOil.Add(e.OilL)
	}
	return sum
}

// Service contains business logic for the vehicle log book.
type Service struct {
	Repo Repo
	// Notify is invoked after every successful mutation so live
	// subscriptions can refresh. May be nil.
	Notify func()
}

func (s *Service) notify() {
	if s.Notify != nil {
		s.Notify()
	}
}

func fromInput(in Input) Entry {
	before := parseQuantity(in.OdoBefore)
	after := parseQuantity(in.OdoAfter)
	return Entry{
		Date:       in.Date,
		FuelL:      parseQuantity(in.Fuel),
		OilL:       parseQuantity(in.Oil),
		Departure:  in.Departure,
		Arrival:    in.Arrival,
		FromPlace:  in.FromPlace,
		ToPlace:    in.ToPlace,
		OdoBefore:  before,
		OdoAfter:   after,
		Kilometers: after.Sub(before),
		Purpose:    in.Purpose,
		DriverName: in.DriverName,
	}
}

// Create validates and stores a new entry for the user. The kilometre count
// is derived from the odometer readings.
func (s *Service) Create(ctx context.Context, userID string, in Input) (Entry, error) {
	if errs := Validate(in); errs != nil {
		return Entry{}, errs
	}

	now := time.Now().UTC()
	e := fromInput(in)
	e.ID = uuid.NewString()
	e.UserID = userID
	e.CreatedAt = now
	e.UpdatedAt = now

	if err := s.Repo.Create(ctx, e); err != nil {
		return Entry{}, err
	}
	s.notify()
	return e, nil
}

// Update validates and overwrites one of the user's entries.
func (s *Service) Update(ctx context.Context, userID, id string, in Input) (Entry, error) {
	if errs := Validate(in); errs != nil {
		return Entry{}, errs
	}

	current, err := s.Repo.GetByID(ctx, userID, id)
	if err != nil {
		return Entry{}, err
	}

	e := fromInput(in)
	e.ID = current.ID
	e.UserID = current.UserID
	e.CreatedAt = current.CreatedAt
	e.UpdatedAt = time.Now().UTC()

	if err := s.Repo.Update(ctx, e); err != nil {
		return Entry{}, err
	}
	s.notify()
	return e, nil
}

// Get returns one of the user's entries.
func (s *Service) Get(ctx context.Context, userID, id string) (Entry, error) {
	return s.Repo.GetByID(ctx, userID, id)
}

// List returns all the user's entries in creation order.
func (s *Service) List(ctx context.Context, userID string) ([]Entry, error) {
	return s.Repo.List(ctx, userID)
}

// Delete removes one of the user's entries.
func (s *Service) Delete(ctx context.Context, userID, id string) error {
	if err := s.Repo.Delete(ctx, userID, id); err != nil {
		return err
	}
	s.notify()
	return nil
}

// MonthEntries returns the user's entries for a YYYY-MM month.
func (s *Service) MonthEntries(ctx context.Context, userID, month string) ([]Entry, error) {
	if !monthPattern.MatchString(month) {
		return nil, ErrInvalidMonth
	}
	return s.Repo.ListByMonth(ctx, userID, month)
}

// MonthSummary rolls up the user's entries for a YYYY-MM month.
func (s *Service) MonthSummary(ctx context.Context, userID, month string) (Summary, error) {
	entries, err := s.MonthEntries(ctx, userID, month)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(entries), nil
}
