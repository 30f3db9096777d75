package diary

import (
	"context"
	"errors"
	"testing"
)

func newTestService() (*Service, *int) {
	notified := 0
	svc := &Service{
		Repo:   NewMemoryRepo(),
		Notify: func() { notified++ },
	}
	return svc, &notified
}

func TestCreateNormalizesPlateAndScopesToUser(t *testing.T) {
	svc, notified := newTestService()
	ctx := context.Background()

	in := validInput()
	in.VehicleNo = "mh 12 ab 1234"
	e, err := svc.Create(ctx, "user-1", in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if e.VehicleNo != "MH12AB1234" {
		t.Fatalf("expected normalized plate, got %q", e.VehicleNo)
	}
	if *notified != 1 {
		t.Fatalf("expected one change notification, got %d", *notified)
	}

	if _, err := svc.Get(ctx, "user-2", e.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("another user must not see the entry, got %v", err)
	}
	if _, err := svc.Get(ctx, "user-1", e.ID); err != nil {
		t.Fatalf("owner Get: %v", err)
	}
}

func TestCreateRejectsInvalidInput(t *testing.T) {
	svc, notified := newTestService()

	in := validInput()
	in.Distance = "not-a-number"
	_, err := svc.Create(context.Background(), "user-1", in)
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if *notified != 0 {
		t.Fatalf("failed create must not notify")
	}
}

func TestMonthSummaryAggregates(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	distances := []string{"10", "20.5"}
	for i, d := range distances {
		in := validInput()
		in.Date = "2024-03-0" + string(rune('1'+i))
		in.Distance = d
		if _, err := svc.Create(ctx, "user-1", in); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}
	// A different month and a different user stay out of the rollup.
	other := validInput()
	other.Date = "2024-04-01"
	if _, err := svc.Create(ctx, "user-1", other); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if _, err := svc.Create(ctx, "user-2", validInput()); err != nil {
		t.Fatalf("Create: %v", err)
	}

	sum, err := svc.MonthSummary(ctx, "user-1", "2024-03")
	if err != nil {
		t.Fatalf("MonthSummary: %v", err)
	}
	if sum.Count != 2 {
		t.Fatalf("expected count 2, got %d", sum.Count)
	}
	if sum.TotalDistance.String() != "30.5" {
		t.Fatalf("expected total 30.5, got %s", sum.TotalDistance)
	}
	if len(sum.Entries) != 2 || sum.Entries[0].Date != "2024-03-01" {
		t.Fatalf("expected entries in creation order, got %+v", sum.Entries)
	}

	if _, err := svc.MonthSummary(ctx, "user-1", "03-2024"); !errors.Is(err, ErrInvalidMonth) {
		t.Fatalf("expected ErrInvalidMonth, got %v", err)
	}
}

func TestSummarizeCoercesMalformedDistanceToZero(t *testing.T) {
	entries := []Entry{
		{ID: "a", DistanceKM: ParseDistance("10")},
		{ID: "b", DistanceKM: ParseDistance("20.5")},
		{ID: "c", DistanceKM: ParseDistance("bad")},
	}

	sum := Summarize(entries)
	if sum.Count != 3 {
		t.Fatalf("malformed distance must still count, got %d", sum.Count)
	}
	if sum.TotalDistance.String() != "30.5" {
		t.Fatalf("expected total 30.5, got %s", sum.TotalDistance)
	}
	if sum.Entries[2].ID != "c" {
		t.Fatalf("order must be preserved")
	}
}

func TestUpdateAndDelete(t *testing.T) {
	svc, notified := newTestService()
	ctx := context.Background()

	e, err := svc.Create(ctx, "user-1", validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	in := validInput()
	in.TravelTo = "Nashik"
	updated, err := svc.Update(ctx, "user-1", e.ID, in)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.TravelTo != "Nashik" {
		t.Fatalf("expected updated destination, got %q", updated.TravelTo)
	}
	if !updated.CreatedAt.Equal(e.CreatedAt) {
		t.Fatalf("update must preserve CreatedAt")
	}

	if err := svc.Delete(ctx, "user-2", e.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("another user must not delete the entry, got %v", err)
	}
	if err := svc.Delete(ctx, "user-1", e.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if *notified != 3 {
		t.Fatalf("expected 3 notifications (create, update, delete), got %d", *notified)
	}
}
