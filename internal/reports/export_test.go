package reports

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"records-backend/internal/diary"
	"records-backend/internal/logbook"
)

func testProfile() Profile {
	return Profile{
		UserID:       "user-1",
		EmployeeName: "A. Clerk",
		Designation:  "Junior Engineer",
		Department:   "Water Supply",
		DaysWorking:  22,
		DaysOnTour:   3,
	}
}

// roundTrip writes the workbook and opens it again, exercising the same path
// the download handler streams.
func roundTrip(t *testing.T, f *excelize.File) *excelize.File {
	t.Helper()
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	out, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	return out
}

func cell(t *testing.T, f *excelize.File, ref string) string {
	t.Helper()
	v, err := f.GetCellValue(sheetName, ref)
	if err != nil {
		t.Fatalf("GetCellValue(%s): %v", ref, err)
	}
	return v
}

func TestDiaryWorkbookLayout(t *testing.T) {
	entries := []diary.Entry{
		{
			Date:       "2024-03-01",
			TravelFrom: "Pune",
			TravelTo:   "Mumbai",
			Departure:  "09:00 AM",
			Arrival:    "11:30 AM",
			DistanceKM: decimal.RequireFromString("148.5"),
			VehicleNo:  "MH12AB1234",
		},
		{
			Date:       "2024-03-02",
			TravelFrom: "Mumbai",
			TravelTo:   "Pune",
			Departure:  "11:00 PM",
			Arrival:    "01:00 AM",
			DistanceKM: decimal.RequireFromString("150"),
			VehicleNo:  "MH12AB1234",
		},
	}

	f, err := DiaryWorkbook(testProfile(), "2024-03", entries)
	if err != nil {
		t.Fatalf("DiaryWorkbook: %v", err)
	}
	f = roundTrip(t, f)

	if got := cell(t, f, "A1"); got != "Monthly Travel Diary" {
		t.Fatalf("title: got %q", got)
	}
	if got := cell(t, f, "B2"); got != "A. Clerk" {
		t.Fatalf("employee: got %q", got)
	}
	// First entry row sits under the column header at row 7.
	if got := cell(t, f, "A8"); got != "2024-03-01" {
		t.Fatalf("first entry date: got %q", got)
	}
	if got := cell(t, f, "F8"); got != "2h 30m" {
		t.Fatalf("duration: got %q", got)
	}
	// Overnight trip duration.
	if got := cell(t, f, "F9"); got != "2h 0m" {
		t.Fatalf("overnight duration: got %q", got)
	}
	// Footer totals.
	if got := cell(t, f, "B11"); got != "2" {
		t.Fatalf("total entries: got %q", got)
	}
	if got := cell(t, f, "B12"); got != "298.5" {
		t.Fatalf("total distance: got %q", got)
	}
	if got := cell(t, f, "B13"); got != "22" {
		t.Fatalf("working days: got %q", got)
	}
}

func TestLogbookWorkbookTotals(t *testing.T) {
	entries := []logbook.Entry{
		{
			Date:       "2024-03-05",
			FromPlace:  "Depot",
			ToPlace:    "Site",
			Departure:  "08:30 AM",
			Arrival:    "05:15 PM",
			OdoBefore:  decimal.RequireFromString("1000"),
			OdoAfter:   decimal.RequireFromString("1050"),
			Kilometers: decimal.RequireFromString("50"),
			FuelL:      decimal.RequireFromString("12.5"),
		},
	}

	f, err := LogbookWorkbook(testProfile(), "2024-03", entries)
	if err != nil {
		t.Fatalf("LogbookWorkbook: %v", err)
	}
	f = roundTrip(t, f)

	if got := cell(t, f, "A1"); got != "Monthly Vehicle Log Book" {
		t.Fatalf("title: got %q", got)
	}
	if got := cell(t, f, "I8"); got != "50.0" {
		t.Fatalf("kilometers cell: got %q", got)
	}
	if got := cell(t, f, "B10"); got != "1" {
		t.Fatalf("total entries: got %q", got)
	}
	if got := cell(t, f, "B11"); got != "50.0" {
		t.Fatalf("total kilometers: got %q", got)
	}
	if got := cell(t, f, "B12"); got != "12.5" {
		t.Fatalf("total fuel: got %q", got)
	}
}
