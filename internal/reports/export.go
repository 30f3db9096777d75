package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"records-backend/internal/diary"
	"records-backend/internal/logbook"
	"records-backend/internal/timeutil"
)

const sheetName = "Sheet1"

// DiaryWorkbook renders a month of travel-diary entries as a spreadsheet:
// profile header, one row per entry with the computed trip duration, and a
// summary footer.
func DiaryWorkbook(p Profile, month string, entries []diary.Entry) (*excelize.File, error) {
	f := excelize.NewFile()

	row := writeProfileHeader(f, p, "Monthly Travel Diary", month)

	writeRow(f, row, "Date", "From", "To", "Departure", "Arrival", "Duration", "Distance (km)", "Vehicle No", "Remark")
	row++

	sum := diary.Summarize(entries)
	for _, e := range entries {
		writeRow(f, row,
			e.Date,
			e.TravelFrom,
			e.TravelTo,
			e.Departure,
			e.Arrival,
			timeutil.Duration(e.Departure, e.Arrival),
			e.DistanceKM.String(),
			e.VehicleNo,
			e.Remark,
		)
		row++
	}

	row++
	writeRow(f, row, "Total entries", sum.Count)
	row++
	writeRow(f, row, "Total distance (km)", sum.TotalDistance.String())
	row++
	writeSummaryDays(f, row, p)

	return f, nil
}

// LogbookWorkbook renders a month of vehicle log-book entries as a
// spreadsheet with the same header/footer layout as the diary report.
func LogbookWorkbook(p Profile, month string, entries []logbook.Entry) (*excelize.File, error) {
	f := excelize.NewFile()

	row := writeProfileHeader(f, p, "Monthly Vehicle Log Book", month)

	writeRow(f, row, "Date", "From", "To", "Departure", "Arrival", "Duration",
		"Odo Before", "Odo After", "Kilometers", "Fuel (L)", "Oil (L)", "Purpose", "Driver")
	row++

	sum := logbook.Summarize(entries)
	for _, e := range entries {
		writeRow(f, row,
			e.Date,
			e.FromPlace,
			e.ToPlace,
			e.Departure,
			e.Arrival,
			timeutil.Duration(e.Departure, e.Arrival),
			e.OdoBefore.String(),
			e.OdoAfter.String(),
			e.Kilometers.StringFixed(1),
			e.FuelL.String(),
			e.OilL.String(),
			e.Purpose,
			e.DriverName,
		)
		row++
	}

	row++
	writeRow(f, row, "Total entries", sum.Count)
	row++
	writeRow(f, row, "Total kilometers", sum.TotalKilometers.StringFixed(1))
	row++
	writeRow(f, row, "Total fuel (L)", sum.TotalFuel.String())
	row++
	writeRow(f, row, "Total oil (L)", sum.TotalOil.String())
	row++
	writeSummaryDays(f, row, p)

	return f, nil
}

// writeProfileHeader fills the identification block and returns the first
// free row after it.
func writeProfileHeader(f *excelize.File, p Profile, title, month string) int {
	writeRow(f, 1, title, month)
	writeRow(f, 2, "Employee", p.EmployeeName)
	writeRow(f, 3, "Designation", p.Designation)
	writeRow(f, 4, "Department", joinNonEmpty(p.Department, p.SubDepartment))
	writeRow(f, 5, "Office", joinNonEmpty(p.OfficeName, p.OfficeLocation))
	return 7
}

func writeSummaryDays(f *excelize.File, row int, p Profile) {
	writeRow(f, row, "Working days", p.DaysWorking)
	writeRow(f, row+1, "Days on tour", p.DaysOnTour)
	writeRow(f, row+2, "Holidays", p.DaysHoliday)
	writeRow(f, row+3, "Leave days", p.DaysLeave)
	writeRow(f, row+4, "Other days", p.DaysOther)
}

func writeRow(f *excelize.File, row int, values ...any) {
	for i, v := range values {
		cell, err := excelize.CoordinatesToCellName(i+1, row)
		if err != nil {
			continue
		}
		_ = f.SetCellValue(sheetName, cell, v)
	}
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return fmt.Sprintf("%s / %s", a, b)
	}
}
