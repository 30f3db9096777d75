package reports

import "time"

// Profile is the per-user report header configuration: who the report is
// for and the five summary day-counts printed in the monthly footer.
type Profile struct {
	UserID         string
	EmployeeName   string
	Designation    string
	Department     string
	SubDepartment  string
	OfficeName     string
	OfficeLocation string
	DaysWorking    int
	DaysOnTour     int
	DaysHoliday    int
	DaysLeave      int
	DaysOther      int
	UpdatedAt      time.Time
}
