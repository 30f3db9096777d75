package reports

import (
	"context"
	"database/sql"
	"errors"
)

// PGStore implements ProfileStore using Postgres.
type PGStore struct {
	DB *sql.DB
}

// Get returns the user's saved profile.
func (s *PGStore) Get(ctx context.Context, userID string) (Profile, error) {
	const query = `
SELECT user_id, employee_name, designation, department, sub_department,
       office_name, office_location,
       days_working, days_on_tour, days_holiday, days_leave, days_other,
       updated_at
FROM report_profiles WHERE user_id = $1`
	var p Profile
	var employeeName, designation, department, subDepartment sql.NullString
	var officeName, officeLocation sql.NullString
	err := s.DB.QueryRowContext(ctx, query, userID).Scan(
		&p.UserID,
		&employeeName,
		&designation,
		&department,
		&subDepartment,
		&officeName,
		&officeLocation,
		&p.DaysWorking,
		&p.DaysOnTour,
		&p.DaysHoliday,
		&p.DaysLeave,
		&p.DaysOther,
		&p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Profile{}, ErrNotFound
		}
		return Profile{}, err
	}
	p.EmployeeName = employeeName.String
	p.Designation = designation.String
	p.Department = department.String
	p.SubDepartment = subDepartment.String
	p.OfficeName = officeName.String
	p.OfficeLocation = officeLocation.String
	return p, nil
}

// Put inserts or replaces the user's profile.
func (s *PGStore) Put(ctx context.Context, p Profile) error {
	const query = `
INSERT INTO report_profiles (
    user_id, employee_name, designation, department, sub_department,
    office_name, office_location,
    days_working, days_on_tour, days_holiday, days_leave, days_other,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, now())
ON CONFLICT (user_id) DO UPDATE SET
    employee_name = EXCLUDED.employee_name,
    designation = EXCLUDED.designation,
    department = EXCLUDED.department,
    sub_department = EXCLUDED.sub_department,
    office_name = EXCLUDED.office_name,
    office_location = EXCLUDED.office_location,
    days_working = EXCLUDED.days_working,
    days_on_tour = EXCLUDED.days_on_tour,
    days_holiday = EXCLUDED.days_holiday,
    days_leave = EXCLUDED.days_leave,
    days_other = EXCLUDED.days_other,
    updated_at = now()`
	_, err := s.DB.ExecContext(ctx, query,
		p.UserID,
		p.EmployeeName,
		p.Designation,
		p.Department,
		p.SubDepartment,
		p.OfficeName,
		p.OfficeLocation,
		p.DaysWorking,
		p.DaysOnTour,
		p.DaysHoliday,
		p.DaysLeave,
		p.DaysOther,
	)
	return err
}

var _ ProfileStore = (*PGStore)(nil)
