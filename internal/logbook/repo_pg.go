package logbook

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const entryColumns = `id, user_id, entry_date, fuel_l, oil_l, departure, arrival,
from_place, to_place, odo_before, odo_after, kilometers, purpose, driver_name,
created_at, updated_at`

// Create inserts a new entry.
func (r *PGRepo) Create(ctx context.Context, e Entry) error {
	const query = `
INSERT INTO logbook_entries (
    id, user_id, entry_date, fuel_l, oil_l, departure, arrival,
    from_place, to_place, odo_before, odo_after, kilometers, purpose,
    driver_name, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.DB.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		e.Date,
		e.FuelL.String(),
		e.OilL.String(),
		e.Departure,
		e.Arrival,
		e.FromPlace,
		e.ToPlace,
		e.OdoBefore.String(),
		e.OdoAfter.String(),
		e.Kilometers.String(),
		nullable(e.Purpose),
		nullable(e.DriverName),
		e.CreatedAt,
		e.UpdatedAt,
	)
	return err
}

// Update overwrites an entry owned by the same user.
func (r *PGRepo) Update(ctx context.Context, e Entry) error {
	const query = `
UPDATE logbook_entries SET
    entry_date = $1, fuel_l = $2, oil_l = $3, departure = $4, arrival = $5,
    from_place = $6, to_place = $7, odo_before = $8, odo_after = $9,
    kilometers = $10, purpose = $11, driver_name = $12, updated_at = $13
WHERE id = $14 AND user_id = $15`
	res, err := r.DB.ExecContext(ctx, query,
		e.Date,
		e.FuelL.String(),
		e.OilL.String(),
		e.Departure,
		e.Arrival,
		e.FromPlace,
		e.ToPlace,
		e.OdoBefore.String(),
		e.OdoAfter.String(),
		e.Kilometers.String(),
		nullable(e.Purpose),
		nullable(e.DriverName),
		e.UpdatedAt,
		e.ID,
		e.UserID,
	)
	if err != nil {
		return err
	}
	return requireRow(res)
}

// GetByID returns one entry owned by the user.
func (r *PGRepo) GetByID(ctx context.Context, userID, id string) (Entry, error) {
	const query = `SELECT ` + entryColumns + ` FROM logbook_entries WHERE id = $1 AND user_id = $2`
	rows, err := r.DB.QueryContext(ctx, query, id, userID)
	if err != nil {
		return Entry{}, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Entry{}, err
		}
		return Entry{}, ErrNotFound
	}
	return scanEntry(rows)
}

// ListByMonth returns the user's entries for a YYYY-MM month in creation order.
func (r *PGRepo) ListByMonth(ctx context.Context, userID, month string) ([]Entry, error) {
	const query = `SELECT ` + entryColumns + ` FROM logbook_entries
WHERE user_id = $1 AND to_char(entry_date, 'YYYY-MM') = $2
ORDER BY created_at ASC, id ASC`
	return r.queryEntries(ctx, query, userID, month)
}

// List returns all the user's entries in creation order.
func (r *PGRepo) List(ctx context.Context, userID string) ([]Entry, error) {
	const query = `SELECT ` + entryColumns + ` FROM logbook_entries
WHERE user_id = $1
ORDER BY created_at ASC, id ASC`
	return r.queryEntries(ctx, query, userID)
}

// Delete removes an entry owned by the user.
func (r *PGRepo) Delete(ctx context.Context, userID, id string) error {
	res, err := r.DB.ExecContext(ctx,
		`DELETE FROM logbook_entries WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return err
	}
	return requireRow(res)
}

func (r *PGRepo) queryEntries(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func scanEntry(rows *sql.Rows) (Entry, error) {
	var e Entry
	var date time.Time
	var fuel, oil sql.NullString
	var before, after, kilometers string
	var purpose, driver sql.NullString
	err := rows.Scan(
		&e.ID,
		&e.UserID,
		&date,
		&fuel,
		&oil,
		&e.Departure,
		&e.Arrival,
		&e.FromPlace,
		&e.ToPlace,
		&before,
		&after,
		&kilometers,
		&purpose,
		&driver,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Entry{}, ErrNotFound
		}
		return Entry{}, err
	}
	e.Date = date.Format("2006-01-02")
	e.FuelL = parseQuantity(fuel.String)
	e.OilL = parseQuantity(oil.String)
	e.OdoBefore = parseQuantity(before)
	e.OdoAfter = parseQuantity(after)
	e.Kilometers = parseQuantity(kilometers)
	e.Purpose = purpose.String
	e.DriverName = driver.String
	return e, nil
}

func nullable(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

var _ Repo = (*PGRepo)(nil)
