package records

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

const recordColumns = `id, department, subject, received_from, allocated_to, status,
inward_number, inward_date, receiving_date,
file_name, file_url, storage_key, size_bytes, mime_type, file_category,
uploader_id, uploader_email, uploader_role, created_at, updated_at`

// Create inserts a new record.
func (r *PGRepo) Create(ctx context.Context, rec Record) error {
	const query = `
INSERT INTO records (
    id, department, subject, received_from, allocated_to, status,
    inward_number, inward_date, receiving_date,
    file_name, file_url, storage_key, size_bytes, mime_type, file_category,
    uploader_id, uploader_email, uploader_role, created_at, updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.DB.ExecContext(ctx, query,
		rec.ID,
		rec.Department,
		rec.Subject,
		nullString(rec.ReceivedFrom),
		nullString(rec.AllocatedTo),
		rec.Status,
		nullString(rec.InwardNumber),
		nullDate(rec.InwardDate),
		nullDate(rec.ReceivingDate),
		nullString(rec.File.Name),
		nullString(rec.File.URL),
		nullString(rec.File.StorageKey),
		rec.File.SizeBytes,
		nullString(rec.File.MimeType),
		nullString(rec.File.Category),
		rec.UploaderID,
		nullString(rec.UploaderEmail),
		rec.UploaderRole,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

// Update overwrites an existing record's mutable fields.
func (r *PGRepo) Update(ctx context.Context, rec Record) error {
	const query = `
UPDATE records SET
    department = $1, subject = $2, received_from = $3, allocated_to = $4,
    status = $5, inward_number = $6, inward_date = $7, receiving_date = $8,
    file_name = $9, file_url = $10, storage_key = $11, size_bytes = $12,
    mime_type = $13, file_category = $14, updated_at = $15
WHERE id = $16`
	res, err := r.DB.ExecContext(ctx, query,
		rec.Department,
		rec.Subject,
		nullString(rec.ReceivedFrom),
		nullString(rec.AllocatedTo),
		rec.Status,
		nullString(rec.InwardNumber),
		nullDate(rec.InwardDate),
		nullDate(rec.ReceivingDate),
		nullString(rec.File.Name),
		nullString(rec.File.URL),
		nullString(rec.File.StorageKey),
		rec.File.SizeBytes,
		nullString(rec.File.MimeType),
		nullString(rec.File.Category),
		rec.UpdatedAt,
		rec.ID,
	)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// GetByID returns a record by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Record, error) {
	const query = `SELECT ` + recordColumns + ` FROM records WHERE id = $1`
	rows, err := r.DB.QueryContext(ctx, query, id)
	if err != nil {
		return Record{}, err
	}
	defer rows.Close()
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return Record{}, err
		}
		return Record{}, ErrNotFound
	}
	return scanRecord(rows)
}

// ListVisible returns the actor's visible records ordered oldest first.
func (r *PGRepo) ListVisible(ctx context.Context, a Actor) ([]Record, error) {
	const query = `SELECT ` + recordColumns + ` FROM records
WHERE uploader_id = $1 OR ($2 = 'admin' AND uploader_role = 'subadmin')
ORDER BY created_at ASC, id ASC`
	rows, err := r.DB.QueryContext(ctx, query, a.ID, a.Role)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

// Delete removes a record.
func (r *PGRepo) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM records WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func scanRecord(rows *sql.Rows) (Record, error) {
	var rec Record
	var receivedFrom, allocatedTo, inwardNumber sql.NullString
	var inwardDate, receivingDate sql.NullTime
	var fileName, fileURL, storageKey, mimeType, fileCategory, uploaderEmail sql.NullString
	err := rows.Scan(
		&rec.ID,
		&rec.Department,
		&rec.Subject,
		&receivedFrom,
		&allocatedTo,
		&rec.Status,
		&inwardNumber,
		&inwardDate,
		&receivingDate,
		&fileName,
		&fileURL,
		&storageKey,
		&rec.File.SizeBytes,
		&mimeType,
		&fileCategory,
		&rec.UploaderID,
		&uploaderEmail,
		&rec.UploaderRole,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Record{}, ErrNotFound
		}
		return Record{}, err
	}
	rec.ReceivedFrom = receivedFrom.String
	rec.AllocatedTo = allocatedTo.String
	rec.InwardNumber = inwardNumber.String
	if inwardDate.Valid {
		rec.InwardDate = inwardDate.Time.Format("2006-01-02")
	}
	if receivingDate.Valid {
		rec.ReceivingDate = receivingDate.Time.Format("2006-01-02")
	}
	rec.File.Name = fileName.String
	rec.File.URL = fileURL.String
	rec.File.StorageKey = storageKey.String
	rec.File.MimeType = mimeType.String
	rec.File.Category = fileCategory.String
	rec.UploaderEmail = uploaderEmail.String
	return rec, nil
}

func nullString(s string) any {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return s
}

func nullDate(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil
	}
	return t
}

var _ Repo = (*PGRepo)(nil)
