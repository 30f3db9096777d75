package records

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"

	"records-backend/internal/shared/storage/object"
	"records-backend/internal/shared/telemetry"
)

// ValidationErrors maps field names to human-readable messages.
type ValidationErrors map[string]string

func (v ValidationErrors) Error() string { return "validation failed" }

// Input carries the caller-editable metadata of a record.
type Input struct {
	Department    string
	Subject       string
	ReceivedFrom  string
	AllocatedTo   string
	Status        string
	InwardNumber  string
	InwardDate    string
	ReceivingDate string
	FileCategory  string
}

// Service contains business logic for records.
type Service struct {
	Repo  Repo
	Store object.ObjectStore
	// Notify is invoked after every successful mutation so live
	// subscriptions can refresh. May be nil.
	Notify func()
}

func (s *Service) notify() {
	if s.Notify != nil {
		s.Notify()
	}
}

func validate(in Input) ValidationErrors {
	errs := ValidationErrors{}
	if strings.TrimSpace(in.Department) == "" {
		errs["department"] = "department is required"
	}
	if strings.TrimSpace(in.Subject) == "" {
		errs["subject"] = "subject is required"
	}
	if in.Status != "" && !ValidStatus(in.Status) {
		errs["status"] = fmt.Sprintf("status must be one of: %s", strings.Join(Statuses, ", "))
	}
	if in.InwardDate != "" {
		if _, err := time.Parse("2006-01-02", in.InwardDate); err != nil {
			errs["inwardDate"] = "inward date must be YYYY-MM-DD"
		}
	}
	if in.ReceivingDate != "" {
		if _, err := time.Parse("2006-01-02", in.ReceivingDate); err != nil {
			errs["receivingDate"] = "receiving date must be YYYY-MM-DD"
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

func apply(rec *Record, in Input) {
	rec.Department = strings.TrimSpace(in.Department)
	rec.Subject = strings.TrimSpace(in.Subject)
	rec.ReceivedFrom = strings.TrimSpace(in.ReceivedFrom)
	rec.AllocatedTo = strings.TrimSpace(in.AllocatedTo)
	rec.Status = in.Status
	if rec.Status == "" {
		rec.Status = DefaultStatus
	}
	rec.InwardNumber = strings.TrimSpace(in.InwardNumber)
	rec.InwardDate = strings.TrimSpace(in.InwardDate)
	rec.ReceivingDate = strings.TrimSpace(in.ReceivingDate)
	rec.File.Category = strings.TrimSpace(in.FileCategory)
}

// Create registers a record, optionally saving an uploaded file first.
func (s *Service) Create(ctx context.Context, actor Actor, in Input, fileName string, r io.Reader) (Record, error) {
	if errs := validate(in); errs != nil {
		return Record{}, errs
	}

	now := time.Now().UTC()
	rec := Record{
		ID:            uuid.NewString(),
		UploaderID:    actor.ID,
		UploaderEmail: actor.Email,
		UploaderRole:  actor.Role,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	apply(&rec, in)

	if r != nil && fileName != "" {
		storageKey, size, mimeType, err := s.Store.Save(ctx, actor.ID, fileName, r)
		if err != nil {
			return Record{}, err
		}
		rec.File.Name = fileName
		rec.File.StorageKey = storageKey
		rec.File.SizeBytes = size
		rec.File.MimeType = mimeType
		rec.File.URL = downloadURL(rec.ID)
	}

	if err := s.Repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	s.notify()
	return rec, nil
}

// CreateFromKey registers a record whose file was already uploaded directly
// to object storage via a presigned URL.
func (s *Service) CreateFromKey(ctx context.Context, actor Actor, in Input, storageKey, fileName, contentType string, sizeBytes int64) (Record, error) {
	errs := validate(in)
	if errs == nil {
		errs = ValidationErrors{}
	}
	if strings.TrimSpace(storageKey) == "" {
		errs["storageKey"] = "storageKey is required"
	}
	if strings.TrimSpace(fileName) == "" {
		errs["fileName"] = "fileName is required"
	}
	if sizeBytes <= 0 {
		errs["sizeBytes"] = "sizeBytes must be positive"
	}
	if len(errs) > 0 {
		return Record{}, errs
	}

	now := time.Now().UTC()
	rec := Record{
		ID:            uuid.NewString(),
		UploaderID:    actor.ID,
		UploaderEmail: actor.Email,
		UploaderRole:  actor.Role,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	apply(&rec, in)
	rec.File.Name = strings.TrimSpace(fileName)
	rec.File.StorageKey = strings.TrimSpace(storageKey)
	rec.File.SizeBytes = sizeBytes
	rec.File.MimeType = strings.TrimSpace(contentType)
	rec.File.URL = downloadURL(rec.ID)

	if err := s.Repo.Create(ctx, rec); err != nil {
		return Record{}, err
	}
	s.notify()
	return rec, nil
}

// List returns the actor's visible records with the transform applied.
func (s *Service) List(ctx context.Context, actor Actor, q Query) ([]Record, error) {
	visible, err := s.Repo.ListVisible(ctx, actor)
	if err != nil {
		return nil, err
	}
	return Transform(visible, q), nil
}

// Get fetches one visible record.
func (s *Service) Get(ctx context.Context, actor Actor, id string) (Record, error) {
	rec, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return Record{}, err
	}
	if !rec.VisibleTo(actor) {
		return Record{}, ErrNotFound
	}
	return rec, nil
}

// Update overwrites a record's metadata and, when a reader is supplied,
// replaces its file. Structurally identical updates are detected and skipped
// without touching storage or notifying subscribers.
func (s *Service) Update(ctx context.Context, actor Actor, id string, in Input, fileName string, r io.Reader) (Record, error) {
	if errs := validate(in); errs != nil {
		return Record{}, errs
	}

	current, err := s.Get(ctx, actor, id)
	if err != nil {
		return Record{}, err
	}

	updated := current
	apply(&updated, in)

	if r == nil && updated == current {
		return current, nil
	}

	if r != nil && fileName != "" {
		storageKey, size, mimeType, err := s.Store.Save(ctx, actor.ID, fileName, r)
		if err != nil {
			return Record{}, err
		}
		if current.File.StorageKey != "" {
			if err := s.Store.Delete(ctx, current.File.StorageKey); err != nil {
				telemetry.Warn("records.blob_delete_failed", map[string]any{
					"record_id": id, "error": err.Error(),
				})
			}
		}
		updated.File.Name = fileName
		updated.File.StorageKey = storageKey
		updated.File.SizeBytes = size
		updated.File.MimeType = mimeType
		updated.File.URL = downloadURL(id)
	}

	updated.UpdatedAt = time.Now().UTC()
	if err := s.Repo.Update(ctx, updated); err != nil {
		return Record{}, err
	}
	s.notify()
	return updated, nil
}

// Delete removes a record along with its stored blob.
func (s *Service) Delete(ctx context.Context, actor Actor, id string) error {
	rec, err := s.Get(ctx, actor, id)
	if err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return err
	}
	if rec.File.StorageKey != "" {
		if err := s.Store.Delete(ctx, rec.File.StorageKey); err != nil {
			telemetry.Warn("records.blob_delete_failed", map[string]any{
				"record_id": id, "error": err.Error(),
			})
		}
	}
	s.notify()
	return nil
}

// Download opens the stored file for a visible record.
func (s *Service) Download(ctx context.Context, actor Actor, id string) (Record, io.ReadCloser, error) {
	rec, err := s.Get(ctx, actor, id)
	if err != nil {
		return Record{}, nil, err
	}
	if rec.File.StorageKey == "" {
		return Record{}, nil, ErrNotFound
	}
	rc, err := s.Store.Open(ctx, rec.File.StorageKey)
	if err != nil {
		return Record{}, nil, err
	}
	return rec, rc, nil
}

func downloadURL(id string) string {
	return "/api/v1/records/" + id + "/download"
}
