package records

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"records-backend/internal/shared/storage/object/local"
)

func newTestService(t *testing.T) (*Service, *int) {
	t.Helper()
	notified := 0
	svc := &Service{
		Repo:   NewMemoryRepo(),
		Store:  local.New(t.TempDir()),
		Notify: func() { notified++ },
	}
	return svc, &notified
}

var (
	admin    = Actor{ID: "admin-1", Email: "admin@example.com", Role: "admin"}
	clerk    = Actor{ID: "clerk-1", Email: "clerk@example.com", Role: "subadmin"}
	otherAdm = Actor{ID: "admin-2", Email: "admin2@example.com", Role: "admin"}
)

func TestCreateRequiresDepartmentAndSubject(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), clerk, Input{}, "", nil)
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if _, ok := ve["department"]; !ok {
		t.Fatalf("expected a department error, got %v", ve)
	}
	if _, ok := ve["subject"]; !ok {
		t.Fatalf("expected a subject error, got %v", ve)
	}
}

func TestCreateDefaultsStatusAndSavesFile(t *testing.T) {
	svc, notified := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, clerk, Input{Department: "IT", Subject: "Budget"},
		"budget.txt", strings.NewReader("hello world"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if rec.Status != "Pending" {
		t.Fatalf("expected default status Pending, got %q", rec.Status)
	}
	if rec.File.StorageKey == "" || rec.File.SizeBytes != int64(len("hello world")) {
		t.Fatalf("file metadata not recorded: %+v", rec.File)
	}
	if rec.UploaderRole != "subadmin" {
		t.Fatalf("expected uploader role recorded, got %q", rec.UploaderRole)
	}
	if *notified != 1 {
		t.Fatalf("expected one change notification, got %d", *notified)
	}

	_, rc, err := svc.Download(ctx, clerk, rec.ID)
	if err != nil {
		t.Fatalf("Download: %v", err)
	}
	defer rc.Close()
	body, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if string(body) != "hello world" {
		t.Fatalf("downloaded %q", body)
	}
}

func TestCreateRejectsUnknownStatus(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Create(context.Background(), clerk,
		Input{Department: "IT", Subject: "x", Status: "Done"}, "", nil)
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if _, ok := ve["status"]; !ok {
		t.Fatalf("expected a status error, got %v", ve)
	}
}

func TestRoleVisibility(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	adminRec, err := svc.Create(ctx, admin, Input{Department: "IT", Subject: "admin doc"}, "", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	clerkRec, err := svc.Create(ctx, clerk, Input{Department: "IT", Subject: "clerk doc"}, "", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Admin sees own plus all subadmin records.
	got, err := svc.List(ctx, admin, Query{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("admin expected 2 records, got %d", len(got))
	}

	// Another admin sees the clerk's record but not the first admin's.
	got, err = svc.List(ctx, otherAdm, Query{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].ID != clerkRec.ID {
		t.Fatalf("other admin expected only the clerk record, got %v", ids(got))
	}

	// Subadmin sees only their own.
	got, err = svc.List(ctx, clerk, Query{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 1 || got[0].ID != clerkRec.ID {
		t.Fatalf("clerk expected only their record, got %v", ids(got))
	}

	// Direct fetch honors the same rule.
	if _, err := svc.Get(ctx, clerk, adminRec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("clerk should not see admin record, got %v", err)
	}
}

func TestUpdateNoOpSkipsWriteAndNotify(t *testing.T) {
	svc, notified := newTestService(t)
	ctx := context.Background()

	in := Input{Department: "IT", Subject: "Budget", Status: "Pending"}
	rec, err := svc.Create(ctx, clerk, in, "", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	created := *notified

	same, err := svc.Update(ctx, clerk, rec.ID, in, "", nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if !same.UpdatedAt.Equal(rec.UpdatedAt) {
		t.Fatalf("no-op update must not bump UpdatedAt")
	}
	if *notified != created {
		t.Fatalf("no-op update must not notify subscribers")
	}

	in.Status = "Completed"
	changed, err := svc.Update(ctx, clerk, rec.ID, in, "", nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if changed.Status != "Completed" {
		t.Fatalf("expected status update, got %q", changed.Status)
	}
	if *notified != created+1 {
		t.Fatalf("real update must notify once, got %d", *notified-created)
	}
}

func TestDeleteRemovesBlob(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	rec, err := svc.Create(ctx, clerk, Input{Department: "IT", Subject: "x"},
		"note.txt", strings.NewReader("bytes"))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(ctx, clerk, rec.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := svc.Get(ctx, clerk, rec.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected record gone, got %v", err)
	}
	if _, err := svc.Store.Open(ctx, rec.File.StorageKey); err == nil {
		t.Fatalf("expected blob gone")
	}
}

func TestCreateFromKeyRequiresFileFields(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.CreateFromKey(context.Background(), clerk,
		Input{Department: "IT", Subject: "x"}, "", "", "", 0)
	var ve ValidationErrors
	if !errors.As(err, &ve) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	for _, field := range []string{"storageKey", "fileName", "sizeBytes"} {
		if _, ok := ve[field]; !ok {
			t.Fatalf("expected %s error, got %v", field, ve)
		}
	}

	rec, err := svc.CreateFromKey(context.Background(), clerk,
		Input{Department: "IT", Subject: "x"}, "uploads/abc", "scan.pdf", "application/pdf", 1234)
	if err != nil {
		t.Fatalf("CreateFromKey: %v", err)
	}
	if rec.File.StorageKey != "uploads/abc" || rec.File.SizeBytes != 1234 {
		t.Fatalf("file metadata not recorded: %+v", rec.File)
	}
}
