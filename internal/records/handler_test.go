package records_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"records-backend/internal/bootstrap"
	"records-backend/internal/shared/config"
)

func buildApp(t *testing.T) *bootstrap.App {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.Config{
		Port:            "0",
		CORSAllowOrigin: []string{"http://localhost:5173"},
		LocalStoreDir:   t.TempDir(),
		Env:             "dev",
		ObjectStoreType: "local",
		AdminEmails:     []string{"admin@example.com"},
	}

	app, err := bootstrap.Build(cfg)
	if err != nil {
		t.Fatalf("bootstrap build: %v", err)
	}
	return app
}

func signUp(t *testing.T, app *bootstrap.App, email string) string {
	t.Helper()
	body := strings.NewReader(`{"email":"` + email + `","password":"hunter2hunter2"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/signup", body)
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("signup %s: expected 201, got %d: %s", email, resp.Code, resp.Body.String())
	}
	var session struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&session); err != nil {
		t.Fatalf("decode signup response: %v", err)
	}
	if session.Token == "" {
		t.Fatalf("expected a session token")
	}
	return session.Token
}

func TestRecordsUploadListAndVisibility(t *testing.T) {
	app := buildApp(t)
	adminToken := signUp(t, app, "admin@example.com")
	clerkToken := signUp(t, app, "clerk@example.com")

	// Clerk uploads a record with a file.
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	_ = writer.WriteField("department", "Water Supply")
	_ = writer.WriteField("subject", "Pipeline proposal")
	fileWriter, err := writer.CreateFormFile("file", "proposal.txt")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := fileWriter.Write([]byte("proposal body")); err != nil {
		t.Fatalf("write file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/records", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+clerkToken)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", resp.Code, resp.Body.String())
	}

	var created struct {
		ID     string `json:"id"`
		Status string `json:"status"`
		File   struct {
			Name      string `json:"name"`
			SizeBytes int64  `json:"sizeBytes"`
		} `json:"file"`
		CreatedAt int64 `json:"createdAt"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID == "" || created.Status != "Pending" {
		t.Fatalf("unexpected create response: %+v", created)
	}
	if created.File.Name != "proposal.txt" || created.File.SizeBytes == 0 {
		t.Fatalf("file metadata missing: %+v", created.File)
	}
	if created.CreatedAt == 0 {
		t.Fatalf("expected epoch-millisecond createdAt")
	}

	// The admin sees the clerk's record in their list.
	reqList := httptest.NewRequest(http.MethodGet, "/api/v1/records?department=Water+Supply", nil)
	reqList.Header.Set("Authorization", "Bearer "+adminToken)
	respList := httptest.NewRecorder()
	app.Router.ServeHTTP(respList, reqList)

	if respList.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", respList.Code, respList.Body.String())
	}
	var listed []struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(respList.Body).Decode(&listed); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != created.ID {
		t.Fatalf("admin expected the clerk record, got %+v", listed)
	}

	// Download round-trips the stored bytes.
	reqDL := httptest.NewRequest(http.MethodGet, "/api/v1/records/"+created.ID+"/download", nil)
	reqDL.Header.Set("Authorization", "Bearer "+clerkToken)
	respDL := httptest.NewRecorder()
	app.Router.ServeHTTP(respDL, reqDL)

	if respDL.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", respDL.Code)
	}
	if respDL.Body.String() != "proposal body" {
		t.Fatalf("downloaded %q", respDL.Body.String())
	}
}

func TestRecordsRequireAuth(t *testing.T) {
	app := buildApp(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/records", nil)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", resp.Code)
	}
}

func TestRecordsValidationErrorShape(t *testing.T) {
	app := buildApp(t)
	token := signUp(t, app, "clerk2@example.com")

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	_ = writer.WriteField("subject", "no department")
	_ = writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/records", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	app.Router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", resp.Code, resp.Body.String())
	}
	var envelope struct {
		Error struct {
			Code    string            `json:"code"`
			Details map[string]string `json:"details"`
		} `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if envelope.Error.Code != "validation_error" {
		t.Fatalf("expected validation_error, got %q", envelope.Error.Code)
	}
	if envelope.Error.Details["department"] == "" {
		t.Fatalf("expected department detail, got %+v", envelope.Error.Details)
	}
}
