package records

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"records-backend/internal/shared/server/middleware"
	"records-backend/internal/shared/server/respond"
)

const maxUploadSize = 10 << 20 // 10MB

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches record routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/records", h.create)
	rg.POST("/records/from-key", h.createFromKey)
	rg.GET("/records", h.list)
	rg.GET("/records/:id", h.get)
	rg.PUT("/records/:id", h.update)
	rg.DELETE("/records/:id", h.remove)
	rg.GET("/records/:id/download", h.download)
}

func actorFromContext(c *gin.Context) Actor {
	return Actor{
		ID:    middleware.UserIDFromContext(c),
		Email: middleware.UserEmailFromContext(c),
		Role:  middleware.UserRoleFromContext(c),
	}
}

func inputFromForm(c *gin.Context) Input {
	return Input{
		Department:    c.PostForm("department"),
		Subject:       c.PostForm("subject"),
		ReceivedFrom:  c.PostForm("receivedFrom"),
		AllocatedTo:   c.PostForm("allocatedTo"),
		Status:        c.PostForm("status"),
		InwardNumber:  c.PostForm("inwardNumber"),
		InwardDate:    c.PostForm("inwardDate"),
		ReceivingDate: c.PostForm("receivingDate"),
		FileCategory:  c.PostForm("fileCategory"),
	}
}

// openFormFile returns the optional uploaded file. A nil reader with no
// error means the form had no file part.
func openFormFile(c *gin.Context) (string, io.ReadCloser, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return "", nil, nil
		}
		return "", nil, err
	}
	f, err := fileHeader.Open()
	if err != nil {
		return "", nil, err
	}
	return fileHeader.Filename, f, nil
}

func respondServiceError(c *gin.Context, err error, fallback string) {
	var ve ValidationErrors
	switch {
	case errors.As(err, &ve):
		respond.ValidationError(c, ve)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "record not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

func (h *Handler) create(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileName, file, err := openFormFile(c)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	if file != nil {
		defer file.Close()
	}

	var r io.Reader
	if file != nil {
		r = file
	}
	rec, err := h.Svc.Create(c.Request.Context(), actorFromContext(c), inputFromForm(c), fileName, r)
	if err != nil {
		respondServiceError(c, err, "failed to create record")
		return
	}

	respond.Created(c, toResponse(rec))
}

type createFromKeyRequest struct {
	Department    string `json:"department"`
	Subject       string `json:"subject"`
	ReceivedFrom  string `json:"receivedFrom"`
	AllocatedTo   string `json:"allocatedTo"`
	Status        string `json:"status"`
	InwardNumber  string `json:"inwardNumber"`
	InwardDate    string `json:"inwardDate"`
	ReceivingDate string `json:"receivingDate"`
	FileCategory  string `json:"fileCategory"`
	StorageKey    string `json:"storageKey"`
	FileName      string `json:"fileName"`
	ContentType   string `json:"contentType"`
	SizeBytes     int64  `json:"sizeBytes"`
}

func (h *Handler) createFromKey(c *gin.Context) {
	var req createFromKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	in := Input{
		Department:    req.Department,
		Subject:       req.Subject,
		ReceivedFrom:  req.ReceivedFrom,
		AllocatedTo:   req.AllocatedTo,
		Status:        req.Status,
		InwardNumber:  req.InwardNumber,
		InwardDate:    req.InwardDate,
		ReceivingDate: req.ReceivingDate,
		FileCategory:  req.FileCategory,
	}
	rec, err := h.Svc.CreateFromKey(c.Request.Context(), actorFromContext(c), in,
		req.StorageKey, req.FileName, req.ContentType, req.SizeBytes)
	if err != nil {
		respondServiceError(c, err, "failed to create record")
		return
	}

	respond.Created(c, toResponse(rec))
}

func (h *Handler) list(c *gin.Context) {
	q := Query{
		Search:     c.Query("search"),
		Department: c.Query("department"),
		SortKey:    c.Query("sortKey"),
		SortOrder:  c.Query("sortOrder"),
	}

	recs, err := h.Svc.List(c.Request.Context(), actorFromContext(c), q)
	if err != nil {
		respondServiceError(c, err, "failed to list records")
		return
	}

	respond.JSON(c, http.StatusOK, toResponses(recs))
}

func (h *Handler) get(c *gin.Context) {
	rec, err := h.Svc.Get(c.Request.Context(), actorFromContext(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "failed to fetch record")
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(rec))
}

func (h *Handler) update(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadSize)

	fileName, file, err := openFormFile(c)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	if file != nil {
		defer file.Close()
	}

	var r io.Reader
	if file != nil {
		r = file
	}
	rec, err := h.Svc.Update(c.Request.Context(), actorFromContext(c), c.Param("id"), inputFromForm(c), fileName, r)
	if err != nil {
		respondServiceError(c, err, "failed to update record")
		return
	}

	respond.JSON(c, http.StatusOK, toResponse(rec))
}

func (h *Handler) remove(c *gin.Context) {
	if err := h.Svc.Delete(c.Request.Context(), actorFromContext(c), c.Param("id")); err != nil {
		respondServiceError(c, err, "failed to delete record")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) download(c *gin.Context) {
	rec, rc, err := h.Svc.Download(c.Request.Context(), actorFromContext(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "failed to download file")
		return
	}
	defer rc.Close()

	contentType := rec.File.MimeType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Disposition", `attachment; filename="`+strings.ReplaceAll(rec.File.Name, `"`, "")+`"`)
	c.DataFromReader(http.StatusOK, rec.File.SizeBytes, contentType, rc, nil)
}
