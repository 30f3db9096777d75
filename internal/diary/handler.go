package diary

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"records-backend/internal/shared/server/middleware"
	"records-backend/internal/shared/server/respond"
	"records-backend/internal/timeutil"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches diary routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/diary", h.create)
	rg.GET("/diary", h.list)
	rg.GET("/diary/summary", h.summary)
	rg.GET("/diary/:id", h.get)
	rg.PUT("/diary/:id", h.update)
	rg.DELETE("/diary/:id", h.remove)
}

type entryRequest struct {
	Date       string `json:"date"`
	TravelFrom string `json:"travelFrom"`
	TravelTo   string `json:"travelTo"`
	Departure  string `json:"departure"`
	Arrival    string `json:"arrival"`
	Distance   string `json:"distance"`
	VehicleNo  string `json:"vehicleNo"`
	Remark     string `json:"remark"`
}

func (r entryRequest) input() Input {
	return Input{
		Date:       r.Date,
		TravelFrom: r.TravelFrom,
		TravelTo:   r.TravelTo,
		Departure:  r.Departure,
		Arrival:    r.Arrival,
		Distance:   r.Distance,
		VehicleNo:  r.VehicleNo,
		Remark:     r.Remark,
	}
}

type entryResponse struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	TravelFrom string `json:"travelFrom"`
	TravelTo   string `json:"travelTo"`
	Departure  string `json:"departure"`
	Arrival    string `json:"arrival"`
	Distance   string `json:"distance"`
	Duration   string `json:"duration"`
	VehicleNo  string `json:"vehicleNo"`
	Remark     string `json:"remark,omitempty"`
	CreatedAt  int64  `json:"createdAt"`
	UpdatedAt  int64  `json:"updatedAt"`
}

func toResponse(e Entry) entryResponse {
	return entryResponse{
		ID:         e.ID,
		Date:       e.Date,
		TravelFrom: e.TravelFrom,
		TravelTo:   e.TravelTo,
		Departure:  e.Departure,
		Arrival:    e.Arrival,
		Distance:   e.DistanceKM.String(),
		Duration:   timeutil.Duration(e.Departure, e.Arrival),
		VehicleNo:  e.VehicleNo,
		Remark:     e.Remark,
		CreatedAt:  e.CreatedAt.UnixMilli(),
		UpdatedAt:  e.UpdatedAt.UnixMilli(),
	}
}

func toResponses(entries []Entry) []entryResponse {
	out := make([]entryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toResponse(e))
	}
	return out
}

func respondServiceError(c *gin.Context, err error, fallback string) {
	var ve ValidationErrors
	switch {
	case errors.As(err, &ve):
		respond.ValidationError(c, ve)
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "diary entry not found", nil)
	case errors.Is(err, ErrInvalidMonth):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", fallback, nil)
	}
}

func (h *Handler) create(c *gin.Context) {
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	e, err := h.Svc.Create(c.Request.Context(), middleware.UserIDFromContext(c), req.input())
	if err != nil {
		respondServiceError(c, err, "failed to create diary entry")
		return
	}
	respond.Created(c, toResponse(e))
}

func (h *Handler) list(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var (
		entries []Entry
		err     error
	)
	if month := c.Query("month"); month != "" {
		entries, err = h.Svc.MonthEntries(c.Request.Context(), userID, month)
	} else {
		entries, err = h.Svc.List(c.Request.Context(), userID)
	}
	if err != nil {
		respondServiceError(c, err, "failed to list diary entries")
		return
	}
	respond.JSON(c, http.StatusOK, toResponses(entries))
}

func (h *Handler) summary(c *gin.Context) {
	sum, err := h.Svc.MonthSummary(c.Request.Context(), middleware.UserIDFromContext(c), c.Query("month"))
	if err != nil {
		respondServiceError(c, err, "failed to summarize diary")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"count":         sum.Count,
		"totalDistance": sum.TotalDistance.String(),
		"entries":       toResponses(sum.Entries),
	})
}

func (h *Handler) get(c *gin.Context) {
	e, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "failed to fetch diary entry")
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(e))
}

func (h *Handler) update(c *gin.Context) {
	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	e, err := h.Svc.Update(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"), req.input())
	if err != nil {
		respondServiceError(c, err, "failed to update diary entry")
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(e))
}

func (h *Handler) remove(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "failed to delete diary entry")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"ok": true})
}
