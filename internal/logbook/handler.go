package logbook

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

// RegisterRoutes attaches log-book routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/logbook", h.create)
	rg.GET("/logbook", h.list)
	rg.GET("/logbook/summary", h.summary)
	rg.GET("/logbook/:id", h.get)
	rg.PUT("/logbook/:id", h.update)
	rg.DELETE("/logbook/:id", h.remove)
}

type entryRequest struct {
	Date       string `json:"date"`
	Fuel       string `json:"fuel"`
	Oil        string `json:"oil"`
	Departure  string `json:"departure"`
	Arrival    string `json:"arrival"`
	FromPlace  string `json:"fromPlace"`
	ToPlace    string `json:"toPlace"`
	OdoBefore  string `json:"odoBefore"`
	OdoAfter   string `json:"odoAfter"`
	Purpose    string `json:"purpose"`
	DriverName string `json:"driverName"`
}

func (r entryRequest) input() Input {
	return Input{
		Date:       r.Date,
		Fuel:       r.Fuel,
		Oil:        r.Oil,
		Departure:  r.Departure,
		Arrival:    r.Arrival,
		FromPlace:  r.FromPlace,
		ToPlace:    r.ToPlace,
		OdoBefore:  r.OdoBefore,
		OdoAfter:   r.OdoAfter,
		Purpose:    r.Purpose,
		DriverName: r.DriverName,
	}
}

type entryResponse struct {
	ID         string `json:"id"`
	Date       string `json:"date"`
	Fuel       string `json:"fuel"`
	Oil        string `json:"oil"`
	Departure  string `json:"departure"`
	Arrival    string `json:"arrival"`
	Duration   string `json:"duration"`
	FromPlace  string `json:"fromPlace"`
	ToPlace    string `json:"toPlace"`
	OdoBefore  string `json:"odoBefore"`
	OdoAfter   string `json:"odoAfter"`
	Kilometers string `json:"kilometers"`
	Purpose    string `json:"purpose,omitempty"`
	DriverName string `json:"driverName,omitempty"`
	CreatedAt  int64  `json:"createdAt"`
	UpdatedAt  int64  `json:"updatedAt"`
}

func toResponse(e Entry) entryResponse {
	return entryResponse{
		ID:         e.ID,
		Date:       e.Date,
		Fuel:       e.FuelL.String(),
		Oil:        e.OilL.String(),
		Departure:  e.Departure,
		Arrival:    e.Arrival,
		Duration:   timeutil.Duration(e.Departure, e.Arrival),
		FromPlace:  e.FromPlace,
		ToPlace:    e.ToPlace,
		OdoBefore:  e.OdoBefore.String(),
		OdoAfter:   e.OdoAfter.String(),
		Kilometers: e.Kilometers.StringFixed(1),
		Purpose:    e.Purpose,
		DriverName: e.DriverName,
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
		respond.Error(c, http.StatusNotFound, "not_found", "log-book entry not found", nil)
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
		respondServiceError(c, err, "failed to create log-book entry")
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
		respondServiceError(c, err, "failed to list log-book entries")
		return
	}
	respond.JSON(c, http.StatusOK, toResponses(entries))
}

func (h *Handler) summary(c *gin.Context) {
	sum, err := h.Svc.MonthSummary(c.Request.Context(), middleware.UserIDFromContext(c), c.Query("month"))
	if err != nil {
		respondServiceError(c, err, "failed to summarize log book")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{
		"count":           sum.Count,
		"totalKilometers": sum.TotalKilometers.StringFixed(1),
		"totalFuel":       sum.TotalFuel.String(),
		"totalOil":        sum.TotalOil.String(),
		"entries":         toResponses(sum.Entries),
	})
}

func (h *Handler) get(c *gin.Context) {
	e, err := h.Svc.Get(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "failed to fetch log-book entry")
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
		respondServiceError(c, err, "failed to update log-book entry")
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(e))
}

func (h *Handler) remove(c *gin.Context) {
	err := h.Svc.Delete(c.Request.Context(), middleware.UserIDFromContext(c), c.Param("id"))
	if err != nil {
		respondServiceError(c, err, "failed to delete log-book entry")
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"ok": true})
}
