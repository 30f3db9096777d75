package reports

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"records-backend/internal/diary"
	"records-backend/internal/logbook"
	"records-backend/internal/shared/server/middleware"
	"records-backend/internal/shared/server/respond"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches report routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reports/profile", h.getProfile)
	rg.PUT("/reports/profile", h.putProfile)
	rg.GET("/reports/diary/:month", h.diaryReport)
	rg.GET("/reports/logbook/:month", h.logbookReport)
}

type profileBody struct {
	EmployeeName   string `json:"employeeName"`
	Designation    string `json:"designation"`
	Department     string `json:"department"`
	SubDepartment  string `json:"subDepartment"`
	OfficeName     string `json:"officeName"`
	OfficeLocation string `json:"officeLocation"`
	DaysWorking    int    `json:"daysWorking"`
	DaysOnTour     int    `json:"daysOnTour"`
	DaysHoliday    int    `json:"daysHoliday"`
	DaysLeave      int    `json:"daysLeave"`
	DaysOther      int    `json:"daysOther"`
}

func toProfileBody(p Profile) profileBody {
	return profileBody{
		EmployeeName:   p.EmployeeName,
		Designation:    p.Designation,
		Department:     p.Department,
		SubDepartment:  p.SubDepartment,
		OfficeName:     p.OfficeName,
		OfficeLocation: p.OfficeLocation,
		DaysWorking:    p.DaysWorking,
		DaysOnTour:     p.DaysOnTour,
		DaysHoliday:    p.DaysHoliday,
		DaysLeave:      p.DaysLeave,
		DaysOther:      p.DaysOther,
	}
}

func (h *Handler) getProfile(c *gin.Context) {
	p, err := h.Svc.GetProfile(c.Request.Context(), middleware.UserIDFromContext(c))
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load report profile", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toProfileBody(p))
}

func (h *Handler) putProfile(c *gin.Context) {
	var body profileBody
	if err := c.ShouldBindJSON(&body); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	errs := map[string]string{}
	for field, v := range map[string]int{
		"daysWorking": body.DaysWorking,
		"daysOnTour":  body.DaysOnTour,
		"daysHoliday": body.DaysHoliday,
		"daysLeave":   body.DaysLeave,
		"daysOther":   body.DaysOther,
	} {
		if v < 0 {
			errs[field] = "day count cannot be negative"
		}
	}
	if len(errs) > 0 {
		respond.ValidationError(c, errs)
		return
	}

	p := Profile{
		UserID:         middleware.UserIDFromContext(c),
		EmployeeName:   body.EmployeeName,
		Designation:    body.Designation,
		Department:     body.Department,
		SubDepartment:  body.SubDepartment,
		OfficeName:     body.OfficeName,
		OfficeLocation: body.OfficeLocation,
		DaysWorking:    body.DaysWorking,
		DaysOnTour:     body.DaysOnTour,
		DaysHoliday:    body.DaysHoliday,
		DaysLeave:      body.DaysLeave,
		DaysOther:      body.DaysOther,
		UpdatedAt:      time.Now().UTC(),
	}
	if err := h.Svc.PutProfile(c.Request.Context(), p); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to save report profile", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toProfileBody(p))
}

func (h *Handler) diaryReport(c *gin.Context) {
	month := c.Param("month")
	f, err := h.Svc.DiaryWorkbook(c.Request.Context(), middleware.UserIDFromContext(c), month)
	if err != nil {
		respondExportError(c, err)
		return
	}
	streamWorkbook(c, f, fmt.Sprintf("travel-diary-%s.xlsx", month))
}

func (h *Handler) logbookReport(c *gin.Context) {
	month := c.Param("month")
	f, err := h.Svc.LogbookWorkbook(c.Request.Context(), middleware.UserIDFromContext(c), month)
	if err != nil {
		respondExportError(c, err)
		return
	}
	streamWorkbook(c, f, fmt.Sprintf("vehicle-logbook-%s.xlsx", month))
}

func respondExportError(c *gin.Context, err error) {
	if errors.Is(err, diary.ErrInvalidMonth) || errors.Is(err, logbook.ErrInvalidMonth) {
		respond.Error(c, http.StatusBadRequest, "validation_error", "month must be YYYY-MM", nil)
		return
	}
	respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to build report", nil)
}

func streamWorkbook(c *gin.Context, f *excelize.File, fileName string) {
	c.Header("Content-Type", xlsxContentType)
	c.Header("Content-Disposition", `attachment; filename="`+fileName+`"`)
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to write report", nil)
	}
}
