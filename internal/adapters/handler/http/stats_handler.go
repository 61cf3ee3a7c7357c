package http

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/salat-sync-engine/internal/adapters/export"
	"github.com/comitanigiacomo/salat-sync-engine/internal/core/domain"
	"github.com/comitanigiacomo/salat-sync-engine/internal/core/services"
)

type StatsHandler struct {
	svc *services.StatsService
}

func NewStatsHandler(svc *services.StatsService) *StatsHandler {
	return &StatsHandler{svc: svc}
}

func (h *StatsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/stats", h.GetStats)
	r.GET("/stats/export", h.ExportStats)
}

// GetStats godoc
// @Summary      Prayer statistics for a date range
// @Description  range=week is Sunday to Saturday, month is the calendar month, custom needs start_date and end_date (max 366 days).
// @Tags         stats
// @Produce      json
// @Param        range       query     string  false  "week (default), month or custom"
// @Param        start_date  query     string  false  "YYYY-MM-DD, custom range only"
// @Param        end_date    query     string  false  "YYYY-MM-DD, custom range only"
// @Success      200         {object}  domain.Report
// @Failure      400         {object}  errorResponse
// @Security     BearerAuth
// @Router       /stats [get]
func (h *StatsHandler) GetStats(c *gin.Context) {
	report, ok := h.buildReport(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, report)
}

// ExportStats godoc
// @Summary      Prayer statistics as an Excel workbook
// @Tags         stats
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        range       query     string  false  "week (default), month or custom"
// @Param        start_date  query     string  false  "YYYY-MM-DD, custom range only"
// @Param        end_date    query     string  false  "YYYY-MM-DD, custom range only"
// @Success      200         {file}    file
// @Failure      400         {object}  errorResponse
// @Failure      503         {object}  errorResponse
// @Security     BearerAuth
// @Router       /stats/export [get]
func (h *StatsHandler) ExportStats(c *gin.Context) {
	report, ok := h.buildReport(c)
	if !ok {
		return
	}
	if report.Degraded {
		handleError(c, domain.ErrPersistenceRead)
		return
	}

	filename := fmt.Sprintf("salat-%s-%s.xlsx", report.StartDate, report.EndDate)
	c.Header("Content-Type", export.ContentType)
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Status(http.StatusOK)

	if err := export.WriteReport(c.Writer, report); err != nil {
		_ = c.Error(err)
	}
}

// buildReport parses the query and runs the report. A degraded report is
// still returned; only invalid input aborts.
func (h *StatsHandler) buildReport(c *gin.Context) (*domain.Report, bool) {
	input := domain.ReportInput{
		UserID: currentUser(c),
		Range:  c.DefaultQuery("range", domain.RangeWeek),
	}

	if s := c.Query("start_date"); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid start_date format, expected YYYY-MM-DD"})
			return nil, false
		}
		input.StartDate = d
	}
	if s := c.Query("end_date"); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid end_date format, expected YYYY-MM-DD"})
			return nil, false
		}
		input.EndDate = d
	}

	report, err := h.svc.GetReport(c.Request.Context(), input)
	if report == nil {
		handleError(c, err)
		return nil, false
	}

	return report, true
}
