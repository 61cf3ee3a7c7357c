package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/salat-sync-engine/internal/core/domain"
)

type PrayerHandler struct {
	store domain.PrayerStore
}

func NewPrayerHandler(store domain.PrayerStore) *PrayerHandler {
	return &PrayerHandler{store: store}
}

type dayResponse struct {
	Date     string           `json:"date"`
	Prayers  domain.DayRecord `json:"prayers"`
	Progress float64          `json:"progress"`
	Degraded bool             `json:"degraded"`
}

type allDaysResponse struct {
	Records  domain.DateKeyedStore `json:"records"`
	Failed   []domain.FailedKey    `json:"failed,omitempty"`
	Degraded bool                  `json:"degraded"`
}

type setPrayerRequest struct {
	Performed *bool `json:"performed" binding:"required"`
	WithJamat *bool `json:"withJamat" binding:"required"`
}

func (h *PrayerHandler) RegisterRoutes(router *gin.RouterGroup) {
	days := router.Group("/days")
	{
		days.GET("", h.ListDays)
		days.GET("/:date", h.GetDay)
		days.PUT("/:date/prayers/:prayer", h.SetPrayer)
		days.PATCH("/:date/prayers/:prayer", h.EditPrayer)
	}
}

// ListDays godoc
// @Summary      All recorded days
// @Tags         days
// @Produce      json
// @Success      200  {object}  allDaysResponse
// @Security     BearerAuth
// @Router       /days [get]
func (h *PrayerHandler) ListDays(c *gin.Context) {
	agg, err := h.store.GetAllDayRecords(c.Request.Context(), currentUser(c))
	if agg == nil {
		agg = &domain.Aggregate{Records: domain.DateKeyedStore{}}
	}

	c.JSON(http.StatusOK, allDaysResponse{
		Records:  agg.Records,
		Failed:   agg.Failed,
		Degraded: err != nil,
	})
}

// GetDay godoc
// @Summary      One day's prayers
// @Description  Days never written return all five prayers unperformed.
// @Tags         days
// @Produce      json
// @Param        date  path      string  true  "Date (YYYY-MM-DD)"
// @Success      200   {object}  dayResponse
// @Failure      400   {object}  errorResponse
// @Security     BearerAuth
// @Router       /days/{date} [get]
func (h *PrayerHandler) GetDay(c *gin.Context) {
	date, err := domain.ParseDate(c.Param("date"))
	if err != nil {
		handleError(c, err)
		return
	}

	record, err := h.store.GetDayRecord(c.Request.Context(), currentUser(c), date)

	c.JSON(http.StatusOK, dayResponse{
		Date:     domain.DateKey(date),
		Prayers:  record,
		Progress: record.Progress(),
		Degraded: err != nil,
	})
}

// SetPrayer godoc
// @Summary      Replace one prayer's status
// @Tags         days
// @Accept       json
// @Produce      json
// @Param        date    path      string            true  "Date (YYYY-MM-DD)"
// @Param        prayer  path      string            true  "fajr, dhuhr, asr, maghrib or isha"
// @Param        body    body      setPrayerRequest  true  "New status"
// @Success      200     {object}  dayResponse
// @Failure      400     {object}  errorResponse
// @Failure      503     {object}  errorResponse
// @Security     BearerAuth
// @Router       /days/{date}/prayers/{prayer} [put]
func (h *PrayerHandler) SetPrayer(c *gin.Context) {
	date, prayer, ok := h.parsePath(c)
	if !ok {
		return
	}

	var req setPrayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	status := domain.PrayerStatus{Performed: *req.Performed, WithJamat: *req.WithJamat}
	if err := h.store.SetPrayerStatus(c.Request.Context(), currentUser(c), date, prayer, status); err != nil {
		handleError(c, err)
		return
	}

	h.respondDay(c, date)
}

// EditPrayer godoc
// @Summary      Change some fields of one prayer's status
// @Tags         days
// @Accept       json
// @Produce      json
// @Param        date    path      string                    true  "Date (YYYY-MM-DD)"
// @Param        prayer  path      string                    true  "fajr, dhuhr, asr, maghrib or isha"
// @Param        body    body      domain.PrayerStatusPatch  true  "Fields to change"
// @Success      200     {object}  dayResponse
// @Failure      400     {object}  errorResponse
// @Failure      503     {object}  errorResponse
// @Security     BearerAuth
// @Router       /days/{date}/prayers/{prayer} [patch]
func (h *PrayerHandler) EditPrayer(c *gin.Context) {
	date, prayer, ok := h.parsePath(c)
	if !ok {
		return
	}

	var patch domain.PrayerStatusPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		bindError(c, err)
		return
	}
	if patch.Empty() {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "nothing to update", Message: "set performed and/or withJamat"})
		return
	}

	if err := h.store.EditPrayerStatus(c.Request.Context(), currentUser(c), date, prayer, patch); err != nil {
		handleError(c, err)
		return
	}

	h.respondDay(c, date)
}

func (h *PrayerHandler) parsePath(c *gin.Context) (time.Time, domain.PrayerName, bool) {
	date, err := domain.ParseDate(c.Param("date"))
	if err != nil {
		handleError(c, err)
		return time.Time{}, "", false
	}

	prayer, err := domain.ParsePrayerName(c.Param("prayer"))
	if err != nil {
		handleError(c, err)
		return time.Time{}, "", false
	}

	return date, prayer, true
}

func (h *PrayerHandler) respondDay(c *gin.Context, date time.Time) {
	record, err := h.store.GetDayRecord(c.Request.Context(), currentUser(c), date)

	c.JSON(http.StatusOK, dayResponse{
		Date:     domain.DateKey(date),
		Prayers:  record,
		Progress: record.Progress(),
		Degraded: err != nil,
	})
}
