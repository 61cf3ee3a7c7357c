package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/comitanigiacomo/salat-sync-engine/internal/core/domain"
	"github.com/comitanigiacomo/salat-sync-engine/internal/core/services"
)

type TimingsHandler struct {
	svc *services.TimingsService
	loc *time.Location
}

func NewTimingsHandler(svc *services.TimingsService, loc *time.Location) *TimingsHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &TimingsHandler{svc: svc, loc: loc}
}

func (h *TimingsHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/timings", h.GetTimings)
}

// GetTimings godoc
// @Summary      Prayer times at a location
// @Tags         timings
// @Produce      json
// @Param        lat   query     number  true   "Latitude"
// @Param        lon   query     number  true   "Longitude"
// @Param        date  query     string  false  "YYYY-MM-DD, defaults to today"
// @Success      200   {object}  domain.PrayerTimings
// @Failure      400   {object}  errorResponse
// @Failure      502   {object}  errorResponse
// @Router       /timings [get]
func (h *TimingsHandler) GetTimings(c *gin.Context) {
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	lon, errLon := strconv.ParseFloat(c.Query("lon"), 64)
	if errLat != nil || errLon != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: "lat and lon are required numbers"})
		return
	}

	date := domain.CalendarDate(time.Now().In(h.loc))
	if s := c.Query("date"); s != "" {
		d, err := domain.ParseDate(s)
		if err != nil {
			handleError(c, err)
			return
		}
		date = d
	}

	timings, err := h.svc.Lookup(c.Request.Context(), lat, lon, date)
	if err != nil {
		handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, timings)
}
