package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/comitanigiacomo/salat-sync-engine/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/salat-sync-engine/internal/core/domain"
)

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownPrayer):
		c.JSON(http.StatusBadRequest, errorResponse{Error: "unknown prayer", Message: "expected one of fajr, dhuhr, asr, maghrib, isha"})

	case errors.Is(err, domain.ErrInvalidDate):
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid date format, expected YYYY-MM-DD"})

	case errors.Is(err, domain.ErrInvalidRange):
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid range", Message: err.Error()})

	case errors.Is(err, domain.ErrEmailAlreadyExists):
		c.JSON(http.StatusConflict, errorResponse{Error: "email already exists"})

	case errors.Is(err, domain.ErrInvalidEmail), errors.Is(err, domain.ErrPasswordTooShort):
		c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid credentials format", Message: err.Error()})

	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, errorResponse{Error: "invalid email or password"})

	case errors.Is(err, domain.ErrUpdateConflict):
		c.JSON(http.StatusConflict, errorResponse{
			Error:   "update conflict",
			Message: "the day was modified concurrently, please retry",
		})

	case errors.Is(err, domain.ErrPersistenceWrite), errors.Is(err, domain.ErrPersistenceRead):
		log.Error().Err(err).Str("method", c.Request.Method).Str("path", c.Request.URL.Path).Msg("storage unavailable")
		c.JSON(http.StatusServiceUnavailable, errorResponse{Error: "storage unavailable"})

	case errors.Is(err, domain.ErrNetwork):
		c.JSON(http.StatusBadGateway, errorResponse{Error: "prayer time provider unavailable"})

	default:
		log.Error().Err(err).Str("method", c.Request.Method).Str("path", c.Request.URL.Path).Msg("request failed")
		c.JSON(http.StatusInternalServerError, errorResponse{Error: "internal server error"})
	}
}

func bindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: "invalid request body", Message: err.Error()})
}

// currentUser reads the user set by the auth middleware. Routes mounted
// without it act as the anonymous user.
func currentUser(c *gin.Context) string {
	userID, _ := middleware.GetUserID(c)
	return userID
}
