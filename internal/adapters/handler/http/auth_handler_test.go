package http

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/comitanigiacomo/salat-sync-engine/internal/adapters/kvstore"
	"github.com/comitanigiacomo/salat-sync-engine/internal/adapters/repository"
	"github.com/comitanigiacomo/salat-sync-engine/internal/core/domain"
	"github.com/comitanigiacomo/salat-sync-engine/internal/core/services"
)

func setupAuthRouter(kv domain.KeyValueStore) *gin.Engine {
	gin.SetMode(gin.TestMode)

	users := repository.NewKVUserRepository(kv)
	tokens := services.NewTokenService("handler-test-secret", "salat-test", time.Hour, users)

	router := gin.New()
	NewAuthHandler(services.NewAuthService(users, tokens)).RegisterRoutes(router.Group(""))
	return router
}

func credentials(email, password string) map[string]string {
	return map[string]string{"email": email, "password": password}
}

func TestAuthHandler_Register(t *testing.T) {
	tests := []struct {
		name       string
		store      domain.KeyValueStore
		seed       map[string]string
		payload    map[string]string
		wantStatus int
		wantBody   string
	}{
		{
			name:       "Success: Account created",
			store:      kvstore.NewMemoryStore(),
			payload:    credentials("api_test@salat.app", "PasswordVerySecret1!"),
			wantStatus: http.StatusCreated,
			wantBody:   "api_test@salat.app",
		},
		{
			name:       "Fail: Invalid email",
			store:      kvstore.NewMemoryStore(),
			payload:    credentials("not-an-email", "PasswordVerySecret1!"),
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid request body",
		},
		{
			name:       "Fail: Password too short",
			store:      kvstore.NewMemoryStore(),
			payload:    credentials("short@salat.app", "short"),
			wantStatus: http.StatusBadRequest,
			wantBody:   "invalid request body",
		},
		{
			name:       "Fail: Email already registered",
			store:      kvstore.NewMemoryStore(),
			seed:       credentials("duplicate@salat.app", "PasswordPerfectlyValid!"),
			payload:    credentials("Duplicate@Salat.app", "AnotherValidPassword!"),
			wantStatus: http.StatusConflict,
			wantBody:   "email already exists",
		},
		{
			name:       "Fail: Store offline",
			store:      brokenStore{},
			payload:    credentials("crash@salat.app", "PasswordPerfectlyValid!"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   "internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := setupAuthRouter(tt.store)
			if tt.seed != nil {
				require.Equal(t, http.StatusCreated, doJSON(router, http.MethodPost, "/auth/register", tt.seed).Code)
			}

			w := doJSON(router, http.MethodPost, "/auth/register", tt.payload)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Contains(t, w.Body.String(), tt.wantBody)
			assert.NotContains(t, w.Body.String(), "password_hash")
		})
	}
}

func TestAuthHandler_Register_ResponseShape(t *testing.T) {
	router := setupAuthRouter(kvstore.NewMemoryStore())

	w := doJSON(router, http.MethodPost, "/auth/register", credentials("Shape@Salat.App", "PasswordVerySecret1!"))

	require.Equal(t, http.StatusCreated, w.Code)
	var response userResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.NotEmpty(t, response.ID)
	assert.Equal(t, "shape@salat.app", response.Email)
	assert.NotContains(t, w.Body.String(), "PasswordVerySecret1!")
}

func TestAuthHandler_Login(t *testing.T) {
	router := setupAuthRouter(kvstore.NewMemoryStore())
	require.Equal(t, http.StatusCreated,
		doJSON(router, http.MethodPost, "/auth/register", credentials("login@salat.app", "PasswordVerySecret1!")).Code)

	t.Run("Success: Returns a bearer token", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/auth/login", credentials("LOGIN@salat.app", "PasswordVerySecret1!"))

		require.Equal(t, http.StatusOK, w.Code)
		var response tokenResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.NotEmpty(t, response.Token)
	})

	t.Run("Fail: Wrong password", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/auth/login", credentials("login@salat.app", "nope-nope-nope"))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid email or password")
	})

	t.Run("Fail: Unknown email looks the same as a wrong password", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/auth/login", credentials("ghost@salat.app", "PasswordVerySecret1!"))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "invalid email or password")
	})

	t.Run("Fail: Missing password", func(t *testing.T) {
		w := doJSON(router, http.MethodPost, "/auth/login", map[string]string{"email": "login@salat.app"})

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}
