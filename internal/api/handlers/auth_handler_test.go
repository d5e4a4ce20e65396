package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/santecare/pharmacare-backend/internal/adapters/memory"
	"github.com/santecare/pharmacare-backend/internal/api/handlers"
	"github.com/santecare/pharmacare-backend/internal/application/services"
)

func newAuthHandler() *handlers.AuthHandler {
	svc := services.NewAuthService(memory.NewCredentialAdapter(), memory.NewSessionAdapter(), 0)
	return handlers.NewAuthHandler(svc)
}

func TestAuthHandler_Login(t *testing.T) {
	t.Run("successfully logs in", func(t *testing.T) {
		handler := newAuthHandler()

		body, _ := json.Marshal(map[string]string{
			"email":    "pharmacien@pharmacie.fr",
			"password": memory.DemoPassword,
		})
		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		assert.Equal(t, http.StatusOK, w.Code)

		var resp struct {
			User struct {
				Name string `json:"name"`
				Role string `json:"role"`
			} `json:"user"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, "Amina Benali", resp.User.Name)
		assert.Equal(t, "pharmacist", resp.User.Role)
	})

	t.Run("returns unauthorized for wrong password", func(t *testing.T) {
		handler := newAuthHandler()

		body, _ := json.Marshal(map[string]string{
			"email":    "pharmacien@pharmacie.fr",
			"password": "nope",
		})
		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("returns bad request for invalid payload", func(t *testing.T) {
		handler := newAuthHandler()

		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBufferString("invalid-json"))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("returns bad request when fields are missing", func(t *testing.T) {
		handler := newAuthHandler()

		body, _ := json.Marshal(map[string]string{"email": "pharmacien@pharmacie.fr"})
		req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
		w := httptest.NewRecorder()

		handler.Login(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestAuthHandler_Session(t *testing.T) {
	t.Run("returns unauthorized when not logged in", func(t *testing.T) {
		handler := newAuthHandler()

		req := httptest.NewRequest("GET", "/api/auth/session", nil)
		w := httptest.NewRecorder()

		handler.Session(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("returns the user after login", func(t *testing.T) {
		handler := newAuthHandler()

		body, _ := json.Marshal(map[string]string{
			"email":    "admin@pharmacie.fr",
			"password": memory.DemoPassword,
		})
		loginReq := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
		handler.Login(httptest.NewRecorder(), loginReq)

		req := httptest.NewRequest("GET", "/api/auth/session", nil)
		w := httptest.NewRecorder()

		handler.Session(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})
}

func TestAuthHandler_Logout(t *testing.T) {
	handler := newAuthHandler()

	body, _ := json.Marshal(map[string]string{
		"email":    "admin@pharmacie.fr",
		"password": memory.DemoPassword,
	})
	loginReq := httptest.NewRequest("POST", "/api/auth/login", bytes.NewBuffer(body))
	handler.Login(httptest.NewRecorder(), loginReq)

	w := httptest.NewRecorder()
	handler.Logout(w, httptest.NewRequest("POST", "/api/auth/logout", nil))
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = httptest.NewRecorder()
	handler.Session(w, httptest.NewRequest("GET", "/api/auth/session", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
