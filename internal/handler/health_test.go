package handler

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medagenda/agenda-api/internal/model"
)

type stubStore struct {
	pingErr error
}

func (s *stubStore) Create(context.Context, model.ViewModelState) (string, error) { return "", nil }
func (s *stubStore) Get(context.Context, string) (model.ViewModelState, error) {
	return model.ViewModelState{}, nil
}
func (s *stubStore) Save(context.Context, string, model.ViewModelState) error { return nil }
func (s *stubStore) Delete(context.Context, string) error                     { return nil }
func (s *stubStore) Ping(context.Context) error                               { return s.pingErr }

func healthEngine(store *stubStore) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	h := NewHandler(store)
	engine.GET("/live", h.LivenessCheck)
	engine.GET("/ready", h.ReadinessCheck)
	return engine
}

func TestLivenessCheck(t *testing.T) {
	engine := healthEngine(&stubStore{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"status":"alive"}}`, w.Body.String())
}

func TestReadinessCheckStoreDown(t *testing.T) {
	engine := healthEngine(&stubStore{pingErr: fmt.Errorf("connection refused")})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "session store unavailable")
}

func TestReadinessCheckStoreUp(t *testing.T) {
	engine := healthEngine(&stubStore{})

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ready", nil))

	assert.Equal(t, http.StatusOK, w.Code)
}
