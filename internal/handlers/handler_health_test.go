package handlers_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	portssvc "github.com/SscSPs/repayment_tracker/internal/core/ports/services"
	"github.com/SscSPs/repayment_tracker/internal/handlers"
	"github.com/SscSPs/repayment_tracker/internal/platform/config"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func newHealthRouter(checks map[string]handlers.HealthCheck) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	cfg := &config.Config{JWTSecret: testJWTSecret, IsProduction: true}
	services := &portssvc.ServiceContainer{
		Status:   new(MockStatusService),
		Approval: new(MockApprovalService),
		Activity: new(MockActivityService),
		Summary:  new(MockSummaryService),
	}
	handlers.RegisterRoutes(router, cfg, services, checks, nil)
	return router
}

func TestHealth(t *testing.T) {
	ok := func(context.Context) error { return nil }
	down := func(context.Context) error { return errors.New("connection refused") }

	tests := []struct {
		name     string
		checks   map[string]handlers.HealthCheck
		wantCode int
		wantBody string
	}{
		{"no dependencies", nil, http.StatusOK, `{"status":"ok","checks":{}}`},
		{"all healthy", map[string]handlers.HealthCheck{"database": ok, "redis": ok}, http.StatusOK,
			`{"status":"ok","checks":{"database":"ok","redis":"ok"}}`},
		{"redis down", map[string]handlers.HealthCheck{"database": ok, "redis": down}, http.StatusServiceUnavailable,
			`{"status":"degraded","checks":{"database":"ok","redis":"unavailable"}}`},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			router := newHealthRouter(tc.checks)
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

			assert.Equal(t, tc.wantCode, w.Code)
			assert.JSONEq(t, tc.wantBody, w.Body.String())
		})
	}
}

func TestRegisterRoutes_RequiresAuthOnAPI(t *testing.T) {
	router := newHealthRouter(nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/summary", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRegisterRoutes_NoSwaggerInProduction(t *testing.T) {
	router := newHealthRouter(nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/swagger/index.html", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
