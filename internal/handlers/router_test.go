package handlers_test

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/SscSPs/repayment_tracker/internal/handlers"
	"github.com/SscSPs/repayment_tracker/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// newTestRouter builds an authenticated router with every service route registered.
func newTestRouter(t *testing.T, approvals *MockApprovalService, activity *MockActivityService, summary *MockSummaryService) (*gin.Engine, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	require.NoError(t, handlers.RegisterValidators())

	router := gin.New()
	router.Use(middleware.AuthMiddleware(testJWTSecret))
	v1 := router.Group("/api/v1")
	handlers.RegisterApprovalRoutes(v1, approvals, nil)
	handlers.RegisterActivityRoutes(v1, activity)
	handlers.RegisterSummaryRoutes(v1, summary)

	token, err := generateTestToken("approver-1")
	require.NoError(t, err)
	return router, token
}

func serve(router *gin.Engine, token, method, path, body string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}
