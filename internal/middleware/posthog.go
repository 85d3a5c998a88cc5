package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/repayment_tracker/internal/utils"
	"github.com/gin-gonic/gin"
)

const apiPrefix = "/api/v1/"

// untrackedRoutes are matched against the registered route, not the raw URL.
// The export streams a file and is logged by its handler.
var untrackedRoutes = map[string]bool{
	"/health":                          true,
	"/api/v1/approvals/pending/export": true,
}

// PosthogMiddleware sends one event per successful ledger API call, keyed by the authenticated user.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !posthogClient.IsInitialized() || untrackedRoutes[c.FullPath()] {
			c.Next()
			return
		}

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		userID, exists := GetUserIDFromContext(c)
		if !exists {
			return
		}
		eventName := routeEventName(c.Request.Method, c.FullPath())
		if eventName == "" {
			return
		}
		posthogClient.Enqueue(userID, eventName, ledgerEventProperties(c))
	}
}

// routeEventName turns "PUT /api/v1/ledgers/:ledgerID/status" into "put_ledgers_status".
// Unmatched routes give an empty name.
func routeEventName(method, route string) string {
	if route == "" {
		return ""
	}
	parts := []string{strings.ToLower(method)}
	for _, segment := range strings.Split(strings.TrimPrefix(route, apiPrefix), "/") {
		if segment == "" || strings.HasPrefix(segment, ":") {
			continue
		}
		parts = append(parts, segment)
	}
	return strings.Join(parts, "_")
}

// ledgerEventProperties names the ledger entry or loan the request touched, from the path or the loanId/ledgerId query.
func ledgerEventProperties(c *gin.Context) map[string]any {
	props := map[string]any{
		"route":       c.FullPath(),
		"status_code": c.Writer.Status(),
	}
	if id := firstNonEmpty(c.Param("ledgerID"), c.Query("ledgerId")); id != "" {
		props["ledger_id"] = id
	}
	if id := firstNonEmpty(c.Param("loanID"), c.Query("loanId")); id != "" {
		props["loan_id"] = id
	}
	if period := c.Param("demandDate"); period != "" {
		props["demand_date"] = period
	}
	return props
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// PosthogEvent sends a custom event from a handler, with the ledger properties of the request merged in.
func PosthogEvent(c *gin.Context, posthogClient *utils.PosthogClientWrapper, eventName string, properties map[string]any) {
	if !posthogClient.IsInitialized() {
		return
	}
	userID, exists := GetUserIDFromContext(c)
	if !exists {
		return
	}
	props := ledgerEventProperties(c)
	for k, v := range properties {
		props[k] = v
	}
	posthogClient.Enqueue(userID, eventName, props)
}
