package main

import (
	"github.com/SscSPs/repayment_tracker/internal/handlers"
	"github.com/SscSPs/repayment_tracker/internal/platform/config"
)

// healthChecks picks the dependencies /health reports on. The database is only pinged when ENABLE_DB_CHECK is set; redis is nil without REDIS_URL.
func healthChecks(cfg *config.Config, db, redis handlers.HealthCheck) map[string]handlers.HealthCheck {
	checks := make(map[string]handlers.HealthCheck, 2)
	if cfg.EnableDBCheck && db != nil {
		checks["database"] = db
	}
	if redis != nil {
		checks["redis"] = redis
	}
	return checks
}
