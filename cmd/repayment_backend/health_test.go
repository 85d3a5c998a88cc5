package main

import (
	"context"
	"testing"

	"github.com/SscSPs/repayment_tracker/internal/handlers"
	"github.com/SscSPs/repayment_tracker/internal/platform/config"
	"github.com/stretchr/testify/assert"
)

func TestHealthChecks(t *testing.T) {
	ping := func(context.Context) error { return nil }

	tests := []struct {
		name  string
		cfg   config.Config
		redis handlers.HealthCheck
		want  []string
	}{
		{"db check disabled", config.Config{EnableDBCheck: false}, nil, nil},
		{"db check enabled", config.Config{EnableDBCheck: true}, nil, []string{"database"}},
		{"redis only", config.Config{EnableDBCheck: false}, ping, []string{"redis"}},
		{"both", config.Config{EnableDBCheck: true}, ping, []string{"database", "redis"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			checks := healthChecks(&tc.cfg, ping, tc.redis)

			names := make([]string, 0, len(checks))
			for name := range checks {
				names = append(names, name)
			}
			assert.ElementsMatch(t, tc.want, names)
		})
	}
}
