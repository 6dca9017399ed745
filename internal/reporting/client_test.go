package reporting_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/ridgeline-exteriors/deal-api/internal/config"
	"github.com/ridgeline-exteriors/deal-api/internal/reporting"
)

func TestNewClient_DisabledConfig(t *testing.T) {
	logger := zap.NewNop()

	// Test with nil config
	client, err := reporting.NewClient(nil, logger)
	assert.NoError(t, err)
	assert.Nil(t, client)

	// Test with disabled config
	cfg := &config.ReportingConfig{
		Enabled: false,
	}
	client, err = reporting.NewClient(cfg, logger)
	assert.NoError(t, err)
	assert.Nil(t, client)
}

func TestNewClient_MissingCredentials(t *testing.T) {
	logger := zap.NewNop()

	tests := []struct {
		name string
		cfg  *config.ReportingConfig
	}{
		{
			name: "missing URL",
			cfg: &config.ReportingConfig{
				Enabled:  true,
				URL:      "",
				User:     "user",
				Password: "pass",
			},
		},
		{
			name: "missing user",
			cfg: &config.ReportingConfig{
				Enabled:  true,
				URL:      "host:1433/db",
				User:     "",
				Password: "pass",
			},
		},
		{
			name: "missing password",
			cfg: &config.ReportingConfig{
				Enabled:  true,
				URL:      "host:1433/db",
				User:     "user",
				Password: "",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := reporting.NewClient(tt.cfg, logger)
			assert.NoError(t, err)
			assert.Nil(t, client)
		})
	}
}

func TestClient_IsEnabled_NilClient(t *testing.T) {
	var nilClient *reporting.Client
	assert.False(t, nilClient.IsEnabled())
}

func TestClient_Close_NilClient(t *testing.T) {
	// Nil client close should not panic
	var nilClient *reporting.Client
	err := nilClient.Close()
	assert.NoError(t, err)
}

func TestClient_HealthCheck_NilClient(t *testing.T) {
	// Nil client health check should return disabled status
	var nilClient *reporting.Client
	status := nilClient.HealthCheck(context.Background())
	assert.NotNil(t, status)
	assert.Equal(t, "disabled", status.Status)
}

func TestClient_UpsertDealSummaries_NilClient(t *testing.T) {
	var nilClient *reporting.Client
	_, _, err := nilClient.UpsertDealSummaries(context.Background(), []reporting.DealSummary{{DealID: "x"}})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not initialized")
}
