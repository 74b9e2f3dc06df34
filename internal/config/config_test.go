package config

import (
	"testing"
	"time"

	"perfdash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATA_FILE", "LOGO_FILE", "CHARTS_FOLLOW_FILTERS", "HISTOGRAM_BINS", "HISTOGRAM_BARGAP", "SHUTDOWN_TIMEOUT"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "employee_data.csv", cfg.Data.File)
	assert.Equal(t, "syk.jpg", cfg.Data.LogoFile)
	assert.False(t, cfg.Charts.FollowFilters)
	assert.Equal(t, 0, cfg.Charts.HistogramBins)
	assert.InDelta(t, 0.2, cfg.Charts.BarGap, 1e-9)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.False(t, cfg.Profiling.Enabled)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_FILE", "staff.xlsx")
	t.Setenv("CHARTS_FOLLOW_FILTERS", "true")
	t.Setenv("HISTOGRAM_BINS", "12")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "staff.xlsx", cfg.Data.File)
	assert.True(t, cfg.Charts.FollowFilters)
	assert.Equal(t, 12, cfg.Charts.HistogramBins)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"non numeric port", "PORT", "http"},
		{"bargap too large", "HISTOGRAM_BARGAP", "1.5"},
		{"negative bins", "HISTOGRAM_BINS", "-3"},
		{"unknown gin mode", "GIN_MODE", "production"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
		})
	}
}
