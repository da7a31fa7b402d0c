package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"terminal-terrace/conduit/config"
)

func TestInit_Disabled(t *testing.T) {
	p, err := Init(context.Background(), config.TelemetryConfig{Enabled: false})
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, p.Shutdown(context.Background()))
}
