package telemetry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"quizcraft/internal/config"
)

func TestInit_Disabled(t *testing.T) {
	shutdown, err := Init(context.Background(), config.TelemetryConfig{Enabled: false}, "test", zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_Stdout(t *testing.T) {
	shutdown, err := Init(context.Background(), config.TelemetryConfig{Enabled: true, Exporter: "stdout"}, "test", zap.NewNop())
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestInit_UnknownExporter(t *testing.T) {
	_, err := Init(context.Background(), config.TelemetryConfig{Enabled: true, Exporter: "jaeger"}, "test", zap.NewNop())
	assert.Error(t, err)
}
