package telemetry

import (
	"context"
	"testing"

	"github.com/aaravmahajanofficial/shopdesk/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
)

func TestSetup_Disabled(t *testing.T) {
	shutdown, err := Setup(context.Background(), config.OTel{Enabled: false}, "test")

	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestSetup_Enabled(t *testing.T) {
	// the exporter connects lazily so no collector is needed
	shutdown, err := Setup(context.Background(), config.OTel{
		Enabled:          true,
		ServiceName:      "shopdesk-test",
		ExporterEndpoint: "127.0.0.1:4318",
		Insecure:         true,
		SamplerRatio:     1,
	}, "test")

	require.NoError(t, err)
	require.NotNil(t, shutdown)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_ = shutdown(ctx)
}

func TestSampler(t *testing.T) {
	assert.Equal(t, sdktrace.AlwaysSample().Description(), sampler(1).Description())
	assert.Equal(t, sdktrace.NeverSample().Description(), sampler(0).Description())
	assert.Contains(t, sampler(0.25).Description(), "TraceIDRatioBased{0.25}")
}
