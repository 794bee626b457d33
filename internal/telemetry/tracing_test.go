package telemetry_test

import (
	"testing"

	"github.com/aaravmahajanofficial/storefront-demo/internal/config"
	"github.com/aaravmahajanofficial/storefront-demo/internal/telemetry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetup(t *testing.T) {
	t.Run("Disabled without endpoint", func(t *testing.T) {
		shutdown, err := telemetry.Setup(t.Context(), config.Otel{ServiceName: "storefront-demo"})

		require.NoError(t, err)
		assert.NoError(t, shutdown(t.Context()))
	})

	t.Run("Enabled with endpoint", func(t *testing.T) {
		shutdown, err := telemetry.Setup(t.Context(), config.Otel{
			ServiceName:      "storefront-demo",
			ExporterEndpoint: "http://127.0.0.1:4318/v1/traces",
			SamplerRatio:     0.5,
		})

		require.NoError(t, err)
		require.NotNil(t, shutdown)
	})
}
