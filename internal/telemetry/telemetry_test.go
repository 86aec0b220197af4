package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/fyrsmithlabs/countdown/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"disabled default", func(*Config) {}, false},
		{"enabled default", func(c *Config) { c.Enabled = true }, false},
		{"missing endpoint", func(c *Config) { c.Enabled = true; c.Endpoint = "" }, true},
		{"bad protocol", func(c *Config) { c.Enabled = true; c.Protocol = "thrift" }, true},
		{"insecure remote", func(c *Config) { c.Enabled = true; c.Endpoint = "otel.example.com:4317" }, true},
		{"secure remote", func(c *Config) {
			c.Enabled = true
			c.Endpoint = "otel.example.com:4317"
			c.Insecure = false
		}, false},
		{"insecure ipv6 loopback", func(c *Config) { c.Enabled = true; c.Endpoint = "[::1]:4317" }, false},
		{"sampling above one", func(c *Config) { c.Enabled = true; c.Sampling.Rate = 1.5 }, true},
		{"zero shutdown", func(c *Config) { c.Enabled = true; c.Shutdown.Timeout = 0 }, true},
		{"zero export interval", func(c *Config) { c.Enabled = true; c.Metrics.ExportInterval = 0 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.mutate(cfg)
			if tt.wantErr {
				assert.Error(t, cfg.Validate())
			} else {
				assert.NoError(t, cfg.Validate())
			}
		})
	}
}

func TestFromConfig(t *testing.T) {
	cfg := FromConfig(config.TelemetryConfig{
		Enabled:      true,
		Endpoint:     "http://127.0.0.1:4318",
		Protocol:     "http/protobuf",
		Insecure:     true,
		SamplingRate: 0.25,
	}, "1.2.3")

	assert.True(t, cfg.Enabled)
	assert.Equal(t, "http/protobuf", cfg.Protocol)
	assert.Equal(t, "1.2.3", cfg.ServiceVersion)
	assert.Equal(t, "countdown", cfg.ServiceName)
	assert.InDelta(t, 0.25, cfg.Sampling.Rate, 1e-9)
	require.NoError(t, cfg.Validate())
}

func TestNew_Disabled(t *testing.T) {
	tel, err := New(context.Background(), NewDefaultConfig())
	require.NoError(t, err)

	assert.False(t, tel.IsEnabled())
	assert.Equal(t, HealthStatus{Healthy: true}, tel.Health())
	assert.NotNil(t, tel.Tracer("test"))
	assert.NotNil(t, tel.Meter("test"))
	assert.NotNil(t, tel.LoggerProvider())
	assert.Empty(t, tel.Problems())
	assert.NoError(t, tel.Shutdown(context.Background()))
	assert.False(t, tel.Health().Healthy)
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = ""
	_, err := New(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNilTelemetry(t *testing.T) {
	var tel *Telemetry
	assert.NotNil(t, tel.Tracer("x"))
	assert.NotNil(t, tel.Meter("x"))
	assert.NoError(t, tel.Shutdown(context.Background()))
	assert.NoError(t, tel.ForceFlush(context.Background()))
	assert.False(t, tel.IsEnabled())
	assert.True(t, tel.Health().Degraded)
	assert.Nil(t, tel.Problems())
}

func TestSetDegraded(t *testing.T) {
	tel := &Telemetry{config: NewDefaultConfig()}
	tel.setDegraded("exporter: %w", errors.New("boom"))

	assert.True(t, tel.Health().Degraded)
	require.Len(t, tel.Problems(), 1)
	assert.Contains(t, tel.Problems()[0].Error(), "boom")
}

func TestTestTelemetry_RecordsSpansAndCounters(t *testing.T) {
	tt := NewTestTelemetry()
	ctx := context.Background()

	_, span := tt.Tracer("test").Start(ctx, "solver.Solve")
	span.SetAttributes(attribute.Int("target", 744), attribute.String("mode", "exact"))
	span.End()

	counter, err := tt.Meter("test").Int64Counter("countdown.terms")
	require.NoError(t, err)
	counter.Add(ctx, 3, attributeSet("a"))
	counter.Add(ctx, 4, attributeSet("b"))

	tt.AssertSpanExists(t, "solver.Solve")
	tt.AssertSpanAttribute(t, "solver.Solve", "target", int64(744))
	tt.AssertSpanAttribute(t, "solver.Solve", "mode", "exact")
	assert.Equal(t, int64(7), tt.Int64Sum(t, "countdown.terms"))
	assert.Equal(t, int64(0), tt.Int64Sum(t, "missing"))
	assert.True(t, tt.IsEnabled())
}

func TestStripScheme(t *testing.T) {
	assert.Equal(t, "host:4318", stripScheme("https://host:4318"))
	assert.Equal(t, "host:4318", stripScheme("http://host:4318"))
	assert.Equal(t, "host:4317", stripScheme("host:4317"))
}

func TestTLSConfig(t *testing.T) {
	cfg := NewDefaultConfig()
	assert.Nil(t, tlsConfig(cfg))

	cfg.Insecure = false
	assert.Nil(t, tlsConfig(cfg))

	cfg.TLSSkipVerify = true
	require.NotNil(t, tlsConfig(cfg))
	assert.True(t, tlsConfig(cfg).InsecureSkipVerify)
}

func attributeSet(v string) metric.AddOption {
	return metric.WithAttributes(attribute.String("mode", v))
}
