package telemetry

import (
	"context"
	"fmt"
	"io"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
)

// ServiceName tags every exported metric.
const ServiceName = "footy-sense"

// Provider owns an SDK meter provider that periodically writes metrics as
// JSON to a writer.
type Provider struct {
	mp *sdkmetric.MeterProvider
}

// NewProvider exports to w every interval. Shutdown flushes the final
// collection.
func NewProvider(w io.Writer, interval time.Duration) (*Provider, error) {
	exp, err := stdoutmetric.New(stdoutmetric.WithWriter(w))
	if err != nil {
		return nil, fmt.Errorf("failed to create metric exporter: %w", err)
	}
	if interval <= 0 {
		interval = 10 * time.Second
	}
	res := resource.NewSchemaless(attribute.String("service.name", ServiceName))
	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(interval))),
	)
	return &Provider{mp: mp}, nil
}

// Meter returns the match meter from this provider.
func (p *Provider) Meter() metric.Meter {
	return p.mp.Meter(instrumentationName)
}

// SetGlobal installs the provider as the global OTel meter provider.
func (p *Provider) SetGlobal() {
	otel.SetMeterProvider(p.mp)
}

// Shutdown exports anything pending and stops the reader.
func (p *Provider) Shutdown(ctx context.Context) error {
	if err := p.mp.Shutdown(ctx); err != nil {
		return fmt.Errorf("metric provider shutdown: %w", err)
	}
	return nil
}
