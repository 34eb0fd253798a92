package cli

import (
	"context"
	"io"

	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/matzehuels/porder/pkg/observability"
)

// metricsSink exports ordering metrics to a writer once, at shutdown.
type metricsSink struct {
	provider *sdkmetric.MeterProvider
	hooks    *observability.OTelHooks
}

// newMetricsSink builds a meter provider whose only reader exports to w as
// pretty-printed JSON when the sink is shut down.
func newMetricsSink(w io.Writer) (*metricsSink, error) {
	exp, err := stdoutmetric.New(
		stdoutmetric.WithWriter(w),
		stdoutmetric.WithPrettyPrint(),
	)
	if err != nil {
		return nil, err
	}
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(exp)),
	)
	hooks, err := observability.NewOTelHooks(provider)
	if err != nil {
		_ = provider.Shutdown(context.Background())
		return nil, err
	}
	return &metricsSink{provider: provider, hooks: hooks}, nil
}

// Shutdown flushes the collected metrics.
func (m *metricsSink) Shutdown(ctx context.Context) error {
	return m.provider.Shutdown(ctx)
}
