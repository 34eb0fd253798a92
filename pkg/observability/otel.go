package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope of every instrument created here.
const meterName = "github.com/matzehuels/porder/ordering"

// OTelHooks records ordering events as OpenTelemetry metrics.
//
// Instruments:
//   - porder_add_order_total{case}: insertions by closure case
//   - porder_inherit_total{parent_known}: inheritance calls
//   - porder_topsort_total{cycle}: linearizations
//   - porder_topsort_duration_seconds: linearization latency
//   - porder_store_steps: store size observed at each linearization
//   - porder_copy_total: branch copies
//
// OTelHooks is safe for concurrent use.
type OTelHooks struct {
	addOrder        metric.Int64Counter
	inherit         metric.Int64Counter
	topsort         metric.Int64Counter
	topsortDuration metric.Float64Histogram
	storeSteps      metric.Int64Histogram
	copies          metric.Int64Counter
}

// NewOTelHooks creates the instruments on mp. A nil mp uses the global
// provider from otel.GetMeterProvider.
func NewOTelHooks(mp metric.MeterProvider) (*OTelHooks, error) {
	if mp == nil {
		mp = otel.GetMeterProvider()
	}
	meter := mp.Meter(meterName)

	h := &OTelHooks{}
	var err error

	if h.addOrder, err = meter.Int64Counter(
		"porder_add_order_total",
		metric.WithDescription("Ordering constraints added, by closure-maintenance case"),
	); err != nil {
		return nil, err
	}
	if h.inherit, err = meter.Int64Counter(
		"porder_inherit_total",
		metric.WithDescription("Ordering inheritance operations"),
	); err != nil {
		return nil, err
	}
	if h.topsort, err = meter.Int64Counter(
		"porder_topsort_total",
		metric.WithDescription("Linearizations of the closure"),
	); err != nil {
		return nil, err
	}
	if h.topsortDuration, err = meter.Float64Histogram(
		"porder_topsort_duration_seconds",
		metric.WithDescription("Time spent linearizing the closure"),
		metric.WithUnit("s"),
	); err != nil {
		return nil, err
	}
	if h.storeSteps, err = meter.Int64Histogram(
		"porder_store_steps",
		metric.WithDescription("Materialized steps at linearization time"),
	); err != nil {
		return nil, err
	}
	if h.copies, err = meter.Int64Counter(
		"porder_copy_total",
		metric.WithDescription("Deep copies of ordering stores"),
	); err != nil {
		return nil, err
	}
	return h, nil
}

// Store operations carry no context, so instruments record against the
// background context.

func (h *OTelHooks) OnAddOrder(insertCase string, _ int) {
	h.addOrder.Add(context.Background(), 1,
		metric.WithAttributes(attribute.String("case", insertCase)))
}

func (h *OTelHooks) OnInherit(parentKnown bool, _, _, _ int) {
	h.inherit.Add(context.Background(), 1,
		metric.WithAttributes(attribute.Bool("parent_known", parentKnown)))
}

func (h *OTelHooks) OnTopsort(size int, duration time.Duration, err error) {
	ctx := context.Background()
	attrs := metric.WithAttributes(attribute.Bool("cycle", err != nil))
	h.topsort.Add(ctx, 1, attrs)
	h.topsortDuration.Record(ctx, duration.Seconds(), attrs)
	h.storeSteps.Record(ctx, int64(size))
}

func (h *OTelHooks) OnCopy(_ int) {
	h.copies.Add(context.Background(), 1)
}

var _ OrderingHooks = (*OTelHooks)(nil)
