// Package observability provides hooks for metrics, tracing, and logging of
// ordering-constraint operations.
//
// This package enables optional instrumentation without adding hard
// dependencies to the ordering store. A store is handed an [OrderingHooks]
// value at construction time and reports every insertion, inheritance,
// linearization and copy to it.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define a hook interface for ordering events
//   - Provide a no-op default implementation
//   - Provide adapters for a structured logger ([LogHooks]) and for
//     OpenTelemetry metrics ([OTelHooks])
//   - Combine several observers with [Multi]
//
// Hooks are injected per store instance rather than registered globally, so
// independent search branches can be observed independently and no counter
// lives in package-level state.
//
// # Usage
//
//	hooks, err := observability.NewOTelHooks(provider)
//	if err != nil {
//	    return err
//	}
//	s := ordering.New(bounds, ordering.WithHooks(hooks))
package observability

import (
	"time"
)

// OrderingHooks receives events from an ordering-constraint store.
//
// Implementations must be cheap: they run inline on the caller's goroutine on
// every mutation. A store copied for a new search branch shares its hooks with
// the original, so implementations used across branches advanced on different
// goroutines must be safe for concurrent use.
type OrderingHooks interface {
	// OnAddOrder records one constraint insertion. insertCase names the
	// closure-maintenance case that handled it and size is the number of
	// materialized steps after the insertion.
	OnAddOrder(insertCase string, size int)

	// OnInherit records an inheritance of a parent's ordering by its children.
	// parentKnown is false when the parent held no constraints and the
	// operation was skipped.
	OnInherit(parentKnown bool, existing, inserted, size int)

	// OnTopsort records a linearization. err is non-nil when the closure was
	// found to contain a cycle.
	OnTopsort(size int, duration time.Duration, err error)

	// OnCopy records a deep copy of a store holding size steps.
	OnCopy(size int)
}

// NoopOrderingHooks is a no-op implementation of OrderingHooks.
type NoopOrderingHooks struct{}

func (NoopOrderingHooks) OnAddOrder(string, int)              {}
func (NoopOrderingHooks) OnInherit(bool, int, int, int)       {}
func (NoopOrderingHooks) OnTopsort(int, time.Duration, error) {}
func (NoopOrderingHooks) OnCopy(int)                          {}

// Multi fans every event out to each of the given hooks in order.
// Nil entries are skipped. With no usable hooks it returns NoopOrderingHooks.
func Multi(hooks ...OrderingHooks) OrderingHooks {
	var live multiHooks
	for _, h := range hooks {
		if h != nil {
			live = append(live, h)
		}
	}
	switch len(live) {
	case 0:
		return NoopOrderingHooks{}
	case 1:
		return live[0]
	}
	return live
}

type multiHooks []OrderingHooks

func (m multiHooks) OnAddOrder(insertCase string, size int) {
	for _, h := range m {
		h.OnAddOrder(insertCase, size)
	}
}

func (m multiHooks) OnInherit(parentKnown bool, existing, inserted, size int) {
	for _, h := range m {
		h.OnInherit(parentKnown, existing, inserted, size)
	}
}

func (m multiHooks) OnTopsort(size int, duration time.Duration, err error) {
	for _, h := range m {
		h.OnTopsort(size, duration, err)
	}
}

func (m multiHooks) OnCopy(size int) {
	for _, h := range m {
		h.OnCopy(size)
	}
}
