// Package ordering maintains ordering constraints between the steps of a
// partial-order plan.
//
// # Overview
//
// A partial-order planner searches over plans whose steps are only partially
// ordered. Every time it links two steps it adds a precedence constraint
// ("step A must execute before step B"), and before adding one it asks
// whether the constraint is still possible. This package answers those
// questions in constant time by keeping the full transitive closure of the
// relation up to date after every insertion.
//
// # Basic Usage
//
// Create a store with [New], add constraints with [Store.AddOrder], and query
// them with [Store.OrderedBefore] and [Store.PossiblyBefore]:
//
//	s := ordering.New(ordering.Bounds{Start: 0, Goal: 100})
//	s.AddOrder(1, 2)
//	s.AddOrder(2, 3)
//	s.OrderedBefore(1, 3)  // true: 1 < 2 < 3
//	s.PossiblyBefore(3, 1) // false: would close a cycle
//
// Produce one execution order with [Store.Topsort].
//
// # Sentinels
//
// Two step ids are reserved by [Bounds]: Start precedes every step and Goal
// follows every step. They are resolved by comparison in every operation and
// never occupy a row of the closure matrix, so a step that is only known to
// lie between Start and Goal costs nothing.
//
// # Closure Maintenance
//
// Steps are mapped to dense indices on first reference and the closure is an
// N×N boolean matrix over those indices. [Store.AddOrder] updates it with one
// of four rules depending on which endpoints are already known, so no
// insertion recomputes the closure from scratch. The store never checks that
// an insertion keeps the relation acyclic; planners guard insertions with
// [Store.PossiblyBefore], and [Store.Topsort] reports a broken invariant as a
// [*CycleError].
//
// # Refinement
//
// When a step is decomposed into child steps, [Store.InheritOrdering] copies
// its constraints to the children in one pass.
//
// # Branching
//
// Search branches diverge with [Store.Copy], which deep-copies the mapping
// and the matrix. Copies share no mutable state and may be advanced on
// separate goroutines.
//
// # Concurrency
//
// A Store is not safe for concurrent use. Use one store per goroutine.
package ordering
