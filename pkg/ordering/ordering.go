package ordering

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"slices"

	"github.com/matzehuels/porder/pkg/observability"
)

var (
	// ErrStepAlreadyOrdered is returned by [Store.InheritOrdering] when a step
	// announced as newly inserted already holds ordering constraints. The
	// store is left unchanged.
	ErrStepAlreadyOrdered = errors.New("step already has ordering constraints")

	// ErrSentinelStep is returned by [Store.InheritOrdering] when a start or
	// goal sentinel is announced as a newly inserted child.
	ErrSentinelStep = errors.New("sentinel step cannot be inserted")

	// ErrCycle is matched by the [*CycleError] returned from [Store.Topsort]
	// when the closure contains a step that reaches itself. This indicates a
	// broken closure invariant, not bad input to Topsort.
	ErrCycle = errors.New("ordering contains a cycle")

	// ErrInvalidBounds is returned by [Bounds.Validate] when the start
	// sentinel is not strictly below the goal sentinel.
	ErrInvalidBounds = errors.New("start step must be below goal step")
)

// StepID identifies a plan step. Ids are chosen by the caller; the store only
// requires that the two sentinel values in [Bounds] are reserved.
type StepID int

// Bounds holds the two sentinel step ids. Start is ordered before every
// other step and Goal after every other step, whether or not either was ever
// related to them. Sentinels are never stored in the closure matrix.
type Bounds struct {
	Start StepID `toml:"start" yaml:"start" json:"start"`
	Goal  StepID `toml:"goal" yaml:"goal" json:"goal"`
}

// DefaultBounds returns Start 0 and Goal math.MaxInt32.
func DefaultBounds() Bounds {
	return Bounds{Start: 0, Goal: math.MaxInt32}
}

// Validate reports ErrInvalidBounds unless Start < Goal.
func (b Bounds) Validate() error {
	if b.Start >= b.Goal {
		return fmt.Errorf("%w: start=%d goal=%d", ErrInvalidBounds, b.Start, b.Goal)
	}
	return nil
}

// IsSentinel reports whether id is the start or goal step.
func (b Bounds) IsSentinel(id StepID) bool {
	return id == b.Start || id == b.Goal
}

// Manager is the ordering contract consumed by a planner. [*Store] is the
// only implementation; planners depend on this interface so that search code
// can be tested against fakes.
type Manager interface {
	OrderedBefore(a, b StepID) bool
	PossiblyBefore(a, b StepID) bool
	AddOrder(earlier, later StepID)
	InheritOrdering(parent StepID, existing, inserted []StepID) error
	Topsort(all []StepID) ([]StepID, error)
	String() string
}

// Store maintains the transitive closure of a strict "before" relation over
// plan steps.
//
// Each step id is mapped to a dense internal index on first reference; the
// closure is an N×N boolean matrix over those indices. Indices are
// append-only: the store grows monotonically for its whole lifetime.
//
// The zero value is not usable - use [New] to create a Store.
// Store is not safe for concurrent use. Branches of a search should each
// take their own [Store.Copy].
type Store struct {
	bounds Bounds
	index  map[StepID]int // step id -> internal index
	steps  []StepID       // internal index -> step id
	reach  matrix         // reach[i][j]: step i is before step j
	stats  Stats
	hooks  observability.OrderingHooks
}

// Option configures a Store.
type Option func(*Store)

// WithHooks attaches an observer for store events. A nil h is ignored.
func WithHooks(h observability.OrderingHooks) Option {
	return func(s *Store) {
		if h != nil {
			s.hooks = h
		}
	}
}

// New creates an empty store using b as its sentinels. b is not validated;
// callers loading bounds from configuration should call [Bounds.Validate].
func New(b Bounds, opts ...Option) *Store {
	s := &Store{
		bounds: b,
		index:  make(map[StepID]int),
		hooks:  observability.NoopOrderingHooks{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Copy returns a deep copy of s. No map, slice or matrix row is shared with
// s, so the two stores may be mutated independently, including from
// different goroutines. Statistics are copied; hooks are shared.
func (s *Store) Copy() *Store {
	c := &Store{
		bounds: s.bounds,
		index:  maps.Clone(s.index),
		steps:  slices.Clone(s.steps),
		reach:  s.reach.clone(),
		stats:  s.stats,
		hooks:  s.hooks,
	}
	if c.index == nil {
		c.index = make(map[StepID]int)
	}
	s.hooks.OnCopy(len(s.steps))
	return c
}

// Bounds returns the sentinel step ids of the store.
func (s *Store) Bounds() Bounds { return s.bounds }

// Len returns the number of steps that hold at least one constraint.
func (s *Store) Len() int { return len(s.steps) }

// Contains reports whether id has been given an internal index.
// Sentinels are never contained.
func (s *Store) Contains(id StepID) bool {
	_, ok := s.index[id]
	return ok
}

// Steps returns the materialized step ids in index (first-reference) order.
// The returned slice is a copy.
func (s *Store) Steps() []StepID { return slices.Clone(s.steps) }

// assign returns the index of id, allocating the next one if id is new.
// The matrix is not grown; callers grow it to match.
func (s *Store) assign(id StepID) (idx int, created bool) {
	if idx, ok := s.index[id]; ok {
		return idx, false
	}
	idx = len(s.steps)
	s.index[id] = idx
	s.steps = append(s.steps, id)
	return idx, true
}

var _ Manager = (*Store)(nil)
