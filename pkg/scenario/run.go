package scenario

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/porder/pkg/buildinfo"
	"github.com/matzehuels/porder/pkg/errors"
	"github.com/matzehuels/porder/pkg/observability"
	"github.com/matzehuels/porder/pkg/ordering"
)

// Options configures a replay.
type Options struct {
	// Logger receives debug-level progress. Nil disables logging.
	Logger *log.Logger

	// Hooks observes every store created by the replay. Branches share it,
	// so it must be safe for concurrent use.
	Hooks observability.OrderingHooks

	// Bounds overrides the scenario's sentinels when set.
	Bounds *ordering.Bounds

	// Concurrency limits how many branches replay at once. Zero or less
	// means no limit.
	Concurrency int
}

// Report is the outcome of one replay.
type Report struct {
	RunID    string          `json:"run_id"`
	Scenario string          `json:"scenario"`
	Bounds   ordering.Bounds `json:"bounds"`
	Elapsed  time.Duration   `json:"elapsed"`
	Tool     buildinfo.Info  `json:"tool"`

	// Branches holds the trunk first, then every branch in file order.
	Branches []BranchResult `json:"branches"`

	stores map[string]*ordering.Store
}

// BranchResult is the final state of one branch.
type BranchResult struct {
	Name      string            `json:"name"`
	Order     []ordering.StepID `json:"order"`
	Reduction []ordering.Pair   `json:"reduction"`
	Stats     ordering.Stats    `json:"stats"`
	Failures  []string          `json:"failures,omitempty"`
}

// Failures returns every failed expectation across branches, prefixed with
// the branch name.
func (r *Report) Failures() []string {
	var out []string
	for _, b := range r.Branches {
		for _, f := range b.Failures {
			out = append(out, b.Name+": "+f)
		}
	}
	return out
}

// Err returns an EXPECTATION_FAILED error when any expectation failed.
func (r *Report) Err() error {
	failures := r.Failures()
	if len(failures) == 0 {
		return nil
	}
	return errors.Wrap(errors.ErrCodeExpectationFailed,
		&errors.ExpectationError{Failures: failures}, "scenario %s", r.Scenario)
}

// Store returns the final store of the named branch.
func (r *Report) Store(name string) (*ordering.Store, bool) {
	s, ok := r.stores[name]
	return s, ok
}

// Run replays sc. The trunk runs first; each branch then replays on its own
// copy of the trunk store.
//
// A rejected inheritance fails the run with PRECONDITION_FAILED and a cycle
// found while linearizing fails it with INVARIANT_VIOLATION. Failed
// expectations do not fail the run; they are listed in the report.
func Run(ctx context.Context, sc *Scenario, opts Options) (*Report, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	bounds := sc.Bounds()
	if opts.Bounds != nil {
		bounds = *opts.Bounds
	}
	if err := bounds.Validate(); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "sentinels")
	}

	start := time.Now()
	report := &Report{
		RunID:    uuid.NewString(),
		Tool:     buildinfo.Get(),
		Scenario: sc.Name,
		Bounds:   bounds,
		Branches: make([]BranchResult, len(sc.Branches)+1),
		stores:   make(map[string]*ordering.Store, len(sc.Branches)+1),
	}
	logger = logger.With("run", report.RunID)

	trunk := ordering.New(bounds, ordering.WithHooks(opts.Hooks))
	trunkFailures, err := apply(ctx, trunk, TrunkName, sc.Ops)
	if err != nil {
		return nil, err
	}
	logger.Debug("trunk replayed", "ops", len(sc.Ops), "steps", trunk.Len())

	// Copies are taken up front so branch goroutines never touch the trunk.
	copies := make([]*ordering.Store, len(sc.Branches))
	for i := range sc.Branches {
		copies[i] = trunk.Copy()
	}

	if report.Branches[0], err = finish(trunk, TrunkName, sc.Steps, trunkFailures); err != nil {
		return nil, err
	}
	report.stores[TrunkName] = trunk

	g, gctx := errgroup.WithContext(ctx)
	if opts.Concurrency > 0 {
		g.SetLimit(opts.Concurrency)
	}
	for i, b := range sc.Branches {
		g.Go(func() error {
			store := copies[i]
			failures, err := apply(gctx, store, b.Name, b.Ops)
			if err != nil {
				return err
			}
			res, err := finish(store, b.Name, sc.Steps, failures)
			if err != nil {
				return err
			}
			report.Branches[i+1] = res
			logger.Debug("branch replayed", "branch", b.Name, "ops", len(b.Ops), "failures", len(failures))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	for i, b := range sc.Branches {
		report.stores[b.Name] = copies[i]
	}

	report.Elapsed = time.Since(start)
	return report, nil
}

// apply runs ops against store and returns the failed expectations.
func apply(ctx context.Context, store *ordering.Store, branch string, ops []Op) ([]string, error) {
	var failures []string
	for i, op := range ops {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		switch op.Op {
		case OpOrder:
			store.AddOrder(op.Before, op.After)
		case OpInherit:
			if err := store.InheritOrdering(op.Parent, op.Existing, op.Inserted); err != nil {
				return nil, errors.Wrap(errors.ErrCodePreconditionFailed, err,
					"%s op %d: inherit from S(%d)", branch, i+1, op.Parent)
			}
		case OpExpectBefore:
			if got := store.OrderedBefore(op.Before, op.After); got != op.Expected() {
				failures = append(failures, fmt.Sprintf("op %d: %s S(%d) < S(%d): got %t, want %t",
					i+1, op.Op, op.Before, op.After, got, op.Expected()))
			}
		case OpExpectPossible:
			if got := store.PossiblyBefore(op.Before, op.After); got != op.Expected() {
				failures = append(failures, fmt.Sprintf("op %d: %s S(%d) < S(%d): got %t, want %t",
					i+1, op.Op, op.Before, op.After, got, op.Expected()))
			}
		default:
			return nil, errors.New(errors.ErrCodeInvalidScenario, "%s op %d: unknown op %q", branch, i+1, op.Op)
		}
	}
	return failures, nil
}

// finish linearizes store over steps plus every step the store knows.
func finish(store *ordering.Store, branch string, steps []ordering.StepID, failures []string) (BranchResult, error) {
	order, err := store.Topsort(stepSet(store, steps))
	if err != nil {
		if stderrors.Is(err, ordering.ErrCycle) {
			return BranchResult{}, errors.Wrap(errors.ErrCodeInvariantViolation, err, "branch %s", branch)
		}
		return BranchResult{}, errors.Wrap(errors.ErrCodeInternal, err, "branch %s", branch)
	}
	return BranchResult{
		Name:      branch,
		Order:     order,
		Reduction: store.Reduction(),
		Stats:     store.Stats(),
		Failures:  failures,
	}, nil
}

func stepSet(store *ordering.Store, steps []ordering.StepID) []ordering.StepID {
	all := make([]ordering.StepID, 0, len(steps)+store.Len())
	seen := make(map[ordering.StepID]bool, cap(all))
	for _, id := range steps {
		if !seen[id] {
			seen[id] = true
			all = append(all, id)
		}
	}
	for _, id := range store.Steps() {
		if !seen[id] {
			seen[id] = true
			all = append(all, id)
		}
	}
	return all
}
