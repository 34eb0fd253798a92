// Package scenario replays scripted ordering operations against an
// [ordering.Store] and checks the resulting closure.
//
// A scenario is a trunk of operations followed by any number of named
// branches. Every branch starts from a copy of the trunk store, the way a
// planner branches its search, and branches are replayed concurrently.
//
// Scenarios are read from TOML or YAML:
//
//	name  = "refine"
//	steps = [1, 5, 9]
//
//	[sentinels]
//	start = 0
//	goal  = 100
//
//	[[ops]]
//	op     = "order"
//	before = 1
//	after  = 5
//
//	[[branches]]
//	name = "split"
//
//	  [[branches.ops]]
//	  op       = "inherit"
//	  parent   = 5
//	  inserted = [6, 7]
package scenario

import (
	"slices"

	"github.com/matzehuels/porder/pkg/errors"
	"github.com/matzehuels/porder/pkg/ordering"
)

// TrunkName is the report name of the trunk branch.
const TrunkName = "trunk"

// Operation kinds.
const (
	OpOrder          = "order"
	OpInherit        = "inherit"
	OpExpectBefore   = "expect-before"
	OpExpectPossible = "expect-possible"
)

var opKinds = []string{OpOrder, OpInherit, OpExpectBefore, OpExpectPossible}

// Scenario is a scripted replay.
type Scenario struct {
	// Name labels the scenario in reports.
	Name string `toml:"name" yaml:"name" json:"name"`

	// Steps is the plan's step set passed to Topsort. Steps created by
	// operations but missing here are appended in first-reference order.
	Steps []ordering.StepID `toml:"steps" yaml:"steps" json:"steps,omitempty"`

	// Sentinels overrides [ordering.DefaultBounds] when set.
	Sentinels *ordering.Bounds `toml:"sentinels" yaml:"sentinels" json:"sentinels,omitempty"`

	// Ops run on the trunk store.
	Ops []Op `toml:"ops" yaml:"ops" json:"ops"`

	// Branches each run on their own copy of the trunk store.
	Branches []Branch `toml:"branches" yaml:"branches" json:"branches,omitempty"`
}

// Branch is a named continuation of the trunk.
type Branch struct {
	Name string `toml:"name" yaml:"name" json:"name"`
	Ops  []Op   `toml:"ops" yaml:"ops" json:"ops"`
}

// Op is one scripted operation.
//
// order uses Before and After. inherit uses Parent, Existing and Inserted.
// expect-before and expect-possible query Before against After and compare
// with Want, which defaults to true.
type Op struct {
	Op       string            `toml:"op" yaml:"op" json:"op"`
	Before   ordering.StepID   `toml:"before" yaml:"before" json:"before,omitempty"`
	After    ordering.StepID   `toml:"after" yaml:"after" json:"after,omitempty"`
	Parent   ordering.StepID   `toml:"parent" yaml:"parent" json:"parent,omitempty"`
	Existing []ordering.StepID `toml:"existing" yaml:"existing" json:"existing,omitempty"`
	Inserted []ordering.StepID `toml:"inserted" yaml:"inserted" json:"inserted,omitempty"`
	Want     *bool             `toml:"want" yaml:"want" json:"want,omitempty"`
}

// Expected returns Want, or true when it is unset.
func (o Op) Expected() bool {
	return o.Want == nil || *o.Want
}

// Bounds returns the scenario's sentinels, or the defaults.
func (s *Scenario) Bounds() ordering.Bounds {
	if s.Sentinels != nil {
		return *s.Sentinels
	}
	return ordering.DefaultBounds()
}

// Branch returns the named branch.
func (s *Scenario) Branch(name string) (Branch, bool) {
	i := slices.IndexFunc(s.Branches, func(b Branch) bool { return b.Name == name })
	if i < 0 {
		return Branch{}, false
	}
	return s.Branches[i], true
}

// Validate checks the scenario's structure. It does not replay anything.
func (s *Scenario) Validate() error {
	if err := s.Bounds().Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidScenario, err, "sentinels")
	}
	if err := validateOps(TrunkName, s.Ops); err != nil {
		return err
	}

	seen := make(map[string]bool, len(s.Branches))
	for _, b := range s.Branches {
		if err := errors.ValidateBranchName(b.Name); err != nil {
			return err
		}
		if b.Name == TrunkName || seen[b.Name] {
			return errors.New(errors.ErrCodeInvalidScenario, "duplicate branch name %q", b.Name)
		}
		seen[b.Name] = true
		if err := validateOps(b.Name, b.Ops); err != nil {
			return err
		}
	}
	return nil
}

func validateOps(branch string, ops []Op) error {
	for i, op := range ops {
		if !slices.Contains(opKinds, op.Op) {
			return errors.New(errors.ErrCodeInvalidScenario, "%s op %d: unknown op %q", branch, i+1, op.Op)
		}
		if op.Op == OpInherit && len(op.Existing)+len(op.Inserted) == 0 {
			return errors.New(errors.ErrCodeInvalidScenario, "%s op %d: inherit without children", branch, i+1)
		}
		if op.Op != OpInherit && (len(op.Existing) > 0 || len(op.Inserted) > 0) {
			return errors.New(errors.ErrCodeInvalidScenario, "%s op %d: children only apply to inherit", branch, i+1)
		}
	}
	return nil
}
