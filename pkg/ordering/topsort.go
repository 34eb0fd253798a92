package ordering

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// CycleError reports a step that reaches itself in the closure. Steps lists
// the cycle in order, starting and ending with the same step.
//
// A CycleError means the closure invariant was broken by an earlier
// insertion of a cyclic edge. It is not recoverable: the store should be
// discarded together with the search branch that owns it.
type CycleError struct {
	Steps []StepID
}

func (e *CycleError) Error() string {
	parts := make([]string, len(e.Steps))
	for i, id := range e.Steps {
		parts[i] = fmt.Sprintf("S(%d)", id)
	}
	return fmt.Sprintf("%v: %s", ErrCycle, strings.Join(parts, " < "))
}

// Is makes errors.Is(err, ErrCycle) match any *CycleError.
func (e *CycleError) Is(target error) bool { return target == ErrCycle }

// Topsort returns one linearization of all consistent with the closure.
//
// The constrained steps are ordered by a depth-first search over indices in
// allocation order, each step emitted ahead of everything it reaches. For a
// given store the result is always the same. Steps in all that hold no
// constraints follow, in their input order. A sentinel present in all is
// placed first (Start) or last (Goal). Constrained steps absent from all are
// left out, so the result is a permutation of all as long as all holds no
// duplicates.
//
// If the closure contains a cycle, Topsort returns a [*CycleError] and no
// order.
func (s *Store) Topsort(all []StepID) ([]StepID, error) {
	start := time.Now()
	order, err := s.topsort(all)
	s.hooks.OnTopsort(len(s.steps), time.Since(start), err)
	return order, err
}

func (s *Store) topsort(all []StepID) ([]StepID, error) {
	indices, err := s.dfsOrder()
	if err != nil {
		return nil, err
	}

	wanted := make(map[StepID]bool, len(all))
	hasStart, hasGoal := false, false
	for _, id := range all {
		switch id {
		case s.bounds.Start:
			hasStart = true
		case s.bounds.Goal:
			hasGoal = true
		default:
			wanted[id] = true
		}
	}

	out := make([]StepID, 0, len(all))
	if hasStart {
		out = append(out, s.bounds.Start)
	}
	for _, idx := range indices {
		if id := s.steps[idx]; wanted[id] {
			out = append(out, id)
		}
	}
	for _, id := range all {
		if s.bounds.IsSentinel(id) {
			continue
		}
		if _, ok := s.index[id]; !ok {
			out = append(out, id)
		}
	}
	if hasGoal {
		out = append(out, s.bounds.Goal)
	}
	return out, nil
}

// dfsOrder returns every index in topological order using white/gray/black
// depth-first search. Reaching a gray index means a cycle.
func (s *Store) dfsOrder() ([]int, error) {
	const (
		white = iota
		gray
		black
	)

	n := len(s.reach)
	color := make([]int, n)
	finished := make([]int, 0, n)
	var stack []int
	var cycle []int

	var visit func(i int) bool
	visit = func(i int) bool {
		color[i] = gray
		stack = append(stack, i)
		for j, before := range s.reach[i] {
			if !before {
				continue
			}
			switch color[j] {
			case white:
				if !visit(j) {
					return false
				}
			case gray:
				at := slices.Index(stack, j)
				cycle = append(slices.Clone(stack[at:]), j)
				return false
			}
		}
		stack = stack[:len(stack)-1]
		color[i] = black
		finished = append(finished, i)
		return true
	}

	for i := 0; i < n; i++ {
		if color[i] == white && !visit(i) {
			steps := make([]StepID, len(cycle))
			for k, idx := range cycle {
				steps[k] = s.steps[idx]
			}
			return nil, &CycleError{Steps: steps}
		}
	}

	slices.Reverse(finished)
	return finished, nil
}
