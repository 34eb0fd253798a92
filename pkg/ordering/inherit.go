package ordering

import "fmt"

// InheritOrdering propagates the constraints of parent to the steps that
// refine it. Call it before ordering the children among themselves.
//
// If parent holds no constraints it was only ever ordered between Start and
// Goal, so there is nothing to propagate and the call is a no-op.
//
// Otherwise:
//   - every inserted child gets a fresh index whose row copies the parent's
//     successors, and every step before the parent becomes a predecessor of
//     the child;
//   - every existing child that holds no constraints yet is first added as an
//     isolated step;
//   - every successor of the parent becomes a successor of every existing
//     child.
//
// Existing children do not gain the parent's predecessors. The caller is
// responsible for having checked that the parent's successors can be added to
// each existing child.
//
// Every inserted child must be new: if one already holds constraints, is a
// sentinel, or is also listed in existing, InheritOrdering returns an error
// wrapping [ErrStepAlreadyOrdered] or [ErrSentinelStep] and leaves the store
// unchanged.
func (s *Store) InheritOrdering(parent StepID, existing, inserted []StepID) error {
	p, ok := s.index[parent]
	if !ok {
		s.hooks.OnInherit(false, len(existing), len(inserted), len(s.steps))
		return nil
	}
	if err := s.checkInserted(existing, inserted); err != nil {
		return err
	}

	reused := make([]int, 0, len(existing))
	for _, id := range existing {
		if s.bounds.IsSentinel(id) {
			continue
		}
		idx, created := s.assign(id)
		if created {
			s.reach.grow(1)
		}
		reused = append(reused, idx)
	}

	for _, id := range inserted {
		s.assign(id)
	}
	s.reach.growInherit(len(inserted), p)

	succ := s.reach[p]
	for j, after := range succ {
		if !after {
			continue
		}
		for _, e := range reused {
			if e != j {
				s.reach[e][j] = true
			}
		}
	}

	s.stats.Inherits++
	s.hooks.OnInherit(true, len(existing), len(inserted), len(s.steps))
	return nil
}

func (s *Store) checkInserted(existing, inserted []StepID) error {
	seen := make(map[StepID]bool, len(inserted)+len(existing))
	for _, id := range existing {
		seen[id] = true
	}
	for _, id := range inserted {
		if s.bounds.IsSentinel(id) {
			return fmt.Errorf("%w: %d", ErrSentinelStep, id)
		}
		if _, ok := s.index[id]; ok || seen[id] {
			return fmt.Errorf("%w: %d", ErrStepAlreadyOrdered, id)
		}
		seen[id] = true
	}
	return nil
}
