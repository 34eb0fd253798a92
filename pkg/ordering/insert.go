package ordering

// AddOrder records earlier < later and restores the transitive closure.
//
// Constraints against the sentinels are implied and never stored: adding
// Start < x or x < Goal is a no-op. Constraints that would order a step
// before Start, after Goal, or before itself can never hold and are also
// ignored; callers guard against them with [Store.PossiblyBefore].
//
// The closure is maintained incrementally by one of four cases, chosen by
// which endpoints already hold an index:
//
//  1. Neither known: two fresh indices joined by a single edge.
//  2. Only earlier known: everything before earlier is now before later.
//  3. Only later known: earlier inherits later's successors.
//  4. Both known: every step in {earlier} ∪ pred(earlier) is joined to every
//     step in {later} ∪ succ(later).
//
// AddOrder does not check that the new edge keeps the relation acyclic. If
// later already reaches earlier, case 4 leaves a cycle in the matrix, which
// [Store.Topsort] reports as [ErrCycle].
//
// Cases 1-3 cost O(N) plus one matrix growth; case 4 is O(N²) in the worst
// case and O(1) when the pair is already ordered.
func (s *Store) AddOrder(earlier, later StepID) {
	c := s.addOrder(earlier, later)
	s.stats.record(c)
	s.hooks.OnAddOrder(c.String(), len(s.steps))
}

func (s *Store) addOrder(earlier, later StepID) InsertCase {
	if earlier == s.bounds.Start || later == s.bounds.Goal {
		return CaseSentinel
	}
	if earlier == later || earlier == s.bounds.Goal || later == s.bounds.Start {
		return CaseSentinel
	}

	lhs, hasLHS := s.index[earlier]
	rhs, hasRHS := s.index[later]

	switch {
	case !hasLHS && !hasRHS:
		lhs, _ = s.assign(earlier)
		rhs, _ = s.assign(later)
		s.reach.grow(2)
		s.reach[lhs][rhs] = true
		return CaseBothNew

	case hasLHS && !hasRHS:
		rhs, _ = s.assign(later)
		s.reach.grow(1)
		for k := 0; k < rhs; k++ {
			if s.reach[k][lhs] {
				s.reach[k][rhs] = true
			}
		}
		s.reach[lhs][rhs] = true
		return CaseLaterNew

	case !hasLHS && hasRHS:
		lhs, _ = s.assign(earlier)
		s.reach.grow(1)
		copy(s.reach[lhs], s.reach[rhs])
		s.reach[lhs][rhs] = true
		return CaseEarlierNew
	}

	if s.reach[lhs][rhs] {
		return CaseRedundant
	}
	s.bridge(lhs, rhs)
	return CaseBothKnown
}

// bridge closes the relation across a new edge lhs -> rhs between two known
// indices. Self-loop cells are never written.
func (s *Store) bridge(lhs, rhs int) {
	n := len(s.steps)
	from := s.reach[rhs]
	for k := 0; k < n; k++ {
		row := s.reach[k]
		if (k != lhs && !row[lhs]) || row[rhs] {
			continue
		}
		for l := 0; l < n; l++ {
			if (l == rhs || from[l]) && !row[l] && k != l {
				row[l] = true
			}
		}
	}
}
