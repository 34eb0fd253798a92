package ordering

// OrderedBefore reports whether a is definitely ordered before b.
//
// Sentinels are resolved first: nothing is before Start and Goal is before
// nothing; Start is before, and Goal after, every other step. A step that
// holds no constraints is not ordered relative to any other non-sentinel
// step. Runs in constant time.
func (s *Store) OrderedBefore(a, b StepID) bool {
	if b == s.bounds.Start || a == s.bounds.Goal {
		return false
	}
	if a == s.bounds.Start || b == s.bounds.Goal {
		return true
	}

	i, ok := s.index[a]
	if !ok {
		return false
	}
	j, ok := s.index[b]
	if !ok || i == j {
		return false
	}
	return s.reach[i][j]
}

// PossiblyBefore reports whether the constraint a < b could be added without
// creating a cycle. It is false exactly when a and b are the same step or b
// is already ordered before a.
//
// A step that holds no constraints can be placed before or after anything,
// so PossiblyBefore is true whenever either step is unknown.
func (s *Store) PossiblyBefore(a, b StepID) bool {
	if a == b {
		return false
	}
	if b == s.bounds.Start || a == s.bounds.Goal {
		return false
	}
	if a == s.bounds.Start || b == s.bounds.Goal {
		return true
	}

	i, ok := s.index[a]
	if !ok {
		return true
	}
	j, ok := s.index[b]
	if !ok {
		return true
	}
	return s.reach[i][j] || !s.reach[j][i]
}
