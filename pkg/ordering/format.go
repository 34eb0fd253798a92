package ordering

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Pair is a single precedence: Before is ordered before After.
type Pair struct {
	Before StepID `json:"before"`
	After  StepID `json:"after"`
}

// String renders every pair recorded in the closure as "S(a) < S(b)",
// row by row in index order, separated by ", ". An empty store renders as "".
func (s *Store) String() string {
	var sb strings.Builder
	for i, row := range s.reach {
		for j, before := range row {
			if !before {
				continue
			}
			if sb.Len() > 0 {
				sb.WriteString(", ")
			}
			fmt.Fprintf(&sb, "S(%d) < S(%d)", s.steps[i], s.steps[j])
		}
	}
	return sb.String()
}

// Pairs returns every pair of the closure in index order.
func (s *Store) Pairs() []Pair {
	var pairs []Pair
	for i, row := range s.reach {
		for j, before := range row {
			if before {
				pairs = append(pairs, Pair{Before: s.steps[i], After: s.steps[j]})
			}
		}
	}
	return pairs
}

// Reduction returns the transitive reduction of the closure: the pairs
// (a, b) for which no step c satisfies a < c < b. These are the edges of
// the Hasse diagram of the order, in index order.
//
// Time complexity is O(N³) in the worst case.
func (s *Store) Reduction() []Pair {
	var pairs []Pair
	n := len(s.reach)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if !s.reach[i][j] || s.implied(i, j) {
				continue
			}
			pairs = append(pairs, Pair{Before: s.steps[i], After: s.steps[j]})
		}
	}
	return pairs
}

// implied reports whether some intermediate index k has i -> k -> j.
func (s *Store) implied(i, j int) bool {
	for k, before := range s.reach[i] {
		if before && k != i && k != j && s.reach[k][j] {
			return true
		}
	}
	return false
}

// WriteMatrix writes a debugging dump of the store: one "O(i) = S(id)" line
// per index, then one line of 0/1 cells per matrix row.
func (s *Store) WriteMatrix(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for i, id := range s.steps {
		fmt.Fprintf(bw, "O(%d) = S(%d)\n", i, id)
	}
	for _, row := range s.reach {
		for _, before := range row {
			if before {
				bw.WriteByte('1')
			} else {
				bw.WriteByte('0')
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
