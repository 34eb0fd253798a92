package ordering

// matrix is a square reachability matrix. Row i holds the steps that index i
// is ordered before. Growth always allocates fresh rows so that a clone and
// its source never alias.
type matrix [][]bool

// grow appends k all-false rows and k false columns to every existing row.
// Existing cells keep their positions.
func (m *matrix) grow(k int) {
	if k <= 0 {
		return
	}
	old := *m
	n := len(old) + k
	next := make(matrix, n)
	for i, row := range old {
		next[i] = make([]bool, n)
		copy(next[i], row)
	}
	for i := len(old); i < n; i++ {
		next[i] = make([]bool, n)
	}
	*m = next
}

// growInherit appends k rows and columns for children of parent. Every new
// row starts as a copy of the parent's row, and every existing row that
// reaches the parent also reaches each new child.
func (m *matrix) growInherit(k, parent int) {
	if k <= 0 {
		return
	}
	old := *m
	base := len(old)
	n := base + k
	next := make(matrix, n)
	for i, row := range old {
		next[i] = make([]bool, n)
		copy(next[i], row)
		if row[parent] {
			for j := base; j < n; j++ {
				next[i][j] = true
			}
		}
	}
	for i := base; i < n; i++ {
		next[i] = make([]bool, n)
		copy(next[i], old[parent])
	}
	*m = next
}

// clone returns a deep copy of m.
func (m matrix) clone() matrix {
	if m == nil {
		return nil
	}
	c := make(matrix, len(m))
	for i, row := range m {
		c[i] = make([]bool, len(row))
		copy(c[i], row)
	}
	return c
}
