package ordering

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/matzehuels/porder/pkg/observability"
)

var testBounds = Bounds{Start: 0, Goal: 100}

func TestNewIsEmpty(t *testing.T) {
	s := New(testBounds)

	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
	if s.String() != "" {
		t.Errorf("String() = %q, want empty", s.String())
	}
	if len(s.Steps()) != 0 {
		t.Errorf("Steps() = %v, want empty", s.Steps())
	}
	if s.Bounds() != testBounds {
		t.Errorf("Bounds() = %+v, want %+v", s.Bounds(), testBounds)
	}
}

func TestDefaultBounds(t *testing.T) {
	b := DefaultBounds()
	if b.Start != 0 || b.Goal != math.MaxInt32 {
		t.Errorf("DefaultBounds() = %+v", b)
	}
	if err := b.Validate(); err != nil {
		t.Errorf("DefaultBounds().Validate() = %v", err)
	}
}

func TestBoundsValidate(t *testing.T) {
	tests := []struct {
		name    string
		bounds  Bounds
		wantErr bool
	}{
		{"ordered", Bounds{Start: 0, Goal: 100}, false},
		{"negative start", Bounds{Start: -5, Goal: 5}, false},
		{"equal", Bounds{Start: 7, Goal: 7}, true},
		{"inverted", Bounds{Start: 100, Goal: 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.bounds.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidBounds) {
				t.Errorf("Validate() error = %v, want ErrInvalidBounds", err)
			}
		})
	}
}

func TestIsSentinel(t *testing.T) {
	if !testBounds.IsSentinel(0) || !testBounds.IsSentinel(100) {
		t.Error("IsSentinel should hold for start and goal")
	}
	if testBounds.IsSentinel(50) {
		t.Error("IsSentinel(50) should be false")
	}
}

func TestStepsFollowFirstReference(t *testing.T) {
	s := New(testBounds)
	s.AddOrder(3, 1)
	s.AddOrder(1, 7)
	s.AddOrder(0, 9) // sentinel: 9 stays unmapped

	want := []StepID{3, 1, 7}
	if diff := cmp.Diff(want, s.Steps()); diff != "" {
		t.Errorf("Steps() mismatch (-want +got):\n%s", diff)
	}
	if s.Contains(9) {
		t.Error("Contains(9) should be false after a sentinel-only insertion")
	}
	if s.Contains(0) || s.Contains(100) {
		t.Error("sentinels must never be materialized")
	}

	// Steps returns a copy.
	steps := s.Steps()
	steps[0] = 42
	if s.Steps()[0] != 3 {
		t.Error("mutating Steps() result changed the store")
	}
}

func TestCopyIndependence(t *testing.T) {
	s := New(testBounds)
	s.AddOrder(1, 2)

	c := s.Copy()
	c.AddOrder(2, 3)

	if s.Contains(3) {
		t.Error("copy mutation leaked into original mapping")
	}
	if s.OrderedBefore(1, 3) {
		t.Error("copy mutation leaked into original matrix")
	}
	if !c.OrderedBefore(1, 3) {
		t.Error("copy should see its own insertion")
	}

	s.AddOrder(5, 1)
	if c.Contains(5) {
		t.Error("original mutation leaked into copy")
	}
	if c.OrderedBefore(5, 2) {
		t.Error("original matrix mutation leaked into copy")
	}

	if &s.reach[0][0] == &c.reach[0][0] {
		t.Error("copy shares matrix rows with original")
	}
}

func TestCopyPreservesState(t *testing.T) {
	s := New(testBounds)
	s.AddOrder(1, 2)
	s.AddOrder(2, 3)
	s.AddOrder(4, 3)

	c := s.Copy()

	if c.String() != s.String() {
		t.Errorf("copy String() = %q, want %q", c.String(), s.String())
	}
	if diff := cmp.Diff(s.Steps(), c.Steps()); diff != "" {
		t.Errorf("copy Steps() mismatch (-want +got):\n%s", diff)
	}
	if c.Stats() != s.Stats() {
		t.Errorf("copy Stats() = %+v, want %+v", c.Stats(), s.Stats())
	}
	if c.Bounds() != s.Bounds() {
		t.Errorf("copy Bounds() = %+v, want %+v", c.Bounds(), s.Bounds())
	}
}

func TestCopyEmpty(t *testing.T) {
	c := New(testBounds).Copy()
	c.AddOrder(1, 2)
	if !c.OrderedBefore(1, 2) {
		t.Error("copy of empty store should accept insertions")
	}
}

func TestMatrixGrow(t *testing.T) {
	var m matrix
	m.grow(2)
	m[0][1] = true
	m.grow(1)

	want := matrix{
		{false, true, false},
		{false, false, false},
		{false, false, false},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("grow mismatch (-want +got):\n%s", diff)
	}

	m.grow(0)
	if len(m) != 3 {
		t.Errorf("grow(0) changed size to %d", len(m))
	}
}

func TestMatrixGrowInherit(t *testing.T) {
	// 0 -> 1 -> 2, parent is 1
	m := matrix{
		{false, true, true},
		{false, false, true},
		{false, false, false},
	}
	m.growInherit(2, 1)

	want := matrix{
		{false, true, true, true, true},
		{false, false, true, false, false},
		{false, false, false, false, false},
		{false, false, true, false, false},
		{false, false, true, false, false},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("growInherit mismatch (-want +got):\n%s", diff)
	}

	m[3][0] = true
	if m[4][0] {
		t.Error("inherited rows must not alias each other")
	}
}

func TestMatrixClone(t *testing.T) {
	var nilMatrix matrix
	if nilMatrix.clone() != nil {
		t.Error("clone of nil matrix should be nil")
	}

	m := matrix{{false, true}, {false, false}}
	c := m.clone()
	c[0][1] = false
	if !m[0][1] {
		t.Error("clone shares rows with source")
	}
}

func TestHooksReceiveEvents(t *testing.T) {
	rec := &recordingHooks{}
	s := New(testBounds, WithHooks(rec))

	s.AddOrder(1, 2)
	s.AddOrder(1, 2)
	_ = s.InheritOrdering(9, nil, []StepID{10})
	_ = s.InheritOrdering(2, nil, []StepID{3})
	_ = s.Copy()
	if _, err := s.Topsort([]StepID{1, 2, 3}); err != nil {
		t.Fatalf("Topsort: %v", err)
	}

	want := []string{
		"add:both_new",
		"add:redundant",
		"inherit:false",
		"inherit:true",
		"copy",
		"topsort",
	}
	if diff := cmp.Diff(want, rec.events); diff != "" {
		t.Errorf("hook events mismatch (-want +got):\n%s", diff)
	}
}

func TestWithNilHooksKeepsNoop(t *testing.T) {
	s := New(testBounds, WithHooks(nil))
	s.AddOrder(1, 2) // must not panic
	if _, ok := s.hooks.(observability.NoopOrderingHooks); !ok {
		t.Errorf("hooks = %T, want NoopOrderingHooks", s.hooks)
	}
}

type recordingHooks struct {
	observability.NoopOrderingHooks
	events []string
}

func (r *recordingHooks) OnAddOrder(c string, _ int) {
	r.events = append(r.events, "add:"+c)
}

func (r *recordingHooks) OnInherit(known bool, _, _, _ int) {
	if known {
		r.events = append(r.events, "inherit:true")
		return
	}
	r.events = append(r.events, "inherit:false")
}

func (r *recordingHooks) OnTopsort(int, time.Duration, error) {
	r.events = append(r.events, "topsort")
}

func (r *recordingHooks) OnCopy(int) {
	r.events = append(r.events, "copy")
}
