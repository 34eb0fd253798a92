package ordering

import "testing"

func TestOrderedBefore_Sentinels(t *testing.T) {
	s := New(testBounds)
	s.AddOrder(1, 2)

	// 1 and 2 are known, 50 has never been referenced.
	for _, x := range []StepID{1, 2, 50} {
		if !s.OrderedBefore(0, x) {
			t.Errorf("OrderedBefore(start, %d) should be true", x)
		}
		if !s.OrderedBefore(x, 100) {
			t.Errorf("OrderedBefore(%d, goal) should be true", x)
		}
		if s.OrderedBefore(100, x) {
			t.Errorf("OrderedBefore(goal, %d) should be false", x)
		}
		if s.OrderedBefore(x, 0) {
			t.Errorf("OrderedBefore(%d, start) should be false", x)
		}
	}

	if !s.OrderedBefore(0, 100) {
		t.Error("OrderedBefore(start, goal) should be true")
	}
	if s.OrderedBefore(100, 0) {
		t.Error("OrderedBefore(goal, start) should be false")
	}
}

func TestOrderedBefore_Unmapped(t *testing.T) {
	s := New(testBounds)
	s.AddOrder(1, 2)

	tests := []struct {
		a, b StepID
		want bool
	}{
		{1, 2, true},
		{2, 1, false},
		{1, 1, false},
		{1, 7, false},
		{7, 2, false},
		{7, 8, false},
	}
	for _, tt := range tests {
		if got := s.OrderedBefore(tt.a, tt.b); got != tt.want {
			t.Errorf("OrderedBefore(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}

func TestPossiblyBefore(t *testing.T) {
	s := New(testBounds)
	s.AddOrder(1, 2)
	s.AddOrder(2, 3)
	s.AddOrder(4, 5)

	tests := []struct {
		name string
		a, b StepID
		want bool
	}{
		{"same step", 2, 2, false},
		{"same unmapped step", 9, 9, false},
		{"same sentinel", 0, 0, false},
		{"after goal", 100, 2, false},
		{"before start", 2, 0, false},
		{"goal before start", 100, 0, false},
		{"from start", 0, 3, true},
		{"to goal", 3, 100, true},
		{"start to goal", 0, 100, true},
		{"already ordered", 1, 3, true},
		{"reverse of ordered", 3, 1, false},
		{"unrelated known", 1, 4, true},
		{"unrelated known reverse", 5, 1, true},
		{"unmapped earlier", 9, 1, true},
		{"unmapped later", 3, 9, true},
		{"both unmapped", 8, 9, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.PossiblyBefore(tt.a, tt.b); got != tt.want {
				t.Errorf("PossiblyBefore(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestConcreteChainScenario(t *testing.T) {
	s := New(Bounds{Start: 0, Goal: 100})
	s.AddOrder(1, 2)
	s.AddOrder(2, 3)

	if !s.OrderedBefore(1, 3) {
		t.Error("OrderedBefore(1, 3) should be true")
	}
	if s.OrderedBefore(3, 1) {
		t.Error("OrderedBefore(3, 1) should be false")
	}
	if s.PossiblyBefore(3, 1) {
		t.Error("PossiblyBefore(3, 1) should be false")
	}

	got, err := s.Topsort([]StepID{1, 2, 3})
	if err != nil {
		t.Fatalf("Topsort: %v", err)
	}
	want := []StepID{1, 2, 3}
	if len(got) != len(want) {
		t.Fatalf("Topsort() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Topsort() = %v, want %v", got, want)
		}
	}
}
