package stream

import "testing"

func TestRange(t *testing.T) {
	s := Range(-2, 2)
	if s.Len() != 5 {
		t.Fatalf("expected 5 values, got %d", s.Len())
	}
	if s.Values[0] != -2 || s.Values[4] != 2 {
		t.Errorf("unexpected bounds: %v", s.Values)
	}
}

func TestRangeEmpty(t *testing.T) {
	if s := Range(3, 1); s.Len() != 0 {
		t.Errorf("expected empty stream, got %v", s.Values)
	}
}

func TestString(t *testing.T) {
	if got := New("x", 1, -2).String(); got != "x[1, -2]" {
		t.Errorf("unexpected string %q", got)
	}
	if got := New("empty").String(); got != "empty[] (0 values)" {
		t.Errorf("unexpected string %q", got)
	}
}
