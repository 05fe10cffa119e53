package redlight

import (
	"testing"
	"time"
)

func TestRandomRangeBounds(t *testing.T) {
	r := NewRandomRange(7)
	lo, hi := 2*time.Second, 5*time.Second

	for i := 0; i < 10000; i++ {
		d := r.Between(lo, hi)
		if d < lo || d >= hi {
			t.Fatalf("draw %d = %v, outside [%v, %v)", i, d, lo, hi)
		}
		if d%time.Millisecond != 0 {
			t.Fatalf("draw %v is not whole milliseconds", d)
		}
	}
}

func TestRandomRangeDegenerate(t *testing.T) {
	r := NewRandomRange(1)
	if d := r.Between(3*time.Second, 3*time.Second); d != 3*time.Second {
		t.Errorf("equal bounds should return lo, got %v", d)
	}
	if d := r.Between(3*time.Second, time.Second); d != 3*time.Second {
		t.Errorf("inverted bounds should return lo, got %v", d)
	}
}

func TestRandomRangeUniform(t *testing.T) {
	r := NewRandomRange(42)
	lo, hi := 3*time.Second, 7*time.Second
	const (
		draws   = 40000
		buckets = 8
	)

	var counts [buckets]int
	width := (hi - lo) / buckets
	for i := 0; i < draws; i++ {
		counts[(r.Between(lo, hi)-lo)/width]++
	}

	expected := draws / buckets
	for i, c := range counts {
		if c < expected*85/100 || c > expected*115/100 {
			t.Errorf("bucket %d has %d draws, expected about %d", i, c, expected)
		}
	}
}

func TestRandomRangeDeterminism(t *testing.T) {
	a := NewRandomRange(99)
	b := NewRandomRange(99)
	for i := 0; i < 100; i++ {
		if x, y := a.Between(0, time.Minute), b.Between(0, time.Minute); x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
	}
}
