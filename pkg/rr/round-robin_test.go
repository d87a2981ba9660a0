package rr

import (
	"sync/atomic"
	"testing"
)

func TestNext(t *testing.T) {
	targets := []string{"a", "b", "c"}

	var list atomic.Pointer[[]string]
	list.Store(&targets)

	r := New(&list)

	if r.Count() != 3 {
		t.Fatalf("count = %d, want 3", r.Count())
	}

	var got []string
	for i := 0; i < 6; i++ {
		v, ok := r.Next()
		if !ok {
			t.Fatal("Next returned not ok")
		}
		got = append(got, v)
	}

	want := []string{"a", "b", "c", "a", "b", "c"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("rotation %v, want %v", got, want)
		}
	}
}

func TestNextEmpty(t *testing.T) {
	var targets []string

	var list atomic.Pointer[[]string]
	list.Store(&targets)

	r := New(&list)

	if _, ok := r.Next(); ok {
		t.Fatal("expected not ok on empty list")
	}
	if r.Count() != 0 {
		t.Fatalf("count = %d, want 0", r.Count())
	}
}

func TestHotSwap(t *testing.T) {
	targets := []string{"a"}

	var list atomic.Pointer[[]string]
	list.Store(&targets)

	r := New(&list)

	swapped := []string{"x", "y"}
	list.Store(&swapped)

	v, ok := r.Next()
	if !ok {
		t.Fatal("Next returned not ok")
	}
	if v != "x" && v != "y" {
		t.Fatalf("got %q after swap", v)
	}
}
