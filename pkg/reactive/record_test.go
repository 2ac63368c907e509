package reactive

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestMakeObservableNil(t *testing.T) {
	rt := New()
	r, err := rt.MakeObservable(nil)
	if !errors.Is(err, ErrNilRecord) {
		t.Fatalf("err = %v, want ErrNilRecord", err)
	}
	if r != nil {
		t.Errorf("record = %v, want nil", r)
	}

	defer func() {
		if recover() == nil {
			t.Error("MustObservable(nil) did not panic")
		}
	}()
	rt.MustObservable(nil)
}

func TestMakeObservableIdentity(t *testing.T) {
	rt := New()
	raw := map[string]any{"a": 1}

	r1 := rt.MustObservable(raw)
	r2 := rt.MustObservable(raw)
	r3 := rt.MustObservable(map[string]any{"a": 1})

	if r1 != r2 {
		t.Error("observing the same map twice returned different records")
	}
	if r1 == r3 {
		t.Error("observing an equal but distinct map returned the same record")
	}

	runs := 0
	rt.RunTracked(func() {
		runs++
		_ = r1.Get("a")
	})
	r2.Set("a", 2)
	if runs != 2 {
		t.Errorf("write through second wrapper: runs = %d, want 2", runs)
	}
}

func TestRecordWritesThroughToRaw(t *testing.T) {
	rt := New()
	raw := map[string]any{"title": "x"}
	r := rt.MustObservable(raw)

	r.Set("title", "y")
	r.Set("new", 42)

	want := map[string]any{"title": "y", "new": 42}
	if diff := cmp.Diff(want, raw); diff != "" {
		t.Errorf("raw map mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, r.Raw()); diff != "" {
		t.Errorf("Raw() mismatch (-want +got):\n%s", diff)
	}
}

func TestAbsentFieldIsTracked(t *testing.T) {
	rt := New()
	r := rt.MustObservable(map[string]any{})

	var seen []any
	var present []bool
	rt.RunTracked(func() {
		v, ok := r.Lookup("later")
		seen = append(seen, v)
		present = append(present, ok)
	})

	r.Set("later", "here")

	if diff := cmp.Diff([]any{nil, "here"}, seen); diff != "" {
		t.Errorf("seen mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]bool{false, true}, present); diff != "" {
		t.Errorf("present mismatch (-want +got):\n%s", diff)
	}
	if r.Get("missing") != nil {
		t.Errorf("Get(missing) = %v, want nil", r.Get("missing"))
	}
}

func TestRecordUntrackedAccessors(t *testing.T) {
	rt := New()
	r := rt.MustObservable(map[string]any{"b": 2, "a": 1, "c": 3})

	runs := 0
	rt.RunTracked(func() {
		runs++
		_ = r.Peek("a")
		_ = r.Has("b")
		_ = r.Keys()
	})

	r.Set("a", 10)
	r.Set("b", 20)
	if runs != 1 {
		t.Errorf("untracked accessors created dependencies: runs = %d", runs)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, r.Keys()); diff != "" {
		t.Errorf("Keys mismatch (-want +got):\n%s", diff)
	}
	if !r.Has("c") || r.Has("d") {
		t.Error("Has returned wrong presence")
	}
}

func TestReadsOutsideComputationAllocateNothing(t *testing.T) {
	rt := New()
	r := rt.MustObservable(map[string]any{"a": 1})

	_ = r.Get("a")
	_, _ = r.Lookup("b")
	r.Set("a", 2)

	if rt.Cells() != 0 {
		t.Errorf("Cells() = %d, want 0", rt.Cells())
	}
}

func TestNestedMapsAreShallow(t *testing.T) {
	rt := New()
	inner := map[string]any{"title": "x"}
	outer := rt.MustObservable(map[string]any{"state": inner})

	runs := 0
	rt.RunTracked(func() {
		runs++
		nested := outer.Get("state").(map[string]any)
		_ = nested["title"]
	})

	// A plain write to the nested map is invisible.
	inner["title"] = "y"
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}

	// Observing the nested map separately makes its fields reactive.
	state := rt.MustObservable(inner)
	rt.RunTracked(func() {
		runs++
		_ = state.Get("title")
	})
	state.Set("title", "z")
	if runs != 3 {
		t.Errorf("runs = %d, want 3", runs)
	}
}

func TestTrySetReturnsComputationError(t *testing.T) {
	rt := New()
	r := rt.MustObservable(map[string]any{"n": 0})

	rt.RunTracked(func() {
		if r.Get("n").(int) > 0 {
			panic("too big")
		}
	}, Named("guarded"))

	err := r.TrySet("n", 1)
	var ce *ComputationError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ComputationError, got %T (%v)", err, err)
	}
	if ce.Computation != "guarded" {
		t.Errorf("Computation = %q, want guarded", ce.Computation)
	}
	if ce.Value != "too big" {
		t.Errorf("Value = %v, want too big", ce.Value)
	}
	if r.Peek("n") != 1 {
		t.Errorf("value not assigned: %v", r.Peek("n"))
	}
}

func TestCellUpdateAndNames(t *testing.T) {
	rt := New()
	count := NewCell(rt, "count", 1)
	label := NewCell(rt, "label", "a")

	if count.ID() == label.ID() {
		t.Fatal("cells share an ID")
	}
	if rt.CellName(count.ID()) != "count" || label.Name() != "label" {
		t.Errorf("names = %q/%q", rt.CellName(count.ID()), label.Name())
	}
	if rt.CellName(CellID(99)) != "" {
		t.Error("CellName of unknown id should be empty")
	}

	var seen []int
	rt.RunTracked(func() {
		seen = append(seen, count.Read())
	})
	count.Update(func(n int) int { return n * 5 })

	if diff := cmp.Diff([]int{1, 5}, seen); diff != "" {
		t.Errorf("seen mismatch (-want +got):\n%s", diff)
	}
}
