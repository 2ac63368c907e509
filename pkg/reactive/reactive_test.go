package reactive

import (
	"errors"
	"fmt"
	"testing"
)

// Behavioural tests for tracking and replay.

func TestRenderScenario(t *testing.T) {
	rt := New()
	state := rt.MustObservable(map[string]any{"title": "x"})

	var outputs []string
	rt.RunTracked(func() {
		outputs = append(outputs, fmt.Sprintf("<h3>%s</h3>", state.Get("title")))
	})

	if len(outputs) != 1 || outputs[0] != "<h3>x</h3>" {
		t.Fatalf("initial render = %v, want [<h3>x</h3>]", outputs)
	}

	state.Set("title", "y")

	if len(outputs) != 2 {
		t.Fatalf("expected exactly one re-render, got %d renders", len(outputs))
	}
	if outputs[1] != "<h3>y</h3>" {
		t.Errorf("re-render = %q, want %q", outputs[1], "<h3>y</h3>")
	}
}

func TestTrackingReplaysOncePerWrite(t *testing.T) {
	rt := New()
	o := rt.MustObservable(map[string]any{"f": 0})

	runs := 0
	rt.RunTracked(func() {
		runs++
		_ = o.Get("f")
	})

	for i := 1; i <= 5; i++ {
		o.Set("f", i)
		if runs != i+1 {
			t.Fatalf("after write %d: runs = %d, want %d", i, runs, i+1)
		}
	}
}

func TestNoSpuriousTracking(t *testing.T) {
	rt := New()
	o := rt.MustObservable(map[string]any{"f": 1})

	// Read outside any computation.
	_ = o.Get("f")

	runs := 0
	rt.RunTracked(func() {
		runs++
		_ = o.Get("other")
	})

	o.Set("f", 2)
	if runs != 1 {
		t.Errorf("write to untracked field replayed a computation: runs = %d", runs)
	}
	if rt.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", rt.Depth())
	}
}

func TestSetSemantics(t *testing.T) {
	rt := New()
	o := rt.MustObservable(map[string]any{"f": 1})

	runs := 0
	c := rt.RunTracked(func() {
		runs++
		for i := 0; i < 10; i++ {
			_ = o.Get("f")
		}
	})

	if got := rt.Dependents(o.CellID("f")); got != 1 {
		t.Errorf("Dependents = %d, want 1", got)
	}
	if got := len(c.Sources()); got != 1 {
		t.Errorf("len(Sources) = %d, want 1", got)
	}

	o.Set("f", 2)
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}

func TestNoEqualityShortCircuit(t *testing.T) {
	rt := New()
	o := rt.MustObservable(map[string]any{"f": "same"})
	n := NewCell(rt, "n", 7)

	recordRuns, cellRuns := 0, 0
	rt.RunTracked(func() {
		recordRuns++
		_ = o.Get("f")
	})
	rt.RunTracked(func() {
		cellRuns++
		_ = n.Read()
	})

	o.Set("f", "same")
	n.Write(7)

	if recordRuns != 2 {
		t.Errorf("record runs = %d, want 2", recordRuns)
	}
	if cellRuns != 2 {
		t.Errorf("cell runs = %d, want 2", cellRuns)
	}
}

func TestIndependentObservables(t *testing.T) {
	rt := New()
	o1 := rt.MustObservable(map[string]any{"a": 1})
	o2 := rt.MustObservable(map[string]any{"b": 1})

	runs := 0
	rt.RunTracked(func() {
		runs++
		_ = o1.Get("a")
	})

	o2.Set("b", 2)
	o2.Set("b", 3)
	if runs != 1 {
		t.Errorf("runs = %d, want 1", runs)
	}

	o1.Set("a", 2)
	if runs != 2 {
		t.Errorf("runs = %d, want 2", runs)
	}
}

func TestSameFieldNameDifferentRecords(t *testing.T) {
	rt := New()
	o1 := rt.MustObservable(map[string]any{"title": "a"})
	o2 := rt.MustObservable(map[string]any{"title": "b"})

	runs := 0
	rt.RunTracked(func() {
		runs++
		_ = o1.Get("title")
	})

	o2.Set("title", "c")
	if runs != 1 {
		t.Errorf("write to other record's field replayed: runs = %d", runs)
	}
}

func TestStackBalanceOnPanic(t *testing.T) {
	rt := New()
	o := rt.MustObservable(map[string]any{"fail": false})

	c := rt.RunTracked(func() {
		if o.Get("fail").(bool) {
			panic("boom")
		}
	})

	before := rt.Depth()
	func() {
		defer func() {
			if r := recover(); r != "boom" {
				t.Fatalf("recovered %v, want boom", r)
			}
		}()
		o.Set("fail", true)
	}()

	if rt.Depth() != before {
		t.Fatalf("Depth() after panic = %d, want %d", rt.Depth(), before)
	}
	if rt.Active() != nil {
		t.Fatalf("Active() after panic = %v, want nil", rt.Active())
	}

	// Tracking still works afterwards.
	o.Set("fail", false)
	if c.Runs() != 3 {
		t.Errorf("Runs() = %d, want 3", c.Runs())
	}
}

func TestTryInvokeReturnsError(t *testing.T) {
	rt := New()
	wantErr := errors.New("render failed")
	fail := false

	c := rt.RunTracked(func() {
		if fail {
			panic(wantErr)
		}
	}, Named("view"))

	fail = true
	err := c.TryInvoke()

	var ce *ComputationError
	if !errors.As(err, &ce) {
		t.Fatalf("expected *ComputationError, got %T (%v)", err, err)
	}
	if ce.Computation != "view" {
		t.Errorf("Computation = %q, want view", ce.Computation)
	}
	if !errors.Is(err, wantErr) {
		t.Errorf("errors.Is(err, wantErr) = false")
	}
	if rt.Depth() != 0 {
		t.Errorf("Depth() = %d, want 0", rt.Depth())
	}
}

func TestNestedComputationAttribution(t *testing.T) {
	rt := New()
	o := rt.MustObservable(map[string]any{"before": 0, "inner": 0, "after": 0})

	outerRuns, innerRuns := 0, 0
	var inner *Computation
	outer := rt.RunTracked(func() {
		outerRuns++
		_ = o.Get("before")
		inner = rt.RunTracked(func() {
			innerRuns++
			_ = o.Get("inner")
		}, Named("inner"))
		_ = o.Get("after")
	}, Named("outer"))

	if outerRuns != 1 || innerRuns != 1 {
		t.Fatalf("initial runs outer=%d inner=%d, want 1/1", outerRuns, innerRuns)
	}
	first := inner

	o.Set("inner", 1)
	if outerRuns != 1 {
		t.Errorf("inner field write replayed outer: outerRuns = %d", outerRuns)
	}
	if innerRuns != 2 {
		t.Errorf("innerRuns = %d, want 2", innerRuns)
	}

	o.Set("after", 1)
	if outerRuns != 2 {
		t.Errorf("after field write: outerRuns = %d, want 2", outerRuns)
	}

	o.Set("before", 1)
	if outerRuns != 3 {
		t.Errorf("before field write: outerRuns = %d, want 3", outerRuns)
	}

	if !first.Disposed() {
		t.Errorf("inner computation from an earlier outer run should be disposed")
	}
	if inner.Disposed() {
		t.Errorf("inner computation from the latest outer run should be live")
	}
	if outer.Disposed() {
		t.Errorf("outer computation disposed")
	}
}

func TestManualInvoke(t *testing.T) {
	rt := New()
	runs := 0
	c := rt.RunTracked(func() { runs++ })

	invoke := c.Invoker()
	invoke()
	c.Invoke()

	if runs != 3 {
		t.Errorf("runs = %d, want 3", runs)
	}
}

func TestUntracked(t *testing.T) {
	rt := New()
	o := rt.MustObservable(map[string]any{"f": 1})

	runs := 0
	rt.RunTracked(func() {
		runs++
		rt.Untracked(func() {
			_ = o.Get("f")
			if rt.Active() != nil {
				t.Error("Active() inside Untracked should be nil")
			}
		})
	})

	o.Set("f", 2)
	if runs != 1 {
		t.Errorf("untracked read created a dependency: runs = %d", runs)
	}
}

func TestRuntimesAreIndependent(t *testing.T) {
	raw := map[string]any{"f": 1}
	rt1, rt2 := New(), New()
	o1 := rt1.MustObservable(raw)
	o2 := rt2.MustObservable(raw)

	runs := 0
	rt1.RunTracked(func() {
		runs++
		_ = o1.Get("f")
	})

	o2.Set("f", 2)
	if runs != 1 {
		t.Errorf("write through another runtime replayed: runs = %d", runs)
	}
	if raw["f"] != 2 {
		t.Errorf("raw[f] = %v, want 2", raw["f"])
	}
}
