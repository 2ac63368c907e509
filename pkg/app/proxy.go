package app

import (
	"fmt"
	"sort"
	"strings"

	"github.com/vango-dev/tinyvue/pkg/reactive"
)

// Proxy is the render-time view of an app's state: setup state first,
// data second. Reads inside a render are tracked.
type Proxy struct {
	rt    *reactive.Runtime
	setup *reactive.Record
	data  *reactive.Record
}

// owner returns the record that holds key.
func (p *Proxy) owner(key string) *reactive.Record {
	if p.setup.Has(key) {
		return p.setup
	}
	return p.data
}

// Get reads key from setup state if present there, otherwise from data.
func (p *Proxy) Get(key string) any {
	return p.owner(key).Get(key)
}

// Set writes key to setup state if present there, otherwise to data.
func (p *Proxy) Set(key string, value any) {
	p.owner(key).Set(key, value)
}

// TrySet is Set with a panic from a re-render returned as an error.
func (p *Proxy) TrySet(key string, value any) error {
	return p.owner(key).TrySet(key, value)
}

// Record returns the value stored under key as an observed record.
// Plain maps are observed on first access; the same map always yields the
// same record. Nil when the value is not a map.
func (p *Proxy) Record(key string) *reactive.Record {
	return p.observe(p.Get(key))
}

func (p *Proxy) observe(v any) *reactive.Record {
	switch v := v.(type) {
	case *reactive.Record:
		return v
	case map[string]any:
		if v == nil {
			return nil
		}
		return p.rt.MustObservable(v)
	}
	return nil
}

// Path resolves a dotted path such as "state.title". The first segment goes
// through Get; the rest are fields of nested records. Missing segments
// yield nil.
func (p *Proxy) Path(path string) any {
	segs := strings.Split(path, ".")
	v := p.Get(segs[0])
	for _, seg := range segs[1:] {
		rec := p.observe(v)
		if rec == nil {
			return nil
		}
		v = rec.Get(seg)
	}
	return v
}

// SetPath writes value at a dotted path. Every segment but the last must
// resolve to a record.
func (p *Proxy) SetPath(path string, value any) error {
	segs := strings.Split(path, ".")
	if len(segs) == 1 {
		return p.TrySet(path, value)
	}

	var rec *reactive.Record
	p.rt.Untracked(func() {
		rec = p.Record(segs[0])
		for _, seg := range segs[1 : len(segs)-1] {
			if rec == nil {
				return
			}
			rec = p.observe(rec.Get(seg))
		}
	})
	if rec == nil {
		return fmt.Errorf("%w: %q", ErrPath, path)
	}
	return rec.TrySet(segs[len(segs)-1], value)
}

// Keys returns the merged top-level keys, sorted.
func (p *Proxy) Keys() []string {
	seen := make(map[string]struct{})
	for _, k := range p.setup.Keys() {
		seen[k] = struct{}{}
	}
	for _, k := range p.data.Keys() {
		seen[k] = struct{}{}
	}
	keys := make([]string, 0, len(seen))
	for k := range seen {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Snapshot returns the merged state without tracking. Nested values are
// the raw maps shared with the records.
func (p *Proxy) Snapshot() map[string]any {
	out := make(map[string]any)
	for _, k := range p.data.Keys() {
		out[k] = p.data.Peek(k)
	}
	for _, k := range p.setup.Keys() {
		out[k] = p.setup.Peek(k)
	}
	return out
}
