package reactive

import (
	"reflect"
	"sort"
)

// Record is an observable view over a plain map. Every field read through it
// is tracked and every field write replays the computations that read it.
//
// Each field is backed by its own cell, allocated the first time the field is
// read inside a computation or written. Values live in the raw map, which
// stays the source of truth.
type Record struct {
	id    uint64
	rt    *Runtime
	raw   map[string]any
	cells map[string]*cell
}

// MakeObservable returns the Record for raw, creating it on first use.
// Observing the same map twice returns the same Record, since a record's
// identity is the identity of the map it wraps.
//
// Nested maps are not observed; pass them to MakeObservable separately to
// track their fields.
func (rt *Runtime) MakeObservable(raw map[string]any) (*Record, error) {
	if raw == nil {
		return nil, ErrNilRecord
	}

	key := reflect.ValueOf(raw).Pointer()
	if r, ok := rt.records[key]; ok {
		return r, nil
	}

	r := &Record{
		id:    rt.nextID(),
		rt:    rt,
		raw:   raw,
		cells: make(map[string]*cell),
	}
	rt.records[key] = r
	return r, nil
}

// MustObservable is like MakeObservable but panics on a nil map.
func (rt *Runtime) MustObservable(raw map[string]any) *Record {
	r, err := rt.MakeObservable(raw)
	if err != nil {
		panic(err)
	}
	return r
}

// Get returns the value of field and registers the active computation as a
// dependent of it. An absent field reads as nil and is still tracked, so a
// later write that creates it replays the reader.
func (r *Record) Get(field string) any {
	v, _ := r.Lookup(field)
	return v
}

// Lookup is Get that also reports whether the field is present.
func (r *Record) Lookup(field string) (any, bool) {
	if r.rt.Active() != nil {
		r.rt.track(r.cell(field))
	}
	v, ok := r.raw[field]
	return v, ok
}

// Set assigns value to field and replays every computation that read it,
// even when value equals the previous value.
func (r *Record) Set(field string, value any) {
	r.raw[field] = value
	if c, ok := r.cells[field]; ok {
		r.rt.trigger(c)
	}
}

// TrySet is Set with a panic from a replayed computation returned as an
// error. The value is assigned either way.
func (r *Record) TrySet(field string, value any) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = asError(r.rt.failedName(recordLabel(r.id, field)), rec)
		}
	}()
	r.Set(field, value)
	return nil
}

// Peek returns the value of field without tracking.
func (r *Record) Peek(field string) any {
	return r.raw[field]
}

// Has reports whether field is present, without tracking.
func (r *Record) Has(field string) bool {
	_, ok := r.raw[field]
	return ok
}

// Keys returns the field names in sorted order, without tracking.
func (r *Record) Keys() []string {
	keys := make([]string, 0, len(r.raw))
	for k := range r.raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Raw returns the wrapped map. Writing to it directly bypasses replay.
func (r *Record) Raw() map[string]any {
	return r.raw
}

// CellID returns the handle of the cell backing field, allocating it if
// needed.
func (r *Record) CellID(field string) CellID {
	return r.cell(field).id
}

func (r *Record) cell(field string) *cell {
	c, ok := r.cells[field]
	if !ok {
		c = r.rt.alloc(recordLabel(r.id, field))
		r.cells[field] = c
	}
	return c
}
