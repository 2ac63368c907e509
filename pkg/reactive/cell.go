package reactive

// CellID is a stable handle to a cell in a runtime's arena.
type CellID uint32

// cell is the untyped arena entry shared by Cell[T] and Record fields.
// It owns the set of computations that read it.
type cell struct {
	id   CellID
	name string

	// subs are the dependent computations, deduplicated by ID.
	subs []*Computation

	// replaying is set while trigger runs this cell's dependents.
	replaying bool
}

// subscribe adds a computation to the dependent set.
// Returns false if it was already a member.
func (c *cell) subscribe(comp *Computation) bool {
	for _, existing := range c.subs {
		if existing.id == comp.id {
			return false
		}
	}
	c.subs = append(c.subs, comp)
	return true
}

// unsubscribe removes a computation from the dependent set.
// Registration order of the remaining members is preserved.
func (c *cell) unsubscribe(comp *Computation) {
	for i, existing := range c.subs {
		if existing.id == comp.id {
			copy(c.subs[i:], c.subs[i+1:])
			c.subs[len(c.subs)-1] = nil
			c.subs = c.subs[:len(c.subs)-1]
			return
		}
	}
}

// Cell is a typed reactive value.
// Reading it inside a computation makes that computation a dependent;
// writing it replays every dependent.
type Cell[T any] struct {
	rt    *Runtime
	c     *cell
	value T
}

// NewCell allocates a cell in the runtime's arena.
func NewCell[T any](rt *Runtime, name string, initial T) *Cell[T] {
	return &Cell[T]{
		rt:    rt,
		c:     rt.alloc(name),
		value: initial,
	}
}

// Read returns the current value and registers the active computation,
// if any, as a dependent.
func (s *Cell[T]) Read() T {
	s.rt.track(s.c)
	return s.value
}

// Peek returns the current value without tracking.
func (s *Cell[T]) Peek() T {
	return s.value
}

// Write stores value and replays all dependents synchronously.
// Dependents replay even if value equals the previous value.
func (s *Cell[T]) Write(value T) {
	s.value = value
	s.rt.trigger(s.c)
}

// TryWrite is Write, with a panic from a replayed computation (including a
// *CycleError) returned as an error. The value is stored either way.
func (s *Cell[T]) TryWrite(value T) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = asError(s.rt.failedName(s.c.name), r)
		}
	}()
	s.Write(value)
	return nil
}

// Update writes fn applied to the current value. The read is not tracked.
func (s *Cell[T]) Update(fn func(T) T) {
	s.Write(fn(s.value))
}

// ID returns the cell's arena handle.
func (s *Cell[T]) ID() CellID {
	return s.c.id
}

// Name returns the cell's name.
func (s *Cell[T]) Name() string {
	return s.c.name
}
