package quantum

// Value is an observable value. Listeners registered with Subscribe are
// called synchronously, in subscription order, whenever Set stores a value
// different from the current one.
type Value[T comparable] struct {
	v         T
	initial   T
	nextID    int
	listeners []listener[T]
}

type listener[T comparable] struct {
	id int
	fn func(T)
}

func NewValue[T comparable](v T) *Value[T] {
	return &Value[T]{v: v, initial: v}
}

func (o *Value[T]) Get() T { return o.v }

// Initial returns the value the observable was constructed with.
func (o *Value[T]) Initial() T { return o.initial }

// Set stores v and notifies listeners if it differs from the current value.
func (o *Value[T]) Set(v T) {
	if v == o.v {
		return
	}
	o.v = v
	// Listeners may unsubscribe while being notified; iterate over a snapshot.
	snapshot := make([]listener[T], len(o.listeners))
	copy(snapshot, o.listeners)
	for _, l := range snapshot {
		l.fn(v)
	}
}

// Reset restores the initial value through Set.
func (o *Value[T]) Reset() { o.Set(o.initial) }

// Subscribe registers fn and returns a function that removes it. Calling the
// returned function more than once is a no-op.
func (o *Value[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	id := o.nextID
	o.nextID++
	o.listeners = append(o.listeners, listener[T]{id: id, fn: fn})
	return func() {
		for i, l := range o.listeners {
			if l.id == id {
				o.listeners = append(o.listeners[:i], o.listeners[i+1:]...)
				return
			}
		}
	}
}

// Listeners reports how many subscriptions are active.
func (o *Value[T]) Listeners() int { return len(o.listeners) }
