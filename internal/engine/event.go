package engine

// ListenerID identifies a subscription so it can be removed later.
type ListenerID uint64

type listener[F any] struct {
	id ListenerID
	fn F
}

// Event is a multi-cast notification without arguments.
type Event struct {
	listeners []listener[func()]
	next      ListenerID
}

// AddListener adds a callback to be invoked when the event fires.
// A nil callback is ignored and yields the zero ID.
func (e *Event) AddListener(callback func()) ListenerID {
	if callback == nil {
		return 0
	}
	e.next++
	e.listeners = append(e.listeners, listener[func()]{id: e.next, fn: callback})
	return e.next
}

func (e *Event) RemoveListener(id ListenerID) {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
			return
		}
	}
}

func (e *Event) RemoveAllListeners() {
	e.listeners = nil
}

// Invoke calls all registered listeners in subscription order. Listeners
// added during Invoke run from the next call on.
func (e *Event) Invoke() {
	for _, l := range e.listeners[:len(e.listeners):len(e.listeners)] {
		l.fn()
	}
}

func (e *Event) GetListenerCount() int {
	return len(e.listeners)
}

// EventWithArg is a generic event with one argument
type EventWithArg[T any] struct {
	listeners []listener[func(T)]
	next      ListenerID
}

func (e *EventWithArg[T]) AddListener(callback func(T)) ListenerID {
	if callback == nil {
		return 0
	}
	e.next++
	e.listeners = append(e.listeners, listener[func(T)]{id: e.next, fn: callback})
	return e.next
}

func (e *EventWithArg[T]) RemoveListener(id ListenerID) {
	for i, l := range e.listeners {
		if l.id == id {
			e.listeners = append(e.listeners[:i:i], e.listeners[i+1:]...)
			return
		}
	}
}

func (e *EventWithArg[T]) RemoveAllListeners() {
	e.listeners = nil
}

func (e *EventWithArg[T]) Invoke(arg T) {
	for _, l := range e.listeners[:len(e.listeners):len(e.listeners)] {
		l.fn(arg)
	}
}

func (e *EventWithArg[T]) GetListenerCount() int {
	return len(e.listeners)
}
