package kaisou

import "reflect"

// MaxEventTypes is the number of distinct event types one EventBus can route.
const MaxEventTypes = 256

// EventBus is a synchronous, type-keyed publish/subscribe hub. The zero value
// is ready to use. Hierarchies publish Attached and Detached events on it when
// configured with WithEventBus.
type EventBus struct {
	eventTypeMap    map[reflect.Type]uint8
	handlers        [MaxEventTypes][]any
	nextEventTypeID uint16
}

// Subscribe registers handler for events of type T. Handlers run in
// subscription order.
func Subscribe[T any](bus *EventBus, handler func(T)) {
	id := bus.getEventTypeID(reflect.TypeFor[T]())
	if cap(bus.handlers[id]) == 0 {
		bus.handlers[id] = make([]any, 0, 4)
	}
	bus.handlers[id] = append(bus.handlers[id], handler)
}

// Publish delivers event to every handler subscribed to T. It does not
// allocate and is a no-op when nobody listens.
func Publish[T any](bus *EventBus, event T) {
	if bus == nil {
		return
	}
	id, ok := bus.eventTypeMap[reflect.TypeFor[T]()]
	if !ok {
		return
	}
	for _, h := range bus.handlers[id] {
		h.(func(T))(event)
	}
}

// HasSubscribers reports whether at least one handler listens for T.
func HasSubscribers[T any](bus *EventBus) bool {
	if bus == nil {
		return false
	}
	id, ok := bus.eventTypeMap[reflect.TypeFor[T]()]
	return ok && len(bus.handlers[id]) > 0
}

func (bus *EventBus) getEventTypeID(t reflect.Type) uint8 {
	if bus.eventTypeMap == nil {
		bus.eventTypeMap = make(map[reflect.Type]uint8)
	}
	if id, ok := bus.eventTypeMap[t]; ok {
		return id
	}
	if bus.nextEventTypeID >= MaxEventTypes {
		panic("kaisou: too many event types")
	}
	id := uint8(bus.nextEventTypeID)
	bus.nextEventTypeID++
	bus.eventTypeMap[t] = id
	return id
}
