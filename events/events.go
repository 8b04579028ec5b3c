package events

import (
	"reflect"
	"sync"
)

// EventHandler defines a function type where its input type is the generic type. A handler returning an error stops
// the publication of the event to the remaining handlers.
type EventHandler[T any] func(T) error

// globalEventHandlers describes a mapping of event types to EventHandler objects. These callbacks are called
// any time any EventEmitter publishes an event of that type.
var globalEventHandlers map[reflect.Type][]any

// globalEventHandlersLock provides thread synchronization when accessing globalEventHandlers.
var globalEventHandlersLock sync.Mutex

// SubscribeAny adds an EventHandler to the list of global EventHandler objects for a given event data type.
// Note: An EventHandler subscribed here will remain throughout program execution.
func SubscribeAny[T any](callback EventHandler[T]) {
	eventType := reflect.TypeOf((*T)(nil)).Elem()

	globalEventHandlersLock.Lock()
	defer globalEventHandlersLock.Unlock()

	if globalEventHandlers == nil {
		globalEventHandlers = make(map[reflect.Type][]any)
	}
	globalEventHandlers[eventType] = append(globalEventHandlers[eventType], callback)
}

// EventEmitter describes a provider which can subscribe EventHandler methods for callback when the event type (generic)
// is published.
type EventEmitter[T any] struct {
	// subscriptions defines the EventHandler methods which should be invoked when a new event is published to this
	// emitter.
	subscriptions []EventHandler[T]
}

// Publish emits the provided event by calling every EventHandler subscribed to this emitter, then every global
// handler for the event type. Returns the first error a handler returned.
func (e *EventEmitter[T]) Publish(event T) error {
	for _, subscription := range e.subscriptions {
		if err := subscription(event); err != nil {
			return err
		}
	}

	globalEventHandlersLock.Lock()
	callbacks := globalEventHandlers[reflect.TypeOf((*T)(nil)).Elem()]
	globalEventHandlersLock.Unlock()

	for _, callback := range callbacks {
		if err := callback.(EventHandler[T])(event); err != nil {
			return err
		}
	}
	return nil
}

// Subscribe adds an EventHandler to the list of subscribed EventHandler objects for this emitter.
func (e *EventEmitter[T]) Subscribe(callback EventHandler[T]) {
	e.subscriptions = append(e.subscriptions, callback)
}
