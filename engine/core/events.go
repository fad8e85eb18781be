package core

import (
	"fmt"
	"sync"
)

// EventContext carries the payload of a fired event. Which fields are
// meaningful depends on the event code.
type EventContext struct {
	Type SystemEventCode
	Data struct {
		U32 [4]uint32
		F64 [2]float64
	}
}

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01

	// Resized/resolution changed from the OS.
	/* Context usage:
	 * u32 width = data.u32[0];
	 * u32 height = data.u32[1];
	 */
	EVENT_CODE_RESIZED SystemEventCode = 0x02

	// The OS asked for the window contents to be redrawn.
	EVENT_CODE_REDRAW_REQUESTED SystemEventCode = 0x03

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

type FnOnEvent func(context EventContext) bool

type registeredEvent struct {
	listener interface{}
	callback FnOnEvent
}

type eventSystem struct {
	registered map[SystemEventCode][]*registeredEvent
	mutex      sync.RWMutex
}

var onceEvents sync.Once
var eventsState *eventSystem

func EventSystemInitialize() error {
	onceEvents.Do(func() {
		eventsState = &eventSystem{
			registered: make(map[SystemEventCode][]*registeredEvent),
		}
	})
	return nil
}

func EventSystemShutdown() error {
	if eventsState == nil {
		return nil
	}
	eventsState.mutex.Lock()
	defer eventsState.mutex.Unlock()
	eventsState.registered = make(map[SystemEventCode][]*registeredEvent)
	return nil
}

// EventRegister subscribes callback to events with the given code. The same
// listener/callback pair must not be registered twice for one code.
func EventRegister(code SystemEventCode, listener interface{}, callback FnOnEvent) error {
	if eventsState == nil {
		return fmt.Errorf("event system not initialized")
	}
	eventsState.mutex.Lock()
	defer eventsState.mutex.Unlock()

	for _, re := range eventsState.registered[code] {
		if re.listener == listener {
			return fmt.Errorf("listener already registered for event code %d", code)
		}
	}
	eventsState.registered[code] = append(eventsState.registered[code], &registeredEvent{
		listener: listener,
		callback: callback,
	})
	return nil
}

// EventUnregister removes the listener's subscription for the given code.
func EventUnregister(code SystemEventCode, listener interface{}) error {
	if eventsState == nil {
		return fmt.Errorf("event system not initialized")
	}
	eventsState.mutex.Lock()
	defer eventsState.mutex.Unlock()

	events := eventsState.registered[code]
	for i, re := range events {
		if re.listener == listener {
			eventsState.registered[code] = append(events[:i], events[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("listener not registered for event code %d", code)
}

// EventFire dispatches synchronously to every subscriber, in registration
// order. A callback returning true marks the event handled and stops
// further dispatch.
func EventFire(context EventContext) bool {
	if eventsState == nil {
		return false
	}
	eventsState.mutex.RLock()
	events := eventsState.registered[context.Type]
	eventsState.mutex.RUnlock()

	for _, re := range events {
		if re.callback(context) {
			return true
		}
	}
	return false
}
