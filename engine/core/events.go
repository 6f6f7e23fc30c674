package core

import "sync"

// System internal event codes. Application should use codes beyond 255.
type SystemEventCode int

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT SystemEventCode = 0x01
	// Keyboard key pressed. KeyCode is set.
	EVENT_CODE_KEY_PRESSED SystemEventCode = 0x02
	// Keyboard key released. KeyCode is set.
	EVENT_CODE_KEY_RELEASED SystemEventCode = 0x03
	// Mouse button pressed. Button is set.
	EVENT_CODE_BUTTON_PRESSED SystemEventCode = 0x04
	// Mouse button released. Button is set.
	EVENT_CODE_BUTTON_RELEASED SystemEventCode = 0x05
	// Mouse moved. X and Y hold the cursor position in window pixels.
	EVENT_CODE_MOUSE_MOVED SystemEventCode = 0x06
	// Framebuffer resized. Width and Height are set.
	EVENT_CODE_RESIZED SystemEventCode = 0x08

	MAX_EVENT_CODE SystemEventCode = 0xFF
)

// This should be more than enough codes...
const MAX_MESSAGE_CODES = 16384

type EventContext struct {
	KeyCode KeyCode
	Button  Button
	X, Y    float64
	Width   int
	Height  int
}

// Should return true if handled.
type FnOnEvent func(code SystemEventCode, data EventContext) bool

// ListenerID identifies one registration, see EventUnregister.
type ListenerID uint64

type registeredEvent struct {
	id       ListenerID
	callback FnOnEvent
}

type eventSystemState struct {
	mu         sync.Mutex
	nextID     ListenerID
	registered map[SystemEventCode][]registeredEvent
}

var onceEvent sync.Once
var eventState *eventSystemState

func getEventState() *eventSystemState {
	onceEvent.Do(func() {
		eventState = &eventSystemState{
			registered: make(map[SystemEventCode][]registeredEvent),
		}
	})
	return eventState
}

// EventShutdown drops every registered listener.
func EventShutdown() {
	s := getEventState()
	s.mu.Lock()
	s.registered = make(map[SystemEventCode][]registeredEvent)
	s.mu.Unlock()
}

// EventRegister adds a listener for code and returns the id used to remove it.
func EventRegister(code SystemEventCode, onEvent FnOnEvent) ListenerID {
	s := getEventState()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.registered[code] = append(s.registered[code], registeredEvent{id: s.nextID, callback: onEvent})
	return s.nextID
}

// EventUnregister removes a listener. It reports false if id was not registered for code.
func EventUnregister(code SystemEventCode, id ListenerID) bool {
	s := getEventState()
	s.mu.Lock()
	defer s.mu.Unlock()
	events := s.registered[code]
	for i := range events {
		if events[i].id == id {
			s.registered[code] = append(events[:i:i], events[i+1:]...)
			return true
		}
	}
	return false
}

// EventFire sends the event to listeners in registration order. If a handler
// returns true the event is considered handled and is not passed on.
func EventFire(code SystemEventCode, context EventContext) bool {
	s := getEventState()
	s.mu.Lock()
	events := append([]registeredEvent(nil), s.registered[code]...)
	s.mu.Unlock()
	for _, e := range events {
		if e.callback(code, context) {
			return true
		}
	}
	return false
}
