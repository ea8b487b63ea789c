package core

import "sync"

type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed. Data is a *KeyEvent.
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released. Data is a *KeyEvent.
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Mouse button pressed. Data is a *MouseButtonEvent.
	EVENT_CODE_BUTTON_PRESSED EventCode = 0x04

	// Mouse button released. Data is a *MouseButtonEvent.
	EVENT_CODE_BUTTON_RELEASED EventCode = 0x05

	// Mouse moved. Data is a *MouseMoveEvent.
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06

	// Mouse wheel scrolled. Data is an int8 delta.
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07

	// Resized/resolution changed from the OS. Data is a *ResizeEvent.
	EVENT_CODE_RESIZED EventCode = 0x08

	// A stroke was committed onto the undo stack. Data is the stroke id string.
	EVENT_CODE_STROKE_COMMITTED EventCode = 0x20

	// The undo/redo history changed (undo, redo or clear). Data is a *HistoryEvent.
	EVENT_CODE_HISTORY_CHANGED EventCode = 0x21

	// A brush preset was loaded or reloaded from disk. Data is the preset name.
	EVENT_CODE_PRESET_CHANGED EventCode = 0x22

	MAX_EVENT_CODE EventCode = 0xFF
)

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseButtonEvent struct {
	Button Button
	X, Y   int16
}

type MouseMoveEvent struct {
	X, Y int16
}

type ResizeEvent struct {
	Width  uint32
	Height uint32
}

type HistoryEvent struct {
	CommittedCount int
	RedoCount      int
}

type EventContext struct {
	Type EventCode
	Data interface{}
}

// Should handle the event; called in registration order.
type FnOnEvent func(context EventContext)

type eventCodeEntry struct {
	callbacks []FnOnEvent
}

type eventSystemState struct {
	// Lookup table for event codes.
	registered [MAX_EVENT_CODE + 1]eventCodeEntry
}

var onceEvent sync.Once
var eventInitialized bool = false
var eventState *eventSystemState = nil

func EventSystemInitialize() bool {
	if eventInitialized {
		return false
	}
	onceEvent.Do(func() {
		eventState = &eventSystemState{}
	})
	eventInitialized = true
	return true
}

func EventSystemShutdown() error {
	if !eventInitialized {
		return nil
	}
	for i := range eventState.registered {
		eventState.registered[i].callbacks = nil
	}
	eventInitialized = false
	return nil
}

// EventRegister subscribes a callback to the given code. Returns false if the
// event system is not initialized or the code is out of range.
func EventRegister(code EventCode, onEvent FnOnEvent) bool {
	if !eventInitialized || code > MAX_EVENT_CODE || onEvent == nil {
		return false
	}
	eventState.registered[code].callbacks = append(eventState.registered[code].callbacks, onEvent)
	return true
}

// EventFire dispatches the context to all callbacks registered for its code.
// Returns true if at least one callback received it.
func EventFire(context EventContext) bool {
	if !eventInitialized || context.Type > MAX_EVENT_CODE {
		return false
	}
	callbacks := eventState.registered[context.Type].callbacks
	if len(callbacks) == 0 {
		return false
	}
	for _, cb := range callbacks {
		cb(context)
	}
	return true
}
