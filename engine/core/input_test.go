package core

import "testing"

func setupInput(t *testing.T) {
	t.Helper()
	if err := InputInitialize(); err != nil {
		t.Fatal(err)
	}
	EventSystemInitialize()
	t.Cleanup(func() { EventSystemShutdown() })
	// Drain samples a previous test may have left buffered.
	if err := InputUpdate(0); err != nil {
		t.Fatal(err)
	}
}

func TestMouseMovesDispatchInArrivalOrder(t *testing.T) {
	setupInput(t)

	var got []MouseMoveEvent
	EventRegister(EVENT_CODE_MOUSE_MOVED, func(context EventContext) {
		got = append(got, *context.Data.(*MouseMoveEvent))
	})

	InputProcessMouseMove(10, 10)
	InputProcessMouseMove(20, 15)
	InputProcessMouseMove(20, 15) // unchanged position, must not enqueue
	InputProcessMouseMove(30, 20)

	if len(got) != 0 {
		t.Fatal("moves dispatched before InputUpdate")
	}
	if err := InputUpdate(0.016); err != nil {
		t.Fatal(err)
	}

	want := []MouseMoveEvent{{10, 10}, {20, 15}, {30, 20}}
	if len(got) != len(want) {
		t.Fatalf("got %d move events, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d: got %v, want %v", i, got[i], want[i])
		}
	}

	x, y := InputGetMousePosition()
	if x != 30 || y != 20 {
		t.Errorf("got position (%d, %d), want (30, 20)", x, y)
	}
}

func TestKeyPressFiresOnEdgeOnly(t *testing.T) {
	setupInput(t)

	presses := 0
	releases := 0
	EventRegister(EVENT_CODE_KEY_PRESSED, func(context EventContext) {
		if context.Data.(*KeyEvent).KeyCode == KEY_Z {
			presses++
		}
	})
	EventRegister(EVENT_CODE_KEY_RELEASED, func(context EventContext) {
		if context.Data.(*KeyEvent).KeyCode == KEY_Z {
			releases++
		}
	})

	InputProcessKey(KEY_Z, true)
	InputProcessKey(KEY_Z, true) // held, no repeat event
	if presses != 1 {
		t.Errorf("got %d press events, want 1", presses)
	}
	if !InputIsKeyDown(KEY_Z) {
		t.Error("key not reported down")
	}

	InputProcessKey(KEY_Z, false)
	if releases != 1 {
		t.Errorf("got %d release events, want 1", releases)
	}
	if !InputIsKeyUp(KEY_Z) {
		t.Error("key not reported up")
	}
}

func TestButtonEventsCarryCursorPosition(t *testing.T) {
	setupInput(t)

	var pressed *MouseButtonEvent
	EventRegister(EVENT_CODE_BUTTON_PRESSED, func(context EventContext) {
		pressed = context.Data.(*MouseButtonEvent)
	})

	InputProcessMouseMove(111, 42)
	InputProcessButton(BUTTON_LEFT, true)
	defer InputProcessButton(BUTTON_LEFT, false)

	if pressed == nil {
		t.Fatal("no button event fired")
	}
	if pressed.Button != BUTTON_LEFT || pressed.X != 111 || pressed.Y != 42 {
		t.Errorf("got %+v, want left button at (111, 42)", pressed)
	}
	if !InputIsButtonDown(BUTTON_LEFT) {
		t.Error("button not reported down")
	}
}
