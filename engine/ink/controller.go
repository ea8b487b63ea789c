package ink

import (
	"fmt"

	"github.com/spaghettifunk/inkline/engine/containers"
	"github.com/spaghettifunk/inkline/engine/core"
	"github.com/spaghettifunk/inkline/engine/math"
	"github.com/spaghettifunk/inkline/engine/scene"
)

/**
 * @brief Controller drives the stroke lifecycle state machine.
 *
 * It is either idle or drawing exactly one in-progress stroke, and owns the
 * committed (undo) and redo stacks. History operations are gated on being
 * idle so they can never race the in-progress buffer. All methods must be
 * called from the single event-dispatch goroutine.
 */
type Controller struct {
	picker    scene.PickService
	host      scene.Host
	materials MaterialPolicy
	settings  *BrushSettings
	surface   *math.Transform
	config    DrawConfig

	committed *containers.Stack[*Stroke]
	redo      *containers.Stack[*Stroke]
	active    *Stroke
}

func NewController(picker scene.PickService, host scene.Host, materials MaterialPolicy, settings *BrushSettings, surface *math.Transform, config DrawConfig) (*Controller, error) {
	if picker == nil || host == nil || materials == nil || settings == nil {
		return nil, fmt.Errorf("func NewController - picker, host, materials and settings are all required")
	}
	if surface == nil {
		surface = math.TransformCreate()
	}
	return &Controller{
		picker:    picker,
		host:      host,
		materials: materials,
		settings:  settings,
		surface:   surface,
		config:    config,
		committed: containers.NewStack[*Stroke](),
		redo:      containers.NewStack[*Stroke](),
	}, nil
}

// StartPath begins a new stroke at the surface point under the cursor.
// Returns false without any state change when a stroke is already in
// progress, when the cursor misses the surface, or when the current brush
// settings are invalid. A successful start discards the redo history.
func (c *Controller) StartPath(screenX, screenY float32) bool {
	if c.active != nil {
		core.LogDebug("StartPath ignored, a stroke is already in progress")
		return false
	}

	res := c.picker.Pick(screenX, screenY)
	if !res.Hit {
		return false
	}

	stroke, err := NewStrokeAt(res.Local, c.surface, c.settings, c.materials, c.config)
	if err != nil {
		core.LogError("cannot start stroke: %s", err)
		return false
	}

	// Only a genuinely new stroke invalidates the redo history; transient
	// pick misses and invalid settings above leave it intact.
	c.discardRedo()

	stroke.Attach(c.host)
	c.active = stroke
	return true
}

// ExtendPath appends the surface point under the cursor to the in-progress
// stroke. Pick misses and debounced samples are skipped, not errors; the
// stroke is never truncated by a pointer excursion off the surface.
func (c *Controller) ExtendPath(screenX, screenY float32) bool {
	if c.active == nil {
		return false
	}

	res := c.picker.Pick(screenX, screenY)
	if !res.Hit {
		return false
	}

	return c.active.Extend(res.Local)
}

// EndPath commits the in-progress stroke onto the undo stack. No-op when
// idle.
func (c *Controller) EndPath() bool {
	if c.active == nil {
		return false
	}

	stroke := c.active
	c.active = nil
	c.committed.Push(stroke)

	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_STROKE_COMMITTED,
		Data: stroke.ID(),
	})
	c.fireHistoryChanged()
	return true
}

// Undo detaches the most recent committed stroke from the scene and moves it
// onto the redo stack. No-op while drawing or with an empty undo stack.
func (c *Controller) Undo() bool {
	if c.active != nil || c.committed.IsEmpty() {
		return false
	}

	stroke, err := c.committed.Pop()
	if err != nil {
		core.LogError("undo: %s", err)
		return false
	}
	stroke.Detach(c.host)
	c.redo.Push(stroke)
	c.fireHistoryChanged()
	return true
}

// Redo re-attaches the most recently undone stroke, geometry unchanged.
// No-op while drawing or with an empty redo stack.
func (c *Controller) Redo() bool {
	if c.active != nil || c.redo.IsEmpty() {
		return false
	}

	stroke, err := c.redo.Pop()
	if err != nil {
		core.LogError("redo: %s", err)
		return false
	}
	stroke.Attach(c.host)
	c.committed.Push(stroke)
	c.fireHistoryChanged()
	return true
}

// Clear detaches and disposes every committed stroke. The redo stack is
// deliberately left intact, so strokes undone before the clear can still be
// brought back. No-op while drawing or with an empty undo stack.
func (c *Controller) Clear() bool {
	if c.active != nil || c.committed.IsEmpty() {
		return false
	}

	for !c.committed.IsEmpty() {
		stroke, err := c.committed.Pop()
		if err != nil {
			core.LogError("clear: %s", err)
			return false
		}
		stroke.Detach(c.host)
		stroke.Dispose()
	}
	c.fireHistoryChanged()
	return true
}

// IsDrawing reports whether a stroke is in progress.
func (c *Controller) IsDrawing() bool {
	return c.active != nil
}

func (c *Controller) CommittedCount() int {
	return c.committed.Count()
}

func (c *Controller) RedoCount() int {
	return c.redo.Count()
}

// discardRedo disposes redone-able strokes that have become permanently
// unreachable. They are already detached from the scene.
func (c *Controller) discardRedo() {
	for !c.redo.IsEmpty() {
		stroke, err := c.redo.Pop()
		if err != nil {
			core.LogError("discarding redo history: %s", err)
			return
		}
		stroke.Dispose()
	}
}

func (c *Controller) fireHistoryChanged() {
	core.EventFire(core.EventContext{
		Type: core.EVENT_CODE_HISTORY_CHANGED,
		Data: &core.HistoryEvent{
			CommittedCount: c.committed.Count(),
			RedoCount:      c.redo.Count(),
		},
	})
}
