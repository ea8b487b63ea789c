package scene

import (
	"github.com/spaghettifunk/inkline/engine/math"
)

/**
 * @brief The outcome of a pick query. A miss is an expected result, not an
 * error; Local is only meaningful when Hit is true.
 */
type PickResult struct {
	Hit      bool
	Local    math.Vec2
	TargetID uint32
}

// PickService resolves a screen-space cursor position to a point in a
// drawing surface's local 2D frame.
type PickService interface {
	Pick(screenX, screenY float32) PickResult
}

// PlanarPicker maps a rectangular screen region onto the bounds of a flat
// drawing surface. It stands in for a full raycast pick pass: the surface is
// axis-aligned, so the mapping is a plain range conversion. Cursor positions
// outside the screen region miss.
type PlanarPicker struct {
	screen   math.Extents2D
	local    math.Extents2D
	targetID uint32
}

func NewPlanarPicker(screen, local math.Extents2D, targetID uint32) *PlanarPicker {
	return &PlanarPicker{
		screen:   screen,
		local:    local,
		targetID: targetID,
	}
}

// Resize updates the screen region the surface occupies, e.g. after a window
// resize. The local bounds are a property of the surface and do not change.
func (p *PlanarPicker) Resize(screen math.Extents2D) {
	p.screen = screen
}

func (p *PlanarPicker) Pick(screenX, screenY float32) PickResult {
	if screenX < p.screen.Min.X || screenX > p.screen.Max.X ||
		screenY < p.screen.Min.Y || screenY > p.screen.Max.Y {
		return PickResult{}
	}

	// Screen y grows downward, local y grows upward.
	localX := math.RangeConvertFloat32(screenX, p.screen.Min.X, p.screen.Max.X, p.local.Min.X, p.local.Max.X)
	localY := math.RangeConvertFloat32(screenY, p.screen.Min.Y, p.screen.Max.Y, p.local.Max.Y, p.local.Min.Y)

	return PickResult{
		Hit:      true,
		Local:    math.NewVec2(localX, localY),
		TargetID: p.targetID,
	}
}
