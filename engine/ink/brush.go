package ink

import (
	"fmt"

	"github.com/spaghettifunk/inkline/engine/math"
)

type BrushMode uint8

const (
	// Solid colour ink.
	BRUSH_MODE_PEN BrushMode = iota
	// Debug tint; also enables debug tessellation when the draw config allows it.
	BRUSH_MODE_DEBUG
	// Animated colour ramp along the stroke.
	BRUSH_MODE_RAINBOW
)

func (m BrushMode) String() string {
	switch m {
	case BRUSH_MODE_PEN:
		return "pen"
	case BRUSH_MODE_DEBUG:
		return "debug"
	case BRUSH_MODE_RAINBOW:
		return "rainbow"
	}
	return "unknown"
}

func ParseBrushMode(s string) (BrushMode, error) {
	switch s {
	case "pen":
		return BRUSH_MODE_PEN, nil
	case "debug":
		return BRUSH_MODE_DEBUG, nil
	case "rainbow":
		return BRUSH_MODE_RAINBOW, nil
	}
	return BRUSH_MODE_PEN, fmt.Errorf("unknown brush mode %q", s)
}

// BrushSettings is the mutable brush state driven by the UI. It is read when
// a stroke is created; mutating it never alters strokes already in progress
// or in the history stacks.
type BrushSettings struct {
	Radius float32
	Colour math.Vec4
	Mode   BrushMode
}

func NewBrushSettings() *BrushSettings {
	return &BrushSettings{
		Radius: 0.05,
		Colour: math.NewVec4(0.1, 0.1, 0.1, 1.0),
		Mode:   BRUSH_MODE_PEN,
	}
}

func (b *BrushSettings) SetRadius(v float32) {
	b.Radius = v
}

func (b *BrushSettings) SetColour(c math.Vec4) {
	b.Colour = c
}

func (b *BrushSettings) SetMode(m BrushMode) {
	b.Mode = m
}

// DrawConfig selects the tessellation policy. Production drawing uses every
// sample and sharp joins; the debug configuration enables sample thinning and
// rounded join/cap tessellation so individual segments are visible.
type DrawConfig struct {
	Debug            bool
	Roundness        uint32
	DebounceDistance float32
}

func DefaultDrawConfig() DrawConfig {
	return DrawConfig{
		Debug:            false,
		Roundness:        16,
		DebounceDistance: 0.03,
	}
}

// effective returns the roundness and debounce actually applied to a new
// stroke buffer under this config.
func (c DrawConfig) effective() (uint32, float32) {
	if !c.Debug {
		return 0, 0
	}
	return c.Roundness, c.DebounceDistance
}
