package systems

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/spaghettifunk/inkline/engine/core"
	"github.com/spaghettifunk/inkline/engine/ink"
	"github.com/spaghettifunk/inkline/engine/math"
	"github.com/spaghettifunk/inkline/engine/renderer/metadata"
)

const (
	inkShaderName     = "Shader.Builtin.Ink"
	debugShaderName   = "Shader.Builtin.InkDebug"
	rainbowShaderName = "Shader.Builtin.InkRainbow"
)

/**
 * @brief MaterialSystem owns the brush materials and implements the material
 * policy of the ink core: (mode, colour, debug) resolves to one opaque,
 * reference-counted material handle per stroke.
 *
 * Pen and debug materials are shared between strokes of the same colour.
 * Rainbow materials carry a per-stroke animation seed and are therefore
 * unique, named by uuid and auto-released.
 */
type MaterialSystem struct {
	registered      map[string]*metadata.MaterialReference
	defaultMaterial *metadata.Material
	nextID          uint32
}

func NewMaterialSystem() (*MaterialSystem, error) {
	ms := &MaterialSystem{
		registered: make(map[string]*metadata.MaterialReference),
	}

	ms.defaultMaterial = &metadata.Material{
		ID:            ms.acquireID(),
		InternalID:    metadata.InvalidID,
		Name:          metadata.DefaultMaterialName,
		ShaderName:    inkShaderName,
		DiffuseColour: math.NewVec4(1, 1, 1, 1),
	}
	return ms, nil
}

func (ms *MaterialSystem) Shutdown() error {
	for name := range ms.registered {
		delete(ms.registered, name)
	}
	return nil
}

// FromBrush resolves the material for a new stroke. The debug flag overrides
// the mode's shader so debug builds can inspect any brush.
func (ms *MaterialSystem) FromBrush(mode ink.BrushMode, colour math.Vec4, debug bool) (*metadata.Material, error) {
	config := metadata.MaterialConfig{
		DiffuseColour: colour,
		AutoRelease:   true,
	}

	switch mode {
	case ink.BRUSH_MODE_PEN:
		config.ShaderName = inkShaderName
		config.Name = fmt.Sprintf("ink_pen_%08x", colourKey(colour))
	case ink.BRUSH_MODE_DEBUG:
		config.ShaderName = debugShaderName
		config.Name = fmt.Sprintf("ink_debug_%08x", colourKey(colour))
	case ink.BRUSH_MODE_RAINBOW:
		// Unique per stroke; the shader animates from a per-material seed.
		config.ShaderName = rainbowShaderName
		config.Name = fmt.Sprintf("ink_rainbow_%s", uuid.New().String())
	default:
		return nil, fmt.Errorf("func FromBrush - unknown brush mode %d", mode)
	}

	if debug {
		config.ShaderName = debugShaderName
	}

	return ms.acquire(config)
}

// Release decrements the reference count of the named material and destroys
// it when no references remain and it was acquired with auto-release.
func (ms *MaterialSystem) Release(name string) error {
	if name == metadata.DefaultMaterialName {
		return nil
	}
	ref, ok := ms.registered[name]
	if !ok {
		return fmt.Errorf("func Release - tried to release unregistered material '%s'", name)
	}
	if ref.ReferenceCount == 0 {
		return fmt.Errorf("func Release - material '%s' already fully released", name)
	}
	ref.ReferenceCount--
	if ref.ReferenceCount == 0 && ref.AutoRelease {
		delete(ms.registered, name)
		core.LogDebug("released material '%s'", name)
	}
	return nil
}

func (ms *MaterialSystem) GetDefault() *metadata.Material {
	return ms.defaultMaterial
}

// ReferenceCount reports the live reference count of the named material, or
// zero if it is not registered.
func (ms *MaterialSystem) ReferenceCount(name string) uint64 {
	if ref, ok := ms.registered[name]; ok {
		return ref.ReferenceCount
	}
	return 0
}

func (ms *MaterialSystem) acquire(config metadata.MaterialConfig) (*metadata.Material, error) {
	if ref, ok := ms.registered[config.Name]; ok {
		ref.ReferenceCount++
		return ref.Material, nil
	}

	material := &metadata.Material{
		ID:            ms.acquireID(),
		InternalID:    metadata.InvalidID,
		Name:          config.Name,
		ShaderName:    config.ShaderName,
		DiffuseColour: config.DiffuseColour,
	}
	ms.registered[config.Name] = &metadata.MaterialReference{
		ReferenceCount: 1,
		Material:       material,
		AutoRelease:    config.AutoRelease,
	}
	return material, nil
}

func (ms *MaterialSystem) acquireID() uint32 {
	id := ms.nextID
	ms.nextID++
	return id
}

func colourKey(c math.Vec4) uint32 {
	r := uint32(math.Clamp(c.X, 0, 1) * 255)
	g := uint32(math.Clamp(c.Y, 0, 1) * 255)
	b := uint32(math.Clamp(c.Z, 0, 1) * 255)
	a := uint32(math.Clamp(c.W, 0, 1) * 255)
	return r<<24 | g<<16 | b<<8 | a
}
