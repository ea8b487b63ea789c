package ink

import (
	"github.com/google/uuid"

	"github.com/spaghettifunk/inkline/engine/core"
	"github.com/spaghettifunk/inkline/engine/math"
	"github.com/spaghettifunk/inkline/engine/renderer/metadata"
	"github.com/spaghettifunk/inkline/engine/scene"
)

// MaterialPolicy resolves brush settings into an opaque material handle,
// exactly once per stroke. The handle is released when the stroke is
// disposed.
type MaterialPolicy interface {
	FromBrush(mode BrushMode, colour math.Vec4, debug bool) (*metadata.Material, error)
	Release(name string) error
}

// Stroke is one continuous ink mark and the unit of undo/redo: a geometry
// buffer, the material resolved at creation and the placement on the drawing
// surface. Content is mutable while the stroke is being drawn; afterwards
// only scene membership changes.
type Stroke struct {
	id        string
	buffer    *StrokeBuffer
	material  *metadata.Material
	materials MaterialPolicy
	geometry  *metadata.Geometry
	transform *math.Transform
	attached  bool
	disposed  bool
}

// NewStrokeAt creates a detached stroke seeded at the local pick point on
// the given surface. The brush settings are read once; later mutations do
// not affect this stroke.
func NewStrokeAt(local math.Vec2, surface *math.Transform, settings *BrushSettings, materials MaterialPolicy, cfg DrawConfig) (*Stroke, error) {
	roundness, debounce := cfg.effective()
	buffer, err := NewStrokeBuffer(settings.Radius, roundness, debounce, local)
	if err != nil {
		return nil, err
	}

	material, err := materials.FromBrush(settings.Mode, settings.Colour, cfg.Debug)
	if err != nil {
		return nil, err
	}

	transform := math.TransformCreate()
	transform.Parent = surface

	s := &Stroke{
		id:        uuid.New().String(),
		buffer:    buffer,
		material:  material,
		materials: materials,
		transform: transform,
	}
	s.geometry = &metadata.Geometry{
		Name:     s.id,
		Material: material,
	}
	return s, nil
}

// Extend forwards the point to the geometry buffer. A debounced sample is
// dropped silently and false is returned; that is not an error.
func (s *Stroke) Extend(local math.Vec2) bool {
	s.ensureAlive()
	return s.buffer.AppendPoint(local)
}

// Attach adds the stroke to the host scene. Idempotent.
func (s *Stroke) Attach(host scene.Host) {
	s.ensureAlive()
	if s.attached {
		return
	}
	host.Attach(s)
	s.attached = true
}

// Detach removes the stroke from the host scene without touching its
// geometry. Idempotent.
func (s *Stroke) Detach(host scene.Host) {
	s.ensureAlive()
	if !s.attached {
		return
	}
	host.Detach(s)
	s.attached = false
}

func (s *Stroke) Attached() bool {
	return s.attached
}

func (s *Stroke) Buffer() *StrokeBuffer {
	return s.buffer
}

// Dispose releases the geometry buffer and the material handle. The stroke
// must already be detached; any later use panics with
// core.ErrUseAfterDispose.
func (s *Stroke) Dispose() {
	s.ensureAlive()
	s.buffer.Dispose()
	if err := s.materials.Release(s.material.Name); err != nil {
		core.LogError("releasing material '%s' of stroke %s: %s", s.material.Name, s.id, err)
	}
	s.material = nil
	s.disposed = true
}

func (s *Stroke) Disposed() bool {
	return s.disposed
}

func (s *Stroke) ensureAlive() {
	if s.disposed {
		panic(core.ErrUseAfterDispose)
	}
}

// metadata.Renderable implementation; the scene host holds the stroke as a
// non-owning reference and only reads from it.

func (s *Stroke) ID() string {
	return s.id
}

func (s *Stroke) Geometry() *metadata.Geometry {
	s.ensureAlive()
	s.geometry.Generation = s.buffer.Generation()
	s.geometry.Extents = s.buffer.Extents()
	return s.geometry
}

func (s *Stroke) GeometrySnapshot() *metadata.GeometryData {
	return s.buffer.Snapshot()
}

func (s *Stroke) Transform() *math.Transform {
	return s.transform
}
