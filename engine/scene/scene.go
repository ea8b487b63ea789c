package scene

import (
	"github.com/spaghettifunk/inkline/engine/core"
	"github.com/spaghettifunk/inkline/engine/renderer/metadata"
)

// Host is the mesh-hosting side of the renderer as seen by the ink core:
// renderables can be added and removed, and frame timing can be queried.
// All calls must come from the single event-dispatch goroutine.
type Host interface {
	Attach(r metadata.Renderable)
	Detach(r metadata.Renderable)
	FrameRate() float64
}

// SimpleScene is a minimal Host that tracks attached renderables by id and
// reports the engine's measured frame rate. The render backend walks
// Renderables() each frame; the scene never mutates them.
type SimpleScene struct {
	renderables map[string]metadata.Renderable
}

func NewSimpleScene() *SimpleScene {
	return &SimpleScene{
		renderables: make(map[string]metadata.Renderable),
	}
}

func (s *SimpleScene) Attach(r metadata.Renderable) {
	if _, ok := s.renderables[r.ID()]; ok {
		core.LogWarn("renderable '%s' attached twice", r.ID())
		return
	}
	s.renderables[r.ID()] = r
}

func (s *SimpleScene) Detach(r metadata.Renderable) {
	delete(s.renderables, r.ID())
}

func (s *SimpleScene) FrameRate() float64 {
	return core.MetricsFPS()
}

func (s *SimpleScene) Contains(id string) bool {
	_, ok := s.renderables[id]
	return ok
}

func (s *SimpleScene) Count() int {
	return len(s.renderables)
}

// Renderables returns the attached renderables in no particular order.
func (s *SimpleScene) Renderables() []metadata.Renderable {
	out := make([]metadata.Renderable, 0, len(s.renderables))
	for _, r := range s.renderables {
		out = append(out, r)
	}
	return out
}
