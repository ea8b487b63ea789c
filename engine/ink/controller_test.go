package ink

import (
	"fmt"
	"testing"

	"github.com/spaghettifunk/inkline/engine/math"
	"github.com/spaghettifunk/inkline/engine/renderer/metadata"
	"github.com/spaghettifunk/inkline/engine/scene"
)

// fakePicker hits for non-negative x and maps screen to local by dividing by
// 100, so screen (100, 50) picks local (1, 0.5).
type fakePicker struct{}

func (f *fakePicker) Pick(screenX, screenY float32) scene.PickResult {
	if screenX < 0 {
		return scene.PickResult{}
	}
	return scene.PickResult{
		Hit:      true,
		Local:    math.NewVec2(screenX/100, screenY/100),
		TargetID: 1,
	}
}

type fakeHost struct {
	attached    map[string]metadata.Renderable
	attachCalls int
	detachCalls int
	last        metadata.Renderable
}

func newFakeHost() *fakeHost {
	return &fakeHost{attached: make(map[string]metadata.Renderable)}
}

func (h *fakeHost) Attach(r metadata.Renderable) {
	h.attached[r.ID()] = r
	h.attachCalls++
	h.last = r
}

func (h *fakeHost) Detach(r metadata.Renderable) {
	delete(h.attached, r.ID())
	h.detachCalls++
}

func (h *fakeHost) FrameRate() float64 { return 60 }

type fakeMaterials struct {
	created   int
	released  []string
	lastMode  BrushMode
	lastDebug bool
}

func (f *fakeMaterials) FromBrush(mode BrushMode, colour math.Vec4, debug bool) (*metadata.Material, error) {
	f.created++
	f.lastMode = mode
	f.lastDebug = debug
	return &metadata.Material{
		Name:          fmt.Sprintf("fake_%s_%d", mode, f.created),
		DiffuseColour: colour,
	}, nil
}

func (f *fakeMaterials) Release(name string) error {
	f.released = append(f.released, name)
	return nil
}

func newTestController(t *testing.T) (*Controller, *fakeHost, *fakeMaterials, *BrushSettings) {
	t.Helper()
	host := newFakeHost()
	materials := &fakeMaterials{}
	settings := NewBrushSettings()
	c, err := NewController(&fakePicker{}, host, materials, settings, nil, DrawConfig{})
	if err != nil {
		t.Fatal(err)
	}
	return c, host, materials, settings
}

// drawStroke draws and commits a simple two-point stroke and returns the
// renderable the host saw for it.
func drawStroke(t *testing.T, c *Controller, host *fakeHost, x float32) metadata.Renderable {
	t.Helper()
	if !c.StartPath(x, 0) {
		t.Fatal("StartPath failed")
	}
	if !c.ExtendPath(x+100, 0) {
		t.Fatal("ExtendPath failed")
	}
	if !c.EndPath() {
		t.Fatal("EndPath failed")
	}
	return host.last
}

func TestStartPathMissLeavesStateUntouched(t *testing.T) {
	c, host, _, _ := newTestController(t)
	drawStroke(t, c, host, 0)
	c.Undo()

	attach, detach := host.attachCalls, host.detachCalls
	if c.StartPath(-5, 0) {
		t.Fatal("StartPath succeeded on a pick miss")
	}
	if c.IsDrawing() {
		t.Error("controller left Idle on a pick miss")
	}
	if c.CommittedCount() != 0 || c.RedoCount() != 1 {
		t.Errorf("stacks changed on a pick miss: committed=%d redo=%d", c.CommittedCount(), c.RedoCount())
	}
	if host.attachCalls != attach || host.detachCalls != detach {
		t.Error("scene touched on a pick miss")
	}
}

func TestStartExtendEndScenario(t *testing.T) {
	c, host, _, settings := newTestController(t)
	settings.SetRadius(0.05)

	if !c.StartPath(0, 0) {
		t.Fatal("StartPath failed")
	}
	if !c.IsDrawing() {
		t.Error("controller not Drawing after StartPath")
	}
	if host.attachCalls != 1 {
		t.Errorf("got %d attach calls, want 1: the stroke is visible while drawn", host.attachCalls)
	}

	stroke := host.last.(*Stroke)
	if got := stroke.Buffer().Radius(); got != 0.05 {
		t.Errorf("got radius %f, want 0.05", got)
	}
	if stroke.Buffer().PointCount() != 1 {
		t.Errorf("got %d seed points, want 1", stroke.Buffer().PointCount())
	}

	if !c.ExtendPath(100, 0) {
		t.Fatal("ExtendPath failed")
	}
	// Production config: sharp joins, two triangles per segment.
	if stroke.Buffer().IndexCount() < 15 {
		t.Errorf("got %d indices after one segment, want >= 15", stroke.Buffer().IndexCount())
	}

	if !c.EndPath() {
		t.Fatal("EndPath failed")
	}
	if c.IsDrawing() {
		t.Error("controller still Drawing after EndPath")
	}
	if c.CommittedCount() != 1 || c.RedoCount() != 0 {
		t.Errorf("got committed=%d redo=%d, want 1/0", c.CommittedCount(), c.RedoCount())
	}
}

func TestSecondStartPathIsNoOp(t *testing.T) {
	c, host, materials, _ := newTestController(t)
	if !c.StartPath(0, 0) {
		t.Fatal("StartPath failed")
	}
	if c.StartPath(10, 10) {
		t.Fatal("second StartPath succeeded while drawing")
	}
	if host.attachCalls != 1 || materials.created != 1 {
		t.Errorf("second StartPath created a stroke: attach=%d materials=%d", host.attachCalls, materials.created)
	}
}

func TestExtendPathOutsideDrawing(t *testing.T) {
	c, host, _, _ := newTestController(t)
	if c.ExtendPath(0, 0) {
		t.Error("ExtendPath succeeded while Idle")
	}

	c.StartPath(0, 0)
	stroke := host.last.(*Stroke)
	c.ExtendPath(100, 0)
	points := stroke.Buffer().PointCount()

	// A pointer excursion off the surface skips samples without truncating.
	if c.ExtendPath(-50, 0) {
		t.Error("ExtendPath succeeded on a pick miss")
	}
	if stroke.Buffer().PointCount() != points {
		t.Error("pick miss changed the stroke")
	}
	if !c.ExtendPath(200, 0) {
		t.Error("ExtendPath failed after recovering from a miss")
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	c, host, _, _ := newTestController(t)
	r := drawStroke(t, c, host, 0)
	genBefore := r.Geometry().Generation

	if !c.Undo() {
		t.Fatal("Undo failed")
	}
	if len(host.attached) != 0 {
		t.Error("stroke still attached after Undo")
	}
	if c.CommittedCount() != 0 || c.RedoCount() != 1 {
		t.Errorf("got committed=%d redo=%d after Undo, want 0/1", c.CommittedCount(), c.RedoCount())
	}

	if !c.Redo() {
		t.Fatal("Redo failed")
	}
	if host.last != r {
		t.Error("Redo attached a different stroke object")
	}
	if r.Geometry().Generation != genBefore {
		t.Error("geometry changed across undo/redo")
	}
	if c.CommittedCount() != 1 || c.RedoCount() != 0 {
		t.Errorf("got committed=%d redo=%d after Redo, want 1/0", c.CommittedCount(), c.RedoCount())
	}
}

func TestUndoRedoIsLIFO(t *testing.T) {
	c, host, _, _ := newTestController(t)
	first := drawStroke(t, c, host, 0)
	second := drawStroke(t, c, host, 300)

	c.Undo() // undoes second
	c.Undo() // undoes first
	if !c.Redo() {
		t.Fatal("Redo failed")
	}

	// Redo restores in reverse undo order: the first-created stroke comes
	// back first.
	if c.CommittedCount() != 1 || c.RedoCount() != 1 {
		t.Errorf("got committed=%d redo=%d, want 1/1", c.CommittedCount(), c.RedoCount())
	}
	if host.last != first {
		t.Error("Redo restored the wrong stroke")
	}
	if _, ok := host.attached[second.ID()]; ok {
		t.Error("second stroke attached while still undone")
	}
}

func TestHistoryOpsGatedWhileDrawing(t *testing.T) {
	c, host, _, _ := newTestController(t)
	drawStroke(t, c, host, 0)

	c.StartPath(0, 0)
	if c.Undo() {
		t.Error("Undo interrupted an active stroke")
	}
	if c.Clear() {
		t.Error("Clear interrupted an active stroke")
	}
	if c.Redo() {
		t.Error("Redo ran while drawing")
	}
	c.EndPath()

	if c.Redo() {
		t.Error("Redo succeeded with an empty redo stack")
	}
}

func TestClearDisposesCommittedOnly(t *testing.T) {
	c, host, materials, _ := newTestController(t)
	drawStroke(t, c, host, 0)
	drawStroke(t, c, host, 300)
	undone := drawStroke(t, c, host, 600)
	c.Undo()

	released := len(materials.released)
	if !c.Clear() {
		t.Fatal("Clear failed")
	}
	if c.CommittedCount() != 0 {
		t.Errorf("got %d committed strokes after Clear, want 0", c.CommittedCount())
	}
	if got := len(materials.released) - released; got != 2 {
		t.Errorf("got %d dispose calls, want 2", got)
	}
	// Redo history survives a clear.
	if c.RedoCount() != 1 {
		t.Errorf("got redo=%d after Clear, want 1", c.RedoCount())
	}
	if len(host.attached) != 0 {
		t.Error("cleared strokes still attached")
	}

	if !c.Redo() {
		t.Fatal("Redo after Clear failed")
	}
	if host.last != undone {
		t.Error("Redo after Clear restored the wrong stroke")
	}

	if c.Clear() {
		t.Error("Clear succeeded with an empty undo stack")
	}
}

func TestStartPathDiscardsRedoHistory(t *testing.T) {
	c, host, materials, _ := newTestController(t)
	drawStroke(t, c, host, 0)
	c.Undo()

	released := len(materials.released)
	if !c.StartPath(0, 0) {
		t.Fatal("StartPath failed")
	}
	if c.RedoCount() != 0 {
		t.Errorf("got redo=%d after a new stroke, want 0", c.RedoCount())
	}
	if got := len(materials.released) - released; got != 1 {
		t.Errorf("got %d dispose calls for discarded redo strokes, want 1", got)
	}
}

func TestInvalidBrushSettingsFailStartPathOnly(t *testing.T) {
	c, host, _, settings := newTestController(t)
	drawStroke(t, c, host, 0)
	c.Undo()

	settings.SetRadius(0)
	if c.StartPath(0, 0) {
		t.Fatal("StartPath succeeded with a zero radius")
	}
	if c.IsDrawing() {
		t.Error("controller left Idle after a failed StartPath")
	}
	// The failed call must not have consumed the redo history.
	if c.RedoCount() != 1 {
		t.Errorf("got redo=%d after failed StartPath, want 1", c.RedoCount())
	}

	settings.SetRadius(0.05)
	if !c.StartPath(0, 0) {
		t.Error("StartPath failed after restoring a valid radius")
	}
}
