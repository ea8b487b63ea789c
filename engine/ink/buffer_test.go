package ink

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/spaghettifunk/inkline/engine/core"
	"github.com/spaghettifunk/inkline/engine/math"
)

func TestNewStrokeBufferRejectsBadParameters(t *testing.T) {
	cases := []struct {
		name     string
		radius   float32
		debounce float32
	}{
		{"zero radius", 0, 0},
		{"negative radius", -0.05, 0},
		{"negative debounce", 0.05, -0.01},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewStrokeBuffer(tc.radius, 8, tc.debounce, math.NewVec2(0, 0))
			if !errors.Is(err, core.ErrInvalidBrushParameter) {
				t.Errorf("got error %v, want ErrInvalidBrushParameter", err)
			}
		})
	}
}

func TestSeedProducesDot(t *testing.T) {
	for _, roundness := range []uint32{0, 8, 32} {
		sb, err := NewStrokeBuffer(0.05, roundness, 0, math.NewVec2(1, 2))
		if err != nil {
			t.Fatal(err)
		}

		// Even a single tap must yield a visible, non-degenerate polygon.
		if sb.VertexCount() < 4 {
			t.Errorf("roundness %d: got %d vertices, want >= 4", roundness, sb.VertexCount())
		}
		if sb.IndexCount() < 9 {
			t.Errorf("roundness %d: got %d indices, want >= 9", roundness, sb.IndexCount())
		}
		if sb.IndexCount()%3 != 0 {
			t.Errorf("roundness %d: index count %d is not a triangle list", roundness, sb.IndexCount())
		}

		// All cap vertices stay within one radius of the seed.
		seed := math.NewVec2(1, 2)
		for i, v := range sb.Snapshot().Vertices {
			p := math.NewVec2(v.Position.X, v.Position.Y)
			if p.Distance(seed) > 0.05+math.K_FLOAT_EPSILON {
				t.Errorf("roundness %d: vertex %d at %v escapes the seed cap", roundness, i, p)
			}
		}
	}
}

func TestAppendPointSharpJoins(t *testing.T) {
	sb, err := NewStrokeBuffer(0.5, 0, 0, math.NewVec2(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	seedVerts := sb.VertexCount()
	seedIdx := sb.IndexCount()

	if !sb.AppendPoint(math.NewVec2(1, 0)) {
		t.Fatal("first extension rejected")
	}
	if got := sb.VertexCount() - seedVerts; got != 4 {
		t.Errorf("segment added %d vertices, want 4 with roundness 0", got)
	}
	if got := sb.IndexCount() - seedIdx; got != 6 {
		t.Errorf("segment added %d indices, want 6 with roundness 0", got)
	}

	// A hard 90 degree turn still adds exactly one quad: no join fan.
	before := sb.VertexCount()
	if !sb.AppendPoint(math.NewVec2(1, 1)) {
		t.Fatal("second extension rejected")
	}
	if got := sb.VertexCount() - before; got != 4 {
		t.Errorf("turn added %d vertices, want 4 with roundness 0", got)
	}
}

func TestAppendPointRoundedJoinAndCap(t *testing.T) {
	const roundness = 8
	sb, err := NewStrokeBuffer(0.5, roundness, 0, math.NewVec2(0, 0))
	if err != nil {
		t.Fatal(err)
	}

	// Straight extension: one quad plus the end cap fan, no join.
	before := sb.VertexCount()
	if !sb.AppendPoint(math.NewVec2(1, 0)) {
		t.Fatal("extension rejected")
	}
	straightAdded := sb.VertexCount() - before
	want := 4 + (roundness + 2)
	if straightAdded != want {
		t.Errorf("straight extension added %d vertices, want %d", straightAdded, want)
	}

	// Turning extension additionally emits the join fan at the pivot.
	before = sb.VertexCount()
	if !sb.AppendPoint(math.NewVec2(1, 1)) {
		t.Fatal("turn extension rejected")
	}
	turnAdded := sb.VertexCount() - before
	if turnAdded <= straightAdded {
		t.Errorf("turn added %d vertices, want more than the straight extension's %d", turnAdded, straightAdded)
	}
	if turnAdded != straightAdded+(roundness+2) {
		t.Errorf("turn added %d vertices, want %d", turnAdded, straightAdded+(roundness+2))
	}
}

func TestDebounceIsIdempotent(t *testing.T) {
	sb, err := NewStrokeBuffer(0.05, 4, 0.1, math.NewVec2(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	if !sb.AppendPoint(math.NewVec2(1, 0)) {
		t.Fatal("extension past the debounce distance rejected")
	}

	before := sb.Snapshot()
	beforeGen := sb.Generation()

	if sb.AppendPoint(math.NewVec2(1.05, 0)) {
		t.Fatal("sample inside the debounce distance accepted")
	}

	if diff := cmp.Diff(before, sb.Snapshot()); diff != "" {
		t.Errorf("debounced sample mutated the buffer (-before +after):\n%s", diff)
	}
	if sb.Generation() != beforeGen {
		t.Errorf("debounced sample bumped generation %d -> %d", beforeGen, sb.Generation())
	}
	if sb.PointCount() != 2 {
		t.Errorf("got %d points, want 2", sb.PointCount())
	}
}

func TestZeroDistanceSampleRejected(t *testing.T) {
	sb, err := NewStrokeBuffer(0.05, 0, 0, math.NewVec2(3, 4))
	if err != nil {
		t.Fatal(err)
	}
	if sb.AppendPoint(math.NewVec2(3, 4)) {
		t.Error("coincident sample accepted; no segment direction exists for it")
	}
}

func TestGrowthIsLinearInPointsAndRoundness(t *testing.T) {
	const roundness = 6
	sb, err := NewStrokeBuffer(0.01, roundness, 0, math.NewVec2(0, 0))
	if err != nil {
		t.Fatal(err)
	}

	// Zig-zag so every point produces a join as well.
	seedVerts := sb.VertexCount()
	lastVerts := sb.VertexCount()
	lastIdx := sb.IndexCount()
	const n = 200
	for i := 1; i <= n; i++ {
		y := float32(0)
		if i%2 == 1 {
			y = 0.5
		}
		if !sb.AppendPoint(math.NewVec2(float32(i), y)) {
			t.Fatalf("point %d rejected", i)
		}
		if sb.VertexCount() < lastVerts || sb.IndexCount() < lastIdx {
			t.Fatalf("buffers shrank at point %d", i)
		}
		lastVerts = sb.VertexCount()
		lastIdx = sb.IndexCount()
	}

	// Per-point cost is bounded by a constant factor of roundness.
	perPoint := float64(sb.VertexCount()-seedVerts) / float64(n)
	bound := float64(4 + 2*(roundness+2))
	if perPoint > bound {
		t.Errorf("vertex growth %f per point exceeds bound %f", perPoint, bound)
	}
	if sb.PointCount() != n+1 {
		t.Errorf("got %d points, want %d", sb.PointCount(), n+1)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	sb, err := NewStrokeBuffer(0.05, 4, 0, math.NewVec2(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	snap := sb.Snapshot()
	snap.Vertices[0].Position.X = 999

	if sb.Snapshot().Vertices[0].Position.X == 999 {
		t.Error("snapshot aliases the live buffer")
	}
}

func TestBufferUseAfterDisposePanics(t *testing.T) {
	sb, err := NewStrokeBuffer(0.05, 0, 0, math.NewVec2(0, 0))
	if err != nil {
		t.Fatal(err)
	}
	sb.Dispose()

	defer func() {
		if r := recover(); r != core.ErrUseAfterDispose {
			t.Errorf("got panic %v, want ErrUseAfterDispose", r)
		}
	}()
	sb.AppendPoint(math.NewVec2(1, 0))
}
