package ink

import (
	"fmt"

	"github.com/spaghettifunk/inkline/engine/core"
	"github.com/spaghettifunk/inkline/engine/math"
	"github.com/spaghettifunk/inkline/engine/renderer/metadata"
)

// Turns below this angle (radians) keep the ribbon sharp; no join fan is
// emitted for near-collinear segments.
const joinAngleTolerance float32 = 0.01

// A seed cap must be a visible polygon even with join tessellation disabled,
// so a tap produces a dot.
const minCapSegments uint32 = 3

/**
 * @brief StrokeBuffer owns the growing triangle mesh of a single stroke.
 *
 * Points are appended in arrival order; each accepted point extends the
 * ribbon by one quad, an optional rounded join at the previous point and an
 * optional rounded cap at the new point. Work per accepted point is bounded
 * by the roundness, never by the stroke length, and the vertex/index buffers
 * only grow until the buffer is disposed.
 */
type StrokeBuffer struct {
	points           []math.Vec2
	radius           float32
	roundness        uint32
	debounceDistance float32

	vertices   []math.Vertex3D
	indices    []uint32
	extents    math.Extents2D
	generation uint16

	// Direction of the last appended segment; zero until two points exist.
	lastDir math.Vec2
	// Accumulated centerline arc length, drives the U texture coordinate.
	length float32

	disposed bool
}

// NewStrokeBuffer seeds a buffer with a round cap centered at seed. The
// radius must be positive and the debounce distance non-negative, otherwise
// core.ErrInvalidBrushParameter is returned.
func NewStrokeBuffer(radius float32, roundness uint32, debounceDistance float32, seed math.Vec2) (*StrokeBuffer, error) {
	if radius <= 0 {
		return nil, fmt.Errorf("%w: radius must be > 0, got %f", core.ErrInvalidBrushParameter, radius)
	}
	if debounceDistance < 0 {
		return nil, fmt.Errorf("%w: debounce distance must be >= 0, got %f", core.ErrInvalidBrushParameter, debounceDistance)
	}

	sb := &StrokeBuffer{
		points:           []math.Vec2{seed},
		radius:           radius,
		roundness:        roundness,
		debounceDistance: debounceDistance,
		extents:          math.Extents2D{Min: seed, Max: seed},
	}
	sb.appendDisk(seed)
	sb.generation++
	return sb, nil
}

// AppendPoint accepts p unless it lies closer to the last accepted point
// than the debounce distance, in which case the buffer is left untouched and
// false is returned. An accepted point extends the ribbon and returns true.
func (sb *StrokeBuffer) AppendPoint(p math.Vec2) bool {
	sb.ensureAlive()

	last := sb.points[len(sb.points)-1]
	dist := p.Distance(last)
	if dist <= math.K_FLOAT_EPSILON {
		return false
	}
	if dist < sb.debounceDistance {
		return false
	}

	dir := p.Sub(last).MulScalar(1.0 / dist)

	if len(sb.points) > 1 && sb.roundness > 0 {
		turn := math.Atan2(sb.lastDir.Cross(dir), sb.lastDir.Dot(dir))
		if math.Abs(turn) > joinAngleTolerance {
			sb.appendJoin(last, sb.lastDir, dir)
		}
	}

	sb.appendSegment(last, p, dir, dist)
	sb.length += dist
	if sb.roundness > 0 {
		sb.appendCap(p, dir)
	}

	sb.points = append(sb.points, p)
	sb.lastDir = dir
	sb.generation++
	return true
}

// Snapshot returns a copy of the triangle mesh covering exactly the points
// accepted so far.
func (sb *StrokeBuffer) Snapshot() *metadata.GeometryData {
	sb.ensureAlive()
	data := &metadata.GeometryData{
		Vertices: make([]math.Vertex3D, len(sb.vertices)),
		Indices:  make([]uint32, len(sb.indices)),
	}
	copy(data.Vertices, sb.vertices)
	copy(data.Indices, sb.indices)
	return data
}

func (sb *StrokeBuffer) PointCount() int {
	return len(sb.points)
}

func (sb *StrokeBuffer) VertexCount() int {
	return len(sb.vertices)
}

func (sb *StrokeBuffer) IndexCount() int {
	return len(sb.indices)
}

func (sb *StrokeBuffer) Generation() uint16 {
	return sb.generation
}

func (sb *StrokeBuffer) Radius() float32 {
	return sb.radius
}

func (sb *StrokeBuffer) Extents() math.Extents2D {
	return sb.extents
}

// Length returns the accumulated centerline arc length.
func (sb *StrokeBuffer) Length() float32 {
	return sb.length
}

// Dispose releases the geometry. Any further use of the buffer panics with
// core.ErrUseAfterDispose.
func (sb *StrokeBuffer) Dispose() {
	sb.ensureAlive()
	sb.points = nil
	sb.vertices = nil
	sb.indices = nil
	sb.disposed = true
}

func (sb *StrokeBuffer) ensureAlive() {
	if sb.disposed {
		panic(core.ErrUseAfterDispose)
	}
}

func (sb *StrokeBuffer) addVertex(pos math.Vec2, u, v float32) uint32 {
	idx := uint32(len(sb.vertices))
	sb.vertices = append(sb.vertices, math.Vertex3D{
		Position: math.NewVec3FromVec2(pos),
		Normal:   math.NewVec3(0, 0, 1),
		Texcoord: math.NewVec2(u, v),
		Colour:   math.NewVec4(1, 1, 1, 1),
	})
	if pos.X < sb.extents.Min.X {
		sb.extents.Min.X = pos.X
	}
	if pos.Y < sb.extents.Min.Y {
		sb.extents.Min.Y = pos.Y
	}
	if pos.X > sb.extents.Max.X {
		sb.extents.Max.X = pos.X
	}
	if pos.Y > sb.extents.Max.Y {
		sb.extents.Max.Y = pos.Y
	}
	return idx
}

func (sb *StrokeBuffer) addTriangle(a, b, c uint32) {
	sb.indices = append(sb.indices, a, b, c)
}

// appendDisk emits a full circle fan centered at c. Used for the seed cap.
func (sb *StrokeBuffer) appendDisk(c math.Vec2) {
	segments := sb.roundness
	if segments < minCapSegments {
		segments = minCapSegments
	}

	center := sb.addVertex(c, sb.length, 0.5)
	step := 2 * math.K_PI / float32(segments)
	spoke := math.NewVec2(sb.radius, 0)

	first := sb.addVertex(c.Add(spoke), sb.length, 0)
	prev := first
	for i := uint32(1); i < segments; i++ {
		cur := sb.addVertex(c.Add(spoke.Rotate(step*float32(i))), sb.length, 0)
		sb.addTriangle(center, prev, cur)
		prev = cur
	}
	sb.addTriangle(center, prev, first)
}

// appendSegment emits the quad of the ribbon between from and to, of width
// 2*radius, perpendicular to dir.
func (sb *StrokeBuffer) appendSegment(from, to, dir math.Vec2, dist float32) {
	n := dir.Perp().MulScalar(sb.radius)
	u0 := sb.length
	u1 := sb.length + dist

	a0 := sb.addVertex(from.Add(n), u0, 0)
	a1 := sb.addVertex(from.Sub(n), u0, 1)
	b0 := sb.addVertex(to.Add(n), u1, 0)
	b1 := sb.addVertex(to.Sub(n), u1, 1)

	sb.addTriangle(a0, a1, b0)
	sb.addTriangle(b0, a1, b1)
}

// appendJoin fills the outer wedge left between two consecutive segment
// quads at pivot with a fan of roundness triangles approximating a circular
// arc from the outgoing edge of the previous quad to the incoming edge of
// the next one.
func (sb *StrokeBuffer) appendJoin(pivot, d0, d1 math.Vec2) {
	// Left turns leave the gap on the right side and vice versa.
	var from, to math.Vec2
	if d0.Cross(d1) > 0 {
		from = d0.Perp().MulScalar(-sb.radius)
		to = d1.Perp().MulScalar(-sb.radius)
	} else {
		from = d0.Perp().MulScalar(sb.radius)
		to = d1.Perp().MulScalar(sb.radius)
	}

	sweep := to.Angle() - from.Angle()
	for sweep > math.K_PI {
		sweep -= 2 * math.K_PI
	}
	for sweep < -math.K_PI {
		sweep += 2 * math.K_PI
	}

	center := sb.addVertex(pivot, sb.length, 0.5)
	step := sweep / float32(sb.roundness)

	prev := sb.addVertex(pivot.Add(from), sb.length, 0)
	for i := uint32(1); i <= sb.roundness; i++ {
		cur := sb.addVertex(pivot.Add(from.Rotate(step*float32(i))), sb.length, 0)
		if step > 0 {
			sb.addTriangle(center, prev, cur)
		} else {
			sb.addTriangle(center, cur, prev)
		}
		prev = cur
	}
}

// appendCap emits a forward-facing semicircle fan at tip, closing the ribbon
// end in direction dir.
func (sb *StrokeBuffer) appendCap(tip, dir math.Vec2) {
	from := dir.Perp().MulScalar(sb.radius)
	step := -math.K_PI / float32(sb.roundness)

	center := sb.addVertex(tip, sb.length, 0.5)
	prev := sb.addVertex(tip.Add(from), sb.length, 0)
	for i := uint32(1); i <= sb.roundness; i++ {
		cur := sb.addVertex(tip.Add(from.Rotate(step*float32(i))), sb.length, 1)
		sb.addTriangle(center, cur, prev)
		prev = cur
	}
}
