package metadata

import (
	"github.com/spaghettifunk/inkline/engine/math"
)

/**
 * @brief A triangle-list snapshot of a geometry buffer. Produced for
 * rendering and inspection; holds copies, never aliases the live buffer.
 */
type GeometryData struct {
	/** @brief An array of Vertices. */
	Vertices []math.Vertex3D
	/** @brief An array of Indices into Vertices, three per triangle. */
	Indices []uint32
}

/**
 * @brief Describes a geometry buffer owned elsewhere. Paired with a material.
 */
type Geometry struct {
	/** @brief The geometry name, unique per owner. */
	Name string
	/** @brief The geometry generation. Incremented every time the geometry changes. */
	Generation uint16
	/** @brief The extents of the geometry in the surface's local 2D frame. */
	Extents math.Extents2D
	/** @brief A pointer to the material associated with this geometry. */
	Material *Material
}

/**
 * @brief Anything the scene can draw. The scene holds a non-owning
 * reference and never mutates the renderable; geometry changes are observed
 * through Generation and fresh snapshots.
 */
type Renderable interface {
	ID() string
	Geometry() *Geometry
	GeometrySnapshot() *GeometryData
	Transform() *math.Transform
}
