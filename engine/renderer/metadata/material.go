package metadata

import "github.com/spaghettifunk/inkline/engine/math"

/** @brief The name of the default material. */
const DefaultMaterialName string = "default"

/**
 * @brief Material configuration created in code from the brush policy.
 */
type MaterialConfig struct {
	/** @brief The name of the material. */
	Name string
	/** @brief The shader the material renders with. */
	ShaderName string
	/** @brief Indicates if the material should be automatically released when no references to it remain. */
	AutoRelease bool
	/** @brief The diffuse colour of the material. */
	DiffuseColour math.Vec4
}

type MaterialReference struct {
	ReferenceCount uint64
	Material       *Material
	AutoRelease    bool
}

/**
 * @brief A material, which represents how an ink surface is shaded:
 * flat colour, debug wireframe tint or an animated rainbow ramp.
 */
type Material struct {
	/** @brief The material id. */
	ID uint32
	/** @brief The material generation. Incremented every time the material is changed. */
	Generation uint32
	/** @brief The internal material id. Used by the renderer backend to map to internal resources. */
	InternalID uint32
	/** @brief The material name. */
	Name string
	/** @brief The shader the material renders with. */
	ShaderName string
	/** @brief The diffuse colour. */
	DiffuseColour math.Vec4
}
