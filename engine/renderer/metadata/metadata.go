package metadata

/** @brief An invalid 32-bit identifier. */
const InvalidID uint32 = 0xFFFFFFFF

/** @brief An invalid 16-bit identifier. */
const InvalidIDUint16 uint16 = 0xFFFF
