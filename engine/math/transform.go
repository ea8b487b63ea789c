package math

func TransformCreate() *Transform {
	t := &Transform{}
	t.Position = NewVec3Zero()
	t.Rotation = NewQuatIdentity()
	t.Scale = NewVec3One()
	t.Parent = nil
	return t
}

func TransformFromPosition(position Vec3) *Transform {
	t := TransformCreate()
	t.Position = position
	return t
}

func (t *Transform) SetPosition(position Vec3) {
	t.Position = position
}

func (t *Transform) Translate(translation Vec3) {
	t.Position = t.Position.Add(translation)
}

// WorldPosition walks the parent chain and accumulates positions. Rotations
// and scales of parents are not folded in; drawing surfaces are expected to
// be axis-aligned in this engine.
func (t *Transform) WorldPosition() Vec3 {
	pos := t.Position
	for p := t.Parent; p != nil; p = p.Parent {
		pos = pos.Add(p.Position)
	}
	return pos
}
