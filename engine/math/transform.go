package math

// NewTransform creates a transform with a zero position and rotation.
func NewTransform() *Transform {
	return &Transform{
		Position: NewVec3Zero(),
		Rotation: NewVec3Zero(),
		IsDirty:  true,
	}
}

// NewTransformFromPosition creates a transform at the given position.
func NewTransformFromPosition(position Vec3) *Transform {
	return &Transform{
		Position: position,
		Rotation: NewVec3Zero(),
		IsDirty:  true,
	}
}

// SetPosition replaces the position and marks the local matrix stale.
func (t *Transform) SetPosition(position Vec3) {
	t.Position = position
	t.IsDirty = true
}

// Translate offsets the position and marks the local matrix stale.
func (t *Transform) Translate(translation Vec3) {
	t.Position = t.Position.Add(translation)
	t.IsDirty = true
}

// SetRotation replaces the Euler rotation (degrees) and marks the local
// matrix stale.
func (t *Transform) SetRotation(rotation Vec3) {
	t.Rotation = rotation
	t.IsDirty = true
}

// Rotate offsets the Euler rotation (degrees) and marks the local
// matrix stale.
func (t *Transform) Rotate(rotation Vec3) {
	t.Rotation = t.Rotation.Add(rotation)
	t.IsDirty = true
}

// GetLocal returns the cached local matrix, recalculating it first if the
// transform changed since the last call. Rotation applies X, then Y,
// then Z, followed by the translation.
func (t *Transform) GetLocal() Mat4 {
	if t.IsDirty {
		rotation := NewMat4EulerXYZ(
			DegToRad(t.Rotation.X),
			DegToRad(t.Rotation.Y),
			DegToRad(t.Rotation.Z),
		)
		t.Local = NewMat4Translation(t.Position).Mul(rotation)
		t.IsDirty = false
	}
	return t.Local
}
