package math

// Vec2 represents a 2D vector
type Vec2 struct {
	X, Y float32
}

// Vec3 represents a 3D vector
type Vec3 struct {
	X, Y, Z float32
}

// Vec4 represents a 4D vector
type Vec4 struct {
	X, Y, Z, W float32
}

// Mat4 is a 4x4 matrix stored column-major (Data[col*4+row]), the layout
// GPU uniform buffers expect. Points transform as column vectors, so
// a.Mul(b).TransformPoint(v) == a.TransformPoint(b.TransformPoint(v)).
type Mat4 struct {
	Data [16]float32
}

// Transform places an object in the world: a translation followed by an
// XYZ Euler rotation, both applied in that order when building the local
// matrix. Rotation is kept in degrees, matching scene description files.
type Transform struct {
	Position Vec3
	// Rotation holds Euler angles in degrees (X pitch, Y yaw, Z roll).
	Rotation Vec3
	// Indicates the local matrix needs rebuilding after a mutation.
	IsDirty bool
	// Cached local transformation matrix.
	Local Mat4
}
