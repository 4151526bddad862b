// Package mat4 holds the handful of 4x4 matrix operations the cube demos need.
//
// A Mat4 is 16 contiguous float32 values in row-major order: element (row, col)
// lives at index row*4+col. The arithmetic is done by mgl32, which stores its
// matrices column-major, so every operation transposes on the way in and out.
// The memory layout is what gets uploaded to the shader with
// gl.UniformMatrix4fv(loc, 1, false, m.Ptr()).
package mat4

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Mat4 is a row-major 4x4 matrix.
type Mat4 [16]float32

// Identity sets out to the identity matrix.
func Identity(out *Mat4) {
	*out = Mat4(mgl32.Ident4())
}

// Multiply computes out = a * b. out may alias a or b.
func Multiply(out, a, b *Mat4) {
	*out = fromMgl(a.mgl().Mul4(b.mgl()))
}

// RotateY left-multiplies a rotation of angle radians about the Y axis into m.
func RotateY(m *Mat4, angle float32) {
	r := fromMgl(mgl32.HomogRotate3DY(angle))
	Multiply(m, &r, m)
}

// Translate left-multiplies a translation by (x, y, z) into m.
//
// The translation sits at indices 12, 13 and 14 of the buffer, which is also
// where mgl32 keeps it, so the mgl32 matrix is taken as-is.
func Translate(m *Mat4, x, y, z float32) {
	t := Mat4(mgl32.Translate3D(x, y, z))
	Multiply(m, &t, m)
}

// Perspective writes an OpenGL perspective projection into out.
//
// fovY is the vertical field of view in radians and must lie in (0, pi);
// aspect must be positive and 0 < near < far. Other inputs give undefined
// (inf or NaN) entries.
func Perspective(out *Mat4, fovY, aspect, near, far float32) {
	*out = Mat4(mgl32.Perspective(fovY, aspect, near, far))
}

// Ptr returns a pointer to the first element, for gl.UniformMatrix4fv.
func (m *Mat4) Ptr() *float32 {
	return &m[0]
}

// ApproxEqual reports whether every element of m and other differs by at most eps.
func (m *Mat4) ApproxEqual(other *Mat4, eps float32) bool {
	for i := range m {
		if mgl32.Abs(m[i]-other[i]) > eps {
			return false
		}
	}
	return true
}

// mgl returns the matrix m describes, in mgl32's column-major storage.
func (m *Mat4) mgl() mgl32.Mat4 {
	return mgl32.Mat4(*m).Transpose()
}

func fromMgl(x mgl32.Mat4) Mat4 {
	return Mat4(x.Transpose())
}
