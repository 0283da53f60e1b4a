package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/breakout/internal/engine/mesh"
	"github.com/Faultbox/breakout/pkg/formats"
)

// Object is a placed mesh instance. Position is the world-space centre of
// the mesh's bounding box.
type Object struct {
	Name     string
	Mesh     *formats.OBJMesh
	GPU      *mesh.Mesh
	Texture  uint32
	Position mgl32.Vec3
	Rotation mgl32.Vec3 // radians around X, Y, Z
	Scale    mgl32.Vec3
	Visible  bool
}

// NewObject creates a visible object with a uniform scale.
func NewObject(name string, m *formats.OBJMesh, scale float32) *Object {
	return &Object{
		Name:    name,
		Mesh:    m,
		Scale:   mgl32.Vec3{scale, scale, scale},
		Visible: true,
	}
}

// Footprint returns the scaled planar size of the mesh.
func (o *Object) Footprint() (width, height float32) {
	return o.Mesh.Width * o.Scale.X(), o.Mesh.Height * o.Scale.Y()
}

// Rect returns the object's screen-plane bounding rectangle.
func (o *Object) Rect() Rect {
	w, h := o.Footprint()
	return RectAround(o.Position.X(), o.Position.Y(), w, h)
}

// ModelMatrix moves the mesh centre to Position, then applies rotation and scale.
func (o *Object) ModelMatrix() mgl32.Mat4 {
	min, max := o.Mesh.Bounds()
	centre := min.Add(max).Mul(0.5)

	m := mgl32.Translate3D(o.Position.X(), o.Position.Y(), o.Position.Z())
	m = m.Mul4(mgl32.HomogRotate3DX(o.Rotation.X()))
	m = m.Mul4(mgl32.HomogRotate3DY(o.Rotation.Y()))
	m = m.Mul4(mgl32.HomogRotate3DZ(o.Rotation.Z()))
	m = m.Mul4(mgl32.Scale3D(o.Scale.X(), o.Scale.Y(), o.Scale.Z()))
	return m.Mul4(mgl32.Translate3D(-centre.X(), -centre.Y(), -centre.Z()))
}

// GPUMesh returns the uploaded mesh, or nil when hidden or not uploaded.
func (o *Object) GPUMesh() *mesh.Mesh {
	if !o.Visible {
		return nil
	}
	return o.GPU
}

// TextureID returns the diffuse texture.
func (o *Object) TextureID() uint32 {
	return o.Texture
}
