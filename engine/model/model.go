package model

import (
	"github.com/chewxy/math32"

	"github.com/rxhxm/rc-car-3d-experience/common"
)

// GPUVertex matches the render pipeline's vertex buffer layout:
// position, normal, uv, and color, 48 bytes per vertex.
type GPUVertex struct {
	Position [3]float32
	Normal   [3]float32
	UV       [2]float32
	Color    [4]float32
}

// Mesh holds CPU-side geometry pending GPU upload.
type Mesh struct {
	Vertices []GPUVertex
	Indices  []uint32
}

// BoundingBox is an axis-aligned box in the mesh's local space.
type BoundingBox struct {
	Min [3]float32
	Max [3]float32
}

type modelImpl struct {
	name      string
	mesh      *Mesh
	baseColor [4]float32
	texture   *common.TextureStagingData

	bbox      BoundingBox
	bboxValid bool
}

// Model is a named renderable: a mesh, a base color, and an optional RGBA
// texture. Models are CPU-side descriptions; the renderer owns the GPU
// resources created from them.
type Model interface {
	// Name returns the model identifier used as the renderer's mesh key.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Mesh returns the model's geometry, or nil if not set.
	//
	// Returns:
	//   - *Mesh: the geometry
	Mesh() *Mesh

	// BaseColor returns the RGBA base color multiplied into the output.
	//
	// Returns:
	//   - [4]float32: the base color
	BaseColor() [4]float32

	// Texture returns staged RGBA texture data, or nil for untextured models.
	//
	// Returns:
	//   - *common.TextureStagingData: the staged texture or nil
	Texture() *common.TextureStagingData

	// SetTexture stages RGBA texture data for upload.
	//
	// Parameters:
	//   - tex: the staged texture, or nil to clear
	SetTexture(tex *common.TextureStagingData)

	// BoundingBox returns the axis-aligned bounds of the mesh in local space.
	// An empty mesh yields a zero box.
	//
	// Returns:
	//   - BoundingBox: the local-space bounds
	BoundingBox() BoundingBox

	// GroundOffset returns the vertical distance from the model's local
	// origin to its lowest point, used to seat the model flush on a surface.
	//
	// Returns:
	//   - float32: the ground offset (non-negative)
	GroundOffset() float32
}

var _ Model = &modelImpl{}

// ModelOption is a functional option for configuring a Model.
type ModelOption func(*modelImpl)

// NewModel creates a model configured with the given options.
//
// Parameters:
//   - options: functional options to configure the model
//
// Returns:
//   - Model: the newly created model
func NewModel(options ...ModelOption) Model {
	m := &modelImpl{
		name:      "model",
		baseColor: [4]float32{1, 1, 1, 1},
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// WithName sets the model identifier.
//
// Parameters:
//   - name: the model name
//
// Returns:
//   - ModelOption: functional option to set the name
func WithName(name string) ModelOption {
	return func(m *modelImpl) {
		m.name = name
	}
}

// WithMesh sets the model geometry.
//
// Parameters:
//   - mesh: the geometry
//
// Returns:
//   - ModelOption: functional option to set the mesh
func WithMesh(mesh *Mesh) ModelOption {
	return func(m *modelImpl) {
		m.mesh = mesh
		m.bboxValid = false
	}
}

// WithBaseColor sets the RGBA base color.
//
// Parameters:
//   - color: the base color
//
// Returns:
//   - ModelOption: functional option to set the color
func WithBaseColor(color [4]float32) ModelOption {
	return func(m *modelImpl) {
		m.baseColor = color
	}
}

// WithTexture stages RGBA texture data on the model.
//
// Parameters:
//   - tex: the staged texture
//
// Returns:
//   - ModelOption: functional option to set the texture
func WithTexture(tex *common.TextureStagingData) ModelOption {
	return func(m *modelImpl) {
		m.texture = tex
	}
}

func (m *modelImpl) Name() string {
	return m.name
}

func (m *modelImpl) Mesh() *Mesh {
	return m.mesh
}

func (m *modelImpl) BaseColor() [4]float32 {
	return m.baseColor
}

func (m *modelImpl) Texture() *common.TextureStagingData {
	return m.texture
}

func (m *modelImpl) SetTexture(tex *common.TextureStagingData) {
	m.texture = tex
}

func (m *modelImpl) BoundingBox() BoundingBox {
	if m.bboxValid {
		return m.bbox
	}
	if m.mesh == nil || len(m.mesh.Vertices) == 0 {
		return BoundingBox{}
	}

	bb := BoundingBox{Min: m.mesh.Vertices[0].Position, Max: m.mesh.Vertices[0].Position}
	for _, v := range m.mesh.Vertices[1:] {
		for i := 0; i < 3; i++ {
			bb.Min[i] = math32.Min(bb.Min[i], v.Position[i])
			bb.Max[i] = math32.Max(bb.Max[i], v.Position[i])
		}
	}
	m.bbox = bb
	m.bboxValid = true
	return bb
}

func (m *modelImpl) GroundOffset() float32 {
	return math32.Abs(m.BoundingBox().Min[1])
}
