package main

import (
	"fmt"
	"log/slog"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/paperboard/example/mat4"
	"github.com/paperboard/example/shader"
	"github.com/paperboard/example/texture"
)

const (
	floatSizeInBytes   = 4  // a float32 is 4 bytes
	vertexPositionSize = 3  // x,y,z
	vertexTexCoordSize = 2  // u,v
	vertexSize         = 5  // vertexPositionSize + vertexTexCoordSize
	cubeVertexCount    = 36 // 6 faces * 2 triangles * 3 vertices
	textureUnit        = 0
)

// scene owns every GPU object the demo creates. All of them are created by
// newScene and released by delete, on the thread that owns the context.
type scene struct {
	program uint32
	vao     uint32
	vbo     uint32
	texture uint32

	modelUniform      int32
	viewUniform       int32
	projectionUniform int32

	fovY, near, far float32
	aspect          float32
	cameraDistance  float32
}

func newScene(cfg config) *scene {

	s := &scene{
		fovY:           mgl32.DegToRad(cfg.FovDegrees),
		near:           cfg.Near,
		far:            cfg.Far,
		cameraDistance: cfg.CameraDistance,
	}
	s.resize(cfg.Width, cfg.Height)

	// hide faces behind other faces
	gl.Enable(gl.DEPTH_TEST)
	gl.ClearColor(cfg.ClearColor[0], cfg.ClearColor[1], cfg.ClearColor[2], cfg.ClearColor[3])

	// a broken program is logged and left as 0; the cube simply won't show
	program, err := shader.NewProgram(vertexShader, fragmentShader)
	if err != nil {
		slog.Error("failed to build shader program", "error", err)
	}
	s.program = program

	s.setupBuffers()
	s.setupTexture(cfg.Texture)

	if s.drawable() {
		gl.UseProgram(s.program)
		gl.Uniform1i(shader.Uniform(s.program, "texture1"), textureUnit)
		s.modelUniform = shader.Uniform(s.program, "model")
		s.viewUniform = shader.Uniform(s.program, "view")
		s.projectionUniform = shader.Uniform(s.program, "projection")
	}

	checkGLError()

	return s

}

// https://www.songho.ca/opengl/gl_vbo.html#create
func (s *scene) setupBuffers() {

	gl.GenVertexArrays(1, &s.vao)
	gl.BindVertexArray(s.vao)

	// copy vertex data to VBO
	gl.GenBuffers(1, &s.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, s.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(cubeVertices)*floatSizeInBytes, gl.Ptr(cubeVertices), gl.STATIC_DRAW)

	// location 0 = position, location 1 = texture coordinate
	gl.VertexAttribPointerWithOffset(0, vertexPositionSize, gl.FLOAT, false, vertexSize*floatSizeInBytes, 0)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, vertexTexCoordSize, gl.FLOAT, false, vertexSize*floatSizeInBytes, vertexPositionSize*floatSizeInBytes)
	gl.EnableVertexAttribArray(1)

}

func (s *scene) setupTexture(path string) {

	gl.GenTextures(1, &s.texture)
	gl.BindTexture(gl.TEXTURE_2D, s.texture)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)

	var maxSize int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxSize)

	img := loadTextureImage(path, int(maxSize))
	if img == nil {
		// the texture object stays without an image
		return
	}

	format := uint32(gl.RGB)
	if img.Channels == 4 {
		format = gl.RGBA
	}

	// RGB rows are not 4-byte aligned in general
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, int32(format), int32(img.Width), int32(img.Height), 0, format, gl.UNSIGNED_BYTE, gl.Ptr(img.Pix))
	gl.GenerateMipmap(gl.TEXTURE_2D)

}

// loadTextureImage decodes the texture at path, scaled down to fit maxSize.
// A failure is logged and returns nil; startup carries on without the image.
func loadTextureImage(path string, maxSize int) *texture.Image {
	img, err := texture.Load(path, maxSize)
	if err != nil {
		slog.Error("Failed to load texture", "path", path, "error", err)
		return nil
	}
	slog.Info("texture loaded", "path", path, "width", img.Width, "height", img.Height, "channels", img.Channels)
	return img
}

// resize recomputes the projection aspect for a framebuffer of width x height.
// A zero-sized framebuffer (minimized window) keeps the previous aspect.
func (s *scene) resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	s.aspect = float32(width) / float32(height)
}

// matrices computes model, view and projection for time t seconds.
func (s *scene) matrices(t float64) (model, view, projection mat4.Mat4) {

	// spin about Y, one radian per second
	mat4.Identity(&model)
	mat4.RotateY(&model, float32(t))

	// camera pulled back along Z
	mat4.Identity(&view)
	mat4.Translate(&view, 0, 0, -s.cameraDistance)

	mat4.Perspective(&projection, s.fovY, s.aspect, s.near, s.far)

	return model, view, projection

}

// drawable reports whether the shader program was built. Without one every
// uniform upload and draw call would raise a GL error each frame.
func (s *scene) drawable() bool {
	return s.program != 0
}

func (s *scene) draw(t float64) {

	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	if !s.drawable() {
		return
	}

	gl.UseProgram(s.program)

	model, view, projection := s.matrices(t)
	gl.UniformMatrix4fv(s.modelUniform, 1, false, model.Ptr())
	gl.UniformMatrix4fv(s.viewUniform, 1, false, view.Ptr())
	gl.UniformMatrix4fv(s.projectionUniform, 1, false, projection.Ptr())

	gl.ActiveTexture(gl.TEXTURE0 + textureUnit)
	gl.BindTexture(gl.TEXTURE_2D, s.texture)

	gl.BindVertexArray(s.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, cubeVertexCount)

	checkGLError()

}

// deleter holds the GL calls that release scene objects.
type deleter struct {
	vertexArrays func(n int32, arrays *uint32)
	buffers      func(n int32, buffers *uint32)
	textures     func(n int32, textures *uint32)
	program      func(program uint32)
}

var glDelete = deleter{
	vertexArrays: gl.DeleteVertexArrays,
	buffers:      gl.DeleteBuffers,
	textures:     gl.DeleteTextures,
	program:      gl.DeleteProgram,
}

// delete releases each GPU object once. Calling it again does nothing.
func (s *scene) delete() {
	if s.vao != 0 {
		glDelete.vertexArrays(1, &s.vao)
		s.vao = 0
	}
	if s.vbo != 0 {
		glDelete.buffers(1, &s.vbo)
		s.vbo = 0
	}
	if s.texture != 0 {
		glDelete.textures(1, &s.texture)
		s.texture = 0
	}
	if s.program != 0 {
		glDelete.program(s.program)
		s.program = 0
	}
}

func (s *scene) String() string {
	return fmt.Sprintf("scene{program:%d vao:%d vbo:%d texture:%d}", s.program, s.vao, s.vbo, s.texture)
}

var vertexShader = `
#version 330 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec2 aTexCoord;

uniform mat4 model;
uniform mat4 view;
uniform mat4 projection;

out vec2 TexCoord;

void main() {
	gl_Position = projection * view * model * vec4(aPos, 1.0);
	TexCoord = aTexCoord;
}
`

var fragmentShader = `
#version 330 core

in vec2 TexCoord;
out vec4 FragColor;

uniform sampler2D texture1;

void main() {
	FragColor = texture(texture1, TexCoord);
}
`

// unit cube, 36 unindexed vertices
//
//    v6----- v5
//   /|      /|
//  v1------v0|
//  | |     | |
//  | v7----|-v4
//  |/      |/
//  v2------v3
//
var cubeVertices = []float32{
	//  X, Y, Z, U, V
	// back
	-0.5, -0.5, -0.5, 0.0, 0.0,
	0.5, -0.5, -0.5, 1.0, 0.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	-0.5, 0.5, -0.5, 0.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 0.0,

	// front
	-0.5, -0.5, 0.5, 0.0, 0.0,
	0.5, -0.5, 0.5, 1.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 1.0,
	0.5, 0.5, 0.5, 1.0, 1.0,
	-0.5, 0.5, 0.5, 0.0, 1.0,
	-0.5, -0.5, 0.5, 0.0, 0.0,

	// left
	-0.5, 0.5, 0.5, 1.0, 0.0,
	-0.5, 0.5, -0.5, 1.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 1.0,
	-0.5, -0.5, -0.5, 0.0, 1.0,
	-0.5, -0.5, 0.5, 0.0, 0.0,
	-0.5, 0.5, 0.5, 1.0, 0.0,

	// right
	0.5, 0.5, 0.5, 1.0, 0.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	0.5, -0.5, -0.5, 0.0, 1.0,
	0.5, -0.5, -0.5, 0.0, 1.0,
	0.5, -0.5, 0.5, 0.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 0.0,

	// bottom
	-0.5, -0.5, -0.5, 0.0, 1.0,
	0.5, -0.5, -0.5, 1.0, 1.0,
	0.5, -0.5, 0.5, 1.0, 0.0,
	0.5, -0.5, 0.5, 1.0, 0.0,
	-0.5, -0.5, 0.5, 0.0, 0.0,
	-0.5, -0.5, -0.5, 0.0, 1.0,

	// top
	-0.5, 0.5, -0.5, 0.0, 1.0,
	0.5, 0.5, -0.5, 1.0, 1.0,
	0.5, 0.5, 0.5, 1.0, 0.0,
	0.5, 0.5, 0.5, 1.0, 0.0,
	-0.5, 0.5, 0.5, 0.0, 0.0,
	-0.5, 0.5, -0.5, 0.0, 1.0,
}
