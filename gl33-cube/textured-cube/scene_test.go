package main

import (
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testScene() *scene {
	cfg := defaultConfig()
	s := &scene{
		fovY:           mgl32.DegToRad(cfg.FovDegrees),
		near:           cfg.Near,
		far:            cfg.Far,
		cameraDistance: cfg.CameraDistance,
	}
	s.resize(cfg.Width, cfg.Height)
	return s
}

func TestCubeVertices(t *testing.T) {
	if len(cubeVertices) != cubeVertexCount*vertexSize {
		t.Fatalf("len = %d, want %d", len(cubeVertices), cubeVertexCount*vertexSize)
	}
	for i := 0; i < len(cubeVertices); i += vertexSize {
		for _, p := range cubeVertices[i : i+vertexPositionSize] {
			if p != 0.5 && p != -0.5 {
				t.Fatalf("vertex %d has position component %v", i/vertexSize, p)
			}
		}
		for _, uv := range cubeVertices[i+vertexPositionSize : i+vertexSize] {
			if uv != 0 && uv != 1 {
				t.Fatalf("vertex %d has texture coordinate %v", i/vertexSize, uv)
			}
		}
	}
}

func TestSceneMatrices(t *testing.T) {
	s := testScene()
	model, view, projection := s.matrices(math.Pi / 2)

	// a quarter turn maps +X onto -Z
	if math.Abs(float64(model[0])) > 1e-6 || math.Abs(float64(model[2]-1)) > 1e-6 {
		t.Errorf("model = %v", model)
	}
	if view[14] != -3 {
		t.Errorf("view[14] = %v, want -3", view[14])
	}
	if projection[11] != -1 {
		t.Errorf("projection[11] = %v, want -1", projection[11])
	}
	if want := projection[5] * 600 / 800; math.Abs(float64(projection[0]-want)) > 1e-5 {
		t.Errorf("projection[0] = %v, want %v", projection[0], want)
	}
}

func TestSceneResize(t *testing.T) {
	s := testScene()

	s.resize(1000, 500)
	if s.aspect != 2 {
		t.Errorf("aspect = %v, want 2", s.aspect)
	}

	// minimized
	s.resize(0, 0)
	if s.aspect != 2 {
		t.Errorf("aspect after minimize = %v, want 2", s.aspect)
	}
}

func TestGLErrorName(t *testing.T) {
	if got := glErrorName(0x502); got != "GL_INVALID_OPERATION" {
		t.Errorf("got %q", got)
	}
	if got := glErrorName(0x9999); got != "GL_ERROR_UNKNOWN" {
		t.Errorf("got %q", got)
	}
}

func TestFPSCounter(t *testing.T) {
	c := newFPSCounter("Cube")
	for i := 0; i < 59; i++ {
		if _, ok := c.frame(float64(i) / 60); ok {
			t.Fatalf("title produced after %d frames", i+1)
		}
	}
	title, ok := c.frame(1)
	if !ok || title != "Cube - 60 FPS" {
		t.Fatalf("got %q, %v", title, ok)
	}
}

func TestLoadTextureImageMissingIsLogged(t *testing.T) {
	buf := captureLog(t)

	img := loadTextureImage(filepath.Join(t.TempDir(), "missing.png"), 0)
	if img != nil {
		t.Fatalf("img = %+v, want nil", img)
	}
	if !strings.Contains(buf.String(), "Failed to load texture") {
		t.Errorf("log %q lacks the texture failure", buf.String())
	}
}

func TestLoadTextureImageDefaultAsset(t *testing.T) {
	captureLog(t)

	img := loadTextureImage(defaultConfig().Texture, 0)
	if img == nil {
		t.Fatal("bundled texture did not load")
	}
	if img.Width != 256 || img.Height != 256 || img.Channels != 3 {
		t.Errorf("got %dx%d/%d", img.Width, img.Height, img.Channels)
	}
}

// stubDelete replaces the GL delete calls with counters.
func stubDelete(t *testing.T) map[string]int {
	t.Helper()
	calls := make(map[string]int)
	prev := glDelete
	glDelete = deleter{
		vertexArrays: func(n int32, _ *uint32) { calls["vao"] += int(n) },
		buffers:      func(n int32, _ *uint32) { calls["vbo"] += int(n) },
		textures:     func(n int32, _ *uint32) { calls["texture"] += int(n) },
		program:      func(uint32) { calls["program"]++ },
	}
	t.Cleanup(func() { glDelete = prev })
	return calls
}

func TestSceneDeleteOnce(t *testing.T) {
	calls := stubDelete(t)

	s := &scene{program: 3, vao: 1, vbo: 2, texture: 4}
	s.delete()
	s.delete()

	for _, name := range []string{"vao", "vbo", "texture", "program"} {
		if calls[name] != 1 {
			t.Errorf("%s deleted %d times, want 1", name, calls[name])
		}
	}
	if s.program != 0 || s.vao != 0 || s.vbo != 0 || s.texture != 0 {
		t.Errorf("handles not cleared: %v", s)
	}
}

func TestSceneDeleteSkipsMissing(t *testing.T) {
	calls := stubDelete(t)

	// shader failed to build
	s := &scene{vao: 1, vbo: 2, texture: 4}
	s.delete()

	if calls["program"] != 0 {
		t.Errorf("program deleted %d times, want 0", calls["program"])
	}
	if calls["vao"] != 1 || calls["vbo"] != 1 || calls["texture"] != 1 {
		t.Errorf("calls = %v", calls)
	}
}

func TestSceneDrawable(t *testing.T) {
	if (&scene{}).drawable() {
		t.Error("scene without a program reports drawable")
	}
	if !(&scene{program: 7}).drawable() {
		t.Error("scene with a program reports not drawable")
	}
}
