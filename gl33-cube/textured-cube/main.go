// Command textured-cube renders a textured cube spinning about the Y axis
// until the window is closed or Escape is pressed.
package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	// glfw must be on main thread
	runtime.LockOSThread()
}

func main() {

	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(2)
	}
	level, _ := cfg.level()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if err := run(cfg); err != nil {
		logStartupError(err)
		os.Exit(1)
	}

}

// messages for the fatal startup failures
const (
	msgGLFWInit     = "Failed to initialize GLFW"
	msgCreateWindow = "Failed to create GLFW window"
	msgGLInit       = "Failed to initialize OpenGL"
)

// startupError is a failure that stops the program before the render loop.
type startupError struct {
	msg string
	err error
}

func (e *startupError) Error() string { return e.msg + ": " + e.err.Error() }
func (e *startupError) Unwrap() error { return e.err }

func logStartupError(err error) {
	var se *startupError
	if errors.As(err, &se) {
		slog.Error(se.msg, "error", se.err)
		return
	}
	slog.Error("startup failed", "error", err)
}

func run(cfg config) error {

	var lc lifecycle

	// initalize glfw
	if err := glfw.Init(); err != nil {
		return lc.abort(msgGLFWInit, err)
	}
	defer glfw.Terminate()

	// use OpenGL v3.3 core
	glfw.WindowHint(glfw.Resizable, glfwBool(cfg.Resizable))
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)

	// create window handle
	window, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return lc.abort(msgCreateWindow, err)
	}
	defer window.Destroy()
	lc.advance(stageWindowCreated)

	window.MakeContextCurrent()

	// initialize OpenGL
	if err := gl.Init(); err != nil {
		return lc.abort(msgGLInit, err)
	}
	glfw.SwapInterval(cfg.SwapInterval)
	slog.Info("OpenGL ready", "version", gl.GoStr(gl.GetString(gl.VERSION)))
	lc.advance(stageContextReady)

	s := newScene(cfg)
	defer s.delete()
	lc.advance(stageResourcesLoaded)

	// the framebuffer can differ from the window size on HiDPI screens
	fbWidth, fbHeight := window.GetFramebufferSize()
	gl.Viewport(0, 0, int32(fbWidth), int32(fbHeight))
	s.resize(fbWidth, fbHeight)
	window.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		s.resize(width, height)
	})

	lc.advance(stageRunning)

	fps := newFPSCounter(cfg.Title)

	// game loop
	for !window.ShouldClose() {

		if window.GetKey(glfw.KeyEscape) == glfw.Press {
			window.SetShouldClose(true)
		}

		now := glfw.GetTime()

		// draw into buffer
		s.draw(now)

		// render buffer to screen
		window.SwapBuffers()

		if title, ok := fps.frame(now); ok && cfg.ShowFPS {
			window.SetTitle(title)
		}

		// glfw events?
		glfw.PollEvents()

	}

	lc.advance(stageShuttingDown)
	slog.Info("shutting down", "scene", s)
	s.delete()
	lc.advance(stageTerminated)

	return nil

}

func glfwBool(b bool) int {
	if b {
		return glfw.True
	}
	return glfw.False
}

// fpsCounter counts frames and produces a new title once per second.
type fpsCounter struct {
	title  string
	frames int
	last   float64
}

func newFPSCounter(title string) *fpsCounter {
	return &fpsCounter{title: title, last: -1}
}

func (c *fpsCounter) frame(now float64) (string, bool) {
	if c.last < 0 {
		c.last = now
	}
	c.frames++
	elapsed := now - c.last
	if elapsed < 1 {
		return "", false
	}
	title := fmt.Sprintf("%s - %.0f FPS", c.title, float64(c.frames)/elapsed)
	c.frames = 0
	c.last = now
	return title, true
}
