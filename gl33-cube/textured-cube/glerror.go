package main

import (
	"log/slog"

	"github.com/go-gl/gl/v3.3-core/gl"
)

var glErrorNames = map[uint32]string{
	0x500: `GL_INVALID_ENUM`,
	0x501: `GL_INVALID_VALUE`,
	0x502: `GL_INVALID_OPERATION`,
	0x503: `GL_STACK_OVERFLOW`,
	0x504: `GL_STACK_UNDERFLOW`,
	0x505: `GL_OUT_OF_MEMORY`,
	0x506: `GL_INVALID_FRAMEBUFFER_OPERATION`,
	0x507: `GL_CONTEXT_LOST`,
}

func glErrorName(code uint32) string {
	if name, ok := glErrorNames[code]; ok {
		return name
	}
	return "GL_ERROR_UNKNOWN"
}

// maxGLErrors bounds the drain loop; a lost context can report errors forever.
const maxGLErrors = 16

// checkGLError drains and logs accumulated OpenGL errors.
func checkGLError() {
	for i := 0; i < maxGLErrors; i++ {
		code := gl.GetError()
		if code == gl.NO_ERROR {
			return
		}
		slog.Warn("GL error", "error", glErrorName(code), "code", code)
	}
}
