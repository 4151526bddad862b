// Package shader compiles and links GLSL programs.
//
// A GL 3.3 core context must be current on the calling goroutine's thread.
package shader

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// MaxInfoLog caps how much of the driver's info log is kept in a CompileError.
const MaxInfoLog = 1024

// Stage identifies which step of building a program failed.
type Stage int

const (
	Vertex Stage = iota
	Fragment
	Program
)

func (s Stage) String() string {
	switch s {
	case Vertex:
		return "VERTEX"
	case Fragment:
		return "FRAGMENT"
	case Program:
		return "PROGRAM"
	}
	return fmt.Sprintf("Stage(%d)", int(s))
}

func (s Stage) glType() uint32 {
	if s == Fragment {
		return gl.FRAGMENT_SHADER
	}
	return gl.VERTEX_SHADER
}

// CompileError is returned when a shader stage fails to compile or the
// program fails to link. Log holds the driver's info log.
type CompileError struct {
	Stage Stage
	Log   string
}

func newCompileError(stage Stage, log string) *CompileError {
	if i := strings.IndexByte(log, 0); i >= 0 {
		log = log[:i]
	}
	if len(log) > MaxInfoLog {
		log = log[:MaxInfoLog]
	}
	return &CompileError{Stage: stage, Log: strings.TrimRight(log, "\n")}
}

func (e *CompileError) Error() string {
	if e.Stage == Program {
		return "ERROR::SHADER::PROGRAM::LINKING_FAILED\n" + e.Log
	}
	return fmt.Sprintf("ERROR::SHADER::%s::COMPILATION_FAILED\n%s", e.Stage, e.Log)
}

// NewProgram compiles vertexSource and fragmentSource and links them.
//
// On failure nothing is left allocated on the GPU, the returned handle is 0
// and the error is a *CompileError naming the failing stage.
func NewProgram(vertexSource, fragmentSource string) (uint32, error) {

	vertexShader, err := compile(vertexSource, Vertex)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compile(fragmentSource, Fragment)
	if err != nil {
		return 0, err
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()

	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {

		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))

		gl.DeleteProgram(program)
		return 0, newCompileError(Program, log)

	}

	return program, nil

}

func compile(source string, stage Stage) (uint32, error) {

	shader := gl.CreateShader(stage.glType())

	csources, free := gl.Strs(terminate(source))
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {

		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)

		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))

		gl.DeleteShader(shader)
		return 0, newCompileError(stage, log)

	}

	return shader, nil

}

// Uniform returns the location of the named uniform in program, or -1.
func Uniform(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(terminate(name)))
}

// terminate appends the NUL byte the GL entry points expect.
func terminate(s string) string {
	if strings.HasSuffix(s, "\x00") {
		return s
	}
	return s + "\x00"
}
