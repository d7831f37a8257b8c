package shaders

import (
	"fmt"
	"strings"

	"github.com/go-gl/gl/v4.1-core/gl"
)

func CompileShaderFromSource(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := make([]byte, logLength)
		gl.GetShaderInfoLog(shader, logLength, nil, &logMsg[0])
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %s", strings.TrimSpace(string(logMsg)))
	}

	return shader, nil
}

// NewProgram compiles both stages and links them into a program. The
// shader objects are deleted once the program holds them.
func NewProgram(vertexSource, fragmentSource string) (uint32, error) {
	vertShader, err := CompileShaderFromSource(vertexSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fragShader, err := CompileShaderFromSource(fragmentSource, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vertShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertShader)
	gl.AttachShader(program, fragShader)
	gl.LinkProgram(program)

	gl.DeleteShader(vertShader)
	gl.DeleteShader(fragShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logMsg := make([]byte, logLength)
		gl.GetProgramInfoLog(program, logLength, nil, &logMsg[0])
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %s", strings.TrimSpace(string(logMsg)))
	}

	return program, nil
}
