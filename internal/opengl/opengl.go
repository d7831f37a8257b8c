package opengl

import (
	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/voltember/stormbolt/internal/models"
	"github.com/voltember/stormbolt/internal/shaders"
)

type App struct {
	app *models.App
}

func New(app *models.App) *App {
	return &App{app: app}
}

// InitGL compiles both programs and sets up one VAO per buffer: the main
// bolt strip and the branch pairs carry bare positions, particles carry
// position, color and point size.
func (a *App) InitGL() error {
	if err := gl.Init(); err != nil {
		return err
	}

	lineProgram, err := shaders.NewProgram(shaders.BoltVertex, shaders.BoltFragment)
	if err != nil {
		return err
	}
	a.app.LineProgram = lineProgram

	particleProgram, err := shaders.NewProgram(shaders.ParticleVertex, shaders.ParticleFragment)
	if err != nil {
		return err
	}
	a.app.ParticleProgram = particleProgram

	gl.GenVertexArrays(1, &a.app.BoltVAO)
	gl.GenBuffers(1, &a.app.BoltVBO)

	gl.BindVertexArray(a.app.BoltVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, a.app.BoltVBO)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	gl.GenVertexArrays(1, &a.app.BranchVAO)
	gl.GenBuffers(1, &a.app.BranchVBO)

	gl.BindVertexArray(a.app.BranchVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, a.app.BranchVBO)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.BindVertexArray(0)

	gl.GenVertexArrays(1, &a.app.ParticleVAO)
	gl.GenBuffers(1, &a.app.ParticleVBO)

	gl.BindVertexArray(a.app.ParticleVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, a.app.ParticleVBO)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 7*4, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointerWithOffset(1, 3, gl.FLOAT, false, 7*4, 3*4)
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointerWithOffset(2, 1, gl.FLOAT, false, 7*4, 6*4)
	gl.EnableVertexAttribArray(2)
	gl.BindVertexArray(0)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.BLEND)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE)
	gl.Enable(gl.PROGRAM_POINT_SIZE)
	gl.LineWidth(2)

	return nil
}
