package draw

import (
	"log"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/voltember/stormbolt/internal/models"
	"github.com/voltember/stormbolt/pkg/window"
)

type App struct {
	app *models.App
}

func New(app *models.App) *App {
	return &App{app: app}
}

func (a *App) Draw(w *window.Window) {
	width, height := w.GetSize()
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	projection := mgl32.Perspective(mgl32.DegToRad(45), float32(width)/float32(height), 0.1, 100)
	view := mgl32.LookAtV(a.app.CameraPos, a.app.CameraPos.Add(a.app.CameraFront), a.app.CameraUp)
	model := mgl32.Ident4()

	a.drawBolt(model, view, projection)
	a.drawParticles(view, projection)
}

func (a *App) drawBolt(model, view, projection mgl32.Mat4) {
	main := a.app.MainVertices
	branches := a.app.BranchVertices

	// A stride mismatch means a generator bug, not bad user input.
	if len(main)%3 != 0 {
		log.Fatalf("main bolt buffer length %d is not a multiple of 3", len(main))
	}
	if len(branches)%6 != 0 {
		log.Fatalf("branch buffer length %d is not a multiple of 6", len(branches))
	}
	if len(main) == 0 && len(branches) == 0 {
		return
	}

	gl.UseProgram(a.app.LineProgram)
	setMat4(a.app.LineProgram, "model", model)
	setMat4(a.app.LineProgram, "view", view)
	setMat4(a.app.LineProgram, "projection", projection)

	color := a.app.Settings.Color
	colorLoc := gl.GetUniformLocation(a.app.LineProgram, gl.Str("boltColor\x00"))
	gl.Uniform3f(colorLoc, color[0], color[1], color[2])

	if len(main) > 0 {
		gl.BindBuffer(gl.ARRAY_BUFFER, a.app.BoltVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(main)*4, gl.Ptr(main), gl.DYNAMIC_DRAW)
		gl.BindVertexArray(a.app.BoltVAO)
		gl.DrawArrays(gl.LINE_STRIP, 0, int32(len(main)/3))
		gl.BindVertexArray(0)
	}

	if len(branches) > 0 {
		gl.BindBuffer(gl.ARRAY_BUFFER, a.app.BranchVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(branches)*4, gl.Ptr(branches), gl.DYNAMIC_DRAW)
		gl.BindVertexArray(a.app.BranchVAO)
		gl.DrawArrays(gl.LINES, 0, int32(len(branches)/3))
		gl.BindVertexArray(0)
	}
}

func (a *App) drawParticles(view, projection mgl32.Mat4) {
	if len(a.app.Particles) == 0 {
		return
	}

	vertices := make([]float32, 0, len(a.app.Particles)*7)
	for _, p := range a.app.Particles {
		vertices = append(vertices,
			p.Pos.X(), p.Pos.Y(), p.Pos.Z(),
			p.Color.X(), p.Color.Y(), p.Color.Z(),
			p.Size,
		)
	}

	gl.BindBuffer(gl.ARRAY_BUFFER, a.app.ParticleVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, gl.Ptr(vertices), gl.DYNAMIC_DRAW)

	gl.UseProgram(a.app.ParticleProgram)
	setMat4(a.app.ParticleProgram, "view", view)
	setMat4(a.app.ParticleProgram, "projection", projection)

	gl.BindVertexArray(a.app.ParticleVAO)
	gl.DrawArrays(gl.POINTS, 0, int32(len(a.app.Particles)))
	gl.BindVertexArray(0)
}

func setMat4(program uint32, name string, m mgl32.Mat4) {
	loc := gl.GetUniformLocation(program, gl.Str(name+"\x00"))
	gl.UniformMatrix4fv(loc, 1, false, &m[0])
}
