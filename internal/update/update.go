package update

import (
	"math"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/voltember/stormbolt/internal/bolt"
	"github.com/voltember/stormbolt/internal/lsystem"
	"github.com/voltember/stormbolt/internal/models"
	"github.com/voltember/stormbolt/internal/spawn"
	"github.com/voltember/stormbolt/pkg/window"
)

const (
	dragSensitivity = 0.1
	moveSpeed       = 1.2
	maxPitch        = 89
)

type App struct {
	app *models.App
}

func New(app *models.App) *App {
	return &App{app: app}
}

// Regenerate rebuilds the whole bolt from the current settings: the fractal
// main path first, then one branch roll per stored segment, anchored at the
// segment midpoint along its local direction. The buffers are built in full
// before they replace the previous frame's geometry.
func (a *App) Regenerate() {
	settings := a.app.Settings
	rng := a.app.Rng

	segments := bolt.GenerateChain(rng, a.app.Anchors, settings.MaxDepth, settings.Displacement)

	rules := lsystem.Rules{
		ProbFF:    settings.ProbFF,
		ProbPlus:  settings.ProbPlus,
		ProbMinus: settings.ProbMinus,
	}

	var branches []bolt.Segment
	for _, segment := range segments {
		if rng.Float32() >= settings.BranchChance {
			continue
		}
		grammar := lsystem.Expand(rng, "F", settings.LSystemIterations, rules)
		mid := segment.Start.Add(segment.End).Mul(0.5)
		dir := segment.End.Sub(segment.Start)
		branches = append(branches, lsystem.Interpret(
			rng, grammar, mid, dir, settings.SegmentLength, settings.AngleVariance,
		)...)
	}

	a.app.MainSegments = segments
	a.app.MainVertices = bolt.Strip(segments)
	a.app.BranchVertices = bolt.Flatten(branches)
}

// UpdateParticles ages every particle by dt, removes the expired ones by
// swap-delete, integrates positions and fades size and color with the
// remaining life ratio.
func (a *App) UpdateParticles(dt float32) {
	settings := a.app.Settings
	color := mgl32.Vec3{settings.Color[0], settings.Color[1], settings.Color[2]}

	for i := 0; i < len(a.app.Particles); i++ {
		p := &a.app.Particles[i]
		oldLife := p.Life
		p.Life -= dt

		if p.Life <= 0 {
			a.app.Particles[i] = a.app.Particles[len(a.app.Particles)-1]
			a.app.Particles = a.app.Particles[:len(a.app.Particles)-1]
			i--
			continue
		}

		p.Pos = p.Pos.Add(p.Vel.Mul(dt))
		p.Size *= p.Life / oldLife
		p.Color = color.Mul(p.Life / p.MaxLife)
	}
}

// TickEmission accumulates frame time and fires one emission pass whenever
// the accumulator reaches the configured interval. Fixed-rate re-trigger,
// not Poisson sampling.
func (a *App) TickEmission(dt float32) {
	a.app.EmitAccumulator += dt
	if a.app.EmitAccumulator >= a.app.Settings.EmissionInterval {
		spawn.New(a.app).EmitAlongBolt()
		a.app.EmitAccumulator = 0
	}
}

// UpdateCamera applies pointer-drag yaw/pitch while the left button is held
// and key-driven movement every frame.
func (a *App) UpdateCamera(w *window.Window, dt float32) {
	x, y := w.GetCursorPos()
	fx, fy := float32(x), float32(y)

	if w.MouseDown() {
		if !a.app.IsDragging {
			// First frame of a drag only records the cursor, so the camera
			// does not jump.
			a.app.IsDragging = true
		} else {
			a.app.Yaw += (fx - a.app.LastCursorX) * dragSensitivity
			a.app.Pitch += (a.app.LastCursorY - fy) * dragSensitivity
			if a.app.Pitch > maxPitch {
				a.app.Pitch = maxPitch
			}
			if a.app.Pitch < -maxPitch {
				a.app.Pitch = -maxPitch
			}

			yaw := float64(mgl32.DegToRad(a.app.Yaw))
			pitch := float64(mgl32.DegToRad(a.app.Pitch))
			a.app.CameraFront = mgl32.Vec3{
				float32(math.Cos(yaw) * math.Cos(pitch)),
				float32(math.Sin(pitch)),
				float32(math.Sin(yaw) * math.Cos(pitch)),
			}.Normalize()
		}
	} else {
		a.app.IsDragging = false
	}
	a.app.LastCursorX = fx
	a.app.LastCursorY = fy

	step := moveSpeed * dt
	if w.KeyDown(glfw.KeyE) {
		a.app.CameraPos = a.app.CameraPos.Add(a.app.CameraFront.Mul(step))
	}
	if w.KeyDown(glfw.KeyQ) {
		a.app.CameraPos = a.app.CameraPos.Sub(a.app.CameraFront.Mul(step))
	}
	if w.KeyDown(glfw.KeyW) {
		a.app.CameraPos = a.app.CameraPos.Add(a.app.CameraUp.Mul(step))
	}
	if w.KeyDown(glfw.KeyS) {
		a.app.CameraPos = a.app.CameraPos.Sub(a.app.CameraUp.Mul(step))
	}
	right := a.app.CameraFront.Cross(a.app.CameraUp).Normalize()
	if w.KeyDown(glfw.KeyA) {
		a.app.CameraPos = a.app.CameraPos.Sub(right.Mul(step))
	}
	if w.KeyDown(glfw.KeyD) {
		a.app.CameraPos = a.app.CameraPos.Add(right.Mul(step))
	}
}
