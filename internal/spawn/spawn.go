package spawn

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/voltember/stormbolt/internal/models"
)

// spawnChance is the per-vertex probability of emitting a particle when a
// pass over the geometry fires.
const spawnChance = 1.0 / 3.0

type App struct {
	app *models.App
}

func New(app *models.App) *App {
	return &App{app: app}
}

// EmitAlongBolt walks the frame's geometry in position triples and spawns
// sparks at roughly a third of them. Velocities point outward in the bolt
// plane with a small out-of-plane jitter; color starts at the configured
// bolt color scaled by a factor close to one.
func (a *App) EmitAlongBolt() {
	settings := a.app.Settings
	color := mgl32.Vec3{settings.Color[0], settings.Color[1], settings.Color[2]}

	a.emitFrom(a.app.MainVertices, color)
	a.emitFrom(a.app.BranchVertices, color)
}

func (a *App) emitFrom(vertices []float32, color mgl32.Vec3) {
	settings := a.app.Settings
	rng := a.app.Rng
	speedBand := settings.ParticleMaxSpeed - settings.ParticleMinSpeed

	for i := 0; i+2 < len(vertices); i += 3 {
		if rng.Float32() >= spawnChance {
			continue
		}

		angle := rng.Float64() * 2 * math.Pi
		speed := settings.ParticleMinSpeed + rng.Float32()*speedBand
		maxLife := settings.ParticleLifetime * (0.5 + rng.Float32())

		a.app.Particles = append(a.app.Particles, models.Particle{
			Pos: mgl32.Vec3{vertices[i], vertices[i+1], vertices[i+2]},
			Vel: mgl32.Vec3{
				float32(math.Cos(angle)) * speed,
				float32(math.Sin(angle)) * speed,
				(rng.Float32() - 0.5) * 0.1,
			},
			Color:   color.Mul(0.85 + rng.Float32()*0.15),
			Size:    rng.Float32()*4 + 2,
			Life:    maxLife,
			MaxLife: maxLife,
		})
	}
}
