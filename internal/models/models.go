package models

import (
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/voltember/stormbolt/internal/bolt"
	"github.com/voltember/stormbolt/internal/config"
)

type Particle struct {
	Pos     mgl32.Vec3
	Vel     mgl32.Vec3
	Color   mgl32.Vec3
	Size    float32
	Life    float32
	MaxLife float32
}

// App is the single-threaded frame-loop state: configuration, the current
// frame's geometry buffers, the particle set, camera and GL handles. All of
// it is read and written only between frame boundaries.
type App struct {
	Settings *config.Settings
	Rng      *rand.Rand

	Anchors        []mgl32.Vec3
	MainSegments   []bolt.Segment
	MainVertices   []float32 // line-strip triples across the whole anchor chain
	BranchVertices []float32 // explicit segment pairs, six floats each

	Particles       []Particle
	EmitAccumulator float32

	AutoRegenerate bool
	WantRegenerate bool

	CameraPos   mgl32.Vec3
	CameraFront mgl32.Vec3
	CameraUp    mgl32.Vec3
	Yaw         float32
	Pitch       float32
	LastCursorX float32
	LastCursorY float32
	IsDragging  bool

	BoltVAO         uint32
	BoltVBO         uint32
	BranchVAO       uint32
	BranchVBO       uint32
	ParticleVAO     uint32
	ParticleVBO     uint32
	LineProgram     uint32
	ParticleProgram uint32
}

func NewApp(settings *config.Settings) *App {
	anchors := make([]mgl32.Vec3, len(settings.Anchors))
	for i, a := range settings.Anchors {
		anchors[i] = mgl32.Vec3{a[0], a[1], a[2]}
	}

	return &App{
		Settings:    settings,
		Rng:         rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())),
		Anchors:     anchors,
		CameraPos:   mgl32.Vec3{0, 0, 3},
		CameraFront: mgl32.Vec3{0, 0, -1},
		CameraUp:    mgl32.Vec3{0, 1, 0},
		Yaw:         -90,
	}
}
