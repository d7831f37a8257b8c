package update

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/voltember/stormbolt/internal/config"
	"github.com/voltember/stormbolt/internal/models"
)

func newTestApp() *models.App {
	app := models.NewApp(config.DefaultSettings())
	app.Rng = rand.New(rand.NewPCG(5, 29))
	return app
}

func TestRegenerateSegmentCountAndStride(t *testing.T) {
	app := newTestApp()
	app.Settings.MaxDepth = 4
	New(app).Regenerate()

	anchors := len(app.Anchors)
	if want := (anchors - 1) * 16; len(app.MainSegments) != want {
		t.Errorf("Expected %d main segments, got %d", want, len(app.MainSegments))
	}
	if len(app.MainVertices)%3 != 0 {
		t.Errorf("Main buffer length %d is not a multiple of 3", len(app.MainVertices))
	}
	if len(app.BranchVertices)%6 != 0 {
		t.Errorf("Branch buffer length %d is not a multiple of 6", len(app.BranchVertices))
	}
}

func TestRegenerateZeroBranchChance(t *testing.T) {
	app := newTestApp()
	app.Settings.BranchChance = 0
	app.Settings.LSystemIterations = 4

	for trial := 0; trial < 10; trial++ {
		New(app).Regenerate()
		if len(app.BranchVertices) != 0 {
			t.Fatalf("Expected no branch vertices with zero branch chance, got %d", len(app.BranchVertices))
		}
	}
}

func TestRegenerateFullBranchChance(t *testing.T) {
	app := newTestApp()
	app.Settings.BranchChance = 1
	New(app).Regenerate()

	if len(app.BranchVertices) == 0 {
		t.Error("Expected branch vertices with branch chance 1")
	}
}

func TestRegenerateReplacesBuffers(t *testing.T) {
	app := newTestApp()
	updater := New(app)
	updater.Regenerate()
	first := len(app.MainVertices)

	app.Settings.MaxDepth = 2
	updater.Regenerate()
	if want := (len(app.Anchors)-1)*4*3 + 3; len(app.MainVertices) != want {
		t.Errorf("Expected buffer fully rebuilt to %d floats, got %d (was %d)", want, len(app.MainVertices), first)
	}
}

func TestParticleLifecycle(t *testing.T) {
	app := newTestApp()
	app.Settings.Color = [3]float32{1, 0.5, 0.25}
	app.Particles = []models.Particle{{
		Pos:     mgl32.Vec3{0, 0, 0},
		Vel:     mgl32.Vec3{1, 0, 0},
		Color:   mgl32.Vec3{1, 0.5, 0.25},
		Size:    4,
		Life:    1,
		MaxLife: 1,
	}}

	updater := New(app)
	updater.UpdateParticles(0.25)

	p := app.Particles[0]
	if math.Abs(float64(p.Life)-0.75) > 1e-6 {
		t.Errorf("Expected life 0.75, got %g", p.Life)
	}
	if math.Abs(float64(p.Pos.X())-0.25) > 1e-6 {
		t.Errorf("Expected position x 0.25, got %g", p.Pos.X())
	}

	// Color must scale with the life ratio on every channel.
	for axis, want := range [...]float32{0.75, 0.375, 0.1875} {
		if math.Abs(float64(p.Color[axis]-want)) > 1e-5 {
			t.Errorf("Expected color[%d] %g, got %g", axis, want, p.Color[axis])
		}
	}

	// Size shrinks linearly with life.
	if math.Abs(float64(p.Size)-3) > 1e-5 {
		t.Errorf("Expected size 3, got %g", p.Size)
	}

	updater.UpdateParticles(0.5)
	if life := app.Particles[0].Life; math.Abs(float64(life)-0.25) > 1e-6 {
		t.Errorf("Expected life 0.25, got %g", life)
	}

	// Exactly reaching zero life removes the particle.
	updater.UpdateParticles(0.25)
	if len(app.Particles) != 0 {
		t.Errorf("Expected particle removed at end of life, got %d left", len(app.Particles))
	}
}

func TestParticleSwapRemoval(t *testing.T) {
	app := newTestApp()
	app.Particles = []models.Particle{
		{Life: 0.1, MaxLife: 1},
		{Life: 1.0, MaxLife: 1},
		{Life: 0.1, MaxLife: 1},
		{Life: 1.0, MaxLife: 1},
	}

	New(app).UpdateParticles(0.2)
	if len(app.Particles) != 2 {
		t.Fatalf("Expected 2 surviving particles, got %d", len(app.Particles))
	}
	for _, p := range app.Particles {
		if p.Life <= 0 {
			t.Errorf("Expired particle survived: %+v", p)
		}
	}
}

func TestEmissionAccumulator(t *testing.T) {
	app := newTestApp()
	app.Settings.EmissionInterval = 0.05
	app.MainVertices = make([]float32, 300*3)

	updater := New(app)

	updater.TickEmission(0.02)
	updater.TickEmission(0.02)
	if len(app.Particles) != 0 {
		t.Fatalf("Expected no emission below the interval, got %d particles", len(app.Particles))
	}
	if math.Abs(float64(app.EmitAccumulator)-0.04) > 1e-6 {
		t.Fatalf("Expected accumulator 0.04, got %g", app.EmitAccumulator)
	}

	// Reaching the interval exactly fires one pass and resets.
	updater.TickEmission(0.01)
	if len(app.Particles) == 0 {
		t.Error("Expected emission once the accumulator reached the interval")
	}
	if app.EmitAccumulator != 0 {
		t.Errorf("Expected accumulator reset to 0, got %g", app.EmitAccumulator)
	}

	count := len(app.Particles)
	updater.TickEmission(0.01)
	if len(app.Particles) != count {
		t.Errorf("Expected no second emission right after reset")
	}
}

func TestRegenerateBranchesStartNearSegments(t *testing.T) {
	app := newTestApp()
	app.Settings.BranchChance = 1
	app.Settings.LSystemIterations = 0
	app.Settings.MaxDepth = 3
	New(app).Regenerate()

	// With the axiom left unexpanded every branch is a single step from a
	// segment midpoint.
	if len(app.BranchVertices)%6 != 0 {
		t.Fatalf("Branch buffer length %d is not a multiple of 6", len(app.BranchVertices))
	}
	midpoints := make([][3]float32, 0, len(app.MainSegments))
	for _, s := range app.MainSegments {
		m := s.Start.Add(s.End).Mul(0.5)
		midpoints = append(midpoints, [3]float32{m.X(), m.Y(), m.Z()})
	}

	for i := 0; i < len(app.BranchVertices); i += 6 {
		start := [3]float32{app.BranchVertices[i], app.BranchVertices[i+1], app.BranchVertices[i+2]}
		found := false
		for _, m := range midpoints {
			if m == start {
				found = true
				break
			}
		}
		if !found {
			t.Fatalf("Branch start %v is not a segment midpoint", start)
		}
	}
}
