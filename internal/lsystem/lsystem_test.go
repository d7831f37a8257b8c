package lsystem

import (
	"math"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func newRng() *rand.Rand {
	return rand.New(rand.NewPCG(3, 17))
}

func defaultRules() Rules {
	return Rules{ProbFF: 0.5, ProbPlus: 0.25, ProbMinus: 0.25}
}

func TestExpandIdentity(t *testing.T) {
	tests := []struct {
		name       string
		axiom      string
		iterations int
	}{
		{"Zero iterations", "F", 0},
		{"Zero iterations with brackets", "F[+F]", 0},
		{"Negative iterations", "F", -2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Expand(newRng(), tt.axiom, tt.iterations, defaultRules()); got != tt.axiom {
				t.Errorf("Expected %q unchanged, got %q", tt.axiom, got)
			}
		})
	}
}

func TestExpandAlphabetClosure(t *testing.T) {
	rules := []Rules{
		defaultRules(),
		{ProbFF: 1, ProbPlus: 0, ProbMinus: 0},
		{ProbFF: 0, ProbPlus: 1, ProbMinus: 0},
		{ProbFF: 0, ProbPlus: 0, ProbMinus: 1},
	}

	rng := newRng()
	for _, r := range rules {
		out := Expand(rng, "F", 4, r)
		for _, symbol := range out {
			if !strings.ContainsRune("F+-[]", symbol) {
				t.Fatalf("Unexpected symbol %q in %q", symbol, out)
			}
		}
	}
}

func TestExpandLengthNonDecreasing(t *testing.T) {
	rng := newRng()
	current := "F"
	for pass := 0; pass < 5; pass++ {
		next := Expand(rng, current, 1, defaultRules())
		if len(next) < len(current) {
			t.Fatalf("Pass %d shrank the string: %d -> %d", pass, len(current), len(next))
		}
		current = next
	}
}

func TestExpandBalancedBrackets(t *testing.T) {
	rng := newRng()
	for trial := 0; trial < 10; trial++ {
		out := Expand(rng, "F", 5, defaultRules())
		depth := 0
		for _, symbol := range out {
			switch symbol {
			case '[':
				depth++
			case ']':
				depth--
			}
			if depth < 0 {
				t.Fatalf("Unbalanced ']' in %q", out)
			}
		}
		if depth != 0 {
			t.Fatalf("Expected balanced brackets, %d left open in %q", depth, out)
		}
	}
}

func TestExpandIterationCap(t *testing.T) {
	// "F[+F]" is the longest production at 5 symbols per 'F'.
	limit := int(math.Pow(5, MaxIterations))
	out := Expand(newRng(), "F", 50, Rules{ProbFF: 0, ProbPlus: 1, ProbMinus: 0})
	if len(out) > limit {
		t.Errorf("Expected at most %d symbols after capped expansion, got %d", limit, len(out))
	}
}

func TestInterpretAdvance(t *testing.T) {
	origin := mgl32.Vec3{1, 2, 0}
	dir := mgl32.Vec3{0, 1, 0}
	step := float32(0.25)

	segments := Interpret(newRng(), "FF", origin, dir, step, 0)
	if len(segments) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(segments))
	}
	if segments[0].Start != origin {
		t.Errorf("Expected first segment at origin %v, got %v", origin, segments[0].Start)
	}
	want := origin.Add(dir.Mul(2 * step))
	if got := segments[1].End; got.Sub(want).Len() > 1e-6 {
		t.Errorf("Expected final position %v, got %v", want, got)
	}
}

func TestInterpretPushPopRoundTrip(t *testing.T) {
	origin := mgl32.Vec3{0, 0, 0}
	dir := mgl32.Vec3{0, 1, 0}
	step := float32(0.5)

	// The bracket group rotates and draws, but the trailing F must continue
	// from the pre-group state as if the group never happened.
	segments := Interpret(newRng(), "F[+F+F]F", origin, dir, step, 45)
	if len(segments) != 4 {
		t.Fatalf("Expected 4 segments, got %d", len(segments))
	}

	if segments[3].Start != segments[0].End {
		t.Errorf("Expected post-group segment to start at %v, got %v", segments[0].End, segments[3].Start)
	}
	want := segments[0].End.Add(dir.Mul(step))
	if got := segments[3].End; got.Sub(want).Len() > 1e-6 {
		t.Errorf("Expected post-group heading restored, end %v, got %v", want, got)
	}
}

func TestInterpretEmptyPopIgnored(t *testing.T) {
	segments := Interpret(newRng(), "]]F]", mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, 0.5, 30)
	if len(segments) != 1 {
		t.Fatalf("Expected 1 segment, got %d", len(segments))
	}
}

func TestInterpretZeroStepClamped(t *testing.T) {
	segments := Interpret(newRng(), "F", mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, 0, 30)
	if len(segments) != 1 {
		t.Fatalf("Expected 1 segment, got %d", len(segments))
	}
	length := segments[0].End.Sub(segments[0].Start).Len()
	if length <= 0 {
		t.Errorf("Expected positive segment length after clamping, got %f", length)
	}
	for _, v := range [...]float32{segments[0].End.X(), segments[0].End.Y(), segments[0].End.Z()} {
		if math.IsNaN(float64(v)) {
			t.Fatalf("NaN coordinate in %v", segments[0].End)
		}
	}
}

func TestInterpretEmptyString(t *testing.T) {
	if segments := Interpret(newRng(), "", mgl32.Vec3{}, mgl32.Vec3{0, 1, 0}, 0.5, 30); len(segments) != 0 {
		t.Errorf("Expected no segments, got %d", len(segments))
	}
}

func TestInterpretStaysInRotationPlane(t *testing.T) {
	// Rotation about the fixed z axis must keep a z=0 heading at z=0.
	rng := newRng()
	segments := Interpret(rng, "F+F-F+F[+F]F", mgl32.Vec3{0, 0, 0.5}, mgl32.Vec3{0, 1, 0}, 0.3, 60)
	for _, s := range segments {
		if math.Abs(float64(s.End.Z()-0.5)) > 1e-5 {
			t.Fatalf("Segment end %v left the rotation plane", s.End)
		}
	}
}

func TestInterpretAngleWithinVariance(t *testing.T) {
	dir := mgl32.Vec3{0, 1, 0}
	rng := newRng()
	for trial := 0; trial < 50; trial++ {
		segments := Interpret(rng, "+F", mgl32.Vec3{}, dir, 1, 30)
		if len(segments) != 1 {
			t.Fatalf("Expected 1 segment, got %d", len(segments))
		}
		rotated := segments[0].End.Sub(segments[0].Start).Normalize()
		cos := rotated.Dot(dir)
		if cos < float32(math.Cos(float64(mgl32.DegToRad(30))))-1e-5 {
			t.Fatalf("Rotation exceeded variance: cos=%f", cos)
		}
	}
}
