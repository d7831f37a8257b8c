package lsystem

import (
	"math/rand/v2"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/voltember/stormbolt/internal/bolt"
)

// MaxIterations caps grammar growth. Every rewrite pass at least doubles
// the number of 'F' symbols, so the cap keeps expansion cheap.
const MaxIterations = 6

const minStepLength = 1e-6

// branchAxis is the fixed rotation axis for '+' and '-'. Branches fan out
// in a single rotational plane.
var branchAxis = mgl32.Vec3{0, 0, 1}

// Rules holds the stochastic production weights for the symbol 'F'. They
// are applied as cumulative thresholds on one uniform draw, so together
// they should cover [0, 1).
type Rules struct {
	ProbFF    float32
	ProbPlus  float32
	ProbMinus float32
}

// Expand rewrites axiom for the given number of passes. Each 'F' becomes
// "FF", "F[+F]" or "F[-F]" depending on the drawn threshold; every other
// symbol passes through unchanged. Brackets are emitted in pairs, so the
// output is always balanced.
func Expand(rng *rand.Rand, axiom string, iterations int, rules Rules) string {
	if iterations < 0 {
		iterations = 0
	}
	if iterations > MaxIterations {
		iterations = MaxIterations
	}

	current := axiom
	for range iterations {
		var next strings.Builder
		next.Grow(len(current) * 2)
		for _, symbol := range current {
			if symbol != 'F' {
				next.WriteRune(symbol)
				continue
			}
			r := rng.Float32()
			switch {
			case r < rules.ProbFF:
				next.WriteString("FF")
			case r < rules.ProbFF+rules.ProbPlus:
				next.WriteString("F[+F]")
			default:
				next.WriteString("F[-F]")
			}
		}
		current = next.String()
	}
	return current
}

type turtle struct {
	pos mgl32.Vec3
	dir mgl32.Vec3
}

// Interpret walks the grammar string with a turtle starting at origin and
// heading along dir. 'F' draws a segment of stepLength, '+' and '-' rotate
// the heading about the branch axis by a random angle within angleVariance
// degrees, '[' saves the turtle state and ']' restores it. A ']' with no
// saved state is ignored.
func Interpret(
	rng *rand.Rand,
	s string,
	origin, dir mgl32.Vec3,
	stepLength, angleVariance float32,
) []bolt.Segment {
	if stepLength < minStepLength {
		stepLength = minStepLength
	}
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}

	t := turtle{pos: origin, dir: dir}
	var stack []turtle
	var segments []bolt.Segment

	for _, symbol := range s {
		switch symbol {
		case 'F':
			next := t.pos.Add(t.dir.Mul(stepLength))
			segments = append(segments, bolt.Segment{Start: t.pos, End: next})
			t.pos = next
		case '+':
			t.dir = rotate(t.dir, rng.Float32()*angleVariance)
		case '-':
			t.dir = rotate(t.dir, -rng.Float32()*angleVariance)
		case '[':
			stack = append(stack, t)
		case ']':
			if len(stack) == 0 {
				continue
			}
			t = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
		}
	}
	return segments
}

func rotate(dir mgl32.Vec3, degrees float32) mgl32.Vec3 {
	return mgl32.QuatRotate(mgl32.DegToRad(degrees), branchAxis).Rotate(dir)
}
