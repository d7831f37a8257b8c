package bolt

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl32"
)

const minDisplacement = 1e-6

// Segment is one straight piece of the bolt between two points.
type Segment struct {
	Start mgl32.Vec3
	End   mgl32.Vec3
}

// Generate subdivides the line from start to end by recursive midpoint
// displacement. Each level jitters the midpoint on the two axes orthogonal
// to the dominant axis of the bolt, and the jitter amplitude halves per
// level, so the result has exactly 2^depth segments with bounded excursion.
func Generate(rng *rand.Rand, start, end mgl32.Vec3, depth int, displacement float32) []Segment {
	if depth < 0 {
		depth = 0
	}
	if displacement < minDisplacement {
		displacement = minDisplacement
	}
	axisA, axisB := jitterAxes(end.Sub(start))
	segments := make([]Segment, 0, 1<<depth)
	return subdivide(rng, segments, start, end, depth, displacement, axisA, axisB)
}

func subdivide(
	rng *rand.Rand,
	segments []Segment,
	start, end mgl32.Vec3,
	depth int,
	displacement float32,
	axisA, axisB int,
) []Segment {
	if depth == 0 {
		return append(segments, Segment{Start: start, End: end})
	}

	mid := start.Add(end).Mul(0.5)
	mid[axisA] += (rng.Float32() - 0.5) * displacement
	mid[axisB] += (rng.Float32() - 0.5) * displacement

	segments = subdivide(rng, segments, start, mid, depth-1, displacement*0.5, axisA, axisB)
	return subdivide(rng, segments, mid, end, depth-1, displacement*0.5, axisA, axisB)
}

// jitterAxes picks the two coordinate axes orthogonal to the dominant axis
// of dir, so displacement never shortens the bolt along its main direction.
func jitterAxes(dir mgl32.Vec3) (int, int) {
	dominant := 0
	strongest := float32(math.Abs(float64(dir[0])))
	for axis := 1; axis < 3; axis++ {
		if a := float32(math.Abs(float64(dir[axis]))); a > strongest {
			dominant = axis
			strongest = a
		}
	}
	return (dominant + 1) % 3, (dominant + 2) % 3
}

// GenerateChain runs Generate independently for every consecutive anchor
// pair and concatenates the results. Neighbouring runs share the literal
// anchor coordinate and nothing else.
func GenerateChain(rng *rand.Rand, anchors []mgl32.Vec3, depth int, displacement float32) []Segment {
	if len(anchors) < 2 {
		return nil
	}
	var segments []Segment
	for i := 1; i < len(anchors); i++ {
		segments = append(segments, Generate(rng, anchors[i-1], anchors[i], depth, displacement)...)
	}
	return segments
}

// Strip flattens a connected segment run into line-strip triples: the first
// segment's start followed by every end.
func Strip(segments []Segment) []float32 {
	if len(segments) == 0 {
		return nil
	}
	vertices := make([]float32, 0, (len(segments)+1)*3)
	vertices = append(vertices, segments[0].Start.X(), segments[0].Start.Y(), segments[0].Start.Z())
	for _, s := range segments {
		vertices = append(vertices, s.End.X(), s.End.Y(), s.End.Z())
	}
	return vertices
}

// Flatten writes every segment as an explicit point pair, six floats per
// segment, for GL_LINES style rendering of disconnected pieces.
func Flatten(segments []Segment) []float32 {
	vertices := make([]float32, 0, len(segments)*6)
	for _, s := range segments {
		vertices = append(vertices,
			s.Start.X(), s.Start.Y(), s.Start.Z(),
			s.End.X(), s.End.Y(), s.End.Z(),
		)
	}
	return vertices
}

// MaxOffset bounds how far any generated point can stray from the straight
// line between the anchors. Level k jitters by at most displacement/2^(k+1)
// on each of two axes, and the per-level maxima form a geometric series.
func MaxOffset(depth int, displacement float32) float32 {
	var sum float32
	amplitude := displacement * 0.5
	for level := 0; level < depth; level++ {
		sum += amplitude
		amplitude *= 0.5
	}
	return sum * float32(math.Sqrt2)
}
