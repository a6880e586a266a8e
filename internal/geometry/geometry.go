// Package geometry maps score vectors to radial-plot coordinates.
// The four dimensions sit on fixed axes 90° apart starting at 45°,
// drawn north-up and clockwise. The quadrant layout and the composite
// marker are part of what the narrative text refers to, so the angles
// and the Cartesian-midpoint construction must not change.
package geometry

import (
	"math"

	"github.com/everinsight/discprofile/internal/model"
)

const (
	// MaxScore is the highest score a dimension can reach.
	MaxScore = 25
	// RMin is the radius plotted for a score of zero.
	RMin = 0.10
	// RMax is the radius plotted for the maximum score.
	RMax = 0.95
	// LabelRadius places the dimension letters just outside the
	// outer guide circle.
	LabelRadius = 1.03
)

// GuideRadii are the radii of the three guide circles, inner to outer.
var GuideRadii = [3]float64{0.30, 0.42, 0.90}

// Angles fixes the axis angle of each dimension in degrees.
var Angles = map[model.Dimension]float64{
	model.DimD: 45,
	model.DimI: 135,
	model.DimS: 225,
	model.DimC: 315,
}

// Colors are the quadrant colors of the four dimensions.
var Colors = map[model.Dimension]string{
	model.DimD: "#E41E26",
	model.DimI: "#FFC107",
	model.DimS: "#2ECC71",
	model.DimC: "#2E86DE",
}

// MarkerColor is the composite marker dot color.
const MarkerColor = "#D32F2F"

// Point is a 2D Cartesian coordinate on the unit-ish plot.
type Point struct {
	X, Y float64
}

// RadialPosition linearly maps a score to a radius in [RMin, RMax].
// Scores are whole tallies but the mapping itself is continuous.
// Input is clamped to [0, MaxScore] so an out-of-range score still
// yields a drawable radius.
func RadialPosition(score float64) float64 {
	if score < 0 {
		score = 0
	}
	if score > MaxScore {
		score = MaxScore
	}
	return RMin + (RMax-RMin)*score/MaxScore
}

// PolarToXY converts an angle in degrees and a radius to Cartesian.
func PolarToXY(angleDeg, r float64) Point {
	a := angleDeg * math.Pi / 180
	return Point{X: r * math.Cos(a), Y: r * math.Sin(a)}
}

// XYToPolar converts a Cartesian point back to (angle in [0,360), radius).
func XYToPolar(p Point) (angleDeg, r float64) {
	r = math.Hypot(p.X, p.Y)
	angleDeg = math.Mod(math.Atan2(p.Y, p.X)*180/math.Pi+360, 360)
	return angleDeg, r
}

// AxisPoint returns the plotted point for a dimension's score on its
// fixed axis.
func AxisPoint(d model.Dimension, score int) Point {
	return PolarToXY(Angles[d], RadialPosition(float64(score)))
}

// AxisPoints returns the plotted point of every dimension.
func AxisPoints(v model.ScoreVector) map[model.Dimension]Point {
	pts := make(map[model.Dimension]Point, len(model.Dimensions))
	for _, d := range model.Dimensions {
		pts[d] = AxisPoint(d, v.Get(d))
	}
	return pts
}

// CompositeMarker places the "between your two dominant energies"
// marker: the Cartesian midpoint of the two top-ranked axis points,
// converted back to polar form. The midpoint is genuinely the average
// of the two points, which is not the angular bisector unless the two
// radii are equal, so this must not be simplified to angle averaging.
func CompositeMarker(top2 [2]model.Dimension, pts map[model.Dimension]Point) (angleDeg, r float64) {
	p1 := pts[top2[0]]
	p2 := pts[top2[1]]
	mid := Point{X: (p1.X + p2.X) / 2, Y: (p1.Y + p2.Y) / 2}
	return XYToPolar(mid)
}

// Sector returns the start and end angle (degrees) of a dimension's
// shaded quadrant wedge: 90° centered on the dimension's axis.
func Sector(d model.Dimension) (startDeg, endDeg float64) {
	a := Angles[d]
	return a - 45, a + 45
}
