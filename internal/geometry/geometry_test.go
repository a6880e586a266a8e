package geometry

import (
	"math"
	"testing"

	"github.com/everinsight/discprofile/internal/model"
)

const eps = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestRadialPosition(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  float64
	}{
		{"zero score", 0, RMin},
		{"max score", MaxScore, RMax},
		{"midpoint", 12.5, 0.525},
		{"whole score", 12, RMin + (RMax-RMin)*12.0/25.0},
		{"clamped below", -3, RMin},
		{"clamped above", 99, RMax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RadialPosition(tt.score)
			if !almostEqual(got, tt.want) {
				t.Errorf("RadialPosition(%v) = %v, want %v", tt.score, got, tt.want)
			}
		})
	}
}

func TestRadialPositionMonotonic(t *testing.T) {
	prev := RadialPosition(0)
	for s := 1; s <= MaxScore; s++ {
		r := RadialPosition(float64(s))
		if r <= prev {
			t.Fatalf("radius not increasing at score %d: %v <= %v", s, r, prev)
		}
		prev = r
	}
}

func TestPolarRoundTrip(t *testing.T) {
	for _, d := range model.Dimensions {
		angle := Angles[d]
		p := PolarToXY(angle, 0.5)
		gotAngle, gotR := XYToPolar(p)
		if !almostEqual(gotR, 0.5) {
			t.Errorf("%s: radius round trip %v, want 0.5", d, gotR)
		}
		if !almostEqual(gotAngle, angle) {
			t.Errorf("%s: angle round trip %v, want %v", d, gotAngle, angle)
		}
	}
}

func TestXYToPolarRange(t *testing.T) {
	pts := []Point{{1, 0}, {0, 1}, {-1, 0}, {0, -1}, {-0.3, -0.4}}
	for _, p := range pts {
		angle, r := XYToPolar(p)
		if angle < 0 || angle >= 360 {
			t.Errorf("angle %v out of [0,360) for %+v", angle, p)
		}
		if r < 0 {
			t.Errorf("negative radius %v for %+v", r, p)
		}
	}
}

func TestAxisPoints(t *testing.T) {
	v := model.ScoreVector{D: 25, I: 0, S: 10, C: 5}
	pts := AxisPoints(v)
	if len(pts) != 4 {
		t.Fatalf("expected 4 points, got %d", len(pts))
	}
	// Score 25 on the 45° axis: both coordinates are RMax/sqrt(2).
	want := RMax / math.Sqrt2
	if !almostEqual(pts[model.DimD].X, want) || !almostEqual(pts[model.DimD].Y, want) {
		t.Errorf("D point = %+v, want (%v, %v)", pts[model.DimD], want, want)
	}
	// I at 135° has negative X, positive Y.
	if pts[model.DimI].X >= 0 || pts[model.DimI].Y <= 0 {
		t.Errorf("I point in wrong quadrant: %+v", pts[model.DimI])
	}
}

func TestCompositeMarkerEqualScores(t *testing.T) {
	// Equal radii on adjacent axes: the midpoint sits on the bisector.
	v := model.ScoreVector{D: 10, I: 10}
	pts := AxisPoints(v)
	angle, r := CompositeMarker([2]model.Dimension{model.DimD, model.DimI}, pts)
	if !almostEqual(angle, 90) {
		t.Errorf("expected bisector angle 90, got %v", angle)
	}
	// The chord midpoint is strictly inside the circle through the two points.
	axisR := RadialPosition(10)
	if r >= axisR {
		t.Errorf("midpoint radius %v should be below axis radius %v", r, axisR)
	}
	if r <= 0 {
		t.Errorf("midpoint radius must be positive, got %v", r)
	}
}

func TestCompositeMarkerUnequalScores(t *testing.T) {
	// Unequal radii: the midpoint leans toward the longer arm, so the
	// angle is NOT the plain average of the two axis angles.
	v := model.ScoreVector{D: 25, I: 2}
	pts := AxisPoints(v)
	angle, _ := CompositeMarker([2]model.Dimension{model.DimD, model.DimI}, pts)
	if almostEqual(angle, 90) {
		t.Error("midpoint angle must differ from the bisector for unequal radii")
	}
	if angle <= 45 || angle >= 90 {
		t.Errorf("midpoint angle %v should lean toward the dominant 45° axis", angle)
	}
}

func TestCompositeMarkerOrderIndependent(t *testing.T) {
	vectors := []model.ScoreVector{
		{D: 10, I: 7, S: 5, C: 3},
		{D: 25, I: 2},
		{I: 14, C: 11},
		{D: 6, I: 6, S: 6, C: 7},
	}
	pairs := [][2]model.Dimension{
		{model.DimD, model.DimI},
		{model.DimI, model.DimC},
		{model.DimD, model.DimS},
	}
	for _, v := range vectors {
		pts := AxisPoints(v)
		for _, p := range pairs {
			a1, r1 := CompositeMarker(p, pts)
			a2, r2 := CompositeMarker([2]model.Dimension{p[1], p[0]}, pts)
			if !almostEqual(a1, a2) || !almostEqual(r1, r2) {
				t.Errorf("marker for %v depends on pair order: (%v, %v) vs (%v, %v)", p, a1, r1, a2, r2)
			}
		}
	}
}

func TestCompositeMarkerOppositeAxes(t *testing.T) {
	// Opposite axes with equal radii cancel out to the origin.
	v := model.ScoreVector{D: 10, S: 10}
	pts := AxisPoints(v)
	_, r := CompositeMarker([2]model.Dimension{model.DimD, model.DimS}, pts)
	if !almostEqual(r, 0) {
		t.Errorf("expected radius 0 at the origin, got %v", r)
	}
}

func TestSector(t *testing.T) {
	for _, d := range model.Dimensions {
		start, end := Sector(d)
		if !almostEqual(end-start, 90) {
			t.Errorf("%s: sector width %v, want 90", d, end-start)
		}
		if mid := (start + end) / 2; !almostEqual(mid, Angles[d]) {
			t.Errorf("%s: sector center %v, want %v", d, mid, Angles[d])
		}
	}
}

func TestFixedLayout(t *testing.T) {
	wantAngles := map[model.Dimension]float64{
		model.DimD: 45, model.DimI: 135, model.DimS: 225, model.DimC: 315,
	}
	for d, want := range wantAngles {
		if Angles[d] != want {
			t.Errorf("angle for %s = %v, want %v", d, Angles[d], want)
		}
	}
	if GuideRadii != [3]float64{0.30, 0.42, 0.90} {
		t.Errorf("unexpected guide radii %v", GuideRadii)
	}
	for _, d := range model.Dimensions {
		if Colors[d] == "" {
			t.Errorf("missing color for %s", d)
		}
	}
}
