// Package chart renders the DISC radial plot as a standalone PNG:
// four shaded quadrant wedges, guide circles, dashed axes, the score
// polygon in the dominant dimension's color, and the composite marker
// labeled with the respondent's display name.
package chart

import (
	"bytes"
	"fmt"
	"math"

	"github.com/fogleman/gg"

	"github.com/everinsight/discprofile/internal/geometry"
	"github.com/everinsight/discprofile/internal/model"
)

const (
	// Side is the width and height of the rendered image in pixels.
	Side = 840
	// plotRadius is the pixel radius backing the unit radius of the
	// geometry package; 1.03 label positions must still fit.
	plotRadius = Side * 0.44
	// arcSteps controls how finely wedges approximate their arc.
	arcSteps = 120
)

// toScreen maps a plot angle (degrees, north-up, clockwise) and
// radius (unit scale) to pixel coordinates.
func toScreen(angleDeg, r float64) (x, y float64) {
	a := angleDeg * math.Pi / 180
	cx, cy := float64(Side)/2, float64(Side)/2
	return cx + plotRadius*r*math.Sin(a), cy - plotRadius*r*math.Cos(a)
}

// pointToScreen maps a geometry.Point, which lives in the same
// north-up polar frame, to pixel coordinates.
func pointToScreen(p geometry.Point) (x, y float64) {
	angle, r := geometry.XYToPolar(p)
	return toScreen(angle, r)
}

func hexRGB(hex string) (r, g, b float64, err error) {
	var ri, gi, bi int
	if _, err = fmt.Sscanf(hex, "#%02x%02x%02x", &ri, &gi, &bi); err != nil {
		return 0, 0, 0, fmt.Errorf("parse color %q: %w", hex, err)
	}
	return float64(ri) / 255, float64(gi) / 255, float64(bi) / 255, nil
}

func setColor(dc *gg.Context, hex string, alpha float64) error {
	r, g, b, err := hexRGB(hex)
	if err != nil {
		return err
	}
	dc.SetRGBA(r, g, b, alpha)
	return nil
}

func fillWedge(dc *gg.Context, startDeg, endDeg float64) {
	dc.NewSubPath()
	cx, cy := float64(Side)/2, float64(Side)/2
	dc.MoveTo(cx, cy)
	for i := 0; i <= arcSteps; i++ {
		a := startDeg + float64(i)*(endDeg-startDeg)/arcSteps
		x, y := toScreen(a, 1.0)
		dc.LineTo(x, y)
	}
	dc.ClosePath()
	dc.Fill()
}

// Render draws the radial plot for a scored profile and returns the
// encoded PNG bytes.
func Render(v model.ScoreVector, ranking model.Ranking, displayName string) ([]byte, error) {
	dc := gg.NewContext(Side, Side)
	dc.SetRGB(1, 1, 1)
	dc.Clear()

	// Quadrant wedges, 90° each, centered on the dimension axes.
	for _, d := range model.Dimensions {
		if err := setColor(dc, geometry.Colors[d], 0.24); err != nil {
			return nil, err
		}
		start, end := geometry.Sector(d)
		fillWedge(dc, start, end)
	}

	// Guide circles.
	cx, cy := float64(Side)/2, float64(Side)/2
	dc.SetRGB255(0xbd, 0xbd, 0xbd)
	for _, r := range geometry.GuideRadii {
		dc.SetLineWidth(1.5)
		dc.DrawCircle(cx, cy, plotRadius*r)
		dc.Stroke()
	}

	// Dashed axis lines.
	dc.SetRGB255(0xd9, 0xd9, 0xd9)
	dc.SetLineWidth(1.5)
	dc.SetDash(6, 6)
	for _, d := range model.Dimensions {
		x, y := toScreen(geometry.Angles[d], 1.0)
		dc.DrawLine(cx, cy, x, y)
		dc.Stroke()
	}
	dc.SetDash()

	// Score polygon, closed, in the dominant dimension's color.
	pts := geometry.AxisPoints(v)
	dominant := geometry.Colors[ranking.Dominant()]

	polygon := func() {
		dc.NewSubPath()
		for i, d := range model.Dimensions {
			x, y := pointToScreen(pts[d])
			if i == 0 {
				dc.MoveTo(x, y)
			} else {
				dc.LineTo(x, y)
			}
		}
		dc.ClosePath()
	}

	if err := setColor(dc, dominant, 0.10); err != nil {
		return nil, err
	}
	polygon()
	dc.Fill()

	if err := setColor(dc, dominant, 1.0); err != nil {
		return nil, err
	}
	dc.SetLineWidth(3)
	polygon()
	dc.Stroke()

	// Spokes from center to each axis point, plus the axis dots.
	dc.SetLineWidth(1.5)
	for _, d := range model.Dimensions {
		x, y := pointToScreen(pts[d])
		dc.DrawLine(cx, cy, x, y)
		dc.Stroke()
		dc.DrawCircle(x, y, 5)
		dc.Fill()
	}

	// Composite marker between the two strongest energies.
	markerAngle, markerR := geometry.CompositeMarker(ranking.TopTwo(), pts)
	mx, my := toScreen(markerAngle, markerR)
	if err := setColor(dc, geometry.MarkerColor, 1.0); err != nil {
		return nil, err
	}
	dc.DrawCircle(mx, my, 11)
	dc.Fill()

	if displayName != "" {
		dc.SetRGB255(0x33, 0x33, 0x33)
		labelR := markerR - 0.08
		if labelR < 0.05 {
			labelR = 0.05
		}
		lx, ly := toScreen(markerAngle, labelR)
		dc.DrawStringAnchored(displayName, lx, ly, 0.5, 1.0)
	}

	// Dimension letters just outside the outer guide circle.
	for _, d := range model.Dimensions {
		if err := setColor(dc, geometry.Colors[d], 1.0); err != nil {
			return nil, err
		}
		x, y := toScreen(geometry.Angles[d], geometry.LabelRadius)
		dc.DrawStringAnchored(string(d), x, y, 0.5, 0.5)
	}

	var buf bytes.Buffer
	if err := dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode chart PNG: %w", err)
	}
	return buf.Bytes(), nil
}
