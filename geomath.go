package poiside

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
)

// findDistance returns distance between two points (assuming they are Euclidean: X == Lon, Y == Lat)
func findDistance(p, q orb.Point) float64 {
	xdistance := p[0] - q[0]
	ydistance := p[1] - q[1]
	return math.Sqrt(xdistance*xdistance + ydistance*ydistance)
}

// lineLength returns length for given line (assuming points of the line are Euclidean: X == Lon, Y == Lat)
func lineLength(line orb.LineString) float64 {
	totalLength := 0.0
	if len(line) < 2 {
		return totalLength
	}
	for i := 1; i < len(line); i++ {
		totalLength += findDistance(line[i-1], line[i])
	}
	return totalLength
}

// clampFraction clamps fraction along a curve to [0;1]
func clampFraction(fraction float64) float64 {
	if fraction < 0 {
		return 0
	}
	if fraction > 1 {
		return 1
	}
	return fraction
}

// pointOnSegmentByFraction returns a point on given segment using knowledge about fraction
func pointOnSegmentByFraction(p, q orb.Point, fraction float64) orb.Point {
	return orb.Point{
		(1-fraction)*p[0] + (fraction * q[0]),
		(1-fraction)*p[1] + (fraction * q[1]),
	}
}

// pointAlongLine returns a point at given fraction of line's total length.
// Fraction is expected to be within [0;1] already. Walks consecutive segments
// accumulating Euclidean length and interpolates on the segment containing the target.
func pointAlongLine(line orb.LineString, fraction float64) orb.Point {
	if len(line) == 0 {
		return orb.Point{}
	}
	totalLength := lineLength(line)
	if totalLength == 0.0 {
		return line[0]
	}
	target := totalLength * fraction
	cumulative := 0.0
	for i := 1; i < len(line); i++ {
		segment := findDistance(line[i-1], line[i])
		if segment > 0 && cumulative+segment >= target {
			return pointOnSegmentByFraction(line[i-1], line[i], (target-cumulative)/segment)
		}
		cumulative += segment
	}
	return line[len(line)-1]
}

// Check if two segments intersects and returns intersections Point
// p1, p2 - first segment
// p3, p4 - second segment
// Note: Euclidean space
func intersect(p1, p2, p3, p4 orb.Point) (orb.Point, error) {
	// Calculate the coefficients of the linear equations
	a1 := p2[1] - p1[1]
	b1 := p1[0] - p2[0]
	c1 := a1*p1[0] + b1*p1[1]
	a2 := p4[1] - p3[1]
	b2 := p3[0] - p4[0]
	c2 := a2*p3[0] + b2*p3[1]

	// Calculate the determinant
	det := a1*b2 - a2*b1
	if det == 0 {
		return orb.Point{}, fmt.Errorf("The lines are parallel")
	}

	// Calculate the intersection point
	x := (b2*c1 - b1*c2) / det
	y := (a1*c2 - a2*c1) / det
	return orb.Point{x, y}, nil
}

// offsetCurve returns a curve parallel to the given one, displaced by given
// distance. Positive distance offsets to the left of the direction of travel
// (start -> end), negative to the right. Joints between consecutive offset
// segments are resolved by mitre intersection; collinear joints are skipped
// since the segment endpoints already lie on the straight continuation.
//
// Returns an error when the line carries no usable segments (fewer than 2
// points or zero-length segments only).
func offsetCurve(line orb.LineString, distance float64) (orb.LineString, error) {
	var segments [][2]orb.Point

	// Iterate over line segments and calculate offset segments
	for i := 1; i < len(line); i++ {
		p1 := line[i-1]
		p2 := line[i]

		// Calculate the vector between the points
		vec := [2]float64{p2[0] - p1[0], p2[1] - p1[1]}

		// Zero-length segments give no direction to offset along
		vecLen := math.Sqrt(vec[0]*vec[0] + vec[1]*vec[1])
		if vecLen == 0 {
			continue
		}
		vec = [2]float64{vec[0] / vecLen, vec[1] / vecLen}

		// Rotate the vector by 90 degrees and scale by the distance
		offset := [2]float64{-vec[1] * distance, vec[0] * distance}

		op1 := orb.Point{p1[0] + offset[0], p1[1] + offset[1]}
		op2 := orb.Point{p2[0] + offset[0], p2[1] + offset[1]}
		segments = append(segments, [2]orb.Point{op1, op2})
	}
	if len(segments) == 0 {
		return nil, fmt.Errorf("offset: no usable segments in line of %d points", len(line))
	}

	result := orb.LineString{segments[0][0]}
	// Iterate over the segments and calculate the intersections
	for i := 1; i < len(segments); i++ {
		seg1 := segments[i-1]
		seg2 := segments[i]
		intersection, err := intersect(seg1[0], seg1[1], seg2[0], seg2[1])
		if err != nil {
			continue
		}
		result = append(result, intersection)
	}
	result = append(result, segments[len(segments)-1][1])
	return result, nil
}

// chordCross returns the 2D cross product of the curve's start->end chord
// with the start->point vector. Positive means the point lies to the left of
// the chord, negative to the right, zero exactly on the axis.
func chordCross(curve orb.LineString, pt orb.Point) float64 {
	start := curve[0]
	end := curve[len(curve)-1]
	vLinkX := end[0] - start[0]
	vLinkY := end[1] - start[1]
	vPtX := pt[0] - start[0]
	vPtY := pt[1] - start[1]
	return vLinkX*vPtY - vLinkY*vPtX
}

// reverseLine reverses order of points in given line. Returns new slice
func reverseLine(line orb.LineString) orb.LineString {
	inputLen := len(line)
	output := make(orb.LineString, inputLen)
	for i, pt := range line {
		output[inputLen-i-1] = pt
	}
	return output
}
