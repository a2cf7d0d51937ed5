package utils

import "sort"

// Point is an integer point in image coordinates.
type Point struct {
	X int
	Y int
}

// BoundingBox is an axis-aligned rectangle around a point set.
type BoundingBox struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Bounds returns the axis-aligned bounding box of the points. An empty input
// yields a zero box.
func Bounds(pts []Point) BoundingBox {
	if len(pts) == 0 {
		return BoundingBox{}
	}
	minX, minY := pts[0].X, pts[0].Y
	maxX, maxY := pts[0].X, pts[0].Y
	for _, p := range pts[1:] {
		if p.X < minX {
			minX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y > maxY {
			maxY = p.Y
		}
	}
	return BoundingBox{X: minX, Y: minY, Width: maxX - minX + 1, Height: maxY - minY + 1}
}

// Centroid returns the average of the points. An empty input yields the origin.
func Centroid(pts []Point) Point {
	if len(pts) == 0 {
		return Point{}
	}
	var sx, sy int
	for _, p := range pts {
		sx += p.X
		sy += p.Y
	}
	return Point{X: sx / len(pts), Y: sy / len(pts)}
}

// Area returns twice the signed shoelace area of a closed polygon given as an
// ordered vertex sequence. The sign encodes winding; callers wanting the
// geometric area take Abs(Area(pts))/2.
func Area(pts []Point) int {
	if len(pts) < 3 {
		return 0
	}
	area := 0
	for i := range pts {
		j := (i + 1) % len(pts)
		area += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return area
}

// ConvexHull computes the convex hull of a point set using the monotone chain
// algorithm. The hull is returned in counter-clockwise order without
// duplicating the first point at the end.
func ConvexHull(pts []Point) []Point {
	n := len(pts)
	if n <= 2 {
		return append([]Point(nil), pts...)
	}

	sorted := append([]Point(nil), pts...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].X != sorted[j].X {
			return sorted[i].X < sorted[j].X
		}
		return sorted[i].Y < sorted[j].Y
	})

	cross := func(o, a, b Point) int {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}

	hull := make([]Point, 0, 2*n)
	// Lower hull
	for _, p := range sorted {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	// Upper hull
	lower := len(hull) + 1
	for i := n - 2; i >= 0; i-- {
		p := sorted[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 0 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}
