package utils

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// genPoint generates a random point.
func genPoint() gopter.Gen {
	return gopter.CombineGens(
		gen.IntRange(-100, 100),
		gen.IntRange(-100, 100),
	).Map(func(vals []interface{}) Point {
		return Point{X: vals[0].(int), Y: vals[1].(int)}
	})
}

// genPoints generates a random point set.
func genPoints(size int) gopter.Gen {
	return gen.SliceOfN(size, genPoint())
}

// TestBounds_ContainsAllPoints verifies every point lies inside its bounding box.
func TestBounds_ContainsAllPoints(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("bounding box contains every input point", prop.ForAll(
		func(points []Point) bool {
			if len(points) == 0 {
				return true
			}
			b := Bounds(points)
			for _, p := range points {
				if p.X < b.X || p.X >= b.X+b.Width || p.Y < b.Y || p.Y >= b.Y+b.Height {
					return false
				}
			}
			return true
		},
		genPoints(10),
	))

	properties.TestingRun(t)
}

// TestConvexHull_ContainsInputExtremes verifies the hull keeps the extreme points.
func TestConvexHull_ContainsInputExtremes(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("hull bounding box equals input bounding box", prop.ForAll(
		func(points []Point) bool {
			if len(points) < 3 {
				return true
			}
			hull := ConvexHull(points)
			if len(hull) == 0 {
				return false
			}
			return Bounds(hull) == Bounds(points)
		},
		genPoints(12),
	))

	properties.TestingRun(t)
}

// TestConvexHull_OutputNonIncreasing verifies hull size <= input size.
func TestConvexHull_OutputNonIncreasing(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("hull has <= input points", prop.ForAll(
		func(points []Point) bool {
			return len(ConvexHull(points)) <= len(points)
		},
		genPoints(15),
	))

	properties.TestingRun(t)
}

// TestCentroid_InsideBounds verifies the centroid lies inside the bounding box.
func TestCentroid_InsideBounds(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("centroid lies within the bounding box", prop.ForAll(
		func(points []Point) bool {
			if len(points) == 0 {
				return true
			}
			b := Bounds(points)
			c := Centroid(points)
			return c.X >= b.X && c.X < b.X+b.Width && c.Y >= b.Y && c.Y < b.Y+b.Height
		},
		genPoints(8),
	))

	properties.TestingRun(t)
}
