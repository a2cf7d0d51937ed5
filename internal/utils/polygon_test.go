package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBounds(t *testing.T) {
	tests := []struct {
		name string
		pts  []Point
		want BoundingBox
	}{
		{"empty", nil, BoundingBox{}},
		{"single", []Point{{X: 3, Y: 7}}, BoundingBox{X: 3, Y: 7, Width: 1, Height: 1}},
		{
			"quad",
			[]Point{{X: 10, Y: 20}, {X: 40, Y: 20}, {X: 40, Y: 60}, {X: 10, Y: 60}},
			BoundingBox{X: 10, Y: 20, Width: 31, Height: 41},
		},
		{
			"negative coords",
			[]Point{{X: -5, Y: -5}, {X: 5, Y: 5}},
			BoundingBox{X: -5, Y: -5, Width: 11, Height: 11},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Bounds(tt.pts))
		})
	}
}

func TestCentroid(t *testing.T) {
	assert.Equal(t, Point{}, Centroid(nil))
	assert.Equal(t, Point{X: 2, Y: 3}, Centroid([]Point{{X: 2, Y: 3}}))
	assert.Equal(t, Point{X: 5, Y: 5},
		Centroid([]Point{{X: 0, Y: 0}, {X: 10, Y: 0}, {X: 10, Y: 10}, {X: 0, Y: 10}}))
}

func TestArea(t *testing.T) {
	// Unit square, counter-clockwise: positive doubled area 2.
	ccw := []Point{{X: 0, Y: 0}, {X: 1, Y: 0}, {X: 1, Y: 1}, {X: 0, Y: 1}}
	assert.Equal(t, 2, Area(ccw))

	cw := []Point{{X: 0, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0}}
	assert.Equal(t, -2, Area(cw))

	assert.Equal(t, 0, Area([]Point{{X: 0, Y: 0}, {X: 1, Y: 1}}))
}

func TestConvexHull(t *testing.T) {
	pts := []Point{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4},
		{X: 2, Y: 2}, {X: 1, Y: 3}, // interior
	}
	hull := ConvexHull(pts)
	assert.ElementsMatch(t, []Point{
		{X: 0, Y: 0}, {X: 4, Y: 0}, {X: 4, Y: 4}, {X: 0, Y: 4},
	}, hull)
}

func TestConvexHullDegenerate(t *testing.T) {
	assert.Empty(t, ConvexHull(nil))
	assert.Len(t, ConvexHull([]Point{{X: 1, Y: 1}}), 1)
	assert.Len(t, ConvexHull([]Point{{X: 1, Y: 1}, {X: 2, Y: 2}}), 2)
}
