package geometry

import (
	"github.com/df07/go-raytracer/pkg/core"
	"github.com/df07/go-raytracer/pkg/material"
)

// ShapeList is an ordered collection of shapes that is itself a Shape.
// Queries scan every member, so it suits scenes with few objects.
type ShapeList struct {
	Shapes []Shape
}

// NewShapeList creates a list holding the given shapes
func NewShapeList(shapes ...Shape) *ShapeList {
	return &ShapeList{Shapes: shapes}
}

// Add appends a shape to the list
func (l *ShapeList) Add(shape Shape) {
	l.Shapes = append(l.Shapes, shape)
}

// Len returns the number of shapes in the list
func (l *ShapeList) Len() int {
	return len(l.Shapes)
}

// Hit returns the nearest intersection among all shapes in the list.
// Each probe is limited to [rayT.Min, closest so far] so a farther
// shape can never replace a closer hit.
func (l *ShapeList) Hit(ray core.Ray, rayT core.Interval) (*material.HitRecord, bool) {
	var closestHit *material.HitRecord
	closestSoFar := rayT.Max

	for _, shape := range l.Shapes {
		if hit, isHit := shape.Hit(ray, rayT.WithMax(closestSoFar)); isHit {
			closestSoFar = hit.T
			closestHit = hit
		}
	}

	return closestHit, closestHit != nil
}
