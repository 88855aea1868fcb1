package model

import (
	"math"
	"sort"
)

// Point3D represents a 3D coordinate in the host length unit.
type Point3D struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Box is an axis-aligned box given by two opposite corners.
type Box struct {
	Min Point3D `json:"min"`
	Max Point3D `json:"max"`
}

// NewBox returns the box spanning a and b regardless of corner order.
func NewBox(a, b Point3D) Box {
	return Box{
		Min: Point3D{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y), Z: math.Min(a.Z, b.Z)},
		Max: Point3D{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y), Z: math.Max(a.Z, b.Z)},
	}
}

// Extent returns the width (X), height (Y) and depth (Z) of the box.
func (b Box) Extent() Extent3D {
	return Extent3D{
		Width:  b.Max.X - b.Min.X,
		Height: b.Max.Y - b.Min.Y,
		Depth:  b.Max.Z - b.Min.Z,
	}
}

// BoundingBox accumulates points and boxes into their common bounds.
// The zero value is empty and has a zero extent.
type BoundingBox struct {
	box  Box
	init bool
}

// IsEmpty reports whether nothing has been added yet.
func (bb *BoundingBox) IsEmpty() bool {
	return !bb.init
}

// AddPoint extends the bounds to include p.
func (bb *BoundingBox) AddPoint(p Point3D) {
	if !bb.init {
		bb.box = Box{Min: p, Max: p}
		bb.init = true
		return
	}
	bb.box.Min.X = math.Min(bb.box.Min.X, p.X)
	bb.box.Min.Y = math.Min(bb.box.Min.Y, p.Y)
	bb.box.Min.Z = math.Min(bb.box.Min.Z, p.Z)
	bb.box.Max.X = math.Max(bb.box.Max.X, p.X)
	bb.box.Max.Y = math.Max(bb.box.Max.Y, p.Y)
	bb.box.Max.Z = math.Max(bb.box.Max.Z, p.Z)
}

// Add extends the bounds to include b.
func (bb *BoundingBox) Add(b Box) {
	bb.AddPoint(b.Min)
	bb.AddPoint(b.Max)
}

// Box returns the accumulated bounds. An empty accumulator yields the zero box.
func (bb *BoundingBox) Box() Box {
	return bb.box
}

// Extent returns the accumulated extent, zero when empty.
func (bb *BoundingBox) Extent() Extent3D {
	if !bb.init {
		return Extent3D{}
	}
	return bb.box.Extent()
}

// Extent3D is the size of an axis-aligned bounding box in the host length unit.
type Extent3D struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Depth  float64 `json:"depth"`
}

// IsSolid reports whether every dimension is strictly positive.
func (e Extent3D) IsSolid() bool {
	return e.Width > 0 && e.Height > 0 && e.Depth > 0
}

// Size is a part size ordered length >= width >= thickness.
// Obtain one from CanonicalSize rather than building it by hand.
type Size struct {
	Length    float64 `json:"length"`
	Width     float64 `json:"width"`
	Thickness float64 `json:"thickness"`
}

// CanonicalSize sorts the extent dimensions descending into a Size.
func CanonicalSize(e Extent3D) Size {
	dims := []float64{e.Width, e.Height, e.Depth}
	sort.Sort(sort.Reverse(sort.Float64Slice(dims)))
	return Size{Length: dims[0], Width: dims[1], Thickness: dims[2]}
}

// Area returns length x width.
func (s Size) Area() float64 {
	return s.Length * s.Width
}

// Volume returns length x width x thickness.
func (s Size) Volume() float64 {
	return s.Length * s.Width * s.Thickness
}
