package scene

import "github.com/piwi3910/cutlist/internal/model"

// BoxFaces returns the six faces of an axis-aligned box of the given size
// anchored at the origin.
func BoxFaces(length, width, thickness float64) []model.Box {
	p := func(x, y, z float64) model.Point3D { return model.Point3D{X: x, Y: y, Z: z} }
	l, w, t := length, width, thickness
	return []model.Box{
		model.NewBox(p(0, 0, 0), p(l, w, 0)),
		model.NewBox(p(0, 0, t), p(l, w, t)),
		model.NewBox(p(0, 0, 0), p(l, 0, t)),
		model.NewBox(p(0, w, 0), p(l, w, t)),
		model.NewBox(p(0, 0, 0), p(0, w, t)),
		model.NewBox(p(l, 0, 0), p(l, w, t)),
	}
}

// FacesExtent returns the extent of the faces owned directly by d.
// Edges and nested entities are ignored; a nil definition or one without
// faces has a zero extent.
func (d *Definition) FacesExtent() model.Extent3D {
	var bb model.BoundingBox
	if d == nil {
		return bb.Extent()
	}
	for _, f := range d.Faces {
		bb.Add(f)
	}
	return bb.Extent()
}
