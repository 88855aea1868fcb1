package importer

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/entity"

	"github.com/piwi3910/cutlist/internal/model"
	"github.com/piwi3910/cutlist/internal/scene"
)

// defaultLayer is the name DXF gives entities without an explicit layer.
const defaultLayer = "0"

// meshBuilder collects DXF faces and edges per layer, in first-seen order.
type meshBuilder struct {
	order  []string
	layers map[string]*scene.Definition
}

func newMeshBuilder() *meshBuilder {
	return &meshBuilder{layers: make(map[string]*scene.Definition)}
}

func (b *meshBuilder) layer(name string) *scene.Definition {
	if name == "" {
		name = defaultLayer
	}
	def, ok := b.layers[name]
	if !ok {
		def = &scene.Definition{Name: name, Faces: []model.Box{}, Edges: []scene.Edge{}}
		b.layers[name] = def
		b.order = append(b.order, name)
	}
	return def
}

// addFace records the bounds of a 3DFACE. Faces with fewer than three
// three-dimensional points are rejected.
func (b *meshBuilder) addFace(layer string, points [][]float64) bool {
	box, ok := faceBox(points)
	if !ok {
		return false
	}
	def := b.layer(layer)
	def.Faces = append(def.Faces, box)
	return true
}

func (b *meshBuilder) addEdge(layer string, start, end []float64) {
	def := b.layer(layer)
	def.Edges = append(def.Edges, scene.Edge{Start: point(start), End: point(end)})
}

// snapshot places one instance of every layer holding faces.
// Layers with edges only are reported in the returned warnings.
func (b *meshBuilder) snapshot(path string, unit model.LengthUnit) (*scene.Snapshot, []string) {
	snap := &scene.Snapshot{Path: path, LengthUnit: unit, Active: []scene.Node{}}
	var warnings []string
	for _, name := range b.order {
		def := b.layers[name]
		if len(def.Faces) == 0 {
			warnings = append(warnings, fmt.Sprintf("Layer '%s' has no 3DFACE entities, skipped", name))
			continue
		}
		snap.Active = append(snap.Active, &scene.Instance{
			Attributes: scene.Attributes{InstanceID: newInstanceID()},
			Bounds:     def.FacesExtent(),
			Definition: def,
		})
	}
	return snap, warnings
}

func point(v []float64) model.Point3D {
	var p model.Point3D
	if len(v) > 0 {
		p.X = v[0]
	}
	if len(v) > 1 {
		p.Y = v[1]
	}
	if len(v) > 2 {
		p.Z = v[2]
	}
	return p
}

// faceBox returns the axis-aligned bounds of a face's corner points.
func faceBox(points [][]float64) (model.Box, bool) {
	var bb model.BoundingBox
	n := 0
	for _, pt := range points {
		if len(pt) < 3 {
			continue
		}
		bb.AddPoint(point(pt))
		n++
	}
	if n < 3 {
		return model.Box{}, false
	}
	return bb.Box(), true
}

func layerName(e entity.Entity) string {
	if l := e.Layer(); l != nil {
		return l.Name()
	}
	return defaultLayer
}

// ImportDXF imports a DXF mesh. Every layer holding 3DFACE entities becomes one
// definition, sized by its faces, placed once. LINE entities are kept as edges.
func ImportDXF(path string, unit model.LengthUnit) ImportResult {
	result := ImportResult{}

	drawing, err := dxf.Open(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open DXF file: %v", err))
		return result
	}

	entities := drawing.Entities()
	if len(entities) == 0 {
		result.Errors = append(result.Errors, "DXF file contains no entities")
		return result
	}

	b := newMeshBuilder()
	skipped := 0
	for _, ent := range entities {
		switch e := ent.(type) {
		case *entity.ThreeDFace:
			if !b.addFace(layerName(e), e.Points) {
				result.Warnings = append(result.Warnings, "Skipped 3DFACE with fewer than 3 vertices")
			}
		case *entity.Line:
			b.addEdge(layerName(e), e.Start, e.End)
		default:
			skipped++
		}
	}
	if skipped > 0 {
		result.Warnings = append(result.Warnings, fmt.Sprintf("Ignored %d unsupported entities", skipped))
	}

	snap, warnings := b.snapshot(path, unit)
	result.Warnings = append(result.Warnings, warnings...)
	if len(snap.Active) == 0 {
		result.Errors = append(result.Errors, "No 3DFACE entities found in DXF file")
		return result
	}
	result.Snapshot = snap
	return result
}
