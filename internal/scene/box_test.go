package scene

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/piwi3910/cutlist/internal/model"
)

func TestBoxFacesSpanTheBox(t *testing.T) {
	faces := BoxFaces(600, 400, 18)
	assert.Len(t, faces, 6)

	def := &Definition{Name: "Panel", Faces: faces}
	assert.Equal(t, model.Extent3D{Width: 600, Height: 400, Depth: 18}, def.FacesExtent())
}

func TestFacesExtentIgnoresEdgesAndEntities(t *testing.T) {
	def := &Definition{
		Name:  "Panel",
		Faces: BoxFaces(100, 50, 10),
		Edges: []Edge{{End: model.Point3D{X: 1000, Y: 1000, Z: 1000}}},
		Entities: []Node{
			&Instance{Bounds: solid(900, 900, 900), Definition: &Definition{Faces: BoxFaces(900, 900, 900)}},
		},
	}
	assert.Equal(t, model.Extent3D{Width: 100, Height: 50, Depth: 10}, def.FacesExtent())
}

func TestFacesExtentEmpty(t *testing.T) {
	var nilDef *Definition
	assert.Equal(t, model.Extent3D{}, nilDef.FacesExtent())
	assert.Equal(t, model.Extent3D{}, (&Definition{Name: "Empty"}).FacesExtent())
}
