// Package scene models a read-only snapshot of a host 3D scene graph and
// discovers the leaf parts a cutlist is built from.
package scene

import "github.com/piwi3910/cutlist/internal/model"

// Material is a named material assigned to a placed entity.
type Material struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// Edge is a line segment owned by a definition. Edges never contribute to a
// part's size.
type Edge struct {
	Start model.Point3D `json:"start"`
	End   model.Point3D `json:"end"`
}

// Definition is the shared geometry behind every instance of a component.
type Definition struct {
	Name     string      // Identity used to group instances into pieces
	Faces    []model.Box // Axis-aligned bounds of each face owned directly by the definition
	Edges    []Edge
	Entities []Node // Nested groups and instances
}

// Attributes are the properties shared by every placed entity.
type Attributes struct {
	InstanceID  string
	Hidden      bool
	LayerHidden bool
	Material    *Material // nil when no material is assigned
}

// Visible reports whether the entity and its layer are both shown.
func (a *Attributes) Visible() bool {
	return !a.Hidden && !a.LayerHidden
}

// Node is a placed entity: either a *Group or an *Instance.
type Node interface {
	Attrs() *Attributes
	node() // marker method restricting implementations to this package
}

// Group is a container whose children are placed directly inside it.
type Group struct {
	Attributes
	Children []Node
}

// Attrs returns the shared entity attributes.
func (g *Group) Attrs() *Attributes { return &g.Attributes }
func (g *Group) node()              {}

// Instance is a placed component; it may become a leaf part.
type Instance struct {
	Attributes
	Bounds     model.Extent3D // Extent of the placed instance
	Definition *Definition
}

// Attrs returns the shared entity attributes.
func (i *Instance) Attrs() *Attributes { return &i.Attributes }
func (i *Instance) node()              {}

// Snapshot is a consistent view of the scene for one generation.
type Snapshot struct {
	Path       string           // Scene file path, reduced to its base name in reports
	LengthUnit model.LengthUnit // Unit of every length in the snapshot
	Active     []Node           // Entities of the active scene
	Selection  []Node           // Currently selected entities, possibly empty
}

// Roots returns the selection when it is non-empty and preferSelection is set,
// otherwise the active entities. The boolean tells which one was used.
func (s *Snapshot) Roots(preferSelection bool) ([]Node, bool) {
	if preferSelection && len(s.Selection) > 0 {
		return s.Selection, true
	}
	return s.Active, false
}
