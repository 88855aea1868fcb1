package importer

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"

	"github.com/piwi3910/cutlist/internal/model"
	"github.com/piwi3910/cutlist/internal/scene"
)

// Format is the serialization of a scene document.
type Format int

const (
	FormatJSON Format = iota
	FormatYAML
)

//go:embed scene.schema.json
var sceneSchemaJSON string

var sceneSchema = jsonschema.MustCompileString("scene.schema.json", sceneSchemaJSON)

// Document is the on-disk form of a scene snapshot.
type Document struct {
	SourceName  string          `json:"source_name,omitempty" yaml:"source_name,omitempty"`
	LengthUnit  string          `json:"length_unit,omitempty" yaml:"length_unit,omitempty"`
	Definitions []DefinitionDoc `json:"definitions,omitempty" yaml:"definitions,omitempty"`
	Active      []NodeDoc       `json:"active,omitempty" yaml:"active,omitempty"`
	Selection   []NodeDoc       `json:"selection,omitempty" yaml:"selection,omitempty"`
}

// DefinitionDoc describes a component definition. Box is a shorthand for the
// six faces of a length x width x thickness box and is added to Faces.
type DefinitionDoc struct {
	Name     string    `json:"name" yaml:"name"`
	Box      []float64 `json:"box,omitempty" yaml:"box,omitempty"`
	Faces    []FaceDoc `json:"faces,omitempty" yaml:"faces,omitempty"`
	Edges    []EdgeDoc `json:"edges,omitempty" yaml:"edges,omitempty"`
	Entities []NodeDoc `json:"entities,omitempty" yaml:"entities,omitempty"`
}

// FaceDoc is the axis-aligned bounds of one face.
type FaceDoc struct {
	Min []float64 `json:"min" yaml:"min"`
	Max []float64 `json:"max" yaml:"max"`
}

// EdgeDoc is a line segment.
type EdgeDoc struct {
	Start []float64 `json:"start" yaml:"start"`
	End   []float64 `json:"end" yaml:"end"`
}

// NodeDoc is a placed group or instance.
type NodeDoc struct {
	Type          string    `json:"type" yaml:"type"` // "group" or "instance"
	ID            string    `json:"id,omitempty" yaml:"id,omitempty"`
	Hidden        bool      `json:"hidden,omitempty" yaml:"hidden,omitempty"`
	LayerHidden   bool      `json:"layer_hidden,omitempty" yaml:"layer_hidden,omitempty"`
	Material      string    `json:"material,omitempty" yaml:"material,omitempty"`
	MaterialColor string    `json:"material_color,omitempty" yaml:"material_color,omitempty"`
	Children      []NodeDoc `json:"children,omitempty" yaml:"children,omitempty"`
	Definition    string    `json:"definition,omitempty" yaml:"definition,omitempty"`
	Bounds        []float64 `json:"bounds,omitempty" yaml:"bounds,omitempty"` // Defaults to the definition's extent
}

// LoadDocument reads and decodes the scene document at path.
// The snapshot path is the document's source_name when set, otherwise path.
func LoadDocument(path string, format Format) (*scene.Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene: %w", err)
	}
	snap, err := DecodeDocument(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if snap.Path == "" {
		snap.Path = path
	}
	return snap, nil
}

// DecodeDocument validates data against the scene schema and resolves it into a snapshot.
func DecodeDocument(data []byte, format Format) (*scene.Snapshot, error) {
	var raw any
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse YAML: %w", err)
		}
		// Round trip through JSON so the validator sees JSON types.
		b, err := json.Marshal(raw)
		if err != nil {
			return nil, fmt.Errorf("failed to convert YAML: %w", err)
		}
		data = b
		raw = nil
		fallthrough
	default:
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("failed to parse JSON: %w", err)
		}
	}

	if err := sceneSchema.Validate(raw); err != nil {
		return nil, fmt.Errorf("invalid scene document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode scene document: %w", err)
	}
	return doc.Snapshot()
}

// Snapshot resolves definition references and builds the scene graph.
func (d *Document) Snapshot() (*scene.Snapshot, error) {
	unit, err := model.ParseLengthUnit(d.LengthUnit)
	if err != nil {
		return nil, err
	}

	r := &resolver{
		names: make([]string, 0, len(d.Definitions)),
		docs:  make(map[string]*DefinitionDoc, len(d.Definitions)),
		defs:  make(map[string]*scene.Definition, len(d.Definitions)),
	}
	for i := range d.Definitions {
		dd := &d.Definitions[i]
		if _, dup := r.docs[dd.Name]; dup {
			return nil, fmt.Errorf("duplicate definition %q", dd.Name)
		}
		r.names = append(r.names, dd.Name)
		r.docs[dd.Name] = dd
		r.defs[dd.Name] = &scene.Definition{
			Name:  dd.Name,
			Faces: definitionFaces(dd),
			Edges: definitionEdges(dd),
		}
	}

	// Nested definitions are resolved first so instance bounds can default to
	// the extent of their definition's content.
	order, err := r.order()
	if err != nil {
		return nil, err
	}
	for _, name := range order {
		entities, err := r.nodes(r.docs[name].Entities)
		if err != nil {
			return nil, fmt.Errorf("definition %q: %w", name, err)
		}
		r.defs[name].Entities = entities
	}

	active, err := r.nodes(d.Active)
	if err != nil {
		return nil, fmt.Errorf("active: %w", err)
	}
	selection, err := r.nodes(d.Selection)
	if err != nil {
		return nil, fmt.Errorf("selection: %w", err)
	}

	return &scene.Snapshot{
		Path:       d.SourceName,
		LengthUnit: unit,
		Active:     active,
		Selection:  selection,
	}, nil
}

func vec(v []float64) model.Point3D {
	var p model.Point3D
	if len(v) == 3 {
		p = model.Point3D{X: v[0], Y: v[1], Z: v[2]}
	}
	return p
}

func definitionFaces(dd *DefinitionDoc) []model.Box {
	faces := []model.Box{}
	if len(dd.Box) == 3 {
		faces = append(faces, scene.BoxFaces(dd.Box[0], dd.Box[1], dd.Box[2])...)
	}
	for _, f := range dd.Faces {
		faces = append(faces, model.NewBox(vec(f.Min), vec(f.Max)))
	}
	return faces
}

func definitionEdges(dd *DefinitionDoc) []scene.Edge {
	edges := make([]scene.Edge, 0, len(dd.Edges))
	for _, e := range dd.Edges {
		edges = append(edges, scene.Edge{Start: vec(e.Start), End: vec(e.End)})
	}
	return edges
}

type resolver struct {
	names []string // document order
	docs  map[string]*DefinitionDoc
	defs  map[string]*scene.Definition
}

// references returns the definition names used by instances in nodes, recursively
// through groups but not through other definitions.
func references(nodes []NodeDoc, out []string) []string {
	for _, n := range nodes {
		if n.Type == "instance" {
			out = append(out, n.Definition)
		}
		out = references(n.Children, out)
	}
	return out
}

// order returns the definition names with every definition after the ones it
// references, or ErrDefinitionCycle.
func (r *resolver) order() ([]string, error) {
	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(r.docs))
	order := make([]string, 0, len(r.docs))

	var visit func(name string, path []string) error
	visit = func(name string, path []string) error {
		switch state[name] {
		case visiting:
			return fmt.Errorf("%w: %v", ErrDefinitionCycle, append(path, name))
		case done:
			return nil
		}
		dd, ok := r.docs[name]
		if !ok {
			return nil // reported when the node is built
		}
		state[name] = visiting
		for _, ref := range references(dd.Entities, nil) {
			if err := visit(ref, append(path, name)); err != nil {
				return err
			}
		}
		state[name] = done
		order = append(order, name)
		return nil
	}

	for _, name := range r.names {
		if err := visit(name, nil); err != nil {
			return nil, err
		}
	}
	return order, nil
}

func (r *resolver) nodes(docs []NodeDoc) ([]scene.Node, error) {
	nodes := make([]scene.Node, 0, len(docs))
	for _, nd := range docs {
		n, err := r.node(nd)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}

func (r *resolver) node(nd NodeDoc) (scene.Node, error) {
	id := nd.ID
	if id == "" {
		id = newInstanceID()
	}
	attrs := scene.Attributes{
		InstanceID:  id,
		Hidden:      nd.Hidden,
		LayerHidden: nd.LayerHidden,
		Material:    materialNamed(nd.Material, nd.MaterialColor),
	}

	if nd.Type == "group" {
		children, err := r.nodes(nd.Children)
		if err != nil {
			return nil, fmt.Errorf("group %s: %w", id, err)
		}
		return &scene.Group{Attributes: attrs, Children: children}, nil
	}

	def, ok := r.defs[nd.Definition]
	if !ok {
		return nil, fmt.Errorf("instance %s: unknown definition %q", id, nd.Definition)
	}
	bounds := contentExtent(def)
	if len(nd.Bounds) == 3 {
		bounds = model.Extent3D{Width: nd.Bounds[0], Height: nd.Bounds[1], Depth: nd.Bounds[2]}
	}
	return &scene.Instance{Attributes: attrs, Bounds: bounds, Definition: def}, nil
}

// contentExtent is the default bounds of an instance of def: the extent of its
// faces, or when it has none, the per-axis maximum of its nested instances' bounds.
func contentExtent(def *scene.Definition) model.Extent3D {
	if e := def.FacesExtent(); e.IsSolid() {
		return e
	}
	var e model.Extent3D
	var walk func(nodes []scene.Node)
	walk = func(nodes []scene.Node) {
		for _, n := range nodes {
			switch c := n.(type) {
			case *scene.Group:
				walk(c.Children)
			case *scene.Instance:
				e.Width = max(e.Width, c.Bounds.Width)
				e.Height = max(e.Height, c.Bounds.Height)
				e.Depth = max(e.Depth, c.Bounds.Depth)
			}
		}
	}
	walk(def.Entities)
	return e
}
