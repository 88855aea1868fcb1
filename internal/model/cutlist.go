package model

import (
	"path/filepath"
	"strconv"
)

// Status is the overall outcome of a cutlist generation.
type Status string

const (
	StatusSuccess Status = "success"
	StatusWarning Status = "warning"
)

// GroupKey identifies a group of parts sharing a material and a snapped thickness.
// Parts without a material get their own key even if a real material carries
// the same display name as the no-material sentinel.
type GroupKey struct {
	Material         string
	MaterialAssigned bool
	Thickness        float64
}

// String renders the key as "material:thickness". Parts without a material
// render with an empty material, as ":thickness", whatever the sentinel name.
func (k GroupKey) String() string {
	material := k.Material
	if !k.MaterialAssigned {
		material = ""
	}
	return material + ":" + strconv.FormatFloat(k.Thickness, 'f', -1, 64)
}

// PieceRecord accumulates every instance of one definition within a group.
type PieceRecord struct {
	Name        string   `json:"name"`
	RawSize     Size     `json:"raw_size"` // After increases and thickness snapping
	Size        Size     `json:"size"`     // Raw geometry size
	Count       int      `json:"count"`
	InstanceIDs []string `json:"instance_ids"`
}

// AddInstance records one more instance of the piece.
func (p *PieceRecord) AddInstance(id string) {
	p.Count++
	p.InstanceIDs = append(p.InstanceIDs, id)
}

// GroupRecord holds the pieces of one material/thickness group.
type GroupRecord struct {
	MaterialName          string  `json:"material_name"`
	MaterialAssigned      bool    `json:"material_assigned"`
	RawThickness          float64 `json:"raw_thickness"`
	RawThicknessAvailable bool    `json:"raw_thickness_available"`
	PieceCount            int     `json:"piece_count"`

	pieces *OrderedMap[string, *PieceRecord]
}

// NewGroupRecord creates an empty group for key.
func NewGroupRecord(key GroupKey, thicknessAvailable bool) *GroupRecord {
	return &GroupRecord{
		MaterialName:          key.Material,
		MaterialAssigned:      key.MaterialAssigned,
		RawThickness:          key.Thickness,
		RawThicknessAvailable: thicknessAvailable,
		pieces:                NewOrderedMap[string, *PieceRecord](),
	}
}

// Key returns the key the group is stored under.
func (g *GroupRecord) Key() GroupKey {
	return GroupKey{Material: g.MaterialName, MaterialAssigned: g.MaterialAssigned, Thickness: g.RawThickness}
}

// Piece returns the piece stored under a definition name, or nil.
func (g *GroupRecord) Piece(name string) *PieceRecord {
	p, _ := g.pieces.Get(name)
	return p
}

// SetPiece stores a piece under its definition name.
func (g *GroupRecord) SetPiece(p *PieceRecord) {
	g.pieces.Set(p.Name, p)
}

// Pieces returns the pieces in first-encounter order.
func (g *GroupRecord) Pieces() []*PieceRecord {
	return g.pieces.Values()
}

// Cutlist is the root aggregate built once per generation.
type Cutlist struct {
	Status     Status   `json:"status"`
	SourceName string   `json:"source_name"`
	LengthUnit string   `json:"length_unit"`
	Errors     []string `json:"errors"`

	groups *OrderedMap[GroupKey, *GroupRecord]
}

// NewCutlist creates an empty cutlist. sourcePath is reduced to its base name.
func NewCutlist(status Status, sourcePath string, unit LengthUnit) *Cutlist {
	name := ""
	if sourcePath != "" {
		name = filepath.Base(sourcePath)
	}
	return &Cutlist{
		Status:     status,
		SourceName: name,
		LengthUnit: unit.String(),
		Errors:     []string{},
		groups:     NewOrderedMap[GroupKey, *GroupRecord](),
	}
}

// AddError appends a human readable error message.
func (c *Cutlist) AddError(msg string) {
	c.Errors = append(c.Errors, msg)
}

// Group returns the group stored under key, or nil.
func (c *Cutlist) Group(key GroupKey) *GroupRecord {
	g, _ := c.groups.Get(key)
	return g
}

// SetGroup stores a group under its key.
func (c *Cutlist) SetGroup(g *GroupRecord) {
	c.groups.Set(g.Key(), g)
}

// Groups returns the groups in first-encounter order.
func (c *Cutlist) Groups() []*GroupRecord {
	return c.groups.Values()
}

// TotalPieceCount returns the number of instances across all groups.
func (c *Cutlist) TotalPieceCount() int {
	total := 0
	for _, g := range c.Groups() {
		total += g.PieceCount
	}
	return total
}
