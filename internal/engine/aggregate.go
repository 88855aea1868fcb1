package engine

import (
	"github.com/piwi3910/cutlist/internal/model"
)

// Aggregator groups normalized parts into a cutlist by material and raw
// thickness, then by definition name.
type Aggregator struct {
	cutlist    *model.Cutlist
	noMaterial string
}

// NewAggregator creates an Aggregator filling c. noMaterial is the display
// name used for parts without a material.
func NewAggregator(c *model.Cutlist, noMaterial string) *Aggregator {
	return &Aggregator{cutlist: c, noMaterial: noMaterial}
}

// Add records one part. Groups and pieces are created on first encounter and
// their identifying fields are never changed afterwards.
func (a *Aggregator) Add(p NormalizedPart) {
	key := a.groupKey(p)
	group := a.cutlist.Group(key)
	if group == nil {
		group = model.NewGroupRecord(key, p.Match.Available)
		a.cutlist.SetGroup(group)
	}

	name := definitionName(p)
	piece := group.Piece(name)
	if piece == nil {
		piece = &model.PieceRecord{
			Name:        name,
			RawSize:     p.RawSize,
			Size:        p.Size,
			InstanceIDs: []string{},
		}
		group.SetPiece(piece)
	}
	piece.AddInstance(p.Leaf.ID)
	group.PieceCount++
}

func (a *Aggregator) groupKey(p NormalizedPart) model.GroupKey {
	if m := p.Leaf.Material; m != nil {
		return model.GroupKey{Material: m.Name, MaterialAssigned: true, Thickness: p.RawSize.Thickness}
	}
	return model.GroupKey{Material: a.noMaterial, MaterialAssigned: false, Thickness: p.RawSize.Thickness}
}

func definitionName(p NormalizedPart) string {
	if p.Leaf.Definition == nil {
		return ""
	}
	return p.Leaf.Definition.Name
}

// Aggregate adds every part to c in order.
func Aggregate(c *model.Cutlist, parts []NormalizedPart, noMaterial string) {
	a := NewAggregator(c, noMaterial)
	for _, p := range parts {
		a.Add(p)
	}
}
