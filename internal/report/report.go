// Package report assembles a generated cutlist into its structured, numbered
// output form.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/piwi3910/cutlist/internal/model"
)

// Piece is one serialized piece of a group.
type Piece struct {
	Name        string     `json:"name"`
	Number      string     `json:"number"`
	Size        model.Size `json:"size"`
	RawSize     model.Size `json:"raw_size"`
	Count       int        `json:"count"`
	InstanceIDs []string   `json:"instance_ids"`
}

// Group is one serialized material/thickness group.
type Group struct {
	ID                    string                 `json:"id"` // "material:thickness"
	MaterialName          string                 `json:"material_name"`
	MaterialAssigned      bool                   `json:"material_assigned"`
	RawThickness          float64                `json:"raw_thickness"`
	RawThicknessAvailable bool                   `json:"raw_thickness_available"`
	PieceCount            int                    `json:"piece_count"`
	Estimate              model.MaterialEstimate `json:"estimate"`
	Pieces                []Piece                `json:"pieces"`
}

// Report is the structured output of a cutlist generation.
type Report struct {
	Status     model.Status `json:"status"`
	Errors     []string     `json:"errors"`
	SourceName string       `json:"source_name"`
	LengthUnit string       `json:"length_unit"`
	Groups     []Group      `json:"groups"`
}

// Serialize converts c into a Report, numbering pieces in group then piece
// first-encounter order.
func Serialize(c *model.Cutlist, numbering Numbering) Report {
	r := Report{
		Status:     c.Status,
		Errors:     append([]string{}, c.Errors...),
		SourceName: c.SourceName,
		LengthUnit: c.LengthUnit,
		Groups:     []Group{},
	}

	unit := model.LengthUnit(c.LengthUnit)
	seq := newSequence(numbering)
	for _, g := range c.Groups() {
		seq.startGroup()
		group := Group{
			ID:                    g.Key().String(),
			MaterialName:          g.MaterialName,
			MaterialAssigned:      g.MaterialAssigned,
			RawThickness:          g.RawThickness,
			RawThicknessAvailable: g.RawThicknessAvailable,
			PieceCount:            g.PieceCount,
			Estimate:              model.EstimateGroup(g, unit),
			Pieces:                []Piece{},
		}
		for _, p := range g.Pieces() {
			group.Pieces = append(group.Pieces, Piece{
				Name:        p.Name,
				Number:      seq.take(),
				Size:        p.Size,
				RawSize:     p.RawSize,
				Count:       p.Count,
				InstanceIDs: append([]string{}, p.InstanceIDs...),
			})
		}
		r.Groups = append(r.Groups, group)
	}
	return r
}

// TotalPieceCount returns the number of instances across all groups.
func (r Report) TotalPieceCount() int {
	total := 0
	for _, g := range r.Groups {
		total += g.PieceCount
	}
	return total
}

// WriteJSON writes r as indented JSON.
func WriteJSON(w io.Writer, r Report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}
