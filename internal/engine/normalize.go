package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/piwi3910/cutlist/internal/model"
	"github.com/piwi3910/cutlist/internal/scene"
)

// Increases are the allowances added to a part's size before snapping,
// expressed in the host length unit.
type Increases struct {
	Length    float64
	Width     float64
	Thickness float64
}

// ErrInvalidIncrease is returned for a negative or non-finite increase.
var ErrInvalidIncrease = errors.New("increase must be a finite, non-negative length")

// Validate checks that every increase is a finite, non-negative length.
func (inc Increases) Validate() error {
	for _, f := range []struct {
		name  string
		value float64
	}{
		{"length", inc.Length},
		{"width", inc.Width},
		{"thickness", inc.Thickness},
	} {
		if f.value < 0 || math.IsNaN(f.value) || math.IsInf(f.value, 0) {
			return fmt.Errorf("%s increase %v: %w", f.name, f.value, ErrInvalidIncrease)
		}
	}
	return nil
}

// NormalizedPart is a leaf part with its derived sizes.
type NormalizedPart struct {
	Leaf    scene.Leaf
	Size    model.Size           // Canonical size of the definition's faces
	RawSize model.Size           // Size after increases and thickness snapping
	Match   model.ThicknessMatch // Outcome of the thickness snapping
}

// FacesExtent returns the extent of the faces owned directly by def.
// Edges and nested entities are ignored; a definition without faces has a zero extent.
func FacesExtent(def *scene.Definition) model.Extent3D {
	return def.FacesExtent()
}

// ApplyIncreaseAndSnap adds the increases to size and snaps the resulting
// thickness to the smallest standard thickness that can hold it.
func ApplyIncreaseAndSnap(size model.Size, inc Increases, table model.StdThicknessTable) (model.Size, model.ThicknessMatch) {
	match := table.Lookup(size.Thickness + inc.Thickness)
	raw := model.Size{
		Length:    model.RoundLength(size.Length + inc.Length),
		Width:     model.RoundLength(size.Width + inc.Width),
		Thickness: match.Value,
	}
	return raw, match
}

// Normalizer derives sizes for leaf parts. Sizes are computed once per definition.
type Normalizer struct {
	increases Increases
	table     model.StdThicknessTable
	sizes     map[*scene.Definition]model.Size
}

// NewNormalizer creates a Normalizer applying inc and snapping to table.
func NewNormalizer(inc Increases, table model.StdThicknessTable) *Normalizer {
	return &Normalizer{
		increases: inc,
		table:     table,
		sizes:     make(map[*scene.Definition]model.Size),
	}
}

// Normalize computes the size, raw size and thickness match of one leaf part.
func (n *Normalizer) Normalize(leaf scene.Leaf) NormalizedPart {
	size, ok := n.sizes[leaf.Definition]
	if !ok {
		size = model.CanonicalSize(FacesExtent(leaf.Definition))
		n.sizes[leaf.Definition] = size
	}
	raw, match := ApplyIncreaseAndSnap(size, n.increases, n.table)
	return NormalizedPart{
		Leaf:    leaf,
		Size:    size,
		RawSize: raw,
		Match:   match,
	}
}
