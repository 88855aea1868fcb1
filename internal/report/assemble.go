package report

import (
	"github.com/piwi3910/cutlist/internal/locale"
	"github.com/piwi3910/cutlist/internal/model"
)

// Assemble records the empty-result condition on c. When no leaf part was
// found it appends one message naming either the selection or the whole scene.
// The status is left as the caller set it.
func Assemble(c *model.Cutlist, leafCount int, useSelection bool, loc *locale.Localizer) {
	if leafCount > 0 {
		return
	}
	if useSelection {
		c.AddError(loc.Text(locale.NoLeafInSelection))
	} else {
		c.AddError(loc.Text(locale.NoLeafInScene))
	}
}
