package model

import "github.com/google/uuid"

// ThicknessPreset is a named, reusable standard thickness list for a kind of stock.
type ThicknessPreset struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Material       string `json:"material"`
	StdThicknesses string `json:"std_thicknesses"` // ";"-separated millimeter values
}

// NewThicknessPreset creates a new ThicknessPreset with a generated ID.
func NewThicknessPreset(name, material, stdThicknesses string) ThicknessPreset {
	return ThicknessPreset{
		ID:             uuid.New().String()[:8],
		Name:           name,
		Material:       material,
		StdThicknesses: stdThicknesses,
	}
}

// Table parses the preset's thicknesses into a table expressed in unit.
func (tp ThicknessPreset) Table(unit LengthUnit) (StdThicknessTable, error) {
	return ParseStdThicknesses(tp.StdThicknesses, unit)
}

// ApplyToSettings copies this preset's thicknesses into the given Settings.
func (tp ThicknessPreset) ApplyToSettings(s *Settings) {
	s.StdThicknesses = tp.StdThicknesses
}

// Inventory holds the user's saved thickness presets.
type Inventory struct {
	Presets []ThicknessPreset `json:"presets"`
}

// DefaultInventory returns an inventory populated with common defaults.
func DefaultInventory() Inventory {
	return Inventory{
		Presets: []ThicknessPreset{
			NewThicknessPreset("Solid wood", "Wood", DefaultStdThicknesses),
			NewThicknessPreset("Plywood", "Plywood", "3;4;5;6;8;9;10;12;15;18;21;24;27;30"),
			NewThicknessPreset("MDF", "MDF", "3;6;8;10;12;16;19;22;25;30;38"),
			NewThicknessPreset("Particle board", "Chipboard", "8;10;12;16;19;22;25;28;38"),
			NewThicknessPreset("Imperial plywood", "Plywood", "3.175;6.35;9.525;12.7;15.875;19.05;25.4"),
		},
	}
}

// FindPresetByID returns a pointer to the preset with the given ID, or nil.
func (inv *Inventory) FindPresetByID(id string) *ThicknessPreset {
	for i := range inv.Presets {
		if inv.Presets[i].ID == id {
			return &inv.Presets[i]
		}
	}
	return nil
}

// FindPresetByName returns a pointer to the first preset with the given name, or nil.
func (inv *Inventory) FindPresetByName(name string) *ThicknessPreset {
	for i := range inv.Presets {
		if inv.Presets[i].Name == name {
			return &inv.Presets[i]
		}
	}
	return nil
}

// PresetNames returns the preset names in stored order.
func (inv *Inventory) PresetNames() []string {
	names := make([]string, len(inv.Presets))
	for i, p := range inv.Presets {
		names[i] = p.Name
	}
	return names
}

// Add appends a preset to the inventory.
func (inv *Inventory) Add(p ThicknessPreset) {
	inv.Presets = append(inv.Presets, p)
}

// Remove removes a preset by ID. Returns true if found and removed.
func (inv *Inventory) Remove(id string) bool {
	for i, p := range inv.Presets {
		if p.ID == id {
			inv.Presets = append(inv.Presets[:i], inv.Presets[i+1:]...)
			return true
		}
	}
	return false
}
