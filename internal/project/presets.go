package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/cutlist/internal/model"
)

// DefaultPresetsPath returns the default path of the thickness presets file,
// ~/.cutlist/presets.json.
func DefaultPresetsPath() string {
	return filepath.Join(DefaultConfigDir(), "presets.json")
}

// SavePresets writes the preset inventory to the specified JSON file.
// It creates parent directories if they do not exist.
func SavePresets(path string, inv model.Inventory) error {
	return writeJSON(path, inv)
}

// LoadPresets reads the preset inventory from the specified JSON file.
// If the file does not exist, it returns the default inventory and saves it.
func LoadPresets(path string) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			inv := model.DefaultInventory()
			if saveErr := SavePresets(path, inv); saveErr != nil {
				return inv, saveErr
			}
			return inv, nil
		}
		return model.Inventory{}, fmt.Errorf("failed to read presets: %w", err)
	}
	var inv model.Inventory
	if err := json.Unmarshal(data, &inv); err != nil {
		return model.Inventory{}, fmt.Errorf("failed to parse presets %s: %w", path, err)
	}
	if err := validatePresets(inv); err != nil {
		return model.Inventory{}, fmt.Errorf("%s: %w", path, err)
	}
	return inv, nil
}

// validatePresets checks that every preset's thickness list parses.
func validatePresets(inv model.Inventory) error {
	for _, p := range inv.Presets {
		if _, err := p.Table(model.UnitMillimeter); err != nil {
			return fmt.Errorf("preset %q: %w", p.Name, err)
		}
	}
	return nil
}

// ImportPresets imports presets from a user-specified JSON file, merging them
// into the existing inventory. Presets whose ID already exists are skipped.
func ImportPresets(path string, existing model.Inventory) (model.Inventory, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return existing, fmt.Errorf("failed to read presets: %w", err)
	}
	var imported model.Inventory
	if err := json.Unmarshal(data, &imported); err != nil {
		return existing, fmt.Errorf("failed to parse presets %s: %w", path, err)
	}
	if err := validatePresets(imported); err != nil {
		return existing, fmt.Errorf("%s: %w", path, err)
	}
	return mergePresets(existing, imported), nil
}

func mergePresets(existing, imported model.Inventory) model.Inventory {
	merged := model.Inventory{Presets: append([]model.ThicknessPreset{}, existing.Presets...)}
	for _, p := range imported.Presets {
		if merged.FindPresetByID(p.ID) == nil {
			merged.Add(p)
		}
	}
	return merged
}
