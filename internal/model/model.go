package model

// Settings holds the parameters of one cutlist generation.
type Settings struct {
	// Dimension policy, in the host length unit
	LengthIncrease    float64 `json:"length_increase"`
	WidthIncrease     float64 `json:"width_increase"`
	ThicknessIncrease float64 `json:"thickness_increase"`
	StdThicknesses    string  `json:"std_thicknesses"` // ";"-separated millimeter values

	// Report options
	PieceNumberLetter          bool   `json:"piece_number_letter"`            // Letters instead of digits
	PieceNumberSequenceByGroup bool   `json:"piece_number_sequence_by_group"` // Restart numbering in every group
	Language                   string `json:"language"`                       // "en" or "fr"

	// Scene roots
	UseSelection bool `json:"use_selection"` // Prefer the selection over the active entities when non-empty
}

// DefaultStdThicknesses lists common sheet and board thicknesses in millimeters.
const DefaultStdThicknesses = "18;27;35;45;64;80;100"

// DefaultSettings returns the settings of a run with no config: no increases,
// the default thickness table, running letter numbering, and the selection
// preferred when it is not empty.
func DefaultSettings() Settings {
	return Settings{
		LengthIncrease:             0,
		WidthIncrease:              0,
		ThicknessIncrease:          0,
		StdThicknesses:             DefaultStdThicknesses,
		PieceNumberLetter:          true,
		PieceNumberSequenceByGroup: false,
		Language:                   "en",
		UseSelection:               true,
	}
}
