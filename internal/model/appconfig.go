package model

// AppConfig holds application-wide preferences and default settings.
type AppConfig struct {
	// Default generation settings applied to every run
	DefaultLengthIncrease             float64 `json:"default_length_increase"`
	DefaultWidthIncrease              float64 `json:"default_width_increase"`
	DefaultThicknessIncrease          float64 `json:"default_thickness_increase"`
	DefaultStdThicknesses             string  `json:"default_std_thicknesses"`
	DefaultPieceNumberLetter          bool    `json:"default_piece_number_letter"`
	DefaultPieceNumberSequenceByGroup bool    `json:"default_piece_number_sequence_by_group"`
	DefaultPreset                     string  `json:"default_preset"` // Thickness preset name, "" = use DefaultStdThicknesses

	// Application preferences
	Language     string   `json:"language"`   // "en", "fr"
	LogLevel     string   `json:"log_level"`  // zap level name
	LogFormat    string   `json:"log_format"` // "json", "console"
	RecentScenes []string `json:"recent_scenes"`
}

// DefaultAppConfig returns an AppConfig populated with sensible defaults
// matching the values from DefaultSettings().
func DefaultAppConfig() AppConfig {
	defaults := DefaultSettings()
	return AppConfig{
		DefaultLengthIncrease:             defaults.LengthIncrease,
		DefaultWidthIncrease:              defaults.WidthIncrease,
		DefaultThicknessIncrease:          defaults.ThicknessIncrease,
		DefaultStdThicknesses:             defaults.StdThicknesses,
		DefaultPieceNumberLetter:          defaults.PieceNumberLetter,
		DefaultPieceNumberSequenceByGroup: defaults.PieceNumberSequenceByGroup,
		DefaultPreset:                     "",
		Language:                          defaults.Language,
		LogLevel:                          "info",
		LogFormat:                         "console",
		RecentScenes:                      []string{},
	}
}

// ApplyToSettings copies the default values from AppConfig into a Settings struct.
// When inv holds the configured default preset, its thicknesses win over
// DefaultStdThicknesses.
func (c AppConfig) ApplyToSettings(s *Settings, inv *Inventory) {
	s.LengthIncrease = c.DefaultLengthIncrease
	s.WidthIncrease = c.DefaultWidthIncrease
	s.ThicknessIncrease = c.DefaultThicknessIncrease
	s.StdThicknesses = c.DefaultStdThicknesses
	s.PieceNumberLetter = c.DefaultPieceNumberLetter
	s.PieceNumberSequenceByGroup = c.DefaultPieceNumberSequenceByGroup
	if c.Language != "" {
		s.Language = c.Language
	}
	if c.DefaultPreset != "" && inv != nil {
		if p := inv.FindPresetByName(c.DefaultPreset); p != nil {
			s.StdThicknesses = p.StdThicknesses
		}
	}
}

// AddRecentScene moves path to the front of the recent list, keeping at most max entries.
func (c *AppConfig) AddRecentScene(path string, max int) {
	recent := []string{path}
	for _, p := range c.RecentScenes {
		if p != path {
			recent = append(recent, p)
		}
	}
	if max > 0 && len(recent) > max {
		recent = recent[:max]
	}
	c.RecentScenes = recent
}
