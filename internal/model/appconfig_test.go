package model

import "testing"

func TestDefaultAppConfigMatchesDefaultSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	defaults := DefaultSettings()

	if cfg.DefaultStdThicknesses != defaults.StdThicknesses {
		t.Errorf("StdThicknesses mismatch: config=%s settings=%s", cfg.DefaultStdThicknesses, defaults.StdThicknesses)
	}
	if cfg.DefaultPieceNumberLetter != defaults.PieceNumberLetter {
		t.Errorf("PieceNumberLetter mismatch: config=%v settings=%v", cfg.DefaultPieceNumberLetter, defaults.PieceNumberLetter)
	}
	if cfg.Language != defaults.Language {
		t.Errorf("Language mismatch: config=%s settings=%s", cfg.Language, defaults.Language)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level=info, got %s", cfg.LogLevel)
	}
	if cfg.RecentScenes == nil {
		t.Error("RecentScenes should not be nil")
	}
}

func TestApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultLengthIncrease = 10
	cfg.DefaultThicknessIncrease = 1
	cfg.DefaultStdThicknesses = "6;12"
	cfg.DefaultPieceNumberSequenceByGroup = true
	cfg.Language = "fr"

	s := DefaultSettings()
	cfg.ApplyToSettings(&s, nil)

	if s.LengthIncrease != 10 {
		t.Errorf("expected LengthIncrease=10, got %f", s.LengthIncrease)
	}
	if s.ThicknessIncrease != 1 {
		t.Errorf("expected ThicknessIncrease=1, got %f", s.ThicknessIncrease)
	}
	if s.StdThicknesses != "6;12" {
		t.Errorf("expected StdThicknesses=6;12, got %s", s.StdThicknesses)
	}
	if !s.PieceNumberSequenceByGroup {
		t.Error("expected PieceNumberSequenceByGroup=true")
	}
	if s.Language != "fr" {
		t.Errorf("expected Language=fr, got %s", s.Language)
	}
}

func TestApplyToSettingsUsesDefaultPreset(t *testing.T) {
	inv := DefaultInventory()
	cfg := DefaultAppConfig()
	cfg.DefaultPreset = "MDF"

	s := DefaultSettings()
	cfg.ApplyToSettings(&s, &inv)

	if s.StdThicknesses != inv.FindPresetByName("MDF").StdThicknesses {
		t.Errorf("expected MDF preset thicknesses, got %s", s.StdThicknesses)
	}
}

func TestApplyToSettingsUnknownPresetKeepsDefault(t *testing.T) {
	inv := DefaultInventory()
	cfg := DefaultAppConfig()
	cfg.DefaultPreset = "Unobtainium"

	s := DefaultSettings()
	cfg.ApplyToSettings(&s, &inv)

	if s.StdThicknesses != cfg.DefaultStdThicknesses {
		t.Errorf("expected fallback to %s, got %s", cfg.DefaultStdThicknesses, s.StdThicknesses)
	}
}

func TestAddRecentScene(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.AddRecentScene("a.json", 3)
	cfg.AddRecentScene("b.json", 3)
	cfg.AddRecentScene("a.json", 3)
	cfg.AddRecentScene("c.json", 3)
	cfg.AddRecentScene("d.json", 3)

	want := []string{"d.json", "c.json", "a.json"}
	if len(cfg.RecentScenes) != len(want) {
		t.Fatalf("expected %d recent scenes, got %d", len(want), len(cfg.RecentScenes))
	}
	for i, w := range want {
		if cfg.RecentScenes[i] != w {
			t.Errorf("recent[%d]: expected %s, got %s", i, w, cfg.RecentScenes[i])
		}
	}
}
