// Cutlist generates a cutting list from a 3D scene file.
//
// It reads a scene document (JSON or YAML), a part listing (CSV or Excel)
// or a DXF mesh, groups every leaf part by material and standard thickness,
// and writes the numbered report as JSON. The report can also be rendered as
// a PDF cutlist, QR-coded labels and an Excel workbook.
//
// Build:
//
//	go build -o cutlist ./cmd/cutlist
//
// Usage:
//
//	cutlist -scene kitchen.yaml -length-increase 10 -pdf kitchen.pdf
//	cutlist -import-presets shop.json -export-backup backup.json
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/piwi3910/cutlist/internal/engine"
	"github.com/piwi3910/cutlist/internal/export"
	"github.com/piwi3910/cutlist/internal/importer"
	"github.com/piwi3910/cutlist/internal/locale"
	"github.com/piwi3910/cutlist/internal/model"
	"github.com/piwi3910/cutlist/internal/project"
	"github.com/piwi3910/cutlist/internal/report"
)

// maxRecentScenes bounds the recent scene list kept in the config.
const maxRecentScenes = 10

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, "cutlist:", err)
		os.Exit(1)
	}
}

type options struct {
	scene        string
	unit         string
	wholeScene   bool
	configPath   string
	presetsPath  string
	preset       string
	lengthInc    float64
	widthInc     float64
	thicknessInc float64
	thicknesses  string
	letters      bool
	byGroup      bool
	lang         string
	logLevel     string
	output       string
	pdf          string
	labels       string
	xlsx         string
	metricsFile  string

	importBackup  string
	importPresets string
	removePreset  string
	exportBackup  string

	set map[string]bool // flags given on the command line
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	o := &options{set: map[string]bool{}}
	fs := flag.NewFlagSet("cutlist", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&o.scene, "scene", "", "scene file: .json, .yaml, .csv, .xlsx or .dxf (required)")
	fs.StringVar(&o.unit, "unit", "mm", "length unit of CSV, Excel and DXF files")
	fs.BoolVar(&o.wholeScene, "whole-scene", false, "list the whole active scene even when the document has a selection")
	fs.StringVar(&o.configPath, "config", project.DefaultConfigPath(), "application config file")
	fs.StringVar(&o.presetsPath, "presets", project.DefaultPresetsPath(), "thickness presets file")
	fs.StringVar(&o.preset, "preset", "", "thickness preset name (overrides the configured thicknesses)")
	fs.Float64Var(&o.lengthInc, "length-increase", 0, "allowance added to every part length")
	fs.Float64Var(&o.widthInc, "width-increase", 0, "allowance added to every part width")
	fs.Float64Var(&o.thicknessInc, "thickness-increase", 0, "allowance added to every part thickness before snapping")
	fs.StringVar(&o.thicknesses, "std-thicknesses", "", `standard thicknesses in millimeters, e.g. "6;12;18"`)
	fs.BoolVar(&o.letters, "letters", true, "number pieces with letters instead of digits")
	fs.BoolVar(&o.byGroup, "by-group", false, "restart piece numbering in every group")
	fs.StringVar(&o.lang, "lang", "", "message language: "+strings.Join(locale.Languages(), ", "))
	fs.StringVar(&o.logLevel, "log-level", "", "log level (overrides the config)")
	fs.StringVar(&o.output, "o", "", "report JSON file (default: stdout)")
	fs.StringVar(&o.pdf, "pdf", "", "write a PDF cutlist")
	fs.StringVar(&o.labels, "labels", "", "write a PDF of QR-coded piece labels")
	fs.StringVar(&o.xlsx, "xlsx", "", "write an Excel workbook")
	fs.StringVar(&o.metricsFile, "metrics-file", "", "write Prometheus metrics in text format")
	fs.StringVar(&o.importBackup, "import-backup", "", "replace the config and presets with a backup file")
	fs.StringVar(&o.importPresets, "import-presets", "", "merge thickness presets from a JSON file")
	fs.StringVar(&o.removePreset, "remove-preset", "", "delete the thickness preset with this name")
	fs.StringVar(&o.exportBackup, "export-backup", "", "write the config and presets to a backup file")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	fs.Visit(func(f *flag.Flag) { o.set[f.Name] = true })

	if o.scene == "" && !o.managesData() {
		fs.Usage()
		return nil, fmt.Errorf("-scene is required")
	}
	return o, nil
}

// managesData reports whether any config or preset maintenance was requested.
func (o *options) managesData() bool {
	return o.importBackup != "" || o.importPresets != "" || o.removePreset != "" || o.exportBackup != ""
}

// newLogger builds a zap logger writing to w in the configured format.
func newLogger(level, format string, w io.Writer) (*zap.Logger, error) {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	var enc zapcore.Encoder
	if format == "json" {
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
		enc = zapcore.NewConsoleEncoder(encCfg)
	}
	return zap.New(zapcore.NewCore(enc, zapcore.AddSync(w), lvl)), nil
}

// settingsFor seeds generation settings from the config and presets, then
// applies the command line overrides.
func settingsFor(o *options, cfg model.AppConfig, inv *model.Inventory) (model.Settings, error) {
	s := model.DefaultSettings()
	cfg.ApplyToSettings(&s, inv)

	if o.preset != "" {
		p := inv.FindPresetByName(o.preset)
		if p == nil {
			return s, fmt.Errorf("unknown preset %q (available: %s)", o.preset, strings.Join(inv.PresetNames(), ", "))
		}
		p.ApplyToSettings(&s)
	}
	if o.set["length-increase"] {
		s.LengthIncrease = o.lengthInc
	}
	if o.set["width-increase"] {
		s.WidthIncrease = o.widthInc
	}
	if o.set["thickness-increase"] {
		s.ThicknessIncrease = o.thicknessInc
	}
	if o.set["std-thicknesses"] {
		s.StdThicknesses = o.thicknesses
	}
	if o.set["letters"] {
		s.PieceNumberLetter = o.letters
	}
	if o.set["by-group"] {
		s.PieceNumberSequenceByGroup = o.byGroup
	}
	if o.lang != "" {
		s.Language = o.lang
	}
	if o.wholeScene {
		s.UseSelection = false
	}
	return s, nil
}

// manageData applies backup and preset maintenance to cfg and inv, persisting
// any change, then writes the requested backup.
func manageData(o *options, cfg *model.AppConfig, inv *model.Inventory, logger *zap.Logger) error {
	if o.importBackup != "" {
		backup, err := project.ImportAllData(o.importBackup)
		if err != nil {
			return err
		}
		*cfg, *inv = backup.Config, backup.Presets
		if err := project.SaveAppConfig(o.configPath, *cfg); err != nil {
			return err
		}
		logger.Info("imported backup",
			zap.String("path", o.importBackup),
			zap.String("created_at", backup.CreatedAt),
			zap.Int("presets", len(inv.Presets)),
		)
	}
	if o.importPresets != "" {
		merged, err := project.ImportPresets(o.importPresets, *inv)
		if err != nil {
			return err
		}
		logger.Info("imported presets",
			zap.String("path", o.importPresets),
			zap.Int("added", len(merged.Presets)-len(inv.Presets)),
		)
		*inv = merged
	}
	if o.removePreset != "" {
		p := inv.FindPresetByName(o.removePreset)
		if p == nil {
			return fmt.Errorf("unknown preset %q (available: %s)", o.removePreset, strings.Join(inv.PresetNames(), ", "))
		}
		inv.Remove(p.ID)
		logger.Info("removed preset", zap.String("name", o.removePreset))
	}
	if o.importBackup != "" || o.importPresets != "" || o.removePreset != "" {
		if err := project.SavePresets(o.presetsPath, *inv); err != nil {
			return err
		}
	}
	if o.exportBackup != "" {
		if err := project.ExportAllData(o.exportBackup, *cfg, *inv); err != nil {
			return err
		}
		logger.Info("wrote backup", zap.String("path", o.exportBackup))
	}
	return nil
}

func run(args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	cfg, err := project.LoadAppConfig(o.configPath)
	if err != nil {
		return err
	}
	level := cfg.LogLevel
	if o.logLevel != "" {
		level = o.logLevel
	}
	logger, err := newLogger(level, cfg.LogFormat, stderr)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	inv, err := project.LoadPresets(o.presetsPath)
	if err != nil {
		return err
	}
	if err := manageData(o, &cfg, &inv, logger); err != nil {
		return err
	}
	if o.scene == "" {
		return nil
	}
	settings, err := settingsFor(o, cfg, &inv)
	if err != nil {
		return err
	}

	unit, err := model.ParseLengthUnit(o.unit)
	if err != nil {
		return err
	}
	imported, err := importer.Import(o.scene, unit)
	if err != nil {
		return err
	}
	for _, w := range imported.Warnings {
		logger.Warn("import warning", zap.String("scene", o.scene), zap.String("detail", w))
	}
	for _, e := range imported.Errors {
		logger.Error("import error", zap.String("scene", o.scene), zap.String("detail", e))
	}

	registry := prometheus.NewRegistry()
	gen := engine.New(settings,
		engine.WithLogger(logger.Named("engine")),
		engine.WithMetrics(engine.NewMetrics(registry)),
	)
	cutlist, err := gen.Generate(imported.Snapshot)
	if err != nil {
		return err
	}
	rep := report.Serialize(cutlist, report.NumberingFromSettings(settings))

	if err := writeReport(o.output, stdout, rep); err != nil {
		return err
	}

	loc := locale.New(settings.Language)
	if o.pdf != "" {
		if err := export.ExportPDF(o.pdf, rep, loc); err != nil {
			return fmt.Errorf("failed to export PDF: %w", err)
		}
		logger.Info("wrote cutlist PDF", zap.String("path", o.pdf))
	}
	if o.labels != "" {
		if err := export.ExportLabels(o.labels, rep); err != nil {
			return fmt.Errorf("failed to export labels: %w", err)
		}
		logger.Info("wrote labels PDF", zap.String("path", o.labels))
	}
	if o.xlsx != "" {
		if err := export.ExportXLSX(o.xlsx, rep, loc); err != nil {
			return fmt.Errorf("failed to export workbook: %w", err)
		}
		logger.Info("wrote workbook", zap.String("path", o.xlsx))
	}
	if o.metricsFile != "" {
		if err := prometheus.WriteToTextfile(o.metricsFile, registry); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	cfg.AddRecentScene(o.scene, maxRecentScenes)
	if err := project.SaveAppConfig(o.configPath, cfg); err != nil {
		logger.Warn("could not update recent scenes", zap.Error(err))
	}
	return nil
}

func writeReport(path string, stdout io.Writer, rep report.Report) error {
	if path == "" {
		return report.WriteJSON(stdout, rep)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report: %w", err)
	}
	if err := report.WriteJSON(f, rep); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
