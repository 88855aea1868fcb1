// Package engine turns a scene snapshot into a cutlist: it finds the leaf
// parts, normalizes their dimensions and aggregates them into groups and pieces.
package engine

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/piwi3910/cutlist/internal/locale"
	"github.com/piwi3910/cutlist/internal/model"
	"github.com/piwi3910/cutlist/internal/report"
	"github.com/piwi3910/cutlist/internal/scene"
)

// Generator runs the cutlist pipeline with fixed settings.
type Generator struct {
	Settings model.Settings

	logger  *zap.Logger
	metrics *Metrics
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for progress and summary lines.
func WithLogger(l *zap.Logger) Option {
	return func(g *Generator) {
		if l != nil {
			g.logger = l
		}
	}
}

// WithMetrics sets the collectors updated on every generation.
func WithMetrics(m *Metrics) Option {
	return func(g *Generator) {
		g.metrics = m
	}
}

// New creates a Generator for settings. Without options it logs nothing and
// records no metrics.
func New(settings model.Settings, opts ...Option) *Generator {
	g := &Generator{Settings: settings, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate builds the cutlist of snap.
//
// The roots are the selection when Settings.UseSelection is set and the
// selection is not empty, otherwise the active entities. Invalid increases and
// a malformed standard thickness list are errors, detected before any
// traversal; an empty scene still yields a cutlist, carrying an error message.
func (g *Generator) Generate(snap *scene.Snapshot) (*model.Cutlist, error) {
	start := time.Now()

	unit := snap.LengthUnit
	if unit == "" {
		unit = model.UnitMillimeter
	}
	inc := Increases{
		Length:    g.Settings.LengthIncrease,
		Width:     g.Settings.WidthIncrease,
		Thickness: g.Settings.ThicknessIncrease,
	}
	if err := inc.Validate(); err != nil {
		g.fail()
		return nil, err
	}
	table, err := model.ParseStdThicknesses(g.Settings.StdThicknesses, unit)
	if err != nil {
		g.fail()
		return nil, fmt.Errorf("failed to parse standard thicknesses: %w", err)
	}

	roots, useSelection := snap.Roots(g.Settings.UseSelection)
	leaves := scene.Flatten(roots)

	loc := locale.New(g.Settings.Language)
	cutlist := model.NewCutlist(model.StatusSuccess, snap.Path, unit)
	report.Assemble(cutlist, len(leaves), useSelection, loc)

	normalizer := NewNormalizer(inc, table)
	aggregator := NewAggregator(cutlist, loc.Text(locale.UndefinedMaterial))

	unmatched := 0
	for _, leaf := range leaves {
		part := normalizer.Normalize(leaf)
		if !part.Match.Available {
			unmatched++
		}
		g.logger.Debug("leaf part",
			zap.String("instance_id", leaf.ID),
			zap.String("definition", definitionName(part)),
			zap.Float64("length", part.RawSize.Length),
			zap.Float64("width", part.RawSize.Width),
			zap.Float64("thickness", part.RawSize.Thickness),
			zap.Bool("thickness_available", part.Match.Available),
		)
		aggregator.Add(part)
	}

	pieces := 0
	for _, group := range cutlist.Groups() {
		pieces += len(group.Pieces())
	}

	elapsed := time.Since(start)
	g.logger.Info("cutlist generated",
		zap.String("source", cutlist.SourceName),
		zap.Bool("use_selection", useSelection),
		zap.String("std_thicknesses_mm", table.Format(unit)),
		zap.Int("leaf_parts", len(leaves)),
		zap.Int("groups", len(cutlist.Groups())),
		zap.Int("pieces", pieces),
		zap.Int("unmatched_thickness", unmatched),
		zap.Duration("elapsed", elapsed),
	)

	if g.metrics != nil {
		g.metrics.Generations.Inc()
		g.metrics.LeafParts.Add(float64(len(leaves)))
		g.metrics.UnmatchedParts.Add(float64(unmatched))
		g.metrics.Groups.Set(float64(len(cutlist.Groups())))
		g.metrics.Pieces.Set(float64(pieces))
		g.metrics.Duration.Observe(elapsed.Seconds())
	}

	return cutlist, nil
}

func (g *Generator) fail() {
	if g.metrics != nil {
		g.metrics.Failures.Inc()
	}
}
