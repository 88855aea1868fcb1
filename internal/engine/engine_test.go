package engine

import (
	"errors"
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/piwi3910/cutlist/internal/model"
	"github.com/piwi3910/cutlist/internal/scene"
)

// boxDefinition returns a definition whose six faces span l x w x t.
func boxDefinition(name string, l, w, t float64) *scene.Definition {
	return &scene.Definition{Name: name, Faces: scene.BoxFaces(l, w, t)}
}

func placed(id string, def *scene.Definition, material string) *scene.Instance {
	inst := &scene.Instance{
		Attributes: scene.Attributes{InstanceID: id},
		Bounds:     FacesExtent(def),
		Definition: def,
	}
	if material != "" {
		inst.Material = &scene.Material{Name: material}
	}
	return inst
}

func leafOf(inst *scene.Instance) scene.Leaf {
	return scene.Leaf{Instance: inst, ID: inst.InstanceID}
}

func testSettings() model.Settings {
	s := model.DefaultSettings()
	s.StdThicknesses = "3;6;12;18"
	s.PieceNumberLetter = false
	return s
}

// ─── Dimension normalizer ──────────────────────────────────

func TestFacesExtent_IgnoresEdgesAndNestedEntities(t *testing.T) {
	def := boxDefinition("Panel", 600, 400, 18)
	def.Edges = []scene.Edge{{Start: model.Point3D{}, End: model.Point3D{X: 5000}}}
	def.Entities = []scene.Node{placed("big", boxDefinition("Big", 3000, 3000, 3000), "")}

	e := FacesExtent(def)
	assert.Equal(t, model.Extent3D{Width: 600, Height: 400, Depth: 18}, e)
}

func TestFacesExtent_EmptyDefinition(t *testing.T) {
	assert.Equal(t, model.Extent3D{}, FacesExtent(&scene.Definition{Name: "Empty"}))
	assert.Equal(t, model.Extent3D{}, FacesExtent(nil))
}

func TestApplyIncreaseAndSnap(t *testing.T) {
	table, err := model.ParseStdThicknesses("3;6;12;18", model.UnitMillimeter)
	require.NoError(t, err)

	size := model.Size{Length: 600, Width: 400, Thickness: 4}
	raw, match := ApplyIncreaseAndSnap(size, Increases{Length: 10, Width: 5, Thickness: 1}, table)

	assert.True(t, match.Available)
	assert.Equal(t, 6.0, match.Value)
	assert.Equal(t, model.Size{Length: 610, Width: 405, Thickness: 6}, raw)
}

func TestApplyIncreaseAndSnap_NoMatchPassesThrough(t *testing.T) {
	table, err := model.ParseStdThicknesses("3;6;12;18", model.UnitMillimeter)
	require.NoError(t, err)

	raw, match := ApplyIncreaseAndSnap(model.Size{Length: 100, Width: 50, Thickness: 20}, Increases{}, table)

	assert.False(t, match.Available)
	assert.Equal(t, 20.0, match.Value)
	assert.Equal(t, 20.0, raw.Thickness)
	assert.Equal(t, 100.0, raw.Length)
}

func TestNormalizer_UsesDefinitionFacesNotInstanceBounds(t *testing.T) {
	def := boxDefinition("Panel", 600, 400, 17)
	inst := placed("p", def, "")
	inst.Bounds = model.Extent3D{Width: 1, Height: 1, Depth: 1}

	table, _ := model.ParseStdThicknesses("18", model.UnitMillimeter)
	part := NewNormalizer(Increases{}, table).Normalize(leafOf(inst))

	assert.Equal(t, model.Size{Length: 600, Width: 400, Thickness: 17}, part.Size)
	assert.Equal(t, model.Size{Length: 600, Width: 400, Thickness: 18}, part.RawSize)
	assert.Same(t, inst, part.Leaf.Instance)
}

// ─── Aggregator ────────────────────────────────────────────

func TestAggregate_SameMaterialAndThicknessShareGroup(t *testing.T) {
	table, _ := model.ParseStdThicknesses("18", model.UnitMillimeter)
	n := NewNormalizer(Increases{}, table)
	c := model.NewCutlist(model.StatusSuccess, "", model.UnitMillimeter)

	Aggregate(c, []NormalizedPart{
		n.Normalize(leafOf(placed("a", boxDefinition("Side", 700, 500, 18), "Oak"))),
		n.Normalize(leafOf(placed("b", boxDefinition("Shelf", 500, 480, 16), "Oak"))),
	}, "[none]")

	require.Len(t, c.Groups(), 1)
	g := c.Groups()[0]
	assert.Equal(t, 2, g.PieceCount)
	require.Len(t, g.Pieces(), 2)
	assert.Equal(t, "Side", g.Pieces()[0].Name)
	assert.Equal(t, "Shelf", g.Pieces()[1].Name)
}

func TestAggregate_SameDefinitionSharesPiece(t *testing.T) {
	table, _ := model.ParseStdThicknesses("18", model.UnitMillimeter)
	n := NewNormalizer(Increases{}, table)
	c := model.NewCutlist(model.StatusSuccess, "", model.UnitMillimeter)
	side := boxDefinition("Side", 700, 500, 18)

	Aggregate(c, []NormalizedPart{
		n.Normalize(leafOf(placed("a", side, "Oak"))),
		n.Normalize(leafOf(placed("b", side, "Oak"))),
		n.Normalize(leafOf(placed("c", side, "Oak"))),
	}, "[none]")

	require.Len(t, c.Groups(), 1)
	require.Len(t, c.Groups()[0].Pieces(), 1)
	p := c.Groups()[0].Pieces()[0]
	assert.Equal(t, 3, p.Count)
	assert.Equal(t, []string{"a", "b", "c"}, p.InstanceIDs)
}

func TestAggregate_MissingMaterialUsesSentinel(t *testing.T) {
	table, _ := model.ParseStdThicknesses("18", model.UnitMillimeter)
	n := NewNormalizer(Increases{}, table)
	c := model.NewCutlist(model.StatusSuccess, "", model.UnitMillimeter)

	Aggregate(c, []NormalizedPart{
		n.Normalize(leafOf(placed("a", boxDefinition("Side", 700, 500, 18), ""))),
		n.Normalize(leafOf(placed("b", boxDefinition("Side", 700, 500, 18), "[none]"))),
	}, "[none]")

	require.Len(t, c.Groups(), 2)
	assert.Equal(t, "[none]", c.Groups()[0].MaterialName)
	assert.False(t, c.Groups()[0].MaterialAssigned)
	assert.True(t, c.Groups()[1].MaterialAssigned)
}

func TestAggregate_DifferentThicknessesSplitGroups(t *testing.T) {
	table, _ := model.ParseStdThicknesses("6;18", model.UnitMillimeter)
	n := NewNormalizer(Increases{}, table)
	c := model.NewCutlist(model.StatusSuccess, "", model.UnitMillimeter)

	Aggregate(c, []NormalizedPart{
		n.Normalize(leafOf(placed("a", boxDefinition("Side", 700, 500, 18), "Oak"))),
		n.Normalize(leafOf(placed("b", boxDefinition("Back", 700, 500, 5), "Oak"))),
		n.Normalize(leafOf(placed("c", boxDefinition("Top", 700, 500, 17), "Oak"))),
	}, "[none]")

	require.Len(t, c.Groups(), 2)
	assert.Equal(t, 18.0, c.Groups()[0].RawThickness)
	assert.Equal(t, 2, c.Groups()[0].PieceCount)
	assert.Equal(t, 6.0, c.Groups()[1].RawThickness)
}

func TestAggregate_FirstWriterFixesGroupFields(t *testing.T) {
	c := model.NewCutlist(model.StatusSuccess, "", model.UnitMillimeter)
	a := NewAggregator(c, "[none]")
	def := boxDefinition("Side", 700, 500, 20)

	a.Add(NormalizedPart{
		Leaf:    leafOf(placed("a", def, "Oak")),
		RawSize: model.Size{Length: 700, Width: 500, Thickness: 20},
		Match:   model.ThicknessMatch{Available: false, Value: 20},
	})
	a.Add(NormalizedPart{
		Leaf:    leafOf(placed("b", def, "Oak")),
		RawSize: model.Size{Length: 700, Width: 500, Thickness: 20},
		Match:   model.ThicknessMatch{Available: true, Value: 20},
	})

	require.Len(t, c.Groups(), 1)
	assert.False(t, c.Groups()[0].RawThicknessAvailable)
}

// ─── Generator ─────────────────────────────────────────────

func cabinetSnapshot() *scene.Snapshot {
	side := boxDefinition("Side", 700, 500, 18)
	shelf := boxDefinition("Shelf", 500, 480, 16)
	back := boxDefinition("Back", 700, 536, 5)
	cabinetDef := &scene.Definition{
		Name: "Cabinet",
		Entities: []scene.Node{
			placed("side-l", side, "Oak"),
			placed("side-r", side, "Oak"),
			placed("shelf-1", shelf, "Oak"),
			placed("shelf-2", shelf, "Oak"),
			placed("back", back, ""),
		},
	}
	cabinet := &scene.Instance{
		Attributes: scene.Attributes{InstanceID: "cabinet"},
		Bounds:     model.Extent3D{Width: 700, Height: 536, Depth: 500},
		Definition: cabinetDef,
	}
	loose := placed("loose", boxDefinition("Plinth", 536, 100, 25), "Oak")
	return &scene.Snapshot{
		Path:       "/projects/kitchen.json",
		LengthUnit: model.UnitMillimeter,
		Active:     []scene.Node{&scene.Group{Children: []scene.Node{cabinet}}, loose},
		Selection:  []scene.Node{loose},
	}
}

func TestGenerate_WholeScene(t *testing.T) {
	s := testSettings()
	s.UseSelection = false

	c, err := New(s).Generate(cabinetSnapshot())
	require.NoError(t, err)

	assert.Equal(t, "kitchen.json", c.SourceName)
	assert.Equal(t, "mm", c.LengthUnit)
	assert.Empty(t, c.Errors)
	require.Len(t, c.Groups(), 3)

	oak18 := c.Groups()[0]
	assert.Equal(t, "Oak", oak18.MaterialName)
	assert.Equal(t, 18.0, oak18.RawThickness)
	assert.Equal(t, 4, oak18.PieceCount)
	require.Len(t, oak18.Pieces(), 2)
	assert.Equal(t, 2, oak18.Pieces()[0].Count)
	assert.Equal(t, 2, oak18.Pieces()[1].Count)

	back := c.Groups()[1]
	assert.Equal(t, "[Undefined material]", back.MaterialName)
	assert.Equal(t, 6.0, back.RawThickness)

	plinth := c.Groups()[2]
	assert.Equal(t, 25.0, plinth.RawThickness)
	assert.False(t, plinth.RawThicknessAvailable)
	assert.Equal(t, 6, c.TotalPieceCount())
}

func TestGenerate_SelectionOnly(t *testing.T) {
	c, err := New(testSettings()).Generate(cabinetSnapshot())
	require.NoError(t, err)

	require.Len(t, c.Groups(), 1)
	assert.Equal(t, 1, c.TotalPieceCount())
	assert.Equal(t, "Plinth", c.Groups()[0].Pieces()[0].Name)
}

func TestGenerate_SharedDefinitionPlacedTwiceKeepsIDsUnique(t *testing.T) {
	cabinetDef := &scene.Definition{
		Name:     "Cabinet",
		Entities: []scene.Node{placed("door", boxDefinition("Door", 700, 400, 18), "Oak")},
	}
	cabinet := func(id string) *scene.Instance {
		return &scene.Instance{
			Attributes: scene.Attributes{InstanceID: id},
			Bounds:     model.Extent3D{Width: 700, Height: 400, Depth: 500},
			Definition: cabinetDef,
		}
	}
	snap := &scene.Snapshot{
		LengthUnit: model.UnitMillimeter,
		Active:     []scene.Node{cabinet("cab1"), cabinet("cab2")},
	}

	c, err := New(testSettings()).Generate(snap)
	require.NoError(t, err)

	require.Len(t, c.Groups(), 1)
	require.Len(t, c.Groups()[0].Pieces(), 1)
	door := c.Groups()[0].Pieces()[0]
	assert.Equal(t, 2, door.Count)
	assert.Equal(t, []string{"cab1/door", "cab2/door"}, door.InstanceIDs)
}

func TestGenerate_AppliesIncreases(t *testing.T) {
	s := testSettings()
	s.UseSelection = false
	s.LengthIncrease = 10
	s.WidthIncrease = 5
	s.ThicknessIncrease = 1

	c, err := New(s).Generate(cabinetSnapshot())
	require.NoError(t, err)

	side := c.Groups()[0].Pieces()[0]
	assert.Equal(t, model.Size{Length: 700, Width: 500, Thickness: 18}, side.Size)
	assert.Equal(t, model.Size{Length: 710, Width: 505, Thickness: 19}, side.RawSize)
}

func TestGenerate_EmptySelectionMessage(t *testing.T) {
	hidden := placed("h", boxDefinition("Side", 10, 10, 10), "")
	hidden.Hidden = true
	snap := &scene.Snapshot{
		Active:    []scene.Node{placed("a", boxDefinition("Side", 10, 10, 10), "")},
		Selection: []scene.Node{hidden},
	}

	c, err := New(testSettings()).Generate(snap)
	require.NoError(t, err)

	require.Len(t, c.Errors, 1)
	assert.Contains(t, c.Errors[0], "selection")
	assert.Empty(t, c.Groups())
	assert.Equal(t, model.StatusSuccess, c.Status)
}

func TestGenerate_EmptySceneMessage(t *testing.T) {
	c, err := New(testSettings()).Generate(&scene.Snapshot{})
	require.NoError(t, err)

	require.Len(t, c.Errors, 1)
	assert.Contains(t, c.Errors[0], "scene")
	assert.Equal(t, "mm", c.LengthUnit)
}

func TestGenerate_FrenchMessages(t *testing.T) {
	s := testSettings()
	s.Language = "fr"

	c, err := New(s).Generate(&scene.Snapshot{})
	require.NoError(t, err)
	require.Len(t, c.Errors, 1)
	assert.Contains(t, c.Errors[0], "scène")
}

func TestGenerate_InvalidStdThicknessesFailsFast(t *testing.T) {
	s := testSettings()
	s.StdThicknesses = "6;twelve"

	c, err := New(s).Generate(cabinetSnapshot())
	assert.Nil(t, c)
	assert.True(t, errors.Is(err, model.ErrInvalidThickness))
}

func TestGenerate_RejectsInvalidIncreases(t *testing.T) {
	tests := []struct {
		name   string
		adjust func(*model.Settings)
	}{
		{"negative length", func(s *model.Settings) { s.LengthIncrease = -1 }},
		{"negative width", func(s *model.Settings) { s.WidthIncrease = -600 }},
		{"nan thickness", func(s *model.Settings) { s.ThicknessIncrease = math.NaN() }},
		{"infinite length", func(s *model.Settings) { s.LengthIncrease = math.Inf(1) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := testSettings()
			tt.adjust(&s)
			reg := prometheus.NewRegistry()
			m := NewMetrics(reg)

			c, err := New(s, WithMetrics(m)).Generate(cabinetSnapshot())
			assert.Nil(t, c)
			assert.ErrorIs(t, err, ErrInvalidIncrease)
			assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures))
		})
	}
}

func TestIncreasesValidate(t *testing.T) {
	assert.NoError(t, Increases{}.Validate())
	assert.NoError(t, Increases{Length: 10, Width: 5, Thickness: 1}.Validate())
	assert.ErrorIs(t, Increases{Width: -0.5}.Validate(), ErrInvalidIncrease)
}

func TestGenerate_Idempotent(t *testing.T) {
	s := testSettings()
	s.UseSelection = false
	snap := cabinetSnapshot()
	g := New(s)

	first, err := g.Generate(snap)
	require.NoError(t, err)
	second, err := g.Generate(snap)
	require.NoError(t, err)

	require.Equal(t, len(first.Groups()), len(second.Groups()))
	for i := range first.Groups() {
		a, b := first.Groups()[i], second.Groups()[i]
		assert.Equal(t, a.Key(), b.Key())
		assert.Equal(t, a.PieceCount, b.PieceCount)
		require.Equal(t, len(a.Pieces()), len(b.Pieces()))
		for j := range a.Pieces() {
			assert.Equal(t, *a.Pieces()[j], *b.Pieces()[j])
		}
	}
}

func TestGenerate_InchScene(t *testing.T) {
	snap := &scene.Snapshot{
		LengthUnit: model.UnitInch,
		Active:     []scene.Node{placed("a", boxDefinition("Shelf", 24, 12, 0.7), "Pine")},
	}
	s := testSettings()
	s.StdThicknesses = "19.05;25.4" // 3/4" and 1"

	c, err := New(s).Generate(snap)
	require.NoError(t, err)
	require.Len(t, c.Groups(), 1)
	assert.Equal(t, 0.75, c.Groups()[0].RawThickness)
	assert.True(t, c.Groups()[0].RawThicknessAvailable)
	assert.Equal(t, "in", c.LengthUnit)
}

func TestGenerate_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	s := testSettings()
	s.UseSelection = false
	g := New(s, WithMetrics(m))

	_, err := g.Generate(cabinetSnapshot())
	require.NoError(t, err)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.Generations))
	assert.Equal(t, 6.0, testutil.ToFloat64(m.LeafParts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.UnmatchedParts))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.Groups))
	assert.Equal(t, 4.0, testutil.ToFloat64(m.Pieces))

	g.Settings.StdThicknesses = "bad"
	_, err = g.Generate(cabinetSnapshot())
	require.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Failures))
}

func TestGenerate_Logging(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	s := testSettings()
	s.UseSelection = false

	_, err := New(s, WithLogger(zap.New(core))).Generate(cabinetSnapshot())
	require.NoError(t, err)

	assert.Equal(t, 6, logs.FilterMessage("leaf part").Len())
	summary := logs.FilterMessage("cutlist generated").All()
	require.Len(t, summary, 1)
	assert.Equal(t, int64(3), summary[0].ContextMap()["groups"])
	assert.Equal(t, "3;6;12;18", summary[0].ContextMap()["std_thicknesses_mm"])
}
