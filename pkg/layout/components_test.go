package layout

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/classlayout/pkg/diagram"
	errs "github.com/matzehuels/classlayout/pkg/errors"
)

func TestSizeEntity(t *testing.T) {
	cfg := DefaultConfig()
	tests := []struct {
		name   string
		entity diagram.Entity
		want   Size
	}{
		{
			name:   "no members",
			entity: class("Empty"),
			want:   Size{Width: 150, Height: 50},
		},
		{
			name: "generics in header",
			entity: diagram.Entity{
				Name: "Box", Generics: diagram.Ptr("T"),
				Attributes: []diagram.Attribute{{Name: "v", Type: "T"}, {Name: "n", Type: "int"}},
			},
			want: Size{Width: 150, Height: 90},
		},
		{
			name:   "long header",
			entity: diagram.Entity{Name: strings.Repeat("x", 30)},
			want:   Size{Width: 260, Height: 50},
		},
		{
			name:   "wide runes count double",
			entity: diagram.Entity{Name: strings.Repeat("図", 10)},
			want:   Size{Width: 180, Height: 50},
		},
		{
			name: "widest row wins",
			entity: diagram.Entity{
				Name:       "Cfg",
				Attributes: []diagram.Attribute{{Name: "identifier", Type: "map[string]interface{}", Visibility: diagram.Private}},
			},
			want: Size{Width: 308, Height: 70},
		},
		{
			name: "every member kind adds a row",
			entity: diagram.Entity{
				Name:       "M",
				Kind:       diagram.KindModule,
				Attributes: []diagram.Attribute{{Name: "a"}},
				Methods:    []diagram.Method{{Name: "m"}},
				Functions:  []diagram.Function{{Name: "f"}},
				Types:      []diagram.TypeDef{{Name: "T", Definition: "int"}},
				Values:     []diagram.EnumValue{{Name: "ONE"}},
			},
			want: Size{Width: 150, Height: 150},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SizeEntity(tt.entity, cfg))
		})
	}
}

func box(x, y float64) EntityLayout {
	return EntityLayout{Position: Point{X: x, Y: y}, Size: Size{Width: 100, Height: 60}}
}

func TestRoute(t *testing.T) {
	tests := []struct {
		name           string
		source, target EntityLayout
		wantSource     ConnectionPoint
		wantTarget     ConnectionPoint
	}{
		{
			name:       "target to the right",
			source:     box(0, 0),
			target:     box(300, 20),
			wantSource: ConnectionPoint{X: 100, Y: 30, Side: SideRight},
			wantTarget: ConnectionPoint{X: 300, Y: 50, Side: SideLeft},
		},
		{
			name:       "target to the left",
			source:     box(300, 0),
			target:     box(0, 0),
			wantSource: ConnectionPoint{X: 300, Y: 30, Side: SideLeft},
			wantTarget: ConnectionPoint{X: 100, Y: 30, Side: SideRight},
		},
		{
			name:       "target below",
			source:     box(0, 0),
			target:     box(50, 200),
			wantSource: ConnectionPoint{X: 50, Y: 60, Side: SideBottom},
			wantTarget: ConnectionPoint{X: 100, Y: 200, Side: SideTop},
		},
		{
			name:       "target above",
			source:     box(0, 200),
			target:     box(0, 0),
			wantSource: ConnectionPoint{X: 50, Y: 200, Side: SideTop},
			wantTarget: ConnectionPoint{X: 50, Y: 60, Side: SideBottom},
		},
		{
			name:       "diagonal tie is vertical",
			source:     box(0, 0),
			target:     box(100, 100),
			wantSource: ConnectionPoint{X: 50, Y: 60, Side: SideBottom},
			wantTarget: ConnectionPoint{X: 150, Y: 100, Side: SideTop},
		},
		{
			name:       "same box",
			source:     box(10, 10),
			target:     box(10, 10),
			wantSource: ConnectionPoint{X: 60, Y: 10, Side: SideTop},
			wantTarget: ConnectionPoint{X: 60, Y: 70, Side: SideBottom},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, tgt := Route(tt.source, tt.target)
			assert.Equal(t, tt.wantSource, src)
			assert.Equal(t, tt.wantTarget, tgt)
		})
	}
}

func TestControlPoint(t *testing.T) {
	src := ConnectionPoint{X: 0, Y: 0, Side: SideRight}
	tgt := ConnectionPoint{X: 100, Y: 0, Side: SideLeft}

	assert.Equal(t, Point{X: 50, Y: 0}, ControlPoint(src, tgt, 0))
	assert.Equal(t, Point{X: 50, Y: 20}, ControlPoint(src, tgt, 0.2))
	assert.Equal(t, Point{X: 50, Y: -20}, ControlPoint(src, tgt, -0.2))
	assert.Equal(t, Point{X: 0, Y: 0}, ControlPoint(src, src, 0.5))
}

func labeled(id, label string, src, tgt ConnectionPoint) RelationshipLayout {
	r := diagram.Relationship{ID: id, Kind: diagram.Association}
	if label != "" {
		r.Label = diagram.Ptr(label)
	}
	return RelationshipLayout{Relationship: r, Source: src, Target: tgt}
}

func TestComputeLabelPositions_DeOverlap(t *testing.T) {
	src := ConnectionPoint{X: 0, Y: 100, Side: SideRight}
	tgt := ConnectionPoint{X: 200, Y: 100, Side: SideLeft}
	rels := []RelationshipLayout{
		labeled("r1", "owns", src, tgt),
		labeled("r2", "owns", src, tgt),
		labeled("r3", "owns", src, tgt),
	}

	labels, stats := PlaceLabels(rels, DefaultConfig())

	require.Len(t, labels, 3)
	seen := map[Point]bool{}
	for _, l := range labels {
		p := Point{X: l.X, Y: l.Y}
		assert.False(t, seen[p], "duplicate label position %v", p)
		seen[p] = true
	}
	assert.Equal(t, Point{X: 100, Y: 90}, Point{X: labels[0].X, Y: labels[0].Y})
	assert.Zero(t, stats.Overlaps)
	assert.False(t, stats.Skipped)
}

func TestComputeLabelPositions_NoLabelNoEntry(t *testing.T) {
	src := ConnectionPoint{X: 0, Y: 0, Side: SideBottom}
	tgt := ConnectionPoint{X: 0, Y: 200, Side: SideTop}
	rels := []RelationshipLayout{
		labeled("none", "", src, tgt),
		{Relationship: diagram.Relationship{ID: "empty", Label: diagram.Ptr("")}, Source: src, Target: tgt},
		labeled("named", "uses", src, tgt),
	}

	labels := ComputeLabelPositions(rels, DefaultConfig())

	require.Len(t, labels, 1)
	assert.Equal(t, "named", labels[0].RelationshipID)
	assert.Equal(t, 4*DefaultLabelCharWidth, labels[0].Width)
	assert.Equal(t, DefaultLabelHeight, labels[0].Height)
}

func TestComputeLabelPositions_ZeroLengthMovesUp(t *testing.T) {
	p := ConnectionPoint{X: 10, Y: 10, Side: SideTop}
	rels := []RelationshipLayout{labeled("a", "x", p, p), labeled("b", "x", p, p)}

	labels := ComputeLabelPositions(rels, DefaultConfig())

	require.Len(t, labels, 2)
	assert.Equal(t, labels[0].X, labels[1].X)
	assert.Less(t, labels[1].Y, labels[0].Y)
}

func TestPlaceLabels_SkipsAboveLimit(t *testing.T) {
	src := ConnectionPoint{X: 0, Y: 0}
	tgt := ConnectionPoint{X: 100, Y: 0}
	rels := []RelationshipLayout{
		labeled("a", "same", src, tgt),
		labeled("b", "same", src, tgt),
		labeled("c", "same", src, tgt),
	}
	cfg := DefaultConfig()
	cfg.MaxLabels = 2

	labels, stats := PlaceLabels(rels, cfg)

	require.Len(t, labels, 3)
	assert.True(t, stats.Skipped)
	assert.Zero(t, stats.Passes)
	assert.Equal(t, labels[0], LabelPosition{RelationshipID: "a", Text: "same", X: 50, Y: -10, Width: 28, Height: 16})
	assert.Equal(t, labels[0].Y, labels[2].Y)
}

func TestPlaceLabels_BoundedPasses(t *testing.T) {
	// Vertical relationships push labels sideways by less than their width,
	// so resolution needs several passes but never more than the limit.
	src := ConnectionPoint{X: 0, Y: 0}
	tgt := ConnectionPoint{X: 0, Y: 300}
	var rels []RelationshipLayout
	for _, id := range []string{"a", "b", "c", "d", "e", "f"} {
		rels = append(rels, labeled(id, "a rather long label", src, tgt))
	}
	cfg := DefaultConfig()
	cfg.LabelIterations = 3

	_, stats := PlaceLabels(rels, cfg)

	assert.Equal(t, 3, stats.Passes)
	assert.Greater(t, stats.Overlaps, 0)
}

func TestRectOverlaps(t *testing.T) {
	a := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	assert.True(t, a.Overlaps(Rect{X: 5, Y: 5, Width: 10, Height: 10}))
	assert.False(t, a.Overlaps(Rect{X: 10, Y: 0, Width: 10, Height: 10}), "touching edges")
	assert.False(t, a.Overlaps(Rect{X: 0, Y: 20, Width: 10, Height: 10}))
}

func TestConfigValidate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"zero char width", func(c *Config) { c.CharWidth = 0 }},
		{"zero margin", func(c *Config) { c.Margin = 0 }},
		{"negative padding", func(c *Config) { c.Padding = -1 }},
		{"negative passes", func(c *Config) { c.CrossingPasses = -1 }},
		{"no grid columns", func(c *Config) { c.GridColumns = 0 }},
		{"negative max labels", func(c *Config) { c.MaxLabels = -5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, errs.Is(err, errs.ErrCodeInvalidConfig))
		})
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	path := filepath.Join(dir, "layout.toml")
	require.NoError(t, os.WriteFile(path, []byte("margin = 60.0\ngrid_columns = 4\ncurvature = 0.15\n"), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 60.0, cfg.Margin)
	assert.Equal(t, 4, cfg.GridColumns)
	assert.Equal(t, 0.15, cfg.Curvature)
	assert.Equal(t, DefaultMinWidth, cfg.MinWidth)

	_, err = LoadConfig(filepath.Join(dir, "missing.toml"))
	assert.True(t, errs.Is(err, errs.ErrCodeFileNotFound))

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("grid_columns = 0\n"), 0o644))
	_, err = LoadConfig(bad)
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidConfig))

	broken := filepath.Join(dir, "broken.toml")
	require.NoError(t, os.WriteFile(broken, []byte("margin = = 3"), 0o644))
	_, err = LoadConfig(broken)
	assert.True(t, errs.Is(err, errs.ErrCodeInvalidConfig))
}

func TestLayoutOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Margin = 10
	d := diagram.Diagram{Entities: []diagram.Entity{class("a")}}

	l := Layout(d, WithConfig(cfg))
	assert.Equal(t, 10.0, l.Entities[0].Position.X)

	l = Layout(d, WithConfig(cfg), WithCrossingPasses(0), WithLabelIterations(1))
	assert.Equal(t, 10.0, l.Entities[0].Position.X)
}
