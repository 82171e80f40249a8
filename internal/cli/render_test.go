package cli

import (
	"strings"
	"testing"

	"github.com/matzehuels/classlayout/pkg/layout"
	"github.com/matzehuels/classlayout/pkg/pipeline"
)

func TestStatsTable(t *testing.T) {
	res := &pipeline.Result{
		LayoutStats: layout.Stats{
			Entities:             5,
			Hierarchical:         3,
			Disconnected:         2,
			Levels:               2,
			Relationships:        4,
			DroppedRelationships: 1,
			CrossingsBefore:      3,
			CrossingsAfter:       1,
		},
		LabelStats: layout.LabelStats{Labels: 2, Passes: 1},
	}

	out := statsTable(res)
	for _, want := range []string{"entities", "in hierarchy", "dropped", "3 → 1", "label passes"} {
		if !strings.Contains(out, want) {
			t.Errorf("statsTable() missing %q:\n%s", want, out)
		}
	}
}

func TestPlural(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "files"},
		{1, "file"},
		{2, "files"},
	}
	for _, tt := range tests {
		if got := plural(tt.n, "file", "files"); got != tt.want {
			t.Errorf("plural(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestWriteArtifactRejectsBadPath(t *testing.T) {
	if err := writeArtifact("", []byte("x")); err == nil {
		t.Error("writeArtifact(\"\") should fail")
	}
	if err := writeArtifact("bad\x00name.svg", []byte("x")); err == nil {
		t.Error("writeArtifact with control character should fail")
	}
}
