package cache

import "github.com/matzehuels/classlayout/pkg/layout"

// Keyer builds cache keys.
type Keyer interface {
	// LayoutKey returns the key of the layout computed for a diagram.
	LayoutKey(diagramHash string, opts LayoutKeyOpts) string

	// ArtifactKey returns the key of an artifact rendered from a layout.
	ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string
}

// LayoutKeyOpts holds the inputs besides the diagram that change a layout.
type LayoutKeyOpts struct {
	Config layout.Config `json:"config"`
}

// ArtifactKeyOpts holds the inputs besides the layout that change an
// artifact.
type ArtifactKeyOpts struct {
	Format string `json:"format"`
	Style  string `json:"style,omitempty"`
}

// DefaultKeyer hashes every key component with SHA-256.
type DefaultKeyer struct{}

// NewDefaultKeyer creates the standard keyer.
func NewDefaultKeyer() Keyer {
	return &DefaultKeyer{}
}

// LayoutKey returns "layout:<sha256>".
func (k *DefaultKeyer) LayoutKey(diagramHash string, opts LayoutKeyOpts) string {
	return hashKey("layout", diagramHash, opts)
}

// ArtifactKey returns "artifact:<sha256>".
func (k *DefaultKeyer) ArtifactKey(layoutHash string, opts ArtifactKeyOpts) string {
	return hashKey("artifact", layoutHash, opts)
}

var _ Keyer = (*DefaultKeyer)(nil)
