package diagram

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	errs "github.com/matzehuels/classlayout/pkg/errors"
)

// =============================================================================
// Diagram Serialization API
// =============================================================================

// Marshal converts a diagram to indented JSON bytes. The output is stable for
// identical input, so it doubles as the content key for caching.
func Marshal(d Diagram) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(d, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Write encodes a diagram as JSON to w.
func Write(d Diagram, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a diagram to a JSON file.
func WriteFile(d Diagram, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()
	return Write(d, f)
}

// Read decodes a JSON diagram from r.
func Read(r io.Reader) (Diagram, error) {
	var d Diagram
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return Diagram{}, errs.Wrap(errs.ErrCodeInvalidDiagram, err, "decode diagram")
	}
	return d, nil
}

// ReadYAML decodes a YAML diagram from r.
func ReadYAML(r io.Reader) (Diagram, error) {
	var d Diagram
	if err := yaml.NewDecoder(r).Decode(&d); err != nil {
		return Diagram{}, errs.Wrap(errs.ErrCodeInvalidDiagram, err, "decode diagram")
	}
	return d, nil
}

// ReadFile reads a diagram from disk. Files ending in .yaml or .yml are
// decoded as YAML, everything else as JSON.
func ReadFile(path string) (Diagram, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Diagram{}, errs.Wrap(errs.ErrCodeFileNotFound, err, "open %s", path)
		}
		return Diagram{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return ReadYAML(f)
	default:
		return Read(f)
	}
}
