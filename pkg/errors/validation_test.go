package errors

import (
	"testing"
)

func TestValidateLimits(t *testing.T) {
	limits := Limits{MaxEntities: 10, MaxRelationships: 20}

	tests := []struct {
		name          string
		entities      int
		relationships int
		limits        Limits
		wantErr       bool
	}{
		{"empty", 0, 0, limits, false},
		{"at limit", 10, 20, limits, false},
		{"too many entities", 11, 0, limits, true},
		{"too many relationships", 1, 21, limits, true},
		{"zero limits disable checks", 1_000_000, 1_000_000, Limits{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateLimits(tt.entities, tt.relationships, tt.limits)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLimits(%d, %d) error = %v, wantErr %v", tt.entities, tt.relationships, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeLimitExceeded) {
				t.Errorf("ValidateLimits returned wrong error code: %v", err)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "diagrams/shapes.json", false},
		{"valid nested", "docs/model/zoo/animals.yaml", false},
		{"valid filename only", "classes.json", false},
		{"valid with dots", "v1.2.3/diagram.json", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 600)), true},
		{"absolute path", "/etc/passwd", true},
		{"path traversal", "../../../etc/passwd", true},
		{"path traversal middle", "foo/../bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidPath) {
				t.Errorf("ValidatePath(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateOutputPath(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		allowed []string
		wantErr bool
	}{
		{"absolute allowed", "/tmp/out.svg", []string{".svg"}, false},
		{"case insensitive", "out.SVG", []string{".svg"}, false},
		{"any extension", "out.bin", nil, false},
		{"second extension", "layout.json", []string{".svg", ".json"}, false},

		{"empty", "", nil, true},
		{"wrong extension", "out.png", []string{".svg"}, true},
		{"no extension", "out", []string{".svg"}, true},
		{"control char", "out\x01.svg", []string{".svg"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateOutputPath(tt.input, tt.allowed...)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateOutputPath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidDiagram,
		ErrCodeInvalidFormat,
		ErrCodeInvalidConfig,
		ErrCodeInvalidPath,
		ErrCodeLimitExceeded,
		ErrCodeNotFound,
		ErrCodeFileNotFound,
		ErrCodeNetwork,
		ErrCodeTimeout,
		ErrCodeInternal,
		ErrCodeUnsupported,
	}

	seen := make(map[Code]bool)
	for _, code := range codes {
		if seen[code] {
			t.Errorf("Duplicate error code: %s", code)
		}
		seen[code] = true
	}
}
