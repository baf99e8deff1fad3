package errors

import (
	"testing"
)

func TestValidateFamilyName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "slant", false},
		{"valid with dash", "my-family", false},
		{"valid with underscore", "my_family", false},

		{"empty", "", true},
		{"too long", string(make([]byte, 100)), true},
		{"path traversal ..", "foo..bar", true},
		{"path separator", "foo/bar", true},
		{"null byte", "foo\x00bar", true},
		{"backslash", "foo\\bar", true},
		{"control char", "foo\x01bar", true},
		{"newline", "foo\nbar", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateFamilyName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateFamilyName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidFamily) {
				t.Errorf("ValidateFamilyName(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateGridSize(t *testing.T) {
	tests := []struct {
		name       string
		rows, cols int
		wantErr    bool
	}{
		{"valid small", 2, 2, false},
		{"valid default", 8, 8, false},
		{"valid rectangular", 6, 10, false},
		{"valid max", 32, 32, false},

		{"zero", 0, 0, true},
		{"negative", -1, 5, true},
		{"one row", 1, 8, true},
		{"too large", 33, 8, true},
		{"both too large", 100, 100, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGridSize(tt.rows, tt.cols)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGridSize(%d, %d) error = %v, wantErr %v", tt.rows, tt.cols, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidSize) {
				t.Errorf("ValidateGridSize(%d, %d) returned wrong error code: %v", tt.rows, tt.cols, err)
			}
		})
	}
}

func TestValidatePuzzleID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "0c9d3f6a-8a1b-4f6e-9c2d-1e2f3a4b5c6d", false},
		{"valid uppercase", "0C9D3F6A-8A1B-4F6E-9C2D-1E2F3A4B5C6D", false},

		{"empty", "", true},
		{"short", "0c9d3f6a", true},
		{"no dashes", "0c9d3f6a8a1b4f6e9c2d1e2f3a4b5c6d", true},
		{"path traversal", "../../../etc/passwd", true},
		{"not hex", "zzzzzzzz-8a1b-4f6e-9c2d-1e2f3a4b5c6d", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePuzzleID(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePuzzleID(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestValidateGridString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		cells   int
		wantErr bool
	}{
		{"valid full", "0 1 1 0", 4, false},
		{"valid partial", "0 . . 1", 4, false},
		{"valid all open", ". . . .", 4, false},
		{"valid negative", "-1 0 1 2", 4, false},
		{"valid newlines", "0 1\n1 0", 4, false},

		{"empty", "", 4, true},
		{"too few cells", "0 1 1", 4, true},
		{"too many cells", "0 1 1 0 0", 4, true},
		{"bad token", "0 1 x 0", 4, true},
		{"huge value", "0 1 12345 0", 4, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGridString(tt.input, tt.cells)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateGridString(%q, %d) error = %v, wantErr %v", tt.input, tt.cells, err, tt.wantErr)
			}
			if err != nil && !Is(err, ErrCodeInvalidGrid) {
				t.Errorf("ValidateGridString(%q) returned wrong error code: %v", tt.input, err)
			}
		})
	}
}

func TestValidateDatasetName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid simple", "training", false},
		{"valid with dash", "slant-8x8", false},
		{"valid with dot", "run.2026", false},

		{"empty", "", true},
		{"with path /", "path/to/set", true},
		{"with path \\", "path\\to\\set", true},
		{"hidden file", ".hidden", true},
		{"dollar sign", "a$cmd", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateDatasetName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateDatasetName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}

func TestErrorCodesAreUnique(t *testing.T) {
	codes := []Code{
		ErrCodeInvalidInput,
		ErrCodeInvalidFamily,
		ErrCodeInvalidSize,
		ErrCodeInvalidGrid,
		ErrCodeInvalidID,
		ErrCodeInvalidFormat,
		ErrCodeNotFound,
		ErrCodePuzzleNotFound,
		ErrCodeFileNotFound,
		ErrCodeUnsolvable,
		ErrCodeAmbiguous,
		ErrCodeBoundExceeded,
		ErrCodeExhausted,
		ErrCodeCache,
		ErrCodeStore,
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
