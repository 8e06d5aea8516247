package errors

import (
	"strings"
	"testing"
)

func TestValidateEdgeList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid", "1 2\n2 3\n", false},
		{"valid with comments", "# header\n1 2\t3 4\n", false},
		{"empty", "", true},
		{"null byte", "1 2\x001 3", true},
		{"escape sequence", "1 2\x1b[31m", true},
		{"too large", strings.Repeat("1 2\n", MaxEdgeListBytes/4+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEdgeList(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateEdgeList() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatePath(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{"valid relative", "data/follows.txt", false},
		{"valid absolute", "/var/data/follows.txt", false},
		{"empty", "", true},
		{"traversal", "../etc/passwd", true},
		{"backslash", `data\follows.txt`, true},
		{"null byte", "data\x00.txt", true},
		{"too long", strings.Repeat("a", 501), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePath(tt.path)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidatePath(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
		})
	}
}
