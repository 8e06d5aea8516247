package ingest

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestRead(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantOrder int
		wantSize  int
		wantErr   bool
	}{
		{
			name:      "Simple",
			input:     "1 2\n2 3\n",
			wantOrder: 3,
			wantSize:  2,
		},
		{
			name:      "Empty",
			input:     "",
			wantOrder: 0,
			wantSize:  0,
		},
		{
			name:      "CommentsAndBlanks",
			input:     "# follows network\n\n1 2\n\n# trailing comment\n2 1\n",
			wantOrder: 2,
			wantSize:  2,
		},
		{
			name:      "DuplicateEdgesKept",
			input:     "1 2\n1 2\n",
			wantOrder: 2,
			wantSize:  2,
		},
		{
			name:      "ExtraWhitespace",
			input:     "  1\t2  \n",
			wantOrder: 2,
			wantSize:  1,
		},
		{
			name:    "TooFewFields",
			input:   "1\n",
			wantErr: true,
		},
		{
			name:    "TooManyFields",
			input:   "1 2 3\n",
			wantErr: true,
		},
		{
			name:    "NonInteger",
			input:   "alice bob\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Read(strings.NewReader(tt.input))
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedLine) {
					t.Fatalf("Read() error = %v, want ErrMalformedLine", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Read(): %v", err)
			}
			if got := g.Order(); got != tt.wantOrder {
				t.Errorf("Order() = %d, want %d", got, tt.wantOrder)
			}
			if got := g.Size(); got != tt.wantSize {
				t.Errorf("Size() = %d, want %d", got, tt.wantSize)
			}
		})
	}
}

func TestReadReportsLineNumber(t *testing.T) {
	_, err := Read(strings.NewReader("1 2\n# comment\nbogus\n"))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Errorf("Read() error = %v, want line 3 reported", err)
	}
}

func TestReadPreservesInsertionOrder(t *testing.T) {
	g, err := Read(strings.NewReader("5 1\n3 5\n"))
	if err != nil {
		t.Fatalf("Read(): %v", err)
	}
	if got := g.VertexIDs(); !slices.Equal(got, []int{5, 1, 3}) {
		t.Errorf("VertexIDs() = %v, want [5 1 3]", got)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "edges.txt")
	if err := os.WriteFile(path, []byte("1 2\n2 1\n"), 0644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	g, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(): %v", err)
	}
	if got := g.Size(); got != 2 {
		t.Errorf("Size() = %d, want 2", got)
	}

	if _, err := ReadFile(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("ReadFile(missing) should fail")
	}
}
