// Package ingest reads follows-network edge lists into a digraph.Graph.
//
// The input format is line-oriented text: one directed edge per line as
// "source target" (whitespace separated integer account IDs), meaning
// source follows target. Blank lines and lines starting with '#' are
// skipped. Vertices are registered automatically the first time their ID
// appears, so edges never fail with an unknown-vertex error during ingest.
package ingest

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/matzehuels/trendspot/pkg/digraph"
)

// ErrMalformedLine is returned when a line is not two integer IDs.
var ErrMalformedLine = errors.New("ingest: malformed edge line")

// ReadFile parses the edge-list file at path into a new graph.
func ReadFile(path string) (*digraph.Graph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// Read parses an edge list from r into a new graph. Parsing stops at the
// first malformed line, reported with its line number.
func Read(r io.Reader) (*digraph.Graph, error) {
	g := digraph.New()
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		from, to, err := parseEdge(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		if !g.HasVertex(from) {
			g.AddVertex(from)
		}
		if !g.HasVertex(to) {
			g.AddVertex(to)
		}
		if err := g.AddEdge(from, to); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read edge list: %w", err)
	}
	return g, nil
}

// parseEdge splits a "source target" line into its endpoint IDs.
func parseEdge(line string) (from, to int, err error) {
	fields := strings.Fields(line)
	if len(fields) != 2 {
		return 0, 0, fmt.Errorf("%w: want \"source target\", got %q", ErrMalformedLine, line)
	}
	from, err = strconv.Atoi(fields[0])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: source %q is not an integer", ErrMalformedLine, fields[0])
	}
	to, err = strconv.Atoi(fields[1])
	if err != nil {
		return 0, 0, fmt.Errorf("%w: target %q is not an integer", ErrMalformedLine, fields[1])
	}
	return from, to, nil
}
