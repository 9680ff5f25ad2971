// Package parser reads adjacency-list text into edges.
//
// The format is line oriented: the first whitespace-separated token names a
// user, every following token names one of its friends. Blank lines are
// skipped. A line with a single token carries no edges and is ignored.
package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/graphsight/graphsight/pkg/graph"
)

// Parse reads adjacency-list text from r and returns the edges it describes.
// Duplicate and reversed edges are retained here; graph.Build dedups them.
func Parse(r io.Reader) ([]graph.Edge, error) {
	var edges []graph.Edge

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		user := fields[0]
		for _, friend := range fields[1:] {
			edges = append(edges, graph.Edge{A: user, B: friend})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return edges, nil
}

// ParseString is a convenience wrapper over Parse for in-memory input.
func ParseString(content string) ([]graph.Edge, error) {
	return Parse(strings.NewReader(content))
}
