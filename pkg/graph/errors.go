package graph

import "errors"

var (
	// ErrEmptyGraph is returned when construction produces no nodes.
	ErrEmptyGraph = errors.New("graph has no nodes")

	// ErrUnknownNode is returned when a requested node is not in the graph.
	ErrUnknownNode = errors.New("unknown node")
)
