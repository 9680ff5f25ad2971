// Package visualization computes 2D node-link layouts for analysis results.
package visualization

import (
	"math"
	"math/rand"

	"github.com/graphsight/graphsight/pkg/graph"
)

// Position represents a 2D coordinate
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// LayoutConfig configures layout parameters
type LayoutConfig struct {
	Width      float64 // Canvas width
	Height     float64 // Canvas height
	Iterations int     // Number of iterations for iterative algorithms
	Padding    float64 // Padding from edges
	Seed       int64   // RNG seed for the initial placement
}

// DefaultLayoutConfig returns the canvas defaults used by the web layer.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		Width:      1200,
		Height:     800,
		Iterations: 50,
		Padding:    50,
		Seed:       1,
	}
}

// Layout interface for different layout algorithms
type Layout interface {
	ComputeLayout(g *graph.Graph) map[string]Position
}

// ForceDirectedLayout implements Fruchterman-Reingold force-directed layout.
// Runs with a fixed seed, so the same graph always lays out the same way.
type ForceDirectedLayout struct {
	config LayoutConfig
}

// NewForceDirectedLayout creates a new force-directed layout
func NewForceDirectedLayout(config LayoutConfig) *ForceDirectedLayout {
	if config.Iterations == 0 {
		config.Iterations = 50
	}
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &ForceDirectedLayout{config: config}
}

// ComputeLayout computes positions using the force-directed algorithm
func (fdl *ForceDirectedLayout) ComputeLayout(g *graph.Graph) map[string]Position {
	nodes := g.Nodes()

	if len(nodes) == 0 {
		return make(map[string]Position)
	}
	if len(nodes) == 1 {
		return map[string]Position{
			nodes[0]: {X: fdl.config.Width / 2, Y: fdl.config.Height / 2},
		}
	}

	rng := rand.New(rand.NewSource(fdl.config.Seed))

	positions := make(map[string]Position, len(nodes))
	for _, node := range nodes {
		positions[node] = Position{
			X: rng.Float64()*(fdl.config.Width-2*fdl.config.Padding) + fdl.config.Padding,
			Y: rng.Float64()*(fdl.config.Height-2*fdl.config.Padding) + fdl.config.Padding,
		}
	}

	// Optimal pairwise distance for the canvas area.
	k := math.Sqrt((fdl.config.Width * fdl.config.Height) / float64(len(nodes)))
	temperature := fdl.config.Width / 10.0

	for iter := 0; iter < fdl.config.Iterations; iter++ {
		forces := make(map[string]Position, len(nodes))
		for _, node := range nodes {
			forces[node] = Position{}
		}

		// Repulsion between all pairs
		for i, a := range nodes {
			for j := i + 1; j < len(nodes); j++ {
				b := nodes[j]
				dx := positions[a].X - positions[b].X
				dy := positions[a].Y - positions[b].Y
				dist := math.Sqrt(dx*dx + dy*dy)
				if dist < 0.01 {
					dist = 0.01
				}

				force := (k * k) / dist
				fx := (dx / dist) * force
				fy := (dy / dist) * force

				forces[a] = Position{X: forces[a].X + fx, Y: forces[a].Y + fy}
				forces[b] = Position{X: forces[b].X - fx, Y: forces[b].Y - fy}
			}
		}

		// Attraction along edges
		for _, a := range nodes {
			neighbors, _ := g.Neighbors(a)
			for _, b := range neighbors {
				dx := positions[a].X - positions[b].X
				dy := positions[a].Y - positions[b].Y
				dist := math.Sqrt(dx*dx + dy*dy)
				if dist < 0.01 {
					continue
				}

				force := (dist * dist) / k
				forces[a] = Position{
					X: forces[a].X - (dx/dist)*force,
					Y: forces[a].Y - (dy/dist)*force,
				}
			}
		}

		// Apply forces with cooling
		cool := 1.0 - float64(iter)/float64(fdl.config.Iterations)
		for _, node := range nodes {
			fx := forces[node].X
			fy := forces[node].Y
			force := math.Sqrt(fx*fx + fy*fy)
			if force > 0 {
				positions[node] = Position{
					X: positions[node].X + (fx/force)*math.Min(force, temperature)*cool,
					Y: positions[node].Y + (fy/force)*math.Min(force, temperature)*cool,
				}
			}
		}

		temperature *= 0.95
	}

	return normalizePositions(positions, fdl.config.Width, fdl.config.Height, fdl.config.Padding)
}

// CircularLayout arranges nodes evenly around a circle
type CircularLayout struct {
	config LayoutConfig
}

// NewCircularLayout creates a new circular layout
func NewCircularLayout(config LayoutConfig) *CircularLayout {
	if config.Padding == 0 {
		config.Padding = 50
	}
	return &CircularLayout{config: config}
}

// ComputeLayout arranges nodes in a circle, in node order
func (cl *CircularLayout) ComputeLayout(g *graph.Graph) map[string]Position {
	nodes := g.Nodes()
	positions := make(map[string]Position, len(nodes))

	if len(nodes) == 0 {
		return positions
	}

	centerX := cl.config.Width / 2
	centerY := cl.config.Height / 2
	radius := math.Min(centerX, centerY) - cl.config.Padding

	angleStep := 2 * math.Pi / float64(len(nodes))
	for i, node := range nodes {
		angle := float64(i) * angleStep
		positions[node] = Position{
			X: centerX + radius*math.Cos(angle),
			Y: centerY + radius*math.Sin(angle),
		}
	}

	return positions
}

// normalizePositions scales positions to fit within bounds
func normalizePositions(positions map[string]Position, width, height, padding float64) map[string]Position {
	if len(positions) == 0 {
		return positions
	}

	minX, maxX := math.MaxFloat64, -math.MaxFloat64
	minY, maxY := math.MaxFloat64, -math.MaxFloat64
	for _, pos := range positions {
		minX = math.Min(minX, pos.X)
		maxX = math.Max(maxX, pos.X)
		minY = math.Min(minY, pos.Y)
		maxY = math.Max(maxY, pos.Y)
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX < 0.01 {
		rangeX = 1
	}
	if rangeY < 0.01 {
		rangeY = 1
	}

	targetWidth := width - 2*padding
	targetHeight := height - 2*padding

	normalized := make(map[string]Position, len(positions))
	for node, pos := range positions {
		normalized[node] = Position{
			X: padding + ((pos.X-minX)/rangeX)*targetWidth,
			Y: padding + ((pos.Y-minY)/rangeY)*targetHeight,
		}
	}

	return normalized
}
