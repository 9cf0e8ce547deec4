package engine

import (
	"math"
	"math/rand"
	"sort"
)

// neighborOffsets are the candidate cells adjacent to a just-placed node,
// clockwise from the top. The fixed order keeps arrange deterministic for
// identical input unless an Options.Rand shuffles it.
var neighborOffsets = [8][2]int{
	{-1, 0}, {-1, 1}, {0, 1}, {1, 1},
	{1, 0}, {1, -1}, {0, -1}, {-1, -1},
}

type gridCell struct {
	row, col int
}

// arrangeNodes computes a conflict-free grid layout for the nodes,
// preserving their relative placement and favoring connected nodes being
// adjacent. Sizes are unchanged; only positions move. The returned slice
// keeps the input order.
func arrangeNodes(nodes []Node, conns []Connection, padding float64, rng *rand.Rand) []Node {
	n := len(nodes)
	if n == 0 {
		return nil
	}

	out := make([]Node, n)
	copy(out, nodes)

	bbox := out[0].Bounds()
	var sumW, sumH float64
	for _, node := range out {
		bbox = bbox.Union(node.Bounds())
		sumW += node.Width
		sumH += node.Height
	}
	avgW := sumW / float64(n)
	avgH := sumH / float64(n)

	aspect := 1.0
	if bbox.Width > 0 && bbox.Height > 0 {
		aspect = bbox.Width / bbox.Height
	}

	cols := int(math.Round(math.Sqrt(float64(n) * aspect)))
	if cols < 1 {
		cols = 1
	}
	rows := (n + cols - 1) / cols
	if rows < 1 {
		rows = 1
	}

	// Undirected adjacency for placement purposes.
	adj := make(map[string][]string)
	for _, c := range conns {
		adj[c.From.NodeID] = append(adj[c.From.NodeID], c.To.NodeID)
		adj[c.To.NodeID] = append(adj[c.To.NodeID], c.From.NodeID)
	}

	// Placement priority: closest to the bounding-box center first.
	cx, cy := bbox.Center()
	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return centerDistSq(out[order[a]], cx, cy) < centerDistSq(out[order[b]], cx, cy)
	})

	grid := make([]string, rows*cols) // node id per cell, "" when empty
	cellOf := make(map[string]gridCell, n)
	indexOf := make(map[string]int, n)
	for i, node := range out {
		indexOf[node.ID] = i
	}

	place := func(id string, cell gridCell) {
		grid[cell.row*cols+cell.col] = id
		cellOf[id] = cell
	}

	for _, i := range order {
		node := out[i]
		if _, done := cellOf[node.ID]; done {
			continue
		}

		// Target cell from the node's relative position in the original
		// bounding box, scaled onto the grid dimensions.
		ncx, ncy := node.Bounds().Center()
		relX, relY := 0.5, 0.5
		if bbox.Width > 0 {
			relX = (ncx - bbox.X) / bbox.Width
		}
		if bbox.Height > 0 {
			relY = (ncy - bbox.Y) / bbox.Height
		}
		targetRow := relY * float64(rows-1)
		targetCol := relX * float64(cols-1)

		cell, ok := nearestEmptyCell(grid, rows, cols, targetRow, targetCol)
		if !ok {
			break // grid full, cannot happen with rows*cols >= n
		}
		place(node.ID, cell)

		// Pull not-yet-placed graph neighbors into cells adjacent to the
		// one just filled; neighbors that do not fit stay for the
		// general pass.
		offsets := neighborOffsets
		if rng != nil {
			rng.Shuffle(len(offsets), func(a, b int) {
				offsets[a], offsets[b] = offsets[b], offsets[a]
			})
		}
		for _, nbID := range adj[node.ID] {
			if _, done := cellOf[nbID]; done {
				continue
			}
			if _, known := indexOf[nbID]; !known {
				continue
			}
			for _, off := range offsets {
				r, c := cell.row+off[0], cell.col+off[1]
				if r < 0 || r >= rows || c < 0 || c >= cols {
					continue
				}
				if grid[r*cols+c] == "" {
					place(nbID, gridCell{row: r, col: c})
					break
				}
			}
		}
	}

	// Remaining nodes (none in practice, the main pass covers all)
	// take the first empty cell in row-major order.
	for _, node := range out {
		if _, done := cellOf[node.ID]; done {
			continue
		}
		for idx, id := range grid {
			if id == "" {
				place(node.ID, gridCell{row: idx / cols, col: idx % cols})
				break
			}
		}
	}

	// Column widths and row heights are the maximum node extent among
	// occupants; empty trailing cells fall back to the averages.
	colW := make([]float64, cols)
	rowH := make([]float64, rows)
	for id, cell := range cellOf {
		node := out[indexOf[id]]
		colW[cell.col] = max(colW[cell.col], node.Width)
		rowH[cell.row] = max(rowH[cell.row], node.Height)
	}
	for c := range colW {
		if colW[c] == 0 {
			colW[c] = avgW
		}
	}
	for r := range rowH {
		if rowH[r] == 0 {
			rowH[r] = avgH
		}
	}

	// Cumulative offsets anchored at the original bounding-box origin.
	colX := make([]float64, cols)
	rowY := make([]float64, rows)
	colX[0] = bbox.X
	for c := 1; c < cols; c++ {
		colX[c] = colX[c-1] + colW[c-1] + padding
	}
	rowY[0] = bbox.Y
	for r := 1; r < rows; r++ {
		rowY[r] = rowY[r-1] + rowH[r-1] + padding
	}

	for i := range out {
		cell, ok := cellOf[out[i].ID]
		if !ok {
			continue
		}
		out[i].X = colX[cell.col]
		out[i].Y = rowY[cell.row]
	}
	return out
}

// nearestEmptyCell finds the empty cell closest (Euclidean, in cell
// units) to the target, breaking ties in row-major order.
func nearestEmptyCell(grid []string, rows, cols int, targetRow, targetCol float64) (gridCell, bool) {
	best := gridCell{}
	bestDist := math.Inf(1)
	found := false

	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			if grid[r*cols+c] != "" {
				continue
			}
			dr := float64(r) - targetRow
			dc := float64(c) - targetCol
			dist := dr*dr + dc*dc
			if dist < bestDist {
				bestDist = dist
				best = gridCell{row: r, col: c}
				found = true
			}
		}
	}
	return best, found
}

func centerDistSq(n Node, cx, cy float64) float64 {
	ncx, ncy := n.Bounds().Center()
	dx, dy := ncx-cx, ncy-cy
	return dx*dx + dy*dy
}
