package engine

import "math"

// Axis identifies which coordinate a guide constrains. An AxisX guide is
// a vertical line at Position; an AxisY guide is a horizontal line.
type Axis string

const (
	AxisX Axis = "x"
	AxisY Axis = "y"
)

// Guide describes one transient alignment line emitted while a snap is
// active. Position is the stage coordinate on Axis; Start/End span the
// union of the active and reference nodes on the perpendicular axis.
type Guide struct {
	Axis     Axis    `json:"axis"`
	Position float64 `json:"position"`
	Start    float64 `json:"start"`
	End      float64 `json:"end"`
}

// axisStops returns the node's three alignment stops on the axis:
// leading edge, center, trailing edge.
func axisStops(n Node, axis Axis) [3]float64 {
	if axis == AxisX {
		return [3]float64{n.X, n.X + n.Width/2, n.X + n.Width}
	}
	return [3]float64{n.Y, n.Y + n.Height/2, n.Y + n.Height}
}

// perpExtent returns the node's min/max on the axis perpendicular to the
// guide axis.
func perpExtent(n Node, axis Axis) (float64, float64) {
	if axis == AxisX {
		return n.Y, n.Y + n.Height
	}
	return n.X, n.X + n.Width
}

type snapMatch struct {
	found bool
	delta float64 // shift that makes the candidate coincide with the reference
	ref   float64 // reference coordinate, where the guide is drawn
	other Node
}

// bestAxisSnap finds the (candidate, reference) pair with minimum
// absolute difference on the axis across all reference nodes, considering
// only the candidate stops for which enabled is true.
func bestAxisSnap(active Node, others []Node, axis Axis, threshold float64, enabled [3]bool) snapMatch {
	cands := axisStops(active, axis)
	best := snapMatch{}
	bestDiff := threshold

	for _, other := range others {
		refs := axisStops(other, axis)
		for ci, cand := range cands {
			if !enabled[ci] {
				continue
			}
			for _, ref := range refs {
				diff := math.Abs(cand - ref)
				if diff < bestDiff {
					bestDiff = diff
					best = snapMatch{found: true, delta: ref - cand, ref: ref, other: other}
				}
			}
		}
	}
	return best
}

// guideFor builds the guide line for a resolved snap: a line at the
// reference coordinate spanning the union of both nodes' extents on the
// perpendicular axis.
func guideFor(axis Axis, ref float64, active, other Node) Guide {
	aMin, aMax := perpExtent(active, axis)
	oMin, oMax := perpExtent(other, axis)
	return Guide{
		Axis:     axis,
		Position: ref,
		Start:    min(aMin, oMin),
		End:      max(aMax, oMax),
	}
}

var allStops = [3]bool{true, true, true}

// snapDrag aligns the tentatively positioned node against the reference
// nodes, resolving the X and Y axes independently. Size is preserved;
// only the position shifts. Returns the corrected node and a guide per
// snapped axis.
func snapDrag(active Node, others []Node, threshold float64) (Node, []Guide) {
	var guides []Guide

	if m := bestAxisSnap(active, others, AxisX, threshold, allStops); m.found {
		active.X += m.delta
		guides = append(guides, guideFor(AxisX, m.ref, active, m.other))
	}
	if m := bestAxisSnap(active, others, AxisY, threshold, allStops); m.found {
		active.Y += m.delta
		guides = append(guides, guideFor(AxisY, m.ref, active, m.other))
	}
	return active, guides
}

// snapResize aligns only the edges being dragged, holding the opposite
// edge fixed. A snap that would shrink the node below the minimum size is
// rejected for that axis and the unsnapped geometry kept.
func snapResize(active Node, handle ResizeHandle, others []Node, threshold float64) (Node, []Guide) {
	var guides []Guide

	if handle.movesLeft() || handle.movesRight() {
		enabled := [3]bool{handle.movesLeft(), false, handle.movesRight()}
		if m := bestAxisSnap(active, others, AxisX, threshold, enabled); m.found {
			snapped := active
			if handle.movesLeft() {
				right := active.X + active.Width
				snapped.X = m.ref
				snapped.Width = right - m.ref
			} else {
				snapped.Width = m.ref - active.X
			}
			if snapped.Width >= MinNodeWidth {
				active = snapped
				guides = append(guides, guideFor(AxisX, m.ref, active, m.other))
			}
		}
	}

	if handle.movesTop() || handle.movesBottom() {
		enabled := [3]bool{handle.movesTop(), false, handle.movesBottom()}
		if m := bestAxisSnap(active, others, AxisY, threshold, enabled); m.found {
			snapped := active
			if handle.movesTop() {
				bottom := active.Y + active.Height
				snapped.Y = m.ref
				snapped.Height = bottom - m.ref
			} else {
				snapped.Height = m.ref - active.Y
			}
			if snapped.Height >= MinNodeHeight {
				active = snapped
				guides = append(guides, guideFor(AxisY, m.ref, active, m.other))
			}
		}
	}

	return active, guides
}
