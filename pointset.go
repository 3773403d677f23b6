/*
Copyright © 2026 the FireSTARR/TBD authors.
This file is part of FireSTARR/TBD.

FireSTARR/TBD is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

FireSTARR/TBD is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with FireSTARR/TBD.  If not, see <http://www.gnu.org/licenses/>.
*/

package tbd

import "math"

// MaxBeforeCondense is the point count at which a cell's point set is
// condensed down to its directional extremes.
const MaxBeforeCondense = 3

// halfOctantOffset is tan(pi/8)/2, used to place the eight half-octant
// condensation targets on the cell boundary at 22.5 degree increments.
const halfOctantOffset = 0.20710678118654752 // tan(pi/8)/2

// Point is a sub-cell position. Its containing cell is (floor(X),
// floor(Y)); the fractional parts are the within-cell location.
type Point struct {
	X, Y float64
}

// cellTargets holds the 16 canonical condensation targets in cell-local
// coordinates (0,0) to (1,1): the eight compass octants at cell
// edges/corners, and eight half-octant points offset from the edge
// midpoints by halfOctantOffset.
var cellTargets = [16]Point{
	{0.5, 1}, {1, 1}, {1, 0.5}, {1, 0}, {0.5, 0}, {0, 0}, {0, 0.5}, {0, 1}, // N,NE,E,SE,S,SW,W,NW
	{0.5 - halfOctantOffset, 1}, {0.5 + halfOctantOffset, 1},
	{1, 0.5 + halfOctantOffset}, {1, 0.5 - halfOctantOffset},
	{0.5 + halfOctantOffset, 0}, {0.5 - halfOctantOffset, 0},
	{0, 0.5 - halfOctantOffset}, {0, 0.5 + halfOctantOffset},
}

// PointSet is the set of active sub-cell points within one cell.
type PointSet struct {
	points []Point
}

// NewPointSet returns an empty point set.
func NewPointSet() *PointSet { return &PointSet{} }

// Add inserts a point, condensing the set if it now exceeds
// MaxBeforeCondense.
func (s *PointSet) Add(p Point) {
	s.points = append(s.points, p)
	if len(s.points) > MaxBeforeCondense {
		s.Condense()
	}
}

// Len returns the current number of points.
func (s *PointSet) Len() int { return len(s.points) }

// Points returns the current set of points. The caller must not mutate
// the returned slice.
func (s *PointSet) Points() []Point { return s.points }

// Condense replaces the point set with at most 16 points: for each of
// the 16 canonical targets (in the cell-local frame of the first point's
// containing cell), the nearest point not already claimed by an earlier
// target. Once every point has been claimed the remaining targets are
// skipped, so a set of fewer than 16 points keeps all of them. This preserves the outer envelope of the
// fire front while bounding memory at O(16) per cell.
func (s *PointSet) Condense() {
	if len(s.points) <= MaxBeforeCondense {
		return
	}

	row := math.Floor(s.points[0].X)
	col := math.Floor(s.points[0].Y)

	var condensed []Point
	claimed := make([]bool, len(s.points))
	for _, target := range cellTargets {
		targetPt := Point{X: row + target.X, Y: col + target.Y}
		best := -1
		bestDist := math.Inf(1)
		for i, p := range s.points {
			if claimed[i] {
				continue
			}
			d := distSquared(p, targetPt)
			if d < bestDist {
				bestDist = d
				best = i
			}
		}
		if best >= 0 {
			claimed[best] = true
			condensed = append(condensed, s.points[best])
		}
	}
	s.points = condensed
}

func distSquared(a, b Point) float64 {
	dx := a.X - b.X
	dy := a.Y - b.Y
	return dx*dx + dy*dy
}
