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

import "testing"

func TestPointSetAddWithinLimitDoesNotCondense(t *testing.T) {
	ps := NewPointSet()
	ps.Add(Point{X: 0.1, Y: 0.1})
	ps.Add(Point{X: 0.2, Y: 0.2})
	ps.Add(Point{X: 0.3, Y: 0.3})
	if ps.Len() != 3 {
		t.Errorf("Len() = %d, want 3", ps.Len())
	}
}

func TestPointSetCondensesOverLimit(t *testing.T) {
	ps := NewPointSet()
	for i := 0; i < 10; i++ {
		ps.Add(Point{X: 0.05 * float64(i), Y: 0.05 * float64(i)})
	}
	if ps.Len() > 16 {
		t.Errorf("Len() = %d after condense, want <= 16", ps.Len())
	}
	if ps.Len() == 0 {
		t.Error("want at least one point to survive condensation")
	}
}

func TestPointSetCondensePreservesCell(t *testing.T) {
	ps := NewPointSet()
	for i := 0; i < 8; i++ {
		ps.Add(Point{X: 3 + 0.1*float64(i), Y: 7 + 0.1*float64(i)})
	}
	for _, p := range ps.Points() {
		if int(p.X) != 3 || int(p.Y) != 7 {
			t.Errorf("condensed point %v left the original cell", p)
		}
	}
}

func TestPointSetCondenseDirect(t *testing.T) {
	ps := NewPointSet()
	ps.points = []Point{
		{X: 0.5, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 0.5}, {X: 1, Y: 0},
		{X: 0.5, Y: 0}, {X: 0, Y: 0}, {X: 0, Y: 0.5}, {X: 0, Y: 1},
	}
	ps.Condense()
	if ps.Len() == 0 {
		t.Error("want condense to keep the exact canonical targets")
	}
	if ps.Len() > 16 {
		t.Errorf("Len() = %d, want <= 16", ps.Len())
	}
}
