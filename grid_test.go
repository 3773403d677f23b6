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

import (
	"testing"

	"github.com/jordan-evens/firestarr-tbd-sub001/fuel"
)

func makeUniformCells(rows, columns int, code fuel.Code) []Cell {
	cells := make([]Cell, rows*columns)
	for r := 0; r < rows; r++ {
		for c := 0; c < columns; c++ {
			cells[r*columns+c] = NewCell(r, c, 0, 0, code)
		}
	}
	return cells
}

func TestNewLandscapeInBounds(t *testing.T) {
	l := NewLandscape(3, 4, 100, 0, 0, "", makeUniformCells(3, 4, 2))
	if !l.InBounds(0, 0) || !l.InBounds(2, 3) {
		t.Error("want corners in bounds")
	}
	if l.InBounds(3, 0) || l.InBounds(0, 4) || l.InBounds(-1, 0) {
		t.Error("want out-of-range coordinates rejected")
	}
}

func TestNewLandscapePanicsOnSizeMismatch(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("want panic on cell-count mismatch")
		}
	}()
	NewLandscape(3, 4, 100, 0, 0, "", makeUniformCells(2, 2, 2))
}

func TestLandscapeAtRoundTripsFuelCode(t *testing.T) {
	cells := makeUniformCells(2, 2, 2)
	cells[3] = NewCell(1, 1, 30, 180, fuel.Code(41))
	l := NewLandscape(2, 2, 100, 0, 0, "", cells)

	got := l.At(1, 1)
	if got.FuelCode() != 41 {
		t.Errorf("FuelCode() = %d, want 41", got.FuelCode())
	}
	if got.SlopePercent() != 30 {
		t.Errorf("SlopePercent() = %d, want 30", got.SlopePercent())
	}
}

func TestLandscapeBurnable(t *testing.T) {
	cells := makeUniformCells(2, 2, 2)
	cells[0] = NewCell(0, 0, 0, 0, fuel.NonBurnable)
	l := NewLandscape(2, 2, 100, 0, 0, "", cells)

	if l.Burnable(0, 0) {
		t.Error("want cell 0,0 non-burnable")
	}
	if !l.Burnable(1, 1) {
		t.Error("want cell 1,1 burnable")
	}
	if l.Burnable(5, 5) {
		t.Error("want out-of-bounds reported non-burnable")
	}
}

func TestSparseGridDefaultsToNodata(t *testing.T) {
	g := NewSparseGrid[float64](-1)
	loc := Location{Row: 2, Column: 3}
	if g.Contains(loc) {
		t.Error("want empty grid to not contain any location")
	}
	if g.Get(loc) != -1 {
		t.Errorf("Get() on unset location = %v, want nodata -1", g.Get(loc))
	}
}

func TestSparseGridSetGet(t *testing.T) {
	g := NewSparseGrid[int](0)
	loc := Location{Row: 1, Column: 1}
	g.Set(loc, 42)
	if !g.Contains(loc) {
		t.Error("want Contains()=true after Set")
	}
	if g.Get(loc) != 42 {
		t.Errorf("Get() = %d, want 42", g.Get(loc))
	}
	if g.Len() != 1 {
		t.Errorf("Len() = %d, want 1", g.Len())
	}
}

func TestSparseGridEachInBoundsFiltersOutside(t *testing.T) {
	g := NewSparseGrid[int](0)
	g.Set(Location{Row: 1, Column: 1}, 1)
	g.Set(Location{Row: 10, Column: 10}, 2)

	seen := 0
	g.EachInBounds(5, 5, func(loc Location, v int) { seen++ })
	if seen != 1 {
		t.Errorf("EachInBounds visited %d locations, want 1", seen)
	}
}
