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
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"github.com/ctessum/sparse"
)

// Landscape is the fixed, read-only grid of Cells shared by every
// scenario in a run. It is built once from the clipped fuel/DEM rasters
// and never mutated afterward.
type Landscape struct {
	Rows, Columns int

	// CellSize is the (square) pixel size in meters.
	CellSize float64

	// LowerLeftX, LowerLeftY are the projected coordinates of the grid's
	// lower-left corner.
	LowerLeftX, LowerLeftY float64

	// Projection is the (already-rewritten, see raster package) PROJ
	// string describing the grid's spatial reference.
	Projection string

	cells *sparse.DenseArrayInt

	// nonBurnable marks every cell whose fuel code is fuel.NonBurnable,
	// so the hot spread path can test burnability with one bit lookup
	// instead of unpacking the cell and consulting the fuel table.
	nonBurnable *bitset.BitSet
}

// NewLandscape builds a Landscape from a flattened, row-major array of
// already-encoded Cells. It panics if rows*columns does not match
// len(cells) or either dimension exceeds MaxRows/MaxColumns, since this
// indicates a bug in the raster-clipping collaborator, not a recoverable
// runtime condition.
func NewLandscape(rows, columns int, cellSize, lowerLeftX, lowerLeftY float64, projection string, cells []Cell) *Landscape {
	if rows > MaxRows || columns > MaxColumns {
		panic(fmt.Sprintf("tbd: landscape %dx%d exceeds bound %dx%d", rows, columns, MaxRows, MaxColumns))
	}
	if len(cells) != rows*columns {
		panic(fmt.Sprintf("tbd: landscape expected %d cells, got %d", rows*columns, len(cells)))
	}

	arr := sparse.ZerosDenseInt(rows, columns)
	nb := bitset.New(uint(rows * columns))
	for r := 0; r < rows; r++ {
		for c := 0; c < columns; c++ {
			cell := cells[r*columns+c]
			arr.Set(int(cell), r, c)
			if !cell.Burnable() {
				nb.Set(uint(r*columns + c))
			}
		}
	}

	return &Landscape{
		Rows:        rows,
		Columns:     columns,
		CellSize:    cellSize,
		LowerLeftX:  lowerLeftX,
		LowerLeftY:  lowerLeftY,
		Projection:  projection,
		cells:       arr,
		nonBurnable: nb,
	}
}

// InBounds reports whether (row, column) falls within the landscape.
func (l *Landscape) InBounds(row, column int) bool {
	return row >= 0 && row < l.Rows && column >= 0 && column < l.Columns
}

// At returns the Cell at (row, column). It panics if out of bounds;
// callers on the hot path must check InBounds first, since an
// out-of-bounds destination during spread is an expected edge case
// (fire leaving the domain) that is dropped, not panicked.
func (l *Landscape) At(row, column int) Cell {
	return Cell(l.cells.Get(row, column))
}

// Burnable reports whether the cell at (row, column) is burnable,
// consulting the precomputed bitset rather than unpacking the fuel
// code.
func (l *Landscape) Burnable(row, column int) bool {
	if !l.InBounds(row, column) {
		return false
	}
	return !l.nonBurnable.Test(uint(row*l.Columns + column))
}

// SparseGrid is a mutable mapping from cell Location to a value T, used
// for burn intensity, arrival time, and probability accumulation. Unlike
// Landscape it starts empty and grows as cells are touched, which is
// appropriate since most scenarios only ever burn a small fraction of
// the domain.
type SparseGrid[T any] struct {
	values  map[int64]T
	nodata  T
}

// NewSparseGrid builds an empty SparseGrid whose Get returns nodata for
// any Location that has never been Set.
func NewSparseGrid[T any](nodata T) *SparseGrid[T] {
	return &SparseGrid[T]{values: make(map[int64]T), nodata: nodata}
}

// Contains reports whether loc has an explicit value.
func (g *SparseGrid[T]) Contains(loc Location) bool {
	_, ok := g.values[loc.Hash()]
	return ok
}

// Get returns the value at loc, or nodata if unset.
func (g *SparseGrid[T]) Get(loc Location) T {
	if v, ok := g.values[loc.Hash()]; ok {
		return v
	}
	return g.nodata
}

// Set assigns a value at loc.
func (g *SparseGrid[T]) Set(loc Location, v T) {
	g.values[loc.Hash()] = v
}

// Len returns the number of explicitly-set locations.
func (g *SparseGrid[T]) Len() int { return len(g.values) }

// EachInBounds calls fn for every explicitly-set location within
// [0,rows)x[0,columns), in unspecified order. Used by output writers
// enumerating a bounded rectangle.
func (g *SparseGrid[T]) EachInBounds(rows, columns int, fn func(loc Location, v T)) {
	for hash, v := range g.values {
		row := int32(hash / int64(MaxColumns))
		column := int32(hash % int64(MaxColumns))
		if row < 0 || int(row) >= rows || column < 0 || int(column) >= columns {
			continue
		}
		fn(Location{Row: row, Column: column}, v)
	}
}
