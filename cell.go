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

// Package tbd implements the cellular fire-spread engine for FireSTARR/TBD:
// the landscape grid, per-cell spread physics, the event-driven scenario
// simulator, and the Monte Carlo orchestration that turns many scenarios
// into per-cell burn probabilities.
package tbd

import (
	"fmt"

	"github.com/jordan-evens/firestarr-tbd-sub001/fuel"
)

// MaxRows and MaxColumns bound the size of a Landscape, matching the
// typical 2048x2048 bound used by the reference implementation.
const (
	MaxRows    = 2048
	MaxColumns = 2048
)

// Cell is an immutable, 64-bit-packed descriptor for one landscape grid
// cell: row, column, slope percent, aspect azimuth, and fuel code.
//
// Bit layout (low to high): fuel code (8 bits), aspect (9 bits),
// slope (7 bits), column (16 bits), row (16 bits). The top 8 bits are
// unused.
type Cell uint64

const (
	fuelBits   = 8
	aspectBits = 9
	slopeBits  = 7
	columnBits = 16
	rowBits    = 16

	fuelShift   = 0
	aspectShift = fuelShift + fuelBits
	slopeShift  = aspectShift + aspectBits
	columnShift = slopeShift + slopeBits
	rowShift    = columnShift + columnBits

	fuelMask   = 1<<fuelBits - 1
	aspectMask = 1<<aspectBits - 1
	slopeMask  = 1<<slopeBits - 1
	columnMask = 1<<columnBits - 1
	rowMask    = 1<<rowBits - 1
)

// NewCell packs a row, column, slope percent, aspect azimuth, and fuel
// code into a Cell. Slope is clamped to [0,127], and aspect is forced to 0
// when the clamped slope is 0, so the slope/aspect invariant (slope=0
// implies aspect=0) always holds. It panics if row, column, or aspect are
// out of range.
func NewCell(row, column int, slopePercent int, aspectDegrees int, fuelCode fuel.Code) Cell {
	if row < 0 || row > rowMask {
		panic(fmt.Sprintf("tbd: row %d out of range", row))
	}
	if column < 0 || column > columnMask {
		panic(fmt.Sprintf("tbd: column %d out of range", column))
	}
	if slopePercent < 0 {
		slopePercent = 0
	}
	if slopePercent > slopeMask {
		slopePercent = slopeMask
	}
	if slopePercent == 0 {
		aspectDegrees = 0
	}
	if aspectDegrees < 0 || aspectDegrees > 359 {
		panic(fmt.Sprintf("tbd: aspect %d out of range", aspectDegrees))
	}
	var c uint64
	c |= uint64(fuelCode) << fuelShift
	c |= uint64(aspectDegrees) << aspectShift
	c |= uint64(slopePercent) << slopeShift
	c |= uint64(column) << columnShift
	c |= uint64(row) << rowShift
	return Cell(c)
}

// Row returns the cell's row index.
func (c Cell) Row() int { return int(uint64(c)>>rowShift) & rowMask }

// Column returns the cell's column index.
func (c Cell) Column() int { return int(uint64(c)>>columnShift) & columnMask }

// SlopePercent returns the cell's slope, 0..127.
func (c Cell) SlopePercent() int { return int(uint64(c)>>slopeShift) & slopeMask }

// Aspect returns the cell's aspect azimuth in degrees, 0..359.
func (c Cell) Aspect() int { return int(uint64(c)>>aspectShift) & aspectMask }

// FuelCode returns the index of this cell's fuel type in the fuel lookup
// table. A value of fuel.NonBurnable means the cell cannot burn.
func (c Cell) FuelCode() fuel.Code { return fuel.Code(uint64(c)>>fuelShift) & fuelMask }

// Burnable reports whether the cell's fuel code is anything other than the
// non-burnable sentinel.
func (c Cell) Burnable() bool { return c.FuelCode() != fuel.NonBurnable }

// Location returns the (row, column) location of the cell.
func (c Cell) Location() Location {
	return Location{Row: int32(c.Row()), Column: int32(c.Column())}
}

// Location identifies a grid cell by its row and column, independent of
// the cell's fuel/slope/aspect payload. Two cells at the same row/column
// compare equal as Locations even if their other fields differ, which
// cannot happen in a Landscape since it holds at most one Cell per
// location.
type Location struct {
	Row, Column int32
}

// Hash returns row*MaxColumns + column, used as the key for sparse grids
// and as the tie-break order for events at equal (time, type).
func (l Location) Hash() int64 {
	return int64(l.Row)*int64(MaxColumns) + int64(l.Column)
}

func (l Location) String() string {
	return fmt.Sprintf("(%d,%d)", l.Row, l.Column)
}

// Octant identifies one of the 8 compass-octant neighbours of a cell, or
// the reserved "unknown source" value used when a fire starts by
// ignition rather than by spreading in from a neighbour.
type Octant uint8

// The eight compass octants, indexed in clockwise order starting at
// north, plus the reserved ignition sentinel.
const (
	North Octant = iota
	NorthEast
	East
	SouthEast
	South
	SouthWest
	West
	NorthWest

	// UnknownSource marks an event that did not originate from a
	// neighbouring cell (i.e. the original ignition).
	UnknownSource Octant = 254
)

// offset is a signed row/column displacement.
type offset struct {
	dRow, dColumn int32
}

// neighborOffsets gives the (Δrow, Δcolumn) pair for each of the 8
// compass octants, indexed by Octant.
var neighborOffsets = [8]offset{
	North:     {-1, 0},
	NorthEast: {-1, 1},
	East:      {0, 1},
	SouthEast: {1, 1},
	South:     {1, 0},
	SouthWest: {1, -1},
	West:      {0, -1},
	NorthWest: {-1, -1},
}

// Neighbor returns the location obtained by moving one step in the
// direction of the given octant.
func (l Location) Neighbor(o Octant) Location {
	d := neighborOffsets[o]
	return Location{Row: l.Row + d.dRow, Column: l.Column + d.dColumn}
}
