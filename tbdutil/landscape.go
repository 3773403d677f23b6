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

// Package tbdutil wires the cellular fire-spread engine, fuel table,
// weather stream, and raster I/O into the `tbd` command's config layer,
// subcommands, and output writers.
package tbdutil

import (
	"fmt"
	"math"

	"github.com/ctessum/geom/proj"
	"github.com/jordan-evens/firestarr-tbd-sub001/fuel"
	"github.com/jordan-evens/firestarr-tbd-sub001/raster"
	tbd "github.com/jordan-evens/firestarr-tbd-sub001"
)

// LoadedLandscape bundles the clipped Landscape together with the
// geographic window it was cut from, so the output writer can produce
// georeferenced fuel/dem verification rasters.
type LoadedLandscape struct {
	Landscape *tbd.Landscape
	Fuel      []float64 // clipped fuel codes, row-major, for fuel.{asc|tif}
	DEM       []float64 // clipped elevation, row-major, for dem.{asc|tif}
	Meta      raster.Meta
}

// LoadLandscape reads the fuel and DEM GeoTIFFs, validates they share a
// grid, clips a window of at most tbd.MaxRows x tbd.MaxColumns centred on
// the ignition point (given in longitude/latitude), rewrites a UTM
// projection to its explicit tmerc form, derives per-cell slope/aspect
// from the DEM by Horn's method, and builds the immutable Landscape.
func LoadLandscape(fuelPath, demPath string, ignitionLon, ignitionLat float64, table *fuel.Table) (*LoadedLandscape, int, int, error) {
	fuelData, fuelMeta, err := raster.ReadGeoTIFF(fuelPath)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("tbdutil: reading fuel raster: %w", err)
	}
	demData, demMeta, err := raster.ReadGeoTIFF(demPath)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("tbdutil: reading dem raster: %w", err)
	}
	if err := sameGrid(fuelMeta, demMeta); err != nil {
		return nil, 0, 0, fmt.Errorf("tbdutil: fuel/dem mismatch: %w", err)
	}

	projection, err := raster.RewriteUTM(fuelMeta.Projection)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("tbdutil: rewriting projection: %w", err)
	}
	if err := raster.Validate(projection); err != nil {
		return nil, 0, 0, err
	}

	ignX, ignY, err := projectIgnition(projection, ignitionLon, ignitionLat)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("tbdutil: projecting ignition point: %w", err)
	}
	ignCol := int(math.Round((ignX - fuelMeta.OriginX) / fuelMeta.CellSize))
	ignRow := fuelMeta.Rows - 1 - int(math.Round((ignY-fuelMeta.OriginY)/fuelMeta.CellSize))
	if ignRow < 0 || ignRow >= fuelMeta.Rows || ignCol < 0 || ignCol >= fuelMeta.Columns {
		return nil, 0, 0, fmt.Errorf("tbdutil: ignition point falls outside the supplied rasters")
	}

	clipRows, clipCols, clipRow0, clipCol0 := clipWindow(fuelMeta.Rows, fuelMeta.Columns, ignRow, ignCol)

	cells := make([]tbd.Cell, clipRows*clipCols)
	clippedFuel := make([]float64, clipRows*clipCols)
	clippedDEM := make([]float64, clipRows*clipCols)
	for r := 0; r < clipRows; r++ {
		for c := 0; c < clipCols; c++ {
			srcRow, srcCol := clipRow0+r, clipCol0+c
			idx := srcRow*fuelMeta.Columns + srcCol
			code := fuel.Code(fuelData[idx]) // fuel raster carries integer codes as float64
			if code != fuel.NonBurnable {
				ft, err := table.Lookup(code)
				if err != nil || ft.Name() == "invalid" {
					return nil, 0, 0, fmt.Errorf("tbdutil: fuel raster cell (%d,%d): unknown fuel code %d", srcRow, srcCol, code)
				}
			}
			slopePct, aspectDeg := slopeAspect(demData, fuelMeta.Rows, fuelMeta.Columns, srcRow, srcCol, fuelMeta.CellSize)

			dst := r*clipCols + c
			clippedFuel[dst] = float64(code)
			clippedDEM[dst] = demData[idx]
			cells[dst] = tbd.NewCell(r, c, slopePct, aspectDeg, code)
		}
	}

	landscape := tbd.NewLandscape(clipRows, clipCols, fuelMeta.CellSize,
		fuelMeta.OriginX+float64(clipCol0)*fuelMeta.CellSize,
		fuelMeta.OriginY+float64(fuelMeta.Rows-clipRow0-clipRows)*fuelMeta.CellSize,
		projection, cells)

	loaded := &LoadedLandscape{
		Landscape: landscape,
		Fuel:      clippedFuel,
		DEM:       clippedDEM,
		Meta: raster.Meta{
			Rows:     clipRows,
			Columns:  clipCols,
			CellSize: fuelMeta.CellSize,
			OriginX:  fuelMeta.OriginX + float64(clipCol0)*fuelMeta.CellSize,
			OriginY:  fuelMeta.OriginY + float64(fuelMeta.Rows-clipRow0-clipRows)*fuelMeta.CellSize,
			Projection: projection,
		},
	}
	return loaded, ignRow - clipRow0, ignCol - clipCol0, nil
}

func sameGrid(a, b raster.Meta) error {
	if a.Rows != b.Rows || a.Columns != b.Columns {
		return fmt.Errorf("dimensions %dx%d vs %dx%d", a.Rows, a.Columns, b.Rows, b.Columns)
	}
	if a.CellSize != b.CellSize {
		return fmt.Errorf("cell size %v vs %v", a.CellSize, b.CellSize)
	}
	if a.OriginX != b.OriginX || a.OriginY != b.OriginY {
		return fmt.Errorf("origin (%v,%v) vs (%v,%v)", a.OriginX, a.OriginY, b.OriginX, b.OriginY)
	}
	return nil
}

// projectIgnition transforms the ignition point from geographic
// longitude/latitude (WGS84) into the landscape's own projected
// coordinates, using a proj.SR.NewTransform pairing.
func projectIgnition(destProj string, lon, lat float64) (x, y float64, err error) {
	src, err := proj.Parse("+proj=longlat +datum=WGS84 +no_defs")
	if err != nil {
		return 0, 0, err
	}
	dest, err := proj.Parse(destProj)
	if err != nil {
		return 0, 0, err
	}
	transform, err := src.NewTransform(dest)
	if err != nil {
		return 0, 0, err
	}
	return transform(lon, lat)
}

// clipWindow returns the row/column extent of a window of at most
// tbd.MaxRows x tbd.MaxColumns, centred on (ignRow, ignCol) and clamped to
// the source raster's bounds.
func clipWindow(rows, columns, ignRow, ignCol int) (clipRows, clipCols, row0, col0 int) {
	clipRows = rows
	if clipRows > tbd.MaxRows {
		clipRows = tbd.MaxRows
	}
	clipCols = columns
	if clipCols > tbd.MaxColumns {
		clipCols = tbd.MaxColumns
	}

	row0 = ignRow - clipRows/2
	if row0 < 0 {
		row0 = 0
	}
	if row0+clipRows > rows {
		row0 = rows - clipRows
	}
	col0 = ignCol - clipCols/2
	if col0 < 0 {
		col0 = 0
	}
	if col0+clipCols > columns {
		col0 = columns - clipCols
	}
	return clipRows, clipCols, row0, col0
}

// slopeAspect derives percent slope and aspect azimuth (degrees, 0 =
// north) at (row, col) from the 3x3 neighborhood of dem by Horn's (1981)
// finite-difference method, matching the data-parallel per-cell 3x3
// window the grid-build step is specified to use. Edge cells fall back to
// the nearest in-bounds neighbor (replicate padding).
func slopeAspect(dem []float64, rows, cols, row, col int, cellSize float64) (slopePercent, aspectDegrees int) {
	at := func(r, c int) float64 {
		if r < 0 {
			r = 0
		}
		if r >= rows {
			r = rows - 1
		}
		if c < 0 {
			c = 0
		}
		if c >= cols {
			c = cols - 1
		}
		return dem[r*cols+c]
	}

	z1, z2, z3 := at(row-1, col-1), at(row-1, col), at(row-1, col+1)
	z4, _, z6 := at(row, col-1), at(row, col), at(row, col+1)
	z7, z8, z9 := at(row+1, col-1), at(row+1, col), at(row+1, col+1)

	dzdx := ((z3 + 2*z6 + z9) - (z1 + 2*z4 + z7)) / (8 * cellSize)
	dzdy := ((z7 + 2*z8 + z9) - (z1 + 2*z2 + z3)) / (8 * cellSize)

	rise := math.Sqrt(dzdx*dzdx + dzdy*dzdy)
	slopePercent = int(math.Round(rise * 100))

	if slopePercent == 0 {
		return 0, 0
	}

	aspectRad := math.Atan2(dzdy, -dzdx)
	aspectDeg := 90 - aspectRad*180/math.Pi
	if aspectDeg < 0 {
		aspectDeg += 360
	}
	if aspectDeg >= 360 {
		aspectDeg -= 360
	}
	return slopePercent, int(math.Round(aspectDeg)) % 360
}
