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

// Package raster reads and writes the single-band grids FireSTARR/TBD
// consumes and produces: GeoTIFF (via GDAL) for fuel/DEM inputs and every
// output product, and Arc/Info ASCII grid as the `--ascii` alternative.
package raster

import (
	"fmt"

	"github.com/lukeroth/gdal"
)

// Meta is the georeferencing metadata shared by every raster this package
// reads or writes: size, pixel size, lower-left origin, and (for GeoTIFF)
// the PROJ string.
type Meta struct {
	Rows, Columns int
	CellSize      float64
	OriginX       float64 // lower-left corner
	OriginY       float64
	Projection    string
}

// ReadGeoTIFF opens a single-band GeoTIFF and reads it into a row-major
// []float64, regardless of the file's own pixel type: GDAL's RasterIO
// converts on the fly, so callers needing integer fuel codes or DEM
// elevations round the result themselves rather than this package
// carrying one reader per pixel type.
func ReadGeoTIFF(path string) ([]float64, Meta, error) {
	ds, err := gdal.Open(path, gdal.ReadOnly)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("raster: opening %s: %w", path, err)
	}
	defer ds.Close()

	cols := ds.RasterXSize()
	rows := ds.RasterYSize()
	if ds.RasterCount() < 1 {
		return nil, Meta{}, fmt.Errorf("raster: %s has no raster bands", path)
	}
	band := ds.RasterBand(1)

	data := make([]float64, rows*cols)
	if err := band.IO(gdal.Read, 0, 0, cols, rows, data, cols, rows, 0, 0); err != nil {
		return nil, Meta{}, fmt.Errorf("raster: reading %s: %w", path, err)
	}

	gt := ds.GeoTransform()
	originX := gt[0]
	originY := gt[3] + float64(rows)*gt[5] // gt[5] (pixel height) is negative; shift top-left down to the lower-left corner

	return data, Meta{
		Rows:       rows,
		Columns:    cols,
		CellSize:   gt[1],
		OriginX:    originX,
		OriginY:    originY,
		Projection: ds.Projection(),
	}, nil
}

// WriteGeoTIFF creates a single-band, tiled Float64 GeoTIFF from data and
// meta.
func WriteGeoTIFF(path string, data []float64, meta Meta) error {
	driver, err := gdal.GetDriverByName("GTiff")
	if err != nil {
		return fmt.Errorf("raster: no GTiff driver registered: %w", err)
	}
	ds := driver.Create(path, meta.Columns, meta.Rows, 1, gdal.Float64, []string{"TILED=YES"})
	defer ds.Close()

	ds.SetGeoTransform([6]float64{
		meta.OriginX, meta.CellSize, 0,
		meta.OriginY + float64(meta.Rows)*meta.CellSize, 0, -meta.CellSize,
	})
	if meta.Projection != "" {
		ds.SetProjection(meta.Projection)
	}

	band := ds.RasterBand(1)
	if err := band.IO(gdal.Write, 0, 0, meta.Columns, meta.Rows, data, meta.Columns, meta.Rows, 0, 0); err != nil {
		return fmt.Errorf("raster: writing %s: %w", path, err)
	}
	return nil
}
