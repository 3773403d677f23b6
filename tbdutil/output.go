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

package tbdutil

import (
	"fmt"
	"os"
	"path/filepath"

	tbd "github.com/jordan-evens/firestarr-tbd-sub001"
	"github.com/jordan-evens/firestarr-tbd-sub001/raster"
)

// writeGrid dispatches to raster.WriteASC or raster.WriteGeoTIFF
// depending on ascii, appending the format's own extension to base.
func writeGrid(outputDir, base string, ascii bool, data []float64, meta raster.Meta) error {
	ext := ".tif"
	if ascii {
		ext = ".asc"
	}
	path := filepath.Join(outputDir, base+ext)
	if ascii {
		return raster.WriteASC(path, data, meta)
	}
	return raster.WriteGeoTIFF(path, data, meta)
}

// sparseToGrid flattens a tbd.SparseGrid into a dense row-major []float64
// over [0,rows)x[0,columns), using nodata for every location never set.
func sparseToGrid[T int | float64](g *tbd.SparseGrid[T], rows, columns int, nodata float64) []float64 {
	out := make([]float64, rows*columns)
	for i := range out {
		out[i] = nodata
	}
	g.EachInBounds(rows, columns, func(loc tbd.Location, v T) {
		out[int(loc.Row)*columns+int(loc.Column)] = float64(v)
	})
	return out
}

// WriteModelOutputs writes, for one output date offset, the probability,
// per-class intensity fraction, and (if requested) occurrence grids from
// model. includeProbability/includeIntensity let --no-probability/
// --no-intensity suppress the corresponding files.
func WriteModelOutputs(outputDir string, ascii bool, meta raster.Meta, model *tbd.Model, offsetHours int, includeProbability, includeIntensity, includeOccurrence bool) error {
	any_, low, moderate, high, occurrence := model.ProbabilityGrids(offsetHours)
	if any_ == nil {
		return fmt.Errorf("tbdutil: no accumulator registered for offset %dh", offsetHours)
	}

	suffix := fmt.Sprintf("_%d", offsetHours)
	if includeProbability {
		if err := writeGrid(outputDir, "probability"+suffix, ascii, sparseToGrid(any_, meta.Rows, meta.Columns, 0), meta); err != nil {
			return err
		}
	}
	if includeIntensity {
		classes := []struct {
			name string
			grid *tbd.SparseGrid[float64]
		}{
			{"intensity_low" + suffix, low},
			{"intensity_moderate" + suffix, moderate},
			{"intensity_high" + suffix, high},
		}
		for _, class := range classes {
			if err := writeGrid(outputDir, class.name, ascii, sparseToGrid(class.grid, meta.Rows, meta.Columns, 0), meta); err != nil {
				return err
			}
		}
	}
	if includeOccurrence {
		if err := writeGrid(outputDir, "occurrence"+suffix, ascii, sparseToGrid(occurrence, meta.Rows, meta.Columns, 0), meta); err != nil {
			return err
		}
	}
	return nil
}

// WriteScenarioArrival writes a single scenario's arrival-time grid
// (hours since ignition). Only `test` mode calls it; `simulate` writes
// no per-scenario arrival grids.
func WriteScenarioArrival(outputDir string, ascii bool, meta raster.Meta, s *tbd.Scenario, suffix string) error {
	data := make([]float64, meta.Rows*meta.Columns)
	for i := range data {
		data[i] = -1
	}
	s.EachBurned(func(loc tbd.Location, arrival, _ float64) {
		data[int(loc.Row)*meta.Columns+int(loc.Column)] = arrival
	})
	return writeGrid(outputDir, "arrival"+suffix, ascii, data, meta)
}

// WriteClippedInputs writes the clipped fuel and dem rasters back out for
// verification against the original inputs.
func WriteClippedInputs(outputDir string, ascii bool, loaded *LoadedLandscape) error {
	if err := writeGrid(outputDir, "fuel", ascii, loaded.Fuel, loaded.Meta); err != nil {
		return err
	}
	return writeGrid(outputDir, "dem", ascii, loaded.DEM, loaded.Meta)
}

// EnsureOutputDir creates outputDir (and parents) if it does not exist.
func EnsureOutputDir(outputDir string) error {
	return os.MkdirAll(outputDir, 0o755)
}
