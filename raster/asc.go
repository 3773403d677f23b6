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

package raster

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ascNodata is the value written into NODATA_value for every file this
// package produces. No example in the retrieved pack reads or writes
// Arc/Info ASCII grids, so this is plain text I/O with no third-party
// library involved (see DESIGN.md).
const ascNodata = -9999

var ascHeaderKeys = []string{"ncols", "nrows", "xllcorner", "yllcorner", "cellsize", "nodata_value"}

// ReadASC reads an Arc/Info ASCII grid file.
func ReadASC(path string) ([]float64, Meta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Meta{}, fmt.Errorf("raster: opening %s: %w", path, err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)

	header := make(map[string]float64, len(ascHeaderKeys))
	for _, want := range ascHeaderKeys {
		if !sc.Scan() {
			return nil, Meta{}, fmt.Errorf("raster: %s: truncated header, expected %s", path, want)
		}
		fields := strings.Fields(sc.Text())
		if len(fields) != 2 || !strings.EqualFold(fields[0], want) {
			return nil, Meta{}, fmt.Errorf("raster: %s: expected header field %q, got %q", path, want, sc.Text())
		}
		v, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, Meta{}, fmt.Errorf("raster: %s: parsing %s: %w", path, want, err)
		}
		header[want] = v
	}

	rows := int(header["nrows"])
	cols := int(header["ncols"])
	data := make([]float64, 0, rows*cols)
	for sc.Scan() {
		for _, tok := range strings.Fields(sc.Text()) {
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, Meta{}, fmt.Errorf("raster: %s: parsing cell value %q: %w", path, tok, err)
			}
			data = append(data, v)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, Meta{}, fmt.Errorf("raster: %s: %w", path, err)
	}
	if len(data) != rows*cols {
		return nil, Meta{}, fmt.Errorf("raster: %s: header declares %d cells, body has %d", path, rows*cols, len(data))
	}

	return data, Meta{
		Rows:     rows,
		Columns:  cols,
		CellSize: header["cellsize"],
		OriginX:  header["xllcorner"],
		OriginY:  header["yllcorner"],
	}, nil
}

// WriteASC writes data as an Arc/Info ASCII grid file.
func WriteASC(path string, data []float64, meta Meta) error {
	if len(data) != meta.Rows*meta.Columns {
		return fmt.Errorf("raster: %s: %d values for a %dx%d grid", path, len(data), meta.Rows, meta.Columns)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("raster: creating %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "ncols         %d\n", meta.Columns)
	fmt.Fprintf(w, "nrows         %d\n", meta.Rows)
	fmt.Fprintf(w, "xllcorner     %v\n", meta.OriginX)
	fmt.Fprintf(w, "yllcorner     %v\n", meta.OriginY)
	fmt.Fprintf(w, "cellsize      %v\n", meta.CellSize)
	fmt.Fprintf(w, "NODATA_value  %v\n", ascNodata)

	for r := 0; r < meta.Rows; r++ {
		for c := 0; c < meta.Columns; c++ {
			if c > 0 {
				w.WriteByte(' ')
			}
			fmt.Fprintf(w, "%v", data[r*meta.Columns+c])
		}
		w.WriteByte('\n')
	}
	return w.Flush()
}
