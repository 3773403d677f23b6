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

package weather

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
)

// csvTimeLayout matches the "YYYY-MM-DD HH:MM" timestamp column.
const csvTimeLayout = "2006-01-02 15:04"

// columnOrder documents the fixed input column order: date,
// precipitation, temperature, RH, wind speed, wind direction, FFMC,
// DMC, DC, ISI, BUI, FWI.
var columnOrder = []string{"date", "precip", "temp", "rh", "wind_speed", "wind_dir", "ffmc", "dmc", "dc", "isi", "bui", "fwi"}

// ReadCSV parses an hourly weather CSV per the documented column order
// into a Stream. Missing hours within the file's own date range are a
// fatal error, matching spec: there is no interpolation fallback.
func ReadCSV(r io.Reader, deterministic bool) (*Stream, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(columnOrder)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("weather: reading header: %w", err)
	}
	if len(header) != len(columnOrder) {
		return nil, fmt.Errorf("weather: expected %d columns, header has %d", len(columnOrder), len(header))
	}

	var records []Record
	var minDay, maxDay int
	first := true

	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("weather: reading row: %w", err)
		}

		rec, mismatch, t, parseErr := parseRow(row)
		if parseErr != nil {
			return nil, fmt.Errorf("weather: parsing row for %q: %w", row[0], parseErr)
		}
		if mismatch {
			logrus.WithField("time", t).Warn("weather: supplied ISI/BUI/FWI disagree with recomputed values beyond tolerance")
		}

		day := t.YearDay() + t.Year()*366
		if first {
			minDay, maxDay = day, day
			first = false
		}
		if day < minDay {
			minDay = day
		}
		if day > maxDay {
			maxDay = day
		}
		records = append(records, rec)
	}

	if len(records) == 0 {
		return nil, fmt.Errorf("weather: no data rows")
	}

	return NewStream(minDay, maxDay, records, deterministic)
}

func parseRow(row []string) (rec Record, mismatch bool, t time.Time, err error) {
	t, err = time.Parse(csvTimeLayout, row[0])
	if err != nil {
		return Record{}, false, t, fmt.Errorf("date %q: %w", row[0], err)
	}

	vals := make([]float64, len(row)-1)
	for i, s := range row[1:] {
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return Record{}, false, t, fmt.Errorf("column %q value %q: %w", columnOrder[i+1], s, err)
		}
		vals[i] = v
	}
	precip, temp, rh, windSpeed, windDir, ffmc, dmc, dc, isi, bui, fwiVal := vals[0], vals[1], vals[2], vals[3], vals[4], vals[5], vals[6], vals[7], vals[8], vals[9], vals[10]

	rec, mismatch = NewRecord(t, precip, temp, rh, windSpeed, windDir, ffmc, dmc, dc, isi, bui, fwiVal)
	return rec, mismatch, t, nil
}
