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
	"math/rand"
	"testing"
	"time"

	"github.com/jordan-evens/firestarr-tbd-sub001/fuel"
	"github.com/jordan-evens/firestarr-tbd-sub001/weather"
)

// pitchedCells builds a uniform landscape of one fuel code with a given
// slope/aspect, or a caller-supplied per-cell fuel code when split is
// non-nil (used for the two-fuel scenario).
func pitchedCells(rows, columns, slopePercent, aspectDeg int, code fuel.Code, split func(row, col int) fuel.Code) []Cell {
	cells := make([]Cell, rows*columns)
	for r := 0; r < rows; r++ {
		for c := 0; c < columns; c++ {
			cc := code
			if split != nil {
				cc = split(r, c)
			}
			slope, aspect := slopePercent, aspectDeg
			if cc == fuel.NonBurnable {
				slope, aspect = 0, 0
			}
			cells[r*columns+c] = NewCell(r, c, slope, aspect, cc)
		}
	}
	return cells
}

func weatherStream(t *testing.T, hours int, windSpeed, windDir, ffmc, dmc, dc float64) *weather.Stream {
	t.Helper()
	records := make([]weather.Record, hours)
	base := time.Date(2026, time.July, 15, 0, 0, 0, 0, time.UTC)
	for i := range records {
		rec, _ := weather.NewRecord(base.Add(time.Duration(i)*time.Hour), 0, 28, 25, windSpeed, windDir, ffmc, dmc, dc, 0, 0, 0)
		records[i] = rec
	}
	stream, err := weather.NewStream(0, hours/24-1, records, true)
	if err != nil {
		t.Fatal(err)
	}
	return stream
}

// runOneScenario drives one deterministic scenario to completion (no
// Model accumulation needed) and returns it for inspection.
func runOneScenario(cfg Config) *Scenario {
	model := NewModel(cfg.Landscape, StoppingConfig{}, nil, nil)
	rng := rand.New(rand.NewSource(1))
	s := NewScenario(cfg, rng)
	s.Run(model, rng)
	return s
}

func TestScenarioNoFuelWorldNeverBurns(t *testing.T) {
	const rows, columns = 100, 100
	cells := pitchedCells(rows, columns, 0, 0, fuel.NonBurnable, nil)
	cfg := Config{
		Landscape:               NewLandscape(rows, columns, 30, 0, 0, "", cells),
		Fuels:                   fuel.NewTable(),
		Weather:                 weatherStream(t, 24, 0, 0, 90, 35, 275),
		IgnitionRow:             rows / 2,
		IgnitionColumn:          columns / 2,
		Deterministic:           true,
		ThresholdWeightScenario: 1,
		ND:                      196,
	}

	s := runOneScenario(cfg)
	if s.finalSize != 0 {
		t.Errorf("final size = %d, want 0 on an all-non-burnable landscape", s.finalSize)
	}
	if s.CurrentFireSize() != 0 {
		t.Errorf("CurrentFireSize() = %d, want 0", s.CurrentFireSize())
	}
}

func TestScenarioUniformCalmWeatherBurnsRoughlyCircular(t *testing.T) {
	const rows, columns = 500, 500
	cells := pitchedCells(rows, columns, 0, 0, 2, nil)
	ignRow, ignCol := rows/2, columns/2
	cfg := Config{
		Landscape:               NewLandscape(rows, columns, 30, 0, 0, "", cells),
		Fuels:                   fuel.NewTable(),
		Weather:                 weatherStream(t, 24, 0, 0, 90, 35, 275),
		IgnitionRow:             ignRow,
		IgnitionColumn:          ignCol,
		Deterministic:           true,
		ThresholdWeightScenario: 1,
		ND:                      196,
	}

	s := runOneScenario(cfg)

	centre := Location{Row: int32(ignRow), Column: int32(ignCol)}
	if arrival, ok := s.ArrivalTime(centre); !ok || arrival != 0 {
		t.Errorf("centre arrival = (%v, %v), want (0, true)", arrival, ok)
	}
	if s.finalSize <= 1 {
		t.Fatalf("final size = %d, want the fire to have spread beyond the ignition cell", s.finalSize)
	}

	// A cell counts toward a cardinal extent only when it falls within a
	// narrow band straddling that axis, so off-axis (diagonal) burned
	// cells don't inflate a perpendicular extent.
	const band = 5
	north, south, east, west := 0, 0, 0, 0
	s.EachBurned(func(loc Location, _, _ float64) {
		dRow := int(loc.Row) - ignRow
		dCol := int(loc.Column) - ignCol
		if dCol > 0 && abs(dRow) <= band && dCol > north {
			north = dCol
		}
		if dCol < 0 && abs(dRow) <= band && -dCol > south {
			south = -dCol
		}
		if dRow > 0 && abs(dCol) <= band && dRow > east {
			east = dRow
		}
		if dRow < 0 && abs(dCol) <= band && -dRow > west {
			west = -dRow
		}
	})
	if north == 0 || south == 0 || east == 0 || west == 0 {
		t.Fatalf("expected burn extent in all four cardinal directions, got N=%d S=%d E=%d W=%d", north, south, east, west)
	}
	extents := []int{north, south, east, west}
	maxExtent, minExtent := extents[0], extents[0]
	for _, e := range extents {
		if e > maxExtent {
			maxExtent = e
		}
		if e < minExtent {
			minExtent = e
		}
	}
	// No-wind, no-slope spread is a true ellipse with equal semi-axes
	// (head ROS == back ROS when wind speed is 0), so the four cardinal
	// extents should be close; a generous tolerance absorbs the angular
	// sampling schedule's coarseness.
	if float64(maxExtent-minExtent)/float64(maxExtent) > 0.3 {
		t.Errorf("cardinal extents too uneven for a calm-weather burn: N=%d S=%d E=%d W=%d", north, south, east, west)
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func TestScenarioWestWindDrivesFireEast(t *testing.T) {
	const rows, columns = 300, 300
	cells := pitchedCells(rows, columns, 0, 0, 2, nil)
	ignRow, ignCol := rows/2, columns/2
	cfg := Config{
		Landscape:               NewLandscape(rows, columns, 30, 0, 0, "", cells),
		Fuels:                   fuel.NewTable(),
		Weather:                 weatherStream(t, 24, 20, 270, 92, 40, 300),
		IgnitionRow:             ignRow,
		IgnitionColumn:          ignCol,
		Deterministic:           true,
		ThresholdWeightScenario: 1,
		ND:                      196,
	}

	s := runOneScenario(cfg)

	eastExtent, westExtent := 0, 0
	s.EachBurned(func(loc Location, _, _ float64) {
		if d := int(loc.Row) - ignRow; d > eastExtent {
			eastExtent = d
		}
		if d := ignRow - int(loc.Row); d > westExtent {
			westExtent = d
		}
	})
	if eastExtent <= westExtent {
		t.Errorf("want eastward extent > westward extent under a west wind: east=%d west=%d", eastExtent, westExtent)
	}
}

func TestScenarioSouthFacingSlopeDrivesFireNorth(t *testing.T) {
	const rows, columns = 200, 200
	cells := pitchedCells(rows, columns, 30, 180, 2, nil)
	ignRow, ignCol := rows/2, columns/2
	cfg := Config{
		Landscape:               NewLandscape(rows, columns, 30, 0, 0, "", cells),
		Fuels:                   fuel.NewTable(),
		Weather:                 weatherStream(t, 24, 0, 0, 92, 40, 300),
		IgnitionRow:             ignRow,
		IgnitionColumn:          ignCol,
		Deterministic:           true,
		ThresholdWeightScenario: 1,
		ND:                      196,
	}

	s := runOneScenario(cfg)

	// North is increasing Column (matching windDirectionToAzimuth's
	// compass convention, where azimuth 0/north maps to +Column).
	northExtent, southExtent := 0, 0
	s.EachBurned(func(loc Location, _, _ float64) {
		if d := int(loc.Column) - ignCol; d > northExtent {
			northExtent = d
		}
		if d := ignCol - int(loc.Column); d > southExtent {
			southExtent = d
		}
	})
	if northExtent <= southExtent {
		t.Errorf("want the fire to run upslope (north) on a south-facing slope: north=%d south=%d", northExtent, southExtent)
	}
}

func TestScenarioTwoFuelsBurnsOnlyTheBurnableHalf(t *testing.T) {
	const rows, columns = 200, 200
	split := func(_, col int) fuel.Code {
		if col < columns/2 {
			return 2
		}
		return fuel.NonBurnable
	}
	cells := pitchedCells(rows, columns, 0, 0, 0, split)
	ignRow, ignCol := rows/2, columns/4 // inside the burnable (left) half
	cfg := Config{
		Landscape:               NewLandscape(rows, columns, 30, 0, 0, "", cells),
		Fuels:                   fuel.NewTable(),
		Weather:                 weatherStream(t, 24, 0, 0, 92, 40, 300),
		IgnitionRow:             ignRow,
		IgnitionColumn:          ignCol,
		Deterministic:           true,
		ThresholdWeightScenario: 1,
		ND:                      196,
	}

	s := runOneScenario(cfg)
	if s.finalSize <= 1 {
		t.Fatalf("final size = %d, want spread within the burnable half", s.finalSize)
	}
	s.EachBurned(func(loc Location, _, _ float64) {
		if int(loc.Column) >= columns/2 {
			t.Fatalf("cell (%d,%d) in the non-burnable half was marked burned", loc.Row, loc.Column)
		}
	})
}

func TestScenarioDeterministicRunsAreByteIdentical(t *testing.T) {
	const rows, columns = 120, 120
	cells := pitchedCells(rows, columns, 0, 0, 2, nil)
	ignRow, ignCol := rows/2, columns/2
	buildCfg := func() Config {
		return Config{
			Landscape:               NewLandscape(rows, columns, 30, 0, 0, "", cells),
			Fuels:                   fuel.NewTable(),
			Weather:                 weatherStream(t, 24, 10, 135, 92, 40, 300),
			IgnitionRow:             ignRow,
			IgnitionColumn:          ignCol,
			Deterministic:           true,
			ThresholdWeightScenario: 1,
			ND:                      196,
		}
	}

	s1 := runOneScenario(buildCfg())
	s2 := runOneScenario(buildCfg())

	if s1.finalSize != s2.finalSize {
		t.Fatalf("final sizes differ: %d vs %d", s1.finalSize, s2.finalSize)
	}
	mismatches := 0
	s1.EachBurned(func(loc Location, arrival1, intensity1 float64) {
		arrival2, ok := s2.ArrivalTime(loc)
		if !ok || arrival1 != arrival2 || intensity1 != s2.MaxIntensity(loc) {
			mismatches++
		}
	})
	if mismatches != 0 {
		t.Errorf("%d cells differ between two deterministic runs with identical inputs", mismatches)
	}
}
