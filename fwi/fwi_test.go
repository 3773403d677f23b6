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

package fwi

import (
	"math"
	"testing"
)

func TestFFMCBounded(t *testing.T) {
	cases := []struct {
		ffmcPrev, temp, rh, wind, precip float64
	}{
		{85, 20, 40, 10, 0},
		{85, 20, 40, 10, 5},
		{0, 30, 10, 30, 0},
		{101, -10, 100, 0, 0},
	}
	for _, c := range cases {
		got := FFMC(c.ffmcPrev, c.temp, c.rh, c.wind, c.precip)
		if got < 0 || got > 101 {
			t.Errorf("FFMC%+v = %v, want in [0,101]", c, got)
		}
		if math.IsNaN(got) {
			t.Errorf("FFMC%+v = NaN", c)
		}
	}
}

func TestISIIncreasesWithWindAndFFMC(t *testing.T) {
	low := ISI(85, 0)
	high := ISI(85, 30)
	if high <= low {
		t.Errorf("want ISI to increase with wind speed: ISI(85,0)=%v ISI(85,30)=%v", low, high)
	}
	higherFFMC := ISI(95, 0)
	if higherFFMC <= low {
		t.Errorf("want ISI to increase with FFMC")
	}
}

func TestBUIZeroInputs(t *testing.T) {
	if got := BUI(0, 0); got != 0 {
		t.Errorf("BUI(0,0) = %v, want 0", got)
	}
}

func TestBUINonNegative(t *testing.T) {
	for _, dmc := range []float64{0, 10, 50, 150} {
		for _, dc := range []float64{0, 10, 100, 500} {
			got := BUI(dmc, dc)
			if got < 0 || math.IsNaN(got) {
				t.Errorf("BUI(%v,%v) = %v, want >= 0", dmc, dc, got)
			}
		}
	}
}

func TestFWIIncreasesWithISIAndBUI(t *testing.T) {
	base := FWI(5, 40)
	higherISI := FWI(20, 40)
	higherBUI := FWI(5, 100)
	if higherISI <= base {
		t.Errorf("want FWI to increase with ISI")
	}
	if higherBUI <= base {
		t.Errorf("want FWI to increase with BUI")
	}
}

func TestSunriseBeforeSunset(t *testing.T) {
	for _, lat := range []float64{20, 45, 60} {
		for _, day := range []int{1, 90, 180, 270} {
			sunrise, sunset := SunriseSunset(lat, day)
			if sunrise >= sunset {
				t.Errorf("lat=%v day=%v: sunrise %v not before sunset %v", lat, day, sunrise, sunset)
			}
		}
	}
}

func TestIsDaytimeNoonIsDaytime(t *testing.T) {
	if !IsDaytime(45, 180, 12) {
		t.Error("want noon to be daytime at mid-latitude in summer")
	}
	if IsDaytime(45, 180, 2) {
		t.Error("want 2am to be nighttime")
	}
}

func TestWindFunctionMemoTableMatchesFormula(t *testing.T) {
	for ws := 0; ws <= 50; ws++ {
		got := WindFunction(float64(ws))
		want := math.Exp(0.05039 * float64(ws))
		if math.Abs(got-want) > 1e-9 {
			t.Errorf("WindFunction(%d) = %v, want %v", ws, got, want)
		}
	}
}
