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

// Package weather holds the hourly weather stream that drives spread
// calculation: one indexed Record per hour, plus a per-fuel survival
// probability table derived from it.
package weather

import (
	"time"

	"github.com/jordan-evens/firestarr-tbd-sub001/fwi"
)

// validationEpsilon bounds how far a weather file's own ISI/BUI/FWI
// values may drift from the recomputed ones before it is
// worth a warning. Some weather files carry indices computed by a
// different FWI implementation (rounding, different wind-function
// tables); that is not fatal, only suspicious.
const validationEpsilon = 0.5

// Record is a single hour of observed weather plus its six FWI indices.
// Every field is read-only once constructed: ISI, BUI, and FWI are
// always recomputed from WindSpeed/FFMC/DMC/DC rather than
// trusted verbatim from input, per spec.
type Record struct {
	Time time.Time

	Precip      float64 // mm in the preceding hour
	Temp        float64 // degrees C
	RH          float64 // relative humidity, %
	WindSpeed   float64 // km/h
	WindDir     float64 // degrees, meteorological (FROM direction)

	FFMC float64
	DMC  float64
	DC   float64
	ISI  float64
	BUI  float64
	FWI  float64

	// SuppliedISI, SuppliedBUI, SuppliedFWI hold whatever values the
	// source file carried, for the epsilon comparison in NewRecord's
	// caller. They are not used once validated.
	SuppliedISI, SuppliedBUI, SuppliedFWI float64
}

// NewRecord builds a Record, recomputing ISI/BUI/FWI from the supplied
// FFMC/DMC/DC/wind rather than trusting the file's own columns, and
// reports whether those columns disagreed with the recomputation by
// more than validationEpsilon (a warning condition, never fatal).
func NewRecord(t time.Time, precip, temp, rh, windSpeed, windDir, ffmc, dmc, dc, suppliedISI, suppliedBUI, suppliedFWI float64) (Record, bool) {
	isi := fwi.ISI(ffmc, windSpeed)
	bui := fwi.BUI(dmc, dc)
	fwiValue := fwi.FWI(isi, bui)

	r := Record{
		Time:        t,
		Precip:      precip,
		Temp:        temp,
		RH:          rh,
		WindSpeed:   windSpeed,
		WindDir:     windDir,
		FFMC:        ffmc,
		DMC:         dmc,
		DC:          dc,
		ISI:         isi,
		BUI:         bui,
		FWI:         fwiValue,
		SuppliedISI: suppliedISI,
		SuppliedBUI: suppliedBUI,
		SuppliedFWI: suppliedFWI,
	}

	mismatch := absDiff(isi, suppliedISI) > validationEpsilon ||
		absDiff(bui, suppliedBUI) > validationEpsilon ||
		absDiff(fwiValue, suppliedFWI) > validationEpsilon
	return r, mismatch
}

func absDiff(a, b float64) float64 {
	d := a - b
	if d < 0 {
		return -d
	}
	return d
}

// FineFuelMoistureContent converts FFMC to the fine fuel moisture
// content percentage used directly by the spread calculation.
func (r Record) FineFuelMoistureContent() float64 {
	return 147.2 * (101 - r.FFMC) / (59.5 + r.FFMC)
}
