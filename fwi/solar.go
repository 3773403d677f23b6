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

import "math"

// SunriseSunset returns the approximate local solar time, in decimal
// hours, of sunrise and sunset at the given latitude (degrees) and
// day-of-year (1..366).
//
// This adopts the standard NOAA solar-position approximation (solar
// declination from a truncated Fourier series, then the hour-angle at
// the horizon) for day/night FFMC gating. It is accurate to within about
// a minute for the mid-latitudes FireSTARR/TBD targets (20-70 degrees);
// near the poles in the weeks around the equinoxes the truncated series
// error grows to a few minutes, which is acceptable for hourly-
// resolution fire gating.
func SunriseSunset(latitudeDeg float64, dayOfYear int) (sunrise, sunset float64) {
	const deg2rad = math.Pi / 180

	gamma := 2 * math.Pi / 365 * (float64(dayOfYear) - 1)

	// Solar declination (radians), NOAA approximation.
	decl := 0.006918 -
		0.399912*math.Cos(gamma) + 0.070257*math.Sin(gamma) -
		0.006758*math.Cos(2*gamma) + 0.000907*math.Sin(2*gamma) -
		0.002697*math.Cos(3*gamma) + 0.00148*math.Sin(3*gamma)

	// Equation of time (minutes), NOAA approximation.
	eqTime := 229.18 * (0.000075 +
		0.001868*math.Cos(gamma) - 0.032077*math.Sin(gamma) -
		0.014615*math.Cos(2*gamma) - 0.040849*math.Sin(2*gamma))

	lat := latitudeDeg * deg2rad
	cosH := (math.Cos(90.833*deg2rad) - math.Sin(lat)*math.Sin(decl)) / (math.Cos(lat) * math.Cos(decl))
	cosH = clamp(cosH, -1, 1)
	haDeg := math.Acos(cosH) / deg2rad

	solarNoon := 12 - eqTime/60
	sunrise = solarNoon - haDeg*4/60
	sunset = solarNoon + haDeg*4/60
	return sunrise, sunset
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// IsDaytime reports whether the given hour of day (0..23, local solar
// time) falls between sunrise and sunset.
func IsDaytime(latitudeDeg float64, dayOfYear, hour int) bool {
	sunrise, sunset := SunriseSunset(latitudeDeg, dayOfYear)
	h := float64(hour)
	return h >= sunrise && h <= sunset
}

// LatitudeAdjustedDayOfYear returns the "nd" fuel.Input needs for its
// curing/green-up curves: the calendar day-of-year unchanged at or north
// of the equator, and shifted by half a year (183 days, wrapping past
// 365) south of it, so that a given nd falls at the same point of the
// seasonal cycle in both hemispheres.
//
// The retrieved FireSTARR/TBD source computes this from a per-location
// day-of-minimum-foliar-moisture that additionally depends on elevation,
// but that routine was not among the files retrieved for this port, and
// the CLI surface this package serves takes latitude/longitude without
// elevation. Absent elevation, the half-year hemisphere shift is the
// best-supported approximation: south of the equator the growing season
// runs six months out of phase with the north, so day-of-year is folded
// across the calendar half-year boundary.
func LatitudeAdjustedDayOfYear(latitudeDeg float64, dayOfYear int) int {
	if latitudeDeg >= 0 {
		return dayOfYear
	}
	const halfYear = 183
	shifted := dayOfYear + halfYear
	if shifted > 365 {
		shifted -= 365
	}
	return shifted
}
