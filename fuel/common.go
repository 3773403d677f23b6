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

package fuel

import "math"

// rosCurve computes the FBP "RSI" ISI-response curve common to every
// fuel family: RSI = a*(1-exp(-b*ISI))^c.
func rosCurve(a, b, c, isi float64) float64 {
	return a * math.Pow(1-math.Exp(-b*isi), c)
}

// buiEffect computes the standard multiplicative BUI correction,
// BE = exp(50*ln(q)*(1/BUI - 1/BUI0)), clamped to a sane range so a
// zero or near-zero BUI cannot blow the curve up.
func buiEffect(q, bui0, bui float64) float64 {
	if bui <= 0 {
		bui = 0.1
	}
	be := math.Exp(50 * math.Log(q) * (1/bui - 1/bui0))
	if be < 0 {
		be = 0
	}
	if be > 2.5 {
		be = 2.5
	}
	return be
}

// lengthToBreadth is Alexander's (1985) wind-speed-dependent fire ellipse
// length-to-breadth ratio, shared by every fuel type that is not open
// grassland.
func lengthToBreadth(windSpeed float64) float64 {
	return 1 + 8.729*math.Pow(1-math.Exp(-0.03*windSpeed), 2.155)
}

// lengthToBreadthGrass is the corresponding ratio for open (O-series)
// fuels, which develop narrower ellipses at a given wind speed.
func lengthToBreadthGrass(windSpeed float64) float64 {
	return 1.1 * math.Pow(windSpeed, 0.464)
}

// foliarMoistureContent approximates the seasonal FMC curve (Van Wagner
// 1977) from the latitude-adjusted day of year.
func foliarMoistureContent(nd int) float64 {
	n := float64(nd)
	switch {
	case n < 0:
		return 120
	case n < 50:
		return 85 + 0.0189*n*n
	case n < 110:
		return 32.9 + 3.17*n - 0.0288*n*n
	default:
		return 120
	}
}

// criticalSurfaceIntensity is Van Wagner's (1977) critical surface
// intensity for the onset of crowning, given the fuel's crown base
// height (m) and the current foliar moisture content.
func criticalSurfaceIntensity(crownBaseHeight, fmc float64) float64 {
	if crownBaseHeight <= 0 {
		return 0
	}
	return 0.001 * math.Pow(crownBaseHeight, 1.5) * math.Pow(460+25.9*fmc, 1.5)
}

// crownFractionBurned is Van Wagner's (1977)/Forestry Canada (1992) CFB
// formula, relating crown fraction burned to how far surface intensity
// exceeds the critical surface intensity.
func crownFractionBurned(surfaceIntensity, criticalIntensity float64) float64 {
	if criticalIntensity <= 0 || surfaceIntensity <= criticalIntensity {
		return 0
	}
	cfb := 1 - math.Exp(-0.23*(surfaceIntensity-criticalIntensity)/1000)
	if cfb < 0 {
		return 0
	}
	if cfb > 1 {
		return 1
	}
	return cfb
}

// finalROS blends surface and crown rate of spread once crowning has
// begun (Forestry Canada 1992, eq. 61): ROS = RSS + CFB*(RSC - RSS).
// Here it is expressed in the form the spread calculator uses: given the
// already-computed surface ROS and crown fraction burned, return the
// fuel's own crown-spread-rate function blended in.
func finalROS(surfaceROS, crownROS, cfb float64) float64 {
	return surfaceROS + cfb*(crownROS-surfaceROS)
}

// invertROSCurve numerically inverts rosCurve for ISF given a target ROS,
// used to back out the slope-equivalent wind speed in the ISI formula.
// Bisection is sufficient: rosCurve is monotonic increasing in ISI.
func invertROSCurve(a, b, c, targetRSI float64) float64 {
	if targetRSI <= 0 {
		return 0
	}
	lo, hi := 0.0, 1.0
	for rosCurve(a, b, c, hi) < targetRSI && hi < 1e6 {
		hi *= 2
	}
	for i := 0; i < 60; i++ {
		mid := (lo + hi) / 2
		if rosCurve(a, b, c, mid) < targetRSI {
			lo = mid
		} else {
			hi = mid
		}
	}
	return (lo + hi) / 2
}
