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
	"math"

	"github.com/jordan-evens/firestarr-tbd-sub001/fuel"
	"github.com/jordan-evens/firestarr-tbd-sub001/fwi"
	"github.com/jordan-evens/firestarr-tbd-sub001/weather"
)

// SpreadKey identifies a cell's static spread-relevant properties: the
// memoization cache is keyed on this plus the weather hour, since two
// cells with the same fuel/slope/aspect under the same hour's weather
// spread identically.
type SpreadKey struct {
	FuelCode fuel.Code
	Slope    int
	Aspect   int
}

// SpreadResult is the outcome of evaluating the spread calculation for
// one SpreadKey at one simulation hour.
type SpreadResult struct {
	NoSpread     bool
	HeadROS      float64 // m/min
	BackROS      float64
	FlankROS     float64
	MaxIntensity float64 // kW/m
	Raz          float64 // head-fire azimuth, radians
	IsCrown      bool

	// Offsets are (dx, dy) rate-of-spread vectors in m/min, one per
	// angular sample around the ellipse, already skipping any radius
	// below the minimum-ROS gate. They are not in cell-widths: the
	// Scenario scales them by each step's duration and the cell size.
	Offsets []Point
}

// angleSchedule is the fixed angular schedule (0, +-10, +-20, ..., +-180
// degrees from the head) at which the ellipse is sampled.
var angleSchedule = buildAngleSchedule()

func buildAngleSchedule() []float64 {
	var angles []float64
	angles = append(angles, 0)
	for deg := 10; deg <= 180; deg += 10 {
		angles = append(angles, float64(deg)*math.Pi/180)
		angles = append(angles, -float64(deg)*math.Pi/180)
	}
	return angles
}

// SpreadInputs bundles everything the spread calculation needs for one
// (cell, hour) evaluation. dailyWeather gates whether fire spreads at
// all today; hourlyWeather is the actual spread input once that gate
// passes.
type SpreadInputs struct {
	Fuel fuel.Type

	SlopePercent int
	AspectDeg    int

	// ND is the latitude-adjusted day-of-year used by curing/green-up
	// curves.
	ND int

	Curing float64

	DailyWeather  weather.Record
	HourlyWeather weather.Record

	// MinimumROS is the deterministic-mode floor, or the stochastic
	// gate from Scenario.minimumROS otherwise.
	MinimumROS float64

	Deterministic bool
}

// Spread runs the full nine-step spread calculation (slope-corrected
// wind, head/back/flank ROS, crown determination, ellipse offsets, and
// max intensity) and is a pure function of its inputs. Callers
// (Scenario) are responsible for memoizing per SpreadKey per hour.
func Spread(in SpreadInputs) SpreadResult {
	windSpeed := in.HourlyWeather.WindSpeed
	raz := windDirectionToAzimuth(in.HourlyWeather.WindDir)

	// Step 1: slope-corrected wind-equivalent.
	if in.SlopePercent > 0 {
		windSpeed, raz = slopeCorrectedWind(in.Fuel, in.SlopePercent, in.AspectDeg, windSpeed, raz, in.DailyWeather.FFMC, in.DailyWeather.BUI)
	}

	// Steps 2-5 evaluated first against the daily weather as a
	// "would this spread at all today" gate.
	gateResult := evaluateHeadROS(in.Fuel, in.ND, in.DailyWeather.FFMC, in.DailyWeather.BUI, windSpeed, in.Curing, in.MinimumROS)
	if gateResult.NoSpread {
		return SpreadResult{NoSpread: true}
	}

	// Step 6: recompute (2)-(5) with the actual hourly weather.
	result := evaluateHeadROS(in.Fuel, in.ND, in.HourlyWeather.FFMC, in.HourlyWeather.BUI, windSpeed, in.Curing, in.MinimumROS)
	if result.NoSpread {
		return SpreadResult{NoSpread: true}
	}

	headROS := result.HeadROS
	isCrown := result.IsCrown
	sfc := result.SFC
	cfb := result.CFB

	// Step 7: back and flank ROS.
	backIdx := backISI(in.HourlyWeather.FFMC, windSpeed)
	backROS := in.Fuel.ROSAtISI(backIdx, in.HourlyWeather.BUI) * in.Fuel.BUIEffect(in.HourlyWeather.BUI) * in.Fuel.CuringMultiplier(in.Curing)
	if backROS > headROS {
		backROS = headROS
	}
	ltob := in.Fuel.LengthToBreadth(windSpeed)
	a := (headROS + backROS) / 2
	flankROS := a / ltob

	// Step 8: angular ellipse schedule, oriented along the head-fire azimuth.
	offsets := ellipseOffsets(headROS, backROS, flankROS, in.MinimumROS, in.SlopePercent, in.AspectDeg, raz)

	// Step 9: max intensity.
	crownConsumption := in.Fuel.CrownConsumption(cfb)
	maxIntensity := fuel.FireIntensity(sfc+crownConsumption*cfb, headROS)

	return SpreadResult{
		HeadROS:      headROS,
		BackROS:      backROS,
		FlankROS:     flankROS,
		MaxIntensity: maxIntensity,
		Raz:          raz,
		IsCrown:      isCrown,
		Offsets:      offsets,
	}
}

type headROSResult struct {
	NoSpread bool
	HeadROS  float64
	SFC      float64
	CFB      float64
	IsCrown  bool
}

// evaluateHeadROS computes ISI from wind and FFMC, head ROS scaled by
// the BUI effect, the minimum-ROS gate, and crown-fire determination
// with recomputed head ROS if crowning.
func evaluateHeadROS(ft fuel.Type, nd int, ffmc, bui, windSpeed, curing, minimumROS float64) headROSResult {
	isi := isiFromWind(ffmc, windSpeed)

	surfaceROS := ft.ROSAtISI(isi, bui) * ft.BUIEffect(bui) * ft.CuringMultiplier(curing)
	if surfaceROS < minimumROS {
		return headROSResult{NoSpread: true}
	}

	sfc := ft.SurfaceFuelConsumption(fuel.Input{BUI: bui, ND: nd, Curing: curing})
	critical := ft.CriticalSurfaceIntensity()
	surfaceIntensity := fuel.FireIntensity(sfc, surfaceROS)

	isCrown := ft.CanCrown() && surfaceIntensity > critical
	headROS := surfaceROS
	cfb := 0.0
	if isCrown {
		cfb = ft.CrownFractionBurned(surfaceIntensity, critical)
		headROS = ft.FinalROS(surfaceROS, cfb)
	}

	if headROS < minimumROS {
		return headROSResult{NoSpread: true}
	}

	return headROSResult{HeadROS: headROS, SFC: sfc, CFB: cfb, IsCrown: isCrown}
}

// isiFromWind computes ISI from FFMC and an already slope-adjusted wind
// speed.
func isiFromWind(ffmc, windSpeed float64) float64 {
	return fwi.ISI(ffmc, windSpeed)
}

// backISI is the ISI used for back-spread: identical formula, since the
// FBP back-spread correction is entirely in the fuel's ROS curve
// response to a reduced effective wind (here, zero, matching the
// no-wind-assist convention for back spread).
func backISI(ffmc, windSpeed float64) float64 {
	return fwi.ISI(ffmc, 0)
}

// slopeCorrectedWind solves ISF-inverse for the fuel to find the
// wind-equivalent of the upslope component, and combines it vectorially
// with the actual wind to produce a corrected wind speed and azimuth.
func slopeCorrectedWind(ft fuel.Type, slopePercent, aspectDeg int, windSpeed, raz, ffmc, bui float64) (float64, float64) {
	slopeFactor := slopeSpreadFactor(slopePercent)
	isi := fwi.ISI(ffmc, windSpeed)
	surfaceROS := ft.ROSAtISI(isi, bui) * ft.BUIEffect(bui)
	targetROS := surfaceROS * slopeFactor
	isf := ft.ISFInverse(targetROS, bui)

	wsv := isfToWindSpeed(isf)
	// aspectDeg is the compass direction the slope faces (downhill); the
	// wind-equivalent push is directed uphill, the opposite azimuth.
	upslopeAz := math.Mod(float64(aspectDeg)+180, 360) * math.Pi / 180

	wx := windSpeed*math.Sin(raz) + wsv*math.Sin(upslopeAz)
	wy := windSpeed*math.Cos(raz) + wsv*math.Cos(upslopeAz)

	combinedSpeed := math.Hypot(wx, wy)
	combinedAz := math.Atan2(wx, wy)
	if combinedAz < 0 {
		combinedAz += 2 * math.Pi
	}
	return combinedSpeed, combinedAz
}

// slopeSpreadFactor is the FBP slope-effect multiplier on ISI-equivalent
// ROS: SF = exp(3.533*(slope/100)^1.2).
func slopeSpreadFactor(slopePercent int) float64 {
	s := float64(slopePercent) / 100
	return math.Exp(3.533 * math.Pow(s, 1.2))
}

// isfToWindSpeed inverts the ISI wind-function to recover an equivalent
// wind speed from an ISF value (holding FFMC's fine-fuel term fixed is
// not needed here: the inversion is purely of the wind multiplier).
func isfToWindSpeed(isf float64) float64 {
	if isf <= 0 {
		return 0
	}
	return math.Log(isf) / 0.05039
}

// windDirectionToAzimuth converts a meteorological "from" wind direction
// (degrees) into the head-fire azimuth (radians) the fire runs toward.
func windDirectionToAzimuth(windDirDeg float64) float64 {
	toward := math.Mod(windDirDeg+180, 360)
	return toward * math.Pi / 180
}

// ellipseOffsets evaluates the fire ellipse radius at the fixed angular
// schedule (theta measured from the head direction), applying a
// direction-dependent horizontal-distance correction on slope, and emits
// (dx, dy) offsets in m/min rotated so the head direction points along
// raz (radians). Every radius under the minimum-ROS gate is dropped on
// its own; sampling does not stop at the first one, it goes on through
// the whole schedule, so the ellipse is open in each direction whose
// radius fails the gate. The minimum-ROS gate is evaluated against the raw
// (uncorrected) radius, matching the order the ellipse is actually
// built in: the gate is about whether the fire is spreading fast enough
// in that direction at all, not about the slope-shortened map distance.
func ellipseOffsets(headROS, backROS, flankROS, minimumROS float64, slopePercent, aspectDeg int, raz float64) []Point {
	a := (headROS + backROS) / 2
	cOffset := a - backROS
	b := flankROS

	offsets := make([]Point, 0, len(angleSchedule))
	for _, theta := range angleSchedule {
		rho := ellipseRadius(a, b, cOffset, theta)
		if rho < minimumROS {
			// Down-wind radii below the gate are dropped outright,
			// leaving the ellipse open in that direction rather than
			// emitting a near-zero offset.
			continue
		}
		absolute := raz + theta
		correction := directionalSlopeCorrection(absolute, slopePercent, aspectDeg)
		dx := rho * math.Sin(absolute) * correction
		dy := rho * math.Cos(absolute) * correction
		offsets = append(offsets, Point{X: dx, Y: dy})
	}
	return offsets
}

// ellipseRadius returns the fire-ellipse radius at angle theta (0 = head
// direction) for an ellipse with semi-major axis a, flank (semi-minor
// family) rate b, and focal offset cOffset = a - backROS.
//
// This is the general closed-form solution of the fire-ellipse polar
// equation, not the textbook conic-focal simplification r = b^2/(a -
// c*cos(theta)): that simplification only holds when b^2 = a^2 - c^2,
// i.e. when b is the true geometric semi-minor axis. Here b is the
// independently measured flank rate of spread, which the FBP ellipse
// does not constrain to satisfy that identity, so the general solution
// is required at every non-cardinal angle.
func ellipseRadius(a, b, cOffset, theta float64) float64 {
	cosT := math.Cos(theta)
	aSq := a * a
	aSqSubCSq := aSq - cOffset*cOffset
	if math.Abs(cosT) < 1e-9 {
		// theta = +-90 degrees: the general form is 0/0 here since both
		// the numerator and cos(theta) vanish together. The limit is
		// the flank rate scaled by the ellipse's perpendicular extent.
		return b * math.Sqrt(aSqSubCSq) / a
	}

	bSq := b * b
	cosTSq := cosT * cosT
	sinT := math.Sin(theta)
	sinTSq := sinT * sinT
	bSqCosTSq := bSq * cosTSq
	ac := a * cOffset

	numerator := b*cosT*math.Sqrt(bSqCosTSq+aSqSubCSq*sinTSq) - ac*sinTSq
	denom := bSqCosTSq + aSq*sinTSq
	return math.Abs((a*(numerator/denom) + cOffset) / cosT)
}

// directionalSlopeCorrection returns the horizontal-distance correction
// for a spread direction (absolute azimuth, radians) on a slope. The
// correction is 1.0 spreading exactly across the slope (perpendicular
// to the fall line) and only reaches the slope's full foreshortening
// value spreading exactly along it: slope shortens the map-plane
// distance a fire front travels only in proportion to how much of that
// travel is up/down the fall line, not uniformly in every direction.
func directionalSlopeCorrection(direction float64, slopePercent, aspectDeg int) float64 {
	if slopePercent <= 0 {
		return 1.0
	}
	bSemi := math.Cos(math.Atan(float64(slopePercent) / 100))
	slopeRadians := float64(aspectDeg) * math.Pi / 180

	angleUnrotated := direction - slopeRadians
	if math.Abs(math.Cos(angleUnrotated)) < 1e-9 {
		// Spreading exactly across the slope: no foreshortening.
		return 1.0
	}

	tanU := math.Tan(angleUnrotated)
	y := bSemi / math.Sqrt(bSemi*tanU*(bSemi*tanU)+1.0)
	x := y * tanU
	return math.Min(1.0, math.Hypot(x, y))
}
