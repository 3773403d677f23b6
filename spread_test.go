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
	"testing"

	"github.com/jordan-evens/firestarr-tbd-sub001/fuel"
	"github.com/jordan-evens/firestarr-tbd-sub001/weather"
)

func lookupC2(t *testing.T) fuel.Type {
	t.Helper()
	ft, err := fuel.NewTable().Lookup(2)
	if err != nil {
		t.Fatal(err)
	}
	return ft
}

func TestSpreadProducesHeadROSUnderFireWeather(t *testing.T) {
	ft := lookupC2(t)
	rec := weather.Record{FFMC: 92, BUI: 60, WindSpeed: 20, WindDir: 270}

	result := Spread(SpreadInputs{
		Fuel:          ft,
		SlopePercent:  0,
		AspectDeg:     0,
		ND:            180,
		Curing:        0,
		DailyWeather:  rec,
		HourlyWeather: rec,
		MinimumROS:    minimumROSFloor,
		Deterministic: true,
	})

	if result.NoSpread {
		t.Fatal("want spread under high FFMC/wind conditions")
	}
	if result.HeadROS <= 0 {
		t.Errorf("HeadROS = %v, want > 0", result.HeadROS)
	}
	if len(result.Offsets) == 0 {
		t.Error("want at least one ellipse offset")
	}
}

func TestSpreadNoSpreadBelowHighMinimumROS(t *testing.T) {
	ft := lookupC2(t)
	rec := weather.Record{FFMC: 85, BUI: 30, WindSpeed: 5, WindDir: 180}

	result := Spread(SpreadInputs{
		Fuel:          ft,
		SlopePercent:  0,
		AspectDeg:     0,
		ND:            180,
		Curing:        0,
		DailyWeather:  rec,
		HourlyWeather: rec,
		MinimumROS:    1e6,
		Deterministic: true,
	})

	if !result.NoSpread {
		t.Error("want NoSpread=true when the minimum-ROS gate is unreachable")
	}
}

func TestSpreadHeadExceedsBackROS(t *testing.T) {
	ft := lookupC2(t)
	rec := weather.Record{FFMC: 92, BUI: 60, WindSpeed: 20, WindDir: 270}

	result := Spread(SpreadInputs{
		Fuel:          ft,
		DailyWeather:  rec,
		HourlyWeather: rec,
		ND:            180,
		MinimumROS:    minimumROSFloor,
		Deterministic: true,
	})
	if result.NoSpread {
		t.Fatal("want spread")
	}
	if result.BackROS > result.HeadROS {
		t.Errorf("BackROS %v > HeadROS %v, want back <= head", result.BackROS, result.HeadROS)
	}
}

func TestWindDirectionToAzimuthIsOpposite(t *testing.T) {
	got := windDirectionToAzimuth(0)
	want := 3.141592653589793 // pi radians, wind FROM north blows TOWARD south
	if diff := got - want; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("windDirectionToAzimuth(0) = %v, want %v", got, want)
	}
}

func TestSlopeSpreadFactorIncreasesWithSlope(t *testing.T) {
	flat := slopeSpreadFactor(0)
	steep := slopeSpreadFactor(60)
	if steep <= flat {
		t.Errorf("want slope factor to increase with slope: flat=%v steep=%v", flat, steep)
	}
}

func TestEllipseOffsetsRespectMinimumROSGate(t *testing.T) {
	offsets := ellipseOffsets(50, 5, 15, 1000, 0, 0, 0)
	if len(offsets) != 0 {
		t.Errorf("want no offsets when minimumROS exceeds every ellipse radius, got %d", len(offsets))
	}
}

func TestEllipseRadiusGeneralFormAtNonCardinalAngle(t *testing.T) {
	// a=8, c=2, flankROS=3, theta=45 degrees: the general fire-ellipse
	// closed form gives ~4.21, markedly different from the ~1.37 the
	// simplified conic-focal formula (r = b^2/(a - c*cos(theta)), valid
	// only when b^2 = a^2 - c^2) would produce.
	const a, c, flankROS = 8.0, 2.0, 3.0
	theta := math.Pi / 4

	got := ellipseRadius(a, flankROS, c, theta)
	want := 4.21
	if diff := got - want; diff > 0.01 || diff < -0.01 {
		t.Errorf("ellipseRadius(a=%v, b=%v, c=%v, 45deg) = %v, want ~%v", a, flankROS, c, got, want)
	}

	// Sanity check against the simplified (wrong) conic formula, which
	// must diverge sharply here since flankROS is not the fuel's true
	// geometric semi-minor axis (flankROS^2 != a^2 - c^2).
	simplified := (flankROS * flankROS) / (a - c*math.Cos(theta))
	if diff := got - simplified; diff < 1.0 {
		t.Errorf("general form (%v) should diverge sharply from the simplified conic form (%v) at this angle", got, simplified)
	}
}

func TestEllipseRadiusMatchesFlankAtRightAngle(t *testing.T) {
	// At exactly +-90 degrees the general closed form hits the 0/0 case
	// and falls back to its analytic limit, flank*sqrt(a^2-c^2)/a.
	const a, c, flankROS = 8.0, 2.0, 3.0
	want := flankROS * math.Sqrt(a*a-c*c) / a

	for _, theta := range []float64{math.Pi / 2, -math.Pi / 2} {
		got := ellipseRadius(a, flankROS, c, theta)
		if diff := got - want; diff > 1e-9 || diff < -1e-9 {
			t.Errorf("ellipseRadius(theta=%v) = %v, want %v", theta, got, want)
		}
	}
}

func TestDirectionalSlopeCorrectionVariesWithDirection(t *testing.T) {
	// Spreading exactly across the slope (perpendicular to the fall
	// line, aspect=0) gets no foreshortening; spreading exactly along
	// it gets the full isotropic value a single-scalar correction would
	// have applied uniformly everywhere.
	const slopePercent, aspectDeg = 58, 0

	across := directionalSlopeCorrection(math.Pi/2, slopePercent, aspectDeg)
	if diff := across - 1.0; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("across-slope correction = %v, want 1.0", across)
	}

	along := directionalSlopeCorrection(0, slopePercent, aspectDeg)
	isotropic := math.Cos(math.Atan(float64(slopePercent) / 100))
	if diff := along - isotropic; diff > 1e-9 || diff < -1e-9 {
		t.Errorf("along-slope correction = %v, want %v", along, isotropic)
	}
	if along >= 1.0 {
		t.Errorf("along-slope correction = %v, want < 1.0 for a nonzero slope", along)
	}
}
