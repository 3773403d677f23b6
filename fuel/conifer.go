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

// conifer implements the FBP C-series (C-1 through C-7) closed conifer
// fuel types. All seven share the same equation shapes; only the
// calibration constants differ.
type conifer struct {
	name            string
	a, b, c         float64 // RSI curve
	q               float64 // BUI effect shape parameter
	bui0            float64 // BUI the curve was calibrated at
	crownBaseHeight float64 // m
	crownFuelLoad   float64 // kg/m^2, available for crown consumption
	sfcP1, sfcP2    float64 // surface fuel consumption coefficients
	canCrown        bool
}

func (f conifer) Name() string   { return f.name }
func (f conifer) CanCrown() bool { return f.canCrown }

func (f conifer) SurfaceFuelConsumption(in Input) float64 {
	// Forestry Canada (1992) closed-conifer SFC curve: asymptotic in BUI.
	return f.sfcP1 * (1 - math.Exp(-f.sfcP2*in.BUI))
}

func (f conifer) ROSAtISI(isi, bui float64) float64 {
	rsi := rosCurve(f.a, f.b, f.c, isi)
	return rsi * buiEffect(f.q, f.bui0, bui)
}

func (f conifer) ISFInverse(targetROS, bui float64) float64 {
	be := buiEffect(f.q, f.bui0, bui)
	if be <= 0 {
		return 0
	}
	targetRSI := targetROS / be
	return invertROSCurve(f.a, f.b, f.c, targetRSI)
}

func (f conifer) BUIEffect(bui float64) float64 { return buiEffect(f.q, f.bui0, bui) }

func (f conifer) CuringMultiplier(float64) float64 { return 1 }

func (f conifer) LengthToBreadth(windSpeed float64) float64 { return lengthToBreadth(windSpeed) }

func (f conifer) CrownConsumption(cfb float64) float64 {
	if !f.canCrown {
		return 0
	}
	return f.crownFuelLoad * cfb
}

func (f conifer) CrownFractionBurned(surfaceIntensity, criticalIntensity float64) float64 {
	if !f.canCrown {
		return 0
	}
	return crownFractionBurned(surfaceIntensity, criticalIntensity)
}

func (f conifer) CriticalSurfaceIntensity() float64 {
	if !f.canCrown {
		return math.Inf(1)
	}
	return criticalSurfaceIntensity(f.crownBaseHeight, foliarMoistureContent(150))
}

func (f conifer) FinalROS(surfaceROS, cfb float64) float64 {
	if !f.canCrown {
		return surfaceROS
	}
	// Crown spread rate scales the surface rate by the classic FBP
	// conifer crown multiplier (Forestry Canada 1992, eq. 62 shape).
	crownROS := surfaceROS * (1 + 0.0001*f.crownFuelLoad*1000)
	return finalROS(surfaceROS, crownROS, cfb)
}

func (f conifer) SurvivalProbability(in Input) float64 {
	// Drier fine fuel moisture codes sustain embers more readily; this
	// is a monotonic logistic in FFMC, distinct from the per-scenario
	// spread-threshold logistic used on ROS.
	return 1 / (1 + math.Exp(-0.17*(in.FFMC-80)))
}

func registerConifers(t *Table) {
	types := []struct {
		code Code
		f    conifer
	}{
		{1, conifer{name: "C-1", a: 90, b: 0.0649, c: 4.5, q: 0.90, bui0: 72, crownBaseHeight: 2, crownFuelLoad: 0.75, sfcP1: 1.5, sfcP2: 0.0230, canCrown: true}},
		{2, conifer{name: "C-2", a: 110, b: 0.0282, c: 1.5, q: 0.70, bui0: 64, crownBaseHeight: 3, crownFuelLoad: 0.80, sfcP1: 5.0, sfcP2: 0.0115, canCrown: true}},
		{3, conifer{name: "C-3", a: 110, b: 0.0444, c: 3.0, q: 0.75, bui0: 62, crownBaseHeight: 8, crownFuelLoad: 1.15, sfcP1: 5.0, sfcP2: 0.0164, canCrown: true}},
		{4, conifer{name: "C-4", a: 110, b: 0.0293, c: 1.5, q: 0.80, bui0: 66, crownBaseHeight: 4, crownFuelLoad: 1.20, sfcP1: 5.0, sfcP2: 0.0164, canCrown: true}},
		{5, conifer{name: "C-5", a: 30, b: 0.0697, c: 4.0, q: 0.80, bui0: 56, crownBaseHeight: 18, crownFuelLoad: 1.20, sfcP1: 5.0, sfcP2: 0.0149, canCrown: true}},
		{6, conifer{name: "C-6", a: 30, b: 0.0800, c: 3.0, q: 0.80, bui0: 62, crownBaseHeight: 7, crownFuelLoad: 1.80, sfcP1: 5.0, sfcP2: 0.0149, canCrown: true}},
		{7, conifer{name: "C-7", a: 45, b: 0.0305, c: 2.0, q: 0.85, bui0: 106, crownBaseHeight: 10, crownFuelLoad: 0.50, sfcP1: 2.0, sfcP2: 0.0187, canCrown: true}},
	}
	for _, e := range types {
		t.Register(e.code, e.f)
	}
}
