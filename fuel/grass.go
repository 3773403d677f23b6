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

// grass implements the FBP O-series open grass fuel types (O-1a matted,
// O-1b standing). Unlike every other family, grass ROS is modulated by a
// curing factor instead of the BUI effect, and grass never crowns.
type grass struct {
	name    string
	a, b, c float64
}

func (f grass) Name() string   { return f.name }
func (f grass) CanCrown() bool { return false }

func (f grass) SurfaceFuelConsumption(in Input) float64 {
	return 0.3 * in.Curing // standing dead grass load scales with curing
}

// curingFactor is the Forestry Canada (1992) grass curing correction:
// negligible spread below ~58% curing, approaching 1 as curing nears
// 100%.
func curingFactor(curing float64) float64 {
	pct := curing * 100
	if pct < 58.8 {
		cf := 0.005 * (math.Exp(0.061*pct) - 1)
		if cf < 0 {
			return 0
		}
		return cf
	}
	return 0.176 + 0.02*(pct-58.8)
}

func (f grass) ROSAtISI(isi, bui float64) float64 {
	// Fully-cured spread rate; the caller applies CuringMultiplier to
	// scale it down for partially cured grass.
	return rosCurve(f.a, f.b, f.c, isi)
}

func (f grass) ISFInverse(targetROS, bui float64) float64 {
	return invertROSCurve(f.a, f.b, f.c, targetROS)
}

func (f grass) BUIEffect(bui float64) float64 { return 1 } // grass ignores BUI

func (f grass) CuringMultiplier(curing float64) float64 { return curingFactor(curing) }

func (f grass) LengthToBreadth(windSpeed float64) float64 { return lengthToBreadthGrass(windSpeed) }

func (f grass) CrownConsumption(float64) float64 { return 0 }

func (f grass) CrownFractionBurned(float64, float64) float64 { return 0 }

func (f grass) CriticalSurfaceIntensity() float64 { return math.Inf(1) }

func (f grass) FinalROS(surfaceROS, cfb float64) float64 { return surfaceROS }

func (f grass) SurvivalProbability(in Input) float64 {
	return curingFactor(in.Curing) * (1 / (1 + math.Exp(-0.25*(in.FFMC-85))))
}

func registerGrass(t *Table) {
	t.Register(41, grass{name: "O-1a", a: 190, b: 0.0310, c: 1.4})
	t.Register(42, grass{name: "O-1b", a: 250, b: 0.0350, c: 1.7})
}
