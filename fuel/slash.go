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

// slash implements the FBP S-series logging-slash fuel types
// (S-1/S-2/S-3). None support crown fire since slash stands have no
// canopy; they carry high surface fuel loads instead.
type slash struct {
	name      string
	a, b, c   float64
	q, bui0   float64
	sfcP1     float64
	sfcP2     float64
}

func (f slash) Name() string   { return f.name }
func (f slash) CanCrown() bool { return false }

func (f slash) SurfaceFuelConsumption(in Input) float64 {
	return f.sfcP1 + f.sfcP2*in.BUI
}

func (f slash) ROSAtISI(isi, bui float64) float64 {
	return rosCurve(f.a, f.b, f.c, isi) * buiEffect(f.q, f.bui0, bui)
}

func (f slash) ISFInverse(targetROS, bui float64) float64 {
	be := buiEffect(f.q, f.bui0, bui)
	if be <= 0 {
		return 0
	}
	return invertROSCurve(f.a, f.b, f.c, targetROS/be)
}

func (f slash) BUIEffect(bui float64) float64 { return buiEffect(f.q, f.bui0, bui) }

func (f slash) CuringMultiplier(float64) float64 { return 1 }

func (f slash) LengthToBreadth(windSpeed float64) float64 { return lengthToBreadth(windSpeed) }

func (f slash) CrownConsumption(float64) float64 { return 0 }

func (f slash) CrownFractionBurned(float64, float64) float64 { return 0 }

func (f slash) CriticalSurfaceIntensity() float64 { return math.Inf(1) }

func (f slash) FinalROS(surfaceROS, cfb float64) float64 { return surfaceROS }

func (f slash) SurvivalProbability(in Input) float64 {
	return 1 / (1 + math.Exp(-0.20*(in.FFMC-78)))
}

func registerSlash(t *Table) {
	t.Register(31, slash{name: "S-1", a: 75, b: 0.0297, c: 1.3, q: 0.75, bui0: 38, sfcP1: 4.0, sfcP2: 0.0785})
	t.Register(32, slash{name: "S-2", a: 40, b: 0.0438, c: 1.7, q: 0.75, bui0: 63, sfcP1: 10.0, sfcP2: 0.0404})
	t.Register(33, slash{name: "S-3", a: 55, b: 0.0829, c: 3.2, q: 0.75, bui0: 31, sfcP1: 12.0, sfcP2: 0.0505})
}
