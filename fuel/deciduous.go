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

// deciduous implements the FBP D-series leafless/leafed hardwood fuel
// types (D-1, D-2). Neither supports crown fire.
type deciduous struct {
	name          string
	a, b, c       float64
	q, bui0       float64
	greenUpFactor float64 // 1.0 for D-1 (leafless); <1 for D-2 after green-up
}

func (f deciduous) Name() string   { return f.name }
func (f deciduous) CanCrown() bool { return false }

func (f deciduous) SurfaceFuelConsumption(in Input) float64 {
	return 1.5 * (1 - math.Exp(-0.0183*in.BUI))
}

func (f deciduous) ROSAtISI(isi, bui float64) float64 {
	rsi := rosCurve(f.a, f.b, f.c, isi) * f.greenUpFactor
	return rsi * buiEffect(f.q, f.bui0, bui)
}

func (f deciduous) ISFInverse(targetROS, bui float64) float64 {
	be := buiEffect(f.q, f.bui0, bui)
	if be <= 0 || f.greenUpFactor <= 0 {
		return 0
	}
	targetRSI := targetROS / be / f.greenUpFactor
	return invertROSCurve(f.a, f.b, f.c, targetRSI)
}

func (f deciduous) BUIEffect(bui float64) float64 { return buiEffect(f.q, f.bui0, bui) }

func (f deciduous) CuringMultiplier(float64) float64 { return 1 }

func (f deciduous) LengthToBreadth(windSpeed float64) float64 { return lengthToBreadth(windSpeed) }

func (f deciduous) CrownConsumption(float64) float64 { return 0 }

func (f deciduous) CrownFractionBurned(float64, float64) float64 { return 0 }

func (f deciduous) CriticalSurfaceIntensity() float64 { return math.Inf(1) }

func (f deciduous) FinalROS(surfaceROS, cfb float64) float64 { return surfaceROS }

func (f deciduous) SurvivalProbability(in Input) float64 {
	return 1 / (1 + math.Exp(-0.15*(in.FFMC-82)))
}

func registerDeciduous(t *Table) {
	t.Register(11, deciduous{name: "D-1", a: 30, b: 0.0232, c: 1.6, q: 0.90, bui0: 32, greenUpFactor: 1.0})
	t.Register(12, deciduous{name: "D-2", a: 30, b: 0.0232, c: 1.6, q: 0.90, bui0: 32, greenUpFactor: 0.2})
}
