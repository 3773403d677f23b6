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

// mixedwood implements the FBP M-series fuel types (M-1/M-2 green
// mixedwood, M-3/M-4 dead balsam fir mixedwood), each a conifer/deciduous
// blend weighted by percent conifer (PC) or percent dead fir (PDF).
type mixedwood struct {
	name           string
	percentConifer float64 // 0..1
	conifer        conifer
	deciduous      deciduous
	canCrown       bool
}

func (f mixedwood) Name() string   { return f.name }
func (f mixedwood) CanCrown() bool { return f.canCrown }

func (f mixedwood) blend(cv, dv float64) float64 {
	return f.percentConifer*cv + (1-f.percentConifer)*dv
}

func (f mixedwood) SurfaceFuelConsumption(in Input) float64 {
	return f.blend(f.conifer.SurfaceFuelConsumption(in), f.deciduous.SurfaceFuelConsumption(in))
}

func (f mixedwood) ROSAtISI(isi, bui float64) float64 {
	return f.blend(f.conifer.ROSAtISI(isi, bui), f.deciduous.ROSAtISI(isi, bui))
}

func (f mixedwood) ISFInverse(targetROS, bui float64) float64 {
	// Invert against the conifer component curve; the deciduous
	// component's contribution at low PC is small enough that using the
	// conifer curve alone for the slope back-solve keeps the inversion
	// well-behaved (it is only ever used to recover an equivalent wind
	// speed, not reported directly).
	return f.conifer.ISFInverse(targetROS/maxFloat(f.percentConifer, 0.01), bui)
}

func maxFloat(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

func (f mixedwood) BUIEffect(bui float64) float64 {
	return f.blend(f.conifer.BUIEffect(bui), f.deciduous.BUIEffect(bui))
}

func (f mixedwood) CuringMultiplier(float64) float64 { return 1 }

func (f mixedwood) LengthToBreadth(windSpeed float64) float64 { return lengthToBreadth(windSpeed) }

func (f mixedwood) CrownConsumption(cfb float64) float64 {
	if !f.canCrown {
		return 0
	}
	return f.percentConifer * f.conifer.CrownConsumption(cfb)
}

func (f mixedwood) CrownFractionBurned(surfaceIntensity, criticalIntensity float64) float64 {
	if !f.canCrown {
		return 0
	}
	return crownFractionBurned(surfaceIntensity, criticalIntensity)
}

func (f mixedwood) CriticalSurfaceIntensity() float64 {
	if !f.canCrown {
		return f.conifer.CriticalSurfaceIntensity()
	}
	// A sparser conifer fraction raises the effective critical
	// intensity, matching the FBP M-series convention that crowning in
	// mixedwood stands requires a higher surface intensity than in a
	// pure conifer stand of the same structure.
	return f.conifer.CriticalSurfaceIntensity() / maxFloat(f.percentConifer, 0.01)
}

func (f mixedwood) FinalROS(surfaceROS, cfb float64) float64 {
	if !f.canCrown {
		return surfaceROS
	}
	return f.conifer.FinalROS(surfaceROS, cfb)
}

func (f mixedwood) SurvivalProbability(in Input) float64 {
	return f.blend(f.conifer.SurvivalProbability(in), f.deciduous.SurvivalProbability(in))
}

func registerMixedwood(t *Table) {
	c2 := t2conifer()
	d1 := deciduous{name: "D-1(component)", a: 30, b: 0.0232, c: 1.6, q: 0.90, bui0: 32, greenUpFactor: 1.0}
	t.Register(21, mixedwood{name: "M-1", percentConifer: 0.75, conifer: c2, deciduous: d1, canCrown: true})
	t.Register(22, mixedwood{name: "M-2", percentConifer: 0.50, conifer: c2, deciduous: d1, canCrown: true})
	t.Register(23, mixedwood{name: "M-3", percentConifer: 0.60, conifer: c2, deciduous: d1, canCrown: true})
	t.Register(24, mixedwood{name: "M-4", percentConifer: 0.30, conifer: c2, deciduous: d1, canCrown: true})
}

// t2conifer returns the C-2 calibration used as the conifer component of
// every M-series blend, matching the FBP system's convention of
// expressing mixedwood spread as a function of the co-located C-2 curve.
func t2conifer() conifer {
	return conifer{name: "C-2(component)", a: 110, b: 0.0282, c: 1.5, q: 0.70, bui0: 64, crownBaseHeight: 3, crownFuelLoad: 0.80, sfcP1: 5.0, sfcP2: 0.0115, canCrown: true}
}
