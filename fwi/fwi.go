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

// Package fwi implements the Canadian Forest Fire Weather Index system:
// FFMC, DMC, DC, ISI, BUI, and FWI. These are well-known, standalone
// formulas invoked by the spread engine; this package does not redesign
// them, it only gives them an idiomatic Go home.
package fwi

import "math"

// maxWindTableSpeed bounds the memoized wind-function lookup tables at
// an integer km/h wind speed well above anything physically observed.
const maxWindTableSpeed = 200

var windFunctionTable [maxWindTableSpeed + 1]float64
var windFunctionNegTable [maxWindTableSpeed + 1]float64

func init() {
	for ws := 0; ws <= maxWindTableSpeed; ws++ {
		windFunctionTable[ws] = math.Exp(0.05039 * float64(ws))
		windFunctionNegTable[ws] = 0.208 * math.Exp(-0.05039*float64(ws))
	}
}

// WindFunction returns exp(0.05039*windSpeed), the ISI wind multiplier.
// Integer wind speeds within the table are served from the memo table;
// others are computed directly.
func WindFunction(windSpeed float64) float64 {
	if windSpeed >= 0 && windSpeed <= maxWindTableSpeed && windSpeed == math.Trunc(windSpeed) {
		return windFunctionTable[int(windSpeed)]
	}
	return math.Exp(0.05039 * windSpeed)
}

// windFunctionNeg returns 0.208*exp(-0.05039*windSpeed), used by the FFMC
// drying-rate equation.
func windFunctionNeg(windSpeed float64) float64 {
	if windSpeed >= 0 && windSpeed <= maxWindTableSpeed && windSpeed == math.Trunc(windSpeed) {
		return windFunctionNegTable[int(windSpeed)]
	}
	return 0.208 * math.Exp(-0.05039*windSpeed)
}

// FFMC computes the Fine Fuel Moisture Code given yesterday's FFMC and
// today's noon weather observation (Van Wagner 1987).
func FFMC(ffmcPrev, temp, rh, wind, precip float64) float64 {
	mo := 147.2 * (101 - ffmcPrev) / (59.5 + ffmcPrev)

	if precip > 0.5 {
		rf := precip - 0.5
		if mo <= 150 {
			mo += 42.5 * rf * math.Exp(-100/(251-mo)) * (1 - math.Exp(-6.93/rf))
		} else {
			mo += 42.5*rf*math.Exp(-100/(251-mo))*(1-math.Exp(-6.93/rf)) +
				0.0015*(mo-150)*(mo-150)*math.Sqrt(rf)
		}
		if mo > 250 {
			mo = 250
		}
	}

	ed := 0.942*math.Pow(rh, 0.679) + 11*math.Exp((rh-100)/10) +
		0.18*(21.1-temp)*(1-math.Exp(-0.115*rh))
	ew := 0.618*math.Pow(rh, 0.753) + 10*math.Exp((rh-100)/10) +
		0.18*(21.1-temp)*(1-math.Exp(-0.115*rh))

	var m float64
	switch {
	case mo < ew:
		m = wettingStep(mo, ew, temp, rh, wind)
	case mo > ed:
		m = dryingStep(mo, ed, temp, rh, wind)
	default:
		m = mo
	}

	if m < 0 {
		m = 0
	}
	ffmc := 59.5 * (250 - m) / (147.2 + m)
	if ffmc > 101 {
		ffmc = 101
	}
	if ffmc < 0 {
		ffmc = 0
	}
	return ffmc
}

// dryingStep implements the Van Wagner (1987) FFMC drying-phase log-drying
// equation.
func dryingStep(mo, ed, temp, rh, wind float64) float64 {
	ko := 0.424*(1-math.Pow(rh/100, 1.7)) + 0.0694*math.Sqrt(wind)*(1-math.Pow(rh/100, 8))
	kd := ko * windFunctionNeg(wind) / 0.208 * 0.581 * math.Exp(0.0365*temp)
	return ed + (mo-ed)*math.Pow(10, -kd)
}

// wettingStep implements the corresponding wetting-phase equation.
func wettingStep(mo, ew, temp, rh, wind float64) float64 {
	k1 := 0.424*(1-math.Pow((100-rh)/100, 1.7)) + 0.0694*math.Sqrt(wind)*(1-math.Pow((100-rh)/100, 8))
	kw := k1 * windFunctionNeg(wind) / 0.208 * 0.581 * math.Exp(0.0365*temp)
	return ew - (ew-mo)*math.Pow(10, -kw)
}

// DMC computes the Duff Moisture Code using the "altered" effective-
// day-length form; the original Van Wagner (1987) variant is not
// implemented since it is never the one invoked at runtime.
func DMC(dmcPrev, temp, rh, precip float64, month int) float64 {
	dmc := dmcPrev
	if precip > 1.5 {
		re := 0.92*precip - 1.27
		mo := 20 + math.Exp(5.6348-dmcPrev/43.43)
		var b float64
		switch {
		case dmcPrev <= 33:
			b = 100 / (0.5 + 0.3*dmcPrev)
		case dmcPrev <= 65:
			b = 14 - 1.3*math.Log(dmcPrev)
		default:
			b = 6.2*math.Log(dmcPrev) - 17.2
		}
		mr := mo + 1000*re/(48.77+b*re)
		dmc = 244.72 - 43.43*math.Log(mr-20)
		if dmc < 0 {
			dmc = 0
		}
	}
	if temp < -1.1 {
		return dmc
	}
	el := effectiveDayLength(month)
	k := 1.894 * (temp + 1.1) * (100 - rh) * el * 1e-4
	if k < 0 {
		k = 0
	}
	return dmc + 100*k
}

// effectiveDayLength returns the altered DMC day-length adjustment
// factor by month for temperate-zone (~45N) latitudes.
func effectiveDayLength(month int) float64 {
	lengths := [12]float64{6.5, 7.5, 9.0, 12.8, 13.9, 13.9, 12.4, 10.9, 9.4, 8.0, 7.0, 6.0}
	if month < 1 || month > 12 {
		return 9.0
	}
	return lengths[month-1]
}

// DC computes the Drought Code.
func DC(dcPrev, temp, precip float64, month int) float64 {
	dc := dcPrev
	if precip > 2.8 {
		rd := 0.83*precip - 1.27
		qo := 800 * math.Exp(-dcPrev/400)
		qr := qo + 3.937*rd
		dc = 400 * math.Log(800/qr)
		if dc < 0 {
			dc = 0
		}
	}
	if temp < -2.8 {
		temp = -2.8
	}
	lf := dayLengthFactor(month)
	v := 0.36*(temp+2.8) + lf
	if v < 0 {
		v = 0
	}
	return dc + 0.5*v
}

func dayLengthFactor(month int) float64 {
	factors := [12]float64{-1.6, -1.6, -1.6, 0.9, 3.8, 5.8, 6.4, 5.0, 2.4, 0.4, -1.6, -1.6}
	if month < 1 || month > 12 {
		return 1.0
	}
	return factors[month-1]
}

// ISI computes the Initial Spread Index from FFMC and wind speed (km/h).
func ISI(ffmc, windSpeed float64) float64 {
	mo := 147.2 * (101 - ffmc) / (59.5 + ffmc)
	ff := 91.9 * math.Exp(-0.1386*mo) * (1 + math.Pow(mo, 5.31)/4.93e7)
	return 0.208 * WindFunction(windSpeed) * ff
}

// BUI computes the Build-Up Index from DMC and DC.
func BUI(dmc, dc float64) float64 {
	if dmc <= 0.4*dc {
		if dmc+dc == 0 {
			return 0
		}
		return 0.8 * dmc * dc / (dmc + 0.4*dc)
	}
	return dmc - (1-0.8*dc/(dmc+0.4*dc))*(0.92+math.Pow(0.0114*dmc, 1.7))
}

// FWI computes the final Fire Weather Index from ISI and BUI.
func FWI(isi, bui float64) float64 {
	var fd float64
	if bui <= 80 {
		fd = 0.626*math.Pow(bui, 0.809) + 2
	} else {
		fd = 1000 / (25 + 108.64*math.Exp(-0.023*bui))
	}
	b := 0.1 * isi * fd
	var fwi float64
	if b > 1 {
		fwi = math.Exp(2.72 * math.Pow(0.434*math.Log(b), 0.647))
	} else {
		fwi = b
	}
	return fwi
}
