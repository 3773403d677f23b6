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

// Package fuel implements the FBP-family fuel-type model: a fixed,
// closed set of fuel types, each with the surface/crown fire behaviour
// prediction math appropriate to its family (conifer, deciduous,
// mixedwood, slash, grass), dispatched by a small tagged-variant table
// rather than reflection or dynamic loading.
package fuel

import "fmt"

// Code indexes into a Table. 0 is always the non-burnable sentinel.
type Code uint8

// NonBurnable is the reserved fuel code for cells that cannot burn
// (water, rock, urban, or simply "no data").
const NonBurnable Code = 0

// Input bundles the values a Type's methods need. Fields correspond to
// the six FWI indices and derived moisture values used throughout the
// FBP system.
type Input struct {
	FFMC, DMC, DC, ISI, BUI float64
	FFMCPercent             float64 // fine fuel moisture content, %
	WindSpeed               float64 // km/h, already slope-adjusted where relevant
	ND                      int     // latitude-adjusted day-of-year for curing/green-up curves
	Curing                  float64 // fraction cured, 0..1 (grass fuels)
}

// Type is the capability set every fuel family implements. Each method is
// a pure function of its inputs and the fuel's own constants.
type Type interface {
	// Name is the fuel type's canonical FBP code, e.g. "C-2".
	Name() string

	// CanCrown reports whether this fuel type supports crown fire.
	CanCrown() bool

	// SurfaceFuelConsumption returns SFC in kg/m^2.
	SurfaceFuelConsumption(in Input) float64

	// ROSAtISI returns surface rate of spread in m/min given ISI and BUI.
	ROSAtISI(isi, bui float64) float64

	// ISFInverse solves for the slope-equivalent ISF given a target
	// surface ROS, used to back out a wind-equivalent slope correction.
	ISFInverse(targetROS, bui float64) float64

	// BUIEffect returns the multiplicative BUI correction factor.
	BUIEffect(bui float64) float64

	// CuringMultiplier returns the multiplicative correction applied to
	// ROSAtISI's output for a given cured fraction, 0..1. It is 1 for
	// every fuel family except open grass (O-1a/O-1b), where it
	// replaces the BUI effect as the primary fuel-load driver.
	CuringMultiplier(curing float64) float64

	// LengthToBreadth returns the fire ellipse length-to-breadth ratio
	// at the given wind speed (km/h).
	LengthToBreadth(windSpeed float64) float64

	// CrownConsumption returns CFC in kg/m^2 given crown fraction burned.
	CrownConsumption(cfb float64) float64

	// CrownFractionBurned returns CFB, 0..1, given surface intensity and
	// the fuel's critical surface intensity.
	CrownFractionBurned(surfaceIntensity, criticalIntensity float64) float64

	// CriticalSurfaceIntensity returns the surface intensity (kW/m)
	// above which crowning begins.
	CriticalSurfaceIntensity() float64

	// FinalROS recomputes head ROS once crowning has been determined,
	// blending surface and crown spread rates.
	FinalROS(surfaceROS, crownFractionBurned float64) float64

	// SurvivalProbability returns the probability, 0..1, that an ember
	// landing in this fuel under the given weather produces a
	// self-sustaining fire.
	SurvivalProbability(in Input) float64
}

// Invalid is a Type that panics on every call. It occupies fuel code 0
// only conceptually; Code 0 (NonBurnable) must never reach a Type method
// because Cell.Burnable() gates it out first. Invalid exists so that a
// Table constructed with a hole in it fails loudly instead of silently
// returning zero values.
type Invalid struct{}

func (Invalid) Name() string    { return "invalid" }
func (Invalid) CanCrown() bool  { return false }
func (Invalid) fail() {
	panic("fuel: queried the Invalid fuel type; this indicates an unregistered fuel code")
}
func (i Invalid) SurfaceFuelConsumption(Input) float64              { i.fail(); return 0 }
func (i Invalid) ROSAtISI(float64, float64) float64                 { i.fail(); return 0 }
func (i Invalid) ISFInverse(float64, float64) float64               { i.fail(); return 0 }
func (i Invalid) BUIEffect(float64) float64                         { i.fail(); return 0 }
func (i Invalid) CuringMultiplier(float64) float64                  { i.fail(); return 0 }
func (i Invalid) LengthToBreadth(float64) float64                   { i.fail(); return 0 }
func (i Invalid) CrownConsumption(float64) float64                  { i.fail(); return 0 }
func (i Invalid) CrownFractionBurned(float64, float64) float64      { i.fail(); return 0 }
func (i Invalid) CriticalSurfaceIntensity() float64                 { i.fail(); return 0 }
func (i Invalid) FinalROS(float64, float64) float64                 { i.fail(); return 0 }
func (i Invalid) SurvivalProbability(Input) float64                 { i.fail(); return 0 }

// FireIntensity returns Byram's fire line intensity (kW/m) given total
// fuel consumption (kg/m^2) and rate of spread (m/min).
//
// I = H * w * (ROS / 60)  where H is the low heat of combustion
// (18000 kJ/kg for the FBP system) and ROS/60 converts m/min to m/s.
func FireIntensity(fuelConsumption, ros float64) float64 {
	const heatOfCombustion = 18000. // kJ/kg
	return heatOfCombustion * fuelConsumption * ros / 60.
}

// Table is the fixed-size, immutable fuel lookup table shared read-only
// by every scenario in a simulation run.
type Table struct {
	types [256]Type
}

// NewTable builds a Table with the standard FBP fuel set registered.
// Code 0 is always NonBurnable's sentinel (represented as nil and
// rejected by Lookup); every other slot not explicitly registered holds
// Invalid{}, so a lookup of an unregistered code fails loudly rather than
// silently.
func NewTable() *Table {
	t := &Table{}
	for i := 1; i < len(t.types); i++ {
		t.types[i] = Invalid{}
	}
	registerConifers(t)
	registerDeciduous(t)
	registerMixedwood(t)
	registerSlash(t)
	registerGrass(t)
	return t
}

// Register assigns a Type to a Code. It panics if code is NonBurnable.
func (t *Table) Register(code Code, ft Type) {
	if code == NonBurnable {
		panic("fuel: cannot register a type at the non-burnable code")
	}
	t.types[code] = ft
}

// Lookup returns the Type registered at code. It returns an error for the
// non-burnable code, since callers must gate on Cell.Burnable() first.
func (t *Table) Lookup(code Code) (Type, error) {
	if code == NonBurnable {
		return nil, fmt.Errorf("fuel: code %d is the non-burnable sentinel, not a fuel type", code)
	}
	return t.types[code], nil
}

// MustLookup is like Lookup but panics on error. It is intended for use
// in the hot spread-calculation path, where a bad fuel code is a fatal
// numerical guard, not a recoverable condition.
func (t *Table) MustLookup(code Code) Type {
	ft, err := t.Lookup(code)
	if err != nil {
		panic(err)
	}
	return ft
}
