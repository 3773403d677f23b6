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
	"math/rand"

	"github.com/bits-and-blooms/bitset"
	"github.com/jordan-evens/firestarr-tbd-sub001/fuel"
	"github.com/jordan-evens/firestarr-tbd-sub001/weather"
)

// minimumROSFloor is the deterministic-mode minimum-ROS gate.
const minimumROSFloor = 0.1

// defaultMaximumSpreadDistance is the MaximumSpreadDistance used when a
// Config leaves it unset (<= 0): the fastest point in the fire is
// allowed to advance at most one cell-width per FIRE_SPREAD step.
const defaultMaximumSpreadDistance = 1.0

// minStepDuration and maxStepDuration bound the adaptively-computed
// FIRE_SPREAD step: minStepDuration keeps an extreme headROS from
// producing an unboundedly small (and so unboundedly slow-progressing)
// step; maxStepDuration keeps a near-zero headROS from stalling the
// event queue indefinitely.
const (
	minStepDuration = 1.0 / 3600.0 // one simulated second, in hours
	maxStepDuration = 1.0 / 60.0   // one simulated minute, in hours
)

// Config bundles the run-wide parameters a Scenario needs at
// construction: the shared landscape, fuel table, weather stream, and
// the stochastic/deterministic mode switch.
type Config struct {
	Landscape *Landscape
	Fuels     *fuel.Table
	Weather   *weather.Stream

	IgnitionRow, IgnitionColumn int
	StartHour                  int // flat weather-stream index at ignition

	Deterministic bool

	// ThresholdWeights are (w_s, w_d, w_h), non-negative and summing to
	// 1, combining scenario/day/hour stochastic thresholds.
	ThresholdWeightScenario float64
	ThresholdWeightDay      float64
	ThresholdWeightHour     float64

	Curing float64
	ND     int

	// MaximumSpreadDistance bounds how many cell-widths the fastest
	// head-fire point may advance in a single FIRE_SPREAD step,
	// defaulting to defaultMaximumSpreadDistance when <= 0.
	MaximumSpreadDistance float64
}

// Scenario is one stochastic run: it owns its burn/arrival/intensity
// state and its event queue exclusively, consuming the shared landscape,
// fuel table, and weather stream read-only.
type Scenario struct {
	cfg Config

	arrivalTime  *SparseGrid[float64]
	maxIntensity *SparseGrid[float64]
	burned       *bitset.BitSet
	points       map[int64]*PointSet

	queue *eventQueue

	thresholdScenario float64
	thresholdDay      map[int]float64
	thresholdHour     [24]float64

	spreadCache map[spreadCacheKey]SpreadResult

	clock     float64
	finalSize int
}

type spreadCacheKey struct {
	fuelCode fuel.Code
	slope    int
	aspect   int
	hour     int
}

// NewScenario constructs a Scenario seeded from rng, sampling its
// per-scenario and per-hour stochastic thresholds up front. Per-day
// thresholds are not sampled here: thresholdForDay draws each one from
// the same rng the first time that day is looked up. Reruns with the
// same seed reproduce bit-identical results.
func NewScenario(cfg Config, rng *rand.Rand) *Scenario {
	s := &Scenario{
		cfg:          cfg,
		arrivalTime:  NewSparseGrid[float64](math.Inf(1)),
		maxIntensity: NewSparseGrid[float64](0),
		burned:       bitset.New(uint(cfg.Landscape.Rows * cfg.Landscape.Columns)),
		points:       make(map[int64]*PointSet),
		queue:        newEventQueue(),
		thresholdDay: make(map[int]float64),
		spreadCache:  make(map[spreadCacheKey]SpreadResult),
	}

	if cfg.Deterministic {
		s.thresholdScenario = 0
		for h := range s.thresholdHour {
			s.thresholdHour[h] = 0
		}
	} else {
		s.thresholdScenario = rng.Float64()
		for h := range s.thresholdHour {
			s.thresholdHour[h] = rng.Float64()
		}
	}

	ignitionLoc := Location{Row: int32(cfg.IgnitionRow), Column: int32(cfg.IgnitionColumn)}
	s.queue.PushEvent(Event{Time: 0, Type: NewFire, Cell: ignitionLoc, SourceIndex: UnknownSource})

	return s
}

// thresholdForDay lazily samples (or returns, in deterministic mode) the
// per-day stochastic threshold, caching it so repeated lookups for the
// same day return the same value within a run.
func (s *Scenario) thresholdForDay(day int, rng *rand.Rand) float64 {
	if s.cfg.Deterministic {
		return 0
	}
	if v, ok := s.thresholdDay[day]; ok {
		return v
	}
	v := rng.Float64()
	s.thresholdDay[day] = v
	return v
}

// effectiveThreshold computes the weighted convex combination of
// scenario/day/hour thresholds at simulation time t.
func (s *Scenario) effectiveThreshold(day, hour int, rng *rand.Rand) float64 {
	if s.cfg.Deterministic {
		return 0
	}
	return s.cfg.ThresholdWeightScenario*s.thresholdScenario +
		s.cfg.ThresholdWeightDay*s.thresholdForDay(day, rng) +
		s.cfg.ThresholdWeightHour*s.thresholdHour[hour]
}

// minimumROS returns the deterministic floor, or the scenario's
// stochastic threshold-by-ROS otherwise.
func (s *Scenario) minimumROS(day, hour int, rng *rand.Rand) float64 {
	if s.cfg.Deterministic {
		return minimumROSFloor
	}
	threshold := s.effectiveThreshold(day, hour, rng)
	// Invert the logistic gate to express the stochastic threshold as a
	// minimum ROS: threshold = logistic(ros) => ros = (1.64 - ln(1/threshold - 1)) / 0.16.
	if threshold <= 0 {
		return minimumROSFloor
	}
	if threshold >= 1 {
		return math.Inf(1)
	}
	ros := (1.64 - math.Log(1/threshold-1)) / 0.16
	if ros < minimumROSFloor {
		return minimumROSFloor
	}
	return ros
}

// Run drains the event queue, mutating scenario state and merging
// results into model's probability accumulators at each SAVE event, then
// reports the scenario's final burned-area size.
func (s *Scenario) Run(model *Model, rng *rand.Rand) int {
	for {
		ev, ok := s.queue.PopEvent()
		if !ok {
			break
		}
		s.clock = ev.Time

		switch ev.Type {
		case NewFire:
			s.handleNewFire(ev, rng)
		case FireSpread:
			s.handleFireSpread(ev, rng)
		case Save:
			model.mergeScenario(s, ev.Time)
		case EndSimulation:
			model.mergeScenario(s, ev.Time)
			s.finalSize = int(s.burned.Count())
			return s.finalSize
		}
	}
	s.finalSize = int(s.burned.Count())
	model.mergeScenario(s, s.clock)
	return s.finalSize
}

func (s *Scenario) handleNewFire(ev Event, rng *rand.Rand) {
	loc := ev.Cell
	if !s.cfg.Landscape.InBounds(int(loc.Row), int(loc.Column)) {
		return
	}
	if !s.cfg.Landscape.Burnable(int(loc.Row), int(loc.Column)) {
		return
	}

	ps := NewPointSet()
	ps.Add(Point{X: float64(loc.Row) + 0.5, Y: float64(loc.Column) + 0.5})
	s.points[loc.Hash()] = ps
	s.markArrival(loc, ev.Time, 0)

	headROS := 0.0
	if wc, ok := s.weatherContextAt(ev.Time, rng); ok {
		if result := s.spreadResultFor(loc, wc); !result.NoSpread {
			headROS = result.HeadROS
		}
	}
	s.queue.PushEvent(Event{Time: ev.Time + s.stepDuration(headROS), Type: FireSpread, ROS: headROS})
}

// stepDuration returns the simulated time until the next FIRE_SPREAD
// event, chosen so that a point advancing at headROS (m/min) covers at
// most Config.MaximumSpreadDistance cell-widths this step. This is a
// pure function of (headROS, Config), so recomputing it from an
// Event's stored ROS at handling time reproduces the exact Δt used
// when the event was scheduled.
func (s *Scenario) stepDuration(headROS float64) float64 {
	if headROS <= 0 {
		return maxStepDuration
	}
	maxDistance := s.cfg.MaximumSpreadDistance
	if maxDistance <= 0 {
		maxDistance = defaultMaximumSpreadDistance
	}
	dtHours := (maxDistance * s.cfg.Landscape.CellSize / headROS) / 60
	if dtHours > maxStepDuration {
		return maxStepDuration
	}
	if dtHours < minStepDuration {
		return minStepDuration
	}
	return dtHours
}

func (s *Scenario) markArrival(loc Location, t float64, intensity float64) {
	if !s.arrivalTime.Contains(loc) {
		s.arrivalTime.Set(loc, t)
		s.setBurned(loc)
	}
	if intensity > s.maxIntensity.Get(loc) {
		s.maxIntensity.Set(loc, intensity)
	}
}

func (s *Scenario) isBurned(loc Location) bool {
	idx := int(loc.Row)*s.cfg.Landscape.Columns + int(loc.Column)
	if idx < 0 || uint(idx) >= s.burned.Len() {
		return true
	}
	return s.burned.Test(uint(idx))
}

func (s *Scenario) setBurned(loc Location) {
	idx := int(loc.Row)*s.cfg.Landscape.Columns + int(loc.Column)
	if idx < 0 || uint(idx) >= s.burned.Len() {
		return
	}
	s.burned.Set(uint(idx))
}

// weatherContext bundles the weather-hour lookup shared by
// handleNewFire and handleFireSpread: both need the daily/hourly
// weather records and stochastic minimum-ROS gate for whatever
// simulated hour they're evaluating.
type weatherContext struct {
	hourIndex int
	daily     weather.Record
	hourly    weather.Record
	minROS    float64
}

// weatherContextAt resolves the weather-stream hour for simulated time
// t (hours since the scenario's StartHour), reporting false if t falls
// outside the stream's range.
func (s *Scenario) weatherContextAt(t float64, rng *rand.Rand) (weatherContext, bool) {
	hourIndex := s.cfg.StartHour + int(t)
	if hourIndex < 0 || hourIndex >= s.cfg.Weather.Len() {
		return weatherContext{}, false
	}
	dailyIndex := (hourIndex / 24) * 24
	day := hourIndex / 24
	hour := hourIndex % 24
	return weatherContext{
		hourIndex: hourIndex,
		daily:     s.cfg.Weather.At(dailyIndex),
		hourly:    s.cfg.Weather.At(hourIndex),
		minROS:    s.minimumROS(day, hour, rng),
	}, true
}

// spreadResultFor evaluates (or returns the memoized) spread result for
// loc's fuel/slope/aspect at wc's hour.
func (s *Scenario) spreadResultFor(loc Location, wc weatherContext) SpreadResult {
	cell := s.cfg.Landscape.At(int(loc.Row), int(loc.Column))
	ft := s.cfg.Fuels.MustLookup(cell.FuelCode())

	key := spreadCacheKey{fuelCode: cell.FuelCode(), slope: cell.SlopePercent(), aspect: cell.Aspect(), hour: wc.hourIndex}
	if result, ok := s.spreadCache[key]; ok {
		return result
	}
	result := Spread(SpreadInputs{
		Fuel:          ft,
		SlopePercent:  cell.SlopePercent(),
		AspectDeg:     cell.Aspect(),
		ND:            s.cfg.ND,
		Curing:        s.cfg.Curing,
		DailyWeather:  wc.daily,
		HourlyWeather: wc.hourly,
		MinimumROS:    wc.minROS,
		Deterministic: s.cfg.Deterministic,
	})
	s.spreadCache[key] = result
	return result
}

func (s *Scenario) handleFireSpread(ev Event, rng *rand.Rand) {
	wc, ok := s.weatherContextAt(s.clock, rng)
	if !ok {
		return
	}

	// Spread() returns ellipse radii as rates of spread (m/min); convert
	// to cell-widths moved over this FIRE_SPREAD step, whose duration
	// was sized (and is reproduced here) from the head ROS that drove
	// the step's scheduling.
	elapsedMinutes := s.stepDuration(ev.ROS) * 60
	cellScale := elapsedMinutes / s.cfg.Landscape.CellSize

	anyNew := false
	maxHeadROS := 0.0
	newPointsByCell := make(map[int64][]Point)

	for hash, ps := range s.points {
		loc := locationFromHash(hash)
		if !s.cfg.Landscape.Burnable(int(loc.Row), int(loc.Column)) {
			continue
		}

		result := s.spreadResultFor(loc, wc)
		if result.NoSpread {
			continue
		}
		if result.HeadROS > maxHeadROS {
			maxHeadROS = result.HeadROS
		}

		for _, p := range ps.Points() {
			for _, off := range result.Offsets {
				newPt := Point{X: p.X + off.X*cellScale, Y: p.Y + off.Y*cellScale}
				destLoc := Location{Row: int32(math.Floor(newPt.X)), Column: int32(math.Floor(newPt.Y))}
				if !s.cfg.Landscape.InBounds(int(destLoc.Row), int(destLoc.Column)) {
					continue // fire leaves the domain: dropped, not fatal
				}
				if !s.cfg.Landscape.Burnable(int(destLoc.Row), int(destLoc.Column)) {
					continue // cell has no fuel: dropped
				}
				if s.isBurned(destLoc) {
					continue
				}
				if !s.survives(destLoc, wc.hourIndex, rng) {
					continue
				}
				newPointsByCell[destLoc.Hash()] = append(newPointsByCell[destLoc.Hash()], newPt)
				if !s.arrivalTime.Contains(destLoc) {
					anyNew = true
				}
				s.markArrival(destLoc, ev.Time, result.MaxIntensity)
			}
		}
	}

	for hash, newPts := range newPointsByCell {
		ps, ok := s.points[hash]
		if !ok {
			ps = NewPointSet()
			s.points[hash] = ps
		}
		for _, p := range newPts {
			ps.Add(p)
		}
	}

	if anyNew {
		s.queue.PushEvent(Event{Time: ev.Time + s.stepDuration(maxHeadROS), Type: FireSpread, ROS: maxHeadROS})
	}
}

// survives consults the per-fuel survival probability table for the
// destination cell's fuel at the given hour, gated by the scenario's
// stochastic threshold (1 in deterministic mode).
func (s *Scenario) survives(loc Location, hourIndex int, rng *rand.Rand) bool {
	cell := s.cfg.Landscape.At(int(loc.Row), int(loc.Column))
	prob := s.cfg.Weather.SurvivalProbability(cell.FuelCode(), hourIndex)
	if s.cfg.Deterministic {
		return prob >= 1
	}
	return s.effectiveThreshold(hourIndex/24, hourIndex%24, rng) < prob
}

// CurrentFireSize returns the number of cells with a recorded arrival
// time so far.
func (s *Scenario) CurrentFireSize() int {
	return s.arrivalTime.Len()
}

// ArrivalTime returns the hours-since-ignition at which loc was first
// recorded as burned, and whether loc has burned at all. Used by the
// `test` CLI mode, which writes a single scenario's arrival grid
// directly instead of accumulating it across many scenarios.
func (s *Scenario) ArrivalTime(loc Location) (float64, bool) {
	return s.arrivalTime.Get(loc), s.arrivalTime.Contains(loc)
}

// MaxIntensity returns the peak fire intensity (kW/m) recorded at loc,
// or 0 if loc never burned.
func (s *Scenario) MaxIntensity(loc Location) float64 {
	return s.maxIntensity.Get(loc)
}

// EachBurned calls fn for every cell with a recorded arrival time within
// the landscape's bounds.
func (s *Scenario) EachBurned(fn func(loc Location, arrivalHours, intensity float64)) {
	s.arrivalTime.EachInBounds(s.cfg.Landscape.Rows, s.cfg.Landscape.Columns, func(loc Location, arrival float64) {
		fn(loc, arrival, s.maxIntensity.Get(loc))
	})
}

func locationFromHash(hash int64) Location {
	return Location{Row: int32(hash / int64(MaxColumns)), Column: int32(hash % int64(MaxColumns))}
}
