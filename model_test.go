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
	"math/rand"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
)

func TestNewModelRegistersOneAccumulatorPerOffset(t *testing.T) {
	l := uniformLandscape(3, 3)
	m := NewModel(l, StoppingConfig{}, []int{360, 1440}, nil)
	if len(m.offsets) != 2 {
		t.Errorf("len(offsets) = %d, want 2", len(m.offsets))
	}
}

func TestNewModelRegistersMetricsWhenGivenRegistry(t *testing.T) {
	l := uniformLandscape(3, 3)
	reg := prometheus.NewRegistry()
	m := NewModel(l, StoppingConfig{}, []int{1440}, reg)
	if m.metrics == nil {
		t.Error("want metrics registered when a registry is supplied")
	}
}

func TestMergeScenarioIncrementsAnyAndOccur(t *testing.T) {
	l := uniformLandscape(5, 5)
	m := NewModel(l, StoppingConfig{}, []int{1}, nil)

	s := &Scenario{
		arrivalTime:  NewSparseGrid[float64](0),
		maxIntensity: NewSparseGrid[float64](0),
	}
	loc := Location{Row: 2, Column: 2}
	s.arrivalTime.Set(loc, 0.5) // half an hour, within the 1-hour offset
	s.maxIntensity.Set(loc, 100)

	m.mergeScenario(s, 2) // scenario clock past the 1-hour checkpoint

	acc := m.offsets[1]
	if acc.any.Get(loc) != 1 {
		t.Errorf("any count = %d, want 1", acc.any.Get(loc))
	}
	if acc.occur.Get(loc) != 1 {
		t.Errorf("occur count = %d, want 1", acc.occur.Get(loc))
	}
	if acc.low.Get(loc) != 1 {
		t.Errorf("want the 100 kW/m arrival classified low intensity, got low=%d", acc.low.Get(loc))
	}
}

func TestMergeScenarioSkipsArrivalsAfterOffsetWindow(t *testing.T) {
	l := uniformLandscape(5, 5)
	m := NewModel(l, StoppingConfig{}, []int{1}, nil)

	s := &Scenario{
		arrivalTime:  NewSparseGrid[float64](0),
		maxIntensity: NewSparseGrid[float64](0),
	}
	loc := Location{Row: 2, Column: 2}
	s.arrivalTime.Set(loc, 5) // 5 hours, past the 1-hour offset
	m.mergeScenario(s, 5)

	acc := m.offsets[1]
	if acc.any.Get(loc) != 0 {
		t.Errorf("want arrival past the offset window not counted, got %d", acc.any.Get(loc))
	}
}

func TestProbabilityGridsFractionalizesByScenarioCount(t *testing.T) {
	l := uniformLandscape(5, 5)
	m := NewModel(l, StoppingConfig{}, []int{1}, nil)
	loc := Location{Row: 1, Column: 1}

	s := &Scenario{arrivalTime: NewSparseGrid[float64](0), maxIntensity: NewSparseGrid[float64](0)}
	s.arrivalTime.Set(loc, 0)
	m.mergeScenario(s, 1) // scenario clock at the 1-hour checkpoint
	m.scenariosRun = 4

	any_, _, _, _, occurrence := m.ProbabilityGrids(1)
	if got := any_.Get(loc); got != 0.25 {
		t.Errorf("any_ fraction = %v, want 0.25", got)
	}
	if got := occurrence.Get(loc); got != 1 {
		t.Errorf("occurrence count = %d, want 1 (raw, not fractionalized)", got)
	}
}

func TestMeanAndHalfWidthConstantSizesHaveZeroHalfWidth(t *testing.T) {
	mean, halfWidth := meanAndHalfWidth([]int{10, 10, 10, 10})
	if mean != 10 {
		t.Errorf("mean = %v, want 10", mean)
	}
	if halfWidth != 0 {
		t.Errorf("halfWidth = %v, want 0 for constant data", halfWidth)
	}
}

func TestMeanAndHalfWidthShrinksWithMoreSamples(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	small := make([]int, 5)
	large := make([]int, 500)
	for i := range small {
		small[i] = 50 + rng.Intn(20)
	}
	for i := range large {
		large[i] = 50 + rng.Intn(20)
	}
	_, hwSmall := meanAndHalfWidth(small)
	_, hwLarge := meanAndHalfWidth(large)
	if hwLarge >= hwSmall {
		t.Errorf("want half-width to shrink with more samples: n=5 -> %v, n=500 -> %v", hwSmall, hwLarge)
	}
}

func TestConfidenceSatisfiedFalseWithTooFewSamples(t *testing.T) {
	l := uniformLandscape(3, 3)
	m := NewModel(l, StoppingConfig{ConfidenceLevel: 0.95}, nil, nil)
	m.finalSizes = []int{100}
	if m.confidenceSatisfied() {
		t.Error("want confidenceSatisfied()=false with a single sample")
	}
}
