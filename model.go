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
	"sync"
	"time"

	"github.com/JekaMas/workerpool"
	"github.com/jordan-evens/firestarr-tbd-sub001/internal/numeric"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/gonum/stat"
)

// intensityMaxLow, intensityMaxModerate are the upper bounds (kW/m) of
// the low and moderate intensity classes; anything above
// intensityMaxModerate is high.
const (
	intensityMaxLow      = 500.0
	intensityMaxModerate = 4000.0
)

// offsetAccumulator holds the per-time-offset probability accumulators
// for one output date offset: any-burn, three intensity classes, and
// raw occurrence counts, each guarded by its own lock since merges are
// infrequent (O(burned-cells) per scenario) and contention is low.
type offsetAccumulator struct {
	muAny   sync.Mutex
	any     *SparseGrid[int]
	muLow   sync.Mutex
	low     *SparseGrid[int]
	muMod   sync.Mutex
	mod     *SparseGrid[int]
	muHigh  sync.Mutex
	high    *SparseGrid[int]
	muOccur sync.Mutex
	occur   *SparseGrid[int]
}

func newOffsetAccumulator() *offsetAccumulator {
	return &offsetAccumulator{
		any:   NewSparseGrid[int](0),
		low:   NewSparseGrid[int](0),
		mod:   NewSparseGrid[int](0),
		high:  NewSparseGrid[int](0),
		occur: NewSparseGrid[int](0),
	}
}

// StoppingConfig configures the Monte Carlo adaptive stopping rule.
type StoppingConfig struct {
	MinimumScenarios int
	CheckEvery       int
	ConfidenceLevel  float64 // e.g. 0.95
	MaximumTime      time.Duration
	MaximumCount     int
}

// Model orchestrates the Monte Carlo simulation: it owns the
// probability-map accumulators exclusively, dispatches scenarios across
// a bounded worker pool, and applies the adaptive stopping rule.
type Model struct {
	Landscape *Landscape
	Stopping  StoppingConfig

	offsets     map[int]*offsetAccumulator // output date offset (hours) -> accumulator
	finalSizes  []int
	mu          sync.Mutex // guards finalSizes and scenariosRun
	scenariosRun int

	metrics *modelMetrics
}

type modelMetrics struct {
	scenariosRun  prometheus.Counter
	ciHalfWidth   prometheus.Gauge
	meanFinalSize prometheus.Gauge
	maxFinalSize  prometheus.Gauge
}

// NewModel builds a Model with one accumulator per requested output date
// offset, and registers its progress metrics on registry. registry may
// be nil, in which case metrics are not exported (useful for the `test`
// CLI mode, which runs a single deterministic scenario).
func NewModel(landscape *Landscape, stopping StoppingConfig, outputOffsets []int, registry *prometheus.Registry) *Model {
	m := &Model{
		Landscape: landscape,
		Stopping:  stopping,
		offsets:   make(map[int]*offsetAccumulator, len(outputOffsets)),
	}
	for _, off := range outputOffsets {
		m.offsets[off] = newOffsetAccumulator()
	}
	if registry != nil {
		m.metrics = &modelMetrics{
			scenariosRun: prometheus.NewCounter(prometheus.CounterOpts{
				Name: "tbd_scenarios_run_total",
				Help: "Number of Monte Carlo scenarios completed so far.",
			}),
			ciHalfWidth: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "tbd_final_size_ci_half_width_ratio",
				Help: "Current 95% CI half-width over mean, for final burned area.",
			}),
			meanFinalSize: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "tbd_final_size_mean_cells",
				Help: "Running mean of scenario final burned-area size, in cells.",
			}),
			maxFinalSize: prometheus.NewGauge(prometheus.GaugeOpts{
				Name: "tbd_final_size_max_cells",
				Help: "Largest scenario final burned-area size seen so far, in cells.",
			}),
		}
		registry.MustRegister(m.metrics.scenariosRun, m.metrics.ciHalfWidth, m.metrics.meanFinalSize, m.metrics.maxFinalSize)
	}
	return m
}

// mergeScenario folds one scenario's arrival/intensity state into every
// offset accumulator whose window has been reached by t, incrementing
// counts for every burned cell. Each accumulator's own lock serializes
// writes across concurrently-running scenarios.
func (m *Model) mergeScenario(s *Scenario, t float64) {
	hoursElapsed := t

	for offsetHours, acc := range m.offsets {
		if hoursElapsed < float64(offsetHours) {
			continue
		}
		s.arrivalTime.EachInBounds(m.Landscape.Rows, m.Landscape.Columns, func(loc Location, arrival float64) {
			if arrival > float64(offsetHours) {
				return
			}
			intensity := s.maxIntensity.Get(loc)

			acc.muAny.Lock()
			acc.any.Set(loc, acc.any.Get(loc)+1)
			acc.muAny.Unlock()

			acc.muOccur.Lock()
			acc.occur.Set(loc, acc.occur.Get(loc)+1)
			acc.muOccur.Unlock()

			switch {
			case intensity <= intensityMaxLow:
				acc.muLow.Lock()
				acc.low.Set(loc, acc.low.Get(loc)+1)
				acc.muLow.Unlock()
			case intensity <= intensityMaxModerate:
				acc.muMod.Lock()
				acc.mod.Set(loc, acc.mod.Get(loc)+1)
				acc.muMod.Unlock()
			default:
				acc.muHigh.Lock()
				acc.high.Set(loc, acc.high.Get(loc)+1)
				acc.muHigh.Unlock()
			}
		})
	}
}

// ProbabilityGrids returns, for one output offset, the four sparse grids
// of per-cell fractions (any/low/moderate/high) plus raw occurrence
// counts, dividing each accumulator by the actual scenario count. It is
// meant to be called once the run has finished.
func (m *Model) ProbabilityGrids(offsetHours int) (any_, low, moderate, high *SparseGrid[float64], occurrence *SparseGrid[int]) {
	acc, ok := m.offsets[offsetHours]
	if !ok {
		return nil, nil, nil, nil, nil
	}
	m.mu.Lock()
	n := m.scenariosRun
	m.mu.Unlock()
	if n == 0 {
		n = 1
	}

	any_ = fractionalize(acc.any, n)
	low = fractionalize(acc.low, n)
	moderate = fractionalize(acc.mod, n)
	high = fractionalize(acc.high, n)
	occurrence = acc.occur
	return
}

func fractionalize(counts *SparseGrid[int], n int) *SparseGrid[float64] {
	out := NewSparseGrid[float64](0)
	counts.EachInBounds(MaxRows, MaxColumns, func(loc Location, c int) {
		out.Set(loc, float64(c)/float64(n))
	})
	return out
}

// Run dispatches scenarios across a bounded worker pool, one scenario
// per job, mirroring the GOMAXPROCS-sized worker loop idiom but
// expressed with a typed pool instead of hand-rolled goroutines. It
// blocks until the adaptive stopping rule is satisfied or a hard limit
// is reached, then returns the count of scenarios actually run.
func (m *Model) Run(cfg Config, workers int, seed int64, log *logrus.Logger) int {
	pool := workerpool.New(workers)
	start := time.Now()
	stop := make(chan struct{})
	var stopOnce sync.Once

	submitted := 0
	for {
		select {
		case <-stop:
			pool.StopWait()
			return m.scenariosCompleted()
		default:
		}

		if m.Stopping.MaximumTime > 0 && time.Since(start) > m.Stopping.MaximumTime {
			log.Warn("tbd: maximumTimeSeconds reached, emitting partial results")
			break
		}
		if m.Stopping.MaximumCount > 0 && submitted >= m.Stopping.MaximumCount {
			break
		}

		scenarioSeed := seed + int64(submitted)
		submitted++
		pool.Submit(func() {
			rng := rand.New(rand.NewSource(scenarioSeed))
			scenario := NewScenario(cfg, rng)
			finalSize := scenario.Run(m, rng)

			m.mu.Lock()
			m.finalSizes = append(m.finalSizes, finalSize)
			m.scenariosRun++
			n := m.scenariosRun
			m.mu.Unlock()

			if m.metrics != nil {
				m.metrics.scenariosRun.Inc()
			}

			if n >= m.Stopping.MinimumScenarios && m.Stopping.CheckEvery > 0 && n%m.Stopping.CheckEvery == 0 {
				if m.confidenceSatisfied() {
					stopOnce.Do(func() { close(stop) })
				}
			}
		})
	}

	pool.StopWait()
	return m.scenariosCompleted()
}

func (m *Model) scenariosCompleted() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.scenariosRun
}

// confidenceSatisfied computes the 95%-CI half-width of the mean final
// scenario size and reports whether half-width/mean has fallen to or
// below (1 - confidenceLevel).
func (m *Model) confidenceSatisfied() bool {
	m.mu.Lock()
	sizes := append([]int(nil), m.finalSizes...)
	m.mu.Unlock()

	if len(sizes) < 2 {
		return false
	}

	mean, halfWidth := meanAndHalfWidth(sizes)
	if mean == 0 {
		return false
	}
	ratio := halfWidth / mean

	if m.metrics != nil {
		m.metrics.ciHalfWidth.Set(ratio)
		m.metrics.meanFinalSize.Set(mean)
		values := make([]float64, len(sizes))
		for i, s := range sizes {
			values[i] = float64(s)
		}
		_, max := numeric.TotalAndMax(values)
		m.metrics.maxFinalSize.Set(max)
	}

	return ratio <= 1-m.Stopping.ConfidenceLevel
}

// meanAndHalfWidth returns the sample mean and the 95% CI half-width
// (1.96 * standard error) of sizes, using gonum/stat for the mean and
// sample standard deviation.
func meanAndHalfWidth(sizes []int) (mean, halfWidth float64) {
	values := make([]float64, len(sizes))
	for i, s := range sizes {
		values[i] = float64(s)
	}
	mean, stddev := stat.MeanStdDev(values, nil)
	stderr := stddev / math.Sqrt(float64(len(values)))
	halfWidth = 1.96 * stderr
	return mean, halfWidth
}
