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

package weather

import (
	"fmt"

	"github.com/jordan-evens/firestarr-tbd-sub001/fuel"
)

// Stream is an indexed, read-only sequence of hourly Records spanning
// [MinDay, MaxDay]. Index = (day-MinDay)*24 + hour, matching the
// addressing every caller in the engine uses to look up "the weather at
// simulation time t".
type Stream struct {
	MinDay, MaxDay int
	records        []Record

	// survival[fuelCode] is a per-hour array of survival probabilities,
	// same indexing as records, filled by PrecomputeSurvival for each
	// code it is called with, so the hot event loop never calls into
	// fuel.Type during a scenario. Nothing in the engine calls
	// PrecomputeSurvival, so a code with no entry reads as survival 1.
	survival map[fuel.Code][]float64

	deterministic bool
}

// NewStream builds a Stream from records already sorted by time, one per
// hour with no gaps. It returns an error when the record count is not
// exactly 24 per day of [minDay, maxDay]; io.go does no gap check of its
// own, and the order of the records is not checked.
func NewStream(minDay, maxDay int, records []Record, deterministic bool) (*Stream, error) {
	want := (maxDay-minDay+1)*24
	if len(records) != want {
		return nil, fmt.Errorf("weather: stream spans day %d..%d (%d hours) but got %d records", minDay, maxDay, want, len(records))
	}
	return &Stream{
		MinDay:        minDay,
		MaxDay:        maxDay,
		records:       records,
		survival:      make(map[fuel.Code][]float64),
		deterministic: deterministic,
	}, nil
}

// Index converts a (day, hour) pair into the Stream's flat index.
func (s *Stream) Index(day, hour int) int {
	return (day-s.MinDay)*24 + hour
}

// At returns the Record for the given flat index.
func (s *Stream) At(index int) Record {
	return s.records[index]
}

// Len returns the number of hourly records in the stream.
func (s *Stream) Len() int { return len(s.records) }

// PrecomputeSurvival builds the per-hour survival probability array for
// a fuel type, memoized so repeated calls for the same code are free.
// In deterministic mode every entry is 1, per spec.
func (s *Stream) PrecomputeSurvival(code fuel.Code, ft fuel.Type) []float64 {
	if existing, ok := s.survival[code]; ok {
		return existing
	}
	probs := make([]float64, len(s.records))
	if s.deterministic {
		for i := range probs {
			probs[i] = 1
		}
	} else {
		for i, rec := range s.records {
			probs[i] = ft.SurvivalProbability(fuel.Input{
				FFMC:        rec.FFMC,
				DMC:         rec.DMC,
				DC:          rec.DC,
				ISI:         rec.ISI,
				BUI:         rec.BUI,
				FFMCPercent: rec.FineFuelMoistureContent(),
				WindSpeed:   rec.WindSpeed,
			})
		}
	}
	s.survival[code] = probs
	return probs
}

// SurvivalProbability returns the precomputed survival probability for a
// fuel at the given flat hour index, or 1 if PrecomputeSurvival has not
// been called for that code; this method is on the engine's hot path
// and does not itself invoke fuel.Type.
func (s *Stream) SurvivalProbability(code fuel.Code, index int) float64 {
	probs, ok := s.survival[code]
	if !ok {
		return 1
	}
	return probs[index]
}
