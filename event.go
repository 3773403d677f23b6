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

import "container/heap"

// EventType orders events that share a timestamp: SAVE fires before
// END_SIMULATION, which fires before NEW_FIRE, which fires before
// FIRE_SPREAD.
type EventType uint8

const (
	Save EventType = iota
	EndSimulation
	NewFire
	FireSpread
)

// Event is one scheduled occurrence in a scenario's event queue. For a
// FIRE_SPREAD event, ROS carries the head-fire rate of spread (m/min)
// that sized the step's duration, so stepDuration can be recomputed
// deterministically at handling time instead of re-deriving it from
// scratch. Raz is reserved for the corresponding head-fire azimuth.
type Event struct {
	Time        float64
	Type        EventType
	Cell        Location
	SourceIndex Octant
	Intensity   float64
	ROS         float64
	Raz         float64
}

// eventQueue is a binary heap (container/heap) ordering Events by
// (time, type, cell hash) so that two runs with identical seeds and
// inputs process events in the same total order, per the determinism
// requirement. No third-party priority-queue library appears anywhere
// in the retrieved example pack, so container/heap is the idiomatic
// stdlib choice here.
type eventQueue struct {
	events []Event
}

func newEventQueue() *eventQueue {
	q := &eventQueue{}
	heap.Init(q)
	return q
}

func (q *eventQueue) Len() int { return len(q.events) }

func (q *eventQueue) Less(i, j int) bool {
	a, b := q.events[i], q.events[j]
	if a.Time != b.Time {
		return a.Time < b.Time
	}
	if a.Type != b.Type {
		return a.Type < b.Type
	}
	return a.Cell.Hash() < b.Cell.Hash()
}

func (q *eventQueue) Swap(i, j int) { q.events[i], q.events[j] = q.events[j], q.events[i] }

func (q *eventQueue) Push(x interface{}) {
	q.events = append(q.events, x.(Event))
}

func (q *eventQueue) Pop() interface{} {
	old := q.events
	n := len(old)
	e := old[n-1]
	q.events = old[:n-1]
	return e
}

// PushEvent schedules an event. It panics on a negative time, a numerical
// guard: a negative event time indicates a bug in the spread
// calculation, not a recoverable user-facing condition.
func (q *eventQueue) PushEvent(e Event) {
	if e.Time < 0 {
		panic(Fatalf("event scheduler", "negative event time %v for cell %v", e.Time, e.Cell))
	}
	heap.Push(q, e)
}

// PopEvent removes and returns the earliest event. ok is false if the
// queue is empty.
func (q *eventQueue) PopEvent() (Event, bool) {
	if q.Len() == 0 {
		return Event{}, false
	}
	return heap.Pop(q).(Event), true
}

// Peek returns the earliest event without removing it.
func (q *eventQueue) Peek() (Event, bool) {
	if q.Len() == 0 {
		return Event{}, false
	}
	return q.events[0], true
}
