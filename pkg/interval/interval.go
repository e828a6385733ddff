// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

// Package interval models a time-bounded occupancy record and the overlap
// predicate used by every conflict computation in Callboard.
//
// # Contract
//
// An occupancy spans [Start, EffectiveEnd). When no explicit end is recorded,
// the occupancy is assumed to last [FallbackDuration]. Two occupancies overlap
// iff their half-open windows intersect; touching endpoints do not overlap.
//
// This package is the single source of truth for the predicate — views must
// not re-derive their own variant of it.
package interval

import "time"

// FallbackDuration is the assumed occupancy length when no end time is
// recorded. Shared by the availability resolver, the calendar matrix, and the
// person schedule; do not redefine it per view.
const FallbackDuration = 180 * time.Minute

// Interval is an occupancy window with an optional explicit end.
type Interval struct {
	Start time.Time
	End   *time.Time
}

// EffectiveEnd returns the explicit end when present, otherwise
// start + [FallbackDuration].
func EffectiveEnd(start time.Time, end *time.Time) time.Time {
	if end != nil {
		return *end
	}
	return start.Add(FallbackDuration)
}

// End returns the interval's effective end.
func (i Interval) EffectiveEnd() time.Time {
	return EffectiveEnd(i.Start, i.End)
}

// Overlaps reports whether two half-open intervals intersect.
//
// A.Start < effEnd(B) && B.Start < effEnd(A). Intervals that share only a
// boundary instant do not overlap.
func Overlaps(a, b Interval) bool {
	return a.Start.Before(b.EffectiveEnd()) && b.Start.Before(a.EffectiveEnd())
}

// OverlapsWindow reports whether the interval intersects an explicit
// [start, end) window.
func (i Interval) OverlapsWindow(start, end time.Time) bool {
	return Overlaps(i, Interval{Start: start, End: &end})
}
