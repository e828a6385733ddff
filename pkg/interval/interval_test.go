// Copyright (c) 2026 Callboard. All rights reserved.
// Author: team@callboard.app

package interval_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/ammateam/callboard/pkg/interval"
)

func at(hour, min int) time.Time {
	return time.Date(2026, time.March, 14, hour, min, 0, 0, time.UTC)
}

func ptr(t time.Time) *time.Time { return &t }

/*
TestOverlaps covers the half-open predicate, including boundary instants.
*/
func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    interval.Interval
		b    interval.Interval
		want bool
	}{
		{
			name: "plain_overlap",
			a:    interval.Interval{Start: at(14, 0), End: ptr(at(16, 0))},
			b:    interval.Interval{Start: at(15, 0), End: ptr(at(17, 0))},
			want: true,
		},
		{
			name: "contained",
			a:    interval.Interval{Start: at(10, 0), End: ptr(at(20, 0))},
			b:    interval.Interval{Start: at(12, 0), End: ptr(at(13, 0))},
			want: true,
		},
		{
			name: "disjoint",
			a:    interval.Interval{Start: at(9, 0), End: ptr(at(10, 0))},
			b:    interval.Interval{Start: at(11, 0), End: ptr(at(12, 0))},
			want: false,
		},
		{
			name: "touching_endpoints_do_not_overlap",
			a:    interval.Interval{Start: at(14, 0), End: ptr(at(16, 0))},
			b:    interval.Interval{Start: at(16, 0), End: ptr(at(18, 0))},
			want: false,
		},
		{
			name: "identical_windows",
			a:    interval.Interval{Start: at(14, 0), End: ptr(at(16, 0))},
			b:    interval.Interval{Start: at(14, 0), End: ptr(at(16, 0))},
			want: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, interval.Overlaps(tt.a, tt.b))

			// Symmetry: overlaps(a, b) == overlaps(b, a) for every pair.
			assert.Equal(t, interval.Overlaps(tt.a, tt.b), interval.Overlaps(tt.b, tt.a))
		})
	}
}

/*
TestFallbackDuration checks that an open-ended interval behaves identically,
for overlap purposes, to one ending exactly 180 minutes after its start.
*/
func TestFallbackDuration(t *testing.T) {
	open := interval.Interval{Start: at(14, 0)}
	closed := interval.Interval{Start: at(14, 0), End: ptr(at(14, 0).Add(180 * time.Minute))}

	assert.Equal(t, closed.EffectiveEnd(), open.EffectiveEnd())

	probes := []interval.Interval{
		{Start: at(16, 59), End: ptr(at(18, 0))}, // inside the fallback window
		{Start: at(17, 0), End: ptr(at(18, 0))},  // starts at the fallback boundary
		{Start: at(12, 0), End: ptr(at(14, 0))},  // ends at the start boundary
		{Start: at(12, 0), End: ptr(at(14, 1))},
	}

	for _, probe := range probes {
		assert.Equal(t, interval.Overlaps(closed, probe), interval.Overlaps(open, probe))
	}

	assert.True(t, interval.Overlaps(open, probes[0]))
	assert.False(t, interval.Overlaps(open, probes[1]))
	assert.False(t, interval.Overlaps(open, probes[2]))
	assert.True(t, interval.Overlaps(open, probes[3]))
}

func TestEffectiveEnd(t *testing.T) {
	explicit := at(15, 30)
	assert.Equal(t, explicit, interval.EffectiveEnd(at(14, 0), &explicit))
	assert.Equal(t, at(17, 0), interval.EffectiveEnd(at(14, 0), nil))
}

func TestOverlapsWindow(t *testing.T) {
	i := interval.Interval{Start: at(14, 0)} // effective end 17:00

	assert.True(t, i.OverlapsWindow(at(16, 0), at(18, 0)))
	assert.False(t, i.OverlapsWindow(at(17, 0), at(18, 0)))
	assert.False(t, i.OverlapsWindow(at(12, 0), at(14, 0)))
}
