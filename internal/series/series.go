// Package series implements the date-indexed, lazily-populated time series
// that strategies read during a simulation run. Each series is backed by one
// background computation producing its bar sequence; access blocks until that
// computation settles. Two access modes exist: sequential access resolves the
// bar in effect at the current simulated date and advances a persisted
// cursor, while explicit-date access is side-effect-free.
package series

import (
	"context"
	"time"

	"github.com/quantmill/simseries/internal/types"
	"github.com/quantmill/simseries/pkg/errors"
	"github.com/quantmill/simseries/pkg/promise"
)

// Series is a date-indexed sequence of bars identified by a unique key.
//
// The cursor used by sequential access is private mutable state with a
// single-writer contract: exactly one driver may issue sequential accesses
// on a series, one at a time. Explicit-date accesses never touch the cursor
// and may be interleaved freely from any goroutine.
type Series[V any] struct {
	key   string
	data  *promise.Promise[Sequence[V]]
	clock Clock

	// cursor caches the index resolved by the previous sequential access.
	cursor int
	primed bool
}

// NewSeries creates a series over the given background computation. The
// computation is expected to already be running; the series only waits on it.
func NewSeries[V any](key string, data *promise.Promise[Sequence[V]], clock Clock) *Series[V] {
	return &Series[V]{
		key:   key,
		data:  data,
		clock: clock,
	}
}

// Key returns the series' unique identifier.
func (s *Series[V]) Key() string {
	return s.key
}

// Ready reports whether the backing computation has settled. Access methods
// block until it has; Ready lets callers poll without blocking.
func (s *Series[V]) Ready() bool {
	return s.data.Settled()
}

// wait blocks until the bar sequence is available or ctx is done. A failed
// background computation surfaces here as a terminal error for the series.
func (s *Series[V]) wait(ctx context.Context) (Sequence[V], error) {
	return s.data.Wait(ctx)
}

// ValueAtOffset returns the value offset bars back from the bar in effect at
// the current simulated date. Offset 0 is that bar itself; positive offsets
// look backward in time. Offsets beyond either end of the sequence clamp to
// the nearest bar rather than erroring.
func (s *Series[V]) ValueAtOffset(ctx context.Context, offset int) (V, error) {
	seq, err := s.wait(ctx)
	if err != nil {
		var zero V

		return zero, err
	}

	idx := s.currentIndex(seq)

	return seq.bars[clampIndex(idx-offset, seq.Len())].Value, nil
}

// DateAtOffset resolves the same position as ValueAtOffset but returns the
// bar's date instead of its value.
func (s *Series[V]) DateAtOffset(ctx context.Context, offset int) (time.Time, error) {
	seq, err := s.wait(ctx)
	if err != nil {
		return time.Time{}, err
	}

	idx := s.currentIndex(seq)

	return seq.bars[clampIndex(idx-offset, seq.Len())].Time, nil
}

// ValueAtDate returns the value of the most recent bar dated at or before the
// given date. Dates before the first bar clamp to the first bar, dates after
// the last bar clamp to the last. The cursor is neither read nor written.
func (s *Series[V]) ValueAtDate(ctx context.Context, date time.Time) (V, error) {
	seq, err := s.wait(ctx)
	if err != nil {
		var zero V

		return zero, err
	}

	idx := locate(seq.bars, date, interpolateIndex(seq.bars, date))

	return seq.bars[idx].Value, nil
}

// WindowAtOffset returns up to count bars ending at the position resolved for
// the given offset, in chronological order, clamped at the series start. The
// returned slice is a copy.
func (s *Series[V]) WindowAtOffset(ctx context.Context, offset, count int) ([]types.Bar[V], error) {
	if count < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "window size must be positive, got %d", count)
	}

	seq, err := s.wait(ctx)
	if err != nil {
		return nil, err
	}

	idx := s.currentIndex(seq)
	end := clampIndex(idx-offset, seq.Len())

	start := end - count + 1
	if start < 0 {
		start = 0
	}

	out := make([]types.Bar[V], end-start+1)
	copy(out, seq.bars[start:end+1])

	return out, nil
}

// Len returns the total number of bars, blocking until the sequence is
// available.
func (s *Series[V]) Len(ctx context.Context) (int, error) {
	seq, err := s.wait(ctx)
	if err != nil {
		return 0, err
	}

	return seq.Len(), nil
}

// currentIndex resolves the index of the bar in effect at the current
// simulated date and persists it as the cursor. After the first lookup the
// previous cursor is the starting estimate, which gives amortized near-O(1)
// access while the orchestrator advances the clock monotonically.
func (s *Series[V]) currentIndex(seq Sequence[V]) int {
	target := s.clock.Now()

	var estimate int
	if s.primed {
		estimate = s.cursor
	} else {
		estimate = interpolateIndex(seq.bars, target)
	}

	idx := locate(seq.bars, target, estimate)
	s.cursor = idx
	s.primed = true

	return idx
}

// locate turns an index estimate into the exact index of the most recent bar
// dated at or before target. The estimate only affects how far the two
// correction scans walk, never the result.
func locate[V any](bars []types.Bar[V], target time.Time, estimate int) int {
	last := len(bars) - 1

	i := estimate
	if i < 0 {
		i = 0
	}

	if i > last {
		i = last
	}

	// Overshoot: walk back while the estimated bar starts after the target.
	for i > 0 && bars[i].Time.After(target) {
		i--
	}

	// Undershoot and normal forward progress: advance while the next bar is
	// already in effect at the target date.
	for i < last && !bars[i+1].Time.After(target) {
		i++
	}

	return i
}

// interpolateIndex estimates the target date's index assuming uniform bar
// spacing across the series' date span, clamped into the valid range.
func interpolateIndex[V any](bars []types.Bar[V], target time.Time) int {
	last := len(bars) - 1
	if last == 0 {
		return 0
	}

	span := bars[last].Time.Sub(bars[0].Time)
	elapsed := target.Sub(bars[0].Time)

	if span <= 0 || elapsed <= 0 {
		return 0
	}

	estimate := int(float64(last) * (float64(elapsed) / float64(span)))
	if estimate > last {
		estimate = last
	}

	return estimate
}

// clampIndex clamps i into [0, length-1].
func clampIndex(i, length int) int {
	if i < 0 {
		return 0
	}

	if i > length-1 {
		return length - 1
	}

	return i
}
