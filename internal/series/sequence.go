package series

import (
	"github.com/moznion/go-optional"

	"github.com/quantmill/simseries/internal/types"
	"github.com/quantmill/simseries/pkg/errors"
)

// Sequence is an immutable, non-empty run of bars with strictly ascending
// dates, optionally carrying asset metadata fixed at construction. Both
// invariants are checked when the sequence is built, so accessors never see
// an empty or out-of-order sequence.
type Sequence[V any] struct {
	bars []types.Bar[V]
	info optional.Option[types.AssetInfo]
}

// NewSequence builds a sequence without metadata.
func NewSequence[V any](bars []types.Bar[V]) (Sequence[V], error) {
	return NewSequenceWithInfo(bars, optional.None[types.AssetInfo]())
}

// NewSequenceWithInfo builds a sequence carrying asset metadata. The bars are
// copied so later mutation of the input slice cannot be observed.
func NewSequenceWithInfo[V any](bars []types.Bar[V], info optional.Option[types.AssetInfo]) (Sequence[V], error) {
	if len(bars) == 0 {
		return Sequence[V]{}, errors.New(errors.ErrCodeEmptySeries, "bar sequence has no bars")
	}

	owned := make([]types.Bar[V], len(bars))
	copy(owned, bars)

	for i := 1; i < len(owned); i++ {
		if !owned[i].Time.After(owned[i-1].Time) {
			return Sequence[V]{}, errors.Newf(errors.ErrCodeInvalidParameter,
				"bar dates must be strictly ascending: bar %d (%s) does not follow bar %d (%s)",
				i, owned[i].Time, i-1, owned[i-1].Time)
		}
	}

	return Sequence[V]{bars: owned, info: info}, nil
}

// Len returns the number of bars.
func (s Sequence[V]) Len() int {
	return len(s.bars)
}

// At returns the bar at index i. i must be in [0, Len).
func (s Sequence[V]) At(i int) types.Bar[V] {
	return s.bars[i]
}

// First returns the oldest bar.
func (s Sequence[V]) First() types.Bar[V] {
	return s.bars[0]
}

// Last returns the most recent bar.
func (s Sequence[V]) Last() types.Bar[V] {
	return s.bars[len(s.bars)-1]
}

// Bars returns a copy of the bars in chronological order.
func (s Sequence[V]) Bars() []types.Bar[V] {
	out := make([]types.Bar[V], len(s.bars))
	copy(out, s.bars)

	return out
}

// Info returns the metadata attached at construction, if any.
func (s Sequence[V]) Info() optional.Option[types.AssetInfo] {
	return s.info
}
