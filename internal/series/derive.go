package series

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/quantmill/simseries/internal/cache"
	"github.com/quantmill/simseries/internal/logger"
	"github.com/quantmill/simseries/internal/types"
	"github.com/quantmill/simseries/pkg/errors"
	"github.com/quantmill/simseries/pkg/promise"
)

// Deriver builds scalar series derived from existing series. Every
// derivation is routed through the run's two memoization stores: the derived
// bar sequence through the raw-sequence store and the series object through
// the series store, both under the same key, so each derivation is computed
// at most once per run and all consumers share one series instance.
type Deriver struct {
	raw   *cache.Store[any]
	built *cache.Store[any]
	clock Clock
	log   *logger.Logger
}

// NewDeriver creates a deriver over the run's memoization stores.
func NewDeriver(raw, built *cache.Store[any], clock Clock, log *logger.Logger) *Deriver {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &Deriver{
		raw:   raw,
		built: built,
		clock: clock,
		log:   log,
	}
}

// Project returns the scalar series holding one candle field of the parent,
// bar for bar. The derived computation is chained on the parent's, so it runs
// strictly after the parent's sequence is available.
func (d *Deriver) Project(parent *Series[types.Candle], field types.Field) (*ScalarSeries, error) {
	if !field.IsValid() {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "unsupported field projection: %q", field)
	}

	key := parent.Key() + ":" + string(field)

	data, err := cache.Fetch(d.raw, key, func() *promise.Promise[Sequence[float64]] {
		return promise.Then(parent.data, func(seq Sequence[types.Candle]) (Sequence[float64], error) {
			bars := make([]types.Bar[float64], seq.Len())
			for i, bar := range seq.bars {
				bars[i] = types.NewBar(bar.Time, field.Of(bar.Value))
			}

			return NewSequence(bars)
		})
	})
	if err != nil {
		return nil, err
	}

	return d.scalar(key, data)
}

// RollingMean returns the scalar series whose bar i holds the mean of the
// parent's values over the trailing window ending at i. Bars before the
// window fills hold the mean over the available prefix.
func (d *Deriver) RollingMean(parent *ScalarSeries, window int) (*ScalarSeries, error) {
	if window < 1 {
		return nil, errors.Newf(errors.ErrCodeInvalidParameter, "rolling window must be positive, got %d", window)
	}

	key := fmt.Sprintf("%s:sma%d", parent.Key(), window)

	data, err := cache.Fetch(d.raw, key, func() *promise.Promise[Sequence[float64]] {
		return promise.Then(parent.data, func(seq Sequence[float64]) (Sequence[float64], error) {
			bars := make([]types.Bar[float64], seq.Len())

			sum := 0.0
			for i, bar := range seq.bars {
				sum += bar.Value
				if i >= window {
					sum -= seq.bars[i-window].Value
				}

				count := i + 1
				if count > window {
					count = window
				}

				bars[i] = types.NewBar(bar.Time, sum/float64(count))
			}

			return NewSequence(bars)
		})
	})
	if err != nil {
		return nil, err
	}

	return d.scalar(key, data)
}

// scalar wraps a derived sequence promise into a cached scalar series.
func (d *Deriver) scalar(key string, data *promise.Promise[Sequence[float64]]) (*ScalarSeries, error) {
	return cache.Fetch(d.built, key, func() *ScalarSeries {
		d.log.Debug("derived series created", zap.String("key", key))

		return NewScalarSeries(key, data, d.clock)
	})
}
