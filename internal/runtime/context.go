// Package runtime wires one simulation run together: it owns the run's two
// memoization stores, the simulated clock, and the ports to the upstream data
// producer and the broker. Caches are explicit per-run state, never process
// globals; constructing a fresh Context gives a fresh run.
package runtime

import (
	"context"
	"time"

	"github.com/moznion/go-optional"
	"go.uber.org/zap"

	"github.com/quantmill/simseries/internal/cache"
	"github.com/quantmill/simseries/internal/logger"
	"github.com/quantmill/simseries/internal/series"
	"github.com/quantmill/simseries/internal/trading"
	"github.com/quantmill/simseries/internal/types"
	"github.com/quantmill/simseries/pkg/errors"
	"github.com/quantmill/simseries/pkg/promise"
)

// AssetProducer is the upstream ingestion collaborator. Produce must return a
// non-empty, ascending-by-date bar sequence for the key, plus optional
// instrument metadata. It is invoked once per key per run, on a background
// goroutine.
type AssetProducer interface {
	Produce(ctx context.Context, key string) ([]types.Bar[types.Candle], optional.Option[types.AssetInfo], error)
}

// Context is the data-access context for one simulation run.
type Context struct {
	config   Config
	log      *logger.Logger
	clock    *series.SimClock
	producer AssetProducer
	broker   trading.Broker

	// Run-scoped memoization stores: raw holds bar-sequence promises, built
	// holds constructed series objects. Keys are shared across both.
	raw     *cache.Store[any]
	built   *cache.Store[any]
	deriver *series.Deriver
}

// NewContext creates the data-access context for a run. producer supplies raw
// bar sequences per key; broker may be nil for runs without a trading
// collaborator.
func NewContext(config Config, log *logger.Logger, producer AssetProducer, broker trading.Broker) (*Context, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	if log == nil {
		log = logger.NewNopLogger()
	}

	var start time.Time
	if config.StartTime.IsSome() {
		start = config.StartTime.Unwrap()
	}

	clock := series.NewSimClock(start)
	raw := cache.NewStore[any]()
	built := cache.NewStore[any]()

	c := &Context{
		config:   config,
		log:      log,
		clock:    clock,
		producer: producer,
		broker:   broker,
		raw:      raw,
		built:    built,
		deriver:  series.NewDeriver(raw, built, clock, log),
	}

	c.log.Info("run context created",
		zap.String("run_id", config.RunID),
		zap.Duration("wait_timeout", config.WaitTimeout),
	)

	return c, nil
}

// Clock returns the run's simulated clock. Only the orchestrator should
// advance it.
func (c *Context) Clock() *series.SimClock {
	return c.clock
}

// Deriver returns the run's derived-series factory.
func (c *Context) Deriver() *series.Deriver {
	return c.deriver
}

// AccessContext returns a context for blocking series access, bounded by the
// configured wait timeout when one is set.
func (c *Context) AccessContext() (context.Context, context.CancelFunc) {
	if c.config.WaitTimeout <= 0 {
		return context.WithCancel(context.Background())
	}

	return context.WithTimeout(context.Background(), c.config.WaitTimeout)
}

// Asset returns the asset series for key, creating it and starting its
// background computation on first request. Repeated requests return the
// identical cached instance.
func (c *Context) Asset(key string) (*series.AssetSeries, error) {
	if c.producer == nil {
		return nil, errors.Newf(errors.ErrCodeProducerNotFound, "no asset producer configured, cannot materialize %q", key)
	}

	data, err := cache.Fetch(c.raw, key, func() *promise.Promise[series.Sequence[types.Candle]] {
		return promise.Go(func() (series.Sequence[types.Candle], error) {
			bars, info, err := c.producer.Produce(context.Background(), key)
			if err != nil {
				return series.Sequence[types.Candle]{}, errors.Wrapf(errors.ErrCodeComputeFailed, err, "producer failed for key %s", key)
			}

			return series.NewSequenceWithInfo(bars, info)
		})
	})
	if err != nil {
		return nil, err
	}

	return cache.Fetch(c.built, key, func() *series.AssetSeries {
		c.log.Debug("asset series created", zap.String("key", key))

		return series.NewAssetSeries(key, data, c.clock, c.deriver, c.broker)
	})
}

// Scalar returns the scalar series for key, materializing it with produce on
// first request. produce runs once per key per run, on a background goroutine.
func (c *Context) Scalar(key string, produce func(ctx context.Context) ([]types.Bar[float64], error)) (*series.ScalarSeries, error) {
	data, err := cache.Fetch(c.raw, key, func() *promise.Promise[series.Sequence[float64]] {
		return promise.Go(func() (series.Sequence[float64], error) {
			bars, err := produce(context.Background())
			if err != nil {
				return series.Sequence[float64]{}, errors.Wrapf(errors.ErrCodeComputeFailed, err, "producer failed for key %s", key)
			}

			return series.NewSequence(bars)
		})
	})
	if err != nil {
		return nil, err
	}

	return cache.Fetch(c.built, key, func() *series.ScalarSeries {
		c.log.Debug("scalar series created", zap.String("key", key))

		return series.NewScalarSeries(key, data, c.clock)
	})
}

// Bool returns the boolean series for key, materializing it with produce on
// first request.
func (c *Context) Bool(key string, produce func(ctx context.Context) ([]types.Bar[bool], error)) (*series.BoolSeries, error) {
	data, err := cache.Fetch(c.raw, key, func() *promise.Promise[series.Sequence[bool]] {
		return promise.Go(func() (series.Sequence[bool], error) {
			bars, err := produce(context.Background())
			if err != nil {
				return series.Sequence[bool]{}, errors.Wrapf(errors.ErrCodeComputeFailed, err, "producer failed for key %s", key)
			}

			return series.NewSequence(bars)
		})
	})
	if err != nil {
		return nil, err
	}

	return cache.Fetch(c.built, key, func() *series.BoolSeries {
		c.log.Debug("bool series created", zap.String("key", key))

		return series.NewBoolSeries(key, data, c.clock)
	})
}

// Reset discards every cached sequence and series. Call only between runs;
// series handed out before the reset keep their own backing data.
func (c *Context) Reset() {
	c.raw.Reset()
	c.built.Reset()
	c.log.Info("run context reset", zap.String("run_id", c.config.RunID))
}
