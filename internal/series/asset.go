package series

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/quantmill/simseries/internal/trading"
	"github.com/quantmill/simseries/internal/types"
	"github.com/quantmill/simseries/pkg/errors"
	"github.com/quantmill/simseries/pkg/promise"
)

// AssetSeries is a candle-valued series for one tradable instrument. On top
// of the engine it exposes the instrument metadata, per-field scalar
// projections, and the trading hooks that forward to the broker collaborator
// under this series' key.
type AssetSeries struct {
	*Series[types.Candle]
	deriver *Deriver
	broker  trading.Broker
}

// NewAssetSeries creates an asset series. deriver backs the field
// projections; broker may be nil when the run has no trading collaborator,
// in which case Allocate and Position fail with ErrCodeBrokerUnavailable.
func NewAssetSeries(key string, data *promise.Promise[Sequence[types.Candle]], clock Clock, deriver *Deriver, broker trading.Broker) *AssetSeries {
	return &AssetSeries{
		Series:  NewSeries(key, data, clock),
		deriver: deriver,
		broker:  broker,
	}
}

// Ticker returns the instrument ticker from the series metadata. Blocks until
// the backing computation settles; fails with a TypeMismatchError when the
// series carries no asset metadata.
func (a *AssetSeries) Ticker(ctx context.Context) (string, error) {
	info, err := a.assetInfo(ctx)
	if err != nil {
		return "", err
	}

	return info.Ticker, nil
}

// Description returns the instrument description from the series metadata.
func (a *AssetSeries) Description(ctx context.Context) (string, error) {
	info, err := a.assetInfo(ctx)
	if err != nil {
		return "", err
	}

	return info.Description, nil
}

func (a *AssetSeries) assetInfo(ctx context.Context) (types.AssetInfo, error) {
	seq, err := a.wait(ctx)
	if err != nil {
		return types.AssetInfo{}, err
	}

	if seq.info.IsNone() {
		return types.AssetInfo{}, errors.NewTypeMismatchErrorf(a.key, "AssetInfo",
			"series %s carries no asset metadata", a.key)
	}

	return seq.info.Unwrap(), nil
}

// Project returns the scalar series for one candle field of this asset. The
// same field always yields the identical cached series instance.
func (a *AssetSeries) Project(field types.Field) (*ScalarSeries, error) {
	return a.deriver.Project(a.Series, field)
}

// Open returns the open-price series for this asset.
func (a *AssetSeries) Open() (*ScalarSeries, error) {
	return a.Project(types.FieldOpen)
}

// High returns the high-price series for this asset.
func (a *AssetSeries) High() (*ScalarSeries, error) {
	return a.Project(types.FieldHigh)
}

// Low returns the low-price series for this asset.
func (a *AssetSeries) Low() (*ScalarSeries, error) {
	return a.Project(types.FieldLow)
}

// Close returns the close-price series for this asset.
func (a *AssetSeries) Close() (*ScalarSeries, error) {
	return a.Project(types.FieldClose)
}

// Volume returns the volume series for this asset.
func (a *AssetSeries) Volume() (*ScalarSeries, error) {
	return a.Project(types.FieldVolume)
}

// Allocate submits a target-weight order for this asset to the broker.
func (a *AssetSeries) Allocate(weight decimal.Decimal, kind types.OrderKind) error {
	if a.broker == nil {
		return errors.Newf(errors.ErrCodeBrokerUnavailable, "no broker configured for series %s", a.key)
	}

	order := types.TargetOrder{
		ID:     uuid.New().String(),
		Symbol: a.key,
		Weight: weight,
		Kind:   kind,
	}
	if err := order.Validate(); err != nil {
		return err
	}

	if err := a.broker.SubmitTarget(order); err != nil {
		return errors.Wrapf(errors.ErrCodeOrderRejected, err, "broker rejected target order for %s", a.key)
	}

	return nil
}

// Position returns the current position weight for this asset as a fraction
// of account value, zero when no position is recorded.
func (a *AssetSeries) Position() (decimal.Decimal, error) {
	if a.broker == nil {
		return decimal.Zero, errors.Newf(errors.ErrCodeBrokerUnavailable, "no broker configured for series %s", a.key)
	}

	weight, err := a.broker.PositionWeight(a.key)
	if err != nil {
		return decimal.Zero, errors.Wrapf(errors.ErrCodePositionLookup, err, "position lookup failed for %s", a.key)
	}

	return weight, nil
}
