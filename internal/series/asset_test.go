package series

import (
	"context"
	"testing"

	"github.com/moznion/go-optional"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/quantmill/simseries/internal/cache"
	"github.com/quantmill/simseries/internal/trading"
	"github.com/quantmill/simseries/internal/types"
	simerrors "github.com/quantmill/simseries/pkg/errors"
	"github.com/quantmill/simseries/pkg/promise"
)

type AssetTestSuite struct {
	suite.Suite
	clock  *SimClock
	broker *trading.PaperBroker
	asset  *AssetSeries
	ctx    context.Context
}

func (suite *AssetTestSuite) SetupTest() {
	suite.clock = NewSimClock(day(3))
	suite.broker = trading.NewPaperBroker(nil)
	suite.ctx = context.Background()

	bars := candleBars([]int{1, 2, 3}, []types.Candle{
		{Open: 9.8, High: 10.1, Low: 9.7, Close: 10.0, Volume: 100},
		{Open: 10.0, High: 10.4, Low: 9.9, Close: 10.2, Volume: 200},
		{Open: 10.2, High: 10.6, Low: 10.1, Close: 10.5, Volume: 300},
	})

	info := optional.Some(types.AssetInfo{Ticker: "AAPL", Description: "Apple Inc."})
	seq, err := NewSequenceWithInfo(bars, info)
	suite.Require().NoError(err)

	raw := cache.NewStore[any]()
	built := cache.NewStore[any]()
	deriver := NewDeriver(raw, built, suite.clock, nil)

	suite.asset = NewAssetSeries("AAPL", promise.Resolved(seq), suite.clock, deriver, suite.broker)
}

func TestAssetSuite(t *testing.T) {
	suite.Run(t, new(AssetTestSuite))
}

func (suite *AssetTestSuite) TestMetadata() {
	ticker, err := suite.asset.Ticker(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal("AAPL", ticker)

	description, err := suite.asset.Description(suite.ctx)
	suite.Require().NoError(err)
	suite.Equal("Apple Inc.", description)
}

func (suite *AssetTestSuite) TestMetadataMissing() {
	bars := candleBars([]int{1}, []types.Candle{{Close: 1.0}})
	seq, err := NewSequence(bars)
	suite.Require().NoError(err)

	bare := NewAssetSeries("BARE", promise.Resolved(seq), suite.clock, nil, nil)

	_, err = bare.Ticker(suite.ctx)
	suite.Require().Error(err)
	suite.True(simerrors.IsTypeMismatchError(err))

	_, err = bare.Description(suite.ctx)
	suite.Require().Error(err)
	suite.True(simerrors.IsTypeMismatchError(err))
}

func (suite *AssetTestSuite) TestCandleAccess() {
	candle, err := suite.asset.ValueAtOffset(suite.ctx, 0)
	suite.Require().NoError(err)
	suite.Equal(10.5, candle.Close)

	candle, err = suite.asset.ValueAtDate(suite.ctx, day(2))
	suite.Require().NoError(err)
	suite.Equal(200.0, candle.Volume)
}

func (suite *AssetTestSuite) TestFieldProjections() {
	closeSeries, err := suite.asset.Close()
	suite.Require().NoError(err)

	value, err := closeSeries.ValueAtOffset(suite.ctx, 1)
	suite.Require().NoError(err)
	suite.Equal(10.2, value)

	openSeries, err := suite.asset.Open()
	suite.Require().NoError(err)

	value, err = openSeries.ValueAtDate(suite.ctx, day(1))
	suite.Require().NoError(err)
	suite.Equal(9.8, value)

	highSeries, err := suite.asset.High()
	suite.Require().NoError(err)

	value, err = highSeries.ValueAtOffset(suite.ctx, 0)
	suite.Require().NoError(err)
	suite.Equal(10.6, value)

	lowSeries, err := suite.asset.Low()
	suite.Require().NoError(err)

	value, err = lowSeries.ValueAtOffset(suite.ctx, 0)
	suite.Require().NoError(err)
	suite.Equal(10.1, value)

	volumeSeries, err := suite.asset.Volume()
	suite.Require().NoError(err)

	value, err = volumeSeries.ValueAtOffset(suite.ctx, 0)
	suite.Require().NoError(err)
	suite.Equal(300.0, value)
}

func (suite *AssetTestSuite) TestProjectionIdentityAcrossAccessors() {
	first, err := suite.asset.Close()
	suite.Require().NoError(err)

	second, err := suite.asset.Project(types.FieldClose)
	suite.Require().NoError(err)

	suite.Same(first, second)
}

func (suite *AssetTestSuite) TestAllocate() {
	err := suite.asset.Allocate(decimal.NewFromFloat(0.3), types.OrderKindMarket)
	suite.Require().NoError(err)

	orders := suite.broker.Orders()
	suite.Require().Len(orders, 1)
	suite.Equal("AAPL", orders[0].Symbol)
	suite.True(orders[0].Weight.Equal(decimal.NewFromFloat(0.3)))
	suite.Equal(types.OrderKindMarket, orders[0].Kind)
	suite.NotEmpty(orders[0].ID)
}

func (suite *AssetTestSuite) TestAllocateInvalidKind() {
	err := suite.asset.Allocate(decimal.NewFromFloat(0.3), types.OrderKind("STOP"))
	suite.Require().Error(err)
	suite.True(simerrors.HasCode(err, simerrors.ErrCodeInvalidOrder))
	suite.Empty(suite.broker.Orders())
}

func (suite *AssetTestSuite) TestPositionDefaultsToZero() {
	weight, err := suite.asset.Position()
	suite.Require().NoError(err)
	suite.True(weight.IsZero())
}

func (suite *AssetTestSuite) TestPositionReflectsAllocation() {
	err := suite.asset.Allocate(decimal.NewFromFloat(0.25), types.OrderKindLimit)
	suite.Require().NoError(err)

	weight, err := suite.asset.Position()
	suite.Require().NoError(err)
	suite.True(weight.Equal(decimal.NewFromFloat(0.25)))
}

func (suite *AssetTestSuite) TestNoBroker() {
	bars := candleBars([]int{1}, []types.Candle{{Close: 1.0}})
	seq, err := NewSequence(bars)
	suite.Require().NoError(err)

	orphan := NewAssetSeries("ORPHAN", promise.Resolved(seq), suite.clock, nil, nil)

	err = orphan.Allocate(decimal.NewFromFloat(0.1), types.OrderKindMarket)
	suite.Require().Error(err)
	suite.True(simerrors.HasCode(err, simerrors.ErrCodeBrokerUnavailable))

	_, err = orphan.Position()
	suite.Require().Error(err)
	suite.True(simerrors.HasCode(err, simerrors.ErrCodeBrokerUnavailable))
}
