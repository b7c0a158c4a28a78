package trading

import (
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/quantmill/simseries/internal/logger"
	"github.com/quantmill/simseries/internal/types"
	"github.com/quantmill/simseries/pkg/errors"
)

// PaperBroker is an in-memory Broker for simulation runs. Every submitted
// target is applied immediately: the symbol's position weight becomes the
// order's weight. It keeps the full submission history for inspection.
type PaperBroker struct {
	weights map[string]decimal.Decimal
	orders  []types.TargetOrder
	log     *logger.Logger
	mu      sync.Mutex
}

// NewPaperBroker creates an empty paper broker.
func NewPaperBroker(log *logger.Logger) *PaperBroker {
	if log == nil {
		log = logger.NewNopLogger()
	}

	return &PaperBroker{
		weights: make(map[string]decimal.Decimal),
		log:     log,
	}
}

// SubmitTarget implements Broker.
func (b *PaperBroker) SubmitTarget(order types.TargetOrder) error {
	if err := order.Validate(); err != nil {
		return errors.Wrap(errors.ErrCodeOrderRejected, "target order rejected", err)
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.orders = append(b.orders, order)
	b.weights[order.Symbol] = order.Weight

	b.log.Info("target order accepted",
		zap.String("order_id", order.ID),
		zap.String("symbol", order.Symbol),
		zap.String("weight", order.Weight.String()),
		zap.String("kind", string(order.Kind)),
	)

	return nil
}

// PositionWeight implements Broker.
func (b *PaperBroker) PositionWeight(symbol string) (decimal.Decimal, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	weight, ok := b.weights[symbol]
	if !ok {
		return decimal.Zero, nil
	}

	return weight, nil
}

// Orders returns a copy of the submission history in order of submission.
func (b *PaperBroker) Orders() []types.TargetOrder {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]types.TargetOrder, len(b.orders))
	copy(out, b.orders)

	return out
}
