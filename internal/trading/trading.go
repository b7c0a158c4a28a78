// Package trading defines the port to the external order/account subsystem.
// The data-access core only submits target allocations and reads back
// position weights; order lifecycle, fills, and accounting live behind the
// Broker interface.
package trading

import (
	"github.com/shopspring/decimal"

	"github.com/quantmill/simseries/internal/types"
)

// Broker is the order-submission and position-tracking collaborator.
type Broker interface {
	// SubmitTarget asks the broker to move the order's symbol to the target
	// weight, expressed as a fraction of account value.
	SubmitTarget(order types.TargetOrder) error
	// PositionWeight returns the current weight for a symbol as a fraction of
	// account value. Symbols with no recorded position report zero.
	PositionWeight(symbol string) (decimal.Decimal, error)
}
