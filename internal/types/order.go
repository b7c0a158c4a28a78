package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/quantmill/simseries/pkg/errors"
)

// OrderKind selects how a target allocation is executed by the broker.
type OrderKind string

const (
	OrderKindMarket OrderKind = "MARKET"
	OrderKindLimit  OrderKind = "LIMIT"
)

// TargetOrder asks the broker to move a symbol's position to a target weight,
// expressed as a fraction of account value.
type TargetOrder struct {
	ID     string          `yaml:"id" json:"id" validate:"required,uuid"`
	Symbol string          `yaml:"symbol" json:"symbol" validate:"required"`
	Weight decimal.Decimal `yaml:"weight" json:"weight"`
	Kind   OrderKind       `yaml:"kind" json:"kind" validate:"required,oneof=MARKET LIMIT"`
}

// Validate validates the TargetOrder struct.
func (o *TargetOrder) Validate() error {
	validate := validator.New()
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidOrder, "invalid target order", err)
	}

	return nil
}
