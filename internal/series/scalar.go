package series

import "github.com/quantmill/simseries/pkg/promise"

// ScalarSeries is a float64-valued series. It adds no behavior over the
// engine; it exists for type safety at call sites.
type ScalarSeries struct {
	*Series[float64]
}

// NewScalarSeries creates a scalar series over the given background computation.
func NewScalarSeries(key string, data *promise.Promise[Sequence[float64]], clock Clock) *ScalarSeries {
	return &ScalarSeries{Series: NewSeries(key, data, clock)}
}

// BoolSeries is a bool-valued series. Like ScalarSeries it is a pure
// specialization of the engine.
type BoolSeries struct {
	*Series[bool]
}

// NewBoolSeries creates a boolean series over the given background computation.
func NewBoolSeries(key string, data *promise.Promise[Sequence[bool]], clock Clock) *BoolSeries {
	return &BoolSeries{Series: NewSeries(key, data, clock)}
}
