package types

import "time"

// Bar is one dated observation in a time series. Bars are immutable once
// produced; series code copies them out rather than handing callers a view
// into shared storage.
type Bar[V any] struct {
	Time  time.Time `json:"time" yaml:"time"`
	Value V         `json:"value" yaml:"value"`
}

// NewBar creates a bar for the given time and value.
func NewBar[V any](t time.Time, value V) Bar[V] {
	return Bar[V]{Time: t, Value: value}
}

// Candle is a single OHLCV observation. All fields are non-negative by
// convention; this is not enforced.
type Candle struct {
	Open   float64 `json:"open" yaml:"open" csv:"open"`
	High   float64 `json:"high" yaml:"high" csv:"high"`
	Low    float64 `json:"low" yaml:"low" csv:"low"`
	Close  float64 `json:"close" yaml:"close" csv:"close"`
	Volume float64 `json:"volume" yaml:"volume" csv:"volume"`
}

// Field names one scalar component of a Candle.
type Field string

const (
	FieldOpen   Field = "open"
	FieldHigh   Field = "high"
	FieldLow    Field = "low"
	FieldClose  Field = "close"
	FieldVolume Field = "volume"
)

// AllFields lists every supported candle field projection.
var AllFields = []Field{FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume}

// IsValid reports whether f names a supported candle field.
func (f Field) IsValid() bool {
	switch f {
	case FieldOpen, FieldHigh, FieldLow, FieldClose, FieldVolume:
		return true
	default:
		return false
	}
}

// Of extracts this field's value from a candle. Returns 0 for an invalid field;
// callers are expected to check IsValid first.
func (f Field) Of(c Candle) float64 {
	switch f {
	case FieldOpen:
		return c.Open
	case FieldHigh:
		return c.High
	case FieldLow:
		return c.Low
	case FieldClose:
		return c.Close
	case FieldVolume:
		return c.Volume
	default:
		return 0
	}
}
