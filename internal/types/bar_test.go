package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewBar(t *testing.T) {
	at := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	bar := NewBar(at, 10.5)

	assert.Equal(t, at, bar.Time)
	assert.Equal(t, 10.5, bar.Value)
}

func TestFieldOf(t *testing.T) {
	candle := Candle{
		Open:   10.0,
		High:   12.0,
		Low:    9.5,
		Close:  11.0,
		Volume: 1000,
	}

	tests := []struct {
		name     string
		field    Field
		expected float64
	}{
		{name: "open", field: FieldOpen, expected: 10.0},
		{name: "high", field: FieldHigh, expected: 12.0},
		{name: "low", field: FieldLow, expected: 9.5},
		{name: "close", field: FieldClose, expected: 11.0},
		{name: "volume", field: FieldVolume, expected: 1000},
		{name: "unknown field", field: Field("vwap"), expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.field.Of(candle))
		})
	}
}

func TestFieldIsValid(t *testing.T) {
	for _, field := range AllFields {
		assert.True(t, field.IsValid(), "field %s should be valid", field)
	}

	assert.False(t, Field("vwap").IsValid())
	assert.False(t, Field("").IsValid())
}
