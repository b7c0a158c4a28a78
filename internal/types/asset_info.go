package types

// AssetInfo is the typed metadata payload attached to an asset series at
// construction. It replaces an opaque payload plus downcast with a shape that
// is fixed when the series is built.
type AssetInfo struct {
	Ticker      string `json:"ticker" yaml:"ticker" validate:"required"`
	Description string `json:"description" yaml:"description"`
}
