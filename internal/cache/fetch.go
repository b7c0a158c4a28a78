package cache

import "github.com/quantmill/simseries/pkg/errors"

// Fetch is a typed fetch-or-compute over a heterogeneous Store[any]. If an
// existing entry under key holds a value of a different type the call fails
// with ErrCodeTypeMismatch instead of faulting on an unchecked assertion;
// this only happens when two callers use the same key for different kinds of
// values.
func Fetch[V any](store *Store[any], key string, compute func() V) (V, error) {
	value := store.FetchOrCompute(key, func() any {
		return compute()
	})

	typed, ok := value.(V)
	if !ok {
		var zero V

		return zero, errors.Newf(errors.ErrCodeTypeMismatch, "cache entry %q holds a %T, not the requested type", key, value)
	}

	return typed, nil
}
