// Package mapper converts slices between layers.
package mapper

import "fmt"

// MapSlice converts each item with fn. Nil input yields an empty, non-nil
// slice so lists render as [] in JSON.
func MapSlice[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, len(items))
	for i := range items {
		out[i] = fn(items[i])
	}
	return out
}

// MapRows converts persistence rows in place order, stopping at the first row
// that fails. The error names the failing row's index.
func MapRows[M, D any](rows []M, toDomain func(*M) (D, error)) ([]D, error) {
	out := make([]D, len(rows))
	for i := range rows {
		d, err := toDomain(&rows[i])
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i, err)
		}
		out[i] = d
	}
	return out, nil
}
