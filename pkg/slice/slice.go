// Copyright (c) 2026 Rayaw Storefront. All rights reserved.

/*
Package slice complements the standard [slices] package with Map, Filter and
Reduce. The Shop Store rebuilds its cart as a fresh slice on every mutation,
and these helpers keep those rebuilds declarative.
*/
package slice

// Map transforms every element of input. A nil input yields nil.
func Map[T any, U any](input []T, transform func(T) U) []U {
	if input == nil {
		return nil
	}

	result := make([]U, len(input))
	for i, v := range input {
		result[i] = transform(v)
	}

	return result
}

// Filter returns a new slice holding the elements for which keep is true.
// The result never aliases input.
func Filter[T any](input []T, keep func(T) bool) []T {
	result := make([]T, 0, len(input))
	for _, v := range input {
		if keep(v) {
			result = append(result, v)
		}
	}
	return result
}

// Reduce folds input into a single value.
func Reduce[T any, U any](input []T, initial U, reducer func(accumulator U, current T) U) U {
	result := initial
	for _, v := range input {
		result = reducer(result, v)
	}
	return result
}
