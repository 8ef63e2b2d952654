package utils

import (
	"cmp"
	"slices"
)

// Compare orders two values the way cmp.Compare does: negative, zero or positive.
type Compare[T any] func(a, b T) int

// ChainCompare applies each comparison in turn and returns the first non-zero result.
func ChainCompare[T any](keys ...Compare[T]) Compare[T] {
	return func(a, b T) int {
		for _, key := range keys {
			if c := key(a, b); c != 0 {
				return c
			}
		}
		return 0
	}
}

// TrueFirst sorts values whose flag is set ahead of the rest.
func TrueFirst[T any](flag func(T) bool) Compare[T] {
	return func(a, b T) int {
		fa, fb := flag(a), flag(b)
		switch {
		case fa == fb:
			return 0
		case fa:
			return -1
		default:
			return 1
		}
	}
}

// PositiveAscending sorts by a positional key, with zero or negative keys
// meaning "unset" and placed after every set key.
func PositiveAscending[T any](key func(T) int) Compare[T] {
	return func(a, b T) int {
		ka, kb := key(a), key(b)
		switch {
		case ka > 0 && kb > 0:
			return cmp.Compare(ka, kb)
		case ka > 0:
			return -1
		case kb > 0:
			return 1
		}
		return 0
	}
}

// Ascending sorts by an ordered key.
func Ascending[T any, K cmp.Ordered](key func(T) K) Compare[T] {
	return func(a, b T) int {
		return cmp.Compare(key(a), key(b))
	}
}

// SortStable sorts items in place with the chained comparison, keeping the
// input order of items that compare equal.
func SortStable[T any](items []T, keys ...Compare[T]) {
	slices.SortStableFunc(items, ChainCompare(keys...))
}
