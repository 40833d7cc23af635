// Copyright 2024 Canonical Ltd.
// Licensed under the AGPLv3, see LICENCE file for details.

package config

// reorderBy returns list arranged in the order in which order names
// its entries. Entries that order does not name keep their relative
// order at the end.
func reorderBy[T any](list, order []T, name func(T) string) []T {
	out := make([]T, 0, len(list))
	used := make([]bool, len(list))
	for _, o := range order {
		for i, item := range list {
			if !used[i] && name(item) == name(o) {
				out = append(out, item)
				used[i] = true
				break
			}
		}
	}
	for i, item := range list {
		if !used[i] {
			out = append(out, item)
		}
	}
	return out
}

// equalLists compares two lists entry by entry.
func equalLists[T interface{ Equal(T) bool }](a, b []T) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}
