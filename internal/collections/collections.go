// Copyright 2026 EngFlow Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package collections provides small generic helpers shared by the
// generators: slice transformations, order preserving grouping, a Set and a
// PriorityQueue.
//
// Every grouping helper preserves the order in which keys were first seen so
// that callers producing golden output never depend on map iteration order.
package collections

import (
	"iter"
	"slices"
)

// MapSeq applies `fn` to each element of `seq`.
func MapSeq[T, V any](seq iter.Seq[T], fn func(T) V) iter.Seq[V] {
	return func(yield func(V) bool) {
		for t := range seq {
			if !yield(fn(t)) {
				return
			}
		}
	}
}

// MapSlice applies `fn` to each element of `s` and returns the results in the
// same order.
//
// Example:
//
//	MapSlice([]int{1, 2, 3}, func(x int) string { return fmt.Sprint(x) })
//	=> []string{"1", "2", "3"}
func MapSlice[TSlice ~[]T, T, V any](s TSlice, fn func(T) V) []V {
	return slices.AppendSeq(make([]V, 0, len(s)), MapSeq(slices.Values(s), fn))
}

// FilterSlice returns the elements of `s` for which `predicate` returns true,
// in order.
func FilterSlice[TSlice ~[]T, T any](s TSlice, predicate func(T) bool) TSlice {
	result := make(TSlice, 0, len(s))
	for _, elem := range s {
		if predicate(elem) {
			result = append(result, elem)
		}
	}
	return result
}

// Groups is the result of GroupBy. Keys lists every key once, in the order of
// its first occurrence in the grouped slice.
type Groups[K comparable, T any] struct {
	Keys   []K
	Values map[K][]T
}

// GroupBy partitions `s` by `key`, keeping the relative order of elements
// within each group.
//
// Example:
//
//	GroupBy([]string{"b1", "a1", "b2"}, func(s string) byte { return s[0] })
//	=> Keys: ['b', 'a'], Values: {'b': ["b1", "b2"], 'a': ["a1"]}
func GroupBy[TSlice ~[]T, T any, K comparable](s TSlice, key func(T) K) Groups[K, T] {
	groups := Groups[K, T]{Values: make(map[K][]T)}
	for _, elem := range s {
		k := key(elem)
		if _, exists := groups.Values[k]; !exists {
			groups.Keys = append(groups.Keys, k)
		}
		groups.Values[k] = append(groups.Values[k], elem)
	}
	return groups
}

// All iterates over the groups in key order.
func (g Groups[K, T]) All() iter.Seq2[K, []T] {
	return func(yield func(K, []T) bool) {
		for _, k := range g.Keys {
			if !yield(k, g.Values[k]) {
				return
			}
		}
	}
}

// CountBy counts the elements of `s` per `key`.
func CountBy[TSlice ~[]T, T any, K comparable](s TSlice, key func(T) K) map[K]int {
	counts := make(map[K]int)
	for _, elem := range s {
		counts[key(elem)]++
	}
	return counts
}

// Dedup returns the elements of `s` with later duplicates removed.
func Dedup[TSlice ~[]T, T comparable](s TSlice) TSlice {
	seen := make(Set[T], len(s))
	result := make(TSlice, 0, len(s))
	for _, elem := range s {
		if !seen.Contains(elem) {
			seen.Add(elem)
			result = append(result, elem)
		}
	}
	return result
}
