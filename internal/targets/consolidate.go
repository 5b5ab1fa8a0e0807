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

package targets

import (
	"fmt"
	"log"
	"maps"
	"slices"
	"strings"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/collections"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxproj"
)

// UnknownDependencyError is returned when a variant references a target id
// that is not part of the target set.
type UnknownDependencyError struct {
	Target     pbxproj.TargetID
	Dependency pbxproj.TargetID
}

func (e *UnknownDependencyError) Error() string {
	return fmt.Sprintf("target %q depends on %q, which is not a known target", e.Target, e.Dependency)
}

// TargetConsolidator merges variants that only differ by configuration.
//
// Variants are candidates for consolidation when they share label, product
// type and module name; watchOS variants never consolidate with other
// platforms. Candidates are then bucketed so that a consolidated target holds
// at most one variant per Xcode configuration and platform. Finally, a group
// whose variants depend on different consolidated targets is split up again,
// since Xcode cannot express conditional dependencies.
type TargetConsolidator struct {
	// Logf receives warnings about groups that could not be consolidated.
	// May be nil.
	Logf func(format string, args ...any)
}

// NewConsolidator creates a TargetConsolidator logging to the standard
// logger.
func NewConsolidator() *TargetConsolidator {
	return &TargetConsolidator{Logf: log.Printf}
}

type consolidatableKey struct {
	label       string
	productType pbxproj.ProductType
	moduleName  string
	isWatchOS   bool
}

type configurationAndPlatform struct {
	xcodeConfiguration string
	platform           pbxproj.Platform
}

// Consolidate groups `variants` into consolidated targets, ordered by key.
func (c *TargetConsolidator) Consolidate(variants []*pbxproj.Target) ([]*ConsolidatedTarget, error) {
	byID := make(map[pbxproj.TargetID]*pbxproj.Target, len(variants))
	for _, variant := range variants {
		if _, exists := byID[variant.ID]; exists {
			return nil, fmt.Errorf("duplicate target id %q", variant.ID)
		}
		byID[variant.ID] = variant
	}

	logf := c.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}
	state := consolidation{
		byID:      byID,
		groups:    make(map[pbxproj.Key][]pbxproj.TargetID),
		groupOf:   make(map[pbxproj.TargetID]pbxproj.Key, len(variants)),
		dependers: make(map[pbxproj.TargetID][]pbxproj.TargetID),
		logf:      logf,
	}
	for _, variant := range variants {
		for _, dep := range collections.Dedup(variant.AllDependencies()) {
			if _, ok := byID[dep]; !ok {
				return nil, &UnknownDependencyError{Target: variant.ID, Dependency: dep}
			}
			state.dependers[dep] = append(state.dependers[dep], variant.ID)
		}
	}

	candidates := collections.GroupBy(variants, func(t *pbxproj.Target) consolidatableKey {
		return consolidatableKey{
			label:       t.Label.String(),
			productType: t.ProductType,
			moduleName:  t.ModuleName,
			isWatchOS:   t.Platform.OS() == pbxproj.WatchOS,
		}
	})
	for _, group := range candidates.All() {
		for _, bucket := range bucketByConfiguration(group) {
			state.add(bucket)
		}
	}

	state.splitConditionalDependencies()

	keys := slices.Sorted(maps.Keys(state.groups))
	consolidated := make([]*ConsolidatedTarget, len(keys))
	for i, key := range keys {
		consolidated[i] = NewConsolidatedTarget(collections.MapSlice(state.groups[key], func(id pbxproj.TargetID) *pbxproj.Target {
			return byID[id]
		})...)
	}
	return consolidated, nil
}

// bucketByConfiguration splits candidates so that each bucket has at most
// one variant per Xcode configuration and platform. The n-th sorted variant
// of every configuration lands in bucket n.
func bucketByConfiguration(candidates []*pbxproj.Target) [][]pbxproj.TargetID {
	perConfiguration := make(map[configurationAndPlatform][]*pbxproj.Target)
	bucketOf := make(map[pbxproj.TargetID]int, len(candidates))
	var unconfigured []*pbxproj.Target
	for _, target := range candidates {
		if len(target.XcodeConfigurations) == 0 {
			unconfigured = append(unconfigured, target)
			continue
		}
		for _, configuration := range collections.Dedup(target.XcodeConfigurations) {
			key := configurationAndPlatform{xcodeConfiguration: configuration, platform: target.Platform}
			perConfiguration[key] = append(perConfiguration[key], target)
		}
	}

	for _, targets := range perConfiguration {
		slices.SortFunc(targets, pbxproj.CompareTargets)
		for idx, target := range targets {
			if current, ok := bucketOf[target.ID]; !ok || idx < current {
				bucketOf[target.ID] = idx
			}
		}
	}

	bucketCount := 0
	for _, idx := range bucketOf {
		bucketCount = max(bucketCount, idx+1)
	}
	buckets := make([][]pbxproj.TargetID, bucketCount)
	for _, target := range candidates {
		if idx, ok := bucketOf[target.ID]; ok {
			buckets[idx] = append(buckets[idx], target.ID)
		}
	}
	for _, target := range unconfigured {
		buckets = append(buckets, []pbxproj.TargetID{target.ID})
	}
	return slices.DeleteFunc(buckets, func(bucket []pbxproj.TargetID) bool { return len(bucket) == 0 })
}

type consolidation struct {
	byID    map[pbxproj.TargetID]*pbxproj.Target
	groups  map[pbxproj.Key][]pbxproj.TargetID
	groupOf map[pbxproj.TargetID]pbxproj.Key
	// Reverse dependency edges between variants.
	dependers map[pbxproj.TargetID][]pbxproj.TargetID
	logf      func(format string, args ...any)
}

func (s *consolidation) add(ids []pbxproj.TargetID) pbxproj.Key {
	key := pbxproj.NewKey(ids...)
	s.groups[key] = key.SortedIDs()
	for _, id := range ids {
		s.groupOf[id] = key
	}
	return key
}

// dependencySignature identifies the set of groups `id` depends on.
func (s *consolidation) dependencySignature(id pbxproj.TargetID) string {
	deps := make(collections.Set[pbxproj.Key])
	for _, dep := range s.byID[id].AllDependencies() {
		deps.Add(s.groupOf[dep])
	}
	return strings.Join(collections.MapSlice(collections.Sorted(deps), func(k pbxproj.Key) string {
		return string(k)
	}), "\x00")
}

type queuedKey pbxproj.Key

func (k queuedKey) Less(other queuedKey) bool { return k < other }

func (s *consolidation) splitConditionalDependencies() {
	queue := collections.NewEmptyPriorityQueue[queuedKey]()
	queued := make(collections.Set[pbxproj.Key])
	enqueue := func(key pbxproj.Key) {
		if len(s.groups[key]) > 1 && queued.Insert(key) {
			queue.Push(queuedKey(key))
		}
	}
	for key := range s.groups {
		enqueue(key)
	}

	for !queue.Empty() {
		key := pbxproj.Key(queue.Pop())
		delete(queued, key)
		ids, exists := s.groups[key]
		if !exists {
			continue
		}

		bySignature := collections.GroupBy(ids, s.dependencySignature)
		if len(bySignature.Keys) == 1 {
			continue
		}

		groupings := make([]string, 0, len(bySignature.Keys))
		for _, split := range bySignature.All() {
			groupings = append(groupings, fmt.Sprint(split))
		}
		slices.Sort(groupings)
		s.logf("WARNING: Was unable to consolidate target groupings \"%s\" since they have conditional dependencies (e.g. `deps`, `test_host`, `watch_application`, etc.)", strings.Join(groupings, ", "))

		delete(s.groups, key)
		for _, split := range bySignature.All() {
			enqueue(s.add(split))
		}
		for _, id := range ids {
			for _, depender := range s.dependers[id] {
				enqueue(s.groupOf[depender])
			}
		}
	}
}
