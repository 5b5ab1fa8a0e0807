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

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/collections"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxproj"
	"github.com/bazelbuild/bazel-gazelle/label"
)

type (
	Consolidator interface {
		Consolidate(variants []*pbxproj.Target) ([]*ConsolidatedTarget, error)
	}

	Disambiguator interface {
		Disambiguate(consolidated []*ConsolidatedTarget) []DisambiguatedTarget
	}

	IdentifierAssigner interface {
		Assign(disambiguated []DisambiguatedTarget, placements map[pbxproj.TargetID]ShardAndOutputPath) []IdentifiedTarget
	}
)

// ShardAndOutputPath locates the consolidation map a variant is written to.
type ShardAndOutputPath struct {
	Shard      pbxproj.Shard
	OutputPath string
}

// ConsolidationMapInput lists the variants that belong to one consolidation
// map output.
type ConsolidationMapInput struct {
	OutputPath string
	Targets    []*pbxproj.Target
}

// IdentifiedTarget is a disambiguated target with its final identifier.
type IdentifiedTarget struct {
	ConsolidationMapOutputPath string
	Key                        pbxproj.Key
	Name                       string
	Identifier                 pbxproj.Identifier
	Label                      label.Label
	ProductType                pbxproj.ProductType
	ProductBasename            string
	// Dependencies of the representative variant, at most one per
	// consolidated target, in declaration order.
	Dependencies []pbxproj.TargetID
	UITestHost   pbxproj.TargetID
	// Disambiguated name of the target UITestHost was consolidated into.
	UITestHostName    string
	WatchKitExtension pbxproj.TargetID
}

// IdentifierLookup resolves any variant id to the identifier of the target
// it was consolidated into. It is read-only once built.
type IdentifierLookup map[pbxproj.TargetID]pbxproj.Identifier

// NewIdentifierLookup indexes the identifiers of every variant of
// `identified`.
func NewIdentifierLookup(identified []IdentifiedTarget) IdentifierLookup {
	lookup := make(IdentifierLookup)
	for _, target := range identified {
		for _, id := range target.Key.SortedIDs() {
			lookup[id] = target.Identifier
		}
	}
	return lookup
}

// ShardTargets flattens `inputs`. The shard of a variant is the index of its
// consolidation map output.
func ShardTargets(inputs []ConsolidationMapInput) ([]*pbxproj.Target, map[pbxproj.TargetID]ShardAndOutputPath, error) {
	if len(inputs) > pbxproj.MaxShards {
		return nil, nil, fmt.Errorf("too many consolidation maps: %d, at most %d are supported", len(inputs), pbxproj.MaxShards)
	}
	var variants []*pbxproj.Target
	placements := make(map[pbxproj.TargetID]ShardAndOutputPath)
	for idx, input := range inputs {
		for _, target := range input.Targets {
			if previous, exists := placements[target.ID]; exists {
				return nil, nil, fmt.Errorf("target %q is listed for both %q and %q", target.ID, previous.OutputPath, input.OutputPath)
			}
			placements[target.ID] = ShardAndOutputPath{Shard: pbxproj.Shard(idx), OutputPath: input.OutputPath}
			variants = append(variants, target)
		}
	}
	return variants, placements, nil
}

// TargetIdentifierAssigner assigns identifiers for one generation run. It
// owns the sub-identifier hasher so that hashes stay unique across calls.
type TargetIdentifierAssigner struct {
	hasher *SubIdentifierHasher
}

func NewIdentifierAssigner() *TargetIdentifierAssigner {
	return &TargetIdentifierAssigner{hasher: NewSubIdentifierHasher()}
}

// Assign identifies `disambiguated` in order. Every representative variant
// must have a placement.
func (a *TargetIdentifierAssigner) Assign(
	disambiguated []DisambiguatedTarget,
	placements map[pbxproj.TargetID]ShardAndOutputPath,
) []IdentifiedTarget {
	keyOf := make(map[pbxproj.TargetID]pbxproj.Key)
	nameOf := make(map[pbxproj.TargetID]string)
	for _, target := range disambiguated {
		for _, id := range target.Target.Key.SortedIDs() {
			keyOf[id] = target.Target.Key
			nameOf[id] = target.Name
		}
	}

	identified := make([]IdentifiedTarget, len(disambiguated))
	for i, target := range disambiguated {
		representative := target.Target.Representative()
		placement, ok := placements[representative.ID]
		if !ok {
			log.Panicf("target %q has no consolidation map output", representative.ID)
		}

		identified[i] = IdentifiedTarget{
			ConsolidationMapOutputPath: placement.OutputPath,
			Key:                        target.Target.Key,
			Name:                       target.Name,
			Identifier: pbxproj.NewTargetIdentifier(
				target.Name,
				a.hasher.SubIdentifier(representative.ID, placement.Shard),
			),
			Label:             target.Target.Label(),
			ProductType:       target.Target.ProductType(),
			ProductBasename:   representative.ProductBasename,
			Dependencies:      uniqueDependencies(representative, target.Target.Key, keyOf),
			UITestHost:        target.Target.UITestHost(),
			UITestHostName:    nameOf[target.Target.UITestHost()],
			WatchKitExtension: representative.WatchKitExtension,
		}
	}
	return identified
}

// uniqueDependencies drops dependencies on the target itself and later
// dependencies on an already referenced consolidated target. Unknown
// dependencies are kept so that emitters report them.
func uniqueDependencies(t *pbxproj.Target, self pbxproj.Key, keyOf map[pbxproj.TargetID]pbxproj.Key) []pbxproj.TargetID {
	seen := collections.SetOf(self)
	var deps []pbxproj.TargetID
	for _, dep := range t.AllDependencies() {
		key, known := keyOf[dep]
		if !known {
			key = pbxproj.NewKey(dep)
		}
		if seen.Insert(key) {
			deps = append(deps, dep)
		}
	}
	return deps
}

// Pipeline runs consolidation, disambiguation and identifier assignment.
type Pipeline struct {
	consolidator  Consolidator
	disambiguator Disambiguator
	assigner      IdentifierAssigner
}

func NewPipeline(consolidator Consolidator, disambiguator Disambiguator, assigner IdentifierAssigner) *Pipeline {
	return &Pipeline{
		consolidator:  consolidator,
		disambiguator: disambiguator,
		assigner:      assigner,
	}
}

// IdentifyTargets identifies every variant listed in `inputs`. The result is
// sorted by target name.
func (p *Pipeline) IdentifyTargets(inputs []ConsolidationMapInput) ([]IdentifiedTarget, IdentifierLookup, error) {
	variants, placements, err := ShardTargets(inputs)
	if err != nil {
		return nil, nil, err
	}
	consolidated, err := p.consolidator.Consolidate(variants)
	if err != nil {
		return nil, nil, fmt.Errorf("consolidating targets: %w", err)
	}
	identified := p.assigner.Assign(p.disambiguator.Disambiguate(consolidated), placements)
	return identified, NewIdentifierLookup(identified), nil
}
