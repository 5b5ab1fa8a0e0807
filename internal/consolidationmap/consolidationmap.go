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

// Package consolidationmap computes and serializes the consolidation maps:
// per output shard, the name, identifier and dependencies of every target, so
// that later generators can recreate native targets without consolidating
// and disambiguating again.
package consolidationmap

import (
	"fmt"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/collections"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxproj"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/targets"
	"github.com/bazelbuild/bazel-gazelle/label"
)

// Entry is the record of one consolidated target.
type Entry struct {
	Key             pbxproj.Key
	Label           label.Label
	ProductType     pbxproj.ProductType
	Name            string
	ProductBasename string
	// Empty unless the target is a UI test bundle.
	UITestHostName string
	SubIdentifier  pbxproj.SubIdentifier
	// Nil unless the target is a watchOS 2 app.
	WatchKitExtensionProduct *ProductSubIdentifier
	// Starts with BazelDependencies.
	Dependencies []pbxproj.SubIdentifier
}

// ProductSubIdentifier locates the product file reference of a target.
type ProductSubIdentifier struct {
	Target   pbxproj.SubIdentifier
	Basename string
}

func (p ProductSubIdentifier) String() string {
	return p.Target.String() + p.Basename
}

func parseProductSubIdentifier(s string) (*ProductSubIdentifier, error) {
	if len(s) < pbxproj.SubIdentifierWidth {
		return nil, fmt.Errorf("product sub-identifier %q is shorter than %d characters", s, pbxproj.SubIdentifierWidth)
	}
	target, err := pbxproj.ParseSubIdentifier(s[:pbxproj.SubIdentifierWidth])
	if err != nil {
		return nil, err
	}
	return &ProductSubIdentifier{Target: target, Basename: s[pbxproj.SubIdentifierWidth:]}, nil
}

// MissingDependencyError is returned when a dependency has no identifier.
type MissingDependencyError struct {
	Target     pbxproj.Key
	Dependency pbxproj.TargetID
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("dependency %q of target %s not found in identifiers", e.Dependency, e.Target)
}

// Maps holds the entries of every output path, in output path order.
type Maps = collections.Groups[string, Entry]

// Calculate groups the entries of `identified` by output path. Every path in
// `outputPaths` is present in the result, even without entries.
func Calculate(
	outputPaths []string,
	identified []targets.IdentifiedTarget,
	lookup targets.IdentifierLookup,
) (Maps, error) {
	maps := Maps{Values: make(map[string][]Entry, len(outputPaths))}
	for _, path := range collections.Dedup(outputPaths) {
		maps.Keys = append(maps.Keys, path)
		maps.Values[path] = nil
	}

	byID := make(map[pbxproj.TargetID]*targets.IdentifiedTarget)
	for i := range identified {
		for _, id := range identified[i].Key.SortedIDs() {
			byID[id] = &identified[i]
		}
	}

	for _, target := range identified {
		var watchKitExtension *ProductSubIdentifier
		if target.WatchKitExtension != "" {
			extension, ok := byID[target.WatchKitExtension]
			if !ok {
				return Maps{}, &MissingDependencyError{Target: target.Key, Dependency: target.WatchKitExtension}
			}
			watchKitExtension = &ProductSubIdentifier{
				Target:   extension.Identifier.SubIdentifier,
				Basename: extension.ProductBasename,
			}
		}

		dependencies := make([]pbxproj.SubIdentifier, 0, len(target.Dependencies)+1)
		dependencies = append(dependencies, pbxproj.BazelDependencies.SubIdentifier)
		for _, dep := range target.Dependencies {
			identifier, ok := lookup[dep]
			if !ok {
				return Maps{}, &MissingDependencyError{Target: target.Key, Dependency: dep}
			}
			dependencies = append(dependencies, identifier.SubIdentifier)
		}

		path := target.ConsolidationMapOutputPath
		if _, known := maps.Values[path]; !known {
			maps.Keys = append(maps.Keys, path)
		}
		maps.Values[path] = append(maps.Values[path], Entry{
			Key:                      target.Key,
			Label:                    target.Label,
			ProductType:              target.ProductType,
			Name:                     target.Name,
			ProductBasename:          target.ProductBasename,
			UITestHostName:           target.UITestHostName,
			SubIdentifier:            target.Identifier.SubIdentifier,
			WatchKitExtensionProduct: watchKitExtension,
			Dependencies:             dependencies,
		})
	}
	return maps, nil
}
