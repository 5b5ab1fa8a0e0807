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
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"log"
	"slices"
	"strings"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/collections"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxproj"
	lru "github.com/hashicorp/golang-lru/v2"
)

const (
	configurationHashLength = 5
	// DefaultConfigurationHashCacheSize is the capacity of the memoized
	// configuration hashes of a TargetDisambiguator.
	DefaultConfigurationHashCacheSize = 1024
)

// TargetDisambiguator gives every consolidated target a display name that is
// unique among all targets.
//
// The base name is the module name if no other label shares the module name
// and product type, else the label's name if no other label shares it and the
// product type, else the label itself. When several consolidated targets end
// up with the same base name, distinguishers are appended in parentheses:
// the product type, the OS, version, environment and architecture, the Xcode
// configurations and, when all of that is still ambiguous, a short hash of
// the target configurations.
type TargetDisambiguator struct {
	configurationHashes *lru.Cache[string, string]
}

// NewDisambiguator creates a TargetDisambiguator memoizing up to `cacheSize`
// configuration hashes.
func NewDisambiguator(cacheSize int) (*TargetDisambiguator, error) {
	cache, err := lru.New[string, string](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("creating configuration hash cache: %w", err)
	}
	return &TargetDisambiguator{configurationHashes: cache}, nil
}

type moduleNameAndProductType struct {
	normalizedModuleName string
	productType          pbxproj.ProductType
}

type nameAndProductType struct {
	normalizedName string
	productType    pbxproj.ProductType
}

type placement struct {
	components *targetComponents
	baseName   string
}

// Disambiguate returns one DisambiguatedTarget per consolidated target,
// sorted by name.
func (d *TargetDisambiguator) Disambiguate(consolidated []*ConsolidatedTarget) []DisambiguatedTarget {
	labelsByModuleName := make(map[moduleNameAndProductType]collections.Set[string])
	labelsByName := make(map[nameAndProductType]collections.Set[string])
	for _, ct := range consolidated {
		moduleKey := moduleNameAndProductType{ct.normalizedModuleName(), ct.ProductType()}
		if labelsByModuleName[moduleKey] == nil {
			labelsByModuleName[moduleKey] = make(collections.Set[string])
		}
		labelsByModuleName[moduleKey].Add(ct.normalizedLabel())

		nameKey := nameAndProductType{ct.normalizedName(), ct.ProductType()}
		if labelsByName[nameKey] == nil {
			labelsByName[nameKey] = make(collections.Set[string])
		}
		labelsByName[nameKey].Add(ct.normalizedLabel())
	}

	names := make(map[string]*targetComponents)
	labels := make(map[string]*targetComponents)
	componentsFor := func(m map[string]*targetComponents, key string) *targetComponents {
		if m[key] == nil {
			m[key] = newTargetComponents()
		}
		return m[key]
	}

	placements := make([]placement, len(consolidated))
	for i, ct := range consolidated {
		var p placement
		switch {
		case len(labelsByModuleName[moduleNameAndProductType{ct.normalizedModuleName(), ct.ProductType()}]) == 1:
			p = placement{componentsFor(names, ct.normalizedModuleName()), ct.ModuleName()}
		case len(labelsByName[nameAndProductType{ct.normalizedName(), ct.ProductType()}]) == 1:
			p = placement{componentsFor(names, ct.normalizedName()), ct.Name()}
		default:
			p = placement{componentsFor(labels, ct.normalizedLabel()), ct.Label().String()}
		}
		p.components.add(ct)
		placements[i] = p
	}

	result := make([]DisambiguatedTarget, len(consolidated))
	for i, ct := range consolidated {
		result[i] = DisambiguatedTarget{
			Name:   placements[i].components.uniqueName(ct, placements[i].baseName, d.configurationHash),
			Target: ct,
		}
	}

	ensureUniqueNames(result)

	collator := pbxproj.NewNameCollator()
	slices.SortStableFunc(result, func(a, b DisambiguatedTarget) int {
		if c := collator.Compare(a.Name, b.Name); c != 0 {
			return c
		}
		return strings.Compare(string(a.Target.Key), string(b.Target.Key))
	})
	return result
}

// configurationHash returns a short hash of the configurations of the
// variants of `ct`.
func (d *TargetDisambiguator) configurationHash(ct *ConsolidatedTarget) string {
	configurations := collections.MapSlice(ct.SortedTargets, func(t *pbxproj.Target) string {
		return t.ID.Configuration()
	})
	slices.Sort(configurations)
	cacheKey := strings.Join(configurations, "\n")
	if hash, ok := d.configurationHashes.Get(cacheKey); ok {
		return hash
	}
	hash := sha1Hex(configurations)[:configurationHashLength]
	d.configurationHashes.Add(cacheKey, hash)
	return hash
}

// sha1Hex hashes the concatenation of `sorted`.
func sha1Hex(sorted []string) string {
	hasher := sha1.New()
	for _, s := range sorted {
		hasher.Write([]byte(s))
	}
	return hex.EncodeToString(hasher.Sum(nil))
}

// ensureUniqueNames appends a hash of the variant ids to names that still
// collide (ignoring case) after distinguishing, widening the hash until every
// name is unique.
func ensureUniqueNames(targets []DisambiguatedTarget) {
	colliding := collidingNames(targets)
	if len(colliding) == 0 {
		return
	}

	baseNames := collections.MapSlice(targets, func(t DisambiguatedTarget) string { return t.Name })
	for width := configurationHashLength; len(colliding) > 0; width++ {
		if width > sha1.Size*2 {
			log.Panicf("unable to disambiguate target names %v", collections.Sorted(collections.ToSet(
				collections.MapSlice(colliding, func(i int) string { return targets[i].Name }))))
		}
		for _, i := range colliding {
			ids := collections.MapSlice(targets[i].Target.Key.SortedIDs(), func(id pbxproj.TargetID) string { return string(id) })
			targets[i].Name = fmt.Sprintf("%s (%s)", baseNames[i], sha1Hex(ids)[:width])
		}
		colliding = collidingNames(targets)
	}
}

func collidingNames(targets []DisambiguatedTarget) []int {
	normalized := func(t DisambiguatedTarget) string { return strings.ToLower(t.Name) }
	counts := collections.CountBy(targets, normalized)

	var colliding []int
	for i, t := range targets {
		if counts[normalized(t)] > 1 {
			colliding = append(colliding, i)
		}
	}
	return colliding
}
