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
	"maps"
	"slices"
	"strings"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/collections"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxproj"
	"github.com/coreos/go-semver/semver"
)

// The components below form a tree (product type > OS > minimum OS version >
// environment) recording, for a set of consolidated targets sharing a base
// name, which of those dimensions actually differ between them. Only
// dimensions that differ end up in the distinguishers.

type (
	archSet         = collections.Set[string]
	environmentSet  = map[string]archSet
	osVersionSet    = map[semver.Version]environmentSet
	osComponentsSet = map[pbxproj.OS]osVersionSet
)

// distinguisherKey summarizes every OS, version, environment, architecture
// and Xcode configuration a consolidated target covers.
type distinguisherKey struct {
	components          osComponentsSet
	xcodeConfigurations collections.Set[string]
}

func newDistinguisherKey(ct *ConsolidatedTarget) distinguisherKey {
	key := distinguisherKey{
		components:          make(osComponentsSet),
		xcodeConfigurations: make(collections.Set[string]),
	}
	for _, t := range ct.SortedTargets {
		os := t.Platform.OS()
		if key.components[os] == nil {
			key.components[os] = make(osVersionSet)
		}
		versions := key.components[os]
		if versions[t.OSVersion] == nil {
			versions[t.OSVersion] = make(environmentSet)
		}
		environments := versions[t.OSVersion]
		environment := t.Platform.Environment()
		if environments[environment] == nil {
			environments[environment] = make(archSet)
		}
		environments[environment].Add(t.Arch)
		for _, configuration := range t.XcodeConfigurations {
			key.xcodeConfigurations.Add(configuration)
		}
	}
	return key
}

// String renders the key canonically so that equal keys compare equal.
func (k distinguisherKey) String() string {
	var sb strings.Builder
	for _, os := range slices.Sorted(maps.Keys(k.components)) {
		sb.WriteString(os.String())
		sb.WriteString("{")
		sb.WriteString(canonicalVersions(k.components[os]))
		sb.WriteString("}")
	}
	sb.WriteString("|")
	sb.WriteString(canonical(k.xcodeConfigurations))
	return sb.String()
}

func canonicalVersions(versions osVersionSet) string {
	var sb strings.Builder
	for _, version := range sortedVersions(versions) {
		sb.WriteString(pbxproj.FullVersion(version))
		sb.WriteString("{")
		sb.WriteString(canonicalEnvironments(versions[version]))
		sb.WriteString("}")
	}
	return sb.String()
}

func canonicalEnvironments(environments environmentSet) string {
	var sb strings.Builder
	for _, environment := range slices.Sorted(maps.Keys(environments)) {
		sb.WriteString(environment)
		sb.WriteString("{")
		sb.WriteString(canonical(environments[environment]))
		sb.WriteString("}")
	}
	return sb.String()
}

func canonical(s collections.Set[string]) string {
	return strings.Join(collections.Sorted(s), ",")
}

func sortedVersions[V any](versions map[semver.Version]V) []semver.Version {
	return slices.SortedFunc(maps.Keys(versions), func(a, b semver.Version) int { return a.Compare(b) })
}

// targetDistinguisherKey identifies the configuration-independent parts of a
// single variant.
func targetDistinguisherKey(t *pbxproj.Target) string {
	return strings.Join([]string{
		t.Arch,
		t.Platform.OS().String(),
		pbxproj.FullVersion(t.OSVersion),
		t.Platform.Environment(),
		strings.Join(collections.Sorted(collections.ToSet(t.XcodeConfigurations)), ","),
	}, "-")
}

type targetComponents struct {
	targetKeys   collections.Set[pbxproj.Key]
	productTypes map[string]*productTypeComponents
}

func newTargetComponents() *targetComponents {
	return &targetComponents{
		targetKeys:   make(collections.Set[pbxproj.Key]),
		productTypes: make(map[string]*productTypeComponents),
	}
}

func (c *targetComponents) add(ct *ConsolidatedTarget) {
	c.targetKeys.Add(ct.Key)
	prettyName := ct.ProductType().PrettyName()
	if c.productTypes[prettyName] == nil {
		c.productTypes[prettyName] = newProductTypeComponents()
	}
	c.productTypes[prettyName].add(ct)
}

func (c *targetComponents) uniqueName(
	ct *ConsolidatedTarget,
	baseName string,
	configurationHash func(*ConsolidatedTarget) string,
) string {
	if len(c.targetKeys) <= 1 {
		return baseName
	}

	productType := c.productTypes[ct.ProductType().PrettyName()]
	distinguishers := productType.distinguishers(ct, len(c.productTypes) > 1, configurationHash)
	if len(distinguishers) == 0 {
		return baseName
	}

	var sb strings.Builder
	sb.WriteString(baseName)
	for _, distinguisher := range distinguishers {
		sb.WriteString(" (")
		sb.WriteString(distinguisher)
		sb.WriteString(")")
	}
	return sb.String()
}

type productTypeComponents struct {
	consolidatedOSes                collections.Set[string]
	consolidatedXcodeConfigurations collections.Set[string]
	oses                            map[pbxproj.OS]*osComponents
	consolidatedDistinguisherKeys   map[string]collections.Set[pbxproj.Key]
	targetDistinguisherKeys         map[string]collections.Set[pbxproj.Key]
}

func newProductTypeComponents() *productTypeComponents {
	return &productTypeComponents{
		consolidatedOSes:                make(collections.Set[string]),
		consolidatedXcodeConfigurations: make(collections.Set[string]),
		oses:                            make(map[pbxproj.OS]*osComponents),
		consolidatedDistinguisherKeys:   make(map[string]collections.Set[pbxproj.Key]),
		targetDistinguisherKeys:         make(map[string]collections.Set[pbxproj.Key]),
	}
}

func addKey(m map[string]collections.Set[pbxproj.Key], k string, key pbxproj.Key) {
	if m[k] == nil {
		m[k] = make(collections.Set[pbxproj.Key])
	}
	m[k].Add(key)
}

func (c *productTypeComponents) add(ct *ConsolidatedTarget) {
	dk := newDistinguisherKey(ct)
	addKey(c.consolidatedDistinguisherKeys, dk.String(), ct.Key)
	for _, t := range ct.SortedTargets {
		addKey(c.targetDistinguisherKeys, targetDistinguisherKey(t), ct.Key)
	}

	c.consolidatedXcodeConfigurations.Add(canonical(dk.xcodeConfigurations))
	oses := make(collections.Set[string], len(dk.components))
	for os, versions := range dk.components {
		oses.Add(os.String())
		if c.oses[os] == nil {
			c.oses[os] = newOSComponents()
		}
		c.oses[os].add(versions, ct.Key)
	}
	c.consolidatedOSes.Add(canonical(oses))
}

func (c *productTypeComponents) distinguishers(
	ct *ConsolidatedTarget,
	includeProductType bool,
	configurationHash func(*ConsolidatedTarget) string,
) []string {
	var distinguishers []string
	if includeProductType {
		distinguishers = append(distinguishers, ct.ProductType().PrettyName())
	}

	includeOS := len(c.consolidatedOSes) > 1
	osDistinguishers := make(collections.Set[string])
	for _, t := range ct.SortedTargets {
		components := c.oses[t.Platform.OS()].distinguisher(t, ct.Key, includeOS)
		if len(components) > 0 {
			osDistinguishers.Add(strings.Join(components, " "))
		}
	}
	if len(osDistinguishers) > 0 {
		distinguishers = append(distinguishers, strings.Join(collections.Sorted(osDistinguishers), ", "))
	}

	if len(c.consolidatedXcodeConfigurations) > 1 {
		configurations := collections.Set[string]{}
		for _, t := range ct.SortedTargets {
			for _, configuration := range t.XcodeConfigurations {
				configurations.Add(configuration)
			}
		}
		distinguishers = append(distinguishers, strings.Join(collections.Sorted(configurations), ", "))
	}

	if c.needsConfigurationDistinguishing(ct) {
		distinguishers = append(distinguishers, configurationHash(ct))
	}
	return distinguishers
}

// needsConfigurationDistinguishing reports whether another target covers the
// same platforms and configurations, so that only the Bazel configuration
// tells them apart.
func (c *productTypeComponents) needsConfigurationDistinguishing(ct *ConsolidatedTarget) bool {
	if len(c.consolidatedDistinguisherKeys[newDistinguisherKey(ct).String()]) > 1 {
		return true
	}
	for _, t := range ct.SortedTargets {
		if len(c.targetDistinguisherKeys[targetDistinguisherKey(t)]) > 1 {
			return true
		}
	}
	return false
}

type osComponents struct {
	minimumVersionsByKeys       map[pbxproj.Key]collections.Set[semver.Version]
	consolidatedMinimumVersions collections.Set[string]
	minimumVersions             map[semver.Version]*versionedOSComponents
}

func newOSComponents() *osComponents {
	return &osComponents{
		minimumVersionsByKeys:       make(map[pbxproj.Key]collections.Set[semver.Version]),
		consolidatedMinimumVersions: make(collections.Set[string]),
		minimumVersions:             make(map[semver.Version]*versionedOSComponents),
	}
}

func (c *osComponents) add(versions osVersionSet, key pbxproj.Key) {
	versionSet := make(collections.Set[semver.Version], len(versions))
	for version, environments := range versions {
		versionSet.Add(version)
		if c.minimumVersions[version] == nil {
			c.minimumVersions[version] = newVersionedOSComponents()
		}
		c.minimumVersions[version].add(environments, key)
	}
	c.minimumVersionsByKeys[key] = versionSet
	c.consolidatedMinimumVersions.Add(strings.Join(
		collections.MapSlice(sortedVersions(versionSet), pbxproj.FullVersion), ","))
}

func (c *osComponents) distinguisher(t *pbxproj.Target, key pbxproj.Key, includeOS bool) []string {
	needsSubcomponents := len(c.minimumVersionsByKeys) > 1
	includeVersion := needsSubcomponents && len(c.consolidatedMinimumVersions) > 1

	var prefix string
	var suffix []string
	if needsSubcomponents {
		prefix, suffix = c.minimumVersions[t.OSVersion].distinguisher(
			t,
			includeVersion,
			len(c.minimumVersionsByKeys[key]) > 1,
		)
	}

	var components []string
	if prefix != "" {
		components = append(components, prefix)
	}
	if includeOS || includeVersion {
		components = append(components, t.Platform.OS().String())
	}
	return append(components, suffix...)
}

type versionedOSComponents struct {
	consolidatedKeys         collections.Set[pbxproj.Key]
	consolidatedEnvironments collections.Set[string]
	environments             map[string]*environmentComponents
}

func newVersionedOSComponents() *versionedOSComponents {
	return &versionedOSComponents{
		consolidatedKeys:         make(collections.Set[pbxproj.Key]),
		consolidatedEnvironments: make(collections.Set[string]),
		environments:             make(map[string]*environmentComponents),
	}
}

func (c *versionedOSComponents) add(environments environmentSet, key pbxproj.Key) {
	c.consolidatedKeys.Add(key)
	names := make(collections.Set[string], len(environments))
	for environment, archs := range environments {
		names.Add(environment)
		if c.environments[environment] == nil {
			c.environments[environment] = &environmentComponents{
				consolidatedArchs: make(collections.Set[string]),
			}
		}
		c.environments[environment].consolidatedArchs.Add(canonical(archs))
	}
	c.consolidatedEnvironments.Add(canonical(names))
}

func (c *versionedOSComponents) distinguisher(
	t *pbxproj.Target,
	includeVersion bool,
	forceIncludeEnvironment bool,
) (prefix string, suffix []string) {
	var environmentSuffix string
	if forceIncludeEnvironment || len(c.consolidatedKeys) > 1 {
		prefix, environmentSuffix = c.environments[t.Platform.Environment()].distinguisher(
			t,
			forceIncludeEnvironment || len(c.consolidatedEnvironments) > 1,
		)
	}

	if includeVersion {
		suffix = append(suffix, pbxproj.PrettyVersion(t.OSVersion))
	}
	if environmentSuffix != "" {
		suffix = append(suffix, environmentSuffix)
	}
	return prefix, suffix
}

type environmentComponents struct {
	consolidatedArchs collections.Set[string]
}

func (c *environmentComponents) distinguisher(t *pbxproj.Target, includeEnvironment bool) (prefix, suffix string) {
	if len(c.consolidatedArchs) > 1 {
		prefix = t.Arch
	}
	if includeEnvironment {
		suffix = t.Platform.Environment()
	}
	return prefix, suffix
}
