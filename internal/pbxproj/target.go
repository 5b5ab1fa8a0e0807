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

package pbxproj

import (
	"slices"
	"strings"

	"github.com/bazelbuild/bazel-gazelle/label"
	"github.com/coreos/go-semver/semver"
)

// TargetID uniquely identifies one configured variant of a Bazel target. It
// is the target's label followed by a space and its configuration.
type TargetID string

// Configuration returns the part of the id after the first space, or the
// whole id if it has no configuration suffix.
func (id TargetID) Configuration() string {
	if _, configuration, ok := strings.Cut(string(id), " "); ok {
		return configuration
	}
	return string(id)
}

// Target is one platform, architecture and configuration variant of a build
// target. Targets are immutable once parsed.
type Target struct {
	ID                  TargetID
	Label               label.Label
	XcodeConfigurations []string
	ProductType         ProductType
	Platform            Platform
	OSVersion           semver.Version
	Arch                string
	ModuleName          string
	// File name of the built product, e.g. "App.app".
	ProductBasename string
	// Only set for UI test bundles.
	UITestHost TargetID
	// Only set for watchOS 2 apps.
	WatchKitExtension TargetID
	Dependencies      []TargetID
}

// AllDependencies returns the explicit dependencies followed by the test host
// and WatchKit extension, if any.
func (t *Target) AllDependencies() []TargetID {
	deps := slices.Clone(t.Dependencies)
	if t.UITestHost != "" {
		deps = append(deps, t.UITestHost)
	}
	if t.WatchKitExtension != "" {
		deps = append(deps, t.WatchKitExtension)
	}
	return deps
}

// CompareTargets orders variants by platform, OS version, architecture and
// finally id.
func CompareTargets(a, b *Target) int {
	if c := ComparePlatforms(a.Platform, b.Platform); c != 0 {
		return c
	}
	if c := a.OSVersion.Compare(b.OSVersion); c != 0 {
		return c
	}
	if c := CompareArchs(a.Arch, b.Arch); c != 0 {
		return c
	}
	return strings.Compare(string(a.ID), string(b.ID))
}

const keySeparator = "\n"

// Key identifies a set of target variants independently of their order. It
// is comparable and can be used as a map key.
type Key string

// NewKey creates the key for the given ids. Duplicates are ignored.
func NewKey(ids ...TargetID) Key {
	sorted := slices.Clone(ids)
	slices.Sort(sorted)
	sorted = slices.Compact(sorted)
	parts := make([]string, len(sorted))
	for i, id := range sorted {
		parts[i] = string(id)
	}
	return Key(strings.Join(parts, keySeparator))
}

// SortedIDs returns the ids of the key in ascending order.
func (k Key) SortedIDs() []TargetID {
	if k == "" {
		return nil
	}
	parts := strings.Split(string(k), keySeparator)
	ids := make([]TargetID, len(parts))
	for i, part := range parts {
		ids[i] = TargetID(part)
	}
	return ids
}

func (k Key) String() string {
	return "[" + strings.ReplaceAll(string(k), keySeparator, ", ") + "]"
}
