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

// Package targets consolidates configured target variants into Xcode
// targets, gives each of them a unique display name and assigns the
// identifiers used by every partial that references a target.
package targets

import (
	"strings"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxproj"
	"github.com/bazelbuild/bazel-gazelle/label"
)

// ConsolidatedTarget is a set of variants that Xcode shows as one target.
// Every variant shares the label, product type and module name.
type ConsolidatedTarget struct {
	Key pbxproj.Key
	// Ordered like Key.
	SortedTargets []*pbxproj.Target
}

// NewConsolidatedTarget groups `variants`, which must be non-empty.
func NewConsolidatedTarget(variants ...*pbxproj.Target) *ConsolidatedTarget {
	ids := make([]pbxproj.TargetID, len(variants))
	byID := make(map[pbxproj.TargetID]*pbxproj.Target, len(variants))
	for i, variant := range variants {
		ids[i] = variant.ID
		byID[variant.ID] = variant
	}
	key := pbxproj.NewKey(ids...)
	sortedIDs := key.SortedIDs()
	sorted := make([]*pbxproj.Target, len(sortedIDs))
	for i, id := range sortedIDs {
		sorted[i] = byID[id]
	}
	return &ConsolidatedTarget{Key: key, SortedTargets: sorted}
}

// Representative returns the variant with the smallest id.
func (ct *ConsolidatedTarget) Representative() *pbxproj.Target {
	return ct.SortedTargets[0]
}

func (ct *ConsolidatedTarget) Label() label.Label {
	return ct.Representative().Label
}

func (ct *ConsolidatedTarget) ProductType() pbxproj.ProductType {
	return ct.Representative().ProductType
}

func (ct *ConsolidatedTarget) ModuleName() string {
	return ct.Representative().ModuleName
}

// Name is the name part of the label.
func (ct *ConsolidatedTarget) Name() string {
	return ct.Label().Name
}

// UITestHost returns the test host of the representative variant.
func (ct *ConsolidatedTarget) UITestHost() pbxproj.TargetID {
	return ct.Representative().UITestHost
}

// The normalized forms let targets that only differ by case collide.

func (ct *ConsolidatedTarget) normalizedLabel() string {
	return strings.ToLower(ct.Label().String())
}

func (ct *ConsolidatedTarget) normalizedModuleName() string {
	return strings.ToLower(ct.ModuleName())
}

func (ct *ConsolidatedTarget) normalizedName() string {
	return strings.ToLower(ct.Name())
}

// DisambiguatedTarget pairs a ConsolidatedTarget with its unique display name.
type DisambiguatedTarget struct {
	Name   string
	Target *ConsolidatedTarget
}
