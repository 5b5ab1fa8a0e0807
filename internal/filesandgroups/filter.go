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

package filesandgroups

import (
	"fmt"
	"slices"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/collections"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pathtree"
	"github.com/bmatcuk/doublestar/v4"
)

// Filter drops paths matching any of its doublestar patterns.
type Filter struct {
	excludes []string
}

// NewFilter validates `excludes`.
func NewFilter(excludes []string) (*Filter, error) {
	for _, pattern := range excludes {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid exclude pattern %q", pattern)
		}
	}
	return &Filter{excludes: excludes}, nil
}

// Excludes reports whether `p` matches an exclude pattern.
func (f *Filter) Excludes(p pathtree.Path) bool {
	return slices.ContainsFunc(f.excludes, func(pattern string) bool {
		return doublestar.MatchUnvalidated(pattern, p.Path)
	})
}

// Apply returns the paths of `paths` that are not excluded, in order.
func (f *Filter) Apply(paths []pathtree.Path) []pathtree.Path {
	if len(f.excludes) == 0 {
		return paths
	}
	return collections.FilterSlice(paths, func(p pathtree.Path) bool { return !f.Excludes(p) })
}
