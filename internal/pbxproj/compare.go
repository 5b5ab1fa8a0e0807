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
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// NameCollator orders names the way Finder does: case insensitive, with runs
// of digits compared by numeric value. A collator is not safe for concurrent
// use.
type NameCollator struct {
	collator *collate.Collator
}

// NewNameCollator creates a collator for the root locale.
func NewNameCollator() *NameCollator {
	return &NameCollator{
		collator: collate.New(language.Und, collate.IgnoreCase, collate.Numeric),
	}
}

// Compare orders `a` and `b`. Strings that only differ by case are ordered
// bytewise so that the result is total.
func (c *NameCollator) Compare(a, b string) int {
	if r := c.collator.CompareString(a, b); r != 0 {
		return r
	}
	return strings.Compare(a, b)
}
