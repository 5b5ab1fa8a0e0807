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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEscape(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"", `""`},
		{"App", "App"},
		{"lib.swift", "lib.swift"},
		{"$HOME", "$HOME"},
		{"a_b/c", "a_b/c"},
		{"a//b", `"a//b"`},
		{"a___b", `"a___b"`},
		{"a b", `"a b"`},
		{"A (iOS)", `"A (iOS)"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
		{"tab\tnew\nline", `"tab\tnew\nline"`},
		{"héllo", `"héllo"`},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			assert.Equal(t, tc.expected, Escape(tc.input))
			assert.Equal(t, tc.expected != tc.input, NeedsEscaping(tc.input))
		})
	}
}
