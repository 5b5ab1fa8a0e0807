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
	"bytes"
	"testing"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pathtree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parsePaths(paths ...string) []pathtree.Path {
	parsed := make([]pathtree.Path, len(paths))
	for i, p := range paths {
		parsed[i] = pathtree.ParsePath(p)
	}
	return parsed
}

func TestGenerate(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, parsePaths("docs/", "a/b.swift", "BUILD", "a/Assets.xcassets/"), nil, "/tmp/ws"))

	assert.Equal(t, `		FF045BB84C6D58BF6891325B /* BUILD */ = {isa = PBXFileReference; explicitFileType = text.script.python; path = BUILD; sourceTree = "<group>"; };
		FF04ED701BA713CEE5B2642C /* Assets.xcassets */ = {isa = PBXFileReference; lastKnownFileType = folder.assetcatalog; path = Assets.xcassets; sourceTree = "<group>"; };
		FF04F2356583E3D5BD725521 /* b.swift */ = {isa = PBXFileReference; lastKnownFileType = sourcecode.swift; path = b.swift; sourceTree = "<group>"; };
		FF03FD7BBD2FE9CB2054CDC6 /* a */ = {
			isa = PBXGroup;
			children = (
				FF04ED701BA713CEE5B2642C /* Assets.xcassets */,
				FF04F2356583E3D5BD725521 /* b.swift */,
			);
			path = a;
			sourceTree = "<group>";
		};
		FF04FF562E97C86F20A2CF2A /* docs */ = {isa = PBXFileReference; lastKnownFileType = folder; path = docs; sourceTree = "<group>"; };
		FF0000000000000000000003 = {
			isa = PBXGroup;
			children = (
				FF03FD7BBD2FE9CB2054CDC6 /* a */,
				FF04FF562E97C86F20A2CF2A /* docs */,
				FF045BB84C6D58BF6891325B /* BUILD */,
			);
			path = /tmp/ws;
			sourceTree = "<absolute>";
		};
`, buf.String())
}

func TestGenerateEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Generate(&buf, nil, nil, "ws"))
	assert.Equal(t, `		FF0000000000000000000003 = {
			isa = PBXGroup;
			children = (
			);
			path = ws;
			sourceTree = "<absolute>";
		};
`, buf.String())
}

func TestElementIdentifiers(t *testing.T) {
	identifiers := NewElementIdentifiers()
	assert.Equal(t, "FF04F2356583E3D5BD725521 /* b.swift */", identifiers.Identifier("a/b.swift", "b.swift", FileReferenceElement))
	// A repeated path is re-hashed instead of reusing the identifier.
	assert.Equal(t, "FF044094ED896ADAA0586B84 /* b.swift */", identifiers.Identifier("a/b.swift", "b.swift", FileReferenceElement))
	// Groups have their own namespace.
	assert.Equal(t, "FF03FD7BBD2FE9CB2054CDC6 /* a */", identifiers.Identifier("a", "a", GroupElement))
}

func TestFileType(t *testing.T) {
	testCases := []struct {
		name      string
		isFolder  bool
		attribute string
		value     string
	}{
		{"main.swift", false, "lastKnownFileType", "sourcecode.swift"},
		{"Info.plist", false, "lastKnownFileType", "text.plist.xml"},
		{"BUILD", false, "explicitFileType", "text.script.python"},
		{"Podfile", false, "explicitFileType", "text.script.ruby"},
		{"LICENSE", false, "lastKnownFileType", "file"},
		{".swiftlint.yml", false, "lastKnownFileType", "text.yaml"},
		{".gitignore", false, "lastKnownFileType", "file"},
		{"Media.xcassets", true, "lastKnownFileType", "folder.assetcatalog"},
		{"Lib.framework", true, "lastKnownFileType", "wrapper.framework"},
		{"Resources", true, "lastKnownFileType", "folder"},
		{"data.json", true, "lastKnownFileType", "folder"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			attribute, value := fileType(tc.name, tc.isFolder)
			assert.Equal(t, tc.attribute, attribute)
			assert.Equal(t, tc.value, value)
		})
	}
}

func TestFilter(t *testing.T) {
	filter, err := NewFilter([]string{"**/*.md", "third_party/**"})
	require.NoError(t, err)

	assert.Equal(t,
		parsePaths("a/b.swift", "docs/"),
		filter.Apply(parsePaths("a/b.swift", "README.md", "docs/", "docs/guide.md", "third_party/lib/x.c")),
	)

	_, err = NewFilter([]string{"a/[b"})
	assert.Error(t, err)
}
