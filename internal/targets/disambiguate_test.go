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
	"strings"
	"testing"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/collections"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxproj"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func disambiguate(t *testing.T, variants ...*pbxproj.Target) map[pbxproj.Key]string {
	t.Helper()
	consolidated, err := NewConsolidator().Consolidate(variants)
	require.NoError(t, err)
	disambiguator, err := NewDisambiguator(DefaultConfigurationHashCacheSize)
	require.NoError(t, err)

	names := make(map[pbxproj.Key]string)
	for _, target := range disambiguator.Disambiguate(consolidated) {
		names[target.Target.Key] = target.Name
	}
	return names
}

func TestDisambiguate(t *testing.T) {
	testCases := []struct {
		name     string
		variants []*pbxproj.Target
		expected map[pbxproj.Key]string
	}{
		{
			name: "unique module name",
			variants: []*pbxproj.Target{
				newVariant("//a:lib", moduleName("Networking")),
				newVariant("//b:lib", moduleName("Storage")),
			},
			expected: map[pbxproj.Key]string{
				keyOf("//a:lib"): "Networking",
				keyOf("//b:lib"): "Storage",
			},
		},
		{
			name: "shared module name falls back to the name",
			variants: []*pbxproj.Target{
				newVariant("//a:x", moduleName("Foo")),
				newVariant("//b:y", moduleName("Foo")),
			},
			expected: map[pbxproj.Key]string{
				keyOf("//a:x"): "x",
				keyOf("//b:y"): "y",
			},
		},
		{
			name: "shared name falls back to the label",
			variants: []*pbxproj.Target{
				newVariant("//a:Foo"),
				newVariant("//b:Foo"),
			},
			expected: map[pbxproj.Key]string{
				keyOf("//a:Foo"): "//a:Foo",
				keyOf("//b:Foo"): "//b:Foo",
			},
		},
		{
			name: "names collide ignoring case",
			variants: []*pbxproj.Target{
				newVariant("//a:foo"),
				newVariant("//b:Foo"),
			},
			expected: map[pbxproj.Key]string{
				keyOf("//a:foo"): "//a:foo",
				keyOf("//b:Foo"): "//b:Foo",
			},
		},
		{
			name: "product types",
			variants: []*pbxproj.Target{
				newVariant("//a:Lib"),
				newVariant("//a:LibTests", moduleName("Lib"), productType(pbxproj.UnitTestBundle)),
			},
			expected: map[pbxproj.Key]string{
				keyOf("//a:Lib"):      "Lib (Library)",
				keyOf("//a:LibTests"): "Lib (Unit Tests)",
			},
		},
		{
			name: "operating systems",
			variants: []*pbxproj.Target{
				newVariant("//a:Lib ios"),
				newVariant("//a:Lib watch", platform(pbxproj.WatchSimulator)),
			},
			expected: map[pbxproj.Key]string{
				keyOf("//a:Lib ios"):   "Lib (iOS)",
				keyOf("//a:Lib watch"): "Lib (watchOS)",
			},
		},
		{
			name: "architectures",
			variants: []*pbxproj.Target{
				newVariant("//a:Lib arm64"),
				newVariant("//a:Lib x86_64", arch("x86_64")),
			},
			expected: map[pbxproj.Key]string{
				keyOf("//a:Lib arm64"):  "Lib (arm64)",
				keyOf("//a:Lib x86_64"): "Lib (x86_64)",
			},
		},
		{
			name: "minimum versions",
			variants: []*pbxproj.Target{
				newVariant("//a:Lib 15", osVersion("15.0")),
				newVariant("//a:Lib 16", osVersion("16.0")),
			},
			expected: map[pbxproj.Key]string{
				keyOf("//a:Lib 15"): "Lib (iOS 15.0)",
				keyOf("//a:Lib 16"): "Lib (iOS 16.0)",
			},
		},
		{
			name: "configuration hash",
			variants: []*pbxproj.Target{
				newVariant("//a:Lib cfg1"),
				newVariant("//a:Lib cfg2"),
			},
			expected: map[pbxproj.Key]string{
				keyOf("//a:Lib cfg1"): "Lib (c5d9e)",
				keyOf("//a:Lib cfg2"): "Lib (3730d)",
			},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, disambiguate(t, tc.variants...))
		})
	}
}

func TestDisambiguateXcodeConfigurations(t *testing.T) {
	names := disambiguate(t,
		newVariant("//a:Lib debug-1"),
		newVariant("//a:Lib debug-2", arch("x86_64")),
		newVariant("//a:Lib release", configurations("Release", "Profile")),
	)
	assert.Equal(t, map[pbxproj.Key]string{
		keyOf("//a:Lib debug-1", "//a:Lib release"): "Lib (arm64) (Debug, Profile, Release)",
		keyOf("//a:Lib debug-2"):                    "Lib (x86_64) (Debug)",
	}, names)
}

func TestDisambiguateEndToEnd(t *testing.T) {
	names := disambiguate(t,
		newVariant("//x:A sim", configurations("Debug")),
		newVariant("//x:A dev", platform(pbxproj.IPhoneOS), configurations("Release")),
		newVariant("//y:A mac", platform(pbxproj.MacOSX)),
	)

	// Both labels share the module name and the name, so the label is used.
	assert.Equal(t, map[pbxproj.Key]string{
		keyOf("//x:A dev", "//x:A sim"): "//x:A",
		keyOf("//y:A mac"):              "//y:A",
	}, names)
}

func TestDisambiguateSortsByName(t *testing.T) {
	consolidated, err := NewConsolidator().Consolidate([]*pbxproj.Target{
		newVariant("//a:b", moduleName("b")),
		newVariant("//a:A10", moduleName("A10")),
		newVariant("//a:A2", moduleName("A2")),
		newVariant("//a:c", moduleName("C")),
	})
	require.NoError(t, err)
	disambiguator, err := NewDisambiguator(1)
	require.NoError(t, err)

	disambiguated := disambiguator.Disambiguate(consolidated)
	assert.Equal(t, []string{"A2", "A10", "b", "C"}, collections.MapSlice(disambiguated, func(t DisambiguatedTarget) string {
		return t.Name
	}))
}

func TestDisambiguateUniqueness(t *testing.T) {
	var variants []*pbxproj.Target
	platforms := []pbxproj.Platform{pbxproj.IPhoneSimulator, pbxproj.IPhoneOS, pbxproj.MacOSX, pbxproj.WatchSimulator}
	for i := range 60 {
		variants = append(variants, newVariant(
			fmt.Sprintf("//pkg%d:Lib%d cfg%d", i%3, i%4, i),
			moduleName(fmt.Sprintf("Mod%d", i%5)),
			platform(platforms[i%len(platforms)]),
			arch([]string{"arm64", "x86_64"}[i%2]),
			osVersion([]string{"15.0", "16.0", "16.4"}[i%3]),
			configurations([]string{"Debug", "Release"}[i%2]),
			productType([]pbxproj.ProductType{pbxproj.StaticLibrary, pbxproj.Framework}[i%2]),
		))
	}

	names := disambiguate(t, variants...)
	seen := make(collections.Set[string])
	for _, name := range names {
		assert.True(t, seen.Insert(strings.ToLower(name)), "duplicate name %q", name)
	}
}

func TestEnsureUniqueNames(t *testing.T) {
	targets := []DisambiguatedTarget{
		{Name: "A", Target: NewConsolidatedTarget(newVariant("//a:A 1"))},
		{Name: "a", Target: NewConsolidatedTarget(newVariant("//b:A 2"))},
		{Name: "B", Target: NewConsolidatedTarget(newVariant("//c:B 3"))},
	}
	ensureUniqueNames(targets)

	assert.Equal(t, "B", targets[2].Name)
	assert.True(t, strings.HasPrefix(targets[0].Name, "A ("), targets[0].Name)
	assert.True(t, strings.HasPrefix(targets[1].Name, "a ("), targets[1].Name)
	assert.NotEqual(t, strings.ToLower(targets[0].Name), strings.ToLower(targets[1].Name))
}

func TestNewDisambiguatorInvalidCacheSize(t *testing.T) {
	_, err := NewDisambiguator(0)
	assert.Error(t, err)
}
