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
	"testing"

	"github.com/bazelbuild/bazel-gazelle/label"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePlatform(t *testing.T) {
	p, err := ParsePlatform("iphonesimulator")
	require.NoError(t, err)
	assert.Equal(t, IOS, p.OS())
	assert.Equal(t, SimulatorEnvironment, p.Environment())
	assert.Equal(t, DeviceEnvironment, MacOSX.Environment())
	assert.Equal(t, "watchOS", WatchSimulator.OS().String())

	_, err = ParsePlatform("android")
	assert.Error(t, err)
}

func TestPlatformOrder(t *testing.T) {
	platforms := []Platform{WatchOSDevice, IPhoneOS, AppleTVOS, MacOSX, WatchSimulator, IPhoneSimulator, AppleTVSimulator}
	slices.SortFunc(platforms, ComparePlatforms)
	assert.Equal(t, []Platform{MacOSX, IPhoneSimulator, IPhoneOS, AppleTVSimulator, AppleTVOS, WatchSimulator, WatchOSDevice}, platforms)
}

func TestCompareArchs(t *testing.T) {
	archs := []string{"x86_64", "i386", "arm64", "arm64e"}
	slices.SortFunc(archs, CompareArchs)
	assert.Equal(t, []string{"arm64", "arm64e", "i386", "x86_64"}, archs)
}

func TestProductType(t *testing.T) {
	testCases := []struct {
		code       string
		expected   ProductType
		identifier string
		prettyName string
	}{
		{"a", Application, "com.apple.product-type.application", "App"},
		{"w", Watch2App, "com.apple.product-type.application.watchapp2", "App"},
		{"b", ResourceBundle, "com.apple.product-type.bundle", "Resource Bundle"},
		{"U", UITestBundle, "com.apple.product-type.bundle.ui-testing", "UI Tests"},
		{"L", StaticLibrary, "com.apple.product-type.library.static", "Library"},
		{"T", CommandLineTool, "com.apple.product-type.tool", "Tool"},
		{"3", MetalLibrary, "com.apple.product-type.metal-library", "Metal Library"},
	}
	for _, tc := range testCases {
		t.Run(tc.code, func(t *testing.T) {
			pt, err := ParseProductType(tc.code)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, pt)
			assert.Equal(t, tc.identifier, pt.Identifier())
			assert.Equal(t, tc.prettyName, pt.PrettyName())
			assert.Equal(t, tc.code, pt.String())
		})
	}

	for _, invalid := range []string{"", "ab", "z"} {
		_, err := ParseProductType(invalid)
		assert.Error(t, err, invalid)
	}
}

func TestParseVersion(t *testing.T) {
	testCases := []struct {
		input  string
		full   string
		pretty string
	}{
		{"17", "17.0.0", "17.0"},
		{"16.4", "16.4.0", "16.4"},
		{"15.0.1", "15.0.1", "15.0.1"},
	}
	for _, tc := range testCases {
		v, err := ParseVersion(tc.input)
		require.NoError(t, err, tc.input)
		assert.Equal(t, tc.full, FullVersion(v))
		assert.Equal(t, tc.pretty, PrettyVersion(v))
	}

	for _, invalid := range []string{"", "1.2.3.4", "a.b", "1.0.0-beta"} {
		_, err := ParseVersion(invalid)
		assert.Error(t, err, invalid)
	}
}

func TestKey(t *testing.T) {
	key := NewKey("b cfg", "a cfg", "b cfg")
	assert.Equal(t, []TargetID{"a cfg", "b cfg"}, key.SortedIDs())
	assert.Equal(t, NewKey("a cfg", "b cfg"), key)
	assert.Equal(t, "[a cfg, b cfg]", key.String())
	assert.Nil(t, NewKey().SortedIDs())
}

func TestTargetIDConfiguration(t *testing.T) {
	assert.Equal(t, "ios-sim-config abc", TargetID("//x:A ios-sim-config abc").Configuration())
	assert.Equal(t, "//x:A", TargetID("//x:A").Configuration())
}

func TestCompareTargets(t *testing.T) {
	newTarget := func(id string, platform Platform, version, arch string) *Target {
		return &Target{
			ID:        TargetID(id),
			Label:     label.New("", "x", "A"),
			Platform:  platform,
			OSVersion: MustParseVersion(version),
			Arch:      arch,
		}
	}
	targets := []*Target{
		newTarget("5", IPhoneOS, "16.0", "arm64"),
		newTarget("4", IPhoneSimulator, "16.0", "x86_64"),
		newTarget("3", IPhoneSimulator, "16.0", "arm64"),
		newTarget("2", IPhoneSimulator, "15.0", "x86_64"),
		newTarget("1", MacOSX, "13.0", "arm64"),
	}
	slices.SortFunc(targets, CompareTargets)
	ids := make([]TargetID, len(targets))
	for i, target := range targets {
		ids[i] = target.ID
	}
	assert.Equal(t, []TargetID{"1", "2", "3", "4", "5"}, ids)
}

func TestAllDependencies(t *testing.T) {
	target := &Target{Dependencies: []TargetID{"B"}, UITestHost: "H", WatchKitExtension: "W"}
	assert.Equal(t, []TargetID{"B", "H", "W"}, target.AllDependencies())
	assert.Equal(t, []TargetID{"B"}, target.Dependencies)
}

func TestNameCollator(t *testing.T) {
	names := []string{"b", "A (iOS)", "a 10", "a 2", "A", "B"}
	slices.SortStableFunc(names, NewNameCollator().Compare)
	assert.Equal(t, []string{"A", "A (iOS)", "a 2", "a 10", "B", "b"}, names)
}
