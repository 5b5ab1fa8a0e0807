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

package config

import (
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/consolidationmap"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxproj"
	"github.com/bazelbuild/bazel-gazelle/label"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expected      func(*Config)
		expectedError string
	}{
		{
			name:     "empty",
			input:    "",
			expected: func(*Config) {},
		},
		{
			name: "all keys",
			input: `
minimum_xcode_version: "15.2"
consolidation_map_format: binary
compress_consolidation_maps: true
max_parallel_writes: 4
disambiguation_cache_size: 16
exclude_paths:
  - "**/*.orig"
  - "bazel-*/**"
base_dependency_label: "@rules_xcodeproj//xcodeproj:bazel_dependencies"
`,
			expected: func(c *Config) {
				c.MinimumXcodeVersion = pbxproj.MustParseVersion("15.2")
				c.ConsolidationMapFormat = consolidationmap.BinaryFormat
				c.CompressConsolidationMaps = true
				c.MaxParallelWrites = 4
				c.DisambiguationCacheSize = 16
				c.ExcludePaths = []string{"**/*.orig", "bazel-*/**"}
				c.BaseDependencyLabel = label.New("rules_xcodeproj", "xcodeproj", "bazel_dependencies")
			},
		},
		{
			name:          "unknown key",
			input:         "minimum_xcode: 15",
			expectedError: "field minimum_xcode not found",
		},
		{
			name:          "invalid format",
			input:         "consolidation_map_format: json",
			expectedError: `unknown consolidation map format "json"`,
		},
		{
			name:          "invalid version",
			input:         `minimum_xcode_version: "15.x"`,
			expectedError: `invalid version "15.x"`,
		},
		{
			name:          "invalid label",
			input:         `base_dependency_label: "@foo bar//a:b"`,
			expectedError: "label parse error",
		},
		{
			name:          "invalid cache size",
			input:         "disambiguation_cache_size: 0",
			expectedError: "disambiguation_cache_size must be positive, got 0",
		},
		{
			name:          "invalid pattern",
			input:         `exclude_paths: ["a/[b"]`,
			expectedError: `exclude_paths: invalid pattern "a/[b"`,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			cfg, err := Parse([]byte(tc.input))
			if tc.expectedError != "" {
				assert.ErrorContains(t, err, tc.expectedError)
				assert.Nil(t, cfg)
				return
			}
			require.NoError(t, err)
			expected := Default()
			tc.expected(expected)
			assert.Equal(t, expected, cfg)
		})
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "14.0.0", cfg.MinimumXcodeVersion.String())
	assert.Equal(t, consolidationmap.TextFormat, cfg.ConsolidationMapFormat)
	assert.Equal(t, runtime.GOMAXPROCS(0), cfg.MaxParallelWrites)
	assert.Equal(t, label.NoLabel, cfg.BaseDependencyLabel)
	assert.NoError(t, cfg.Validate())
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xcodeproj.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_parallel_writes: 2\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.MaxParallelWrites)

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "reading config")
}

func TestOverride(t *testing.T) {
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.String(MinimumXcodeVersionFlag, "", "")
	fs.String(ConsolidationMapFormatFlag, "", "")
	fs.Bool(CompressConsolidationMapsFlag, false, "")
	fs.Int(MaxParallelWritesFlag, 0, "")
	var excludes StringList
	fs.Var(&excludes, ExcludePathFlag, "")
	fs.String("unrelated", "", "")
	require.NoError(t, fs.Parse([]string{
		"-minimum-xcode-version=15.3",
		"-compress-consolidation-maps",
		"-exclude-path", "a/**",
		"-exclude-path", "b/**",
		"-unrelated", "x",
	}))

	cfg := Default()
	cfg.ExcludePaths = []string{"from/file/**"}
	require.NoError(t, cfg.Override(fs))

	expected := Default()
	expected.MinimumXcodeVersion = pbxproj.MustParseVersion("15.3")
	expected.CompressConsolidationMaps = true
	expected.ExcludePaths = []string{"from/file/**", "a/**", "b/**"}
	assert.Equal(t, expected, cfg)
}

func TestOverrideErrors(t *testing.T) {
	testCases := map[string]struct {
		args          []string
		expectedError string
	}{
		"format": {
			args:          []string{"-consolidation-map-format=xml"},
			expectedError: `-consolidation-map-format: unknown consolidation map format "xml"`,
		},
		"parallel writes": {
			args:          []string{"-max-parallel-writes=-1"},
			expectedError: "max_parallel_writes must not be negative, got -1",
		},
	}
	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			fs := flag.NewFlagSet("test", flag.ContinueOnError)
			fs.String(ConsolidationMapFormatFlag, "", "")
			fs.Int(MaxParallelWritesFlag, 0, "")
			require.NoError(t, fs.Parse(tc.args))
			assert.ErrorContains(t, Default().Override(fs), tc.expectedError)
		})
	}
}

func TestLoadWithFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "xcodeproj.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_parallel_writes: 2\nminimum_xcode_version: \"15.0\"\n"), 0o644))
	newFlagSet := func(args ...string) *flag.FlagSet {
		fs := flag.NewFlagSet("test", flag.ContinueOnError)
		fs.String(MinimumXcodeVersionFlag, "", "")
		fs.Int(MaxParallelWritesFlag, 0, "")
		require.NoError(t, fs.Parse(args))
		return fs
	}

	cfg, err := LoadWithFlags(path, newFlagSet("-max-parallel-writes=4"))
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.MaxParallelWrites)
	assert.Equal(t, "15.0.0", cfg.MinimumXcodeVersion.String())

	cfg, err = LoadWithFlags("", newFlagSet())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	_, err = LoadWithFlags(filepath.Join(t.TempDir(), "missing.yaml"), newFlagSet())
	assert.ErrorContains(t, err, "reading config")

	_, err = LoadWithFlags("", newFlagSet("-max-parallel-writes=-1"))
	assert.ErrorContains(t, err, "invalid flags")
}
