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

// Package config loads the YAML configuration shared by the generators.
package config

import (
	"bytes"
	"encoding"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/consolidationmap"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxproj"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/targets"
	"github.com/bazelbuild/bazel-gazelle/label"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/coreos/go-semver/semver"
	"gopkg.in/yaml.v3"
)

// Config holds the generator options. Command line flags take precedence
// over values loaded from a file.
type Config struct {
	MinimumXcodeVersion       semver.Version
	ConsolidationMapFormat    consolidationmap.Format
	CompressConsolidationMaps bool
	MaxParallelWrites         int
	DisambiguationCacheSize   int
	ExcludePaths              []string
	// label.NoLabel when unset.
	BaseDependencyLabel label.Label
}

type (
	labelUnmarshaler   label.Label
	versionUnmarshaler semver.Version

	// file mirrors the YAML layout. Absent keys keep their default.
	file struct {
		MinimumXcodeVersion       *versionUnmarshaler      `yaml:"minimum_xcode_version"`
		ConsolidationMapFormat    *consolidationmap.Format `yaml:"consolidation_map_format"`
		CompressConsolidationMaps *bool                    `yaml:"compress_consolidation_maps"`
		MaxParallelWrites         *int                     `yaml:"max_parallel_writes"`
		DisambiguationCacheSize   *int                     `yaml:"disambiguation_cache_size"`
		ExcludePaths              []string                 `yaml:"exclude_paths"`
		BaseDependencyLabel       *labelUnmarshaler        `yaml:"base_dependency_label"`
	}
)

var (
	_ encoding.TextUnmarshaler = (*labelUnmarshaler)(nil)
	_ encoding.TextUnmarshaler = (*versionUnmarshaler)(nil)
)

func (lm *labelUnmarshaler) UnmarshalText(data []byte) error {
	parsedLabel, err := label.Parse(string(data))
	*lm = labelUnmarshaler(parsedLabel)
	return err
}

func (vm *versionUnmarshaler) UnmarshalText(data []byte) error {
	parsedVersion, err := pbxproj.ParseVersion(string(data))
	*vm = versionUnmarshaler(parsedVersion)
	return err
}

// Default returns the configuration used when no file is given.
func Default() *Config {
	return &Config{
		MinimumXcodeVersion:     pbxproj.MustParseVersion("14.0"),
		ConsolidationMapFormat:  consolidationmap.TextFormat,
		MaxParallelWrites:       runtime.GOMAXPROCS(0),
		DisambiguationCacheSize: targets.DefaultConfigurationHashCacheSize,
		BaseDependencyLabel:     label.NoLabel,
	}
}

// Load reads the configuration file at `path` on top of Default. Unknown keys
// are rejected.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML `data` on top of Default.
func Parse(data []byte) (*Config, error) {
	var f file
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}

	cfg := Default()
	if f.MinimumXcodeVersion != nil {
		cfg.MinimumXcodeVersion = semver.Version(*f.MinimumXcodeVersion)
	}
	if f.ConsolidationMapFormat != nil {
		cfg.ConsolidationMapFormat = *f.ConsolidationMapFormat
	}
	if f.CompressConsolidationMaps != nil {
		cfg.CompressConsolidationMaps = *f.CompressConsolidationMaps
	}
	if f.MaxParallelWrites != nil {
		cfg.MaxParallelWrites = *f.MaxParallelWrites
	}
	if f.DisambiguationCacheSize != nil {
		cfg.DisambiguationCacheSize = *f.DisambiguationCacheSize
	}
	if f.ExcludePaths != nil {
		cfg.ExcludePaths = f.ExcludePaths
	}
	if f.BaseDependencyLabel != nil {
		cfg.BaseDependencyLabel = label.Label(*f.BaseDependencyLabel)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports the first invalid option.
func (c *Config) Validate() error {
	if c.MaxParallelWrites < 0 {
		return fmt.Errorf("max_parallel_writes must not be negative, got %d", c.MaxParallelWrites)
	}
	if c.DisambiguationCacheSize <= 0 {
		return fmt.Errorf("disambiguation_cache_size must be positive, got %d", c.DisambiguationCacheSize)
	}
	for _, pattern := range c.ExcludePaths {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("exclude_paths: invalid pattern %q", pattern)
		}
	}
	return nil
}
