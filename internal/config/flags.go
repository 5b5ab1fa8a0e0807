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
	"fmt"
	"strconv"
	"strings"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/consolidationmap"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxproj"
	"github.com/bazelbuild/bazel-gazelle/label"
)

// StringList is a repeatable string flag.
type StringList []string

var _ flag.Getter = (*StringList)(nil)

func (s *StringList) String() string {
	if s == nil {
		return ""
	}
	return strings.Join(*s, ",")
}

func (s *StringList) Set(value string) error {
	*s = append(*s, value)
	return nil
}

func (s *StringList) Get() any {
	return []string(*s)
}

// Flag names accepted by Override. They mirror the YAML keys.
const (
	MinimumXcodeVersionFlag       = "minimum-xcode-version"
	ConsolidationMapFormatFlag    = "consolidation-map-format"
	CompressConsolidationMapsFlag = "compress-consolidation-maps"
	MaxParallelWritesFlag         = "max-parallel-writes"
	DisambiguationCacheSizeFlag   = "disambiguation-cache-size"
	ExcludePathFlag               = "exclude-path"
	BaseDependencyLabelFlag       = "base-dependency-label"
)

// Override applies every flag of `fs` that was set on the command line.
// Exclude paths given as flags are appended to those of the file.
func (c *Config) Override(fs *flag.FlagSet) error {
	var err error
	fs.Visit(func(f *flag.Flag) {
		if err != nil {
			return
		}
		value := f.Value.String()
		switch f.Name {
		case MinimumXcodeVersionFlag:
			c.MinimumXcodeVersion, err = pbxproj.ParseVersion(value)
		case ConsolidationMapFormatFlag:
			c.ConsolidationMapFormat, err = consolidationmap.ParseFormat(value)
		case CompressConsolidationMapsFlag:
			c.CompressConsolidationMaps, err = strconv.ParseBool(value)
		case MaxParallelWritesFlag:
			c.MaxParallelWrites, err = strconv.Atoi(value)
		case DisambiguationCacheSizeFlag:
			c.DisambiguationCacheSize, err = strconv.Atoi(value)
		case ExcludePathFlag:
			if getter, ok := f.Value.(flag.Getter); ok {
				if paths, ok := getter.Get().([]string); ok {
					c.ExcludePaths = append(c.ExcludePaths, paths...)
				}
			}
		case BaseDependencyLabelFlag:
			c.BaseDependencyLabel, err = label.Parse(value)
		}
		if err != nil {
			err = fmt.Errorf("-%s: %w", f.Name, err)
		}
	})
	if err != nil {
		return err
	}
	return c.Validate()
}

// LoadWithFlags loads the configuration file at `path`, or the defaults when
// `path` is empty, and applies the flags set on `fs` on top of it.
func LoadWithFlags(path string, fs *flag.FlagSet) (*Config, error) {
	cfg := Default()
	if path != "" {
		var err error
		if cfg, err = Load(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.Override(fs); err != nil {
		return nil, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}
