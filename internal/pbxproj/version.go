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
	"fmt"
	"strings"

	"github.com/coreos/go-semver/semver"
)

const maximumVersionPartCount = 3

// ParseVersion parses versions such as "17", "17.2" or "17.2.1". Missing
// components are zero.
func ParseVersion(s string) (semver.Version, error) {
	parts := strings.Split(s, ".")
	if s == "" || len(parts) > maximumVersionPartCount {
		return semver.Version{}, fmt.Errorf("invalid version %q", s)
	}
	for len(parts) < maximumVersionPartCount {
		parts = append(parts, "0")
	}
	v, err := semver.NewVersion(strings.Join(parts, "."))
	if err != nil {
		return semver.Version{}, fmt.Errorf("invalid version %q: %w", s, err)
	}
	if v.PreRelease != "" || v.Metadata != "" {
		return semver.Version{}, fmt.Errorf("invalid version %q: pre-release and metadata are not supported", s)
	}
	return *v, nil
}

// MustParseVersion is like ParseVersion but panics on error.
func MustParseVersion(s string) semver.Version {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// FullVersion formats `v` as "major.minor.patch".
func FullVersion(v semver.Version) string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// PrettyVersion omits the patch component when it is zero.
func PrettyVersion(v semver.Version) string {
	if v.Patch == 0 {
		return fmt.Sprintf("%d.%d", v.Major, v.Minor)
	}
	return FullVersion(v)
}
