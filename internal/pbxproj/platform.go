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
)

// OS is an Apple operating system. The zero value is not a valid OS.
type OS int

const (
	MacOS OS = iota + 1
	IOS
	TvOS
	WatchOS
)

// String returns the user facing name of the operating system.
func (os OS) String() string {
	switch os {
	case MacOS:
		return "macOS"
	case IOS:
		return "iOS"
	case TvOS:
		return "tvOS"
	case WatchOS:
		return "watchOS"
	default:
		return fmt.Sprintf("OS(%d)", int(os))
	}
}

// Platform is the SDK a target variant is built for.
type Platform string

const (
	MacOSX           Platform = "macosx"
	IPhoneOS         Platform = "iphoneos"
	IPhoneSimulator  Platform = "iphonesimulator"
	AppleTVOS        Platform = "appletvos"
	AppleTVSimulator Platform = "appletvsimulator"
	WatchOSDevice    Platform = "watchos"
	WatchSimulator   Platform = "watchsimulator"
)

const (
	DeviceEnvironment    = "Device"
	SimulatorEnvironment = "Simulator"
)

type platformInfo struct {
	os          OS
	environment string
	order       int
}

// Simulators sort before the devices of the same OS.
var platforms = map[Platform]platformInfo{
	MacOSX:           {os: MacOS, environment: DeviceEnvironment, order: 0},
	IPhoneSimulator:  {os: IOS, environment: SimulatorEnvironment, order: 1},
	IPhoneOS:         {os: IOS, environment: DeviceEnvironment, order: 2},
	AppleTVSimulator: {os: TvOS, environment: SimulatorEnvironment, order: 3},
	AppleTVOS:        {os: TvOS, environment: DeviceEnvironment, order: 4},
	WatchSimulator:   {os: WatchOS, environment: SimulatorEnvironment, order: 5},
	WatchOSDevice:    {os: WatchOS, environment: DeviceEnvironment, order: 6},
}

// ParsePlatform validates a platform name as found in the generator arguments.
func ParsePlatform(s string) (Platform, error) {
	p := Platform(s)
	if _, ok := platforms[p]; !ok {
		return "", fmt.Errorf("unknown platform %q", s)
	}
	return p, nil
}

func (p Platform) info() platformInfo {
	info, ok := platforms[p]
	if !ok {
		panic(fmt.Sprintf("unknown platform %q", string(p)))
	}
	return info
}

// OS returns the operating system the platform belongs to.
func (p Platform) OS() OS { return p.info().os }

// Environment returns "Simulator" for simulator platforms and "Device"
// otherwise.
func (p Platform) Environment() string { return p.info().environment }

// ComparePlatforms orders platforms by OS, then simulators before devices.
func ComparePlatforms(a, b Platform) int {
	return a.info().order - b.info().order
}

// CompareArchs orders architectures alphabetically, except that arm64 always
// sorts first.
func CompareArchs(a, b string) int {
	switch {
	case a == b:
		return 0
	case a == "arm64":
		return -1
	case b == "arm64":
		return 1
	default:
		return strings.Compare(a, b)
	}
}
