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
	"strings"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxproj"
	"github.com/bazelbuild/bazel-gazelle/label"
)

type variantOption func(*pbxproj.Target)

// newVariant creates an iOS simulator arm64 static library built for Debug.
// `id` is "<label> <configuration>".
func newVariant(id string, opts ...variantOption) *pbxproj.Target {
	labelString, _, _ := strings.Cut(id, " ")
	l, err := label.Parse(labelString)
	if err != nil {
		panic(err)
	}
	t := &pbxproj.Target{
		ID:                  pbxproj.TargetID(id),
		Label:               l,
		XcodeConfigurations: []string{"Debug"},
		ProductType:         pbxproj.StaticLibrary,
		Platform:            pbxproj.IPhoneSimulator,
		OSVersion:           pbxproj.MustParseVersion("16.0"),
		Arch:                "arm64",
		ModuleName:          l.Name,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func platform(p pbxproj.Platform) variantOption {
	return func(t *pbxproj.Target) { t.Platform = p }
}

func arch(a string) variantOption {
	return func(t *pbxproj.Target) { t.Arch = a }
}

func osVersion(v string) variantOption {
	return func(t *pbxproj.Target) { t.OSVersion = pbxproj.MustParseVersion(v) }
}

func configurations(c ...string) variantOption {
	return func(t *pbxproj.Target) { t.XcodeConfigurations = c }
}

func moduleName(m string) variantOption {
	return func(t *pbxproj.Target) { t.ModuleName = m }
}

func productType(pt pbxproj.ProductType) variantOption {
	return func(t *pbxproj.Target) { t.ProductType = pt }
}

func deps(ids ...string) variantOption {
	return func(t *pbxproj.Target) {
		for _, id := range ids {
			t.Dependencies = append(t.Dependencies, pbxproj.TargetID(id))
		}
	}
}

func productBasename(b string) variantOption {
	return func(t *pbxproj.Target) { t.ProductBasename = b }
}

func testHost(id string) variantOption {
	return func(t *pbxproj.Target) { t.UITestHost = pbxproj.TargetID(id) }
}

func keyOf(ids ...string) pbxproj.Key {
	targetIDs := make([]pbxproj.TargetID, len(ids))
	for i, id := range ids {
		targetIDs[i] = pbxproj.TargetID(id)
	}
	return pbxproj.NewKey(targetIDs...)
}
