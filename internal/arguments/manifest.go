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

package arguments

import (
	"fmt"
	"path/filepath"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxproj"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/targets"
	"github.com/bazelbuild/bazel-gazelle/label"
	"github.com/bazelbuild/buildtools/build"
)

// ParseTargetManifest parses a Starlark manifest of the form
//
//	consolidation_map(
//	    output = "maps/0",
//	    targets = [
//	        xcode_target(
//	            id = "//app:App ios-sim-dbg",
//	            label = "//app:App",
//	            product_type = "a",
//	            platform = "iphonesimulator",
//	            os_version = "17.0",
//	            arch = "arm64",
//	            module_name = "App",
//	            deps = ["//lib:Lib ios-sim-dbg"],
//	            xcode_configurations = ["Debug"],
//	        ),
//	    ],
//	)
//
// Each consolidation_map call becomes one input, in declaration order.
// Unknown calls and attributes are ignored.
func ParseTargetManifest(path string, content []byte) ([]targets.ConsolidationMapInput, error) {
	file, err := build.ParseBzl(filepath.Base(path), content)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %q: %w", path, err)
	}

	var inputs []targets.ConsolidationMapInput
	for _, stmt := range file.Stmt {
		call, ok := callNamed(stmt, "consolidation_map")
		if !ok {
			continue
		}
		input, err := parseConsolidationMapCall(call)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		inputs = append(inputs, input)
	}
	return inputs, nil
}

func callNamed(expr build.Expr, name string) (*build.CallExpr, bool) {
	call, ok := expr.(*build.CallExpr)
	if !ok {
		return nil, false
	}
	receiver, ok := call.X.(*build.Ident)
	if !ok || receiver.Name != name {
		return nil, false
	}
	return call, true
}

// keywordArgs collects the `name = value` arguments of a call.
func keywordArgs(call *build.CallExpr) map[string]build.Expr {
	args := make(map[string]build.Expr, len(call.List))
	for _, arg := range call.List {
		assign, ok := arg.(*build.AssignExpr)
		if !ok {
			continue
		}
		param, ok := assign.LHS.(*build.Ident)
		if !ok {
			continue
		}
		args[param.Name] = assign.RHS
	}
	return args
}

func stringArg(args map[string]build.Expr, name string, required bool) (string, error) {
	expr, ok := args[name]
	if !ok {
		if required {
			return "", fmt.Errorf("missing attribute %q", name)
		}
		return "", nil
	}
	str, ok := expr.(*build.StringExpr)
	if !ok {
		return "", fmt.Errorf("attribute %q must be a string", name)
	}
	return str.Value, nil
}

func stringListArg(args map[string]build.Expr, name string) ([]string, error) {
	expr, ok := args[name]
	if !ok {
		return nil, nil
	}
	list, ok := expr.(*build.ListExpr)
	if !ok {
		return nil, fmt.Errorf("attribute %q must be a list of strings", name)
	}
	values := make([]string, 0, len(list.List))
	for _, elem := range list.List {
		str, ok := elem.(*build.StringExpr)
		if !ok {
			return nil, fmt.Errorf("attribute %q must be a list of strings", name)
		}
		values = append(values, str.Value)
	}
	return values, nil
}

func parseConsolidationMapCall(call *build.CallExpr) (targets.ConsolidationMapInput, error) {
	args := keywordArgs(call)
	output, err := stringArg(args, "output", true)
	if err != nil {
		return targets.ConsolidationMapInput{}, err
	}
	input := targets.ConsolidationMapInput{OutputPath: output}

	list, ok := args["targets"].(*build.ListExpr)
	if !ok {
		return input, nil
	}
	for _, elem := range list.List {
		call, ok := callNamed(elem, "xcode_target")
		if !ok {
			return input, fmt.Errorf("consolidation_map %q: targets must be xcode_target calls", output)
		}
		target, err := parseXcodeTargetCall(call)
		if err != nil {
			return input, fmt.Errorf("consolidation_map %q: %w", output, err)
		}
		input.Targets = append(input.Targets, target)
	}
	return input, nil
}

func parseXcodeTargetCall(call *build.CallExpr) (*pbxproj.Target, error) {
	args := keywordArgs(call)
	var err error
	str := func(name string, required bool) string {
		if err != nil {
			return ""
		}
		var value string
		value, err = stringArg(args, name, required)
		return value
	}
	list := func(name string) []string {
		if err != nil {
			return nil
		}
		var values []string
		values, err = stringListArg(args, name)
		return values
	}

	var (
		id                  = str("id", true)
		rawLabel            = str("label", true)
		rawProductType      = str("product_type", true)
		rawPlatform         = str("platform", true)
		rawOSVersion        = str("os_version", true)
		arch                = str("arch", true)
		moduleName          = str("module_name", false)
		productBasename     = str("product_basename", false)
		testHost            = str("test_host", false)
		watchKitExtension   = str("watchkit_extension", false)
		deps                = list("deps")
		xcodeConfigurations = list("xcode_configurations")
	)
	if err != nil {
		return nil, fmt.Errorf("xcode_target %q: %w", id, err)
	}

	t := &pbxproj.Target{
		ID:                  pbxproj.TargetID(id),
		Arch:                arch,
		ModuleName:          moduleName,
		ProductBasename:     productBasename,
		XcodeConfigurations: xcodeConfigurations,
		UITestHost:          pbxproj.TargetID(testHost),
		WatchKitExtension:   pbxproj.TargetID(watchKitExtension),
	}
	for _, dep := range deps {
		t.Dependencies = append(t.Dependencies, pbxproj.TargetID(dep))
	}
	if t.Label, err = label.Parse(rawLabel); err != nil {
		return nil, fmt.Errorf("xcode_target %q: %w", id, err)
	}
	if t.ProductType, err = pbxproj.ParseProductType(rawProductType); err != nil {
		return nil, fmt.Errorf("xcode_target %q: %w", id, err)
	}
	if t.Platform, err = pbxproj.ParsePlatform(rawPlatform); err != nil {
		return nil, fmt.Errorf("xcode_target %q: %w", id, err)
	}
	if t.OSVersion, err = pbxproj.ParseVersion(rawOSVersion); err != nil {
		return nil, fmt.Errorf("xcode_target %q: %w", id, err)
	}

	switch {
	case t.ProductType == pbxproj.UITestBundle && t.UITestHost == "":
		return nil, &MissingMappingError{Target: t.ID, Context: "UI test"}
	case t.ProductType == pbxproj.Watch2App && t.WatchKitExtension == "":
		return nil, &MissingMappingError{Target: t.ID, Context: "WatchKit extension"}
	}
	return t, nil
}
