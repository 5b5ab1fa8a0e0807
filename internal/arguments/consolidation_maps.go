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
	"os"
	"strings"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxproj"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/targets"
	"github.com/bazelbuild/bazel-gazelle/label"
)

// MissingMappingError is returned when a target requires a counterpart, such
// as the test host of a UI test bundle, that was not supplied.
type MissingMappingError struct {
	Target  pbxproj.TargetID
	Context string
}

func (e *MissingMappingError) Error() string {
	return fmt.Sprintf("%s %q not found in target mapping", e.Context, e.Target)
}

// TargetMapping maps a target to its test host or WatchKit extension.
type TargetMapping map[pbxproj.TargetID]pbxproj.TargetID

func (m TargetMapping) lookup(id pbxproj.TargetID, context string) (pbxproj.TargetID, error) {
	value, ok := m[id]
	if !ok {
		return "", &MissingMappingError{Target: id, Context: context}
	}
	return value, nil
}

// ParsePairs converts a flat "<target> <value> <target> <value>..." list into
// a TargetMapping.
func ParsePairs(name string, values []string) (TargetMapping, error) {
	if len(values)%2 != 0 {
		return nil, &ArgumentError{
			Message: fmt.Sprintf("<%s> must have an even number of elements, got %d", name, len(values)),
		}
	}
	mapping := make(TargetMapping, len(values)/2)
	for i := 0; i < len(values); i += 2 {
		mapping[pbxproj.TargetID(values[i])] = pbxproj.TargetID(values[i+1])
	}
	return mapping, nil
}

// ConsolidationMapParser parses consolidation map argument files.
type ConsolidationMapParser struct {
	TestHosts          TargetMapping
	WatchKitExtensions TargetMapping
}

// ParseFile reads and parses the argument file at `path`.
func (p *ConsolidationMapParser) ParseFile(path string) ([]targets.ConsolidationMapInput, error) {
	lines, err := ReadLines(path)
	if err != nil {
		return nil, err
	}
	return p.Parse(NewReader(path, lines))
}

// ParseFiles parses every file of `paths`, in order. Files ending in ".bzl"
// are read as target manifests, all others as argument files.
func (p *ConsolidationMapParser) ParseFiles(paths []string) ([]targets.ConsolidationMapInput, error) {
	var inputs []targets.ConsolidationMapInput
	for _, path := range paths {
		if !strings.HasSuffix(path, ".bzl") {
			parsed, err := p.ParseFile(path)
			if err != nil {
				return nil, err
			}
			inputs = append(inputs, parsed...)
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		parsed, err := ParseTargetManifest(path, content)
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, parsed...)
	}
	return inputs, nil
}

// Parse consumes a list of output paths terminated by "--" followed by the
// labels and target variants of each output path, in order.
func (p *ConsolidationMapParser) Parse(r *Reader) ([]targets.ConsolidationMapInput, error) {
	outputPaths, err := r.ConsumeArgs("output-paths")
	if err != nil {
		return nil, err
	}

	inputs := make([]targets.ConsolidationMapInput, 0, len(outputPaths))
	for _, outputPath := range outputPaths {
		labelCount, err := r.ConsumeInt("label-count")
		if err != nil {
			return nil, err
		}
		input := targets.ConsolidationMapInput{OutputPath: outputPath}
		for range labelCount {
			lbl, err := ConsumeParsed(r, "label", label.Parse)
			if err != nil {
				return nil, err
			}
			targetCount, err := r.ConsumeInt("target-count")
			if err != nil {
				return nil, err
			}
			for range targetCount {
				target, err := p.parseTarget(r, lbl)
				if err != nil {
					return nil, err
				}
				input.Targets = append(input.Targets, target)
			}
		}
		inputs = append(inputs, input)
	}
	if !r.Done() {
		return nil, r.errorf("unexpected arguments after the last consolidation map")
	}
	return inputs, nil
}

func (p *ConsolidationMapParser) parseTarget(r *Reader, lbl label.Label) (*pbxproj.Target, error) {
	t := &pbxproj.Target{Label: lbl}

	id, err := r.ConsumeArg("id")
	if err != nil {
		return nil, err
	}
	t.ID = pbxproj.TargetID(id)
	if t.ProductType, err = ConsumeParsed(r, "product-type", pbxproj.ParseProductType); err != nil {
		return nil, err
	}
	if t.Platform, err = ConsumeParsed(r, "platform", pbxproj.ParsePlatform); err != nil {
		return nil, err
	}
	if t.OSVersion, err = ConsumeParsed(r, "os-version", pbxproj.ParseVersion); err != nil {
		return nil, err
	}
	if t.Arch, err = r.ConsumeArg("arch"); err != nil {
		return nil, err
	}
	if t.ModuleName, err = r.ConsumeArg("module-name"); err != nil {
		return nil, err
	}
	// The product path only matters to the native target generators.
	if _, err = r.ConsumeArg("product-path"); err != nil {
		return nil, err
	}
	if t.ProductBasename, err = r.ConsumeArg("product-basename"); err != nil {
		return nil, err
	}
	dependencies, err := r.ConsumeArgs("dependencies")
	if err != nil {
		return nil, err
	}
	for _, dep := range dependencies {
		t.Dependencies = append(t.Dependencies, pbxproj.TargetID(dep))
	}
	if t.XcodeConfigurations, err = r.ConsumeArgs("xcode-configurations"); err != nil {
		return nil, err
	}

	switch t.ProductType {
	case pbxproj.UITestBundle:
		if t.UITestHost, err = p.TestHosts.lookup(t.ID, "UI test"); err != nil {
			return nil, err
		}
	case pbxproj.Watch2App:
		if t.WatchKitExtension, err = p.WatchKitExtensions.lookup(t.ID, "WatchKit extension"); err != nil {
			return nil, err
		}
	}
	return t, nil
}
