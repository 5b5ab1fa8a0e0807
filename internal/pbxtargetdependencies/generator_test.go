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

package pbxtargetdependencies

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/consolidationmap"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxproj"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/targets"
	"github.com/bazelbuild/bazel-gazelle/label"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTarget(id, labelString string, deps ...pbxproj.TargetID) *pbxproj.Target {
	l, err := label.Parse(labelString)
	if err != nil {
		panic(err)
	}
	return &pbxproj.Target{
		ID:                  pbxproj.TargetID(id),
		Label:               l,
		XcodeConfigurations: []string{"Debug"},
		ProductType:         pbxproj.StaticLibrary,
		Platform:            pbxproj.IPhoneSimulator,
		OSVersion:           pbxproj.MustParseVersion("16.0"),
		Arch:                "arm64",
		ModuleName:          l.Name,
		Dependencies:        deps,
	}
}

func newGenerator(t *testing.T, dir string) *Generator {
	t.Helper()
	disambiguator, err := targets.NewDisambiguator(targets.DefaultConfigurationHashCacheSize)
	require.NoError(t, err)
	return &Generator{
		Pipeline:            targets.NewPipeline(targets.NewConsolidator(), disambiguator, targets.NewIdentifierAssigner()),
		MapWriter:           &consolidationmap.Writer{Format: consolidationmap.TextFormat},
		MinimumXcodeVersion: pbxproj.MustParseVersion("15.0"),
		Outputs: Outputs{
			TargetDependencies: filepath.Join(dir, "target_dependencies"),
			Targets:            filepath.Join(dir, "targets"),
			TargetAttributes:   filepath.Join(dir, "target_attributes"),
		},
	}
}

func TestGenerate(t *testing.T) {
	dir := t.TempDir()
	inputs := []targets.ConsolidationMapInput{
		{
			OutputPath: filepath.Join(dir, "0.map"),
			Targets:    []*pbxproj.Target{newTarget("//app:App cfg", "//app:App", "//lib:Lib cfg")},
		},
		{
			OutputPath: filepath.Join(dir, "1.map"),
			Targets:    []*pbxproj.Target{newTarget("//lib:Lib cfg", "//lib:Lib")},
		},
	}

	require.NoError(t, newGenerator(t, dir).Generate(context.Background(), inputs))

	targetsPartial, err := os.ReadFile(filepath.Join(dir, "targets"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(targetsPartial), "\n"), "\n")
	require.Len(t, lines, 5)
	assert.Contains(t, lines[1], "BazelDependencies")
	assert.True(t, strings.HasPrefix(lines[2], "\t\t\t\t00"), lines[2])
	assert.True(t, strings.HasSuffix(lines[2], " /* App */,"), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], "\t\t\t\t01"), lines[3])

	dependencies, err := os.ReadFile(filepath.Join(dir, "target_dependencies"))
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(dependencies), "isa = PBXTargetDependency;"))

	attributes, err := os.ReadFile(filepath.Join(dir, "target_attributes"))
	require.NoError(t, err)
	assert.Equal(t, 3, strings.Count(string(attributes), "CreatedOnToolsVersion = 15.0.0;"))

	entries, err := consolidationmap.Read(filepath.Join(dir, "0.map"), consolidationmap.TextFormat)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "App", entries[0].Name)
	assert.Equal(t, "//app:App", entries[0].Label.String())
	assert.Equal(t, pbxproj.StaticLibrary, entries[0].ProductType)
	require.Len(t, entries[0].Dependencies, 2)
	assert.Equal(t, pbxproj.Shard(1), entries[0].Dependencies[1].Shard)
}

func TestGenerateFailsOnUnknownDependency(t *testing.T) {
	dir := t.TempDir()
	inputs := []targets.ConsolidationMapInput{{
		OutputPath: filepath.Join(dir, "0.map"),
		Targets:    []*pbxproj.Target{newTarget("//app:App cfg", "//app:App", "//lib:Lib cfg")},
	}}

	err := newGenerator(t, dir).Generate(context.Background(), inputs)
	var unknown *targets.UnknownDependencyError
	assert.ErrorAs(t, err, &unknown)
}
