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

// Command pbxtargetdependencies identifies the Xcode targets of a project and
// writes the target dependency, targets and target attributes partials plus
// the consolidation maps consumed by the per-shard target generators.
//
// Usage:
//
//	pbxtargetdependencies [flags] <target-dependencies> <targets> <target-attributes> <consolidation-map-args>...
//
// Arguments starting with "@" are replaced by the shell quoted contents of
// the named file. Files ending in ".bzl" are read as Starlark target
// manifests, all other files as consolidation map argument files.
package main

import (
	"context"
	"flag"
	"log"
	"os"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/arguments"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/config"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/consolidationmap"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxtargetdependencies"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/targets"
)

func main() {
	args, err := arguments.ExpandParamsFile(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to expand arguments: %v", err)
	}

	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a YAML configuration file")
	verbose := fs.Bool("verbose", false, "Enable verbose logging")
	var testHosts, watchKitExtensions config.StringList
	fs.Var(&testHosts, "target-and-test-hosts", "Repeated <target id> <test host id> pairs for UI test bundles")
	fs.Var(&watchKitExtensions, "target-and-watchkit-extensions", "Repeated <target id> <WatchKit extension id> pairs for watchOS 2 apps")
	fs.String(config.MinimumXcodeVersionFlag, "", "Minimum Xcode version, used as CreatedOnToolsVersion")
	fs.String(config.ConsolidationMapFormatFlag, "", `Consolidation map format: "text" or "binary"`)
	fs.Bool(config.CompressConsolidationMapsFlag, false, "Compress every consolidation map with xz")
	fs.Int(config.MaxParallelWritesFlag, 0, "Maximum number of consolidation maps written at once")
	fs.Int(config.DisambiguationCacheSizeFlag, 0, "Capacity of the configuration hash cache")
	fs.String(config.BaseDependencyLabelFlag, "", "Label of the target building every dependency, for diagnostics")
	fs.Parse(args)

	if err := arguments.RequireArgs(fs.Args(), 4, "the target dependencies, targets and target attributes outputs followed by consolidation map argument files"); err != nil {
		fs.Usage()
		log.Fatal(err)
	}

	cfg, err := config.LoadWithFlags(*configPath, fs)
	if err != nil {
		log.Fatal(err)
	}
	logf := func(string, ...any) {}
	if *verbose {
		logf = log.Printf
		if cfg.BaseDependencyLabel.Name != "" {
			logf("Generating dependencies of %s", cfg.BaseDependencyLabel)
		}
	}

	testHostMapping, err := arguments.ParsePairs("target-and-test-hosts", testHosts)
	if err != nil {
		log.Fatal(err)
	}
	watchKitExtensionMapping, err := arguments.ParsePairs("target-and-watchkit-extensions", watchKitExtensions)
	if err != nil {
		log.Fatal(err)
	}
	parser := &arguments.ConsolidationMapParser{
		TestHosts:          testHostMapping,
		WatchKitExtensions: watchKitExtensionMapping,
	}
	inputs, err := parser.ParseFiles(fs.Args()[3:])
	if err != nil {
		log.Fatalf("Failed to read consolidation map arguments: %v", err)
	}

	disambiguator, err := targets.NewDisambiguator(cfg.DisambiguationCacheSize)
	if err != nil {
		log.Fatal(err)
	}
	consolidator := targets.NewConsolidator()
	generator := &pbxtargetdependencies.Generator{
		Pipeline: targets.NewPipeline(consolidator, disambiguator, targets.NewIdentifierAssigner()),
		MapWriter: &consolidationmap.Writer{
			Format:      cfg.ConsolidationMapFormat,
			Compress:    cfg.CompressConsolidationMaps,
			MaxParallel: cfg.MaxParallelWrites,
		},
		MinimumXcodeVersion: cfg.MinimumXcodeVersion,
		Outputs: pbxtargetdependencies.Outputs{
			TargetDependencies: fs.Arg(0),
			Targets:            fs.Arg(1),
			TargetAttributes:   fs.Arg(2),
		},
		Logf: logf,
	}
	if err := generator.Generate(context.Background(), inputs); err != nil {
		log.Fatalf("Failed to generate target dependencies: %v", err)
	}
}
