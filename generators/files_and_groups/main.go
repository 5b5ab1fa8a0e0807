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

// Command files_and_groups writes the PBXGroup and PBXFileReference objects
// of every file path listed in its input files.
//
// Usage:
//
//	files_and_groups [flags] <output> <workspace> <file-paths>...
//
// Each line of a file paths file is a workspace relative path. Paths ending
// in "/" are folders.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/arguments"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/collections"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/config"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/filesandgroups"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pathtree"
)

func main() {
	args, err := arguments.ExpandParamsFile(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to expand arguments: %v", err)
	}

	fs := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	configPath := fs.String("config", "", "Path to a YAML configuration file")
	verbose := fs.Bool("verbose", false, "Enable verbose logging")
	var excludes config.StringList
	fs.Var(&excludes, config.ExcludePathFlag, "Repeated doublestar patterns of paths to leave out of the project")
	fs.Parse(args)

	if err := arguments.RequireArgs(fs.Args(), 3, "the output path, the workspace directory and files listing paths"); err != nil {
		fs.Usage()
		log.Fatal(err)
	}

	cfg, err := config.LoadWithFlags(*configPath, fs)
	if err != nil {
		log.Fatal(err)
	}
	filter, err := filesandgroups.NewFilter(cfg.ExcludePaths)
	if err != nil {
		log.Fatal(err)
	}

	lines, err := arguments.ReadAllLines(fs.Args()[2:])
	if err != nil {
		log.Fatalf("Failed to read file paths: %v", err)
	}
	paths := collections.MapSlice(collections.Dedup(lines), pathtree.ParsePath)
	if *verbose {
		log.Printf("Creating groups for %d paths, excluding %d patterns", len(paths), len(cfg.ExcludePaths))
	}

	output, err := os.Create(fs.Arg(0))
	if err != nil {
		log.Fatalf("Failed to create output: %v", err)
	}
	if err := filesandgroups.Generate(output, paths, filter, fs.Arg(1)); err != nil {
		log.Fatalf("Failed to write files and groups: %v", err)
	}
	if err := output.Close(); err != nil {
		log.Fatalf("Failed to write files and groups: %v", err)
	}
}
