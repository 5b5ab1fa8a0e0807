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
	"fmt"
	"io"
	"os"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/collections"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/consolidationmap"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxproj"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/targets"
	"github.com/coreos/go-semver/semver"
	"golang.org/x/sync/errgroup"
)

// Outputs are the paths of the partials written by a Generator.
type Outputs struct {
	TargetDependencies string
	Targets            string
	TargetAttributes   string
}

// Generator identifies targets and writes every partial and consolidation
// map derived from them.
type Generator struct {
	Pipeline            *targets.Pipeline
	MapWriter           *consolidationmap.Writer
	MinimumXcodeVersion semver.Version
	Outputs             Outputs
	// Logf receives progress messages. May be nil.
	Logf func(format string, args ...any)
}

func (g *Generator) logf(format string, args ...any) {
	if g.Logf != nil {
		g.Logf(format, args...)
	}
}

// Generate runs the whole generation for `inputs`. The consolidation maps
// and the three partials are written concurrently; the first failure cancels
// the remaining work and is returned.
func (g *Generator) Generate(ctx context.Context, inputs []targets.ConsolidationMapInput) error {
	identified, lookup, err := g.Pipeline.IdentifyTargets(inputs)
	if err != nil {
		return err
	}
	g.logf("Identified %d targets in %d consolidation maps", len(identified), len(inputs))

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return writeFile(g.Outputs.Targets, func(w io.Writer) error {
			return WriteTargetsPartial(w, identified)
		})
	})
	eg.Go(func() error {
		maps, err := consolidationmap.Calculate(
			collections.MapSlice(inputs, func(input targets.ConsolidationMapInput) string { return input.OutputPath }),
			identified,
			lookup,
		)
		if err != nil {
			return err
		}
		return g.MapWriter.WriteAll(ctx, maps)
	})
	eg.Go(func() error {
		objects, err := CreateTargetAttributesObjects(identified, lookup, CreatedOnToolsVersion(g.MinimumXcodeVersion))
		if err != nil {
			return err
		}
		return writeFile(g.Outputs.TargetAttributes, func(w io.Writer) error {
			return WriteTargetAttributesPartial(w, objects)
		})
	})
	eg.Go(func() error {
		objects, err := CreateDependencyObjects(identified, lookup)
		if err != nil {
			return err
		}
		return writeFile(g.Outputs.TargetDependencies, func(w io.Writer) error {
			return pbxproj.WriteObjects(w, objects)
		})
	})
	return eg.Wait()
}

func writeFile(path string, write func(io.Writer) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()
	if err := write(f); err != nil {
		return fmt.Errorf("writing %q: %w", path, err)
	}
	return nil
}
