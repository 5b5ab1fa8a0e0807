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
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxproj"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/targets"
	"github.com/coreos/go-semver/semver"
)

// MissingTestHostError is returned when the test host of a UI test bundle
// has no identifier.
type MissingTestHostError struct {
	Target   pbxproj.Key
	TestHost pbxproj.TargetID
}

func (e *MissingTestHostError) Error() string {
	return fmt.Sprintf("test host %q of target %s not found in identifiers", e.TestHost, e.Target)
}

// CreatedOnToolsVersion is the `CreatedOnToolsVersion` of every target.
func CreatedOnToolsVersion(minimumXcodeVersion semver.Version) string {
	return pbxproj.FullVersion(minimumXcodeVersion)
}

// CreateTargetAttributesObjects returns the attributes of BazelDependencies
// followed by those of every target.
func CreateTargetAttributesObjects(
	identified []targets.IdentifiedTarget,
	lookup targets.IdentifierLookup,
	createdOnToolsVersion string,
) ([]pbxproj.Object, error) {
	objects := make([]pbxproj.Object, 0, len(identified)+1)
	objects = append(objects, pbxproj.Object{
		Identifier: pbxproj.BazelDependencies.Full,
		Content:    targetAttributesContent(createdOnToolsVersion, ""),
	})
	for _, target := range identified {
		var testHost string
		if target.UITestHost != "" {
			identifier, ok := lookup[target.UITestHost]
			if !ok {
				return nil, &MissingTestHostError{Target: target.Key, TestHost: target.UITestHost}
			}
			testHost = identifier.WithoutComment
		}
		objects = append(objects, pbxproj.Object{
			Identifier: target.Identifier.Full,
			Content:    targetAttributesContent(createdOnToolsVersion, testHost),
		})
	}
	return objects, nil
}

func targetAttributesContent(createdOnToolsVersion, testHost string) string {
	var sb strings.Builder
	sb.WriteString("{\n")
	fmt.Fprintf(&sb, "\t\t\t\t\t\tCreatedOnToolsVersion = %s;\n", createdOnToolsVersion)
	sb.WriteString("\t\t\t\t\t\tLastSwiftMigration = 9999;\n")
	if testHost != "" {
		fmt.Fprintf(&sb, "\t\t\t\t\t\tTestTargetID = %s;\n", testHost)
	}
	sb.WriteString("\t\t\t\t\t}")
	return sb.String()
}

// WriteTargetAttributesPartial writes the `TargetAttributes` dictionary of
// the project object's `attributes`.
func WriteTargetAttributesPartial(w io.Writer, objects []pbxproj.Object) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("\t\t\t\tTargetAttributes = {\n")
	if err := pbxproj.WriteIndentedObjects(bw, "\t\t\t\t\t", objects); err != nil {
		return err
	}
	bw.WriteString("\t\t\t\t};\n")
	return bw.Flush()
}

// WriteTargetsPartial writes the `targets` list of the project object.
// BazelDependencies always comes first, followed by `identified` in order.
func WriteTargetsPartial(w io.Writer, identified []targets.IdentifiedTarget) error {
	bw := bufio.NewWriter(w)
	bw.WriteString("\t\t\ttargets = (\n")
	writeTarget := func(identifier pbxproj.Identifier) {
		bw.WriteString("\t\t\t\t")
		bw.WriteString(identifier.Full)
		bw.WriteString(",\n")
	}
	writeTarget(pbxproj.BazelDependencies)
	for _, target := range identified {
		writeTarget(target.Identifier)
	}
	bw.WriteString("\t\t\t);\n")
	return bw.Flush()
}

