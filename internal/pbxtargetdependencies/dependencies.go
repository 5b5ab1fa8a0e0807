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

// Package pbxtargetdependencies generates the partials that depend on target
// identifiers: the PBXContainerItemProxy and PBXTargetDependency objects, the
// `targets` list and the `TargetAttributes` of the project object.
package pbxtargetdependencies

import (
	"fmt"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxproj"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/targets"
)

// MissingDependencyError is returned when a dependency has no identifier.
type MissingDependencyError struct {
	Target     pbxproj.Key
	Dependency pbxproj.TargetID
}

func (e *MissingDependencyError) Error() string {
	return fmt.Sprintf("dependency %q of target %s not found in identifiers", e.Dependency, e.Target)
}

// CreateDependencyObjects returns, for every target, a container item proxy
// and a target dependency on BazelDependencies followed by one pair per
// dependency.
func CreateDependencyObjects(identified []targets.IdentifiedTarget, lookup targets.IdentifierLookup) ([]pbxproj.Object, error) {
	var objects []pbxproj.Object
	for _, target := range identified {
		objects = appendDependency(objects, target.Identifier, pbxproj.BazelDependencies)
		for _, dep := range target.Dependencies {
			identifier, ok := lookup[dep]
			if !ok {
				return nil, &MissingDependencyError{Target: target.Key, Dependency: dep}
			}
			objects = appendDependency(objects, target.Identifier, identifier)
		}
	}
	return objects, nil
}

func appendDependency(objects []pbxproj.Object, from, to pbxproj.Identifier) []pbxproj.Object {
	proxy := containerItemProxyObject(from, to)
	return append(objects, proxy, targetDependencyObject(from, to, proxy.Identifier))
}

func containerItemProxyObject(from, to pbxproj.Identifier) pbxproj.Object {
	return pbxproj.Object{
		Identifier: pbxproj.ContainerItemProxyIdentifier(from.SubIdentifier, to.SubIdentifier),
		Content: fmt.Sprintf(`{
			isa = PBXContainerItemProxy;
			containerPortal = %s;
			proxyType = 1;
			remoteGlobalIDString = %s;
			remoteInfo = %s;
		}`, pbxproj.ProjectIdentifier, to.WithoutComment, to.PBXProjEscapedName),
	}
}

func targetDependencyObject(from, to pbxproj.Identifier, proxyIdentifier string) pbxproj.Object {
	return pbxproj.Object{
		Identifier: pbxproj.TargetDependencyIdentifier(from.SubIdentifier, to.SubIdentifier),
		Content: fmt.Sprintf(`{
			isa = PBXTargetDependency;
			name = %s;
			target = %s;
			targetProxy = %s;
		}`, to.PBXProjEscapedName, to.Full, proxyIdentifier),
	}
}
