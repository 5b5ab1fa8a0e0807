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

package filesandgroups

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/collections"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxproj"
)

// ElementType is the identifier namespace of a files and groups element.
type ElementType string

const (
	GroupElement         ElementType = "03"
	FileReferenceElement ElementType = "04"
)

const (
	elementHashWidth = 20
	// MainGroupIdentifier identifies the root group of the project.
	MainGroupIdentifier = "FF0000000000000000000003"
)

// ElementIdentifiers creates identifiers of groups and file references. An
// instance remembers every identifier it returned so that two paths never
// share one.
type ElementIdentifiers struct {
	seen collections.Set[string]
}

func NewElementIdentifiers() *ElementIdentifiers {
	return &ElementIdentifiers{seen: make(collections.Set[string])}
}

// Identifier returns "FF<type><hash> /* <name> */" for the element at
// `bazelPath`.
func (e *ElementIdentifiers) Identifier(bazelPath, name string, elementType ElementType) string {
	prefix := pbxproj.ReservedShard.String() + string(elementType)
	input := string(elementType) + "\x00" + bazelPath
	id := prefix + elementHash(input)
	for counter := 1; !e.seen.Insert(id); counter++ {
		id = prefix + elementHash(input+"\x00"+strconv.Itoa(counter))
	}
	return id + " /* " + name + " */"
}

func elementHash(s string) string {
	sum := sha256.Sum256([]byte(s))
	return strings.ToUpper(hex.EncodeToString(sum[:]))[:elementHashWidth]
}
