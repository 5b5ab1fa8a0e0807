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

package pbxproj

import (
	"fmt"
	"strconv"
	"strings"
)

// Identifiers are 12 byte numbers written as 24 uppercase hex characters.
// Partials are generated by independent processes, so every kind of object
// owns a fixed slice of the identifier space:
//
//	target:                <shard:2>00<hash:8>000000000001
//	container item proxy:  <shard:2>01<hash:8><dep shard:2>00<dep hash:8>
//	target dependency:     <shard:2>02<hash:8><dep shard:2>00<dep hash:8>
//	project objects:       FF00000000000000000000XX
//	files and groups:      FF<type:2><hash:20>
const (
	HashWidth          = 8
	SubIdentifierWidth = 2 + HashWidth

	// Shards are output path indexes. Shard 0xFF is reserved for objects that
	// are not targets.
	ReservedShard Shard = 0xFF
	MaxShards           = int(ReservedShard)
)

// Shard is the index of the consolidation map output a target belongs to.
type Shard uint8

func (s Shard) String() string {
	return fmt.Sprintf("%02X", uint8(s))
}

// SubIdentifier is the part of a target identifier that is derived from the
// target: the shard it lives in and a hash unique within that shard.
type SubIdentifier struct {
	Shard Shard
	Hash  string
}

// String renders the sub-identifier as 10 hex characters.
func (s SubIdentifier) String() string {
	return s.Shard.String() + s.Hash
}

// ParseSubIdentifier parses the output of SubIdentifier.String.
func ParseSubIdentifier(s string) (SubIdentifier, error) {
	if len(s) != SubIdentifierWidth {
		return SubIdentifier{}, fmt.Errorf("invalid sub-identifier %q: expected %d characters", s, SubIdentifierWidth)
	}
	shard, err := strconv.ParseUint(s[:2], 16, 8)
	if err != nil {
		return SubIdentifier{}, fmt.Errorf("invalid sub-identifier %q: %w", s, err)
	}
	if _, err := strconv.ParseUint(s[2:], 16, 32); err != nil {
		return SubIdentifier{}, fmt.Errorf("invalid sub-identifier %q: %w", s, err)
	}
	return SubIdentifier{Shard: Shard(shard), Hash: strings.ToUpper(s[2:])}, nil
}

// Identifier is the final identity of a target in the project file.
type Identifier struct {
	PBXProjEscapedName string
	SubIdentifier      SubIdentifier
	// "<id> /* <name> */"
	Full string
	// "<id>"
	WithoutComment string
}

// NewTargetIdentifier builds the identifier of a target named `name`.
func NewTargetIdentifier(name string, subIdentifier SubIdentifier) Identifier {
	id := subIdentifier.Shard.String() + "00" + subIdentifier.Hash + "000000000001"
	return Identifier{
		PBXProjEscapedName: Escape(name),
		SubIdentifier:      subIdentifier,
		Full:               withComment(id, name),
		WithoutComment:     id,
	}
}

// BazelDependencies is the aggregate target every other target depends on.
// Its id is fixed by the project prefix and does not follow the target
// layout.
var BazelDependencies = Identifier{
	PBXProjEscapedName: "BazelDependencies",
	SubIdentifier:      SubIdentifier{Shard: ReservedShard, Hash: "01000000"},
	Full:               "FF0100000000000000000001 /* BazelDependencies */",
	WithoutComment:     "FF0100000000000000000001",
}

// ProjectIdentifier is the identifier of the PBXProject object.
const ProjectIdentifier = "FF0000000000000000000001 /* Project object */"

// ContainerItemProxyIdentifier identifies the PBXContainerItemProxy used by
// the target `from` to reference `to`.
func ContainerItemProxyIdentifier(from, to SubIdentifier) string {
	return pairIdentifier("01", from, to) + " /* PBXContainerItemProxy */"
}

// TargetDependencyIdentifier identifies the PBXTargetDependency of the target
// `from` on `to`.
func TargetDependencyIdentifier(from, to SubIdentifier) string {
	return pairIdentifier("02", from, to) + " /* PBXTargetDependency */"
}

func pairIdentifier(kind string, from, to SubIdentifier) string {
	return from.Shard.String() + kind + from.Hash + to.Shard.String() + "00" + to.Hash
}

func withComment(id, comment string) string {
	return id + " /* " + comment + " */"
}
