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

package targets

import (
	"crypto/sha256"
	"encoding/hex"
	"log"
	"strconv"
	"strings"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/collections"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxproj"
)

// SubIdentifierHasher hands out target hashes that are unique within a
// shard. It is not safe for concurrent use.
type SubIdentifierHasher struct {
	seen map[pbxproj.Shard]collections.Set[string]
}

func NewSubIdentifierHasher() *SubIdentifierHasher {
	return &SubIdentifierHasher{seen: make(map[pbxproj.Shard]collections.Set[string])}
}

// SubIdentifier derives the sub-identifier of `id` in `shard`. The hash is
// the SHA-256 prefix of the id, re-hashed with an increasing counter until
// it is not taken in the shard yet.
func (h *SubIdentifierHasher) SubIdentifier(id pbxproj.TargetID, shard pbxproj.Shard) pbxproj.SubIdentifier {
	if shard == pbxproj.ReservedShard {
		log.Panicf("target %q was assigned reserved shard %s", id, shard)
	}
	seen, ok := h.seen[shard]
	if !ok {
		seen = make(collections.Set[string])
		h.seen[shard] = seen
	}

	hash := hashPrefix(string(id))
	for counter := 1; !seen.Insert(hash); counter++ {
		hash = hashPrefix(string(id) + "\x00" + strconv.Itoa(counter))
	}
	return pbxproj.SubIdentifier{Shard: shard, Hash: hash}
}

func hashPrefix(s string) string {
	sum := sha256.Sum256([]byte(s))
	return strings.ToUpper(hex.EncodeToString(sum[:pbxproj.HashWidth/2]))
}
