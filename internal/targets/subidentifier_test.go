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
	"fmt"
	"testing"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/collections"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxproj"
	"github.com/stretchr/testify/assert"
)

func TestSubIdentifier(t *testing.T) {
	hasher := NewSubIdentifierHasher()
	first := hasher.SubIdentifier("//a:Lib cfg1", 3)
	assert.Equal(t, pbxproj.SubIdentifier{Shard: 3, Hash: "96D377AC"}, first)

	// Same id again in the same shard collides and is re-hashed.
	second := hasher.SubIdentifier("//a:Lib cfg1", 3)
	assert.Equal(t, pbxproj.Shard(3), second.Shard)
	assert.NotEqual(t, first.Hash, second.Hash)
	assert.Len(t, second.Hash, pbxproj.HashWidth)

	// Other shards have their own namespace.
	assert.Equal(t, "96D377AC", hasher.SubIdentifier("//a:Lib cfg1", 4).Hash)
}

func TestSubIdentifierCollisionFreedom(t *testing.T) {
	hasher := NewSubIdentifierHasher()
	seen := make(collections.Set[string])
	for i := range 5000 {
		// Repeated ids force the collision path.
		sub := hasher.SubIdentifier(pbxproj.TargetID(fmt.Sprintf("//a:t%d", i%50)), 0)
		assert.True(t, seen.Insert(sub.Hash), "duplicate hash %s", sub.Hash)
	}
}

func TestSubIdentifierReservedShard(t *testing.T) {
	assert.Panics(t, func() {
		NewSubIdentifierHasher().SubIdentifier("//a:Lib", pbxproj.ReservedShard)
	})
}
