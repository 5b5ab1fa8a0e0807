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

// Package pbxproj holds the vocabulary shared by the `.pbxproj` partial
// generators: target variants and their ids, platforms, product types,
// versions, object identifiers and the escaping rules of the project file
// format.
package pbxproj

import "strings"

const (
	validCharacters   = "_$/.0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
	specialCharacters = "_/"
)

// NeedsEscaping reports whether Escape would quote `s`.
func NeedsEscaping(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r > 0x7f || !strings.ContainsRune(validCharacters, r) {
			return true
		}
	}
	if !strings.ContainsAny(s, specialCharacters) {
		return false
	}
	return strings.Contains(s, "//") || strings.Contains(s, "___")
}

// Escape renders `s` as a `.pbxproj` string value.
//
// Strings consisting of `[A-Za-z0-9_$/.]` are written bare, unless they
// contain `//` or `___`, which the format would otherwise read as a comment or
// a placeholder. Everything else is quoted.
func Escape(s string) string {
	if !NeedsEscaping(s) {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2)
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\t':
			sb.WriteString(`\t`)
		case '\n':
			sb.WriteString(`\n`)
		default:
			sb.WriteRune(r)
		}
	}
	sb.WriteByte('"')
	return sb.String()
}
