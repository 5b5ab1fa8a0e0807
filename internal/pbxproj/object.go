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
	"bufio"
	"io"
)

// Object is one entry of the `objects` dictionary of a project file.
type Object struct {
	Identifier string
	Content    string
}

// WriteObjects writes `objects` as `\t\t<identifier> = <content>;` lines, the
// form in which partials are concatenated into the final project file.
func WriteObjects(w io.Writer, objects []Object) error {
	return WriteIndentedObjects(w, "\t\t", objects)
}

// WriteIndentedObjects is like WriteObjects with a custom indentation.
func WriteIndentedObjects(w io.Writer, indent string, objects []Object) error {
	bw := bufio.NewWriter(w)
	for _, object := range objects {
		bw.WriteString(indent)
		bw.WriteString(object.Identifier)
		bw.WriteString(" = ")
		bw.WriteString(object.Content)
		bw.WriteString(";\n")
	}
	return bw.Flush()
}
