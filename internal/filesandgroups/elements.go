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

// Package filesandgroups renders the PBXGroup and PBXFileReference objects
// of the project navigator from a path tree.
package filesandgroups

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pathtree"
	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxproj"
)

type sortOrder int

// Groups and folders are listed before files.
const (
	groupLike sortOrder = iota
	fileLike
)

type element struct {
	name      string
	object    pbxproj.Object
	sortOrder sortOrder
}

// ElementCreator turns path tree nodes into project objects.
type ElementCreator struct {
	identifiers *ElementIdentifiers
	collator    *pbxproj.NameCollator
}

func NewElementCreator() *ElementCreator {
	return &ElementCreator{
		identifiers: NewElementIdentifiers(),
		collator:    pbxproj.NewNameCollator(),
	}
}

// CreateObjects returns the objects of every node below `root` followed by
// the main group, whose path is `workspace`.
func (c *ElementCreator) CreateObjects(root *pathtree.Node, workspace string) []pbxproj.Object {
	var objects []pbxproj.Object
	children := c.createChildren(root, "", &objects)
	objects = append(objects, pbxproj.Object{
		Identifier: MainGroupIdentifier,
		Content:    groupContent(children, workspace, `"<absolute>"`),
	})
	return objects
}

func (c *ElementCreator) createChildren(group *pathtree.Node, bazelPath string, objects *[]pbxproj.Object) []string {
	elements := make([]element, 0, len(group.Children))
	for _, child := range group.Children {
		childPath := child.Name
		if bazelPath != "" {
			childPath = bazelPath + "/" + child.Name
		}
		elements = append(elements, c.create(child, childPath, objects))
	}

	slices.SortStableFunc(elements, func(a, b element) int {
		if a.sortOrder != b.sortOrder {
			return int(a.sortOrder) - int(b.sortOrder)
		}
		return c.collator.Compare(a.name, b.name)
	})
	identifiers := make([]string, len(elements))
	for i, e := range elements {
		identifiers[i] = e.object.Identifier
	}
	return identifiers
}

func (c *ElementCreator) create(node *pathtree.Node, bazelPath string, objects *[]pbxproj.Object) element {
	var e element
	if node.IsGroup() {
		children := c.createChildren(node, bazelPath, objects)
		e = element{
			name: node.Name,
			object: pbxproj.Object{
				Identifier: c.identifiers.Identifier(bazelPath, node.Name, GroupElement),
				Content:    groupContent(children, node.Name, `"<group>"`),
			},
			sortOrder: groupLike,
		}
	} else {
		e = c.createFile(node, bazelPath)
	}
	*objects = append(*objects, e.object)
	return e
}

func (c *ElementCreator) createFile(node *pathtree.Node, bazelPath string) element {
	attribute, value := fileType(node.Name, node.IsFolder)
	order := fileLike
	if value == "folder" {
		order = groupLike
	}

	content := fmt.Sprintf(
		`{isa = PBXFileReference; %s = %s; path = %s; sourceTree = "<group>"; }`,
		attribute,
		pbxproj.Escape(value),
		pbxproj.Escape(node.Name),
	)
	return element{
		name: node.Name,
		object: pbxproj.Object{
			Identifier: c.identifiers.Identifier(bazelPath, node.Name, FileReferenceElement),
			Content:    content,
		},
		sortOrder: order,
	}
}

func groupContent(children []string, path, sourceTree string) string {
	var sb strings.Builder
	sb.WriteString("{\n\t\t\tisa = PBXGroup;\n\t\t\tchildren = (\n")
	for _, child := range children {
		sb.WriteString("\t\t\t\t")
		sb.WriteString(child)
		sb.WriteString(",\n")
	}
	sb.WriteString("\t\t\t);\n")
	fmt.Fprintf(&sb, "\t\t\tpath = %s;\n", pbxproj.Escape(path))
	fmt.Fprintf(&sb, "\t\t\tsourceTree = %s;\n", sourceTree)
	sb.WriteString("\t\t}")
	return sb.String()
}

// Generate builds the path tree of the non-excluded `paths` and writes the
// files and groups partial to `w`.
func Generate(w io.Writer, paths []pathtree.Path, filter *Filter, workspace string) error {
	if filter != nil {
		paths = filter.Apply(paths)
	}
	root := pathtree.Build(paths)
	return pbxproj.WriteObjects(w, NewElementCreator().CreateObjects(root, workspace))
}
