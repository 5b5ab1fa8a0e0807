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

// Package pathtree turns a flat list of workspace paths into the nested
// group hierarchy shown in the Xcode project navigator.
package pathtree

import (
	"log"
	"slices"
	"strings"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/collections"
)

// Path is a slash separated path. Folder paths are referenced as a whole
// instead of listing their content.
type Path struct {
	Path     string
	IsFolder bool
}

// ParsePath parses a line of a path list. A trailing slash marks a folder.
func ParsePath(s string) Path {
	if trimmed, ok := strings.CutSuffix(s, "/"); ok {
		return Path{Path: trimmed, IsFolder: true}
	}
	return Path{Path: s}
}

func (p Path) components() []string {
	return strings.FieldsFunc(p.Path, func(r rune) bool { return r == '/' })
}

// Node is either a file (possibly a folder reference) or a group of nodes.
type Node struct {
	Name     string
	IsFolder bool
	// Non-nil for groups.
	Children []*Node
}

// NewFile creates a file node.
func NewFile(name string, isFolder bool) *Node {
	return &Node{Name: name, IsFolder: isFolder}
}

// NewGroup creates a group node.
func NewGroup(name string, children ...*Node) *Node {
	if children == nil {
		children = []*Node{}
	}
	return &Node{Name: name, Children: children}
}

// IsGroup reports whether the node is a group.
func (n *Node) IsGroup() bool {
	return n.Children != nil
}

// pending is a node waiting for its parent group to be created.
type pending struct {
	components []string
	node       *Node
}

func (p pending) depth() int {
	return len(p.components)
}

// Less pops deeper nodes first. Nodes of the same depth come out in
// component order, files before folders, and leaves before groups.
func (p pending) Less(other pending) bool {
	if p.depth() != other.depth() {
		return p.depth() > other.depth()
	}
	if c := slices.Compare(p.components, other.components); c != 0 {
		return c < 0
	}
	if p.node.IsFolder != other.node.IsFolder {
		return !p.node.IsFolder
	}
	return !p.node.IsGroup() && other.node.IsGroup()
}

// Build creates the tree for `paths` and returns its root, a group named "".
// Duplicate paths are ignored, empty paths are skipped.
//
// Nodes are processed deepest first. Consecutive nodes of one depth sharing
// their parent components become the children of a new group, which is queued
// for the depth above. A leaf and a group with the same components, as
// produced by the paths "a" and "a/b", are merged into one group.
func Build(paths []Path) *Node {
	seen := make(collections.Set[Path], len(paths))
	items := make([]pending, 0, len(paths))
	for _, path := range paths {
		components := path.components()
		normalized := Path{Path: strings.Join(components, "/"), IsFolder: path.IsFolder}
		if len(components) == 0 || !seen.Insert(normalized) {
			continue
		}
		items = append(items, pending{
			components: components,
			node:       NewFile(components[len(components)-1], path.IsFolder),
		})
	}

	queue := collections.NewPriorityQueue(items)
	if queue.Empty() {
		return NewGroup("")
	}

	for {
		depth := queue.Peek().depth()

		var (
			previous         *pending
			parentComponents []string
			children         []*Node
			parents          []pending
		)
		collectParent := func() {
			parents = append(parents, pending{
				components: parentComponents,
				node:       NewGroup(parentComponents[len(parentComponents)-1], children...),
			})
		}

		for !queue.Empty() && queue.Peek().depth() == depth {
			item := queue.Pop()
			if previous != nil && slices.Equal(previous.components, item.components) &&
				(previous.node.IsGroup() || item.node.IsGroup()) {
				merge(previous.node, item.node)
				continue
			}

			parent := item.components[:depth-1]
			if previous != nil && !slices.Equal(parent, parentComponents) {
				collectParent()
				children = nil
			}
			parentComponents = parent
			children = append(children, item.node)
			previous = &item
		}

		if depth == 1 {
			return NewGroup("", children...)
		}
		collectParent()

		for _, parent := range parents {
			if parent.depth() != depth-1 {
				log.Panicf("path tree: group %v created at depth %d while processing depth %d", parent.components, parent.depth(), depth)
			}
			queue.Push(parent)
		}
		if queue.Peek().depth() >= depth {
			log.Panicf("path tree: depth did not decrease below %d", depth)
		}
	}
}

// merge folds `src` into `dst`, turning `dst` into a group.
func merge(dst, src *Node) {
	if !src.IsGroup() {
		return
	}
	if !dst.IsGroup() {
		dst.IsFolder = false
		dst.Children = src.Children
		return
	}
	dst.Children = append(dst.Children, src.Children...)
	slices.SortStableFunc(dst.Children, compareSiblings)
}

func compareSiblings(a, b *Node) int {
	if c := strings.Compare(a.Name, b.Name); c != 0 {
		return c
	}
	switch {
	case a.IsFolder == b.IsFolder:
		return 0
	case a.IsFolder:
		return 1
	default:
		return -1
	}
}
