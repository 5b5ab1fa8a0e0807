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
	"path"
	"strings"
)

// Extensions of folders that Xcode treats as single files.
var folderTypeExtensions = map[string]bool{
	"bundle":      true,
	"docc":        true,
	"framework":   true,
	"scnassets":   true,
	"xcassets":    true,
	"xcdatamodel": true,
}

var fileTypeByExtension = map[string]string{
	"a":             "archive.ar",
	"app":           "wrapper.application",
	"appex":         "wrapper.app-extension",
	"bazel":         "text.script.python",
	"bundle":        "wrapper.plug-in",
	"bzl":           "text.script.python",
	"c":             "sourcecode.c.c",
	"cc":            "sourcecode.cpp.cpp",
	"cpp":           "sourcecode.cpp.cpp",
	"cxx":           "sourcecode.cpp.cpp",
	"docc":          "folder.documentationcatalog",
	"dylib":         "compiled.mach-o.dylib",
	"entitlements":  "text.plist.entitlements",
	"framework":     "wrapper.framework",
	"h":             "sourcecode.c.h",
	"hh":            "sourcecode.cpp.h",
	"hpp":           "sourcecode.cpp.h",
	"json":          "text.json",
	"m":             "sourcecode.c.objc",
	"markdown":      "net.daringfireball.markdown",
	"md":            "net.daringfireball.markdown",
	"metal":         "sourcecode.metal",
	"mm":            "sourcecode.cpp.objcpp",
	"modulemap":     "sourcecode.module-map",
	"pch":           "sourcecode.c.h",
	"plist":         "text.plist.xml",
	"png":           "image.png",
	"rb":            "text.script.ruby",
	"s":             "sourcecode.asm",
	"scnassets":     "wrapper.scnassets",
	"sh":            "text.script.sh",
	"storyboard":    "file.storyboard",
	"strings":       "text.plist.strings",
	"stringsdict":   "text.plist.stringsdict",
	"swift":         "sourcecode.swift",
	"tbd":           "sourcecode.text-based-dylib-definition",
	"txt":           "text",
	"xcassets":      "folder.assetcatalog",
	"xcconfig":      "text.xcconfig",
	"xcdatamodel":   "wrapper.xcdatamodel",
	"xcodeproj":     "wrapper.pb-project",
	"xctest":        "wrapper.cfbundle",
	"xib":           "file.xib",
	"yaml":          "text.yaml",
	"yml":           "text.yaml",
}

// extension returns the extension of `name` without the dot, or "" if it
// has none. Dot files have no extension.
func extension(name string) string {
	ext := path.Ext(name)
	if ext == "" || ext == name {
		return ""
	}
	return strings.TrimPrefix(ext, ".")
}

// fileType returns the file type attribute of a file reference: either
// `explicitFileType` for files Xcode would misdetect, or `lastKnownFileType`.
// Folders that are not folder types are plain "folder" references.
func fileType(name string, isFolder bool) (attribute, value string) {
	switch name {
	case "BUILD":
		return "explicitFileType", fileTypeByExtension["bazel"]
	case "Podfile":
		return "explicitFileType", fileTypeByExtension["rb"]
	}

	ext := extension(name)
	if isFolder && !folderTypeExtensions[ext] {
		return "lastKnownFileType", "folder"
	}
	if t, ok := fileTypeByExtension[ext]; ok {
		return "lastKnownFileType", t
	}
	return "lastKnownFileType", "file"
}
