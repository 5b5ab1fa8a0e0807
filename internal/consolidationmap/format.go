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

package consolidationmap

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxproj"
	"github.com/bazelbuild/bazel-gazelle/label"
)

// Format selects the encoding of a consolidation map.
type Format int

const (
	// TextFormat writes one tab separated line per entry.
	TextFormat Format = iota
	// BinaryFormat writes length-delimited protobuf wire records.
	BinaryFormat
)

// ParseFormat parses "text" or "binary".
func ParseFormat(s string) (Format, error) {
	switch s {
	case "text":
		return TextFormat, nil
	case "binary":
		return BinaryFormat, nil
	default:
		return 0, fmt.Errorf("unknown consolidation map format %q, expected \"text\" or \"binary\"", s)
	}
}

func (f Format) String() string {
	switch f {
	case TextFormat:
		return "text"
	case BinaryFormat:
		return "binary"
	default:
		return fmt.Sprintf("Format(%d)", int(f))
	}
}

// UnmarshalText lets configuration files name the format.
func (f *Format) UnmarshalText(data []byte) error {
	parsed, err := ParseFormat(string(data))
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

func (f Format) encode(w io.Writer, entries []Entry) error {
	if f == BinaryFormat {
		return encodeBinary(w, entries)
	}
	return encodeText(w, entries)
}

func (f Format) decode(r io.Reader) ([]Entry, error) {
	if f == BinaryFormat {
		return decodeBinary(r)
	}
	return decodeText(r)
}

// Text lines look like:
//
//	<name>\t<label>\t<product type>\t<product basename>\t<UI test host name>\t<WatchKit extension product>\t<target id>[\t<target id>...]\t<sub-identifier><dependency sub-identifiers>
//
// Backslashes, tabs and line breaks in string fields are escaped.
func encodeText(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	for _, entry := range entries {
		var watchKitExtension string
		if entry.WatchKitExtensionProduct != nil {
			watchKitExtension = entry.WatchKitExtensionProduct.String()
		}
		fields := []string{
			entry.Name,
			formatLabel(entry.Label),
			formatProductType(entry.ProductType),
			entry.ProductBasename,
			entry.UITestHostName,
			watchKitExtension,
		}
		for _, id := range entry.Key.SortedIDs() {
			fields = append(fields, string(id))
		}
		for i, field := range fields {
			if i > 0 {
				bw.WriteByte('\t')
			}
			textEscaper.WriteString(bw, field)
		}
		bw.WriteByte('\t')
		bw.WriteString(entry.SubIdentifier.String())
		for _, dep := range entry.Dependencies {
			bw.WriteString(dep.String())
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

var (
	textEscaper   = strings.NewReplacer(`\`, `\\`, "\t", `\t`, "\n", `\n`, "\r", `\r`)
	textUnescaper = strings.NewReplacer(`\\`, `\`, `\t`, "\t", `\n`, "\n", `\r`, "\r")
)

const textFixedFields = 6

func decodeText(r io.Reader) ([]Entry, error) {
	var entries []Entry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(nil, 16*1024*1024)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		entry, err := decodeTextLine(scanner.Text())
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		entries = append(entries, entry)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func decodeTextLine(line string) (Entry, error) {
	fields := strings.Split(line, "\t")
	if len(fields) < textFixedFields+2 {
		return Entry{}, fmt.Errorf("expected at least %d tab separated fields, got %d", textFixedFields+2, len(fields))
	}
	for i := range fields[:len(fields)-1] {
		fields[i] = textUnescaper.Replace(fields[i])
	}

	l, err := parseLabel(fields[1])
	if err != nil {
		return Entry{}, err
	}
	productType, err := parseProductType(fields[2])
	if err != nil {
		return Entry{}, err
	}
	var watchKitExtension *ProductSubIdentifier
	if fields[5] != "" {
		if watchKitExtension, err = parseProductSubIdentifier(fields[5]); err != nil {
			return Entry{}, err
		}
	}
	ids := make([]pbxproj.TargetID, 0, len(fields)-textFixedFields-1)
	for _, id := range fields[textFixedFields : len(fields)-1] {
		ids = append(ids, pbxproj.TargetID(id))
	}
	subIdentifiers, err := parseSubIdentifiers(fields[len(fields)-1])
	if err != nil {
		return Entry{}, err
	}
	return Entry{
		Key:                      pbxproj.NewKey(ids...),
		Label:                    l,
		ProductType:              productType,
		Name:                     fields[0],
		ProductBasename:          fields[3],
		UITestHostName:           fields[4],
		SubIdentifier:            subIdentifiers[0],
		WatchKitExtensionProduct: watchKitExtension,
		Dependencies:             subIdentifiers[1:],
	}, nil
}

// Unset labels and product types are written as empty strings.

func formatLabel(l label.Label) string {
	if l == label.NoLabel {
		return ""
	}
	return l.String()
}

func parseLabel(s string) (label.Label, error) {
	if s == "" {
		return label.NoLabel, nil
	}
	return label.Parse(s)
}

func formatProductType(pt pbxproj.ProductType) string {
	if pt == 0 {
		return ""
	}
	return pt.String()
}

func parseProductType(s string) (pbxproj.ProductType, error) {
	if s == "" {
		return 0, nil
	}
	return pbxproj.ParseProductType(s)
}

func parseSubIdentifiers(s string) ([]pbxproj.SubIdentifier, error) {
	if len(s) == 0 || len(s)%pbxproj.SubIdentifierWidth != 0 {
		return nil, fmt.Errorf("sub-identifiers %q are not a multiple of %d characters", s, pbxproj.SubIdentifierWidth)
	}
	subIdentifiers := make([]pbxproj.SubIdentifier, 0, len(s)/pbxproj.SubIdentifierWidth)
	for start := 0; start < len(s); start += pbxproj.SubIdentifierWidth {
		subIdentifier, err := pbxproj.ParseSubIdentifier(s[start : start+pbxproj.SubIdentifierWidth])
		if err != nil {
			return nil, err
		}
		subIdentifiers = append(subIdentifiers, subIdentifier)
	}
	return subIdentifiers, nil
}
