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
	"errors"
	"fmt"
	"io"

	"github.com/MobileNativeFoundation/rules-xcodeproj-sub004/internal/pbxproj"
	"google.golang.org/protobuf/encoding/protowire"
)

// Field numbers of a binary entry record.
const (
	fieldTargetID          protowire.Number = 1
	fieldName              protowire.Number = 2
	fieldSubIdentifier     protowire.Number = 3
	fieldDependency        protowire.Number = 4
	fieldLabel             protowire.Number = 5
	fieldProductType       protowire.Number = 6
	fieldProductBasename   protowire.Number = 7
	fieldUITestHostName    protowire.Number = 8
	fieldWatchKitExtension protowire.Number = 9
)

func appendStringField(record []byte, number protowire.Number, value string) []byte {
	if value == "" {
		return record
	}
	record = protowire.AppendTag(record, number, protowire.BytesType)
	return protowire.AppendString(record, value)
}

func encodeBinary(w io.Writer, entries []Entry) error {
	bw := bufio.NewWriter(w)
	var record, buf []byte
	for _, entry := range entries {
		record = record[:0]
		for _, id := range entry.Key.SortedIDs() {
			record = protowire.AppendTag(record, fieldTargetID, protowire.BytesType)
			record = protowire.AppendString(record, string(id))
		}
		record = protowire.AppendTag(record, fieldName, protowire.BytesType)
		record = protowire.AppendString(record, entry.Name)
		record = protowire.AppendTag(record, fieldSubIdentifier, protowire.BytesType)
		record = protowire.AppendString(record, entry.SubIdentifier.String())
		record = appendStringField(record, fieldLabel, formatLabel(entry.Label))
		record = appendStringField(record, fieldProductType, formatProductType(entry.ProductType))
		record = appendStringField(record, fieldProductBasename, entry.ProductBasename)
		record = appendStringField(record, fieldUITestHostName, entry.UITestHostName)
		if entry.WatchKitExtensionProduct != nil {
			record = appendStringField(record, fieldWatchKitExtension, entry.WatchKitExtensionProduct.String())
		}
		for _, dep := range entry.Dependencies {
			record = protowire.AppendTag(record, fieldDependency, protowire.BytesType)
			record = protowire.AppendString(record, dep.String())
		}

		buf = protowire.AppendBytes(buf[:0], record)
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func decodeBinary(r io.Reader) ([]Entry, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	for len(data) > 0 {
		record, n := protowire.ConsumeBytes(data)
		if n < 0 {
			return nil, fmt.Errorf("entry %d: %w", len(entries), protowire.ParseError(n))
		}
		data = data[n:]

		entry, err := decodeRecord(record)
		if err != nil {
			return nil, fmt.Errorf("entry %d: %w", len(entries), err)
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func decodeRecord(record []byte) (Entry, error) {
	var (
		entry         Entry
		ids           []pbxproj.TargetID
		subIdentifier string
		err           error
	)
	for len(record) > 0 {
		number, typ, n := protowire.ConsumeTag(record)
		if n < 0 {
			return Entry{}, protowire.ParseError(n)
		}
		record = record[n:]

		if typ != protowire.BytesType {
			n = protowire.ConsumeFieldValue(number, typ, record)
			if n < 0 {
				return Entry{}, protowire.ParseError(n)
			}
			record = record[n:]
			continue
		}

		value, n := protowire.ConsumeString(record)
		if n < 0 {
			return Entry{}, protowire.ParseError(n)
		}
		record = record[n:]

		switch number {
		case fieldTargetID:
			ids = append(ids, pbxproj.TargetID(value))
		case fieldName:
			entry.Name = value
		case fieldSubIdentifier:
			subIdentifier = value
		case fieldLabel:
			if entry.Label, err = parseLabel(value); err != nil {
				return Entry{}, err
			}
		case fieldProductType:
			if entry.ProductType, err = parseProductType(value); err != nil {
				return Entry{}, err
			}
		case fieldProductBasename:
			entry.ProductBasename = value
		case fieldUITestHostName:
			entry.UITestHostName = value
		case fieldWatchKitExtension:
			if entry.WatchKitExtensionProduct, err = parseProductSubIdentifier(value); err != nil {
				return Entry{}, err
			}
		case fieldDependency:
			dep, err := pbxproj.ParseSubIdentifier(value)
			if err != nil {
				return Entry{}, err
			}
			entry.Dependencies = append(entry.Dependencies, dep)
		}
	}

	if subIdentifier == "" {
		return Entry{}, errors.New("missing sub-identifier")
	}
	if entry.SubIdentifier, err = pbxproj.ParseSubIdentifier(subIdentifier); err != nil {
		return Entry{}, err
	}
	entry.Key = pbxproj.NewKey(ids...)
	return entry, nil
}
