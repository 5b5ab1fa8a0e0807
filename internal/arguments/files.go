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

package arguments

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/ulikunitz/xz"
)

// ReadLines returns the non-empty lines of `path`. Files ending in ".xz" are
// decompressed first.
func ReadLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var r io.Reader = f
	if strings.HasSuffix(path, ".xz") {
		if r, err = xz.NewReader(bufio.NewReader(f)); err != nil {
			return nil, fmt.Errorf("decompressing %q: %w", path, err)
		}
	}
	lines, err := scanLines(r)
	if err != nil {
		return nil, fmt.Errorf("reading %q: %w", path, err)
	}
	return lines, nil
}

// ReadAllLines concatenates the lines of every file in `paths`.
func ReadAllLines(paths []string) ([]string, error) {
	var lines []string
	for _, path := range paths {
		read, err := ReadLines(path)
		if err != nil {
			return nil, err
		}
		lines = append(lines, read...)
	}
	return lines, nil
}

func scanLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines, scanner.Err()
}

// ExpandParamsFile replaces every "@path" argument with the shell quoted
// words stored in that file. Other arguments are kept as is.
func ExpandParamsFile(args []string) ([]string, error) {
	expanded := make([]string, 0, len(args))
	for _, arg := range args {
		path, ok := strings.CutPrefix(arg, "@")
		if !ok || path == "" {
			expanded = append(expanded, arg)
			continue
		}
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading params file: %w", err)
		}
		words, err := shellquote.Split(string(content))
		if err != nil {
			return nil, &ArgumentError{Path: path, Message: err.Error()}
		}
		expanded = append(expanded, words...)
	}
	return expanded, nil
}
