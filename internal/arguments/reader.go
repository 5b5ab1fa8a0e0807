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

// Package arguments parses the boundary input of the generators: argument
// files describing consolidation maps, paired target lists, params files and
// Starlark target manifests.
package arguments

import (
	"fmt"
	"strconv"
)

// Terminator ends every variable length list in an argument file.
const Terminator = "--"

// ArgumentError reports malformed input read from Path.
type ArgumentError struct {
	Path    string
	Message string
}

func (e *ArgumentError) Error() string {
	if e.Path == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Path, e.Message)
}

// RequireArgs fails unless `args` holds at least `minimum` positional
// arguments, described by `description`.
func RequireArgs(args []string, minimum int, description string) error {
	if len(args) < minimum {
		return &ArgumentError{Message: fmt.Sprintf(
			"program requires at least %d arguments - %s, got %d. Flags need to be defined before arguments",
			minimum, description, len(args))}
	}
	return nil
}

// Reader consumes whitespace separated tokens read from a single file.
type Reader struct {
	path   string
	tokens []string
	pos    int
}

// NewReader creates a Reader over `tokens`. `path` is only used in errors.
func NewReader(path string, tokens []string) *Reader {
	return &Reader{path: path, tokens: tokens}
}

// Done reports whether every token was consumed.
func (r *Reader) Done() bool {
	return r.pos >= len(r.tokens)
}

func (r *Reader) errorf(format string, args ...any) error {
	return &ArgumentError{Path: r.path, Message: fmt.Sprintf(format, args...)}
}

// ConsumeArg returns the next token. `name` describes the expected value.
func (r *Reader) ConsumeArg(name string) (string, error) {
	if r.Done() {
		return "", r.errorf("unexpected end of arguments, expected <%s>", name)
	}
	arg := r.tokens[r.pos]
	r.pos++
	return arg, nil
}

// ConsumeInt returns the next token parsed as a non-negative integer.
func (r *Reader) ConsumeInt(name string) (int, error) {
	arg, err := r.ConsumeArg(name)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return 0, r.errorf("<%s> must be a non-negative integer, got %q", name, arg)
	}
	return n, nil
}

// ConsumeArgs returns every token up to the next Terminator, which is
// consumed as well.
func (r *Reader) ConsumeArgs(name string) ([]string, error) {
	var args []string
	for {
		arg, err := r.ConsumeArg(name)
		if err != nil {
			return nil, err
		}
		if arg == Terminator {
			return args, nil
		}
		args = append(args, arg)
	}
}

// ConsumeParsed consumes the next token and converts it with `parse`.
func ConsumeParsed[T any](r *Reader, name string, parse func(string) (T, error)) (T, error) {
	var zero T
	arg, err := r.ConsumeArg(name)
	if err != nil {
		return zero, err
	}
	v, err := parse(arg)
	if err != nil {
		return zero, r.errorf("invalid <%s> %q: %v", name, arg, err)
	}
	return v, nil
}
