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
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
	"golang.org/x/sync/errgroup"
)

const compressedSuffix = ".xz"

var xzMagic = []byte{0xFD, '7', 'z', 'X', 'Z', 0x00}

// Writer writes consolidation maps to disk.
type Writer struct {
	Format Format
	// Compress every map with xz. Paths ending in ".xz" are always
	// compressed.
	Compress bool
	// MaxParallel limits the number of maps written at once. Values below 1
	// mean no limit.
	MaxParallel int
}

// WriteAll writes every map of `maps` to its output path concurrently. The
// first error cancels the remaining writes.
func (w *Writer) WriteAll(ctx context.Context, maps Maps) error {
	g, ctx := errgroup.WithContext(ctx)
	if w.MaxParallel > 0 {
		g.SetLimit(w.MaxParallel)
	}
	for path, entries := range maps.All() {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := w.write(path, entries); err != nil {
				return fmt.Errorf("writing consolidation map %q: %w", path, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (w *Writer) write(path string, entries []Entry) (err error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	out := bufio.NewWriter(f)
	if !w.Compress && !strings.HasSuffix(path, compressedSuffix) {
		if err := w.Format.encode(out, entries); err != nil {
			return err
		}
		return out.Flush()
	}

	xzw, err := xz.NewWriter(out)
	if err != nil {
		return err
	}
	if err := w.Format.encode(xzw, entries); err != nil {
		return err
	}
	if err := xzw.Close(); err != nil {
		return err
	}
	return out.Flush()
}

// Read decodes the map at `path`. Compressed maps are detected by their xz
// header.
func Read(path string, format Format) ([]Entry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	entries, err := decode(bufio.NewReader(f), format)
	if err != nil {
		return nil, fmt.Errorf("reading consolidation map %q: %w", path, err)
	}
	return entries, nil
}

func decode(r *bufio.Reader, format Format) ([]Entry, error) {
	header, err := r.Peek(len(xzMagic))
	if err != nil && err != io.EOF {
		return nil, err
	}
	if !bytes.Equal(header, xzMagic) {
		return format.decode(r)
	}

	xzr, err := xz.NewReader(r)
	if err != nil {
		return nil, err
	}
	return format.decode(xzr)
}
