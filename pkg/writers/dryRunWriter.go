// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package writers

import (
	"bytes"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"sync"
	"time"
)

// DryRunWriter is the functional interface for working
// with dry run writers
type DryRunWriter interface {
	// GetWriter creates a Writer recording files under root
	// instead of writing them. A non empty ext is appended to
	// every file name, like FSWriter.Ext.
	GetWriter(root, ext string) Writer
	// Flush writes the projected file tree to the underlying writer
	Flush() error
}

type dryRunWriter struct {
	out   io.Writer
	mu    sync.Mutex
	files map[string]int
	t1    time.Time
}

type writer struct {
	root    string
	ext     string
	factory *dryRunWriter
}

// NewDryRunWritersFactory creates a factory for Writers recording the
// files they would write. Flush prints the recorded tree to w.
func NewDryRunWritersFactory(w io.Writer) DryRunWriter {
	return &dryRunWriter{
		out:   w,
		files: map[string]int{},
		t1:    time.Now(),
	}
}

func (d *dryRunWriter) GetWriter(root, ext string) Writer {
	return &writer{root: root, ext: ext, factory: d}
}

func (w *writer) Write(name, p string, content []byte) error {
	if name == "" {
		return fmt.Errorf("no file name given for path %s", p)
	}
	if w.ext != "" {
		name = name + "." + w.ext
	}
	key := path.Join(w.root, p, name)
	w.factory.mu.Lock()
	defer w.factory.mu.Unlock()
	w.factory.files[key] = len(content)
	return nil
}

// Flush formats and writes the dry-run result to the
// underlying writer
func (d *dryRunWriter) Flush() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	var b bytes.Buffer
	format(d.files, &b)
	fmt.Fprintf(&b, "\nBuild finished in %f seconds\n", time.Since(d.t1).Seconds())
	_, err := d.out.Write(b.Bytes())
	return err
}

// format prints the files as an indented tree, directories first
// appearing where their first file is listed
func format(files map[string]int, b *bytes.Buffer) {
	paths := make([]string, 0, len(files))
	for p := range files {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	seen := map[string]bool{}
	for _, p := range paths {
		segments := strings.Split(strings.Trim(p, "/"), "/")
		for i, s := range segments {
			prefix := strings.Join(segments[:i+1], "/")
			if seen[prefix] {
				continue
			}
			seen[prefix] = true
			b.WriteString(strings.Repeat("  ", i))
			if i == len(segments)-1 {
				fmt.Fprintf(b, "%s (%d bytes)\n", s, files[p])
				continue
			}
			b.WriteString(s + "\n")
		}
	}
}
