// SPDX-FileCopyrightText: 2025 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package tests

import (
	"flag"
	"os"
	"path/filepath"
	"strconv"

	"k8s.io/klog/v2"
)

func init() {
	if flag.Lookup("v") == nil {
		klog.InitFlags(nil)
	}
}

// SetKlogV sets the logging flags when unit tests are run
func SetKlogV(level int) {
	l := strconv.Itoa(level)
	if f := flag.Lookup("v"); f != nil {
		_ = f.Value.Set(l)
	}
	if f := flag.Lookup("logtostderr"); f != nil {
		_ = f.Value.Set("true")
	}
}

// WriteFiles creates the files under root, keyed by slash separated
// relative path, creating parent directories as needed
func WriteFiles(root string, files map[string]string) error {
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), os.ModePerm); err != nil {
			return err
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			return err
		}
	}
	return nil
}
