// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Symlink is a link found while walking an input directory.
type Symlink struct {
	path string
}

type SymlinkAllowOpts struct {
	AllowAll        bool
	AllowedDstPaths []string
}

// IsAllowed resolves the link and checks that it points inside one of the allowed paths.
func (s Symlink) IsAllowed(opts SymlinkAllowOpts) error {
	if opts.AllowAll {
		return nil
	}

	dstPath, err := filepath.EvalSymlinks(s.path)
	if err != nil {
		return fmt.Errorf("Resolving symlink '%s': %s", s.path, err)
	}

	for _, allowedDstPath := range opts.AllowedDstPaths {
		within, err := isWithin(dstPath, allowedDstPath)
		if err != nil {
			return err
		}
		if within {
			return nil
		}
	}

	return fmt.Errorf("Expected symlink file '%s' -> '%s' to be allowed (use --allow-symlink-destination), but was not", s.path, dstPath)
}

func isWithin(path, dir string) (bool, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return false, fmt.Errorf("Abs path '%s': %s", path, err)
	}
	absDir, err := filepath.Abs(dir)
	if err != nil {
		return false, fmt.Errorf("Abs path '%s': %s", dir, err)
	}
	if resolvedDir, err := filepath.EvalSymlinks(absDir); err == nil {
		absDir = resolvedDir
	}

	rel, err := filepath.Rel(absDir, absPath)
	if err != nil {
		return false, nil
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)), nil
}
