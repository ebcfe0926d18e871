// Copyright 2024 The Carvel Authors.
// SPDX-License-Identifier: Apache-2.0

package files

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

var (
	templateExts   = []string{".html", ".htm", ".tpl"}
	dataValuesExts = []string{".yml", ".yaml", ".toml", ".json"}
	outputExt      = ".html"
)

type Type int

const (
	TypeUnknown Type = iota
	TypeTemplate
	TypeDataValues
)

func (t Type) String() string {
	switch t {
	case TypeTemplate:
		return "template"
	case TypeDataValues:
		return "data values"
	default:
		return "unknown"
	}
}

type File struct {
	src      Source
	relPath  string
	explicit bool
}

// NewSortedFilesFromPaths expands paths into files. Directories require
// recursive and are walked in lexical order; symlinks found while walking
// must point into one of opts.AllowedDstPaths.
func NewSortedFilesFromPaths(paths []string, recursive bool, opts SymlinkAllowOpts) ([]*File, error) {
	var files []*File

	for _, path := range paths {
		switch {
		case path == "-":
			file, err := NewFileFromSource(NewStdinSource())
			if err != nil {
				return nil, err
			}
			file.explicit = true
			files = append(files, file)

		case strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://"):
			file, err := NewFileFromSource(NewCachedSource(NewHTTPSource(path)))
			if err != nil {
				return nil, err
			}
			file.explicit = true
			files = append(files, file)

		default:
			fileInfo, err := os.Stat(path)
			if err != nil {
				return nil, fmt.Errorf("Checking file '%s': %s", path, err)
			}

			if !fileInfo.IsDir() {
				file, err := NewFileFromSource(NewLocalSource(path, ""))
				if err != nil {
					return nil, err
				}
				file.explicit = true
				files = append(files, file)
				continue
			}

			if !recursive {
				return nil, fmt.Errorf("Expected file '%s' to not be a directory (use -R to include directories)", path)
			}

			dirFiles, err := newFilesFromDir(path, opts)
			if err != nil {
				return nil, err
			}
			files = append(files, dirFiles...)
		}
	}

	return files, nil
}

func newFilesFromDir(dir string, opts SymlinkAllowOpts) ([]*File, error) {
	var selectedPaths []string

	err := filepath.Walk(dir, func(walkedPath string, fi os.FileInfo, err error) error {
		if err != nil || fi.IsDir() {
			return err
		}
		if fi.Mode()&os.ModeSymlink != 0 {
			err := Symlink{walkedPath}.IsAllowed(opts)
			if err != nil {
				return err
			}
		}
		selectedPaths = append(selectedPaths, walkedPath)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("Listing files '%s': %s", dir, err)
	}

	sort.Strings(selectedPaths)

	var files []*File

	for _, selectedPath := range selectedPaths {
		file, err := NewFileFromSource(NewLocalSource(selectedPath, dir))
		if err != nil {
			return nil, err
		}
		files = append(files, file)
	}

	return files, nil
}

func NewFileFromSource(fileSrc Source) (*File, error) {
	relPath, err := fileSrc.RelativePath()
	if err != nil {
		return nil, fmt.Errorf("Calculating relative path for '%s': %s", fileSrc.Description(), err)
	}
	return &File{src: fileSrc, relPath: filepath.ToSlash(relPath)}, nil
}

func MustNewFileFromSource(fileSrc Source) *File {
	file, err := NewFileFromSource(fileSrc)
	if err != nil {
		panic(err)
	}
	return file
}

func (r *File) Description() string    { return r.src.Description() }
func (r *File) RelativePath() string   { return r.relPath }
func (r *File) Bytes() ([]byte, error) { return r.src.Bytes() }

func (r *File) Type() Type {
	switch {
	case r.matchesExt(templateExts):
		return TypeTemplate
	case r.matchesExt(dataValuesExts):
		return TypeDataValues
	default:
		return TypeUnknown
	}
}

// IsTemplate reports whether the file should be rendered. Files named
// explicitly on the command line are templates unless they hold data values.
func (r *File) IsTemplate() bool {
	switch r.Type() {
	case TypeTemplate:
		return true
	case TypeDataValues:
		return false
	default:
		return r.explicit
	}
}

// OutputRelativePath is where the rendered page goes inside an output directory.
func (r *File) OutputRelativePath() string {
	ext := filepath.Ext(r.relPath)
	return strings.TrimSuffix(r.relPath, ext) + outputExt
}

func (r *File) matchesExt(exts []string) bool {
	ext := strings.ToLower(filepath.Ext(r.relPath))
	for _, candidate := range exts {
		if ext == candidate {
			return true
		}
	}
	return false
}
