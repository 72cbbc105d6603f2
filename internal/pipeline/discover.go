package pipeline

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/pkg/errors"

	"github.com/backmassage/photoreducer/internal/config"
)

// Accepted JPEG suffixes. Matching is case-sensitive: ".Jpg" is not listed
// and is therefore not a candidate.
var jpegExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".JPG":  true,
	".JPEG": true,
}

// IsCandidate reports whether name carries an accepted JPEG suffix.
func IsCandidate(name string) bool {
	return jpegExtensions[filepath.Ext(name)]
}

// PathNotFoundError reports a root folder that is missing or not a directory.
// It is raised before any worker is started.
type PathNotFoundError struct {
	Path string
	Err  error
}

func (e *PathNotFoundError) Error() string {
	return fmt.Sprintf("folder not found: %s (%v)", e.Path, e.Err)
}

func (e *PathNotFoundError) Unwrap() error { return e.Err }

// Entry is one listed filesystem entry.
type Entry struct {
	Name  string // base name, or path relative to the root in recursive mode
	Path  string
	Size  int64
	IsDir bool
}

// Selection is the File Selector's output. Accepted holds unique candidate
// paths in processing order; Skipped holds everything else that was listed.
type Selection struct {
	Root     string
	Mode     config.DiscoveryMode
	Entries  []Entry // every listed entry, in listing order
	Accepted []string
	Skipped  []Entry
}

// Select lists root according to mode and splits entries into candidates
// and skipped entries.
func Select(root string, mode config.DiscoveryMode) (*Selection, error) {
	fi, err := os.Stat(root)
	if err != nil {
		return nil, &PathNotFoundError{Path: root, Err: err}
	}
	if !fi.IsDir() {
		return nil, &PathNotFoundError{Path: root, Err: errors.New("not a directory")}
	}

	sel := &Selection{Root: root, Mode: mode}
	if mode == config.DiscoveryRecursive {
		err = sel.walk()
	} else {
		err = sel.list()
	}
	if err != nil {
		return nil, err
	}
	return sel, nil
}

// list performs the one-level listing. os.ReadDir returns entries sorted by
// file name.
func (s *Selection) list() error {
	dirEntries, err := os.ReadDir(s.Root)
	if err != nil {
		return errors.Wrapf(err, "list %s", s.Root)
	}
	for _, d := range dirEntries {
		e := Entry{Name: d.Name(), Path: filepath.Join(s.Root, d.Name()), IsDir: d.IsDir()}
		if info, err := d.Info(); err == nil && !e.IsDir {
			e.Size = info.Size()
		}
		s.add(e)
	}
	return nil
}

// walk visits the whole tree. Symlinked directories are listed as files and
// not followed, which keeps every accepted path unique.
func (s *Selection) walk() error {
	err := filepath.WalkDir(s.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, relErr := filepath.Rel(s.Root, path)
		if relErr != nil {
			rel = path
		}
		e := Entry{Name: filepath.ToSlash(rel), Path: path}
		if info, err := d.Info(); err == nil {
			e.Size = info.Size()
		}
		s.add(e)
		return nil
	})
	if err != nil {
		return errors.Wrapf(err, "walk %s", s.Root)
	}
	sort.Strings(s.Accepted)
	return nil
}

func (s *Selection) add(e Entry) {
	s.Entries = append(s.Entries, e)
	if e.IsDir || !IsCandidate(e.Name) {
		s.Skipped = append(s.Skipped, e)
		return
	}
	s.Accepted = append(s.Accepted, e.Path)
}
