// Package discover finds SVG files below an input directory.
package discover

import (
	"io/fs"
	"iter"
	"os"
	"path/filepath"
)

// Extension is the file extension matched by discovery. The comparison is case-sensitive.
const Extension = ".svg"

// SVGFiles returns a lazy, single-pass sequence of the SVG files under root.
// Without recursive only the direct children of root are considered.
// Entries are yielded in the order the directory listing produces them, and
// each is confirmed to be a regular file (symlinks are followed), so
// directories whose name ends in .svg are never yielded.
//
// A non-nil error is yielded for entries that cannot be listed; the consumer
// decides whether to continue. Breaking out of the loop stops the walk.
func SVGFiles(root string, recursive bool) iter.Seq2[string, error] {
	if recursive {
		return walkTree(root)
	}
	return listDir(root)
}

func listDir(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		entries, err := os.ReadDir(root)
		if err != nil {
			yield("", err)
			return
		}
		for _, entry := range entries {
			path := filepath.Join(root, entry.Name())
			if !matches(path) {
				continue
			}
			if !yield(path, nil) {
				return
			}
		}
	}
}

func walkTree(root string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error { //nolint:errcheck // Errors are forwarded to the consumer
			if err != nil {
				if !yield(path, err) {
					return filepath.SkipAll
				}
				if d != nil && d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !matches(path) {
				return nil
			}
			if !yield(path, nil) {
				return filepath.SkipAll
			}
			return nil
		})
	}
}

// matches reports whether path has the SVG extension and is a regular file.
func matches(path string) bool {
	if filepath.Ext(path) != Extension {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
