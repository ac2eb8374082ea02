package vnscript

import (
	"io/fs"
	"iter"
	"path/filepath"
	"slices"
)

// scripts returns an iterator over all filepaths under root whose extension is
// one of extensions, recursively and in lexical order. Iteration stops at the
// first error.
//
// A call to scripts like this:
//
//	for file, err := range scripts("story", []string{".vns"}) {
//	    // Loop body
//	}
//
// Is roughly equivalent to the following in bash:
//
//	for file in story/**/*.vns; do { # stuff }; done
func scripts(root string, extensions []string) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		// WalkDir only returns errors from this func, which are all yielded
		_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				yield("", walkErr)
				return fs.SkipAll
			}

			if d.Type().IsRegular() && slices.Contains(extensions, filepath.Ext(d.Name())) {
				if !yield(path, nil) {
					return fs.SkipAll
				}
			}

			return nil
		})
	}
}
