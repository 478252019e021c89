package edam

import (
	"path"
	"strings"
)

// forceSlashPath rewrites any backslash separators to forward slashes,
// independent of platform. Generated Makefiles and TCL scripts always use
// forward slashes, even for paths authored on Windows.
func forceSlashPath(p string) string {
	return strings.ReplaceAll(p, `\`, "/")
}

// FilesetFiles partitions the design's file list into source files and
// include directories, both in declaration order. Files marked as include
// files contribute their directory to the include list (de-duplicated, first
// occurrence wins) and do not appear among the sources. With forceSlash set,
// all returned paths use forward slashes regardless of platform.
func (d *Design) FilesetFiles(forceSlash bool) ([]FileRef, []string) {
	var files []FileRef
	var incdirs []string
	seen := make(map[string]struct{})

	for _, f := range d.Files {
		name := f.Name
		if forceSlash {
			name = forceSlashPath(name)
		}

		if f.IsIncludeFile {
			dir := path.Dir(name)
			if _, ok := seen[dir]; !ok {
				seen[dir] = struct{}{}
				incdirs = append(incdirs, dir)
			}
			continue
		}

		f.Name = name
		files = append(files, f)
	}
	return files, incdirs
}
