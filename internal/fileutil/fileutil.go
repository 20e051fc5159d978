// Package fileutil holds the file modes used when writing generated output.
package fileutil

import "os"

// ReadableByAll is the file permission mode for generated R sources, which are
// read by R CMD build and other users.
const ReadableByAll os.FileMode = 0o644

// DirReadableByAll is the permission mode for created output directories.
const DirReadableByAll os.FileMode = 0o755
