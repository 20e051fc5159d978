package rbindgen

import "fmt"

var (
	// version is set via ldflags during release builds.
	// Development builds report "dev".
	version = "dev"

	// commit is the short git hash of the build, set via ldflags.
	commit = "unknown"
)

// Version returns the compiled version or 'dev' if run from source
func Version() string {
	return version
}

// Commit returns the git commit the binary was built from, or "unknown".
func Commit() string {
	return commit
}

// UserAgent returns the User-Agent string used when fetching schemas over HTTP
func UserAgent() string {
	return fmt.Sprintf("rbindgen/%s", version)
}
