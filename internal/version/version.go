// Package version carries build information set with -ldflags.
package version

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Full describes the build of the named binary.
func Full(name string) string {
	return fmt.Sprintf("%s %s, commit %s, built at %s", name, Version, Commit, Date)
}
