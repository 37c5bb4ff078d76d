// Package buildinfo carries values stamped in at link time with -ldflags.
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func String() string {
	return fmt.Sprintf("bangs %s (commit=%s, date=%s)", Version, Commit, Date)
}
