// Package buildinfo holds the cgraph2dot release stamp.
//
// Release builds stamp the three variables with the linker:
//
//	go build -ldflags "-X github.com/matzehuels/cgraph2dot/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/cgraph2dot/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/matzehuels/cgraph2dot/pkg/buildinfo.Date=$(date -u +%Y-%m-%d)" ./cmd/cgraph2dot
//
// Unstamped builds report "dev".
package buildinfo

import "fmt"

// Stamped by the linker.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Generator names the tool and version that produced an artifact, for
// example "cgraph2dot v0.3.0".
func Generator() string {
	return "cgraph2dot " + Version
}

// Template is the cobra version template printed by --version.
func Template() string {
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", Version, Commit, Date)
}
