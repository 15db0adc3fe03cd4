// Package buildinfo reports the netinput build.
//
// The release build stamps the variables with ldflags:
//
//	go build -ldflags "-X github.com/vascnet/netinput/pkg/buildinfo.Version=v0.4.0 \
//	    -X github.com/vascnet/netinput/pkg/buildinfo.Commit=$(git rev-parse --short HEAD) \
//	    -X github.com/vascnet/netinput/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/netinput
//
// Unstamped builds fall back to the module version and VCS revision the Go
// toolchain embeds, when available.
package buildinfo

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

var (
	// Version is the release version, e.g. "v0.4.0".
	Version = "dev"

	// Commit is the short VCS revision.
	Commit = "none"

	// Date is the UTC build time.
	Date = "unknown"
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if Commit == "none" && len(s.Value) >= 7 {
				Commit = s.Value[:7]
			}
		case "vcs.time":
			if Date == "unknown" {
				Date = s.Value
			}
		}
	}
}

// String returns the build information, one field per line.
func String() string {
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s\ngo: %s", Version, Commit, Date, runtime.Version())
}

// Template returns the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (%s, built %s)\n", Version, Commit, Date)
}
