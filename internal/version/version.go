// Package version reports the cellgrid release, read from the VERSION file
// at build time, plus whatever VCS details the Go toolchain stamped into
// the binary.
package version

import (
	_ "embed"
	"fmt"
	"runtime/debug"
	"strings"
)

//go:embed VERSION
var release string

// Get returns the release number from VERSION.
func Get() string {
	return strings.TrimSpace(release)
}

// Info describes the running binary.
type Info struct {
	Release  string
	Revision string
	Modified bool
	Go       string
}

// Read collects Info from the embedded release and the build settings.
func Read() Info {
	info := Info{Release: Get()}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.Go = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Revision = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
	return info
}

// String formats i as "0.1.0 (abc1234-dirty, go1.24.0)", omitting what the
// build did not record.
func (i Info) String() string {
	var extra []string
	if i.Revision != "" {
		rev := i.Revision
		if len(rev) > 7 {
			rev = rev[:7]
		}
		if i.Modified {
			rev += "-dirty"
		}
		extra = append(extra, rev)
	}
	if i.Go != "" {
		extra = append(extra, i.Go)
	}
	if len(extra) == 0 {
		return i.Release
	}
	return fmt.Sprintf("%s (%s)", i.Release, strings.Join(extra, ", "))
}
