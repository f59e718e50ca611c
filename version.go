package custody

import "fmt"

// Release of this module. Suffix is empty only for tagged releases.
const (
	Maj    = 0
	Min    = 1
	Fix    = 0
	Suffix = "-dev"
)

// GitCommit is set with -ldflags at build time.
var GitCommit = ""

// Version returns the release, followed by the commit when it is known.
func Version() string {
	v := fmt.Sprintf("v%d.%d.%d%s", Maj, Min, Fix, Suffix)
	if GitCommit == "" {
		return v
	}
	return v + " " + GitCommit
}
