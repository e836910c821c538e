package shine

import "fmt"

// Maj, Min and Fix make up the release number.
const (
	Maj = 0
	Min = 1
	Fix = 0
)

// Suffix is set on untagged builds.
const Suffix = "-dev"

var version = fmt.Sprintf("v%d.%d.%d%s", Maj, Min, Fix, Suffix)

// GitCommit is set by build flags.
var GitCommit = ""

// Version returns the release number, followed by the commit when known.
func Version() string {
	if GitCommit == "" {
		return version
	}
	return version + " " + GitCommit
}
