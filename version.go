package gocarousel

import "fmt"

// Version information for the GoCarousel library.
const (
	VersionMajor = 0
	VersionMinor = 3
	VersionPatch = 0
)

// Version is the full version string of the GoCarousel library.
var Version = fmt.Sprintf("%d.%d.%d", VersionMajor, VersionMinor, VersionPatch)
