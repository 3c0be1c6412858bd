package core

// Platform identifies the automation backend family a driver speaks to.
type Platform string

// Supported platforms.
const (
	PlatformWeb     Platform = "web"
	PlatformIOS     Platform = "ios"
	PlatformAndroid Platform = "android"
	PlatformMacOS   Platform = "macos"
	PlatformWindows Platform = "windows"
	PlatformLinux   Platform = "linux"

	// PlatformAuto acts as a wildcard in device filters.
	PlatformAuto Platform = "auto"
)

// Valid returns true for a known concrete platform (not the wildcard).
func (p Platform) Valid() bool {
	switch p {
	case PlatformWeb, PlatformIOS, PlatformAndroid, PlatformMacOS, PlatformWindows, PlatformLinux:
		return true
	default:
		return false
	}
}

// Matches reports whether p accepts the candidate platform.
// The auto wildcard and the empty platform match everything.
func (p Platform) Matches(other Platform) bool {
	if p == PlatformAuto || p == "" {
		return true
	}
	return p == other
}
