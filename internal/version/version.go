// Package version provides centralized version information for the spp controller.
// The controller and the control API it talks to are versioned independently; this
// package only tracks the controller side. Versions follow semver conventions.

package version

// SppctlVersion holds the current sppctl controller version.
// Format: major.minor.patch[-prerelease][+build]
const SppctlVersion = "0.1.0-dev"

// UserAgent returns the User-Agent value sent with every control API request.
func UserAgent() string {
	return "sppctl/" + SppctlVersion
}
