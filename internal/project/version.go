package project

import "github.com/Masterminds/semver/v3"

// PlatformAtLeast reports whether the project's platform version is major.minor
// or newer. Pre-release suffixes such as -SNAPSHOT are ignored, so 6.10-SNAPSHOT
// counts as 6.10.
func (m *Model) PlatformAtLeast(major, minor uint64) bool {
	if m == nil || m.PlatformVersion == nil {
		return false
	}
	release := semver.New(m.PlatformVersion.Major(), m.PlatformVersion.Minor(), m.PlatformVersion.Patch(), "", "")
	return !release.LessThan(semver.New(major, minor, 0, "", ""))
}
