package docc

import (
	"regexp"

	"golang.org/x/mod/semver"

	ferrors "git.home.luguber.info/inful/doccbuilder/internal/foundation/errors"
)

// MinimumPluginToolchain is the first Swift release with package plugins.
const MinimumPluginToolchain = "5.6"

var swiftVersionRe = regexp.MustCompile(`Swift version (\d+(?:\.\d+){0,2})`)

// ParseSwiftVersion extracts the version from `swift --version` output.
func ParseSwiftVersion(output string) (string, error) {
	m := swiftVersionRe.FindStringSubmatch(output)
	if m == nil {
		return "", ferrors.PlatformError("unable to determine Swift version").
			WithContext("output", output).
			Build()
	}
	return m[1], nil
}

// CheckPluginToolchain fails when version predates package plugins.
func CheckPluginToolchain(version string) error {
	if semver.Compare("v"+version, "v"+MinimumPluginToolchain) < 0 {
		return ferrors.PlatformError("swift-docc-plugin requires Swift "+MinimumPluginToolchain+" or newer, found "+version).
			WithContext("version", version).
			Build()
	}
	return nil
}
