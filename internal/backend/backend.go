package backend

import (
	"fmt"

	ferrors "git.home.luguber.info/inful/doccbuilder/internal/foundation/errors"
)

// Kind names a backend in logs and metrics.
type Kind string

const (
	KindPlugin      Kind = "swift-docc-plugin"
	KindBuildSystem Kind = "xcodebuild"
)

// BuildSystemOS is the only operating system with xcodebuild.
const BuildSystemOS = "darwin"

var supportedOS = []string{"darwin", "linux"}

// Request is the unvalidated backend choice read from configuration.
type Request struct {
	UseBuildSystem bool

	// Plugin path.
	Targets            []string
	DisableCombination bool

	// Build-system path.
	Scheme      string
	Destination string
	ExtraArgs   []string
}

// Backend is either Plugin or BuildSystem.
type Backend interface {
	Kind() Kind
	sealed()
}

// Plugin generates documentation with `swift package generate-documentation`.
type Plugin struct {
	// Targets is empty when every target should be documented.
	Targets            []string
	DisableCombination bool
}

// BuildSystem generates documentation with `xcodebuild docbuild`.
type BuildSystem struct {
	Scheme      string
	Destination string
	ExtraArgs   []string
}

func (Plugin) Kind() Kind      { return KindPlugin }
func (BuildSystem) Kind() Kind { return KindBuildSystem }
func (Plugin) sealed()         {}
func (BuildSystem) sealed()    {}

// CheckPlatform fails on operating systems without a supported Swift
// toolchain.
func CheckPlatform(goos string) error {
	for _, s := range supportedOS {
		if goos == s {
			return nil
		}
	}
	return ferrors.PlatformError("doccbuilder currently only supports macOS and Linux").
		WithContext("os", goos).
		Fatal().
		Build()
}

// CheckBuildSystemPlatform fails unless goos provides xcodebuild.
func CheckBuildSystemPlatform(goos string) error {
	if goos == BuildSystemOS {
		return nil
	}
	return ferrors.ConfigError(fmt.Sprintf("use-xcodebuild requires macOS, but this run is on %s", goos)).
		WithContext("os", goos).
		Build()
}

// Select validates req for goos and returns the chosen backend.
func Select(goos string, req Request) (Backend, error) {
	if err := CheckPlatform(goos); err != nil {
		return nil, err
	}
	if !req.UseBuildSystem {
		return Plugin{Targets: req.Targets, DisableCombination: req.DisableCombination}, nil
	}
	if err := CheckBuildSystemPlatform(goos); err != nil {
		return nil, err
	}
	if req.Scheme == "" {
		return nil, ferrors.ConfigError("Input required and not supplied: xcodebuild-scheme").Build()
	}
	if req.Destination == "" {
		return nil, ferrors.ConfigError("Input required and not supplied: xcodebuild-destination").Build()
	}
	return BuildSystem{Scheme: req.Scheme, Destination: req.Destination, ExtraArgs: req.ExtraArgs}, nil
}
