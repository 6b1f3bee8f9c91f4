package config

import (
	"path/filepath"
	"strings"

	"git.home.luguber.info/inful/doccbuilder/internal/backend"
	"git.home.luguber.info/inful/doccbuilder/internal/docc"
	"git.home.luguber.info/inful/doccbuilder/internal/foundation"
	ferrors "git.home.luguber.info/inful/doccbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/doccbuilder/internal/util/sets"
)

// Input names.
const (
	KeyPackagePath                 = "package-path"
	KeyTargets                     = "targets"
	KeyDisableAutomaticCombination = "disable-automatic-combination"
	KeyEnableIndexBuilding         = "enable-index-building"
	KeyTransformForStaticHosting   = "transform-for-static-hosting"
	KeyEnableInheritedDocs         = "enable-inherited-docs"
	KeyPlatform                    = "platform"
	KeyCheckoutPath                = "checkout-path"
	KeySourceService               = "source-service"
	KeySourceServiceBaseURL        = "source-service-base-url"
	KeyFallbackBundleVersion       = "fallback-bundle-version"
	KeyHostingBasePath             = "hosting-base-path"
	KeyOutput                      = "output"
	KeyOtherArguments              = "other-arguments"
	KeyUseXcodebuild               = "use-xcodebuild"
	KeyXcodebuildScheme            = "xcodebuild-scheme"
	KeyXcodebuildDestination       = "xcodebuild-destination"
	KeyXcodebuildArguments         = "xcodebuild-arguments"
	KeyFailOnStdErr                = "fail-on-stderr"
	KeyClean                       = "clean"
	KeyModuleVersion               = "module-version"
	KeySkipInstall                 = "skip-install"
	KeyMetricsFile                 = "metrics-file"
)

var sourceServices = foundation.NewNormalizer(map[string]string{
	"github":    "github",
	"gitlab":    "gitlab",
	"bitbucket": "bitbucket",
})

// LegacyOptions only apply to the multi-stage pipeline.
type LegacyOptions struct {
	Clean         bool
	SkipInstall   bool
	ModuleVersion foundation.Option[string]
}

// RunConfig is the validated configuration of one run.
type RunConfig struct {
	// PackagePath is absolute.
	PackagePath  string
	Options      docc.GenerationOptions
	Request      backend.Request
	FailOnStdErr bool
	Legacy       LegacyOptions
	MetricsFile  foundation.Option[string]
}

// Environment is what normalization needs from the host.
type Environment struct {
	GOOS    string
	WorkDir string
}

// Normalize reads every recognized input and validates it. No external
// process is involved, so all configuration errors surface here.
func Normalize(in *Inputs, env Environment) (*RunConfig, error) {
	n := &normalizer{in: in, env: env}

	cfg := &RunConfig{}
	cfg.PackagePath = n.path(KeyPackagePath, true).UnwrapOr("")

	cfg.Options.EnableIndexBuilding = n.boolean(KeyEnableIndexBuilding, "")
	cfg.Options.TransformForStaticHosting = n.boolean(KeyTransformForStaticHosting, "")
	cfg.Options.EnableInheritedDocs = n.boolean(KeyEnableInheritedDocs, "")
	cfg.Options.Platform = n.text(KeyPlatform)
	cfg.Options.SourceRepository = docc.SourceRepository{
		CheckoutPath: n.path(KeyCheckoutPath, false),
		Service:      n.service(),
	}
	cfg.Options.FallbackBundleVersion = n.text(KeyFallbackBundleVersion)
	cfg.Options.HostingBasePath = n.text(KeyHostingBasePath)
	cfg.Options.OutputPath = n.path(KeyOutput, false)
	cfg.Options.OtherArguments = n.lines(KeyOtherArguments)

	cfg.Request = n.request()
	cfg.FailOnStdErr = n.boolean(KeyFailOnStdErr, "true")

	cfg.Legacy = LegacyOptions{
		Clean:         n.boolean(KeyClean, ""),
		SkipInstall:   n.boolean(KeySkipInstall, ""),
		ModuleVersion: n.text(KeyModuleVersion).Or(cfg.Options.FallbackBundleVersion),
	}
	cfg.MetricsFile = n.path(KeyMetricsFile, false)

	if n.err != nil {
		return nil, n.err
	}
	return cfg, nil
}

// normalizer keeps the first error and turns later reads into no-ops.
type normalizer struct {
	in  *Inputs
	env Environment
	err error
}

func (n *normalizer) fail(err error) {
	if n.err == nil {
		n.err = err
	}
}

// text returns None for missing or blank inputs.
func (n *normalizer) text(name string) foundation.Option[string] {
	if n.err != nil {
		return foundation.None[string]()
	}
	v, err := n.in.Input(name, InputOptions{})
	if err != nil {
		n.fail(err)
		return foundation.None[string]()
	}
	return nonEmpty(v)
}

func (n *normalizer) required(name string) string {
	if n.err != nil {
		return ""
	}
	v, err := n.in.Input(name, InputOptions{Required: true})
	if err != nil {
		n.fail(err)
	}
	return v
}

func (n *normalizer) path(name string, required bool) foundation.Option[string] {
	var raw foundation.Option[string]
	if required {
		raw = nonEmpty(n.required(name))
	} else {
		raw = n.text(name)
	}
	return foundation.MapOption(raw, n.absolute)
}

func (n *normalizer) absolute(p string) string {
	return ResolvePath(n.env.WorkDir, p)
}

// ResolvePath makes p absolute relative to workDir.
func ResolvePath(workDir, p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(workDir, p)
}

func (n *normalizer) boolean(name, def string) bool {
	if n.err != nil {
		return false
	}
	v, err := n.in.BooleanInput(name, InputOptions{Default: def})
	if err != nil {
		n.fail(err)
	}
	return v
}

func (n *normalizer) lines(name string) []string {
	if n.err != nil {
		return nil
	}
	v, err := n.in.MultilineInput(name, InputOptions{})
	if err != nil {
		n.fail(err)
	}
	return v
}

func (n *normalizer) service() foundation.Option[docc.SourceService] {
	kind := n.text(KeySourceService)
	base := n.text(KeySourceServiceBaseURL)
	if n.err != nil {
		return foundation.None[docc.SourceService]()
	}
	if kind.IsNone() && base.IsNone() {
		return foundation.None[docc.SourceService]()
	}
	if kind.IsNone() || base.IsNone() {
		n.fail(ferrors.ConfigError(KeySourceService+" and "+KeySourceServiceBaseURL+" must be set together").
			WithContext(KeySourceService, kind.UnwrapOr("")).
			WithContext(KeySourceServiceBaseURL, base.UnwrapOr("")).
			Build())
		return foundation.None[docc.SourceService]()
	}
	t, err := sourceServices.Normalize(kind.Unwrap())
	if err != nil {
		n.fail(ferrors.WrapError(err, ferrors.CategoryConfig, "unsupported "+KeySourceService).
			WithContext("supported", "github, gitlab, bitbucket").
			Build())
		return foundation.None[docc.SourceService]()
	}
	return foundation.Some(docc.SourceService{Type: t, BaseURL: strings.TrimRight(base.Unwrap(), "/")})
}

func (n *normalizer) request() backend.Request {
	req := backend.Request{
		Targets:            uniqueLines(n.lines(KeyTargets)),
		DisableCombination: n.boolean(KeyDisableAutomaticCombination, ""),
		UseBuildSystem:     n.boolean(KeyUseXcodebuild, ""),
	}
	if n.err != nil || !req.UseBuildSystem {
		return req
	}
	// OS first, then the backend's own inputs.
	if err := backend.CheckBuildSystemPlatform(n.env.GOOS); err != nil {
		n.fail(err)
		return req
	}
	req.Scheme = n.required(KeyXcodebuildScheme)
	req.Destination = n.required(KeyXcodebuildDestination)
	req.ExtraArgs = n.lines(KeyXcodebuildArguments)
	return req
}

// uniqueLines keeps the first occurrence of each entry; nil stays nil.
func uniqueLines(lines []string) []string {
	if len(lines) == 0 {
		return nil
	}
	return sets.NewOrdered(lines...).Items()
}

func nonEmpty(v string) foundation.Option[string] {
	if strings.TrimSpace(v) == "" {
		return foundation.None[string]()
	}
	return foundation.Some(v)
}
