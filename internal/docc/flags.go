package docc

import "strings"

// DocC flag spellings.
const (
	FlagTarget                    = "--target"
	FlagCombinedDocumentation     = "--enable-experimental-combined-documentation"
	FlagDisableIndexing           = "--disable-indexing"
	FlagIndex                     = "--index"
	FlagPlatform                  = "--platform"
	FlagTransformForStaticHosting = "--transform-for-static-hosting"
	FlagEnableInheritedDocs       = "--enable-inherited-docs"
	FlagCheckoutPath              = "--checkout-path"
	FlagSourceService             = "--source-service"
	FlagSourceServiceBaseURL      = "--source-service-base-url"
	FlagFallbackBundleVersion     = "--fallback-bundle-version"
	FlagHostingBasePath           = "--hosting-base-path"
	FlagOutputPath                = "--output-path"
)

// OutputDirSetting carries the output directory when the installed tool does
// not understand FlagOutputPath.
const OutputDirSetting = "DOCC_OUTPUT_DIR"

// OtherFlagsSetting is the xcodebuild build setting forwarded to docc.
const OtherFlagsSetting = "OTHER_DOCC_FLAGS"

// ArgumentVector is the result of one compilation.
type ArgumentVector struct {
	// Flags are command-line tokens in emission order.
	Flags []string
	// Assignments are KEY=VALUE tokens that must travel outside Flags.
	Assignments []string
}

// Compile maps options to DocC flags for a backend with the given
// capabilities. It does not modify opts.
func Compile(opts GenerationOptions, caps Capabilities) ArgumentVector {
	var v ArgumentVector

	switch {
	case !opts.EnableIndexBuilding && caps.PluginGenerator:
		v.Flags = append(v.Flags, FlagDisableIndexing)
	case opts.EnableIndexBuilding && !caps.PluginGenerator:
		v.Flags = append(v.Flags, FlagIndex)
	}

	if p, ok := opts.Platform.Get(); ok {
		v.Flags = append(v.Flags, FlagPlatform, p)
	}
	if opts.TransformForStaticHosting {
		v.Flags = append(v.Flags, FlagTransformForStaticHosting)
	}
	if opts.EnableInheritedDocs {
		v.Flags = append(v.Flags, FlagEnableInheritedDocs)
	}
	if p, ok := opts.SourceRepository.CheckoutPath.Get(); ok {
		v.Flags = append(v.Flags, FlagCheckoutPath, p)
	}
	if s, ok := opts.SourceRepository.Service.Get(); ok {
		v.Flags = append(v.Flags, FlagSourceService, s.Type, FlagSourceServiceBaseURL, s.BaseURL)
	}
	if ver, ok := opts.FallbackBundleVersion.Get(); ok {
		v.Flags = append(v.Flags, FlagFallbackBundleVersion, ver)
	}
	if p, ok := opts.HostingBasePath.Get(); ok {
		v.Flags = append(v.Flags, FlagHostingBasePath, p)
	}
	if out, ok := opts.OutputPath.Get(); ok {
		if caps.SupportsOutputPath {
			v.Flags = append(v.Flags, FlagOutputPath, out)
		} else {
			v.Assignments = append(v.Assignments, OutputDirSetting+"="+out)
		}
	}

	v.Flags = append(v.Flags, opts.OtherArguments...)
	return v
}

// TargetFlags selects targets for the plugin backend. An empty list means all
// targets. Combined documentation is requested whenever the selection is not
// exactly one target, unless disableCombination is set.
func TargetFlags(targets []string, disableCombination bool) []string {
	flags := make([]string, 0, 2*len(targets)+1)
	for _, t := range targets {
		flags = append(flags, FlagTarget, t)
	}
	if len(targets) != 1 && !disableCombination {
		flags = append(flags, FlagCombinedDocumentation)
	}
	return flags
}

// WrapForBuildSystem joins flags into one OTHER_DOCC_FLAGS assignment.
// xcodebuild does not forward arbitrary arguments to its docc step, so the
// flags travel as a single build setting.
func WrapForBuildSystem(flags []string) string {
	return OtherFlagsSetting + "=" + JoinQuoted(flags)
}

// JoinQuoted joins tokens with spaces, double-quoting tokens that contain
// whitespace, quotes or backslashes (escaping backslashes and quotes inside
// them).
func JoinQuoted(tokens []string) string {
	quoted := make([]string, len(tokens))
	for i, t := range tokens {
		if strings.ContainsAny(t, " \t\n\r\v\f\"\\") {
			t = `"` + strings.NewReplacer(`\`, `\\`, `"`, `\"`).Replace(t) + `"`
		}
		quoted[i] = t
	}
	return strings.Join(quoted, " ")
}
