package backend

import (
	"git.home.luguber.info/inful/doccbuilder/internal/docc"
	"git.home.luguber.info/inful/doccbuilder/internal/process"
)

// Tool names.
const (
	SwiftTool      = "swift"
	XcodebuildTool = "xcodebuild"
	XcrunTool      = "xcrun"
)

// HelpCommand prints the help text of the docc front end used by b.
func HelpCommand(b Backend, dir string) process.Command {
	switch b.(type) {
	case BuildSystem:
		return process.Command{Name: XcrunTool, Args: []string{"docc", "convert", "--help"}, Dir: dir, Policy: process.Relaxed}
	default:
		return process.Command{Name: SwiftTool, Args: []string{"package", "generate-documentation", "--help"}, Dir: dir, Policy: process.Relaxed}
	}
}

// NewProbe returns a help-text capability probe for b.
func NewProbe(runner process.Runner, b Backend, dir string) *docc.HelpProbe {
	return docc.NewHelpProbe(runner, HelpCommand(b, dir))
}

// VersionCommand prints the Swift toolchain version.
func VersionCommand(dir string) process.Command {
	return process.Command{Name: SwiftTool, Args: []string{"--version"}, Dir: dir, Policy: process.Relaxed}
}

// Plan builds the documentation command for b. caps.PluginGenerator is
// derived from b.
func Plan(b Backend, dir string, opts docc.GenerationOptions, caps docc.Capabilities, policy process.Policy) process.Command {
	caps.PluginGenerator = b.Kind() == KindPlugin
	v := docc.Compile(opts, caps)

	switch b := b.(type) {
	case BuildSystem:
		args := []string{"docbuild", "-scheme", b.Scheme, "-destination", b.Destination}
		args = append(args, b.ExtraArgs...)
		args = append(args, docc.WrapForBuildSystem(v.Flags))
		args = append(args, v.Assignments...)
		return process.Command{Name: XcodebuildTool, Args: args, Dir: dir, Policy: policy}
	case Plugin:
		args := []string{"package"}
		// The plugin sandbox only allows writes inside the package.
		if out, ok := opts.OutputPath.Get(); ok {
			args = append(args, "--allow-writing-to-directory", out)
		}
		args = append(args, "generate-documentation")
		args = append(args, docc.TargetFlags(b.Targets, b.DisableCombination)...)
		args = append(args, v.Flags...)
		return process.Command{Name: SwiftTool, Args: args, Dir: dir, Env: v.Assignments, Policy: policy}
	default:
		panic("backend: unknown backend")
	}
}
