package docc

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"git.home.luguber.info/inful/doccbuilder/internal/process"
)

// Capabilities describe the backend that will receive compiled flags.
type Capabilities struct {
	// PluginGenerator is true for swift-docc-plugin, which indexes by default.
	PluginGenerator bool
	// SupportsOutputPath is true when the installed tool accepts --output-path.
	SupportsOutputPath bool
}

// CapabilityProbe answers whether the installed tool accepts a flag.
type CapabilityProbe interface {
	SupportsFlag(ctx context.Context, flag string) (bool, error)
}

// HelpProbe runs a help command once and searches its text for flags.
type HelpProbe struct {
	Runner  process.Runner
	Command process.Command

	once sync.Once
	text string
	err  error
}

// NewHelpProbe creates a probe for cmd.
func NewHelpProbe(runner process.Runner, cmd process.Command) *HelpProbe {
	return &HelpProbe{Runner: runner, Command: cmd}
}

// SupportsFlag reports whether flag appears in the help output.
func (p *HelpProbe) SupportsFlag(ctx context.Context, flag string) (bool, error) {
	p.once.Do(func() {
		p.text, p.err = p.Runner.Run(ctx, p.Command)
		if p.err != nil {
			p.err = fmt.Errorf("probe %s: %w", p.Command.Name, p.err)
		}
	})
	if p.err != nil {
		return false, p.err
	}
	return strings.Contains(p.text, flag), nil
}

// StaticProbe is a fixed lookup table, used where running the tool is not
// wanted.
type StaticProbe map[string]bool

// SupportsFlag returns the table entry for flag.
func (s StaticProbe) SupportsFlag(_ context.Context, flag string) (bool, error) {
	return s[flag], nil
}

// ProbeCapabilities resolves Capabilities for a backend kind.
func ProbeCapabilities(ctx context.Context, probe CapabilityProbe, plugin bool) (Capabilities, error) {
	supports, err := probe.SupportsFlag(ctx, FlagOutputPath)
	if err != nil {
		return Capabilities{}, err
	}
	return Capabilities{PluginGenerator: plugin, SupportsOutputPath: supports}, nil
}
