package docc

import "git.home.luguber.info/inful/doccbuilder/internal/foundation"

// SourceService links generated pages to a hosted source browser. Type and
// BaseURL only exist together.
type SourceService struct {
	Type    string
	BaseURL string
}

// SourceRepository describes where documented sources live.
type SourceRepository struct {
	CheckoutPath foundation.Option[string]
	Service      foundation.Option[SourceService]
}

// GenerationOptions is the canonical per-run documentation configuration.
// Optional fields are never empty strings; absence is foundation.None.
type GenerationOptions struct {
	EnableIndexBuilding       bool
	TransformForStaticHosting bool
	EnableInheritedDocs       bool

	Platform              foundation.Option[string]
	SourceRepository      SourceRepository
	FallbackBundleVersion foundation.Option[string]
	HostingBasePath       foundation.Option[string]
	// OutputPath is absolute when present.
	OutputPath foundation.Option[string]

	OtherArguments []string
}
