// Package manifest models the Swift package description printed by
// `swift package dump-package` and derives the set of documentable targets.
package manifest

import (
	"bytes"
	"encoding/json"

	ferrors "git.home.luguber.info/inful/doccbuilder/internal/foundation/errors"
	"git.home.luguber.info/inful/doccbuilder/internal/util/sets"
)

// Package is the subset of the dump-package JSON doccbuilder needs.
type Package struct {
	Name     string    `json:"name"`
	Products []Product `json:"products"`
	Targets  []Target  `json:"targets"`
}

// Product maps a product name to the targets it vends.
type Product struct {
	Name    string   `json:"name"`
	Targets []string `json:"targets"`
}

// Target is a module declared by the package.
type Target struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// Parse decodes dump-package output. Lines printed before the document
// (resolver chatter) are ignored.
func Parse(data []byte) (*Package, error) {
	var pkg Package
	if err := json.Unmarshal(jsonDocument(data), &pkg); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryManifest, "failed to parse package manifest").Build()
	}
	if pkg.Name == "" {
		return nil, ferrors.ManifestError("package manifest has no name").Build()
	}
	return &pkg, nil
}

// jsonDocument drops resolver output printed ahead of the manifest. The
// document starts at the first line whose first non-blank byte is '{'.
func jsonDocument(data []byte) []byte {
	offset := 0
	for line := range bytes.Lines(data) {
		if trimmed := bytes.TrimLeft(line, " \t"); len(trimmed) > 0 && trimmed[0] == '{' {
			return data[offset:]
		}
		offset += len(line)
	}
	return data
}

// UniqueTargets returns every target referenced by a product, each once, in
// order of first reference.
func (p *Package) UniqueTargets() []string {
	targets := sets.NewOrdered[string]()
	for _, product := range p.Products {
		for _, t := range product.Targets {
			targets.Add(t)
		}
	}
	return targets.Items()
}
