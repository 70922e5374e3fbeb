// Package redirects generates the permanent redirects that move legacy
// component pages from /doc/{slug} to /doc/components/{slug}.
//
// Slugs come either from scanning the raw text of the components metadata
// source (ExtractSlugs) or, preferably, from typed descriptors
// (FromDescriptors).
package redirects

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"regexp"
	"sort"

	"github.com/educlopez/smoothui-sub003/internal/docs"
)

// slugPattern matches `slug: "value"` (or single-quoted) entries. Values
// outside [a-z0-9-] never match and are skipped without a diagnostic.
var slugPattern = regexp.MustCompile(`slug:\s*["']([a-z0-9-]+)["']`)

// Slugs is a set of component slugs.
type Slugs map[string]struct{}

// Add inserts slug into the set.
func (s Slugs) Add(slug string) { s[slug] = struct{}{} }

// Has reports whether slug is in the set.
func (s Slugs) Has(slug string) bool {
	_, ok := s[slug]
	return ok
}

// Sorted returns the slugs in ascending order.
func (s Slugs) Sorted() []string {
	out := make([]string, 0, len(s))
	for slug := range s {
		out = append(out, slug)
	}
	sort.Strings(out)
	return out
}

// Rule is one redirect. Permanent rules are served as HTTP 308.
type Rule struct {
	Source      string `json:"source"`
	Destination string `json:"destination"`
	Permanent   bool   `json:"permanent"`
}

// ExtractSlugs scans the file at path for slug entries. A missing file is
// not an error: it yields an empty set.
func ExtractSlugs(path string) (Slugs, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("Redirect source not found, generating no redirects", "path", path)
		return Slugs{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading redirect source %s: %w", path, err)
	}
	return ScanSlugs(data), nil
}

// ScanSlugs collects every slug entry in text. Duplicates collapse.
func ScanSlugs(text []byte) Slugs {
	slugs := Slugs{}
	for _, m := range slugPattern.FindAllSubmatch(text, -1) {
		slugs.Add(string(m[1]))
	}
	return slugs
}

// FromDescriptors derives the slug set from typed descriptors.
func FromDescriptors(descriptors []docs.Descriptor) Slugs {
	slugs := Slugs{}
	for _, d := range descriptors {
		slugs.Add(d.Slug)
	}
	return slugs
}

// Rules returns one permanent rule per slug, sorted by slug.
func Rules(slugs Slugs) []Rule {
	sorted := slugs.Sorted()
	rules := make([]Rule, 0, len(sorted))
	for _, slug := range sorted {
		rules = append(rules, Rule{
			Source:      "/doc/" + slug,
			Destination: "/doc/components/" + slug,
			Permanent:   true,
		})
	}
	return rules
}

// document is the JSON shape consumed by the hosting platform.
type document struct {
	Redirects []Rule `json:"redirects"`
}

// WriteJSON renders rules as {"redirects": [...]}.
func WriteJSON(w io.Writer, rules []Rule) error {
	if rules == nil {
		rules = []Rule{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(document{Redirects: rules}); err != nil {
		return fmt.Errorf("encoding redirects: %w", err)
	}
	return nil
}
