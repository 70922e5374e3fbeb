package docs

import "strings"

// Query holds the AND-combined filters used by Filter. Empty fields match
// everything.
type Query struct {
	Text       string   // substring of slug, title or description
	Tags       []string // matches if any tag matches
	Collection string   // exact, case-insensitive
}

// Filter returns the descriptors matching q, preserving input order.
func Filter(descriptors []Descriptor, q Query) []Descriptor {
	var out []Descriptor
	for _, d := range descriptors {
		if Matches(d, q) {
			out = append(out, d)
		}
	}
	return out
}

// Matches reports whether d satisfies every non-empty filter in q.
func Matches(d Descriptor, q Query) bool {
	if q.Collection != "" && !strings.EqualFold(d.Collection, q.Collection) {
		return false
	}

	if len(q.Tags) > 0 && !matchesAnyTag(d.Tags, q.Tags) {
		return false
	}

	if q.Text != "" {
		needle := strings.ToLower(q.Text)
		if !strings.Contains(strings.ToLower(d.Slug), needle) &&
			!strings.Contains(strings.ToLower(d.Title), needle) &&
			!strings.Contains(strings.ToLower(d.Description), needle) {
			return false
		}
	}

	return true
}

// matchesAnyTag returns true if any of the descriptor's tags match any of the
// filter tags. Comparison is case-insensitive.
func matchesAnyTag(tags []string, filter []string) bool {
	for _, ft := range filter {
		for _, t := range tags {
			if strings.EqualFold(t, ft) {
				return true
			}
		}
	}
	return false
}

// ParseTags splits a comma-separated tag list, dropping blanks.
func ParseTags(s string) []string {
	var tags []string
	for _, t := range strings.Split(s, ",") {
		if tag := strings.TrimSpace(t); tag != "" {
			tags = append(tags, tag)
		}
	}
	return tags
}
