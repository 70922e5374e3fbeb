// Package docs loads the documentation-site component descriptors: one
// record per showcased component carrying its numeric id, routing slug,
// tags, collection and related components. Descriptors feed the sitemap,
// the structural redirect derivation and the components listing.
package docs
