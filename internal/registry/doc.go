// Package registry builds the installable component registry from component
// definitions. It inlines each definition's source files, enforces unique
// item names, writes the registry.json document (plus one document per item)
// consumed by the external installer CLI, checks registry links, and renders
// registryDependencies as a dependency tree.
package registry
