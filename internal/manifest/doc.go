// Package manifest parses and validates the component definition file
// (registry.yaml) that drives the registry build. Definitions name each
// installable component, its package and registry dependencies, optional
// CSS, and the source files whose contents are inlined at build time.
package manifest
