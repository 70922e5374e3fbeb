// Package scaffold generates new SmoothUI components from embedded templates.
// It powers the "smoothui new" command, writing the source stub for a
// component or style preset and rendering the definition snippet to add to
// registry.yaml.
package scaffold
