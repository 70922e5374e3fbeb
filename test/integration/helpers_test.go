//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// siteEnv holds paths of an isolated site checkout.
type siteEnv struct {
	Root        string // contains registry.yaml, components.yaml and sources
	Definitions string // registry.yaml
	Descriptors string // components.yaml
	PublicDir   string // build output root
}

// setupSite creates a synthetic site with three components where
// animated-tabs depends on magnetic-button and a style preset.
func setupSite(t *testing.T) *siteEnv {
	t.Helper()

	root := t.TempDir()
	env := &siteEnv{
		Root:        root,
		Definitions: filepath.Join(root, "registry.yaml"),
		Descriptors: filepath.Join(root, "components.yaml"),
		PublicDir:   filepath.Join(root, "public"),
	}
	t.Setenv("SMOOTHUI_HOME", filepath.Join(root, ".smoothui"))

	writeFile(t, env.Definitions, `$schema: ./registry.schema.json
items:
  - name: smooth-theme
    type: registry:style
    title: Smooth Theme
    files:
      - path: styles/smooth-theme.css
        type: registry:style
    css:
      ":root": "--smooth-radius: 0.75rem;"
  - name: magnetic-button
    type: registry:ui
    title: Magnetic Button
    description: A button that follows the cursor
    dependencies:
      - motion@^11.0.0
    registryDependencies:
      - smooth-theme
    files:
      - path: components/magnetic-button/index.tsx
        type: registry:ui
        target: components/smoothui/ui/MagneticButton.tsx
  - name: animated-tabs
    type: registry:ui
    title: Animated Tabs
    dependencies:
      - motion
      - clsx@2.1.1
    registryDependencies:
      - magnetic-button
      - smooth-theme
    files:
      - path: components/animated-tabs/index.tsx
        type: registry:ui
      - path: components/animated-tabs/use-tabs.ts
        type: registry:hook
`)
	writeFile(t, filepath.Join(root, "styles/smooth-theme.css"), ":root { --smooth-radius: 0.75rem; }\n")
	writeFile(t, filepath.Join(root, "components/magnetic-button/index.tsx"), "export default function MagneticButton() { return <button /> }\n")
	writeFile(t, filepath.Join(root, "components/animated-tabs/index.tsx"), "export default function AnimatedTabs() { return <div role=\"tablist\" /> }\n")
	writeFile(t, filepath.Join(root, "components/animated-tabs/use-tabs.ts"), "export function useTabs() {}\n")

	writeFile(t, env.Descriptors, `components:
  - id: 1
    slug: "magnetic-button"
    title: Magnetic Button
    tags: [button, motion]
    collection: basic
  - id: 2
    slug: 'animated-tabs'
    title: Animated Tabs
    tags: [navigation]
    collection: blocks
    relatedComponents: [magnetic-button]
`)

	return env
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
