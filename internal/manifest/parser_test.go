package manifest

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validDefinitions = `$schema: https://ui.shadcn.com/schema/registry.json
items:
  - name: animated-tabs
    type: registry:ui
    title: Animated Tabs
    description: Tabs with a sliding indicator
    dependencies:
      - motion
      - lucide-react@^0.468.0
    registryDependencies:
      - avatar-group
    files:
      - path: components/animated-tabs/index.tsx
        type: registry:ui
        target: components/smoothui/animated-tabs.tsx
  - name: avatar-group
    type: registry:ui
    files:
      - path: components/avatar-group/index.tsx
        type: registry:component
  - name: smooth-theme
    type: registry:style
    css:
      "@layer base": ":root { --radius: 0.5rem; }"
`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

func TestLoad_Valid(t *testing.T) {
	path := writeTemp(t, "registry.yaml", validDefinitions)

	defs, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(defs.Items) != 3 {
		t.Fatalf("got %d items, want 3", len(defs.Items))
	}

	wantNames := []string{"animated-tabs", "avatar-group", "smooth-theme"}
	for i, want := range wantNames {
		if defs.Items[i].Name != want {
			t.Errorf("Items[%d].Name = %q, want %q", i, defs.Items[i].Name, want)
		}
	}

	tabs := defs.Items[0]
	if tabs.Type != TypeUI {
		t.Errorf("Type = %q, want %q", tabs.Type, TypeUI)
	}
	if len(tabs.Dependencies) != 2 || tabs.Dependencies[1] != "lucide-react@^0.468.0" {
		t.Errorf("Dependencies = %v", tabs.Dependencies)
	}
	if len(tabs.Files) != 1 || tabs.Files[0].Target != "components/smoothui/animated-tabs.tsx" {
		t.Errorf("Files = %+v", tabs.Files)
	}

	theme := defs.Items[2]
	if theme.CSS["@layer base"] == "" {
		t.Errorf("CSS not parsed: %v", theme.CSS)
	}
}

func TestLoad_JSON(t *testing.T) {
	path := writeTemp(t, "registry.json", `{"items":[{"name":"button","type":"registry:ui","files":[{"path":"button.tsx","type":"registry:ui"}]}]}`)

	defs, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(defs.Items) != 1 || defs.Items[0].Name != "button" {
		t.Errorf("unexpected items: %+v", defs.Items)
	}
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got %v", err)
	}
}

func TestLoad_Invalid(t *testing.T) {
	path := writeTemp(t, "registry.yaml", `items:
  - name: Bad Name
    type: registry:widget
`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("expected validation error")
	}

	var invalid *InvalidError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidError, got %T: %v", err, err)
	}
	if len(invalid.Issues) < 2 {
		t.Errorf("expected issues for name and type, got %+v", invalid.Issues)
	}
	if !strings.Contains(err.Error(), "/items/0/name") {
		t.Errorf("error should mention the offending path: %v", err)
	}
}

func TestParse_MalformedYAML(t *testing.T) {
	_, err := Parse([]byte("items: [unclosed"), "broken.yaml")
	if err == nil {
		t.Fatal("expected parse error")
	}
	if !strings.Contains(err.Error(), "broken.yaml") {
		t.Errorf("error should name the file: %v", err)
	}
}
