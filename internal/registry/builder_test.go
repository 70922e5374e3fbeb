package registry

import (
	"bytes"
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/educlopez/smoothui-sub003/internal/manifest"
)

func testFiles() fstest.MapFS {
	return fstest.MapFS{
		"components/animated-tabs/index.tsx":   {Data: []byte("export function AnimatedTabs() { return <div /> }\n")},
		"components/avatar-group/index.tsx":    {Data: []byte("export function AvatarGroup() {}\n")},
		"components/progress-bar/index.tsx":    {Data: []byte("export const ProgressBar = () => null\n")},
		"components/progress-bar/use-value.ts": {Data: []byte("export function useValue() {}\n")},
	}
}

func testDefinitions() []manifest.Definition {
	return []manifest.Definition{
		{
			Name:                 "animated-tabs",
			Type:                 manifest.TypeUI,
			Title:                "Animated Tabs",
			Dependencies:         []string{"motion"},
			RegistryDependencies: []string{"avatar-group"},
			Files: []manifest.FileDefinition{
				{Path: "components/animated-tabs/index.tsx", Type: manifest.FileTypeUI, Target: "components/smoothui/animated-tabs.tsx"},
			},
		},
		{
			Name: "avatar-group",
			Type: manifest.TypeUI,
			Files: []manifest.FileDefinition{
				{Path: "components/avatar-group/index.tsx", Type: manifest.FileTypeUI},
			},
		},
		{
			Name: "progress-bar",
			Type: manifest.TypeUI,
			Files: []manifest.FileDefinition{
				{Path: "components/progress-bar/index.tsx", Type: manifest.FileTypeUI},
				{Path: "components/progress-bar/use-value.ts", Type: manifest.FileTypeHook},
			},
		},
		{
			Name: "smooth-theme",
			Type: manifest.TypeStyle,
			CSS:  map[string]string{"@layer base": ":root { --radius: 0.5rem; }"},
		},
	}
}

func TestBuild_PreservesOrderAndCardinality(t *testing.T) {
	defs := testDefinitions()

	reg, err := Build(defs, FSReader(testFiles()), WithName("smoothui"), WithHomepage("https://smoothui.dev"))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if len(reg.Items) != len(defs) {
		t.Fatalf("got %d items, want %d", len(reg.Items), len(defs))
	}
	for i, def := range defs {
		if reg.Items[i].Name != def.Name {
			t.Errorf("Items[%d].Name = %q, want %q", i, reg.Items[i].Name, def.Name)
		}
	}
	if reg.Name != "smoothui" || reg.Homepage != "https://smoothui.dev" {
		t.Errorf("name/homepage = %q/%q", reg.Name, reg.Homepage)
	}
	if reg.Schema != RegistrySchemaURL {
		t.Errorf("Schema = %q", reg.Schema)
	}
}

func TestBuild_InlinesFileContents(t *testing.T) {
	reg, err := Build(testDefinitions(), FSReader(testFiles()))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	tabs, ok := reg.Lookup("animated-tabs")
	if !ok {
		t.Fatal("animated-tabs missing")
	}
	if len(tabs.Files) != 1 {
		t.Fatalf("got %d files, want 1", len(tabs.Files))
	}
	f := tabs.Files[0]
	if f.Content != "export function AnimatedTabs() { return <div /> }\n" {
		t.Errorf("Content = %q", f.Content)
	}
	if f.Target != "components/smoothui/animated-tabs.tsx" {
		t.Errorf("Target = %q", f.Target)
	}

	bar, _ := reg.Lookup("progress-bar")
	if len(bar.Files) != 2 || bar.Files[1].Type != manifest.FileTypeHook {
		t.Errorf("progress-bar files = %+v", bar.Files)
	}

	theme, _ := reg.Lookup("smooth-theme")
	if len(theme.Files) != 0 || theme.CSS["@layer base"] == "" {
		t.Errorf("smooth-theme = %+v", theme)
	}
}

func TestBuild_MissingFile(t *testing.T) {
	files := testFiles()
	delete(files, "components/progress-bar/use-value.ts")

	reg, err := Build(testDefinitions(), FSReader(files))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
	if reg != nil {
		t.Error("no partial registry should be returned")
	}

	var readErr *FileReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected *FileReadError, got %T: %v", err, err)
	}
	if readErr.Path != "components/progress-bar/use-value.ts" {
		t.Errorf("Path = %q", readErr.Path)
	}
	if readErr.Item != "progress-bar" {
		t.Errorf("Item = %q", readErr.Item)
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error should wrap fs.ErrNotExist: %v", err)
	}
}

func TestBuild_RejectsEscapingPath(t *testing.T) {
	defs := []manifest.Definition{{
		Name:  "evil",
		Type:  manifest.TypeUI,
		Files: []manifest.FileDefinition{{Path: "../secrets.txt", Type: manifest.FileTypeUI}},
	}}

	_, err := Build(defs, DirReader(t.TempDir()))
	var readErr *FileReadError
	if !errors.As(err, &readErr) {
		t.Fatalf("expected *FileReadError, got %v", err)
	}
	if !errors.Is(err, fs.ErrInvalid) {
		t.Errorf("error should wrap fs.ErrInvalid: %v", err)
	}
}

func TestBuild_NormalizesRedundantPathElements(t *testing.T) {
	defs := []manifest.Definition{{
		Name: "avatar-group",
		Type: manifest.TypeUI,
		Files: []manifest.FileDefinition{
			{Path: "./components/avatar-group/index.tsx", Type: manifest.FileTypeUI},
			{Path: "components/progress-bar/../avatar-group/index.tsx", Type: manifest.FileTypeUI},
		},
	}}

	reg, err := Build(defs, FSReader(testFiles()))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	for i, f := range reg.Items[0].Files {
		if f.Content != "export function AvatarGroup() {}\n" {
			t.Errorf("files[%d].Content = %q", i, f.Content)
		}
		if f.Path != defs[0].Files[i].Path {
			t.Errorf("files[%d].Path = %q, want the path as written", i, f.Path)
		}
	}
}

func TestBuild_Empty(t *testing.T) {
	_, err := Build(nil, FSReader(testFiles()))
	if !errors.Is(err, ErrNoDefinitions) {
		t.Errorf("err = %v, want ErrNoDefinitions", err)
	}
}

func TestBuild_DuplicateName(t *testing.T) {
	defs := testDefinitions()
	defs = append(defs, manifest.Definition{Name: "avatar-group", Type: manifest.TypeUI})

	_, err := Build(defs, FSReader(testFiles()))
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("err = %v, want ErrDuplicateName", err)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	first, err := Build(testDefinitions(), FSReader(testFiles()))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	second, err := Build(testDefinitions(), FSReader(testFiles()))
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	a, err := Marshal(first)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	b, err := Marshal(second)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if !bytes.Equal(a, b) {
		t.Error("two builds of the same input produced different bytes")
	}
}
