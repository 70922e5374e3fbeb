package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"text/template"

	"github.com/educlopez/smoothui-sub003/internal/branding"
	"github.com/educlopez/smoothui-sub003/internal/manifest"
)

//go:embed scaffolds
var scaffoldFS embed.FS

// definitionTemplate renders the registry.yaml snippet rather than a file.
const definitionTemplate = "definition.yaml.tmpl"

var namePattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

// ScaffoldData holds all template variables available to scaffold templates.
type ScaffoldData struct {
	Name          string // e.g., "magnetic-button"
	Type          string // manifest.TypeUI or manifest.TypeStyle
	Title         string // Derived: "Magnetic Button"
	ComponentName string // Derived: "MagneticButton"
	Description   string
	Dir           string // Slash-separated path of the generated files, relative to registry.yaml
}

// Result holds the outcome of a scaffold generation.
type Result struct {
	OutputDir  string
	Files      []string
	Definition string
	Warnings   []string
}

// NewScaffoldData creates a ScaffoldData with derived fields populated. dir is
// where the files will live relative to the definition file.
func NewScaffoldData(name, itemType, dir string) *ScaffoldData {
	words := strings.Split(name, "-")
	titled := make([]string, 0, len(words))
	for _, w := range words {
		if w == "" {
			continue
		}
		titled = append(titled, strings.ToUpper(w[:1])+w[1:])
	}

	return &ScaffoldData{
		Name:          name,
		Type:          itemType,
		Title:         strings.Join(titled, " "),
		ComponentName: strings.Join(titled, ""),
		Description:   fmt.Sprintf("%s %s", branding.DisplayName(), strings.Join(titled, " ")),
		Dir:           path.Clean(filepath.ToSlash(dir)),
	}
}

// templateSetName returns the embedded directory name for an item type.
func templateSetName(itemType string) (string, error) {
	switch itemType {
	case manifest.TypeUI:
		return "ui", nil
	case manifest.TypeStyle:
		return "style", nil
	default:
		return "", fmt.Errorf("unsupported item type %q (valid: %s)", itemType, strings.Join(manifest.ValidTypes, ", "))
	}
}

// Generate writes the stub files for data into outputDir and renders the
// definition snippet. It refuses to write into a non-empty directory.
func Generate(data *ScaffoldData, outputDir string) (*Result, error) {
	if !namePattern.MatchString(data.Name) {
		return nil, fmt.Errorf("invalid component name %q: use lowercase letters, digits and hyphens", data.Name)
	}

	setName, err := templateSetName(data.Type)
	if err != nil {
		return nil, err
	}
	templatesDir := path.Join("scaffolds", setName)

	entries, err := fs.ReadDir(scaffoldFS, templatesDir)
	if err != nil {
		return nil, fmt.Errorf("template set %q not found: %w", setName, err)
	}

	existingEntries, err := os.ReadDir(outputDir)
	if err == nil && len(existingEntries) > 0 {
		return nil, fmt.Errorf("output directory %s is not empty; remove existing files first", outputDir)
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	result := &Result{
		OutputDir: outputDir,
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		rendered, err := render(path.Join(templatesDir, entry.Name()), data)
		if err != nil {
			return nil, err
		}

		if entry.Name() == definitionTemplate {
			result.Definition = rendered
			continue
		}

		outName := strings.TrimSuffix(entry.Name(), ".tmpl")
		outPath := filepath.Join(outputDir, outName)
		if err := os.WriteFile(outPath, []byte(rendered), 0644); err != nil {
			return nil, fmt.Errorf("writing %s: %w", outPath, err)
		}
		result.Files = append(result.Files, outName)
	}

	// Validate the snippet as it would appear in registry.yaml.
	valResult, valErr := manifest.Validate([]byte("items:\n" + result.Definition))
	if valErr != nil {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("Could not validate definition: %v", valErr))
	} else if !valResult.Valid {
		for _, issue := range valResult.Issues {
			msg := issue.Message
			if issue.Path != "" {
				msg = issue.Path + ": " + msg
			}
			result.Warnings = append(result.Warnings, msg)
		}
	}

	return result, nil
}

func render(tmplPath string, data *ScaffoldData) (string, error) {
	tmplBytes, err := fs.ReadFile(scaffoldFS, tmplPath)
	if err != nil {
		return "", fmt.Errorf("reading template %s: %w", tmplPath, err)
	}

	tmpl, err := template.New(path.Base(tmplPath)).Parse(string(tmplBytes))
	if err != nil {
		return "", fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", tmplPath, err)
	}
	return buf.String(), nil
}
