package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/educlopez/smoothui-sub003/internal/config"
	"github.com/educlopez/smoothui-sub003/internal/docs"
	"github.com/educlopez/smoothui-sub003/internal/manifest"
	"github.com/educlopez/smoothui-sub003/internal/redirects"
	"github.com/educlopez/smoothui-sub003/internal/registry"
)

// now is the build clock, replaced in tests.
var now = time.Now

// buildRegistry loads the definition file and builds the registry with file
// contents read relative to the definition file's directory.
func buildRegistry(defPath string) (*registry.Registry, error) {
	defs, err := manifest.Load(defPath)
	if err != nil {
		return nil, err
	}

	reg, err := registry.Build(defs.Items, registry.DirReader(filepath.Dir(defPath)))
	if err != nil {
		return nil, fmt.Errorf("building registry from %s: %w", defPath, err)
	}

	slog.Debug("Built registry", "definitions", defPath, "items", len(reg.Items))
	return reg, nil
}

// checkedRegistry builds the registry and fails on link integrity errors.
// Warnings are logged.
func checkedRegistry(defPath string) (*registry.Registry, error) {
	reg, err := buildRegistry(defPath)
	if err != nil {
		return nil, err
	}

	report := registry.Check(reg)
	for _, issue := range report.Issues {
		if issue.Severity == registry.SeverityWarning {
			slog.Warn("Registry check", "item", issue.Item, "message", issue.Message)
		}
	}
	if report.HasErrors() {
		return nil, checkError(report)
	}
	return reg, nil
}

func checkError(report *registry.Report) error {
	var msgs []string
	for _, issue := range report.Issues {
		if issue.Severity == registry.SeverityError {
			msgs = append(msgs, fmt.Sprintf("%s: %s", issue.Item, issue.Message))
		}
	}
	return fmt.Errorf("registry check failed: %s", strings.Join(msgs, "; "))
}

// loadDescriptors loads and cross-validates the configured descriptor file.
func loadDescriptors(path string) ([]docs.Descriptor, error) {
	if path == "" {
		return nil, fmt.Errorf("no descriptor file configured (set %s)", config.KeyDescriptors)
	}

	descriptors, err := docs.Load(path)
	if err != nil {
		return nil, err
	}

	findings := docs.Validate(descriptors)
	for _, f := range findings {
		if f.Severity == docs.SeverityWarning {
			slog.Warn("Descriptor check", "slug", f.Slug, "message", f.Message)
		}
	}
	if docs.HasErrors(findings) {
		var msgs []string
		for _, f := range findings {
			if f.Severity == docs.SeverityError {
				msgs = append(msgs, fmt.Sprintf("%s: %s", f.Slug, f.Message))
			}
		}
		return nil, fmt.Errorf("invalid descriptors in %s: %s", path, strings.Join(msgs, "; "))
	}
	return descriptors, nil
}

// redirectSlugs picks the slug source: an explicit source file is scanned
// as text; otherwise the descriptor file is used when present, falling back
// to scanning the configured source.
func redirectSlugs(explicitSource string) (redirects.Slugs, error) {
	if explicitSource != "" {
		return redirects.ExtractSlugs(explicitSource)
	}

	descPath := config.Get(config.KeyDescriptors)
	if descPath != "" {
		if _, err := os.Stat(descPath); err == nil {
			descriptors, err := loadDescriptors(descPath)
			if err != nil {
				return nil, err
			}
			return redirects.FromDescriptors(descriptors), nil
		} else if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("checking descriptors %s: %w", descPath, err)
		}
	}

	return redirects.ExtractSlugs(config.Get(config.KeyRedirectsSource))
}

// writeRegistry publishes reg to outDir after refusing an outDir that holds
// the definition file.
func writeRegistry(reg *registry.Registry, defPath, outDir string) ([]string, error) {
	def, err := filepath.Abs(defPath)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", defPath, err)
	}
	out, err := filepath.Abs(filepath.Clean(outDir))
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", outDir, err)
	}
	if rel, err := filepath.Rel(out, def); err == nil && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return nil, fmt.Errorf("%w: %s contains the definition file %s", registry.ErrUnsafeOutDir, outDir, defPath)
	}
	return registry.Write(reg, outDir)
}

// writeFileAtomic writes data to a sibling temp file and renames it over
// path.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := stageFile(path, data)
	if err != nil {
		return err
	}
	return commitFile(tmp, path)
}

// stageFile writes data next to path and returns the temp file name for
// commitFile.
func stageFile(path string, data []byte) (string, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating directory for %s: %w", path, err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("writing %s: %w", path, err)
	}
	return tmp, nil
}

func commitFile(tmp, path string) error {
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("finalizing %s: %w", path, err)
	}
	return nil
}
