package registry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	// IndexFileName is the name of the full registry document.
	IndexFileName = "registry.json"

	tmpSuffix = ".tmp"
	oldSuffix = ".old"
)

// Marshal encodes v as indented JSON with a trailing newline. HTML escaping
// is disabled so inlined TSX stays readable. Output is deterministic for a
// given value since map keys are sorted by encoding/json.
func Marshal(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ItemDocument returns the standalone document for a single item.
func ItemDocument(item Item) Item {
	item.Schema = ItemSchemaURL
	return item
}

// ErrUnsafeOutDir is returned when the output directory could hold files the
// registry does not own.
var ErrUnsafeOutDir = errors.New("unsafe registry output directory")

// Write renders reg into outDir as registry.json plus <name>.json per item.
// Files are staged in a hidden sibling directory and swapped in with a
// rename; the previous output is moved aside and only removed once the swap
// succeeds, so a failed write leaves it untouched. Returns the written file
// names in registry order, index first.
//
// outDir must not be the working directory, one of its ancestors, the
// filesystem root, or an existing non-empty directory without a registry.json.
func Write(reg *Registry, outDir string) ([]string, error) {
	outDir, err := checkOutDir(outDir)
	if err != nil {
		return nil, err
	}

	docs := make(map[string][]byte, len(reg.Items)+1)
	names := make([]string, 0, len(reg.Items)+1)

	data, err := Marshal(reg)
	if err != nil {
		return nil, fmt.Errorf("marshaling registry: %w", err)
	}
	docs[IndexFileName] = data
	names = append(names, IndexFileName)

	for _, item := range reg.Items {
		data, err := Marshal(ItemDocument(item))
		if err != nil {
			return nil, fmt.Errorf("marshaling item %q: %w", item.Name, err)
		}
		name := item.Name + ".json"
		docs[name] = data
		names = append(names, name)
	}

	tmpDir := siblingDir(outDir, tmpSuffix)
	oldDir := siblingDir(outDir, oldSuffix)

	// Clean up leftovers from a previous failed attempt.
	_ = os.RemoveAll(tmpDir)
	_ = os.RemoveAll(oldDir)

	if err := os.MkdirAll(tmpDir, 0755); err != nil {
		return nil, fmt.Errorf("creating staging directory: %w", err)
	}

	for _, name := range names {
		if err := os.WriteFile(filepath.Join(tmpDir, name), docs[name], 0644); err != nil {
			_ = os.RemoveAll(tmpDir)
			return nil, fmt.Errorf("writing %s: %w", name, err)
		}
	}

	hadPrevious := false
	if _, err := os.Stat(outDir); err == nil {
		if err := os.Rename(outDir, oldDir); err != nil {
			_ = os.RemoveAll(tmpDir)
			return nil, fmt.Errorf("moving previous output aside: %w", err)
		}
		hadPrevious = true
	}

	if err := os.Rename(tmpDir, outDir); err != nil {
		if hadPrevious {
			_ = os.Rename(oldDir, outDir)
		}
		_ = os.RemoveAll(tmpDir)
		return nil, fmt.Errorf("finalizing registry output: %w", err)
	}

	if hadPrevious {
		_ = os.RemoveAll(oldDir)
	}

	return names, nil
}

// checkOutDir cleans outDir and rejects directories Write must not replace.
func checkOutDir(outDir string) (string, error) {
	if strings.TrimSpace(outDir) == "" {
		return "", fmt.Errorf("%w: empty path", ErrUnsafeOutDir)
	}

	clean := filepath.Clean(outDir)
	abs, err := filepath.Abs(clean)
	if err != nil {
		return "", fmt.Errorf("resolving output directory %s: %w", outDir, err)
	}
	if abs == filepath.Dir(abs) {
		return "", fmt.Errorf("%w: %s is the filesystem root", ErrUnsafeOutDir, outDir)
	}

	if wd, err := os.Getwd(); err == nil && isWithin(wd, abs) {
		return "", fmt.Errorf("%w: %s contains the working directory", ErrUnsafeOutDir, outDir)
	}

	entries, err := os.ReadDir(clean)
	if err == nil && len(entries) > 0 {
		if _, err := os.Stat(filepath.Join(clean, IndexFileName)); err != nil {
			return "", fmt.Errorf("%w: %s is not empty and holds no %s", ErrUnsafeOutDir, outDir, IndexFileName)
		}
	}

	return clean, nil
}

// isWithin reports whether path equals dir or lies beneath it. Both must be
// absolute and clean.
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}

// siblingDir returns the hidden sibling of dir used for staging, e.g.
// public/.r.tmp for public/r.
func siblingDir(dir, suffix string) string {
	return filepath.Join(filepath.Dir(dir), "."+filepath.Base(dir)+suffix)
}

// Load reads a previously written registry.json.
func Load(path string) (*Registry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading registry %s: %w", path, err)
	}
	var reg Registry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, fmt.Errorf("parsing registry %s: %w", path, err)
	}
	return &reg, nil
}
