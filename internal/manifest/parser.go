package manifest

import (
	"fmt"
	"os"
	"strings"

	"go.yaml.in/yaml/v3"
)

// InvalidError is returned by Load when the definition file does not match
// the schema. It carries every issue found.
type InvalidError struct {
	Path   string
	Issues []ValidationIssue
}

func (e *InvalidError) Error() string {
	parts := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		if issue.Path == "" {
			parts = append(parts, issue.Message)
			continue
		}
		parts = append(parts, issue.Path+": "+issue.Message)
	}
	return fmt.Sprintf("invalid definition file %s: %s", e.Path, strings.Join(parts, "; "))
}

// Load reads, validates and parses a definition file.
func Load(path string) (*Definitions, error) {
	data, err := readFile(path)
	if err != nil {
		return nil, err
	}

	result, err := Validate(data)
	if err != nil {
		return nil, fmt.Errorf("validating %s: %w", path, err)
	}
	if !result.Valid {
		return nil, &InvalidError{Path: path, Issues: result.Issues}
	}

	return Parse(data, path)
}

// Parse unmarshals definition file contents without schema validation.
func Parse(data []byte, path string) (*Definitions, error) {
	var defs Definitions
	if err := yaml.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parsing definition file %s: %w", path, err)
	}
	return &defs, nil
}

// readFile reads a file and returns its contents with a wrapped error.
func readFile(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading definition file %s: %w", path, err)
	}
	return data, nil
}
