package docs

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.yaml.in/yaml/v3"
)

// Descriptor is the doc-site metadata for one showcased component.
type Descriptor struct {
	ID                int      `yaml:"id" json:"id" validate:"required,gt=0" jsonschema:"minimum=1"`
	Slug              string   `yaml:"slug" json:"slug" validate:"required,slug" jsonschema:"pattern=^[a-z0-9]+(-[a-z0-9]+)*$"`
	Title             string   `yaml:"title,omitempty" json:"title,omitempty"`
	Description       string   `yaml:"description,omitempty" json:"description,omitempty"`
	Tags              []string `yaml:"tags,omitempty" json:"tags,omitempty" validate:"dive,required"`
	Collection        string   `yaml:"collection" json:"collection" validate:"required"`
	RelatedComponents []string `yaml:"relatedComponents,omitempty" json:"relatedComponents,omitempty" validate:"dive,slug"`
}

// descriptorFile is the on-disk wrapper; a bare list is accepted too.
type descriptorFile struct {
	Components []Descriptor `yaml:"components" json:"components"`
}

var slugPattern = regexp.MustCompile(`^[a-z0-9]+(-[a-z0-9]+)*$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	return v
}

// Load reads a descriptor file. The format follows the extension: .json is
// decoded as JSON, anything else as YAML. Each descriptor is validated
// structurally; cross-record checks are left to Validate.
func Load(path string) ([]Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading descriptors %s: %w", path, err)
	}

	descriptors, err := decode(data, strings.EqualFold(filepath.Ext(path), ".json"))
	if err != nil {
		return nil, fmt.Errorf("parsing descriptors %s: %w", path, err)
	}

	for i, d := range descriptors {
		if err := validate.Struct(d); err != nil {
			return nil, fmt.Errorf("descriptor %d (%q) in %s: %w", i, d.Slug, path, describeValidation(err))
		}
	}

	return descriptors, nil
}

func decode(data []byte, isJSON bool) ([]Descriptor, error) {
	if isJSON {
		return decodeJSON(data)
	}

	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.MappingNode {
		var wrapped descriptorFile
		if err := root.Decode(&wrapped); err != nil {
			return nil, err
		}
		if wrapped.Components == nil {
			return nil, errMissingComponents
		}
		return wrapped.Components, nil
	}

	var list []Descriptor
	if err := root.Decode(&list); err != nil {
		return nil, err
	}
	return list, nil
}

var errMissingComponents = errors.New(`top-level mapping has no "components" list`)

// decodeJSON picks the wrapper or the bare list from the first token so the
// error reported is the one from the intended shape.
func decodeJSON(data []byte) ([]Descriptor, error) {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		var wrapped descriptorFile
		if err := json.Unmarshal(data, &wrapped); err != nil {
			return nil, err
		}
		if wrapped.Components == nil {
			return nil, errMissingComponents
		}
		return wrapped.Components, nil
	}

	var list []Descriptor
	if err := json.Unmarshal(data, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// describeValidation flattens validator errors into one readable error.
func describeValidation(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	return errors.New(strings.Join(parts, ", "))
}

// Severity classifies a descriptor finding.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Finding is one cross-record problem reported by Validate.
type Finding struct {
	Slug     string   `json:"slug"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
}

// Validate checks cross-record invariants: ids and slugs must be unique
// (errors) and relatedComponents should reference existing slugs (warnings).
func Validate(descriptors []Descriptor) []Finding {
	var findings []Finding

	ids := make(map[int]string, len(descriptors))
	slugs := make(map[string]bool, len(descriptors))
	for _, d := range descriptors {
		if prev, ok := ids[d.ID]; ok {
			findings = append(findings, Finding{
				Slug:     d.Slug,
				Severity: SeverityError,
				Message:  fmt.Sprintf("id %d already used by %q", d.ID, prev),
			})
		} else {
			ids[d.ID] = d.Slug
		}
		if slugs[d.Slug] {
			findings = append(findings, Finding{
				Slug:     d.Slug,
				Severity: SeverityError,
				Message:  "duplicate slug",
			})
		}
		slugs[d.Slug] = true
	}

	for _, d := range descriptors {
		for _, rel := range d.RelatedComponents {
			if !slugs[rel] {
				findings = append(findings, Finding{
					Slug:     d.Slug,
					Severity: SeverityWarning,
					Message:  fmt.Sprintf("related component %q does not exist", rel),
				})
			}
		}
	}

	return findings
}

// HasErrors reports whether any finding is an error.
func HasErrors(findings []Finding) bool {
	for _, f := range findings {
		if f.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Slugs returns the descriptor slugs in input order.
func Slugs(descriptors []Descriptor) []string {
	out := make([]string, len(descriptors))
	for i, d := range descriptors {
		out[i] = d.Slug
	}
	return out
}
