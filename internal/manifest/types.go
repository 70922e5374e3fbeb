package manifest

// Item type discriminators accepted in the definition file.
const (
	TypeUI    = "registry:ui"
	TypeStyle = "registry:style"
)

// File type discriminators accepted for item files.
const (
	FileTypeUI        = "registry:ui"
	FileTypeComponent = "registry:component"
	FileTypeHook      = "registry:hook"
	FileTypeLib       = "registry:lib"
	FileTypeStyle     = "registry:style"
)

// ValidTypes contains all valid item type values.
var ValidTypes = []string{TypeUI, TypeStyle}

// Definitions is the top-level shape of registry.yaml.
type Definitions struct {
	Schema string       `yaml:"$schema,omitempty" json:"$schema,omitempty"`
	Items  []Definition `yaml:"items" json:"items"`
}

// Definition describes one installable component before its file contents
// are read.
type Definition struct {
	Name                 string            `yaml:"name" json:"name"`
	Type                 string            `yaml:"type" json:"type"`
	Title                string            `yaml:"title,omitempty" json:"title,omitempty"`
	Description          string            `yaml:"description,omitempty" json:"description,omitempty"`
	Dependencies         []string          `yaml:"dependencies,omitempty" json:"dependencies,omitempty"`
	DevDependencies      []string          `yaml:"devDependencies,omitempty" json:"devDependencies,omitempty"`
	RegistryDependencies []string          `yaml:"registryDependencies,omitempty" json:"registryDependencies,omitempty"`
	Files                []FileDefinition  `yaml:"files,omitempty" json:"files,omitempty"`
	CSS                  map[string]string `yaml:"css,omitempty" json:"css,omitempty"`
}

// FileDefinition points at a source file relative to the definition file.
type FileDefinition struct {
	Path   string `yaml:"path" json:"path"`
	Type   string `yaml:"type" json:"type"`
	Target string `yaml:"target,omitempty" json:"target,omitempty"`
}
