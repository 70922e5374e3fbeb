package registry

// Schema URLs stamped into generated documents. The external installer uses
// them to pick a parser.
const (
	RegistrySchemaURL = "https://ui.shadcn.com/schema/registry.json"
	ItemSchemaURL     = "https://ui.shadcn.com/schema/registry-item.json"
)

// Registry is the top-level registry document.
type Registry struct {
	Schema   string `json:"$schema"`
	Name     string `json:"name"`
	Homepage string `json:"homepage"`
	Items    []Item `json:"items"`
}

// Item is one installable component or style preset. Field names are part of
// the installer's contract.
type Item struct {
	Schema               string            `json:"$schema,omitempty"`
	Name                 string            `json:"name"`
	Type                 string            `json:"type"`
	Title                string            `json:"title,omitempty"`
	Description          string            `json:"description,omitempty"`
	Dependencies         []string          `json:"dependencies,omitempty"`
	DevDependencies      []string          `json:"devDependencies,omitempty"`
	RegistryDependencies []string          `json:"registryDependencies,omitempty"`
	Files                []File            `json:"files,omitempty"`
	CSS                  map[string]string `json:"css,omitempty"`
}

// File is a source file with its contents inlined.
type File struct {
	Path    string `json:"path"`
	Content string `json:"content"`
	Type    string `json:"type"`
	Target  string `json:"target,omitempty"`
}

// Lookup returns the item with the given name.
func (r *Registry) Lookup(name string) (*Item, bool) {
	for i := range r.Items {
		if r.Items[i].Name == name {
			return &r.Items[i], true
		}
	}
	return nil, false
}

// Names returns item names in registry order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.Items))
	for i, item := range r.Items {
		names[i] = item.Name
	}
	return names
}
