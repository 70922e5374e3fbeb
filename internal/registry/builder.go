package registry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"

	"github.com/educlopez/smoothui-sub003/internal/branding"
	"github.com/educlopez/smoothui-sub003/internal/manifest"
)

var (
	// ErrNoDefinitions is returned when Build is called without definitions.
	ErrNoDefinitions = errors.New("no component definitions")

	// ErrDuplicateName is returned when two definitions share a name.
	ErrDuplicateName = errors.New("duplicate item name")
)

// FileReadError reports a definition file path that could not be read.
// It is fatal to the build.
type FileReadError struct {
	Item string
	Path string
	Err  error
}

func (e *FileReadError) Error() string {
	return fmt.Sprintf("reading file %s for item %q: %v", e.Path, e.Item, e.Err)
}

func (e *FileReadError) Unwrap() error { return e.Err }

// FileReader supplies the contents of definition files by their relative
// slash-separated path.
type FileReader interface {
	ReadFile(path string) ([]byte, error)
}

// fsReader reads files from an fs.FS.
type fsReader struct {
	fsys fs.FS
}

// ReadFile accepts redundant elements such as "./" and rejects paths that
// leave the root or are absolute.
func (r fsReader) ReadFile(name string) ([]byte, error) {
	clean := path.Clean(name)
	if !fs.ValidPath(clean) {
		return nil, fmt.Errorf("%w: %q must be a relative slash-separated path inside the registry root", fs.ErrInvalid, name)
	}
	return fs.ReadFile(r.fsys, clean)
}

// FSReader returns a FileReader backed by fsys.
func FSReader(fsys fs.FS) FileReader {
	return fsReader{fsys: fsys}
}

// DirReader returns a FileReader rooted at dir. Paths escaping dir are
// rejected.
func DirReader(dir string) FileReader {
	return fsReader{fsys: os.DirFS(dir)}
}

type buildConfig struct {
	name     string
	homepage string
}

// Option configures Build.
type Option func(*buildConfig)

// WithName overrides the registry name.
func WithName(name string) Option {
	return func(c *buildConfig) {
		c.name = name
	}
}

// WithHomepage overrides the registry homepage.
func WithHomepage(homepage string) Option {
	return func(c *buildConfig) {
		c.homepage = homepage
	}
}

// Build assembles a Registry from defs, inlining every referenced file via
// files. Items keep the order of defs. The first unreadable file aborts the
// build with a *FileReadError.
func Build(defs []manifest.Definition, files FileReader, opts ...Option) (*Registry, error) {
	if len(defs) == 0 {
		return nil, ErrNoDefinitions
	}

	cfg := buildConfig{
		name:     branding.RegistryName(),
		homepage: branding.Homepage(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	seen := make(map[string]bool, len(defs))
	items := make([]Item, 0, len(defs))

	for _, def := range defs {
		if seen[def.Name] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, def.Name)
		}
		seen[def.Name] = true

		item, err := buildItem(def, files)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return &Registry{
		Schema:   RegistrySchemaURL,
		Name:     cfg.name,
		Homepage: cfg.homepage,
		Items:    items,
	}, nil
}

func buildItem(def manifest.Definition, files FileReader) (Item, error) {
	item := Item{
		Name:                 def.Name,
		Type:                 def.Type,
		Title:                def.Title,
		Description:          def.Description,
		Dependencies:         def.Dependencies,
		DevDependencies:      def.DevDependencies,
		RegistryDependencies: def.RegistryDependencies,
		CSS:                  def.CSS,
	}

	for _, f := range def.Files {
		content, err := files.ReadFile(f.Path)
		if err != nil {
			return Item{}, &FileReadError{Item: def.Name, Path: f.Path, Err: err}
		}
		item.Files = append(item.Files, File{
			Path:    f.Path,
			Content: string(content),
			Type:    f.Type,
			Target:  f.Target,
		})
	}

	return item, nil
}
