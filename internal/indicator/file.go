package indicator

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// FileMode controls how a catalog file combines with the definitions that
// precede it in the filter chain.
type FileMode string

const (
	// ModeMerge overrides matching slugs in place and appends new ones.
	ModeMerge FileMode = "merge"
	// ModeReplace discards the incoming catalog entirely.
	ModeReplace FileMode = "replace"
)

// FileEntry is one indicator as written in a catalog file.
type FileEntry struct {
	Slug        string `yaml:"slug"`
	Label       string `yaml:"label"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	IconFile    string `yaml:"icon_file"`
}

// FileCatalog is the parsed form of a YAML catalog file.
type FileCatalog struct {
	Mode       FileMode    `yaml:"mode"`
	Remove     []string    `yaml:"remove"`
	Order      []string    `yaml:"order"`
	Indicators []FileEntry `yaml:"indicators"`

	dir string
}

// LoadFile parses a YAML catalog file. Relative icon_file paths are resolved
// against the directory containing the file.
func LoadFile(p string) (*FileCatalog, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", p, err)
	}
	fc, err := ParseFile(data)
	if err != nil {
		return nil, fmt.Errorf("parsing catalog %s: %w", p, err)
	}
	fc.dir = filepath.Dir(p)
	return fc, nil
}

// ParseFile parses catalog YAML.
func ParseFile(data []byte) (*FileCatalog, error) {
	var fc FileCatalog
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return nil, err
	}
	switch fc.Mode {
	case "":
		fc.Mode = ModeMerge
	case ModeMerge, ModeReplace:
	default:
		return nil, fmt.Errorf("invalid mode %q: must be merge or replace", fc.Mode)
	}
	for i, e := range fc.Indicators {
		if strings.TrimSpace(e.Slug) == "" {
			return nil, fmt.Errorf("indicator %d: slug is required", i)
		}
	}
	return &fc, nil
}

// Definitions converts the file entries, reading icon files as needed. An
// unreadable icon file leaves the icon empty.
func (fc *FileCatalog) Definitions() []Definition {
	out := make([]Definition, 0, len(fc.Indicators))
	for _, e := range fc.Indicators {
		d := Definition{
			Slug:        strings.TrimSpace(e.Slug),
			Label:       e.Label,
			Description: e.Description,
			Icon:        strings.TrimSpace(e.Icon),
		}
		if d.Icon == "" && e.IconFile != "" {
			p := e.IconFile
			if !filepath.IsAbs(p) {
				p = filepath.Join(fc.dir, p)
			}
			if data, err := os.ReadFile(p); err == nil {
				d.Icon = strings.TrimSpace(string(data))
			}
		}
		out = append(out, d)
	}
	return out
}

// Apply combines the file catalog with defs.
func (fc *FileCatalog) Apply(defs []Definition) []Definition {
	fileDefs := fc.Definitions()

	var out []Definition
	if fc.Mode == ModeReplace {
		out = fileDefs
	} else {
		out = cloneDefs(defs)
		index := make(map[string]int, len(out))
		for i, d := range out {
			index[d.Slug] = i
		}
		for _, d := range fileDefs {
			if i, ok := index[d.Slug]; ok {
				out[i] = mergeDefinition(out[i], d)
				continue
			}
			index[d.Slug] = len(out)
			out = append(out, d)
		}
	}

	if len(fc.Remove) > 0 {
		drop := make(map[string]bool, len(fc.Remove))
		for _, s := range fc.Remove {
			drop[s] = true
		}
		kept := out[:0]
		for _, d := range out {
			if !drop[d.Slug] {
				kept = append(kept, d)
			}
		}
		out = kept
	}

	if len(fc.Order) > 0 {
		out = reorder(out, fc.Order)
	}
	return out
}

// mergeDefinition overlays the non-empty fields of override onto base.
func mergeDefinition(base, override Definition) Definition {
	if override.Label != "" {
		base.Label = override.Label
	}
	if override.Description != "" {
		base.Description = override.Description
	}
	if override.Icon != "" {
		base.Icon = override.Icon
	}
	return base
}

// reorder moves the listed slugs to the front in the given order; the rest
// keep their relative positions.
func reorder(defs []Definition, order []string) []Definition {
	bySlug := make(map[string]Definition, len(defs))
	for _, d := range defs {
		bySlug[d.Slug] = d
	}
	placed := make(map[string]bool, len(order))
	out := make([]Definition, 0, len(defs))
	for _, s := range order {
		if d, ok := bySlug[s]; ok && !placed[s] {
			out = append(out, d)
			placed[s] = true
		}
	}
	for _, d := range defs {
		if !placed[d.Slug] {
			out = append(out, d)
		}
	}
	return out
}

// LoadIcons reads every SVG under dir matching pattern (doublestar syntax,
// e.g. "**/*.svg") and keys it by slug. File names map to slugs by dropping
// the extension and replacing hyphens with underscores, so
// "on-the-ground.svg" becomes "on_the_ground".
func LoadIcons(dir, pattern string) (map[string]string, error) {
	if pattern == "" {
		pattern = "**/*.svg"
	}
	fsys := os.DirFS(dir)
	matches, err := doublestar.Glob(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("matching icons in %s: %w", dir, err)
	}
	icons := make(map[string]string, len(matches))
	for _, m := range matches {
		data, err := fs.ReadFile(fsys, m)
		if err != nil {
			return nil, fmt.Errorf("reading icon %s: %w", m, err)
		}
		icons[slugFromFile(m)] = strings.TrimSpace(string(data))
	}
	return icons, nil
}

func slugFromFile(name string) string {
	base := path.Base(name)
	base = strings.TrimSuffix(base, path.Ext(base))
	return strings.ReplaceAll(base, "-", "_")
}

// IconFilter returns a Filter that sets the icon of each definition whose
// slug has an entry in icons.
func IconFilter(icons map[string]string) Filter {
	return func(defs []Definition) []Definition {
		for i, d := range defs {
			if icon, ok := icons[d.Slug]; ok {
				defs[i].Icon = icon
			}
		}
		return defs
	}
}
