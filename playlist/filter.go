package playlist

import (
	"errors"
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"go.uber.org/multierr"
)

// FilterStories shows only YouTube playlists.
const FilterStories = "stories"

var ErrBadPreset = errors.New("playlist: bad preset")

// Preset is a named filter defined in playlist.yaml. Expr is a tengo boolean
// expression; Script names a tengo file that assigns the result to match.
// Both see the item as kind, title, category, url and id.
type Preset struct {
	Name   string `yaml:"name"`
	Label  string `yaml:"label"`
	Expr   string `yaml:"expr"`
	Script string `yaml:"script"`
}

// Option is one selectable filter in the sidebar.
type Option struct {
	Name  string
	Label string
}

// ScriptLoader reads a preset script by name.
type ScriptLoader func(name string) ([]byte, error)

// Filters resolves filter names to item predicates.
type Filters struct {
	presets  []Preset
	compiled map[string]*tengo.Compiled
}

// NewFilters compiles every preset. Presets that fail to compile are left
// out and reported together; the returned Filters is always usable.
func NewFilters(presets []Preset, load ScriptLoader) (*Filters, error) {
	f := &Filters{compiled: make(map[string]*tengo.Compiled)}

	var errs error
	for _, p := range presets {
		c, err := compilePreset(p, load)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		f.presets = append(f.presets, p)
		f.compiled[p.Name] = c
	}
	return f, errs
}

func compilePreset(p Preset, load ScriptLoader) (*tengo.Compiled, error) {
	if p.Name == "" || p.Name == CategoryAll {
		return nil, fmt.Errorf("%w: name %q is reserved", ErrBadPreset, p.Name)
	}

	var src []byte
	switch {
	case strings.TrimSpace(p.Expr) != "":
		src = []byte("text := import(\"text\")\nmatch := (" + p.Expr + ")")
	case p.Script != "" && load != nil:
		b, err := load(p.Script)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrBadPreset, p.Name, err)
		}
		src = b
	default:
		return nil, fmt.Errorf("%w: %s has neither expr nor script", ErrBadPreset, p.Name)
	}

	script := tengo.NewScript(src)
	for _, name := range []string{"kind", "title", "category", "url", "id"} {
		_ = script.Add(name, "")
	}
	script.SetImports(stdlib.GetModuleMap("text"))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrBadPreset, p.Name, err)
	}
	return compiled, nil
}

// Match reports whether it passes the named filter. Unknown names match
// by item type or category.
func (f *Filters) Match(name string, it Item) (bool, error) {
	switch name {
	case "", CategoryAll:
		return true, nil
	case FilterStories:
		if _, custom := f.compiled[name]; !custom {
			return it.Type == TypeYouTubePlaylist, nil
		}
	}

	if c, ok := f.compiled[name]; ok {
		return runPreset(c, it)
	}
	return string(it.Type) == name || CategoryOf(it) == name, nil
}

func runPreset(c *tengo.Compiled, it Item) (bool, error) {
	vars := map[string]string{
		"kind":     string(it.Type),
		"title":    it.Title,
		"category": CategoryOf(it),
		"url":      it.URL,
		"id":       it.ID,
	}
	for k, v := range vars {
		if err := c.Set(k, v); err != nil {
			return false, err
		}
	}
	if err := c.Run(); err != nil {
		return false, err
	}
	if !c.IsDefined("match") {
		return false, fmt.Errorf("%w: script does not define match", ErrBadPreset)
	}
	return c.Get("match").Bool(), nil
}

// Apply returns the items passing the named filter whose title contains
// query, case-insensitively. A preset that fails at run time excludes the
// item.
func (f *Filters) Apply(items []Item, name, query string) []Item {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		ok, err := f.Match(name, it)
		if err != nil || !ok {
			continue
		}
		if q != "" && !strings.Contains(strings.ToLower(it.Title), q) {
			continue
		}
		out = append(out, it)
	}
	return out
}

// Options lists the categories found in items followed by the presets.
func (f *Filters) Options(items []Item) []Option {
	var out []Option
	for _, c := range Categories(items) {
		out = append(out, Option{Name: c, Label: HumanCategory(c)})
	}
	for _, p := range f.presets {
		label := p.Label
		if label == "" {
			label = HumanCategory(p.Name)
		}
		out = append(out, Option{Name: p.Name, Label: label})
	}
	return out
}

// Has reports whether name is a known filter for items.
func (f *Filters) Has(items []Item, name string) bool {
	for _, o := range f.Options(items) {
		if o.Name == name {
			return true
		}
	}
	return name == FilterStories
}
