package gocarousel

import (
	"errors"
	"fmt"
	"io"
	"math/rand/v2"

	"gopkg.in/yaml.v3"
)

var (
	// ErrTemplateNotFound is returned by TemplateRegistry.Lookup for unknown ids.
	ErrTemplateNotFound = errors.New("template not found")
	// ErrPaletteNotFound is returned by PaletteRegistry.Lookup for unknown ids.
	ErrPaletteNotFound = errors.New("palette not found")
)

// TemplateRegistry is an immutable, ordered set of templates keyed by id.
// The first template is the default.
type TemplateRegistry struct {
	list []TemplateDescriptor
	byID map[string]int
}

// NewTemplateRegistry validates templates and builds a registry. It fails on
// an empty list, duplicate ids or invalid descriptors.
func NewTemplateRegistry(templates []TemplateDescriptor) (*TemplateRegistry, error) {
	if len(templates) == 0 {
		return nil, errors.New("template registry needs at least one template")
	}
	r := &TemplateRegistry{
		list: append([]TemplateDescriptor(nil), templates...),
		byID: make(map[string]int, len(templates)),
	}
	var errs []string
	for i, t := range r.list {
		if _, dup := r.byID[t.ID]; dup {
			errs = append(errs, fmt.Sprintf("template %d: duplicate id %q", i+1, t.ID))
			continue
		}
		r.byID[t.ID] = i
		for _, e := range t.validate() {
			errs = append(errs, fmt.Sprintf("template %q: %s", t.ID, e))
		}
	}
	if len(errs) > 0 {
		return nil, validationError(errs)
	}
	return r, nil
}

var defaultTemplates = mustTemplates(builtinTemplates)

func mustTemplates(list []TemplateDescriptor) *TemplateRegistry {
	r, err := NewTemplateRegistry(list)
	if err != nil {
		panic(err)
	}
	return r
}

// Templates returns the built-in template registry.
func Templates() *TemplateRegistry { return defaultTemplates }

// Lookup returns the template with the given id.
func (r *TemplateRegistry) Lookup(id string) (TemplateDescriptor, error) {
	i, ok := r.byID[id]
	if !ok {
		return TemplateDescriptor{}, fmt.Errorf("%w: %q", ErrTemplateNotFound, id)
	}
	return r.list[i], nil
}

// Default returns the registry's default template.
func (r *TemplateRegistry) Default() TemplateDescriptor { return r.list[0] }

// All returns a copy of all templates in registry order.
func (r *TemplateRegistry) All() []TemplateDescriptor {
	return append([]TemplateDescriptor(nil), r.list...)
}

// Len returns the number of templates.
func (r *TemplateRegistry) Len() int { return len(r.list) }

// ByCategory returns the templates of one category in registry order.
func (r *TemplateRegistry) ByCategory(c Category) []TemplateDescriptor {
	var out []TemplateDescriptor
	for _, t := range r.list {
		if t.Category == c {
			out = append(out, t)
		}
	}
	return out
}

// SelectVaried picks n templates for a carousel: the registry is shuffled
// with rng and walked (wrapping once), skipping a template whose category
// equals the previously picked one. Fewer than n templates may be returned.
func (r *TemplateRegistry) SelectVaried(n int, rng *rand.Rand) []TemplateDescriptor {
	pool := r.All()
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	rng.Shuffle(len(pool), func(i, j int) { pool[i], pool[j] = pool[j], pool[i] })

	var selected []TemplateDescriptor
	var last Category
	for i := 0; len(selected) < n && i < 2*len(pool); i++ {
		t := pool[i%len(pool)]
		if len(selected) == 0 || t.Category != last {
			selected = append(selected, t)
			last = t.Category
		}
	}
	return selected
}

// LoadTemplates decodes a YAML template pack ("templates:" list) into a new
// registry. The built-in registry is never modified.
func LoadTemplates(rd io.Reader) (*TemplateRegistry, error) {
	var pack struct {
		Templates []TemplateDescriptor `yaml:"templates"`
	}
	dec := yaml.NewDecoder(rd)
	dec.KnownFields(true)
	if err := dec.Decode(&pack); err != nil {
		return nil, fmt.Errorf("decode template pack: %w", err)
	}
	return NewTemplateRegistry(pack.Templates)
}

// PaletteRegistry is an immutable, ordered set of palettes keyed by id.
// The first palette is the default.
type PaletteRegistry struct {
	list []PaletteDescriptor
	byID map[string]int
}

// NewPaletteRegistry validates palettes and builds a registry.
func NewPaletteRegistry(palettes []PaletteDescriptor) (*PaletteRegistry, error) {
	if len(palettes) == 0 {
		return nil, errors.New("palette registry needs at least one palette")
	}
	r := &PaletteRegistry{
		list: append([]PaletteDescriptor(nil), palettes...),
		byID: make(map[string]int, len(palettes)),
	}
	var errs []string
	for i, p := range r.list {
		if _, dup := r.byID[p.ID]; dup {
			errs = append(errs, fmt.Sprintf("palette %d: duplicate id %q", i+1, p.ID))
			continue
		}
		r.byID[p.ID] = i
		for _, e := range p.validate() {
			errs = append(errs, fmt.Sprintf("palette %q: %s", p.ID, e))
		}
	}
	if len(errs) > 0 {
		return nil, validationError(errs)
	}
	return r, nil
}

var defaultPalettes = func() *PaletteRegistry {
	r, err := NewPaletteRegistry(builtinPalettes)
	if err != nil {
		panic(err)
	}
	return r
}()

// Palettes returns the built-in palette registry.
func Palettes() *PaletteRegistry { return defaultPalettes }

// Lookup returns the palette with the given id.
func (r *PaletteRegistry) Lookup(id string) (PaletteDescriptor, error) {
	i, ok := r.byID[id]
	if !ok {
		return PaletteDescriptor{}, fmt.Errorf("%w: %q", ErrPaletteNotFound, id)
	}
	return r.list[i], nil
}

// Default returns the registry's default palette.
func (r *PaletteRegistry) Default() PaletteDescriptor { return r.list[0] }

// All returns a copy of all palettes in registry order.
func (r *PaletteRegistry) All() []PaletteDescriptor {
	return append([]PaletteDescriptor(nil), r.list...)
}

// Len returns the number of palettes.
func (r *PaletteRegistry) Len() int { return len(r.list) }
