package naming

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"sync"

	"golang.org/x/image/colornames"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/img2color/internal/colour"
	"github.com/jmylchreest/img2color/internal/naming/data"
)

// Source describes how to load one taxonomy.
type Source struct {
	ID    ID
	Name  string
	Shape Shape
	Load  func() ([]Entry, error)
}

// Registry holds the known taxonomies. Each taxonomy is loaded on first
// access, at most once, and never changes afterwards.
type Registry struct {
	order []ID
	slots map[ID]*slot
}

type slot struct {
	source Source
	once   sync.Once
	tax    *Taxonomy
	err    error
}

// Option customises a Registry.
type Option func(*Registry)

// WithSource adds a taxonomy source, replacing any source with the same ID.
func WithSource(src Source) Option {
	return func(r *Registry) {
		r.add(src)
	}
}

// WithTaxonomyFile adds a taxonomy read from a YAML file when first used.
func WithTaxonomyFile(id ID, path string) Option {
	return WithSource(Source{
		ID:    id,
		Name:  string(id),
		Shape: Flat,
		Load: func() ([]Entry, error) {
			return loadTaxonomyFile(path)
		},
	})
}

var (
	defaultRegistry     *Registry
	defaultRegistryOnce sync.Once
)

// Default returns the process-wide registry over the embedded tables.
func Default() *Registry {
	defaultRegistryOnce.Do(func() {
		defaultRegistry = NewRegistry(data.FS)
	})
	return defaultRegistry
}

// NewRegistry creates a registry with the built-in taxonomies. The CSS3
// table is compiled in; the survey-derived tables are read from
// data.SurveyFile within fsys.
func NewRegistry(fsys fs.FS, opts ...Option) *Registry {
	r := &Registry{slots: make(map[ID]*slot)}

	survey := sync.OnceValues(func() ([]surveyRow, error) {
		return readSurvey(fsys, data.SurveyFile)
	})

	r.add(Source{ID: CSS3, Name: "CSS3", Shape: Flat, Load: loadCSS3})
	for _, d := range surveyTaxonomies {
		r.add(Source{
			ID:    d.id,
			Name:  d.name,
			Shape: d.shape,
			Load: func() ([]Entry, error) {
				rows, err := survey()
				if err != nil {
					return nil, err
				}
				return d.entries(rows), nil
			},
		})
	}

	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Registry) add(src Source) {
	if _, ok := r.slots[src.ID]; !ok {
		r.order = append(r.order, src.ID)
	}
	r.slots[src.ID] = &slot{source: src}
}

// IDs returns the registered taxonomy identifiers in registration order.
func (r *Registry) IDs() []ID {
	out := make([]ID, len(r.order))
	copy(out, r.order)
	return out
}

// Has reports whether a taxonomy is registered.
func (r *Registry) Has(id ID) bool {
	_, ok := r.slots[id]
	return ok
}

// Taxonomy returns the loaded taxonomy. Unknown identifiers and load
// failures are reported as ErrTaxonomyUnavailable.
func (r *Registry) Taxonomy(id ID) (*Taxonomy, error) {
	s, ok := r.slots[id]
	if !ok {
		return nil, &TaxonomyError{ID: id, Err: fmt.Errorf("%w: not registered", ErrTaxonomyUnavailable)}
	}

	s.once.Do(func() {
		entries, err := s.source.Load()
		if err != nil {
			s.err = &TaxonomyError{ID: id, Err: fmt.Errorf("%w: %w", ErrTaxonomyUnavailable, err)}
			return
		}
		shape := s.source.Shape
		if shape == Flat && hasCategories(entries) {
			shape = Categorised
		}
		s.tax = NewTaxonomy(id, s.source.Name, shape, entries)
	})
	return s.tax, s.err
}

// Preload loads every registered taxonomy and returns the joined failures.
func (r *Registry) Preload() error {
	var errs []error
	for _, id := range r.order {
		if _, err := r.Taxonomy(id); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func hasCategories(entries []Entry) bool {
	for _, e := range entries {
		if e.Category != "" {
			return true
		}
	}
	return false
}

// loadCSS3 lists the CSS3 named colours in alphabetical order.
func loadCSS3() ([]Entry, error) {
	entries := make([]Entry, 0, len(colornames.Names))
	for _, name := range colornames.Names {
		c, ok := colornames.Map[name]
		if !ok {
			return nil, fmt.Errorf("colour %q missing from colornames.Map", name)
		}
		entries = append(entries, Entry{Name: name, RGB: colour.RGB{R: c.R, G: c.G, B: c.B}})
	}
	return entries, nil
}

// surveyRow is one XKCD survey colour with its classifications.
type surveyRow struct {
	Name    string `yaml:"name"`
	Hex     string `yaml:"hex"`
	Design  string `yaml:"design"`
	Common  string `yaml:"common"`
	Family  string `yaml:"family"`
	Type    string `yaml:"type"`
	Neutral string `yaml:"neutral"`

	rgb colour.RGB
}

type surveyFile struct {
	Colours []surveyRow `yaml:"colours"`
}

func readSurvey(fsys fs.FS, name string) ([]surveyRow, error) {
	raw, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}

	var file surveyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	for i := range file.Colours {
		row := &file.Colours[i]
		rgb, err := colour.ParseHex(row.Hex)
		if err != nil {
			return nil, fmt.Errorf("%s: row %d (%s): %w", name, i+1, row.Name, err)
		}
		row.rgb = rgb
	}
	return file.Colours, nil
}

// surveyTaxonomy derives one taxonomy from the survey rows. Every row
// contributes its survey colour as the reference point for its name.
type surveyTaxonomy struct {
	id       ID
	name     string
	shape    Shape
	label    func(surveyRow) string
	category func(surveyRow) string
}

func (d surveyTaxonomy) entries(rows []surveyRow) []Entry {
	entries := make([]Entry, 0, len(rows))
	for _, row := range rows {
		name := d.label(row)
		if name == "" {
			continue
		}
		e := Entry{Name: name, RGB: row.rgb}
		if d.category != nil {
			e.Category = d.category(row)
		}
		entries = append(entries, e)
	}
	return entries
}

var surveyTaxonomies = []surveyTaxonomy{
	{
		id:    XKCD,
		name:  "XKCD",
		shape: Flat,
		label: func(r surveyRow) string { return r.Name },
	},
	{
		id:       Design,
		name:     "Design",
		shape:    Categorised,
		label:    func(r surveyRow) string { return r.Design },
		category: func(r surveyRow) string { return r.Family },
	},
	{
		id:       Common,
		name:     "Common",
		shape:    Categorised,
		label:    func(r surveyRow) string { return r.Common },
		category: func(r surveyRow) string { return r.Family },
	},
	{
		id:       Family,
		name:     "ColorFamily",
		shape:    Categorised,
		label:    func(r surveyRow) string { return r.Family },
		category: func(r surveyRow) string { return r.Neutral },
	},
	{
		id:    ColourType,
		name:  "ColorType",
		shape: Flat,
		label: func(r surveyRow) string { return r.Type },
	},
	{
		id:    ColourOrNeutral,
		name:  "ColorOrNeutral",
		shape: Flat,
		label: func(r surveyRow) string { return r.Neutral },
	},
}

// taxonomyFile is the YAML layout of a user supplied taxonomy.
type taxonomyFile struct {
	Entries []struct {
		Name     string `yaml:"name"`
		Hex      string `yaml:"hex"`
		Category string `yaml:"category"`
	} `yaml:"entries"`
}

func loadTaxonomyFile(path string) ([]Entry, error) {
	raw, err := os.ReadFile(path) // #nosec G304 - user-specified taxonomy file
	if err != nil {
		return nil, fmt.Errorf("failed to read taxonomy file: %w", err)
	}

	var file taxonomyFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("failed to parse taxonomy file %s: %w", path, err)
	}

	entries := make([]Entry, 0, len(file.Entries))
	for i, e := range file.Entries {
		rgb, err := colour.ParseHex(e.Hex)
		if err != nil {
			return nil, fmt.Errorf("%s: entry %d (%s): %w", path, i+1, e.Name, err)
		}
		entries = append(entries, Entry{Name: e.Name, Category: e.Category, RGB: rgb})
	}
	return entries, nil
}
