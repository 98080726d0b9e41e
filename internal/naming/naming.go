// Package naming maps RGB colours to human-readable names from several
// colour naming taxonomies.
//
// A Registry owns the taxonomies. Each one is loaded once on first use and
// is read-only afterwards, so a Registry is safe for concurrent use. A
// Resolver answers nearest-name queries against a Registry.
package naming

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jmylchreest/img2color/internal/colour"
)

var (
	// ErrTaxonomyUnavailable reports an unknown taxonomy or one whose
	// reference data failed to load.
	ErrTaxonomyUnavailable = errors.New("taxonomy unavailable")

	// ErrEmptyTaxonomy reports a query against a taxonomy with no entries.
	ErrEmptyTaxonomy = errors.New("taxonomy has no entries")
)

// TaxonomyError attaches the taxonomy identifier to a naming failure.
type TaxonomyError struct {
	ID  ID
	Err error
}

func (e *TaxonomyError) Error() string {
	return fmt.Sprintf("taxonomy %s: %v", e.ID, e.Err)
}

func (e *TaxonomyError) Unwrap() error {
	return e.Err
}

// ID identifies a taxonomy.
type ID string

// Built-in taxonomies.
const (
	CSS3            ID = "css3"
	XKCD            ID = "xkcd"
	Design          ID = "design"
	Common          ID = "common"
	Family          ID = "family"
	ColourType      ID = "type"
	ColourOrNeutral ID = "neutral"
)

// BuiltinIDs returns the built-in taxonomies in their canonical order.
func BuiltinIDs() []ID {
	return []ID{CSS3, XKCD, Design, Common, Family, ColourType, ColourOrNeutral}
}

// aliases maps normalised display names onto identifiers.
var aliases = map[string]ID{
	"css":             CSS3,
	"web":             CSS3,
	"colorfamily":     Family,
	"colourfamily":    Family,
	"colortype":       ColourType,
	"colourtype":      ColourType,
	"colororneutral":  ColourOrNeutral,
	"colourorneutral": ColourOrNeutral,
}

// ParseID normalises a taxonomy name. Matching is case-insensitive and
// ignores spaces, dashes and underscores, so "ColorFamily", "color_family"
// and "family" are the same taxonomy. Unknown names are returned normalised;
// the registry decides whether they exist.
func ParseID(s string) ID {
	norm := strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(strings.TrimSpace(s)))

	if id, ok := aliases[norm]; ok {
		return id
	}
	return ID(norm)
}

// ParseIDs splits a comma separated list of taxonomy names.
func ParseIDs(s string) []ID {
	var ids []ID
	for part := range strings.SplitSeq(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		ids = append(ids, ParseID(part))
	}
	return ids
}

// Shape describes how a taxonomy's entries are organised.
type Shape int

const (
	// Flat taxonomies carry a name per entry.
	Flat Shape = iota
	// Categorised taxonomies carry a name and a parent category per entry.
	Categorised
)

// String returns the shape name.
func (s Shape) String() string {
	if s == Categorised {
		return "categorised"
	}
	return "flat"
}

// Entry is one named reference colour of a taxonomy.
type Entry struct {
	Name     string     `json:"name" yaml:"name"`
	Category string     `json:"category,omitempty" yaml:"category,omitempty"`
	RGB      colour.RGB `json:"rgb" yaml:"rgb"`
}

// Match is the result of resolving a colour against one taxonomy.
type Match struct {
	Taxonomy ID         `json:"taxonomy" yaml:"taxonomy"`
	Name     string     `json:"name" yaml:"name"`
	Category string     `json:"category,omitempty" yaml:"category,omitempty"`
	RGB      colour.RGB `json:"rgb" yaml:"rgb"`
	Distance float64    `json:"distance" yaml:"distance"`
}
