package node

import (
	"slices"
	"strings"

	"github.com/jmylchreest/img2color/internal/colour"
	"github.com/jmylchreest/img2color/internal/naming"
)

// ColourResult is one palette colour with its names.
type ColourResult struct {
	Hex string     `json:"hex" yaml:"hex"`
	RGB colour.RGB `json:"rgb" yaml:"rgb"`

	// Original is the extracted colour before any complement transform.
	Original colour.RGB `json:"original" yaml:"original"`
	Fraction float64    `json:"fraction" yaml:"fraction"`

	Names map[naming.ID]naming.Match `json:"names" yaml:"names"`
}

// Name returns the name resolved for taxonomy id, or "" when there is none.
func (c ColourResult) Name(id naming.ID) string {
	return c.Names[id].Name
}

// MissingTaxonomy records a requested taxonomy that could not be loaded.
type MissingTaxonomy struct {
	ID     naming.ID `json:"id" yaml:"id"`
	Reason string    `json:"reason" yaml:"reason"`
}

// Result is the outcome of one Node run.
type Result struct {
	Colours []ColourResult `json:"colours" yaml:"colours"`

	// Complementary is set when each RGB is the complement of its Original.
	Complementary bool              `json:"complementary" yaml:"complementary"`
	Missing       []MissingTaxonomy `json:"missing,omitempty" yaml:"missing,omitempty"`

	// Exclude holds the names filtered out of Outputs, matched
	// case-insensitively.
	Exclude []string `json:"exclude,omitempty" yaml:"exclude,omitempty"`
}

// Outputs holds the palette as comma separated strings, one per facet.
type Outputs struct {
	PlainEnglish string `json:"plain_english_colors" yaml:"plain_english_colors"`
	RGB          string `json:"rgb_colors" yaml:"rgb_colors"`
	Hex          string `json:"hex_colors" yaml:"hex_colors"`
	XKCD         string `json:"xkcd_colors" yaml:"xkcd_colors"`
	Design       string `json:"design_colors" yaml:"design_colors"`
	Common       string `json:"common_colors" yaml:"common_colors"`
	Types        string `json:"color_types" yaml:"color_types"`
	Families     string `json:"color_families" yaml:"color_families"`
}

// OutputLabels names the Outputs fields in Strings order.
var OutputLabels = []string{
	"plain_english_colors",
	"rgb_colors",
	"hex_colors",
	"xkcd_colors",
	"design_colors",
	"common_colors",
	"color_types",
	"color_families",
}

// Strings returns the outputs in OutputLabels order.
func (o Outputs) Strings() []string {
	return []string{o.PlainEnglish, o.RGB, o.Hex, o.XKCD, o.Design, o.Common, o.Types, o.Families}
}

// Outputs joins every facet of the palette with ", ", leaving out values
// that appear in the exclude list. Taxonomies that were not resolved
// contribute nothing.
func (r *Result) Outputs() Outputs {
	facet := func(value func(ColourResult) string) string {
		values := make([]string, 0, len(r.Colours))
		for _, c := range r.Colours {
			v := value(c)
			if v == "" || slices.ContainsFunc(r.Exclude, func(e string) bool { return strings.EqualFold(e, v) }) {
				continue
			}
			values = append(values, v)
		}
		return strings.Join(values, ", ")
	}
	named := func(id naming.ID) string {
		return facet(func(c ColourResult) string { return c.Name(id) })
	}

	return Outputs{
		PlainEnglish: named(naming.CSS3),
		RGB:          facet(func(c ColourResult) string { return c.RGB.String() }),
		Hex:          facet(func(c ColourResult) string { return c.Hex }),
		XKCD:         named(naming.XKCD),
		Design:       named(naming.Design),
		Common:       named(naming.Common),
		Types:        named(naming.ColourType),
		Families:     named(naming.Family),
	}
}
