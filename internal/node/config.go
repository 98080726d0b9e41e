package node

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jmylchreest/img2color/internal/colour"
	"github.com/jmylchreest/img2color/internal/naming"
)

// MissingPolicy decides what happens when a requested taxonomy cannot be loaded.
type MissingPolicy string

const (
	// MissingExclude records the taxonomy in Result.Missing and carries on.
	MissingExclude MissingPolicy = "exclude"

	// MissingAbort fails the whole call.
	MissingAbort MissingPolicy = "abort"
)

// ParseMissingPolicy parses a policy name, case-insensitively.
func ParseMissingPolicy(s string) (MissingPolicy, error) {
	switch p := MissingPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case MissingExclude, MissingAbort:
		return p, nil
	case "":
		return MissingExclude, nil
	default:
		return "", fmt.Errorf("%w: unknown missing-taxonomy policy %q (valid: exclude, abort)", colour.ErrInvalidInput, s)
	}
}

// Config is the per-call configuration of a Node.
type Config struct {
	// Colours is the requested palette size (k).
	Colours       int
	Complementary bool

	// Taxonomies to resolve against. Empty means every registered taxonomy.
	Taxonomies []naming.ID

	Algorithm   colour.Algorithm
	Accuracy    int
	Convergence float64
	// Seed only applies to algorithms that report Seeded.
	Seed uint64

	// Exclude lists names, compared case-insensitively, that are dropped
	// from the joined text outputs.
	Exclude []string

	OnMissing MissingPolicy
}

// DefaultConfig returns the default node configuration.
func DefaultConfig() Config {
	return Config{
		Colours:     colour.DefaultColourCount,
		Algorithm:   colour.AlgorithmKMeans,
		Accuracy:    colour.DefaultAccuracy,
		Convergence: colour.DefaultConvergence,
		Seed:        colour.DefaultSeed,
		OnMissing:   MissingExclude,
	}
}

// Validate checks the configuration. Failures wrap colour.ErrInvalidInput.
func (c Config) Validate() error {
	if err := c.extractorConfig().Validate(); err != nil {
		return err
	}
	if c.OnMissing != MissingExclude && c.OnMissing != MissingAbort {
		return fmt.Errorf("%w: unknown missing-taxonomy policy %q", colour.ErrInvalidInput, c.OnMissing)
	}
	return nil
}

func (c Config) extractorConfig() colour.ExtractorConfig {
	return colour.ExtractorConfig{
		Algorithm:   c.Algorithm,
		ColorCount:  c.Colours,
		Accuracy:    c.Accuracy,
		Convergence: c.Convergence,
		Seed:        c.Seed,
	}
}

// ParseExclude splits a comma separated exclude list, lowercasing each name.
func ParseExclude(s string) []string {
	return normaliseExclude(strings.Split(s, ","))
}

// normaliseExclude trims and lowercases names, dropping blanks and
// duplicates. The result never aliases names.
func normaliseExclude(names []string) []string {
	var out []string
	for _, name := range names {
		name = strings.ToLower(strings.TrimSpace(name))
		if name != "" && !slices.Contains(out, name) {
			out = append(out, name)
		}
	}
	return out
}
