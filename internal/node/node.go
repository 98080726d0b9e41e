// Package node runs palette extraction and colour naming as a single
// processing step for a host pipeline.
package node

import (
	"context"
	"errors"
	"fmt"
	"image"
	"slices"

	"github.com/hashicorp/go-hclog"

	"github.com/jmylchreest/img2color/internal/colour"
	"github.com/jmylchreest/img2color/internal/naming"
)

// Node extracts a palette and names its colours. A Node holds no per-call
// state and may be shared between goroutines.
type Node struct {
	resolver *naming.Resolver
	logger   hclog.Logger
}

// Option customises a Node.
type Option func(*Node)

// WithLogger sets the logger. The default discards everything.
func WithLogger(logger hclog.Logger) Option {
	return func(n *Node) {
		n.logger = logger
	}
}

// WithRegistry resolves names against registry instead of naming.Default.
func WithRegistry(registry *naming.Registry) Option {
	return func(n *Node) {
		n.resolver = naming.NewResolver(registry)
	}
}

// New creates a Node.
func New(opts ...Option) *Node {
	n := &Node{logger: hclog.NewNullLogger()}
	for _, opt := range opts {
		opt(n)
	}
	if n.resolver == nil {
		n.resolver = naming.NewResolver(nil)
	}
	return n
}

// RunImage samples img and runs the node over the samples.
func (n *Node) RunImage(ctx context.Context, img image.Image, cfg Config) (*Result, error) {
	if img == nil {
		return nil, fmt.Errorf("%w: nil image", colour.ErrInvalidInput)
	}

	pixels := colour.PixelsFromImage(img, colour.DefaultMaxSamples)
	if len(pixels) == 0 && !img.Bounds().Empty() {
		return nil, fmt.Errorf("%w: image has no opaque pixels", colour.ErrInvalidInput)
	}
	return n.Run(ctx, pixels, cfg)
}

// Run extracts up to cfg.Colours colours from pixels and resolves each one
// against the requested taxonomies. Either a complete result or an error is
// returned, never both.
func (n *Node) Run(ctx context.Context, pixels []colour.RGB, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	extractor, err := colour.NewExtractor(cfg.extractorConfig())
	if err != nil {
		return nil, err
	}

	if !cfg.Algorithm.Seeded() && cfg.Seed != colour.DefaultSeed {
		n.logger.Warn("seed is ignored by this algorithm", "algorithm", cfg.Algorithm, "seed", cfg.Seed)
	}

	n.logger.Debug("extracting palette", "pixels", len(pixels), "colours", cfg.Colours, "algorithm", cfg.Algorithm)
	palette, err := extractor.Extract(pixels, cfg.Colours)
	if err != nil {
		return nil, fmt.Errorf("failed to extract palette: %w", err)
	}
	n.logger.Debug("extracted palette", "colours", palette.ToHex())

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ids, missing, err := n.availableTaxonomies(cfg)
	if err != nil {
		return nil, err
	}

	result := &Result{
		Colours:       make([]ColourResult, 0, palette.Len()),
		Complementary: cfg.Complementary,
		Missing:       missing,
		Exclude:       normaliseExclude(cfg.Exclude),
	}
	for _, cluster := range palette.All() {
		rgb := cluster.Centroid
		if cfg.Complementary {
			rgb = colour.Complement(rgb)
		}

		names := make(map[naming.ID]naming.Match, len(ids))
		for _, id := range ids {
			m, err := n.resolver.Resolve(rgb, id)
			if err != nil {
				return nil, err
			}
			names[id] = m
		}

		result.Colours = append(result.Colours, ColourResult{
			Hex:      rgb.Hex(),
			RGB:      rgb,
			Original: cluster.Centroid,
			Fraction: cluster.Fraction,
			Names:    names,
		})
	}

	n.logger.Debug("named palette", "colours", len(result.Colours), "taxonomies", len(ids), "missing", len(missing))
	return result, nil
}

// availableTaxonomies loads each requested taxonomy once and applies the
// missing-taxonomy policy to those that fail.
func (n *Node) availableTaxonomies(cfg Config) ([]naming.ID, []MissingTaxonomy, error) {
	requested := cfg.Taxonomies
	if len(requested) == 0 {
		requested = n.resolver.Registry().IDs()
	}

	var (
		ids     []naming.ID
		missing []MissingTaxonomy
	)
	for _, id := range requested {
		if slices.Contains(ids, id) || slices.ContainsFunc(missing, func(m MissingTaxonomy) bool { return m.ID == id }) {
			continue
		}

		if _, err := n.resolver.Registry().Taxonomy(id); err != nil {
			if cfg.OnMissing == MissingAbort || !errors.Is(err, naming.ErrTaxonomyUnavailable) {
				return nil, nil, err
			}
			n.logger.Warn("taxonomy unavailable", "taxonomy", id, "error", err)
			missing = append(missing, MissingTaxonomy{ID: id, Reason: err.Error()})
			continue
		}
		ids = append(ids, id)
	}
	return ids, missing, nil
}
