package naming

import (
	"github.com/jmylchreest/img2color/internal/colour"
)

// Resolver finds the nearest named colour in a registry's taxonomies.
type Resolver struct {
	registry *Registry
}

// NewResolver creates a Resolver over registry. A nil registry uses Default.
func NewResolver(registry *Registry) *Resolver {
	if registry == nil {
		registry = Default()
	}
	return &Resolver{registry: registry}
}

// Registry returns the registry the resolver reads from.
func (r *Resolver) Registry() *Registry {
	return r.registry
}

// Resolve returns the entry of taxonomy id nearest to rgb.
func (r *Resolver) Resolve(rgb colour.RGB, id ID) (Match, error) {
	tax, err := r.registry.Taxonomy(id)
	if err != nil {
		return Match{}, err
	}
	return tax.Lookup(rgb)
}

// ResolveAll resolves rgb against each taxonomy in ids. Failures are
// returned per taxonomy alongside the matches that succeeded.
func (r *Resolver) ResolveAll(rgb colour.RGB, ids []ID) (map[ID]Match, map[ID]error) {
	matches := make(map[ID]Match, len(ids))
	var failures map[ID]error
	for _, id := range ids {
		m, err := r.Resolve(rgb, id)
		if err != nil {
			if failures == nil {
				failures = make(map[ID]error)
			}
			failures[id] = err
			continue
		}
		matches[id] = m
	}
	return matches, failures
}
