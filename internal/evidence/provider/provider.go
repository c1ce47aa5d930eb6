// Package provider implements the fixed, ordered registry of 17 evidence
// providers (spec.md §4.3). Every provider is a pure function over claim
// text that never raises into its caller: transport failures, parse
// failures, and empty results all collapse to an empty result list.
package provider

import (
	"context"
	"time"
)

// Result is one piece of candidate evidence returned by a provider.
type Result struct {
	URL          string
	Title        string
	SourceName   string
	EvidenceType string
	Snippet      string
	EvidenceDate *time.Time
}

// Context carries optional claim/source metadata a provider may use to
// narrow its query: a company-entity hint, a claim year, and the source's
// upload year (spec.md §4.3 item 5).
type Context struct {
	CompanyName    string
	ClaimYear      int
	SourceYear     int
}

// Provider is one evidence source. Search must never return an error the
// caller has to handle: any internal failure is swallowed and yields a nil
// slice (spec.md §4.3, "A provider must never raise into its caller").
type Provider interface {
	// Name is the provider's unique registry key.
	Name() string

	// EvidenceType is the evidence_type every Result from this provider carries.
	EvidenceType() string

	// Search returns at most maxResults candidates for claimText.
	Search(ctx context.Context, claimText string, maxResults int, pctx Context) []Result
}

// Registry holds the fixed, ordered provider set.
type Registry struct {
	providers map[string]Provider
	order     []string
}

// NewRegistry builds an empty registry; callers populate it via Register.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider, preserving registration order for registry-order
// fallback in the Router (spec.md §4.4, "Providers not in the category
// priority list are appended in registry order").
func (r *Registry) Register(p Provider) {
	name := p.Name()
	if _, exists := r.providers[name]; !exists {
		r.order = append(r.order, name)
	}
	r.providers[name] = p
}

// Get returns a provider by name, or (nil, false).
func (r *Registry) Get(name string) (Provider, bool) {
	p, ok := r.providers[name]
	return p, ok
}

// All returns every registered provider in registration order.
func (r *Registry) All() []Provider {
	out := make([]Provider, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.providers[name])
	}
	return out
}

// Names returns every registered provider name in registration order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}
