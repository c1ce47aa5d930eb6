// Package store defines and implements the durable state layer: sources,
// segments, claims, evidence suggestions, human evidence, clusters, and
// cluster members (spec.md §3, §4.9).
package store

import (
	"context"
	"time"

	"github.com/obelus-labs/veritas-core/internal/model"
)

// SourceVerificationCounts tallies a source's claims by final status, for
// the "list sources with verification counts" query (spec.md §4.9).
type SourceVerificationCounts struct {
	Source     model.Source
	Supported  int
	Partial    int
	Unknown    int
	Contradicted int
	ClaimCount int
}

// GlobalClaimGroup is one claim_hash_global's cross-source occurrences,
// ordered by source created_at (spec.md §4.9, "spread/timeline").
type GlobalClaimGroup struct {
	ClaimHashGlobal string
	Claims          []model.Claim
	SourceCount     int
}

// ClusterSort selects the ordering for ListClusters.
type ClusterSort string

const (
	ClusterSortConsensus ClusterSort = "consensus"
	ClusterSortSources   ClusterSort = "sources"
	ClusterSortClaims    ClusterSort = "claims"
)

// GraphSnapshot is the atomically-swapped output of a Knowledge Graph
// build: every cluster plus its members (spec.md §4.8: "Build clears all
// cluster tables, writes new clusters, then writes members").
type GraphSnapshot struct {
	Clusters []model.Cluster
	Members  map[string][]model.ClusterMember // keyed by cluster id
}

// Store is the persistence interface for the claim-and-evidence engine.
type Store interface {
	// Sources
	CreateSource(ctx context.Context, src model.Source) error
	GetSource(ctx context.Context, id string) (*model.Source, error)
	ListSources(ctx context.Context) ([]SourceVerificationCounts, error)
	SetTranscriptPath(ctx context.Context, sourceID, path string) error

	// Claims
	InsertClaims(ctx context.Context, claims []model.Claim) (inserted int, err error)
	GetClaim(ctx context.Context, id string) (*model.Claim, error)
	ListClaimsBySource(ctx context.Context, sourceID string) ([]model.Claim, error)
	ListAllClaims(ctx context.Context) ([]model.Claim, error)
	DeleteClaimsForSource(ctx context.Context, sourceID string) error
	SetClaimCategory(ctx context.Context, claimID string, category model.Category) error
	SetClaimAutoStatus(ctx context.Context, claimID string, status model.AutoStatus, confidence float64) error
	SetClaimStatusHuman(ctx context.Context, claimID string, status model.ClaimStatus) error
	ClaimsByGlobalHash(ctx context.Context, hash string) ([]model.Claim, error)
	TopGlobalClaims(ctx context.Context, limit int) ([]GlobalClaimGroup, error)
	ReviewQueue(ctx context.Context, limit int) ([]model.Claim, error)
	SearchClaims(ctx context.Context, query string, limit int) ([]model.Claim, error)

	// Evidence suggestions (auto-discovered, rebuilt per orchestrator run)
	ClearSuggestionsForSource(ctx context.Context, sourceID string) error
	InsertSuggestions(ctx context.Context, suggestions []model.EvidenceSuggestion) error
	ListSuggestionsForClaim(ctx context.Context, claimID string) ([]model.EvidenceSuggestion, error)

	// Evidence (human, authoritative)
	AddEvidence(ctx context.Context, ev model.Evidence) error
	ListEvidenceForClaim(ctx context.Context, claimID string) ([]model.Evidence, error)

	// Knowledge graph
	ReplaceGraph(ctx context.Context, snapshot GraphSnapshot) error
	ListClusters(ctx context.Context, sortBy ClusterSort, limit int) ([]model.Cluster, error)
	GetCluster(ctx context.Context, id string) (*model.Cluster, error)
	ListClusterMembers(ctx context.Context, clusterID string) ([]model.ClusterMember, error)
	FindClusterByClaimOrHash(ctx context.Context, claimIDOrHash string) (*model.Cluster, error)

	// Lifecycle
	Ping(ctx context.Context) error
	Migrate(ctx context.Context) error
	Close() error
}

// now is overridable in tests that need deterministic timestamps; production
// code always calls time.Now().UTC() through this indirection point.
var now = func() time.Time { return time.Now().UTC() }
