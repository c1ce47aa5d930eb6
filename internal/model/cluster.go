package model

import "time"

// Cluster groups claims from independent sources that state the same
// underlying fact.
type Cluster struct {
	ID                string      `json:"id"`
	RepresentativeText string     `json:"representative_text"`
	Category          Category    `json:"category"`
	ClaimCount        int         `json:"claim_count"`
	SourceCount       int         `json:"source_count"`
	BestStatus        ClaimStatus `json:"best_status"`
	BestConfidence    float64     `json:"best_confidence"`
	ConsensusScore    float64     `json:"consensus_score"`
	CreatedAt         time.Time   `json:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at"`
}

// ClusterMember is one claim's membership in a cluster.
// Invariant: every member of a cluster comes from a distinct source.
type ClusterMember struct {
	ClusterID       string  `json:"cluster_id"`
	ClaimID         string  `json:"claim_id"`
	Fingerprint     string  `json:"fingerprint"`
	SimilarityToRep float64 `json:"similarity_to_rep"`
}
