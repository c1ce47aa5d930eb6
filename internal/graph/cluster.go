package graph

import (
	"sort"

	"github.com/obelus-labs/veritas-core/internal/model"
	"github.com/obelus-labs/veritas-core/internal/store"
	"github.com/obelus-labs/veritas-core/internal/textnorm"
)

// DefaultJaccardThreshold is the pairwise similarity cutoff for clustering
// two claims into the same fact (spec.md §4.8).
const DefaultJaccardThreshold = 0.40

const (
	minBlockSize = 2
	maxBlockSize = 500
)

// Build runs the full fingerprint → block → cluster → consensus pipeline
// over every claim and returns a snapshot ready for store.ReplaceGraph.
// For a fixed input slice and threshold, cluster membership, representatives
// and scores are the same on every call; cluster ids are freshly minted each
// time, and clusters with equal consensus scores come out in no fixed order.
func Build(claims []model.Claim, threshold float64) store.GraphSnapshot {
	if threshold <= 0 {
		threshold = DefaultJaccardThreshold
	}

	fingerprints := make([]map[string]struct{}, len(claims))
	fpStrings := make([]string, len(claims))
	indexByID := make(map[string]int, len(claims))
	for i, c := range claims {
		fpStrings[i], fingerprints[i] = Fingerprint(c)
		indexByID[c.ID] = i
	}

	blocks := buildBlocks(claims, fingerprints)

	uf := newUnionFind(len(claims))
	for _, idxs := range blocks {
		if len(idxs) < minBlockSize {
			continue
		}
		if len(idxs) > maxBlockSize {
			idxs = idxs[:maxBlockSize]
		}
		for a := 0; a < len(idxs); a++ {
			for b := a + 1; b < len(idxs); b++ {
				i, j := idxs[a], idxs[b]
				if claims[i].SourceID == claims[j].SourceID {
					continue
				}
				if textnorm.JaccardSets(fingerprints[i], fingerprints[j]) >= threshold {
					uf.union(i, j)
				}
			}
		}
	}

	return assemble(claims, fingerprints, fpStrings, indexByID, uf)
}

// buildBlocks groups claim indices by the blocking keys
// "{category}|{number}" for each number mentioned, or "{category}|no_numbers"
// when the claim carries none (spec.md §4.8).
func buildBlocks(claims []model.Claim, fingerprints []map[string]struct{}) map[string][]int {
	blocks := make(map[string][]int)
	for i, c := range claims {
		nums := Numbers(fingerprints[i])
		if len(nums) == 0 {
			key := string(c.Category) + "|no_numbers"
			blocks[key] = append(blocks[key], i)
			continue
		}
		for _, n := range nums {
			key := string(c.Category) + "|" + n
			blocks[key] = append(blocks[key], i)
		}
	}
	return blocks
}

func assemble(claims []model.Claim, fingerprints []map[string]struct{}, fpStrings []string, indexByID map[string]int, uf *unionFind) store.GraphSnapshot {
	groups := uf.groups()

	snapshot := store.GraphSnapshot{Members: make(map[string][]model.ClusterMember)}

	for _, idxs := range groups {
		if len(idxs) < 2 {
			continue // singleton claims never form a cluster
		}
		sourceSeen := make(map[string]bool, len(idxs))
		var members []model.Claim
		for _, idx := range idxs {
			c := claims[idx]
			if sourceSeen[c.SourceID] {
				continue // two members never share a source_id
			}
			sourceSeen[c.SourceID] = true
			members = append(members, c)
		}
		if len(members) < 2 {
			continue
		}

		rep := representative(members)
		score, status := consensus(members)

		cluster := model.Cluster{
			ID:                 model.NewID(),
			RepresentativeText: rep.Text,
			Category:           rep.Category,
			ClaimCount:         len(members),
			SourceCount:        len(sourceSeen),
			BestStatus:         status,
			BestConfidence:     bestConfidence(members),
			ConsensusScore:     score,
			CreatedAt:          rep.CreatedAt,
			UpdatedAt:          rep.CreatedAt,
		}
		snapshot.Clusters = append(snapshot.Clusters, cluster)

		repSet := fingerprints[indexByID[rep.ID]]
		clusterMembers := make([]model.ClusterMember, 0, len(members))
		for _, m := range members {
			mi := indexByID[m.ID]
			sim := 1.0
			if m.ID != rep.ID {
				sim = textnorm.JaccardSets(fingerprints[mi], repSet)
			}
			clusterMembers = append(clusterMembers, model.ClusterMember{
				ClusterID:       cluster.ID,
				ClaimID:         m.ID,
				Fingerprint:     fpStrings[mi],
				SimilarityToRep: sim,
			})
		}
		snapshot.Members[cluster.ID] = clusterMembers
	}

	sort.Slice(snapshot.Clusters, func(i, j int) bool {
		return snapshot.Clusters[i].ConsensusScore > snapshot.Clusters[j].ConsensusScore
	})
	return snapshot
}

// representative picks the member with the greatest (auto_confidence,
// text_length), per spec.md §4.8.
func representative(members []model.Claim) model.Claim {
	best := members[0]
	for _, m := range members[1:] {
		if m.AutoConfidence > best.AutoConfidence ||
			(m.AutoConfidence == best.AutoConfidence && len(m.Text) > len(best.Text)) {
			best = m
		}
	}
	return best
}

func bestConfidence(members []model.Claim) float64 {
	best := 0.0
	for _, m := range members {
		if m.AutoConfidence > best {
			best = m.AutoConfidence
		}
	}
	return best
}
