package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obelus-labs/veritas-core/internal/model"
)

func claimFixture(id, sourceID, text string, autoStatus model.AutoStatus, confidence float64) model.Claim {
	return model.Claim{
		ID:             id,
		SourceID:       sourceID,
		Text:           text,
		Category:       model.CategoryFinance,
		StatusAuto:     autoStatus,
		AutoConfidence: confidence,
		CreatedAt:      time.Now().UTC(),
		UpdatedAt:      time.Now().UTC(),
	}
}

func TestBuild_ThreeSourceClusterConsensus(t *testing.T) {
	claims := []model.Claim{
		claimFixture("c1", "s1", "Revenue grew to $5.5 billion in the quarter", model.AutoStatusSupported, 0.85),
		claimFixture("c2", "s2", "Revenue grew to $5.5 billion in the quarter", model.AutoStatusSupported, 0.80),
		claimFixture("c3", "s3", "Revenue grew to $5.5 billion in the quarter", model.AutoStatusPartial, 0.70),
	}

	snapshot := Build(claims, DefaultJaccardThreshold)
	require.Len(t, snapshot.Clusters, 1)

	cluster := snapshot.Clusters[0]
	assert.Equal(t, 3, cluster.ClaimCount)
	assert.Equal(t, 3, cluster.SourceCount)
	assert.Equal(t, 0.85, cluster.BestConfidence)
	assert.Equal(t, model.StatusSupported, cluster.BestStatus)
	assert.InDelta(t, 1.00, cluster.ConsensusScore, 0.0001)

	members := snapshot.Members[cluster.ID]
	require.Len(t, members, 3)
	seen := make(map[string]bool)
	for _, m := range members {
		assert.False(t, seen[m.ClaimID])
		seen[m.ClaimID] = true
	}
}

func TestBuild_SameSourcePairNeverClusters(t *testing.T) {
	claims := []model.Claim{
		claimFixture("c1", "s1", "Revenue grew to $5.5 billion in the quarter", model.AutoStatusSupported, 0.85),
		claimFixture("c2", "s1", "Revenue grew to $5.5 billion in the quarter", model.AutoStatusSupported, 0.80),
	}
	snapshot := Build(claims, DefaultJaccardThreshold)
	assert.Empty(t, snapshot.Clusters)
}

func TestBuild_DissimilarClaimsDoNotCluster(t *testing.T) {
	claims := []model.Claim{
		claimFixture("c1", "s1", "Revenue grew to $5.5 billion in the quarter", model.AutoStatusSupported, 0.85),
		claimFixture("c2", "s2", "The company hired a new chief marketing officer", model.AutoStatusUnknown, 0.10),
	}
	snapshot := Build(claims, DefaultJaccardThreshold)
	assert.Empty(t, snapshot.Clusters)
}

func TestBuild_ConsensusNeverExceedsOne(t *testing.T) {
	var claims []model.Claim
	for i := 0; i < 8; i++ {
		claims = append(claims, claimFixture(
			model.NewID(), model.NewID(),
			"Unemployment fell to 3.5 percent nationwide last month",
			model.AutoStatusSupported, 0.99,
		))
	}
	snapshot := Build(claims, DefaultJaccardThreshold)
	require.Len(t, snapshot.Clusters, 1)
	assert.LessOrEqual(t, snapshot.Clusters[0].ConsensusScore, 1.0)
	assert.GreaterOrEqual(t, snapshot.Clusters[0].ConsensusScore, snapshot.Clusters[0].BestConfidence)
}

func TestConsensus_UnverifiedMemberDoesNotCountTowardBoost(t *testing.T) {
	members := []model.Claim{
		claimFixture("c1", "s1", "x", model.AutoStatusSupported, 0.85),
		claimFixture("c2", "s2", "x", model.AutoStatusUnknown, 0.10),
	}
	score, status := consensus(members)
	assert.Equal(t, model.StatusSupported, status)
	assert.InDelta(t, 0.85, score, 0.0001, "only one member is verified, so |V|=1 and no boost applies")
}

func TestConsensus_TwoVerifiedSourcesBoost(t *testing.T) {
	members := []model.Claim{
		claimFixture("c1", "s1", "x", model.AutoStatusSupported, 0.85),
		claimFixture("c2", "s2", "x", model.AutoStatusPartial, 0.72),
	}
	score, _ := consensus(members)
	assert.InDelta(t, 0.95, score, 0.0001)
}

func TestConsensus_SameSourceVerifiedTwiceCountsOnce(t *testing.T) {
	members := []model.Claim{
		claimFixture("c1", "s1", "x", model.AutoStatusSupported, 0.85),
		claimFixture("c2", "s1", "x", model.AutoStatusPartial, 0.80),
	}
	score, _ := consensus(members)
	assert.InDelta(t, 0.85, score, 0.0001, "both members share source s1, so |V|=1 despite two verified members")
}

func TestExpandNumbers_BillionAndTrillion(t *testing.T) {
	nums := expandNumbers("Revenue reached $5.5 billion while debt stood at $14 trillion")
	assertContains(t, nums, "5500")
	assertContains(t, nums, "14000")
	assertContains(t, nums, "14000000")
}

func assertContains(t *testing.T, haystack []string, want string) {
	t.Helper()
	for _, h := range haystack {
		if h == want {
			return
		}
	}
	t.Fatalf("expected %v to contain %q", haystack, want)
}
