package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/obelus-labs/veritas-core/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "test.db")
	s, err := NewSQLite(dsn)
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func mustCreateSource(t *testing.T, s *SQLiteStore, id string) model.Source {
	t.Helper()
	src := model.Source{ID: id, Title: "title-" + id, SourceType: model.SourceTypeText, CreatedAt: time.Now().UTC()}
	require.NoError(t, s.CreateSource(context.Background(), src))
	return src
}

func TestCreateAndGetSource(t *testing.T) {
	s := newTestStore(t)
	src := mustCreateSource(t, s, "src000000001")

	got, err := s.GetSource(context.Background(), src.ID)
	require.NoError(t, err)
	assert.Equal(t, src.Title, got.Title)
}

func TestInsertClaims_DeduplicatesByHash(t *testing.T) {
	s := newTestStore(t)
	src := mustCreateSource(t, s, "src000000002")

	claim := model.Claim{
		ID: model.NewID(), SourceID: src.ID, Text: "Revenue grew 12 percent year over year.",
		ClaimHash: "hash1", ClaimHashGlobal: "ghash1", CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC(),
	}

	n, err := s.InsertClaims(context.Background(), []model.Claim{claim})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = s.InsertClaims(context.Background(), []model.Claim{claim})
	require.NoError(t, err)
	assert.Equal(t, 0, n, "duplicate (source_id, claim_hash) must be ignored")
}

func TestListClaimsBySource_OrderedByTsStart(t *testing.T) {
	s := newTestStore(t)
	src := mustCreateSource(t, s, "src000000003")

	claims := []model.Claim{
		{ID: model.NewID(), SourceID: src.ID, Text: "second claim text that is long enough", TsStart: 10, ClaimHash: "h2", ClaimHashGlobal: "g2", CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()},
		{ID: model.NewID(), SourceID: src.ID, Text: "first claim text that is long enough", TsStart: 1, ClaimHash: "h1", ClaimHashGlobal: "g1", CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()},
	}
	_, err := s.InsertClaims(context.Background(), claims)
	require.NoError(t, err)

	got, err := s.ListClaimsBySource(context.Background(), src.ID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, float64(1), got[0].TsStart)
	assert.Equal(t, float64(10), got[1].TsStart)
}

func TestSetClaimAutoStatus_NeverTouchesHuman(t *testing.T) {
	s := newTestStore(t)
	src := mustCreateSource(t, s, "src000000004")
	claim := model.Claim{ID: model.NewID(), SourceID: src.ID, Text: "A claim that is long enough to pass validation", ClaimHash: "h3", ClaimHashGlobal: "g3", CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()}
	_, err := s.InsertClaims(context.Background(), []model.Claim{claim})
	require.NoError(t, err)

	require.NoError(t, s.SetClaimStatusHuman(context.Background(), claim.ID, model.StatusContradicted))
	require.NoError(t, s.SetClaimAutoStatus(context.Background(), claim.ID, model.AutoStatusSupported, 0.9))

	got, err := s.GetClaim(context.Background(), claim.ID)
	require.NoError(t, err)
	require.NotNil(t, got.StatusHuman)
	assert.Equal(t, model.StatusContradicted, *got.StatusHuman)
	assert.Equal(t, model.StatusContradicted, got.FinalStatus())
}

func TestTopGlobalClaims_RequiresTwoDistinctSources(t *testing.T) {
	s := newTestStore(t)
	src1 := mustCreateSource(t, s, "src000000005")
	src2 := mustCreateSource(t, s, "src000000006")

	shared := "revenue grew twelve percent year over year according to the report"
	_, err := s.InsertClaims(context.Background(), []model.Claim{
		{ID: model.NewID(), SourceID: src1.ID, Text: shared, ClaimHash: "ha", ClaimHashGlobal: "shared-hash", CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()},
		{ID: model.NewID(), SourceID: src2.ID, Text: shared, ClaimHash: "hb", ClaimHashGlobal: "shared-hash", CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()},
		{ID: model.NewID(), SourceID: src1.ID, Text: "a lone unrelated claim that only appears once here", ClaimHash: "hc", ClaimHashGlobal: "lone-hash", CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()},
	})
	require.NoError(t, err)

	groups, err := s.TopGlobalClaims(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, groups, 1)
	assert.Equal(t, "shared-hash", groups[0].ClaimHashGlobal)
	assert.Equal(t, 2, groups[0].SourceCount)
}

func TestReviewQueue_OrdersByAscendingConfidence(t *testing.T) {
	s := newTestStore(t)
	src := mustCreateSource(t, s, "src000000007")
	_, err := s.InsertClaims(context.Background(), []model.Claim{
		{ID: "claimhigh0001", SourceID: src.ID, Text: "high confidence unknown claim that is long enough", ClaimHash: "h4", ClaimHashGlobal: "g4", StatusAuto: model.AutoStatusUnknown, AutoConfidence: 0.6, CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()},
		{ID: "claimlow00001", SourceID: src.ID, Text: "low confidence unknown claim that is long enough", ClaimHash: "h5", ClaimHashGlobal: "g5", StatusAuto: model.AutoStatusUnknown, AutoConfidence: 0.1, CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()},
	})
	require.NoError(t, err)

	queue, err := s.ReviewQueue(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, queue, 2)
	assert.Equal(t, "claimlow00001", queue[0].ID)
}

func TestReplaceGraph_AtomicSwap(t *testing.T) {
	s := newTestStore(t)
	src := mustCreateSource(t, s, "src000000008")
	_, err := s.InsertClaims(context.Background(), []model.Claim{
		{ID: "claim1", SourceID: src.ID, Text: "a clustered claim that is long enough", ClaimHash: "h6", ClaimHashGlobal: "g6", CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()},
	})
	require.NoError(t, err)
	cluster := model.Cluster{ID: "cluster0001", RepresentativeText: "rep", Category: model.CategoryGeneral, ClaimCount: 2, SourceCount: 2, BestStatus: model.StatusPartial, BestConfidence: 0.7, ConsensusScore: 0.8, CreatedAt: time.Now().UTC(), UpdatedAt: time.Now().UTC()}
	snapshot := GraphSnapshot{
		Clusters: []model.Cluster{cluster},
		Members: map[string][]model.ClusterMember{
			cluster.ID: {{ClusterID: cluster.ID, ClaimID: "claim1", Fingerprint: "fp", SimilarityToRep: 1.0}},
		},
	}
	require.NoError(t, s.ReplaceGraph(context.Background(), snapshot))

	got, err := s.ListClusters(context.Background(), ClusterSortConsensus, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, cluster.ID, got[0].ID)

	members, err := s.ListClusterMembers(context.Background(), cluster.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)

	require.NoError(t, s.ReplaceGraph(context.Background(), GraphSnapshot{}))
	got, err = s.ListClusters(context.Background(), ClusterSortConsensus, 10)
	require.NoError(t, err)
	assert.Empty(t, got)
}
