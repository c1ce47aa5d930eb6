package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite" // register the pure-Go SQLite driver

	"github.com/obelus-labs/veritas-core/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite, single-writer,
// write-ahead logging (spec.md §4.9).
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at dsn and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	if !strings.Contains(dsn, "?") {
		dsn += "?"
	} else {
		dsn += "&"
	}
	dsn += "_pragma=busy_timeout(30000)&_pragma=journal_mode(WAL)&_pragma=synchronous(NORMAL)&_pragma=foreign_keys(ON)"

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	db.SetMaxOpenConns(1) // single-writer (spec.md §4.9)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, eris.Wrap(err, "sqlite: ping")
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS sources (
	id               TEXT PRIMARY KEY,
	url              TEXT,
	title            TEXT,
	channel          TEXT,
	upload_date      DATETIME,
	source_type      TEXT NOT NULL,
	duration_seconds REAL NOT NULL DEFAULT 0,
	local_audio_path TEXT,
	transcript_path  TEXT,
	created_at       DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS claims (
	id                  TEXT PRIMARY KEY,
	source_id           TEXT NOT NULL REFERENCES sources(id),
	text                TEXT NOT NULL,
	ts_start            REAL NOT NULL,
	ts_end              REAL NOT NULL,
	speaker             TEXT,
	confidence_language TEXT NOT NULL DEFAULT 'unknown',
	category            TEXT NOT NULL DEFAULT 'general',
	claim_hash          TEXT NOT NULL,
	claim_hash_global   TEXT NOT NULL,
	signals             TEXT NOT NULL DEFAULT '',
	status              TEXT NOT NULL DEFAULT 'unknown',
	status_auto         TEXT NOT NULL DEFAULT 'unknown',
	auto_confidence     REAL NOT NULL DEFAULT 0,
	status_human        TEXT,
	extraction_version  INTEGER NOT NULL DEFAULT 1,
	created_at          DATETIME NOT NULL,
	updated_at          DATETIME NOT NULL,
	UNIQUE(source_id, claim_hash)
);

CREATE INDEX IF NOT EXISTS idx_claims_source ON claims(source_id);
CREATE INDEX IF NOT EXISTS idx_claims_global_hash ON claims(claim_hash_global);
CREATE INDEX IF NOT EXISTS idx_claims_review_queue ON claims(status_auto, auto_confidence);

CREATE TABLE IF NOT EXISTS evidence_suggestions (
	id                  TEXT PRIMARY KEY,
	claim_id            TEXT NOT NULL REFERENCES claims(id),
	url                 TEXT NOT NULL,
	title               TEXT,
	source_name         TEXT NOT NULL,
	evidence_type       TEXT NOT NULL,
	score               REAL NOT NULL,
	signals             TEXT NOT NULL DEFAULT '',
	snippet             TEXT,
	provider_latency_ms INTEGER NOT NULL DEFAULT 0,
	created_at          DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_suggestions_claim ON evidence_suggestions(claim_id);

CREATE TABLE IF NOT EXISTS evidence (
	id            TEXT PRIMARY KEY,
	claim_id      TEXT NOT NULL REFERENCES claims(id),
	url           TEXT NOT NULL,
	title         TEXT,
	evidence_type TEXT NOT NULL,
	strength      TEXT NOT NULL,
	notes         TEXT,
	created_at    DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_evidence_claim ON evidence(claim_id);

CREATE TABLE IF NOT EXISTS clusters (
	id                  TEXT PRIMARY KEY,
	representative_text TEXT NOT NULL,
	category            TEXT NOT NULL,
	claim_count         INTEGER NOT NULL,
	source_count        INTEGER NOT NULL,
	best_status         TEXT NOT NULL,
	best_confidence     REAL NOT NULL,
	consensus_score     REAL NOT NULL,
	created_at          DATETIME NOT NULL,
	updated_at          DATETIME NOT NULL
);

CREATE TABLE IF NOT EXISTS cluster_members (
	cluster_id        TEXT NOT NULL REFERENCES clusters(id),
	claim_id          TEXT NOT NULL REFERENCES claims(id),
	fingerprint       TEXT NOT NULL,
	similarity_to_rep REAL NOT NULL,
	PRIMARY KEY (cluster_id, claim_id)
);

CREATE INDEX IF NOT EXISTS idx_cluster_members_claim ON cluster_members(claim_id);
`

// claimColumnDefaults lists columns introduced after the original Claim
// table, added on open if missing (spec.md §4.9: "Forward-compatible
// column addition").
var claimColumnDefaults = []struct {
	name, ddl string
}{
	{"category", "ALTER TABLE claims ADD COLUMN category TEXT NOT NULL DEFAULT 'general'"},
	{"claim_hash", "ALTER TABLE claims ADD COLUMN claim_hash TEXT NOT NULL DEFAULT ''"},
	{"claim_hash_global", "ALTER TABLE claims ADD COLUMN claim_hash_global TEXT NOT NULL DEFAULT ''"},
	{"signals", "ALTER TABLE claims ADD COLUMN signals TEXT NOT NULL DEFAULT ''"},
	{"status_auto", "ALTER TABLE claims ADD COLUMN status_auto TEXT NOT NULL DEFAULT 'unknown'"},
	{"auto_confidence", "ALTER TABLE claims ADD COLUMN auto_confidence REAL NOT NULL DEFAULT 0"},
	{"status_human", "ALTER TABLE claims ADD COLUMN status_human TEXT"},
}

// Migrate implements Store.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteMigration); err != nil {
		return eris.Wrap(err, "sqlite: migrate")
	}

	existing, err := s.claimColumns(ctx)
	if err != nil {
		return err
	}
	for _, col := range claimColumnDefaults {
		if existing[col.name] {
			continue
		}
		if _, err := s.db.ExecContext(ctx, col.ddl); err != nil {
			return eris.Wrapf(err, "sqlite: add column %s", col.name)
		}
	}
	return nil
}

func (s *SQLiteStore) claimColumns(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, `PRAGMA table_info(claims)`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: introspect claims columns")
	}
	defer rows.Close() //nolint:errcheck

	cols := make(map[string]bool)
	for rows.Next() {
		var cid int
		var name, colType string
		var notNull, pk int
		var dflt sql.NullString
		if err := rows.Scan(&cid, &name, &colType, &notNull, &dflt, &pk); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan column info")
		}
		cols[name] = true
	}
	return cols, eris.Wrap(rows.Err(), "sqlite: iterate column info")
}

// Ping implements Store.
func (s *SQLiteStore) Ping(ctx context.Context) error { return s.db.PingContext(ctx) }

// Close implements Store.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// CreateSource implements Store.
func (s *SQLiteStore) CreateSource(ctx context.Context, src model.Source) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sources (id, url, title, channel, upload_date, source_type, duration_seconds, local_audio_path, transcript_path, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		src.ID, src.URL, src.Title, src.Channel, src.UploadDate, string(src.SourceType),
		src.DurationSecs, src.LocalAudioPath, src.TranscriptPath, src.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: create source")
}

// SetTranscriptPath implements Store.
func (s *SQLiteStore) SetTranscriptPath(ctx context.Context, sourceID, path string) error {
	res, err := s.db.ExecContext(ctx, `UPDATE sources SET transcript_path = ? WHERE id = ?`, path, sourceID)
	if err != nil {
		return eris.Wrapf(err, "sqlite: set transcript path for %s", sourceID)
	}
	return checkRowsAffected(res, "source", sourceID)
}

// GetSource implements Store.
func (s *SQLiteStore) GetSource(ctx context.Context, id string) (*model.Source, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, url, title, channel, upload_date, source_type, duration_seconds, local_audio_path, transcript_path, created_at
		 FROM sources WHERE id = ?`, id)
	return scanSource(row)
}

func scanSource(row scannable) (*model.Source, error) {
	var src model.Source
	var sourceType string
	var uploadDate sql.NullTime
	err := row.Scan(&src.ID, &src.URL, &src.Title, &src.Channel, &uploadDate, &sourceType,
		&src.DurationSecs, &src.LocalAudioPath, &src.TranscriptPath, &src.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("source not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan source")
	}
	src.SourceType = model.SourceType(sourceType)
	if uploadDate.Valid {
		src.UploadDate = &uploadDate.Time
	}
	return &src, nil
}

// ListSources implements Store: one row per source plus final-status tallies.
func (s *SQLiteStore) ListSources(ctx context.Context) ([]SourceVerificationCounts, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, url, title, channel, upload_date, source_type, duration_seconds, local_audio_path, transcript_path, created_at
		 FROM sources ORDER BY created_at DESC`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list sources")
	}
	defer rows.Close() //nolint:errcheck

	var out []SourceVerificationCounts
	for rows.Next() {
		src, err := scanSource(rows)
		if err != nil {
			return nil, err
		}
		claims, err := s.ListClaimsBySource(ctx, src.ID)
		if err != nil {
			return nil, err
		}
		counts := SourceVerificationCounts{Source: *src, ClaimCount: len(claims)}
		for _, c := range claims {
			switch c.FinalStatus() {
			case model.StatusSupported:
				counts.Supported++
			case model.StatusPartial:
				counts.Partial++
			case model.StatusContradicted:
				counts.Contradicted++
			default:
				counts.Unknown++
			}
		}
		out = append(out, counts)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list sources iterate")
}

// InsertClaims implements Store: duplicates on (source_id, claim_hash) are
// silently skipped (spec.md §4.2 step 7, "first by exact claim_hash").
func (s *SQLiteStore) InsertClaims(ctx context.Context, claims []model.Claim) (int, error) {
	if len(claims) == 0 {
		return 0, nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: insert claims begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO claims
		 (id, source_id, text, ts_start, ts_end, speaker, confidence_language, category,
		  claim_hash, claim_hash_global, signals, status, status_auto, auto_confidence,
		  status_human, extraction_version, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: prepare insert claim")
	}
	defer stmt.Close() //nolint:errcheck

	inserted := 0
	for _, c := range claims {
		var statusHuman *string
		if c.StatusHuman != nil {
			v := string(*c.StatusHuman)
			statusHuman = &v
		}
		res, err := stmt.ExecContext(ctx,
			c.ID, c.SourceID, c.Text, c.TsStart, c.TsEnd, c.Speaker, string(c.ConfidenceLang), string(c.Category),
			c.ClaimHash, c.ClaimHashGlobal, c.Signals, string(c.Status), string(c.StatusAuto), c.AutoConfidence,
			statusHuman, c.ExtractionVersion, c.CreatedAt, c.UpdatedAt,
		)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: insert claim %s", c.ID)
		}
		n, _ := res.RowsAffected()
		inserted += int(n)
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: insert claims commit")
	}
	return inserted, nil
}

const claimColumns = `id, source_id, text, ts_start, ts_end, speaker, confidence_language, category,
	claim_hash, claim_hash_global, signals, status, status_auto, auto_confidence,
	status_human, extraction_version, created_at, updated_at`

func scanClaim(row scannable) (*model.Claim, error) {
	var c model.Claim
	var speaker sql.NullString
	var confLang, category, status, statusAuto string
	var statusHuman sql.NullString

	err := row.Scan(&c.ID, &c.SourceID, &c.Text, &c.TsStart, &c.TsEnd, &speaker, &confLang, &category,
		&c.ClaimHash, &c.ClaimHashGlobal, &c.Signals, &status, &statusAuto, &c.AutoConfidence,
		&statusHuman, &c.ExtractionVersion, &c.CreatedAt, &c.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("claim not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan claim")
	}
	c.Speaker = speaker.String
	c.ConfidenceLang = model.ConfidenceLanguage(confLang)
	c.Category = model.Category(category)
	c.Status = model.ClaimStatus(status)
	c.StatusAuto = model.AutoStatus(statusAuto)
	if statusHuman.Valid {
		v := model.ClaimStatus(statusHuman.String)
		c.StatusHuman = &v
	}
	return &c, nil
}

// GetClaim implements Store.
func (s *SQLiteStore) GetClaim(ctx context.Context, id string) (*model.Claim, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+claimColumns+` FROM claims WHERE id = ?`, id)
	return scanClaim(row)
}

// ListClaimsBySource implements Store, ordered by ts_start (spec.md §5:
// "claim rows for a source are emitted in the order of their ts_start").
func (s *SQLiteStore) ListClaimsBySource(ctx context.Context, sourceID string) ([]model.Claim, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+claimColumns+` FROM claims WHERE source_id = ? ORDER BY ts_start ASC`, sourceID)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list claims by source")
	}
	defer rows.Close() //nolint:errcheck
	return scanClaims(rows)
}

// ListAllClaims implements Store.
func (s *SQLiteStore) ListAllClaims(ctx context.Context) ([]model.Claim, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+claimColumns+` FROM claims ORDER BY created_at ASC`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list all claims")
	}
	defer rows.Close() //nolint:errcheck
	return scanClaims(rows)
}

func scanClaims(rows *sql.Rows) ([]model.Claim, error) {
	var out []model.Claim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate claims")
}

// DeleteClaimsForSource implements Store: cascades to evidence and
// suggestions (spec.md §3, "deleting claims for a source cascades").
func (s *SQLiteStore) DeleteClaimsForSource(ctx context.Context, sourceID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: delete claims begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM evidence_suggestions WHERE claim_id IN (SELECT id FROM claims WHERE source_id = ?)`, sourceID); err != nil {
		return eris.Wrap(err, "sqlite: delete suggestions cascade")
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM evidence WHERE claim_id IN (SELECT id FROM claims WHERE source_id = ?)`, sourceID); err != nil {
		return eris.Wrap(err, "sqlite: delete evidence cascade")
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM cluster_members WHERE claim_id IN (SELECT id FROM claims WHERE source_id = ?)`, sourceID); err != nil {
		return eris.Wrap(err, "sqlite: delete cluster members cascade")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM claims WHERE source_id = ?`, sourceID); err != nil {
		return eris.Wrap(err, "sqlite: delete claims")
	}
	return eris.Wrap(tx.Commit(), "sqlite: delete claims commit")
}

// SetClaimCategory implements Store.
func (s *SQLiteStore) SetClaimCategory(ctx context.Context, claimID string, category model.Category) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE claims SET category = ?, updated_at = ? WHERE id = ?`, string(category), now(), claimID)
	if err != nil {
		return eris.Wrapf(err, "sqlite: set category for %s", claimID)
	}
	return checkRowsAffected(res, "claim", claimID)
}

// SetClaimAutoStatus implements Store.
func (s *SQLiteStore) SetClaimAutoStatus(ctx context.Context, claimID string, status model.AutoStatus, confidence float64) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE claims SET status_auto = ?, auto_confidence = ?, updated_at = ? WHERE id = ?`,
		string(status), confidence, now(), claimID)
	if err != nil {
		return eris.Wrapf(err, "sqlite: set auto status for %s", claimID)
	}
	return checkRowsAffected(res, "claim", claimID)
}

// SetClaimStatusHuman implements Store: never touches status_auto
// (spec.md §3: "Human Evidence and status_human are never overwritten by automation").
func (s *SQLiteStore) SetClaimStatusHuman(ctx context.Context, claimID string, status model.ClaimStatus) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE claims SET status_human = ?, updated_at = ? WHERE id = ?`, string(status), now(), claimID)
	if err != nil {
		return eris.Wrapf(err, "sqlite: set human status for %s", claimID)
	}
	return checkRowsAffected(res, "claim", claimID)
}

// ClaimsByGlobalHash implements Store, ordered by the owning source's
// created_at (spec.md §4.9, "spread/timeline").
func (s *SQLiteStore) ClaimsByGlobalHash(ctx context.Context, hash string) ([]model.Claim, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT c.id, c.source_id, c.text, c.ts_start, c.ts_end, c.speaker, c.confidence_language, c.category,
		        c.claim_hash, c.claim_hash_global, c.signals, c.status, c.status_auto, c.auto_confidence,
		        c.status_human, c.extraction_version, c.created_at, c.updated_at
		 FROM claims c JOIN sources s ON s.id = c.source_id
		 WHERE c.claim_hash_global = ?
		 ORDER BY s.created_at ASC`, hash)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: claims by global hash")
	}
	defer rows.Close() //nolint:errcheck
	return scanClaims(rows)
}

// TopGlobalClaims implements Store: claims whose global hash appears in >= 2
// distinct sources, ranked by source count then frequency (spec.md §4.9).
func (s *SQLiteStore) TopGlobalClaims(ctx context.Context, limit int) ([]GlobalClaimGroup, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT claim_hash_global, COUNT(DISTINCT source_id) AS source_count, COUNT(*) AS freq
		 FROM claims
		 GROUP BY claim_hash_global
		 HAVING COUNT(DISTINCT source_id) >= 2
		 ORDER BY source_count DESC, freq DESC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: top global claims")
	}
	defer rows.Close() //nolint:errcheck

	var groups []GlobalClaimGroup
	var hashes []string
	counts := make(map[string]int)
	for rows.Next() {
		var hash string
		var sourceCount, freq int
		if err := rows.Scan(&hash, &sourceCount, &freq); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan top global claim")
		}
		hashes = append(hashes, hash)
		counts[hash] = sourceCount
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate top global claims")
	}

	for _, hash := range hashes {
		claims, err := s.ClaimsByGlobalHash(ctx, hash)
		if err != nil {
			return nil, err
		}
		groups = append(groups, GlobalClaimGroup{ClaimHashGlobal: hash, Claims: claims, SourceCount: counts[hash]})
	}
	return groups, nil
}

// ReviewQueue implements Store: status_auto=unknown and no human status
// first, then ascending auto_confidence (spec.md §4.9).
func (s *SQLiteStore) ReviewQueue(ctx context.Context, limit int) ([]model.Claim, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+claimColumns+` FROM claims
		 WHERE status_auto = 'unknown' AND status_human IS NULL
		 ORDER BY auto_confidence ASC
		 LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: review queue")
	}
	defer rows.Close() //nolint:errcheck
	return scanClaims(rows)
}

// SearchClaims implements Store: substring search over claim text.
func (s *SQLiteStore) SearchClaims(ctx context.Context, query string, limit int) ([]model.Claim, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+claimColumns+` FROM claims WHERE text LIKE ? ESCAPE '\' ORDER BY created_at DESC LIMIT ?`,
		"%"+escapeLike(query)+"%", limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: search claims")
	}
	defer rows.Close() //nolint:errcheck
	return scanClaims(rows)
}

func escapeLike(s string) string {
	r := strings.NewReplacer("\\", "\\\\", "%", "\\%", "_", "\\_")
	return r.Replace(s)
}

// ClearSuggestionsForSource implements Store (spec.md §3: "Suggestions for
// a source are cleared and rewritten by each orchestrator run").
func (s *SQLiteStore) ClearSuggestionsForSource(ctx context.Context, sourceID string) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM evidence_suggestions WHERE claim_id IN (SELECT id FROM claims WHERE source_id = ?)`, sourceID)
	return eris.Wrap(err, "sqlite: clear suggestions for source")
}

// InsertSuggestions implements Store.
func (s *SQLiteStore) InsertSuggestions(ctx context.Context, suggestions []model.EvidenceSuggestion) error {
	if len(suggestions) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: insert suggestions begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO evidence_suggestions
		 (id, claim_id, url, title, source_name, evidence_type, score, signals, snippet, provider_latency_ms, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare insert suggestion")
	}
	defer stmt.Close() //nolint:errcheck

	for _, e := range suggestions {
		if _, err := stmt.ExecContext(ctx,
			e.ID, e.ClaimID, e.URL, e.Title, e.SourceName, string(e.EvidenceType), e.Score,
			e.Signals, e.Snippet, e.ProviderLatencyMs, e.CreatedAt,
		); err != nil {
			return eris.Wrapf(err, "sqlite: insert suggestion %s", e.ID)
		}
	}
	return eris.Wrap(tx.Commit(), "sqlite: insert suggestions commit")
}

// ListSuggestionsForClaim implements Store, best score first.
func (s *SQLiteStore) ListSuggestionsForClaim(ctx context.Context, claimID string) ([]model.EvidenceSuggestion, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, claim_id, url, title, source_name, evidence_type, score, signals, snippet, provider_latency_ms, created_at
		 FROM evidence_suggestions WHERE claim_id = ? ORDER BY score DESC`, claimID)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list suggestions")
	}
	defer rows.Close() //nolint:errcheck

	var out []model.EvidenceSuggestion
	for rows.Next() {
		var e model.EvidenceSuggestion
		var evidenceType string
		if err := rows.Scan(&e.ID, &e.ClaimID, &e.URL, &e.Title, &e.SourceName, &evidenceType,
			&e.Score, &e.Signals, &e.Snippet, &e.ProviderLatencyMs, &e.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan suggestion")
		}
		e.EvidenceType = model.EvidenceType(evidenceType)
		out = append(out, e)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate suggestions")
}

// AddEvidence implements Store. Human evidence is never deleted or
// overwritten by the automated pipeline (spec.md §3).
func (s *SQLiteStore) AddEvidence(ctx context.Context, ev model.Evidence) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO evidence (id, claim_id, url, title, evidence_type, strength, notes, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		ev.ID, ev.ClaimID, ev.URL, ev.Title, string(ev.EvidenceType), string(ev.Strength), ev.Notes, ev.CreatedAt)
	return eris.Wrap(err, "sqlite: add evidence")
}

// ListEvidenceForClaim implements Store.
func (s *SQLiteStore) ListEvidenceForClaim(ctx context.Context, claimID string) ([]model.Evidence, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, claim_id, url, title, evidence_type, strength, notes, created_at
		 FROM evidence WHERE claim_id = ? ORDER BY created_at ASC`, claimID)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list evidence")
	}
	defer rows.Close() //nolint:errcheck

	var out []model.Evidence
	for rows.Next() {
		var e model.Evidence
		var evidenceType, strength string
		if err := rows.Scan(&e.ID, &e.ClaimID, &e.URL, &e.Title, &evidenceType, &strength, &e.Notes, &e.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan evidence")
		}
		e.EvidenceType = model.EvidenceType(evidenceType)
		e.Strength = model.EvidenceStrength(strength)
		out = append(out, e)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate evidence")
}

// ReplaceGraph implements Store: clears all cluster tables, writes new
// clusters, then members, in one transaction (spec.md §3, §4.8, §5:
// "readers never see a half-rebuilt graph").
func (s *SQLiteStore) ReplaceGraph(ctx context.Context, snapshot GraphSnapshot) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return eris.Wrap(err, "sqlite: replace graph begin tx")
	}
	defer tx.Rollback() //nolint:errcheck

	if _, err := tx.ExecContext(ctx, `DELETE FROM cluster_members`); err != nil {
		return eris.Wrap(err, "sqlite: clear cluster members")
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM clusters`); err != nil {
		return eris.Wrap(err, "sqlite: clear clusters")
	}

	clusterStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO clusters
		 (id, representative_text, category, claim_count, source_count, best_status, best_confidence, consensus_score, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare insert cluster")
	}
	defer clusterStmt.Close() //nolint:errcheck

	memberStmt, err := tx.PrepareContext(ctx,
		`INSERT INTO cluster_members (cluster_id, claim_id, fingerprint, similarity_to_rep) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return eris.Wrap(err, "sqlite: prepare insert cluster member")
	}
	defer memberStmt.Close() //nolint:errcheck

	for _, cl := range snapshot.Clusters {
		if _, err := clusterStmt.ExecContext(ctx,
			cl.ID, cl.RepresentativeText, string(cl.Category), cl.ClaimCount, cl.SourceCount,
			string(cl.BestStatus), cl.BestConfidence, cl.ConsensusScore, cl.CreatedAt, cl.UpdatedAt,
		); err != nil {
			return eris.Wrapf(err, "sqlite: insert cluster %s", cl.ID)
		}
		for _, m := range snapshot.Members[cl.ID] {
			if _, err := memberStmt.ExecContext(ctx, m.ClusterID, m.ClaimID, m.Fingerprint, m.SimilarityToRep); err != nil {
				return eris.Wrapf(err, "sqlite: insert cluster member %s/%s", cl.ID, m.ClaimID)
			}
		}
	}

	return eris.Wrap(tx.Commit(), "sqlite: replace graph commit")
}

var clusterSortColumn = map[ClusterSort]string{
	ClusterSortConsensus: "consensus_score",
	ClusterSortSources:   "source_count",
	ClusterSortClaims:    "claim_count",
}

// ListClusters implements Store.
func (s *SQLiteStore) ListClusters(ctx context.Context, sortBy ClusterSort, limit int) ([]model.Cluster, error) {
	col, ok := clusterSortColumn[sortBy]
	if !ok {
		col = "consensus_score"
	}
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		fmt.Sprintf(`SELECT id, representative_text, category, claim_count, source_count, best_status, best_confidence, consensus_score, created_at, updated_at
		 FROM clusters ORDER BY %s DESC LIMIT ?`, col), limit)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list clusters")
	}
	defer rows.Close() //nolint:errcheck

	var out []model.Cluster
	for rows.Next() {
		cl, err := scanCluster(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *cl)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate clusters")
}

func scanCluster(row scannable) (*model.Cluster, error) {
	var cl model.Cluster
	var category, bestStatus string
	err := row.Scan(&cl.ID, &cl.RepresentativeText, &category, &cl.ClaimCount, &cl.SourceCount,
		&bestStatus, &cl.BestConfidence, &cl.ConsensusScore, &cl.CreatedAt, &cl.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("cluster not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan cluster")
	}
	cl.Category = model.Category(category)
	cl.BestStatus = model.ClaimStatus(bestStatus)
	return &cl, nil
}

// GetCluster implements Store.
func (s *SQLiteStore) GetCluster(ctx context.Context, id string) (*model.Cluster, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, representative_text, category, claim_count, source_count, best_status, best_confidence, consensus_score, created_at, updated_at
		 FROM clusters WHERE id = ?`, id)
	return scanCluster(row)
}

// ListClusterMembers implements Store.
func (s *SQLiteStore) ListClusterMembers(ctx context.Context, clusterID string) ([]model.ClusterMember, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT cluster_id, claim_id, fingerprint, similarity_to_rep FROM cluster_members WHERE cluster_id = ?`, clusterID)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list cluster members")
	}
	defer rows.Close() //nolint:errcheck

	var out []model.ClusterMember
	for rows.Next() {
		var m model.ClusterMember
		if err := rows.Scan(&m.ClusterID, &m.ClaimID, &m.Fingerprint, &m.SimilarityToRep); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan cluster member")
		}
		out = append(out, m)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate cluster members")
}

// FindClusterByClaimOrHash implements Store: resolves the CLI's
// `spread`/`timeline`/`cluster` argument, which may be a claim id or a
// cluster id.
func (s *SQLiteStore) FindClusterByClaimOrHash(ctx context.Context, claimIDOrHash string) (*model.Cluster, error) {
	if cl, err := s.GetCluster(ctx, claimIDOrHash); err == nil {
		return cl, nil
	}

	row := s.db.QueryRowContext(ctx,
		`SELECT c.id, c.representative_text, c.category, c.claim_count, c.source_count, c.best_status, c.best_confidence, c.consensus_score, c.created_at, c.updated_at
		 FROM clusters c JOIN cluster_members m ON m.cluster_id = c.id
		 WHERE m.claim_id = ? LIMIT 1`, claimIDOrHash)
	return scanCluster(row)
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Errorf("%s not found: %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}
