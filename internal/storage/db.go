package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"gamedex/internal"
)

// DB is the diagnostics sink: every catalogue build persists its full
// report here so the external dashboard can audit historical runs. The
// catalogue itself is never persisted.
type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS ingests (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  traceId TEXT NOT NULL UNIQUE,
  sourceRef TEXT NOT NULL,
  countsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS rejections (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ingestId INTEGER NOT NULL,
  idx INTEGER NOT NULL,
  derivedId TEXT NOT NULL,
  explicitId TEXT NOT NULL,
  name TEXT NOT NULL,
  issuesJson TEXT NOT NULL,
  warningsJson TEXT NOT NULL,
  validationJson TEXT NOT NULL,
  included INTEGER NOT NULL,
  duplicateCount INTEGER,
  duplicateOf INTEGER,
  UNIQUE(ingestId, idx),
  FOREIGN KEY(ingestId) REFERENCES ingests(id)
);
CREATE INDEX IF NOT EXISTS idx_rejections_ingest ON rejections(ingestId);

CREATE TABLE IF NOT EXISTS duplicate_groups (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ingestId INTEGER NOT NULL,
  sharedId TEXT NOT NULL,
  memberIndicesJson TEXT NOT NULL,
  namesJson TEXT NOT NULL,
  FOREIGN KEY(ingestId) REFERENCES ingests(id)
);

CREATE TABLE IF NOT EXISTS coverage (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  ingestId INTEGER NOT NULL,
  fieldLabel TEXT NOT NULL,
  presentCount INTEGER NOT NULL,
  totalCount INTEGER NOT NULL,
  FOREIGN KEY(ingestId) REFERENCES ingests(id)
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// IngestRow is one persisted build run.
type IngestRow struct {
	ID        int64
	TraceID   string
	SourceRef string
	Counts    internal.IngestCounts
	CreatedAt string
}

// InsertReport persists one build report under a trace id and returns the
// ingest row id.
func (d *DB) InsertReport(traceID, sourceRef string, report *internal.Report) (int64, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback() }()

	countsJSON, _ := json.Marshal(report.Counts)
	res, err := tx.Exec(
		`INSERT INTO ingests (traceId, sourceRef, countsJson) VALUES (?, ?, ?)`,
		traceID, sourceRef, string(countsJSON),
	)
	if err != nil {
		return 0, err
	}
	ingestID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}

	stmt, err := tx.Prepare(`
INSERT INTO rejections (
  ingestId, idx, derivedId, explicitId, name,
  issuesJson, warningsJson, validationJson, included, duplicateCount, duplicateOf
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	for _, rec := range report.Records {
		issuesJSON, _ := json.Marshal(rec.Issues)
		warningsJSON, _ := json.Marshal(rec.Warnings)
		validationJSON, _ := json.Marshal(rec.ValidationIssues)
		if _, err := stmt.Exec(
			ingestID, rec.Index, rec.DerivedID, rec.ExplicitID, rec.Name,
			string(issuesJSON), string(warningsJSON), string(validationJSON),
			boolInt(rec.Included), rec.DuplicateCount, rec.DuplicateOf,
		); err != nil {
			return 0, err
		}
	}

	for _, group := range report.DuplicateGroups {
		membersJSON, _ := json.Marshal(group.MemberIndices)
		namesJSON, _ := json.Marshal(group.Names)
		if _, err := tx.Exec(
			`INSERT INTO duplicate_groups (ingestId, sharedId, memberIndicesJson, namesJson) VALUES (?, ?, ?, ?)`,
			ingestID, group.SharedID, string(membersJSON), string(namesJSON),
		); err != nil {
			return 0, err
		}
	}

	for _, cov := range report.Coverage {
		if _, err := tx.Exec(
			`INSERT INTO coverage (ingestId, fieldLabel, presentCount, totalCount) VALUES (?, ?, ?, ?)`,
			ingestID, cov.FieldLabel, cov.PresentCount, cov.TotalCount,
		); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return ingestID, nil
}

// GetReport reassembles a persisted report.
func (d *DB) GetReport(ingestID int64) (*internal.Report, error) {
	report := &internal.Report{}

	var countsJSON string
	err := d.conn.QueryRow(`SELECT countsJson FROM ingests WHERE id = ?`, ingestID).Scan(&countsJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("no ingest with id=%d", ingestID)
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal([]byte(countsJSON), &report.Counts); err != nil {
		return nil, err
	}

	rows, err := d.conn.Query(`
SELECT idx, derivedId, explicitId, name, issuesJson, warningsJson, validationJson,
       included, duplicateCount, duplicateOf
FROM rejections WHERE ingestId = ? ORDER BY idx`, ingestID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var rec internal.RejectionRecord
		var issuesJSON, warningsJSON, validationJSON string
		var included int
		var dupCount, dupOf sql.NullInt64
		if err := rows.Scan(
			&rec.Index, &rec.DerivedID, &rec.ExplicitID, &rec.Name,
			&issuesJSON, &warningsJSON, &validationJSON, &included, &dupCount, &dupOf,
		); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(issuesJSON), &rec.Issues)
		_ = json.Unmarshal([]byte(warningsJSON), &rec.Warnings)
		_ = json.Unmarshal([]byte(validationJSON), &rec.ValidationIssues)
		rec.Included = included != 0
		if dupCount.Valid {
			n := int(dupCount.Int64)
			rec.DuplicateCount = &n
		}
		if dupOf.Valid {
			n := int(dupOf.Int64)
			rec.DuplicateOf = &n
		}
		report.Records = append(report.Records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	groups, err := d.conn.Query(
		`SELECT sharedId, memberIndicesJson, namesJson FROM duplicate_groups WHERE ingestId = ? ORDER BY id`, ingestID)
	if err != nil {
		return nil, err
	}
	defer groups.Close()
	for groups.Next() {
		var group internal.DuplicateGroup
		var membersJSON, namesJSON string
		if err := groups.Scan(&group.SharedID, &membersJSON, &namesJSON); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(membersJSON), &group.MemberIndices)
		_ = json.Unmarshal([]byte(namesJSON), &group.Names)
		report.DuplicateGroups = append(report.DuplicateGroups, group)
	}
	if err := groups.Err(); err != nil {
		return nil, err
	}

	cov, err := d.conn.Query(
		`SELECT fieldLabel, presentCount, totalCount FROM coverage WHERE ingestId = ? ORDER BY id`, ingestID)
	if err != nil {
		return nil, err
	}
	defer cov.Close()
	for cov.Next() {
		var c internal.FieldCoverage
		if err := cov.Scan(&c.FieldLabel, &c.PresentCount, &c.TotalCount); err != nil {
			return nil, err
		}
		report.Coverage = append(report.Coverage, c)
	}
	if err := cov.Err(); err != nil {
		return nil, err
	}

	return report, nil
}

// ListIngests returns the most recent build runs, newest first.
func (d *DB) ListIngests(limit int) ([]IngestRow, error) {
	rows, err := d.conn.Query(
		`SELECT id, traceId, sourceRef, countsJson, createdAt FROM ingests ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []IngestRow
	for rows.Next() {
		var row IngestRow
		var countsJSON string
		if err := rows.Scan(&row.ID, &row.TraceID, &row.SourceRef, &countsJSON, &row.CreatedAt); err != nil {
			return nil, err
		}
		_ = json.Unmarshal([]byte(countsJSON), &row.Counts)
		out = append(out, row)
	}
	return out, rows.Err()
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
