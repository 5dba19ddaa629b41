package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
)

// SQLiteStore implements Repository, Importer and HistoryStore using
// modernc.org/sqlite. Zone records are stored as JSON blobs keyed by name.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS zones (
	name       TEXT PRIMARY KEY,
	record     TEXT NOT NULL,
	updated_at DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS assessments (
	id            TEXT PRIMARY KEY,
	kind          TEXT NOT NULL,
	zone          TEXT NOT NULL,
	price         REAL NOT NULL,
	holding_years INTEGER NOT NULL DEFAULT 0,
	score         REAL NOT NULL,
	verdict       TEXT NOT NULL,
	detail        TEXT,
	created_at    DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_assessments_kind ON assessments(kind);
CREATE INDEX IF NOT EXISTS idx_assessments_zone ON assessments(zone);
CREATE INDEX IF NOT EXISTS idx_assessments_created_at ON assessments(created_at);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Zone(ctx context.Context, name string) (model.Zone, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT record FROM zones WHERE name = ?`,
		name,
	)

	var recordJSON string
	err := row.Scan(&recordJSON)
	if err == sql.ErrNoRows {
		return model.Zone{}, &model.NotFoundError{Query: name}
	}
	if err != nil {
		return model.Zone{}, eris.Wrapf(err, "sqlite: get zone %s", name)
	}

	var z model.Zone
	if err := json.Unmarshal([]byte(recordJSON), &z); err != nil {
		return model.Zone{}, eris.Wrapf(err, "sqlite: unmarshal zone %s", name)
	}
	z.Name = name
	return z, nil
}

func (s *SQLiteStore) Names(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name FROM zones ORDER BY name`)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list names")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan name")
		}
		names = append(names, name)
	}
	return names, eris.Wrap(rows.Err(), "sqlite: list names iterate")
}

// ImportZones validates and upserts the given records in one transaction,
// returning the number of records written.
func (s *SQLiteStore) ImportZones(ctx context.Context, zones []model.Zone) (int, error) {
	for _, z := range zones {
		if err := z.Validate(); err != nil {
			return 0, eris.Wrap(err, "sqlite: import zones")
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: begin import")
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	for _, z := range zones {
		recordJSON, err := json.Marshal(z)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: marshal zone %s", z.Name)
		}
		_, err = tx.ExecContext(ctx,
			`INSERT INTO zones (name, record, updated_at) VALUES (?, ?, ?)
			 ON CONFLICT (name) DO UPDATE SET record = excluded.record, updated_at = excluded.updated_at`,
			z.Name, string(recordJSON), now,
		)
		if err != nil {
			return 0, eris.Wrapf(err, "sqlite: upsert zone %s", z.Name)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, eris.Wrap(err, "sqlite: commit import")
	}
	return len(zones), nil
}

func (s *SQLiteStore) SaveAssessment(ctx context.Context, a *model.Assessment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO assessments (id, kind, zone, price, holding_years, score, verdict, detail, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, string(a.Kind), a.Zone, a.Price, a.HoldingYears, a.Score, a.Verdict, string(a.Detail), a.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: insert assessment")
}

func (s *SQLiteStore) GetAssessment(ctx context.Context, id string) (*model.Assessment, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, kind, zone, price, holding_years, score, verdict, detail, created_at
		 FROM assessments WHERE id = ?`,
		id,
	)
	return scanAssessment(row)
}

func (s *SQLiteStore) ListAssessments(ctx context.Context, filter HistoryFilter) ([]model.Assessment, error) {
	query := `SELECT id, kind, zone, price, holding_years, score, verdict, detail, created_at
	          FROM assessments WHERE 1=1`
	var args []any

	if filter.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(filter.Kind))
	}
	if filter.Zone != "" {
		query += ` AND zone = ?`
		args = append(args, filter.Zone)
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += ` LIMIT ?`
	args = append(args, limit)

	if filter.Offset > 0 {
		query += ` OFFSET ?`
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list assessments")
	}
	defer rows.Close()

	var out []model.Assessment
	for rows.Next() {
		a, err := scanAssessment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list assessments iterate")
}

func (s *SQLiteStore) DeleteAssessment(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM assessments WHERE id = ?`, id)
	if err != nil {
		return eris.Wrapf(err, "sqlite: delete assessment %s", id)
	}
	return checkRowsAffected(res, "assessment", id)
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

func scanAssessment(row scannable) (*model.Assessment, error) {
	var a model.Assessment
	var kind string
	var detail sql.NullString

	err := row.Scan(&a.ID, &kind, &a.Zone, &a.Price, &a.HoldingYears, &a.Score, &a.Verdict, &detail, &a.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, eris.New("assessment not found")
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan assessment")
	}

	a.Kind = model.AssessmentKind(kind)
	if detail.Valid && detail.String != "" {
		a.Detail = []byte(detail.String)
	}
	return &a, nil
}
