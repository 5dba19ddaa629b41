package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/amdsolutions007/Naija-Prop-Intel/internal/db"
	"github.com/amdsolutions007/Naija-Prop-Intel/internal/model"
)

// PostgresStore implements Repository, Importer and HistoryStore using pgxpool.
type PostgresStore struct {
	pool    db.Pool
	closeFn func()
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection for
// faster execution of the most frequently used store operations.
var preparedStatements = map[string]string{
	"get_zone":          `SELECT record FROM zones WHERE name = $1`,
	"list_names":        `SELECT name FROM zones ORDER BY name`,
	"insert_assessment": `INSERT INTO assessments (id, kind, zone, price, holding_years, score, verdict, detail, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
	"get_assessment":    `SELECT id, kind, zone, price, holding_years, score, verdict, detail, created_at FROM assessments WHERE id = $1`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	// Apply pool sizing from config with sensible defaults.
	maxConns := int32(10)
	minConns := int32(2)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	// Prepare frequently-used statements on each new connection.
	pgxCfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		for name, sql := range preparedStatements {
			if _, err := conn.Prepare(ctx, name, sql); err != nil {
				return eris.Wrapf(err, "postgres: prepare %s", name)
			}
		}
		return nil
	}

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool, closeFn: pool.Close}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS zones (
	name       TEXT PRIMARY KEY,
	record     JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS assessments (
	id            TEXT PRIMARY KEY DEFAULT gen_random_uuid()::text,
	kind          TEXT NOT NULL,
	zone          TEXT NOT NULL,
	price         DOUBLE PRECISION NOT NULL,
	holding_years INTEGER NOT NULL DEFAULT 0,
	score         DOUBLE PRECISION NOT NULL,
	verdict       TEXT NOT NULL,
	detail        JSONB,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_assessments_kind ON assessments(kind);
CREATE INDEX IF NOT EXISTS idx_assessments_zone ON assessments(zone);
CREATE INDEX IF NOT EXISTS idx_assessments_created_at ON assessments(created_at);
`

func (s *PostgresStore) Ping(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, "SELECT 1")
	return eris.Wrap(err, "postgres: ping")
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	if s.closeFn != nil {
		s.closeFn()
	}
	return nil
}

func (s *PostgresStore) Zone(ctx context.Context, name string) (model.Zone, error) {
	var recordJSON []byte
	err := s.pool.QueryRow(ctx,
		`SELECT record FROM zones WHERE name = $1`,
		name,
	).Scan(&recordJSON)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Zone{}, &model.NotFoundError{Query: name}
		}
		return model.Zone{}, eris.Wrapf(err, "postgres: get zone %s", name)
	}

	var z model.Zone
	if err := json.Unmarshal(recordJSON, &z); err != nil {
		return model.Zone{}, eris.Wrapf(err, "postgres: unmarshal zone %s", name)
	}
	z.Name = name
	return z, nil
}

func (s *PostgresStore) Names(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT name FROM zones ORDER BY name`)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list names")
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, eris.Wrap(err, "postgres: scan name")
		}
		names = append(names, name)
	}
	return names, eris.Wrap(rows.Err(), "postgres: list names iterate")
}

// ImportZones validates and bulk-upserts the given records, returning the
// number of records written.
func (s *PostgresStore) ImportZones(ctx context.Context, zones []model.Zone) (int, error) {
	rows := make([][]any, 0, len(zones))
	now := time.Now().UTC()
	for _, z := range zones {
		if err := z.Validate(); err != nil {
			return 0, eris.Wrap(err, "postgres: import zones")
		}
		recordJSON, err := json.Marshal(z)
		if err != nil {
			return 0, eris.Wrapf(err, "postgres: marshal zone %s", z.Name)
		}
		rows = append(rows, []any{z.Name, recordJSON, now})
	}

	n, err := db.BulkUpsert(ctx, s.pool, db.UpsertConfig{
		Table:        "zones",
		Columns:      []string{"name", "record", "updated_at"},
		ConflictKeys: []string{"name"},
	}, rows)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: import zones")
	}
	return int(n), nil
}

func (s *PostgresStore) SaveAssessment(ctx context.Context, a *model.Assessment) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO assessments (id, kind, zone, price, holding_years, score, verdict, detail, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		a.ID, string(a.Kind), a.Zone, a.Price, a.HoldingYears, a.Score, a.Verdict, a.Detail, a.CreatedAt,
	)
	return eris.Wrap(err, "postgres: insert assessment")
}

func (s *PostgresStore) GetAssessment(ctx context.Context, id string) (*model.Assessment, error) {
	var a model.Assessment
	var kind string
	var detail []byte

	err := s.pool.QueryRow(ctx,
		`SELECT id, kind, zone, price, holding_years, score, verdict, detail, created_at
		 FROM assessments WHERE id = $1`,
		id,
	).Scan(&a.ID, &kind, &a.Zone, &a.Price, &a.HoldingYears, &a.Score, &a.Verdict, &detail, &a.CreatedAt)
	if err != nil {
		return nil, eris.Wrapf(err, "postgres: get assessment %s", id)
	}

	a.Kind = model.AssessmentKind(kind)
	a.Detail = detail
	return &a, nil
}

func (s *PostgresStore) ListAssessments(ctx context.Context, filter HistoryFilter) ([]model.Assessment, error) {
	query := `SELECT id, kind, zone, price, holding_years, score, verdict, detail, created_at
	          FROM assessments WHERE true`
	args := []any{}
	argIdx := 1

	if filter.Kind != "" {
		query += fmt.Sprintf(` AND kind = $%d`, argIdx)
		args = append(args, string(filter.Kind))
		argIdx++
	}
	if filter.Zone != "" {
		query += fmt.Sprintf(` AND zone = $%d`, argIdx)
		args = append(args, filter.Zone)
		argIdx++
	}
	query += ` ORDER BY created_at DESC`

	limit := filter.Limit
	if limit <= 0 {
		limit = 100
	}
	query += fmt.Sprintf(` LIMIT $%d`, argIdx)
	args = append(args, limit)
	argIdx++

	if filter.Offset > 0 {
		query += fmt.Sprintf(` OFFSET $%d`, argIdx)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list assessments")
	}
	defer rows.Close()

	var out []model.Assessment
	for rows.Next() {
		var a model.Assessment
		var kind string
		var detail []byte

		if err := rows.Scan(&a.ID, &kind, &a.Zone, &a.Price, &a.HoldingYears, &a.Score, &a.Verdict, &detail, &a.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan assessment")
		}
		a.Kind = model.AssessmentKind(kind)
		a.Detail = detail
		out = append(out, a)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list assessments iterate")
}

func (s *PostgresStore) DeleteAssessment(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM assessments WHERE id = $1`, id)
	if err != nil {
		return eris.Wrapf(err, "postgres: delete assessment %s", id)
	}
	if tag.RowsAffected() == 0 {
		return eris.Errorf("assessment not found: %s", id)
	}
	return nil
}
