package repository

import (
	"context"
	"time"

	"tickerpulse/internal/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.opentelemetry.io/otel/trace"
)

const (
	defaultLookupLimit = 20
	maxLookupLimit     = 200
)

type PgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

// LookupRepository stores the outcome of every quote lookup.
type LookupRepository struct {
	pool   PgxPool
	tracer trace.Tracer
	now    func() time.Time
}

func NewLookupRepository(pool PgxPool, tracer trace.Tracer) *LookupRepository {
	return &LookupRepository{pool: pool, tracer: tracer, now: time.Now}
}

func (r *LookupRepository) RunMigrations(ctx context.Context) error {
	_, span := r.tracer.Start(ctx, "lookup-repo.run-migrations")
	defer span.End()

	_, err := r.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS lookups (
			id             UUID PRIMARY KEY,
			symbol         TEXT NOT NULL,
			kind           TEXT NOT NULL,
			price          TEXT NOT NULL DEFAULT '',
			change_percent TEXT NOT NULL DEFAULT '',
			signal         TEXT NOT NULL DEFAULT '',
			error_kind     TEXT NOT NULL DEFAULT '',
			created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
		CREATE INDEX IF NOT EXISTS idx_lookups_created_at ON lookups (created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_lookups_symbol ON lookups (symbol, created_at DESC);
	`)
	return err
}

func (r *LookupRepository) InsertLookup(ctx context.Context, rec domain.LookupRecord) (domain.LookupRecord, error) {
	_, span := r.tracer.Start(ctx, "lookup-repo.insert-lookup")
	defer span.End()

	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = r.now().UTC()
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO lookups (id, symbol, kind, price, change_percent, signal, error_kind, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		rec.ID,
		rec.Symbol,
		string(rec.Kind),
		rec.Price,
		rec.ChangePercent,
		string(rec.Signal),
		string(rec.ErrorKind),
		rec.CreatedAt,
	)
	if err != nil {
		return domain.LookupRecord{}, err
	}
	return rec, nil
}

func (r *LookupRepository) ListRecent(ctx context.Context, limit int) ([]domain.LookupRecord, error) {
	_, span := r.tracer.Start(ctx, "lookup-repo.list-recent")
	defer span.End()

	if limit <= 0 {
		limit = defaultLookupLimit
	}
	if limit > maxLookupLimit {
		limit = maxLookupLimit
	}

	rows, err := r.pool.Query(ctx,
		`SELECT id::text, symbol, kind, price, change_percent, signal, error_kind, created_at
		 FROM lookups
		 ORDER BY created_at DESC
		 LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.LookupRecord, 0, limit)
	for rows.Next() {
		var rec domain.LookupRecord
		var kind, signal, errorKind string
		var createdAt time.Time
		if err := rows.Scan(
			&rec.ID,
			&rec.Symbol,
			&kind,
			&rec.Price,
			&rec.ChangePercent,
			&signal,
			&errorKind,
			&createdAt,
		); err != nil {
			return nil, err
		}
		rec.Kind = domain.AssetKind(kind)
		rec.Signal = domain.Signal(signal)
		rec.ErrorKind = domain.ErrorKind(errorKind)
		rec.CreatedAt = createdAt.UTC()
		out = append(out, rec)
	}
	return out, rows.Err()
}
