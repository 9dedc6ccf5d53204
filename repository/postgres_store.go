package repository

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/bytedance/sonic"
	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"career-roi/domain"
	"career-roi/logger"
)

const (
	tableCareers        = "careers"
	tableEducationPaths = "education_paths"
	tableCalculations   = "calculations"
)

var (
	careersColumns        = []string{"career_id", "position", "profile"}
	educationPathsColumns = []string{"career_id", "position", "path"}
	calculationsColumns   = []string{"id", "career_id", "education_type", "input", "result", "created_at"}
)

const schema = `
create table if not exists careers (
	career_id text primary key,
	position  integer not null,
	profile   jsonb not null
);
create table if not exists education_paths (
	career_id text not null references careers (career_id),
	position  integer not null,
	path      jsonb not null,
	primary key (career_id, position)
);
create table if not exists calculations (
	id             uuid primary key,
	career_id      text not null,
	education_type text not null,
	input          jsonb not null,
	result         jsonb not null,
	created_at     timestamptz not null
);
create index if not exists calculations_career_created_idx on calculations (career_id, created_at desc);
`

// PostgresStore persists the catalog and the calculation history in postgres.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// builder returns a squirrel statement builder using postgres placeholders.
func builder() sq.StatementBuilderType {
	return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}

	var pool *pgxpool.Pool
	connect := func() error {
		p, err := pgxpool.NewWithConfig(ctx, cfg)
		if err != nil {
			return err
		}
		if err := p.Ping(ctx); err != nil {
			p.Close()
			logger.Warnf(ctx, "postgres not ready: %v", err)
			return err
		}
		pool = p
		return nil
	}
	policy := backoff.WithContext(backoff.WithMaxRetries(backoff.NewConstantBackOff(connectRetryInterval), connectRetries), ctx)
	if err := backoff.Retry(connect, policy); err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}

func (s *PostgresStore) Save(ctx context.Context, record domain.CalculationRecord) error {
	sql, args, err := insertCalculationQuery(record)
	if err != nil {
		return err
	}
	if _, err := s.pool.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert calculation: %w", err)
	}
	return nil
}

func (s *PostgresStore) Recent(ctx context.Context, careerID string, limit int) ([]domain.CalculationRecord, error) {
	sql, args, err := recentCalculationsQuery(careerID, limit)
	if err != nil {
		return nil, err
	}

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("select calculations: %w", err)
	}
	defer rows.Close()

	out := []domain.CalculationRecord{}
	for rows.Next() {
		var (
			record        domain.CalculationRecord
			educationType string
			input, result []byte
		)
		if err := rows.Scan(&record.ID, &record.CareerID, &educationType, &input, &result, &record.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan calculation: %w", err)
		}
		record.EducationType = domain.EducationType(educationType)
		if err := sonic.Unmarshal(input, &record.Input); err != nil {
			return nil, fmt.Errorf("decode calculation input %s: %w", record.ID, err)
		}
		if err := sonic.Unmarshal(result, &record.Result); err != nil {
			return nil, fmt.Errorf("decode calculation result %s: %w", record.ID, err)
		}
		out = append(out, record)
	}
	return out, rows.Err()
}

// LoadCatalog reads the catalog in insertion order. An empty table yields an empty catalog.
func (s *PostgresStore) LoadCatalog(ctx context.Context) (domain.Catalog, error) {
	careerSQL, careerArgs, err := builder().Select(careersColumns...).From(tableCareers).OrderBy("position").ToSql()
	if err != nil {
		return domain.Catalog{}, err
	}
	rows, err := s.pool.Query(ctx, careerSQL, careerArgs...)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("select careers: %w", err)
	}
	careers := []domain.CareerProfile{}
	for rows.Next() {
		var (
			id       string
			position int
			profile  []byte
			career   domain.CareerProfile
		)
		if err := rows.Scan(&id, &position, &profile); err != nil {
			rows.Close()
			return domain.Catalog{}, fmt.Errorf("scan career: %w", err)
		}
		if err := sonic.Unmarshal(profile, &career); err != nil {
			rows.Close()
			return domain.Catalog{}, fmt.Errorf("decode career %s: %w", id, err)
		}
		careers = append(careers, career)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return domain.Catalog{}, err
	}

	pathSQL, pathArgs, err := builder().Select(educationPathsColumns...).From(tableEducationPaths).OrderBy("career_id", "position").ToSql()
	if err != nil {
		return domain.Catalog{}, err
	}
	rows, err = s.pool.Query(ctx, pathSQL, pathArgs...)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("select education paths: %w", err)
	}
	defer rows.Close()

	education := map[string][]domain.EducationCost{}
	for rows.Next() {
		var (
			careerID string
			position int
			raw      []byte
			path     domain.EducationCost
		)
		if err := rows.Scan(&careerID, &position, &raw); err != nil {
			return domain.Catalog{}, fmt.Errorf("scan education path: %w", err)
		}
		if err := sonic.Unmarshal(raw, &path); err != nil {
			return domain.Catalog{}, fmt.Errorf("decode education path %s/%d: %w", careerID, position, err)
		}
		education[careerID] = append(education[careerID], path)
	}
	if err := rows.Err(); err != nil {
		return domain.Catalog{}, err
	}

	return domain.NewCatalog(careers, education), nil
}

// SeedCatalog inserts every career and education path of catalog, keeping rows that already exist.
func (s *PostgresStore) SeedCatalog(ctx context.Context, catalog domain.Catalog) error {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin seed: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	queries, err := seedCatalogQueries(catalog)
	if err != nil {
		return err
	}
	for _, q := range queries {
		sql, args, err := q.ToSql()
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, sql, args...); err != nil {
			return fmt.Errorf("seed catalog: %w", err)
		}
	}
	return tx.Commit(ctx)
}

func insertCalculationQuery(record domain.CalculationRecord) (string, []any, error) {
	if record.ID == uuid.Nil {
		return "", nil, fmt.Errorf("calculation record has no id")
	}
	input, err := sonic.Marshal(record.Input)
	if err != nil {
		return "", nil, fmt.Errorf("encode calculation input: %w", err)
	}
	result, err := sonic.Marshal(record.Result)
	if err != nil {
		return "", nil, fmt.Errorf("encode calculation result: %w", err)
	}
	createdAt := record.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	return builder().Insert(tableCalculations).
		Columns(calculationsColumns...).
		Values(record.ID, record.CareerID, string(record.EducationType), input, result, createdAt).
		ToSql()
}

func recentCalculationsQuery(careerID string, limit int) (string, []any, error) {
	if limit <= 0 {
		return "", nil, fmt.Errorf("limit must be positive, got %d", limit)
	}
	query := builder().Select(calculationsColumns...).
		From(tableCalculations).
		OrderBy("created_at desc").
		Limit(uint64(limit))
	if careerID != "" {
		query = query.Where(sq.Eq{"career_id": careerID})
	}
	return query.ToSql()
}

func seedCatalogQueries(catalog domain.Catalog) ([]sq.InsertBuilder, error) {
	queries := []sq.InsertBuilder{}
	for i, career := range catalog.Careers() {
		profile, err := sonic.Marshal(career)
		if err != nil {
			return nil, fmt.Errorf("encode career %s: %w", career.CareerID, err)
		}
		queries = append(queries, builder().Insert(tableCareers).
			Columns(careersColumns...).
			Values(career.CareerID, i, profile).
			Suffix("on conflict (career_id) do nothing"))

		for j, path := range catalog.EducationOptions(career.CareerID) {
			raw, err := sonic.Marshal(path)
			if err != nil {
				return nil, fmt.Errorf("encode education path %s/%d: %w", career.CareerID, j, err)
			}
			queries = append(queries, builder().Insert(tableEducationPaths).
				Columns(educationPathsColumns...).
				Values(career.CareerID, j, raw).
				Suffix("on conflict (career_id, position) do nothing"))
		}
	}
	return queries, nil
}
