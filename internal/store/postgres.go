package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// preparedStatements lists queries to prepare on each new connection.
var preparedStatements = map[string]string{
	"insert_property": `INSERT INTO properties
		(street_address, unit, city, state, zip_code, county, property_type,
		 bedrooms, bathrooms, square_feet, lot_size, year_built,
		 purchase_price, arv, repair_estimate, holding_costs, assignment_fee,
		 status, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)
		RETURNING id`,
	"count_properties": `SELECT count(*) FROM properties`,
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

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
	return &PostgresStore{pool: pool}, nil
}

// NewPostgresWithPool wraps an existing pool. Used by tests.
func NewPostgresWithPool(pool Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS properties (
	id              BIGSERIAL PRIMARY KEY,
	street_address  TEXT NOT NULL,
	unit            TEXT NOT NULL DEFAULT '',
	city            TEXT NOT NULL DEFAULT '',
	state           TEXT NOT NULL DEFAULT '',
	zip_code        TEXT NOT NULL DEFAULT '',
	county          TEXT NOT NULL DEFAULT '',
	property_type   TEXT NOT NULL DEFAULT '',
	bedrooms        INTEGER,
	bathrooms       DOUBLE PRECISION,
	square_feet     INTEGER,
	lot_size        DOUBLE PRECISION,
	year_built      INTEGER,
	purchase_price  DOUBLE PRECISION,
	arv             DOUBLE PRECISION,
	repair_estimate DOUBLE PRECISION,
	holding_costs   DOUBLE PRECISION,
	assignment_fee  DOUBLE PRECISION,
	status          TEXT NOT NULL DEFAULT 'available',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_properties_city ON properties(city);
CREATE INDEX IF NOT EXISTS idx_properties_type ON properties(property_type);
CREATE INDEX IF NOT EXISTS idx_properties_price ON properties(purchase_price);
`

// Migrate creates the properties schema.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, postgresMigration); err != nil {
		return eris.Wrap(err, "postgres: migrate")
	}
	return nil
}

const listPropertiesBase = `SELECT id, street_address, unit, city, state, zip_code, county,
	property_type, bedrooms, bathrooms, square_feet, lot_size, year_built,
	purchase_price, arv, repair_estimate, holding_costs, assignment_fee,
	status, created_at, updated_at
	FROM properties`

// ListProperties returns internal rows matching the filter, capped at
// MaxListRows. An empty match is not an error.
func (s *PostgresStore) ListProperties(ctx context.Context, filter InternalFilter) ([]InternalProperty, error) {
	var (
		where []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		where = append(where, fmt.Sprintf(
			"(street_address ILIKE %[1]s OR city ILIKE %[1]s OR state ILIKE %[1]s)", p))
	}
	if filter.PropertyType != "" {
		where = append(where, "property_type = "+arg(filter.PropertyType))
	}
	if filter.MinPrice != nil {
		where = append(where, "purchase_price >= "+arg(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		where = append(where, "purchase_price <= "+arg(*filter.MaxPrice))
	}

	query := listPropertiesBase
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 || limit > MaxListRows {
		limit = MaxListRows
	}
	query += " ORDER BY id LIMIT " + arg(limit)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list properties")
	}
	defer rows.Close()

	var out []InternalProperty
	for rows.Next() {
		var p InternalProperty
		if err := rows.Scan(
			&p.ID, &p.StreetAddress, &p.Unit, &p.City, &p.State, &p.ZipCode, &p.County,
			&p.PropertyType, &p.Bedrooms, &p.Bathrooms, &p.SquareFeet, &p.LotSize, &p.YearBuilt,
			&p.PurchasePrice, &p.ARV, &p.RepairEstimate, &p.HoldingCosts, &p.AssignmentFee,
			&p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, eris.Wrap(err, "postgres: scan property")
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "postgres: iterate properties")
	}
	return out, nil
}

// InsertProperty inserts a row and returns its id.
func (s *PostgresStore) InsertProperty(ctx context.Context, p InternalProperty) (int64, error) {
	now := time.Now().UTC()
	createdAt := p.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}
	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}
	status := p.Status
	if status == "" {
		status = "available"
	}

	var id int64
	err := s.pool.QueryRow(ctx, preparedStatements["insert_property"],
		p.StreetAddress, p.Unit, p.City, p.State, p.ZipCode, p.County, p.PropertyType,
		p.Bedrooms, p.Bathrooms, p.SquareFeet, p.LotSize, p.YearBuilt,
		p.PurchasePrice, p.ARV, p.RepairEstimate, p.HoldingCosts, p.AssignmentFee,
		status, createdAt, updatedAt,
	).Scan(&id)
	if err != nil {
		return 0, eris.Wrap(err, "postgres: insert property")
	}
	return id, nil
}

// CountProperties returns the total number of internal rows.
func (s *PostgresStore) CountProperties(ctx context.Context) (int, error) {
	var n int
	if err := s.pool.QueryRow(ctx, preparedStatements["count_properties"]).Scan(&n); err != nil {
		return 0, eris.Wrap(err, "postgres: count properties")
	}
	return n, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
