package store

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using modernc.org/sqlite. Used for local
// development and the CLI; production runs Postgres.
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
CREATE TABLE IF NOT EXISTS properties (
	id              INTEGER PRIMARY KEY AUTOINCREMENT,
	street_address  TEXT NOT NULL,
	unit            TEXT NOT NULL DEFAULT '',
	city            TEXT NOT NULL DEFAULT '',
	state           TEXT NOT NULL DEFAULT '',
	zip_code        TEXT NOT NULL DEFAULT '',
	county          TEXT NOT NULL DEFAULT '',
	property_type   TEXT NOT NULL DEFAULT '',
	bedrooms        INTEGER,
	bathrooms       REAL,
	square_feet     INTEGER,
	lot_size        REAL,
	year_built      INTEGER,
	purchase_price  REAL,
	arv             REAL,
	repair_estimate REAL,
	holding_costs   REAL,
	assignment_fee  REAL,
	status          TEXT NOT NULL DEFAULT 'available',
	created_at      DATETIME NOT NULL,
	updated_at      DATETIME NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_properties_city ON properties(city);
CREATE INDEX IF NOT EXISTS idx_properties_type ON properties(property_type);
`

// Migrate creates the properties schema.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, sqliteMigration); err != nil {
		return eris.Wrap(err, "sqlite: migrate")
	}
	return nil
}

// ListProperties returns internal rows matching the filter, capped at
// MaxListRows.
func (s *SQLiteStore) ListProperties(ctx context.Context, filter InternalFilter) ([]InternalProperty, error) {
	query := `SELECT id, street_address, unit, city, state, zip_code, county,
		property_type, bedrooms, bathrooms, square_feet, lot_size, year_built,
		purchase_price, arv, repair_estimate, holding_costs, assignment_fee,
		status, created_at, updated_at
		FROM properties`

	var (
		where []string
		args  []any
	)
	if filter.Search != "" {
		like := "%" + strings.ToLower(filter.Search) + "%"
		where = append(where,
			"(LOWER(street_address) LIKE ? OR LOWER(city) LIKE ? OR LOWER(state) LIKE ?)")
		args = append(args, like, like, like)
	}
	if filter.PropertyType != "" {
		where = append(where, "property_type = ?")
		args = append(args, filter.PropertyType)
	}
	if filter.MinPrice != nil {
		where = append(where, "purchase_price >= ?")
		args = append(args, *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		where = append(where, "purchase_price <= ?")
		args = append(args, *filter.MaxPrice)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	limit := filter.Limit
	if limit <= 0 || limit > MaxListRows {
		limit = MaxListRows
	}
	query += " ORDER BY id LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list properties")
	}
	defer rows.Close() //nolint:errcheck

	var out []InternalProperty
	for rows.Next() {
		var p InternalProperty
		if err := rows.Scan(
			&p.ID, &p.StreetAddress, &p.Unit, &p.City, &p.State, &p.ZipCode, &p.County,
			&p.PropertyType, &p.Bedrooms, &p.Bathrooms, &p.SquareFeet, &p.LotSize, &p.YearBuilt,
			&p.PurchasePrice, &p.ARV, &p.RepairEstimate, &p.HoldingCosts, &p.AssignmentFee,
			&p.Status, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan property")
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, eris.Wrap(err, "sqlite: iterate properties")
	}
	return out, nil
}

// InsertProperty inserts a row and returns its id.
func (s *SQLiteStore) InsertProperty(ctx context.Context, p InternalProperty) (int64, error) {
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

	res, err := s.db.ExecContext(ctx, `INSERT INTO properties
		(street_address, unit, city, state, zip_code, county, property_type,
		 bedrooms, bathrooms, square_feet, lot_size, year_built,
		 purchase_price, arv, repair_estimate, holding_costs, assignment_fee,
		 status, created_at, updated_at)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		p.StreetAddress, p.Unit, p.City, p.State, p.ZipCode, p.County, p.PropertyType,
		p.Bedrooms, p.Bathrooms, p.SquareFeet, p.LotSize, p.YearBuilt,
		p.PurchasePrice, p.ARV, p.RepairEstimate, p.HoldingCosts, p.AssignmentFee,
		status, createdAt, updatedAt,
	)
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: insert property")
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, eris.Wrap(err, "sqlite: last insert id")
	}
	return id, nil
}

// CountProperties returns the total number of internal rows.
func (s *SQLiteStore) CountProperties(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT count(*) FROM properties`).Scan(&n); err != nil {
		return 0, eris.Wrap(err, "sqlite: count properties")
	}
	return n, nil
}

// Close closes the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
