package store

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var propertyColumns = []string{
	"id", "street_address", "unit", "city", "state", "zip_code", "county",
	"property_type", "bedrooms", "bathrooms", "square_feet", "lot_size", "year_built",
	"purchase_price", "arv", "repair_estimate", "holding_costs", "assignment_fee",
	"status", "created_at", "updated_at",
}

func propertyRow(mock pgxmock.PgxPoolIface, id int64, street, city string) *pgxmock.Rows {
	now := time.Now().UTC()
	return mock.NewRows(propertyColumns).AddRow(
		id, street, "", city, "TX", "75201", "",
		"sfr", nil, nil, nil, nil, nil,
		nil, nil, nil, nil, nil,
		"available", now, now,
	)
}

func newMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return NewPostgresWithPool(mock), mock
}

func TestListProperties_NoFilters(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(`FROM properties ORDER BY id LIMIT \$1`).
		WithArgs(MaxListRows).
		WillReturnRows(propertyRow(mock, 1, "1 Main St", "Dallas"))

	rows, err := st.ListProperties(context.Background(), InternalFilter{})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(1), rows[0].ID)
	assert.Equal(t, "1 Main St", rows[0].StreetAddress)
	assert.Nil(t, rows[0].Bedrooms)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProperties_AllFilters(t *testing.T) {
	st, mock := newMockStore(t)

	minPrice, maxPrice := 100000.0, 500000.0
	mock.ExpectQuery(`FROM properties WHERE \(street_address ILIKE \$1 OR city ILIKE \$1 OR state ILIKE \$1\) AND property_type = \$2 AND purchase_price >= \$3 AND purchase_price <= \$4 ORDER BY id LIMIT \$5`).
		WithArgs("%main%", "sfr", minPrice, maxPrice, 50).
		WillReturnRows(propertyRow(mock, 7, "1 Main St", "Dallas"))

	rows, err := st.ListProperties(context.Background(), InternalFilter{
		Search:       "main",
		PropertyType: "sfr",
		MinPrice:     &minPrice,
		MaxPrice:     &maxPrice,
		Limit:        50,
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProperties_CapsLimit(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(`FROM properties ORDER BY id LIMIT \$1`).
		WithArgs(MaxListRows).
		WillReturnRows(mock.NewRows(propertyColumns))

	rows, err := st.ListProperties(context.Background(), InternalFilter{Limit: 100000})
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListProperties_QueryError(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(`FROM properties`).
		WillReturnError(assert.AnError)

	_, err := st.ListProperties(context.Background(), InternalFilter{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list properties")
}

func TestInsertProperty(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(`INSERT INTO properties`).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow(int64(12)))

	id, err := st.InsertProperty(context.Background(), InternalProperty{
		StreetAddress: "2 Oak Ave",
		City:          "Austin",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(12), id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCountProperties(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectQuery(`SELECT count\(\*\) FROM properties`).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(3))

	n, err := st.CountProperties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestMigrate(t *testing.T) {
	st, mock := newMockStore(t)

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS properties`).
		WillReturnResult(pgxmock.NewResult("CREATE", 0))

	require.NoError(t, st.Migrate(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
