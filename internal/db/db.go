// Package db reads the network table from Postgres.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"metro-router/internal/network"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func Open(dsn string) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, err
	}
	// only used while the graph is built at startup
	db.SetMaxOpenConns(2)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

func Ping(ctx context.Context, db *sql.DB) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return db.PingContext(ctx)
}

var segmentColumns = []string{"version", "seq", "station_a", "station_b", "distance_km", "line"}

// FetchSegments returns the segments of one network version in
// registration order.
func FetchSegments(ctx context.Context, db *sql.DB, version string) ([]network.Segment, error) {
	if err := checkColumns(ctx, db, "public", "network_segments", segmentColumns...); err != nil {
		return nil, err
	}
	q := `
SELECT station_a, station_b, distance_km::float8, line
FROM network_segments
WHERE version = $1
ORDER BY seq`
	rows, err := db.QueryContext(ctx, q, version)
	if err != nil {
		return nil, fmt.Errorf("query segments: %w", err)
	}
	defer rows.Close()

	var segs []network.Segment
	for rows.Next() {
		var s network.Segment
		if err := rows.Scan(&s.From, &s.To, &s.DistanceKm, &s.Line); err != nil {
			return nil, fmt.Errorf("scan segment: %w", err)
		}
		s.From = strings.TrimSpace(s.From)
		s.To = strings.TrimSpace(s.To)
		segs = append(segs, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(segs) == 0 {
		return nil, fmt.Errorf("network version %q has no segments", version)
	}
	return segs, nil
}

// checkColumns fails with the list of missing columns if the table does not
// have all of cols.
func checkColumns(ctx context.Context, db *sql.DB, schema, table string, cols ...string) error {
	have, err := hasColumns(ctx, db, schema, table, cols...)
	if err != nil {
		return fmt.Errorf("introspect %s columns: %w", table, err)
	}
	var missing []string
	for c, ok := range have {
		if !ok {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%s.%s missing columns: %s", schema, table, strings.Join(missing, ", "))
	}
	return nil
}

// hasColumns returns a map of requested column names to existence for the given table.
func hasColumns(ctx context.Context, db *sql.DB, schema, table string, cols ...string) (map[string]bool, error) {
	res := make(map[string]bool, len(cols))
	if len(cols) == 0 {
		return res, nil
	}
	for _, c := range cols {
		res[c] = false
	}
	q := `SELECT column_name FROM information_schema.columns
          WHERE table_schema = $1 AND table_name = $2 AND column_name = ANY($3)`
	rows, err := db.QueryContext(ctx, q, schema, table, cols)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		res[name] = true
	}
	return res, rows.Err()
}
