package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"metro-router/internal/network"
)

// ResolveLatestVersion returns the version with the most recent imported_at
// from network_versions where city ILIKE '%city%'.
func ResolveLatestVersion(ctx context.Context, db *sql.DB, city string) (string, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return "", fmt.Errorf("city is required")
	}
	q := `
SELECT version
FROM network_versions
WHERE city ILIKE '%' || $1 || '%'
ORDER BY imported_at DESC
LIMIT 1`
	var version sql.NullString
	if err := db.QueryRowContext(ctx, q, city).Scan(&version); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("no network version found for city like %q", city)
		}
		return "", err
	}
	if !version.Valid || version.String == "" {
		return "", fmt.Errorf("empty version for city like %q", city)
	}
	return version.String, nil
}

// LoadSegments resolves the version to use (explicit, else latest for
// city) and fetches its segments.
func LoadSegments(ctx context.Context, db *sql.DB, version, city string) ([]network.Segment, string, error) {
	if version == "" {
		v, err := ResolveLatestVersion(ctx, db, city)
		if err != nil {
			return nil, "", err
		}
		version = v
	}
	segs, err := FetchSegments(ctx, db, version)
	if err != nil {
		return nil, "", err
	}
	return segs, version, nil
}
