package schema

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"biolink/internal/database"
)

var ErrSchemaMismatch = errors.New("schema mismatch")

// ProfileColumns are the columns the profile repository reads and writes.
var ProfileColumns = []string{
	"id",
	"slug",
	"full_name",
	"specialty",
	"bio",
	"photo_url",
	"buttons",
	"status",
	"created_at",
	"activated_at",
}

// VerifyProfiles checks the profiles table before the server accepts
// traffic. The table and its partial unique index are provisioned outside
// this service.
func VerifyProfiles(ctx context.Context, db database.DB) error {
	return EnsureTableColumns(ctx, db, "profiles", ProfileColumns...)
}

func EnsureTableColumns(ctx context.Context, db database.DB, table string, columns ...string) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	if table == "" {
		return fmt.Errorf("empty table")
	}
	for _, col := range columns {
		if col == "" {
			return fmt.Errorf("empty column")
		}
	}

	rows, err := db.Query(
		ctx,
		`SELECT column_name FROM information_schema.columns WHERE table_schema = current_schema() AND table_name = $1`,
		table,
	)
	if err != nil {
		return fmt.Errorf("read columns of %s: %w", table, err)
	}
	defer rows.Close()

	existing := map[string]struct{}{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return err
		}
		existing[c] = struct{}{}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	if len(existing) == 0 {
		return fmt.Errorf("%w: table %s does not exist", ErrSchemaMismatch, table)
	}

	var missing []string
	for _, col := range columns {
		if _, ok := existing[col]; !ok {
			missing = append(missing, table+"."+col)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return fmt.Errorf("%w: missing columns %s", ErrSchemaMismatch, strings.Join(missing, ", "))
	}
	return nil
}
