// AngelaMos | 2026
// softdelete.go

package core

import (
	"context"
	"fmt"
	"time"
)

// Timestamps is embedded by every domain entity.
type Timestamps struct {
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

// IsLive reports whether the row is visible to domain queries.
func (t Timestamps) IsLive() bool {
	return t.DeletedAt == nil
}

// Live is the single soft-delete predicate. Every domain-facing query
// includes it for each table it reads.
func Live(alias string) string {
	if alias == "" {
		return "deleted_at IS NULL"
	}
	return alias + ".deleted_at IS NULL"
}

// SoftDelete stamps deleted_at on a live row. It never overwrites an existing
// timestamp; deleting an already-deleted row reports ErrNotFound.
func SoftDelete(ctx context.Context, db DBTX, table string, id int64) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET deleted_at = NOW(), updated_at = NOW()
		WHERE id = $1 AND %s`, table, Live(""))

	result, err := db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("soft delete %s: %w", table, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("soft delete %s: %w", table, err)
	}

	if rows == 0 {
		return fmt.Errorf("soft delete %s: %w", table, ErrNotFound)
	}

	return nil
}
