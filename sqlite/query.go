package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// timeLayout is the storage format of timestamps. Values are stored in UTC
// at second precision so lexical order matches chronological order.
const timeLayout = time.RFC3339

// formatTime renders t for storage.
func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

// parseTime parses a stored timestamp read from column.
func parseTime(value, column string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid %s %q: %w", column, value, err)
	}
	return t, nil
}

// selectBuilder accumulates a SELECT statement and its arguments.
type selectBuilder struct {
	sql  strings.Builder
	args []any
}

func newSelect(base string) *selectBuilder {
	b := &selectBuilder{}
	b.sql.WriteString(base)
	b.sql.WriteString(" WHERE 1=1")
	return b
}

// whereEq adds an equality condition when value is non-nil.
func (b *selectBuilder) whereEq(column string, value *string) {
	if value == nil {
		return
	}
	b.sql.WriteString(" AND " + column + " = ?")
	b.args = append(b.args, *value)
}

func (b *selectBuilder) orderBy(clause string) {
	b.sql.WriteString(" ORDER BY " + clause)
}

// page adds LIMIT and OFFSET when positive. SQLite requires a LIMIT before
// an OFFSET, so an offset alone uses LIMIT -1.
func (b *selectBuilder) page(limit, offset int) {
	if limit > 0 {
		b.sql.WriteString(" LIMIT ?")
		b.args = append(b.args, limit)
	} else if offset > 0 {
		b.sql.WriteString(" LIMIT -1")
	}
	if offset > 0 {
		b.sql.WriteString(" OFFSET ?")
		b.args = append(b.args, offset)
	}
}

func (b *selectBuilder) String() string { return b.sql.String() }
