package dbpool

import (
	"fmt"
	"strings"
)

// Dialect provides engine-specific SQL fragments so callers don't need to
// know which engine is in use.
type Dialect struct {
	Engine Engine
}

// NewDialect creates a Dialect for the given engine.
func NewDialect(engine Engine) *Dialect {
	return &Dialect{Engine: engine}
}

// QuoteIdent returns a properly quoted SQL identifier.
// SQLite uses double quotes; MySQL uses backticks.
// Internal quotes are escaped by doubling them.
func (d *Dialect) QuoteIdent(name string) string {
	switch d.Engine {
	case EngineMySQL:
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	default:
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
}

// ListTablesQuery returns the SQL to list user tables.
func (d *Dialect) ListTablesQuery() string {
	switch d.Engine {
	case EngineSQLite:
		return "SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%'"
	default:
		return "SHOW TABLES"
	}
}

// TableInfoQuery returns the SQL to get column info for a table.
func (d *Dialect) TableInfoQuery(tableName string) string {
	qi := d.QuoteIdent(tableName)
	switch d.Engine {
	case EngineSQLite:
		return fmt.Sprintf(`PRAGMA table_info(%s)`, qi)
	default:
		return fmt.Sprintf("DESCRIBE %s", qi)
	}
}

// TextType is the column type for unbounded text.
func (d *Dialect) TextType() string {
	if d.Engine == EngineMySQL {
		return "LONGTEXT"
	}
	return "TEXT"
}

// TableOptions is appended to CREATE TABLE statements.
func (d *Dialect) TableOptions() string {
	if d.Engine == EngineMySQL {
		return " ENGINE=InnoDB DEFAULT CHARSET=utf8mb4"
	}
	return ""
}

// CreateIndexIfNotExists returns a CREATE INDEX statement. MySQL lacks
// IF NOT EXISTS for indexes, so callers must ignore duplicate-key errors there.
func (d *Dialect) CreateIndexIfNotExists(index, table string, columns ...string) string {
	cols := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = d.QuoteIdent(c)
	}
	if d.Engine == EngineMySQL {
		return fmt.Sprintf("CREATE INDEX %s ON %s (%s)", d.QuoteIdent(index), d.QuoteIdent(table), strings.Join(cols, ", "))
	}
	return fmt.Sprintf("CREATE INDEX IF NOT EXISTS %s ON %s (%s)", d.QuoteIdent(index), d.QuoteIdent(table), strings.Join(cols, ", "))
}
