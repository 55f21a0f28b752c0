package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-sql-driver/mysql"

	"seleniumguide/dbpool"
)

// Migration represents a database migration. Statements run one by one
// because the MySQL driver rejects multi-statement Exec by default.
type Migration struct {
	Version     int
	Description string
	Up          []string
	Down        []string
}

// GetMigrations returns all database migrations in order
func GetMigrations(d *dbpool.Dialect) []Migration {
	return []Migration{
		{
			Version:     1,
			Description: "Create export_records table",
			Up: []string{
				fmt.Sprintf(`CREATE TABLE IF NOT EXISTS export_records (
					id VARCHAR(36) PRIMARY KEY,
					section_id VARCHAR(64) NOT NULL,
					section_number INTEGER NOT NULL,
					format VARCHAR(8) NOT NULL,
					file_name VARCHAR(255) NOT NULL,
					size_bytes BIGINT NOT NULL DEFAULT 0,
					status VARCHAR(16) NOT NULL,
					error_message %s,
					duration_ms BIGINT NOT NULL DEFAULT 0,
					created_at BIGINT NOT NULL
				)%s`, d.TextType(), d.TableOptions()),
				d.CreateIndexIfNotExists("idx_export_section", "export_records", "section_id"),
				d.CreateIndexIfNotExists("idx_export_created", "export_records", "created_at"),
			},
			Down: []string{
				`DROP TABLE IF EXISTS export_records`,
			},
		},
	}
}

// createMigrationsTable creates the schema_migrations table to track applied migrations
func createMigrationsTable(ctx context.Context, db *sql.DB, d *dbpool.Dialect) error {
	query := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			description VARCHAR(255) NOT NULL,
			applied_at BIGINT NOT NULL
		)%s`, d.TableOptions())
	_, err := db.ExecContext(ctx, query)
	return err
}

// runMigrations applies all pending migrations
func runMigrations(ctx context.Context, db *sql.DB, d *dbpool.Dialect, now func() int64, log func(string)) error {
	for _, migration := range GetMigrations(d) {
		// Check if migration has already been applied
		var count int
		err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations WHERE version = ?", migration.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("failed to check migration status for version %d: %w", migration.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %d: %w", migration.Version, err)
		}

		for _, stmt := range migration.Up {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				if d.Engine == dbpool.EngineMySQL && isDuplicateIndex(err) {
					continue
				}
				tx.Rollback()
				return fmt.Errorf("failed to execute migration %d (%s): %w", migration.Version, migration.Description, err)
			}
		}

		if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version, description, applied_at) VALUES (?, ?, ?)",
			migration.Version, migration.Description, now()); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", migration.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		log(fmt.Sprintf("[history] applied migration %d: %s", migration.Version, migration.Description))
	}

	return nil
}

// rollbackMigration reverts one applied migration.
func rollbackMigration(ctx context.Context, db *sql.DB, d *dbpool.Dialect, version int) error {
	var target *Migration
	for _, m := range GetMigrations(d) {
		if m.Version == version {
			m := m
			target = &m
			break
		}
	}
	if target == nil {
		return fmt.Errorf("migration version %d not found", version)
	}

	var count int
	if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations WHERE version = ?", version).Scan(&count); err != nil {
		return fmt.Errorf("failed to check migration status: %w", err)
	}
	if count == 0 {
		return fmt.Errorf("migration %d has not been applied", version)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	for _, stmt := range target.Down {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to rollback migration %d: %w", version, err)
		}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM schema_migrations WHERE version = ?", version); err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to remove migration record: %w", err)
	}
	return tx.Commit()
}

// mysqlDuplicateKeyName is returned when an index already exists.
const mysqlDuplicateKeyName = 1061

func isDuplicateIndex(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == mysqlDuplicateKeyName
}
