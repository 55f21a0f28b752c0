package dbpool

import (
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// openSQLite opens a SQLite database through the pure Go modernc driver,
// retrying while the file is busy.
func (m *DBManager) openSQLite(opts OpenOptions) (*sql.DB, error) {
	maxRetries, baseMs := retryParams(opts)
	memory := opts.Path == MemoryPath

	connStr := sqliteDSN(opts)

	var lastErr error
	for i := 0; i < maxRetries; i++ {
		db, err := sql.Open("sqlite", connStr)
		if err != nil {
			lastErr = err
			m.logger(fmt.Sprintf("[dbpool] SQLite open attempt %d/%d failed: %v", i+1, maxRetries, err))
			if maxRetries > 1 {
				time.Sleep(time.Duration(baseMs*(i+1)) * time.Millisecond)
			}
			continue
		}

		if memory {
			configureMemoryPool(db)
		} else {
			configureFilePool(db)
		}

		if err := db.Ping(); err != nil {
			db.Close()
			lastErr = err
			m.logger(fmt.Sprintf("[dbpool] SQLite ping attempt %d/%d failed: %v", i+1, maxRetries, err))
			if maxRetries > 1 {
				time.Sleep(time.Duration(baseMs*(i+1)) * time.Millisecond)
			}
			continue
		}

		return db, nil
	}

	return nil, fmt.Errorf("dbpool: failed to open SQLite %q after %d retries: %w", opts.Path, maxRetries, lastErr)
}

// sqliteDSN adds the pragmas understood by modernc.org/sqlite. WAL does not
// apply to in-memory databases.
func sqliteDSN(opts OpenOptions) string {
	if opts.Path == MemoryPath {
		return opts.Path
	}
	dsn := "file:" + opts.Path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	if opts.Mode == ModeReadOnly {
		dsn += "&mode=ro"
	}
	return dsn
}
