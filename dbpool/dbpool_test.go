package dbpool

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite_File(t *testing.T) {
	var logs []string
	m := New(EngineSQLite, func(s string) { logs = append(logs, s) })
	path := filepath.Join(t.TempDir(), "history.db")

	db, err := m.OpenWritable(path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE t (v TEXT)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO t (v) VALUES (?)`, "hello")
	require.NoError(t, err)

	var v string
	require.NoError(t, db.QueryRow(`SELECT v FROM t`).Scan(&v))
	assert.Equal(t, "hello", v)
	assert.Empty(t, logs)
}

func TestOpenSQLite_MemorySurvivesIdle(t *testing.T) {
	m := New(EngineSQLite, nil)
	db, err := m.OpenWritable(MemoryPath)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE t (v INTEGER)`)
	require.NoError(t, err)

	// a second statement must see the same database
	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM t`).Scan(&n))
	assert.Equal(t, 0, n)
}

func TestOpen_UnsupportedEngine(t *testing.T) {
	_, err := New("duckdb", nil).Open(OpenOptions{Path: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported engine")
}

func TestOpenMySQL_InvalidDSN(t *testing.T) {
	_, err := New(EngineMySQL, nil).Open(OpenOptions{Path: "not a dsn", MaxRetries: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid MySQL DSN")
}

func TestMySQLDSN_ForcesParseTime(t *testing.T) {
	dsn, err := mysqlDSN("user:pass@tcp(localhost:3306)/guide")
	require.NoError(t, err)
	assert.True(t, strings.Contains(dsn, "parseTime=true"))
}

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, MemoryPath, sqliteDSN(OpenOptions{Path: MemoryPath}))
	assert.Equal(t, "file:a.db?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&mode=ro",
		sqliteDSN(OpenOptions{Path: "a.db", Mode: ModeReadOnly}))
}

func TestDialect(t *testing.T) {
	sqlite := NewDialect(EngineSQLite)
	mysql := NewDialect(EngineMySQL)

	assert.Equal(t, `"we""ird"`, sqlite.QuoteIdent(`we"ird`))
	assert.Equal(t, "`we``ird`", mysql.QuoteIdent("we`ird"))
	assert.Equal(t, "TEXT", sqlite.TextType())
	assert.Equal(t, "LONGTEXT", mysql.TextType())
	assert.Equal(t, "", sqlite.TableOptions())
	assert.Contains(t, mysql.TableOptions(), "utf8mb4")
	assert.Equal(t, `CREATE INDEX IF NOT EXISTS "idx" ON "t" ("a", "b")`, sqlite.CreateIndexIfNotExists("idx", "t", "a", "b"))
	assert.Equal(t, "CREATE INDEX `idx` ON `t` (`a`)", mysql.CreateIndexIfNotExists("idx", "t", "a"))
}
