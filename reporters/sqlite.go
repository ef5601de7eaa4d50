package reporters

import (
	"fmt"
	"time"
)

import (
	"github.com/google/uuid"
	"github.com/timtadh/data-structures/errors"
	"gopkg.in/yaml.v3"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

import (
	"github.com/timtadh/forestmine/config"
	"github.com/timtadh/forestmine/miner"
)

const schema = `
CREATE TABLE IF NOT EXISTS run (
	id TEXT PRIMARY KEY,
	started TEXT NOT NULL,
	config TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS pattern (
	run_id TEXT NOT NULL REFERENCES run(id),
	seq INTEGER NOT NULL,
	code TEXT NOT NULL,
	line TEXT NOT NULL,
	support INTEGER NOT NULL,
	PRIMARY KEY (run_id, seq)
);
`

// SQLite records every emitted pattern of one mining run. Patterns are
// written inside a single transaction which is committed on Close.
type SQLite struct {
	RunId string
	conn  *sqlite.Conn
	stmt  *sqlite.Stmt
	endFn func(*error)
	count int
}

// NewSQLite opens (or creates) the database at path and registers a new
// run. The path ":memory:" gives a private in-memory database.
func NewSQLite(path string, conf *config.Config) (*SQLite, error) {
	flags := []sqlite.OpenFlags{sqlite.OpenCreate, sqlite.OpenReadWrite}
	if path == ":memory:" {
		flags = append(flags, sqlite.OpenMemory)
	} else {
		flags = append(flags, sqlite.OpenWAL)
	}
	conn, err := sqlite.OpenConn(path, flags...)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	r, err := newSQLite(conn, conf)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	return r, nil
}

func newSQLite(conn *sqlite.Conn, conf *config.Config) (*SQLite, error) {
	if err := sqlitex.ExecuteScript(conn, schema, nil); err != nil {
		return nil, fmt.Errorf("create tables: %w", err)
	}
	dump, err := yaml.Marshal(conf)
	if err != nil {
		return nil, err
	}
	id := uuid.New().String()
	err = sqlitex.ExecuteTransient(conn,
		`INSERT INTO run (id, started, config) VALUES (?, ?, ?)`,
		&sqlitex.ExecOptions{
			Args: []interface{}{id, time.Now().UTC().Format(time.RFC3339), string(dump)},
		})
	if err != nil {
		return nil, fmt.Errorf("insert run: %w", err)
	}
	endFn, err := sqlitex.ImmediateTransaction(conn)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	stmt, err := conn.Prepare(`INSERT INTO pattern (run_id, seq, code, line, support) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		var rollback error = err
		endFn(&rollback)
		return nil, fmt.Errorf("prepare pattern insert: %w", err)
	}
	return &SQLite{
		RunId: id,
		conn:  conn,
		stmt:  stmt,
		endFn: endFn,
	}, nil
}

func (r *SQLite) Report(res miner.Result) error {
	r.count++
	r.stmt.BindText(1, r.RunId)
	r.stmt.BindInt64(2, int64(r.count))
	r.stmt.BindText(3, res.Code.String())
	r.stmt.BindText(4, res.Line)
	r.stmt.BindInt64(5, int64(res.Support))
	if _, err := r.stmt.Step(); err != nil {
		return fmt.Errorf("insert pattern %v: %w", res.Code, err)
	}
	return r.stmt.Reset()
}

// Patterns returns the stored lines of this run in emission order.
func (r *SQLite) Patterns() ([]string, error) {
	lines := make([]string, 0, r.count)
	err := sqlitex.ExecuteTransient(r.conn,
		`SELECT line FROM pattern WHERE run_id = ? ORDER BY seq`,
		&sqlitex.ExecOptions{
			Args: []interface{}{r.RunId},
			ResultFunc: func(stmt *sqlite.Stmt) error {
				lines = append(lines, stmt.ColumnText(0))
				return nil
			},
		})
	if err != nil {
		return nil, err
	}
	return lines, nil
}

func (r *SQLite) Close() (err error) {
	if r.conn == nil {
		return nil
	}
	// prepared statements are finalized by conn.Close
	r.endFn(&err)
	errors.Logf("DEBUG", "stored %d patterns for run %v", r.count, r.RunId)
	if cerr := r.conn.Close(); cerr != nil && err == nil {
		err = cerr
	}
	r.conn = nil
	return err
}
