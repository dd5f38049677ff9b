// Package dbtest provides an in-memory stand-in for PostgreSQL that
// understands the handful of statements the repositories issue.
package dbtest

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/jackc/pgx/v5/pgconn"
)

// Call is one statement observed by Fake.
type Call struct {
	Op    string // "extension", "create" or "insert"
	Table string
}

// Fake records every Exec and keeps rows per table keyed by their unique
// column, skipping inserts whose key already exists like ON CONFLICT DO NOTHING.
// A users row reusing another row's email fails with a unique violation.
// It is safe for concurrent use.
type Fake struct {
	// FailOn, when set, is consulted before every statement; a non-nil
	// result is returned to the caller instead of executing it.
	FailOn func(c Call, args []any) error

	mu        sync.Mutex
	calls     []Call
	tables    map[string]bool
	rows      map[string]map[string][]any
	generated int
	closed    int
}

// New returns an empty Fake.
func New() *Fake {
	return &Fake{
		tables: make(map[string]bool),
		rows:   make(map[string]map[string][]any),
	}
}

// Exec implements db.Execer.
func (f *Fake) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	if err := ctx.Err(); err != nil {
		return pgconn.CommandTag{}, err
	}
	fields := strings.Fields(sql)
	c, err := classify(fields)
	if err != nil {
		return pgconn.CommandTag{}, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)

	if f.FailOn != nil {
		if err := f.FailOn(c, args); err != nil {
			return pgconn.CommandTag{}, err
		}
	}

	switch c.Op {
	case "extension":
		return pgconn.NewCommandTag("CREATE EXTENSION"), nil
	case "create":
		f.tables[c.Table] = true
		return pgconn.NewCommandTag("CREATE TABLE"), nil
	}

	if !f.tables[c.Table] {
		return pgconn.CommandTag{}, fmt.Errorf("relation %q does not exist", c.Table)
	}
	if len(args) == 0 {
		return pgconn.CommandTag{}, fmt.Errorf("insert into %s without arguments", c.Table)
	}
	var key string
	if c.Table == "revenue" || strings.HasPrefix(fields[3], "(id,") {
		key = fmt.Sprint(args[0])
	} else {
		f.generated++
		key = fmt.Sprintf("generated-%d", f.generated)
	}
	if _, ok := f.rows[c.Table][key]; ok {
		return pgconn.NewCommandTag("INSERT 0 0"), nil
	}
	// users.email is UNIQUE but not the conflict target.
	if c.Table == "users" && len(args) >= 3 {
		for _, row := range f.rows[c.Table] {
			if len(row) >= 3 && row[2] == args[2] {
				return pgconn.CommandTag{}, &pgconn.PgError{
					Code:           "23505",
					Message:        `duplicate key value violates unique constraint "users_email_key"`,
					ConstraintName: "users_email_key",
				}
			}
		}
	}
	f.put(c.Table, key, args)
	return pgconn.NewCommandTag("INSERT 0 1"), nil
}

// Close counts how often the handle was released.
func (f *Fake) Close() {
	f.mu.Lock()
	f.closed++
	f.mu.Unlock()
}

// Closed reports how many times Close was called.
func (f *Fake) Closed() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

// CreateTable marks a table as already present.
func (f *Fake) CreateTable(table string) {
	f.mu.Lock()
	f.tables[table] = true
	f.mu.Unlock()
}

// Put stores a row directly, bypassing Exec.
func (f *Fake) Put(table, key string, values ...any) {
	f.mu.Lock()
	f.tables[table] = true
	f.put(table, key, values)
	f.mu.Unlock()
}

// Row returns the stored values for key, or nil.
func (f *Fake) Row(table, key string) []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.rows[table][key]
}

// Count returns the number of rows stored in table.
func (f *Fake) Count(table string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.rows[table])
}

// Calls returns a copy of the statements seen so far, in execution order.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]Call(nil), f.calls...)
}

func (f *Fake) put(table, key string, values []any) {
	if f.rows[table] == nil {
		f.rows[table] = make(map[string][]any)
	}
	f.rows[table][key] = append([]any(nil), values...)
}

func classify(fields []string) (Call, error) {
	switch {
	case len(fields) >= 3 && fields[0] == "CREATE" && fields[1] == "EXTENSION":
		return Call{Op: "extension"}, nil
	case len(fields) >= 6 && fields[0] == "CREATE" && fields[1] == "TABLE":
		return Call{Op: "create", Table: fields[5]}, nil
	case len(fields) >= 4 && fields[0] == "INSERT" && fields[1] == "INTO":
		return Call{Op: "insert", Table: fields[2]}, nil
	}
	return Call{}, fmt.Errorf("dbtest: unsupported statement %q", strings.Join(fields, " "))
}
