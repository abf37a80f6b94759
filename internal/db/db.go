// Package db provides strictly read-only access to SQLite database files
// through database/sql and the modernc.org/sqlite driver. Nothing in this
// package can write to the inspected file: connections open with mode=ro
// and the query_only pragma, and no user-supplied scripts are ever run.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/takluyver/sqlite-glance/internal/completion"
	_ "modernc.org/sqlite"
)

var (
	// ErrUnreadable reports a file that is missing, unreadable, or not a
	// usable SQLite database.
	ErrUnreadable = errors.New("unreadable database")
	// ErrCatalog reports a failed catalog query.
	ErrCatalog = errors.New("catalog query failed")
)

// busyTimeoutMS bounds waits on a locked database. Kept short: the callers
// are interactive.
const busyTimeoutMS = 150

// DB wraps a read-only connection to one SQLite file.
type DB struct {
	sql  *sql.DB
	path string
}

// Open opens path strictly read-only. The file must already exist; SQLite
// would otherwise create an empty database at the path, which is never what
// an inspection tool should do.
func Open(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}

	dsn := fmt.Sprintf("file:%s?mode=ro&_pragma=busy_timeout(%d)&_pragma=query_only(1)", dsnPath(path), busyTimeoutMS)
	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnreadable, path, err)
	}
	conn.SetMaxOpenConns(1)

	return &DB{sql: conn, path: path}, nil
}

// dsnPath escapes the characters that would terminate or garble the path
// portion of a file: URI. SQLite percent-decodes the path, so everything
// else passes through unchanged.
func dsnPath(path string) string {
	return strings.NewReplacer("%", "%25", "?", "%3F", "#", "%23").Replace(path)
}

// Close releases the underlying connection.
func (d *DB) Close() error {
	return d.sql.Close()
}

// Path returns the file path the database was opened from.
func (d *DB) Path() string {
	return d.path
}

// SchemaObjects returns every table and view in the main schema, in catalog
// order, including internal sqlite_* objects. Attached databases are not
// consulted. This implements completion.Catalog.
func (d *DB) SchemaObjects(ctx context.Context) ([]completion.SchemaObject, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT name, type FROM main.sqlite_schema WHERE type IN ('table', 'view')`)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalog, err)
	}
	defer rows.Close()

	var objects []completion.SchemaObject
	for rows.Next() {
		var name, kind string
		if err := rows.Scan(&name, &kind); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalog, err)
		}
		objects = append(objects, completion.SchemaObject{
			Name: name,
			Kind: completion.ObjectKind(kind),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalog, err)
	}
	return objects, nil
}

// OpenCatalog adapts Open to the completion.CatalogOpener signature.
func OpenCatalog(path string) (completion.Catalog, error) {
	d, err := Open(path)
	if err != nil {
		return nil, err
	}
	return d, nil
}

// TableNames returns the table names of the main schema in catalog order.
// Internal sqlite_* tables are excluded unless includeHidden is set.
func (d *DB) TableNames(ctx context.Context, includeHidden bool) ([]string, error) {
	return d.objectNames(ctx, "table", includeHidden)
}

// ViewNames returns the view names of the main schema in catalog order.
func (d *DB) ViewNames(ctx context.Context) ([]string, error) {
	return d.objectNames(ctx, "view", true)
}

func (d *DB) objectNames(ctx context.Context, kind string, includeHidden bool) ([]string, error) {
	objects, err := d.SchemaObjects(ctx)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, obj := range objects {
		if string(obj.Kind) != kind {
			continue
		}
		if !includeHidden && completion.IsInternalName(obj.Name) {
			continue
		}
		names = append(names, obj.Name)
	}
	return names, nil
}
