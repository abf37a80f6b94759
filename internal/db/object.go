package db

import (
	"context"
	"database/sql"
	"fmt"
)

// Object is one named table or view inside an open database.
type Object struct {
	db   *DB
	Name string
}

// Object returns a handle for the named table or view. The name does not
// have to exist; Exists checks that.
func (d *DB) Object(name string) *Object {
	return &Object{db: d, Name: name}
}

// QuotedName returns the object's name quoted for use in SQL.
func (o *Object) QuotedName() string {
	return QuoteName(o.Name)
}

// Type returns the catalog type of the object ("table" or "view"), or the
// empty string when no object with this name exists in the main schema.
func (o *Object) Type(ctx context.Context) (string, error) {
	var kind string
	err := o.db.sql.QueryRowContext(ctx,
		`SELECT type FROM main.sqlite_schema WHERE name = ? AND type IN ('table', 'view')`,
		o.Name).Scan(&kind)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCatalog, err)
	}
	return kind, nil
}

// Exists reports whether the table or view is present in the main schema.
func (o *Object) Exists(ctx context.Context) (bool, error) {
	kind, err := o.Type(ctx)
	return kind != "", err
}

// Column describes one column as reported by pragma_table_xinfo. Hidden is
// 0 for ordinary columns, 1 for hidden virtual-table columns, 2 for
// generated columns and 3 for stored generated columns.
type Column struct {
	Name    string
	Type    string
	NotNull bool
	PK      int
	Hidden  int
}

// Columns returns the object's columns in declaration order.
func (o *Object) Columns(ctx context.Context) ([]Column, error) {
	rows, err := o.db.sql.QueryContext(ctx,
		`SELECT name, type, "notnull", pk, hidden FROM pragma_table_xinfo(?)`, o.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalog, err)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var c Column
		if err := rows.Scan(&c.Name, &c.Type, &c.NotNull, &c.PK, &c.Hidden); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalog, err)
		}
		cols = append(cols, c)
	}
	return cols, rows.Err()
}

// Index describes one index as reported by pragma_index_list. Origin is
// "c" for CREATE INDEX, "u" for UNIQUE constraints and "pk" for primary
// keys.
type Index struct {
	Name    string
	Unique  bool
	Origin  string
	Partial bool
}

// Indexes returns the indexes defined on a table.
func (o *Object) Indexes(ctx context.Context) ([]Index, error) {
	rows, err := o.db.sql.QueryContext(ctx,
		`SELECT name, "unique", origin, partial FROM pragma_index_list(?)`, o.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalog, err)
	}
	defer rows.Close()

	var ixs []Index
	for rows.Next() {
		var ix Index
		if err := rows.Scan(&ix.Name, &ix.Unique, &ix.Origin, &ix.Partial); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalog, err)
		}
		ixs = append(ixs, ix)
	}
	return ixs, rows.Err()
}

// IndexColumns returns the column names covered by an index, in index
// order. Rowid references render as <rowid> and expression columns as
// <expression>, matching pragma_index_info's cid conventions.
func (d *DB) IndexColumns(ctx context.Context, indexName string) ([]string, error) {
	rows, err := d.sql.QueryContext(ctx,
		`SELECT cid, name FROM pragma_index_info(?) ORDER BY seqno ASC`, indexName)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalog, err)
	}
	defer rows.Close()

	var cols []string
	for rows.Next() {
		var cid int
		var name sql.NullString
		if err := rows.Scan(&cid, &name); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalog, err)
		}
		switch cid {
		case -1:
			cols = append(cols, "<rowid>")
		case -2:
			cols = append(cols, "<expression>")
		default:
			cols = append(cols, name.String)
		}
	}
	return cols, rows.Err()
}

// ForeignKey is one foreign key constraint, possibly spanning several
// columns. To is empty when the constraint references the target table's
// primary key implicitly.
type ForeignKey struct {
	ToTable string
	From    []string
	To      []string
}

// ForeignKeys holds all foreign keys of one table.
type ForeignKeys []ForeignKey

// ForColumn returns the single-column foreign key on the named column, or
// nil if the column is not by itself a foreign key.
func (fks ForeignKeys) ForColumn(name string) *ForeignKey {
	for i := range fks {
		if len(fks[i].From) == 1 && fks[i].From[0] == name {
			return &fks[i]
		}
	}
	return nil
}

// MultiColumn returns the foreign keys spanning more than one column.
func (fks ForeignKeys) MultiColumn() []ForeignKey {
	var out []ForeignKey
	for _, fk := range fks {
		if len(fk.From) > 1 {
			out = append(out, fk)
		}
	}
	return out
}

// ForeignKeys returns the table's foreign key constraints. Columns of one
// constraint are grouped by the id column of pragma_foreign_key_list.
func (o *Object) ForeignKeys(ctx context.Context) (ForeignKeys, error) {
	rows, err := o.db.sql.QueryContext(ctx,
		`SELECT id, "table", "from", "to" FROM pragma_foreign_key_list(?) ORDER BY id, seq`, o.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalog, err)
	}
	defer rows.Close()

	var fks ForeignKeys
	lastID := -1
	for rows.Next() {
		var id int
		var toTable, from string
		var to sql.NullString
		if err := rows.Scan(&id, &toTable, &from, &to); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalog, err)
		}
		if id != lastID {
			fks = append(fks, ForeignKey{ToTable: toTable})
			lastID = id
		}
		fk := &fks[len(fks)-1]
		fk.From = append(fk.From, from)
		if to.Valid {
			fk.To = append(fk.To, to.String)
		}
	}
	return fks, rows.Err()
}

// CountRows returns the number of rows in the table or view.
func (o *Object) CountRows(ctx context.Context) (int64, error) {
	// The name cannot be a bind parameter here, so it is quoted into the
	// statement.
	var n int64
	err := o.db.sql.QueryRowContext(ctx,
		fmt.Sprintf("SELECT count(*) FROM %s", o.QuotedName())).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrCatalog, err)
	}
	return n, nil
}

// Triggers returns the names of triggers attached to the table.
func (o *Object) Triggers(ctx context.Context) ([]string, error) {
	rows, err := o.db.sql.QueryContext(ctx,
		`SELECT name FROM main.sqlite_schema WHERE type = 'trigger' AND tbl_name = ?`, o.Name)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCatalog, err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrCatalog, err)
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// CreateSQL returns the stored CREATE statement for the object, or the
// empty string for objects without one (internal tables).
func (o *Object) CreateSQL(ctx context.Context) (string, error) {
	var stmt sql.NullString
	err := o.db.sql.QueryRowContext(ctx,
		`SELECT sql FROM main.sqlite_schema WHERE name = ?`, o.Name).Scan(&stmt)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrCatalog, err)
	}
	return stmt.String, nil
}

// Attributes describes table-level properties from pragma_table_list.
// Kind is "table", "view", "shadow" or "virtual".
type Attributes struct {
	Kind         string
	Strict       bool
	WithoutRowID bool
}

// Attributes returns the table-level attributes of the object.
func (o *Object) Attributes(ctx context.Context) (Attributes, error) {
	var a Attributes
	err := o.db.sql.QueryRowContext(ctx,
		`SELECT type, strict, wr FROM pragma_table_list(?) WHERE schema = 'main'`,
		o.Name).Scan(&a.Kind, &a.Strict, &a.WithoutRowID)
	if err == sql.ErrNoRows {
		return a, nil
	}
	if err != nil {
		return a, fmt.Errorf("%w: %v", ErrCatalog, err)
	}
	return a, nil
}

// VirtualUsing returns the module name of a virtual table ("fts5", ...),
// or the empty string for ordinary tables.
func (o *Object) VirtualUsing(ctx context.Context) (string, error) {
	create, err := o.CreateSQL(ctx)
	if err != nil {
		return "", err
	}
	return virtualModule(create), nil
}
