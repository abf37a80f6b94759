package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/takluyver/sqlite-glance/internal/db"
	"github.com/takluyver/sqlite-glance/internal/render"
)

// SchemaParams contains parameters for the whole-database overview.
type SchemaParams struct {
	Path   string
	Hidden bool
	Out    io.Writer // nil means stdout with pager handling
}

// Schema shows the structure of every table and view in the database.
func Schema(params SchemaParams) error {
	ctx := context.Background()

	d, err := db.Open(params.Path)
	if err != nil {
		return err
	}
	defer d.Close()

	tables, err := d.TableNames(ctx, params.Hidden)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s — %d tables\n\n",
		render.Bold(filepath.Base(params.Path)), len(tables))

	for _, name := range tables {
		if err := writeTable(ctx, &b, d, name, params.Hidden); err != nil {
			return err
		}
	}

	views, err := d.ViewNames(ctx)
	if err != nil {
		return err
	}
	for _, name := range views {
		if err := writeView(ctx, &b, d, name); err != nil {
			return err
		}
	}

	return emit(params.Out, strings.TrimRight(b.String(), "\n"))
}

type namedIndex struct {
	index   db.Index
	columns []string
}

func writeTable(ctx context.Context, w io.Writer, d *db.DB, name string, hidden bool) error {
	obj := d.Object(name)

	attrs, err := obj.Attributes(ctx)
	if err != nil {
		return err
	}
	if attrs.Kind == "shadow" && !hidden {
		return nil
	}

	indexes, err := obj.Indexes(ctx)
	if err != nil {
		return err
	}

	colsUnique := map[string]bool{}  // columns to label UNIQUE
	colsIndexed := map[string]bool{} // 1-column indexes, not unique
	var pkCols []string
	var otherIndexes []namedIndex
	for _, ix := range indexes {
		cols, err := d.IndexColumns(ctx, ix.Name)
		if err != nil {
			return err
		}
		switch {
		case ix.Origin == "pk":
			pkCols = cols
		case len(cols) == 1 && ix.Unique:
			colsUnique[cols[0]] = true
		case len(cols) == 1:
			colsIndexed[cols[0]] = true
		default:
			otherIndexes = append(otherIndexes, namedIndex{index: ix, columns: cols})
		}
	}

	nrows, err := obj.CountRows(ctx)
	if err != nil {
		return err
	}
	foreignKeys, err := obj.ForeignKeys(ctx)
	if err != nil {
		return err
	}

	create, err := obj.CreateSQL(ctx)
	if err != nil {
		return err
	}

	using, err := obj.VirtualUsing(ctx)
	if err != nil {
		return err
	}
	description := "table"
	switch {
	case using != "":
		description = "virtual table using " + using
	case attrs.Kind == "shadow":
		description = "shadow table"
	}

	var tableAttrs string
	{
		var attrsList []string
		if attrs.Strict {
			attrsList = append(attrsList, render.Bold("STRICT"))
		}
		if attrs.WithoutRowID {
			attrsList = append(attrsList, render.Bold("WITHOUT ROWID"))
		}
		if len(attrsList) > 0 {
			tableAttrs = fmt.Sprintf(" [%s]", strings.Join(attrsList, ", "))
		}
	}

	fmt.Fprintf(w, "%s %s (%d rows)%s:\n",
		render.ObjectName(obj.QuotedName()), description, nrows, tableAttrs)

	columns, err := obj.Columns(ctx)
	if err != nil {
		return err
	}
	for _, col := range columns {
		if col.Hidden == 1 && !hidden {
			continue
		}
		fmt.Fprintf(w, "  %s", render.ColumnName(col.Name))
		if col.Type != "" {
			fmt.Fprintf(w, " %s", col.Type)
		}
		if col.NotNull {
			fmt.Fprint(w, " NOT NULL")
		}
		// Mark the primary key on the column when it is a PK by itself.
		// pkCols may be empty for integer primary keys.
		switch {
		case col.PK > 0 && len(pkCols) <= 1:
			fmt.Fprint(w, " PRIMARY KEY")
		case colsUnique[col.Name]:
			fmt.Fprint(w, " UNIQUE")
		case colsIndexed[col.Name]:
			fmt.Fprint(w, " indexed")
		}
		if fk := foreignKeys.ForColumn(col.Name); fk != nil {
			fmt.Fprintf(w, " REFERENCES %s", render.ObjectName(fk.ToTable))
			if len(fk.To) > 0 && fk.To[0] != "" {
				fmt.Fprintf(w, " (%s)", render.ColumnList(fk.To))
			}
		}
		switch col.Hidden {
		case 1:
			// Only comes up in virtual tables.
			fmt.Fprint(w, " hidden")
		case 2, 3:
			if expr := db.GeneratedExpr(create, col.Name); expr != "" {
				fmt.Fprintf(w, " AS (%s)", expr)
			} else {
				fmt.Fprint(w, " generated")
			}
			if col.Hidden == 3 {
				fmt.Fprint(w, " STORED")
			}
		}
		fmt.Fprintln(w)
	}
	if len(pkCols) > 1 {
		fmt.Fprintf(w, "PRIMARY KEY (%s)\n", render.ColumnList(pkCols))
	}

	for _, fk := range foreignKeys.MultiColumn() {
		fmt.Fprintf(w, "FOREIGN KEY (%s) REFERENCES %s (%s)\n",
			render.ColumnList(fk.From), render.ObjectName(fk.ToTable), render.ColumnList(fk.To))
	}

	if len(otherIndexes) > 0 {
		fmt.Fprintln(w, "Indexes:")
		for _, ix := range otherIndexes {
			fmt.Fprintf(w, "  %s (%s)", ix.index.Name, render.ColumnList(ix.columns))
			if ix.index.Unique {
				fmt.Fprint(w, " UNIQUE")
			}
			fmt.Fprintln(w)
		}
	}

	triggers, err := obj.Triggers(ctx)
	if err != nil {
		return err
	}
	if len(triggers) > 0 {
		fmt.Fprintln(w, "Triggers:")
		for _, trigger := range triggers {
			fmt.Fprintf(w, "  %s\n", render.Trigger(trigger))
		}
	}
	fmt.Fprintln(w)
	return nil
}

func writeView(ctx context.Context, w io.Writer, d *db.DB, name string) error {
	obj := d.Object(name)

	nrows, err := obj.CountRows(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%s view (%d rows):\n", render.ObjectName(obj.QuotedName()), nrows)

	columns, err := obj.Columns(ctx)
	if err != nil {
		return err
	}
	for _, col := range columns {
		fmt.Fprintf(w, "  %s\n", render.ColumnName(col.Name))
	}

	create, err := obj.CreateSQL(ctx)
	if err != nil {
		return err
	}
	if query := db.ViewQuery(create); query != "" {
		fmt.Fprintf(w, "AS %s\n", query)
	}
	fmt.Fprintln(w)
	return nil
}
