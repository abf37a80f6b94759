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

// InspectParams contains parameters for the table view.
type InspectParams struct {
	Path  string
	Table string
	Where string
	Limit int64
	Out   io.Writer // nil means stdout with pager handling
}

// Inspect shows sample rows from one table or view.
func Inspect(params InspectParams) error {
	ctx := context.Background()

	d, err := db.Open(params.Path)
	if err != nil {
		return err
	}
	defer d.Close()

	obj := d.Object(params.Table)
	exists, err := obj.Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("no such table: %s", params.Table)
	}
	kind, err := obj.Type(ctx)
	if err != nil {
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s %s\n",
		filepath.Base(params.Path), render.ObjectName(obj.QuotedName()), kind)

	query := fmt.Sprintf("SELECT * FROM %s", obj.QuotedName())
	if params.Where != "" {
		query += " WHERE " + params.Where
	}
	query += " LIMIT ?"

	headers, raw, err := d.Query(ctx, query, params.Limit)
	if err != nil {
		return err
	}

	rows := make([][]string, len(raw))
	for i, rawRow := range raw {
		row := make([]string, len(rawRow))
		for j, v := range rawRow {
			row[j] = render.Value(v)
		}
		rows[i] = row
	}
	fmt.Fprintln(&b, render.RowTable(headers, rows))

	total, err := obj.CountRows(ctx)
	if err != nil {
		return err
	}
	if params.Where != "" {
		selected, err := countWhere(ctx, d, obj, params.Where)
		if err != nil {
			return err
		}
		fmt.Fprintf(&b, "%d of %d selected rows (of %d in table)\n", len(rows), selected, total)
	} else {
		fmt.Fprintf(&b, "%d of %d rows\n", len(rows), total)
	}

	return emit(params.Out, strings.TrimRight(b.String(), "\n"))
}

func countWhere(ctx context.Context, d *db.DB, obj *db.Object, where string) (int64, error) {
	_, rows, err := d.Query(ctx,
		fmt.Sprintf("SELECT count(*) FROM %s WHERE %s", obj.QuotedName(), where))
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 || len(rows[0]) == 0 {
		return 0, fmt.Errorf("count query returned no rows")
	}
	n, ok := rows[0][0].(int64)
	if !ok {
		return 0, fmt.Errorf("count query returned %T", rows[0][0])
	}
	return n, nil
}

// emit writes finished output either to an explicit writer (tests) or to
// stdout with pager handling.
func emit(out io.Writer, text string) error {
	if out != nil {
		_, err := fmt.Fprintln(out, text)
		return err
	}
	return render.Display(text)
}
