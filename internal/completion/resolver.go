package completion

import (
	"context"
	"strings"
	"time"
)

// DefaultResolveTimeout bounds one catalog lookup. Completion runs inside
// interactive line editing, so a busy or locked database must degrade to
// "no suggestions" instead of stalling the shell.
const DefaultResolveTimeout = 300 * time.Millisecond

// ObjectKind tags a schema object as a table or a view.
type ObjectKind string

// Schema object kinds, matching the type column of sqlite_schema.
const (
	ObjectTable ObjectKind = "table"
	ObjectView  ObjectKind = "view"
)

// SchemaObject is one named table or view from a database catalog.
type SchemaObject struct {
	Name string
	Kind ObjectKind
}

// Catalog lists the tables and views of one database's main schema. The
// real implementation opens a SQLite file read-only; tests substitute an
// in-memory fake.
type Catalog interface {
	// SchemaObjects returns all tables and views in catalog order,
	// including internal sqlite_* objects.
	SchemaObjects(ctx context.Context) ([]SchemaObject, error)
	Close() error
}

// CatalogOpener opens the catalog behind a database file path.
type CatalogOpener func(path string) (Catalog, error)

// Flags is the static set of flags sqlite-glance accepts. Flag completion
// always offers exactly this list.
var Flags = []string{
	"-h", "--help",
	"-V", "--version",
	"-w", "--where",
	"-n", "--limit",
	"--hidden",
}

// Resolver turns a classified completion context into candidates.
type Resolver struct {
	// Open provides catalog access for object-name contexts.
	Open CatalogOpener
	// IncludeHidden keeps internal sqlite_* objects in the results.
	IncludeHidden bool
	// Timeout bounds catalog access; zero means DefaultResolveTimeout.
	Timeout time.Duration
}

// Resolve returns the candidates for ctx, in catalog order for object
// names. Failures of any kind (unreadable file, bad schema, lock timeout)
// resolve to an empty list; completion never surfaces errors.
func (r *Resolver) Resolve(cc Context) []string {
	switch cc.Kind {
	case KindFlag:
		return append([]string(nil), Flags...)
	case KindObjectName:
		return r.resolveObjects(cc.DBPath, cc.Prefix)
	default:
		// File paths are delegated to the shell; anything else has no
		// candidates.
		return nil
	}
}

func (r *Resolver) resolveObjects(path, prefix string) []string {
	if r.Open == nil {
		return nil
	}

	timeout := r.Timeout
	if timeout <= 0 {
		timeout = DefaultResolveTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	cat, err := r.Open(path)
	if err != nil {
		return nil
	}
	defer cat.Close()

	objects, err := cat.SchemaObjects(ctx)
	if err != nil {
		return nil
	}

	var names []string
	for _, obj := range objects {
		if !r.IncludeHidden && IsInternalName(obj.Name) {
			continue
		}
		if HasFoldedPrefix(obj.Name, prefix) {
			names = append(names, obj.Name)
		}
	}
	return names
}

// IsInternalName reports whether name belongs to a SQLite internal object.
// SQLite reserves the sqlite_ prefix for its own tables (sqlite_sequence,
// sqlite_stat1, ...).
func IsInternalName(name string) bool {
	return HasFoldedPrefix(name, "sqlite_")
}

// HasFoldedPrefix reports whether name starts with prefix under ASCII case
// folding. Only the A-Z/a-z range folds; other bytes compare exactly, which
// matches the reference behavior for typically-ASCII identifiers.
func HasFoldedPrefix(name, prefix string) bool {
	if len(prefix) > len(name) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		if foldASCII(name[i]) != foldASCII(prefix[i]) {
			return false
		}
	}
	return true
}

// FilterPrefix keeps the candidates that start with prefix, byte for byte.
// Used for flag candidates, where matching stays case-sensitive.
func FilterPrefix(candidates []string, prefix string) []string {
	if prefix == "" {
		return candidates
	}
	var out []string
	for _, c := range candidates {
		if strings.HasPrefix(c, prefix) {
			out = append(out, c)
		}
	}
	return out
}

func foldASCII(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b + ('a' - 'A')
	}
	return b
}
