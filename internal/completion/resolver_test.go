package completion

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	objects []SchemaObject
	err     error
	closed  bool
}

func (f *fakeCatalog) SchemaObjects(_ context.Context) ([]SchemaObject, error) {
	return f.objects, f.err
}

func (f *fakeCatalog) Close() error {
	f.closed = true
	return nil
}

func openerFor(cat *fakeCatalog) CatalogOpener {
	return func(string) (Catalog, error) { return cat, nil }
}

func sampleCatalog() *fakeCatalog {
	return &fakeCatalog{objects: []SchemaObject{
		{Name: "Users", Kind: ObjectTable},
		{Name: "orders", Kind: ObjectTable},
		{Name: "UserLog", Kind: ObjectView},
	}}
}

func TestResolveObjectNames(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		want   []string
	}{
		{"folded prefix matches tables and views", "user", []string{"Users", "UserLog"}},
		{"upper-case prefix folds the same way", "USER", []string{"Users", "UserLog"}},
		{"mixed-case prefix folds the same way", "uSeR", []string{"Users", "UserLog"}},
		{"empty prefix returns everything in catalog order", "", []string{"Users", "orders", "UserLog"}},
		{"prefix narrowing to one object", "or", []string{"orders"}},
		{"no match", "zz", nil},
		{"prefix longer than every name", "userloggerextra", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := &Resolver{Open: openerFor(sampleCatalog())}
			got := r.Resolve(Context{Kind: KindObjectName, DBPath: "data.db", Prefix: tt.prefix})
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveIsRepeatable(t *testing.T) {
	r := &Resolver{Open: openerFor(sampleCatalog())}
	cc := Context{Kind: KindObjectName, DBPath: "data.db"}

	first := r.Resolve(cc)
	second := r.Resolve(cc)
	assert.Equal(t, first, second)
	assert.Equal(t, []string{"Users", "orders", "UserLog"}, second)
}

func TestResolveHiddenObjects(t *testing.T) {
	cat := &fakeCatalog{objects: []SchemaObject{
		{Name: "Users", Kind: ObjectTable},
		{Name: "sqlite_sequence", Kind: ObjectTable},
		{Name: "SQLite_stat1", Kind: ObjectTable},
	}}
	cc := Context{Kind: KindObjectName, DBPath: "data.db"}

	r := &Resolver{Open: openerFor(cat)}
	assert.Equal(t, []string{"Users"}, r.Resolve(cc))

	r.IncludeHidden = true
	assert.Equal(t, []string{"Users", "sqlite_sequence", "SQLite_stat1"}, r.Resolve(cc))
}

func TestResolveFlagsIgnoreDatabase(t *testing.T) {
	// Flag completion must not touch the database at all.
	r := &Resolver{Open: func(string) (Catalog, error) {
		t.Fatal("catalog opened for a flag context")
		return nil, nil
	}}

	got := r.Resolve(Context{Kind: KindFlag, DBPath: "missing.db", Prefix: "--"})
	assert.Equal(t, Flags, got)

	// The result is a copy: mutating it must not corrupt the shared set.
	got[0] = "mutated"
	assert.Equal(t, "-h", Flags[0])
}

func TestResolveFailuresAreEmpty(t *testing.T) {
	cc := Context{Kind: KindObjectName, DBPath: "data.db", Prefix: "u"}

	t.Run("opener error", func(t *testing.T) {
		r := &Resolver{Open: func(string) (Catalog, error) {
			return nil, errors.New("unreadable")
		}}
		assert.Empty(t, r.Resolve(cc))
	})

	t.Run("catalog error", func(t *testing.T) {
		cat := &fakeCatalog{err: errors.New("file is not a database")}
		r := &Resolver{Open: openerFor(cat)}
		assert.Empty(t, r.Resolve(cc))
		assert.True(t, cat.closed, "catalog must be closed even on failure")
	})

	t.Run("nil opener", func(t *testing.T) {
		r := &Resolver{}
		assert.Empty(t, r.Resolve(cc))
	})
}

// stalledCatalog blocks until the resolver's deadline cancels the lookup,
// standing in for a locked or unresponsive database file.
type stalledCatalog struct{}

func (stalledCatalog) SchemaObjects(ctx context.Context) ([]SchemaObject, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (stalledCatalog) Close() error { return nil }

func TestResolveStalledCatalogHitsTimeout(t *testing.T) {
	r := &Resolver{
		Open:    func(string) (Catalog, error) { return stalledCatalog{}, nil },
		Timeout: 10 * time.Millisecond,
	}

	start := time.Now()
	got := r.Resolve(Context{Kind: KindObjectName, DBPath: "data.db", Prefix: "u"})
	assert.Empty(t, got)
	assert.Less(t, time.Since(start), time.Second,
		"a stalled catalog must not block past the resolve budget")
}

func TestResolveUnsupportedKinds(t *testing.T) {
	r := &Resolver{Open: openerFor(sampleCatalog())}
	assert.Empty(t, r.Resolve(Context{Kind: KindNone}))
	assert.Empty(t, r.Resolve(Context{Kind: KindFilePath, Prefix: "da"}))
}

func TestResolveClosesCatalog(t *testing.T) {
	cat := sampleCatalog()
	r := &Resolver{Open: openerFor(cat)}

	r.Resolve(Context{Kind: KindObjectName, DBPath: "data.db"})
	require.True(t, cat.closed)
}

func TestHasFoldedPrefix(t *testing.T) {
	tests := []struct {
		name, prefix string
		want         bool
	}{
		{"Users", "us", true},
		{"Users", "US", true},
		{"users", "Users", false}, // prefix longer than name
		{"Users", "", true},
		{"Users", "se", false},
		{"order_2024", "ORDER_", true},
		// Only ASCII folds; other bytes compare exactly.
		{"Ärger", "ärger", false},
		{"Ärger", "Ärger", true},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, HasFoldedPrefix(tt.name, tt.prefix),
			"HasFoldedPrefix(%q, %q)", tt.name, tt.prefix)
	}
}

func TestIsInternalName(t *testing.T) {
	assert.True(t, IsInternalName("sqlite_sequence"))
	assert.True(t, IsInternalName("SQLITE_stat1"))
	assert.False(t, IsInternalName("sqlite"))
	assert.False(t, IsInternalName("my_sqlite_notes"))
}

func TestFilterPrefix(t *testing.T) {
	flags := []string{"-h", "--help", "--hidden", "-V"}

	assert.Equal(t, flags, FilterPrefix(flags, ""))
	assert.Equal(t, []string{"--help", "--hidden"}, FilterPrefix(flags, "--h"))
	assert.Equal(t, []string{"-V"}, FilterPrefix(flags, "-V"))
	// Flag matching stays case-sensitive.
	assert.Empty(t, FilterPrefix(flags, "-v"))
}
