package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/takluyver/sqlite-glance/internal/render"
)

func TestInspectAllRows(t *testing.T) {
	render.NoColor()
	path := createTestDB(t)

	var out bytes.Buffer
	err := Inspect(InspectParams{Path: path, Table: "Users", Limit: 12, Out: &out})
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "Users table")
	assert.Contains(t, got, "ada")
	assert.Contains(t, got, "grace")
	assert.Contains(t, got, "2 of 2 rows")
}

func TestInspectLimit(t *testing.T) {
	render.NoColor()
	path := createTestDB(t)

	var out bytes.Buffer
	err := Inspect(InspectParams{Path: path, Table: "Users", Limit: 1, Out: &out})
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "ada")
	assert.NotContains(t, got, "grace")
	assert.Contains(t, got, "1 of 2 rows")
}

func TestInspectWhere(t *testing.T) {
	render.NoColor()
	path := createTestDB(t)

	var out bytes.Buffer
	err := Inspect(InspectParams{
		Path:  path,
		Table: "Users",
		Where: "name = 'ada'",
		Limit: 12,
		Out:   &out,
	})
	require.NoError(t, err)

	got := out.String()
	assert.Contains(t, got, "ada")
	assert.NotContains(t, got, "grace")
	assert.Contains(t, got, "1 of 1 selected rows (of 2 in table)")
}

func TestInspectView(t *testing.T) {
	render.NoColor()
	path := createTestDB(t)

	var out bytes.Buffer
	err := Inspect(InspectParams{Path: path, Table: "UserLog", Limit: 12, Out: &out})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "UserLog view")
}

func TestInspectMissingTable(t *testing.T) {
	path := createTestDB(t)

	err := Inspect(InspectParams{Path: path, Table: "nonesuch", Limit: 12, Out: &bytes.Buffer{}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such table: nonesuch")
}

func TestInspectMissingDatabase(t *testing.T) {
	err := Inspect(InspectParams{Path: "/no/such/file.db", Table: "Users", Limit: 12, Out: &bytes.Buffer{}})
	assert.Error(t, err)
}
