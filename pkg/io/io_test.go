package io

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/signaltower/pkg/city"
	"github.com/matzehuels/signaltower/pkg/coverage"
	"github.com/matzehuels/signaltower/pkg/errors"
	"github.com/matzehuels/signaltower/pkg/relay"
)

func cornerPlan(t *testing.T) *Plan {
	t.Helper()
	g, err := city.Parse("#...", "....", "....", "...#")
	require.NoError(t, err)
	towers, err := coverage.Optimize(g, 1)
	require.NoError(t, err)
	path, err := relay.FindPath(1, towers, towers[0], towers[1])
	require.NoError(t, err)
	return &Plan{
		Version:  FormatVersion,
		Seed:     42,
		Radius:   1,
		Grid:     g,
		Towers:   towers,
		Path:     path,
		Coverage: coverage.Summarize(g),
	}
}

func TestRoundTrip(t *testing.T) {
	p := cornerPlan(t)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(p, &buf))
	assert.Contains(t, buf.String(), `"towers": [`)

	back, err := ReadJSON(&buf)
	require.NoError(t, err)
	assert.True(t, p.Grid.Equal(back.Grid))
	assert.Equal(t, p.Towers, back.Towers)
	assert.Equal(t, p.Path, back.Path)
	assert.Equal(t, p.Coverage, back.Coverage)
	assert.Equal(t, p.Seed, back.Seed)
}

func TestWriteJSONEmptySlices(t *testing.T) {
	g, err := city.Parse("..")
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&Plan{Grid: g}, &buf))
	out := buf.String()
	assert.Contains(t, out, `"towers": []`)
	assert.Contains(t, out, `"path": []`)
	assert.Contains(t, out, `"version": 1`)
}

func TestReadJSONRejectsInconsistentPlans(t *testing.T) {
	tests := []struct {
		name string
		json string
		code errors.Code
	}{
		{
			name: "malformed",
			json: `{"version":1,`,
			code: errors.ErrCodeInvalidFormat,
		},
		{
			name: "future version",
			json: `{"version":2,"grid":{"rows":1,"cols":1,"cells":["T"]}}`,
			code: errors.ErrCodeUnsupported,
		},
		{
			name: "no grid",
			json: `{"version":1}`,
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "tower on empty cell",
			json: `{"version":1,"grid":{"rows":1,"cols":2,"cells":["T."]},"towers":[[0,1]]}`,
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "tower out of bounds",
			json: `{"version":1,"grid":{"rows":1,"cols":2,"cells":["T."]},"towers":[[3,3]]}`,
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "path hop not a tower",
			json: `{"version":1,"grid":{"rows":1,"cols":2,"cells":["TT"]},"towers":[[0,0]],"path":[[0,0],[0,1]]}`,
			code: errors.ErrCodeInvalidInput,
		},
		{
			name: "negative radius",
			json: `{"version":1,"radius":-2,"grid":{"rows":1,"cols":1,"cells":["T"]}}`,
			code: errors.ErrCodeInvalidConfiguration,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadJSON(strings.NewReader(tt.json))
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), "%v", err)
		})
	}
}

func TestExportImport(t *testing.T) {
	p := cornerPlan(t)
	path := filepath.Join(t.TempDir(), "plan.json")

	require.NoError(t, ExportJSON(p, path))
	back, err := ImportJSON(path)
	require.NoError(t, err)
	assert.Equal(t, p.Towers, back.Towers)

	_, err = ImportJSON(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
