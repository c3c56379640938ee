package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/signaltower/pkg/errors"
)

func TestDefault(t *testing.T) {
	s := Default()
	require.NoError(t, s.Validate())

	assert.Equal(t, 22, s.Grid.Rows)
	assert.Equal(t, 30, s.Grid.Cols)
	assert.Equal(t, 0.3, s.Grid.BlockCoverage)
	assert.Equal(t, 5, s.Towers.Radius)
	require.NotNil(t, s.Path.Start)
	require.NotNil(t, s.Path.End)
	assert.Equal(t, 2, *s.Path.Start)
	assert.Equal(t, 7, *s.Path.End)
	assert.Equal(t, BackendFile, s.Cache.Backend)
	assert.Equal(t, 24*time.Hour, s.Cache.TTL.Duration)
}

func TestParseOverridesDefaults(t *testing.T) {
	s, err := Parse([]byte(`
[grid]
rows = 10
seed = 7

[towers]
radius = 2

[path]
start_at = [1, 2]
end = 3

[render]
formats = ["png", "dot"]

[cache]
backend = "redis"
ttl = "90m"
`))
	require.NoError(t, err)

	assert.Equal(t, 10, s.Grid.Rows)
	assert.Equal(t, 30, s.Grid.Cols, "unset keys keep defaults")
	assert.Equal(t, uint64(7), s.Grid.Seed)
	assert.Equal(t, 2, s.Towers.Radius)
	assert.Nil(t, s.Path.Start, "a [path] section replaces the default endpoints")
	assert.Equal(t, &[2]int{1, 2}, s.Path.StartAt)
	require.NotNil(t, s.Path.End)
	assert.Equal(t, 3, *s.Path.End)
	assert.Equal(t, []string{"png", "dot"}, s.Render.Formats)
	assert.Equal(t, BackendRedis, s.Cache.Backend)
	assert.Equal(t, 90*time.Minute, s.Cache.TTL.Duration)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		toml string
		code errors.Code
	}{
		{"unknown key", "[grid]\nrowz = 3\n", errors.ErrCodeInvalidInput},
		{"unknown section", "[towerz]\nradius = 3\n", errors.ErrCodeInvalidInput},
		{"syntax", "[grid\n", errors.ErrCodeInvalidFormat},
		{"zero rows", "[grid]\nrows = 0\n", errors.ErrCodeInvalidConfiguration},
		{"full coverage", "[grid]\nblock_coverage = 1.0\n", errors.ErrCodeInvalidConfiguration},
		{"negative radius", "[towers]\nradius = -1\n", errors.ErrCodeInvalidConfiguration},
		{"both start forms", "[path]\nstart = 1\nstart_at = [0, 0]\nend = 2\n", errors.ErrCodeInvalidInput},
		{"missing end", "[path]\nstart = 1\n", errors.ErrCodeInvalidInput},
		{"negative index", "[path]\nstart = -1\nend = 2\n", errors.ErrCodeInvalidInput},
		{"bad format", "[render]\nformats = [\"gif\"]\n", errors.ErrCodeInvalidInput},
		{"bad backend", "[cache]\nbackend = \"memcached\"\n", errors.ErrCodeInvalidInput},
		{"bad ttl", "[cache]\nttl = \"soon\"\n", errors.ErrCodeInvalidFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.toml))
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.GetCode(err), "%v", err)
		})
	}
}

func TestEmptyPathSectionDisablesPath(t *testing.T) {
	s, err := Parse([]byte("[path]\n"))
	require.NoError(t, err)
	assert.False(t, s.Path.Enabled())
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "scenario.toml")
	require.NoError(t, os.WriteFile(path, []byte("[towers]\nradius = 3\n"), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, s.Towers.Radius)

	_, err = Load(filepath.Join(dir, "missing.toml"))
	assert.True(t, errors.Is(err, errors.ErrCodeNotFound))
}

func TestEncodeRoundTrip(t *testing.T) {
	s := Default()
	s.Grid.Seed = 99
	data, err := s.Encode()
	require.NoError(t, err)

	back, err := Parse(data)
	require.NoError(t, err)
	assert.Equal(t, s, back)
}

func TestPaths(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/xc")
	t.Setenv("XDG_DATA_HOME", "/tmp/xd")

	dir, err := CacheDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xc", AppName), dir)

	db, err := StoreConfig{}.StorePath()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xd", AppName, "runs.db"), db)

	db, err = StoreConfig{Path: "/srv/runs.db"}.StorePath()
	require.NoError(t, err)
	assert.Equal(t, "/srv/runs.db", db)
}

func TestRedisAddress(t *testing.T) {
	t.Setenv(RedisAddrEnv, "")
	assert.Equal(t, "localhost:6379", CacheConfig{}.RedisAddress())

	t.Setenv(RedisAddrEnv, "cache:6380")
	assert.Equal(t, "cache:6380", CacheConfig{}.RedisAddress())
	assert.Equal(t, "explicit:1", CacheConfig{RedisAddr: "explicit:1"}.RedisAddress())
}
