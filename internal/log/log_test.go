package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		" Warn ":  zapcore.WarnLevel,
		"WARNING": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"":        zapcore.InfoLevel,
		"verbose": zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), in)
	}
}

func TestValidate(t *testing.T) {
	c := Conf{Output: "file"}
	assert.Error(t, c.Validate())

	c = Conf{Output: "file", Path: t.TempDir()}
	require.NoError(t, c.Validate())
	assert.Equal(t, 100, c.RotateSize)
	assert.Equal(t, 10, c.RotateNum)
	assert.Equal(t, 7, c.KeepDays)
	assert.Equal(t, "papergen.log", c.Filename)
}

func TestFileOutput(t *testing.T) {
	dir := t.TempDir()
	conf := Defaults()
	conf.Output = "file"
	conf.Path = dir

	l, err := New(conf)
	require.NoError(t, err)
	l.Infow("paper generated", "id", "p1")
	_ = l.Sync()

	body, err := os.ReadFile(filepath.Join(dir, "papergen.log"))
	require.NoError(t, err)
	assert.Contains(t, string(body), "paper generated")
	assert.Contains(t, string(body), "INFO")
}
