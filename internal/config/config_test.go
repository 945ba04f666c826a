package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_Load_missingFileReturnsDefault(t *testing.T) {
	assert := assert.New(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if !assert.NoError(err) {
		return
	}
	assert.Equal(Default(), cfg)
}

func Test_Load_emptyPathReturnsDefault(t *testing.T) {
	assert := assert.New(t)

	cfg, err := Load("")
	if !assert.NoError(err) {
		return
	}
	assert.Equal(Default(), cfg)
}

func Test_Load_validFileOverridesDefaults(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "firparse.toml")
	contents := "indent_width = 4\nkeywords = [\"foo\", \"bar\"]\ntrace_filter = \"lr\"\n"
	if !assert.NoError(os.WriteFile(path, []byte(contents), 0o644)) {
		return
	}

	cfg, err := Load(path)
	if !assert.NoError(err) {
		return
	}
	assert.Equal(4, cfg.IndentWidth)
	assert.Equal([]string{"foo", "bar"}, cfg.Keywords)
	assert.Equal("lr", cfg.TraceFilter)
}

func Test_Load_malformedFileIsError(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "firparse.toml")
	if !assert.NoError(os.WriteFile(path, []byte("not valid toml = = ="), 0o644)) {
		return
	}

	_, err := Load(path)
	assert.Error(err)
}

func Test_Load_rejectsNonPositiveIndentWidth(t *testing.T) {
	assert := assert.New(t)

	dir := t.TempDir()
	path := filepath.Join(dir, "firparse.toml")
	if !assert.NoError(os.WriteFile(path, []byte("indent_width = 0\n"), 0o644)) {
		return
	}

	_, err := Load(path)
	assert.Error(err)
}
