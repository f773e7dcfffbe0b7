package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 70, cfg.Rubric.MinWords)
	assert.Equal(t, 90, cfg.Rubric.MaxWords)
	assert.Equal(t, 3, cfg.Rubric.MinSentences)
	assert.Equal(t, 4, cfg.Rubric.MaxSentences)
	assert.NotEmpty(t, cfg.Rubric.Text)

	assert.Equal(t, 6, cfg.Cache.OperationTTLHours)
	assert.Equal(t, 24, cfg.Cache.ArticleTTLHours)
	assert.Equal(t, 1024, cfg.Cache.MaxEntries)

	assert.Equal(t, 3, cfg.Pipeline.Concurrency)
	assert.Equal(t, 8000, cfg.Server.Port)

	assert.Contains(t, cfg.Evaluation.Companies, "Walmart")
	assert.Contains(t, cfg.Evaluation.Tools, "ChatGPT")
	assert.Contains(t, cfg.Evaluation.RetailTerms, "retail")
	assert.NotEmpty(t, cfg.Evaluation.ROIPattern)
}

func TestEmbeddedDefaultYAMLParses(t *testing.T) {
	cfg, err := parse(DefaultConfigYAML)
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Sources.Feeds)
	assert.NotEmpty(t, cfg.Sources.Keywords)
	assert.NotEmpty(t, cfg.Evaluation.CategoryFramework)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte("rubric:\n  min_words: 50\ncache:\n  max_entries: 8\n")
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Rubric.MinWords)
	assert.Equal(t, 90, cfg.Rubric.MaxWords, "unset fields keep defaults")
	assert.Equal(t, 8, cfg.Cache.MaxEntries)
}

func TestLoaderReloadsOnMtimeChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	base := time.Now().Add(-time.Hour)

	write := func(text string, mtime time.Time) {
		require.NoError(t, os.WriteFile(path, []byte("rubric:\n  text: \""+text+"\"\n"), 0o644))
		require.NoError(t, os.Chtimes(path, mtime, mtime))
	}

	write("first rubric", base)
	l := NewLoader(path)
	assert.Equal(t, "first rubric", l.Current().Rubric.Text)

	// Same mtime: cached snapshot is served.
	write("sneaky rubric", base)
	assert.Equal(t, "first rubric", l.Current().Rubric.Text)

	write("second rubric", base.Add(time.Minute))
	assert.Equal(t, "second rubric", l.Current().Rubric.Text)
}

func TestLoaderFallsBackWhenUnreadable(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "missing.yaml"))
	cfg := l.Current()
	require.NotNil(t, cfg)
	assert.Equal(t, 70, cfg.Rubric.MinWords)
}

func TestStaticLoaderNeverReloads(t *testing.T) {
	cfg := Default()
	cfg.Rubric.Text = "pinned"
	l := NewStaticLoader(cfg)
	assert.Equal(t, "pinned", l.Current().Rubric.Text)
}

func TestResolveConfigPathExplicitMissing(t *testing.T) {
	_, err := ResolveConfigPath(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestResolveConfigPathExplicit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(""), 0o644))

	got, err := ResolveConfigPath(path)
	require.NoError(t, err)
	assert.Equal(t, path, got)
}
