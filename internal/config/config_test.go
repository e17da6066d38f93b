package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultConfigIsValid(t *testing.T) {
	_, vr := NormalizeAndValidate(Default())
	require.True(t, vr.OK(), "default config must validate: %v", vr.Errors)
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("purge:\n  dry_run: false\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.False(t, cfg.Purge.DryRun)
	require.NotEmpty(t, cfg.Purge.TooSenior, "untouched sections keep defaults")
	require.Equal(t, "Jobs", cfg.Tabs.Jobs.Name)
}

func TestNormalizeDedupesAndTrimsLists(t *testing.T) {
	cfg := Default()
	cfg.Purge.TooSenior = []string{" senior ", "Senior", "", "staff"}

	out, vr := NormalizeAndValidate(cfg)
	require.True(t, vr.OK())
	require.Equal(t, []string{"senior", "staff"}, out.Purge.TooSenior)
}

func TestOverlapWarnsButValidates(t *testing.T) {
	cfg := Default()
	cfg.Purge.TooSenior = []string{"maintenance"}
	cfg.Purge.Delete = []string{"maintenance"}

	_, vr := NormalizeAndValidate(cfg)
	require.True(t, vr.OK())
	require.NotEmpty(t, vr.Warnings)
}

func TestValidateRejectsBrokenTabs(t *testing.T) {
	cfg := Default()
	cfg.Tabs.Jobs.DecisionCol = 0
	require.Error(t, Validate(cfg))

	cfg = Default()
	cfg.Tabs.Jobs.FirstDataRow = 1
	require.Error(t, Validate(cfg))

	cfg = Default()
	cfg.Tabs.Jobs.DecisionAtCol = cfg.Tabs.Jobs.DecisionCol
	require.Error(t, Validate(cfg))
}

func TestSaveAtomicRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	cfg := Default()
	cfg.Purge.DryRun = false

	require.NoError(t, SaveAtomic(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	require.False(t, loaded.Purge.DryRun)
	require.Equal(t, cfg.Purge.Delete, loaded.Purge.Delete)
}

func TestEnsureUserConfigSeedsDefaults(t *testing.T) {
	dir := t.TempDir()

	path, err := EnsureUserConfig(dir, filepath.Join(dir, "missing-shipped.yml"))
	require.NoError(t, err)
	require.FileExists(t, path)

	cfg, err := Load(path)
	require.NoError(t, err)
	require.True(t, cfg.Purge.DryRun)

	// second call keeps the existing file
	again, err := EnsureUserConfig(dir, filepath.Join(dir, "missing-shipped.yml"))
	require.NoError(t, err)
	require.Equal(t, path, again)
}

func TestOverlayPatterns(t *testing.T) {
	cfg := Default()

	// missing file leaves lists alone
	require.NoError(t, OverlayPatterns(&cfg, filepath.Join(t.TempDir(), "nope.yml")))
	require.NotEmpty(t, cfg.Purge.TooSenior)

	path := filepath.Join(t.TempDir(), "patterns.yml")
	require.NoError(t, os.WriteFile(path, []byte("too_senior:\n  - expert\ndelete:\n  - audit\n"), 0o644))
	require.NoError(t, OverlayPatterns(&cfg, path))
	require.Equal(t, []string{"expert"}, cfg.Purge.TooSenior)
	require.Equal(t, []string{"audit"}, cfg.Purge.Delete)
}
