package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govlock/coin"
	"govlock/contract/governance"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

// TestDefaults checks Load without a file yields a runnable config.
func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "badger", cfg.Store.Backend)
	assert.Equal(t, uint64(5), cfg.Chain.BlockSeconds)
	assert.Equal(t, "contract:gov", cfg.Governance.Address)
	assert.Empty(t, cfg.Platform.Apps)

	msg, err := cfg.LockerInit()
	require.NoError(t, err)
	assert.Equal(t, uint64(2_419_200), msg.T4.Period)
	assert.True(t, msg.T1.Weight.Equal(coin.Percent(25)))
}

// TestTemplate checks the shipped template loads and carries the platform tables.
func TestTemplate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "home", FileName)
	require.NoError(t, WriteTemplate(path))
	assert.Error(t, WriteTemplate(path))

	cfg, err := Load(path)
	require.NoError(t, err)

	apps, err := cfg.Apps()
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Equal(t, "harbor", apps[0].Name)
	assert.Equal(t, "10", apps[0].MinGovDeposit.String())
	assert.Equal(t, uint64(3600), apps[0].GovTimeInSeconds)

	assets := cfg.Assets()
	require.Len(t, assets, 2)
	assert.Equal(t, "uatom", assets[1].Denom)

	gov, err := cfg.GovernanceInit()
	require.NoError(t, err)
	assert.Equal(t, governance.ThresholdQuorumKind, gov.Threshold.Kind)
	assert.True(t, gov.Threshold.Quorum.Equal(coin.Percent(33)))
	assert.Equal(t, "contract:locker", gov.LockingContract)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("GOVLOCK_LOG_LEVEL", "debug")
	t.Setenv("GOVLOCK_STORE_BACKEND", "memory")
	path := writeFile(t, "[log]\nlevel = \"warn\"\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "memory", cfg.Store.Backend)
}

func TestInvalid(t *testing.T) {
	cases := map[string]string{
		"backend":   "[store]\nbackend = \"sqlite\"\n",
		"weight":    "[locker.t2]\nweight = \"half\"\n",
		"threshold": "[governance]\nthreshold = \"x\"\n",
		"admin":     "[governance]\nadmin = \"two words\"\n",
		"deposit":   "[[platform.apps]]\nid = 1\nmin_gov_deposit = \"-1\"\n",
		"block":     "[chain]\nblock_seconds = 0\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := Load(writeFile(t, body))
			assert.ErrorIs(t, err, ErrInvalidConfig)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestStorePath(t *testing.T) {
	cfg := &Config{Store: Store{Path: "data"}}
	assert.Equal(t, filepath.Join("/srv/gl", "data"), cfg.StorePath("/srv/gl"))
	cfg.Store.Path = "/var/lib/gl"
	assert.Equal(t, "/var/lib/gl", cfg.StorePath("/srv/gl"))
}
