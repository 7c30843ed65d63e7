package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"govlock/host"
)

// run executes one command the way a shell invocation would, in a fresh tree.
func run(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append([]string{"--home", home, "--log-level", "error"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func mustRun(t *testing.T, home string, args ...string) string {
	t.Helper()
	out, err := run(t, home, args...)
	require.NoError(t, err, out)
	return out
}

// TestCommandFlow checks a lock and a proposal survive across separate invocations on the badger store.
func TestCommandFlow(t *testing.T) {
	home := t.TempDir()

	out := mustRun(t, home, "config", "init")
	assert.Contains(t, out, filepath.Join(home, "config.toml"))
	_, err := os.Stat(filepath.Join(home, "config.toml"))
	require.NoError(t, err)
	_, err = run(t, home, "config", "init")
	assert.Error(t, err)

	out = mustRun(t, home, "init")
	assert.Contains(t, out, "instantiated contract:locker and contract:gov at height 1")

	out = mustRun(t, home, "fund", "alice", "100ucmdx")
	assert.Equal(t, "alice: 100ucmdx\n", out)

	out = mustRun(t, home, "exec", "locker", `{"lock":{"app_id":1,"locking_period":"t4"}}`, "--from", "alice", "--funds", "40ucmdx")
	assert.Contains(t, out, `{"key":"action","value":"lock"}`)
	assert.Equal(t, "contract:locker: 40ucmdx\n", mustRun(t, home, "balance", "locker"))

	assert.Equal(t, "height 3 time 1700000010\n", mustRun(t, home, "block", "--advance", "2"))

	out = mustRun(t, home, "exec", "gov",
		`{"propose":{"propose":{"title":"wl","description":"d","msgs":[{"msg_white_list_asset_locker":{"app_mapping_id":1,"asset_id":2}}],"app_id_param":1}}}`,
		"--from", "alice", "--funds", "10ucmdx")
	assert.Contains(t, out, `{"key":"proposal_id","value":"1"}`)

	out = mustRun(t, home, "query", "gov", `{"proposal":{"proposal_id":1}}`)
	assert.Contains(t, out, `"status":"passed"`)

	out = mustRun(t, home, "exec", "gov", `{"execute":{"proposal_id":1}}`, "--from", "bob")
	assert.Contains(t, out, `"execute_action"`)

	assert.Equal(t, "alice: 50ucmdx\n", mustRun(t, home, "balance", "alice"))

	_, err = run(t, home, "block", "--height", "2")
	assert.ErrorIs(t, err, host.ErrClock)
}

func TestSudoIsAdminOnly(t *testing.T) {
	home := t.TempDir()
	mustRun(t, home, "config", "init")
	mustRun(t, home, "init")

	_, err := run(t, home, "sudo", "gov", `{"update_locking_contract":{"address":"contract:locker2"}}`, "--from", "mallory")
	assert.ErrorIs(t, err, ErrNotAdmin)

	out := mustRun(t, home, "sudo", "gov", `{"update_locking_contract":{"address":"contract:locker2"}}`, "--from", "admin")
	assert.Contains(t, out, `"attributes"`)

	_, err = run(t, home, "sudo", "locker", `{"anything":{}}`, "--from", "admin")
	assert.ErrorIs(t, err, host.ErrNoSudo)
}

func TestMemoryBackendFromEnv(t *testing.T) {
	t.Setenv("GOVLOCK_STORE_BACKEND", "memory")
	home := t.TempDir()

	out := mustRun(t, home, "block")
	assert.Equal(t, "height 1 time 1700000000\n", out)
	_, err := os.Stat(filepath.Join(home, "data"))
	assert.True(t, os.IsNotExist(err))
}
