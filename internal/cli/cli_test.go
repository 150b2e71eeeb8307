package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mesh-intelligence/wordbubble/internal/session"
	"github.com/mesh-intelligence/wordbubble/pkg/types"
	"github.com/mesh-intelligence/wordbubble/pkg/wordbubble"
)

type cliEnv struct {
	configDir string
	dataDir   string
}

func newCLIEnv(t *testing.T) cliEnv {
	t.Helper()
	root := t.TempDir()
	return cliEnv{
		configDir: filepath.Join(root, "config"),
		dataDir:   filepath.Join(root, "data"),
	}
}

// run executes the CLI with the env's directories and returns stdout.
func (e cliEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config-dir", e.configDir, "--data-dir", e.dataDir}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestVersion(t *testing.T) {
	out, err := newCLIEnv(t).run(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "wordbubble v"+wordbubble.Version)
	assert.Contains(t, out, modulePath)
}

func TestInit_CreatesConfigAndData(t *testing.T) {
	env := newCLIEnv(t)
	out, err := env.run(t, "init")
	require.NoError(t, err)
	assert.Contains(t, out, "initialized successfully")

	data, err := os.ReadFile(filepath.Join(env.configDir, "config.yaml"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "backend: sqlite")
	assert.FileExists(t, filepath.Join(env.dataDir, "words.jsonl"))

	// Idempotent.
	_, err = env.run(t, "init")
	require.NoError(t, err)
}

func TestInit_BadgerBackendFromConfig(t *testing.T) {
	env := newCLIEnv(t)
	require.NoError(t, os.MkdirAll(env.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.configDir, "config.yaml"), []byte("backend: badger\n"), 0o644))

	_, err := env.run(t, "init")
	require.NoError(t, err)
	assert.DirExists(t, filepath.Join(env.dataDir, "badger"))
}

func TestInit_InvalidConfig(t *testing.T) {
	env := newCLIEnv(t)
	require.NoError(t, os.MkdirAll(env.configDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(env.configDir, "config.yaml"), []byte("backend: postgres\n"), 0o644))

	_, err := env.run(t, "init")
	require.Error(t, err)
	assert.ErrorIs(t, err, types.ErrBackendUnknown)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestSessionCommands(t *testing.T) {
	env := newCLIEnv(t)

	_, err := env.run(t, "whoami")
	assert.ErrorIs(t, err, types.ErrNotLoggedIn)

	out, err := env.run(t, "--json", "login")
	require.NoError(t, err)
	var id types.Identity
	require.NoError(t, json.Unmarshal([]byte(out), &id))
	assert.FileExists(t, filepath.Join(env.configDir, session.FileName))

	out, err = env.run(t, "whoami")
	require.NoError(t, err)
	assert.Contains(t, out, id.ID)

	out, err = env.run(t, "logout")
	require.NoError(t, err)
	assert.Contains(t, out, "Logged out")

	_, err = env.run(t, "whoami")
	assert.ErrorIs(t, err, types.ErrNotLoggedIn)
}

func TestSubmit_RequiresLogin(t *testing.T) {
	env := newCLIEnv(t)
	out, err := env.run(t, "submit", "the", "quick", "fox")
	assert.ErrorIs(t, err, types.ErrNotLoggedIn)
	assert.Equal(t, exitUserError, exitCode(err))
	assert.Contains(t, out, "Not logged in")
}

func TestSubmit_RendersAndAccumulates(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "login")
	require.NoError(t, err)

	out, err := env.run(t, "submit", "the", "quick", "fox")
	require.NoError(t, err)
	assert.Contains(t, out, "WordBubbles")
	assert.NotContains(t, out, "=> +")

	out, err = env.run(t, "--json", "submit", "--phrase", "the quick fox")
	require.NoError(t, err)
	var bubbles []types.Bubble
	require.NoError(t, json.Unmarshal([]byte(out), &bubbles))
	require.Len(t, bubbles, 3)
	assert.Equal(t, []int{1, 1, 0}, []int{bubbles[0].NextCount, bubbles[1].NextCount, bubbles[2].NextCount})

	out, err = env.run(t, "submit", "the", "quick", "fox")
	require.NoError(t, err)
	assert.Contains(t, out, "=> +2 words")
}

func TestSubmit_JSONLastWordHasEmptyNextWords(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "login")
	require.NoError(t, err)

	out, err := env.run(t, "--json", "submit", "the", "quick", "fox")
	require.NoError(t, err)
	var bubbles []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(out), &bubbles))
	require.Len(t, bubbles, 3)
	assert.JSONEq(t, `"fox"`, string(bubbles[2]["word"]))
	assert.JSONEq(t, `[]`, string(bubbles[2]["nextWords"]))
}

func TestSubmit_EmptyPhrase(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "login")
	require.NoError(t, err)

	out, err := env.run(t, "--json", "submit")
	require.NoError(t, err)
	assert.JSONEq(t, "[]", out)
}

func TestSubmit_ArgsAndPhraseConflict(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "submit", "--phrase", "a b", "c")
	require.Error(t, err)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestWord(t *testing.T) {
	env := newCLIEnv(t)
	_, err := env.run(t, "login")
	require.NoError(t, err)
	_, err = env.run(t, "submit", "a", "b", "a", "c")
	require.NoError(t, err)

	out, err := env.run(t, "--json", "word", "a")
	require.NoError(t, err)
	var got struct {
		Word           string   `json:"word"`
		NextWords      []string `json:"nextWords"`
		SuccessorCount int      `json:"successorCount"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "a", got.Word)
	assert.Equal(t, []string{"c", "b"}, got.NextWords)
	assert.Equal(t, 2, got.SuccessorCount)

	out, err = env.run(t, "word", "a")
	require.NoError(t, err)
	assert.Contains(t, out, "2 successors")

	_, err = env.run(t, "word", "zebra")
	assert.ErrorIs(t, err, types.ErrNotFound)
	assert.Equal(t, exitUserError, exitCode(err))
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, exitSysError, exitCode(exitError(exitSysError, "boom")))
	assert.Equal(t, exitUserError, exitCode(assert.AnError))
}
