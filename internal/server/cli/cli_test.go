package cli

import (
	"bytes"
	"context"
	"io"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/gophsync/internal/client/iocli"
	"github.com/iudanet/gophsync/internal/config"
	"github.com/iudanet/gophsync/internal/crypto"
	"github.com/iudanet/gophsync/internal/server/storage"
	"github.com/iudanet/gophsync/internal/server/storage/sqlite"
	"github.com/iudanet/gophsync/internal/validation"
)

var testBuild = BuildInfo{Version: "1.2.3", BuildDate: "2026-01-01", GitCommit: "abc123"}

func envFrom(vars map[string]string) config.LookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func execute(ctx context.Context, env map[string]string, stdin string, args ...string) (string, error) {
	var out bytes.Buffer
	cmd := newRootCommand(iocli.New(strings.NewReader(stdin), &out), testBuild, envFrom(env))
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)

	err := cmd.ExecuteContext(ctx)
	return out.String(), err
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	return execute(context.Background(), nil, stdin, args...)
}

func TestRootCommand_Subcommands(t *testing.T) {
	cmd := NewRootCommand(iocli.New(strings.NewReader(""), io.Discard), testBuild)

	for _, path := range [][]string{
		{"serve"},
		{"version"},
		{"client", "add"},
		{"client", "list"},
		{"client", "remove"},
		{"client", "rm"},
	} {
		t.Run(strings.Join(path, " "), func(t *testing.T) {
			sub, _, err := cmd.Find(path)
			require.NoError(t, err)
			assert.NotEqual(t, cmd, sub)
		})
	}

	for _, flag := range []string{"config", "addr", "db", "log-level", "log-format"} {
		assert.NotNil(t, cmd.PersistentFlags().Lookup(flag), flag)
	}
}

func TestVersionCommand(t *testing.T) {
	out, err := run(t, "", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "gophsync-server 1.2.3")
	assert.Contains(t, out, "Build date: 2026-01-01")
}

func TestClientCommands(t *testing.T) {
	db := filepath.Join(t.TempDir(), "server.db")

	out, err := run(t, "", "--db", db, "client", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No clients registered.")

	out, err = run(t, "", "--db", db, "client", "add", "laptop", "--secret", "laptop-secret-1")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Client laptop registered")
	assert.NotContains(t, out, "laptop-secret-1")

	_, err = run(t, "", "--db", db, "client", "add", "laptop", "--secret", "laptop-secret-2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already registered")

	// Секрет вводится дважды
	out, err = run(t, "desktop-secret\ndesktop-secret\n", "--db", db, "client", "add", "desktop")
	require.NoError(t, err)
	assert.Contains(t, out, "Confirm secret: ")

	out, err = run(t, "", "--db", db, "client", "add", "phone", "--generate")
	require.NoError(t, err)
	assert.Contains(t, out, "Secret: ")

	out, err = run(t, "", "--db", db, "client", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Found 3 client(s):")
	assert.Contains(t, out, "desktop")
	assert.Contains(t, out, "phone")

	s, err := sqlite.New(context.Background(), db)
	require.NoError(t, err)
	client, err := s.GetClient(context.Background(), "laptop")
	require.NoError(t, err)
	assert.NoError(t, crypto.VerifySecret("laptop-secret-1", client.SecretHash))
	require.NoError(t, s.Close())

	out, err = run(t, "", "--db", db, "client", "remove", "phone")
	require.NoError(t, err)
	assert.Contains(t, out, "✓ Client phone removed")

	_, err = run(t, "", "--db", db, "client", "rm", "phone")
	assert.ErrorIs(t, err, storage.ErrClientNotFound)
}

func TestClientAdd_Rejects(t *testing.T) {
	db := filepath.Join(t.TempDir(), "server.db")

	tests := []struct {
		name  string
		stdin string
		args  []string
	}{
		{name: "invalid client id", args: []string{"client", "add", "a b", "--secret", "long-enough-secret"}},
		{name: "short secret", args: []string{"client", "add", "laptop", "--secret", "short"}},
		{name: "secret mismatch", stdin: "first-secret-1\nsecond-secret\n", args: []string{"client", "add", "laptop"}},
		{name: "secret and generate", args: []string{"client", "add", "laptop", "--secret", "long-enough-secret", "--generate"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := run(t, tt.stdin, append([]string{"--db", db}, tt.args...)...)
			assert.Error(t, err)
		})
	}

	_, err := run(t, "", "--db", db, "client", "add", "x", "--secret", "long-enough-secret")
	assert.ErrorIs(t, err, validation.ErrInvalid)
}

func TestServe(t *testing.T) {
	db := filepath.Join(t.TempDir(), "server.db")

	t.Run("requires jwt secret", func(t *testing.T) {
		_, err := execute(context.Background(), nil, "", "--db", db, "--addr", "127.0.0.1:0")
		assert.ErrorIs(t, err, config.ErrInvalidConfig)
	})

	t.Run("stops on cancellation", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
		defer cancel()

		env := map[string]string{"GOPHSYNC_JWT_SECRET": "serve-test-secret-key-32-bytes-long"}
		_, err := execute(ctx, env, "", "--db", db, "--addr", "127.0.0.1:0", "serve")
		assert.NoError(t, err)
	})
}
