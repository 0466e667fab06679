package main

import (
	"bytes"
	"context"
	"flag"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tie/modupdater/config"
)

func TestInitCommand(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "modupdater.hcl")
	cmd := &InitCommand{OutputPath: path}
	fs := flag.NewFlagSet("init", flag.ContinueOnError)

	require.Equal(t, subcommands.ExitSuccess, cmd.Execute(ctx, fs))

	src, err := ioutil.ReadFile(path)
	require.NoError(t, err)
	conf, diags := config.Parse(hclparse.NewParser(), src, path)
	require.False(t, diags.HasErrors(), diags.Error())
	assert.Equal(t, config.Default(), conf)

	// Refuses to overwrite without -f.
	assert.Equal(t, subcommands.ExitFailure, cmd.Execute(ctx, fs))
	cmd.Force = true
	assert.Equal(t, subcommands.ExitSuccess, cmd.Execute(ctx, fs))
}

func TestCleanCommand(t *testing.T) {
	dir := t.TempDir()
	for _, name := range cacheFiles() {
		require.NoError(t, ioutil.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	keep := filepath.Join(dir, "manifest.json")
	require.NoError(t, ioutil.WriteFile(keep, []byte("{}"), 0644))

	cmd := &CleanCommand{CacheDir: dir}
	fs := flag.NewFlagSet("clean", flag.ContinueOnError)
	require.Equal(t, subcommands.ExitSuccess, cmd.Execute(context.Background(), fs))

	for _, name := range cacheFiles() {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.True(t, os.IsNotExist(err), name)
	}
	_, err := os.Stat(keep)
	assert.NoError(t, err)
}

func TestWriteDiff(t *testing.T) {
	ctx := context.Background()
	a := []byte("{\n  \"fileID\": 100\n}\n")
	b := []byte("{\n  \"fileID\": 150\n}\n")

	var buf bytes.Buffer
	require.NoError(t, writeDiff(ctx, &buf, "manifest.json", a, b, 3))
	out := buf.String()
	assert.Contains(t, out, "--- a/manifest.json")
	assert.Contains(t, out, "+++ b/manifest.json")
	assert.Contains(t, out, "-  \"fileID\": 100")
	assert.Contains(t, out, "+  \"fileID\": 150")

	buf.Reset()
	require.NoError(t, writeDiff(ctx, &buf, "manifest.json", a, a, 3))
	assert.Empty(t, buf.String())
}
