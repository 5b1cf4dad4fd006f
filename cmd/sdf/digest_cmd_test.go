package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runDigest(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := &cobra.Command{Use: "sdf"}
	root.AddCommand(newDigestCmd())

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(append([]string{"digest"}, args...))

	err := root.Execute()
	return out.String(), err
}

func TestDigestCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world"), 0o644))

	out, err := runDigest(t, path)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("5eb63bbbe01eeed093cb22bb8f5acdc3  %s\n", path), out)
}

func TestDigestCommand_AbsentFiles(t *testing.T) {
	dir := t.TempDir()
	empty := filepath.Join(dir, "empty.txt")
	require.NoError(t, os.WriteFile(empty, nil, 0o644))
	missing := filepath.Join(dir, "nope.txt")

	out, err := runDigest(t, empty, missing)
	require.NoError(t, err)
	assert.Equal(t, fmt.Sprintf("-  %s\n-  %s\n", empty, missing), out)
}

func TestDigestCommand_RequiresArgs(t *testing.T) {
	_, err := runDigest(t)
	require.Error(t, err)
}
