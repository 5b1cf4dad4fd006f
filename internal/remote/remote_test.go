package remote

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteString(t *testing.T) {
	r := Remote{Name: "zenodo-8881", Service: ServiceZenodo}
	assert.Equal(t, "zenodo-8881 (zenodo)", r.String())
	assert.Equal(t, "bare", Remote{Name: "bare"}.String())
}

func TestLoadListing(t *testing.T) {
	p := filepath.Join(t.TempDir(), "listing.yml")
	content := "data/a.csv: 5eb63bbbe01eeed093cb22bb8f5acdc3\n" +
		"data/b.csv: \"\"\n"
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))

	l, err := LoadListing(p)
	require.NoError(t, err)

	assert.True(t, l.Has("data/a.csv"))
	assert.Equal(t, "5eb63bbbe01eeed093cb22bb8f5acdc3", l.Digest("data/a.csv"))
	assert.True(t, l.Has("data/b.csv"))
	assert.Empty(t, l.Digest("data/b.csv"))
	assert.False(t, l.Has("data/c.csv"))
}

func TestLoadListingEmptyFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "listing.yml")
	require.NoError(t, os.WriteFile(p, nil, 0o644))

	l, err := LoadListing(p)
	require.NoError(t, err)
	assert.NotNil(t, l)
	assert.Empty(t, l)
}

func TestLoadListingErrors(t *testing.T) {
	_, err := LoadListing(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	p := filepath.Join(t.TempDir(), "bad.yml")
	require.NoError(t, os.WriteFile(p, []byte(":\n\t- not yaml"), 0o644))
	_, err = LoadListing(p)
	assert.Error(t, err)
}
