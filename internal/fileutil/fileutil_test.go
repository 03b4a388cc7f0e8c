package fileutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSafeFileName(t *testing.T) {
	cases := []struct {
		name     string
		fallback string
		want     string
	}{
		{"My Project!?", "x", "My_Project_"},
		{"", "fallback", "fallback"},
		{"   ", "fallback", "fallback"},
		{"already-safe_Name123", "x", "already-safe_Name123"},
		{"a  b//c", "x", "a_b_c"},
		{"héllo wörld", "x", "h_llo_w_rld"},
		{"___", "x", "___"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, SafeFileName(tc.name, tc.fallback), "SafeFileName(%q, %q)", tc.name, tc.fallback)
	}
}

func TestWriteExport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, WriteExport(path, `{"version": 1}`))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"version": 1}`, string(b))
}

func TestWriteExportBadPath(t *testing.T) {
	err := WriteExport(filepath.Join(t.TempDir(), "missing", "out.json"), "x")
	assert.Error(t, err)
}
