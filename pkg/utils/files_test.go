package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/gbsim/internal/types"
)

func testROM(t *testing.T) []byte {
	t.Helper()
	rom, err := os.ReadFile(filepath.Join("testdata", "rom.gb"))
	require.NoError(t, err)
	return rom
}

func writeGzip(t *testing.T, path string, data []byte) {
	t.Helper()
	var buf bytes.Buffer
	w := gzip.NewWriter(&buf)
	_, err := w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func writeZip(t *testing.T, path string, files map[string][]byte, order ...string) {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, name := range order {
		f, err := w.Create(name)
		require.NoError(t, err)
		_, err = f.Write(files[name])
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))
}

func TestLoadFile(t *testing.T) {
	rom := testROM(t)
	dir := t.TempDir()

	writeGzip(t, filepath.Join(dir, "rom.gb.gz"), rom)
	writeZip(t, filepath.Join(dir, "rom.zip"), map[string][]byte{
		"readme.txt": []byte("not a rom"),
		"game.gb":    rom,
	}, "readme.txt", "game.gb")
	writeZip(t, filepath.Join(dir, "other.ZIP"), map[string][]byte{
		"first":  rom,
		"second": []byte("second"),
	}, "first", "second")

	tests := []struct {
		name string
		path string
	}{
		{"plain", filepath.Join("testdata", "rom.gb")},
		{"gzip", filepath.Join(dir, "rom.gb.gz")},
		{"zip picks the rom", filepath.Join(dir, "rom.zip")},
		{"zip falls back to the first entry", filepath.Join(dir, "other.ZIP")},
		{"7z", filepath.Join("testdata", "rom.gb.7z")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := LoadFile(tt.path)
			require.NoError(t, err)
			assert.Equal(t, rom, data)
		})
	}
}

func TestLoadFile_Errors(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.gz"), []byte("plain"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.zip"), []byte("plain"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "bad.7z"), []byte("plain"), 0o644))
	writeZip(t, filepath.Join(dir, "empty.zip"), nil)

	for _, name := range []string{"missing.gb", "bad.gz", "bad.zip", "bad.7z", "empty.zip"} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadFile(filepath.Join(dir, name))
			assert.ErrorIs(t, err, types.ErrIO)
		})
	}
}
