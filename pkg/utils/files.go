// Package utils provides helpers shared by the emulator binaries.
package utils

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/pkg/errors"
	"github.com/thelolagemann/gbsim/internal/types"
)

// romExtensions are the entries picked from an archive, in order of
// preference. Without any, the first file of the archive is used.
var romExtensions = []string{".gb", ".gbc", ".bin"}

// LoadFile loads the given file and performs decompression if necessary.
// The compression is chosen from the file extension: .gz, .zip and .7z
// are decompressed, anything else is returned as is. Every failure
// wraps types.ErrIO.
func LoadFile(filename string) ([]byte, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(types.ErrIO, "utils: %v", err)
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".gz":
		decoder, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, errors.Wrapf(types.ErrIO, "utils: %s: %v", filename, err)
		}
		defer decoder.Close()
		return readAll(filename, decoder)
	case ".zip":
		r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, errors.Wrapf(types.ErrIO, "utils: %s: %v", filename, err)
		}
		return openFirst(filename, r.File, func(f *zip.File) (string, func() (io.ReadCloser, error)) {
			return f.Name, f.Open
		})
	case ".7z":
		r, err := sevenzip.NewReader(bytes.NewReader(data), int64(len(data)))
		if err != nil {
			return nil, errors.Wrapf(types.ErrIO, "utils: %s: %v", filename, err)
		}
		return openFirst(filename, r.File, func(f *sevenzip.File) (string, func() (io.ReadCloser, error)) {
			return f.Name, f.Open
		})
	default:
		return data, nil
	}
}

// openFirst reads the preferred ROM entry of an archive.
func openFirst[F any](filename string, files []F, entry func(F) (string, func() (io.ReadCloser, error))) ([]byte, error) {
	var open func() (io.ReadCloser, error)
	for _, ext := range romExtensions {
		for _, f := range files {
			if name, o := entry(f); strings.EqualFold(filepath.Ext(name), ext) {
				open = o
				break
			}
		}
		if open != nil {
			break
		}
	}
	if open == nil {
		if len(files) == 0 {
			return nil, errors.Wrapf(types.ErrIO, "utils: %s: empty archive", filename)
		}
		_, open = entry(files[0])
	}

	rc, err := open()
	if err != nil {
		return nil, errors.Wrapf(types.ErrIO, "utils: %s: %v", filename, err)
	}
	defer rc.Close()
	return readAll(filename, rc)
}

func readAll(filename string, r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrapf(types.ErrIO, "utils: %s: %v", filename, err)
	}
	return data, nil
}
