// Package archive reads custom game backups that may be packed in a .zip,
// .7z or .rar archive.
package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"go-game-hub/constants"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bodgit/sevenzip"
	"github.com/nwaples/rardecode/v2"
)

var (
	ErrNoBackup = errors.New("archive contains no .json backup")
	ErrTooLarge = errors.New("backup exceeds size limit")
)

// ReadBackup returns the JSON backup stored at path. Archives yield their
// first .json member; any other file is returned as is.
func ReadBackup(path string) ([]byte, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zip":
		return readZip(path)
	case ".7z":
		return read7z(path)
	case ".rar":
		return readRar(path)
	default:
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open backup: %w", err)
		}
		defer f.Close()
		return readLimited(f)
	}
}

func isBackupMember(name string, isDir bool) bool {
	return !isDir && strings.EqualFold(filepath.Ext(name), ".json")
}

func readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, constants.MaxDocumentSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read backup: %w", err)
	}
	if len(data) > constants.MaxDocumentSize {
		return nil, ErrTooLarge
	}
	return data, nil
}

func readZip(path string) ([]byte, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open .zip backup: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if !isBackupMember(f.Name, f.FileInfo().IsDir()) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}
		defer rc.Close()
		return readLimited(rc)
	}
	return nil, ErrNoBackup
}

func read7z(path string) ([]byte, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open .7z backup: %w", err)
	}
	defer r.Close()

	for _, f := range r.File {
		if !isBackupMember(f.Name, f.FileInfo().IsDir()) {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}
		defer rc.Close()
		return readLimited(rc)
	}
	return nil, ErrNoBackup
}

func readRar(path string) ([]byte, error) {
	r, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open .rar backup: %w", err)
	}
	defer r.Close()

	for {
		hdr, err := r.Next()
		if err == io.EOF {
			return nil, ErrNoBackup
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read .rar backup: %w", err)
		}
		if isBackupMember(hdr.Name, hdr.IsDir) {
			return readLimited(r)
		}
	}
}
