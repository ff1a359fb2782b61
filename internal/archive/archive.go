// Package archive bundles report output folders into .tar.xz files for
// distribution and restores them.
package archive

import (
	"archive/tar"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/ParatextStat/core/errors"
	"github.com/FocuswithJustin/ParatextStat/internal/logging"
)

// CreateTarXz packs srcDir into a .tar.xz archive at destPath. Entry
// names are relative to srcDir.
func CreateTarXz(srcDir, destPath string) error {
	info, err := os.Stat(srcDir)
	if err != nil {
		return errors.NewIO("stat", srcDir, err)
	}
	if !info.IsDir() {
		return errors.Wrapf(errors.ErrInvalidInput, "%s is not a directory", srcDir)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return errors.NewIO("create", destPath, err)
	}
	defer f.Close()

	xw, err := xz.NewWriter(f)
	if err != nil {
		return errors.Wrap(err, "create xz writer")
	}
	tw := tar.NewWriter(xw)

	err = filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}

		header, err := tar.FileInfoHeader(info, "")
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)
		if err := tw.WriteHeader(header); err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}

		src, err := os.Open(path)
		if err != nil {
			return err
		}
		defer src.Close()
		_, err = io.Copy(tw, src)
		return err
	})
	if err != nil {
		tw.Close()
		xw.Close()
		return errors.Wrapf(err, "archive %s", srcDir)
	}

	if err := tw.Close(); err != nil {
		return errors.Wrap(err, "close tar writer")
	}
	if err := xw.Close(); err != nil {
		return errors.Wrap(err, "close xz writer")
	}

	logging.Info("archive created", "src", srcDir, "dest", destPath)
	return nil
}

// ExtractTarXz unpacks a .tar.xz archive into destDir. Entries that would
// escape destDir are rejected.
func ExtractTarXz(archivePath, destDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return errors.NewIO("open", archivePath, err)
	}
	defer f.Close()

	xr, err := xz.NewReader(f)
	if err != nil {
		return errors.Wrap(err, "create xz reader")
	}
	tr := tar.NewReader(xr)

	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrapf(err, "read %s", archivePath)
		}

		target, err := safeJoin(destDir, header.Name)
		if err != nil {
			return err
		}

		switch header.Typeflag {
		case tar.TypeDir:
			if err := os.MkdirAll(target, 0o755); err != nil {
				return errors.NewIO("mkdir", target, err)
			}
		case tar.TypeReg:
			if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
				return errors.NewIO("mkdir", filepath.Dir(target), err)
			}
			dst, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, os.FileMode(header.Mode)&0o777)
			if err != nil {
				return errors.NewIO("create", target, err)
			}
			if _, err := io.Copy(dst, tr); err != nil {
				dst.Close()
				return errors.NewIO("write", target, err)
			}
			if err := dst.Close(); err != nil {
				return errors.NewIO("close", target, err)
			}
		}
	}

	logging.Info("archive extracted", "src", archivePath, "dest", destDir)
	return nil
}

// safeJoin joins name under dir and rejects path traversal.
func safeJoin(dir, name string) (string, error) {
	if filepath.IsAbs(name) {
		return "", errors.Wrapf(errors.ErrInvalidInput, "absolute entry %s", name)
	}
	target := filepath.Join(dir, filepath.FromSlash(name))
	rel, err := filepath.Rel(dir, target)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Wrapf(errors.ErrInvalidInput, "entry %s escapes destination", name)
	}
	return target, nil
}
