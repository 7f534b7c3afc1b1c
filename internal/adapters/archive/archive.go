// Package archive emits .orig.tar.gz source archives for corrected
// packages.
package archive

import (
	"archive/tar"
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/pgzip"
	"go.trai.ch/respec/internal/core/domain"
	"go.trai.ch/respec/internal/core/ports"
	"go.trai.ch/zerr"
)

// Archiver implements ports.Archiver with tar and parallel gzip.
type Archiver struct {
	Logger ports.Logger
}

// New creates an archiver.
func New(logger ports.Logger) *Archiver {
	return &Archiver{Logger: logger}
}

// Archive writes a gzip-compressed tarball of srcDir to outPath. Entries
// are rooted under the source directory's base name and forced to
// numeric root ownership so archives are reproducible across hosts.
func (a *Archiver) Archive(ctx context.Context, srcDir, outPath string) error {
	info, err := os.Stat(srcDir)
	if err != nil || !info.IsDir() {
		return zerr.With(domain.ErrArchiveFailed, "src", srcDir)
	}

	out, err := os.Create(outPath)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrArchiveFailed.Error()), "path", outPath)
	}
	defer out.Close()

	zw := pgzip.NewWriter(out)
	tw := tar.NewWriter(zw)

	prefix := filepath.Base(srcDir)
	walkErr := filepath.Walk(srcDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}

		var linkTarget string
		if info.Mode()&os.ModeSymlink != 0 {
			if linkTarget, err = os.Readlink(path); err != nil {
				return err
			}
		}

		hdr, err := tar.FileInfoHeader(info, linkTarget)
		if err != nil {
			return err
		}
		if rel == "." {
			hdr.Name = prefix + "/"
		} else {
			hdr.Name = filepath.Join(prefix, rel)
			if info.IsDir() {
				hdr.Name += "/"
			}
		}
		hdr.Uid, hdr.Gid = 0, 0
		hdr.Uname, hdr.Gname = "root", "root"

		if err := tw.WriteHeader(hdr); err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}

		// #nosec G304 -- path comes from walking srcDir
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(tw, f)
		return err
	})
	if walkErr != nil {
		tw.Close()
		zw.Close()
		os.Remove(outPath)
		return zerr.With(zerr.Wrap(walkErr, domain.ErrArchiveFailed.Error()), "src", srcDir)
	}

	if err := tw.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrArchiveFailed.Error())
	}
	if err := zw.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrArchiveFailed.Error())
	}
	if err := out.Close(); err != nil {
		return zerr.Wrap(err, domain.ErrArchiveFailed.Error())
	}
	return nil
}
