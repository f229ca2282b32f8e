package ingest

import (
	"archive/tar"
	"archive/zip"
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/rfgrep/rfgrep/internal/rfgreperr"
)

// archiveSeparator joins an archive's own path to an entry name when
// synthesizing a display path for matches found inside it, per the open
// direction in spec section 9.
const archiveSeparator = "!"

// ArchiveEntry is one file-shaped member of an archive, ready to be handed
// to the per-file search the same way a plain file would be.
type ArchiveEntry struct {
	Path string // e.g. "logs.zip!2024/01/app.log"
	Open func() (io.ReadCloser, error)
}

func isArchive(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".zip" || ext == ".jar" || ext == ".tar"
}

// archiveEntries dispatches to the zip or tar reader by extension and
// returns one ArchiveEntry per regular-file member.
func archiveEntries(path string) ([]ArchiveEntry, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".zip", ".jar":
		return zipEntries(path)
	case ".tar":
		return tarEntries(path)
	default:
		return nil, rfgreperr.New(rfgreperr.Io, "unsupported archive extension "+ext)
	}
}

// zipEntries reads each member's bytes up front into an independent
// buffer, mirroring tarEntries below, so the zip.ReadCloser itself can be
// closed before returning instead of leaking a file descriptor per
// archive across a run that touches many of them.
func zipEntries(path string) ([]ArchiveEntry, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, rfgreperr.IoErr(err)
	}
	defer r.Close()

	entries := make([]ArchiveEntry, 0, len(r.File))
	for _, f := range r.File {
		if f.FileInfo().IsDir() {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, rfgreperr.IoErr(err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			return nil, rfgreperr.IoErr(err)
		}
		entries = append(entries, ArchiveEntry{
			Path: path + archiveSeparator + f.Name,
			Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
		})
	}
	return entries, nil
}

// tarEntries reads the whole tar stream up front into independent buffers
// per entry, the same way zipEntries does; tar has no random access, so a
// member can only be read while the stream is positioned on it.
func tarEntries(path string) ([]ArchiveEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, rfgreperr.IoErr(err)
	}
	defer f.Close()

	tr := tar.NewReader(f)
	var entries []ArchiveEntry
	for {
		hdr, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, rfgreperr.IoErr(err)
		}
		if hdr.Typeflag != tar.TypeReg {
			continue
		}
		data, err := io.ReadAll(tr)
		if err != nil {
			return nil, rfgreperr.IoErr(err)
		}
		entries = append(entries, ArchiveEntry{
			Path: path + archiveSeparator + hdr.Name,
			Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
		})
	}
	return entries, nil
}
