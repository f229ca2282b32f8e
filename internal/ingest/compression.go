package ingest

import (
	"compress/bzip2"
	"compress/gzip"
	"io"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/rfgrep/rfgrep/internal/rfgreperr"
	"github.com/ulikunitz/xz"
)

// compressionKind names the decompression-stream formats ingestion
// recognizes by extension, per spec section 4.4.
type compressionKind int

const (
	compressionNone compressionKind = iota
	compressionGzip
	compressionBzip2
	compressionXz
	compressionZstd
	compressionLz4
)

func compressionFromExtension(path string) compressionKind {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".gz", ".gzip":
		return compressionGzip
	case ".bz2", ".bzip2":
		return compressionBzip2
	case ".xz":
		return compressionXz
	case ".zst", ".zstd":
		return compressionZstd
	case ".lz4":
		return compressionLz4
	default:
		return compressionNone
	}
}

// openDecompressed wraps r in the decoder matching kind. The returned
// closer is always non-nil and must be called once the caller is done
// reading; it closes the gzip and zstd decoders and is a no-op for the
// bzip2, xz and lz4 readers, which hold nothing beyond the underlying file.
func openDecompressed(kind compressionKind, r io.Reader) (io.Reader, func(), error) {
	switch kind {
	case compressionGzip:
		gz, err := gzip.NewReader(r)
		if err != nil {
			return nil, nil, rfgreperr.IoErr(err)
		}
		return gz, func() { gz.Close() }, nil
	case compressionBzip2:
		return bzip2.NewReader(r), func() {}, nil
	case compressionXz:
		xzr, err := xz.NewReader(r)
		if err != nil {
			return nil, nil, rfgreperr.IoErr(err)
		}
		return xzr, func() {}, nil
	case compressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, rfgreperr.IoErr(err)
		}
		return zr, func() { zr.Close() }, nil
	case compressionLz4:
		return lz4.NewReader(r), func() {}, nil
	default:
		return r, func() {}, nil
	}
}
