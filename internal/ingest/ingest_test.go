package ingest

import (
	"archive/zip"
	"bytes"
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSelectStrategy_Archive(t *testing.T) {
	require.Equal(t, StrategyArchive, SelectStrategy("logs.zip", 1024))
	require.Equal(t, StrategyArchive, SelectStrategy("bundle.jar", 1024))
	require.Equal(t, StrategyArchive, SelectStrategy("data.tar", 1024))
}

func TestSelectStrategy_Compressed(t *testing.T) {
	for _, ext := range []string{".gz", ".bz2", ".xz", ".zst", ".lz4"} {
		require.Equal(t, StrategyCompressed, SelectStrategy("file"+ext, 1024), ext)
	}
}

func TestSelectStrategy_MmapVsStreaming(t *testing.T) {
	threshold := AdaptiveMmapThreshold()
	require.Equal(t, StrategyStreaming, SelectStrategy("small.txt", threshold-1))
	require.Equal(t, StrategyMmap, SelectStrategy("big.txt", threshold))
}

func TestAdaptiveChunkSize_Ladder(t *testing.T) {
	require.Equal(t, 4096, AdaptiveChunkSize(1024))
	require.Equal(t, 8192, AdaptiveChunkSize(100*1024))
	require.Equal(t, 65536, AdaptiveChunkSize(2*1024*1024))
	require.Equal(t, 262144, AdaptiveChunkSize(32*1024*1024))
}

func TestOpen_StreamingPlainFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "small.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world\n"), 0o644))

	result, err := Open(path, 12)
	require.NoError(t, err)
	require.NotNil(t, result.Source)
	defer result.Source.Close()

	data, err := io.ReadAll(result.Source.Reader)
	require.NoError(t, err)
	require.Equal(t, "hello world\n", string(data))
}

func TestOpen_GzipStream(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "log.txt.gz")

	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	_, err := gz.Write([]byte("needle in a haystack\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	result, err := Open(path, int64(buf.Len()))
	require.NoError(t, err)
	require.NotNil(t, result.Source)
	defer result.Source.Close()

	data, err := io.ReadAll(result.Source.Reader)
	require.NoError(t, err)
	require.Equal(t, "needle in a haystack\n", string(data))
}

func TestOpen_ZipArchive(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bundle.zip")

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("nested/app.log")
	require.NoError(t, err)
	_, err = w.Write([]byte("line one\nneedle here\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	result, err := Open(path, int64(buf.Len()))
	require.NoError(t, err)
	require.Len(t, result.Entries, 1)
	require.Equal(t, path+"!nested/app.log", result.Entries[0].Path)

	rc, err := result.Entries[0].Open()
	require.NoError(t, err)
	defer rc.Close()
	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.Equal(t, "line one\nneedle here\n", string(data))
}
