// Package ingest implements the ingestion strategy selection (C4): given a
// path and its size, pick archive iteration, a decompression stream, a
// memory map, or a plain streaming reader, following the fallback chain in
// spec section 4.4.
package ingest

import (
	"io"
	"os"
	"unicode/utf8"

	"github.com/rfgrep/rfgrep/internal/binarydetect"
	"github.com/rfgrep/rfgrep/internal/rfgreperr"
)

// Strategy names the four ingestion paths a candidate file can take.
type Strategy int

const (
	StrategyStreaming Strategy = iota
	StrategyMmap
	StrategyCompressed
	StrategyArchive
)

// SelectStrategy decides the ingestion path for path/size without touching
// the filesystem, so callers (and tests) can reason about dispatch in
// isolation from actually opening anything.
func SelectStrategy(path string, size int64) Strategy {
	switch {
	case isArchive(path):
		return StrategyArchive
	case compressionFromExtension(path) != compressionNone:
		return StrategyCompressed
	case size >= AdaptiveMmapThreshold():
		return StrategyMmap
	default:
		return StrategyStreaming
	}
}

// Source is a single file-shaped input ready for the per-file search (C5).
// Exactly one of Data or Reader is populated: Data for the mmap fast path
// (the whole buffer already validated as text), Reader for every streaming
// variant (plain, decompressed, or mmap-fallback).
type Source struct {
	Path      string
	Data      []byte
	Reader    io.Reader
	ChunkSize int
	close     func() error
}

// Close releases whatever resource backs the source (an mmap, an open
// file, a decompressor). Safe to call on a zero Source.
func (s *Source) Close() error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close()
}

// Result is what Open produces: either a list of archive members (for
// StrategyArchive, where there is no single source) or a single Source.
type Result struct {
	Entries    []ArchiveEntry
	Source     *Source
	Skipped    bool
	SkipReason string
}

// Open resolves path's ingestion strategy and prepares it for searching.
func Open(path string, size int64) (Result, error) {
	switch SelectStrategy(path, size) {
	case StrategyArchive:
		entries, err := archiveEntries(path)
		if err != nil {
			return Result{}, err
		}
		return Result{Entries: entries}, nil
	case StrategyCompressed:
		return openCompressedSource(path, size)
	case StrategyMmap:
		return openMmapSource(path, size)
	default:
		return openStreamingSource(path, size)
	}
}

func openCompressedSource(path string, size int64) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, rfgreperr.IoErr(err)
	}

	kind := compressionFromExtension(path)
	reader, closeDecoder, err := openDecompressed(kind, f)
	if err != nil {
		f.Close()
		return Result{}, err
	}

	return Result{Source: &Source{
		Path:      path,
		Reader:    reader,
		ChunkSize: AdaptiveChunkSize(size),
		close: func() error {
			closeDecoder()
			return f.Close()
		},
	}}, nil
}

func openStreamingSource(path string, size int64) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, rfgreperr.IoErr(err)
	}
	return Result{Source: &Source{
		Path:      path,
		Reader:    f,
		ChunkSize: AdaptiveChunkSize(size),
		close:     f.Close,
	}}, nil
}

// openMmapSource maps the file and, per spec section 4.4, falls back to
// streaming whenever the map fails or the mapped bytes aren't valid UTF-8;
// only once that check passes does the binary detector get a say, skipping
// outright content it flags rather than falling back, since re-reading it
// as text would never match anyway.
func openMmapSource(path string, size int64) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, rfgreperr.IoErr(err)
	}

	data, ok := mmapFile(f, size)
	if !ok {
		f.Close()
		return openStreamingSource(path, size)
	}

	if !utf8.Valid(data) {
		munmapFile(data)
		f.Close()
		return openStreamingSource(path, size)
	}

	if binarydetect.IsBinary(data) {
		munmapFile(data)
		f.Close()
		return Result{Skipped: true, SkipReason: "binary content (mmap)"}, nil
	}

	return Result{Source: &Source{
		Path:      path,
		Data:      data,
		ChunkSize: AdaptiveChunkSize(size),
		close: func() error {
			munmapFile(data)
			return f.Close()
		},
	}}, nil
}
