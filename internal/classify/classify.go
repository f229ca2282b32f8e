// Package classify implements the file classifier (C2): a pure function of
// a path and its filesystem metadata that decides whether a candidate file
// should be searched, skipped outright, or conditionally searched pending
// content sniffing. The extension tables below are adapted from the
// teacher's binary-detector database, repartitioned into the three-way
// always/never/conditional split this component's contract requires.
package classify

import (
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/rfgrep/rfgrep/internal/types"
)

// alwaysSearch holds common text and source extensions that are never
// content-sniffed; the classifier trusts the extension outright.
var alwaysSearch = map[string]bool{
	".go": true, ".rs": true, ".py": true, ".js": true, ".jsx": true,
	".ts": true, ".tsx": true, ".java": true, ".c": true, ".h": true,
	".cpp": true, ".hpp": true, ".cc": true, ".cs": true, ".rb": true,
	".php": true, ".sh": true, ".bash": true, ".zsh": true, ".pl": true,
	".lua": true, ".swift": true, ".kt": true, ".scala": true, ".hs": true,
	".md": true, ".markdown": true, ".txt": true, ".rst": true, ".adoc": true,
	".json": true, ".yaml": true, ".yml": true, ".toml": true, ".ini": true,
	".cfg": true, ".conf": true, ".xml": true, ".html": true, ".htm": true,
	".css": true, ".scss": true, ".sass": true, ".less": true, ".sql": true,
	".proto": true, ".graphql": true, ".csv": true, ".tsv": true,
	".env": true, ".gitignore": true, ".dockerfile": true, ".makefile": true,
	".svg": true, ".vue": true, ".svelte": true,
}

// neverSearch holds binary formats C4 handles through a dedicated strategy
// (archives, compressed streams) or that are never worth searching at all
// (executables, media, images, compiled object code).
var neverSearch = map[string]bool{
	".woff": true, ".woff2": true, ".ttf": true, ".otf": true, ".eot": true,
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".ico": true, ".webp": true, ".tiff": true, ".tif": true,
	".zip": true, ".jar": true, ".war": true, ".ear": true, ".tar": true,
	".gz": true, ".bz2": true, ".xz": true, ".zst": true, ".lz4": true,
	".7z": true, ".rar": true,
	".exe": true, ".dll": true, ".so": true, ".dylib": true, ".a": true,
	".o": true, ".obj": true, ".bin": true,
	".mp3": true, ".mp4": true, ".avi": true, ".mov": true, ".wmv": true,
	".flv": true, ".wav": true, ".flac": true, ".ogg": true,
	".pdf": true, ".doc": true, ".docx": true, ".xls": true, ".xlsx": true,
	".ppt": true, ".pptx": true,
	".db": true, ".sqlite": true, ".sqlite3": true,
	".pyc": true, ".pyo": true, ".class": true, ".pickle": true, ".pkl": true,
}

// conditional holds extensions that are ambiguous enough to need content
// sniffing or size gating: minified text, source maps, and extensionless
// files all fall here.
var conditional = map[string]bool{
	".min.js": true, ".min.css": true, ".map": true, "": true,
}

// ClassifyEntry applies the filesystem-metadata pre-checks ahead of the
// extension tri-partition: directories, kernel pseudo-filesystem entries,
// and special files (sockets, FIFOs, device nodes, symlinks) are skipped
// before the extension table is consulted. The walker and filter do not
// call it; the filter calls Classify directly.
func ClassifyEntry(path string, mode fs.FileMode, size int64, strategy types.FileTypeStrategy) types.FileDecision {
	if mode.IsDir() {
		return types.Skip("directory")
	}
	if isPseudoFS(path) {
		return types.Skip("kernel pseudo-filesystem")
	}
	switch {
	case mode&fs.ModeSocket != 0:
		return types.Skip("socket")
	case mode&fs.ModeNamedPipe != 0:
		return types.Skip("named pipe")
	case mode&fs.ModeDevice != 0:
		return types.Skip("device file")
	case mode&fs.ModeSymlink != 0:
		return types.Skip("symbolic link")
	}
	return Classify(path, size, strategy)
}

func isPseudoFS(path string) bool {
	clean := filepath.ToSlash(path)
	return strings.HasPrefix(clean, "/proc/") || clean == "/proc" ||
		strings.HasPrefix(clean, "/dev/") || clean == "/dev"
}

// Classify applies the extension tri-partition and the active strategy to
// produce a final decision for a regular file. It performs no metadata
// checks and assumes path names a regular file; ClassifyEntry adds the
// directory and special-file checks. The filter rejects directories before
// calling it, but not sockets, FIFOs or device nodes.
func Classify(path string, size int64, strategy types.FileTypeStrategy) types.FileDecision {
	ext := extOf(path)

	switch strategy {
	case types.StrategyConservative:
		if alwaysSearch[ext] && size <= 10*1024*1024 {
			return types.Search(types.ModeText)
		}
		return types.Skip("conservative strategy excludes " + describeExt(ext))
	case types.StrategyPerformance:
		if size <= 500*1024*1024 {
			return types.Search(types.ModeStreaming)
		}
		return types.Skip("exceeds performance strategy size ceiling")
	case types.StrategyComprehensive:
		if neverSearch[ext] {
			return types.Skip("known binary format " + describeExt(ext))
		}
		return types.Search(types.ModeText)
	default: // types.StrategyDefault
		switch {
		case alwaysSearch[ext]:
			return types.Search(types.ModeText)
		case neverSearch[ext]:
			return types.Skip("known binary format " + describeExt(ext))
		default:
			return types.Conditional(types.ModeText, "ambiguous extension "+describeExt(ext))
		}
	}
}

// extOf lower-cases the extension and special-cases the ".min.js"/".min.css"
// compound suffixes the teacher's detector carves out, since filepath.Ext
// alone would return just ".js"/".css" for those.
func extOf(path string) string {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".min.js") {
		return ".min.js"
	}
	if strings.HasSuffix(lower, ".min.css") {
		return ".min.css"
	}
	return strings.ToLower(filepath.Ext(path))
}

func describeExt(ext string) string {
	if ext == "" {
		return "(no extension)"
	}
	return ext
}

// IsConditional reports whether path's extension falls in the conditional
// set.
func IsConditional(path string) bool {
	return conditional[extOf(path)]
}

// IsAlwaysSearch reports whether ext is in the always-search extension
// table, independent of strategy — used by the conservative safety policy,
// which requires both a size cap and a known-text extension.
func IsAlwaysSearch(ext string) bool {
	return alwaysSearch[strings.ToLower(ext)]
}
