//go:build !unix

package ingest

import "os"

// mmapFile always reports failure on non-unix hosts; callers fall back to
// streaming, which is the documented degradation path (spec section 4.4).
func mmapFile(f *os.File, size int64) ([]byte, bool) {
	return nil, false
}

func munmapFile(data []byte) {}
