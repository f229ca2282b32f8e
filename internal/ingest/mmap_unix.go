//go:build unix

package ingest

import (
	"os"

	"golang.org/x/sys/unix"
)

// mmapFile maps f's full contents read-only. The caller owns the returned
// slice and must call munmapFile when done with it.
func mmapFile(f *os.File, size int64) ([]byte, bool) {
	if size == 0 {
		return nil, false
	}
	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, false
	}
	return data, true
}

func munmapFile(data []byte) {
	_ = unix.Munmap(data)
}
