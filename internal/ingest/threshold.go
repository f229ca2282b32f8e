package ingest

import (
	"bufio"
	"os"
	"strconv"
	"strings"
)

const (
	baseMmapThreshold = 16 * 1024 * 1024        // 16 MiB
	maxMmapThreshold  = 1024 * 1024 * 1024      // 1 GiB
	memInfoPath       = "/proc/meminfo"
)

// AdaptiveMmapThreshold mirrors the original implementation's
// get_adaptive_mmap_threshold: on hosts exposing /proc/meminfo, the
// threshold is raised to one eighth of currently available memory, capped
// at 1 GiB, never lower than the 16 MiB base. Anywhere /proc/meminfo can't
// be read (non-Linux hosts, sandboxed environments) the base applies.
func AdaptiveMmapThreshold() int64 {
	available, ok := readMemAvailableKB(memInfoPath)
	if !ok {
		return baseMmapThreshold
	}

	threshold := (available * 1024) / 8
	if threshold > maxMmapThreshold {
		threshold = maxMmapThreshold
	}
	if threshold < baseMmapThreshold {
		threshold = baseMmapThreshold
	}
	return threshold
}

func readMemAvailableKB(path string) (int64, bool) {
	f, err := os.Open(path)
	if err != nil {
		return 0, false
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "MemAvailable:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0, false
		}
		kb, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return 0, false
		}
		return kb, true
	}
	return 0, false
}

// AdaptiveChunkSize follows the size ladder from spec section 4.4.
func AdaptiveChunkSize(fileSize int64) int {
	switch {
	case fileSize < 64*1024:
		return 4096
	case fileSize < 1024*1024:
		return 8192
	case fileSize < 16*1024*1024:
		return 65536
	default:
		return 262144
	}
}
