// Package filter implements the six-step file filter (C8): the gate a
// candidate path must pass, in order, before the search stage ever opens
// it. Each step can reject outright; the first rejection wins and no later
// step runs.
package filter

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/rfgrep/rfgrep/internal/binarydetect"
	"github.com/rfgrep/rfgrep/internal/classify"
	"github.com/rfgrep/rfgrep/internal/types"
)

// Decision is the filter's verdict for one candidate path.
type Decision struct {
	Accept bool
	Reason string
	Mode   types.Mode
}

func accept(mode types.Mode) Decision { return Decision{Accept: true, Mode: mode} }
func reject(reason string) Decision   { return Decision{Accept: false, Reason: reason} }

// Check runs the six-step order against path: metadata readable; binary
// detector when SkipBinary is set; safety-policy gate; include/exclude
// extension lists; file-type strategy against the classifier; user
// max-size cap.
func Check(path string, opts types.FilterOptions) Decision {
	info, err := os.Stat(path)
	if err != nil {
		return reject("metadata unreadable: " + err.Error())
	}
	if info.IsDir() {
		return reject("directory")
	}

	if opts.SkipBinary {
		if d := checkBinary(path, info.Size()); !d.Accept {
			return d
		}
	}

	ext := strings.ToLower(filepath.Ext(path))
	if d := checkSafetyPolicy(info.Size(), ext, opts.SafetyPolicy); !d.Accept {
		return d
	}

	if d := checkExtensionLists(path, opts); !d.Accept {
		return d
	}

	classified := classify.Classify(path, info.Size(), opts.FileTypeStrategy)
	mode := classified.Mode
	needsSniff := opts.TextOnly
	switch classified.Kind {
	case types.DecisionSkip:
		if !opts.SearchAll {
			return reject(classified.Reason)
		}
		mode = types.ModeText
		needsSniff = false
	case types.DecisionConditional:
		// The classifier could not decide from the extension alone; content
		// sniffing resolves it, unless the binary check already ran above.
		needsSniff = true
		mode = types.ModeText
	}
	if needsSniff && !opts.SkipBinary {
		if d := checkBinary(path, info.Size()); !d.Accept {
			return d
		}
	}

	if opts.MaxSize > 0 && info.Size() > opts.MaxSize {
		return reject("exceeds max size")
	}

	return accept(mode)
}

func checkBinary(path string, size int64) Decision {
	f, err := os.Open(path)
	if err != nil {
		return reject("unreadable for binary sniff: " + err.Error())
	}
	defer f.Close()

	sampleLen := size
	if sampleLen > 8000 {
		sampleLen = 8000
	}
	sample := make([]byte, sampleLen)
	n, _ := f.Read(sample)
	if binarydetect.IsBinary(sample[:n]) {
		return reject("binary content")
	}
	return accept(types.ModeText)
}

// checkSafetyPolicy mirrors the original's apply_safety_policy exactly:
// Conservative caps at 10MiB and additionally requires ext be in the
// always-search table; Performance caps at 500MiB; Default imposes no cap
// at all (the user's own --max-size flag is the only ceiling left).
func checkSafetyPolicy(size int64, ext string, policy types.SafetyPolicy) Decision {
	switch policy {
	case types.SafetyConservative:
		if size > 10*1024*1024 {
			return reject("conservative safety policy: file too large")
		}
		if !classify.IsAlwaysSearch(ext) {
			return reject("conservative safety policy: not a known text extension")
		}
	case types.SafetyPerformance:
		if size > 500*1024*1024 {
			return reject("performance safety policy: file too large")
		}
	}
	return accept(types.ModeText)
}

func checkExtensionLists(path string, opts types.FilterOptions) Decision {
	ext := strings.ToLower(filepath.Ext(path))

	if len(opts.ExcludeExtensions) > 0 && containsExt(opts.ExcludeExtensions, ext) {
		return reject("excluded extension " + ext)
	}
	if len(opts.IncludeExtensions) > 0 && !containsExt(opts.IncludeExtensions, ext) {
		return reject("not in include-extensions list")
	}
	return accept(types.ModeText)
}

func containsExt(list []string, ext string) bool {
	for _, e := range list {
		candidate := strings.ToLower(e)
		if !strings.HasPrefix(candidate, ".") {
			candidate = "." + candidate
		}
		if candidate == ext {
			return true
		}
	}
	return false
}
