package binarydetect

import "testing"

func TestIsBinary_Empty(t *testing.T) {
	if IsBinary(nil) {
		t.Error("empty content should be text")
	}
}

func TestIsBinary_PlainText(t *testing.T) {
	if IsBinary([]byte("package main\n\nfunc main() {}\n")) {
		t.Error("ordinary source text should not be binary")
	}
}

func TestIsBinary_MagicNumbers(t *testing.T) {
	tests := []struct {
		name    string
		content []byte
	}{
		{"gzip", []byte{0x1F, 0x8B, 0x08, 0x00}},
		{"zip", []byte{0x50, 0x4B, 0x03, 0x04}},
		{"png", []byte{0x89, 'P', 'N', 'G', 0x0D, 0x0A, 0x1A, 0x0A}},
		{"jpeg", []byte{0xFF, 0xD8, 0xFF, 0xE0}},
		{"gif", []byte("GIF89a")},
		{"pdf", []byte("%PDF-1.4")},
		{"elf", []byte{0x7F, 'E', 'L', 'F', 2, 1, 1}},
		{"pe", []byte{'M', 'Z', 0x90, 0x00}},
		{"macho", []byte{0xCA, 0xFE, 0xBA, 0xBE, 0x00}},
		{"woff", []byte("wOFF\x00\x01\x00\x00")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !IsBinary(tt.content) {
				t.Errorf("expected %s signature to be detected as binary", tt.name)
			}
		})
	}
}

func TestIsBinary_UTF8BOM(t *testing.T) {
	content := append([]byte{0xEF, 0xBB, 0xBF}, []byte("hello world")...)
	if IsBinary(content) {
		t.Error("UTF-8 BOM content should be text")
	}
}

func TestIsBinary_UTF16BOM(t *testing.T) {
	le := []byte{0xFF, 0xFE, 'h', 0x00, 'i', 0x00}
	if IsBinary(le) {
		t.Error("UTF-16 LE BOM content should be text")
	}

	be := []byte{0xFE, 0xFF, 0x00, 'h', 0x00, 'i'}
	if IsBinary(be) {
		t.Error("UTF-16 BE BOM content should be text")
	}
}

func TestIsBinary_UTF16InterleaveWithoutBOM(t *testing.T) {
	text := "hello world, this is a reasonably long ascii string"
	buf := make([]byte, 0, len(text)*2)
	for _, c := range text {
		buf = append(buf, byte(c), 0x00)
	}
	if IsBinary(buf) {
		t.Error("unmarked UTF-16 LE interleave should be detected as text")
	}
}

func TestIsBinary_HighNullFraction(t *testing.T) {
	buf := make([]byte, 1000)
	for i := range buf {
		if i%3 == 0 {
			buf[i] = 'x'
		}
	}
	if !IsBinary(buf) {
		t.Error("content with >10%% null bytes and no BOM/UTF-16 pattern should be binary")
	}
}
