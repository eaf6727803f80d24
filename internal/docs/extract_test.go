package docs

import (
	"strings"
	"testing"
)

func TestExtractText(t *testing.T) {
	cases := []struct {
		name string
		data []byte
		want string
	}{
		{"plain text", []byte("Day 1: Louvre, then dinner."), "Day 1: Louvre, then dinner."},
		{"empty", nil, ""},
		{"invalid utf8", []byte{0xff, 0xfe, 0x00, 0x41}, ""},
		{"whitespace trimmed", []byte("  notes here \n"), "notes here"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := ExtractText(tc.data); got != tc.want {
				t.Fatalf("ExtractText() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestExtractTextRejectsMostlyBinary(t *testing.T) {
	// Valid UTF-8, but control characters dominate.
	data := append([]byte("hi"), make([]byte, 100)...)
	if got := ExtractText(data); got != "" {
		t.Fatalf("ExtractText() = %q, want empty for binary-ish input", got)
	}
}

func TestExtractTextTruncates(t *testing.T) {
	long := strings.Repeat("itinerary line\n", 1000)
	got := ExtractText([]byte(long))
	if len(got) == 0 || len(got) > maxDocumentChars {
		t.Fatalf("len = %d, want 1..%d", len(got), maxDocumentChars)
	}
}

func TestExtractTextTruncatesOnRuneBoundary(t *testing.T) {
	long := strings.Repeat("é", maxDocumentChars) // 2 bytes each
	got := ExtractText([]byte(long))
	if len(got) > maxDocumentChars {
		t.Fatalf("len = %d, want <= %d", len(got), maxDocumentChars)
	}
	if !strings.HasSuffix(got, "é") {
		t.Fatal("truncation split a multi-byte rune")
	}
}
