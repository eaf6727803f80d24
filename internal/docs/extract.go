// README: Best-effort plain-text extraction from uploaded documents.
package docs

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// maxDocumentChars bounds how much extracted text reaches the assistant.
// Prompts downstream must stay small; anything past this adds no signal.
const maxDocumentChars = 4000

// minPrintableRatio rejects binary uploads masquerading as text.
const minPrintableRatio = 0.85

// ExtractText returns the plain text of an uploaded document, or "" when the
// bytes are not text. It never fails: binary, empty, and malformed inputs
// all come back as an empty string.
func ExtractText(data []byte) string {
	if len(data) == 0 {
		return ""
	}
	if !utf8.Valid(data) {
		return ""
	}

	text := string(data)
	printable := 0
	total := 0
	for _, r := range text {
		total++
		if unicode.IsPrint(r) || unicode.IsSpace(r) {
			printable++
		}
	}
	if total == 0 || float64(printable)/float64(total) < minPrintableRatio {
		return ""
	}

	text = strings.TrimSpace(text)
	if len(text) > maxDocumentChars {
		cut := text[:maxDocumentChars]
		// Avoid splitting a multi-byte rune at the boundary.
		for len(cut) > 0 && !utf8.ValidString(cut) {
			cut = cut[:len(cut)-1]
		}
		text = cut
	}
	return text
}
