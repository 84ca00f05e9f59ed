// Package encoding normalizes the character encoding of municipal CSV
// exports. The school spreadsheets arrive as UTF-8 when exported through
// pandas and as Latin-1 when downloaded straight from the prefecture's
// tooling, so the reader has to work out which it is looking at.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// NewUTF8Reader wraps r so that whatever encoding the export uses comes out
// as UTF-8. Detection order: BOM, valid UTF-8 as-is, chardet heuristics,
// then ISO-8859-1 — the safest guess for Brazilian office tooling, and a
// compatible decode for plain ASCII anyway.
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReader(r)

	head, err := br.Peek(4096)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("peek: %w", err)
	}

	if bytes.HasPrefix(head, bomUTF8) {
		_, _ = br.Discard(len(bomUTF8))
		return br, nil
	}

	if bytes.HasPrefix(head, bomUTF16LE) {
		return transform.NewReader(br, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if bytes.HasPrefix(head, bomUTF16BE) {
		return transform.NewReader(br, unicode.UTF16(unicode.BigEndian, unicode.UseBOM).NewDecoder()), nil
	}

	if utf8.Valid(head) {
		return br, nil
	}

	if cm := detectCharmap(head); cm != nil {
		return transform.NewReader(br, cm.NewDecoder()), nil
	}

	return transform.NewReader(br, charmap.ISO8859_1.NewDecoder()), nil
}

// detectCharmap asks chardet for its best guess and maps the answer onto
// the single-byte charsets the exports actually use. Unknown answers fall
// through to the ISO-8859-1 default.
func detectCharmap(head []byte) *charmap.Charmap {
	result, err := chardet.NewTextDetector().DetectBest(head)
	if err != nil {
		return nil
	}

	switch result.Charset {
	case "ISO-8859-1":
		return charmap.ISO8859_1
	case "windows-1252":
		return charmap.Windows1252
	}

	return nil
}
