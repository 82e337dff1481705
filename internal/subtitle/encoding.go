package subtitle

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/net/html/charset"
	"golang.org/x/text/encoding"
	"golang.org/x/text/transform"
)

// utf8BOM is stripped from decoded content before parsing.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readFileUTF8 reads a subtitle file and decodes it to UTF-8. Files that are
// already valid UTF-8 pass through untouched; anything else goes through
// charset detection so legacy Shift-JIS or Windows-1252 exports still parse.
func readFileUTF8(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read subtitle file: %w", err)
	}

	raw = bytes.TrimPrefix(raw, utf8BOM)
	if utf8.Valid(raw) {
		return string(raw), nil
	}

	decoded, _, err := transform.Bytes(detectEncoding(raw).NewDecoder(), raw)
	if err != nil {
		return "", fmt.Errorf("decode subtitle file %s: %w", path, err)
	}
	return string(bytes.TrimPrefix(decoded, utf8BOM)), nil
}

// detectEncoding picks a decoder for non-UTF-8 content. Statistical detection
// comes first because DetermineEncoding only sniffs BOMs and meta tags and
// would call every legacy Japanese export windows-1252.
func detectEncoding(raw []byte) encoding.Encoding {
	detector := chardet.NewTextDetector()
	if result, err := detector.DetectBest(raw); err == nil {
		if enc, _ := charset.Lookup(result.Charset); enc != nil {
			return enc
		}
	}
	enc, _, _ := charset.DetermineEncoding(raw, "")
	return enc
}

// normalizeNewlines converts CRLF and lone CR line endings to LF.
func normalizeNewlines(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
