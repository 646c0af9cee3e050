package docprep

import (
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeDocument returns data as UTF-8 text. A leading byte order mark is
// dropped (UTF-16 content is converted); anything else must already be
// valid UTF-8.
func decodeDocument(data []byte) (string, error) {
	out, _, err := transform.Bytes(unicode.BOMOverride(transform.Nop), data)
	if err != nil {
		return "", err
	}
	if !utf8.Valid(out) {
		return "", errors.New("content is not valid UTF-8")
	}
	return string(out), nil
}
