// Package encoding provides text encoding helpers for mesh source files and
// the fixed, null-terminated strings stored in binary model formats.
package encoding

import (
	"bytes"
	"errors"
	"fmt"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrUnencodable is returned when a string has no Windows-1252 representation.
var ErrUnencodable = errors.New("string not representable in Windows-1252")

// DecodeText converts raw source text to a UTF-8 string.
// A leading UTF-8 BOM is stripped and UTF-16 input with a BOM is transcoded;
// anything else is treated as UTF-8.
func DecodeText(data []byte) (string, error) {
	decoder := unicode.BOMOverride(unicode.UTF8.NewDecoder())
	result, _, err := transform.Bytes(decoder, data)
	if err != nil {
		return "", fmt.Errorf("decoding text: %w", err)
	}
	return string(result), nil
}

// CString encodes s as Windows-1252 followed by a null terminator.
// Legacy model formats store object names in the ANSI code page.
func CString(s string) ([]byte, error) {
	encoded, _, err := transform.Bytes(charmap.Windows1252.NewEncoder(), []byte(s))
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnencodable, s)
	}
	if bytes.IndexByte(encoded, 0) >= 0 {
		return nil, fmt.Errorf("%w: %q contains a null byte", ErrUnencodable, s)
	}
	return append(encoded, 0), nil
}

// ReadCString decodes a null-terminated Windows-1252 string from the start of
// data. Returns the string and the number of bytes consumed including the
// terminator, or ok=false if no terminator is present.
func ReadCString(data []byte) (s string, n int, ok bool) {
	nullIdx := bytes.IndexByte(data, 0)
	if nullIdx < 0 {
		return "", 0, false
	}
	return DecodeWindows1252(data[:nullIdx]), nullIdx + 1, true
}

// DecodeWindows1252 converts Windows-1252 bytes to a UTF-8 string.
// Input the decoder rejects is returned unchanged.
func DecodeWindows1252(data []byte) string {
	decoded, _, err := transform.Bytes(charmap.Windows1252.NewDecoder(), data)
	if err != nil {
		return string(data)
	}
	return string(decoded)
}

// TrimNullBytes removes trailing null bytes from a byte slice.
func TrimNullBytes(data []byte) []byte {
	return bytes.TrimRight(data, "\x00")
}
