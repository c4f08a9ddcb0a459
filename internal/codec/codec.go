// Package codec packs line documents into short URL-safe share tokens.
//
// Characters are mapped through a fixed prefix-free table, so the bit
// stream decodes greedily without separators. A token is a header byte
// holding the number of padding bits followed by the packed stream, in
// unpadded URL-safe base64. The header lets the decoder drop the padding;
// otherwise trailing zero bits would decode as spaces.
package codec

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	lberrors "linebook/internal/errors"
)

// Encode concatenates the codewords of text. Characters outside the table
// are dropped.
func Encode(text string) Bits {
	var b Bits
	for i := 0; i < len(text); i++ {
		if code, ok := table[text[i]]; ok {
			b.appendCode(code)
		}
	}
	return b
}

// Decode emits a character whenever the accumulated bits form a codeword.
// Bits left over at the end are discarded.
func Decode(bits Bits) string {
	var out strings.Builder
	buf := make([]byte, 0, 16)
	for i := 0; i < bits.Len(); i++ {
		buf = append(buf, '0'+bits.At(i))
		if c, ok := reverse[string(buf)]; ok {
			out.WriteByte(c)
			buf = buf[:0]
		}
	}
	return out.String()
}

// Compress turns text into a token safe to place in a query string.
func Compress(text string) string {
	bits := Encode(text)

	payload := make([]byte, 0, 1+(bits.Len()+7)/8)
	payload = append(payload, byte(bits.Padding()))
	payload = append(payload, bits.Bytes()...)

	return url.QueryEscape(base64.RawURLEncoding.EncodeToString(payload))
}

// Decompress reverses Compress. An empty token is the empty document.
func Decompress(token string) (string, error) {
	if token == "" {
		return "", nil
	}

	raw, err := url.PathUnescape(token)
	if err != nil {
		return "", fmt.Errorf("%w: %v", lberrors.ErrCodec, err)
	}

	data, err := decodeBase64(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %v", lberrors.ErrCodec, err)
	}
	if len(data) == 0 {
		return "", fmt.Errorf("%w: missing header", lberrors.ErrCodec)
	}

	padding := int(data[0])
	body := data[1:]
	if padding > 7 || padding > len(body)*8 {
		return "", fmt.Errorf("%w: bad padding length %d", lberrors.ErrCodec, padding)
	}

	return Decode(BitsFromBytes(body, len(body)*8-padding)), nil
}

// LoadShared is Decompress for untrusted links: anything malformed loads as
// the empty document.
func LoadShared(token string) string {
	text, err := Decompress(token)
	if err != nil {
		return ""
	}
	return text
}

// decodeBase64 accepts both base64 alphabets, with or without padding.
func decodeBase64(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, "=")
	s = strings.NewReplacer("+", "-", "/", "_").Replace(s)
	return base64.RawURLEncoding.DecodeString(s)
}
