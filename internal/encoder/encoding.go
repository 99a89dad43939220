package encoder

import (
	"encoding/base64"
	"encoding/hex"
	"strings"

	"golang.org/x/crypto/sha3"
)

// DataURIPrefix is the media type header of every generated data URI.
const DataURIPrefix = "data:image/svg+xml;base64,"

// Encodings holds the four textual encodings of a single file.
type Encodings struct {
	// Base64 is the standard, padded base64 encoding of the raw bytes.
	Base64 string

	// DataURI is DataURIPrefix followed by Base64.
	DataURI string

	// PercentBase64 is Base64 with every non-unreserved character escaped.
	PercentBase64 string

	// DataURIPercent is DataURIPrefix followed by PercentBase64.
	DataURIPercent string
}

// Encode computes all encodings of data.
func Encode(data []byte) Encodings {
	b64 := base64.StdEncoding.EncodeToString(data)
	pct := PercentEncode(b64)
	return Encodings{
		Base64:         b64,
		DataURI:        DataURIPrefix + b64,
		PercentBase64:  pct,
		DataURIPercent: DataURIPrefix + pct,
	}
}

const upperhex = "0123456789ABCDEF"

// PercentEncode escapes every byte of s outside the RFC 3986 unreserved set
// (A-Z a-z 0-9 - . _ ~) as %XX with uppercase hex digits. Nothing else is
// treated as safe, so '+', '/' and '=' are always escaped.
func PercentEncode(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !isUnreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var sb strings.Builder
	sb.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			sb.WriteByte(c)
			continue
		}
		sb.WriteByte('%')
		sb.WriteByte(upperhex[c>>4])
		sb.WriteByte(upperhex[c&0x0F])
	}
	return sb.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '.', c == '_', c == '~':
		return true
	}
	return false
}

// Digest returns the hex SHA3-256 digest of data.
func Digest(data []byte) string {
	sum := sha3.Sum256(data)
	return hex.EncodeToString(sum[:])
}
