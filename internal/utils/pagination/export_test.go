package pagination

import "encoding/base64"

// EncodeTokenRaw builds a token from an arbitrary payload for negative tests.
func EncodeTokenRaw(payload string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(payload))
}
