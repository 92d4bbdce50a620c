package connect

import (
	"encoding/base64"
	"net/url"
	"strings"

	"github.com/pkg/errors"
)

// Pair is a single key/value element of a connect payload.
type Pair struct {
	Key   string
	Value string
}

// Pairs is an ordered list of payload key/value pairs. Order is preserved
// through encode/decode for readability but carries no protocol meaning:
// signing and verification operate on the final base64 string. An explicit
// list (rather than a map) keeps the wire bytes independent of map
// iteration order.
type Pairs []Pair

// Get returns the value of the first pair with the given key, or "".
func (p Pairs) Get(key string) string {
	for _, pair := range p {
		if pair.Key == key {
			return pair.Value
		}
	}
	return ""
}

// Has reports whether a pair with the given key is present.
func (p Pairs) Has(key string) bool {
	for _, pair := range p {
		if pair.Key == key {
			return true
		}
	}
	return false
}

// Codec encodes and decodes the opaque signed payload: a base64 envelope
// wrapping a URL-encoded query string. Both directions are pure functions.
type Codec struct{}

// Encode percent-encodes each pair, joins them as a query string and
// base64-encodes the result.
func (Codec) Encode(pairs Pairs) string {
	var sb strings.Builder
	for i, pair := range pairs {
		if i > 0 {
			sb.WriteByte('&')
		}
		sb.WriteString(url.QueryEscape(pair.Key))
		sb.WriteByte('=')
		sb.WriteString(url.QueryEscape(pair.Value))
	}
	return base64.StdEncoding.EncodeToString([]byte(sb.String()))
}

// Decode base64-decodes the envelope and parses the body as a query
// string, preserving pair order. Fails with ErrMalformedPayload on invalid
// base64 or a body that is not valid percent-encoded key/value syntax.
func (Codec) Decode(encoded string) (Pairs, error) {
	raw, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, errors.Wrap(ErrMalformedPayload, "[Codec.Decode] invalid base64")
	}
	return parseQueryOrdered(string(raw))
}

// parseQueryOrdered is url.ParseQuery with pair order kept. It applies the
// same grammar: pairs split on '&', ';' rejected, both key and value
// percent-decoded.
func parseQueryOrdered(query string) (Pairs, error) {
	pairs := make(Pairs, 0)
	for query != "" {
		var segment string
		segment, query, _ = strings.Cut(query, "&")
		if segment == "" {
			continue
		}
		if strings.Contains(segment, ";") {
			return nil, errors.Wrap(ErrMalformedPayload, "[Codec.Decode] invalid semicolon separator")
		}
		rawKey, rawValue, _ := strings.Cut(segment, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			return nil, errors.Wrap(ErrMalformedPayload, "[Codec.Decode] invalid key encoding")
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			return nil, errors.Wrap(ErrMalformedPayload, "[Codec.Decode] invalid value encoding")
		}
		pairs = append(pairs, Pair{Key: key, Value: value})
	}
	return pairs, nil
}
