package claims

import (
	"encoding/base64"
	"encoding/json"
	"strconv"
	"strings"
)

// Claims holds the decoded payload segment of an access token.
type Claims map[string]any

// Parse decodes the claims of an already-verified access token. No
// signature check is performed: the token issuer validated it before
// handing it to this service, and the service never accepts tokens from
// any other source.
func Parse(accessToken string) (Claims, error) {
	parts := strings.Split(accessToken, ".")
	if len(parts) != 3 {
		return nil, ErrMalformedToken
	}

	payload, err := base64URLDecode(parts[1])
	if err != nil {
		return nil, ErrMalformedToken
	}

	var c Claims
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, ErrMalformedToken
	}

	return c, nil
}

// String returns the first non-empty string value among the given keys.
// Fallback order matters: older issuer versions emit the long XML
// schema claim names instead of the short OIDC ones.
func (c Claims) String(keys ...string) string {
	for _, key := range keys {
		if v, ok := c[key]; ok {
			if s := stringify(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// Strings reads a claim that may be either a single scalar or an array,
// normalized to a slice of strings.
func (c Claims) Strings(keys ...string) []string {
	for _, key := range keys {
		v, ok := c[key]
		if !ok {
			continue
		}
		switch val := v.(type) {
		case []any:
			out := make([]string, 0, len(val))
			for _, item := range val {
				out = append(out, stringify(item))
			}
			return out
		default:
			return []string{stringify(val)}
		}
	}
	return nil
}

func stringify(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case json.Number:
		return val.String()
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		if val {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return ""
		}
		return string(b)
	}
}

// base64URLDecode pads and decodes a URL-safe base64 segment. Token
// segments arrive unpadded per RFC 7515.
func base64URLDecode(s string) ([]byte, error) {
	if pad := len(s) % 4; pad != 0 {
		s += strings.Repeat("=", 4-pad)
	}
	return base64.URLEncoding.DecodeString(s)
}
