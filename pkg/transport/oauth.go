package transport

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base64"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// signer produces two-legged OAuth 1.0a HMAC-SHA1 Authorization headers.
// nonce and now are injectable for tests.
type signer struct {
	key    string
	secret string
	nonce  func() string
	now    func() time.Time
}

func newSigner(key, secret string) *signer {
	return &signer{
		key:    key,
		secret: secret,
		nonce:  func() string { return strings.ReplaceAll(uuid.NewString(), "-", "") },
		now:    time.Now,
	}
}

// header signs one request. baseURL excludes the query string; query is the
// encoded request parameters, which the signature base string must include.
func (s *signer) header(method, baseURL, query string) (string, error) {
	reqParams, err := url.ParseQuery(query)
	if err != nil {
		return "", err
	}

	oauth := map[string]string{
		"oauth_consumer_key":     s.key,
		"oauth_nonce":            s.nonce(),
		"oauth_signature_method": "HMAC-SHA1",
		"oauth_timestamp":        strconv.FormatInt(s.now().Unix(), 10),
		"oauth_version":          "1.0",
	}

	// Collect request and oauth params as percent-encoded pairs, sorted
	// bytewise, per RFC 5849 §3.4.1.3.2.
	var pairs []string
	for k, vs := range reqParams {
		for _, v := range vs {
			pairs = append(pairs, percentEncode(k)+"="+percentEncode(v))
		}
	}
	for k, v := range oauth {
		pairs = append(pairs, percentEncode(k)+"="+percentEncode(v))
	}
	sort.Strings(pairs)

	base := strings.ToUpper(method) + "&" + percentEncode(baseURL) + "&" +
		percentEncode(strings.Join(pairs, "&"))

	// Two-legged: no token secret, so the key ends with a bare ampersand.
	mac := hmac.New(sha1.New, []byte(percentEncode(s.secret)+"&"))
	mac.Write([]byte(base))
	oauth["oauth_signature"] = base64.StdEncoding.EncodeToString(mac.Sum(nil))

	keys := make([]string, 0, len(oauth))
	for k := range oauth {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString("OAuth ")
	for i, k := range keys {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(percentEncode(k))
		b.WriteString(`="`)
		b.WriteString(percentEncode(oauth[k]))
		b.WriteString(`"`)
	}
	return b.String(), nil
}

// percentEncode implements the unreserved-character encoding of RFC 3986,
// which is stricter than url.QueryEscape (spaces become %20, not +).
func percentEncode(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'A' && c <= 'Z', c >= 'a' && c <= 'z', c >= '0' && c <= '9',
			c == '-', c == '.', c == '_', c == '~':
			b.WriteByte(c)
		default:
			b.WriteByte('%')
			const hex = "0123456789ABCDEF"
			b.WriteByte(hex[c>>4])
			b.WriteByte(hex[c&0xf])
		}
	}
	return b.String()
}
