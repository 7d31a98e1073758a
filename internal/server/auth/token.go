// Package auth implements the signed access token and the credential
// hashing used by the authentication flow.
//
// The token is a compact three-segment string:
//
//	base64url(header JSON) "." base64url(payload JSON) "." base64(HMAC-SHA256)
//
// The signature is computed over the literal "{header}.{payload}" string
// with a server-side secret. Signature validity and expiry are checked
// separately so callers can tell a tampered token from a merely stale one.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"strings"
	"time"

	"github.com/opennote-dev/opennote/internal/common"
	"github.com/opennote-dev/opennote/internal/timex"
)

// SupportedAlgorithm is the value carried in the token header. Historical
// wire value: signatures are HMAC-SHA256, but deployed verifiers expect the
// literal RS256.
const SupportedAlgorithm = "RS256"

type tokenHeader struct {
	Algorithm *string `json:"alg"`
}

// Historical field mapping, kept for wire compatibility: "iat" carries the
// refresh-token id, not an issue timestamp.
type tokenPayload struct {
	ExpireAt       *int64  `json:"exp"`
	RefreshTokenID *string `json:"iat"`
	UserID         *string `json:"user_id"`
}

// Token is a parsed or freshly minted access token. It is a plain value:
// holding one implies nothing about its signature having been verified.
type Token struct {
	Algorithm      string
	ExpireAt       int64 // unix seconds
	RefreshTokenID string
	UserID         string

	// segments as received from the wire, empty for minted tokens
	rawHeader  string
	rawPayload string
	signature  string
}

// IsExpired reports whether the token's expiry has passed. It says nothing
// about signature validity; callers combine it with Codec.Validate.
func (t *Token) IsExpired() bool {
	return timex.UnixNow() > t.ExpireAt
}

// Codec builds, serializes, parses, and verifies access tokens. The signing
// secret and TTL are injected at construction so tests can run with known
// keys instead of reading ambient process state.
type Codec struct {
	secret    []byte
	accessTTL time.Duration
}

func NewCodec(secret []byte, accessTTL time.Duration) *Codec {
	return &Codec{secret: secret, accessTTL: accessTTL}
}

// Create mints a token expiring accessTTL after issuedAt, referencing the
// refresh token it was issued against. Pure construction, no I/O; the
// signature is computed lazily on first serialization.
func (c *Codec) Create(issuedAt time.Time, userID, refreshTokenID string) *Token {
	return &Token{
		Algorithm:      SupportedAlgorithm,
		ExpireAt:       issuedAt.Unix() + int64(c.accessTTL/time.Second),
		RefreshTokenID: refreshTokenID,
		UserID:         userID,
	}
}

// Serialize returns the three-segment wire form, signing the token first if
// it does not already carry a signature.
func (c *Codec) Serialize(t *Token) string {
	header, payload := c.segments(t)
	if t.signature == "" {
		t.signature = c.sign(header, payload)
	}
	return header + "." + payload + "." + t.signature
}

// Parse reconstructs a token from its wire form. It fails with
// common.ErrTokenParse when the string does not split into exactly three
// segments, a segment is not valid base64/JSON, or a required field is
// absent or mistyped. Success means well-formedness only, not trust: the
// signature has not been verified yet.
func (c *Codec) Parse(s string) (*Token, error) {
	parts := strings.Split(s, ".")
	if len(parts) != 3 {
		return nil, common.ErrTokenParse
	}

	var header tokenHeader
	if err := decodeSegment(parts[0], &header); err != nil || header.Algorithm == nil {
		return nil, common.ErrTokenParse
	}

	var payload tokenPayload
	if err := decodeSegment(parts[1], &payload); err != nil ||
		payload.ExpireAt == nil || payload.RefreshTokenID == nil || payload.UserID == nil {
		return nil, common.ErrTokenParse
	}

	return &Token{
		Algorithm:      *header.Algorithm,
		ExpireAt:       *payload.ExpireAt,
		RefreshTokenID: *payload.RefreshTokenID,
		UserID:         *payload.UserID,
		rawHeader:      parts[0],
		rawPayload:     parts[1],
		signature:      parts[2],
	}, nil
}

// Validate checks the algorithm and the signature, in constant time for the
// signature comparison. Expiry is deliberately not checked here.
func (c *Codec) Validate(t *Token) error {
	if t.Algorithm != SupportedAlgorithm {
		return common.ErrUnsupportedAlgorithm
	}
	header, payload := c.segments(t)
	expected := c.sign(header, payload)
	if !hmac.Equal([]byte(t.signature), []byte(expected)) {
		return common.ErrInvalidSignature
	}
	return nil
}

// segments returns the encoded header and payload. Parsed tokens keep the
// bytes they arrived with so the signature is verified over the literal
// received segments, not over a re-marshalled form.
func (c *Codec) segments(t *Token) (string, string) {
	if t.rawHeader != "" && t.rawPayload != "" {
		return t.rawHeader, t.rawPayload
	}
	alg := t.Algorithm
	exp := t.ExpireAt
	rt := t.RefreshTokenID
	uid := t.UserID
	return encodeSegment(tokenHeader{Algorithm: &alg}),
		encodeSegment(tokenPayload{ExpireAt: &exp, RefreshTokenID: &rt, UserID: &uid})
}

func (c *Codec) sign(header, payload string) string {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(header + "." + payload))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func encodeSegment(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		// both segment structs marshal unconditionally
		panic(err)
	}
	return base64.URLEncoding.EncodeToString(b)
}

func decodeSegment(s string, v any) error {
	b, err := base64.URLEncoding.DecodeString(s)
	if err != nil {
		return common.ErrTokenParse
	}
	if err := json.Unmarshal(b, v); err != nil {
		return common.ErrTokenParse
	}
	return nil
}
