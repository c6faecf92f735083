package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	// ErrTokenMalformed occurs when a token is not a well-formed HS256 JWT.
	ErrTokenMalformed = errors.New("token malformed")

	// ErrTokenSignature occurs when the signature does not match the secret.
	ErrTokenSignature = errors.New("token signature mismatch")

	// ErrTokenExpired occurs when the exp claim lies in the past.
	ErrTokenExpired = errors.New("token expired")
)

// Claims is the payload carried by coinfolio tokens: sub (user id), email,
// ver (token version), iat and exp.
type Claims map[string]any

// Subject returns the sub claim, empty when absent.
func (c Claims) Subject() string {
	s, _ := c["sub"].(string)
	return s
}

// Email returns the email claim, empty when absent.
func (c Claims) Email() string {
	s, _ := c["email"].(string)
	return s
}

// Version returns the ver claim. JSON numbers decode as float64.
func (c Claims) Version() int {
	v, _ := c["ver"].(float64)
	return int(v)
}

// Expired reports whether the exp claim lies before now. A token without an
// exp claim never expires.
func (c Claims) Expired(now time.Time) bool {
	exp, ok := c["exp"].(float64)
	return ok && now.Unix() > int64(exp)
}

var segmentEncoding = base64.RawURLEncoding

func signSegments(unsigned string, secret []byte) []byte {
	mac := hmac.New(sha256.New, secret)
	mac.Write([]byte(unsigned))
	return mac.Sum(nil)
}

// SignHS256 serializes the claims into a compact HS256 JWT.
func SignHS256(claims Claims, secret []byte) (string, error) {
	header, err := json.Marshal(map[string]string{"alg": "HS256", "typ": "JWT"})
	if err != nil {
		return "", fmt.Errorf("encode header: %w", err)
	}
	payload, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("encode claims: %w", err)
	}

	unsigned := segmentEncoding.EncodeToString(header) + "." + segmentEncoding.EncodeToString(payload)
	sig := segmentEncoding.EncodeToString(signSegments(unsigned, secret))
	return unsigned + "." + sig, nil
}

// ParseAndVerifyHS256 checks structure, algorithm, signature and expiry, and
// returns the claims. Only HS256 tokens are accepted.
func ParseAndVerifyHS256(token string, secret []byte) (Claims, error) {
	segments := strings.Split(token, ".")
	if len(segments) != 3 {
		return nil, ErrTokenMalformed
	}

	headerJSON, err := segmentEncoding.DecodeString(segments[0])
	if err != nil {
		return nil, ErrTokenMalformed
	}
	var header struct {
		Alg string `json:"alg"`
	}
	if err := json.Unmarshal(headerJSON, &header); err != nil || header.Alg != "HS256" {
		return nil, ErrTokenMalformed
	}

	sig, err := segmentEncoding.DecodeString(segments[2])
	if err != nil {
		return nil, ErrTokenMalformed
	}
	if !hmac.Equal(sig, signSegments(segments[0]+"."+segments[1], secret)) {
		return nil, ErrTokenSignature
	}

	payloadJSON, err := segmentEncoding.DecodeString(segments[1])
	if err != nil {
		return nil, ErrTokenMalformed
	}
	var claims Claims
	if err := json.Unmarshal(payloadJSON, &claims); err != nil {
		return nil, ErrTokenMalformed
	}
	if claims.Expired(time.Now()) {
		return nil, ErrTokenExpired
	}
	return claims, nil
}
