// Package token implements the self-verifying action tokens carried in
// password-reset links. A token is base64url(JSON claims) + "." +
// base64url(HMAC-SHA256 over the encoded claims), so possession of a valid
// token proves the claims were minted by us without any server-side state.
package token

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
	// ErrMalformed reports a token whose payload cannot be parsed even
	// though its signature verified.
	ErrMalformed = errors.New("malformed token encoding")
	// ErrBadSignature reports a token whose signature does not match its
	// payload, including truncated or suffixed token strings.
	ErrBadSignature = errors.New("token signature mismatch")
	// ErrExpired reports a correctly signed token past its expiry.
	ErrExpired = errors.New("token expired")
)

// Claims is the verified content of an action token.
type Claims struct {
	SubjectID string `json:"sub"`
	Email     string `json:"email"`
	ExpiresAt int64  `json:"exp"`
}

// Codec signs and verifies action tokens with a process-wide secret. It has
// no mutable state and is safe for concurrent use.
type Codec struct {
	secret []byte
}

// NewCodec builds a codec around the shared signing secret.
func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret)}
}

// Encode serializes (subjectID, email, now+ttl) into a signed token string.
func (c *Codec) Encode(subjectID, email string, ttl time.Duration) (string, error) {
	claims := Claims{
		SubjectID: subjectID,
		Email:     email,
		ExpiresAt: time.Now().Add(ttl).Unix(),
	}
	raw, err := json.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("marshal claims: %w", err)
	}
	payload := base64.RawURLEncoding.EncodeToString(raw)
	return payload + "." + c.sign(payload), nil
}

// Decode verifies the token string and returns its claims. The signature is
// checked first, in constant time; only a correctly signed token has its
// structure and expiry examined, so a tampered token never reveals whether
// its payload would otherwise have parsed or expired.
func (c *Codec) Decode(tokenString string) (Claims, error) {
	idx := strings.LastIndex(tokenString, ".")
	if idx < 0 {
		return Claims{}, ErrBadSignature
	}
	payload, signature := tokenString[:idx], tokenString[idx+1:]

	got, err := base64.RawURLEncoding.DecodeString(signature)
	if err != nil {
		return Claims{}, ErrBadSignature
	}
	if !hmac.Equal(got, c.digest(payload)) {
		return Claims{}, ErrBadSignature
	}

	raw, err := base64.RawURLEncoding.DecodeString(payload)
	if err != nil {
		return Claims{}, ErrMalformed
	}
	var claims Claims
	if err := json.Unmarshal(raw, &claims); err != nil {
		return Claims{}, ErrMalformed
	}
	if claims.SubjectID == "" || claims.Email == "" || claims.ExpiresAt == 0 {
		return Claims{}, ErrMalformed
	}

	if time.Now().Unix() > claims.ExpiresAt {
		return Claims{}, ErrExpired
	}

	return claims, nil
}

func (c *Codec) sign(payload string) string {
	return base64.RawURLEncoding.EncodeToString(c.digest(payload))
}

func (c *Codec) digest(payload string) []byte {
	mac := hmac.New(sha256.New, c.secret)
	mac.Write([]byte(payload))
	return mac.Sum(nil)
}
