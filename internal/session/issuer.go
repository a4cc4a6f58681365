// Package session mints the short-lived authenticated session issued after
// a completed password reset.
package session

import (
	"fmt"
	"net/http"
	"time"

	gojose "github.com/go-jose/go-jose/v4"
	gojwt "github.com/go-jose/go-jose/v4/jwt"
)

// CookieName is the session cookie shared across the platform's subdomains.
const CookieName = "valora-session"

// Issuer signs session tokens bound to a subject id and wraps them in the
// fixed cookie policy. Sessions minted here are deliberately shorter than a
// credential login: possession of an emailed link is weaker proof.
type Issuer struct {
	secret []byte
	apex   string
	ttl    time.Duration
}

// NewIssuer constructs a session issuer for the deployment apex domain.
func NewIssuer(secret, apex string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), apex: apex, ttl: ttl}
}

// Issue produces an opaque signed session token for the subject.
func (i *Issuer) Issue(subjectID string) (string, error) {
	signer, err := gojose.NewSigner(
		gojose.SigningKey{Algorithm: gojose.HS256, Key: i.secret},
		(&gojose.SignerOptions{}).WithType("JWT"),
	)
	if err != nil {
		return "", fmt.Errorf("new signer: %w", err)
	}

	now := time.Now().UTC()
	claims := gojwt.Claims{
		Subject:   subjectID,
		Issuer:    i.apex,
		IssuedAt:  gojwt.NewNumericDate(now),
		Expiry:    gojwt.NewNumericDate(now.Add(i.ttl)),
		NotBefore: gojwt.NewNumericDate(now),
	}

	token, err := gojwt.Signed(signer).Claims(claims).Serialize()
	if err != nil {
		return "", fmt.Errorf("serialize session token: %w", err)
	}
	return token, nil
}

// Cookie wraps a session token in the fixed cookie attributes: apex-wide,
// http-only, max-age equal to the short session TTL.
func (i *Issuer) Cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    value,
		Path:     "/",
		Domain:   i.apex,
		MaxAge:   int(i.ttl.Seconds()),
		HttpOnly: true,
	}
}

// Verify parses and validates a session token, returning the subject id.
func (i *Issuer) Verify(value string) (string, error) {
	parsed, err := gojwt.ParseSigned(value, []gojose.SignatureAlgorithm{gojose.HS256})
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}
	var claims gojwt.Claims
	if err := parsed.Claims(i.secret, &claims); err != nil {
		return "", fmt.Errorf("verify session token: %w", err)
	}
	if err := claims.Validate(gojwt.Expected{Issuer: i.apex, Time: time.Now().UTC()}); err != nil {
		return "", fmt.Errorf("validate session claims: %w", err)
	}
	return claims.Subject, nil
}
