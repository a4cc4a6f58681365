package session_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/smallbiznis/valora-web/internal/session"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	issuer := session.NewIssuer("session-secret-session-secret!!!", "valora.test", 12*time.Hour)

	value, err := issuer.Issue("user-99")
	require.NoError(t, err)
	require.NotEmpty(t, value)

	subject, err := issuer.Verify(value)
	require.NoError(t, err)
	require.Equal(t, "user-99", subject)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := session.NewIssuer("session-secret-session-secret!!!", "valora.test", 12*time.Hour)
	other := session.NewIssuer("another-secret-another-secret!!!", "valora.test", 12*time.Hour)

	value, err := issuer.Issue("user-99")
	require.NoError(t, err)

	_, err = other.Verify(value)
	require.Error(t, err)
}

func TestCookieAttributes(t *testing.T) {
	issuer := session.NewIssuer("session-secret-session-secret!!!", "valora.test", 12*time.Hour)

	cookie := issuer.Cookie("opaque-value")
	require.Equal(t, session.CookieName, cookie.Name)
	require.Equal(t, "opaque-value", cookie.Value)
	require.Equal(t, "/", cookie.Path)
	require.Equal(t, "valora.test", cookie.Domain)
	require.True(t, cookie.HttpOnly)
	require.Equal(t, int((12 * time.Hour).Seconds()), cookie.MaxAge)
}
