package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateSignup(t *testing.T) {
	cases := []struct {
		user, pass string
		ok         bool
	}{
		{"alice", "password1", true},
		{"a_b_9", "12345678", true},
		{"al", "password1", false},
		{strings.Repeat("a", 25), "password1", false},
		{"bad name", "password1", false},
		{"alice", "short", false},
		{"alice", strings.Repeat("p", 73), false},
	}
	for _, c := range cases {
		err := ValidateSignup(c.user, c.pass)
		if c.ok {
			assert.NoError(t, err, "%q/%q", c.user, c.pass)
		} else {
			assert.Error(t, err, "%q/%q", c.user, c.pass)
		}
	}
	assert.Equal(t, "bob", NormalizeUsername("  bob\n"))
}

func TestPasswordHash(t *testing.T) {
	h, err := HashPassword("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", h)
	assert.True(t, CheckPassword(h, "correct horse"))
	assert.False(t, CheckPassword(h, "battery staple"))
}

func TestIssuer_RoundTrip(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	tok, exp, err := iss.Sign("u1", "alice")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, time.Minute)

	c, err := iss.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "u1", c.PlayerID)
	assert.Equal(t, "alice", c.Username)
}

func TestIssuer_Rejects(t *testing.T) {
	iss := NewIssuer("secret", time.Hour)
	tok, _, err := iss.Sign("u1", "alice")
	require.NoError(t, err)

	_, err = NewIssuer("other", time.Hour).Parse(tok)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = iss.Parse("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := NewIssuer("secret", time.Hour)
	expired.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	old, _, err := expired.Sign("u1", "alice")
	require.NoError(t, err)
	_, err = iss.Parse(old)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = iss.Parse(mustSign(t, iss, "", "alice"))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func mustSign(t *testing.T, iss *Issuer, id, user string) string {
	t.Helper()
	tok, _, err := iss.Sign(id, user)
	require.NoError(t, err)
	return tok
}
