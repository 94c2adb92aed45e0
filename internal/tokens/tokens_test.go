package tokens

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-jwt-secret")

func TestIssuer_Issue_SetsExpectedClaims(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer(testSecret, 0)
	before := time.Now().UTC()

	token, err := issuer.Issue("alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := issuer.Decode(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", claims.Subject)
	assert.NotEmpty(t, claims.ID)
	require.NotNil(t, claims.ExpiresAt)
	assert.WithinDuration(t, before.Add(DefaultTTL), claims.Expiry(), 2*time.Second)
}

func TestIssuer_Issue_UniqueTokenIDs(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer(testSecret, time.Minute)
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		token, err := issuer.Issue("alice")
		require.NoError(t, err)
		claims, err := issuer.Decode(token)
		require.NoError(t, err)
		_, dup := seen[claims.ID]
		require.False(t, dup, "token id reused: %s", claims.ID)
		seen[claims.ID] = struct{}{}
	}
}

func TestIssuer_Decode_Expired(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer(testSecret, time.Hour)

	tests := []struct {
		name string
		ttl  time.Duration
	}{
		{name: "zero ttl", ttl: 0},
		{name: "past expiry", ttl: -time.Minute},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			token, err := issuer.IssueWithTTL("alice", tt.ttl)
			require.NoError(t, err)

			claims, err := issuer.Decode(token)
			require.Error(t, err)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrInvalidToken)
			assert.ErrorIs(t, err, jwt.ErrTokenExpired)
		})
	}
}

func TestIssuer_Decode_ExpiresWithClock(t *testing.T) {
	t.Parallel()

	now := time.Date(2026, 1, 2, 15, 0, 0, 0, time.UTC)
	issuer := &Issuer{Secret: testSecret, TTL: time.Hour, Now: func() time.Time { return now }}

	token, err := issuer.Issue("alice")
	require.NoError(t, err)

	now = now.Add(59 * time.Minute)
	_, err = issuer.Decode(token)
	require.NoError(t, err)

	now = now.Add(time.Minute)
	_, err = issuer.Decode(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestIssuer_Decode_Rejects(t *testing.T) {
	t.Parallel()

	issuer := NewIssuer(testSecret, time.Hour)
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	otherSecret, err := NewIssuer([]byte("other-secret"), time.Hour).Issue("alice")
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice", ID: NewJTI(), ExpiresAt: exp},
	}).SignedString(testSecret)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice", ID: NewJTI(), ExpiresAt: exp},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice", ID: NewJTI()},
	}).SignedString(testSecret)
	require.NoError(t, err)

	noJTI, err := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "alice", ExpiresAt: exp},
	}).SignedString(testSecret)
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty", token: ""},
		{name: "malformed", token: "not-a-valid-jwt"},
		{name: "wrong secret", token: otherSecret},
		{name: "other hmac alg", token: hs512},
		{name: "alg none", token: none},
		{name: "missing exp", token: noExp},
		{name: "missing jti", token: noJTI},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			claims, err := issuer.Decode(tt.token)
			require.Error(t, err)
			assert.Nil(t, claims)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}
