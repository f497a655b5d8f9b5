package identitysvc

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festify/console/core"
)

func TestLocalProvider(t *testing.T) {
	ctx := context.Background()
	p := NewLocalProvider()

	bob, err := p.CreateUser(ctx, "Bob@Festify.test ", "pwd", "bob")
	require.NoError(t, err)
	assert.Equal(t, "bob@festify.test", bob.Email)
	alice, err := p.CreateUser(ctx, "alice@festify.test", "pwd", "alice")
	require.NoError(t, err)

	_, err = p.CreateUser(ctx, "BOB@festify.test", "pwd", "bobby")
	assert.ErrorIs(t, err, core.ErrEmailExists)

	all, err := p.ListUsers(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, []core.Identity{alice, bob}, all)

	one, err := p.ListUsers(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []core.Identity{alice}, one)

	require.NoError(t, p.DeleteUser(ctx, bob.UID))
	_, err = p.GetUser(ctx, bob.UID)
	assert.ErrorIs(t, err, core.ErrNoIdentity)
	assert.ErrorIs(t, p.DeleteUser(ctx, bob.UID), core.ErrNoIdentity)
}

func TestLocalTokens(t *testing.T) {
	ctx := context.Background()
	conf := core.NewTestConfig()
	tokens := NewLocalTokens(conf)

	tok, err := tokens.IssueToken("uid-1")
	require.NoError(t, err)
	uid, err := tokens.VerifyToken(ctx, tok)
	require.NoError(t, err)
	assert.Equal(t, "uid-1", uid)

	sign := func(key string, claims jwt.Claims, method jwt.SigningMethod) string {
		s, err := jwt.NewWithClaims(method, claims).SignedString([]byte(key))
		require.NoError(t, err)
		return s
	}
	now := time.Now()

	tests := []struct {
		name    string
		token   string
		wantErr error
	}{
		{
			name: "expired",
			token: sign(conf.Auth.LocalSigningKey, jwt.RegisteredClaims{
				Subject:   "uid-1",
				ExpiresAt: jwt.NewNumericDate(now.Add(-time.Minute)),
			}, jwt.SigningMethodHS256),
			wantErr: core.ErrTokenExpired,
		},
		{
			name:    "wrong key",
			token:   sign("other-key", jwt.RegisteredClaims{Subject: "uid-1"}, jwt.SigningMethodHS256),
			wantErr: core.ErrTokenInvalid,
		},
		{
			name:    "wrong method",
			token:   sign(conf.Auth.LocalSigningKey, jwt.RegisteredClaims{Subject: "uid-1"}, jwt.SigningMethodHS512),
			wantErr: core.ErrTokenInvalid,
		},
		{
			name:    "no subject",
			token:   sign(conf.Auth.LocalSigningKey, jwt.RegisteredClaims{}, jwt.SigningMethodHS256),
			wantErr: core.ErrTokenInvalid,
		},
		{name: "garbage", token: "abc.def", wantErr: core.ErrTokenInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tokens.VerifyToken(ctx, tt.token)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
