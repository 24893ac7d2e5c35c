package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgErrors "github.com/SlavaShagalov/user-list/internal/pkg/errors"
)

func TestNonceRoundTrip(t *testing.T) {
	s := NewNonceService("secret", time.Hour)

	token, err := s.Issue(ListUsersAction)
	require.NoError(t, err)
	assert.NoError(t, s.Verify(token, ListUsersAction))
}

func TestNonceRejects(t *testing.T) {
	s := NewNonceService("secret", time.Hour)
	token, err := s.Issue(ListUsersAction)
	require.NoError(t, err)

	other, err := NewNonceService("other", time.Hour).Issue(ListUsersAction)
	require.NoError(t, err)

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{"act": ListUsersAction}).
		SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		token  string
		action string
		want   error
	}{
		{name: "missing", token: "", action: ListUsersAction, want: pkgErrors.ErrMissingNonce},
		{name: "garbage", token: "not-a-token", action: ListUsersAction, want: pkgErrors.ErrInvalidNonce},
		{name: "wrong action", token: token, action: "delete_users", want: pkgErrors.ErrInvalidNonce},
		{name: "wrong secret", token: other, action: ListUsersAction, want: pkgErrors.ErrInvalidNonce},
		{name: "unsigned", token: none, action: ListUsersAction, want: pkgErrors.ErrInvalidNonce},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := s.Verify(tt.token, tt.action)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestNonceExpires(t *testing.T) {
	s := NewNonceService("secret", time.Minute).(*nonceService)
	issued := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return issued }

	token, err := s.Issue(ListUsersAction)
	require.NoError(t, err)

	s.now = func() time.Time { return issued.Add(2 * time.Minute) }
	assert.ErrorIs(t, s.Verify(token, ListUsersAction), pkgErrors.ErrInvalidNonce)
}

func TestNonceDefaultLifetime(t *testing.T) {
	assert.Equal(t, DefaultNonceLifetime, NewNonceService("secret", 0).Lifetime())
}
