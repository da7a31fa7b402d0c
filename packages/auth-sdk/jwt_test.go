package authsdk

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-key"

func TestGenerateToken(t *testing.T) {
	token, uc, err := GenerateToken(UserContext{UserID: 7, Username: "jake", Email: "jake@jake.jake"}, testSecret, time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, uc.TokenID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), uc.ExpiresAt, 2*time.Second)

	other, uc2, err := GenerateToken(UserContext{UserID: 7, Username: "jake", Email: "jake@jake.jake"}, testSecret, time.Hour)
	require.NoError(t, err)
	assert.NotEqual(t, token, other)
	assert.NotEqual(t, uc.TokenID, uc2.TokenID)
}

func TestParseToken(t *testing.T) {
	validToken, issued, err := GenerateToken(UserContext{UserID: 1, Username: "testuser", Email: "test@example.com"}, testSecret, time.Hour)
	require.NoError(t, err)

	expiredToken, _, err := GenerateToken(UserContext{UserID: 1, Username: "testuser", Email: "test@example.com"}, testSecret, -time.Minute)
	require.NoError(t, err)

	otherSecretToken, _, err := GenerateToken(UserContext{UserID: 1, Username: "testuser", Email: "test@example.com"}, "another-secret", time.Hour)
	require.NoError(t, err)

	noneToken, err := jwt.NewWithClaims(jwt.SigningMethodNone, &Claims{
		UserID: 1,
		Email:  "test@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}).SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	noExpiry, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		UserID: 1,
		Email:  "test@example.com",
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	tests := []struct {
		name      string
		token     string
		expectErr error
	}{
		{name: "valid token", token: validToken},
		{name: "empty token", token: "", expectErr: ErrNoToken},
		{name: "garbage", token: "invalid.token.string", expectErr: ErrInvalidToken},
		{name: "not a jwt", token: "not-a-jwt-token", expectErr: ErrInvalidToken},
		{name: "expired", token: expiredToken, expectErr: ErrExpiredToken},
		{name: "signed with another secret", token: otherSecretToken, expectErr: ErrInvalidToken},
		{name: "alg none is rejected", token: noneToken, expectErr: ErrInvalidToken},
		{name: "missing exp is rejected", token: noExpiry, expectErr: ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, err := ParseToken(tt.token, testSecret)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				assert.Nil(t, uc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint(1), uc.UserID)
			assert.Equal(t, "testuser", uc.Username)
			assert.Equal(t, "test@example.com", uc.Email)
			assert.Equal(t, issued.TokenID, uc.TokenID)
		})
	}
}

func TestExtractBearerToken(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		want      string
		expectErr error
	}{
		{name: "bearer token", header: "Bearer abc.def.ghi", want: "abc.def.ghi"},
		{name: "lowercase scheme", header: "bearer abc", want: "abc"},
		{name: "empty header", header: "", expectErr: ErrNoToken},
		{name: "token scheme", header: "Token abc", expectErr: ErrMalformedHeader},
		{name: "scheme only", header: "Bearer", expectErr: ErrMalformedHeader},
		{name: "scheme with spaces", header: "Bearer    ", expectErr: ErrMalformedHeader},
		{name: "two tokens", header: "Bearer a b", expectErr: ErrMalformedHeader},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractBearerToken(tt.header)
			if tt.expectErr != nil {
				assert.ErrorIs(t, err, tt.expectErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
