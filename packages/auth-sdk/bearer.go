package authsdk

import (
	"errors"
	"strings"
)

var ErrMalformedHeader = errors.New("authorization header must be in the form 'Bearer <token>'")

const bearerPrefix = "Bearer "

// ExtractBearerToken 从 Authorization 头中取出 token
func ExtractBearerToken(header string) (string, error) {
	header = strings.TrimSpace(header)
	if header == "" {
		return "", ErrNoToken
	}
	if len(header) < len(bearerPrefix) || !strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return "", ErrMalformedHeader
	}
	token := strings.TrimSpace(header[len(bearerPrefix):])
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", ErrMalformedHeader
	}
	return token, nil
}
