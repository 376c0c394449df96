package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"taskkeeper/internal/common"
	"taskkeeper/internal/server/models"
)

// Claims carries the identity embedded in an access token: subject and name
// are both the username, Role is the account role.
type Claims struct {
	jwt.RegisteredClaims
	Name string `json:"name"`
	Role string `json:"role"`
}

// TokenIssuer mints and verifies HS256-signed access tokens. It is stateless;
// a verified, unexpired token is trusted unconditionally (no revocation list).
type TokenIssuer struct {
	key      []byte
	issuer   string
	audience string
	lifetime time.Duration
}

func NewTokenIssuer(key []byte, issuer, audience string, lifetime time.Duration) *TokenIssuer {
	return &TokenIssuer{key: key, issuer: issuer, audience: audience, lifetime: lifetime}
}

// Issue returns a signed token for the account. Missing signing material or
// an account with a blank username or role yields common.ErrConfiguration.
func (i *TokenIssuer) Issue(account *models.Account) (string, error) {
	if len(i.key) == 0 || i.issuer == "" || i.audience == "" {
		return "", common.ErrConfiguration
	}
	if account == nil || account.Username == "" || account.Role == "" {
		return "", common.ErrConfiguration
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   account.Username,
			Issuer:    i.issuer,
			Audience:  jwt.ClaimStrings{i.audience},
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(i.lifetime)),
		},
		Name: account.Username,
		Role: account.Role,
	})

	return token.SignedString(i.key)
}

// Verify checks signature, issuer, audience and expiry, and returns the
// embedded claims. Any failure yields common.ErrInvalidToken.
func (i *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, common.ErrInvalidToken
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return i.key, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(i.issuer),
		jwt.WithAudience(i.audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
