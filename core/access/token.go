/*Package access provides token based access control for the catalog service.

It issues and verifies signed bearer tokens and provides a mux middleware
which guards the protected routes.
*/
package access

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// ErrInvalidToken is returned by Verify when the token signature does not
// match the service secret or the token is otherwise malformed.
var ErrInvalidToken = errors.New("invalid token")

// ErrTokenExpired is returned by Verify when the token is past its expiry.
var ErrTokenExpired = errors.New("token expired")

// Claims is the identity data carried by a bearer token.
type Claims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-limited identity tokens.
// Tokens are stateless, there is no revocation. The expiry is the only
// freshness control.
type TokenService struct {
	secret   []byte
	lifetime time.Duration
}

// NewTokenService creates a token service for the given signing secret.
// Issued tokens expire after one hour.
func NewTokenService(secret []byte) *TokenService {
	return &TokenService{secret: secret, lifetime: time.Hour}
}

// Issue creates a signed token for the given user.
func (t *TokenService) Issue(userID int, username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.lifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.secret)
}

// Verify checks signature and expiry of the given token string and returns
// the embedded claims. It returns ErrTokenExpired for expired tokens and
// ErrInvalidToken for everything else that fails validation.
func (t *TokenService) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.secret, nil
	})
	if err != nil {
		var verr *jwt.ValidationError
		if errors.As(err, &verr) && verr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, ErrTokenExpired
		}
		return nil, ErrInvalidToken
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
