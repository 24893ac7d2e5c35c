package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	pkgErrors "github.com/SlavaShagalov/user-list/internal/pkg/errors"
)

const (
	ListUsersAction = "ct_user_list_get_users"

	DefaultNonceLifetime = 24 * time.Hour
	nonceIssuer          = "user-list"
)

type nonceClaims struct {
	Action string `json:"act"`
	jwt.RegisteredClaims
}

type nonceService struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

func NewNonceService(secret string, lifetime time.Duration) NonceService {
	if lifetime <= 0 {
		lifetime = DefaultNonceLifetime
	}
	return &nonceService{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}
}

func (s *nonceService) Lifetime() time.Duration {
	return s.lifetime
}

func (s *nonceService) Issue(action string) (string, error) {
	now := s.now()
	claims := nonceClaims{
		Action: action,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    nonceIssuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.lifetime)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "sign nonce")
	}
	return token, nil
}

// Verify checks the signature, the expiry and that the token was issued for action.
func (s *nonceService) Verify(token, action string) error {
	if token == "" {
		return pkgErrors.ErrMissingNonce
	}

	var claims nonceClaims
	parsed, err := jwt.ParseWithClaims(token, &claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	},
		jwt.WithIssuer(nonceIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return errors.Wrap(pkgErrors.ErrInvalidNonce, err.Error())
	}

	if !parsed.Valid || claims.Action != action {
		return pkgErrors.ErrInvalidNonce
	}

	return nil
}
