package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
)

const (
	ScopePlayer = "player"
	ScopeAdmin  = "admin"
)

type Claims struct {
	SubjectID int64  `json:"subjectId"`
	Scope     string `json:"scope"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies player tokens with one HMAC secret.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// GenerateToken returns a signed player token and its expiry.
func (i *Issuer) GenerateToken(playerID int64) (string, time.Time, error) {
	return i.generate(playerID, ScopePlayer)
}

func (i *Issuer) GenerateAdminToken(adminID int64) (string, time.Time, error) {
	return i.generate(adminID, ScopeAdmin)
}

func (i *Issuer) generate(subjectID int64, scope string) (string, time.Time, error) {
	now := i.now()
	expireAt := now.Add(i.ttl)
	claims := Claims{
		SubjectID: subjectID,
		Scope:     scope,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expireAt),
			IssuedAt:  jwt.NewNumericDate(now),
			Subject:   scope,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expireAt, nil
}

// ParseToken accepts player tokens only.
func (i *Issuer) ParseToken(tokenString string) (*Claims, error) {
	return i.parse(tokenString, ScopePlayer)
}

func (i *Issuer) ParseAdminToken(tokenString string) (*Claims, error) {
	return i.parse(tokenString, ScopeAdmin)
}

func (i *Issuer) parse(tokenString, scope string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Scope != scope {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
