package service

//go:generate mockgen -destination=../../mocks/mock_token_generator.go -package=mocks github.com/abdulhaleem7/identity-credential-service/internal/identity/service TokenGenerator

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/base64"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const refreshTokenByteLen = 32

type TokenGenerator interface {
	SignAccessToken(claims AccessTokenClaims) (string, error)
	GenerateRefreshToken() (string, error)
	RefreshTokenExpiry() time.Duration
	VerifyAccessToken(tokenString string) (*AccessTokenClaims, error)
}

// AccessTokenClaims carries the two caller-supplied claims of an access
// token: the subject (user id, via RegisteredClaims) and the email. The
// signer fills in issuer, audience, issued-at and expiry.
type AccessTokenClaims struct {
	jwt.RegisteredClaims
	Email string `json:"email"`
}

// TokenService signs access tokens with an RSA private key and mints
// opaque refresh tokens. It holds no mutable state after construction and
// is safe for concurrent use.
type TokenService struct {
	privateKey         *rsa.PrivateKey
	issuer             string
	audience           string
	accessTokenExpiry  time.Duration
	refreshTokenExpiry time.Duration
}

// NewTokenService parses the base64-encoded PKCS#1 private key once. A
// malformed key is a construction error; callers treat it as fatal at
// startup rather than deferring it to request time.
func NewTokenService(encodedKey, issuer, audience string, accessMinutes, refreshMinutes int) (*TokenService, error) {
	der, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("failed to decode signing key: %w", err)
	}

	privateKey, err := x509.ParsePKCS1PrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("failed to parse signing key: %w", err)
	}

	return &TokenService{
		privateKey:         privateKey,
		issuer:             issuer,
		audience:           audience,
		accessTokenExpiry:  time.Duration(accessMinutes) * time.Minute,
		refreshTokenExpiry: time.Duration(refreshMinutes) * time.Minute,
	}, nil
}

// SignAccessToken stamps the standard fields onto the supplied claims and
// signs them with RS256. The subject and email claims are embedded
// unmodified.
func (ts *TokenService) SignAccessToken(claims AccessTokenClaims) (string, error) {
	now := time.Now()

	claims.Issuer = ts.issuer
	claims.Audience = jwt.ClaimStrings{ts.audience}
	claims.IssuedAt = jwt.NewNumericDate(now)
	claims.ExpiresAt = jwt.NewNumericDate(now.Add(ts.accessTokenExpiry))

	return jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(ts.privateKey)
}

// GenerateRefreshToken returns a URL-safe encoding of 32 bytes of secure
// randomness. The result carries no claims and cannot be decoded; it is
// an opaque bearer credential.
func (ts *TokenService) GenerateRefreshToken() (string, error) {
	buf := make([]byte, refreshTokenByteLen)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate refresh token: %w", err)
	}

	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func (ts *TokenService) RefreshTokenExpiry() time.Duration {
	return ts.refreshTokenExpiry
}

// VerifyAccessToken parses and validates an access token against the
// paired public key.
func (ts *TokenService) VerifyAccessToken(tokenString string) (*AccessTokenClaims, error) {
	claims := &AccessTokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodRSA); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return &ts.privateKey.PublicKey, nil
	})

	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}

	return claims, nil
}
