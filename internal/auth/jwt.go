package auth

import (
	"crypto"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// Claims are carried by access token
type Claims struct {
	jwt.RegisteredClaims
	Roles []string `json:"roles,omitempty"`
}

// HasAnyRole reports whether claims hold at least one of roles
func (c Claims) HasAnyRole(roles ...string) bool {
	for _, want := range roles {
		for _, have := range c.Roles {
			if want == have {
				return true
			}
		}
	}
	return false
}

// AccessToken is signed jwt with its unix expiration time
type AccessToken struct {
	Signed    string
	ExpiresAt int64
}

// Signer issues access tokens
type Signer struct {
	issuer     string
	method     jwt.SigningMethod
	timeToLive time.Duration
	privateKey crypto.PrivateKey
}

func NewSigner(issuer string, method jwt.SigningMethod, ttl time.Duration, key crypto.PrivateKey) *Signer {
	return &Signer{
		issuer:     issuer,
		method:     method,
		timeToLive: ttl,
		privateKey: key,
	}
}

// Sign issues access token for subject holding roles
func (s *Signer) Sign(subj string, roles []string, issuedAt time.Time) (*AccessToken, error) {
	expiresAt := issuedAt.Add(s.timeToLive)

	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Issuer:    s.issuer,
			Subject:   subj,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
		Roles: roles,
	}

	signed, err := jwt.NewWithClaims(s.method, claims).SignedString(s.privateKey)
	if err != nil {
		return nil, err
	}

	return &AccessToken{Signed: signed, ExpiresAt: expiresAt.Unix()}, nil
}

// Verifier accepts tokens of single issuer signed by its key pair
type Verifier struct {
	issuer    string
	parser    *jwt.Parser
	publicKey crypto.PublicKey
}

func NewVerifier(issuer string, method jwt.SigningMethod, key crypto.PublicKey) *Verifier {
	return &Verifier{
		issuer:    issuer,
		parser:    jwt.NewParser(jwt.WithValidMethods([]string{method.Alg()})),
		publicKey: key,
	}
}

// Verify checks signature, expiration and issuer of raw token
func (v *Verifier) Verify(rawToken string) (Claims, error) {
	var claims Claims
	if _, err := v.parser.ParseWithClaims(rawToken, &claims, v.keyFunc); err != nil {
		return Claims{}, err
	}

	if !claims.VerifyIssuer(v.issuer, true) {
		return Claims{}, errors.New("token was issued by unknown party")
	}
	return claims, nil
}

func (v *Verifier) keyFunc(*jwt.Token) (any, error) {
	return v.publicKey, nil
}
