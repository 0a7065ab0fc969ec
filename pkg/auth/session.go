package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultEmailClaim is the custom session claim that carries the primary
// email address. Clerk only adds it when the session template asks for it.
const DefaultEmailClaim = "email"

var ErrNoEmail = errors.New("session token has no email claim")

// Claims is what the application needs from a verified session token.
type Claims struct {
	Subject string
	Email   string
	Name    string
}

// Verifier checks RS256 session tokens against a key source.
type Verifier struct {
	keyFunc    jwt.Keyfunc
	issuer     string
	emailClaim string
}

func NewVerifier(keyFunc jwt.Keyfunc, issuer, emailClaim string) *Verifier {
	if emailClaim == "" {
		emailClaim = DefaultEmailClaim
	}
	return &Verifier{keyFunc: keyFunc, issuer: issuer, emailClaim: emailClaim}
}

func (v *Verifier) Verify(tokenString string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{"RS256"}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	token, err := jwt.Parse(tokenString, v.keyFunc, opts...)
	if err != nil {
		return nil, fmt.Errorf("verify session: %w", err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, errors.New("verify session: invalid claims")
	}

	sub, _ := claims["sub"].(string)
	email, _ := claims[v.emailClaim].(string)
	name, _ := claims["name"].(string)
	if email == "" {
		return nil, ErrNoEmail
	}
	return &Claims{Subject: sub, Email: email, Name: name}, nil
}
