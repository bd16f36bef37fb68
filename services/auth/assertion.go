package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt"
)

// ServiceCredential is the non-interactive identity used to obtain delegated
// calendar access: an email-like principal plus its PEM-encoded RSA key.
// ProjectID identifies the owning cloud project in diagnostics.
type ServiceCredential struct {
	ClientEmail string
	PrivateKey  string
	ProjectID   string
}

// signAssertion builds and signs the JWT-bearer assertion submitted to the
// OAuth token endpoint: RS256 over base64url(header).base64url(claims).
func signAssertion(cred ServiceCredential, scopes []string, audience string, now time.Time) (string, error) {
	key, err := jwt.ParseRSAPrivateKeyFromPEM([]byte(normalizePrivateKey(cred.PrivateKey)))
	if err != nil {
		return "", fmt.Errorf("parse private key: %w", err)
	}

	claims := jwt.MapClaims{
		"iss":   cred.ClientEmail,
		"scope": strings.Join(scopes, " "),
		"aud":   audience,
		"iat":   now.Unix(),
		"exp":   now.Add(TokenLifetime).Unix(),
	}

	assertion, err := jwt.NewWithClaims(jwt.SigningMethodRS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("sign assertion: %w", err)
	}
	return assertion, nil
}

// normalizePrivateKey undoes the escaping applied when the key is supplied
// through a single-line environment variable.
func normalizePrivateKey(pemKey string) string {
	return strings.TrimSpace(strings.ReplaceAll(pemKey, `\n`, "\n"))
}
