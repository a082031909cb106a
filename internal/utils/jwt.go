package utils // package utils provides helper functions for token creation and code generation

import (
    "time" // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// AdminToken represents a signed JWT bearer credential for the admin
// dashboard along with its expiry.  Admin sessions use a single
// medium-lived access token; there is no refresh flow.
type AdminToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewAdminToken builds and signs an HS256 JWT for an admin.  It takes the
// signing secret, the admin's username and a TTL in hours, and returns an
// AdminToken containing the signed token and its expiration time.  The JWT
// carries the username as subject plus standard exp/iat claims.
func NewAdminToken(secret, username string, ttlHours int) (AdminToken, error) {
    now := time.Now().UTC()
    exp := now.Add(time.Duration(ttlHours) * time.Hour)
    claims := jwt.MapClaims{
        "sub": username,
        "exp": exp.Unix(),
        "iat": now.Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AdminToken{}, err
    }
    return AdminToken{Token: signed, Exp: exp}, nil
}
