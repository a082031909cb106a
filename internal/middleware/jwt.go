package middleware // middleware contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/golang-jwt/jwt/v5" // JWT library for parsing and validating tokens
    "github.com/labstack/echo/v4"  // Echo framework used for defining middleware and handlers
)

// AdminAuth returns an Echo middleware that validates a Bearer admin token
// and injects the token's subject (the admin username) into the request
// context under "admin_username".  The provided secret must match the one
// used when issuing tokens.  Requests without a valid bearer token are
// rejected with 401; structurally valid tokens that fail verification get
// 403, matching the error taxonomy of the admin surface.
func AdminAuth(secret string) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            auth := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(auth, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(auth, "Bearer ")

            tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
                // Only HS256-family tokens are ever issued; reject anything else.
                if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
                    return nil, echo.ErrUnauthorized
                }
                return []byte(secret), nil
            })
            if err != nil || !tok.Valid {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid token"})
            }

            claims, ok := tok.Claims.(jwt.MapClaims)
            if !ok {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid claims"})
            }
            username, _ := claims["sub"].(string)
            if username == "" {
                return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid claims"})
            }

            c.Set("admin_username", username)
            return next(c)
        }
    }
}

// AdminUsername extracts the authenticated admin username stored by
// AdminAuth.  It returns an empty string when the middleware did not run.
func AdminUsername(c echo.Context) string {
    if v, ok := c.Get("admin_username").(string); ok {
        return v
    }
    return ""
}
