package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/Visithrand/infant-jesus-dvk/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

const claimsKey = "auth_claims"

// Claims defines the JWT payload structure.
type Claims struct {
	Role model.Role `json:"role"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed tokens. The secret is injected
// once at startup; rotating it invalidates every outstanding token.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue creates a signed token carrying the subject and role claims.
func (ts *TokenService) Issue(username string, role model.Role) (string, error) {
	now := time.Now()
	claims := &Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ts.ttl)),
			Issuer:    "infant-jesus-api",
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(ts.secret)
}

// Validate reports whether the token is well formed, signed with our
// secret, unexpired, and issued for the expected subject. Any parse
// failure fails closed.
func (ts *TokenService) Validate(tokenString, expectedSubject string) bool {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return ts.secret, nil
	})
	if err != nil || !token.Valid {
		return false
	}
	return claims.Subject == expectedSubject
}

// Decode extracts the claims without verifying the signature. Use only
// after Validate has succeeded, or to learn the subject before validating.
func (ts *TokenService) Decode(tokenString string) (*Claims, error) {
	claims := &Claims{}
	_, _, err := jwt.NewParser().ParseUnverified(tokenString, claims)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// BearerToken pulls the token out of the Authorization header, or "" when
// the header is absent or malformed.
func BearerToken(c echo.Context) string {
	auth := c.Request().Header.Get("Authorization")
	if auth == "" {
		return ""
	}
	parts := strings.Fields(auth)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// AuthContext attaches verified claims to the request context when a valid
// bearer token is present. Requests without a token (or with a bad one)
// pass through unauthenticated; route guards enforce access downstream.
func (ts *TokenService) AuthContext() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			tokenString := BearerToken(c)
			if tokenString == "" {
				return next(c)
			}
			claims := &Claims{}
			token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
				return ts.secret, nil
			})
			if err == nil && token.Valid {
				c.Set(claimsKey, claims)
			}
			return next(c)
		}
	}
}

// GetClaims returns the claims attached by AuthContext, or nil.
func GetClaims(c echo.Context) *Claims {
	if cl, ok := c.Get(claimsKey).(*Claims); ok {
		return cl
	}
	return nil
}

// RequireAuth rejects requests that did not present a valid token.
func RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if GetClaims(c) == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or missing token"})
		}
		return next(c)
	}
}

// RequireAdmin allows ADMIN and SUPER_ADMIN.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or missing token"})
		}
		switch claims.Role {
		case model.RoleAdmin, model.RoleSuperAdmin:
			return next(c)
		case model.RoleUser:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "admin role required"})
		default:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "admin role required"})
		}
	}
}

// RequireSuperAdmin allows SUPER_ADMIN only.
func RequireSuperAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := GetClaims(c)
		if claims == nil {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or missing token"})
		}
		switch claims.Role {
		case model.RoleSuperAdmin:
			return next(c)
		case model.RoleAdmin, model.RoleUser:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "super admin role required"})
		default:
			return c.JSON(http.StatusForbidden, echo.Map{"error": "super admin role required"})
		}
	}
}
