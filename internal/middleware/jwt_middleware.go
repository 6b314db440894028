package middleware

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// Claims defines JWT payload structure
type Claims struct {
	UserID  string `json:"user_id"`
	Email   string `json:"email"`
	Role    string `json:"role"`
	Purpose string `json:"purpose,omitempty"` // "magic_link" on bootstrap artifacts
	jwt.RegisteredClaims
}

const (
	purposeSession   = "session"
	purposeMagicLink = "magic_link"

	// MagicLinkTTL bounds how long a bootstrap artifact stays exchangeable.
	MagicLinkTTL = 5 * time.Minute
)

var jwtSecret = []byte("dev-secret-please-change")

// Init sets the signing secret from the injected config. Call once in main
// before any token is issued.
func Init(secret string) {
	if secret != "" {
		jwtSecret = []byte(secret)
	}
}

// GenerateToken creates a signed session token for the given user details
// and expiry (in hours)
func GenerateToken(userID, email, role string, hours int) (string, error) {
	claims := &Claims{
		UserID:  userID,
		Email:   email,
		Role:    role,
		Purpose: purposeSession,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Duration(hours) * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "pork-chop-emporium",
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(jwtSecret)
}

// GenerateMagicLink creates the one-time sign-in artifact handed out after a
// successful PIN verification. It carries no role; the exchange endpoint
// looks that up.
func GenerateMagicLink(userID, email string) (string, time.Time, error) {
	expiresAt := time.Now().Add(MagicLinkTTL)
	claims := &Claims{
		UserID:  userID,
		Email:   email,
		Purpose: purposeMagicLink,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			Issuer:    "pork-chop-emporium",
			ID:        uuid.NewString(),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(jwtSecret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// ParseMagicLink validates a bootstrap artifact and returns its claims.
// Session tokens are rejected here so they cannot be replayed as links.
func ParseMagicLink(tokenString string) (*Claims, error) {
	claims, err := parse(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.Purpose != purposeMagicLink {
		return nil, errors.New("not a magic-link token")
	}
	return claims, nil
}

func parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return jwtSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.New("invalid or expired token")
	}
	claims, ok := token.Claims.(*Claims)
	if !ok {
		return nil, errors.New("invalid token claims")
	}
	return claims, nil
}

// JWTMiddleware returns an Echo middleware that validates the session token
// and sets the claims on the request context
func JWTMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if auth == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing authorization header"})
			}
			parts := strings.Fields(auth)
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid authorization header"})
			}
			claims, err := parse(parts[1])
			if err != nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
			}
			// magic-link artifacts only work at the exchange endpoint
			if claims.Purpose == purposeMagicLink {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "token must be exchanged for a session first"})
			}
			c.Set("auth_claims", claims)
			return next(c)
		}
	}
}

// GetClaims extracts claims set by JWTMiddleware
func GetClaims(c echo.Context) *Claims {
	v := c.Get("auth_claims")
	if v == nil {
		return nil
	}
	if cl, ok := v.(*Claims); ok {
		return cl
	}
	return nil
}

// AdminOnly middleware requires role == admin
func AdminOnly(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims := GetClaims(c)
		if claims == nil || claims.Role != "admin" {
			return c.JSON(http.StatusForbidden, map[string]string{"error": "admin role required"})
		}
		return next(c)
	}
}
