package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"match-service/domain"
	"match-service/infra/session"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const identityKey = "identity"

// Identity is the verified caller of a request.
type Identity struct {
	UserID      uuid.UUID
	DisplayName string
}

type SessionStore interface {
	GetTokenTTL(ctx context.Context, token string) (time.Duration, error)
	GetSession(ctx context.Context, token string) (*session.SessionData, error)
}

type AuthConfig struct {
	JWTSecret           string
	TrustGatewayHeaders bool
}

// Claims carried by bearer tokens. Subject is the user id.
type Claims struct {
	Name string `json:"name"`
	jwt.RegisteredClaims
}

// AuthGuard resolves the caller from, in order, a bearer JWT (header or
// "token" query for browsers opening websockets), the "Session" cookie, and
// gateway headers when trusted.
func AuthGuard(cfg AuthConfig, sessions SessionStore) fiber.Handler {
	return func(c *fiber.Ctx) error {
		identity, err := authenticate(c, cfg, sessions)
		if err != nil {
			status := fiber.StatusUnauthorized
			if !errors.Is(err, domain.ErrUnauthorized) {
				zap.L().Error("Authentication backend failed", zap.Error(err))
				status = fiber.StatusServiceUnavailable
			}
			return c.Status(status).JSON(fiber.Map{"error": "unauthorized"})
		}

		c.Locals(identityKey, identity)
		return c.Next()
	}
}

func authenticate(c *fiber.Ctx, cfg AuthConfig, sessions SessionStore) (Identity, error) {
	if token := bearerToken(c); token != "" && cfg.JWTSecret != "" {
		return parseJWT(token, cfg.JWTSecret)
	}

	if token := c.Cookies("Session"); token != "" && sessions != nil {
		return fromSession(c.UserContext(), sessions, token)
	}

	if cfg.TrustGatewayHeaders {
		if raw := c.Get("X-User-Id"); raw != "" {
			userID, err := uuid.Parse(raw)
			if err != nil {
				return Identity{}, fmt.Errorf("%w: invalid X-User-Id", domain.ErrUnauthorized)
			}
			return Identity{UserID: userID, DisplayName: c.Get("X-User-Name")}, nil
		}
	}

	return Identity{}, fmt.Errorf("%w: no credentials", domain.ErrUnauthorized)
}

func bearerToken(c *fiber.Ctx) string {
	if header := c.Get(fiber.HeaderAuthorization); strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return c.Query("token")
}

func parseJWT(token, secret string) (Identity, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return []byte(secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: subject is not a user id", domain.ErrUnauthorized)
	}
	return Identity{UserID: userID, DisplayName: claims.Name}, nil
}

func fromSession(ctx context.Context, sessions SessionStore, token string) (Identity, error) {
	ttl, err := sessions.GetTokenTTL(ctx, token)
	if err != nil {
		return Identity{}, err
	}
	if ttl <= 0 {
		return Identity{}, fmt.Errorf("%w: session expired", domain.ErrUnauthorized)
	}

	data, err := sessions.GetSession(ctx, token)
	if err != nil {
		return Identity{}, err
	}
	userID, err := uuid.Parse(data.UserID)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: malformed session user", domain.ErrUnauthorized)
	}
	return Identity{UserID: userID, DisplayName: data.Username}, nil
}

func CurrentUser(c *fiber.Ctx) (Identity, error) {
	identity, ok := c.Locals(identityKey).(Identity)
	if !ok {
		return Identity{}, domain.ErrUnauthorized
	}
	return identity, nil
}

func CurrentWSUser(c *websocket.Conn) (Identity, error) {
	identity, ok := c.Locals(identityKey).(Identity)
	if !ok {
		return Identity{}, domain.ErrUnauthorized
	}
	return identity, nil
}
