package main

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	errMissingToken = errors.New("missing bearer token")
	errInvalidToken = errors.New("invalid bearer token")
)

// tokenVerifier checks HS256 bearer tokens minted by the identity service.
// The subject claim carries the user's UUID.
type tokenVerifier struct {
	secret   []byte
	issuer   string
	audience string
}

func (v tokenVerifier) verify(raw string) (uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return uuid.Nil, errMissingToken
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}
	if v.audience != "" {
		opts = append(opts, jwt.WithAudience(v.audience))
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, opts...)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", errInvalidToken, err)
	}

	id, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: subject is not a user id", errInvalidToken)
	}
	return id, nil
}

// authMiddleware validates the Bearer token and sets user_id on the context.
func (h *Handler) authMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			apiError(c, http.StatusUnauthorized, "missing or invalid authorization header")
			return
		}

		userID, err := h.verifier.verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			h.log.WithError(err).WithField("path", c.FullPath()).Debug("[authMiddleware] rejected token")
			apiError(c, http.StatusUnauthorized, "invalid token")
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// currentUserID returns the id set by authMiddleware.
func currentUserID(c *gin.Context) uuid.UUID {
	id, _ := c.Get("user_id")
	userID, _ := id.(uuid.UUID)
	return userID
}

// loadProfileOwner fetches the authenticated user and enforces the premium
// gate. It writes the error response itself and returns false on failure.
func (h *Handler) loadProfileOwner(c *gin.Context) (user, bool) {
	userID := currentUserID(c)

	u, err := h.store.GetUser(c.Request.Context(), userID)
	if errors.Is(err, errNotFound) {
		apiError(c, http.StatusNotFound, "user not found")
		return user{}, false
	}
	if err != nil {
		h.log.WithError(err).WithField("user_id", userID).Error("[loadProfileOwner] user lookup failed")
		apiError(c, http.StatusInternalServerError, "failed to load user")
		return user{}, false
	}

	if h.requirePremium && !u.isPremium() {
		apiError(c, http.StatusForbidden, "premium subscription required")
		return user{}, false
	}
	return u, true
}
