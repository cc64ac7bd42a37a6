package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

type userIDKey struct{}

// SessionValidator resolves opaque session tokens issued by the auth service.
type SessionValidator interface {
	ValidateSession(ctx context.Context, token string) (string, bool, error)
}

// Authenticator accepts HS256 JWTs signed with the shared secret, falling back
// to session tokens when a SessionValidator is configured.
type Authenticator struct {
	secret   []byte
	sessions SessionValidator
	logger   *zap.Logger
}

func NewAuthenticator(jwtSecret string, sessions SessionValidator, logger *zap.Logger) *Authenticator {
	if logger == nil {
		logger = zap.NewNop()
	}
	a := &Authenticator{sessions: sessions, logger: logger}
	if jwtSecret != "" {
		a.secret = []byte(jwtSecret)
	}
	return a
}

// Middleware rejects the request with 401 unless it carries a valid bearer token.
func (a *Authenticator) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := extractBearerToken(r.Header.Get("Authorization"))
		if token == "" {
			notAuthorized(w)
			return
		}

		userID, ok := a.authenticate(r.Context(), token)
		if !ok {
			notAuthorized(w)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
	})
}

func (a *Authenticator) authenticate(ctx context.Context, token string) (string, bool) {
	if a.secret != nil {
		if userID, err := a.parseJWT(token); err == nil {
			return userID, true
		}
	}
	if a.sessions == nil {
		return "", false
	}
	userID, ok, err := a.sessions.ValidateSession(ctx, token)
	if err != nil {
		a.logger.Warn("session lookup failed", zap.Error(err))
		return "", false
	}
	return userID, ok
}

func (a *Authenticator) parseJWT(tokenString string) (string, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return a.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return "", err
	}

	// Tokens from the auth service carry "id"; standard issuers use "sub".
	if id, ok := claims["id"].(string); ok && id != "" {
		return id, nil
	}
	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return "", jwt.ErrTokenInvalidClaims
	}
	return sub, nil
}

// WithUserID returns a copy of ctx carrying the authenticated user ID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the user ID set by the auth middleware.
func UserIDFromContext(ctx context.Context) (string, bool) {
	userID, ok := ctx.Value(userIDKey{}).(string)
	return userID, ok && userID != ""
}

func extractBearerToken(header string) string {
	const prefix = "Bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func notAuthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": "Not authorized"})
}
