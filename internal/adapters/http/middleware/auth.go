package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/social-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/social-quotes/internal/platform/config"
	"github.com/jsamuelsen/social-quotes/internal/platform/logging"
)

const (
	// ContextKeyPrincipal is the gin context key for the verified principal.
	ContextKeyPrincipal = "principal"

	bearerPrefix = "Bearer "
)

type principalCtxKey struct{}

// Principal is the authenticated identity attached to a request after
// the bearer credential verifies. The gate is stateless: nothing is
// persisted, and handler logic never runs without a principal on
// protected routes.
type Principal struct {
	// Subject is the identifying subject from the credential.
	Subject string

	// Name is the display name, when the credential carries one.
	Name string
}

// tokenClaims is the expected JWT payload: registered claims plus the
// user object the issuer embeds.
type tokenClaims struct {
	User struct {
		Username string `json:"username"`
		Name     string `json:"name"`
	} `json:"user"`
	jwt.RegisteredClaims
}

// RequireAuth returns the authorization gate. It extracts the bearer
// credential from the Authorization header, verifies the HS256
// signature against the shared secret and the expiry, and attaches the
// principal to the gin and request contexts. Any failure - missing
// header, malformed credential, bad signature, expiry - short-circuits
// with an opaque 401 before the handler runs.
func RequireAuth(cfg *config.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, err := VerifyRequest(c.Request, cfg)
		if err != nil {
			logger := logging.FromContext(c.Request.Context())
			logger.Warn("rejected credential",
				slog.String("path", c.Request.URL.Path),
				slog.Any("error", err),
			)

			abortWithUnauthorized(c)

			return
		}

		c.Set(ContextKeyPrincipal, principal)
		c.Request = c.Request.WithContext(
			WithPrincipal(c.Request.Context(), principal),
		)

		c.Next()
	}
}

// VerifyRequest validates the request's bearer credential and returns
// the principal it asserts. Pure with respect to the request: no
// mutation, no persistence.
func VerifyRequest(r *http.Request, cfg *config.AuthConfig) (*Principal, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, errMissingCredential
	}

	if !strings.HasPrefix(header, bearerPrefix) {
		return nil, errMalformedCredential
	}

	raw := strings.TrimPrefix(header, bearerPrefix)

	claims := &tokenClaims{}

	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		// Only the configured HMAC scheme is acceptable; anything else
		// (including alg=none) is a forgery attempt.
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errUnexpectedSigningMethod
		}

		return []byte(cfg.Secret), nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, err
	}

	if !token.Valid {
		return nil, errInvalidCredential
	}

	subject := claims.Subject
	if subject == "" {
		subject = claims.User.Username
	}

	if subject == "" {
		return nil, errMissingSubject
	}

	return &Principal{
		Subject: subject,
		Name:    claims.User.Name,
	}, nil
}

// GetPrincipal retrieves the principal from the gin context.
// Returns nil if the gate did not run or rejected the request.
func GetPrincipal(c *gin.Context) *Principal {
	if v, exists := c.Get(ContextKeyPrincipal); exists {
		if p, ok := v.(*Principal); ok {
			return p
		}
	}

	return nil
}

// WithPrincipal stores the principal in the request context.
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalCtxKey{}, p)
}

// PrincipalFromContext extracts the principal from a request context.
func PrincipalFromContext(ctx context.Context) *Principal {
	if p, ok := ctx.Value(principalCtxKey{}).(*Principal); ok {
		return p
	}

	return nil
}

// abortWithUnauthorized writes the opaque 401 denial. The body never
// says why the credential failed.
func abortWithUnauthorized(c *gin.Context) {
	errResp := dto.NewUnauthorizedResponse()

	if span := trace.SpanFromContext(c.Request.Context()); span.SpanContext().HasTraceID() {
		errResp.TraceID = span.SpanContext().TraceID().String()
	}

	c.AbortWithStatusJSON(http.StatusUnauthorized, errResp)
}
