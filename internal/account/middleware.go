package account

import (
	"context"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

type ctxKey struct{}

// WithAccountID returns a context carrying the proven account id.
func WithAccountID(ctx context.Context, accountID string) context.Context {
	return context.WithValue(ctx, ctxKey{}, accountID)
}

// AccountID returns the proven account id from the context, or "" when
// the request carried no valid identity. Public reads work either way;
// the services decide what "" means per operation.
func AccountID(ctx context.Context) string {
	id, _ := ctx.Value(ctxKey{}).(string)
	return id
}

// Middleware extracts a bearer access token, verifies it and stores the
// account id in the request context. A missing or invalid token leaves
// the context without an identity instead of failing the request, so
// the same chain serves both public and authenticated routes.
func Middleware(svc *Service, logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			auth := r.Header.Get("Authorization")
			if strings.HasPrefix(strings.ToLower(auth), "bearer ") {
				token := strings.TrimSpace(auth[len("bearer "):])
				if id, err := svc.VerifyAccessToken(token); err == nil {
					r = r.WithContext(WithAccountID(r.Context(), id))
				} else {
					logger.Debugw("bearer token rejected", "err", err)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
