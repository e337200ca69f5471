package router

import (
	"context"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/huddleup/teamfeed/internal/account"
	accountrepo "github.com/huddleup/teamfeed/internal/account/repo"
	"github.com/huddleup/teamfeed/internal/follow"
	followrepo "github.com/huddleup/teamfeed/internal/follow/repo"
	"github.com/huddleup/teamfeed/internal/post"
	postrepo "github.com/huddleup/teamfeed/internal/post/repo"
	"github.com/huddleup/teamfeed/internal/profile"
	profilerepo "github.com/huddleup/teamfeed/internal/profile/repo"
	"github.com/huddleup/teamfeed/internal/team"
	teamrepo "github.com/huddleup/teamfeed/internal/team/repo"
)

// loggingResponseWriter wraps http.ResponseWriter to capture status and size.
type loggingResponseWriter struct {
	http.ResponseWriter
	status int
	size   int
}

func (lrw *loggingResponseWriter) WriteHeader(code int) {
	lrw.status = code
	lrw.ResponseWriter.WriteHeader(code)
}

func (lrw *loggingResponseWriter) Write(b []byte) (int, error) {
	if lrw.status == 0 {
		lrw.status = http.StatusOK
	}
	n, err := lrw.ResponseWriter.Write(b)
	lrw.size += n
	return n, err
}

// LoggingMiddleware returns a middleware that logs requests at debug level using the provided sugared logger.
func LoggingMiddleware(logger *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			lrw := &loggingResponseWriter{ResponseWriter: w}
			next.ServeHTTP(lrw, r)
			dur := time.Since(start)
			status := lrw.status
			if status == 0 {
				status = http.StatusOK
			}
			logger.Debugw("http request",
				"method", r.Method,
				"path", r.URL.Path,
				"remote", r.RemoteAddr,
				"status", status,
				"duration_ms", float64(dur.Microseconds())/1000.0,
				"size", lrw.size,
			)
		})
	}
}

// SecurityHeadersMiddleware returns a middleware that sets common HTTP security headers.
func SecurityHeadersMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			w.Header().Set("X-Frame-Options", "DENY")
			w.Header().Set("Referrer-Policy", "no-referrer-when-downgrade")
			w.Header().Set("Permissions-Policy", "camera=(), microphone=(), geolocation=()")
			if w.Header().Get("Content-Security-Policy") == "" {
				w.Header().Set("Content-Security-Policy", "default-src 'self'; object-src 'none'; base-uri 'self';")
			}
			if r.TLS != nil {
				w.Header().Set("Strict-Transport-Security", "max-age=2592000; includeSubDomains")
			}
			next.ServeHTTP(w, r)
		})
	}
}

// EnsureSchema creates all tables in dependency order (accounts and
// teams first, then the tables referencing them). Idempotent; meant to
// run once at startup. Prefer migrations in production.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if err := accountrepo.NewAccountRepo(db).EnsureTable(ctx); err != nil {
		return err
	}
	if err := teamrepo.NewTeamRepo(db).EnsureTable(ctx); err != nil {
		return err
	}
	if err := profilerepo.NewProfileRepo(db).EnsureTable(ctx); err != nil {
		return err
	}
	if err := accountrepo.NewSessionRepo(db).EnsureTable(ctx); err != nil {
		return err
	}
	if err := postrepo.NewPostRepo(db).EnsureTable(ctx); err != nil {
		return err
	}
	return followrepo.NewFollowRepo(db).EnsureTable(ctx)
}

// RegisterRoutes wires repositories, services and handlers and mounts
// them on the standard library's http.ServeMux.
func RegisterRoutes(logger *zap.SugaredLogger, db *sqlx.DB, jwtSecret []byte) http.Handler {
	mux := http.NewServeMux()

	resolver := profile.NewResolver(profilerepo.NewProfileRepo(db))

	accountSvc := account.NewService(accountrepo.NewAccountRepo(db), accountrepo.NewSessionRepo(db), nil, jwtSecret)
	accountHandler := account.NewHandler(accountSvc, logger)

	postHandler := post.NewHandler(post.NewService(postrepo.NewPostRepo(db), resolver), logger)
	followHandler := follow.NewHandler(follow.NewService(followrepo.NewFollowRepo(db), resolver), logger)
	teamHandler := team.NewHandler(team.NewService(teamrepo.NewTeamRepo(db), resolver), logger)

	// health
	mux.HandleFunc("GET /teamfeed-api/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// auth
	mux.HandleFunc("POST /teamfeed-api/auth/signup", accountHandler.Signup)
	mux.HandleFunc("POST /teamfeed-api/auth/login", accountHandler.Login)
	mux.HandleFunc("POST /teamfeed-api/auth/refresh", accountHandler.Refresh)
	mux.HandleFunc("POST /teamfeed-api/auth/logout", accountHandler.Logout)

	// feed and posts
	mux.HandleFunc("GET /teamfeed-api/feed", postHandler.GlobalFeed)
	mux.HandleFunc("POST /teamfeed-api/posts", postHandler.Create)

	// teams
	mux.HandleFunc("GET /teamfeed-api/teams", teamHandler.List)
	mux.HandleFunc("GET /teamfeed-api/teams/{id}", teamHandler.Get)
	mux.HandleFunc("GET /teamfeed-api/teams/{id}/posts", postHandler.TeamFeed)

	// follow graph
	mux.HandleFunc("POST /teamfeed-api/teams/{id}/follow", followHandler.Follow)
	mux.HandleFunc("DELETE /teamfeed-api/teams/{id}/follow", followHandler.Unfollow)
	mux.HandleFunc("GET /teamfeed-api/teams/{id}/follow", followHandler.IsFollowing)
	mux.HandleFunc("GET /teamfeed-api/teams/{id}/followers/count", followHandler.FollowerCount)
	mux.HandleFunc("GET /teamfeed-api/teams/{id}/following/count", followHandler.FollowingCount)

	// caller-scoped reads
	mux.HandleFunc("GET /teamfeed-api/me/team", teamHandler.MyTeam)
	mux.HandleFunc("GET /teamfeed-api/me/following", followHandler.Following)

	// identity extraction runs innermost so handlers see the account id;
	// security headers and request logging wrap the whole chain
	handler := account.Middleware(accountSvc, logger)(mux)
	handler = LoggingMiddleware(logger)(SecurityHeadersMiddleware()(handler))
	return handler
}
