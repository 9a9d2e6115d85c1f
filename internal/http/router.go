// Package httpapi wires the HTTP transport (Gin) to application services,
// middleware, and route handlers. It centralizes cross-cutting concerns:
// tracing, correlation IDs, structured logging, panic recovery, metrics,
// CORS, compression, and rate limiting.
//
// Middleware order matters:
//  1. OpenTelemetry: trace everything
//  2. RequestID: generate/propagate correlation id
//  3. Logger: structured access logs
//  4. Recovery: capture panics after logger
//  5. Security headers, body size limiter
//  6. Metrics
//  7. Rate limiter (per user/IP)
//  8. CORS, gzip
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"gorm.io/gorm"

	"github.com/spacenote/spacenote/internal/config"
	"github.com/spacenote/spacenote/internal/domain"
	"github.com/spacenote/spacenote/internal/http/handlers"
	"github.com/spacenote/spacenote/internal/http/middleware"
	"github.com/spacenote/spacenote/internal/repo"
	"github.com/spacenote/spacenote/internal/sequence"
	"github.com/spacenote/spacenote/internal/services"
)

// noteRepoShim adapts the repository free functions to the services.NoteRepo
// interface expected by the NoteService. This keeps services decoupled from
// the concrete repo package while reusing existing functions.
type noteRepoShim struct{}

// CreateNote proxies repo.CreateNote.
func (noteRepoShim) CreateNote(ctx context.Context, db *gorm.DB, n *domain.Note) error {
	return repo.CreateNote(ctx, db, n)
}

// GetNote proxies repo.GetNote.
func (noteRepoShim) GetNote(ctx context.Context, db *gorm.DB, spaceSlug string, number int64) (*domain.Note, error) {
	return repo.GetNote(ctx, db, spaceSlug, number)
}

// CountNotes proxies repo.CountNotes.
func (noteRepoShim) CountNotes(ctx context.Context, db *gorm.DB, spaceSlug string) (int64, error) {
	return repo.CountNotes(ctx, db, spaceSlug)
}

// ListNotesPage proxies repo.ListNotesPage.
func (noteRepoShim) ListNotesPage(ctx context.Context, db *gorm.DB, spaceSlug string, offset, limit int) ([]domain.Note, error) {
	return repo.ListNotesPage(ctx, db, spaceSlug, offset, limit)
}

// SearchNotes proxies repo.SearchNotes.
func (noteRepoShim) SearchNotes(ctx context.Context, db *gorm.DB, spaceSlug string, filter map[string]any, order string, offset, limit int) ([]domain.Note, int64, error) {
	return repo.SearchNotes(ctx, db, spaceSlug, filter, order, offset, limit)
}

// commentRepoShim adapts the repository free functions to the
// services.CommentRepo interface.
type commentRepoShim struct{}

// CreateComment proxies repo.CreateComment.
func (commentRepoShim) CreateComment(ctx context.Context, db *gorm.DB, c *domain.Comment) error {
	return repo.CreateComment(ctx, db, c)
}

// CountComments proxies repo.CountComments.
func (commentRepoShim) CountComments(ctx context.Context, db *gorm.DB, spaceSlug string, noteNumber int64) (int64, error) {
	return repo.CountComments(ctx, db, spaceSlug, noteNumber)
}

// ListCommentsPage proxies repo.ListCommentsPage.
func (commentRepoShim) ListCommentsPage(ctx context.Context, db *gorm.DB, spaceSlug string, noteNumber int64, offset, limit int) ([]domain.Comment, error) {
	return repo.ListCommentsPage(ctx, db, spaceSlug, noteNumber, offset, limit)
}

// App bundles the application services behind the HTTP API. Construct with
// NewApp, call Start once before serving, then RegisterRoutes.
type App struct {
	Users    *services.UserService
	Spaces   *services.SpaceService
	Notes    *services.NoteService
	Comments *services.CommentService
}

// NewApp wires services over the database handle: the per-scope sequence
// allocator, the cached user and space services, and the note and comment
// services using the repository shims.
func NewApp(db *gorm.DB, cfg config.Config) *App {
	seq := sequence.NewAllocator(db)

	users := services.NewUserService(db)
	if cfg.AdminToken != "" {
		users.AdminToken = cfg.AdminToken
	}
	spaces := services.NewSpaceService(db, users)
	notes := services.NewNoteService(db, noteRepoShim{}, spaces, seq)
	comments := services.NewCommentService(db, commentRepoShim{}, notes, seq)

	return &App{Users: users, Spaces: spaces, Notes: notes, Comments: comments}
}

// Start loads the user and space caches and ensures the bootstrap admin
// account exists. No request may be served before Start returns: after
// startup, no caller may observe an empty cache.
func (a *App) Start(ctx context.Context) error {
	if err := a.Users.Start(ctx); err != nil {
		return err
	}
	return a.Spaces.Start(ctx)
}

// RegisterRoutes attaches all middleware and HTTP endpoints to the given
// Gin engine: observability, rate limiting, CORS, compression, health and
// metrics endpoints, and the versioned public API guarded by bearer-token
// authentication.
func RegisterRoutes(r *gin.Engine, app *App, cfg config.Config) {
	r.HandleMethodNotAllowed = true

	// 1) Trace all HTTP requests
	r.Use(otelgin.Middleware(cfg.OTEL.ServiceName))

	// 2) Correlate requests and logs
	r.Use(middleware.RequestID())

	// 3) Structured access logging
	r.Use(middleware.Logger())

	// 4) Panic recovery to JSON 500 (with request id)
	r.Use(middleware.Recovery())

	// 5) Security headers and global body size limit (1 MiB)
	r.Use(middleware.SecurityHeaders())
	r.Use(limitBody(1 << 20))

	// 6) Prometheus metrics and /metrics endpoint
	r.Use(middleware.Metrics())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// 7) Token-bucket rate limiter per user/IP
	rl := middleware.NewRateLimiter(cfg.RateRPS, cfg.RateBurst, middleware.KeyByUsernameOrIP())
	r.Use(rl.Handler())

	// 8) CORS posture (allow all if none configured) and compression
	corsCfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"X-Request-ID", "Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORS.AllowedOrigins
	}
	r.Use(cors.New(corsCfg))
	r.Use(gzip.Gzip(gzip.DefaultCompression))

	// Fallbacks
	r.NoRoute(func(c *gin.Context) {
		handlers.Fail(c, http.StatusNotFound, handlers.ErrCodeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		handlers.Fail(c, http.StatusMethodNotAllowed, handlers.ErrCodeMethodNotAllowed, "method not allowed")
	})

	// Liveness/health
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })

	h := handlers.New(app.Users, app.Spaces, app.Notes, app.Comments)

	// Public API, bearer-token authenticated
	api := groupWithPrefix(r, cfg.APIBasePath)
	api.Use(middleware.Auth(app.Users))
	{
		// Users
		api.GET("/users/me", h.Me)
		api.GET("/users", h.ListUsers)
		api.POST("/users", h.CreateUser)
		api.DELETE("/users/:username", h.DeleteUser)

		// Spaces
		api.GET("/spaces", h.ListSpaces)
		api.POST("/spaces", h.CreateSpace)
		api.GET("/spaces/:slug", h.GetSpace)
		api.GET("/spaces/:slug/stats", h.SpaceStats)
		api.POST("/spaces/:slug/members", h.AddMember)
		api.POST("/spaces/:slug/fields", h.AddField)

		// Notes
		api.POST("/spaces/:slug/notes", h.CreateNote)
		api.GET("/spaces/:slug/notes", h.ListNotes)
		api.POST("/spaces/:slug/notes/search", h.SearchNotes)
		api.GET("/spaces/:slug/notes/:number", h.GetNote)

		// Comments
		api.POST("/spaces/:slug/notes/:number/comments", h.CreateComment)
		api.GET("/spaces/:slug/notes/:number/comments", h.ListComments)
	}
}

// limitBody returns a Gin middleware that caps the request body size for
// all endpoints to maxBytes using http.MaxBytesReader.
func limitBody(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}

// groupWithPrefix mounts a group at prefix, treating "/" (or empty) as root.
func groupWithPrefix(r *gin.Engine, prefix string) *gin.RouterGroup {
	if prefix == "" || prefix == "/" {
		return r.Group("")
	}
	return r.Group(prefix)
}
