package web

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ainutools/ainconv/internal/db"
	"github.com/ainutools/ainconv/internal/web/handlers"
	"github.com/ainutools/ainconv/internal/web/middleware"
)

const maxBodyBytes = 64 << 10

type Config struct {
	// AdminAPIKey guards the lexicon write routes. Empty disables them.
	AdminAPIKey string
	// RateLimit is the number of requests per minute allowed per client IP.
	RateLimit int
}

type Router struct {
	conv   handlers.Converter
	repo   db.Repository
	log    *slog.Logger
	config Config
}

func NewRouter(conv handlers.Converter, repo db.Repository, log *slog.Logger, config Config) *Router {
	return &Router{
		conv:   conv,
		repo:   repo,
		log:    log,
		config: config,
	}
}

// Handler builds the API handler. The rate limiter's cleanup goroutine
// stops when done is closed.
func (r *Router) Handler(done <-chan struct{}) http.Handler {
	mux := http.NewServeMux()

	convertHandler := handlers.NewConvertHandler(r.conv, r.log)
	lexiconHandler := handlers.NewLexiconHandler(r.repo, r.log)

	rateLimiter := middleware.NewRateLimiter(max(r.config.RateLimit, 1), time.Minute, done)

	read := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h,
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(rateLimiter),
			middleware.CacheControl("public, max-age=60"),
		)
	}
	write := func(h http.HandlerFunc) http.Handler {
		return middleware.Chain(h,
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(rateLimiter),
			middleware.APIKeyAuth(r.config.AdminAPIKey),
			middleware.MaxBody(maxBodyBytes),
		)
	}

	mux.Handle("POST /api/v1/convert",
		middleware.Chain(
			http.HandlerFunc(convertHandler.Convert),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(rateLimiter),
			middleware.MaxBody(maxBodyBytes),
		),
	)
	mux.Handle("GET /api/v1/detect", read(convertHandler.Detect))
	mux.Handle("GET /api/v1/syllables", read(convertHandler.Syllables))

	mux.Handle("GET /api/v1/lexicon",
		middleware.Chain(
			http.HandlerFunc(lexiconHandler.List),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(rateLimiter),
			middleware.CacheControl("public, s-maxage=5, max-age=0"),
		),
	)
	mux.Handle("GET /api/v1/lexicon/{latn}",
		middleware.Chain(
			http.HandlerFunc(lexiconHandler.Get),
			middleware.PrometheusMetrics(),
			middleware.RequestLogger(r.log),
			middleware.RateLimit(rateLimiter),
			middleware.CacheControl("public, s-maxage=5, max-age=0"),
		),
	)
	mux.Handle("POST /api/v1/lexicon", write(lexiconHandler.Create))
	mux.Handle("DELETE /api/v1/lexicon/{latn}", write(lexiconHandler.Delete))

	return middleware.CORS(mux)
}
