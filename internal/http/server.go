// Package http serves the expenses REST API, the server-rendered web
// frontend, exports and health probes.
package http

import (
	"context"
	"html/template"
	"io/fs"
	"net/http"
	"sync"
	"time"

	"kharcha/internal/client"
	"kharcha/internal/core"
	"kharcha/internal/log"
	"kharcha/internal/middleware/ratelimit"
	"kharcha/internal/middleware/security"
	"kharcha/internal/middleware/trace"
	appweb "kharcha/web"
)

// ExpenseService is what the API handlers need from the service layer.
type ExpenseService interface {
	ListExpenses(ctx context.Context) ([]core.Expense, error)
	CreateExpense(ctx context.Context, e core.Expense) (core.Expense, error)
	UpdateExpense(ctx context.Context, id string, e core.Expense) error
	DeleteExpense(ctx context.Context, id string) error
	Ping(ctx context.Context) error
}

// UIStore is the client state the web frontend renders from.
type UIStore interface {
	State() client.State
	Load(ctx context.Context) error
	Submit(ctx context.Context) error
	Delete(ctx context.Context, id string) error
	Edit(id string) bool
	SetForm(f client.Form)
	CancelEdit()
	SetFilter(category string)
}

type Options struct {
	Addr    string
	Service ExpenseService
	// UI enables the web frontend routes. Leave nil for an API-only server.
	UI                 UIStore
	CORSAllowedOrigins string
	RateLimitPerMinute int
	Logger             *log.Logger
}

type Server struct {
	http.Server
	service   ExpenseService
	ui        UIStore
	templates *template.Template
	limiter   *ratelimit.Limiter
	logger    *log.Logger

	shutdownOnce sync.Once
}

// NewServer configures routes, middleware and templates, returning a
// ready-to-run server.
func NewServer(opts Options) *Server {
	logger := opts.Logger
	if logger == nil {
		logger = log.FromContext(context.Background())
	}

	mux := http.NewServeMux()
	s := &Server{
		Server: http.Server{
			Addr:              opts.Addr,
			ReadTimeout:       10 * time.Second,
			ReadHeaderTimeout: 5 * time.Second,
			WriteTimeout:      15 * time.Second,
			IdleTimeout:       60 * time.Second,
			MaxHeaderBytes:    1 << 16,
		},
		service: opts.Service,
		ui:      opts.UI,
		limiter: ratelimit.NewLimiter(ratelimit.Config{RequestsPerMinute: opts.RateLimitPerMinute}),
		logger:  logger.WithComponent(log.ComponentHTTP),
	}

	t, err := template.ParseFS(appweb.TemplatesFS, "templates/*.html")
	if err != nil {
		s.logger.Warn("Failed parsing templates", log.FieldError, err)
	}
	s.templates = t

	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", security.StaticAssetMiddleware(3600)(static))
	} else {
		s.logger.Warn("Failed to mount embedded static FS", log.FieldError, err)
	}

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /expenses", s.handleListExpenses)
	mux.HandleFunc("POST /expenses", s.handleCreateExpense)
	mux.HandleFunc("PUT /expenses/{id}", s.handleUpdateExpense)
	mux.HandleFunc("DELETE /expenses/{id}", s.handleDeleteExpense)

	mux.HandleFunc("GET /export/{format}", s.handleExport)

	if s.ui != nil {
		mux.HandleFunc("GET /{$}", s.handleIndex)
		mux.HandleFunc("POST /ui/expenses", s.handleUISubmit)
		mux.HandleFunc("POST /ui/expenses/{id}/edit", s.handleUIEdit)
		mux.HandleFunc("POST /ui/expenses/{id}/delete", s.handleUIDelete)
		mux.HandleFunc("POST /ui/filter", s.handleUIFilter)
		mux.HandleFunc("POST /ui/cancel", s.handleUICancel)
	}

	corsOrigins := opts.CORSAllowedOrigins
	if corsOrigins == "" {
		corsOrigins = "*"
	}

	var h http.Handler = mux
	h = s.limiter.Middleware(security.ClientIP, ratelimit.MutatingOnly)(h)
	h = security.NewDetector().Middleware(h)
	h = security.NewHeadersMiddleware(security.DefaultHeadersConfig()).Middleware(h)
	h = security.NewCORSMiddleware(security.CORSConfig{AllowedOrigins: corsOrigins}).Middleware(h)
	h = trace.NewMiddleware(logger, security.ClientIP).Middleware(h)
	s.Handler = h

	return s
}

// Shutdown stops the limiter and drains the HTTP server. Only the first call
// does anything.
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error
	s.shutdownOnce.Do(func() {
		s.limiter.Stop()
		shutdownErr = s.Server.Shutdown(ctx)
	})
	return shutdownErr
}
