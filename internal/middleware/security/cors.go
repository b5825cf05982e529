package security

import (
	"net/http"
	"strings"
)

type CORSConfig struct {
	// AllowedOrigins is a comma separated list, or "*".
	AllowedOrigins string
	AllowedMethods []string
	AllowedHeaders []string
	MaxAge         string
}

func DefaultCORSConfig() CORSConfig {
	return CORSConfig{
		AllowedOrigins: "*",
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept", "X-Request-ID"},
		MaxAge:         "600",
	}
}

// CORSMiddleware lets browser frontends on other origins call the API.
// Preflight requests are answered here and never reach the handler.
type CORSMiddleware struct {
	config  CORSConfig
	any     bool
	origins map[string]bool
}

func NewCORSMiddleware(config CORSConfig) *CORSMiddleware {
	def := DefaultCORSConfig()
	if len(config.AllowedMethods) == 0 {
		config.AllowedMethods = def.AllowedMethods
	}
	if len(config.AllowedHeaders) == 0 {
		config.AllowedHeaders = def.AllowedHeaders
	}
	if config.MaxAge == "" {
		config.MaxAge = def.MaxAge
	}

	m := &CORSMiddleware{config: config, origins: map[string]bool{}}
	for _, o := range strings.Split(config.AllowedOrigins, ",") {
		o = strings.TrimSpace(o)
		switch o {
		case "":
		case "*":
			m.any = true
		default:
			m.origins[o] = true
		}
	}
	return m
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin, or "".
func (m *CORSMiddleware) allowOrigin(origin string) string {
	if m.any {
		return "*"
	}
	if origin != "" && m.origins[origin] {
		return origin
	}
	return ""
}

func (m *CORSMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		if allowed := m.allowOrigin(r.Header.Get("Origin")); allowed != "" {
			h.Set("Access-Control-Allow-Origin", allowed)
			if allowed != "*" {
				h.Add("Vary", "Origin")
			}
		}

		if r.Method == http.MethodOptions {
			h.Set("Access-Control-Allow-Methods", strings.Join(m.config.AllowedMethods, ", "))
			h.Set("Access-Control-Allow-Headers", strings.Join(m.config.AllowedHeaders, ", "))
			h.Set("Access-Control-Max-Age", m.config.MaxAge)
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
