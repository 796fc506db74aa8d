package http

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"cartao/internal/cache"
	"cartao/internal/ledger"
	applog "cartao/internal/log"
	appweb "cartao/web"
)

type Server struct {
	http.Server
	ledger      *ledger.Service
	rateLimiter *rateLimiter
	httpLogger  *applog.Logger

	// Dashboard projections are rebuilt from the full record set, so cache
	// them briefly and drop the cache on every mutation.
	dashboardCache *cache.LRUCache[ledger.DashboardSummary]

	cacheManager *cache.Manager
	shutdownOnce sync.Once
}

// Simple in-memory rate limiter
type rateLimiter struct {
	mu           sync.Mutex
	clients      map[string]*clientInfo
	stopCleanup  chan struct{}
	shutdownOnce sync.Once
}

type clientInfo struct {
	lastRequest time.Time
	requests    int
}

func newRateLimiter() *rateLimiter {
	rl := &rateLimiter{
		clients:     make(map[string]*clientInfo),
		stopCleanup: make(chan struct{}),
	}
	go rl.startCleanup()
	return rl
}

// startCleanup runs periodic cleanup to remove stale client entries
func (rl *rateLimiter) startCleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			rl.cleanupStaleEntries()
		case <-rl.stopCleanup:
			return
		}
	}
}

// cleanupStaleEntries removes client entries older than 10 minutes
func (rl *rateLimiter) cleanupStaleEntries() {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	cutoff := time.Now().Add(-10 * time.Minute)
	for ip, client := range rl.clients {
		if client.lastRequest.Before(cutoff) {
			delete(rl.clients, ip)
		}
	}
}

// stop gracefully shuts down the rate limiter cleanup goroutine
func (rl *rateLimiter) stop() {
	rl.shutdownOnce.Do(func() {
		if rl.stopCleanup != nil {
			close(rl.stopCleanup)
		}
	})
}

func (rl *rateLimiter) allow(clientIP string) bool {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := time.Now()
	client, exists := rl.clients[clientIP]

	if !exists {
		rl.clients[clientIP] = &clientInfo{
			lastRequest: now,
			requests:    1,
		}
		return true
	}

	// Reset counter if more than 1 minute has passed
	if now.Sub(client.lastRequest) > time.Minute {
		client.requests = 1
		client.lastRequest = now
		return true
	}

	// Allow up to 60 requests per minute
	client.requests++
	client.lastRequest = now

	return client.requests <= 60
}

// NewServer configures routes and the embedded web shell, returning a
// ready-to-run http.Server.
func NewServer(addr string, svc *ledger.Service) *Server {
	mux := http.NewServeMux()

	logCfg := applog.DefaultConfig()
	logCfg.Component = applog.ComponentHTTP
	httpLogger := applog.New(logCfg)

	s := &Server{
		Server: http.Server{
			Addr: addr,
			// The log middleware seeds every request context with the
			// HTTP logger so deeper layers pick it up via FromContext.
			Handler: applog.Middleware(httpLogger)(mux),
		},
		ledger:         svc,
		rateLimiter:    newRateLimiter(),
		httpLogger:     httpLogger,
		dashboardCache: cache.NewLRUCache[ledger.DashboardSummary](10, time.Minute),
		cacheManager:   cache.NewManager(),
	}

	s.cacheManager.Register(s.dashboardCache)
	s.cacheManager.StartCleanup(10 * time.Minute)

	// Static assets and offline shell (served from embedded FS)
	if sub, err := fs.Sub(appweb.StaticFS, "static"); err == nil {
		static := http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
		mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Tiny cache for static assets
			w.Header().Set("Cache-Control", "public, max-age=3600, immutable")
			static.ServeHTTP(w, r)
		}))
		// The service worker must be served from the root scope so it can
		// control the whole app.
		mux.HandleFunc("GET /service-worker.js", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/javascript; charset=utf-8")
			w.Header().Set("Cache-Control", "no-cache")
			http.ServeFileFS(w, r, sub, "service-worker.js")
		})
		mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
			http.ServeFileFS(w, r, sub, "index.html")
		})
	} else {
		slog.Warn("Failed to mount embedded static FS", "error", err)
	}

	mux.HandleFunc("GET /healthz", handleHealth)
	mux.HandleFunc("GET /readyz", handleReady)

	// Cards
	mux.HandleFunc("GET /api/cards", s.withSecurityHeaders(s.handleListCards))
	mux.HandleFunc("POST /api/cards", s.withSecurityHeaders(s.handleCreateCard))
	mux.HandleFunc("GET /api/cards/{id}", s.withSecurityHeaders(s.handleGetCard))
	mux.HandleFunc("PUT /api/cards/{id}", s.withSecurityHeaders(s.handleUpdateCard))
	mux.HandleFunc("DELETE /api/cards/{id}", s.withSecurityHeaders(s.handleDeleteCard))

	// Purchases (installment groups)
	mux.HandleFunc("POST /api/purchases", s.withSecurityHeaders(s.handleLaunchPurchase))
	mux.HandleFunc("DELETE /api/purchases/{parentId}", s.withSecurityHeaders(s.handleDeletePurchase))

	// Records
	mux.HandleFunc("GET /api/records", s.withSecurityHeaders(s.handleListRecords))
	mux.HandleFunc("GET /api/records/{id}", s.withSecurityHeaders(s.handleGetRecord))
	mux.HandleFunc("PATCH /api/records/{id}", s.withSecurityHeaders(s.handleUpdateRecord))
	mux.HandleFunc("DELETE /api/records/{id}", s.withSecurityHeaders(s.handleDeleteRecord))
	mux.HandleFunc("POST /api/records/delete", s.withSecurityHeaders(s.handleBulkDeleteRecords))

	// Dashboard
	mux.HandleFunc("GET /api/dashboard", s.withSecurityHeaders(s.handleDashboard))

	// Exports
	mux.HandleFunc("GET /export/csv", s.withSecurityHeaders(s.handleExportCSV))
	mux.HandleFunc("GET /export/excel", s.withSecurityHeaders(s.handleExportExcel))
	mux.HandleFunc("GET /export/print", s.withSecurityHeaders(s.handleExportPrint))
	mux.HandleFunc("GET /export/pdf", s.withSecurityHeaders(s.handleExportPDF))

	return s
}

// Shutdown gracefully shuts down the server and cleanup routines
func (s *Server) Shutdown(ctx context.Context) error {
	var shutdownErr error

	s.shutdownOnce.Do(func() {
		if s.cacheManager != nil {
			s.cacheManager.Stop()
		}
		if s.rateLimiter != nil {
			s.rateLimiter.stop()
		}
		shutdownErr = s.Server.Shutdown(ctx)
	})

	return shutdownErr
}

// withSecurityHeaders adds security headers, rate limiting, and request logging to responses
func (s *Server) withSecurityHeaders(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		// Extract client IP (considering proxies)
		clientIP := r.Header.Get("X-Forwarded-For")
		if clientIP == "" {
			clientIP = r.Header.Get("X-Real-IP")
		}
		if clientIP == "" {
			clientIP = r.RemoteAddr
		}

		// Generate request ID for tracing
		requestID := generateRequestID()

		// Request-scoped logger carrying the request ID; stored back in the
		// context so FromContext finds it below the handler.
		reqLog := applog.FromContext(r.Context()).With(applog.FieldRequestID, requestID)
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		ctx = context.WithValue(ctx, applog.LoggerContextKey, reqLog)
		r = r.WithContext(ctx)

		structured := applog.NewStructuredLogger(reqLog)
		structured.LogHTTPStart(ctx, r, clientIP)

		// Apply rate limiting to mutating requests
		if isMutating(r.Method) && !s.rateLimiter.allow(clientIP) {
			reqLog.WarnContext(ctx, "Rate limit exceeded",
				applog.FieldClientIP, clientIP,
				applog.FieldMethod, r.Method,
				applog.FieldPath, r.URL.Path)
			w.Header().Set("Retry-After", "60")
			http.Error(w, "Rate limit exceeded. Please try again later.", http.StatusTooManyRequests)
			return
		}

		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("X-XSS-Protection", "1; mode=block")
		w.Header().Set("Content-Security-Policy", "default-src 'self'; script-src 'self'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; connect-src 'self'")
		w.Header().Set("Referrer-Policy", "strict-origin-when-cross-origin")

		// Create a custom response writer to capture status code
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
		next(rw, r)

		structured.LogHTTPEnd(ctx, r, rw.statusCode, time.Since(start).Milliseconds(), clientIP)
	}
}

type contextKey string

const requestIDKey contextKey = "request_id"

func isMutating(method string) bool {
	switch method {
	case http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete:
		return true
	}
	return false
}

// responseWriter wraps http.ResponseWriter to capture the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// generateRequestID creates a unique request ID for tracing
func generateRequestID() string {
	bytes := make([]byte, 8)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to timestamp if random fails
		return fmt.Sprintf("req_%d", time.Now().UnixNano())
	}
	return "req_" + hex.EncodeToString(bytes)
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func handleReady(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ready"))
}

// invalidateDashboard drops every cached dashboard projection. Called after
// each mutation; the projections span arbitrary periods so a targeted
// eviction is not possible.
func (s *Server) invalidateDashboard() {
	s.dashboardCache.Clear()
}
