package server

import (
	"bufio"
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/osse101/Farmstead_Go/internal/catalog"
	"github.com/osse101/Farmstead_Go/internal/handler"
	"github.com/osse101/Farmstead_Go/internal/logger"
	"github.com/osse101/Farmstead_Go/internal/metrics"
	"github.com/osse101/Farmstead_Go/internal/session"
	"github.com/osse101/Farmstead_Go/internal/sse"
)

// Options configures the HTTP server
type Options struct {
	Port             int
	APIKey           string
	TrustedProxies   []string
	RequestSizeLimit int64
}

// Store is the persistence surface the router reads directly
type Store interface {
	handler.Pinger
	handler.FarmLister
}

type Server struct {
	httpServer *http.Server
	hub        *sse.Hub
}

// NewServer creates a new Server instance
func NewServer(opts Options, store Store, sessions *session.Service, cat *catalog.Catalog, hub *sse.Hub) *Server {
	if opts.RequestSizeLimit <= 0 {
		opts.RequestSizeLimit = DefaultRequestSizeLimit
	}

	return &Server{
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", opts.Port),
			Handler:           newRouter(opts, store, sessions, cat, hub),
			ReadHeaderTimeout: 5 * time.Second,
		},
		hub: hub,
	}
}

func newRouter(opts Options, store Store, sessions *session.Service, cat *catalog.Catalog, hub *sse.Hub) http.Handler {
	r := chi.NewRouter()

	// Chi middleware executes in order defined (outermost to innermost)
	detector := NewSuspiciousActivityDetector()

	r.Use(SecurityHeadersMiddleware())
	r.Use(AuthMiddleware(opts.APIKey, opts.TrustedProxies, detector))
	r.Use(SecurityLoggingMiddleware(opts.TrustedProxies, detector))
	r.Use(RequestSizeLimitMiddleware(opts.RequestSizeLimit))
	r.Use(metrics.Middleware)
	r.Use(loggingMiddleware)

	r.Get("/healthz", handler.HandleHealthz())
	r.Get("/readyz", handler.HandleReadyz(store))
	r.Get("/version", handler.HandleVersion())
	r.Handle("/metrics", promhttp.Handler())

	farms := handler.NewFarmHandler(sessions)
	streams := handler.NewStreamHandler(sessions, hub)
	admin := handler.NewAdminHandler(sessions, store, hub)

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", handler.HandleGetCatalog(cat))

		r.Post("/farms", farms.HandleCreate)
		r.Route("/farms/{id}", func(r chi.Router) {
			r.Get("/", farms.HandleGet)
			r.Delete("/", farms.HandleDelete)

			r.Route("/plots/{plot}", func(r chi.Router) {
				r.Post("/till", farms.HandleTill)
				r.Post("/water", farms.HandleWater)
				r.Post("/plant", farms.HandlePlant)
				r.Post("/harvest", farms.HandleHarvest)
			})

			r.Route("/barn/{slot}", func(r chi.Router) {
				r.Post("/buy", farms.HandleBuyAnimal)
				r.Post("/feed", farms.HandleFeed)
				r.Post("/collect", farms.HandleCollect)
			})

			r.Post("/sell", farms.HandleSell)
			r.Post("/smart-sell", farms.HandleSmartSell)
			r.Post("/upgrades", farms.HandleBuyUpgrade)
			r.Post("/advance", farms.HandleAdvance)

			r.Get("/events", streams.HandleEvents)
			r.Get("/ws", streams.HandleWebSocket)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Get("/stats", admin.HandleStats)
			r.Post("/save", admin.HandleSave)
			r.Post("/events/broadcast", admin.HandleBroadcast)
		})
	})

	return r
}

// responseWriter wraps http.ResponseWriter to capture the status code.
// It passes Flush and Hijack through so streams work behind it.
type responseWriter struct {
	http.ResponseWriter
	statusCode int
	written    bool
}

func newResponseWriter(w http.ResponseWriter) *responseWriter {
	return &responseWriter{
		ResponseWriter: w,
		statusCode:     http.StatusOK,
	}
}

func (rw *responseWriter) WriteHeader(statusCode int) {
	if !rw.written {
		rw.statusCode = statusCode
		rw.written = true
		rw.ResponseWriter.WriteHeader(statusCode)
	}
}

func (rw *responseWriter) Write(b []byte) (int, error) {
	if !rw.written {
		rw.WriteHeader(http.StatusOK)
	}
	return rw.ResponseWriter.Write(b)
}

func (rw *responseWriter) Flush() {
	if f, ok := rw.ResponseWriter.(http.Flusher); ok {
		f.Flush()
	}
}

func (rw *responseWriter) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	hj, ok := rw.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, http.ErrNotSupported
	}
	rw.statusCode = http.StatusSwitchingProtocols
	rw.written = true
	return hj.Hijack()
}

func (rw *responseWriter) Unwrap() http.ResponseWriter {
	return rw.ResponseWriter
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		if strings.HasPrefix(r.URL.Path, "/healthz") ||
			strings.HasPrefix(r.URL.Path, "/readyz") ||
			strings.HasPrefix(r.URL.Path, "/metrics") {
			next.ServeHTTP(w, r)
			return
		}

		ctx := logger.WithRequestID(r.Context(), logger.GenerateRequestID())
		r = r.WithContext(ctx)

		log := logger.FromContext(ctx)
		log.Info(LogMsgRequestStarted,
			"method", r.Method,
			"path", r.URL.Path,
			"remote_addr", r.RemoteAddr,
			"content_length", r.ContentLength,
			"user_agent", r.UserAgent())

		sanitizedHeaders := make(http.Header)
		for k, v := range r.Header {
			if strings.EqualFold(k, HeaderAPIKey) || strings.EqualFold(k, HeaderAuthorization) {
				sanitizedHeaders[k] = []string{RedactedValue}
			} else {
				sanitizedHeaders[k] = v
			}
		}
		log.Debug(LogMsgRequestHeaders, "headers", sanitizedHeaders)

		rw := newResponseWriter(w)
		next.ServeHTTP(rw, r)

		duration := time.Since(start)
		log.Info(LogMsgRequestCompleted,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rw.statusCode,
			"duration_ms", duration.Milliseconds(),
			"duration", duration)
	})
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start starts the server
func (s *Server) Start() error {
	slog.Default().Info(LogMsgServerStarting, "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop stops the server gracefully. Open streams are closed by stopping the hub first
// since Shutdown does not wait for hijacked connections.
func (s *Server) Stop(ctx context.Context) error {
	s.hub.Stop()
	return s.httpServer.Shutdown(ctx)
}
