package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/edvin/mailpanel/internal/api/handler"
	mw "github.com/edvin/mailpanel/internal/api/middleware"
	"github.com/edvin/mailpanel/internal/config"
	enginesync "github.com/edvin/mailpanel/internal/sync"
)

type Server struct {
	router chi.Router
	logger zerolog.Logger
	engine *enginesync.Engine
	pool   *pgxpool.Pool
	cfg    *config.Config
}

// NewServer wires the HTTP surface. pool may be nil when the mirror is
// not backed by Postgres; readiness then only reflects process health.
func NewServer(logger zerolog.Logger, engine *enginesync.Engine, pool *pgxpool.Pool, cfg *config.Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		logger: logger,
		engine: engine,
		pool:   pool,
		cfg:    cfg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(mw.RequestLogger(s.logger))
	s.router.Use(middleware.Recoverer)
	s.router.Use(mw.Metrics)
}

func (s *Server) setupRoutes() {
	s.router.Handle("/metrics", promhttp.Handler())

	s.router.Get("/healthz", s.handleHealthz)
	s.router.Get("/readyz", s.handleReadyz)

	s.router.Route("/api/v1", func(r chi.Router) {
		sync := handler.NewSync(s.engine, s.cfg.SyncConcurrent)
		r.Post("/servers/{serverID}/sync", sync.Full)
		r.Post("/servers/{serverID}/sync/status", sync.Status)
		r.Post("/servers/{serverID}/sync/{kind}", sync.Kind)

		mailbox := handler.NewMailbox(s.engine)
		r.Post("/servers/{serverID}/mailboxes", mailbox.Create)
		r.Delete("/mailboxes/{id}", mailbox.Delete)
		r.Post("/mailboxes/{id}/password", mailbox.ChangePassword)

		alias := handler.NewAlias(s.engine)
		r.Post("/servers/{serverID}/aliases", alias.Create)
		r.Delete("/aliases/{id}", alias.Delete)

		spam := handler.NewSpamFilter(s.engine)
		r.Post("/servers/{serverID}/spam-filters", spam.Create)
		r.Delete("/spam-filters/{id}", spam.Delete)

		backup := handler.NewBackup(s.engine)
		r.Post("/servers/{serverID}/backup-jobs", backup.Create)
		r.Delete("/backup-jobs/{id}", backup.Delete)
		r.Post("/backup-jobs/{id}/run", backup.Run)

		dns := handler.NewDNS(s.engine)
		r.Post("/servers/{serverID}/dns-records", dns.Create)
		r.Delete("/dns-records/{id}", dns.Delete)
	})
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}

func (s *Server) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if s.pool != nil {
		if err := s.pool.Ping(r.Context()); err != nil {
			http.Error(w, "database unavailable", http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ready"))
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}
