// Package httpapi is the HTTP transport of the portal server: the shared
// client-facing endpoints plus the JWT-guarded admin surface.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/billgate/internal/logging"
	"github.com/dmitrijs2005/billgate/internal/server/auditlog"
	"github.com/dmitrijs2005/billgate/internal/server/config"
	"github.com/dmitrijs2005/billgate/internal/server/documents"
	"github.com/dmitrijs2005/billgate/internal/server/invoices"
	"github.com/dmitrijs2005/billgate/internal/server/recurring"
	"github.com/dmitrijs2005/billgate/internal/server/sharelinks"
)

type HTTPServer struct {
	address       string
	logger        logging.Logger
	links         *sharelinks.Service
	invoices      *invoices.Service
	documents     *documents.Service
	scheduler     *recurring.Scheduler
	log           *auditlog.Store
	adminUser     string
	adminPassword string
	jwtSecret     []byte
	tokenValidity time.Duration
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, links *sharelinks.Service,
	inv *invoices.Service, docs *documents.Service, sched *recurring.Scheduler,
	log *auditlog.Store) (*HTTPServer, error) {
	return &HTTPServer{
		address:       cfg.EndpointAddr,
		logger:        l.With("module", "http_server"),
		links:         links,
		invoices:      inv,
		documents:     docs,
		scheduler:     sched,
		log:           log,
		adminUser:     cfg.AdminUser,
		adminPassword: cfg.AdminPassword,
		jwtSecret:     []byte(cfg.SecretKey),
		tokenValidity: cfg.AdminTokenValidityDuration,
	}, nil
}

// routes builds the request mux. Split out so tests can drive handlers
// through httptest without binding a socket.
func (s *HTTPServer) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /shared/{resourceType}/{token}/verify", s.handleVerify)
	mux.HandleFunc("PATCH /projects/{projectId}/invoices/{invoiceId}", s.handleUpdateInvoice)
	mux.HandleFunc("GET /projects/{projectId}/invoices/{invoiceId}/document", s.handleInvoiceDocument)

	mux.HandleFunc("POST /admin/login", s.handleAdminLogin)
	mux.HandleFunc("POST /admin/sharelinks", s.requireAdmin(s.handleIssueShareLink))
	mux.HandleFunc("POST /recurring/run", s.requireAdmin(s.handleRecurringRun))
	mux.HandleFunc("GET /recurring/logs", s.requireAdmin(s.handleRecurringLogs))

	return mux
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.routes(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
