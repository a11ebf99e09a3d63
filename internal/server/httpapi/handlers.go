package httpapi

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/dmitrijs2005/billgate/internal/common"
	"github.com/dmitrijs2005/billgate/internal/server/auth"
	"github.com/dmitrijs2005/billgate/internal/server/models"
)

type verifyRequest struct {
	Pin string `json:"pin"`
}

// handleVerify is the single verification endpoint behind every shared view.
func (s *HTTPServer) handleVerify(w http.ResponseWriter, r *http.Request) {
	resourceType := models.ResourceType(r.PathValue("resourceType"))
	token := r.PathValue("token")

	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrInvalidPin)
		return
	}

	snap, err := s.links.Verify(r.Context(), resourceType, token, req.Pin)
	if err != nil {
		s.logger.Warn(r.Context(), "verification failed", "resourceType", resourceType, "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, snap)
}

type updateInvoiceRequest struct {
	Status     models.InvoiceStatus `json:"status"`
	PaidAmount int64                `json:"paidAmount,omitempty"`
	PaidDate   *time.Time           `json:"paidDate,omitempty"`
}

type updateInvoiceResponse struct {
	Invoice        *models.Invoice `json:"invoice"`
	PartialPayment bool            `json:"partialPayment,omitempty"`
}

// handleUpdateInvoice applies a status transition. The Idempotency-Key
// header lets a blind retry of an already-applied transition succeed.
func (s *HTTPServer) handleUpdateInvoice(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("projectId")
	invoiceID := r.PathValue("invoiceId")
	idemKey := r.Header.Get(common.IdempotencyKeyHeaderName)

	var req updateInvoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrInvalidAmount)
		return
	}

	switch req.Status {
	case models.InvoiceStatusPaid:
		var paidDate time.Time
		if req.PaidDate != nil {
			paidDate = *req.PaidDate
		}
		result, err := s.invoices.MarkPaid(r.Context(), projectID, invoiceID, req.PaidAmount, paidDate, idemKey)
		if err != nil {
			writeError(w, err)
			return
		}
		if result.PartialPayment {
			s.logger.Warn(r.Context(), "partial payment recorded",
				"invoice", result.Invoice.Number, "paid", result.Invoice.PaidAmount, "total", result.Invoice.TotalAmount)
		}
		writeJSON(w, http.StatusOK, updateInvoiceResponse{Invoice: result.Invoice, PartialPayment: result.PartialPayment})

	case models.InvoiceStatusCancelled:
		inv, err := s.invoices.Cancel(r.Context(), projectID, invoiceID, idemKey)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, updateInvoiceResponse{Invoice: inv})

	default:
		writeError(w, common.ErrInvalidTransition)
	}
}

type documentResponse struct {
	URL string `json:"url"`
}

func (s *HTTPServer) handleInvoiceDocument(w http.ResponseWriter, r *http.Request) {
	projectID := r.PathValue("projectId")
	invoiceID := r.PathValue("invoiceId")

	// The invoice must exist before a URL is minted for it.
	if _, err := s.invoices.Get(r.Context(), projectID, invoiceID); err != nil {
		writeError(w, err)
		return
	}

	url, err := s.documents.GetInvoiceDocumentURL(r.Context(), projectID, invoiceID)
	if err != nil {
		s.logger.Error(r.Context(), "presign failed", "error", err)
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, documentResponse{URL: url})
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

func (s *HTTPServer) handleAdminLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrorUnauthorized)
		return
	}

	if req.Username != s.adminUser || req.Password != s.adminPassword {
		writeError(w, common.ErrorUnauthorized)
		return
	}

	token, err := auth.GenerateToken(req.Username, s.jwtSecret, s.tokenValidity)
	if err != nil {
		writeError(w, err)
		return
	}

	s.logger.Info(r.Context(), "admin login", "username", req.Username)
	writeJSON(w, http.StatusOK, loginResponse{Token: token})
}

type issueShareLinkRequest struct {
	ResourceType models.ResourceType `json:"resourceType"`
	ResourceID   string              `json:"resourceId"`
	Pin          string              `json:"pin"`
}

type issueShareLinkResponse struct {
	Token string `json:"token"`
}

func (s *HTTPServer) handleIssueShareLink(w http.ResponseWriter, r *http.Request) {
	var req issueShareLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, common.ErrInvalidPinFormat)
		return
	}

	token, err := s.links.Issue(r.Context(), req.ResourceType, req.ResourceID, req.Pin)
	if err != nil {
		writeError(w, err)
		return
	}

	s.logger.Info(r.Context(), "share link issued", "resourceType", req.ResourceType, "resourceId", req.ResourceID)
	writeJSON(w, http.StatusOK, issueShareLinkResponse{Token: token})
}

func (s *HTTPServer) handleRecurringRun(w http.ResponseWriter, r *http.Request) {
	entry, err := s.scheduler.Run(r.Context(), models.RunModeManual)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

type logsResponse struct {
	Logs       []*models.GenerationLogEntry `json:"logs"`
	Pagination pagination                   `json:"pagination"`
}

type pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
	Pages int `json:"pages"`
}

func (s *HTTPServer) handleRecurringLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))
	// "all", empty and unknown values all mean no filter.
	typeFilter := models.RunMode(q.Get("type"))
	if typeFilter != models.RunModeAuto && typeFilter != models.RunModeManual {
		typeFilter = ""
	}

	result, err := s.log.Query(r.Context(), page, limit, typeFilter)
	if err != nil {
		writeError(w, err)
		return
	}

	if result.Entries == nil {
		result.Entries = []*models.GenerationLogEntry{}
	}

	writeJSON(w, http.StatusOK, logsResponse{
		Logs: result.Entries,
		Pagination: pagination{
			Page:  result.Page,
			Limit: result.Limit,
			Total: result.Total,
			Pages: result.Pages,
		},
	})
}
