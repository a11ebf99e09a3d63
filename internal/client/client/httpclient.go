package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/billgate/internal/client/models"
	"github.com/dmitrijs2005/billgate/internal/common"
	"github.com/sethvargo/go-retry"
)

const (
	requestTimeout   = 10 * time.Second
	verifyRetryDelay = 500 * time.Millisecond
)

// HTTPClient talks JSON to the portal server.
type HTTPClient struct {
	baseURL string
	http    *http.Client
}

func NewHTTPClient(baseURL string) (*HTTPClient, error) {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: requestTimeout},
	}, nil
}

func (c *HTTPClient) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// mapEnvelope translates the server's error envelope back to sentinels.
func mapEnvelope(e errorEnvelope) error {
	switch e.Code {
	case "invalid_pin":
		return fmt.Errorf("%w: %s", common.ErrInvalidPin, e.Message)
	case "not_found":
		return fmt.Errorf("%w: %s", common.ErrorNotFound, e.Message)
	case "invalid_transition":
		return fmt.Errorf("%w: %s", common.ErrInvalidTransition, e.Message)
	case "invalid_amount":
		return fmt.Errorf("%w: %s", common.ErrInvalidAmount, e.Message)
	case "unauthorized":
		return fmt.Errorf("%w: %s", common.ErrorUnauthorized, e.Message)
	case "lease_held":
		return fmt.Errorf("%w: %s", common.ErrTemplateLeaseHeld, e.Message)
	default:
		return fmt.Errorf("%w: %s", common.ErrorInternal, e.Message)
	}
}

// doJSON issues one request and decodes the response into out. Transport
// failures are wrapped in common.ErrNetwork; non-2xx responses are decoded
// from the error envelope.
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, headers map[string]string, body, out any) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		var envelope errorEnvelope
		if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
			return fmt.Errorf("%w: unexpected response %d", common.ErrorInternal, resp.StatusCode)
		}
		return mapEnvelope(envelope)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type verifyRequest struct {
	Pin string `json:"pin"`
}

// Verify calls the canonical verification endpoint. A network failure is
// retried exactly once after a short backoff; PIN and not-found failures
// are returned immediately.
func (c *HTTPClient) Verify(ctx context.Context, resourceType models.ResourceType, token, pin string) (*models.ResourceSnapshot, error) {
	path := fmt.Sprintf("/shared/%s/%s/verify", resourceType, token)

	var snap models.ResourceSnapshot

	backoff := retry.WithMaxRetries(1, retry.NewConstant(verifyRetryDelay))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := c.doJSON(ctx, http.MethodPost, path, nil, verifyRequest{Pin: pin}, &snap)
		if errors.Is(err, common.ErrNetwork) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return &snap, nil
}

type updateInvoiceRequest struct {
	Status     models.InvoiceStatus `json:"status"`
	PaidAmount int64                `json:"paidAmount,omitempty"`
	PaidDate   *string              `json:"paidDate,omitempty"`
}

type updateInvoiceResponse struct {
	Invoice        *models.Invoice `json:"invoice"`
	PartialPayment bool            `json:"partialPayment,omitempty"`
}

// UpdateInvoiceStatus applies one status transition. paidDate is an
// RFC 3339 timestamp when status is paid. The returned bool flags a
// partial payment warning.
func (c *HTTPClient) UpdateInvoiceStatus(ctx context.Context, projectID, invoiceID string, status models.InvoiceStatus, paidAmount int64, paidDate *string, idemKey string) (*models.Invoice, bool, error) {
	path := fmt.Sprintf("/projects/%s/invoices/%s", projectID, invoiceID)

	headers := map[string]string{}
	if idemKey != "" {
		headers[common.IdempotencyKeyHeaderName] = idemKey
	}

	var resp updateInvoiceResponse
	err := c.doJSON(ctx, http.MethodPatch, path, headers,
		updateInvoiceRequest{Status: status, PaidAmount: paidAmount, PaidDate: paidDate}, &resp)
	if err != nil {
		return nil, false, err
	}
	return resp.Invoice, resp.PartialPayment, nil
}

type documentResponse struct {
	URL string `json:"url"`
}

func (c *HTTPClient) GetDocumentURL(ctx context.Context, projectID, invoiceID string) (string, error) {
	path := fmt.Sprintf("/projects/%s/invoices/%s/document", projectID, invoiceID)

	var resp documentResponse
	if err := c.doJSON(ctx, http.MethodGet, path, nil, nil, &resp); err != nil {
		return "", err
	}
	return resp.URL, nil
}
